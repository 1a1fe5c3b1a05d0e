package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func corsRequest(method, origin string) *http.Request {
	r := httptest.NewRequest(method, "/detect_emotion/", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestCORS_PreflightRequest(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"http://localhost:3000"}

	w := httptest.NewRecorder()
	r := corsRequest(http.MethodOptions, "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", "POST")
	r.Header.Set("Access-Control-Request-Headers", "Content-Type")
	CORS(config)(okHandler()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, w.Body.String())
}

func TestCORS_SimpleRequest(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"http://localhost:3000"}

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodPost, "http://localhost:3000"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"http://localhost:3000"}

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodPost, "https://evil.example"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DefaultAllowsAll(t *testing.T) {
	w := httptest.NewRecorder()
	CORS(DefaultCORSConfig())(okHandler()).ServeHTTP(w, corsRequest(http.MethodPost, "http://localhost:5173"))

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
}

func TestCORS_SubdomainWildcard(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"*.example.com"}
	config.AllowWildcard = true
	handler := CORS(config)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, corsRequest(http.MethodGet, "https://App.Example.com"))
	assert.Equal(t, "https://App.Example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, corsRequest(http.MethodGet, "https://example.org"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardWithCredentials(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowCredentials = true

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, "http://localhost:3000"))

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	w := httptest.NewRecorder()
	CORS(DefaultCORSConfig())(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Values("Vary"))
}

func TestCORS_PlainOptionsPassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	CORS(DefaultCORSConfig())(okHandler()).ServeHTTP(w, corsRequest(http.MethodOptions, "http://localhost:3000"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_MaxAge(t *testing.T) {
	config := DefaultCORSConfig()
	config.MaxAge = time.Hour

	w := httptest.NewRecorder()
	r := corsRequest(http.MethodOptions, "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", "POST")
	CORS(config)(okHandler()).ServeHTTP(w, r)

	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, []string{"Origin", "Access-Control-Request-Method", "Access-Control-Request-Headers"}, w.Header().Values("Vary"))
}

func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()
	assert.Equal(t, []string{"*"}, config.AllowedOrigins)
	assert.Contains(t, config.AllowedMethods, http.MethodPost)
	assert.Contains(t, config.AllowedHeaders, "Content-Type")
	assert.False(t, config.AllowCredentials)
	assert.Equal(t, 24*time.Hour, config.MaxAge)
}

//Personal.AI order the ending
