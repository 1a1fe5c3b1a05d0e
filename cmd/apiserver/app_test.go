package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CineMood/internal/config"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/internal/testutil"
)

const appCSV = "title,genres\nUp,Comedy\nHeat,Drama\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Dataset.Path = testutil.WriteDataset(t, appCSV)
	cfg.Metrics.Namespace = "apptest"
	return cfg
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

func TestNewApplication_FileSource(t *testing.T) {
	app, err := newApplication(context.Background(), testConfig(t), logging.NewNopLogger())
	require.NoError(t, err)
	defer app.close()

	w := post(app.handler(), "/detect_emotion/", `{"expressions":{"happy":0.9,"sad":0.1}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detected_emotion":"happy","recommendations":["Up"]}`, w.Body.String())

	metrics := httptest.NewRecorder()
	app.handler().ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metrics.Body.String(), `apptest_dataset_loads_total{source="file",status="success"} 1`)
}

func TestNewApplication_MissingDatasetStillServes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "absent.csv")

	logger := testutil.NewMockLogger()
	app, err := newApplication(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer app.close()
	assert.True(t, logger.HasMessage("warn", "Starting without a dataset; recommendations will report it missing"))
	msg, ok := logger.Find("error", "Failed to load dataset")
	require.True(t, ok)
	assert.Equal(t, "dataset", msg.Logger)

	w := post(app.handler(), "/detect_emotion/", `{"expressions":{"happy":1}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detected_emotion":"happy","recommendations":["Dataset missing"]}`, w.Body.String())

	ready := httptest.NewRecorder()
	app.handler().ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
}

func TestNewApplication_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()

	app, err := newApplication(context.Background(), cfg, logging.NewNopLogger())
	require.NoError(t, err)
	defer app.close()

	for i := 0; i < 2; i++ {
		w := post(app.handler(), "/api/v1/detect_emotion", `{"expressions":{"sad":0.7}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"detected_emotion":"sad","recommendations":["Heat"]}`, w.Body.String())
	}

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	for _, k := range keys {
		assert.True(t, strings.HasPrefix(k, cfg.Redis.KeyPrefix), k)
	}

	metrics := httptest.NewRecorder()
	app.handler().ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metrics.Body.String(), `apptest_cache_hits_total{cache="redis"} 1`)
}

func TestNewApplication_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Redis.DialTimeout = 200 * time.Millisecond

	_, err := newApplication(context.Background(), cfg, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestApplication_RunWatchesAndStops(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Watch = true
	cfg.Dataset.WatchDebounce = 20 * time.Millisecond
	cfg.RateLimit.Enabled = true

	app, err := newApplication(context.Background(), cfg, logging.NewNopLogger())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.run(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(cfg.Dataset.Path, []byte(appCSV+"Alien,Horror\n"), 0o644))
	assert.Eventually(t, func() bool { return app.holder.Current().Len() == 3 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCorsConfig(t *testing.T) {
	out := corsConfig(config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}, MaxAge: time.Minute})
	assert.Equal(t, []string{"http://localhost:3000"}, out.AllowedOrigins)
	assert.Equal(t, time.Minute, out.MaxAge)
	assert.NotEmpty(t, out.AllowedMethods)
}

//Personal.AI order the ending
