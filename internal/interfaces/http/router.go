package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/CineMood/internal/interfaces/http/handlers"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.  Nil entries are skipped.
type RouterConfig struct {
	// Handlers
	EmotionHandler *handlers.EmotionHandler
	HealthHandler  *handlers.HealthHandler

	// Middleware, applied in this order after request id, real ip and
	// panic recovery.
	Metrics   func(http.Handler) http.Handler
	CORS      func(http.Handler) http.Handler
	Logging   func(http.Handler) http.Handler
	RateLimit func(http.Handler) http.Handler

	// MetricsHandler serves the Prometheus exposition at MetricsPath
	// ("/metrics" when empty).
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	for _, mw := range []func(http.Handler) http.Handler{cfg.Metrics, cfg.CORS, cfg.Logging, cfg.RateLimit} {
		if mw != nil {
			r.Use(mw)
		}
	}

	// --- Health ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
		r.Get("/healthz/detail", cfg.HealthHandler.Detailed)
	}

	// --- Metrics ---
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, cfg.MetricsHandler)
	}

	// --- Legacy detection endpoint used by the browser front-end ---
	if h := cfg.EmotionHandler; h != nil {
		r.Post("/detect_emotion/", h.DetectEmotion)
		r.Post("/detect_emotion", h.DetectEmotion)
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		registerEmotionRoutes(api, cfg.EmotionHandler)
	})

	return r
}

// registerEmotionRoutes mounts detection, classification and dataset endpoints.
func registerEmotionRoutes(r chi.Router, h *handlers.EmotionHandler) {
	if h == nil {
		return
	}
	r.Post("/detect_emotion", h.DetectEmotion)
	r.Post("/classify", h.Classify)
	r.Get("/recommendations/{emotion}", h.Recommend)
	r.Get("/dataset/stats", h.DatasetStats)
}

//Personal.AI order the ending
