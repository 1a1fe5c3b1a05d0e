package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/prometheus"
)

// unmatchedRoute labels requests that no route matched, keeping the path
// label bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and sizes labelled by the chi route
// pattern rather than the raw path.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	if m == nil {
		m = prometheus.NewNoopMetrics()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newWrappedResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			reqSize := r.ContentLength
			if reqSize < 0 {
				reqSize = 0
			}
			prometheus.RecordHTTPRequest(m, r.Method, route, wrapped.statusCode, time.Since(start), reqSize, wrapped.bytesWritten)
		})
	}
}

// ActiveRequests tracks in-flight requests per method.
func ActiveRequests(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	if m == nil {
		m = prometheus.NewNoopMetrics()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g := m.HTTPActiveRequests.WithLabelValues(r.Method, "all")
			g.Inc()
			defer g.Dec()
			next.ServeHTTP(w, r)
		})
	}
}

//Personal.AI order the ending
