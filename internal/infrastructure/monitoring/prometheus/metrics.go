package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds all CineMood application metrics.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPRequestSize     HistogramVec
	HTTPResponseSize    HistogramVec
	HTTPActiveRequests  GaugeVec

	// Recommendation Layer
	DetectionsTotal          CounterVec
	RecommendationsTotal     CounterVec
	RecommendationDuration   HistogramVec
	RecommendationResultSize SummaryVec

	// Dataset Layer
	DatasetLoadsTotal   CounterVec
	DatasetLoadDuration HistogramVec
	DatasetRecords      GaugeVec

	// Infrastructure Layer
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// System Health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultCoreDurationBuckets    = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5}
	DefaultDatasetDurationBuckets = []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30}
	DefaultSizeBuckets            = []float64{100, 1000, 10000, 100000, 1000000, 10000000}
)

// NewAppMetrics registers all metrics and returns AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPRequestSize = collector.RegisterHistogram("http_request_size_bytes", "HTTP request size", DefaultSizeBuckets, "method", "path")
	m.HTTPResponseSize = collector.RegisterHistogram("http_response_size_bytes", "HTTP response size", DefaultSizeBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Recommendation
	m.DetectionsTotal = collector.RegisterCounter("emotion_detections_total", "Detected dominant emotions", "emotion")
	m.RecommendationsTotal = collector.RegisterCounter("recommendations_total", "Recommendation results by condition", "condition")
	m.RecommendationDuration = collector.RegisterHistogram("recommendation_duration_seconds", "Recommendation latency", DefaultCoreDurationBuckets, "cache")
	m.RecommendationResultSize = collector.RegisterSummary("recommendation_result_size", "Number of titles returned", nil, "emotion")

	// Dataset
	m.DatasetLoadsTotal = collector.RegisterCounter("dataset_loads_total", "Dataset load attempts", "source", "status")
	m.DatasetLoadDuration = collector.RegisterHistogram("dataset_load_duration_seconds", "Dataset load duration", DefaultDatasetDurationBuckets, "source")
	m.DatasetRecords = collector.RegisterGauge("dataset_records", "Records in the active dataset by emotion", "emotion")

	// Infrastructure
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	// System Health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type", "severity")

	return m
}

// NewNoopMetrics returns AppMetrics that record nothing.
func NewNoopMetrics() *AppMetrics {
	return NewAppMetrics(NewNoopCollector())
}

// Helpers

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration, reqSize, respSize int64) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordDetection counts one detected dominant emotion.
func RecordDetection(metrics *AppMetrics, emotion string) {
	metrics.DetectionsTotal.WithLabelValues(emotion).Inc()
}

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(metrics *AppMetrics, emotion, condition string, titles int, cached bool, duration time.Duration) {
	cache := "miss"
	if cached {
		cache = "hit"
	}
	metrics.RecommendationsTotal.WithLabelValues(condition).Inc()
	metrics.RecommendationDuration.WithLabelValues(cache).Observe(duration.Seconds())
	metrics.RecommendationResultSize.WithLabelValues(emotion).Observe(float64(titles))
}

// RecordDatasetLoad records a dataset load attempt and, on success, replaces
// the per-emotion record gauge with distribution.  Labels absent from
// distribution are dropped, so callers bound the label set themselves.
func RecordDatasetLoad(metrics *AppMetrics, source string, duration time.Duration, distribution map[string]int, err error) {
	metrics.DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues(source, "failure").Inc()
		metrics.ErrorsTotal.WithLabelValues("dataset", "load_error", "error").Inc()
		return
	}
	metrics.DatasetLoadsTotal.WithLabelValues(source, "success").Inc()
	metrics.DatasetRecords.Reset()
	for label, n := range distribution {
		metrics.DatasetRecords.WithLabelValues(label).Set(float64(n))
	}
}

// RecordCacheAccess records a cache hit or miss.
func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordError increments the error counter.
func RecordError(metrics *AppMetrics, component, errorType, severity string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorType, severity).Inc()
}

// RecordHealth sets the health gauge for component.
func RecordHealth(metrics *AppMetrics, component string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	metrics.HealthCheckStatus.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
