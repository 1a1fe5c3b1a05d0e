package recommendation

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/internal/domain/movie"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/prometheus"
)

// TableSource yields the movie table to recommend from.  Implementations
// return a consistent snapshot; nil means no table is loaded.
type TableSource interface {
	Current() *movie.Table
}

// ResultCache is a read-through cache.  GetOrSet fills dest from key, or
// calls loader on a miss and stores what it returns.  A loader error is
// passed back unchanged and nothing is stored.
type ResultCache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error
}

// Config tunes the service.
type Config struct {
	// Limit caps the number of titles; non-positive means DefaultLimit.
	Limit int
	// MinConfidence rejects detections whose dominant score is lower.  Zero
	// disables the check.
	MinConfidence float64
	// CacheTTL is the lifetime of cached results.  Zero leaves the choice to
	// the cache.
	CacheTTL time.Duration
}

// Service coordinates detection, lookup and caching for one request.
type Service struct {
	tables  TableSource
	cfg     Config
	cache   ResultCache
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables read-through caching of OK results.
func WithCache(c ResultCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithMetrics records recommendation metrics.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a recommendation service reading tables from tables.
func NewService(tables TableSource, cfg Config, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cfg.Limit = NormalizeLimit(cfg.Limit)
	s := &Service{
		tables:  tables,
		cfg:     cfg,
		metrics: prometheus.NewNoopMetrics(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the effective title limit.
func (s *Service) Limit() int { return s.cfg.Limit }

// Detect picks the dominant expression in scores, normalizes it and returns
// the matching recommendations.  It fails only when no usable expression is
// present.
func (s *Service) Detect(ctx context.Context, scores emotion.Scores) (Result, error) {
	d, err := emotion.Detect(scores, s.cfg.MinConfidence)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("Detected emotion",
		logging.String("expression", d.Expression),
		logging.Float64("score", d.Score),
		logging.String("normalized", d.Emotion.String()),
	)
	prometheus.RecordDetection(s.metrics, metricLabel(d.Emotion))
	return s.RecommendFor(ctx, d.Emotion), nil
}

// RecommendFor returns recommendations for an already normalized emotion.
func (s *Service) RecommendFor(ctx context.Context, e emotion.Emotion) Result {
	start := time.Now()
	table := s.tables.Current()

	if s.cache == nil || table.Len() == 0 {
		res := s.compute(e, table)
		s.observe(res, false, start)
		return res
	}
	res, hit := s.cached(ctx, table, e)
	s.observe(res, hit, start)
	return res
}

// CacheKey identifies a result for one table version, emotion and limit.
func CacheKey(version string, e emotion.Emotion, limit int) string {
	return fmt.Sprintf("rec:%s:%s:%d", version, e, limit)
}

func (s *Service) compute(e emotion.Emotion, table *movie.Table) Result {
	res := Recommend(e, table, s.cfg.Limit)
	s.logOutcome(res, table)
	return res
}

// uncacheable carries a degraded result out of the cache loader so the cache
// returns it to the caller without storing it.
type uncacheable struct{ res Result }

func (u *uncacheable) Error() string {
	return "recommendation not cacheable: " + string(u.res.Condition)
}

// cached resolves e through the result cache.  The bool reports whether the
// result was served without running the filter.
func (s *Service) cached(ctx context.Context, table *movie.Table, e emotion.Emotion) (Result, bool) {
	var (
		loaded   bool
		computed Result
		res      Result
	)
	err := s.cache.GetOrSet(ctx, CacheKey(table.Version(), e, s.cfg.Limit), &res, s.cfg.CacheTTL,
		func(context.Context) (interface{}, error) {
			loaded = true
			computed = s.compute(e, table)
			if !computed.OK() {
				return nil, &uncacheable{res: computed}
			}
			return computed, nil
		})

	var skip *uncacheable
	switch {
	case err == nil:
		hit := !loaded
		prometheus.RecordCacheAccess(s.metrics, "redis", hit)
		return res, hit
	case stderrors.As(err, &skip):
		prometheus.RecordCacheAccess(s.metrics, "redis", false)
		return skip.res, false
	default:
		prometheus.RecordCacheAccess(s.metrics, "redis", false)
		s.logger.Warn("Recommendation cache failed", logging.Err(err))
		if loaded {
			return computed, false
		}
		return s.compute(e, table), false
	}
}

func (s *Service) logOutcome(res Result, table *movie.Table) {
	switch res.Condition {
	case ConditionOK:
		s.logger.Info("Returning recommendations",
			logging.String("emotion", res.Emotion.String()),
			logging.Int("count", len(res.Titles)),
		)
	case ConditionNoMatch:
		s.logger.Warn("No movies found for emotion",
			logging.String("emotion", res.Emotion.String()),
			logging.Any("available", table.Stats().SortedEmotions()),
		)
	case ConditionDatasetMissing:
		s.logger.Error("Dataset is empty")
	case ConditionSchemaMismatch:
		s.logger.Error("Emotion column missing from dataset")
	case ConditionColumnMismatch:
		s.logger.Error("Neither title nor movie column found",
			logging.Any("columns", table.Columns().Names()),
		)
	}
}

func (s *Service) observe(res Result, cached bool, start time.Time) {
	prometheus.RecordRecommendation(s.metrics, metricLabel(res.Emotion), string(res.Condition), len(res.Titles), cached, time.Since(start))
}

// metricLabel keeps label cardinality bounded: non-canonical emotions share
// the "other" series.
func metricLabel(e emotion.Emotion) string {
	if !e.IsCanonical() {
		return "other"
	}
	return e.String()
}

//Personal.AI order the ending
