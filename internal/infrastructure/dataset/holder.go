package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/internal/domain/movie"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CineMood/pkg/errors"
)

// Holder publishes the current movie table. Readers never block: each call
// to Current returns an immutable snapshot, and Reload swaps in a freshly
// built table.
type Holder struct {
	source  Source
	logger  logging.Logger
	metrics *prometheus.AppMetrics

	current atomic.Pointer[movie.Table]
	loaded  atomic.Bool
	mu      sync.Mutex // serialises reloads
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithMetrics records load outcomes on m.
func WithMetrics(m *prometheus.AppMetrics) HolderOption {
	return func(h *Holder) {
		if m != nil {
			h.metrics = m
		}
	}
}

// NewHolder returns a holder serving an empty table until the first
// successful Reload.
func NewHolder(source Source, logger logging.Logger, opts ...HolderOption) *Holder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	h := &Holder{
		source:  source,
		logger:  logger,
		metrics: prometheus.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.current.Store(movie.Empty())
	return h
}

// Current returns the table in effect.
func (h *Holder) Current() *movie.Table {
	return h.current.Load()
}

// Loaded reports whether any reload has succeeded.
func (h *Holder) Loaded() bool {
	return h.loaded.Load()
}

// Store replaces the current table. A nil table is replaced by an empty one.
func (h *Holder) Store(t *movie.Table) {
	if t == nil {
		t = movie.Empty()
	}
	h.current.Store(t)
	h.loaded.Store(true)
}

// Reload reads and parses the source, then publishes the new table. On
// failure the previous table stays in effect and the error is returned.
func (h *Holder) Reload(ctx context.Context) error {
	if h.source == nil {
		return errors.New(errors.ErrCodeDatasetUnavailable, "no dataset source configured")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	t, err := h.load(ctx)
	elapsed := time.Since(start)
	if err != nil {
		prometheus.RecordDatasetLoad(h.metrics, h.source.Name(), elapsed, nil, err)
		h.logger.Error("Failed to load dataset",
			logging.String("source", h.source.Name()),
			logging.Err(err),
			logging.Int("keptRecords", h.Current().Len()),
		)
		return err
	}

	h.Store(t)
	dist := t.Distribution()
	prometheus.RecordDatasetLoad(h.metrics, h.source.Name(), elapsed, gaugeCounts(dist), nil)
	h.logger.Info("Dataset loaded",
		logging.String("source", h.source.Name()),
		logging.String("version", t.Version()),
		logging.Int("records", t.Len()),
		logging.Any("columns", t.Columns().Names()),
		logging.Any("distribution", dist),
		logging.Duration("elapsed", elapsed),
	)
	if !t.Columns().Title && !t.Columns().Movie {
		h.logger.Warn("Dataset has neither title nor movie column",
			logging.Any("columns", t.Columns().Names()))
	}
	return nil
}

func (h *Holder) load(ctx context.Context) (*movie.Table, error) {
	rc, err := h.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}

// gaugeCounts folds labels outside the canonical set into "other" and
// reports every canonical emotion, zero included.
func gaugeCounts(dist map[string]int) map[string]int {
	counts := make(map[string]int, len(emotion.All)+1)
	for _, e := range emotion.All {
		counts[e.String()] = 0
	}
	for label, n := range dist {
		if emotion.Emotion(label).IsCanonical() {
			counts[label] += n
		} else {
			counts["other"] += n
		}
	}
	return counts
}

//Personal.AI order the ending
