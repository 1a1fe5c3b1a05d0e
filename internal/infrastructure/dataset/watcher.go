package dataset

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/pkg/errors"
)

// DefaultDebounce coalesces bursts of write events from editors and copy tools.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Holder when its dataset file changes on disk.
type Watcher struct {
	holder   *Holder
	path     string
	debounce time.Duration
	logger   logging.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher watches the directory containing path. Watching the directory
// rather than the file keeps the watch alive across atomic renames.
func NewWatcher(holder *Holder, path string, debounce time.Duration, logger logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "invalid dataset path")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to watch dataset directory").WithDetail(abs)
	}
	return &Watcher{
		holder:   holder,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
	}, nil
}

// Run processes file events until ctx is cancelled. It closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Dataset watcher error", logging.Err(err))
		case <-timer.C:
			w.logger.Info("Dataset file changed, reloading", logging.String("path", w.path))
			_ = w.holder.Reload(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

//Personal.AI order the ending
