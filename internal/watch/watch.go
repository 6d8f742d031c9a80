// Package watch notifies when the registry document changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups the burst of events one atomic save produces.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherFailed indicates the filesystem watcher could not be started
var ErrWatcherFailed = errors.New("failed to start watcher")

// Watcher calls a function whenever the watched file is replaced or written.
// The parent directory is watched because saves rename a temp file over the
// target, which drops a watch placed on the file itself.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a Watcher for path. logger may be nil.
func New(path string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: path, debounce: DefaultDebounce, logger: logger}
}

// Run blocks until ctx is done, calling onChange after each settled change.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("%w: watch %s: %v", ErrWatcherFailed, dir, err)
	}
	w.logger.Debug("watching registry", zap.String("path", w.path))

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("registry event", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
