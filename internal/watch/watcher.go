// Package watch triggers pipeline runs when the sample file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a single file and calls trigger on every write, create, or
// rename of it. The parent directory is watched so editors that replace the
// file atomically are still seen.
type Watcher struct {
	path    string
	trigger func()
	logger  *slog.Logger
}

// New creates a Watcher for path.
func New(path string, trigger func(), logger *slog.Logger) *Watcher {
	return &Watcher{path: filepath.Clean(path), trigger: trigger, logger: logger}
}

// Start begins watching and returns once the watch is registered. Events are
// handled in the background until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching input", "path", w.path)

	go w.loop(ctx, fw)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-fw.Events:
			if !ok {
				return
			}
			if w.relevant(evt) {
				w.logger.Debug("input changed", "path", evt.Name, "op", evt.Op.String())
				w.trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != w.path {
		return false
	}
	return evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
