// Package labwatch re-applies a configuration document every time the file
// holding it is saved, so the Code Lab can be driven from any editor.
package labwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ApplyFunc receives the full file content after each change.
type ApplyFunc func(ctx context.Context, raw string) error

// NotifyFunc is told the outcome of every apply attempt.
type NotifyFunc func(path string, err error)

// Watcher watches one file.
type Watcher struct {
	path   string
	apply  ApplyFunc
	notify NotifyFunc
	log    *zap.Logger
	last   string
	seen   bool
}

// New returns a watcher for path. notify may be nil.
func New(path string, apply ApplyFunc, notify NotifyFunc, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if notify == nil {
		notify = func(string, error) {}
	}
	return &Watcher{path: abs, apply: apply, notify: notify, log: log}, nil
}

// Run applies the file once, then again on every write, until ctx is done.
// The parent directory is watched because editors often save by rename.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Info("watching configuration document", zap.String("path", w.path))
	w.reload(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.reload(ctx)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// reload applies the file unless its content is unchanged since the last attempt.
func (w *Watcher) reload(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn("read configuration document", zap.String("path", w.path), zap.Error(err))
		return
	}
	raw := string(data)
	if strings.TrimSpace(raw) == "" {
		// Truncated mid-save; the following write brings the content.
		return
	}
	if w.seen && raw == w.last {
		return
	}
	w.seen = true
	w.last = raw

	err = w.apply(ctx, raw)
	if err != nil {
		w.log.Info("configuration document rejected", zap.String("path", w.path), zap.Error(err))
	}
	w.notify(w.path, err)
}
