// Package watch re-runs a callback whenever the dataset file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
	"github.com/FocuswithJustin/DailyBread/internal/logging"
)

// Watcher observes one file. The parent directory is watched so that
// editors which replace the file by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New starts watching path. Events are collected from the moment New
// returns; call Run to handle them.
func New(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, dberrors.NewIO("create watcher", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, dberrors.NewIO("resolve", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, dberrors.NewIO("watch", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, debounce: debounce, fsw: fsw}, nil
}

// Run calls onChange after each burst of changes to the file, waiting for
// the debounce interval to pass without further events. It returns when ctx
// is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				logging.DebugContext(ctx, "dataset_changed", "path", w.path, "op", ev.Op.String())
				fire = time.After(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logging.WarnContext(ctx, "watch_error", "path", w.path, "error", err.Error())

		case <-fire:
			fire = nil
			onChange(ctx)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
