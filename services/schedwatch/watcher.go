// Package schedwatch recomputes attendance statuses whenever the settings file changes.
package schedwatch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
)

const DefaultDebounce = 250 * time.Millisecond

type Watcher struct {
	path   string
	svc    attendance.Service
	logger core.Logger

	// Debounce groups the burst of events a single save produces.
	Debounce time.Duration
	// OnRecompute, when set, is called after each recompute, successful or not.
	OnRecompute func(attendance.RecomputeResult, error)
}

func New(settingsPath string, svc attendance.Service, logger core.Logger) *Watcher {
	return &Watcher{
		path:     filepath.Clean(settingsPath),
		svc:      svc,
		logger:   logger,
		Debounce: DefaultDebounce,
	}
}

// Run watches the settings file until ctx is done.
// The parent directory is watched so editors that replace the file are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer func() { _ = fw.Close() }()
	if err = fw.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	w.logger.Info("watching settings", map[string]interface{}{"path": w.path})

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op == fsnotify.Chmod {
				continue
			}
			fire = time.After(w.Debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("settings watcher", err)
		case <-fire:
			fire = nil
			res, err := w.svc.RecomputeFromSettings(ctx, "", "")
			if err != nil {
				w.logger.Error("recomputing after settings change", err)
			}
			if w.OnRecompute != nil {
				w.OnRecompute(res, err)
			}
		}
	}
}
