package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/floatsheet/pkg/errors"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a sheet file when it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// NewWatcher starts watching the directory holding path. The watch is
// registered before NewWatcher returns, so writes that follow are seen.
// Editors that replace files by rename are handled by watching the
// directory rather than the file.
func NewWatcher(path string) (*Watcher, error) {
	if err := errors.ValidateConfigPath(path); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create config watcher")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(path))
	}
	return &Watcher{path: filepath.Clean(path), debounce: DefaultDebounce, fs: fw}, nil
}

// Run delivers each reload to onChange until ctx is cancelled or Close is
// called. A reload that fails is delivered with a nil File so hosts can
// keep their previous configuration.
func (w *Watcher) Run(ctx context.Context, onChange func(*File, error)) {
	logger := log.FromContext(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			f, err := Load(ctx, w.path)
			if err != nil {
				logger.Warn("config reload failed", "path", w.path, "err", err)
			} else {
				logger.Debug("config reloaded", "path", w.path)
			}
			onChange(f, err)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "err", err)
		}
	}
}

// Close stops the underlying watch.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Watch is NewWatcher followed by Run. It blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*File, error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Run(ctx, onChange)
	return nil
}
