package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path string
	w    *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors replacing the file by rename are noticed.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	return &Watcher{path: filepath.Clean(path), w: w}, nil
}

// Run delivers each successful reload to onChange and each failure to onErr
// until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config), onErr func(error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			cfg, err := LoadFrom(w.path)
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				continue
			}
			if onChange != nil {
				onChange(cfg)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}

func (w *Watcher) Close() error { return w.w.Close() }
