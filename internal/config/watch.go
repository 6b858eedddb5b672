package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever its file changes and calls onChange
// with the fresh value. Editors replace rather than rewrite the file, so the
// parent directory is watched and events are debounced. Watch blocks until
// ctx is cancelled.
func Watch(ctx context.Context, onChange func(*Config)) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var debounce *time.Timer
	reload := func() {
		cfg, err := LoadUserConfig()
		if err != nil {
			return
		}
		onChange(cfg)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, reload)
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
