package config

import (
	"context"
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config file and reloads the global configuration when
// it changes. It blocks until ctx is cancelled. onReload, if non-nil, is
// called after each successful reload.
func Watch(ctx context.Context, onReload func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	path := Get().ConfigFilePath()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch config file %s: %w", path, err)
	}

	log.Printf("Watching %s for configuration changes", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := Reload(); err != nil {
				log.Printf("Config reload failed: %v", err)
				continue
			}
			log.Printf("Configuration reloaded from %s", path)
			if onReload != nil {
				onReload(Get())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}
