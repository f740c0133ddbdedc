package file

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// Ensure ConfigStore implements the watcher interface.
var _ driven.ConfigWatcher = (*ConfigStore)(nil)

// debounceWindow coalesces the burst of events an editor emits for a
// single save into one reload.
const debounceWindow = 200 * time.Millisecond

// Watch reloads the store and invokes onChange after each external
// modification of the config file, until the context is cancelled.
// The parent directory is watched rather than the file itself, because
// editors and our own atomic saves replace the file (rename over it),
// which drops a direct file watch.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := s.Load(); err != nil {
				logger.Warn("Reload config after change: %v", err)
				continue
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("Config watch overflow, reloading")
				if lerr := s.Load(); lerr == nil && onChange != nil {
					onChange()
				}
				continue
			}
			return err
		}
	}
}
