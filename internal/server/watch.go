package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-renders the page whenever the data file or the template changes.
// It blocks until ctx is cancelled.
//
// The parent directories are watched rather than the files themselves so
// that editors which save by rename are still picked up.
func (s *Site) Watch(ctx context.Context) error {
	targets := make(map[string]bool, 2)
	for _, p := range []string{s.dataPath, s.templatePath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true
	}
	if len(targets) == 0 {
		return ErrNothingToWatch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]bool, len(targets))
	for t := range targets {
		dir := filepath.Dir(t)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
		s.logger.Info("watching for changes", "dir", dir)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				s.logger.Warn("reload failed, keeping previous page", "error", err)
				continue
			}
			s.logger.Info("page reloaded")
		}
	}
}
