package registry

import (
	"context"
	"errors"

	"github.com/zjrosen/lexreg/internal/log"
	"github.com/zjrosen/lexreg/internal/watcher"
)

// ErrNothingToWatch is returned by Watch when no source is backed by a file or directory.
var ErrNothingToWatch = errors.New("no catalog files to watch")

// Watch reloads the registry whenever a catalog file or the catalog database changes.
// It returns once watching has started; watching stops when ctx is done. Reload
// failures are logged and published, the previous snapshot stays live.
func (s *SpecService) Watch(ctx context.Context) error {
	paths := s.sources.WatchPaths()
	if len(paths) == 0 {
		return ErrNothingToWatch
	}

	cfg := watcher.DefaultConfig(paths...)
	if s.opts.WatchDebounce > 0 {
		cfg.DebounceDur = s.opts.WatchDebounce
	}
	w, err := watcher.New(cfg)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	log.Info(log.CatWatcher, "watching catalogs", "paths", len(paths))

	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				log.Debug(log.CatWatcher, "catalog changed, reloading")
				// Reload logs and publishes its own failures.
				_ = s.Reload(ctx)
			}
		}
	}()
	return nil
}
