package config

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/mathstorm/internal/config/watcher"
)

// Watch reloads the configuration at path each time the file changes and
// passes every valid result to onChange. Load failures go to onError, which
// may be nil. The returned function stops watching; cancelling ctx does too.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) (stop func(), err error) {
	w := watcher.New(
		watcher.WithDebounce(100*time.Millisecond),
		watcher.WithErrorHandler(func(err error) {
			if onError != nil {
				onError(err)
			}
		}),
	)

	w.OnChange(func(event watcher.Event) {
		if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
			return
		}
		cfg, err := Load(path)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})

	if err := w.Watch(path); err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			w.Stop()
		})
	}, nil
}
