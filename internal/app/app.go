// Package app provides the interactive editing session for mathstorm. It
// wires configuration, logging, the editing engine and the render
// dispatcher together and drives them from terminal input.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/mathstorm/internal/config"
	"github.com/dshills/mathstorm/internal/engine"
	"github.com/dshills/mathstorm/internal/logging"
	"github.com/dshills/mathstorm/internal/renderer"
	"github.com/dshills/mathstorm/internal/renderer/backend"
	"github.com/dshills/mathstorm/internal/script"
)

// DefaultTitle is shown on the first screen row.
const DefaultTitle = "mathstorm"

// Application is the central coordinator for an editing session.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	config    *config.Config
	logger    *logging.Logger
	logCloser io.Closer

	// Editing
	engine     *engine.Engine
	dispatcher *renderer.Dispatcher
	metrics    *Metrics
	recorder   *script.Recorder

	// Terminal
	backend backend.Backend
	view    *backend.View
	prompt  promptState
	message string

	// State
	running atomic.Bool
	quit    atomic.Bool

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Config, if set, is used instead of loading ConfigPath.
	Config *config.Config

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput overrides the configured log destination.
	LogOutput io.Writer

	// WatchConfig reloads ConfigPath while running.
	WatchConfig bool

	// Title is shown on the first screen row.
	Title string
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	app := &Application{
		opts:     opts,
		metrics:  NewMetrics(),
		recorder: script.NewRecorder(),
	}

	if err := app.bootstrap(); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	app.config = cfg

	// 2. Logger
	out := app.opts.LogOutput
	if out == nil {
		out = os.Stderr
		if cfg.Log.File != "" {
			f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return &InitError{Component: "logger", Err: err}
			}
			out = f
			app.logCloser = f
		}
	}
	app.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Prefix: logging.DefaultConfig().Prefix,
	})

	// 3. Render dispatcher, drawing into the view once Run attaches one
	app.dispatcher = renderer.NewDispatcher(
		renderer.Func(app.draw),
		renderer.WithPanicHandler(func(markup string, recovered any, stack []byte) {
			app.logger.Error("render panic: %v\n%s", recovered, stack)
		}),
	)

	// 4. Engine
	app.engine = engine.New(
		engine.WithRenderer(app.dispatcher),
		engine.WithLogger(app.logger),
		engine.WithCaretStyle(cfg.CaretStyle()),
		engine.WithColors(cfg.ColorFunc()),
		engine.WithMaxHistory(cfg.Editor.MaxHistory),
	)

	app.logger.WithComponent("app").Debug("bootstrap complete")
	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the input loop. It blocks until the user quits, Shutdown is
// called or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	app.quit.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.view = backend.NewView(b, app.opts.Title)
	app.mu.Unlock()

	if err := app.dispatcher.Start(); err != nil {
		return &InitError{Component: "dispatcher", Err: err}
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := app.dispatcher.Stop(stopCtx); err != nil {
			app.logger.Warn("render dispatcher stop: %v", err)
		}
	}()

	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		stop, err := config.Watch(ctx, app.opts.ConfigPath, app.ApplyConfig, func(err error) {
			app.logger.Warn("config reload: %v", err)
		})
		if err != nil {
			app.logger.Warn("config watch: %v", err)
		} else {
			defer stop()
		}
	}

	// Wake the input loop when the context ends.
	loopDone := make(chan struct{})
	defer close(loopDone)
	go func() {
		select {
		case <-ctx.Done():
			b.PostEvent(backend.Event{Type: backend.EventInterrupt})
		case <-loopDone:
		}
	}()

	app.view.SetStatus(app.status())
	app.view.Render(app.engine.CaretMarkup())

	return app.eventLoop(ctx, b)
}

// eventLoop reads backend events until quit.
func (app *Application) eventLoop(ctx context.Context, b backend.Backend) error {
	for {
		ev := b.PollEvent()

		switch ev.Type {
		case backend.EventInterrupt:
			if app.quit.Load() || ctx.Err() != nil {
				return nil
			}

		case backend.EventResize:
			app.view.Redraw()

		case backend.EventKey:
			if err := app.handleKey(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// draw renders markup into the view, if one is attached.
func (app *Application) draw(markup string) {
	app.mu.RLock()
	v := app.view
	app.mu.RUnlock()
	if v != nil {
		v.Render(markup)
	}
}

// ApplyConfig adopts a reloaded configuration. The log level and caret
// style take effect immediately; colors and history bounds apply to the
// next session.
func (app *Application) ApplyConfig(cfg *config.Config) {
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.logger.SetLevel(cfg.LogLevel())
	app.engine.SetCaretStyle(cfg.CaretStyle())
	app.logger.Info("configuration reloaded")
}

// Shutdown asks a running input loop to exit.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.quit.Store(true)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	b.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// Close releases the log file, if one was opened.
func (app *Application) Close() error {
	if app.logger != nil {
		s := app.metrics.Snapshot()
		app.logger.Debug("session: %d inputs, avg %v, max %v", s.Inputs, s.AvgInput, s.MaxInput)
	}
	if app.logCloser != nil {
		err := app.logCloser.Close()
		app.logCloser = nil
		if err != nil {
			return fmt.Errorf("closing log: %w", err)
		}
	}
	return nil
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Engine returns the editing engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Metrics returns the input metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Recording returns the steps applied during the session.
func (app *Application) Recording() *script.Recorder {
	return app.recorder
}

// RenderStats returns the render dispatcher statistics.
func (app *Application) RenderStats() renderer.DispatcherStats {
	return app.dispatcher.Stats()
}
