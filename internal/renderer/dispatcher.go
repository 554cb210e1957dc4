package renderer

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// PanicHandler is called when the sink panics while rendering markup.
type PanicHandler func(markup string, recovered any, stack []byte)

// Dispatcher hands markup to a sink on its own goroutine, keeping only the
// latest pending markup.
type Dispatcher struct {
	sink Renderer

	// State
	mu         sync.Mutex // protects pending, hasPending and channel lifecycle
	pending    string
	hasPending bool
	wake       chan struct{}
	done       chan struct{}
	running    atomic.Bool
	wg         sync.WaitGroup

	// Handlers
	panicHandler PanicHandler

	// Stats
	submitted   atomic.Uint64
	rendered    atomic.Uint64
	superseded  atomic.Uint64
	panicked    atomic.Uint64
	totalTimeNs atomic.Int64
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithPanicHandler sets the handler invoked when the sink panics.
func WithPanicHandler(h PanicHandler) DispatcherOption {
	return func(d *Dispatcher) {
		d.panicHandler = h
	}
}

// NewDispatcher creates a dispatcher delivering to sink.
// Call Start before submitting.
func NewDispatcher(sink Renderer, opts ...DispatcherOption) *Dispatcher {
	if sink == nil {
		sink = Discard
	}
	d := &Dispatcher{sink: sink}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start starts the render goroutine.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return ErrAlreadyRunning
	}

	d.wake = make(chan struct{}, 1)
	d.done = make(chan struct{})
	d.running.Store(true)

	d.wg.Add(1)
	go d.worker(d.wake, d.done)
	return nil
}

// Stop stops the dispatcher after rendering any pending markup.
// It waits for the render goroutine or until ctx is cancelled.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running.Load() {
		d.mu.Unlock()
		return ErrNotRunning
	}
	d.running.Store(false)
	close(d.done)
	d.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the dispatcher accepts markup.
func (d *Dispatcher) IsRunning() bool {
	return d.running.Load()
}

// Submit queues markup for rendering, replacing any markup still pending.
func (d *Dispatcher) Submit(markup string) error {
	d.mu.Lock()
	if !d.running.Load() {
		d.mu.Unlock()
		return ErrNotRunning
	}
	if d.hasPending {
		d.superseded.Add(1)
	}
	d.pending = markup
	d.hasPending = true
	wake := d.wake
	d.mu.Unlock()

	d.submitted.Add(1)

	select {
	case wake <- struct{}{}:
	default:
		// Worker already signalled.
	}
	return nil
}

// Render implements Renderer. Markup submitted while stopped is dropped.
func (d *Dispatcher) Render(markup string) {
	_ = d.Submit(markup)
}

// worker renders pending markup until done is closed, then drains once.
func (d *Dispatcher) worker(wake <-chan struct{}, done <-chan struct{}) {
	defer d.wg.Done()

	for {
		select {
		case <-wake:
			d.renderPending()
		case <-done:
			d.renderPending()
			return
		}
	}
}

// renderPending takes the pending markup, if any, and renders it.
func (d *Dispatcher) renderPending() {
	d.mu.Lock()
	if !d.hasPending {
		d.mu.Unlock()
		return
	}
	markup := d.pending
	d.pending = ""
	d.hasPending = false
	d.mu.Unlock()

	d.deliver(markup)
}

// deliver calls the sink with panic recovery.
func (d *Dispatcher) deliver(markup string) {
	start := time.Now()
	defer func() {
		d.totalTimeNs.Add(time.Since(start).Nanoseconds())
		if r := recover(); r != nil {
			d.panicked.Add(1)
			if d.panicHandler != nil {
				stack := debug.Stack()
				func() {
					defer func() { _ = recover() }()
					d.panicHandler(markup, r, stack)
				}()
			}
		}
	}()

	d.sink.Render(markup)
	d.rendered.Add(1)
}

// Stats returns dispatcher statistics.
func (d *Dispatcher) Stats() DispatcherStats {
	rendered := d.rendered.Load()
	totalNs := d.totalTimeNs.Load()

	var avgNs int64
	if rendered > 0 {
		avgNs = totalNs / int64(rendered)
	}

	return DispatcherStats{
		Submitted:     d.submitted.Load(),
		Rendered:      rendered,
		Superseded:    d.superseded.Load(),
		Panicked:      d.panicked.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}

// DispatcherStats contains statistics for a dispatcher.
type DispatcherStats struct {
	// Submitted is the number of accepted Submit calls.
	Submitted uint64

	// Rendered is the number of markup strings the sink completed.
	Rendered uint64

	// Superseded is the number of pending markups replaced before rendering.
	Superseded uint64

	// Panicked is the number of sink panics recovered.
	Panicked uint64

	// TotalDuration is the cumulative time spent in the sink.
	TotalDuration time.Duration

	// AvgDuration is the average time per completed render.
	AvgDuration time.Duration
}
