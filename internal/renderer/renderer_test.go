package renderer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("closed")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Render(`a\frac{x}{y}`)
	s.Render("b")

	if got := buf.String(); got != "a\\frac{x}{y}\nb\n" {
		t.Errorf("unexpected output %q", got)
	}
	if s.Err() != nil {
		t.Errorf("unexpected error %v", s.Err())
	}
}

func TestWriterSinkStopsAfterError(t *testing.T) {
	w := &failingWriter{}
	s := NewWriterSink(w)
	s.Render("a")
	s.Render("b")

	if s.Err() == nil {
		t.Error("expected write error")
	}
	if w.calls != 1 {
		t.Errorf("expected 1 write attempt, got %d", w.calls)
	}
}

func TestFunc(t *testing.T) {
	var got string
	Func(func(m string) { got = m }).Render("x")
	if got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	Discard.Render("ignored")
}

// recorder collects rendered markup.
type recorder struct {
	mu     sync.Mutex
	seen   []string
	start  chan string
	gate   chan struct{}
	panics bool
}

func (r *recorder) Render(markup string) {
	if r.start != nil {
		r.start <- markup
	}
	if r.gate != nil {
		<-r.gate
	}
	if r.panics {
		panic("sink failure")
	}
	r.mu.Lock()
	r.seen = append(r.seen, markup)
	r.mu.Unlock()
}

func (r *recorder) rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.seen))
	copy(out, r.seen)
	return out
}

func stop(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestDispatcherLifecycle(t *testing.T) {
	d := NewDispatcher(&recorder{})

	if err := d.Submit("x"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning before Start, got %v", err)
	}
	if err := d.Stop(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
	if !d.IsRunning() {
		t.Error("expected running")
	}
	stop(t, d)
	if d.IsRunning() {
		t.Error("expected stopped")
	}
}

func TestDispatcherLatestWins(t *testing.T) {
	rec := &recorder{start: make(chan string, 1), gate: make(chan struct{})}
	d := NewDispatcher(rec)
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	_ = d.Submit("a")
	if got := <-rec.start; got != "a" {
		t.Fatalf("expected worker to take a, got %q", got)
	}

	// The sink is blocked on "a"; these pile up and replace each other.
	_ = d.Submit("b")
	_ = d.Submit("c")
	_ = d.Submit("d")

	close(rec.gate)
	go func() {
		for range rec.start {
		}
	}()
	stop(t, d)
	close(rec.start)

	got := rec.rendered()
	if len(got) != 2 || got[0] != "a" || got[1] != "d" {
		t.Errorf("expected [a d], got %v", got)
	}

	stats := d.Stats()
	if stats.Submitted != 4 {
		t.Errorf("expected 4 submitted, got %d", stats.Submitted)
	}
	if stats.Superseded != 2 {
		t.Errorf("expected 2 superseded, got %d", stats.Superseded)
	}
	if stats.Rendered != 2 {
		t.Errorf("expected 2 rendered, got %d", stats.Rendered)
	}
}

func TestDispatcherStopDrainsPending(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"1", "2", "3"} {
		_ = d.Submit(m)
	}
	stop(t, d)

	got := rec.rendered()
	if len(got) == 0 || got[len(got)-1] != "3" {
		t.Errorf("expected last render to be 3, got %v", got)
	}
	if err := d.Submit("late"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after Stop, got %v", err)
	}
}

func TestDispatcherRecoversPanics(t *testing.T) {
	var (
		mu        sync.Mutex
		recovered []string
	)
	d := NewDispatcher(&recorder{panics: true}, WithPanicHandler(func(markup string, r any, stack []byte) {
		mu.Lock()
		recovered = append(recovered, markup)
		mu.Unlock()
	}))
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	_ = d.Submit("boom")
	stop(t, d)

	if d.Stats().Panicked != 1 {
		t.Errorf("expected 1 panic, got %d", d.Stats().Panicked)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(recovered) != 1 || recovered[0] != "boom" {
		t.Errorf("panic handler saw %v", recovered)
	}
}

func TestDispatcherRestart(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)
	_ = d.Start()
	d.Render("first")
	stop(t, d)

	_ = d.Start()
	d.Render("second")
	stop(t, d)

	got := rec.rendered()
	if len(got) != 2 || got[1] != "second" {
		t.Errorf("expected [first second], got %v", got)
	}
}
