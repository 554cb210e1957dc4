package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}
}

func TestNew_WithOptions(t *testing.T) {
	var called bool
	w := New(
		WithDebounce(50*time.Millisecond),
		WithErrorHandler(func(error) { called = true }),
	)

	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
	w.errHandler(nil)
	if !called {
		t.Error("error handler not set")
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.op)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.op, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.toml")
	b := filepath.Join(tmpDir, "missing.yaml")

	w := New()
	if err := w.Watch(a); err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	// Non-existent files are fine; creation is reported later.
	if err := w.Watch(b); err != nil {
		t.Errorf("Watch() for non-existent file error = %v", err)
	}
	_ = w.Watch(a)

	if n := len(w.WatchedFiles()); n != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", n)
	}
	if w.dirs[tmpDir] != 2 {
		t.Errorf("directory refcount = %d, want 2", w.dirs[tmpDir])
	}

	_ = w.Unwatch(a)
	_ = w.Unwatch(b)
	if n := len(w.WatchedFiles()); n != 0 {
		t.Errorf("WatchedFiles() = %d files, want 0", n)
	}
	if _, ok := w.dirs[tmpDir]; ok {
		t.Error("directory should be released")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := New()
	_ = w.Watch(filepath.Join(t.TempDir(), "x.toml"))

	if w.IsRunning() {
		t.Error("IsRunning() = true before Start()")
	}

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	// Start again should be idempotent
	if err := w.Start(); err != nil {
		t.Errorf("second Start() error = %v", err)
	}

	w.Stop()
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}

	// Stop again should be idempotent
	w.Stop()
}

func TestWatcher_QueueEventCoalesces(t *testing.T) {
	w := New()
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now.Add(time.Millisecond)})
	if got := w.pendingFiles["/a"].Op; got != OpCreate {
		t.Errorf("create+write = %v, want create", got)
	}

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: now.Add(2 * time.Millisecond)})
	if got := w.pendingFiles["/a"].Op; got != OpRemove {
		t.Errorf("any+remove = %v, want remove", got)
	}

	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: now.Add(time.Second)})
	if p := w.pendingFiles["/b"]; p.Op != OpWrite || !p.Time.Equal(now.Add(time.Second)) {
		t.Errorf("write+write = %+v, want latest write", p)
	}
}

// firstEvent starts w and returns the first event seen after fn runs.
func firstEvent(t *testing.T, w *Watcher, fn func()) Event {
	t.Helper()

	events := make(chan Event, 16)
	w.OnChange(func(event Event) {
		select {
		case events <- event:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)

	fn()

	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive file event")
		return Event{}
	}
}

func TestWatcher_DetectsFileModification(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(0))
	_ = w.Watch(tmpFile)

	ev := firstEvent(t, w, func() {
		if err := os.WriteFile(tmpFile, []byte("modified"), 0644); err != nil {
			t.Fatal(err)
		}
	})
	if ev.Op != OpWrite {
		t.Errorf("event.Op = %v, want OpWrite", ev.Op)
	}
	if ev.Path != tmpFile {
		t.Errorf("event.Path = %q, want %q", ev.Path, tmpFile)
	}
}

func TestWatcher_DetectsFileCreation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "new.toml")

	w := New(WithDebounce(0))
	_ = w.Watch(tmpFile)

	ev := firstEvent(t, w, func() {
		if err := os.WriteFile(tmpFile, []byte("created"), 0644); err != nil {
			t.Fatal(err)
		}
	})
	if ev.Op != OpCreate {
		t.Errorf("event.Op = %v, want OpCreate", ev.Op)
	}
}

func TestWatcher_DetectsFileDeletion(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "delete.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(0))
	_ = w.Watch(tmpFile)

	ev := firstEvent(t, w, func() {
		if err := os.Remove(tmpFile); err != nil {
			t.Fatal(err)
		}
	})
	if ev.Op != OpRemove {
		t.Errorf("event.Op = %v, want OpRemove", ev.Op)
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	watched := filepath.Join(tmpDir, "watched.toml")
	other := filepath.Join(tmpDir, "other.toml")

	w := New(WithDebounce(0))
	_ = w.Watch(watched)

	ev := firstEvent(t, w, func() {
		_ = os.WriteFile(other, []byte("x"), 0644)
		_ = os.WriteFile(watched, []byte("y"), 0644)
	})
	if ev.Path != watched {
		t.Errorf("event.Path = %q, want %q", ev.Path, watched)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "debounce.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(100 * time.Millisecond))

	var eventCount atomic.Int32
	w.OnChange(func(event Event) {
		eventCount.Add(1)
	})

	_ = w.Watch(tmpFile)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Rapid modifications
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte("modified"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Wait for debounce to settle
	time.Sleep(400 * time.Millisecond)

	// Should have received only 1 debounced event (or possibly 2 at boundaries)
	count := eventCount.Load()
	if count < 1 || count > 2 {
		t.Errorf("received %d events, expected 1-2 (debounced)", count)
	}
}
