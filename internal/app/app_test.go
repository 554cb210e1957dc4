package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/mathstorm/internal/config"
	"github.com/dshills/mathstorm/internal/engine"
	"github.com/dshills/mathstorm/internal/engine/cursor"
	"github.com/dshills/mathstorm/internal/renderer/backend"
	"github.com/dshills/mathstorm/internal/script"
)

func runes(s string) []backend.Event {
	evs := make([]backend.Event, 0, len(s))
	for _, r := range s {
		evs = append(evs, backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r})
	}
	return evs
}

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func newTestApp(t *testing.T) (*Application, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	app, err := New(Options{Config: config.Default(), LogOutput: &logs, LogLevel: "debug"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, &logs
}

// runSession feeds events followed by Escape and runs the app to completion.
func runSession(t *testing.T, app *Application, events ...backend.Event) *backend.NullBackend {
	t.Helper()
	b := backend.NewNullBackend(80, 8)
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}
	for _, ev := range events {
		b.PostEvent(ev)
	}
	b.PostEvent(key(backend.KeyEscape))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("session did not quit on Escape")
	}
	return b
}

func seq(parts ...[]backend.Event) []backend.Event {
	var out []backend.Event
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSessionEditsThroughPalette(t *testing.T) {
	app, _ := newTestApp(t)

	b := runSession(t, app, seq(
		runes(`x+\frac`),
		[]backend.Event{key(backend.KeyEnter)},
		runes("1"),
		[]backend.Event{key(backend.KeyRight)},
		runes("2"),
	)...)

	if got := app.Engine().Markup(); got != `x+\frac{1}{2}` {
		t.Fatalf("expected 'x+\\frac{1}{2}', got %q", got)
	}
	want := `x+\frac{1}{\boxed{2` + cursor.DefaultCaretGlyph + `}}`
	if got := b.Line(2); got != want {
		t.Errorf("expected screen markup %q, got %q", want, got)
	}
	if got := b.Line(0); got != DefaultTitle {
		t.Errorf("expected title, got %q", got)
	}
	if got := b.Line(7); got != "depth 1  committed 0" {
		t.Errorf("unexpected status %q", got)
	}
}

func TestSessionRecording(t *testing.T) {
	app, _ := newTestApp(t)

	runSession(t, app, seq(
		runes(`x+\frac`),
		[]backend.Event{key(backend.KeyEnter)},
		runes("1"),
		[]backend.Event{key(backend.KeyRight)},
		runes("2"),
		[]backend.Event{key(backend.KeyEnter)},
	)...)

	rec := app.Recording().Script("session")
	want := []script.Step{
		{Op: script.OpText, Arg: "x+", Count: 1},
		{Op: script.OpInsert, Arg: "frac", Count: 1},
		{Op: script.OpText, Arg: "1", Count: 1},
		{Op: script.OpRight, Count: 1},
		{Op: script.OpText, Arg: "2", Count: 1},
		{Op: script.OpCommit, Count: 1},
	}
	if len(rec.Steps) != len(want) {
		t.Fatalf("expected %d recorded steps, got %v", len(want), rec.Steps)
	}
	for i := range want {
		if rec.Steps[i] != want[i] {
			t.Errorf("step %d: expected %+v, got %+v", i, want[i], rec.Steps[i])
		}
	}

	res, err := rec.Run(engine.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Commits) != 1 || res.Commits[0].Markup != `x+\frac{1}{2}` {
		t.Errorf("expected replay to commit x+\\frac{1}{2}, got %v", res.Commits)
	}
}

func TestSessionCommit(t *testing.T) {
	app, logs := newTestApp(t)

	b := runSession(t, app, seq(runes("ab"), []backend.Event{key(backend.KeyEnter)})...)

	if len(app.Engine().History()) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(app.Engine().History()))
	}
	if got := b.Line(7); got != "committed ab" {
		t.Errorf("unexpected status %q", got)
	}
	if !app.Engine().IsEmpty() {
		t.Error("expected a fresh expression after commit")
	}
	if !strings.Contains(logs.String(), "committed") {
		t.Errorf("expected commit to be logged, got %q", logs.String())
	}
}

func TestSessionCommitEmptyShowsError(t *testing.T) {
	app, logs := newTestApp(t)

	b := runSession(t, app, key(backend.KeyEnter))

	if got := b.Line(7); got != "commit: expression is empty" {
		t.Errorf("unexpected status %q", got)
	}
	if !strings.Contains(logs.String(), "[WARN]") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestSessionPromptNoMatch(t *testing.T) {
	app, _ := newTestApp(t)

	b := runSession(t, app, seq(runes(`\zzzq`), []backend.Event{key(backend.KeyEnter)})...)

	if got := b.Line(7); got != `no match for \zzzq` {
		t.Errorf("unexpected status %q", got)
	}
	if !app.Engine().IsEmpty() {
		t.Error("expected nothing inserted")
	}
}

func TestSessionPromptEditing(t *testing.T) {
	app, _ := newTestApp(t)

	// Backspace edits the query; Escape closes the prompt without quitting.
	b := runSession(t, app, seq(
		runes(`\sqx`),
		[]backend.Event{key(backend.KeyBackspace)},
		runes("rt"),
		[]backend.Event{key(backend.KeyEnter)},
		runes("2"),
		[]backend.Event{key(backend.KeyRight)},
		runes(`\`),
		[]backend.Event{key(backend.KeyEscape)},
		runes(`\`),
		[]backend.Event{key(backend.KeyBackspace)},
		runes("3"),
	)...)

	if got := app.Engine().Markup(); got != `\sqrt{2}3` {
		t.Errorf("expected '\\sqrt{2}3', got %q", got)
	}
	if got := b.Line(6); got != "" {
		t.Errorf("expected candidates row cleared, got %q", got)
	}
}

func TestSessionPromptShowsCandidates(t *testing.T) {
	app, _ := newTestApp(t)
	b := backend.NewNullBackend(80, 8)
	_ = app.SetBackend(b)
	_ = b.Init()
	app.view = backend.NewView(b, DefaultTitle)

	for _, ev := range runes(`\frac`) {
		if err := app.handleKey(ev); err != nil {
			t.Fatal(err)
		}
	}
	if got := b.Line(7); got != `\frac` {
		t.Errorf("expected prompt row, got %q", got)
	}
	if got := b.Line(6); !strings.HasPrefix(got, "frac") {
		t.Errorf("expected frac first among candidates, got %q", got)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, _ := newTestApp(t)
	b := backend.NewNullBackend(40, 6)
	_ = app.SetBackend(b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := app.SetBackend(b); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if app.IsRunning() {
		t.Error("expected not running")
	}
}

func TestShutdown(t *testing.T) {
	app, _ := newTestApp(t)
	b := backend.NewNullBackend(40, 6)
	_ = app.SetBackend(b)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	app.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after Shutdown")
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestNewConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[log\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(Options{ConfigPath: path})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Errorf("expected config InitError, got %v", err)
	}

	_, err = New(Options{Config: config.Default(), LogLevel: "shouty"})
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestNewLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "mathstorm.log")
	cfg.Log.Level = "debug"

	app, err := New(Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "bootstrap complete") {
		t.Errorf("expected bootstrap log, got %q", data)
	}
}

func TestApplyConfig(t *testing.T) {
	app, _ := newTestApp(t)

	cfg := config.Default()
	cfg.Editor.CaretGlyph = "_"
	cfg.Editor.FrameFormat = config.FrameNone
	app.ApplyConfig(cfg)

	if app.Config() != cfg {
		t.Error("expected config to be replaced")
	}
	if got := app.Engine().CaretStyle(); got.Glyph != "_" || got.Frame != "" {
		t.Errorf("unexpected caret style %+v", got)
	}
	if app.Logger().Level().String() != "DEBUG" {
		t.Errorf("log level override should survive reload, got %s", app.Logger().Level())
	}
}

func TestMetrics(t *testing.T) {
	app, _ := newTestApp(t)
	runSession(t, app, seq(runes("ab"), []backend.Event{key(backend.KeyLeft)})...)

	s := app.Metrics().Snapshot()
	if s.Inputs != 4 {
		t.Errorf("expected 4 inputs, got %d", s.Inputs)
	}
	if s.Intents[backend.IntentText] != 2 || s.Intents[backend.IntentLeft] != 1 || s.Intents[backend.IntentQuit] != 1 {
		t.Errorf("unexpected intent counts %v", s.Intents)
	}
	if s.MaxInput < s.AvgInput {
		t.Error("max input should not be below average")
	}
	if app.RenderStats().Submitted == 0 {
		t.Error("expected renders to be submitted")
	}
}

func TestOperationError(t *testing.T) {
	base := errors.New("boom")
	err := NewOperationError("insert", "frac", base)
	if err.Error() != "insert frac: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("expected to unwrap to base error")
	}
	if NewOperationError("commit", "", nil).Error() != "commit" {
		t.Error("expected bare op name")
	}
}
