package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/mathstorm/internal/engine/cursor"
	"github.com/dshills/mathstorm/internal/engine/history"
	"github.com/dshills/mathstorm/internal/engine/tree"
	"github.com/dshills/mathstorm/internal/input/palette"
	"github.com/dshills/mathstorm/internal/logging"
	"github.com/dshills/mathstorm/internal/renderer"
)

// Re-export commonly used types for convenience.
type (
	// Address is a cursor position within a sequence.
	Address = cursor.Address

	// CursorState is the comparable cursor position.
	CursorState = cursor.State

	// CaretStyle configures caret decoration.
	CaretStyle = cursor.CaretStyle

	// Entry is a committed expression.
	Entry = history.Entry
)

// Snapshot is a consistent view of the engine at one instant.
type Snapshot struct {
	// Markup is the undecorated expression markup.
	Markup string

	// CaretMarkup is the markup with the caret and frame spliced in.
	CaretMarkup string

	// Cursor is the cursor position.
	Cursor CursorState

	// Depth is the cursor nesting depth (0 at top level).
	Depth int

	// Empty reports whether the expression has no components.
	Empty bool

	// Committed is the number of entries in the history.
	Committed int
}

// Engine is the main facade for the math editing engine.
// It combines the document tree, cursor, palette and commit history into a
// unified, thread-safe API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	expr    *tree.Expression
	cur     *cursor.Cursor
	palette *palette.Palette
	history *history.History

	// Collaborators
	renderer renderer.Renderer
	logger   *logging.Logger

	// Configuration
	caret      cursor.CaretStyle
	colors     tree.ColorFunc
	maxHistory int
}

// New creates a new engine with an empty expression.
func New(opts ...Option) *Engine {
	e := &Engine{
		caret:      cursor.DefaultCaretStyle(),
		colors:     tree.CycleColors,
		maxHistory: DefaultMaxHistory,
		renderer:   renderer.Discard,
		logger:     logging.Null(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.palette == nil {
		e.palette = palette.Builtin()
	}
	e.history = history.New(e.maxHistory)
	e.logger = e.logger.WithComponent("engine")
	e.resetLocked()

	return e
}

// resetLocked starts a fresh expression. Caller must hold the write lock.
func (e *Engine) resetLocked() {
	e.expr = tree.New(tree.WithColors(e.colors))
	e.cur = cursor.New(e.expr)
}

// notifyLocked hands the caret markup to the renderer.
// Caller must hold the write lock.
func (e *Engine) notifyLocked() {
	e.renderer.Render(e.cur.CaretMarkup(e.caret))
}

// ============================================================================
// Reading
// ============================================================================

// Markup returns the undecorated markup of the current expression.
func (e *Engine) Markup() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.expr.Markup()
}

// CaretMarkup returns the markup with the caret glyph at the cursor and the
// current block framed. The document is unchanged afterwards.
func (e *Engine) CaretMarkup() string {
	// Caret decoration edits the live tree; readers must be excluded.
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur.CaretMarkup(e.caret)
}

// IsEmpty reports whether the current expression has no components.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.expr.IsEmpty()
}

// Cursor returns the current cursor position.
func (e *Engine) Cursor() CursorState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.State()
}

// Depth returns the cursor nesting depth.
func (e *Engine) Depth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.Depth()
}

// Snapshot returns the markup, caret markup and cursor position together.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Markup:      e.expr.Markup(),
		CaretMarkup: e.cur.CaretMarkup(e.caret),
		Cursor:      e.cur.State(),
		Depth:       e.cur.Depth(),
		Empty:       e.expr.IsEmpty(),
		Committed:   e.history.Len(),
	}
}

// CaretStyle returns the caret decoration used by CaretMarkup.
func (e *Engine) CaretStyle() CaretStyle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.caret
}

// SetCaretStyle changes the caret decoration and re-renders.
func (e *Engine) SetCaretStyle(style CaretStyle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caret = style
	e.notifyLocked()
}

// Palette returns the palette used by InsertSymbol.
func (e *Engine) Palette() *palette.Palette {
	return e.palette
}

// ============================================================================
// Editing
// ============================================================================

// InsertText inserts each character of s as a Text component.
func (e *Engine) InsertText(s string) error {
	if s == "" {
		return ErrEmptyText
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range s {
		e.cur.InsertText(string(r))
	}
	e.logger.Debug("insert text %q at %s", s, e.cur.State())
	e.notifyLocked()
	return nil
}

// InsertSymbol builds palette entry id and inserts it at the cursor.
// Containers are entered at the start of their first block.
func (e *Engine) InsertSymbol(id string) error {
	entry, ok := e.palette.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSymbol, id)
	}
	return e.insertEntry(entry)
}

// InsertComponent inserts a component described by an ad-hoc entry that
// need not be registered in the palette.
func (e *Engine) InsertComponent(entry *palette.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidComponent, err)
	}
	return e.insertEntry(entry)
}

func (e *Engine) insertEntry(entry *palette.Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cur.InsertComponent(entry.Build(e.expr))
	e.logger.Debug("insert %s at %s", entry, e.cur.State())
	e.notifyLocked()
	return nil
}

// DeleteBackward removes the element to the left of the cursor, entering
// non-empty containers instead of removing them.
// Returns false when nothing changed.
func (e *Engine) DeleteBackward() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.cur.DeleteBackward() {
		return false
	}
	e.logger.Debug("delete backward to %s", e.cur.State())
	e.notifyLocked()
	return true
}

// Clear discards the current expression and starts a fresh one. A
// non-empty expression is pushed to the history first; an empty one is
// dropped, matching Commit's ErrEmptyExpression rule.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.expr.IsEmpty() {
		entry := e.history.Push(e.expr)
		e.logger.Info("cleared %s: %s", entry.ID, entry.Markup)
	} else {
		e.logger.Debug("clear")
	}
	e.resetLocked()
	e.notifyLocked()
}

// ============================================================================
// Navigation
// ============================================================================

// SeekLeft moves the cursor one step left.
// Returns false at the start of the document.
func (e *Engine) SeekLeft() bool {
	return e.move("left", (*cursor.Cursor).SeekLeft)
}

// SeekRight moves the cursor one step right.
// Returns false at the end of the document.
func (e *Engine) SeekRight() bool {
	return e.move("right", (*cursor.Cursor).SeekRight)
}

// SeekStart moves the cursor to the start of the document and returns the
// number of steps taken.
func (e *Engine) SeekStart() int {
	return e.moveAll("start", (*cursor.Cursor).SeekStart)
}

// SeekEnd moves the cursor to the end of the document and returns the
// number of steps taken.
func (e *Engine) SeekEnd() int {
	return e.moveAll("end", (*cursor.Cursor).SeekEnd)
}

func (e *Engine) move(name string, step func(*cursor.Cursor) bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !step(e.cur) {
		return false
	}
	e.logger.Debug("seek %s to %s", name, e.cur.State())
	e.notifyLocked()
	return true
}

func (e *Engine) moveAll(name string, seek func(*cursor.Cursor) int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := seek(e.cur)
	if n > 0 {
		e.logger.Debug("seek %s: %d steps", name, n)
		e.notifyLocked()
	}
	return n
}

// ============================================================================
// History
// ============================================================================

// Commit pushes the current expression to the history and starts a fresh one.
func (e *Engine) Commit() (*Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.expr.IsEmpty() {
		return nil, ErrEmptyExpression
	}

	entry := e.history.Push(e.expr)
	e.logger.Info("committed %s: %s", entry.ID, entry.Markup)
	e.resetLocked()
	e.notifyLocked()
	return entry, nil
}

// History returns the committed expressions, oldest first.
func (e *Engine) History() []*Entry {
	return e.history.Entries()
}

// LastCommitted returns the most recent committed expression.
func (e *Engine) LastCommitted() (*Entry, error) {
	return e.history.Last()
}
