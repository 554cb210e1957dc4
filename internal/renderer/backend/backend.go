// Package backend provides the terminal surface the interactive editor
// draws on and the key events it reads back.
package backend

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the editor distinguishes.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Style names the role of drawn text; backends map roles to attributes.
type Style int

const (
	StyleDefault Style = iota
	StyleTitle
	StyleMarkup
	StyleStatus
	StylePrompt
	StyleCandidate
	StyleError
)

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// Clear clears the entire screen.
	Clear()

	// SetContent sets the cell at x, y. Combining runes may be nil.
	// Positions outside the screen are silently ignored.
	SetContent(x, y int, mainc rune, combc []rune, style Style)

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	// EventNone is returned once the backend is shut down.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// DrawString draws s at x, y clipped to width columns and returns the number
// of columns used. Grapheme clusters are kept whole.
func DrawString(b Backend, x, y, width int, s string, style Style) int {
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width {
			break
		}
		runes := g.Runes()
		b.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}

// WrapString splits s into lines of at most width columns.
func WrapString(s string, width int) []string {
	if width <= 0 || s == "" {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		used  int
	)
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width && used > 0 {
			lines = append(lines, line.String())
			line.Reset()
			used = 0
		}
		line.WriteString(g.Str())
		used += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// StringWidth returns the display width of s in columns.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// cell is one screen position in a NullBackend.
type cell struct {
	mainc rune
	combc []rune
	style Style
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]cell
	shows         int
	events        chan Event
	closed        bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = cell{mainc: ' '}
		}
	}
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = cell{mainc: ' '}
		}
	}
}

func (b *NullBackend) SetContent(x, y int, mainc rune, combc []rune, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell{mainc: mainc, combc: combc, style: style}
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) PollEvent() Event {
	ev, ok := <-b.events
	if !ok {
		return Event{Type: EventNone}
	}
	return ev
}

func (b *NullBackend) PostEvent(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Line returns row y with trailing blanks trimmed, for testing.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteRune(c.mainc)
		for _, r := range c.combc {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// StyleAt returns the style of the cell at x, y, for testing.
func (b *NullBackend) StyleAt(x, y int) Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x].style
	}
	return StyleDefault
}

// ShowCount returns how many times Show was called, for testing.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
