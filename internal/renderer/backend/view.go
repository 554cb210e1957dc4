package backend

import (
	"strings"
	"sync"
)

// View lays out the editor screen on a Backend:
//
//	row 0       title
//	row 2..     caret markup, wrapped to the screen width
//	row h-2     palette candidates (while prompting)
//	row h-1     status line, or the palette prompt
//
// View implements the renderer's Render method so it can sit behind a
// dispatcher.
type View struct {
	mu      sync.Mutex
	backend Backend

	title      string
	markup     string
	status     string
	prompting  bool
	query      string
	candidates []string
}

// NewView creates a view drawing on b.
func NewView(b Backend, title string) *View {
	return &View{backend: b, title: title}
}

// Render replaces the displayed markup and redraws.
func (v *View) Render(markup string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.markup = markup
	v.drawLocked()
}

// SetStatus sets the status line and redraws.
func (v *View) SetStatus(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = status
	v.drawLocked()
}

// SetPrompt shows the palette prompt with the current query and candidates.
func (v *View) SetPrompt(query string, candidates []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prompting = true
	v.query = query
	v.candidates = candidates
	v.drawLocked()
}

// ClosePrompt hides the palette prompt.
func (v *View) ClosePrompt() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prompting = false
	v.query = ""
	v.candidates = nil
	v.drawLocked()
}

// Redraw redraws the current state, e.g. after a resize.
func (v *View) Redraw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.drawLocked()
}

// Markup returns the markup last rendered.
func (v *View) Markup() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.markup
}

func (v *View) drawLocked() {
	b := v.backend
	w, h := b.Size()
	if w <= 0 || h <= 0 {
		return
	}

	b.Clear()
	DrawString(b, 0, 0, w, v.title, StyleTitle)

	// Rows reserved below the markup: candidates and status/prompt.
	bottom := h - 2
	row := 2
	for _, line := range WrapString(v.markup, w) {
		if row >= bottom {
			break
		}
		DrawString(b, 0, row, w, line, StyleMarkup)
		row++
	}

	if v.prompting {
		if h >= 2 {
			DrawString(b, 0, h-2, w, strings.Join(v.candidates, "  "), StyleCandidate)
		}
		DrawString(b, 0, h-1, w, `\`+v.query, StylePrompt)
	} else {
		DrawString(b, 0, h-1, w, v.status, StyleStatus)
	}
	b.Show()
}
