package renderer

import (
	"io"
	"sync"
)

// Renderer receives markup to display.
//
// Render must not block for long; callers invoke it while holding their own
// locks. Wrap slow sinks in a Dispatcher.
type Renderer interface {
	Render(markup string)
}

// Func adapts an ordinary function to the Renderer interface.
type Func func(markup string)

// Render calls f(markup).
func (f Func) Render(markup string) {
	f(markup)
}

// Discard is a Renderer that drops all markup.
var Discard Renderer = Func(func(string) {})

// WriterSink writes each markup string as one line to an io.Writer.
type WriterSink struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Render writes markup followed by a newline.
// After the first write error further renders are dropped.
func (s *WriterSink) Render(markup string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, markup+"\n"); err != nil {
		s.err = err
	}
}

// Err returns the first write error, if any.
func (s *WriterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
