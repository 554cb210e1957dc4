package engine

import (
	"github.com/dshills/mathstorm/internal/engine/cursor"
	"github.com/dshills/mathstorm/internal/engine/tree"
	"github.com/dshills/mathstorm/internal/input/palette"
	"github.com/dshills/mathstorm/internal/logging"
	"github.com/dshills/mathstorm/internal/renderer"
)

// Default configuration values.
const (
	DefaultMaxHistory = 100
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithPalette sets the palette used by InsertSymbol.
func WithPalette(p *palette.Palette) Option {
	return func(e *Engine) {
		if p != nil {
			e.palette = p
		}
	}
}

// WithRenderer sets the sink notified with caret markup after each edit.
func WithRenderer(r renderer.Renderer) Option {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCaretStyle sets the caret decoration used by CaretMarkup.
func WithCaretStyle(style cursor.CaretStyle) Option {
	return func(e *Engine) {
		e.caret = style
	}
}

// WithMaxHistory sets the maximum number of committed expressions kept.
func WithMaxHistory(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxHistory = max
		}
	}
}

// WithColors sets the placeholder color scheme for new expressions.
func WithColors(fn tree.ColorFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.colors = fn
		}
	}
}
