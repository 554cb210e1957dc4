package cursor

import "github.com/dshills/mathstorm/internal/engine/tree"

// Default caret decoration.
const (
	DefaultCaretGlyph  = `\color{red}{|}`
	DefaultFrameFormat = `\boxed{#1}`
)

// CaretStyle configures the decoration spliced in by CaretMarkup.
type CaretStyle struct {
	// Glyph is the literal markup of the caret.
	Glyph string

	// Frame is a one-slot template (e.g. `\boxed{#1}`) wrapped around the
	// block containing the cursor. Empty disables the frame.
	Frame string
}

// DefaultCaretStyle returns the default caret decoration.
func DefaultCaretStyle() CaretStyle {
	return CaretStyle{
		Glyph: DefaultCaretGlyph,
		Frame: DefaultFrameFormat,
	}
}

// CaretMarkup returns the expression markup with the caret glyph at the
// cursor and the current block outlined.
//
// The decoration is applied to the live tree inside a transaction and rolled
// back before returning, so the plain markup, every parent link and the
// cursor's own fields are unchanged afterwards.
func (c *Cursor) CaretMarkup(style CaretStyle) string {
	txn := c.expr.Begin()
	defer txn.Rollback()

	caret := c.expr.NewSymbol(style.Glyph)
	if c.block == tree.None {
		txn.InsertTop(caret, c.position.Right())
		return c.expr.Markup()
	}

	txn.InsertChild(c.block, caret, c.child.Right())
	if style.Frame != "" {
		txn.WrapBlock(c.block, style.Frame)
	}
	return c.expr.Markup()
}
