// Package cursor provides the insertion point for structured expression editing.
//
// The cursor package handles:
//
//   - Explicit gap/element addressing with the Address type
//   - A single Cursor that maps one linear editing position onto the
//     expression tree
//   - Insertion, backspace deletion and left/right navigation across
//     arbitrarily deep nesting
//   - Caret markup: the expression markup with a visible caret and the
//     current block outlined
//
// Address Model:
//
// Addresses index the sequence the cursor is currently in (the top-level
// sequence or the children of the current block):
//   - Gap(i): between element i-1 and element i (the half-integer i-0.5).
//     Gaps are the only stable resting addresses.
//   - On(i): on top of element i. While the cursor is inside a component,
//     the top-level address is On(index of the enclosing top-level component).
//
// Navigation Rules:
//
//   - Leaves (Symbol, Text) are always stepped over, never entered.
//   - Moving into a container enters its nearest block at the near edge.
//   - Moving past a block edge steps to the adjacent sibling block of the
//     same component, or ascends to the gap beside the component.
//   - Requests past either end of the document are no-ops.
//
// Basic usage:
//
//	expr := tree.New()
//	c := cursor.New(expr)
//	c.InsertText("a")
//	c.InsertComponent(expr.NewTemplate(frac)) // cursor now in the numerator
//	c.InsertText("x")
//	c.SeekRight()                             // denominator
//	c.CaretMarkup(cursor.DefaultCaretStyle())
//
// Thread Safety:
//
// Cursor is not thread-safe. The engine package serializes access.
package cursor
