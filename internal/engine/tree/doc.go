// Package tree provides the document model for structured math expressions.
//
// An Expression is the root of the document. It owns an ordered sequence of
// top-level components and an arena that stores every Component and Block
// created while the expression is edited. Nodes refer to each other through
// NodeID and BlockID handles instead of pointers, so the Block <-> Component
// back-references never form pointer cycles.
//
// # Model
//
//   - Component: a typed node owning a fixed number of Blocks. Symbol and
//     Text components are leaves and own no blocks; Template components own
//     one to nine blocks bound to a markup Template; Matrix components own
//     rows*cols blocks laid out row-major; Frame components wrap one block and
//     exist only while caret markup is being produced.
//   - Block: an ordered content slot owned by exactly one Component. Its
//     children are components (Text leaves for typed characters).
//
// # Markup
//
// Markup is a pure recursive fold over the tree:
//
//	expr := tree.New()
//	frac := expr.NewTemplate(&tree.Template{Name: "frac", Arity: 2, Format: `\frac{#1}{#2}`})
//	expr.Add(frac, -1)
//	expr.AddChild(expr.Block(frac, 0), expr.NewText("x"), -1)
//	expr.Markup() // \frac{x}{\color{red}{\square}}
//
// An empty block renders as a colored placeholder square rather than an
// empty string, so every slot stays visible.
//
// # Transactions
//
// Temporary decorations (the caret glyph and the frame around the current
// block) are applied through a Transaction and rolled back before control
// returns to the caller:
//
//	txn := expr.Begin()
//	defer txn.Rollback()
//	txn.InsertChild(block, expr.NewSymbol("|"), 0)
//	txn.WrapBlock(block, `\boxed{#1}`)
//	return expr.Markup()
//
// # Thread Safety
//
// Expression is not safe for concurrent use. The engine package serializes
// all access to it.
package tree
