// Package engine provides the structured math editing engine for mathstorm.
//
// The engine package serves as the main facade, combining the document tree,
// the cursor state machine, the palette of insertable components and the
// commit history into a single thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - tree: arena-backed document tree and markup serialization
//   - cursor: cursor state machine and caret serialization
//   - history: bounded list of committed expressions
//
// The palette lives in internal/input/palette and the render sink in
// internal/renderer.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a shared lock; edits,
// including CaretMarkup which decorates the live tree and rolls the
// decoration back, take the exclusive lock.
//
// # Basic Usage
//
//	e := engine.New()
//
//	e.InsertText("a")
//	e.InsertSymbol("frac")  // cursor enters the numerator
//	e.InsertText("x")
//	e.SeekRight()           // to the denominator
//	e.InsertText("y")
//
//	e.Markup()      // a\frac{x}{y}
//	e.CaretMarkup() // a\frac{x}{\boxed{y\color{red}{|}}}
//
// # Rendering
//
// After every edit that changes the document or the cursor, the engine
// passes the caret markup to its Renderer. Wrap slow sinks in a
// renderer.Dispatcher so edits never wait on the display:
//
//	d := renderer.NewDispatcher(sink)
//	_ = d.Start()
//	e := engine.New(engine.WithRenderer(d))
//
// # History
//
// Commit pushes the current expression to the history and starts a fresh
// one:
//
//	entry, err := e.Commit()
//	fmt.Println(entry.ID, entry.Markup)
package engine
