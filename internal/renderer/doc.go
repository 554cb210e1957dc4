// Package renderer delivers markup to whatever displays it.
//
// The engine never waits on a display. Every edit produces a fresh caret
// markup string and hands it to a Renderer; what happens next is up to the
// sink. Sinks in this package:
//
//   - WriterSink writes one markup line per render to an io.Writer
//   - Func adapts a plain function
//   - Discard drops everything
//
// Dispatcher sits between the engine and a slow sink. It keeps only the
// most recent markup: a submit that arrives while an earlier one is still
// pending replaces it, so a sink that falls behind skips straight to the
// latest state instead of replaying every keystroke.
//
// Usage:
//
//	d := renderer.NewDispatcher(renderer.NewWriterSink(os.Stdout))
//	_ = d.Start()
//	defer d.Stop(context.Background())
//	eng := engine.New(engine.WithRenderer(d))
//
// The terminal host lives in the backend subpackage.
package renderer
