package app

import (
	"fmt"
	"time"

	"github.com/dshills/mathstorm/internal/renderer/backend"
	"github.com/dshills/mathstorm/internal/script"
)

// MaxCandidates is the number of palette matches shown while prompting.
const MaxCandidates = 5

// promptState is the palette prompt opened by a backslash.
type promptState struct {
	active bool
	query  string
}

// handleKey translates a key event and applies the resulting intent.
// Returns ErrQuit if the application should exit.
func (app *Application) handleKey(ev backend.Event) error {
	intent := backend.Translate(ev)
	if intent.Kind == backend.IntentNone {
		return nil
	}

	start := time.Now()
	defer func() {
		app.metrics.RecordInput(intent.Kind, time.Since(start))
	}()

	if app.prompt.active {
		app.handlePromptIntent(intent)
		return nil
	}
	return app.handleIntent(intent)
}

// handleIntent applies an intent to the engine.
func (app *Application) handleIntent(intent backend.Intent) error {
	e := app.engine
	app.message = ""

	switch intent.Kind {
	case backend.IntentText:
		if err := e.InsertText(intent.Text); err != nil {
			app.fail(NewOperationError("insert", intent.Text, err))
			break
		}
		app.record(script.OpText, intent.Text)
	case backend.IntentLeft:
		e.SeekLeft()
		app.record(script.OpLeft, "")
	case backend.IntentRight:
		e.SeekRight()
		app.record(script.OpRight, "")
	case backend.IntentStart:
		e.SeekStart()
		app.record(script.OpStart, "")
	case backend.IntentEnd:
		e.SeekEnd()
		app.record(script.OpEnd, "")
	case backend.IntentDelete:
		e.DeleteBackward()
		app.record(script.OpDelete, "")
	case backend.IntentClear:
		e.Clear()
		app.record(script.OpClear, "")
	case backend.IntentCommit:
		entry, err := e.Commit()
		if err != nil {
			app.fail(NewOperationError("commit", "", err))
			break
		}
		app.record(script.OpCommit, "")
		app.message = "committed " + entry.Markup
	case backend.IntentPalette:
		app.prompt = promptState{active: true}
		app.updatePrompt()
		return nil
	case backend.IntentQuit:
		return ErrQuit
	}

	app.view.SetStatus(app.status())
	return nil
}

// handlePromptIntent edits the palette query or resolves it.
func (app *Application) handlePromptIntent(intent backend.Intent) {
	switch intent.Kind {
	case backend.IntentText:
		app.prompt.query += intent.Text
	case backend.IntentDelete:
		if app.prompt.query == "" {
			app.closePrompt()
			return
		}
		q := []rune(app.prompt.query)
		app.prompt.query = string(q[:len(q)-1])
	case backend.IntentCommit:
		app.resolvePrompt()
		return
	case backend.IntentPalette, backend.IntentQuit:
		app.closePrompt()
		return
	default:
		return
	}
	app.updatePrompt()
}

// resolvePrompt inserts the best palette match for the query.
func (app *Application) resolvePrompt() {
	query := app.prompt.query
	app.prompt = promptState{}
	app.message = ""

	results := app.engine.Palette().Search(query, 1)
	if len(results) == 0 {
		app.message = fmt.Sprintf(`no match for \%s`, query)
	} else if err := app.engine.InsertSymbol(results[0].Entry.ID); err != nil {
		app.fail(NewOperationError("insert", results[0].Entry.ID, err))
	} else {
		app.record(script.OpInsert, results[0].Entry.ID)
	}

	app.view.ClosePrompt()
	app.view.SetStatus(app.status())
}

func (app *Application) closePrompt() {
	app.prompt = promptState{}
	app.view.ClosePrompt()
}

func (app *Application) updatePrompt() {
	results := app.engine.Palette().Search(app.prompt.query, MaxCandidates)
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Entry.ID
	}
	app.view.SetPrompt(app.prompt.query, ids)
}

func (app *Application) record(op script.Op, arg string) {
	app.recorder.Record(script.Step{Op: op, Arg: arg, Count: 1})
}

// fail logs err and shows it on the status line.
func (app *Application) fail(err error) {
	app.logger.Warn("%v", err)
	app.message = err.Error()
}

// status is the status line text.
func (app *Application) status() string {
	if app.message != "" {
		return app.message
	}
	return fmt.Sprintf("depth %d  committed %d", app.engine.Depth(), len(app.engine.History()))
}
