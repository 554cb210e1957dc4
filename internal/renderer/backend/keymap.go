package backend

import (
	"strings"
	"unicode"
)

// IntentKind identifies an edit intent produced by a key.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentText
	IntentLeft
	IntentRight
	IntentStart
	IntentEnd
	IntentDelete
	IntentPalette
	IntentCommit
	IntentClear
	IntentQuit
)

// String returns a string representation of the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentText:
		return "text"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentStart:
		return "start"
	case IntentEnd:
		return "end"
	case IntentDelete:
		return "delete"
	case IntentPalette:
		return "palette"
	case IntentCommit:
		return "commit"
	case IntentClear:
		return "clear"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent is an edit request derived from a key event.
type Intent struct {
	Kind IntentKind

	// Text is the character for IntentText.
	Text string
}

// textPunctuation are the non-alphanumeric runes typed straight into the
// expression.
const textPunctuation = "+-*/=<>()[]|!,.;:'"

// IsTextRune reports whether r is inserted as a Text component when typed.
func IsTextRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune(textPunctuation, r)
}

// Translate maps a key event to an edit intent.
func Translate(ev Event) Intent {
	if ev.Type != EventKey {
		return Intent{}
	}

	switch ev.Key {
	case KeyRune:
		if ev.Mod.Has(ModCtrl) || ev.Mod.Has(ModAlt) {
			return Intent{}
		}
		if ev.Rune == '\\' {
			return Intent{Kind: IntentPalette}
		}
		if IsTextRune(ev.Rune) {
			return Intent{Kind: IntentText, Text: string(ev.Rune)}
		}
		return Intent{}
	case KeyLeft:
		return Intent{Kind: IntentLeft}
	case KeyRight:
		return Intent{Kind: IntentRight}
	case KeyHome, KeyUp:
		return Intent{Kind: IntentStart}
	case KeyEnd, KeyDown:
		return Intent{Kind: IntentEnd}
	case KeyBackspace:
		return Intent{Kind: IntentDelete}
	case KeyEnter:
		return Intent{Kind: IntentCommit}
	case KeyCtrlL:
		return Intent{Kind: IntentClear}
	case KeyEscape, KeyCtrlC:
		return Intent{Kind: IntentQuit}
	default:
		return Intent{}
	}
}
