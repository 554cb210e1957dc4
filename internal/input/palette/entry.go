package palette

import (
	"fmt"

	"github.com/dshills/mathstorm/internal/engine/tree"
)

// Kind defines what an entry builds.
type Kind uint8

const (
	// KindSymbol builds a Symbol leaf.
	KindSymbol Kind = iota

	// KindTemplate builds a fixed-arity Template component.
	KindTemplate

	// KindMatrix builds a rows x cols Matrix component.
	KindMatrix
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindTemplate:
		return "template"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Category groups entries for display.
type Category string

// Entry categories.
const (
	CategoryGreek     Category = "greek"
	CategoryOperator  Category = "operator"
	CategoryRelation  Category = "relation"
	CategoryArrow     Category = "arrow"
	CategoryMisc      Category = "misc"
	CategoryFraction  Category = "fraction"
	CategoryScript    Category = "script"
	CategoryBracket   Category = "bracket"
	CategoryAccent    Category = "accent"
	CategoryFunction  Category = "function"
	CategoryBigOp     Category = "big-operator"
	CategoryMatrix    Category = "matrix"
	CategoryStyle     Category = "style"
	CategoryDecorated Category = "decorated-arrow"
)

// Entry describes one insertable palette item.
type Entry struct {
	// ID is the unique identifier (e.g. "frac").
	ID string

	// Title is the human-readable name.
	Title string

	// Category groups related entries.
	Category Category

	// Kind selects which component variant Build creates.
	Kind Kind

	// Literal is the markup of a KindSymbol entry.
	Literal string

	// Template is the markup template of a KindTemplate entry.
	Template *tree.Template

	// Env, Rows and Cols describe a KindMatrix entry.
	Env  string
	Rows int
	Cols int
}

// Arity returns the number of blocks the built component owns.
func (e *Entry) Arity() int {
	switch e.Kind {
	case KindTemplate:
		return e.Template.Arity
	case KindMatrix:
		return e.Rows * e.Cols
	default:
		return 0
	}
}

// Validate checks that the entry can build a component.
func (e *Entry) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: entry ID cannot be empty", ErrInvalidEntry)
	}
	switch e.Kind {
	case KindSymbol:
		if e.Literal == "" {
			return fmt.Errorf("%w: symbol %q has no literal", ErrInvalidEntry, e.ID)
		}
	case KindTemplate:
		if err := e.Template.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidEntry, e.ID, err)
		}
	case KindMatrix:
		if e.Rows < 1 || e.Cols < 1 {
			return fmt.Errorf("%w: matrix %q has dimensions %dx%d", ErrInvalidEntry, e.ID, e.Rows, e.Cols)
		}
	default:
		return fmt.Errorf("%w: %q has unknown kind %d", ErrInvalidEntry, e.ID, e.Kind)
	}
	return nil
}

// Build creates a detached component for this entry in expr.
func (e *Entry) Build(expr *tree.Expression) tree.NodeID {
	switch e.Kind {
	case KindTemplate:
		return expr.NewTemplate(e.Template)
	case KindMatrix:
		return expr.NewMatrix(e.Env, e.Rows, e.Cols)
	default:
		return expr.NewSymbol(e.Literal)
	}
}

// String returns a short description such as "frac (template/2)".
func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s/%d)", e.ID, e.Kind, e.Arity())
}

// symbol constructs a KindSymbol entry.
func symbol(id, title string, cat Category, literal string) *Entry {
	return &Entry{ID: id, Title: title, Category: cat, Kind: KindSymbol, Literal: literal}
}

// template constructs a KindTemplate entry.
func template(id, title string, cat Category, arity int, format string) *Entry {
	return &Entry{
		ID:       id,
		Title:    title,
		Category: cat,
		Kind:     KindTemplate,
		Template: &tree.Template{Name: id, Arity: arity, Format: format},
	}
}

// matrix constructs a KindMatrix entry.
func matrix(id, title, env string, rows, cols int) *Entry {
	return &Entry{
		ID:       id,
		Title:    title,
		Category: CategoryMatrix,
		Kind:     KindMatrix,
		Env:      env,
		Rows:     rows,
		Cols:     cols,
	}
}
