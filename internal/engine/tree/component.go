package tree

import "fmt"

// Variant identifies the kind of a component.
type Variant uint8

const (
	// VariantSymbol is a leaf carrying a literal markup string.
	VariantSymbol Variant = iota

	// VariantText is a leaf holding a single typed character or short run.
	VariantText

	// VariantTemplate owns a fixed number of blocks spliced into a Template.
	VariantTemplate

	// VariantMatrix owns rows*cols blocks laid out row-major.
	VariantMatrix

	// VariantFrame wraps a single block as a transient highlight.
	VariantFrame
)

// String returns a string representation of the variant.
func (v Variant) String() string {
	switch v {
	case VariantSymbol:
		return "symbol"
	case VariantText:
		return "text"
	case VariantTemplate:
		return "template"
	case VariantMatrix:
		return "matrix"
	case VariantFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether components of this variant have no navigable interior.
func (v Variant) IsLeaf() bool {
	return v == VariantSymbol || v == VariantText
}

// MaxArity is the largest number of blocks a template may own.
const MaxArity = 9

// Template is a markup template for a fixed-arity component.
//
// Format is emitted verbatim except for slot references #1 through #9, each
// replaced by the markup of the corresponding block. A slot may appear
// anywhere (or not at all); the block order used for navigation is always
// the slot number order.
type Template struct {
	// Name identifies the template (e.g. "frac").
	Name string

	// Arity is the number of blocks the component owns.
	Arity int

	// Format is the markup with #N slot references.
	Format string
}

// Validate checks that the arity is in range and every slot reference
// points at an owned block.
func (t *Template) Validate() error {
	if t == nil {
		return fmt.Errorf("template is nil")
	}
	if t.Arity < 1 || t.Arity > MaxArity {
		return fmt.Errorf("template %q: arity %d out of range [1,%d]", t.Name, t.Arity, MaxArity)
	}
	for i := 0; i < len(t.Format)-1; i++ {
		if t.Format[i] != '#' {
			continue
		}
		d := t.Format[i+1]
		if d < '1' || d > '9' {
			continue
		}
		if int(d-'0') > t.Arity {
			return fmt.Errorf("template %q: slot #%c exceeds arity %d", t.Name, d, t.Arity)
		}
		i++
	}
	return nil
}

// component is the arena record for a Component.
type component struct {
	variant Variant
	literal string    // Symbol and Text
	tmpl    *Template // Template and Frame
	env     string    // Matrix
	rows    int
	cols    int
	blocks  []BlockID
	parent  BlockID
	color   Color
	dead    bool
}

// block is the arena record for a Block.
type block struct {
	owner    NodeID
	children []NodeID
	dead     bool
}

// NewText creates a detached Text leaf holding s.
// Panics if s is empty.
func (e *Expression) NewText(s string) NodeID {
	if s == "" {
		panic("tree: text component requires a non-empty run")
	}
	return e.alloc(component{variant: VariantText, literal: s, parent: None})
}

// NewSymbol creates a detached Symbol leaf carrying literal markup.
func (e *Expression) NewSymbol(literal string) NodeID {
	return e.alloc(component{variant: VariantSymbol, literal: literal, parent: None})
}

// NewTemplate creates a detached template component with t.Arity empty blocks.
// Panics if the template is invalid.
func (e *Expression) NewTemplate(t *Template) NodeID {
	if err := t.Validate(); err != nil {
		panic("tree: " + err.Error())
	}
	id := e.alloc(component{
		variant: VariantTemplate,
		tmpl:    t,
		parent:  None,
		color:   e.nextColor(),
	})
	e.comps[id].blocks = e.allocBlocks(id, t.Arity)
	return id
}

// NewMatrix creates a detached matrix component with rows*cols empty blocks.
// env names the markup environment (e.g. "matrix", "pmatrix").
// Panics if either dimension is less than one.
func (e *Expression) NewMatrix(env string, rows, cols int) NodeID {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("tree: matrix dimensions %dx%d must be positive", rows, cols))
	}
	if env == "" {
		env = "matrix"
	}
	id := e.alloc(component{
		variant: VariantMatrix,
		env:     env,
		rows:    rows,
		cols:    cols,
		parent:  None,
		color:   e.nextColor(),
	})
	e.comps[id].blocks = e.allocBlocks(id, rows*cols)
	return id
}

// newFrame creates a frame component around an existing block.
// The caller is responsible for re-parenting the block. The frame carries
// color so that an empty framed block keeps its placeholder color.
func (e *Expression) newFrame(format string, inner BlockID, parent BlockID, color Color) NodeID {
	t := &Template{Name: "frame", Arity: 1, Format: format}
	if err := t.Validate(); err != nil {
		panic("tree: " + err.Error())
	}
	return e.alloc(component{
		variant: VariantFrame,
		tmpl:    t,
		blocks:  []BlockID{inner},
		parent:  parent,
		color:   color,
	})
}

func (e *Expression) nextColor() Color {
	c := e.colors(e.colorSeq)
	e.colorSeq++
	return c
}
