package tree

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Markup fragments shared by every variant.
const (
	matrixColSep = " & "
	matrixRowSep = ` \\ `
)

// Placeholder returns the markup for an empty block owned by a component of color c.
func Placeholder(c Color) string {
	if c == "" {
		return `\square`
	}
	return `\color{` + string(c) + `}{\square}`
}

// Markup returns the markup for the whole expression.
// It is a pure function of the tree contents.
func (e *Expression) Markup() string {
	var sb strings.Builder
	for _, id := range e.top {
		e.writeNode(&sb, id)
	}
	return strings.TrimSpace(sb.String())
}

// NodeMarkup returns the markup for a single component and its subtree.
func (e *Expression) NodeMarkup(id NodeID) string {
	var sb strings.Builder
	e.writeNode(&sb, id)
	return sb.String()
}

// BlockMarkup returns the markup for a single block.
func (e *Expression) BlockMarkup(b BlockID) string {
	var sb strings.Builder
	e.writeBlock(&sb, b)
	return sb.String()
}

func (e *Expression) writeNode(sb *strings.Builder, id NodeID) {
	c := e.comp(id)
	switch c.variant {
	case VariantText:
		sb.WriteString(c.literal)
	case VariantSymbol:
		sb.WriteString(c.literal)
		if endsWithControlWord(c.literal) {
			sb.WriteByte(' ')
		}
	case VariantTemplate, VariantFrame:
		e.writeTemplate(sb, c.tmpl.Format, c.blocks)
	case VariantMatrix:
		e.writeMatrix(sb, c.env, c.rows, c.cols, c.blocks)
	default:
		panic("tree: unknown component variant " + c.variant.String())
	}
}

func (e *Expression) writeBlock(sb *strings.Builder, b BlockID) {
	bk := e.blk(b)
	if len(bk.children) == 0 {
		sb.WriteString(Placeholder(e.comp(bk.owner).color))
		return
	}
	for _, child := range bk.children {
		e.writeNode(sb, child)
	}
}

// writeTemplate expands #N slot references in format with block markup.
func (e *Expression) writeTemplate(sb *strings.Builder, format string, blocks []BlockID) {
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch == '#' && i+1 < len(format) && format[i+1] >= '1' && format[i+1] <= '9' {
			e.writeBlock(sb, blocks[format[i+1]-'1'])
			i++
			continue
		}
		sb.WriteByte(ch)
	}
}

func (e *Expression) writeMatrix(sb *strings.Builder, env string, rows, cols int, blocks []BlockID) {
	sb.WriteString(`\begin{` + env + `}`)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			e.writeBlock(sb, blocks[i*cols+j])
			if j < cols-1 {
				sb.WriteString(matrixColSep)
			}
		}
		if i < rows-1 {
			sb.WriteString(matrixRowSep)
		}
	}
	sb.WriteString(`\end{` + env + `}`)
}

// endsWithControlWord reports whether s is a control word such as \alpha,
// which needs a separating space before any following letter.
func endsWithControlWord(s string) bool {
	if len(s) < 2 || s[0] != '\\' {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsLetter(r)
}
