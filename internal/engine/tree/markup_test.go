package tree

import (
	"testing"
)

func TestMarkupEmptyBlocksRenderPlaceholders(t *testing.T) {
	e := New()
	f := e.NewTemplate(fracTmpl)
	e.Add(f, -1)

	want := `\frac{\color{red}{\square}}{\color{red}{\square}}`
	if got := e.Markup(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkupTemplateSlots(t *testing.T) {
	e := New(WithColors(SingleColor("blue")))

	tests := []struct {
		name string
		tmpl *Template
		fill []string
		want string
	}{
		{"frac filled", fracTmpl, []string{"1", "2"}, `\frac{1}{2}`},
		{"nroot partially filled", nrootTmpl, []string{"3", ""}, `\sqrt[3]{\color{blue}{\square}}`},
		{"sum", sumTmpl, []string{"i", "n", "i"}, `\sum_{i}^{n}i`},
		{"slots out of order", swappedSub, []string{"a", "b"}, `{}_{b}^{a}`},
	}

	for _, tt := range tests {
		id := e.NewTemplate(tt.tmpl)
		for i, s := range tt.fill {
			if s != "" {
				e.AddChild(e.Block(id, i), e.NewText(s), -1)
			}
		}
		if got := e.NodeMarkup(id); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestMarkupEmptyMatrix(t *testing.T) {
	e := New(WithColors(SingleColor("teal")))
	m := e.NewMatrix("matrix", 2, 2)
	e.Add(m, -1)

	p := `\color{teal}{\square}`
	want := `\begin{matrix}` + p + ` & ` + p + ` \\ ` + p + ` & ` + p + `\end{matrix}`
	if got := e.Markup(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkupMatrixRowMajor(t *testing.T) {
	e := New()
	m := e.NewMatrix("pmatrix", 2, 3)
	e.Add(m, -1)
	for i, s := range []string{"a", "b", "c", "d", "e", "f"} {
		e.AddChild(e.Block(m, i), e.NewText(s), -1)
	}

	want := `\begin{pmatrix}a & b & c \\ d & e & f\end{pmatrix}`
	if got := e.Markup(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkupSymbolSpacing(t *testing.T) {
	e := New()
	e.Add(e.NewSymbol(`\alpha`), -1)
	e.Add(e.NewText("x"), -1)
	e.Add(e.NewSymbol(`\{`), -1)
	e.Add(e.NewText("y"), -1)
	e.Add(e.NewSymbol(`\pi`), -1)

	want := `\alpha x\{y\pi`
	if got := e.Markup(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkupDeterministic(t *testing.T) {
	e := New()
	f := e.NewTemplate(fracTmpl)
	e.Add(e.NewText("a"), -1)
	e.Add(f, -1)
	e.AddChild(e.Block(f, 0), e.NewSymbol(`\beta`), -1)

	first := e.Markup()
	second := e.Markup()
	if first != second {
		t.Errorf("markup not deterministic: %q vs %q", first, second)
	}
}

func TestMarkupEmptyExpression(t *testing.T) {
	if got := New().Markup(); got != "" {
		t.Errorf("expected empty markup, got %q", got)
	}
}

func TestEndsWithControlWord(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`\alpha`, true},
		{`\{`, false},
		{`\,`, false},
		{`+`, false},
		{`\`, false},
		{`x`, false},
		{`\color{red}{|}`, false},
	}

	for _, tt := range tests {
		if got := endsWithControlWord(tt.in); got != tt.want {
			t.Errorf("endsWithControlWord(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
