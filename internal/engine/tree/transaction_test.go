package tree

import (
	"slices"
	"testing"
)

// snapshot captures everything a transaction must restore.
type snapshot struct {
	markup   string
	comps    int
	blocks   int
	parents  []BlockID
	owners   []NodeID
	colorSeq int
}

func takeSnapshot(e *Expression) snapshot {
	s := snapshot{
		markup:   e.Markup(),
		comps:    len(e.comps),
		blocks:   len(e.blocks),
		colorSeq: e.colorSeq,
	}
	for _, c := range e.comps {
		s.parents = append(s.parents, c.parent)
	}
	for _, b := range e.blocks {
		s.owners = append(s.owners, b.owner)
	}
	return s
}

func (s snapshot) equal(o snapshot) bool {
	return s.markup == o.markup &&
		s.comps == o.comps &&
		s.blocks == o.blocks &&
		s.colorSeq == o.colorSeq &&
		slices.Equal(s.parents, o.parents) &&
		slices.Equal(s.owners, o.owners)
}

func TestTransactionWrapAndRollback(t *testing.T) {
	e := New()
	f := e.NewTemplate(fracTmpl)
	e.Add(f, -1)
	num := e.Block(f, 0)
	e.AddChild(num, e.NewText("x"), -1)

	before := takeSnapshot(e)

	txn := e.Begin()
	txn.InsertChild(num, e.NewSymbol("|"), 1)
	frame := txn.WrapBlock(num, `\boxed{#1}`)

	if e.Owner(num) != frame {
		t.Errorf("wrapped block should be owned by the frame")
	}
	want := `\frac{\boxed{x|}}{\color{red}{\square}}`
	if got := e.Markup(); got != want {
		t.Errorf("expected decorated markup %q, got %q", want, got)
	}

	txn.Rollback()

	after := takeSnapshot(e)
	if !before.equal(after) {
		t.Errorf("rollback did not restore the tree:\nbefore %+v\nafter  %+v", before, after)
	}
	if e.Owner(num) != f {
		t.Errorf("block owner not restored, got %d", e.Owner(num))
	}
}

func TestTransactionWrapEmptyBlockKeepsColor(t *testing.T) {
	e := New()
	f := e.NewTemplate(fracTmpl)
	e.Add(f, -1)
	num := e.Block(f, 0)

	before := takeSnapshot(e)

	txn := e.Begin()
	txn.WrapBlock(num, `\boxed{#1}`)

	want := `\frac{\boxed{\color{red}{\square}}}{\color{red}{\square}}`
	if got := e.Markup(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	txn.Rollback()
	if after := takeSnapshot(e); !after.equal(before) {
		t.Errorf("rollback did not restore the tree: %+v vs %+v", after, before)
	}
}

func TestTransactionInsertTop(t *testing.T) {
	e := New()
	e.Add(e.NewText("a"), -1)
	e.Add(e.NewText("b"), -1)
	before := takeSnapshot(e)

	txn := e.Begin()
	txn.InsertTop(e.NewSymbol("|"), 1)
	if got := e.Markup(); got != "a|b" {
		t.Errorf("expected 'a|b', got %q", got)
	}
	txn.Rollback()

	if !before.equal(takeSnapshot(e)) {
		t.Error("rollback did not restore the top-level sequence")
	}
}

func TestTransactionRollbackTwice(t *testing.T) {
	e := New()
	txn := e.Begin()
	txn.InsertTop(e.NewText("a"), -1)
	txn.Rollback()
	txn.Rollback()

	if e.Len() != 0 {
		t.Errorf("expected empty expression, got %d components", e.Len())
	}
	if len(e.comps) != 0 {
		t.Errorf("expected arena truncated, got %d records", len(e.comps))
	}
}

func TestTransactionInsertAppend(t *testing.T) {
	e := New()
	s := e.NewTemplate(sqrtTmpl)
	e.Add(s, -1)
	b := e.Block(s, 0)
	e.AddChild(b, e.NewText("2"), -1)

	txn := e.Begin()
	txn.InsertChild(b, e.NewSymbol("|"), -1)
	if got := e.Markup(); got != `\sqrt{2|}` {
		t.Errorf("expected caret appended, got %q", got)
	}
	txn.Rollback()

	if got := e.Markup(); got != `\sqrt{2}` {
		t.Errorf("expected restored markup, got %q", got)
	}
}
