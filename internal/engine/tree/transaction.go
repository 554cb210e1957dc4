package tree

// Transaction records temporary edits so they can be undone exactly.
//
// Begin snapshots the arena size; every edit made through the transaction
// pushes an undo step. Rollback replays the steps in reverse and truncates
// the arena, which releases any node allocated after Begin. Edits made
// outside the transaction while it is open are not tracked.
type Transaction struct {
	expr     *Expression
	comps    int
	blocks   int
	colorSeq int
	undo     []func()
	done     bool
}

// Begin starts a transaction on the expression.
func (e *Expression) Begin() *Transaction {
	return &Transaction{
		expr:     e,
		comps:    len(e.comps),
		blocks:   len(e.blocks),
		colorSeq: e.colorSeq,
	}
}

// InsertTop inserts id into the top-level sequence at pos.
func (t *Transaction) InsertTop(id NodeID, pos int) {
	e := t.expr
	if pos < 0 {
		pos = len(e.top)
	}
	e.Add(id, pos)
	t.undo = append(t.undo, func() { e.Remove(pos) })
}

// InsertChild inserts id into block b at pos.
func (t *Transaction) InsertChild(b BlockID, id NodeID, pos int) {
	e := t.expr
	if pos < 0 {
		pos = e.ChildCount(b)
	}
	e.AddChild(b, id, pos)
	t.undo = append(t.undo, func() { e.RemoveChild(b, pos) })
}

// WrapBlock surrounds block b with a frame component rendered through format
// (a one-slot template such as `\boxed{#1}`). The owner of b temporarily
// holds a wrapper block whose only child is the frame, and b is re-parented
// to the frame, which takes over the owner's color. Returns the frame
// component.
func (t *Transaction) WrapBlock(b BlockID, format string) NodeID {
	e := t.expr
	owner := e.Owner(b)
	slot := e.BlockIndex(b)

	wrapper := e.allocBlocks(owner, 1)[0]
	frame := e.newFrame(format, b, wrapper, e.comps[owner].color)
	e.blocks[wrapper].children = []NodeID{frame}
	e.comps[owner].blocks[slot] = wrapper
	e.blocks[b].owner = frame

	t.undo = append(t.undo, func() {
		e.comps[owner].blocks[slot] = b
		e.blocks[b].owner = owner
	})
	return frame
}

// Rollback undoes every edit made through the transaction and releases the
// nodes allocated since Begin. Safe to call more than once.
func (t *Transaction) Rollback() {
	if t.done {
		return
	}
	t.done = true
	e := t.expr
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	clear(e.comps[t.comps:])
	clear(e.blocks[t.blocks:])
	e.comps = e.comps[:t.comps]
	e.blocks = e.blocks[:t.blocks]
	e.colorSeq = t.colorSeq
}
