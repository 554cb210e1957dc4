package cursor

import (
	"fmt"

	"github.com/dshills/mathstorm/internal/engine/tree"
)

// NodeID is an alias for tree.NodeID for convenience.
type NodeID = tree.NodeID

// BlockID is an alias for tree.BlockID for convenience.
type BlockID = tree.BlockID

// State is a comparable snapshot of the cursor's address fields.
type State struct {
	Component NodeID
	Block     BlockID
	Position  Address
	Child     Address
}

// String returns a string representation of the state.
func (s State) String() string {
	if s.Block == tree.None {
		return fmt.Sprintf("Cursor(top %s)", s.Position)
	}
	return fmt.Sprintf("Cursor(top %s, component %d, block %d, child %s)",
		s.Position, s.Component, s.Block, s.Child)
}

// Cursor is the single insertion point of an expression.
//
// At top level component and block are tree.None and position is a gap in
// the top-level sequence. Inside a component, block is the current block,
// child is a gap among its children and position is On the enclosing
// top-level component.
type Cursor struct {
	expr      *tree.Expression
	component NodeID
	block     BlockID
	position  Address
	child     Address
}

// New creates a cursor at the start of expr.
func New(expr *tree.Expression) *Cursor {
	return &Cursor{
		expr:      expr,
		component: tree.None,
		block:     tree.None,
		position:  Gap(0),
		child:     Gap(0),
	}
}

// Expression returns the expression the cursor edits.
func (c *Cursor) Expression() *tree.Expression {
	return c.expr
}

// State returns a snapshot of the cursor's address fields.
func (c *Cursor) State() State {
	return State{
		Component: c.component,
		Block:     c.block,
		Position:  c.position,
		Child:     c.child,
	}
}

// Component returns the component the cursor is inside, or tree.None.
func (c *Cursor) Component() NodeID {
	return c.component
}

// Block returns the block the cursor is inside, or tree.None.
func (c *Cursor) Block() BlockID {
	return c.block
}

// Position returns the top-level address.
func (c *Cursor) Position() Address {
	return c.position
}

// Child returns the address within the current block.
func (c *Cursor) Child() Address {
	return c.child
}

// TopLevel reports whether the cursor is in the top-level sequence.
func (c *Cursor) TopLevel() bool {
	return c.block == tree.None
}

// Depth returns how many components enclose the cursor.
func (c *Cursor) Depth() int {
	if c.component == tree.None {
		return 0
	}
	return c.expr.Depth(c.component) + 1
}

// AtStart reports whether the cursor is at the leftmost address of the document.
func (c *Cursor) AtStart() bool {
	return c.block == tree.None && c.position.Left() < 0
}

// AtEnd reports whether the cursor is at the rightmost address of the document.
func (c *Cursor) AtEnd() bool {
	return c.block == tree.None && c.position.Right() >= c.expr.Len()
}

// Markup returns the expression markup without decoration.
func (c *Cursor) Markup() string {
	return c.expr.Markup()
}

// ============================================================================
// Insertion
// ============================================================================

// InsertText inserts ch as a Text leaf at the cursor and steps past it.
// Returns false if ch is empty.
func (c *Cursor) InsertText(ch string) bool {
	if ch == "" {
		return false
	}
	c.insertLeaf(c.expr.NewText(ch))
	return true
}

// InsertComponent inserts a detached component at the cursor.
// Leaves are stepped over; containers are entered at the start of their
// first block.
func (c *Cursor) InsertComponent(id NodeID) bool {
	if c.expr.IsLeaf(id) {
		c.insertLeaf(id)
		return true
	}
	idx := c.place(id)
	c.descend(id, idx, true)
	return true
}

// place inserts id at the current gap and returns its index.
func (c *Cursor) place(id NodeID) int {
	if c.block == tree.None {
		idx := c.position.Right()
		c.expr.Add(id, idx)
		return idx
	}
	idx := c.child.Right()
	c.expr.AddChild(c.block, id, idx)
	return idx
}

func (c *Cursor) insertLeaf(id NodeID) {
	c.place(id)
	if c.block == tree.None {
		c.position = c.position.Next()
	} else {
		c.child = c.child.Next()
	}
}

// ============================================================================
// Deletion
// ============================================================================

// DeleteBackward removes the element to the left of the cursor.
//
// Only leaves and empty components are ever removed. A non-empty container
// to the left is entered at its rightmost address instead, and backspace at
// the start of a block steps to the previous sibling block. Returns false
// when nothing changed.
func (c *Cursor) DeleteBackward() bool {
	if c.block == tree.None {
		i := c.position.Left()
		if i < 0 {
			return false
		}
		id := c.expr.At(i)
		if c.expr.IsLeaf(id) {
			c.expr.Free(c.expr.Remove(i))
			c.position = c.position.Prev()
			return true
		}
		c.descend(id, i, false)
		return true
	}

	if c.expr.ComponentEmpty(c.component) {
		c.deleteComponent()
		return true
	}

	i := c.child.Left()
	if i < 0 {
		bi := c.expr.BlockIndex(c.block)
		if bi == 0 {
			return false
		}
		c.block = c.expr.Block(c.component, bi-1)
		c.child = Gap(c.expr.ChildCount(c.block))
		return true
	}

	id := c.expr.ChildAt(c.block, i)
	if c.expr.IsLeaf(id) {
		c.expr.Free(c.expr.RemoveChild(c.block, i))
		c.child = c.child.Prev()
		return true
	}
	c.descend(id, i, false)
	return true
}

// deleteComponent removes the (empty) current component and moves the
// cursor to the gap it leaves behind in the enclosing sequence.
func (c *Cursor) deleteComponent() {
	id := c.component
	parent := c.expr.Parent(id)
	idx := c.expr.IndexOf(id)
	if parent == tree.None {
		c.expr.Remove(idx)
		c.component = tree.None
		c.block = tree.None
		c.position = Gap(idx)
		c.child = Gap(0)
	} else {
		c.expr.RemoveChild(parent, idx)
		c.block = parent
		c.component = c.expr.Owner(parent)
		c.child = Gap(idx)
	}
	c.expr.Free(id)
}

// ============================================================================
// Navigation
// ============================================================================

// SeekRight moves the cursor one step to the right.
// Returns false at the end of the document.
func (c *Cursor) SeekRight() bool {
	if c.block == tree.None {
		i := c.position.Right()
		if i >= c.expr.Len() {
			return false
		}
		id := c.expr.At(i)
		if c.expr.IsLeaf(id) {
			c.position = c.position.Next()
			return true
		}
		c.descend(id, i, true)
		return true
	}

	i := c.child.Right()
	if i < c.expr.ChildCount(c.block) {
		id := c.expr.ChildAt(c.block, i)
		if c.expr.IsLeaf(id) {
			c.child = c.child.Next()
			return true
		}
		c.descend(id, i, true)
		return true
	}

	if bi := c.expr.BlockIndex(c.block); bi+1 < c.expr.Arity(c.component) {
		c.block = c.expr.Block(c.component, bi+1)
		c.child = Gap(0)
		return true
	}
	c.ascend(true)
	return true
}

// SeekLeft moves the cursor one step to the left.
// Returns false at the start of the document.
func (c *Cursor) SeekLeft() bool {
	if c.block == tree.None {
		i := c.position.Left()
		if i < 0 {
			return false
		}
		id := c.expr.At(i)
		if c.expr.IsLeaf(id) {
			c.position = c.position.Prev()
			return true
		}
		c.descend(id, i, false)
		return true
	}

	i := c.child.Left()
	if i >= 0 {
		id := c.expr.ChildAt(c.block, i)
		if c.expr.IsLeaf(id) {
			c.child = c.child.Prev()
			return true
		}
		c.descend(id, i, false)
		return true
	}

	if bi := c.expr.BlockIndex(c.block); bi > 0 {
		c.block = c.expr.Block(c.component, bi-1)
		c.child = Gap(c.expr.ChildCount(c.block))
		return true
	}
	c.ascend(false)
	return true
}

// SeekStart moves the cursor to the start of the document.
// Returns the number of steps taken.
func (c *Cursor) SeekStart() int {
	n := 0
	for c.SeekLeft() {
		n++
	}
	return n
}

// SeekEnd moves the cursor to the end of the document.
// Returns the number of steps taken.
func (c *Cursor) SeekEnd() int {
	n := 0
	for c.SeekRight() {
		n++
	}
	return n
}

// descend enters container id, located at idx in the current sequence.
// fromLeft enters the first block at its start; otherwise the last block
// at its end.
func (c *Cursor) descend(id NodeID, idx int, fromLeft bool) {
	if c.block == tree.None {
		c.position = On(idx)
	}
	c.component = id
	if fromLeft {
		c.block = c.expr.Block(id, 0)
		c.child = Gap(0)
		return
	}
	c.block = c.expr.Block(id, c.expr.Arity(id)-1)
	c.child = Gap(c.expr.ChildCount(c.block))
}

// ascend leaves the current component, landing in the gap after it when
// after is true and before it otherwise.
func (c *Cursor) ascend(after bool) {
	id := c.component
	parent := c.expr.Parent(id)
	at := Gap(c.expr.IndexOf(id))
	if after {
		at = at.Next()
	}
	if parent == tree.None {
		c.component = tree.None
		c.block = tree.None
		c.position = at
		c.child = Gap(0)
		return
	}
	c.block = parent
	c.component = c.expr.Owner(parent)
	c.child = at
}
