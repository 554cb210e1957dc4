package tree

import (
	"fmt"
	"slices"
)

// NodeID is a handle to a Component stored in an Expression's arena.
type NodeID int32

// BlockID is a handle to a Block stored in an Expression's arena.
type BlockID int32

// None is the null handle for both NodeID and BlockID.
const None = -1

// Option configures an Expression during creation.
type Option func(*Expression)

// WithColors sets the color generator used for container components.
func WithColors(fn ColorFunc) Option {
	return func(e *Expression) {
		if fn != nil {
			e.colors = fn
		}
	}
}

// Expression is the document root: an ordered top-level sequence of
// components plus the arena that owns every node of the document.
type Expression struct {
	comps  []component
	blocks []block
	top    []NodeID

	colors   ColorFunc
	colorSeq int
}

// New creates an empty expression.
func New(opts ...Option) *Expression {
	e := &Expression{colors: CycleColors}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Expression) alloc(c component) NodeID {
	e.comps = append(e.comps, c)
	return NodeID(len(e.comps) - 1)
}

func (e *Expression) allocBlocks(owner NodeID, n int) []BlockID {
	ids := make([]BlockID, n)
	for i := range ids {
		e.blocks = append(e.blocks, block{owner: owner})
		ids[i] = BlockID(len(e.blocks) - 1)
	}
	return ids
}

// comp returns the arena record for id. Panics on a stale or invalid handle.
// The returned pointer is only valid until the next allocation.
func (e *Expression) comp(id NodeID) *component {
	if id < 0 || int(id) >= len(e.comps) {
		panic(fmt.Sprintf("tree: invalid component handle %d", id))
	}
	c := &e.comps[id]
	if c.dead {
		panic(fmt.Sprintf("tree: component %d has been removed", id))
	}
	return c
}

func (e *Expression) blk(id BlockID) *block {
	if id < 0 || int(id) >= len(e.blocks) {
		panic(fmt.Sprintf("tree: invalid block handle %d", id))
	}
	b := &e.blocks[id]
	if b.dead {
		panic(fmt.Sprintf("tree: block %d has been removed", id))
	}
	return b
}

// ============================================================================
// Top-level sequence
// ============================================================================

// Add inserts a component into the top-level sequence at pos.
// A negative pos appends.
func (e *Expression) Add(id NodeID, pos int) {
	e.comp(id).parent = None
	if pos < 0 {
		pos = len(e.top)
	}
	e.top = slices.Insert(e.top, pos, id)
}

// Remove detaches and returns the top-level component at pos.
// A negative pos removes the last component.
// The component stays allocated; call Free to release it.
func (e *Expression) Remove(pos int) NodeID {
	if pos < 0 {
		pos = len(e.top) - 1
	}
	id := e.top[pos]
	e.top = slices.Delete(e.top, pos, pos+1)
	return id
}

// Len returns the number of top-level components.
func (e *Expression) Len() int {
	return len(e.top)
}

// At returns the top-level component at index i.
func (e *Expression) At(i int) NodeID {
	return e.top[i]
}

// Components returns a copy of the top-level sequence.
func (e *Expression) Components() []NodeID {
	return slices.Clone(e.top)
}

// IsEmpty reports whether the expression has no top-level components.
func (e *Expression) IsEmpty() bool {
	return len(e.top) == 0
}

// ============================================================================
// Blocks
// ============================================================================

// AddChild inserts a component into block b at pos.
// A negative pos appends.
func (e *Expression) AddChild(b BlockID, id NodeID, pos int) {
	e.comp(id).parent = b
	bk := e.blk(b)
	if pos < 0 {
		pos = len(bk.children)
	}
	bk.children = slices.Insert(bk.children, pos, id)
}

// RemoveChild detaches and returns the child of block b at pos.
// A negative pos removes the last child.
// The component stays allocated; call Free to release it.
func (e *Expression) RemoveChild(b BlockID, pos int) NodeID {
	bk := e.blk(b)
	if pos < 0 {
		pos = len(bk.children) - 1
	}
	id := bk.children[pos]
	bk.children = slices.Delete(bk.children, pos, pos+1)
	return id
}

// ChildCount returns the number of children in block b.
func (e *Expression) ChildCount(b BlockID) int {
	return len(e.blk(b).children)
}

// ChildAt returns the child of block b at index i.
func (e *Expression) ChildAt(b BlockID, i int) NodeID {
	return e.blk(b).children[i]
}

// Children returns a copy of block b's children.
func (e *Expression) Children(b BlockID) []NodeID {
	return slices.Clone(e.blk(b).children)
}

// Owner returns the component that owns block b.
func (e *Expression) Owner(b BlockID) NodeID {
	return e.blk(b).owner
}

// BlockIndex returns the position of block b within its owner's blocks.
func (e *Expression) BlockIndex(b BlockID) int {
	return slices.Index(e.comp(e.blk(b).owner).blocks, b)
}

// ============================================================================
// Components
// ============================================================================

// Variant returns the variant of component id.
func (e *Expression) Variant(id NodeID) Variant {
	return e.comp(id).variant
}

// IsLeaf reports whether component id is a Symbol or Text leaf.
func (e *Expression) IsLeaf(id NodeID) bool {
	return e.comp(id).variant.IsLeaf()
}

// ComponentEmpty reports whether every block of component id has no children.
// Leaves own no blocks and are therefore always empty.
func (e *Expression) ComponentEmpty(id NodeID) bool {
	for _, b := range e.comp(id).blocks {
		if len(e.blk(b).children) > 0 {
			return false
		}
	}
	return true
}

// Arity returns the number of blocks owned by component id.
func (e *Expression) Arity(id NodeID) int {
	return len(e.comp(id).blocks)
}

// Block returns the i-th block of component id.
func (e *Expression) Block(id NodeID, i int) BlockID {
	return e.comp(id).blocks[i]
}

// Blocks returns a copy of the blocks owned by component id.
func (e *Expression) Blocks(id NodeID) []BlockID {
	return slices.Clone(e.comp(id).blocks)
}

// Parent returns the block that directly contains component id,
// or None if the component is top-level or detached.
func (e *Expression) Parent(id NodeID) BlockID {
	return e.comp(id).parent
}

// Literal returns the literal markup of a Symbol or Text leaf.
func (e *Expression) Literal(id NodeID) string {
	return e.comp(id).literal
}

// Template returns the template bound to a Template or Frame component.
func (e *Expression) Template(id NodeID) *Template {
	return e.comp(id).tmpl
}

// Color returns the placeholder color of component id.
func (e *Expression) Color(id NodeID) Color {
	return e.comp(id).color
}

// Dimensions returns the rows and columns of a Matrix component.
func (e *Expression) Dimensions(id NodeID) (rows, cols int) {
	c := e.comp(id)
	return c.rows, c.cols
}

// Alive reports whether id refers to a component that has not been freed.
func (e *Expression) Alive(id NodeID) bool {
	return id >= 0 && int(id) < len(e.comps) && !e.comps[id].dead
}

// IndexOf returns the position of component id within its container:
// its parent block's children, or the top-level sequence when it has no
// parent. Returns -1 if the component is detached.
func (e *Expression) IndexOf(id NodeID) int {
	if p := e.comp(id).parent; p != None {
		return slices.Index(e.blk(p).children, id)
	}
	return slices.Index(e.top, id)
}

// Depth returns the number of container components enclosing id.
func (e *Expression) Depth(id NodeID) int {
	depth := 0
	for p := e.comp(id).parent; p != None; p = e.comp(e.blk(p).owner).parent {
		depth++
	}
	return depth
}

// Free releases a detached component, its blocks and everything below them.
// Any later access through a released handle panics.
func (e *Expression) Free(id NodeID) {
	c := e.comp(id)
	blocks := c.blocks
	c.dead = true
	for _, b := range blocks {
		children := e.blk(b).children
		e.blocks[b].dead = true
		for _, child := range children {
			e.Free(child)
		}
	}
}

// Live returns the number of allocated components that have not been freed.
func (e *Expression) Live() int {
	n := 0
	for i := range e.comps {
		if !e.comps[i].dead {
			n++
		}
	}
	return n
}
