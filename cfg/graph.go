// Package cfg models the control flow graph of a single JVM method: basic
// blocks connected by ordinary and exception edges, and the exception ranges
// lifted from the method's exception table.
//
// A block B is protected by a range R exactly when B has an exception edge to
// R's handler. The Graph methods that change edges or range membership keep
// both sides of that relation in step.
package cfg

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nukilabs/jdeob/graph"
)

// Graph is the control flow graph of a method.
type Graph struct {
	blocks []*BasicBlock
	byID   map[int]*BasicBlock
	ranges []*ExceptionRange
	first  *BasicBlock
	lastID int
}

// New creates an empty control flow graph.
func New() *Graph {
	return &Graph{
		byID:   map[int]*BasicBlock{},
		lastID: -1,
	}
}

// AddBlock adds a block with the given id and instructions. The first block
// added becomes the entry block. It panics if the id is already taken.
func (g *Graph) AddBlock(id int, instrs ...Instruction) *BasicBlock {
	if _, ok := g.byID[id]; ok {
		panic(fmt.Sprintf("cfg: duplicate block id %d", id))
	}
	b := &BasicBlock{ID: id, seq: NewSequence(instrs...)}
	g.blocks = append(g.blocks, b)
	g.byID[id] = b
	g.lastID = max(g.lastID, id)
	if g.first == nil {
		g.first = b
	}
	return b
}

// NewBlock adds a block with a freshly allocated id.
func (g *Graph) NewBlock(instrs ...Instruction) *BasicBlock {
	return g.AddBlock(g.lastID+1, instrs...)
}

// Block returns the block with the given id.
func (g *Graph) Block(id int) (*BasicBlock, bool) {
	b, ok := g.byID[id]
	return b, ok
}

// Blocks returns all blocks in insertion order.
func (g *Graph) Blocks() []*BasicBlock {
	return slices.Clone(g.blocks)
}

// Len returns the number of blocks.
func (g *Graph) Len() int {
	return len(g.blocks)
}

// LastID returns the highest block id allocated so far.
func (g *Graph) LastID() int {
	return g.lastID
}

// First returns the entry block.
func (g *Graph) First() *BasicBlock {
	return g.first
}

// SetFirst sets the entry block.
func (g *Graph) SetFirst(b *BasicBlock) {
	g.first = b
}

// Ranges returns the exception ranges in exception table order.
func (g *Graph) Ranges() []*ExceptionRange {
	return slices.Clone(g.ranges)
}

// AddRange appends an exception range and wires the exception edges from
// every protected block to the handler. Nil or empty types make a catch-all
// range.
func (g *Graph) AddRange(handler *BasicBlock, types []string, protected ...*BasicBlock) *ExceptionRange {
	r := &ExceptionRange{handler: handler}
	if len(types) > 0 {
		r.types = slices.Clone(types)
	}
	g.ranges = append(g.ranges, r)
	for _, b := range protected {
		g.Protect(r, b)
	}
	return r
}

// RemoveRangeAt drops the i-th range. Exception edges of its blocks are removed
// unless another range with the same handler still protects them.
func (g *Graph) RemoveRangeAt(i int) {
	r := g.ranges[i]
	g.ranges = slices.Delete(g.ranges, i, i+1)
	for _, b := range r.protected {
		if !g.protectedBy(b, r.handler) {
			b.removeSuccessorException(r.handler)
		}
	}
}

// RemoveRange drops the range, see RemoveRangeAt.
func (g *Graph) RemoveRange(r *ExceptionRange) {
	if i := slices.Index(g.ranges, r); i >= 0 {
		g.RemoveRangeAt(i)
	}
}

// RangeFor returns the first range with the given handler protecting the block.
func (g *Graph) RangeFor(handler, b *BasicBlock) (*ExceptionRange, bool) {
	for _, r := range g.ranges {
		if r.handler == handler && r.Protects(b) {
			return r, true
		}
	}
	return nil, false
}

// Protect adds the block to the range and wires the exception edge to the
// range's handler.
func (g *Graph) Protect(r *ExceptionRange, b *BasicBlock) {
	if !r.Protects(b) {
		r.protected = append(r.protected, b)
	}
	b.addSuccessorException(r.handler)
}

// Unprotect removes the block from the range. The exception edge to the
// handler is removed unless another range with the same handler still
// protects the block.
func (g *Graph) Unprotect(r *ExceptionRange, b *BasicBlock) {
	r.protected = remove(r.protected, b)
	if !g.protectedBy(b, r.handler) {
		b.removeSuccessorException(r.handler)
	}
}

// SetHandler points the range at a new handler. Exception edges are left
// untouched; callers move them with ReplaceSuccessor.
func (g *Graph) SetHandler(r *ExceptionRange, h *BasicBlock) {
	r.handler = h
}

// Rehandle points the range at a new handler and moves the exception edges
// of its protected blocks along. An edge to the old handler stays when another
// range with that handler still protects the block.
func (g *Graph) Rehandle(r *ExceptionRange, h *BasicBlock) {
	old := r.handler
	r.handler = h
	for _, b := range r.protected {
		b.addSuccessorException(h)
		if !g.protectedBy(b, old) {
			b.removeSuccessorException(old)
		}
	}
}

// protectedBy reports whether any range with handler h protects b.
func (g *Graph) protectedBy(b, h *BasicBlock) bool {
	for _, r := range g.ranges {
		if r.handler == h && r.Protects(b) {
			return true
		}
	}
	return false
}

// AddEdge adds an ordinary edge.
func (g *Graph) AddEdge(from, to *BasicBlock) {
	from.addSuccessor(to)
}

// RemoveEdge removes an ordinary edge.
func (g *Graph) RemoveEdge(from, to *BasicBlock) {
	from.removeSuccessor(to)
}

// AddExceptionEdge adds an exception edge without touching any range.
func (g *Graph) AddExceptionEdge(from, handler *BasicBlock) {
	from.addSuccessorException(handler)
}

// RemoveExceptionEdge removes an exception edge without touching any range.
func (g *Graph) RemoveExceptionEdge(from, handler *BasicBlock) {
	from.removeSuccessorException(handler)
}

// ReplaceSuccessor moves the ordinary and exception edges from pred to
// oldBlock over to newBlock.
func (g *Graph) ReplaceSuccessor(pred, oldBlock, newBlock *BasicBlock) {
	pred.replaceSuccessor(oldBlock, newBlock)
}

// ReplaceExceptionSuccessor moves only the exception edge from pred to
// oldBlock over to newBlock.
func (g *Graph) ReplaceExceptionSuccessor(pred, oldBlock, newBlock *BasicBlock) {
	pred.replaceSuccessorException(oldBlock, newBlock)
}

// ReversePostOrder returns the blocks reachable from the entry block in
// reverse postorder, following ordinary edges before exception edges.
func (g *Graph) ReversePostOrder() []*BasicBlock {
	return g.Flow().ReversePostOrder()
}

// Flow returns a snapshot of the graph with ordinary and exception edges
// merged, rooted at the entry block.
func (g *Graph) Flow() *graph.Graph[*BasicBlock] {
	flow := graph.New[*BasicBlock]()
	if g.first != nil {
		flow.AddRoot(g.first)
	}
	for _, b := range g.blocks {
		flow.Node(b)
		for _, s := range b.AllSuccessors() {
			flow.SetEdge(b, s)
		}
	}
	return flow
}

// String returns a listing of all blocks and ranges.
func (g *Graph) String() string {
	var sb strings.Builder
	for _, b := range g.blocks {
		if b == g.first {
			sb.WriteString("* ")
		} else {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%d: {%s}", b.ID, b.seq)
		if len(b.succs) > 0 {
			fmt.Fprintf(&sb, " -> %v", b.succs)
		}
		if len(b.succExcs) > 0 {
			fmt.Fprintf(&sb, " ~> %v", b.succExcs)
		}
		sb.WriteByte('\n')
	}
	for _, r := range g.ranges {
		sb.WriteString("  range ")
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
