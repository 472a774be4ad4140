package cfg

import (
	"slices"
	"strconv"
)

// BasicBlock is a node of the control flow graph.
//
// Ordinary and exception edges are kept in separate lists. Every list is
// ordered and free of duplicates, and each edge is recorded on both of its
// ends. Edges are changed through the owning Graph only.
type BasicBlock struct {
	ID int

	seq *Sequence

	succs    []*BasicBlock
	preds    []*BasicBlock
	succExcs []*BasicBlock
	predExcs []*BasicBlock
}

// Seq returns the instruction sequence of the block.
func (b *BasicBlock) Seq() *Sequence {
	return b.seq
}

// String returns the block id.
func (b *BasicBlock) String() string {
	return strconv.Itoa(b.ID)
}

// Successors returns the ordinary successors of the block.
func (b *BasicBlock) Successors() []*BasicBlock {
	return slices.Clone(b.succs)
}

// Predecessors returns the ordinary predecessors of the block.
func (b *BasicBlock) Predecessors() []*BasicBlock {
	return slices.Clone(b.preds)
}

// ExceptionSuccessors returns the handlers this block may transfer to on an
// exception.
func (b *BasicBlock) ExceptionSuccessors() []*BasicBlock {
	return slices.Clone(b.succExcs)
}

// ExceptionPredecessors returns the blocks with an exception edge to this one.
func (b *BasicBlock) ExceptionPredecessors() []*BasicBlock {
	return slices.Clone(b.predExcs)
}

// AllSuccessors returns the ordinary successors followed by the exception
// successors.
func (b *BasicBlock) AllSuccessors() []*BasicBlock {
	return slices.Concat(b.succs, b.succExcs)
}

// AllPredecessors returns the ordinary predecessors followed by the exception
// predecessors.
func (b *BasicBlock) AllPredecessors() []*BasicBlock {
	return slices.Concat(b.preds, b.predExcs)
}

// HasSuccessor reports whether there is an ordinary edge from b to s.
func (b *BasicBlock) HasSuccessor(s *BasicBlock) bool {
	return slices.Contains(b.succs, s)
}

// HasExceptionSuccessor reports whether there is an exception edge from b to h.
func (b *BasicBlock) HasExceptionSuccessor(h *BasicBlock) bool {
	return slices.Contains(b.succExcs, h)
}

func (b *BasicBlock) addSuccessor(s *BasicBlock) {
	if slices.Contains(b.succs, s) {
		return
	}
	b.succs = append(b.succs, s)
	s.preds = append(s.preds, b)
}

func (b *BasicBlock) removeSuccessor(s *BasicBlock) {
	b.succs = remove(b.succs, s)
	s.preds = remove(s.preds, b)
}

func (b *BasicBlock) addSuccessorException(h *BasicBlock) {
	if slices.Contains(b.succExcs, h) {
		return
	}
	b.succExcs = append(b.succExcs, h)
	h.predExcs = append(h.predExcs, b)
}

func (b *BasicBlock) removeSuccessorException(h *BasicBlock) {
	b.succExcs = remove(b.succExcs, h)
	h.predExcs = remove(h.predExcs, b)
}

// replaceSuccessor moves every edge from b to oldBlock, ordinary and
// exception, over to newBlock. Positions in the successor lists are kept.
func (b *BasicBlock) replaceSuccessor(oldBlock, newBlock *BasicBlock) {
	if i := slices.Index(b.succs, oldBlock); i >= 0 {
		oldBlock.preds = remove(oldBlock.preds, b)
		if slices.Contains(b.succs, newBlock) {
			b.succs = slices.Delete(b.succs, i, i+1)
		} else {
			b.succs[i] = newBlock
			newBlock.preds = append(newBlock.preds, b)
		}
	}
	b.replaceSuccessorException(oldBlock, newBlock)
}

// replaceSuccessorException moves the exception edge from b to oldBlock over
// to newBlock. Ordinary edges are left alone.
func (b *BasicBlock) replaceSuccessorException(oldBlock, newBlock *BasicBlock) {
	if i := slices.Index(b.succExcs, oldBlock); i >= 0 {
		oldBlock.predExcs = remove(oldBlock.predExcs, b)
		if slices.Contains(b.succExcs, newBlock) {
			b.succExcs = slices.Delete(b.succExcs, i, i+1)
		} else {
			b.succExcs[i] = newBlock
			newBlock.predExcs = append(newBlock.predExcs, b)
		}
	}
}

// remove deletes the first occurrence of b from blocks.
func remove(blocks []*BasicBlock, b *BasicBlock) []*BasicBlock {
	if i := slices.Index(blocks, b); i >= 0 {
		return slices.Delete(blocks, i, i+1)
	}
	return blocks
}
