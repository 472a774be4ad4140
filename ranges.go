package jdeob

import (
	"github.com/nukilabs/jdeob/cfg"
	"github.com/nukilabs/jdeob/dominator"
)

// RemoveEmptyRanges drops every range whose protected blocks hold no
// instructions, together with the exception edges of those blocks.
func RemoveEmptyRanges(g *cfg.Graph) {
	ranges := g.Ranges()
	// Walk backwards so the indices of the ranges still to visit stay valid.
	for i := len(ranges) - 1; i >= 0; i-- {
		if isEmptyRange(ranges[i]) {
			g.RemoveRangeAt(i)
		}
	}
}

// isEmptyRange returns true if no protected block of the range holds an
// instruction.
func isEmptyRange(r *cfg.ExceptionRange) bool {
	for _, b := range r.Protected() {
		if !b.Seq().IsEmpty() {
			return false
		}
	}
	return true
}

// RemoveCircularRanges strips ranges protecting their own handler. The blocks
// reachable from the handler inside the range and dominated by it are removed
// from the range, provided that leaves something behind or the handler was the
// only protected block. Ranges left without blocks are dropped.
func RemoveCircularRanges(g *cfg.Graph) {
	dom := dominator.New(g.Flow())

	ranges := g.Ranges()
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		handler := r.Handler()
		if !r.Protects(handler) {
			continue
		}

		blocks := reachableRestricted(handler, r, dom)
		if len(blocks) < r.Len() || r.Len() == 1 {
			for _, b := range blocks {
				g.Unprotect(r, b)
			}
		}
		if r.Len() == 0 {
			g.RemoveRangeAt(i)
		}
	}
}

// reachableRestricted returns the blocks reachable from start over ordinary
// and exception edges without leaving the range, keeping only blocks
// dominated by start.
func reachableRestricted(start *cfg.BasicBlock, r *cfg.ExceptionRange, dom *dominator.Tree[*cfg.BasicBlock]) []*cfg.BasicBlock {
	var blocks []*cfg.BasicBlock

	q := newQueue[*cfg.BasicBlock]()
	q.push(start)
	for !q.empty() {
		b := q.pop()
		if !r.Protects(b) || !dom.Dominates(start, b) {
			continue
		}
		blocks = append(blocks, b)
		for _, succ := range b.AllSuccessors() {
			q.push(succ)
		}
	}
	return blocks
}
