package jdeob

import (
	"slices"

	"github.com/nukilabs/jdeob/cfg"
	"github.com/nukilabs/jdeob/dominator"
)

// HasObfuscatedExceptions reports whether the blocks protected by some handler
// can be entered through more than one block from outside. Such ranges do not
// map to a structured try statement. The graph is not modified.
func HasObfuscatedExceptions(g *cfg.Graph) bool {
	var handlers []*cfg.BasicBlock
	protected := make(map[*cfg.BasicBlock][]*cfg.BasicBlock)
	for _, r := range g.Ranges() {
		h := r.Handler()
		if _, ok := protected[h]; !ok {
			handlers = append(handlers, h)
		}
		protected[h] = union(protected[h], r.Protected())
	}

	for _, h := range handlers {
		if len(rangeEntries(protected[h])) > 1 {
			return true
		}
	}
	return false
}

// rangeEntries returns the blocks with an ordinary predecessor outside blocks.
func rangeEntries(blocks []*cfg.BasicBlock) []*cfg.BasicBlock {
	var entries []*cfg.BasicBlock
	outside := func(p *cfg.BasicBlock) bool {
		return !slices.Contains(blocks, p)
	}
	for _, b := range blocks {
		if slices.ContainsFunc(b.Predecessors(), outside) {
			entries = append(entries, b)
		}
	}
	return entries
}

// HandleMultipleEntryExceptionRanges splits ranges that can be entered through
// more than one block. For an entry, the blocks reachable from it inside the
// range and dominated by it move to a new range with the same handler and
// types. Splitting repeats until no range can be split any further.
//
// It returns false if a multiple-entry range remains.
func HandleMultipleEntryExceptionRanges(g *cfg.Graph) bool {
	dom := dominator.New(g.Flow())

	for {
		found, split := false, false
		for _, r := range g.Ranges() {
			entries := rangeEntries(r.Protected())
			if len(entries) > 1 {
				found = true
				if splitRange(g, r, entries, dom) {
					split = true
					break
				}
			}
		}
		if !split {
			return !found
		}
	}
}

// splitRange moves the part of the range owned by the first suitable entry to
// a new range. The boolean return value indicates success.
func splitRange(g *cfg.Graph, r *cfg.ExceptionRange, entries []*cfg.BasicBlock, dom *dominator.Tree[*cfg.BasicBlock]) bool {
	for _, entry := range entries {
		blocks := reachableRestricted(entry, r, dom)
		if len(blocks) == 0 || len(blocks) >= r.Len() {
			continue
		}
		g.AddRange(r.Handler(), r.Types(), blocks...)
		for _, b := range blocks {
			g.Unprotect(r, b)
		}
		return true
	}
	return false
}
