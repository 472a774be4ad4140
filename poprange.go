package jdeob

import (
	"slices"

	"github.com/nukilabs/jdeob/cfg"
)

// popRange aggregates the ranges sharing a handler and caught types.
// The handler is recorded once and not updated when the handler is split.
type popRange struct {
	handler   *cfg.BasicBlock
	finally   bool
	protected []*cfg.BasicBlock
	// Representative range, the first one of the group.
	rng *cfg.ExceptionRange
}

// RestorePopRanges merges ranges with the same handler and caught types, and
// gives a handler starting with a pop/astore its own copy of that instruction
// for every enclosing finally or strict superset range that also reaches it.
//
// Each aggregated range is inspected once; a handler already split is only
// attached to further superset ranges, never split again.
func RestorePopRanges(g *cfg.Graph) {
	ranges := aggregateRanges(g)

	for _, rng := range ranges {
		if rng.finally {
			continue
		}
		handler := rng.handler
		seq := handler.Seq()
		if seq.IsEmpty() {
			continue
		}
		prologue := seq.Instr(0)
		if !prologue.Opcode.IsStackPop() {
			continue
		}

		for _, super := range ranges {
			if super == rng {
				continue
			}
			// Neither range may capture the other's handler.
			if slices.Contains(rng.protected, super.handler) || slices.Contains(super.protected, handler) {
				continue
			}
			if !super.finally && !containsAll(super.protected, rng.protected) {
				continue
			}

			var delta []*cfg.BasicBlock
			if super.finally {
				delta = intersection(super.protected, rng.protected)
			} else {
				delta = difference(super.protected, rng.protected)
			}
			if len(delta) == 0 {
				continue
			}

			block := handler
			if seq.Len() > 1 {
				block = insertEntryBlock(g, handler, handler.AllPredecessors(), g.ReplaceSuccessor, prologue.Clone())
				seq.Remove(0)
			}
			g.Protect(super.rng, block)

			handler = rng.rng.Handler()
			seq = handler.Seq()
		}
	}
}

// aggregateRanges groups the graph's ranges by handler and caught types and
// unions their protected blocks.
func aggregateRanges(g *cfg.Graph) []*popRange {
	var ranges []*popRange
	for _, r := range g.Ranges() {
		found := false
		for _, pr := range ranges {
			if pr.handler == r.Handler() && pr.rng.SameTypes(r) {
				pr.protected = union(pr.protected, r.Protected())
				found = true
				break
			}
		}
		if !found {
			ranges = append(ranges, &popRange{
				handler:   r.Handler(),
				finally:   r.IsFinally(),
				protected: r.Protected(),
				rng:       r,
			})
		}
	}
	return ranges
}
