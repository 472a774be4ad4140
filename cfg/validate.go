package cfg

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the structural invariants of the graph:
//   - every range has a handler that belongs to the graph,
//   - every protected block has an exception edge to its range's handler,
//   - every exception edge is backed by a range protecting its source,
//   - edges are recorded on both ends,
//   - the entry block belongs to the graph.
//
// All violations found are returned joined.
func (g *Graph) Validate() error {
	var errs []error

	owned := func(b *BasicBlock) bool {
		o, ok := g.byID[b.ID]
		return ok && o == b
	}

	if g.first != nil && !owned(g.first) {
		errs = append(errs, fmt.Errorf("entry block %d is not part of the graph", g.first.ID))
	}

	for i, r := range g.ranges {
		if r.handler == nil {
			errs = append(errs, fmt.Errorf("range %d has no handler", i))
			continue
		}
		if !owned(r.handler) {
			errs = append(errs, fmt.Errorf("range %d: handler %d is not part of the graph", i, r.handler.ID))
		}
		for _, b := range r.protected {
			if !b.HasExceptionSuccessor(r.handler) {
				errs = append(errs, fmt.Errorf("range %d: block %d is protected but has no exception edge to %d", i, b.ID, r.handler.ID))
			}
		}
	}

	for _, b := range g.blocks {
		for _, h := range b.succExcs {
			if !g.protectedBy(b, h) {
				errs = append(errs, fmt.Errorf("block %d: exception edge to %d without a protecting range", b.ID, h.ID))
			}
			if !slices.Contains(h.predExcs, b) {
				errs = append(errs, fmt.Errorf("block %d: exception edge to %d missing on the handler side", b.ID, h.ID))
			}
		}
		for _, p := range b.predExcs {
			if !slices.Contains(p.succExcs, b) {
				errs = append(errs, fmt.Errorf("block %d: exception predecessor %d has no matching edge", b.ID, p.ID))
			}
		}
		for _, s := range b.succs {
			if !owned(s) {
				errs = append(errs, fmt.Errorf("block %d: successor %d is not part of the graph", b.ID, s.ID))
			}
			if !slices.Contains(s.preds, b) {
				errs = append(errs, fmt.Errorf("block %d: edge to %d missing on the successor side", b.ID, s.ID))
			}
		}
		for _, p := range b.preds {
			if !slices.Contains(p.succs, b) {
				errs = append(errs, fmt.Errorf("block %d: predecessor %d has no matching edge", b.ID, p.ID))
			}
		}
	}

	return errors.Join(errs...)
}
