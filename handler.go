package jdeob

import (
	"github.com/nukilabs/jdeob/cfg"
)

// InsertEmptyExceptionHandlerBlocks puts an empty block in front of every
// exception handler. The exception edges and ranges targeting the handler move
// to the new block, which falls through to the old handler. Ordinary edges
// into the handler stay where they are.
//
// A handler that already is such an empty entry block is left alone, so a
// second run does not change the graph.
func InsertEmptyExceptionHandlerBlocks(g *cfg.Graph) {
	visited := make(map[*cfg.BasicBlock]bool)

	for _, r := range g.Ranges() {
		handler := r.Handler()
		if visited[handler] {
			continue
		}
		visited[handler] = true
		if isEmptyEntry(handler) {
			continue
		}

		entry := insertEntryBlock(g, handler, handler.ExceptionPredecessors(), g.ReplaceExceptionSuccessor)
		visited[entry] = true
	}
}

// isEmptyEntry reports whether the block has no instructions, is entered by
// exception edges only and falls through to a single successor.
func isEmptyEntry(b *cfg.BasicBlock) bool {
	return b.Seq().IsEmpty() && len(b.Predecessors()) == 0 && len(b.Successors()) == 1
}

// insertEntryBlock creates a block holding instrs in front of handler:
//   - the edges from preds to the handler are moved to the new block by move,
//   - ranges handled by the handler are handled by the new block,
//   - ranges protecting the handler protect the new block as well,
//   - the new block falls through to the handler.
func insertEntryBlock(g *cfg.Graph, handler *cfg.BasicBlock, preds []*cfg.BasicBlock, move func(pred, oldBlock, newBlock *cfg.BasicBlock), instrs ...cfg.Instruction) *cfg.BasicBlock {
	block := g.NewBlock(instrs...)

	for _, pred := range preds {
		move(pred, handler, block)
	}

	for _, r := range g.Ranges() {
		if r.Handler() == handler {
			g.SetHandler(r, block)
		} else if r.Protects(handler) {
			g.Protect(r, block)
		}
	}

	g.AddEdge(block, handler)
	if g.First() == handler {
		g.SetFirst(block)
	}
	return block
}

// InsertDummyExceptionHandlerBlocks gives every range of a handler shared by
// several ranges its own handler block. The new block holds "bipush 0; pop" so
// that it survives later removal of empty blocks, and falls through to the
// shared handler. Handlers enclosing the shared handler enclose the new block
// too.
func InsertDummyExceptionHandlerBlocks(g *cfg.Graph) {
	var handlers []*cfg.BasicBlock
	byHandler := make(map[*cfg.BasicBlock][]*cfg.ExceptionRange)
	for _, r := range g.Ranges() {
		h := r.Handler()
		if _, ok := byHandler[h]; !ok {
			handlers = append(handlers, h)
		}
		byHandler[h] = append(byHandler[h], r)
	}

	for _, handler := range handlers {
		ranges := byHandler[handler]
		if len(ranges) == 1 {
			continue
		}

		for _, r := range ranges {
			dummy := g.NewBlock(cfg.Instr(cfg.OpBipush, 0), cfg.Instr(cfg.OpPop))
			preds := intersection(handler.ExceptionPredecessors(), r.Protected())

			g.Rehandle(r, dummy)

			// Handlers protecting both the shared handler and every block
			// that reached it through this range.
			common := handler.ExceptionSuccessors()
			for _, pred := range preds {
				common = intersection(common, pred.ExceptionSuccessors())
			}
			for _, h := range common {
				if cr, ok := g.RangeFor(h, handler); ok {
					g.Protect(cr, dummy)
				}
			}

			g.AddEdge(dummy, handler)
		}
	}
}
