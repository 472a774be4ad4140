package jdeob

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/nukilabs/jdeob/cfg"
	"go.uber.org/zap"
)

var exception = []string{"java/lang/Exception"}

// validate fails the test if the graph breaks its invariants.
func validate(t *testing.T, g *cfg.Graph) {
	t.Helper()
	if err := g.Validate(); err != nil {
		t.Fatalf("invalid graph: %v\n%s", err, g)
	}
}

// tryCatch builds E -> M -> X with M protected by H.
func tryCatch() (g *cfg.Graph, m, h *cfg.BasicBlock, r *cfg.ExceptionRange) {
	g = cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	m = g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	x := g.AddBlock(2, cfg.Instr(cfg.OpReturn))
	h = g.AddBlock(3, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpReturn))
	g.AddEdge(e, m)
	g.AddEdge(m, x)
	r = g.AddRange(h, exception, m)
	return g, m, h, r
}

// tryCatchFinally builds the graph javac emits for
//
//	try { T } catch (Exception e) { C } finally { F }
func tryCatchFinally() *cfg.Graph {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	t := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	f1 := g.AddBlock(2, cfg.Instr(cfg.OpInvokestatic, 2), cfg.Instr(cfg.OpReturn))
	c := g.AddBlock(3, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpInvokestatic, 3))
	f2 := g.AddBlock(4, cfg.Instr(cfg.OpInvokestatic, 2), cfg.Instr(cfg.OpReturn))
	fa := g.AddBlock(5, cfg.Instr(cfg.OpAstore, 2), cfg.Instr(cfg.OpInvokestatic, 2), cfg.Instr(cfg.OpAload, 2), cfg.Instr(cfg.OpAthrow))
	g.AddEdge(e, t)
	g.AddEdge(t, f1)
	g.AddEdge(c, f2)
	g.AddRange(c, exception, t)
	g.AddRange(fa, nil, t)
	g.AddRange(fa, nil, c)
	return g
}

// twoEntries builds a range {A, B} entered from E through both A and B.
func twoEntries() (g *cfg.Graph, a, b, h *cfg.BasicBlock) {
	g = cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpIfeq, 2))
	a = g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	b = g.AddBlock(2, cfg.Instr(cfg.OpInvokestatic, 2))
	c := g.AddBlock(3, cfg.Instr(cfg.OpReturn))
	h = g.AddBlock(4, cfg.Instr(cfg.OpPop), cfg.Instr(cfg.OpReturn))
	g.AddEdge(e, a)
	g.AddEdge(e, b)
	g.AddEdge(a, c)
	g.AddEdge(b, c)
	g.AddRange(h, nil, a, b)
	return g, a, b, h
}

func TestInsertEmptyExceptionHandlerBlocks(t *testing.T) {
	g, m, h, r := tryCatch()

	InsertEmptyExceptionHandlerBlocks(g)
	validate(t, g)

	entry := r.Handler()
	if entry == h {
		t.Fatalf("expected range to get a new handler")
	}
	if !entry.Seq().IsEmpty() {
		t.Fatalf("expected empty entry block, got {%s}", entry.Seq())
	}
	if succs := entry.Successors(); !slices.Equal(succs, []*cfg.BasicBlock{h}) {
		t.Fatalf("expected entry block to fall through to %v, got %v", h, succs)
	}
	if succs := m.ExceptionSuccessors(); !slices.Equal(succs, []*cfg.BasicBlock{entry}) {
		t.Fatalf("expected %v to throw to %v, got %v", m, entry, succs)
	}
	if preds := h.ExceptionPredecessors(); len(preds) != 0 {
		t.Fatalf("expected old handler to lose its exception predecessors, got %v", preds)
	}

	// A second run finds every handler already fronted by an empty block.
	blocks := g.Len()
	InsertEmptyExceptionHandlerBlocks(g)
	validate(t, g)
	if g.Len() != blocks {
		t.Fatalf("expected %d blocks after second run, got %d", blocks, g.Len())
	}
	if r.Handler() != entry {
		t.Fatalf("expected handler %v to be kept, got %v", entry, r.Handler())
	}
}

func TestInsertEmptyExceptionHandlerBlocksFallThrough(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	m := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	h := g.AddBlock(2, cfg.Instr(cfg.OpReturn))
	g.AddEdge(e, m)
	g.AddEdge(m, h)
	r := g.AddRange(h, nil, m)

	InsertEmptyExceptionHandlerBlocks(g)
	validate(t, g)

	entry := r.Handler()
	if preds := entry.Predecessors(); len(preds) != 0 {
		t.Fatalf("expected entry block without ordinary predecessors, got %v", preds)
	}
	if succs := m.Successors(); !slices.Equal(succs, []*cfg.BasicBlock{h}) {
		t.Fatalf("expected %v to keep falling through to %v, got %v", m, h, succs)
	}
	if succs := m.ExceptionSuccessors(); !slices.Equal(succs, []*cfg.BasicBlock{entry}) {
		t.Fatalf("expected %v to throw to %v, got %v", m, entry, succs)
	}

	blocks := g.Len()
	InsertEmptyExceptionHandlerBlocks(g)
	validate(t, g)
	if g.Len() != blocks {
		t.Fatalf("expected %d blocks after second run, got %d", blocks, g.Len())
	}
}

func TestInsertEmptyExceptionHandlerBlocksEntryHandler(t *testing.T) {
	g := cfg.New()
	h := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	m := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	g.AddEdge(h, m)
	g.AddEdge(m, h)
	r := g.AddRange(h, nil, m)

	InsertEmptyExceptionHandlerBlocks(g)
	validate(t, g)

	entry := r.Handler()
	if entry == h {
		t.Fatalf("expected range to get a new handler")
	}
	if g.First() != entry {
		t.Fatalf("expected entry block %v to become first, got %v", entry, g.First())
	}
	if !m.HasSuccessor(h) {
		t.Fatalf("expected loop edge %v -> %v to stay", m, h)
	}
}

func TestInsertEmptyExceptionHandlerBlocksNested(t *testing.T) {
	g, m, h, inner := tryCatch()
	outerHandler := g.AddBlock(4, cfg.Instr(cfg.OpPop), cfg.Instr(cfg.OpReturn))
	outer := g.AddRange(outerHandler, nil, m, h)

	InsertEmptyExceptionHandlerBlocks(g)
	validate(t, g)

	if g.Len() != 7 {
		t.Fatalf("expected 7 blocks, got %d", g.Len())
	}
	// The entry of the inner handler is still covered by the outer range.
	if !outer.Protects(inner.Handler()) {
		t.Fatalf("expected outer range %v to protect %v", outer, inner.Handler())
	}
	if !inner.Handler().HasExceptionSuccessor(outer.Handler()) {
		t.Fatalf("expected %v to throw to %v", inner.Handler(), outer.Handler())
	}
	if !outer.Handler().HasSuccessor(outerHandler) {
		t.Fatalf("expected outer entry block to fall through to %v", outerHandler)
	}
}

func TestRemoveEmptyRanges(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	b1 := g.AddBlock(1)
	x := g.AddBlock(2, cfg.Instr(cfg.OpReturn))
	h1 := g.AddBlock(3, cfg.Instr(cfg.OpPop), cfg.Instr(cfg.OpReturn))
	h2 := g.AddBlock(4, cfg.Instr(cfg.OpPop), cfg.Instr(cfg.OpReturn))
	g.AddEdge(e, b1)
	g.AddEdge(b1, x)
	r1 := g.AddRange(h1, exception, b1)
	r2 := g.AddRange(h2, nil, x)

	RemoveEmptyRanges(g)
	validate(t, g)

	if ranges := g.Ranges(); !slices.Equal(ranges, []*cfg.ExceptionRange{r2}) {
		t.Fatalf("expected only %v to remain, got %v", r2, ranges)
	}
	if b1.HasExceptionSuccessor(h1) {
		t.Fatalf("expected exception edge of %v to be removed", r1)
	}
	for _, r := range g.Ranges() {
		if isEmptyRange(r) {
			t.Fatalf("empty range %v left behind", r)
		}
	}
}

func TestRemoveCircularRangesSelfLoop(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	h := g.AddBlock(1, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpGoto, 0))
	g.AddEdge(e, h)
	g.AddRange(h, nil, h)

	RemoveCircularRanges(g)
	validate(t, g)

	if n := len(g.Ranges()); n != 0 {
		t.Fatalf("expected circular range to be dropped, %d left", n)
	}
	if h.HasExceptionSuccessor(h) {
		t.Fatalf("expected exception self edge to be removed")
	}
}

func TestRemoveCircularRangesPartial(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	a := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	h := g.AddBlock(2, cfg.Instr(cfg.OpAstore, 1))
	c := g.AddBlock(3, cfg.Instr(cfg.OpAload, 1), cfg.Instr(cfg.OpAthrow))
	g.AddEdge(e, a)
	g.AddEdge(h, c)
	r := g.AddRange(h, nil, a, h, c)

	RemoveCircularRanges(g)
	validate(t, g)

	if got := r.Protected(); !slices.Equal(got, []*cfg.BasicBlock{a}) {
		t.Fatalf("expected range to keep only %v, got %v", a, got)
	}
	if h.HasExceptionSuccessor(h) || c.HasExceptionSuccessor(h) {
		t.Fatalf("expected handler and its body to be detached from the range")
	}
	if !a.HasExceptionSuccessor(h) {
		t.Fatalf("expected %v to keep its exception edge", a)
	}
}

func TestRemoveCircularRangesWholeRange(t *testing.T) {
	// The handler reaches and dominates every protected block: nothing can be
	// told apart, so the range stays.
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	h := g.AddBlock(1, cfg.Instr(cfg.OpAstore, 1))
	c := g.AddBlock(2, cfg.Instr(cfg.OpGoto, 1))
	g.AddEdge(e, h)
	g.AddEdge(h, c)
	g.AddEdge(c, h)
	r := g.AddRange(h, nil, h, c)

	RemoveCircularRanges(g)
	validate(t, g)

	if r.Len() != 2 || len(g.Ranges()) != 1 {
		t.Fatalf("expected range to be left untouched, got %v", g.Ranges())
	}
}

func TestRestorePopRangesSplitsHandler(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	x := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	y := g.AddBlock(2, cfg.Instr(cfg.OpInvokestatic, 2))
	z := g.AddBlock(3, cfg.Instr(cfg.OpReturn))
	h := g.AddBlock(4, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpAload, 1), cfg.Instr(cfg.OpAthrow))
	g.AddEdge(e, x)
	g.AddEdge(x, y)
	g.AddEdge(y, z)
	catch := g.AddRange(h, exception, x)
	finally := g.AddRange(h, nil, x, y)

	RestorePopRanges(g)
	validate(t, g)

	if g.Len() != 6 {
		t.Fatalf("expected a new block, got %d blocks", g.Len())
	}
	split, ok := g.Block(5)
	if !ok {
		t.Fatalf("expected block 5 to exist")
	}
	if split.Seq().Len() != 1 || split.Seq().Instr(0).Opcode != cfg.OpAstore {
		t.Fatalf("expected split block to hold the astore, got {%s}", split.Seq())
	}
	if catch.Handler() != split {
		t.Fatalf("expected catch range to be handled by %v, got %v", split, catch.Handler())
	}
	if succs := x.ExceptionSuccessors(); !slices.Equal(succs, []*cfg.BasicBlock{split}) {
		t.Fatalf("expected %v to throw to %v, got %v", x, split, succs)
	}
	if !split.HasSuccessor(h) {
		t.Fatalf("expected %v -> %v", split, h)
	}
	if h.Seq().Len() != 2 {
		t.Fatalf("expected handler to lose its leading astore, got {%s}", h.Seq())
	}
	if !finally.Protects(split) {
		t.Fatalf("expected finally range to protect %v", split)
	}
	// Both ranges moved to the split block, so the finally range now protects
	// its own handler.
	if finally.Handler() != split {
		t.Fatalf("expected finally range to be handled by %v, got %v", split, finally.Handler())
	}
	if succs := split.ExceptionSuccessors(); !slices.Equal(succs, []*cfg.BasicBlock{split}) {
		t.Fatalf("expected %v to throw to itself, got %v", split, succs)
	}
	if split.HasExceptionSuccessor(h) {
		t.Fatalf("expected no exception edge %v ~> %v", split, h)
	}
}

func TestRestorePopRangesEntryHandler(t *testing.T) {
	g := cfg.New()
	h := g.AddBlock(0, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpInvokestatic, 1))
	x := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 2))
	z := g.AddBlock(2, cfg.Instr(cfg.OpReturn))
	f := g.AddBlock(3, cfg.Instr(cfg.OpAstore, 2), cfg.Instr(cfg.OpAload, 2), cfg.Instr(cfg.OpAthrow))
	g.AddEdge(h, x)
	g.AddEdge(x, z)
	g.AddEdge(x, h)
	catch := g.AddRange(h, exception, x)
	finally := g.AddRange(f, nil, x)

	RestorePopRanges(g)
	validate(t, g)

	split := catch.Handler()
	if split == h {
		t.Fatalf("expected handler to be split")
	}
	if g.First() != split {
		t.Fatalf("expected split block %v to become first, got %v", split, g.First())
	}
	if split.Seq().Len() != 1 || split.Seq().Instr(0).Opcode != cfg.OpAstore {
		t.Fatalf("expected split block to hold the astore, got {%s}", split.Seq())
	}
	if !x.HasSuccessor(split) || x.HasSuccessor(h) {
		t.Fatalf("expected loop edge moved to %v, got %v", split, x.Successors())
	}
	if !split.HasSuccessor(h) {
		t.Fatalf("expected %v -> %v", split, h)
	}
	if !finally.Protects(split) || !split.HasExceptionSuccessor(f) {
		t.Fatalf("expected finally range to protect %v", split)
	}
}

func TestRestorePopRangesStrictSuperset(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	x := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	y := g.AddBlock(2, cfg.Instr(cfg.OpReturn))
	h1 := g.AddBlock(3, cfg.Instr(cfg.OpPop), cfg.Instr(cfg.OpReturn))
	h2 := g.AddBlock(4, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpReturn))
	g.AddEdge(e, x)
	g.AddEdge(x, y)
	inner := g.AddRange(h1, []string{"java/io/IOException"}, x)
	outer := g.AddRange(h2, exception, x, y)

	RestorePopRanges(g)
	validate(t, g)

	split := inner.Handler()
	if split == h1 {
		t.Fatalf("expected inner handler to be split")
	}
	if !outer.Protects(split) || !split.HasExceptionSuccessor(h2) {
		t.Fatalf("expected %v to be protected by %v", split, outer)
	}
	if outer.Handler() != h2 {
		t.Fatalf("expected outer handler to stay %v, got %v", h2, outer.Handler())
	}
	if h1.Seq().Len() != 1 || h1.Seq().Instr(0).Opcode != cfg.OpReturn {
		t.Fatalf("expected pop to move out of %v, got {%s}", h1, h1.Seq())
	}
}

func TestRestorePopRangesWithoutSplit(t *testing.T) {
	g := cfg.New()
	e := g.AddBlock(0, cfg.Instr(cfg.OpNop))
	x := g.AddBlock(1, cfg.Instr(cfg.OpInvokestatic, 1))
	y := g.AddBlock(2, cfg.Instr(cfg.OpReturn))
	h := g.AddBlock(3, cfg.Instr(cfg.OpPop))
	fin := g.AddBlock(4, cfg.Instr(cfg.OpAstore, 1), cfg.Instr(cfg.OpAload, 1), cfg.Instr(cfg.OpAthrow))
	g.AddEdge(e, x)
	g.AddEdge(x, y)
	g.AddEdge(h, y)
	g.AddRange(h, exception, x)
	finally := g.AddRange(fin, nil, x, y)

	RestorePopRanges(g)
	validate(t, g)

	if g.Len() != 5 {
		t.Fatalf("expected no new block for a single instruction handler, got %d blocks", g.Len())
	}
	if !finally.Protects(h) || !h.HasExceptionSuccessor(fin) {
		t.Fatalf("expected %v to protect the handler %v", finally, h)
	}
}

func TestRestorePopRangesNoop(t *testing.T) {
	g := tryCatchFinally()
	before := g.String()

	RestorePopRanges(g)
	validate(t, g)

	if after := g.String(); after != before {
		t.Fatalf("expected no change, got\n%s\nwant\n%s", after, before)
	}
}

func TestHasObfuscatedExceptions(t *testing.T) {
	clean, _, _, _ := tryCatch()
	if HasObfuscatedExceptions(clean) {
		t.Fatalf("expected single entry range not to be obfuscated")
	}

	obf, _, _, _ := twoEntries()
	before := obf.String()
	if !HasObfuscatedExceptions(obf) {
		t.Fatalf("expected two entry range to be obfuscated")
	}
	if obf.String() != before {
		t.Fatalf("detection must not modify the graph")
	}
}

func TestHandleMultipleEntryExceptionRanges(t *testing.T) {
	g, a, b, h := twoEntries()

	if !HandleMultipleEntryExceptionRanges(g) {
		t.Fatalf("expected all ranges to be split")
	}
	validate(t, g)

	ranges := g.Ranges()
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %v", ranges)
	}
	for _, r := range ranges {
		if r.Handler() != h || r.Len() != 1 || !r.IsFinally() {
			t.Fatalf("expected single block finally ranges handled by %v, got %v", h, r)
		}
	}
	if !ranges[0].Protects(b) || !ranges[1].Protects(a) {
		t.Fatalf("expected ranges [%v] and [%v], got %v", b, a, ranges)
	}

	InsertDummyExceptionHandlerBlocks(g)
	validate(t, g)

	if g.Len() != 7 {
		t.Fatalf("expected 2 dummy blocks, got %d blocks", g.Len())
	}
	for _, r := range g.Ranges() {
		dummy := r.Handler()
		if dummy == h || dummy.Seq().Len() != 2 || !dummy.HasSuccessor(h) {
			t.Fatalf("expected dummy handler falling through to %v, got %v", h, r)
		}
	}
	if preds := h.ExceptionPredecessors(); len(preds) != 0 {
		t.Fatalf("expected shared handler to lose its exception predecessors, got %v", preds)
	}
	if HasObfuscatedExceptions(g) {
		t.Fatalf("expected no obfuscated ranges left")
	}
}

func TestDeobfuscatorCleanGraph(t *testing.T) {
	g, m, h, r := tryCatch()
	d := New(zap.NewNop(), Options{RemoveEmptyRanges: true, Verify: true})

	res, err := d.Run(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []PassKind{PopRanges, EmptyHandlerBlocks, EmptyRanges, CircularRanges}
	if !slices.Equal(res.Passes, want) {
		t.Fatalf("expected passes %v, got %v", want, res.Passes)
	}
	if res.Obfuscated {
		t.Fatalf("expected clean graph not to be obfuscated")
	}
	// Only the handler entry block is added; ranges stay as they are.
	if res.BlocksAfter != res.BlocksBefore+1 || res.RangesAfter != res.RangesBefore {
		t.Fatalf("unexpected counts %+v", res)
	}
	if got := r.Protected(); !slices.Equal(got, []*cfg.BasicBlock{m}) {
		t.Fatalf("expected range to protect [%v], got %v", m, got)
	}
	if !r.Handler().HasSuccessor(h) {
		t.Fatalf("expected handler entry to fall through to %v", h)
	}

	// Once clean, the pipeline leaves the graph alone.
	before := g.String()
	if _, err := d.Run(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after := g.String(); after != before {
		t.Fatalf("expected no change on second run, got\n%s\nwant\n%s", after, before)
	}
}

func TestDeobfuscatorTryCatchFinally(t *testing.T) {
	g := tryCatchFinally()
	opts := DefaultOptions()
	opts.Verify = true

	res, err := New(nil, opts).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Obfuscated {
		t.Fatalf("expected try/catch/finally not to be obfuscated")
	}
	if res.RangesAfter != 3 {
		t.Fatalf("expected 3 ranges, got %d", res.RangesAfter)
	}
	for _, r := range g.Ranges() {
		if h := r.Handler(); !h.Seq().IsEmpty() || len(h.Predecessors()) != 0 {
			t.Fatalf("expected every handler to be an empty entry block, got %v", r)
		}
	}
}

func TestDeobfuscatorObfuscatedGraph(t *testing.T) {
	g, _, _, _ := twoEntries()
	opts := DefaultOptions()
	opts.Verify = true

	res, err := New(zap.NewNop(), opts).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Obfuscated || res.Unsplit {
		t.Fatalf("expected obfuscated ranges to be split, got %+v", res)
	}
	if !slices.Contains(res.Passes, MultipleEntryRanges) || !slices.Contains(res.Passes, DummyHandlerBlocks) {
		t.Fatalf("expected repair passes to run, got %v", res.Passes)
	}
	if HasObfuscatedExceptions(g) {
		t.Fatalf("expected no obfuscated ranges left\n%s", g)
	}
}

func TestDeobfuscatorCancelled(t *testing.T) {
	g, _, _, _ := tryCatch()
	before := g.String()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := New(nil, DefaultOptions()).Run(ctx, g)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(res.Passes) != 0 {
		t.Fatalf("expected no passes, got %v", res.Passes)
	}
	if g.String() != before {
		t.Fatalf("expected graph to be untouched")
	}
}

func TestDeobfuscatorRejectsInvalidInput(t *testing.T) {
	g, m, h, _ := tryCatch()
	g.RemoveExceptionEdge(m, h)

	_, err := New(nil, Options{Verify: true}).Run(context.Background(), g)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestPassKindString(t *testing.T) {
	tests := []struct {
		kind PassKind
		want string
	}{
		{PopRanges, "RestorePopRanges"},
		{EmptyHandlerBlocks, "InsertEmptyExceptionHandlerBlocks"},
		{EmptyRanges, "RemoveEmptyRanges"},
		{CircularRanges, "RemoveCircularRanges"},
		{MultipleEntryRanges, "HandleMultipleEntryExceptionRanges"},
		{DummyHandlerBlocks, "InsertDummyExceptionHandlerBlocks"},
		{PassKind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("PassKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
