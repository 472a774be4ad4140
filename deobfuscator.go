// Package jdeob repairs the exception ranges of JVM control flow graphs so
// that they map onto structured try/catch/finally statements.
//
// The passes rewrite a cfg.Graph in place and are meant to run in a fixed
// order: RestorePopRanges, InsertEmptyExceptionHandlerBlocks,
// RemoveEmptyRanges, RemoveCircularRanges. HasObfuscatedExceptions then tells
// whether ranges with several entries are left. A Deobfuscator runs the whole
// sequence.
package jdeob

import (
	"context"
	"fmt"

	"github.com/nukilabs/jdeob/cfg"
	"go.uber.org/zap"
)

// Options selects the optional passes of a Deobfuscator.
type Options struct {
	// RemoveEmptyRanges drops ranges protecting no instructions.
	RemoveEmptyRanges bool
	// SplitMultipleEntry splits obfuscated ranges with several entries.
	SplitMultipleEntry bool
	// DummyHandlers gives every range of a shared handler its own handler
	// block once obfuscated ranges were found.
	DummyHandlers bool
	// Verify validates the graph before the first and after every pass.
	Verify bool
}

// DefaultOptions returns the options used by the decompiler.
func DefaultOptions() Options {
	return Options{
		RemoveEmptyRanges:  true,
		SplitMultipleEntry: true,
		DummyHandlers:      true,
	}
}

// Result summarizes a deobfuscation run.
type Result struct {
	// Passes applied, in order.
	Passes []PassKind
	// Obfuscated is set if ranges with several entries were found after the
	// standard passes.
	Obfuscated bool
	// Unsplit is set if multiple-entry ranges could not be split.
	Unsplit bool

	BlocksBefore, BlocksAfter int
	RangesBefore, RangesAfter int
}

// Deobfuscator runs the exception range passes over a control flow graph.
type Deobfuscator struct {
	opts   Options
	logger *zap.Logger
}

// New creates a deobfuscator. A nil logger discards all output.
func New(logger *zap.Logger, opts Options) *Deobfuscator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deobfuscator{
		opts:   opts,
		logger: logger,
	}
}

// Run applies the passes to g. The context is checked between passes only; a
// pass that started always runs to completion. On error the returned result
// lists the passes applied so far.
func (d *Deobfuscator) Run(ctx context.Context, g *cfg.Graph) (*Result, error) {
	res := &Result{
		BlocksBefore: g.Len(),
		RangesBefore: len(g.Ranges()),
	}
	defer func() {
		res.BlocksAfter = g.Len()
		res.RangesAfter = len(g.Ranges())
	}()

	if d.opts.Verify {
		if err := g.Validate(); err != nil {
			return res, fmt.Errorf("input graph: %w", err)
		}
	}

	if err := d.apply(ctx, g, res, PopRanges, RestorePopRanges); err != nil {
		return res, err
	}
	if err := d.apply(ctx, g, res, EmptyHandlerBlocks, InsertEmptyExceptionHandlerBlocks); err != nil {
		return res, err
	}
	if d.opts.RemoveEmptyRanges {
		if err := d.apply(ctx, g, res, EmptyRanges, RemoveEmptyRanges); err != nil {
			return res, err
		}
	}
	if err := d.apply(ctx, g, res, CircularRanges, RemoveCircularRanges); err != nil {
		return res, err
	}

	res.Obfuscated = HasObfuscatedExceptions(g)
	if !res.Obfuscated {
		return res, nil
	}
	d.logger.Warn("heavily obfuscated exception ranges found",
		zap.Int("ranges", len(g.Ranges())))

	if d.opts.SplitMultipleEntry {
		split := func(g *cfg.Graph) {
			if !HandleMultipleEntryExceptionRanges(g) {
				res.Unsplit = true
				d.logger.Warn("found multiple entry exception ranges which could not be split")
			}
		}
		if err := d.apply(ctx, g, res, MultipleEntryRanges, split); err != nil {
			return res, err
		}
	}
	if d.opts.DummyHandlers {
		if err := d.apply(ctx, g, res, DummyHandlerBlocks, InsertDummyExceptionHandlerBlocks); err != nil {
			return res, err
		}
	}
	return res, nil
}

// apply runs a single pass unless the context is done.
func (d *Deobfuscator) apply(ctx context.Context, g *cfg.Graph, res *Result, kind PassKind, pass func(*cfg.Graph)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pass(g)
	res.Passes = append(res.Passes, kind)

	d.logger.Debug("pass applied",
		zap.Stringer("pass", kind),
		zap.Int("blocks", g.Len()),
		zap.Int("ranges", len(g.Ranges())))

	if d.opts.Verify {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return nil
}
