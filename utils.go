package jdeob

import (
	"slices"

	"github.com/nukilabs/jdeob/cfg"
)

// union returns a with the blocks of b it does not contain yet appended.
func union(a, b []*cfg.BasicBlock) []*cfg.BasicBlock {
	res := slices.Clone(a)
	for _, block := range b {
		if !slices.Contains(res, block) {
			res = append(res, block)
		}
	}
	return res
}

// intersection returns the blocks of a that are also in b, in the order of a.
func intersection(a, b []*cfg.BasicBlock) []*cfg.BasicBlock {
	var res []*cfg.BasicBlock
	for _, block := range a {
		if slices.Contains(b, block) {
			res = append(res, block)
		}
	}
	return res
}

// difference returns the blocks of a that are not in b, in the order of a.
func difference(a, b []*cfg.BasicBlock) []*cfg.BasicBlock {
	var res []*cfg.BasicBlock
	for _, block := range a {
		if !slices.Contains(b, block) {
			res = append(res, block)
		}
	}
	return res
}

// containsAll returns true if every block of b is in a.
func containsAll(a, b []*cfg.BasicBlock) bool {
	for _, block := range b {
		if !slices.Contains(a, block) {
			return false
		}
	}
	return true
}
