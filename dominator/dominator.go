// Package dominator computes immediate dominators of a directed graph using the
// iterative algorithm of Cooper, Harvey and Kennedy ("A Simple, Fast Dominance
// Algorithm").
package dominator

import "slices"

// Graph is the view of a directed graph the dominator engine needs.
type Graph[N comparable] interface {
	// Roots returns the entry nodes of the graph.
	Roots() []N
	// ReversePostOrder returns the nodes reachable from the roots in reverse
	// postorder.
	ReversePostOrder() []N
	// Predecessors returns the nodes with an edge to n.
	Predecessors(n N) []N
}

// Tree is the dominator tree of a graph, stored as immediate dominators.
// Roots and merging points of two root trees are their own immediate
// dominator.
type Tree[N comparable] struct {
	order []N
	index map[N]int
	idom  map[N]N
}

// New computes the dominator tree of the given graph.
func New[N comparable](g Graph[N]) *Tree[N] {
	t := &Tree[N]{
		index: map[N]int{},
		idom:  map[N]N{},
	}
	t.initialize(g)
	return t
}

func (t *Tree[N]) initialize(g Graph[N]) {
	roots := g.Roots()
	t.order = g.ReversePostOrder()
	for i, n := range t.order {
		t.index[n] = i
	}

	for {
		changed := false
		for _, node := range t.order {
			var idom N
			found := false
			if !slices.Contains(roots, node) {
				for _, pred := range g.Predecessors(node) {
					// Skip predecessors not processed yet and unreachable ones.
					if _, ok := t.idom[pred]; !ok {
						continue
					}
					if !found {
						idom, found = pred, true
						continue
					}
					if idom, found = t.intersect(idom, pred); !found {
						// Merging point of two trees.
						break
					}
				}
			}
			if !found {
				idom = node
			}
			if old, ok := t.idom[node]; !ok || old != idom {
				changed = true
			}
			t.idom[node] = idom
		}
		if !changed {
			break
		}
	}
}

// intersect walks both nodes up the tree until they meet. The boolean return
// value is false when the walk hits a root before the two paths join.
func (t *Tree[N]) intersect(a, b N) (N, bool) {
	ia, ib := t.index[a], t.index[b]
	for ia != ib {
		if ia > ib {
			next := t.idom[a]
			if next == a {
				var zero N
				return zero, false
			}
			a, ia = next, t.index[next]
		} else {
			next := t.idom[b]
			if next == b {
				var zero N
				return zero, false
			}
			b, ib = next, t.index[next]
		}
	}
	return a, true
}

// Dominates reports whether a dominates b, i.e. every path from a root to b
// passes through a. Every node dominates itself. Nodes that are not reachable
// from a root are dominated by nothing but themselves.
func (t *Tree[N]) Dominates(a, b N) bool {
	for b != a {
		idom, ok := t.idom[b]
		if !ok || idom == b {
			return false
		}
		b = idom
	}
	return true
}

// Idom returns the immediate dominator of n. The boolean return value is false
// for roots, merging points and unreachable nodes.
func (t *Tree[N]) Idom(n N) (N, bool) {
	idom, ok := t.idom[n]
	if !ok || idom == n {
		var zero N
		return zero, false
	}
	return idom, true
}

// DominatedBy returns the nodes whose immediate dominator is n, in reverse
// postorder.
func (t *Tree[N]) DominatedBy(n N) []N {
	var nodes []N
	for _, node := range t.order {
		if idom, ok := t.Idom(node); ok && idom == n {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Reachable reports whether n was reached from a root.
func (t *Tree[N]) Reachable(n N) bool {
	_, ok := t.index[n]
	return ok
}

// Order returns the nodes the tree was computed over, in reverse postorder.
func (t *Tree[N]) Order() []N {
	return slices.Clone(t.order)
}
