package graph

import (
	"slices"
	"strings"
)

// Graph represents a directed graph with one or more root nodes.
// Nodes and edges keep their insertion order, so every traversal is
// deterministic.
type Graph[N comparable] struct {
	roots    []N
	nodes    []N
	index    map[N]int
	incoming map[N][]N
	outgoing map[N][]N
}

// New creates a new empty directed graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{
		index:    map[N]int{},
		incoming: map[N][]N{},
		outgoing: map[N][]N{},
	}
}

// String returns a string representation of the graph.
func (g *Graph[N]) String() string {
	var sb strings.Builder
	for _, node := range g.nodes {
		sb.WriteString(nodeString(node))
		sb.WriteString(" -> ")
		for _, succ := range g.outgoing[node] {
			sb.WriteString(nodeString(succ))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// AddRoot adds the node to the graph and marks it as a root.
func (g *Graph[N]) AddRoot(node N) {
	g.Node(node)
	if !slices.Contains(g.roots, node) {
		g.roots = append(g.roots, node)
	}
}

// Roots returns the root nodes of the graph.
func (g *Graph[N]) Roots() []N {
	return slices.Clone(g.roots)
}

// Has reports whether the node is part of the graph.
func (g *Graph[N]) Has(node N) bool {
	_, ok := g.index[node]
	return ok
}

// Node adds the node to the graph and returns it.
// Adding a node twice is a no-op.
func (g *Graph[N]) Node(node N) N {
	if _, ok := g.index[node]; ok {
		return node
	}
	g.index[node] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return node
}

// SetEdge creates an edge from the "from" node to the "to" node, adding
// both nodes if needed. Duplicate edges are ignored.
func (g *Graph[N]) SetEdge(from, to N) {
	g.Node(from)
	g.Node(to)
	if slices.Contains(g.outgoing[from], to) {
		return
	}
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// Nodes returns all nodes in insertion order.
func (g *Graph[N]) Nodes() []N {
	return slices.Clone(g.nodes)
}

// Len returns the number of nodes in the graph.
func (g *Graph[N]) Len() int {
	return len(g.nodes)
}

// Successors returns the nodes that are directly reachable from the given node.
func (g *Graph[N]) Successors(n N) []N {
	return slices.Clone(g.outgoing[n])
}

// Predecessors returns the nodes that have a direct edge to the given node.
func (g *Graph[N]) Predecessors(n N) []N {
	return slices.Clone(g.incoming[n])
}

// DFS performs a depth-first search starting at every root in turn.
//   - The 'pre' callback is invoked before exploring a node's children,
//   - The 'post' callback is invoked after all its children have been processed.
func (g *Graph[N]) DFS(pre, post func(n N)) {
	visited := make(map[N]bool, len(g.nodes))

	var visit func(n N)
	visit = func(n N) {
		visited[n] = true
		if pre != nil {
			pre(n)
		}
		for _, succ := range g.outgoing[n] {
			if !visited[succ] {
				visit(succ)
			}
		}
		if post != nil {
			post(n)
		}
	}

	for _, root := range g.roots {
		if !visited[root] {
			visit(root)
		}
	}
}

// ReversePostOrder returns the nodes reachable from the roots in reverse
// postorder. Unreachable nodes are excluded.
func (g *Graph[N]) ReversePostOrder() []N {
	order := make([]N, 0, len(g.nodes))
	g.DFS(nil, func(n N) {
		order = append(order, n)
	})
	slices.Reverse(order)
	return order
}
