package cfgio

import (
	"strconv"
	"strings"

	"github.com/nukilabs/jdeob/cfg"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/iterator"
)

// MarshalDOT renders the graph in Graphviz DOT format. Ordinary edges are
// solid, exception edges are dashed, and the entry block is drawn with a
// double border.
func MarshalDOT(g *cfg.Graph, name string) ([]byte, error) {
	buf, err := dot.Marshal(newDOTGraph(g), name, "", "\t")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return buf, nil
}

// dotGraph exposes a control flow graph through the gonum graph interfaces.
type dotGraph struct {
	g     *cfg.Graph
	nodes map[int64]dotNode
}

var (
	_ graph.Directed = dotGraph{}
	_ dot.Attributers = dotGraph{}
)

func newDOTGraph(g *cfg.Graph) dotGraph {
	d := dotGraph{g: g, nodes: make(map[int64]dotNode, g.Len())}
	for _, b := range g.Blocks() {
		d.nodes[int64(b.ID)] = dotNode{block: b, entry: b == g.First()}
	}
	return d
}

func (d dotGraph) block(id int64) (*cfg.BasicBlock, bool) {
	n, ok := d.nodes[id]
	return n.block, ok
}

func (d dotGraph) list(blocks []*cfg.BasicBlock) graph.Nodes {
	var nodes []graph.Node
	seen := make(map[int64]bool)
	for _, b := range blocks {
		id := int64(b.ID)
		if seen[id] {
			continue
		}
		seen[id] = true
		nodes = append(nodes, d.nodes[id])
	}
	if len(nodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(nodes)
}

func (d dotGraph) Node(id int64) graph.Node {
	n, ok := d.nodes[id]
	if !ok {
		return nil
	}
	return n
}

func (d dotGraph) Nodes() graph.Nodes {
	return d.list(d.g.Blocks())
}

func (d dotGraph) From(id int64) graph.Nodes {
	b, ok := d.block(id)
	if !ok {
		return graph.Empty
	}
	return d.list(b.AllSuccessors())
}

func (d dotGraph) To(id int64) graph.Nodes {
	b, ok := d.block(id)
	if !ok {
		return graph.Empty
	}
	return d.list(b.AllPredecessors())
}

func (d dotGraph) HasEdgeBetween(xid, yid int64) bool {
	return d.HasEdgeFromTo(xid, yid) || d.HasEdgeFromTo(yid, xid)
}

func (d dotGraph) HasEdgeFromTo(uid, vid int64) bool {
	u, ok := d.block(uid)
	if !ok {
		return false
	}
	v, ok := d.block(vid)
	if !ok {
		return false
	}
	return u.HasSuccessor(v) || u.HasExceptionSuccessor(v)
}

func (d dotGraph) Edge(uid, vid int64) graph.Edge {
	if !d.HasEdgeFromTo(uid, vid) {
		return nil
	}
	u, v := d.nodes[uid], d.nodes[vid]
	return dotEdge{
		from:      u,
		to:        v,
		ordinary:  u.block.HasSuccessor(v.block),
		exception: u.block.HasExceptionSuccessor(v.block),
	}
}

func (d dotGraph) DOTAttributers() (g, n, e encoding.Attributer) {
	return attributes{{Key: "rankdir", Value: "TB"}},
		attributes{{Key: "shape", Value: "box"}, {Key: "fontname", Value: "monospace"}},
		attributes{}
}

// dotNode is a basic block in DOT output.
type dotNode struct {
	block *cfg.BasicBlock
	entry bool
}

func (n dotNode) ID() int64 { return int64(n.block.ID) }

func (n dotNode) DOTID() string { return strconv.Itoa(n.block.ID) }

func (n dotNode) Attributes() []encoding.Attribute {
	var label strings.Builder
	label.WriteString(`"`)
	label.WriteString(strconv.Itoa(n.block.ID))
	label.WriteString(`:\l`)
	for _, instr := range n.block.Seq().Instructions() {
		label.WriteString(instr.String())
		label.WriteString(`\l`)
	}
	label.WriteString(`"`)

	attrs := []encoding.Attribute{{Key: "label", Value: label.String()}}
	if n.entry {
		attrs = append(attrs, encoding.Attribute{Key: "peripheries", Value: "2"})
	}
	return attrs
}

// dotEdge connects two blocks by an ordinary edge, an exception edge or both.
type dotEdge struct {
	from, to            dotNode
	ordinary, exception bool
}

func (e dotEdge) From() graph.Node { return e.from }

func (e dotEdge) To() graph.Node { return e.to }

func (e dotEdge) ReversedEdge() graph.Edge {
	e.from, e.to = e.to, e.from
	return e
}

func (e dotEdge) Attributes() []encoding.Attribute {
	switch {
	case e.exception && e.ordinary:
		return []encoding.Attribute{{Key: "color", Value: "red"}}
	case e.exception:
		return []encoding.Attribute{{Key: "color", Value: "red"}, {Key: "style", Value: "dashed"}}
	default:
		return nil
	}
}

type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }
