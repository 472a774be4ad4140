// Package cfgio reads and writes control flow graphs as YAML documents and
// renders them as Graphviz DOT.
//
// A document lists the blocks with their instructions and ordinary successors,
// and the exception ranges. Exception edges are implied by the ranges:
//
//	first: 0
//	blocks:
//	  - id: 0
//	    instructions: [nop]
//	    succs: [1]
//	  - id: 1
//	    instructions: [invokestatic 1, return]
//	  - id: 2
//	    instructions: [astore 1, return]
//	ranges:
//	  - handler: 2
//	    types: [java/lang/Exception]
//	    protected: [1]
//
// A range without types catches every exception.
package cfgio

import (
	"os"
	"strconv"

	"github.com/nukilabs/jdeob/cfg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a control flow graph.
type Document struct {
	First  *int    `yaml:"first,omitempty"`
	Blocks []Block `yaml:"blocks"`
	Ranges []Range `yaml:"ranges,omitempty"`
}

// Block is the YAML form of a basic block.
type Block struct {
	ID           int      `yaml:"id"`
	Instructions []string `yaml:"instructions,omitempty,flow"`
	Succs        []int    `yaml:"succs,omitempty,flow"`
}

// Range is the YAML form of an exception range.
type Range struct {
	Handler   int      `yaml:"handler"`
	Types     []string `yaml:"types,omitempty,flow"`
	Protected []int    `yaml:"protected,flow"`
}

// Load reads a graph from a YAML file.
func Load(path string) (*cfg.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read graph")
	}
	g, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return g, nil
}

// Decode builds a graph from a YAML document.
func Decode(data []byte) (*cfg.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}
	return doc.Graph()
}

// Graph builds the control flow graph described by the document.
func (d *Document) Graph() (*cfg.Graph, error) {
	g := cfg.New()

	for _, spec := range d.Blocks {
		if _, ok := g.Block(spec.ID); ok {
			return nil, errors.Errorf("duplicate block %d", spec.ID)
		}
		instrs := make([]cfg.Instruction, 0, len(spec.Instructions))
		for _, s := range spec.Instructions {
			instr, err := cfg.ParseInstruction(s)
			if err != nil {
				return nil, errors.Wrapf(err, "block %d", spec.ID)
			}
			instrs = append(instrs, instr)
		}
		g.AddBlock(spec.ID, instrs...)
	}

	lookup := func(id int, what string) (*cfg.BasicBlock, error) {
		b, ok := g.Block(id)
		if !ok {
			return nil, errors.Errorf("%s: unknown block %d", what, id)
		}
		return b, nil
	}

	for _, spec := range d.Blocks {
		from, _ := g.Block(spec.ID)
		for _, id := range spec.Succs {
			to, err := lookup(id, "successor of block "+from.String())
			if err != nil {
				return nil, err
			}
			g.AddEdge(from, to)
		}
	}

	for i, spec := range d.Ranges {
		handler, err := lookup(spec.Handler, "handler of range "+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		protected := make([]*cfg.BasicBlock, 0, len(spec.Protected))
		for _, id := range spec.Protected {
			b, err := lookup(id, "protected block of range "+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			protected = append(protected, b)
		}
		g.AddRange(handler, spec.Types, protected...)
	}

	if d.First != nil {
		first, err := lookup(*d.First, "entry")
		if err != nil {
			return nil, err
		}
		g.SetFirst(first)
	}
	return g, nil
}

// NewDocument returns the YAML form of the graph.
func NewDocument(g *cfg.Graph) *Document {
	doc := &Document{}
	if first := g.First(); first != nil {
		id := first.ID
		doc.First = &id
	}
	for _, b := range g.Blocks() {
		spec := Block{ID: b.ID}
		for _, instr := range b.Seq().Instructions() {
			spec.Instructions = append(spec.Instructions, instr.String())
		}
		for _, s := range b.Successors() {
			spec.Succs = append(spec.Succs, s.ID)
		}
		doc.Blocks = append(doc.Blocks, spec)
	}
	for _, r := range g.Ranges() {
		spec := Range{
			Handler:   r.Handler().ID,
			Types:     r.Types(),
			Protected: []int{},
		}
		for _, b := range r.Protected() {
			spec.Protected = append(spec.Protected, b.ID)
		}
		doc.Ranges = append(doc.Ranges, spec)
	}
	return doc
}

// Encode returns the graph as a YAML document.
func Encode(g *cfg.Graph) ([]byte, error) {
	data, err := yaml.Marshal(NewDocument(g))
	if err != nil {
		return nil, errors.Wrap(err, "encode graph")
	}
	return data, nil
}
