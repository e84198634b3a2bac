package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/goctave/pkg/dag"
)

type graph struct {
	Atom  string   `json:"atom,omitempty"`
	Order []string `json:"order,omitempty"`
	Nodes []node   `json:"nodes"`
	Edges []edge   `json:"edges"`
}

type node struct {
	ID   string       `json:"id"`
	Row  *int         `json:"row,omitempty"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Constraint string `json:"constraint,omitempty"`
}

// WriteJSON encodes g as indented JSON and writes it to w.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	order, err := g.TopoOrder()
	if err != nil {
		return err
	}
	out := graph{
		Order: order,
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	if a, ok := g.Meta()["atom"].(string); ok {
		out.Atom = a
	}

	for _, n := range g.Nodes() {
		nd := node{ID: n.ID, Meta: n.Meta}
		if n.Row != 0 {
			row := n.Row
			nd.Row = &row
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		c, _ := e.Meta["constraint"].(string)
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Constraint: c})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a graph written by [WriteJSON].
// Duplicate node IDs, edges to unknown nodes and cycles are rejected. When
// the file names no atom and the graph has a single root, the root's ID is
// used as the atom.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var meta dag.Metadata
	if data.Atom != "" {
		meta = dag.Metadata{"atom": data.Atom}
	}
	g := dag.New(meta)
	for _, n := range data.Nodes {
		nd := dag.Node{ID: n.ID, Meta: n.Meta}
		if n.Row != nil {
			nd.Row = *n.Row
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		var em dag.Metadata
		if e.Constraint != "" {
			em = dag.Metadata{"constraint": e.Constraint}
		}
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To, Meta: em}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if roots := g.Sources(); data.Atom == "" && len(roots) == 1 {
		g.Meta()["atom"] = roots[0].ID
	}
	return g, nil
}
