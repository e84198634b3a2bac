// Package dag provides the directed graph produced by dependency resolution.
//
// # Overview
//
// Every package version the resolver visits becomes a [Node]; every
// self-dependency between two collection packages becomes an [Edge] pointing
// from the dependent to the dependency. Nodes carry the depth at which they
// were first reached in [Node.Row], which graph renderers use to rank the
// layout.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "signal-1.0.11", Row: 0})
//	g.AddNode(dag.Node{ID: "optim-1.0.6", Row: 1})
//	g.AddEdge(dag.Edge{From: "signal-1.0.11", To: "optim-1.0.6"})
//
// Query the structure with [DAG.Children], [DAG.Parents] and [DAG.Sources].
// [DAG.TopoOrder] lists nodes dependencies first, the order in
// which their recipes need to exist. [DAG.Validate] reports dangling edges and
// cycles.
//
// # Metadata
//
// Nodes, edges and the graph itself carry [Metadata] maps. The resolver
// stores the package name, version and reference string on nodes and the
// version constraint on edges. Metadata maps are never nil after creation.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
package dag
