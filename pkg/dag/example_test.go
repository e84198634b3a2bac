package dag_test

import (
	"fmt"

	"github.com/matzehuels/goctave/pkg/dag"
)

func ExampleDAG_basic() {
	// signal depends on optim, which depends on miscellaneous
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "signal-1.0.11", Row: 0})
	_ = g.AddNode(dag.Node{ID: "optim-1.0.6", Row: 1})
	_ = g.AddNode(dag.Node{ID: "miscellaneous-1.0.9", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "signal-1.0.11", To: "optim-1.0.6"})
	_ = g.AddEdge(dag.Edge{From: "optim-1.0.6", To: "miscellaneous-1.0.9"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Depth:", g.MaxRow())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Depth: 2
}

func ExampleDAG_TopoOrder() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "app"})
	_ = g.AddNode(dag.Node{ID: "auth", Row: 1})
	_ = g.AddNode(dag.Node{ID: "cache", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "app", To: "auth"})
	_ = g.AddEdge(dag.Edge{From: "app", To: "cache"})
	_ = g.AddEdge(dag.Edge{From: "auth", To: "cache"})

	order, _ := g.TopoOrder()
	fmt.Println(order)
	// Output:
	// [cache auth app]
}

func ExampleDAG_Sources() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "app"})
	_ = g.AddNode(dag.Node{ID: "cli"})
	_ = g.AddNode(dag.Node{ID: "shared", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "app", To: "shared"})
	_ = g.AddEdge(dag.Edge{From: "cli", To: "shared"})

	fmt.Println("Source count:", len(g.Sources()))
	fmt.Println("Parents of shared:", g.Parents("shared"))
	// Output:
	// Source count: 2
	// Parents of shared: [app cli]
}
