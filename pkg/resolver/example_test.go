package resolver_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/goctave/pkg/metadata"
	"github.com/matzehuels/goctave/pkg/recipe"
	"github.com/matzehuels/goctave/pkg/resolver"
)

func ExampleResolver_Plan() {
	optim, _ := metadata.ParseDependency("optim (>= 1.0)")

	store := metadata.NewMemoryStore("")
	store.Add("main", &metadata.Descriptor{Name: "signal", Version: "1.0.11", SelfDepends: []metadata.Dependency{optim}})
	store.Add("main", &metadata.Descriptor{Name: "optim", Version: "0.9"})
	store.Add("main", &metadata.Descriptor{Name: "optim", Version: "1.0.6"})

	overlay, _ := os.MkdirTemp("", "overlay")
	defer os.RemoveAll(overlay)

	r := recipe.NewRenderer(store, recipe.Config{Overlay: overlay})
	g, err := resolver.New(store, r, resolver.Options{}).Plan(context.Background(), "signal")
	if err != nil {
		fmt.Println(err)
		return
	}

	order, _ := g.TopoOrder()
	fmt.Println(order)
	// Output:
	// [optim-1.0.6 signal-1.0.11]
}
