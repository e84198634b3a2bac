// Package resolver turns a package atom into recipes for the package and
// every collection package it depends on.
//
// # Overview
//
// [Resolver.Create] parses the atom, picks a version from the metadata store
// (the latest one, an exact pin, or the highest version satisfying a
// comparator), renders its recipe and then walks the descriptor's
// self-dependencies depth-first in declaration order, resolving and rendering
// each one the same way.
//
// Each dependency is resolved on its own: the highest version satisfying its
// constraint wins, with no attempt at global consistency or backtracking.
//
// # Cycles
//
// The walk keeps the chain of package versions currently being processed.
// Reaching one of them again fails with a DEPENDENCY_CYCLE error naming the
// chain instead of recursing forever. A package version already finished in
// the same call is not rendered twice.
//
// # Existing recipes
//
// When a recipe already exists and Force is not set, the renderer leaves it
// alone and its dependencies are not walked: an existing recipe is taken to
// have been created together with its dependencies.
//
// # Graph
//
// Every visited package version becomes a node of a [dag.DAG] and every
// self-dependency an edge. [Resolver.Graph] returns the graph of the last
// call; [Resolver.Plan] builds it without writing anything.
package resolver
