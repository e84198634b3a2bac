// Package nodelink renders resolution graphs as node-link diagrams.
//
// # Usage
//
// Convert a DAG to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Each node is labelled with the package name and version. Nodes whose
// recipe already exists in the overlay are drawn grey, nodes written by the
// run that produced the graph are drawn green. Edges carrying a version
// constraint show it as their label.
//
// # Options
//
//   - Detailed: node labels additionally list every metadata entry
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
