// Package pkg provides the libraries behind goctave, the ebuild generator
// for octave-forge packages.
//
// # Overview
//
// goctave turns package atoms such as "signal" or ">=signal-1.0.9" into
// Gentoo ebuilds in the g-octave overlay. Every package the requested one
// depends on gets an ebuild as well.
//
// # Architecture
//
//	[metadata] package database (TOML descriptors, fetched by [mirror])
//	     ↓
//	[atom] + [version] parse the request and pick a version
//	     ↓
//	[resolver] walks the dependencies, recording a [dag] graph
//	     ↓
//	[recipe] renders each ebuild, copies its [patches], runs the manifest step
//
// The resolution graph can also be exported with [render/nodelink] (DOT, SVG)
// or [io] (JSON).
//
// # Quick Start
//
//	store, _ := metadata.OpenDir("/var/cache/g-octave", []string{"main", "extra", "language"})
//	r := recipe.NewRenderer(store, recipe.Config{
//	    Overlay:  "/usr/local/portage/g-octave",
//	    Keywords: "~x86 ~amd64",
//	    Manifest: recipe.NewCommandRunner(""),
//	})
//	art, err := resolver.New(store, r, resolver.Options{Manifest: true}).Create(ctx, "signal")
//
// # Errors
//
// Failures carry a code from [errors], e.g. PACKAGE_NOT_FOUND or
// DEPENDENCY_CYCLE; use errors.Is to test for them.
package pkg
