// Package metadata defines the read interface the resolver uses to query the
// package metadata database, together with two implementations.
//
// [DirStore] reads a database laid out on disk as one TOML descriptor per
// package version, grouped by category:
//
//	<root>/
//	  main/
//	    signal-1.0.11.toml
//	    optim-1.0.6.toml
//	  extra/
//	    nan-2.3.2.toml
//	  patches/
//	    001_signal-1.0.11.patch
//
// A descriptor file looks like:
//
//	name = "signal"
//	version = "1.0.11"
//	description = "Signal processing tools"
//	url = "http://octave.sf.net"
//	build_requires = ["virtual/pkgconfig"]
//	system_requirements = [">=sci-libs/fftw-3"]
//	depends = [">=sci-mathematics/octave-3.2"]
//	self_depends = ["optim (>= 1.0.0)", "miscellaneous"]
//
// [MemoryStore] keeps descriptors in memory and is mostly useful in tests.
package metadata
