// Package version orders octave-forge version identifiers and evaluates
// version constraints.
//
// Versions are dot-separated segments such as "1.0.11" or "2.0b". Each
// segment compares by its leading number first and its alphabetic suffix
// second; a missing trailing segment sorts before a present one, so
// "1.0" < "1.0.0". A trailing Gentoo revision ("-r2") breaks ties last.
//
// Constraints use a closed set of operators ([Op]). Operator strings are
// parsed with [ParseOp], which rejects anything outside that set, and
// [Satisfies] dispatches on the parsed value:
//
//	op, err := version.ParseOp(">=")
//	if err != nil {
//	    return err
//	}
//	ok := version.Satisfies("1.3", op, "1.2") // true
package version
