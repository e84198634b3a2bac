// Package keywords turns an ACCEPT_KEYWORDS style expression into the
// KEYWORDS value of a generated recipe.
package keywords

import (
	"slices"
	"strings"

	"github.com/matzehuels/goctave/pkg/errors"
)

// Arches lists the platforms a recipe may be keyworded for.
var Arches = []string{"alpha", "amd64", "hppa", "ppc64", "ppc", "sparc", "x86"}

// Normalize partitions expr into unstable ("~arch") and stable ("arch")
// platforms and returns the unstable ones first, followed by every stable
// platform not already listed as unstable. Each group keeps input order.
// An unrecognized platform yields an INVALID_KEYWORD error.
func Normalize(expr string) (string, error) {
	var stable, unstable []string
	for _, tok := range strings.Fields(expr) {
		arch, tilde := strings.CutPrefix(tok, "~")
		if !slices.Contains(Arches, arch) {
			return "", errors.New(errors.ErrCodeInvalidKeyword, "invalid keyword: %s", tok)
		}
		if tilde {
			unstable = appendUnique(unstable, arch)
		} else {
			stable = appendUnique(stable, arch)
		}
	}

	out := make([]string, 0, len(stable)+len(unstable))
	for _, arch := range unstable {
		out = append(out, "~"+arch)
	}
	for _, arch := range stable {
		if !slices.Contains(unstable, arch) {
			out = append(out, arch)
		}
	}
	return strings.Join(out, " "), nil
}

func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
