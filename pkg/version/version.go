package version

import (
	"regexp"
	"slices"
	"strings"
)

var revisionRE = regexp.MustCompile(`-r([0-9]+)$`)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b.
func Compare(a, b string) int {
	ua, ra := split(a)
	ub, rb := split(b)

	sa := strings.Split(ua, ".")
	sb := strings.Split(ub, ".")
	for i := 0; i < len(sa) && i < len(sb); i++ {
		if c := compareSegment(sa[i], sb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(sa) < len(sb):
		return -1
	case len(sa) > len(sb):
		return 1
	}
	return compareNumeric(ra, rb)
}

// Upstream strips a trailing "-rN" revision from v.
func Upstream(v string) string {
	u, _ := split(v)
	return u
}

// Max returns the highest version in vs. It reports false for an empty slice.
func Max(vs []string) (string, bool) {
	if len(vs) == 0 {
		return "", false
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if Compare(v, best) > 0 {
			best = v
		}
	}
	return best, true
}

// Sort orders vs in place from lowest to highest.
func Sort(vs []string) {
	slices.SortStableFunc(vs, Compare)
}

// split separates the upstream part of v from its revision digits.
func split(v string) (upstream, revision string) {
	if m := revisionRE.FindStringSubmatchIndex(v); m != nil {
		return v[:m[0]], v[m[2]:m[3]]
	}
	return v, ""
}

// compareSegment compares "11b" style segments: number first, suffix second.
func compareSegment(a, b string) int {
	na, xa := leadingDigits(a)
	nb, xb := leadingDigits(b)
	if c := compareNumeric(na, nb); c != 0 {
		return c
	}
	return strings.Compare(xa, xb)
}

func leadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// compareNumeric compares two decimal digit strings of any length. An empty
// string sorts before any number.
func compareNumeric(a, b string) int {
	if a == "" || b == "" {
		switch {
		case a == b:
			return 0
		case a == "":
			return -1
		default:
			return 1
		}
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}
