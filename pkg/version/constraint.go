package version

import (
	"strings"

	"github.com/matzehuels/goctave/pkg/errors"
)

// Op is a version comparison operator.
type Op string

// Supported operators.
const (
	OpNone       Op = ""
	OpLess       Op = "<"
	OpLessEq     Op = "<="
	OpEqual      Op = "="
	OpGreaterEq  Op = ">="
	OpGreater    Op = ">"
	OpCompatible Op = "~"
)

// ParseOp converts s into an Op. "==" is accepted as an alias of "=".
// Any other string yields an INVALID_CONSTRAINT error.
func ParseOp(s string) (Op, error) {
	switch strings.TrimSpace(s) {
	case "<":
		return OpLess, nil
	case "<=":
		return OpLessEq, nil
	case "=", "==":
		return OpEqual, nil
	case ">=":
		return OpGreaterEq, nil
	case ">":
		return OpGreater, nil
	case "~":
		return OpCompatible, nil
	}
	return OpNone, errors.New(errors.ErrCodeInvalidConstraint, "invalid comparator: %q", s)
}

// Satisfies reports whether v meets the constraint "op required".
// OpCompatible matches any revision of the same upstream version.
// Unknown operators never match.
func Satisfies(v string, op Op, required string) bool {
	switch op {
	case OpLess:
		return Compare(v, required) < 0
	case OpLessEq:
		return Compare(v, required) <= 0
	case OpEqual:
		return Compare(v, required) == 0
	case OpGreaterEq:
		return Compare(v, required) >= 0
	case OpGreater:
		return Compare(v, required) > 0
	case OpCompatible:
		return Compare(Upstream(v), Upstream(required)) == 0
	}
	return false
}

// Filter returns the versions in vs that satisfy "op required", preserving
// their order.
func Filter(vs []string, op Op, required string) []string {
	var out []string
	for _, v := range vs {
		if Satisfies(v, op, required) {
			out = append(out, v)
		}
	}
	return out
}

// Best returns the highest version in vs that satisfies "op required".
func Best(vs []string, op Op, required string) (string, bool) {
	return Max(Filter(vs, op, required))
}
