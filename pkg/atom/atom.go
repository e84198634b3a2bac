// Package atom parses package requests such as "signal", "signal-1.0.11"
// or ">=signal-1.0" and formats the canonical references recipes use to
// depend on one another.
package atom

import (
	"fmt"
	"regexp"
	"strings"

	packageurl "github.com/package-url/packageurl-go"

	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/version"
)

// Category is the overlay category every generated recipe lives in.
const Category = "g-octave"

var (
	opRE          = regexp.MustCompile(`^(<=|>=|==|<|>|=|~)`)
	// A lone version segment must be numeric, so "foo-3d" stays a name.
	nameVersionRE = regexp.MustCompile(`^(.+)-([0-9]+(?:\.[0-9]+[A-Za-z]*)*(?:-r[0-9]+)?)$`)
)

// Atom is a parsed package request.
type Atom struct {
	Name    string
	Version string     // empty means "latest"
	Op      version.Op // OpNone means an exact pin when Version is set
}

// Parse parses s in one of the forms "name", "name-version",
// "<op>name-version", "=g-octave/name-version" or
// "pkg:generic/g-octave/name@version".
func Parse(s string) (Atom, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Atom{}, errors.New(errors.ErrCodeInvalidAtom, "empty package atom")
	}
	if strings.HasPrefix(s, "pkg:") {
		return parsePURL(s)
	}

	var a Atom
	rest := s
	if m := opRE.FindString(s); m != "" {
		op, err := version.ParseOp(m)
		if err != nil {
			return Atom{}, errors.Wrap(errors.ErrCodeInvalidAtom, err, "invalid atom: %q", s)
		}
		a.Op = op
		rest = s[len(m):]
	}

	if cat, name, ok := strings.Cut(rest, "/"); ok {
		if cat != Category {
			return Atom{}, errors.New(errors.ErrCodeInvalidAtom, "invalid atom %q: unknown category %q", s, cat)
		}
		rest = name
	}

	if m := nameVersionRE.FindStringSubmatch(rest); m != nil {
		a.Name, a.Version = m[1], m[2]
	} else {
		a.Name = rest
	}

	if a.Op != version.OpNone && a.Version == "" {
		return Atom{}, errors.New(errors.ErrCodeInvalidAtom, "invalid atom %q: comparator %q requires a version", s, a.Op)
	}
	if a.Op == version.OpEqual {
		a.Op = version.OpNone
	}
	if err := errors.ValidatePackageName(a.Name); err != nil {
		return Atom{}, errors.Wrap(errors.ErrCodeInvalidAtom, err, "invalid atom: %q", s)
	}
	return a, nil
}

func parsePURL(s string) (Atom, error) {
	p, err := packageurl.FromString(s)
	if err != nil {
		return Atom{}, errors.Wrap(errors.ErrCodeInvalidAtom, err, "invalid package URL: %q", s)
	}
	if p.Type != packageurl.TypeGeneric {
		return Atom{}, errors.New(errors.ErrCodeInvalidAtom, "invalid package URL %q: unsupported type %q", s, p.Type)
	}
	if p.Namespace != "" && p.Namespace != Category {
		return Atom{}, errors.New(errors.ErrCodeInvalidAtom, "invalid package URL %q: unknown namespace %q", s, p.Namespace)
	}
	if err := errors.ValidatePackageName(p.Name); err != nil {
		return Atom{}, errors.Wrap(errors.ErrCodeInvalidAtom, err, "invalid package URL: %q", s)
	}
	return Atom{Name: p.Name, Version: p.Version}, nil
}

// Pinned reports whether the atom names one exact version.
func (a Atom) Pinned() bool {
	return a.Version != "" && a.Op == version.OpNone
}

// String formats the atom back into request syntax.
func (a Atom) String() string {
	if a.Version == "" {
		return a.Name
	}
	return string(a.Op) + a.Name + "-" + a.Version
}

// Ref returns the exact-version dependency string for a generated recipe,
// e.g. "=g-octave/signal-1.0.11".
func Ref(name, ver string) string {
	return fmt.Sprintf("=%s/%s-%s", Category, name, ver)
}

// PURL returns the Package URL identifying name at ver.
func PURL(name, ver string) string {
	return packageurl.NewPackageURL(packageurl.TypeGeneric, Category, name, ver, nil, "").ToString()
}
