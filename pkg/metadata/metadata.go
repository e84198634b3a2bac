package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/version"
)

// Store is the read interface over the package metadata database.
type Store interface {
	// CategoryOf returns the category name belongs to, or "" if unknown.
	CategoryOf(name string) string
	// Descriptor returns the metadata for name at ver. A missing package
	// yields a PACKAGE_NOT_FOUND error.
	Descriptor(name, ver string) (*Descriptor, error)
	// LatestVersion returns the highest known version of name.
	LatestVersion(name string) (string, error)
	// AllVersions returns every known version of name, lowest first.
	AllVersions(name string) ([]string, error)
	// PatchesRoot returns the directory holding patch files.
	PatchesRoot() string
}

// Descriptor is the metadata of one package at one version.
type Descriptor struct {
	Name               string       `toml:"name"`
	Version            string       `toml:"version"`
	Description        string       `toml:"description"`
	URL                string       `toml:"url"`
	License            string       `toml:"license"`
	BuildRequires      []string     `toml:"build_requires"`
	SystemRequirements []string     `toml:"system_requirements"`
	Depends            []string     `toml:"depends"`
	SelfDepends        []Dependency `toml:"self_depends"`
}

// Dependency is a reference to another package of the collection,
// optionally constrained to a version range.
type Dependency struct {
	Name    string
	Op      version.Op
	Version string
}

var depRE = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_+.-]*)\s*(?:\(\s*([<>=!~]+)\s*([0-9][^\s)]*)\s*\)|([<>=!~]+)\s*([0-9]\S*))?$`)

// ParseDependency parses "name", "name (>= 1.0)" or "name >= 1.0".
func ParseDependency(s string) (Dependency, error) {
	s = strings.TrimSpace(s)
	m := depRE.FindStringSubmatch(s)
	if m == nil {
		return Dependency{}, errors.New(errors.ErrCodeInvalidConstraint, "invalid dependency: %q", s)
	}

	d := Dependency{Name: m[1]}
	op, ver := m[2], m[3]
	if op == "" {
		op, ver = m[4], m[5]
	}
	if op == "" {
		return d, nil
	}

	parsed, err := version.ParseOp(op)
	if err != nil {
		return Dependency{}, errors.Wrap(errors.ErrCodeInvalidConstraint, err, "invalid dependency: %q", s)
	}
	d.Op, d.Version = parsed, ver
	return d, nil
}

// Constrained reports whether d restricts the acceptable versions.
func (d Dependency) Constrained() bool {
	return d.Op != version.OpNone && d.Version != ""
}

// String formats d as "name (op version)".
func (d Dependency) String() string {
	if !d.Constrained() {
		return d.Name
	}
	return fmt.Sprintf("%s (%s %s)", d.Name, d.Op, d.Version)
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Dependency) UnmarshalText(text []byte) error {
	parsed, err := ParseDependency(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Dependency) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func notFound(name, ver string) error {
	if ver == "" {
		return errors.New(errors.ErrCodePackageNotFound, "package not found: %s", name)
	}
	return errors.New(errors.ErrCodePackageNotFound, "package not found: %s-%s", name, ver)
}
