package metadata

import (
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/version"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		in   string
		want Dependency
	}{
		{"miscellaneous", Dependency{Name: "miscellaneous"}},
		{"optim (>= 1.0.0)", Dependency{Name: "optim", Op: version.OpGreaterEq, Version: "1.0.0"}},
		{"optim(>=1.0.0)", Dependency{Name: "optim", Op: version.OpGreaterEq, Version: "1.0.0"}},
		{"optim >= 1.0.0", Dependency{Name: "optim", Op: version.OpGreaterEq, Version: "1.0.0"}},
		{"optim<2", Dependency{Name: "optim", Op: version.OpLess, Version: "2"}},
		{"io (== 1.0)", Dependency{Name: "io", Op: version.OpEqual, Version: "1.0"}},
		{"  io ( ~ 1.0 )  ", Dependency{Name: "io", Op: version.OpCompatible, Version: "1.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDependency(tt.in)
			if err != nil {
				t.Fatalf("ParseDependency(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDependency(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDependencyInvalid(t *testing.T) {
	for _, in := range []string{"", "optim (!= 1.0)", "optim (>= )", "optim (>=)", "optim >=", "optim > =", "optim (>= beta)", "optim =>1.0", "(>= 1.0)"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDependency(in)
			if !errors.Is(err, errors.ErrCodeInvalidConstraint) {
				t.Errorf("ParseDependency(%q) error = %v, want %v", in, err, errors.ErrCodeInvalidConstraint)
			}
		})
	}
}

func TestDependencyString(t *testing.T) {
	d := Dependency{Name: "optim", Op: version.OpGreaterEq, Version: "1.0"}
	if got := d.String(); got != "optim (>= 1.0)" {
		t.Errorf("String() = %q", got)
	}
	if got := (Dependency{Name: "optim"}).String(); got != "optim" {
		t.Errorf("String() = %q", got)
	}
}

func TestDescriptorDecode(t *testing.T) {
	const doc = `
name = "signal"
version = "1.0.11"
self_depends = ["optim (>= 1.0.0)", "miscellaneous"]
`
	var d Descriptor
	if _, err := toml.Decode(doc, &d); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(d.SelfDepends) != 2 {
		t.Fatalf("SelfDepends = %v, want 2 entries", d.SelfDepends)
	}
	if d.SelfDepends[0] != (Dependency{Name: "optim", Op: version.OpGreaterEq, Version: "1.0.0"}) {
		t.Errorf("SelfDepends[0] = %+v", d.SelfDepends[0])
	}
	if d.SelfDepends[1] != (Dependency{Name: "miscellaneous"}) {
		t.Errorf("SelfDepends[1] = %+v", d.SelfDepends[1])
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("/patches")
	s.Add("main", &Descriptor{Name: "signal", Version: "1.0.9"})
	s.Add("main", &Descriptor{Name: "signal", Version: "1.0.11"})
	s.Add("extra", &Descriptor{Name: "nan", Version: "2.3.2"})

	if got := s.CategoryOf("nan"); got != "extra" {
		t.Errorf("CategoryOf(nan) = %q", got)
	}
	if got := s.CategoryOf("unknown"); got != "" {
		t.Errorf("CategoryOf(unknown) = %q", got)
	}
	if got := s.PatchesRoot(); got != "/patches" {
		t.Errorf("PatchesRoot() = %q", got)
	}

	latest, err := s.LatestVersion("signal")
	if err != nil || latest != "1.0.11" {
		t.Errorf("LatestVersion(signal) = %q, %v", latest, err)
	}
	if _, err := s.LatestVersion("unknown"); !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("LatestVersion(unknown) error = %v", err)
	}
	if _, err := s.Descriptor("signal", "2.0"); !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("Descriptor(signal-2.0) error = %v", err)
	}

	vs, _ := s.AllVersions("signal")
	if len(vs) != 2 || vs[0] != "1.0.9" || vs[1] != "1.0.11" {
		t.Errorf("AllVersions(signal) = %v", vs)
	}
}
