package recipe

import (
	"strings"
	"testing"

	"github.com/matzehuels/goctave/pkg/metadata"
)

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", 50)
	if got := Truncate(short); got != short {
		t.Errorf("Truncate(50 chars) = %q, want unchanged", got)
	}

	exact := strings.Repeat("b", 70)
	if got := Truncate(exact); got != exact {
		t.Errorf("Truncate(70 chars) = %q, want unchanged", got)
	}

	long := strings.Repeat("c", 90)
	want := strings.Repeat("c", 70) + "..."
	if got := Truncate(long); got != want {
		t.Errorf("Truncate(90 chars) = %q, want %q", got, want)
	}

	wide := strings.Repeat("é", 71)
	if got := Truncate(wide); got != strings.Repeat("é", 70)+"..." {
		t.Errorf("Truncate should count characters, got %q", got)
	}
}

func TestFieldsText(t *testing.T) {
	d := &metadata.Descriptor{
		Name:               "signal",
		Version:            "1.0.11",
		Description:        "Signal processing tools",
		URL:                "http://octave.sf.net",
		BuildRequires:      []string{"virtual/pkgconfig"},
		SystemRequirements: []string{">=sci-libs/fftw-3"},
		Depends:            []string{">=sci-mathematics/octave-3.2", "=g-octave/optim-1.0.6"},
	}

	got, err := NewFields(d, "main", "~amd64 x86", nil).Text()
	if err != nil {
		t.Fatalf("Text error: %v", err)
	}

	want := `# Copyright 1999-2010 Gentoo Foundation
# Distributed under the terms of the GNU General Public License v2
# This ebuild was generated by g-octave

EAPI="3"

G_OCTAVE_CAT="main"

inherit g-octave

DESCRIPTION="Signal processing tools"
HOMEPAGE="http://octave.sf.net"

LICENSE="|| ( GPL-2 GPL-3 LGPL BSD GFDL )"
SLOT="0"
KEYWORDS="~amd64 x86"
IUSE=""

# it's annoying have to see the download of packages from the official
# mirrors fail with a 404 error.
RESTRICT="mirror"

DEPEND="virtual/pkgconfig
	>=sci-libs/fftw-3"
RDEPEND="${DEPEND}
	>=sci-mathematics/octave-3.2
	=g-octave/optim-1.0.6"
`
	if got != want {
		t.Errorf("Text() mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestFieldsTextWithPatches(t *testing.T) {
	d := &metadata.Descriptor{Name: "foo", Version: "1.0"}

	got, err := NewFields(d, "extra", "x86", []string{"001_foo-1.0.patch", "010_foo-1.0.patch"}).Text()
	if err != nil {
		t.Fatalf("Text error: %v", err)
	}

	if !strings.Contains(got, "inherit g-octave eutils\n") {
		t.Error("patched ebuild should inherit eutils")
	}

	block := `RDEPEND="${DEPEND}
	"

src_prepare() {
	epatch "${FILESDIR}/001_foo-1.0.patch"
	epatch "${FILESDIR}/010_foo-1.0.patch"
}
`
	if !strings.HasSuffix(got, block) {
		t.Errorf("patch block mismatch, got:\n%s", got)
	}
}

func TestFieldsSystemRequirementsOnly(t *testing.T) {
	d := &metadata.Descriptor{
		Name:               "foo",
		Version:            "1.0",
		SystemRequirements: []string{"sci-libs/gsl"},
	}
	f := NewFields(d, "", "", nil)
	if f.Depend != "sci-libs/gsl" {
		t.Errorf("Depend = %q", f.Depend)
	}
}
