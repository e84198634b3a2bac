package recipe

import (
	"bytes"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/matzehuels/goctave/pkg/metadata"
)

// MaxDescription is the longest description rendered before truncation.
const MaxDescription = 70

// License is the LICENSE value of every generated recipe.
const License = "|| ( GPL-2 GPL-3 LGPL BSD GFDL )"

var ebuildTmpl = template.Must(template.New("ebuild").Parse(`# Copyright 1999-2010 Gentoo Foundation
# Distributed under the terms of the GNU General Public License v2
# This ebuild was generated by g-octave

EAPI="3"

G_OCTAVE_CAT="{{.Category}}"

inherit g-octave{{if .Patches}} eutils{{end}}

DESCRIPTION="{{.Description}}"
HOMEPAGE="{{.Homepage}}"

LICENSE="{{.License}}"
SLOT="0"
KEYWORDS="{{.Keywords}}"
IUSE=""

# it's annoying have to see the download of packages from the official
# mirrors fail with a 404 error.
RESTRICT="mirror"

DEPEND="{{.Depend}}"
RDEPEND="${DEPEND}
	{{.RDepend}}"
{{if .Patches}}
src_prepare() {
{{- range .Patches}}
	epatch "${FILESDIR}/{{.}}"
{{- end}}
}
{{end}}`))

// Fields holds the values substituted into the ebuild template.
type Fields struct {
	Category    string
	Description string
	Homepage    string
	License     string
	Keywords    string
	Depend      string
	RDepend     string
	Patches     []string
}

// NewFields derives the template fields for d. keywords must already be
// normalized.
func NewFields(d *metadata.Descriptor, category, keywords string, patches []string) Fields {
	build := make([]string, 0, len(d.BuildRequires)+len(d.SystemRequirements))
	build = append(build, d.BuildRequires...)
	build = append(build, d.SystemRequirements...)

	return Fields{
		Category:    category,
		Description: Truncate(d.Description),
		Homepage:    d.URL,
		License:     License,
		Keywords:    keywords,
		Depend:      joinDeps(build),
		RDepend:     joinDeps(d.Depends),
		Patches:     patches,
	}
}

// Text renders the ebuild text for f.
func (f Fields) Text() (string, error) {
	var buf bytes.Buffer
	if err := ebuildTmpl.Execute(&buf, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Truncate shortens s to MaxDescription characters followed by "...".
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescription {
		return s
	}
	return string([]rune(s)[:MaxDescription]) + "..."
}

func joinDeps(deps []string) string {
	return strings.Join(deps, "\n\t")
}
