// Package recipe renders the ebuild for one resolved package version.
//
// A [Renderer] writes recipes below an overlay directory:
//
//	<overlay>/g-octave/<name>/<name>-<version>.ebuild
//	<overlay>/g-octave/<name>/files/NNN_<name>-<version>*.patch
//
// Rendering is idempotent: an ebuild that already exists is left untouched
// unless [Options.Force] is set. After writing, the renderer can hand the
// file to a [ManifestRunner], which by default runs "ebuild <file> manifest".
package recipe
