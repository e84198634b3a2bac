package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/goctave/pkg/atom"
	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/keywords"
	"github.com/matzehuels/goctave/pkg/metadata"
	"github.com/matzehuels/goctave/pkg/patches"
)

// Ext is the file extension of generated recipes.
const Ext = ".ebuild"

// Options controls a single Render call.
type Options struct {
	Force    bool   // Rewrite an existing ebuild
	Manifest bool   // Run the ManifestRunner on the written file
	Keywords string // ACCEPT_KEYWORDS expression; Config.Keywords when empty
}

// Config configures a Renderer.
type Config struct {
	Overlay  string               // Output root
	Keywords string               // Default ACCEPT_KEYWORDS expression
	Manifest ManifestRunner       // Manifest generator (optional)
	Logger   func(string, ...any) // Progress callback (optional)
}

// Artifact describes a rendered (or already present) ebuild.
type Artifact struct {
	Name    string
	Version string
	Path    string   // Location of the ebuild file
	Ref     string   // Exact dependency string, e.g. "=g-octave/signal-1.0.11"
	Written bool     // False when an existing file was left untouched
	Patches []string // Patches applied by the ebuild, in order
}

// PURL returns the Package URL of the artifact.
func (a Artifact) PURL() string { return atom.PURL(a.Name, a.Version) }

// Renderer writes ebuilds for descriptors of a metadata store.
type Renderer struct {
	store metadata.Store
	cfg   Config
}

// NewRenderer creates a Renderer reading categories and patches from store.
func NewRenderer(store metadata.Store, cfg Config) *Renderer {
	if cfg.Logger == nil {
		cfg.Logger = func(string, ...any) {}
	}
	return &Renderer{store: store, cfg: cfg}
}

// PackageDir returns the overlay directory holding the ebuilds of name.
func (r *Renderer) PackageDir(name string) string {
	return filepath.Join(r.cfg.Overlay, atom.Category, name)
}

// Path returns the ebuild location for name at ver.
func (r *Renderer) Path(name, ver string) string {
	return filepath.Join(r.PackageDir(name), name+"-"+ver+Ext)
}

// Exists reports whether the ebuild for name at ver is already present.
func (r *Renderer) Exists(name, ver string) bool {
	_, err := os.Stat(r.Path(name, ver))
	return err == nil
}

// Render writes the ebuild for d unless it already exists and opts.Force is
// false. The returned artifact's Written field tells the two cases apart.
func (r *Renderer) Render(ctx context.Context, d *metadata.Descriptor, opts Options) (Artifact, error) {
	art := Artifact{
		Name:    d.Name,
		Version: d.Version,
		Path:    r.Path(d.Name, d.Version),
		Ref:     atom.Ref(d.Name, d.Version),
	}
	if !opts.Force && r.Exists(d.Name, d.Version) {
		return art, nil
	}

	label := fmt.Sprintf("%s/%s-%s%s", atom.Category, d.Name, d.Version, Ext)
	r.cfg.Logger("Creating ebuild: %s", label)

	patchList, err := r.write(d, opts, art.Path)
	if err != nil {
		r.cfg.Logger("Failed to create: %s", label)
		return art, err
	}
	art.Written = true
	art.Patches = patchList

	if opts.Manifest && r.cfg.Manifest != nil {
		if err := r.cfg.Manifest.Run(ctx, art.Path); err != nil {
			r.cfg.Logger("Failed to create Manifest: %s", label)
			return art, err
		}
	}
	return art, nil
}

func (r *Renderer) write(d *metadata.Descriptor, opts Options, path string) ([]string, error) {
	expr := opts.Keywords
	if expr == "" {
		expr = r.cfg.Keywords
	}
	kw, err := keywords.Normalize(expr)
	if err != nil {
		return nil, err
	}

	src := r.store.PatchesRoot()
	found, err := patches.Locate(src, d.Name, d.Version)
	if err != nil {
		return nil, err
	}

	text, err := NewFields(d, r.store.CategoryOf(d.Name), kw, found).Text()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s-%s", d.Name, d.Version)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create package dir: %w", err)
	}
	if err := patches.Copy(src, found, filepath.Join(dir, "files")); err != nil {
		return nil, err
	}
	if err := writeFile(path, []byte(text)); err != nil {
		return nil, err
	}
	return found, nil
}

// writeFile writes data to path atomically (write temp + rename).
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write ebuild: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename ebuild: %w", err)
	}
	return nil
}
