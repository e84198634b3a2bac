package resolver

import (
	"context"
	"strings"

	"github.com/matzehuels/goctave/pkg/atom"
	"github.com/matzehuels/goctave/pkg/dag"
	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/metadata"
	"github.com/matzehuels/goctave/pkg/recipe"
	"github.com/matzehuels/goctave/pkg/version"
)

// Options configures dependency resolution behavior.
type Options struct {
	Force    bool                 // Rewrite recipes that already exist
	NoDeps   bool                 // Only create the primary recipe
	Manifest bool                 // Run the manifest step after each write
	Keywords string               // ACCEPT_KEYWORDS override for every recipe
	Logger   func(string, ...any) // Progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Renderer writes the recipe of one descriptor.
type Renderer interface {
	Render(ctx context.Context, d *metadata.Descriptor, opts recipe.Options) (recipe.Artifact, error)
	Path(name, ver string) string
	Exists(name, ver string) bool
}

// Resolver resolves atoms against a metadata store and renders the results.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	store    metadata.Store
	renderer Renderer
	opts     Options
	graph    *dag.DAG
}

// New creates a Resolver.
func New(store metadata.Store, renderer Renderer, opts Options) *Resolver {
	return &Resolver{
		store:    store,
		renderer: renderer,
		opts:     opts.WithDefaults(),
		graph:    dag.New(nil),
	}
}

// Graph returns the resolution graph of the last Create or Plan call.
func (r *Resolver) Graph() *dag.DAG { return r.graph }

// Create resolves s, renders its recipe and, unless NoDeps is set, the
// recipes of its dependencies. The returned artifact describes the primary
// recipe.
func (r *Resolver) Create(ctx context.Context, s string) (recipe.Artifact, error) {
	return r.run(ctx, s, false)
}

// Plan resolves s and all of its dependencies without writing anything and
// returns the resolution graph. Existing recipes do not stop the walk.
func (r *Resolver) Plan(ctx context.Context, s string) (*dag.DAG, error) {
	if _, err := r.run(ctx, s, true); err != nil {
		return nil, err
	}
	return r.graph, nil
}

func (r *Resolver) run(ctx context.Context, s string, dry bool) (recipe.Artifact, error) {
	a, err := atom.Parse(s)
	if err != nil {
		return recipe.Artifact{}, err
	}
	name, ver, err := r.ResolveAtom(a)
	if err != nil {
		return recipe.Artifact{}, err
	}

	w := &walk{
		Resolver: r,
		dry:      dry,
		active:   make(map[string]bool),
		done:     make(map[string]recipe.Artifact),
	}
	r.graph = dag.New(dag.Metadata{"atom": s})
	return w.visit(ctx, name, ver, "", nil, 0)
}

// ResolveAtom picks the version a of refers to: the latest version when
// unversioned, the version itself when pinned, or the highest version
// satisfying the comparator.
func (r *Resolver) ResolveAtom(a atom.Atom) (name, ver string, err error) {
	switch {
	case a.Version == "":
		ver, err = r.store.LatestVersion(a.Name)
		return a.Name, ver, err
	case a.Pinned():
		return a.Name, a.Version, nil
	default:
		ver, err = r.best(a.Name, a.Op, a.Version)
		return a.Name, ver, err
	}
}

// Resolve picks the version a self-dependency refers to: the latest version
// when unconstrained, otherwise the highest version satisfying the
// constraint.
func (r *Resolver) Resolve(ctx context.Context, dep metadata.Dependency) (name, ver string, err error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if !dep.Constrained() {
		ver, err = r.store.LatestVersion(dep.Name)
		return dep.Name, ver, err
	}
	ver, err = r.best(dep.Name, dep.Op, dep.Version)
	return dep.Name, ver, err
}

func (r *Resolver) best(name string, op version.Op, required string) (string, error) {
	all, err := r.store.AllVersions(name)
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", errors.New(errors.ErrCodePackageNotFound, "package not found: %s", name)
	}
	v, ok := version.Best(all, op, required)
	if !ok {
		return "", errors.New(errors.ErrCodeUnresolvableDependency,
			"no version of %s satisfies %s %s (available: %s)", name, op, required, strings.Join(all, ", "))
	}
	return v, nil
}

// walk is the state of one Create or Plan call.
type walk struct {
	*Resolver
	dry    bool
	active map[string]bool // package versions on the current chain
	chain  []string
	done   map[string]recipe.Artifact
}

func (w *walk) visit(ctx context.Context, name, ver, parent string, via *metadata.Dependency, depth int) (recipe.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return recipe.Artifact{}, err
	}

	id := nodeID(name, ver)
	w.record(id, name, ver, parent, via, depth)

	if w.active[id] {
		cycle := append(append([]string{}, w.chain...), id)
		return recipe.Artifact{}, errors.New(errors.ErrCodeDependencyCycle,
			"dependency cycle: %s", strings.Join(cycle, " -> "))
	}
	if art, ok := w.done[id]; ok {
		return art, nil
	}

	d, err := w.store.Descriptor(name, ver)
	if err != nil {
		return recipe.Artifact{}, err
	}

	art, err := w.render(ctx, d)
	if err != nil {
		return art, err
	}
	if n, ok := w.graph.Node(id); ok {
		n.Meta["written"] = art.Written
		n.Meta["path"] = art.Path
	}

	if (art.Written || w.dry) && !w.opts.NoDeps {
		w.active[id] = true
		w.chain = append(w.chain, id)
		err := w.visitDeps(ctx, d, id, depth)
		w.chain = w.chain[:len(w.chain)-1]
		delete(w.active, id)
		if err != nil {
			return art, err
		}
	}

	w.done[id] = art
	return art, nil
}

func (w *walk) visitDeps(ctx context.Context, d *metadata.Descriptor, id string, depth int) error {
	for i := range d.SelfDepends {
		dep := d.SelfDepends[i]
		name, ver, err := w.Resolve(ctx, dep)
		if err != nil {
			if code := errors.GetCode(err); code != "" {
				return errors.Wrap(code, err, "resolve %s for %s", dep, id)
			}
			return err
		}
		w.opts.Logger("Resolved %s: %s", dep, nodeID(name, ver))
		if _, err := w.visit(ctx, name, ver, id, &dep, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *walk) render(ctx context.Context, d *metadata.Descriptor) (recipe.Artifact, error) {
	if w.dry {
		return recipe.Artifact{
			Name:    d.Name,
			Version: d.Version,
			Path:    w.renderer.Path(d.Name, d.Version),
			Ref:     atom.Ref(d.Name, d.Version),
		}, nil
	}
	return w.renderer.Render(ctx, d, recipe.Options{
		Force:    w.opts.Force,
		Manifest: w.opts.Manifest,
		Keywords: w.opts.Keywords,
	})
}

// record adds the node for name at ver and the edge from parent to the graph.
func (w *walk) record(id, name, ver, parent string, via *metadata.Dependency, depth int) {
	_ = w.graph.AddNode(dag.Node{
		ID:  id,
		Row: depth,
		Meta: dag.Metadata{
			"name":     name,
			"version":  ver,
			"ref":      atom.Ref(name, ver),
			"category": w.store.CategoryOf(name),
			"exists":   w.renderer.Exists(name, ver),
		},
	})
	if parent == "" {
		return
	}
	meta := dag.Metadata{}
	if via != nil && via.Constrained() {
		meta["constraint"] = via.String()
	}
	_ = w.graph.AddEdge(dag.Edge{From: parent, To: id, Meta: meta})
}

func nodeID(name, ver string) string { return name + "-" + ver }
