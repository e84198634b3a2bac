package metadata

import (
	"slices"

	"github.com/matzehuels/goctave/pkg/version"
)

// MemoryStore is a Store backed by in-memory descriptors.
type MemoryStore struct {
	patches    string
	categories map[string]string
	pkgs       map[string]map[string]*Descriptor
}

// NewMemoryStore creates an empty store whose patches live in patchesRoot.
func NewMemoryStore(patchesRoot string) *MemoryStore {
	return &MemoryStore{
		patches:    patchesRoot,
		categories: make(map[string]string),
		pkgs:       make(map[string]map[string]*Descriptor),
	}
}

// Add registers d under category, replacing any descriptor with the same
// name and version.
func (s *MemoryStore) Add(category string, d *Descriptor) {
	if s.pkgs[d.Name] == nil {
		s.pkgs[d.Name] = make(map[string]*Descriptor)
	}
	s.pkgs[d.Name][d.Version] = d
	s.categories[d.Name] = category
}

func (s *MemoryStore) CategoryOf(name string) string { return s.categories[name] }

func (s *MemoryStore) PatchesRoot() string { return s.patches }

func (s *MemoryStore) Descriptor(name, ver string) (*Descriptor, error) {
	if d, ok := s.pkgs[name][ver]; ok {
		return d, nil
	}
	return nil, notFound(name, ver)
}

func (s *MemoryStore) AllVersions(name string) ([]string, error) {
	var vs []string
	for v := range s.pkgs[name] {
		vs = append(vs, v)
	}
	version.Sort(vs)
	return vs, nil
}

func (s *MemoryStore) LatestVersion(name string) (string, error) {
	vs, _ := s.AllVersions(name)
	if v, ok := version.Max(vs); ok {
		return v, nil
	}
	return "", notFound(name, "")
}

// Names returns every package name in the store, sorted.
func (s *MemoryStore) Names() []string {
	names := make([]string, 0, len(s.pkgs))
	for n := range s.pkgs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

var _ Store = (*MemoryStore)(nil)
