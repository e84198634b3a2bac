package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/goctave/pkg/atom"
	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/version"
)

const (
	descriptorExt = ".toml"
	patchesDir    = "patches"
)

// DirStore is a Store reading TOML descriptors from a directory tree.
// Descriptor files are indexed when the store is opened and decoded lazily
// on first use.
type DirStore struct {
	root string

	mu         sync.Mutex
	categories map[string]string            // name -> category
	files      map[string]map[string]string // name -> version -> path
	loaded     map[string]*Descriptor       // path -> descriptor
}

// OpenDir indexes the descriptors found in the given category directories
// below root. Missing category directories are skipped.
func OpenDir(root string, categories []string) (*DirStore, error) {
	s := &DirStore{
		root:       root,
		categories: make(map[string]string),
		files:      make(map[string]map[string]string),
		loaded:     make(map[string]*Descriptor),
	}
	for _, cat := range categories {
		if err := s.index(cat); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *DirStore) index(category string) error {
	dir := filepath.Join(s.root, category)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read category %s: %w", category, err)
	}

	for _, e := range entries {
		stem, ok := strings.CutSuffix(e.Name(), descriptorExt)
		if e.IsDir() || !ok {
			continue
		}
		a, err := atom.Parse(stem)
		if err != nil || a.Version == "" {
			continue
		}
		if s.files[a.Name] == nil {
			s.files[a.Name] = make(map[string]string)
		}
		s.files[a.Name][a.Version] = filepath.Join(dir, e.Name())
		s.categories[a.Name] = category
	}
	return nil
}

// Root returns the database root directory.
func (s *DirStore) Root() string { return s.root }

func (s *DirStore) PatchesRoot() string { return filepath.Join(s.root, patchesDir) }

func (s *DirStore) CategoryOf(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories[name]
}

func (s *DirStore) AllVersions(name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs := make([]string, 0, len(s.files[name]))
	for v := range s.files[name] {
		vs = append(vs, v)
	}
	version.Sort(vs)
	return vs, nil
}

func (s *DirStore) LatestVersion(name string) (string, error) {
	vs, err := s.AllVersions(name)
	if err != nil {
		return "", err
	}
	if v, ok := version.Max(vs); ok {
		return v, nil
	}
	return "", notFound(name, "")
}

func (s *DirStore) Descriptor(name, ver string) (*Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.files[name][ver]
	if !ok {
		return nil, notFound(name, ver)
	}
	if d, ok := s.loaded[path]; ok {
		return d, nil
	}

	d, err := decodeDescriptor(path)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = name
	}
	if d.Version == "" {
		d.Version = ver
	}
	if d.Name != name || d.Version != ver {
		return nil, errors.New(errors.ErrCodeInternal,
			"descriptor %s describes %s-%s", filepath.Base(path), d.Name, d.Version)
	}
	s.loaded[path] = d
	return d, nil
}

// descriptorFile is the on-disk form of a Descriptor. self_depends is
// decoded as text and parsed afterwards so a malformed constraint keeps
// its INVALID_CONSTRAINT code.
type descriptorFile struct {
	Name               string   `toml:"name"`
	Version            string   `toml:"version"`
	Description        string   `toml:"description"`
	URL                string   `toml:"url"`
	License            string   `toml:"license"`
	BuildRequires      []string `toml:"build_requires"`
	SystemRequirements []string `toml:"system_requirements"`
	Depends            []string `toml:"depends"`
	SelfDepends        []string `toml:"self_depends"`
}

func decodeDescriptor(path string) (*Descriptor, error) {
	var f descriptorFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode descriptor %s", filepath.Base(path))
	}
	d := &Descriptor{
		Name:               f.Name,
		Version:            f.Version,
		Description:        f.Description,
		URL:                f.URL,
		License:            f.License,
		BuildRequires:      f.BuildRequires,
		SystemRequirements: f.SystemRequirements,
		Depends:            f.Depends,
	}
	for _, raw := range f.SelfDepends {
		dep, err := ParseDependency(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConstraint, err, "descriptor %s", filepath.Base(path))
		}
		d.SelfDepends = append(d.SelfDepends, dep)
	}
	return d, nil
}

// Names returns every package name in the store, sorted.
func (s *DirStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

var _ Store = (*DirStore)(nil)
