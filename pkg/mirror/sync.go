package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/goctave/pkg/cache"
	"github.com/matzehuels/goctave/pkg/errors"
)

// IndexFile is the name of the index published at the mirror root.
const IndexFile = "index.toml"

// File is one entry of a mirror index.
type File struct {
	Path   string `toml:"path"`
	SHA256 string `toml:"sha256"`
}

// Index lists the files of a metadata database.
type Index struct {
	Files []File `toml:"files"`
}

// ParseIndex decodes an index and validates every path in it.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if _, err := toml.Decode(string(data), &idx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse mirror index")
	}
	for i := range idx.Files {
		f := &idx.Files[i]
		if err := errors.ValidatePath(f.Path); err != nil {
			return nil, err
		}
		f.SHA256 = strings.ToLower(f.SHA256)
		if !cache.ValidDigest(f.SHA256) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid sha256 for %s: %q", f.Path, f.SHA256)
		}
	}
	return &idx, nil
}

// Result summarizes one Sync.
type Result struct {
	Fetched int // downloaded from the mirror
	Cached  int // restored from the cache
	Current int // already up to date on disk
}

// Syncer copies a mirror into a local database directory.
type Syncer struct {
	URL    string               // Mirror base URL
	Root   string               // Local database directory
	Getter Getter               // Download client
	Cache  cache.Cache          // Blob cache keyed by sha256 (optional)
	TTL    time.Duration        // Cache entry lifetime
	Logger func(string, ...any) // Progress callback (optional)
}

// Sync fetches the index and brings every listed file up to date.
// Files are written only after their digest has been verified.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	var res Result
	if err := errors.ValidateURL(s.URL); err != nil {
		return res, err
	}
	logf := s.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}
	c := s.Cache
	if c == nil {
		c = cache.NewNullCache()
	}

	base := strings.TrimSuffix(s.URL, "/")
	raw, err := s.Getter.Get(ctx, base+"/"+IndexFile)
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeNetwork, err, "fetch mirror index")
	}
	idx, err := ParseIndex(raw)
	if err != nil {
		return res, err
	}
	logf("Mirror index lists %d files", len(idx.Files))

	for _, f := range idx.Files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		dst := filepath.Join(s.Root, filepath.FromSlash(f.Path))
		if digestOf(dst) == f.SHA256 {
			res.Current++
			continue
		}

		data, hit, err := c.Get(ctx, f.SHA256)
		if err != nil {
			logf("cache read failed: %s: %v", f.Path, err)
		}
		if hit {
			res.Cached++
		} else {
			data, err = s.Getter.Get(ctx, base+"/"+f.Path)
			if err != nil {
				return res, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", f.Path)
			}
			if got := cache.Digest(data); got != f.SHA256 {
				return res, errors.New(errors.ErrCodeChecksum, "checksum mismatch for %s: got %s, want %s", f.Path, got, f.SHA256)
			}
			if err := c.Set(ctx, f.SHA256, data, s.TTL); err != nil {
				logf("cache write failed: %s: %v", f.Path, err)
			}
			res.Fetched++
		}

		if err := writeFile(dst, data); err != nil {
			return res, err
		}
		logf("Updated %s", f.Path)
	}

	if err := writeFile(filepath.Join(s.Root, IndexFile), raw); err != nil {
		return res, err
	}
	return res, nil
}

func digestOf(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return cache.Digest(data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
