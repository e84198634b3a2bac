package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores each blob as a plain file named by its digest and
// sharded by the digest's first two hex digits:
//
//	<dir>/5f/1c...e2
//
// Blobs are immutable, so entries do not expire; ttl is ignored and
// [FileCache.Clear] empties the cache.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get reads the blob for digest. A blob whose content does not match its
// name is removed and reported as a miss.
func (c *FileCache) Get(ctx context.Context, digest string) ([]byte, bool, error) {
	if err := checkDigest(digest); err != nil {
		return nil, false, err
	}
	path := c.path(digest)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if Digest(data) != digest {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data under digest after checking that it hashes to digest.
func (c *FileCache) Set(ctx context.Context, digest string, data []byte, ttl time.Duration) error {
	if err := verify(digest, data); err != nil {
		return err
	}
	path := c.path(digest)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".blob-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Delete removes the blob for digest.
func (c *FileCache) Delete(ctx context.Context, digest string) error {
	if err := checkDigest(digest); err != nil {
		return err
	}
	err := os.Remove(c.path(digest))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry. The cache directory itself is kept.
func (c *FileCache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) path(digest string) string {
	return filepath.Join(c.dir, digest[:2], digest[2:])
}

var _ Cache = (*FileCache)(nil)
