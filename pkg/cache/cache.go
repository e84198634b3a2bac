// Package cache keeps verified package-database files so a later sync can
// restore them without downloading them again.
//
// Entries are content addressed: the key of a value is the hex SHA-256
// digest of the value itself. Set rejects data that does not hash to its
// key, and Get treats stored bytes that no longer hash to their key as a
// miss, so a cache hit is always safe to write into the database.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one file per digest in a local directory
//   - [RedisCache]: a shared Redis server, selected with a redis:// URL
//   - [NullCache]: stores nothing, used when caching is disabled
//
// [New] picks the backend from configuration.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/goctave/pkg/errors"
)

// Cache stores blobs under their SHA-256 digest.
type Cache interface {
	// Get returns the blob with the given digest. The bool is false on a
	// miss, an expired entry or an entry that fails verification.
	Get(ctx context.Context, digest string) ([]byte, bool, error)
	// Set stores data under digest. A ttl of 0 means the entry never
	// expires; backends without eviction may ignore ttl.
	Set(ctx context.Context, digest string, data []byte, ttl time.Duration) error
	// Delete removes digest. Deleting a missing entry is not an error.
	Delete(ctx context.Context, digest string) error
	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error
	// Close releases resources held by the cache.
	Close() error
}

// New returns the cache selected by url:
//
//   - "" uses a FileCache in dir, or a NullCache when dir is empty
//   - "none" or "off" disables caching
//   - "redis://..." or "rediss://..." connects to Redis
//   - "file://<path>" uses a FileCache in path
func New(url, dir string) (Cache, error) {
	switch {
	case url == "" && dir == "", url == "none", url == "off":
		return NewNullCache(), nil
	case url == "":
		return fileCache(dir)
	case strings.HasPrefix(url, "file://"):
		return fileCache(strings.TrimPrefix(url, "file://"))
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		c, err := NewRedisCache(url)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported cache url: %q", url)
}

func fileCache(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidDigest reports whether s is a lowercase hex SHA-256 digest.
func ValidDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func checkDigest(digest string) error {
	if !ValidDigest(digest) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache digest: %q", digest)
	}
	return nil
}

// verify checks digest and that data hashes to it.
func verify(digest string, data []byte) error {
	if err := checkDigest(digest); err != nil {
		return err
	}
	if got := Digest(data); got != digest {
		return errors.New(errors.ErrCodeChecksum, "cache entry %s holds data with digest %s", digest, got)
	}
	return nil
}
