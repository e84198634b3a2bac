package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/goctave/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Errorf("Clear error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	payload := []byte("payload")
	digest := Digest(payload)

	if _, hit, err := c.Get(ctx, digest); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, digest, payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, digest)
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	stored, err := os.ReadFile(filepath.Join(c.Dir(), digest[:2], digest[2:]))
	if err != nil || string(stored) != "payload" {
		t.Errorf("blob on disk = %q, %v; want raw payload", stored, err)
	}

	if err := c.Delete(ctx, digest); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, digest); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, digest); err != nil {
		t.Errorf("Delete of missing entry: %v", err)
	}
}

func TestFileCacheIgnoresTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	data := []byte("x")
	if err := c.Set(ctx, Digest(data), data, time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, Digest(data)); !hit {
		t.Error("file blobs should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	digest := Digest([]byte("expected"))
	path := c.path(digest)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("tampered"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, digest); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want a clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheRejectsMismatch(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	digest := Digest([]byte("expected"))
	err := c.Set(ctx, digest, []byte("other"), 0)
	if !errors.Is(err, errors.ErrCodeChecksum) {
		t.Errorf("Set with wrong data = %v, want %s", err, errors.ErrCodeChecksum)
	}
	if _, err := os.Stat(c.path(digest)); !os.IsNotExist(err) {
		t.Error("mismatched data stored")
	}
}

func TestFileCacheInvalidDigest(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, d := range []string{"", "index", "../../etc/passwd", strings.Repeat("A", 64)} {
		if _, _, err := c.Get(ctx, d); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Get(%q) error = %v, want %s", d, err, errors.ErrCodeInvalidInput)
		}
		if err := c.Set(ctx, d, []byte("x"), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Set(%q) error = %v, want %s", d, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, Digest([]byte(k)), []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		url     string
		dir     string
		want    string
		wantErr bool
	}{
		{name: "file default", dir: dir, want: "*cache.FileCache"},
		{name: "no dir", want: "*cache.NullCache"},
		{name: "disabled", url: "none", dir: dir, want: "*cache.NullCache"},
		{name: "file url", url: "file://" + dir, want: "*cache.FileCache"},
		{name: "redis", url: "redis://localhost:6379/0", want: "*cache.RedisCache"},
		{name: "bad redis", url: "redis://localhost:6379/notadb", wantErr: true},
		{name: "unknown scheme", url: "memcached://localhost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.url, tt.dir)
			if tt.wantErr {
				if err == nil {
					t.Errorf("New(%q) should fail", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q, %q): %v", tt.url, tt.dir, err)
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("New(%q, %q) = %s, want %s", tt.url, tt.dir, got, tt.want)
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *FileCache:
		return "*cache.FileCache"
	case *NullCache:
		return "*cache.NullCache"
	case *RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}

func TestDigest(t *testing.T) {
	// sha256("hello")
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := Digest([]byte("hello")); got != want {
		t.Errorf("Digest = %s, want %s", got, want)
	}
	if !ValidDigest(want) {
		t.Error("ValidDigest rejects a real digest")
	}
	for _, bad := range []string{"", want[:63], strings.ToUpper(want), want + "0", strings.Repeat("g", 64)} {
		if ValidDigest(bad) {
			t.Errorf("ValidDigest(%q) = true", bad)
		}
	}
}
