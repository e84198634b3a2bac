package patches

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("--- "+n+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"010_foo-1.0.patch",
		"001_foo-1.0.patch",
		"002_bar-1.0.patch",
		"003_foo-2.0.patch",
		"foo-1.0.patch",
		"1_foo-1.0.patch",
	)
	if err := os.Mkdir(filepath.Join(dir, "004_foo-1.0.d"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Locate(dir, "foo", "1.0")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	want := []string{"001_foo-1.0.patch", "010_foo-1.0.patch"}
	if !slices.Equal(got, want) {
		t.Errorf("Locate() = %v, want %v", got, want)
	}
}

func TestLocateMissingDir(t *testing.T) {
	got, err := Locate(filepath.Join(t.TempDir(), "nope"), "foo", "1.0")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Locate() = %v, want empty", got)
	}
}

func TestLocateNoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "001_bar-1.0.patch")

	got, err := Locate(dir, "foo", "1.0")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Locate() = %v, want empty", got)
	}
}

func TestLocateEscapesVersion(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "001_foo-1x0.patch", "002_foo-1.0.patch")

	got, err := Locate(dir, "foo", "1.0")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if !slices.Equal(got, []string{"002_foo-1.0.patch"}) {
		t.Errorf("Locate() = %v", got)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		file string
		want bool
	}{
		{"001_signal-1.0.11.patch", true},
		{"123_signal-1.0.11-fix-build.patch", true},
		{"001_signal-1.0.10.patch", false},
		{"signal-1.0.11.patch", false},
		{"0001_signal-1.0.11.patch", false},
	}
	for _, tt := range tests {
		if got := Match(tt.file, "signal", "1.0.11"); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.file, got, tt.want)
		}
	}
}

func TestCopy(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "files")
	writeFiles(t, src, "001_foo-1.0.patch")

	mtime := time.Date(2010, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(src, "001_foo-1.0.patch"), mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := Copy(src, []string{"001_foo-1.0.patch"}, dst); err != nil {
		t.Fatalf("Copy error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "001_foo-1.0.patch"))
	if err != nil {
		t.Fatalf("read copied patch: %v", err)
	}
	if string(data) != "--- 001_foo-1.0.patch\n" {
		t.Errorf("copied content = %q", data)
	}

	info, err := os.Stat(filepath.Join(dst, "001_foo-1.0.patch"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
}

func TestCopyNothing(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "files")
	if err := Copy(t.TempDir(), nil, dst); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("Copy with no names should not create the destination")
	}
}
