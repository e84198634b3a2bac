// Package patches finds the patch files that belong to one package version
// and copies them next to its recipe.
//
// Patch files follow the naming convention "NNN_<name>-<version>...", where
// NNN is a zero-padded three digit sequence number that fixes the order in
// which the patches are applied.
package patches

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
)

// Locate returns the names of the patch files in dir that belong to name at
// ver, sorted lexicographically. A missing directory yields no patches.
func Locate(dir, name, ver string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read patches dir: %w", err)
	}

	re := pattern(name, ver)
	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if re.MatchString(e.Name()) {
			found = append(found, e.Name())
		}
	}
	slices.Sort(found)
	return found, nil
}

// Match reports whether filename is a patch for name at ver.
func Match(filename, name, ver string) bool {
	return pattern(name, ver).MatchString(filename)
}

func pattern(name, ver string) *regexp.Regexp {
	return regexp.MustCompile(`^[0-9]{3}_` + regexp.QuoteMeta(name+"-"+ver))
}

// Copy copies each named file from srcDir into dstDir, creating dstDir if
// needed. File mode and modification time are preserved.
func Copy(srcDir string, names []string, dstDir string) error {
	if len(names) == 0 {
		return nil
	}
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("create files dir: %w", err)
	}
	for _, n := range names {
		if err := copyFile(filepath.Join(srcDir, n), filepath.Join(dstDir, n)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open patch: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat patch: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(dst), err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
