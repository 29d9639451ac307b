// Package files acquires the spider's input files, locally or remotely.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalFS returns a filesystem rooted at the given directory.
func LocalFS(path string) (fs.FS, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.DirFS(abs), nil
}

// FindCached looks for a previously fetched copy of the named file in the
// working directory.
func FindCached(name string) (string, bool) {
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

// Exists reports whether path names an existing regular file, returning a
// descriptive error otherwise.
func Exists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", path)
	}
	return nil
}
