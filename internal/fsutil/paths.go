package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// MirrorPath maps a file found under srcRoot to the same relative location
// under destRoot, appending suffix to the file name.
//
//	MirrorPath("lib", "out", "lib/a/b/mod.py", "c") == "out/a/b/mod.pyc"
func MirrorPath(srcRoot, destRoot, path, suffix string) (string, error) {
	relDir, err := filepath.Rel(srcRoot, filepath.Dir(path))
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s against %s: %w", path, srcRoot, err)
	}
	return filepath.Join(destRoot, relDir, filepath.Base(path)+suffix), nil
}

// EnsureDir creates dir and any missing parents. It fails if dir exists but
// is not a directory.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory path is empty")
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// RemoveIfExists deletes path, treating a missing file as success.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
