// Package filesys provides the small set of file system operations the
// durability engine needs to bootstrap its data directory: creating it on
// first run and checking whether a path already exists.
package filesys

import (
	"errors"
	"os"
)

// ErrIsNotDir is returned when a path that should be a directory turns out
// to be a regular file.
var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates a directory at dirPath with the given permissions.
//
// If the directory already exists:
//   - If force is true, it proceeds without error.
//   - If force is false, it returns the stat error as-is.
//
// It also returns an error if the existing path is a file, not a directory.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}
	if !force && !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, permission)
}

// Exists reports whether a file or directory exists at the given path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
