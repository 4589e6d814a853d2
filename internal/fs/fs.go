// Package fs defines the filesystem abstraction used by savekeep's core.
//
// Every operation that touches the disk goes through [FS] so tests can
// substitute an implementation that fails on demand. [OSFS] is the
// production implementation backed by the os package.
package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS abstracts the filesystem operations the store and restore engine need.
type FS interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	Open(path string) (io.ReadCloser, error)
	MkdirAll(path string, perm os.FileMode) error
	Rename(oldPath, newPath string) error
	RemoveAll(path string) error

	// CopyDir recursively copies src to dst. dst must not exist.
	CopyDir(src, dst string) error
}

// Exists reports whether path exists.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys FS, path string) bool {
	fi, err := fsys.Stat(path)
	return err == nil && fi.IsDir()
}

// WalkFunc is called for every regular file found by WalkFiles.
// rel is the file's path relative to the walk root, using forward slashes.
type WalkFunc func(rel string, abs string) error

// WalkFiles calls fn for every regular file below root in lexical order.
// Directories that cannot be read are skipped. Symlinks and special files
// are not regular files and are never reported.
func WalkFiles(fsys FS, root string, fn WalkFunc) error {
	return walk(fsys, root, "", fn)
}

func walk(fsys FS, dir, prefix string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		abs := filepath.Join(dir, entry.Name())
		rel := entry.Name()
		if prefix != "" {
			rel = prefix + "/" + entry.Name()
		}

		switch {
		case entry.IsDir():
			if err := walk(fsys, abs, rel, fn); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := fn(rel, abs); err != nil {
				return err
			}
		}
	}

	return nil
}

// RegularFiles returns the forward-slash relative paths of every regular
// file below root.
func RegularFiles(fsys FS, root string) []string {
	var files []string
	_ = WalkFiles(fsys, root, func(rel, _ string) error {
		files = append(files, rel)
		return nil
	})
	return files
}

// Within reports whether path is root itself or lies below it.
func Within(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if root == path {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsNotExist reports whether err indicates a missing file.
func IsNotExist(err error) bool {
	return os.IsNotExist(err)
}
