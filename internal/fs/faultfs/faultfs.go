// Package faultfs provides an fs.FS wrapper whose operations can be made to
// fail on demand. It is used by tests that exercise error and rollback paths.
package faultfs

import (
	"io"
	"os"

	"github.com/thoreinstein/savekeep/internal/fs"
)

// FS delegates to an underlying fs.FS unless a hook is set for the call.
// A hook returning a non-nil error makes the call fail with that error;
// a hook returning nil lets the call through.
type FS struct {
	fs.FS

	OpenErr      func(path string) error
	RenameErr    func(oldPath, newPath string) error
	RemoveAllErr func(path string) error
	MkdirAllErr  func(path string) error

	// CopyDirFunc replaces the copy entirely when set, so a test can leave
	// a partial tree behind before failing.
	CopyDirFunc func(src, dst string) error
}

// New wraps the OS filesystem.
func New() *FS {
	return &FS{FS: fs.NewOSFS()}
}

func (f *FS) Open(path string) (io.ReadCloser, error) {
	if f.OpenErr != nil {
		if err := f.OpenErr(path); err != nil {
			return nil, err
		}
	}
	return f.FS.Open(path)
}

func (f *FS) Rename(oldPath, newPath string) error {
	if f.RenameErr != nil {
		if err := f.RenameErr(oldPath, newPath); err != nil {
			return err
		}
	}
	return f.FS.Rename(oldPath, newPath)
}

func (f *FS) RemoveAll(path string) error {
	if f.RemoveAllErr != nil {
		if err := f.RemoveAllErr(path); err != nil {
			return err
		}
	}
	return f.FS.RemoveAll(path)
}

func (f *FS) MkdirAll(path string, perm os.FileMode) error {
	if f.MkdirAllErr != nil {
		if err := f.MkdirAllErr(path); err != nil {
			return err
		}
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FS) CopyDir(src, dst string) error {
	if f.CopyDirFunc != nil {
		return f.CopyDirFunc(src, dst)
	}
	return f.FS.CopyDir(src, dst)
}
