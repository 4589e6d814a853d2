package fs

import (
	"io"
	"os"

	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// OSFS is the production implementation of FS using the standard library.
type OSFS struct{}

// NewOSFS returns an FS backed by the local operating system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (o *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (o *OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (o *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *OSFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (o *OSFS) CopyDir(src, dst string) error {
	return fileutil.CopyDir(src, dst)
}
