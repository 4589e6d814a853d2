package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// ErrSymlink is returned when a tree being copied contains a symbolic link.
// Links are refused so a copy can never reach outside its source tree.
var ErrSymlink = errors.New("refusing to copy symlink")

// CopyDir recursively copies the directory src to dst.
//
// dst must not exist; its parent must. Relative structure and file bytes are
// reproduced exactly. Permissions and modification times are copied on a
// best-effort basis. Special files (sockets, devices, pipes) are skipped.
//
// A failure part way through leaves the partially written dst in place.
func CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "stat source directory")
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", src)
	}

	if err := os.Mkdir(dst, info.Mode().Perm()|0o700); err != nil {
		return errors.Wrap(err, "creating destination directory")
	}

	return copyDirContents(src, dst)
}

// copyDirContents copies every entry of src into the existing directory dst.
func copyDirContents(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return errors.Wrapf(err, "stat directory %s", srcPath)
			}
			if err := os.Mkdir(dstPath, info.Mode().Perm()|0o700); err != nil {
				return errors.Wrapf(err, "creating directory %s", dstPath)
			}
			if err := copyDirContents(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type()&os.ModeSymlink != 0:
			return errors.Wrapf(ErrSymlink, "%s", srcPath)
		case entry.Type().IsRegular():
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// CopyFile copies a single regular file from src to a new file dst.
// The destination must not exist.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying content from %s to %s", src, dst)
	}

	if err := dstFile.Sync(); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "syncing %s", dst)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing destination file %s", dst)
	}

	// Metadata is best effort.
	_ = os.Chmod(dst, srcInfo.Mode().Perm())
	_ = os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())

	return nil
}
