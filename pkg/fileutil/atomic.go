// Package fileutil provides file system utilities: recursive tree copies and
// atomic writes for small structured files.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// ErrUnsupportedFormat is returned by AtomicWriteStructured for file
// extensions it cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// Interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".savekeep-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// AtomicWriteYAML writes v as YAML to path atomically with the given permissions.
func AtomicWriteYAML(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	return AtomicWriteFile(path, withTrailingNewline(data), perm)
}

// AtomicWriteTOML writes v as TOML to path atomically with the given permissions.
func AtomicWriteTOML(path string, v any, perm os.FileMode) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling TOML")
	}

	return AtomicWriteFile(path, withTrailingNewline(data), perm)
}

// AtomicWriteStructured picks the encoder from the extension of path:
// .yaml and .yml use YAML, .toml uses TOML.
func AtomicWriteStructured(path string, v any, perm os.FileMode) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return AtomicWriteYAML(path, v, perm)
	case ".toml":
		return AtomicWriteTOML(path, v, perm)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%s", filepath.Base(path))
	}
}

func withTrailingNewline(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data
}
