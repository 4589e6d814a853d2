// Package fingerprint computes content digests of directory trees.
//
// A fingerprint is the hex MD5 of every regular file in a tree, each
// contributing its forward-slash relative path followed by its bytes. Paths
// are sorted before hashing, so two trees with the same relative paths and
// the same file contents always share a fingerprint, whatever order the
// filesystem enumerates them in.
//
// Fingerprinting never fails. A file that cannot be read still contributes
// its path; its content contributes nothing past the failed read.
package fingerprint

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/thoreinstein/savekeep/internal/fs"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// ChunkSize is the read size used when feeding file content to the digest.
const ChunkSize = 4096

// Size is the length of a fingerprint in hex characters.
const Size = md5.Size * 2

type options struct {
	logger *slog.Logger
}

// Option configures a fingerprint computation.
type Option func(*options)

// WithLogger sets the logger that receives skipped-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Dir returns the fingerprint of the tree rooted at root.
// A missing or unreadable root yields the fingerprint of the empty tree.
func Dir(fsys fs.FS, root string, opts ...Option) string {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	files := fs.RegularFiles(fsys, root)
	slices.Sort(files)

	h := md5.New()
	buf := make([]byte, ChunkSize)
	for _, rel := range files {
		o.logger.Log(context.Background(), logging.LevelTrace, "fingerprint: hashing", "root", root, "path", rel)
		// Path first, so a failed read below still counts the file.
		io.WriteString(h, rel)
		if err := feed(fsys, h, filepath.Join(root, filepath.FromSlash(rel)), buf); err != nil {
			o.logger.Debug("fingerprint: skipping unreadable content", "path", rel, "error", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func feed(fsys fs.FS, h hash.Hash, path string, buf []byte) error {
	f, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
