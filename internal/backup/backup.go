package backup

import (
	"log/slog"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fingerprint"
	"github.com/thoreinstein/savekeep/internal/fs"
)

// Store manages named snapshots of a directory tree. Each backup is a
// direct subdirectory of the store root whose name is the backup name.
type Store struct {
	root   string
	fs     fs.FS
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the filesystem the store operates on.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store rooted at root. The root directory is created
// lazily by the first Create.
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root:   root,
		fs:     fs.NewOSFS(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the directory a backup named name occupies. The name is
// not validated.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

type createOptions struct {
	force bool
}

// CreateOption configures a single Create call.
type CreateOption func(*createOptions)

// Force skips the duplicate-content check.
func Force() CreateOption {
	return func(o *createOptions) {
		o.force = true
	}
}

// Create copies sourceDir into the store as a backup named name.
//
// Checks run in order: the source must exist, the name must be valid, the
// name must be free, and unless Force is given no existing backup may hold
// identical content. A copy that fails partway leaves the partial backup
// in place.
func (s *Store) Create(sourceDir, name string, opts ...CreateOption) (*Backup, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !fs.IsDir(s.fs, sourceDir) {
		return nil, &OpError{Op: OpCreate, Kind: ErrSourceMissing, Path: sourceDir}
	}

	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	dst := s.Path(name)
	if fs.Within(sourceDir, dst) {
		return nil, &OpError{
			Op:   OpCreate,
			Kind: ErrCopyFailed,
			Name: name,
			Path: dst,
			Err:  errors.Newf("backup store lies inside source directory %s", sourceDir),
		}
	}

	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return nil, &OpError{Op: OpCreate, Kind: ErrCopyFailed, Name: name, Path: s.root, Err: err}
	}

	if fs.Exists(s.fs, dst) {
		return nil, &OpError{Op: OpCreate, Kind: ErrNameConflict, Name: name, Path: dst}
	}

	if !o.force {
		if existing, ok := s.findIdentical(sourceDir); ok {
			return nil, &OpError{Op: OpCreate, Kind: ErrContentConflict, Name: name, Conflict: existing}
		}
	}

	s.logger.Debug("copying source into store", "source", sourceDir, "dest", dst)
	if err := s.fs.CopyDir(sourceDir, dst); err != nil {
		return nil, &OpError{Op: OpCreate, Kind: ErrCopyFailed, Name: name, Path: dst, Err: err}
	}

	s.logger.Info("backup created", "name", name, "path", dst)
	return s.describe(name)
}

// findIdentical returns the first backup, in natural order, whose
// fingerprint matches sourceDir.
func (s *Store) findIdentical(sourceDir string) (string, bool) {
	names := s.List()
	if len(names) == 0 {
		return "", false
	}

	want := fingerprint.Dir(s.fs, sourceDir, fingerprint.WithLogger(s.logger))
	for _, name := range names {
		got := fingerprint.Dir(s.fs, s.Path(name), fingerprint.WithLogger(s.logger))
		if got == want {
			s.logger.Debug("found identical backup", "name", name, "fingerprint", got)
			return name, true
		}
	}
	return "", false
}

// List returns the names of all backups in natural order. A missing or
// unreadable store root yields an empty list.
func (s *Store) List() []string {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		if !fs.IsNotExist(err) {
			s.logger.Warn("cannot read backup store", "path", s.root, "error", err)
		}
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	SortNatural(names)
	return names
}

// Backups returns every backup in natural order with its file count,
// total size and modification time filled in.
func (s *Store) Backups() []Backup {
	names := s.List()
	backups := make([]Backup, 0, len(names))
	for _, name := range names {
		b, err := s.describe(name)
		if err != nil {
			s.logger.Debug("skipping backup", "name", name, "error", err)
			continue
		}
		backups = append(backups, *b)
	}
	return backups
}

// Get returns the backup named name.
func (s *Store) Get(name string) (*Backup, error) {
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	if !fs.IsDir(s.fs, s.Path(name)) {
		return nil, &OpError{Op: OpGet, Kind: ErrNotFound, Name: name, Path: s.Path(name)}
	}
	return s.describe(name)
}

func (s *Store) describe(name string) (*Backup, error) {
	path := s.Path(name)
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, &OpError{Op: OpGet, Kind: ErrNotFound, Name: name, Path: path, Err: err}
	}

	b := &Backup{Name: name, Path: path, CreatedAt: info.ModTime()}
	_ = fs.WalkFiles(s.fs, path, func(_, abs string) error {
		b.Files++
		if fi, err := s.fs.Stat(abs); err == nil {
			b.Size += fi.Size()
		}
		return nil
	})
	return b, nil
}

// Delete removes each named backup in order and returns the paths it
// removed. Repeated names are removed once. Delete stops at the first
// failure; backups already removed stay removed.
func (s *Store) Delete(names []string) ([]string, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	deleted := make([]string, 0, len(names))

	for _, raw := range names {
		name, err := ValidateName(raw)
		if err != nil {
			return deleted, &OpError{Op: OpDelete, Kind: ErrDeleteFailed, Name: raw, Err: err}
		}
		if !seen.Add(name) {
			continue
		}

		path := s.Path(name)
		if !fs.IsDir(s.fs, path) {
			return deleted, &OpError{Op: OpDelete, Kind: ErrDeleteFailed, Name: name, Path: path, Err: ErrNotFound}
		}
		if err := s.fs.RemoveAll(path); err != nil {
			return deleted, &OpError{Op: OpDelete, Kind: ErrDeleteFailed, Name: name, Path: path, Err: err}
		}

		s.logger.Info("backup deleted", "name", name, "path", path)
		deleted = append(deleted, path)
	}
	return deleted, nil
}
