package restore

import (
	"log/slog"
	"path/filepath"

	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fs"
)

// TempPrefix is prepended to the live directory's base name to form the
// sibling that holds the original tree during a restore.
const TempPrefix = "temp_backup_"

// State is a step of the restore state machine.
type State int

// Restore states.
const (
	StateStart State = iota
	StateLiveRenamed
	StateBackupCopied
	StateDone
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateLiveRenamed:
		return "LIVE_RENAMED"
	case StateBackupCopied:
		return "BACKUP_COPIED"
	case StateDone:
		return "DONE"
	case StateRolledBack:
		return "ROLLED_BACK"
	default:
		return "UNKNOWN"
	}
}

// Result reports how far a restore got.
type Result struct {
	// LiveDir is the directory that was restored into.
	LiveDir string

	// State is the last state reached.
	State State

	// Leftover is the sibling directory that could not be removed after a
	// successful restore. It holds the pre-restore tree. Empty otherwise.
	Leftover string

	// CleanupErr is why Leftover could not be removed.
	CleanupErr error
}

// Engine performs restores.
type Engine struct {
	fs     fs.FS
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS sets the filesystem the engine operates on.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		if fsys != nil {
			e.fs = fsys
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		fs:     fs.NewOSFS(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TempPath returns the sibling path that holds liveDir's original tree
// while a restore is in progress.
func TempPath(liveDir string) string {
	liveDir = filepath.Clean(liveDir)
	return filepath.Join(filepath.Dir(liveDir), TempPrefix+filepath.Base(liveDir))
}

// Restore replaces liveDir with a copy of backupDir. The two directories
// must not overlap, and backupDir may not be the TempPath of liveDir.
// liveDir must exist; when it does not, a leftover TempPath is kept.
//
// A returned error is always a *backup.OpError. ErrRenameFailed means
// nothing was changed. ErrRestoreFailed means the live directory holds its
// previous contents; if even the rollback failed, the error's Path names
// the sibling where those contents were left.
//
// A failure to remove the sibling after a successful copy is not an error;
// it is reported through Result.Leftover.
func (e *Engine) Restore(backupDir, liveDir string) (*Result, error) {
	res := &Result{LiveDir: liveDir, State: StateStart}

	if !fs.IsDir(e.fs, backupDir) {
		return res, &backup.OpError{
			Op:   backup.OpRestore,
			Kind: backup.ErrRestoreFailed,
			Path: backupDir,
			Err:  backup.ErrNotFound,
		}
	}
	temp := TempPath(liveDir)
	if fs.Within(liveDir, backupDir) || fs.Within(backupDir, liveDir) || fs.Within(temp, backupDir) {
		return res, &backup.OpError{
			Op:   backup.OpRestore,
			Kind: backup.ErrRestoreFailed,
			Path: backupDir,
			Err:  errors.Newf("backup and live directory %s overlap", liveDir),
		}
	}

	// A missing live directory next to a leftover means an earlier restore
	// stopped after the rename; the leftover is the only copy of the save.
	if !fs.IsDir(e.fs, liveDir) {
		cause := errors.Newf("live directory %s does not exist", liveDir)
		if fs.Exists(e.fs, temp) {
			cause = errors.Newf("live directory %s does not exist; %s probably holds the previous save", liveDir, temp)
		}
		return res, &backup.OpError{Op: backup.OpRestore, Kind: backup.ErrRenameFailed, Path: liveDir, Err: cause}
	}

	if fs.Exists(e.fs, temp) {
		e.logger.Warn("removing leftover from an earlier restore", "path", temp)
		if err := e.fs.RemoveAll(temp); err != nil {
			return res, &backup.OpError{Op: backup.OpRestore, Kind: backup.ErrRenameFailed, Path: temp, Err: err}
		}
	}

	if err := e.fs.Rename(liveDir, temp); err != nil {
		return res, &backup.OpError{Op: backup.OpRestore, Kind: backup.ErrRenameFailed, Path: liveDir, Err: err}
	}
	e.transition(res, StateLiveRenamed, "temp", temp)

	if err := e.fs.CopyDir(backupDir, liveDir); err != nil {
		return res, e.rollback(res, temp, err)
	}
	e.transition(res, StateBackupCopied, "backup", backupDir)

	if err := e.fs.RemoveAll(temp); err != nil {
		res.Leftover = temp
		res.CleanupErr = err
		e.logger.Warn("could not remove pre-restore copy", "path", temp, "error", err)
	}
	e.transition(res, StateDone)
	return res, nil
}

// rollback puts the original tree back after a failed copy.
func (e *Engine) rollback(res *Result, temp string, cause error) error {
	liveDir := res.LiveDir
	e.logger.Debug("restore copy failed, rolling back", "live", liveDir, "error", cause)

	if err := e.fs.RemoveAll(liveDir); err != nil {
		return e.rollbackFailed(temp, cause, err)
	}
	if err := e.fs.Rename(temp, liveDir); err != nil {
		return e.rollbackFailed(temp, cause, err)
	}

	e.transition(res, StateRolledBack)
	return &backup.OpError{Op: backup.OpRestore, Kind: backup.ErrRestoreFailed, Path: liveDir, Err: cause}
}

func (e *Engine) rollbackFailed(temp string, cause, rbErr error) error {
	e.logger.Error("rollback failed; original data kept", "path", temp, "error", rbErr)
	return &backup.OpError{
		Op:   backup.OpRestore,
		Kind: backup.ErrRestoreFailed,
		Path: temp,
		Err:  errors.Wrapf(cause, "rollback failed (%v); original data kept in %s", rbErr, temp),
	}
}

func (e *Engine) transition(res *Result, to State, args ...any) {
	e.logger.Debug("restore state", append([]any{"from", res.State.String(), "to", to.String()}, args...)...)
	res.State = to
}
