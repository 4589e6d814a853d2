package restore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fingerprint"
	"github.com/thoreinstein/savekeep/internal/fs"
	"github.com/thoreinstein/savekeep/internal/fs/faultfs"
	"github.com/thoreinstein/savekeep/internal/logging"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// setup creates a live tree and a backup tree with different contents.
func setup(t *testing.T) (live, saved string) {
	t.Helper()
	base := t.TempDir()
	live = filepath.Join(base, "UNDERTALE")
	saved = filepath.Join(base, "store", "save1")
	writeTree(t, live, map[string]string{"file0": "live", "undertale.ini": "a", "extra": "x"})
	writeTree(t, saved, map[string]string{"file0": "saved", "undertale.ini": "b"})
	return live, saved
}

func newEngine(t *testing.T, fsys fs.FS) *Engine {
	t.Helper()
	return New(WithFS(fsys), WithLogger(logging.ForTest(t)))
}

func TestTempPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "temp_backup_UNDERTALE"), TempPath("/data/UNDERTALE"))
	assert.Equal(t, filepath.Join("/data", "temp_backup_UNDERTALE"), TempPath("/data/UNDERTALE/"))
}

func TestRestore_Success(t *testing.T) {
	live, saved := setup(t)
	osfs := fs.NewOSFS()
	want := fingerprint.Dir(osfs, saved)

	res, err := newEngine(t, osfs).Restore(saved, live)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.Empty(t, res.Leftover)
	assert.Equal(t, want, fingerprint.Dir(osfs, live))
	assert.NoDirExists(t, TempPath(live))
	assert.NoFileExists(t, filepath.Join(live, "extra"))

	// The backup itself is untouched.
	assert.Equal(t, want, fingerprint.Dir(osfs, saved))
}

func TestRestore_CopyFailureRollsBack(t *testing.T) {
	live, saved := setup(t)
	ffs := faultfs.New()
	before := fingerprint.Dir(ffs, live)

	ffs.CopyDirFunc = func(_, dst string) error {
		writeTree(t, dst, map[string]string{"file0": "partial"})
		return errors.New("disk full")
	}

	res, err := newEngine(t, ffs).Restore(saved, live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, StateRolledBack, res.State)
	assert.Equal(t, before, fingerprint.Dir(ffs, live))
	assert.NoDirExists(t, TempPath(live))
}

func TestRestore_RollbackFailureNamesTemp(t *testing.T) {
	live, saved := setup(t)
	ffs := faultfs.New()
	before := fingerprint.Dir(ffs, live)
	temp := TempPath(live)

	ffs.CopyDirFunc = func(string, string) error { return errors.New("disk full") }
	ffs.RenameErr = func(oldPath, _ string) error {
		if oldPath == temp {
			return errors.New("device busy")
		}
		return nil
	}

	res, err := newEngine(t, ffs).Restore(saved, live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)

	var opErr *backup.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, temp, opErr.Path)
	assert.Contains(t, err.Error(), temp)
	assert.Equal(t, StateLiveRenamed, res.State)

	// The original tree survives in the sibling.
	assert.Equal(t, before, fingerprint.Dir(ffs, temp))
}

func TestRestore_MissingBackupLeavesLiveUntouched(t *testing.T) {
	live, _ := setup(t)
	osfs := fs.NewOSFS()
	before := fingerprint.Dir(osfs, live)

	res, err := newEngine(t, osfs).Restore(filepath.Join(t.TempDir(), "nope"), live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)
	assert.ErrorIs(t, err, backup.ErrNotFound)

	assert.Equal(t, StateStart, res.State)
	assert.Equal(t, before, fingerprint.Dir(osfs, live))
	assert.NoDirExists(t, TempPath(live))
}

func TestRestore_OverlappingDirectories(t *testing.T) {
	live, _ := setup(t)
	inner := filepath.Join(live, "inner")
	writeTree(t, inner, map[string]string{"a": "1"})
	e := newEngine(t, fs.NewOSFS())

	_, err := e.Restore(live, live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)

	_, err = e.Restore(inner, live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)

	_, err = e.Restore(filepath.Dir(live), live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)

	assert.FileExists(t, filepath.Join(live, "extra"))
}

func TestRestore_RemovesStaleTemp(t *testing.T) {
	live, saved := setup(t)
	temp := TempPath(live)
	writeTree(t, temp, map[string]string{"old": "stale"})

	res, err := newEngine(t, fs.NewOSFS()).Restore(saved, live)
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.NoDirExists(t, temp)
}

func TestRestore_StaleTempRemovalFailure(t *testing.T) {
	live, saved := setup(t)
	temp := TempPath(live)
	writeTree(t, temp, map[string]string{"old": "stale"})

	ffs := faultfs.New()
	ffs.RemoveAllErr = func(string) error { return errors.New("permission denied") }

	res, err := newEngine(t, ffs).Restore(saved, live)
	require.ErrorIs(t, err, backup.ErrRenameFailed)
	assert.Equal(t, StateStart, res.State)
	assert.FileExists(t, filepath.Join(live, "extra"))
}

func TestRestore_RenameFailure(t *testing.T) {
	live, saved := setup(t)
	ffs := faultfs.New()
	ffs.RenameErr = func(string, string) error { return errors.New("in use") }

	res, err := newEngine(t, ffs).Restore(saved, live)
	require.ErrorIs(t, err, backup.ErrRenameFailed)
	assert.Equal(t, StateStart, res.State)
	assert.FileExists(t, filepath.Join(live, "extra"))
}

func TestRestore_MissingLiveIsRenameFailure(t *testing.T) {
	_, saved := setup(t)
	live := filepath.Join(t.TempDir(), "UNDERTALE")

	_, err := newEngine(t, fs.NewOSFS()).Restore(saved, live)
	require.ErrorIs(t, err, backup.ErrRenameFailed)
	assert.NoDirExists(t, live)
}

func TestRestore_MissingLiveKeepsStaleTemp(t *testing.T) {
	_, saved := setup(t)
	live := filepath.Join(t.TempDir(), "UNDERTALE")
	temp := TempPath(live)
	writeTree(t, temp, map[string]string{"file0": "precious"})

	res, err := newEngine(t, fs.NewOSFS()).Restore(saved, live)
	require.ErrorIs(t, err, backup.ErrRenameFailed)
	assert.Contains(t, err.Error(), temp)
	assert.Equal(t, StateStart, res.State)

	var opErr *backup.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, live, opErr.Path)

	data, readErr := os.ReadFile(filepath.Join(temp, "file0"))
	require.NoError(t, readErr)
	assert.Equal(t, "precious", string(data))
	assert.NoDirExists(t, live)
}

func TestRestore_RejectsTempPathAsBackup(t *testing.T) {
	live, _ := setup(t)
	temp := TempPath(live)
	writeTree(t, temp, map[string]string{"file0": "older"})

	res, err := newEngine(t, fs.NewOSFS()).Restore(temp, live)
	require.ErrorIs(t, err, backup.ErrRestoreFailed)
	assert.Equal(t, StateStart, res.State)
	assert.FileExists(t, filepath.Join(temp, "file0"))
	assert.FileExists(t, filepath.Join(live, "extra"))
}

func TestRestore_CleanupFailureIsWarning(t *testing.T) {
	live, saved := setup(t)
	osfs := fs.NewOSFS()
	want := fingerprint.Dir(osfs, saved)
	temp := TempPath(live)

	ffs := faultfs.New()
	ffs.RemoveAllErr = func(path string) error {
		if path == temp {
			return errors.New("locked")
		}
		return nil
	}

	res, err := newEngine(t, ffs).Restore(saved, live)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, temp, res.Leftover)
	require.Error(t, res.CleanupErr)
	assert.Equal(t, want, fingerprint.Dir(osfs, live))
	assert.DirExists(t, temp)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "START", StateStart.String())
	assert.Equal(t, "LIVE_RENAMED", StateLiveRenamed.String())
	assert.Equal(t, "BACKUP_COPIED", StateBackupCopied.String())
	assert.Equal(t, "DONE", StateDone.String())
	assert.Equal(t, "ROLLED_BACK", StateRolledBack.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}
