package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/savekeep/internal/errors"
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

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "store")
	opts = append([]Option{WithLogger(logging.ForTest(t))}, opts...)
	return NewStore(root, opts...), root
}

func TestCreate_CopiesTree(t *testing.T) {
	store, root := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"file0":         "hp=20",
		"sub/undertale": "ini",
	})

	b, err := store.Create(src, "  save1  ")
	require.NoError(t, err)

	assert.Equal(t, "save1", b.Name)
	assert.Equal(t, filepath.Join(root, "save1"), b.Path)
	assert.Equal(t, 2, b.Files)
	assert.EqualValues(t, len("hp=20")+len("ini"), b.Size)

	data, err := os.ReadFile(filepath.Join(root, "save1", "sub", "undertale"))
	require.NoError(t, err)
	assert.Equal(t, "ini", string(data))
}

func TestCreate_CreatesStoreLazily(t *testing.T) {
	store, root := newTestStore(t)
	_, err := os.Stat(root)
	require.True(t, os.IsNotExist(err))

	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})

	_, err = store.Create(src, "first")
	require.NoError(t, err)
	assert.DirExists(t, root)
}

func TestCreate_SourceMissing(t *testing.T) {
	store, root := newTestStore(t)

	_, err := store.Create(filepath.Join(t.TempDir(), "nope"), "save1")
	require.ErrorIs(t, err, ErrSourceMissing)

	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr), "store root must not be created")
}

func TestCreate_InvalidName(t *testing.T) {
	store, _ := newTestStore(t)
	src := t.TempDir()

	for _, name := range []string{"", "   ", "a/b", "a:b", "what?", ".."} {
		_, err := store.Create(src, name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestCreate_SourceCheckedBeforeName(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Create(filepath.Join(t.TempDir(), "nope"), "bad/name")
	require.ErrorIs(t, err, ErrSourceMissing)
	assert.NotErrorIs(t, err, ErrInvalidName)
}

func TestCreate_NameConflict(t *testing.T) {
	store, root := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})

	_, err := store.Create(src, "save1")
	require.NoError(t, err)

	writeTree(t, src, map[string]string{"a": "2"})
	_, err = store.Create(src, "save1")
	require.ErrorIs(t, err, ErrNameConflict)

	data, err := os.ReadFile(filepath.Join(root, "save1", "a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(data), "existing backup must be untouched")
}

func TestCreate_ContentConflict(t *testing.T) {
	store, root := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1", "b/c": "2"})

	_, err := store.Create(src, "save1")
	require.NoError(t, err)

	_, err = store.Create(src, "save2")
	require.ErrorIs(t, err, ErrContentConflict)

	existing, ok := ConflictingBackup(err)
	require.True(t, ok)
	assert.Equal(t, "save1", existing)
	assert.NoDirExists(t, filepath.Join(root, "save2"))
}

func TestCreate_ContentConflictReportsFirstNaturalMatch(t *testing.T) {
	store, _ := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})

	_, err := store.Create(src, "save10")
	require.NoError(t, err)
	_, err = store.Create(src, "save2", Force())
	require.NoError(t, err)

	_, err = store.Create(src, "save3")
	existing, ok := ConflictingBackup(err)
	require.True(t, ok)
	assert.Equal(t, "save2", existing)
}

func TestCreate_ForceSkipsContentCheck(t *testing.T) {
	store, _ := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})

	_, err := store.Create(src, "save1")
	require.NoError(t, err)

	_, err = store.Create(src, "save2", Force())
	require.NoError(t, err)

	assert.Equal(t, []string{"save1", "save2"}, store.List())
}

func TestCreate_ForceStillRejectsNameConflict(t *testing.T) {
	store, _ := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})

	_, err := store.Create(src, "save1")
	require.NoError(t, err)

	_, err = store.Create(src, "save1", Force())
	require.ErrorIs(t, err, ErrNameConflict)
}

func TestCreate_CopyFailureLeavesPartial(t *testing.T) {
	ffs := faultfs.New()
	store, root := newTestStore(t, WithFS(ffs))
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})

	ffs.CopyDirFunc = func(_, dst string) error {
		require.NoError(t, os.MkdirAll(dst, 0o755))
		return errors.New("disk full")
	}

	_, err := store.Create(src, "save1")
	require.ErrorIs(t, err, ErrCopyFailed)
	assert.Contains(t, err.Error(), "disk full")
	assert.DirExists(t, filepath.Join(root, "save1"))
}

func TestCreate_StoreCreationFailure(t *testing.T) {
	ffs := faultfs.New()
	ffs.MkdirAllErr = func(string) error { return errors.New("read-only") }
	store, _ := newTestStore(t, WithFS(ffs))
	src := t.TempDir()

	_, err := store.Create(src, "save1")
	require.ErrorIs(t, err, ErrCopyFailed)
}

func TestCreate_StoreInsideSource(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})
	store := NewStore(filepath.Join(src, "backups"), WithLogger(logging.ForTest(t)))

	_, err := store.Create(src, "save1")
	require.ErrorIs(t, err, ErrCopyFailed)
	assert.NoDirExists(t, filepath.Join(src, "backups"))
}

func TestList(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		store, _ := newTestStore(t)
		names := store.List()
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("natural order, directories only", func(t *testing.T) {
		store, root := newTestStore(t)
		for _, name := range []string{"save10", "save2", "save1", "Boss"} {
			require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o755))
		}
		writeTree(t, root, map[string]string{"notes.txt": "x"})

		assert.Equal(t, []string{"Boss", "save1", "save2", "save10"}, store.List())
	})
}

func TestBackups(t *testing.T) {
	store, _ := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "12", "b/c": "345"})

	_, err := store.Create(src, "one")
	require.NoError(t, err)

	backups := store.Backups()
	require.Len(t, backups, 1)
	assert.Equal(t, "one", backups[0].Name)
	assert.Equal(t, 2, backups[0].Files)
	assert.EqualValues(t, 5, backups[0].Size)
	assert.False(t, backups[0].CreatedAt.IsZero())
}

func TestGet(t *testing.T) {
	store, _ := newTestStore(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1"})
	_, err := store.Create(src, "one")
	require.NoError(t, err)

	b, err := store.Get("one")
	require.NoError(t, err)
	assert.Equal(t, "one", b.Name)

	_, err = store.Get("two")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get("a/b")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestDelete(t *testing.T) {
	store, root := newTestStore(t)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name, "sub"), 0o755))
	}

	deleted, err := store.Delete([]string{"a", "c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "c")}, deleted)
	assert.Equal(t, []string{"b"}, store.List())
}

func TestDelete_StopsAtFirstFailure(t *testing.T) {
	ffs := faultfs.New()
	store, root := newTestStore(t, WithFS(ffs))
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o755))
	}
	ffs.RemoveAllErr = func(path string) error {
		if filepath.Base(path) == "b" {
			return errors.New("busy")
		}
		return nil
	}

	deleted, err := store.Delete([]string{"a", "b", "c"})
	require.ErrorIs(t, err, ErrDeleteFailed)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "b", opErr.Name)

	assert.Equal(t, []string{filepath.Join(root, "a")}, deleted)
	assert.Equal(t, []string{"b", "c"}, store.List())
}

func TestDelete_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	deleted, err := store.Delete([]string{"ghost"})
	require.ErrorIs(t, err, ErrDeleteFailed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, deleted)
}

func TestDelete_InvalidName(t *testing.T) {
	store, root := newTestStore(t)
	require.NoError(t, os.MkdirAll(root, 0o755))

	_, err := store.Delete([]string{".."})
	require.ErrorIs(t, err, ErrDeleteFailed)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.DirExists(t, root)
}
