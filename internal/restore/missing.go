package restore

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thoreinstein/savekeep/internal/fs"
)

// MissingFiles returns the relative paths of regular files present under
// liveDir but absent from backupDir: the files a restore of backupDir
// would discard. Paths use forward slashes and are sorted. A directory
// that does not exist counts as empty.
func (e *Engine) MissingFiles(liveDir, backupDir string) []string {
	live := mapset.NewThreadUnsafeSet(fs.RegularFiles(e.fs, liveDir)...)
	saved := mapset.NewThreadUnsafeSet(fs.RegularFiles(e.fs, backupDir)...)

	missing := live.Difference(saved).ToSlice()
	slices.Sort(missing)
	return missing
}
