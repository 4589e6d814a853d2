package backup

import (
	"github.com/gofrs/flock"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/paths"
)

// lockStore takes the advisory lock in storeDir, creating the directory
// if needed. The returned func releases it.
func lockStore(storeDir string) (func(), error) {
	if err := paths.EnsureDir(storeDir, 0); err != nil {
		return nil, errors.NewSystemError(errors.Wrap(err, "creating backup store"), "")
	}

	lock := flock.New(paths.LockFile(storeDir))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.NewSystemError(errors.Wrap(err, "locking backup store"), "")
	}
	if !locked {
		return nil, errors.NewUserError(errors.ErrStoreLocked, "wait for the other savekeep to finish")
	}

	return func() { _ = lock.Unlock() }, nil
}
