package backup

import (
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
	"github.com/thoreinstein/savekeep/internal/errors"
)

// commandError maps a store or restore failure to an exit error. Mistakes
// the user can correct exit with ExitUser; filesystem failures with
// ExitSystem.
func commandError(err error) error {
	if err == nil {
		return nil
	}

	switch backup.KindOf(err) {
	case backup.ErrInvalidName:
		return errors.NewUserError(err, `names may not be empty, "." or "..", or contain any of `+backup.ForbiddenChars)
	case backup.ErrNameConflict:
		return errors.NewUserError(err, "choose another name, or delete the existing backup first")
	case backup.ErrContentConflict:
		return errors.NewUserError(err, "use --force to save a duplicate anyway")
	case backup.ErrSourceMissing:
		return errors.NewUserError(err, "check --live or the live_dir setting (savekeep config list)")
	case backup.ErrNotFound:
		return errors.NewUserError(err, "Run: savekeep backup list")
	case backup.ErrDeleteFailed, backup.ErrRestoreFailed:
		if errors.Is(err, backup.ErrNotFound) {
			return errors.NewUserError(err, "Run: savekeep backup list")
		}
		if errors.Is(err, backup.ErrInvalidName) {
			return errors.NewUserError(err, "")
		}
	}
	return errors.NewSystemError(err, "Run: savekeep doctor")
}

// pickError maps a picker failure to an exit error.
func pickError(err error) error {
	switch {
	case errors.Is(err, prompt.ErrNoBackups):
		return errors.NewUserError(err, "create one with: savekeep backup create <name>")
	case errors.Is(err, prompt.ErrSelectionCancelled), errors.Is(err, prompt.ErrInvalidSelection):
		return errors.NewUserError(err, "pass the backup name as an argument")
	}
	return errors.NewSystemError(err, "")
}

// confirmError maps a confirmation failure to an exit error.
func confirmError(err error, suggestion string) error {
	if errors.Is(err, prompt.ErrNoInput) {
		return errors.NewUserError(errors.Wrap(errors.ErrCancelled, "no answer"), suggestion)
	}
	return errors.NewSystemError(err, "")
}
