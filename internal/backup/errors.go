package backup

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// Failure kinds. Every error returned by the store and the restore engine
// is an *OpError whose Kind is one of these.
var (
	// ErrSourceMissing indicates the directory to back up does not exist.
	ErrSourceMissing = errors.New("source directory not found")

	// ErrInvalidName indicates a backup name is empty or contains a forbidden character.
	ErrInvalidName = errors.New("invalid backup name")

	// ErrNameConflict indicates a backup with the requested name already exists.
	ErrNameConflict = errors.New("backup name already exists")

	// ErrContentConflict indicates an existing backup holds identical content.
	// It is recoverable: create again with Force to save anyway.
	ErrContentConflict = errors.New("identical backup already exists")

	// ErrCopyFailed indicates copying the source into the store failed.
	// A partial backup directory may remain.
	ErrCopyFailed = errors.New("copy failed")

	// ErrDeleteFailed indicates a backup could not be removed.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrRenameFailed indicates the live directory could not be moved aside.
	// Nothing was changed.
	ErrRenameFailed = errors.New("rename failed")

	// ErrRestoreFailed indicates a restore did not happen. The live
	// directory was rolled back to its previous contents.
	ErrRestoreFailed = errors.New("restore failed")

	// ErrNotFound indicates the named backup does not exist.
	ErrNotFound = errors.New("backup not found")
)

// Op names the operation that produced an OpError.
type Op string

// Operations.
const (
	OpValidate Op = "validate"
	OpCreate   Op = "create"
	OpGet      Op = "get"
	OpDelete   Op = "delete"
	OpRestore  Op = "restore"
)

// OpError describes a failed store or restore operation.
//
// errors.Is matches both the Kind and the underlying cause, and errors.As
// recovers the OpError for its Name, Path and Conflict details.
type OpError struct {
	Op   Op
	Kind error

	// Name is the backup name the operation was acting on, if any.
	Name string

	// Path is the filesystem path involved. For a failed rollback it is
	// where the original live data was left.
	Path string

	// Conflict is the existing backup name for ErrContentConflict.
	Conflict string

	// Err is the underlying cause, if any.
	Err error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Op))
	switch {
	case e.Name != "":
		fmt.Fprintf(&b, " %q", e.Name)
	case e.Path != "":
		fmt.Fprintf(&b, " %s", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Conflict != "" {
		fmt.Fprintf(&b, " (%q)", e.Conflict)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the failure kind and the cause.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Is reports whether target is the failure kind or matches the cause.
func (e *OpError) Is(target error) bool {
	return target == e.Kind || (e.Err != nil && errors.Is(e.Err, target))
}

// ConflictingBackup returns the name of the existing backup that caused a
// content conflict.
func ConflictingBackup(err error) (string, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) && opErr.Kind == ErrContentConflict {
		return opErr.Conflict, true
	}
	return "", false
}

// KindOf returns the failure kind of err, or nil if err is not an OpError.
func KindOf(err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return nil
}
