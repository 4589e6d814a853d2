package errors

import "fmt"

// Process exit codes.
const (
	ExitSuccess = 0

	// ExitUser means the invocation can be fixed by the user: a bad name,
	// an unknown backup, an unanswered prompt, a locked store.
	ExitUser = 1

	// ExitSystem means the filesystem or environment failed underneath a
	// valid request.
	ExitSystem = 2
)

// Conditions the CLI reports without a store or restore error behind them.
var (
	// ErrCancelled indicates a confirmation prompt got no answer.
	ErrCancelled = New("operation cancelled")

	// ErrStoreLocked indicates another savekeep process holds the store lock.
	ErrStoreLocked = New("backup store locked by another process")
)

// ExitError carries the exit code for a failed command and an optional
// hint printed under the error.
type ExitError struct {
	// Err is the failure shown to the user. It may be nil when the command
	// has already reported the problem itself, as doctor does.
	Err error

	Code int

	// Suggestion is printed as "Hint: ..." when non-empty.
	Suggestion string
}

// NewExitError wraps err with code and no hint.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError wraps err with ExitUser.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError wraps err with ExitSystem.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError reports a configuration that failed to load and points
// at doctor.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: savekeep doctor")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err: ExitSuccess for nil,
// the code of the outermost ExitError in its chain, and ExitSystem for
// anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}

// Hint returns the suggestion attached to err, if any.
func Hint(err error) string {
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Suggestion
	}
	return ""
}
