// Package errors holds the savekeep CLI's error conventions: exit codes,
// the ExitError that carries them to main, and thin re-exports of
// github.com/cockroachdb/errors so callers need a single import.
//
// Commands return an [ExitError] built with [NewUserError] or
// [NewSystemError]. main prints the error and its hint and exits with
// [ExitCode]:
//
//	err := errors.NewUserError(backup.ErrNameConflict, "choose another name")
//	errors.ExitCode(err) // 1
//	errors.Hint(err)     // "choose another name"
//
// Store and restore failures keep their own kinds in package backup; this
// package only decides how they end the process.
package errors
