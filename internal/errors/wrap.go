package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// New returns an error with a stack trace attached.
func New(msg string) error {
	return crdb.New(msg)
}

// Newf is like New with fmt-style formatting.
func Newf(format string, args ...any) error {
	return crdb.Newf(format, args...)
}

// Errorf is an alias of Newf that also supports %w.
func Errorf(format string, args ...any) error {
	return crdb.Errorf(format, args...)
}

// Wrap annotates err with a message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return crdb.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches reference.
func Is(err, reference error) bool {
	return crdb.Is(err, reference)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return crdb.As(err, target)
}

// Unwrap returns the result of calling Unwrap on err, if any.
func Unwrap(err error) error {
	return crdb.UnwrapOnce(err)
}
