package config

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fs"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidApp indicates an application name that cannot be used as a
	// directory name.
	ErrInvalidApp = errors.New("invalid app name")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrDirsOverlap indicates the store and live directories contain one
	// another. A restore would then move the store along with the saves.
	ErrDirsOverlap = errors.New("live and store directories overlap")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if _, err := backup.ValidateName(cfg.App); err != nil {
		errs = append(errs, &FieldError{Field: KeyApp, Value: cfg.App, Err: ErrInvalidApp})
	}

	pathsOK := true
	for _, f := range []struct{ key, value string }{
		{KeyLiveDir, cfg.LiveDir},
		{KeyStoreDir, cfg.StoreDir},
	} {
		if err := validatePath(f.value); err != nil {
			errs = append(errs, &FieldError{Field: f.key, Value: f.value, Err: err})
			pathsOK = false
		}
	}

	if pathsOK {
		live, store := cfg.ResolveLiveDir(), cfg.ResolveStoreDir()
		if fs.Within(live, store) || fs.Within(store, live) {
			errs = append(errs, &FieldError{Field: KeyStoreDir, Value: store, Err: ErrDirsOverlap})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
