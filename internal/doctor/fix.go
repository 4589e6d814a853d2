package doctor

import (
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/paths"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// StoreFixer creates a missing store root. It is embedded in StoreCheck.
type StoreFixer struct {
	dir     string
	missing bool
}

// CanFix returns true if the last run found the store missing.
func (f *StoreFixer) CanFix() bool {
	return f.missing
}

// Fix creates the store root.
func (f *StoreFixer) Fix() []FixResult {
	if !f.missing {
		return nil
	}

	result := FixResult{Path: f.dir}
	if err := paths.EnsureDir(f.dir, 0); err != nil {
		result.Description = "failed to create backup store"
		result.Error = errors.Wrapf(err, "mkdir %s", f.dir)
		return []FixResult{result}
	}

	f.missing = false
	result.Fixed = true
	result.Description = "created backup store"
	return []FixResult{result}
}

// Fix runs every Fixer among checks that reports fixable issues.
func Fix(checks []Check) []FixResult {
	var results []FixResult
	for _, c := range checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			results = append(results, f.Fix()...)
		}
	}
	return results
}
