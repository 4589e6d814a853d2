// Package doctor diagnoses a savekeep setup: the live save directory, the
// backup store, leftovers from interrupted restores, and configuration.
package doctor

// Severity ranks a check result. Higher values are worse.
type Severity int

const (
	SeverityPass Severity = iota

	// SeverityInfo is worth knowing but needs no action, such as a store
	// that the first backup will create.
	SeverityInfo

	// SeverityWarning needs attention but does not block savekeep, such as
	// a restore leftover that may hold the only copy of a save.
	SeverityWarning

	// SeverityError blocks backups or restores.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol returns the status glyph shown in text reports.
func (s Severity) Symbol() string {
	switch s {
	case SeverityPass:
		return "✓"
	case SeverityInfo:
		return "ℹ"
	case SeverityWarning:
		return "⚠"
	case SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Path is the directory or file the check looked at.
	Path string `json:"path,omitempty"`

	// Problems lists individual findings, one per line in text output.
	Problems []string `json:"problems,omitempty"`

	// Details holds counts and names specific to the check.
	Details map[string]any `json:"details,omitempty"`

	// Fixable is set when doctor --fix can resolve the result.
	Fixable bool `json:"fixable,omitempty"`

	Hint string `json:"hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
