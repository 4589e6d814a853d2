package doctor

import "time"

// Check is one diagnostic.
type Check interface {
	// Name identifies the check in reports, e.g. "store-dir".
	Name() string

	// Category groups checks: "live", "store" or "config".
	Category() string

	Run() *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
}

// NewRunner creates a Runner for checks.
func NewRunner(checks ...Check) *Runner {
	r := &Runner{checks: make([]Check, 0, len(checks))}
	for _, c := range checks {
		r.AddCheck(c)
	}
	return r
}

// AddCheck appends c.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in order. Fix uses it to find the
// checks that can repair what they found.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes every check. Results with no Name or Category take the
// check's own.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run()
		if result.Name == "" {
			result.Name = check.Name()
		}
		if result.Category == "" {
			result.Category = check.Category()
		}
		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}

	return report
}

// Report is the outcome of one doctor run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any result is SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any result is SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Worst returns the highest severity among the results, or SeverityPass
// for an empty report.
func (r *Report) Worst() Severity {
	worst := SeverityPass
	for _, res := range r.Results {
		worst = max(worst, res.Status)
	}
	return worst
}
