package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/doctor"
	"github.com/thoreinstein/savekeep/internal/errors"
)

var (
	doctorJSON bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"create a missing backup store")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose directory and configuration issues",
	Long: `Run diagnostic checks on the live save directory, the backup store,
and the configuration.

Reports a missing live directory, a store that cannot be used, entries in
the store that are not backups, a store locked by another savekeep, and
temp_backup_* directories left behind by an interrupted restore. Such a
directory may hold the only copy of your previous save; inspect it before
removing it.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	RunE: runDoctor,
}

// doctorOutput is the JSON form of a doctor run.
type doctorOutput struct {
	*doctor.Report

	Fixes []doctor.FixResult `json:"fixes,omitempty"`
}

func runDoctor(c *cobra.Command, _ []string) error {
	return runDoctorWithWriter(c.OutOrStdout())
}

func runDoctorWithWriter(w io.Writer) error {
	runner := newDoctorRunner()
	report := runner.Run()

	var fixes []doctor.FixResult
	if doctorFix {
		fixes = doctor.Fix(runner.Checks())
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(w, report, fixes); err != nil {
		return err
	}

	switch report.Worst() {
	case doctor.SeverityError:
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case doctor.SeverityWarning:
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func newDoctorRunner() *doctor.Runner {
	live, store := flags.LiveDir(), flags.StoreDir()
	return doctor.NewRunner(
		doctor.NewConfigCheck(loadedConfig, config.FileUsed()).WithLoadError(configLoadErr),
		doctor.NewLiveDirCheck(live),
		doctor.NewStaleTempCheck(live),
		doctor.NewStoreCheck(store),
		doctor.NewLockCheck(store),
	)
}

func outputDoctorReport(w io.Writer, report *doctor.Report, fixes []doctor.FixResult) error {
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doctorOutput{Report: report, Fixes: fixes}); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), f.Path, f.Description)
			continue
		}
		fmt.Fprintf(w, "%s could not fix %s: %s: %v\n", color.RedString("✗"), f.Path, f.Description, f.Error)
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}

	for _, result := range report.Results {
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.Path != "" && result.Status != doctor.SeverityPass {
			fmt.Fprintf(w, "  path: %s\n", result.Path)
		}
		for _, p := range result.Problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		if result.Hint != "" && result.Status != doctor.SeverityPass {
			fmt.Fprintf(w, "  hint: %s\n", result.Hint)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString(s.Symbol())
	case doctor.SeverityInfo:
		return color.CyanString(s.Symbol())
	case doctor.SeverityWarning:
		return color.YellowString(s.Symbol())
	case doctor.SeverityError:
		return color.RedString(s.Symbol())
	default:
		return s.Symbol()
	}
}

// errDoctorWarnings is the error behind exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is the error behind exit code 2.
var errDoctorErrors = errors.New("doctor found errors")
