package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/savekeep/internal/paths"
)

// isolate points config discovery at an empty temp directory and clears
// persistent flag state left by earlier tests.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(paths.ConfigDirEnv, dir)
	t.Setenv("SAVEKEEP_APP", "")
	t.Setenv("SAVEKEEP_LIVE_DIR", "")
	t.Setenv("SAVEKEEP_STORE_DIR", "")
	t.Setenv(debugEnv, "")
	t.Chdir(dir)

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	liveFlag, storeFlag, configFlag = "", "", ""
	verbosity, quiet = 0, false
	logFormat, logFile = "text", ""
	initFormat, initForce = "yaml", false
	doctorJSON, doctorFix = false, false
	t.Cleanup(closeLogFile)
	return dir
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

// executeWithInput is execute with input on stdin.
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}
