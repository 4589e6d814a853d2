// Package main is the entry point for the savekeep CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands"
	"github.com/thoreinstein/savekeep/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	// An ExitError without a cause means the command already printed its
	// own report.
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || exitErr.Err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	}
	if hint := errors.Hint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("Hint:"), hint)
	}
	os.Exit(errors.ExitCode(err))
}
