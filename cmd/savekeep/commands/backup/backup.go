// Package backup provides CLI commands for saving, listing, loading, and
// deleting backups of the live save directory.
package backup

import (
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
	"github.com/thoreinstein/savekeep/internal/restore"
)

// Output styles.
var (
	styleName    = color.New(color.FgCyan, color.Bold)
	styleOK      = color.New(color.FgGreen)
	styleWarn    = color.New(color.FgYellow)
	styleMuted   = color.New(color.FgHiBlack)
	styleHeading = color.New(color.Bold)
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Save and load backups of the live save directory",
	Long: `Save and load named backups of the live save directory.

Each backup is a full copy of the live directory stored as a subdirectory
of the backup store. Loading a backup replaces the live directory; if the
copy fails, the previous live directory is put back.`,
	Example: `  # Save the current state
  savekeep backup create "before boss"

  # List backups
  savekeep backup list --long

  # Load one back (pick interactively when no name is given)
  savekeep backup restore "before boss"

  # See which files a load would discard
  savekeep backup missing "before boss"

  # Delete backups
  savekeep backup delete save1 save2

  See Also:
    savekeep backup list    - List available backups
    savekeep backup restore - Load a backup
    savekeep doctor         - Check directories and leftovers`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func openStore() *backup.Store {
	return backup.NewStore(flags.StoreDir(), backup.WithLogger(slog.Default()))
}

func newEngine() *restore.Engine {
	return restore.New(restore.WithLogger(slog.Default()))
}

// pickOne returns args[0], or asks the user to pick a backup.
func pickOne(store *backup.Store, args []string, picker prompt.Picker) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	name, err := picker.PickOne(store.Backups())
	if err != nil {
		return "", pickError(err)
	}
	return name, nil
}

// printList writes names one per line, indented.
func printList(w io.Writer, names []string) {
	for _, n := range names {
		styleMuted.Fprintf(w, "  %s\n", n)
	}
}
