package backup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/restore"
)

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Skip confirmation prompt")
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:     "restore [name]",
	Aliases: []string{"load"},
	Short:   "Replace the live directory with a backup",
	Long: `Replace the live save directory with a copy of a backup.

Without a name, pick the backup from a list. Before loading, savekeep shows
the files in the live directory that the backup does not have; they are
discarded by the load. A confirmation prompt is shown unless --yes is given.

The live directory is first renamed to temp_backup_<name> beside it. If
copying the backup fails, the original is put back. If even that fails,
the original is left in temp_backup_<name> and the error says where.`,
	Example: `  # Load a backup (with confirmation)
  savekeep backup restore "before boss"

  # Pick interactively
  savekeep backup load

  See Also:
    savekeep backup missing - Files a load would discard
    savekeep backup list    - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(c *cobra.Command, args []string) error {
	return runRestoreWithIO(args, c.OutOrStdout(), c.InOrStdin())
}

// runRestoreWithIO allows injecting writers for testing.
func runRestoreWithIO(args []string, w io.Writer, r io.Reader) error {
	unlock, err := lockStore(flags.StoreDir())
	if err != nil {
		return err
	}
	defer unlock()

	store := openStore()
	engine := newEngine()
	live := flags.LiveDir()
	picker, confirmer := prompt.NewSession(r, w)

	name, err := pickOne(store, args, picker)
	if err != nil {
		return err
	}
	b, err := store.Get(name)
	if err != nil {
		return commandError(err)
	}

	if !restoreYes {
		if missing := engine.MissingFiles(live, b.Path); len(missing) > 0 {
			styleWarn.Fprintf(w, "%d file(s) in %s are not in %q and will be lost:\n", len(missing), live, b.Name)
			printList(w, missing)
		}
		ok, err := confirmer.Confirm(fmt.Sprintf("Load %q over %s?", b.Name, live), false)
		if err != nil {
			return confirmError(err, "use --yes to load without asking")
		}
		if !ok {
			fmt.Fprintln(w, "Load cancelled")
			return nil
		}
	}

	res, err := engine.Restore(b.Path, live)
	if err != nil {
		return restoreError(w, res, err)
	}

	styleOK.Fprint(w, "loaded ")
	styleName.Fprintln(w, b.Name)
	if res.Leftover != "" {
		styleWarn.Fprintf(w, "could not remove %s: %v\n", res.Leftover, res.CleanupErr)
		fmt.Fprintln(w, "It holds the save that was live before this load. Remove it when you no longer need it.")
	}
	return nil
}

// restoreError explains where the user's data is after a failed restore.
func restoreError(w io.Writer, res *restore.Result, err error) error {
	switch res.State {
	case restore.StateRolledBack:
		styleWarn.Fprintf(w, "Load failed; the original data was kept in %s\n", res.LiveDir)
	case restore.StateLiveRenamed:
		var opErr *backup.OpError
		if errors.As(err, &opErr) {
			styleWarn.Fprintf(w, "Load failed and could not be undone; the original data was kept in %s\n", opErr.Path)
		}
	}
	return commandError(err)
}
