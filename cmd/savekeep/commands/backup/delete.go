package backup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
)

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation prompt")
	Cmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete [name...]",
	Aliases: []string{"rm"},
	Short:   "Delete backups",
	Long: `Delete one or more backups from the store.

Without names, pick the backups to delete from a list. A confirmation
prompt is shown unless --yes is given. Deletion stops at the first backup
that cannot be removed; the ones removed before it stay removed.`,
	Example: `  # Delete two backups (with confirmation)
  savekeep backup delete save1 save2

  # Pick interactively
  savekeep backup delete

  # Without confirmation
  savekeep backup delete save1 --yes

  See Also:
    savekeep backup list - List available backups`,
	RunE: runDelete,
}

func runDelete(c *cobra.Command, args []string) error {
	return runDeleteWithIO(args, c.OutOrStdout(), c.InOrStdin())
}

// runDeleteWithIO allows injecting writers for testing.
func runDeleteWithIO(args []string, w io.Writer, r io.Reader) error {
	unlock, err := lockStore(flags.StoreDir())
	if err != nil {
		return err
	}
	defer unlock()

	store := openStore()
	picker, confirmer := prompt.NewSession(r, w)

	names := args
	if len(names) == 0 {
		names, err = picker.PickMany(store.Backups())
		if err != nil {
			return pickError(err)
		}
	}

	if !deleteYes {
		fmt.Fprintln(w, "Deleting:")
		printList(w, names)
		ok, err := confirmer.Confirm(fmt.Sprintf("Delete %d backup(s)?", len(names)), false)
		if err != nil {
			return confirmError(err, "use --yes to delete without asking")
		}
		if !ok {
			fmt.Fprintln(w, "Deletion cancelled")
			return nil
		}
	}

	deleted, err := store.Delete(names)
	for _, path := range deleted {
		styleOK.Fprint(w, "deleted ")
		fmt.Fprintln(w, path)
	}
	return commandError(err)
}
