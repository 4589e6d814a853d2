package backup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
)

func init() {
	Cmd.AddCommand(missingCmd)
}

var missingCmd = &cobra.Command{
	Use:   "missing [name]",
	Short: "List live files a load would discard",
	Long: `List the files in the live save directory that the backup does not
contain. Loading the backup discards them. Without a name, pick the backup
from a list.`,
	Example: `  savekeep backup missing "before boss"`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runMissing,
}

func runMissing(c *cobra.Command, args []string) error {
	return runMissingWithIO(args, c.OutOrStdout(), c.InOrStdin())
}

// runMissingWithIO allows injecting writers for testing.
func runMissingWithIO(args []string, w io.Writer, r io.Reader) error {
	store := openStore()
	picker, _ := prompt.NewSession(r, w)

	name, err := pickOne(store, args, picker)
	if err != nil {
		return err
	}
	b, err := store.Get(name)
	if err != nil {
		return commandError(err)
	}

	missing := newEngine().MissingFiles(flags.LiveDir(), b.Path)
	if len(missing) == 0 {
		fmt.Fprintf(w, "Loading %q discards no files\n", b.Name)
		return nil
	}
	for _, f := range missing {
		fmt.Fprintln(w, f)
	}
	return nil
}
