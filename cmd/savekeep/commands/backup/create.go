package backup

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
)

var (
	createForce bool
	createYes   bool
)

func init() {
	createCmd.Flags().BoolVar(&createForce, "force", false, "save even if an identical backup exists")
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "answer yes to the duplicate prompt")
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Aliases: []string{"save"},
	Short:   "Save the live directory as a new backup",
	Long: `Copy the live save directory into the store under <name>.

Names are trimmed and may not be empty, "." or "..", or contain any of
` + backup.ForbiddenChars + `. A name that is already taken is refused.

If an existing backup holds exactly the same files, savekeep asks before
saving a duplicate. Use --force to skip the check.`,
	Example: `  savekeep backup create "before boss"
  savekeep backup save checkpoint --force

  See Also:
    savekeep backup list    - List available backups
    savekeep backup restore - Load a backup`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(c *cobra.Command, args []string) error {
	return runCreateWithIO(args, c.OutOrStdout(), c.InOrStdin())
}

// runCreateWithIO allows injecting writers for testing.
func runCreateWithIO(args []string, w io.Writer, r io.Reader) error {
	unlock, err := lockStore(flags.StoreDir())
	if err != nil {
		return err
	}
	defer unlock()

	store := openStore()
	live := flags.LiveDir()

	var opts []backup.CreateOption
	if createForce {
		opts = append(opts, backup.Force())
	}

	b, err := store.Create(live, args[0], opts...)
	if existing, ok := backup.ConflictingBackup(err); ok {
		styleWarn.Fprintf(w, "Backup %q already holds these files.\n", existing)

		save := createYes
		if !save {
			save, err = prompt.NewConfirmerWithIO(r, w).Confirm("Save a duplicate anyway?", false)
			if err != nil {
				return confirmError(err, "use --force to save a duplicate")
			}
		}
		if !save {
			fmt.Fprintln(w, "Nothing saved")
			return nil
		}
		b, err = store.Create(live, args[0], backup.Force())
	}
	if err != nil {
		return commandError(err)
	}

	styleOK.Fprint(w, "saved ")
	styleName.Fprint(w, b.Name)
	fmt.Fprintf(w, " (%d files, %s)\n", b.Files, humanize.Bytes(uint64(max(b.Size, 0))))
	return nil
}
