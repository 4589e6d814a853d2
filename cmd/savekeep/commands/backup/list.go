package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/errors"
)

var (
	listJSON bool
	listLong bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show file count, size, and age")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available backups",
	Long: `List the backups in the store in natural order, so "save2" comes
before "save10". Entries in the store that are not directories are ignored.`,
	Example: `  # List backup names
  savekeep backup list

  # With sizes and ages
  savekeep backup list --long

  # Output as JSON
  savekeep backup list --json

  See Also:
    savekeep backup restore - Load a backup
    savekeep backup create  - Create a new backup`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listOutput represents the JSON output for backup list.
type listOutput struct {
	Store   string       `json:"store"`
	Backups []infoOutput `json:"backups"`
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	FileCount int       `json:"file_count"`
	Size      int64     `json:"size"`
}

func runList(c *cobra.Command, _ []string) error {
	return runListWithWriter(c.OutOrStdout())
}

func runListWithWriter(w io.Writer) error {
	store := openStore()

	switch {
	case listJSON:
		return outputListJSON(w, store)
	case listLong:
		return outputListTabular(w, store)
	}

	names := store.List()
	if len(names) == 0 {
		printEmpty(w, store)
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}

func outputListJSON(w io.Writer, store *backup.Store) error {
	backups := store.Backups()
	output := listOutput{
		Store:   store.Root(),
		Backups: make([]infoOutput, len(backups)),
	}
	for i, b := range backups {
		output.Backups[i] = infoOutput{
			Name:      b.Name,
			Path:      b.Path,
			CreatedAt: b.CreatedAt,
			FileCount: b.Files,
			Size:      b.Size,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding output")
}

func outputListTabular(w io.Writer, store *backup.Store) error {
	backups := store.Backups()
	if len(backups) == 0 {
		printEmpty(w, store)
		return nil
	}

	styleHeading.Fprintf(w, "Store: %s\n", store.Root())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tFILES\tSIZE\tMODIFIED")
	for _, b := range backups {
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\n",
			b.Name,
			b.Files,
			humanize.Bytes(uint64(max(b.Size, 0))),
			humanize.Time(b.CreatedAt))
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

func printEmpty(w io.Writer, store *backup.Store) {
	styleMuted.Fprintf(w, "No backups in %s\n", store.Root())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create one with: savekeep backup create <name>")
	fmt.Fprintf(w, "Live directory: %s\n", flags.LiveDir())
}
