package backup

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fingerprint"
	"github.com/thoreinstein/savekeep/internal/fs"
)

func init() {
	Cmd.AddCommand(fingerprintCmd)
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint [name|path]",
	Short: "Print the content fingerprint of a directory",
	Long: `Print the MD5 fingerprint savekeep uses to detect identical backups.

With no argument, fingerprints the live directory. An argument that names
a backup fingerprints that backup; otherwise it is taken as a directory
path. Two directories with the same relative file paths and contents have
the same fingerprint.`,
	Example: `  savekeep backup fingerprint
  savekeep backup fingerprint "before boss"
  savekeep backup fingerprint ./some/dir`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFingerprint,
}

func runFingerprint(c *cobra.Command, args []string) error {
	return runFingerprintWithWriter(args, c.OutOrStdout())
}

func runFingerprintWithWriter(args []string, w io.Writer) error {
	osfs := fs.NewOSFS()

	dir := flags.LiveDir()
	if len(args) > 0 {
		dir = args[0]
		if b, err := openStore().Get(args[0]); err == nil {
			dir = b.Path
		}
	}

	if !fs.IsDir(osfs, dir) {
		return errors.NewUserError(
			&backup.OpError{Op: backup.OpGet, Kind: backup.ErrNotFound, Path: dir},
			"pass a backup name or an existing directory")
	}

	sum := fingerprint.Dir(osfs, dir, fingerprint.WithLogger(slog.Default()))
	fmt.Fprintf(w, "%s  %s\n", sum, dir)
	return nil
}
