// Package editor launches the user's text editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// ErrNoEditor indicates the editor setting is blank.
var ErrNoEditor = errors.New("no editor configured")

// Detect returns the editor command line to use.
// Fallback chain: $VISUAL → $EDITOR → nano → vi.
func Detect() string {
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}

// Open runs the editor from Detect on path with the given standard streams
// and waits for it to exit. The editor setting may carry arguments, as in
// "code --wait".
func Open(ctx context.Context, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	args := strings.Fields(Detect())
	if len(args) == 0 {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", args[0])
	}
	return nil
}
