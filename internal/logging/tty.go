package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether v is a terminal. Only values with an Fd method,
// such as *os.File, can be one; cobra's buffered test streams never are.
// The backup picker uses it to choose between the fuzzy finder and the
// numbered list.
func IsTTY(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether log records written to w get colored
// level prefixes.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTTY(w))
}

// colorAllowed applies the NO_COLOR and TERM=dumb conventions, the same
// ones fatih/color follows for command output.
func colorAllowed(tty bool) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return tty
}
