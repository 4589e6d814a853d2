package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// ErrNoInput indicates the input ended before an answer was given.
var ErrNoInput = errors.New("no input")

// Confirmer asks yes/no questions.
type Confirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmer creates a Confirmer using stdin and stdout.
func NewConfirmer() *Confirmer {
	return NewConfirmerWithIO(os.Stdin, os.Stdout)
}

// NewConfirmerWithIO creates a Confirmer with custom reader and writer for testing.
func NewConfirmerWithIO(r io.Reader, w io.Writer) *Confirmer {
	return &Confirmer{reader: bufio.NewReader(r), writer: w}
}

// Confirm prints question with a [y/N] or [Y/n] hint and reads the answer.
// An empty answer selects def. Unrecognized answers ask again.
// Returns ErrNoInput if the input ends first.
func (c *Confirmer) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(c.writer, "%s %s ", question, hint)

		line, err := c.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(c.writer)
			if errors.Is(err, io.EOF) {
				return false, ErrNoInput
			}
			return false, errors.Wrap(err, "reading answer")
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.writer, "Please answer y or n.")
		if err != nil {
			return false, ErrNoInput
		}
	}
}
