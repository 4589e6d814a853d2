package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// Sentinel errors for backup selection.
var (
	ErrNoBackups          = errors.New("no backups to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Picker chooses backups interactively.
type Picker interface {
	// PickOne returns the name of one backup.
	PickOne(backups []backup.Backup) (string, error)
	// PickMany returns the names of one or more backups.
	PickMany(backups []backup.Backup) ([]string, error)
}

// NewPicker returns a FuzzyPicker when in is a terminal and a Selector
// reading from in otherwise.
func NewPicker(in io.Reader, out io.Writer) Picker {
	if logging.IsTTY(in) && logging.IsTTY(out) {
		return FuzzyPicker{}
	}
	return NewSelectorWithIO(in, out)
}

// NewSession returns a Picker and a Confirmer reading from the same
// buffered input, so answers typed ahead reach the prompt they belong to.
func NewSession(in io.Reader, out io.Writer) (Picker, *Confirmer) {
	if logging.IsTTY(in) && logging.IsTTY(out) {
		return FuzzyPicker{}, NewConfirmerWithIO(in, out)
	}
	br := bufio.NewReader(in)
	return NewSelectorWithIO(br, out), NewConfirmerWithIO(br, out)
}

// describe is the one-line label shown for a backup in both pickers.
func describe(b backup.Backup) string {
	return fmt.Sprintf("%s  (%d files, %s, %s)",
		b.Name, b.Files, humanize.Bytes(uint64(max(b.Size, 0))), humanize.Time(b.CreatedAt))
}

// FuzzyPicker selects backups with a full-screen fuzzy finder.
type FuzzyPicker struct{}

func (FuzzyPicker) PickOne(backups []backup.Backup) (string, error) {
	if len(backups) == 0 {
		return "", ErrNoBackups
	}

	idx, err := fuzzyfinder.Find(
		backups,
		func(i int) string { return backups[i].Name },
		fuzzyfinder.WithHeader("Select a backup"),
		fuzzyfinder.WithPreviewWindow(preview(backups)),
	)
	if err != nil {
		return "", findError(err)
	}
	return backups[idx].Name, nil
}

func (FuzzyPicker) PickMany(backups []backup.Backup) ([]string, error) {
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}

	idxs, err := fuzzyfinder.FindMulti(
		backups,
		func(i int) string { return backups[i].Name },
		fuzzyfinder.WithHeader("Select backups (Tab to mark)"),
		fuzzyfinder.WithPreviewWindow(preview(backups)),
	)
	if err != nil {
		return nil, findError(err)
	}

	names := make([]string, len(idxs))
	for i, idx := range idxs {
		names[i] = backups[idx].Name
	}
	return names, nil
}

func preview(backups []backup.Backup) func(i, w, h int) string {
	return func(i, _, _ int) string {
		if i == -1 {
			return ""
		}
		b := backups[i]
		return fmt.Sprintf("Name:    %s\nFiles:   %d\nSize:    %s\nCreated: %s (%s)\nPath:    %s",
			b.Name,
			b.Files,
			humanize.Bytes(uint64(max(b.Size, 0))),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			humanize.Time(b.CreatedAt),
			b.Path,
		)
	}
}

func findError(err error) error {
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return ErrSelectionCancelled
	}
	return errors.Wrap(err, "backup picker failed")
}

// Selector selects backups from a numbered list read line by line.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: bufio.NewReader(r), writer: w}
}

// PickOne prompts the user to choose one backup by number.
//
// Returns:
//   - ErrNoBackups if the list is empty
//   - The selected backup's name; an empty answer selects the first
//   - ErrInvalidSelection if the selection is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) PickOne(backups []backup.Backup) (string, error) {
	if len(backups) == 0 {
		return "", ErrNoBackups
	}

	s.list(backups)
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return backups[0].Name, nil
	}

	idx, err := parseIndex(input, len(backups))
	if err != nil {
		return "", err
	}
	return backups[idx].Name, nil
}

// PickMany prompts the user for one or more numbers separated by spaces
// or commas. Repeated numbers select once.
func (s *Selector) PickMany(backups []backup.Backup) ([]string, error) {
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}

	s.list(backups)
	fmt.Fprintf(s.writer, "Select (e.g. 1 3): ")

	input, err := s.readLine()
	if err != nil {
		return nil, err
	}

	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, errors.Wrap(ErrInvalidSelection, "nothing selected")
	}

	seen := make(map[int]bool, len(fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		idx, err := parseIndex(f, len(backups))
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		names = append(names, backups[idx].Name)
	}
	return names, nil
}

func (s *Selector) list(backups []backup.Backup) {
	for i, b := range backups {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, describe(b))
	}
}

func (s *Selector) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}
	return strings.TrimSpace(input), nil
}

// parseIndex converts a 1-based selection to a 0-based index.
func parseIndex(s string, n int) (int, error) {
	selection, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", s)
	}
	if selection < 1 || selection > n {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, n)
	}
	return selection - 1, nil
}
