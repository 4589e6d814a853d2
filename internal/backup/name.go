package backup

import (
	"cmp"
	"slices"
	"strings"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// ForbiddenChars lists the characters a backup name may not contain.
const ForbiddenChars = `\/:*?"<>|`

// ValidateName checks a user-supplied backup name and returns it with
// leading and trailing whitespace removed.
//
// A name is rejected when it is empty after trimming, contains any of
// ForbiddenChars, or is "." or "..".
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)

	var reason error
	switch {
	case trimmed == "":
		reason = errors.New("name is empty")
	case strings.ContainsAny(trimmed, ForbiddenChars):
		reason = errors.Newf("name may not contain any of %s", ForbiddenChars)
	case trimmed == "." || trimmed == "..":
		reason = errors.Newf("%q is reserved", trimmed)
	}

	if reason != nil {
		return "", &OpError{Op: OpValidate, Kind: ErrInvalidName, Name: name, Err: reason}
	}
	return trimmed, nil
}

// SortNatural sorts names in place in natural order.
func SortNatural(names []string) {
	slices.SortFunc(names, CompareNatural)
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return CompareNatural(a, b) < 0
}

// CompareNatural compares two names so that runs of digits compare as
// integers and everything else compares case-insensitively: "save2" sorts
// before "save10" and "Save1" next to "save1". Names that compare equal
// that way fall back to byte order so the result is total.
func CompareNatural(a, b string) int {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(ka[i], kb[i])
		} else {
			c = strings.Compare(ka[i], kb[i])
		}
		if c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(ka), len(kb)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// naturalKey splits s into alternating text and digit runs, always starting
// and ending with a (possibly empty) text run. Text runs are lower-cased.
func naturalKey(s string) []string {
	var key []string
	start := 0
	inDigits := false
	for i, r := range s {
		d := isASCIIDigit(r)
		if d == inDigits {
			continue
		}
		key = append(key, chunk(s[start:i], inDigits))
		start = i
		inDigits = d
	}
	key = append(key, chunk(s[start:], inDigits))
	if inDigits {
		key = append(key, "")
	}
	return key
}

func chunk(s string, digits bool) string {
	if digits {
		return s
	}
	return strings.ToLower(s)
}

// compareDigits compares two ASCII digit strings by integer value without
// parsing, so arbitrarily long runs are safe.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
