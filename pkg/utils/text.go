package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidNumeral = errors.New("invalid base-36 numeral")

// Base36ToInt converts a submission id such as "1abc" to its base-10 value.
// Letters are accepted in either case; signs, spaces and anything outside
// [0-9a-z] are rejected.
func Base36ToInt(in string) (int64, error) {
	if in == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidNumeral)
	}

	for _, r := range in {
		if !isBase36Digit(r) {
			return 0, fmt.Errorf("%w: %q contains %q", ErrInvalidNumeral, in, r)
		}
	}

	n, err := strconv.ParseInt(in, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidNumeral, in, err)
	}

	return n, nil
}

func isBase36Digit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// NormalizeWhitespace collapses every run of whitespace, newlines included,
// into a single space. The ends are not trimmed.
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}
