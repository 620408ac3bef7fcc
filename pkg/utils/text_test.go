package utils

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestBase36RoundTrip(t *testing.T) {
	values := []int64{0, 1, 35, 36, 1295, 1296, 123456789, 8675309, math.MaxInt64}
	for _, n := range values {
		encoded := strconv.FormatInt(n, 36)
		got, err := Base36ToInt(encoded)
		if err != nil {
			t.Fatalf("Base36ToInt(%q) returned error: %v", encoded, err)
		}
		if got != n {
			t.Errorf("round trip of %d gave %d", n, got)
		}
	}
}

func TestBase36ToIntKnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 1},
		{"z", 35},
		{"Z", 35},
		{"10", 36},
		{"abc", 13368},
		{"ABC", 13368},
		{"t0kg7y", 1754473246},
	}

	for _, tt := range tests {
		got, err := Base36ToInt(tt.in)
		if err != nil {
			t.Errorf("Base36ToInt(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Base36ToInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBase36ToIntRejectsInvalidInput(t *testing.T) {
	for _, in := range []string{"", "abc!", "-1", "+1", "t3_abc", "a b", "é", "zzzzzzzzzzzzzzzzzzzz"} {
		_, err := Base36ToInt(in)
		if !errors.Is(err, ErrInvalidNumeral) {
			t.Errorf("Base36ToInt(%q) error = %v, want ErrInvalidNumeral", in, err)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\n\tb   c", "a b c"},
		{"hello", "hello"},
		{"  padded  ", " padded "},
		{"line one\r\n\r\nline two", "line one line two"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
