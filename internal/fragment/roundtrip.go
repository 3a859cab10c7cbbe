package fragment

import (
	"fmt"
	"unicode/utf8"
)

// RoundTripError reports where joined fragments first diverge from the source.
// Offset is a byte offset into the normalized texts, at a rune boundary.
type RoundTripError struct {
	Offset int
	Want   string // normalized source around Offset
	Got    string // normalized fragments around Offset
}

func (e *RoundTripError) Error() string {
	return fmt.Sprintf("%v at offset %d: want %q, got %q", ErrRoundTrip, e.Offset, e.Want, e.Got)
}

func (e *RoundTripError) Unwrap() error {
	return ErrRoundTrip
}

// excerptLen is the number of bytes shown on each side of a divergence.
const excerptLen = 20

// CheckRoundTrip verifies that fragments joined with single spaces equal
// source once both are normalized. It returns a *RoundTripError otherwise.
func CheckRoundTrip(source string, fragments []string) error {
	want := Normalize(source)
	got := Normalize(Join(fragments))
	if want == got {
		return nil
	}

	i := 0
	for i < len(want) && i < len(got) && want[i] == got[i] {
		i++
	}
	for i > 0 && i < len(want) && !utf8.RuneStart(want[i]) {
		i--
	}
	return &RoundTripError{
		Offset: i,
		Want:   excerpt(want, i),
		Got:    excerpt(got, i),
	}
}

func excerpt(s string, at int) string {
	start := max(0, at-excerptLen)
	for start > 0 && !utf8.RuneStart(s[start]) {
		start--
	}
	end := min(len(s), at+excerptLen)
	for end < len(s) && !utf8.RuneStart(s[end]) {
		end++
	}
	return s[start:end]
}
