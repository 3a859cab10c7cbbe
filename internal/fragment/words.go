package fragment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// WordCount returns the number of whitespace-delimited words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Normalize returns s in Unicode NFC form with every whitespace run collapsed
// to a single space and outer whitespace removed.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Join concatenates fragments with single spaces.
func Join(fragments []string) string {
	return strings.Join(fragments, " ")
}
