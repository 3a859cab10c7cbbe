package segment

import (
	"strings"
	"unicode"
)

// Sentences splits text into sentences using terminal punctuation and
// capitalization. A '.', '!' or '?' closes a sentence only when the next
// non-space rune is uppercase or the input ends; anything else (abbreviations,
// decimals, "?!" runs) keeps accumulating. Inner whitespace is preserved and
// each sentence is trimmed. Whitespace-only input yields nil.
func Sentences(text string) []string {
	runes := []rune(text)

	var out []string
	var buf strings.Builder

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			out = append(out, s)
		}
		buf.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		buf.WriteRune(r)
		if !isTerminal(r) {
			continue
		}

		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == len(runes) || unicode.IsUpper(runes[j]) {
			flush()
			i = j - 1
		}
	}
	flush()

	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
