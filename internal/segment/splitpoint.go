package segment

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"
)

// Priority ranks split points; lower values are preferred.
type Priority int

const (
	// High marks a period inside a span that is not followed by a capital.
	High Priority = iota
	// Medium marks a comma.
	Medium
	// Low marks a semicolon or colon.
	Low
)

// String returns the lowercase priority name.
func (p Priority) String() string {
	switch p {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Split point reasons.
const (
	ReasonPeriod    = "period"
	ReasonComma     = "comma"
	ReasonSemicolon = "semicolon"
	ReasonColon     = "colon"
)

// SplitPoint is a candidate break inside a span.
type SplitPoint struct {
	// Position is the byte offset right after the punctuation and the
	// whitespace run that follows it.
	Position int
	Priority Priority
	Reason   string
}

// SplitPoints returns the punctuation-based break candidates of text, sorted
// by priority then position. Only positions strictly inside text are returned.
func SplitPoints(text string) []SplitPoint {
	var points []SplitPoint

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		prio, reason, ok := classify(r)
		if !ok {
			continue
		}

		// Require at least one whitespace rune after the punctuation.
		end := skipSpace(text, i)
		if end == i || end >= len(text) {
			continue
		}

		if r == '.' {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if unicode.IsUpper(next) {
				continue
			}
		}

		points = append(points, SplitPoint{Position: end, Priority: prio, Reason: reason})
	}

	slices.SortStableFunc(points, func(a, b SplitPoint) int {
		if a.Priority != b.Priority {
			return int(a.Priority) - int(b.Priority)
		}
		return a.Position - b.Position
	})
	return points
}

func classify(r rune) (Priority, string, bool) {
	switch r {
	case '.':
		return High, ReasonPeriod, true
	case ',':
		return Medium, ReasonComma, true
	case ';':
		return Low, ReasonSemicolon, true
	case ':':
		return Low, ReasonColon, true
	default:
		return 0, "", false
	}
}

// skipSpace returns the offset of the first non-space rune at or after i.
func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
