// Package format renders fragments, validation summaries and comparison
// results as plain text for the terminal.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-dictation/internal/compare"
	"github.com/alnah/go-dictation/internal/fragment"
)

// Badge formats a fragment's stats as "[12w]", "[25w long]", "[1w short]"
// or "[empty]".
func Badge(s fragment.Stats) string {
	switch {
	case s.IsEmpty:
		return "[empty]"
	case s.IsLong:
		return fmt.Sprintf("[%dw long]", s.WordCount)
	case s.IsShort:
		return fmt.Sprintf("[%dw short]", s.WordCount)
	default:
		return fmt.Sprintf("[%dw]", s.WordCount)
	}
}

// Fragments renders one numbered line per fragment, 1-based, with its badge.
func Fragments(fragments []string, p fragment.Policy) string {
	if len(fragments) == 0 {
		return "(no fragments)\n"
	}
	width := len(fmt.Sprint(len(fragments)))
	var b strings.Builder
	for i, f := range fragments {
		fmt.Fprintf(&b, "%*d. %s %s\n", width, i+1, Badge(fragment.StatsFor(f, p)), f)
	}
	return b.String()
}

// Summary renders a one-line validation summary, for example
// "18 fragments (optimal), avg 14.2 words, 1 long".
func Summary(v fragment.Validation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", v.Total, plural(v.Total, "fragment", "fragments"))
	if v.OptimalRange {
		b.WriteString(" (optimal)")
	}
	fmt.Fprintf(&b, ", avg %.1f words", v.AverageWords)
	for _, c := range []struct {
		n    int
		what string
	}{{v.LongCount, "long"}, {v.ShortCount, "short"}, {v.EmptyCount, "empty"}} {
		if c.n > 0 {
			fmt.Fprintf(&b, ", %d %s", c.n, c.what)
		}
	}
	return b.String()
}

// Percent formats a ratio in [0, 1] as a whole percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

// Comparison renders a word-by-word comparison: correct words as typed,
// misspelled as "typed(expected)", wrong as "[typed→expected]", missing as
// "_expected_" and extra as "+typed", followed by the accuracy.
func Comparison(r compare.Result) string {
	parts := make([]string, 0, len(r.Words))
	for _, w := range r.Words {
		switch w.Status {
		case compare.Correct:
			parts = append(parts, w.Actual)
		case compare.Misspelled:
			parts = append(parts, fmt.Sprintf("%s(%s)", w.Actual, w.Expected))
		case compare.Wrong:
			parts = append(parts, fmt.Sprintf("[%s→%s]", w.Actual, w.Expected))
		case compare.Missing:
			parts = append(parts, "_"+w.Expected+"_")
		case compare.Extra:
			parts = append(parts, "+"+w.Actual)
		}
	}
	return fmt.Sprintf("%s\naccuracy: %s\n", strings.Join(parts, " "), Percent(r.Accuracy))
}

// Age formats the time elapsed since t for listings.
// Examples: "just now", "45s ago", "30m ago", "1h30m ago", "3d ago".
func Age(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "just now"
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", d/(24*time.Hour))
	default:
		return DurationHuman(d) + " ago"
	}
}

// DurationHuman formats a duration for human display.
// Examples: "2h", "30m", "1h30m", "45s".
func DurationHuman(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	return fmt.Sprintf("%ds", d/time.Second)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
