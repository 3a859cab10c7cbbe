// Package compare scores a typed dictation attempt against the expected
// fragment text, word by word.
package compare

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// Status classifies one aligned word.
type Status string

// Word statuses.
const (
	Correct    Status = "correct"
	Misspelled Status = "misspelled"
	Wrong      Status = "wrong"
	Missing    Status = "missing"
	Extra      Status = "extra"
)

// Word is one aligned position. Expected is empty for Extra words and
// Actual is empty for Missing words.
type Word struct {
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Status   Status `json:"status"`
}

// Result is the outcome of a comparison.
type Result struct {
	Words []Word `json:"words"`
	// Accuracy is the share of expected words typed correctly, in [0, 1].
	Accuracy float64 `json:"accuracy"`
}

// Comparer compares an expected text with what the learner typed.
type Comparer interface {
	Compare(expected, actual string) Result
}

// WordComparer aligns words by edit distance and grades substitutions with
// Levenshtein distance. The zero value is ready to use.
type WordComparer struct{}

var _ Comparer = WordComparer{}

// Compare implements Comparer.
func (WordComparer) Compare(expected, actual string) Result {
	exp := tokens(expected)
	act := tokens(actual)
	words := align(exp, act)

	correct := 0
	for _, w := range words {
		if w.Status == Correct {
			correct++
		}
	}

	res := Result{Words: words}
	switch {
	case len(exp) > 0:
		res.Accuracy = float64(correct) / float64(len(exp))
	case len(act) == 0:
		res.Accuracy = 1
	}
	return res
}

// Compare runs the default WordComparer.
func Compare(expected, actual string) Result {
	return WordComparer{}.Compare(expected, actual)
}

type token struct {
	raw  string
	norm string
}

// tokens splits s on whitespace and keys each word by its lowercase letters
// and digits, so punctuation and case do not count as mistakes.
func tokens(s string) []token {
	fields := strings.Fields(s)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		n := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, f)
		if n == "" {
			continue
		}
		out = append(out, token{raw: f, norm: n})
	}
	return out
}

// align computes a minimal word-level edit script between exp and act.
func align(exp, act []token) []Word {
	n, m := len(exp), len(act)
	dist := make([][]int, n+1)
	for i := range dist {
		dist[i] = make([]int, m+1)
		dist[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dist[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := dist[i-1][j-1]
			if exp[i-1].norm != act[j-1].norm {
				sub++
			}
			dist[i][j] = min(sub, dist[i-1][j]+1, dist[i][j-1]+1)
		}
	}

	var rev []Word
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && exp[i-1].norm == act[j-1].norm && dist[i][j] == dist[i-1][j-1]:
			rev = append(rev, Word{Expected: exp[i-1].raw, Actual: act[j-1].raw, Status: Correct})
			i, j = i-1, j-1
		case i > 0 && j > 0 && dist[i][j] == dist[i-1][j-1]+1:
			rev = append(rev, Word{Expected: exp[i-1].raw, Actual: act[j-1].raw, Status: grade(exp[i-1].norm, act[j-1].norm)})
			i, j = i-1, j-1
		case i > 0 && dist[i][j] == dist[i-1][j]+1:
			rev = append(rev, Word{Expected: exp[i-1].raw, Status: Missing})
			i--
		default:
			rev = append(rev, Word{Actual: act[j-1].raw, Status: Extra})
			j--
		}
	}

	out := make([]Word, len(rev))
	for k, w := range rev {
		out[len(rev)-1-k] = w
	}
	return out
}

// grade separates near misses from wrong words: a substitution within a third
// of the expected word length (at least one edit) counts as misspelled.
func grade(expected, actual string) Status {
	limit := max(1, len([]rune(expected))/3)
	if matchr.Levenshtein(expected, actual) <= limit {
		return Misspelled
	}
	return Wrong
}
