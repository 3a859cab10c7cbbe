// Package segment partitions raw text into dictation fragments: sentence
// detection, punctuation-based split points, and bounded recursive splitting
// of sentences that exceed the fragment word ceiling.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-dictation/internal/fragment"
)

// Segmenter splits text according to a fragment.Policy.
// It holds no mutable state and is safe for concurrent use.
type Segmenter struct {
	policy fragment.Policy
}

// New creates a Segmenter for p. The caller is expected to have validated p.
func New(p fragment.Policy) *Segmenter {
	return &Segmenter{policy: p}
}

// Policy returns the limits used by the segmenter.
func (s *Segmenter) Policy() fragment.Policy {
	return s.policy
}

// Segment checks the input word bounds, detects sentences and splits every
// sentence longer than the ceiling. It returns a *BoundsError when the input
// is too short or too long; no fragments are produced in that case.
func (s *Segmenter) Segment(text string) ([]string, error) {
	if n := fragment.WordCount(text); n < s.policy.MinWords || n > s.policy.MaxWords {
		return nil, &BoundsError{Words: n, Min: s.policy.MinWords, Max: s.policy.MaxWords}
	}

	var out []string
	for _, sentence := range Sentences(text) {
		out = append(out, s.SegmentSentence(sentence, 0)...)
	}
	return out, nil
}

// SegmentSentence splits one sentence into fragments of at most Ceiling words.
// depth is the current recursion depth; spans reached past MaxDepth are
// returned unsplit, as are spans without a usable split position.
func (s *Segmenter) SegmentSentence(sentence string, depth int) []string {
	if fragment.WordCount(sentence) <= s.policy.Ceiling || depth > s.policy.MaxDepth {
		return []string{sentence}
	}

	pos := bestSplitPoint(sentence)
	if pos < 0 {
		pos = midWordBoundary(sentence)
	}
	if pos <= 0 || pos >= len(sentence) {
		return []string{sentence}
	}

	left := strings.TrimSpace(sentence[:pos])
	right := strings.TrimSpace(sentence[pos:])
	if left == "" || right == "" {
		return []string{sentence}
	}

	out := s.side(left, depth)
	return append(out, s.side(right, depth)...)
}

func (s *Segmenter) side(text string, depth int) []string {
	if fragment.WordCount(text) > s.policy.Ceiling {
		return s.SegmentSentence(text, depth+1)
	}
	return []string{text}
}

// bestSplitPoint returns the split point closest to the rune midpoint of text,
// or -1 when text has none. SplitPoints is ordered by priority then position,
// so keeping the first minimum applies both tie-breaks.
func bestSplitPoint(text string) int {
	points := SplitPoints(text)
	if len(points) == 0 {
		return -1
	}

	mid := utf8.RuneCountInString(text) / 2
	best, bestDist := -1, -1
	for _, p := range points {
		d := abs(utf8.RuneCountInString(text[:p.Position]) - mid)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.Position, d
		}
	}
	return best
}

// midWordBoundary returns the byte offset of the word at index len(words)/2,
// or -1 when text has fewer than two words.
func midWordBoundary(text string) int {
	starts := wordStarts(text)
	if len(starts) < 2 {
		return -1
	}
	return starts[len(starts)/2]
}

// wordStarts returns the byte offsets at which whitespace-delimited words begin.
func wordStarts(text string) []int {
	var starts []int
	inWord := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if !space && !inWord {
			starts = append(starts, i)
		}
		inWord = !space
	}
	return starts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
