// Package editor implements interactive split, merge and edit operations over
// a fragment list, backed by a bounded linear undo/redo history.
//
// An Editor is owned by a single editing session and is not safe for
// concurrent use. Rejected operations leave the fragments and the history
// untouched and report false.
package editor

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/alnah/go-dictation/internal/fragment"
)

// History action labels.
const (
	ActionInitial = "initial"
	ActionSplit   = "split"
	ActionMerge   = "merge"
	ActionEdit    = "edit"
)

// Editor mutates a fragment list and records every change in a History.
type Editor struct {
	history *History
	now     func() time.Time
}

// Option configures an Editor.
type Option func(*options)

type options struct {
	capacity int
	now      func() time.Time
}

// WithCapacity sets the number of snapshots kept. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithClock sets the timestamp source for history entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Editor over a copy of fragments.
func New(fragments []string, opts ...Option) *Editor {
	o := options{
		capacity: fragment.DefaultHistoryCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	initial := Entry{fragments: fragments, Timestamp: o.now(), Action: ActionInitial}
	return &Editor{
		history: NewHistory(o.capacity, initial),
		now:     o.now,
	}
}

// Fragments returns a copy of the current fragments.
func (e *Editor) Fragments() []string {
	return e.history.Current().Fragments()
}

// Len returns the number of current fragments.
func (e *Editor) Len() int {
	return len(e.history.Current().fragments)
}

// History exposes the edit history for inspection.
func (e *Editor) History() *History {
	return e.history
}

// Split divides fragment index at position, a rune offset into the fragment.
// The position snaps to the nearest whitespace boundary, preferring the left
// one on ties, and both halves are trimmed. The split is rejected when the
// index or position is out of range or a half would be empty.
func (e *Editor) Split(index, position int) ([]string, bool) {
	cur := e.history.Current().fragments
	if index < 0 || index >= len(cur) {
		return e.Fragments(), false
	}

	runes := []rune(cur[index])
	if position <= 0 || position >= len(runes) {
		return e.Fragments(), false
	}

	at, ok := snapToBoundary(runes, position)
	if !ok {
		return e.Fragments(), false
	}

	left := strings.TrimSpace(string(runes[:at]))
	right := strings.TrimSpace(string(runes[at:]))
	if left == "" || right == "" {
		return e.Fragments(), false
	}

	next := make([]string, 0, len(cur)+1)
	next = append(next, cur[:index]...)
	next = append(next, left, right)
	next = append(next, cur[index+1:]...)
	return e.commit(next, ActionSplit), true
}

// Merge joins fragment index with the one after it, separated by one space.
func (e *Editor) Merge(index int) ([]string, bool) {
	cur := e.history.Current().fragments
	if index < 0 || index >= len(cur)-1 {
		return e.Fragments(), false
	}

	joined := strings.TrimSpace(cur[index]) + " " + strings.TrimSpace(cur[index+1])

	next := make([]string, 0, len(cur)-1)
	next = append(next, cur[:index]...)
	next = append(next, joined)
	next = append(next, cur[index+2:]...)
	return e.commit(next, ActionMerge), true
}

// Edit replaces fragment index with text as given. The new text is not checked
// against the source; it is rejected only when the index is out of range, the
// text is blank, or nothing changes.
func (e *Editor) Edit(index int, text string) ([]string, bool) {
	cur := e.history.Current().fragments
	if index < 0 || index >= len(cur) {
		return e.Fragments(), false
	}
	if strings.TrimSpace(text) == "" || cur[index] == text {
		return e.Fragments(), false
	}

	next := slices.Clone(cur)
	next[index] = text
	return e.commit(next, ActionEdit), true
}

// Undo restores the previous snapshot. It returns nil, false when there is
// nothing to undo.
func (e *Editor) Undo() ([]string, bool) {
	return e.history.Undo()
}

// Redo restores the next snapshot. It returns nil, false when there is
// nothing to redo.
func (e *Editor) Redo() ([]string, bool) {
	return e.history.Redo()
}

// CanUndo reports whether Undo would succeed.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

func (e *Editor) commit(next []string, action string) []string {
	e.history.Push(Entry{fragments: next, Timestamp: e.now(), Action: action})
	return e.Fragments()
}

// snapToBoundary moves position to the nearest whitespace boundary.
// A position next to whitespace is already a boundary. Otherwise the closest
// whitespace rune on either side wins, left on ties. It reports false when
// the runes contain no whitespace at all.
func snapToBoundary(runes []rune, position int) (int, bool) {
	if unicode.IsSpace(runes[position]) || unicode.IsSpace(runes[position-1]) {
		return position, true
	}

	left := -1
	for i := position - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			left = i
			break
		}
	}
	right := -1
	for i := position; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			right = i
			break
		}
	}

	switch {
	case left < 0 && right < 0:
		return 0, false
	case left < 0:
		return right, true
	case right < 0:
		return left, true
	case position-left <= right-position:
		return left, true
	default:
		return right, true
	}
}
