package editor

import (
	"slices"
	"time"
)

// Entry is one immutable snapshot in the edit history.
type Entry struct {
	fragments []string
	Timestamp time.Time
	Action    string
}

// NewEntry creates an Entry holding a copy of fragments.
func NewEntry(fragments []string, ts time.Time, action string) Entry {
	return Entry{fragments: slices.Clone(fragments), Timestamp: ts, Action: action}
}

// Fragments returns a copy of the snapshot.
func (e Entry) Fragments() []string {
	return slices.Clone(e.fragments)
}

// History is a bounded linear undo/redo list with a cursor.
// The cursor always indexes a valid entry.
type History struct {
	entries  []Entry
	cursor   int
	capacity int
}

// NewHistory creates a History holding initial as its first entry.
// capacity is clamped to at least 1.
func NewHistory(capacity int, initial Entry) *History {
	capacity = max(capacity, 1)
	initial.fragments = slices.Clone(initial.fragments)
	return &History{
		entries:  []Entry{initial},
		capacity: capacity,
	}
}

// Push discards every entry after the cursor, appends e and moves the cursor
// to it. When the capacity is exceeded the oldest entry is evicted.
func (h *History) Push(e Entry) {
	e.fragments = slices.Clone(e.fragments)

	// slices.Delete zeroes the tail so dropped snapshots can be collected.
	h.entries = slices.Delete(h.entries, h.cursor+1, len(h.entries))
	h.entries = append(h.entries, e)
	h.cursor = len(h.entries) - 1

	for len(h.entries) > h.capacity {
		h.entries = slices.Delete(h.entries, 0, 1)
		h.cursor = max(h.cursor-1, 0)
	}
}

// Current returns the entry under the cursor.
func (h *History) Current() Entry {
	return h.entries[h.cursor]
}

// Undo moves the cursor back and returns that snapshot.
// It returns nil, false when already at the oldest entry.
func (h *History) Undo() ([]string, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Fragments(), true
}

// Redo moves the cursor forward and returns that snapshot.
// It returns nil, false when already at the newest entry.
func (h *History) Redo() ([]string, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Fragments(), true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current entry.
func (h *History) Cursor() int { return h.cursor }

// Capacity returns the maximum number of entries kept.
func (h *History) Capacity() int { return h.capacity }

// Entries returns the stored entries, oldest first.
func (h *History) Entries() []Entry {
	return slices.Clone(h.entries)
}
