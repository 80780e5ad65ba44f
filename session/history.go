package session

import (
	"sketch/diagram"
	"sketch/groups"
)

// HistoryLimit bounds the undo ring; the oldest entry is evicted first.
const HistoryLimit = 50

// historyEntry is one captured state: fully independent copies of the
// layers and the group list, deep enough that mutating the live document
// can never alter the entry.
type historyEntry struct {
	doc    *diagram.Document
	groups *groups.Manager
}

// History is the bounded undo/redo ring. The newest snapshot sits at the
// front; the cursor points at the snapshot currently live (0 = newest).
type History struct {
	entries []historyEntry
	cursor  int
	limit   int
}

// NewHistory creates an empty history with the default bound.
func NewHistory() *History {
	return &History{limit: HistoryLimit}
}

// Capture pushes an independent copy of the current state to the front and
// resets the cursor. Anything the cursor had undone past is discarded, and
// the ring never grows beyond its bound.
func (h *History) Capture(d *diagram.Document, g *groups.Manager) {
	if h.cursor > 0 {
		h.entries = h.entries[h.cursor:]
	}
	entry := historyEntry{doc: d.Clone(), groups: g.Clone()}
	h.entries = append([]historyEntry{entry}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	h.cursor = 0
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool {
	return h.cursor+1 < len(h.entries)
}

// CanRedo reports whether a newer snapshot exists.
func (h *History) CanRedo() bool {
	return h.cursor > 0
}

// Undo moves the cursor one snapshot back and returns clones of that
// state, never aliases of the stored entry.
func (h *History) Undo() (*diagram.Document, *groups.Manager, bool) {
	if !h.CanUndo() {
		return nil, nil, false
	}
	h.cursor++
	e := h.entries[h.cursor]
	return e.doc.Clone(), e.groups.Clone(), true
}

// Redo moves the cursor one snapshot forward and returns clones of that
// state.
func (h *History) Redo() (*diagram.Document, *groups.Manager, bool) {
	if !h.CanRedo() {
		return nil, nil, false
	}
	h.cursor--
	e := h.entries[h.cursor]
	return e.doc.Clone(), e.groups.Clone(), true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear drops all snapshots.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}
