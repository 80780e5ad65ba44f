package session

import (
	"testing"

	"sketch/diagram"
	"sketch/groups"
	"sketch/shape"
)

// TestHistory_UndoRedoSymmetry tests walking the ring back and forth.
func TestHistory_UndoRedoSymmetry(t *testing.T) {
	h := NewHistory()
	d := diagram.NewDocument()
	g := groups.NewManager()

	h.Capture(d, g) // empty
	d.NewLayer(shape.KindSquare)
	h.Capture(d, g) // one layer
	d.NewLayer(shape.KindSquare)
	h.Capture(d, g) // two layers

	if !h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh capture should allow undo only")
	}

	prev, _, ok := h.Undo()
	if !ok || prev.Len() != 1 {
		t.Fatalf("first undo: %d layers, want 1", prev.Len())
	}
	prev, _, ok = h.Undo()
	if !ok || prev.Len() != 0 {
		t.Fatalf("second undo: %d layers, want 0", prev.Len())
	}
	if h.CanUndo() {
		t.Error("no older snapshot should remain")
	}

	next, _, ok := h.Redo()
	if !ok || next.Len() != 1 {
		t.Fatalf("redo: %d layers, want 1", next.Len())
	}
	next, _, ok = h.Redo()
	if !ok || next.Len() != 2 {
		t.Fatalf("second redo: %d layers, want 2", next.Len())
	}
	if h.CanRedo() {
		t.Error("no newer snapshot should remain")
	}
}

// TestHistory_CaptureTruncatesRedo tests that a new action after undos
// discards the redo tail.
func TestHistory_CaptureTruncatesRedo(t *testing.T) {
	h := NewHistory()
	d := diagram.NewDocument()
	g := groups.NewManager()

	h.Capture(d, g)
	d.NewLayer(shape.KindSquare)
	h.Capture(d, g)
	d.NewLayer(shape.KindSquare)
	h.Capture(d, g)

	h.Undo()
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("undone snapshots should be redoable")
	}

	h.Capture(d, g)
	if h.CanRedo() {
		t.Error("capture should discard the redo tail")
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (empty snapshot + new capture)", h.Len())
	}
}

// TestHistory_Bound tests oldest-first eviction at the ring limit.
func TestHistory_Bound(t *testing.T) {
	h := NewHistory()
	d := diagram.NewDocument()
	g := groups.NewManager()

	for i := 0; i < HistoryLimit+10; i++ {
		d.NewLayer(shape.KindSquare)
		h.Capture(d, g)
	}
	if h.Len() != HistoryLimit {
		t.Fatalf("Len() = %d, want %d", h.Len(), HistoryLimit)
	}

	// Walk all the way back: the oldest surviving snapshot is the one
	// captured after eviction, not the first ever.
	var oldest *diagram.Document
	for h.CanUndo() {
		oldest, _, _ = h.Undo()
	}
	if oldest.Len() != 11 {
		t.Errorf("oldest snapshot has %d layers, want 11", oldest.Len())
	}
}

// TestHistory_SnapshotsAreIndependent tests that mutating the live state
// never alters a captured entry.
func TestHistory_SnapshotsAreIndependent(t *testing.T) {
	h := NewHistory()
	d := diagram.NewDocument()
	g := groups.NewManager()

	l := d.NewLayer(shape.KindText)
	l.Text.SetString("before")
	h.Capture(d, g)

	l.Text.SetString("after")
	d.NewLayer(shape.KindSquare)

	restored, _, ok := h.Undo()
	if ok {
		t.Fatal("single entry should not be undoable")
	}
	_ = restored

	h.Capture(d, g)
	restored, _, _ = h.Undo()
	rl, _ := restored.Layer(l.ID)
	if rl.Text.String() != "before" {
		t.Errorf("snapshot text = %q, want %q", rl.Text.String(), "before")
	}
}
