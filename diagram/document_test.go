package diagram

import (
	"testing"

	"sketch/geometry"
	"sketch/shape"
)

// TestDocument_SortedOrder tests z ordering with insertion order breaking
// ties.
func TestDocument_SortedOrder(t *testing.T) {
	d := NewDocument()
	a := d.NewLayer(shape.KindSquare) // z=1
	b := d.NewLayer(shape.KindSquare) // z=2
	c := d.NewLayer(shape.KindSquare) // z=3
	c.Z = a.Z                         // tie with a; a was inserted first

	got := d.Sorted()
	want := []*Layer{a, c, b}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = layer %d, want %d", i, got[i].ID, want[i].ID)
		}
	}
}

// TestDocument_LayerAt tests topmost-wins hit testing.
func TestDocument_LayerAt(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(30, 15)

	bottom := d.NewLayer(shape.KindSquare)
	bottom.From = geometry.Point{X: 0, Y: 0}
	bottom.To = geometry.Point{X: 10, Y: 6}
	bottom.Redraw(d, g)

	top := d.NewLayer(shape.KindSquare)
	top.From = geometry.Point{X: 5, Y: 0}
	top.To = geometry.Point{X: 15, Y: 6}
	top.Redraw(d, g)

	// (5,0) is on both frames; the higher z wins.
	if hit := d.LayerAt(geometry.Point{X: 5, Y: 0}); hit != top {
		t.Errorf("hit layer %d, want %d", hit.ID, top.ID)
	}
	// (0,0) only belongs to the bottom square.
	if hit := d.LayerAt(geometry.Point{X: 0, Y: 0}); hit != bottom {
		t.Error("bottom-only cell should hit the bottom layer")
	}
	if hit := d.LayerAt(geometry.Point{X: 25, Y: 10}); hit != nil {
		t.Errorf("empty cell hit layer %d", hit.ID)
	}
}

// TestDocument_CloneIndependence tests that mutating the original never
// leaks into a clone.
func TestDocument_CloneIndependence(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(30, 15)
	l := d.NewLayer(shape.KindSquare)
	l.From = geometry.Point{X: 1, Y: 1}
	l.To = geometry.Point{X: 5, Y: 4}
	l.Redraw(d, g)

	text := d.NewLayer(shape.KindText)
	text.Text.SetString("original")

	c := d.Clone()

	l.From = geometry.Point{X: 9, Y: 9}
	l.Cells[0].Ch = 'X'
	text.Text.SetString("changed")
	d.Remove(text.ID)

	cl, ok := c.Layer(l.ID)
	if !ok {
		t.Fatal("clone lost a layer")
	}
	if cl.From != (geometry.Point{X: 1, Y: 1}) {
		t.Errorf("clone From = %v, want the original anchor", cl.From)
	}
	if cl.Cells[0].Ch == 'X' {
		t.Error("clone shares the cell slice with the original")
	}
	ct, ok := c.Layer(text.ID)
	if !ok {
		t.Fatal("clone lost the removed layer")
	}
	if ct.Text.String() != "original" {
		t.Errorf("clone text = %q, want %q", ct.Text.String(), "original")
	}
}

// TestDocument_BlockedByShape tests the occupancy probe used by step-line
// routing: solid shapes block, connectors and excluded layers do not.
func TestDocument_BlockedByShape(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(30, 15)

	box := d.NewLayer(shape.KindSquare)
	box.From = geometry.Point{X: 0, Y: 0}
	box.To = geometry.Point{X: 4, Y: 2}
	box.Redraw(d, g)

	line := d.NewLayer(shape.KindFreeLine)
	line.From = geometry.Point{X: 10, Y: 10}
	line.To = geometry.Point{X: 14, Y: 10}
	line.Redraw(d, g)

	blocked := d.BlockedByShape()
	if !blocked(geometry.Point{X: 0, Y: 0}) {
		t.Error("box frame cell should block")
	}
	if blocked(geometry.Point{X: 2, Y: 1}) {
		t.Error("box interior is unoccupied and should not block")
	}
	if blocked(geometry.Point{X: 12, Y: 10}) {
		t.Error("connector cells should never block")
	}

	excluding := d.BlockedByShape(box.ID)
	if excluding(geometry.Point{X: 0, Y: 0}) {
		t.Error("excluded layer should not block")
	}
}

// TestDocument_NewIDMonotonic tests that ids never repeat, even after
// removal and restore.
func TestDocument_NewIDMonotonic(t *testing.T) {
	d := NewDocument()
	a := d.NewLayer(shape.KindSquare)
	d.Remove(a.ID)
	b := d.NewLayer(shape.KindSquare)
	if b.ID == a.ID {
		t.Errorf("id %d reused", a.ID)
	}

	restored := a.Clone()
	d.Restore(restored)
	if got, ok := d.Layer(a.ID); !ok || got != restored {
		t.Error("restore should put the layer back under its old id")
	}
	c := d.NewLayer(shape.KindSquare)
	if c.ID == a.ID || c.ID == b.ID {
		t.Errorf("id %d collides after restore", c.ID)
	}
}

// TestLayer_Move tests the cheap translate path.
func TestLayer_Move(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(30, 15)
	l := d.NewLayer(shape.KindSquare)
	l.From = geometry.Point{X: 1, Y: 1}
	l.To = geometry.Point{X: 5, Y: 4}
	l.Redraw(d, g)

	l.Move(g, 3, 2)

	if l.From != (geometry.Point{X: 4, Y: 3}) || l.To != (geometry.Point{X: 8, Y: 6}) {
		t.Errorf("anchors = %v-%v after move", l.From, l.To)
	}
	if ch, _ := g.Get(geometry.Point{X: 4, Y: 3}); ch != '┌' {
		t.Errorf("moved top-left = %c, want ┌", ch)
	}
	if ch, _ := g.Get(geometry.Point{X: 1, Y: 1}); ch != ' ' {
		t.Errorf("old top-left = %c, want blank", ch)
	}
}

// TestLayer_RecomputeFreeBounds tests anchor derivation from painted cells.
func TestLayer_RecomputeFreeBounds(t *testing.T) {
	l := &Layer{Kind: shape.KindFree}
	l.Cells = []shape.Cell{
		{P: geometry.Point{X: 7, Y: 2}, Ch: '*'},
		{P: geometry.Point{X: 3, Y: 8}, Ch: '*'},
		{P: geometry.Point{X: 5, Y: 5}, Ch: '*'},
	}
	l.RecomputeFreeBounds()
	if l.From != (geometry.Point{X: 3, Y: 2}) {
		t.Errorf("From = %v, want (3,2)", l.From)
	}
	if l.To != (geometry.Point{X: 7, Y: 8}) {
		t.Errorf("To = %v, want (7,8)", l.To)
	}
}
