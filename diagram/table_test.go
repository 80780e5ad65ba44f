package diagram

import (
	"testing"

	"sketch/geometry"
	"sketch/shape"
)

// addTable builds a committed rows x cols table at origin with synced cell
// text layers.
func addTable(t *testing.T, d *Document, g Grid, origin geometry.Point, rows, cols int) *Layer {
	t.Helper()
	l := d.NewLayer(shape.KindTable)
	l.From = origin
	l.Table = NewTableContent(rows, cols)
	l.To = l.Table.Extent(origin)
	ok := l.Commit(d, g, func(l *Layer) error {
		d.SyncTableCells(l, g)
		return nil
	})
	if !ok {
		t.Fatalf("table %dx%d at %v did not commit", rows, cols, origin)
	}
	l.Render(g)
	return l
}

// cellChild returns the text layer behind a table cell.
func cellChild(t *testing.T, d *Document, table *Layer, row, col int) *Layer {
	t.Helper()
	id, ok := table.Table.CellText[CellKey(row, col)]
	if !ok {
		t.Fatalf("cell %d,%d has no text layer", row, col)
	}
	child, ok := d.Layer(id)
	if !ok {
		t.Fatalf("cell %d,%d text layer %d not in document", row, col, id)
	}
	return child
}

// TestTableContent_SetSpan tests row/column derivation from a corner span.
func TestTableContent_SetSpan(t *testing.T) {
	tests := []struct {
		name       string
		from, to   geometry.Point
		rows, cols int
		clamped    bool
	}{
		{"TwoByTwo", geometry.Point{X: 0, Y: 0}, geometry.Point{X: 12, Y: 4}, 2, 2, false},
		{"TooSmall", geometry.Point{X: 0, Y: 0}, geometry.Point{X: 3, Y: 1}, 0, 0, false},
		{"OneCell", geometry.Point{X: 0, Y: 0}, geometry.Point{X: 6, Y: 2}, 1, 1, false},
		{"Clamped", geometry.Point{X: 0, Y: 0}, geometry.Point{X: 500, Y: 100}, 20, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTableContent(1, 1)
			clamped := tb.SetSpan(tt.from, tt.to)
			if tb.Rows != tt.rows || tb.Cols != tt.cols {
				t.Errorf("got %dx%d, want %dx%d", tb.Rows, tb.Cols, tt.rows, tt.cols)
			}
			if clamped != tt.clamped {
				t.Errorf("clamped = %v, want %v", clamped, tt.clamped)
			}
		})
	}
}

// TestTableContent_SetSpanKeepsSizes tests that surviving columns keep
// their grown widths through a resize.
func TestTableContent_SetSpanKeepsSizes(t *testing.T) {
	tb := NewTableContent(1, 2)
	tb.ColWidths[0] = 9

	tb.SetSpan(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 30, Y: 2})
	if tb.Cols < 2 {
		t.Fatalf("cols = %d, want at least 2", tb.Cols)
	}
	if tb.ColWidths[0] != 9 {
		t.Errorf("surviving column width = %d, want 9", tb.ColWidths[0])
	}
	if tb.ColWidths[1] != MinCellWidth {
		t.Errorf("new column width = %d, want %d", tb.ColWidths[1], MinCellWidth)
	}
}

// TestSyncTableCells_CreatesChildren tests that every cell gets a dedicated
// text layer positioned at its content origin.
func TestSyncTableCells_CreatesChildren(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(60, 30)
	table := addTable(t, d, g, geometry.Point{X: 0, Y: 0}, 2, 2)

	if len(table.Table.CellText) != 4 {
		t.Fatalf("got %d cell layers, want 4", len(table.Table.CellText))
	}
	child := cellChild(t, d, table, 0, 0)
	if child.ParentTable != table.ID {
		t.Errorf("child parent = %d, want %d", child.ParentTable, table.ID)
	}
	if child.From != (geometry.Point{X: 1, Y: 1}) {
		t.Errorf("child origin = %v, want (1,1)", child.From)
	}
	second := cellChild(t, d, table, 0, 1)
	if second.From != (geometry.Point{X: 7, Y: 1}) {
		t.Errorf("second column origin = %v, want (7,1)", second.From)
	}
}

// TestSyncTableCells_ArchiveRoundTrip tests the shrink-then-grow scenario:
// content of a dropped column is archived and restored when the column
// comes back.
func TestSyncTableCells_ArchiveRoundTrip(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(80, 30)
	table := addTable(t, d, g, geometry.Point{X: 0, Y: 0}, 1, 2)

	child := cellChild(t, d, table, 0, 1)
	child.Text.SetString("keep me")

	// Shrink to one column.
	ok := table.Commit(d, g, func(l *Layer) error {
		l.Table.SetSpan(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 6, Y: 2})
		d.SyncTableCells(l, g)
		return nil
	})
	if !ok {
		t.Fatal("shrink commit failed")
	}
	table.Render(g)

	if got := table.Table.Archive[CellKey(0, 1)]; got != "keep me" {
		t.Fatalf("archive = %q, want %q", got, "keep me")
	}
	if child.ParentTable != 0 || len(child.Cells) != 0 {
		t.Error("dropped child should be detached and empty")
	}

	// Grow back to two columns.
	ok = table.Commit(d, g, func(l *Layer) error {
		l.Table.SetSpan(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 12, Y: 2})
		d.SyncTableCells(l, g)
		return nil
	})
	if !ok {
		t.Fatal("grow commit failed")
	}
	table.Render(g)

	revived := cellChild(t, d, table, 0, 1)
	if revived.Text.String() != "keep me" {
		t.Errorf("revived content = %q, want %q", revived.Text.String(), "keep me")
	}
	if _, still := table.Table.Archive[CellKey(0, 1)]; still {
		t.Error("archive entry should be consumed on revival")
	}
}

// TestGrowCellToFit tests monotonic column growth driven by cell content.
func TestGrowCellToFit(t *testing.T) {
	d := NewDocument()
	g := newTestGrid(80, 30)
	table := addTable(t, d, g, geometry.Point{X: 0, Y: 0}, 1, 1)

	child := cellChild(t, d, table, 0, 0)
	ok := child.Commit(d, g, func(l *Layer) error {
		l.Text.SetString("wide content")
		d.GrowCellToFit(l, g)
		return nil
	})
	if !ok {
		t.Fatal("grow commit failed")
	}
	child.Render(g)

	if w := table.Table.ColWidths[0]; w != 12 {
		t.Errorf("column width = %d, want 12", w)
	}

	// Shorter content never shrinks the column.
	child.Commit(d, g, func(l *Layer) error {
		l.Text.SetString("x")
		d.GrowCellToFit(l, g)
		return nil
	})
	child.Render(g)
	if w := table.Table.ColWidths[0]; w != 12 {
		t.Errorf("column width after shorter content = %d, want 12", w)
	}
}

// TestTableContent_Extent tests the bottom-right frame coordinate.
func TestTableContent_Extent(t *testing.T) {
	tb := NewTableContent(2, 3)
	got := tb.Extent(geometry.Point{X: 1, Y: 1})
	// Three minimum-width columns and two minimum-height rows.
	want := geometry.Point{X: 1 + 3*(MinCellWidth+1), Y: 1 + 2*(MinCellHeight+1)}
	if got != want {
		t.Errorf("Extent = %v, want %v", got, want)
	}
}
