package diagram

import (
	"fmt"

	"sketch/geometry"
	"sketch/shape"
)

// Table sizing limits. Cell sizes grow monotonically with content; the
// row/column count is hard-capped.
const (
	MinCellWidth  = 5
	MinCellHeight = 1
	MaxTableRows  = 20
	MaxTableCols  = 20
)

// TableContent is the payload of a table layer: the cell grid dimensions,
// the per-row and per-column sizes, the map from cell coordinate to the id
// of the text layer occupying it, and an archive of content hidden by
// shrinking.
type TableContent struct {
	Rows, Cols int
	RowHeights []int
	ColWidths  []int
	CellText   map[string]int
	Archive    map[string]string
}

// NewTableContent builds a table payload with every cell at minimum size.
func NewTableContent(rows, cols int) *TableContent {
	tb := &TableContent{
		Rows:     rows,
		Cols:     cols,
		CellText: make(map[string]int),
		Archive:  make(map[string]string),
	}
	tb.resizeSlices()
	return tb
}

func (tb *TableContent) clone() *TableContent {
	c := &TableContent{
		Rows:       tb.Rows,
		Cols:       tb.Cols,
		RowHeights: append([]int(nil), tb.RowHeights...),
		ColWidths:  append([]int(nil), tb.ColWidths...),
		CellText:   make(map[string]int, len(tb.CellText)),
		Archive:    make(map[string]string, len(tb.Archive)),
	}
	for k, v := range tb.CellText {
		c.CellText[k] = v
	}
	for k, v := range tb.Archive {
		c.Archive[k] = v
	}
	return c
}

// CellKey returns the map key for a (row, col) table cell.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}

// ParseCellKey is the inverse of CellKey.
func ParseCellKey(key string) (row, col int, err error) {
	_, err = fmt.Sscanf(key, "%d,%d", &row, &col)
	return row, col, err
}

// valid reports the structural validity of the table payload. Zero rows or
// columns make the owning layer unhappy.
func (tb *TableContent) valid() bool {
	return tb.Rows >= 1 && tb.Rows <= MaxTableRows &&
		tb.Cols >= 1 && tb.Cols <= MaxTableCols &&
		len(tb.RowHeights) == tb.Rows &&
		len(tb.ColWidths) == tb.Cols
}

func (tb *TableContent) hasText(id int) bool {
	for _, v := range tb.CellText {
		if v == id {
			return true
		}
	}
	return false
}

// resizeSlices grows or truncates the size slices to match Rows and Cols,
// filling new entries with the minimum size.
func (tb *TableContent) resizeSlices() {
	for len(tb.RowHeights) < tb.Rows {
		tb.RowHeights = append(tb.RowHeights, MinCellHeight)
	}
	tb.RowHeights = tb.RowHeights[:tb.Rows]
	for len(tb.ColWidths) < tb.Cols {
		tb.ColWidths = append(tb.ColWidths, MinCellWidth)
	}
	tb.ColWidths = tb.ColWidths[:tb.Cols]
}

// Extent returns the bottom-right frame cell of the table anchored at
// origin.
func (tb *TableContent) Extent(origin geometry.Point) geometry.Point {
	ys, xs := shape.FrameLines(origin, tb.RowHeights, tb.ColWidths)
	return geometry.Point{X: xs[len(xs)-1], Y: ys[len(ys)-1]}
}

// ContentOrigin returns the top-left content cell of a table cell, one cell
// inside its frame lines.
func (tb *TableContent) ContentOrigin(origin geometry.Point, row, col int) geometry.Point {
	ys, xs := shape.FrameLines(origin, tb.RowHeights, tb.ColWidths)
	return geometry.Point{X: xs[col] + 1, Y: ys[row] + 1}
}

// countFit returns how many rows or columns of the given sizes fit into a
// span of cells, each followed by one divider line, capped at max.
func countFit(sizes []int, minSize, span, max int) (n int, clamped bool) {
	running := 0
	for {
		size := minSize
		if n < len(sizes) {
			size = sizes[n]
		}
		next := running + size + 1
		if next > span {
			return n, false
		}
		running = next
		n++
		if n == max {
			return n, true
		}
	}
}

// SetSpan recomputes the row and column counts from the cell span between
// two corners, keeping existing sizes where rows and columns survive. The
// returned flag reports that the hard size cap clamped the result.
func (tb *TableContent) SetSpan(from, to geometry.Point) (clamped bool) {
	w := geometry.Abs(to.X - from.X)
	h := geometry.Abs(to.Y - from.Y)
	var cc, rc bool
	tb.Cols, cc = countFit(tb.ColWidths, MinCellWidth, w, MaxTableCols)
	tb.Rows, rc = countFit(tb.RowHeights, MinCellHeight, h, MaxTableRows)
	tb.resizeSlices()
	return cc || rc
}

// SyncTableCells reconciles a table's text layers after any structural
// change: content of cells newly out of range is archived and their layers
// emptied (removal is left to the next cleanup pass), cells newly in range
// get a revived or fresh text layer, and every surviving text layer is
// repositioned to its cell's top-left content cell. The frame is
// re-rasterized last.
func (d *Document) SyncTableCells(table *Layer, g Grid) {
	tb := table.Table

	for key, id := range tb.CellText {
		row, col, err := ParseCellKey(key)
		if err != nil || row >= tb.Rows || col >= tb.Cols {
			if child, ok := d.Layer(id); ok && child.Text != nil {
				if !child.Text.Empty() {
					tb.Archive[key] = child.Text.String()
				}
				child.erase(g)
				child.Text.SetString("")
				child.Cells = nil
				child.ParentTable = 0
			}
			delete(tb.CellText, key)
		}
	}

	for row := 0; row < tb.Rows; row++ {
		for col := 0; col < tb.Cols; col++ {
			key := CellKey(row, col)
			id, ok := tb.CellText[key]
			if !ok {
				child := d.NewLayer(shape.KindText)
				child.ParentTable = table.ID
				if s, archived := tb.Archive[key]; archived {
					child.Text.SetString(s)
					delete(tb.Archive, key)
				}
				tb.CellText[key] = child.ID
				id = child.ID
			}
			if child, live := d.Layer(id); live {
				child.From = tb.ContentOrigin(table.From, row, col)
				child.To = child.From
				child.Redraw(d, g)
			}
		}
	}

	table.Redraw(d, g)
}

// GrowCellToFit grows the parent table's column width and row height to
// hold a child text layer's content. Growth is monotonic; shrink-to-fit is
// never attempted. A full table re-layout runs when anything grew.
func (d *Document) GrowCellToFit(child *Layer, g Grid) {
	table, ok := d.Layer(child.ParentTable)
	if !ok || table.Table == nil {
		return
	}
	tb := table.Table

	var row, col = -1, -1
	for key, id := range tb.CellText {
		if id == child.ID {
			row, col, _ = ParseCellKey(key)
			break
		}
	}
	if row < 0 || col < 0 {
		return
	}

	needW := geometry.Max(child.Text.Width(), MinCellWidth)
	needH := geometry.Max(child.Text.Height(), MinCellHeight)

	grown := false
	if needW > tb.ColWidths[col] {
		tb.ColWidths[col] = needW
		grown = true
	}
	if needH > tb.RowHeights[row] {
		tb.RowHeights[row] = needH
		grown = true
	}

	if grown {
		d.SyncTableCells(table, g)
	} else {
		child.Redraw(d, g)
	}
}
