package shape

import "sketch/geometry"

// Normalize returns the top-left and bottom-right corners of the rectangle
// spanned by two anchors.
func Normalize(a, b geometry.Point) (geometry.Point, geometry.Point) {
	return geometry.Point{X: geometry.Min(a.X, b.X), Y: geometry.Min(a.Y, b.Y)},
		geometry.Point{X: geometry.Max(a.X, b.X), Y: geometry.Max(a.Y, b.Y)}
}

// Square rasterizes a rectangle frame from two opposite corners. One-cell
// wide or tall rectangles degenerate to a plain line, omitting the corner
// glyphs that no longer apply.
func Square(from, to geometry.Point, st Style) []Cell {
	g := GlyphsFor(st.Form)
	tl, br := Normalize(from, to)

	if tl == br {
		return []Cell{{P: tl, Ch: g.Horizontal}}
	}
	if tl.Y == br.Y {
		return rasterPolyline([]geometry.Point{tl, br}, Style{Form: st.Form})
	}
	if tl.X == br.X {
		return rasterPolyline([]geometry.Point{tl, br}, Style{Form: st.Form})
	}

	var cells []Cell
	// Top edge
	cells = append(cells, Cell{P: tl, Ch: g.TopLeft})
	for x := tl.X + 1; x < br.X; x++ {
		cells = append(cells, Cell{P: geometry.Point{X: x, Y: tl.Y}, Ch: g.Horizontal})
	}
	cells = append(cells, Cell{P: geometry.Point{X: br.X, Y: tl.Y}, Ch: g.TopRight})
	// Sides
	for y := tl.Y + 1; y < br.Y; y++ {
		cells = append(cells,
			Cell{P: geometry.Point{X: tl.X, Y: y}, Ch: g.Vertical},
			Cell{P: geometry.Point{X: br.X, Y: y}, Ch: g.Vertical})
	}
	// Bottom edge
	cells = append(cells, Cell{P: geometry.Point{X: tl.X, Y: br.Y}, Ch: g.BottomLeft})
	for x := tl.X + 1; x < br.X; x++ {
		cells = append(cells, Cell{P: geometry.Point{X: x, Y: br.Y}, Ch: g.Horizontal})
	}
	cells = append(cells, Cell{P: geometry.Point{X: br.X, Y: br.Y}, Ch: g.BottomRight})

	return cells
}

// FrameLines converts per-row heights and per-column widths into the grid
// coordinates of every divider line of a table frame anchored at origin.
// The returned slices include both outer edges.
func FrameLines(origin geometry.Point, rowHeights, colWidths []int) (ys, xs []int) {
	ys = make([]int, len(rowHeights)+1)
	ys[0] = origin.Y
	for i, h := range rowHeights {
		ys[i+1] = ys[i] + h + 1
	}
	xs = make([]int, len(colWidths)+1)
	xs[0] = origin.X
	for j, w := range colWidths {
		xs[j+1] = xs[j] + w + 1
	}
	return ys, xs
}

// TableFrame rasterizes the bordered grid of a table: one frame line around
// every cell, with junction glyphs chosen by position (corner on the rim,
// tee on an edge, cross in the interior).
func TableFrame(origin geometry.Point, rowHeights, colWidths []int, st Style) []Cell {
	g := GlyphsFor(st.Form)
	ys, xs := FrameLines(origin, rowHeights, colWidths)
	lastY := len(ys) - 1
	lastX := len(xs) - 1

	var cells []Cell

	// Horizontal runs between junctions.
	for _, y := range ys {
		for j := 0; j < lastX; j++ {
			for x := xs[j] + 1; x < xs[j+1]; x++ {
				cells = append(cells, Cell{P: geometry.Point{X: x, Y: y}, Ch: g.Horizontal})
			}
		}
	}
	// Vertical runs between junctions.
	for _, x := range xs {
		for i := 0; i < lastY; i++ {
			for y := ys[i] + 1; y < ys[i+1]; y++ {
				cells = append(cells, Cell{P: geometry.Point{X: x, Y: y}, Ch: g.Vertical})
			}
		}
	}
	// Junctions.
	for i, y := range ys {
		for j, x := range xs {
			var ch rune
			switch {
			case i == 0 && j == 0:
				ch = g.TopLeft
			case i == 0 && j == lastX:
				ch = g.TopRight
			case i == lastY && j == 0:
				ch = g.BottomLeft
			case i == lastY && j == lastX:
				ch = g.BottomRight
			case i == 0:
				ch = g.TeeTop
			case i == lastY:
				ch = g.TeeBottom
			case j == 0:
				ch = g.TeeLeft
			case j == lastX:
				ch = g.TeeRight
			default:
				ch = g.Cross
			}
			cells = append(cells, Cell{P: geometry.Point{X: x, Y: y}, Ch: ch})
		}
	}

	return cells
}
