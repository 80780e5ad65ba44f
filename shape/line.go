package shape

import "sketch/geometry"

// TraceSegment walks a straight segment between two cells using Bresenham
// stepping and returns every cell visited, endpoints included.
func TraceSegment(from, to geometry.Point) []geometry.Point {
	dx := geometry.Abs(to.X - from.X)
	dy := geometry.Abs(to.Y - from.Y)

	xInc := 1
	if from.X > to.X {
		xInc = -1
	}
	yInc := 1
	if from.Y > to.Y {
		yInc = -1
	}

	points := make([]geometry.Point, 0, geometry.Max(dx, dy)+1)
	x, y := from.X, from.Y

	if dx > dy {
		err := dx / 2
		for x != to.X {
			points = append(points, geometry.Point{X: x, Y: y})
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != to.Y {
			points = append(points, geometry.Point{X: x, Y: y})
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}

	return append(points, to)
}

// segmentGlyph picks the stroke character for one Bresenham step.
func segmentGlyph(prev, next geometry.Point, g Glyphs) rune {
	dx := next.X - prev.X
	dy := next.Y - prev.Y
	switch {
	case dy == 0:
		return g.Horizontal
	case dx == 0:
		return g.Vertical
	case (dx > 0) == (dy > 0):
		return g.DiagonalDown
	default:
		return g.DiagonalUp
	}
}

// arrowGlyph returns the arrowhead for travel along (dx, dy), chosen by the
// dominant axis. Ties lean lateral, matching the free-line glyph choice.
func arrowGlyph(dx, dy int) rune {
	if geometry.Abs(dx) >= geometry.Abs(dy) {
		if dx < 0 {
			return ArrowLeft
		}
		return ArrowRight
	}
	if dy < 0 {
		return ArrowUp
	}
	return ArrowDown
}

// FreeLine rasterizes a straight line between two cells. Each cell's glyph
// follows the local step direction (lateral, vertical or diagonal); arrowhead
// glyphs override the end cells based on travel direction.
func FreeLine(from, to geometry.Point, st Style) []Cell {
	g := GlyphsFor(st.Form)
	points := TraceSegment(from, to)

	cells := make([]Cell, len(points))
	for i, p := range points {
		var ch rune
		switch {
		case len(points) == 1:
			ch = g.Horizontal
		case i == 0:
			ch = segmentGlyph(points[0], points[1], g)
		default:
			ch = segmentGlyph(points[i-1], points[i], g)
		}
		cells[i] = Cell{P: p, Ch: ch}
	}

	if len(points) > 1 {
		dx, dy := to.X-from.X, to.Y-from.Y
		if st.ArrowFrom {
			cells[0].Ch = arrowGlyph(-dx, -dy)
		}
		if st.ArrowTo {
			cells[len(cells)-1].Ch = arrowGlyph(dx, dy)
		}
	}

	return cells
}
