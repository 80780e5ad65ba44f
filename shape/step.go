package shape

import "sketch/geometry"

// StepOptions controls step-line orientation selection.
type StepOptions struct {
	// PreferVertical biases toward the vertical-first orientation when the
	// two candidates' overlap counts are within StepTieMargin.
	PreferVertical bool

	// Blocked reports cells already claimed by non-line shapes. May be nil.
	Blocked func(geometry.Point) bool
}

// rasterPolyline draws an axis-aligned polyline, choosing corner glyphs at
// interior bends and arrowheads at the ends.
func rasterPolyline(points []geometry.Point, st Style) []Cell {
	g := GlyphsFor(st.Form)
	var cells []Cell

	appendCell := func(p geometry.Point, ch rune) {
		if n := len(cells); n > 0 && cells[n-1].P == p {
			return
		}
		cells = append(cells, Cell{P: p, Ch: ch})
	}

	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		var ch rune
		if a.Y == b.Y {
			ch = g.Horizontal
		} else {
			ch = g.Vertical
		}
		for _, p := range TraceSegment(a, b) {
			appendCell(p, ch)
		}
	}

	// Bend cells get corner glyphs after the straight runs are down.
	for i := 1; i < len(points)-1; i++ {
		corner := cornerGlyph(points[i-1], points[i], points[i+1], g)
		for j := range cells {
			if cells[j].P == points[i] {
				cells[j].Ch = corner
			}
		}
	}

	if len(cells) > 1 {
		if st.ArrowFrom {
			d := points[0]
			n := points[1]
			cells[0].Ch = arrowGlyph(d.X-n.X, d.Y-n.Y)
		}
		if st.ArrowTo {
			d := points[len(points)-1]
			p := points[len(points)-2]
			cells[len(cells)-1].Ch = arrowGlyph(d.X-p.X, d.Y-p.Y)
		}
	}

	return cells
}

// cornerGlyph chooses the bend character from the directions entering and
// leaving the corner.
func cornerGlyph(prev, curr, next geometry.Point, g Glyphs) rune {
	from := stepDirection(prev, curr)
	to := stepDirection(curr, next)

	switch {
	case from == geometry.East && to == geometry.South,
		from == geometry.North && to == geometry.West:
		return g.TopRight
	case from == geometry.East && to == geometry.North,
		from == geometry.South && to == geometry.West:
		return g.BottomRight
	case from == geometry.West && to == geometry.South,
		from == geometry.North && to == geometry.East:
		return g.TopLeft
	case from == geometry.West && to == geometry.North,
		from == geometry.South && to == geometry.East:
		return g.BottomLeft
	case from == to && (from == geometry.East || from == geometry.West):
		return g.Horizontal
	case from == to:
		return g.Vertical
	default:
		return g.Cross
	}
}

// stepDirection returns the direction of travel from a to b, assuming the
// two points are axis-aligned.
func stepDirection(a, b geometry.Point) geometry.Direction {
	switch {
	case b.X > a.X:
		return geometry.East
	case b.X < a.X:
		return geometry.West
	case b.Y > a.Y:
		return geometry.South
	default:
		return geometry.North
	}
}

func countBlocked(cells []Cell, blocked func(geometry.Point) bool) int {
	if blocked == nil {
		return 0
	}
	n := 0
	for _, c := range cells {
		if blocked(c.P) {
			n++
		}
	}
	return n
}

// StepLine rasterizes a connector with one right-angle turn. Both
// orientations are rasterized speculatively and the one with fewer overlaps
// against existing non-line shapes wins; within StepTieMargin the caller's
// orientation bias decides.
func StepLine(from, to geometry.Point, st Style, opts StepOptions) []Cell {
	if from.X == to.X || from.Y == to.Y {
		return rasterPolyline([]geometry.Point{from, to}, st)
	}

	hFirst := rasterPolyline([]geometry.Point{from, {X: to.X, Y: from.Y}, to}, st)
	vFirst := rasterPolyline([]geometry.Point{from, {X: from.X, Y: to.Y}, to}, st)

	hn := countBlocked(hFirst, opts.Blocked)
	vn := countBlocked(vFirst, opts.Blocked)

	if geometry.Abs(hn-vn) < StepTieMargin {
		if opts.PreferVertical {
			return vFirst
		}
		return hFirst
	}
	if vn < hn {
		return vFirst
	}
	return hFirst
}

// SwitchLine rasterizes a connector with two right-angle turns. The middle
// segment runs along the shorter axis when the bounding box is clearly
// oblong (aspect ratio beyond 1.5); near-square boxes follow the stored
// preference.
func SwitchLine(from, to geometry.Point, st Style, preferVerticalMiddle bool) []Cell {
	if from.X == to.X || from.Y == to.Y {
		return rasterPolyline([]geometry.Point{from, to}, st)
	}

	w := geometry.Abs(to.X - from.X)
	h := geometry.Abs(to.Y - from.Y)

	verticalMiddle := preferVerticalMiddle
	if w*SwitchAspectDen > h*SwitchAspectNum {
		verticalMiddle = true
	} else if h*SwitchAspectDen > w*SwitchAspectNum {
		verticalMiddle = false
	}

	if verticalMiddle {
		midX := (from.X + to.X) / 2
		return rasterPolyline([]geometry.Point{
			from, {X: midX, Y: from.Y}, {X: midX, Y: to.Y}, to,
		}, st)
	}
	midY := (from.Y + to.Y) / 2
	return rasterPolyline([]geometry.Point{
		from, {X: from.X, Y: midY}, {X: to.X, Y: midY}, to,
	}, st)
}
