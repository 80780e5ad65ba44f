package shape

import "sketch/geometry"

// RadiusFor derives a shape's vertical radius from its two anchors: the
// center and the dragged point. Horizontal drag distance is divided by the
// cell aspect ratio so dragging sideways and downward feel the same.
func RadiusFor(center, to geometry.Point) int {
	return geometry.Max(
		geometry.Abs(to.Y-center.Y),
		geometry.Abs(to.X-center.X)/AspectRatio,
	)
}

// Circle rasterizes a midpoint circle around the from anchor. The vertical
// radius comes from the anchor pair; horizontal offsets are scaled by the
// cell aspect ratio so the curve renders round. Lateral-leaning arcs use the
// lateral stroke glyph, vertical-leaning arcs the vertical one.
func Circle(from, to geometry.Point, st Style) []Cell {
	g := GlyphsFor(st.Form)
	r := RadiusFor(from, to)
	if r == 0 {
		return []Cell{{P: from, Ch: CircleCenterChar}}
	}

	seen := make(map[geometry.Point]bool)
	var cells []Cell

	put := func(p geometry.Point, ch rune) {
		if seen[p] {
			return
		}
		seen[p] = true
		cells = append(cells, Cell{P: p, Ch: ch})
	}

	// plot mirrors one first-octant point into all eight octants, scaling
	// x by the aspect ratio. Lateral-leaning points (|y| > |x|) sit on the
	// flat top and bottom arcs and take the lateral glyph.
	plot := func(x, y int) {
		for _, s := range [][2]int{{x, y}, {-x, y}, {x, -y}, {-x, -y}, {y, x}, {-y, x}, {y, -x}, {-y, -x}} {
			sx, sy := s[0], s[1]
			var ch rune
			if geometry.Abs(sy) > geometry.Abs(sx) {
				ch = g.Horizontal
			} else {
				ch = g.Vertical
			}
			px := from.X + sx*AspectRatio
			py := from.Y + sy
			put(geometry.Point{X: px, Y: py}, ch)
			// The scaled horizontal step leaves a one-cell gap on the flat
			// arcs; fill toward the center.
			if ch == g.Horizontal {
				if sx > 0 {
					put(geometry.Point{X: px - 1, Y: py}, g.Horizontal)
				} else if sx < 0 {
					put(geometry.Point{X: px + 1, Y: py}, g.Horizontal)
				}
			}
		}
	}

	// Midpoint circle over the unscaled radius.
	x, y := 0, r
	d := 1 - r
	for x <= y {
		plot(x, y)
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}

	return cells
}

// Diamond apex glyphs, by compass position.
const (
	DiamondTopChar    = '^'
	DiamondBottomChar = 'v'
	DiamondLeftChar   = '<'
	DiamondRightChar  = '>'
)

// Diamond rasterizes four straight edges connecting the top, right, bottom
// and left apex cells around the from anchor. Apex cells get dedicated
// glyphs, overwriting whatever the edge pass put there.
func Diamond(from, to geometry.Point, st Style) []Cell {
	vr := RadiusFor(from, to)
	if vr == 0 {
		vr = 1
	}
	hr := vr * AspectRatio

	top := geometry.Point{X: from.X, Y: from.Y - vr}
	right := geometry.Point{X: from.X + hr, Y: from.Y}
	bottom := geometry.Point{X: from.X, Y: from.Y + vr}
	left := geometry.Point{X: from.X - hr, Y: from.Y}

	edge := Style{Form: st.Form}
	seen := make(map[geometry.Point]int)
	var cells []Cell
	for _, seg := range [][2]geometry.Point{
		{top, right}, {right, bottom}, {bottom, left}, {left, top},
	} {
		for _, c := range FreeLine(seg[0], seg[1], edge) {
			if i, ok := seen[c.P]; ok {
				cells[i].Ch = c.Ch
				continue
			}
			seen[c.P] = len(cells)
			cells = append(cells, c)
		}
	}

	for p, ch := range map[geometry.Point]rune{
		top:    DiamondTopChar,
		bottom: DiamondBottomChar,
		left:   DiamondLeftChar,
		right:  DiamondRightChar,
	} {
		if i, ok := seen[p]; ok {
			cells[i].Ch = ch
		}
	}

	return cells
}
