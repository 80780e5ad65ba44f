package shape

import "sketch/geometry"

// Attachment point keys shared by the box-like kinds.
const (
	AttachNorth = "n"
	AttachEast  = "e"
	AttachSouth = "s"
	AttachWest  = "w"
	AttachStart = "start"
	AttachEnd   = "end"
)

// CornerHandles returns the four corner resize handles of the rectangle
// spanned by two anchors, in TL, TR, BL, BR order.
func CornerHandles(a, b geometry.Point) []geometry.Point {
	tl, br := Normalize(a, b)
	return []geometry.Point{
		tl,
		{X: br.X, Y: tl.Y},
		{X: tl.X, Y: br.Y},
		br,
	}
}

// EndHandles returns the two endpoint handles of a line kind.
func EndHandles(from, to geometry.Point) []geometry.Point {
	return []geometry.Point{from, to}
}

// RadialHandles returns the N, E, S, W handles of a circle or diamond
// centered on from, scaled from the center.
func RadialHandles(center, to geometry.Point) []geometry.Point {
	vr := RadiusFor(center, to)
	if vr == 0 {
		vr = 1
	}
	hr := vr * AspectRatio
	return []geometry.Point{
		{X: center.X, Y: center.Y - vr},
		{X: center.X + hr, Y: center.Y},
		{X: center.X, Y: center.Y + vr},
		{X: center.X - hr, Y: center.Y},
	}
}

// OppositeHandle returns the handle geometrically opposite the picked one:
// the other endpoint for a two-handle shape, the diagonally or radially
// opposite point for a four-handle shape. Resizing drags one handle while
// the opposite one anchors the shape.
func OppositeHandle(handles []geometry.Point, picked int) geometry.Point {
	switch len(handles) {
	case 2:
		return handles[1-picked]
	case 4:
		return handles[3-picked]
	default:
		return handles[picked]
	}
}

// EdgeAttachments returns the named attachment points on the edge midpoints
// of the rectangle spanned by two anchors.
func EdgeAttachments(a, b geometry.Point) map[string]geometry.Point {
	tl, br := Normalize(a, b)
	midX := (tl.X + br.X) / 2
	midY := (tl.Y + br.Y) / 2
	return map[string]geometry.Point{
		AttachNorth: {X: midX, Y: tl.Y},
		AttachEast:  {X: br.X, Y: midY},
		AttachSouth: {X: midX, Y: br.Y},
		AttachWest:  {X: tl.X, Y: midY},
	}
}

// RadialAttachments returns the N, E, S, W attachment points of a circle or
// diamond.
func RadialAttachments(center, to geometry.Point) map[string]geometry.Point {
	h := RadialHandles(center, to)
	return map[string]geometry.Point{
		AttachNorth: h[0],
		AttachEast:  h[1],
		AttachSouth: h[2],
		AttachWest:  h[3],
	}
}

// EndAttachments returns a line's two endpoints as named attachment points.
func EndAttachments(from, to geometry.Point) map[string]geometry.Point {
	return map[string]geometry.Point{
		AttachStart: from,
		AttachEnd:   to,
	}
}
