package diagram

import (
	"sketch/geometry"
	"sketch/shape"
)

// Joint records that another layer's connector endpoint currently occupies
// one of this layer's named attachment points.
type Joint struct {
	LayerID int    `json:"layer"`
	Key     string `json:"key"`
}

// Layer is one logical shape or text object: its identity, anchors, the
// cells it occupies, and its display and attachment state. All mutation
// happens inside Commit so an invalid result rolls back atomically.
type Layer struct {
	ID   int
	Kind shape.Kind

	// From and To are the anchor cells defining the geometric extent. For
	// circles and diamonds From is the center; for text From is the
	// top-left content cell; free layers derive both from their cells.
	From, To geometry.Point

	// Cells is the ordered occupied-cell list produced by the last raster
	// pass. It is the only thing the grid ever sees.
	Cells []shape.Cell

	Z     int
	Style shape.Style

	// PreferVertical is the stored orientation bias of step and switch
	// lines, used when geometry alone doesn't decide.
	PreferVertical bool

	Joints   []Joint
	Selected bool

	// ParentTable links a text layer embedded in a table cell back to the
	// table. Zero means none.
	ParentTable int

	Text  *TextContent
	Table *TableContent

	snapshot *Layer
	inCommit bool
	depth    int
}

// kindDef is the single dispatch entry for a shape kind. Adding a kind
// means adding one entry here, never subclassing.
type kindDef struct {
	raster      func(l *Layer, d *Document, g Grid) []shape.Cell
	handles     func(l *Layer) []geometry.Point
	attachments func(l *Layer) map[string]geometry.Point
}

var kindDefs = map[shape.Kind]kindDef{
	shape.KindFreeLine: {
		raster: func(l *Layer, _ *Document, _ Grid) []shape.Cell {
			return shape.FreeLine(l.From, l.To, l.Style)
		},
		handles:     func(l *Layer) []geometry.Point { return shape.EndHandles(l.From, l.To) },
		attachments: func(l *Layer) map[string]geometry.Point { return shape.EndAttachments(l.From, l.To) },
	},
	shape.KindStepLine: {
		raster: func(l *Layer, d *Document, _ Grid) []shape.Cell {
			return shape.StepLine(l.From, l.To, l.Style, shape.StepOptions{
				PreferVertical: l.PreferVertical,
				Blocked:        d.BlockedByShape(l.ID),
			})
		},
		handles:     func(l *Layer) []geometry.Point { return shape.EndHandles(l.From, l.To) },
		attachments: func(l *Layer) map[string]geometry.Point { return shape.EndAttachments(l.From, l.To) },
	},
	shape.KindSwitchLine: {
		raster: func(l *Layer, _ *Document, _ Grid) []shape.Cell {
			return shape.SwitchLine(l.From, l.To, l.Style, l.PreferVertical)
		},
		handles:     func(l *Layer) []geometry.Point { return shape.EndHandles(l.From, l.To) },
		attachments: func(l *Layer) map[string]geometry.Point { return shape.EndAttachments(l.From, l.To) },
	},
	shape.KindFree: {
		// Free-form layers own their painted cells; the raster pass is the
		// identity.
		raster:      func(l *Layer, _ *Document, _ Grid) []shape.Cell { return l.Cells },
		handles:     func(l *Layer) []geometry.Point { return nil },
		attachments: func(l *Layer) map[string]geometry.Point { return nil },
	},
	shape.KindCircle: {
		raster: func(l *Layer, _ *Document, _ Grid) []shape.Cell {
			return shape.Circle(l.From, l.To, l.Style)
		},
		handles:     func(l *Layer) []geometry.Point { return shape.RadialHandles(l.From, l.To) },
		attachments: func(l *Layer) map[string]geometry.Point { return shape.RadialAttachments(l.From, l.To) },
	},
	shape.KindDiamond: {
		raster: func(l *Layer, _ *Document, _ Grid) []shape.Cell {
			return shape.Diamond(l.From, l.To, l.Style)
		},
		handles:     func(l *Layer) []geometry.Point { return shape.RadialHandles(l.From, l.To) },
		attachments: func(l *Layer) map[string]geometry.Point { return shape.RadialAttachments(l.From, l.To) },
	},
	shape.KindSquare: {
		raster: func(l *Layer, _ *Document, _ Grid) []shape.Cell {
			return shape.Square(l.From, l.To, l.Style)
		},
		handles:     func(l *Layer) []geometry.Point { return shape.CornerHandles(l.From, l.To) },
		attachments: func(l *Layer) map[string]geometry.Point { return shape.EdgeAttachments(l.From, l.To) },
	},
	shape.KindText: {
		raster: func(l *Layer, _ *Document, g Grid) []shape.Cell {
			return l.Text.raster(l.From, g.Bounds())
		},
		handles:     func(l *Layer) []geometry.Point { return nil },
		attachments: func(l *Layer) map[string]geometry.Point { return nil },
	},
	shape.KindTable: {
		raster: func(l *Layer, _ *Document, _ Grid) []shape.Cell {
			return shape.TableFrame(l.From, l.Table.RowHeights, l.Table.ColWidths, l.Style)
		},
		handles: func(l *Layer) []geometry.Point {
			return shape.CornerHandles(l.From, l.Table.Extent(l.From))
		},
		attachments: func(l *Layer) map[string]geometry.Point {
			return shape.EdgeAttachments(l.From, l.Table.Extent(l.From))
		},
	},
}

// Clone returns a fully independent copy of the layer. Transaction state is
// not carried over.
func (l *Layer) Clone() *Layer {
	c := *l
	c.snapshot = nil
	c.inCommit = false
	c.depth = 0
	c.Cells = append([]shape.Cell(nil), l.Cells...)
	c.Joints = append([]Joint(nil), l.Joints...)
	if l.Text != nil {
		c.Text = l.Text.clone()
	}
	if l.Table != nil {
		c.Table = l.Table.clone()
	}
	return &c
}

// Redraw recomputes the occupied cells from the current anchors and style
// and repaints them on the grid.
func (l *Layer) Redraw(d *Document, g Grid) {
	l.erase(g)
	def, ok := kindDefs[l.Kind]
	if !ok {
		l.Cells = nil
		return
	}
	l.Cells = def.raster(l, d, g)
	l.paint(g)
}

// Move translates the anchors and occupied cells directly without
// re-rasterizing. Callers wrap it in Commit so an off-grid result rolls
// back.
func (l *Layer) Move(g Grid, dx, dy int) {
	l.erase(g)
	l.From = l.From.Add(dx, dy)
	l.To = l.To.Add(dx, dy)
	for i := range l.Cells {
		l.Cells[i].P = l.Cells[i].P.Add(dx, dy)
	}
	l.paint(g)
}

// Handles returns the layer's resize handle cells.
func (l *Layer) Handles() []geometry.Point {
	def, ok := kindDefs[l.Kind]
	if !ok {
		return nil
	}
	return def.handles(l)
}

// Attachments returns the layer's named attachment points.
func (l *Layer) Attachments() map[string]geometry.Point {
	def, ok := kindDefs[l.Kind]
	if !ok {
		return nil
	}
	return def.attachments(l)
}

// AttachmentPoint resolves one named attachment point.
func (l *Layer) AttachmentPoint(key string) (geometry.Point, bool) {
	p, ok := l.Attachments()[key]
	return p, ok
}

// Endpoints returns the connector endpoints of a line layer, or nil for
// non-connector kinds.
func (l *Layer) Endpoints() []geometry.Point {
	if !l.Kind.IsConnector() {
		return nil
	}
	return []geometry.Point{l.From, l.To}
}

// HasJoint reports whether a joint for the given layer and key is recorded.
func (l *Layer) HasJoint(layerID int, key string) bool {
	for _, j := range l.Joints {
		if j.LayerID == layerID && j.Key == key {
			return true
		}
	}
	return false
}

// AddJoint records a joint if not already present.
func (l *Layer) AddJoint(layerID int, key string) {
	if !l.HasJoint(layerID, key) {
		l.Joints = append(l.Joints, Joint{LayerID: layerID, Key: key})
	}
}

// RemoveJoint drops the joint for the given layer and key, if recorded.
func (l *Layer) RemoveJoint(layerID int, key string) {
	kept := l.Joints[:0]
	for _, j := range l.Joints {
		if j.LayerID != layerID || j.Key != key {
			kept = append(kept, j)
		}
	}
	l.Joints = kept
}

// paint pushes the occupied cells to the grid. Off-grid cells are skipped;
// happiness decides whether that is acceptable.
func (l *Layer) paint(g Grid) {
	for _, c := range l.Cells {
		g.SetCharacter(c.P, c.Ch)
	}
}

// erase clears the occupied cells from the grid.
func (l *Layer) erase(g Grid) {
	for _, c := range l.Cells {
		g.ClearCharacter(c.P)
	}
}

// Erase clears the layer's occupied cells from the grid.
func (l *Layer) Erase(g Grid) {
	l.erase(g)
}

// RecomputeFreeBounds updates a free-form layer's anchors to the bounding
// corners of its painted cells.
func (l *Layer) RecomputeFreeBounds() {
	if len(l.Cells) == 0 {
		return
	}
	tl := l.Cells[0].P
	br := l.Cells[0].P
	for _, c := range l.Cells[1:] {
		tl.X = geometry.Min(tl.X, c.P.X)
		tl.Y = geometry.Min(tl.Y, c.P.Y)
		br.X = geometry.Max(br.X, c.P.X)
		br.Y = geometry.Max(br.Y, c.P.Y)
	}
	l.From, l.To = tl, br
}

// Render flushes the layer's cells and display state to the grid. It is the
// designated end-of-transaction point: the in-commit flag always clears
// here.
func (l *Layer) Render(g Grid) {
	l.paint(g)
	state := StateNormal
	if l.Selected {
		state = StateSelected
	}
	for _, c := range l.Cells {
		g.SetState(c.P, state)
	}
	l.inCommit = false
	l.snapshot = nil
	l.depth = 0
}
