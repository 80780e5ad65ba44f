package session

import (
	"fmt"

	"sketch/diagram"
	"sketch/geometry"
	"sketch/joints"
	"sketch/shape"
)

// AddShape creates a bound shape from a draw gesture and commits its first
// raster pass. A gesture landing off-grid rolls the new layer back and
// removes it.
func (s *Session) AddShape(kind shape.Kind, from, to geometry.Point, st shape.Style) *diagram.Layer {
	l := s.Doc.NewLayer(kind)
	l.From, l.To = from, to
	l.Style = st

	ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
		l.Redraw(s.Doc, s.Grid)
		return nil
	})
	if !ok {
		s.Doc.Remove(l.ID)
		return nil
	}
	if l.Kind == shape.KindTable {
		clamped := false
		if !l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
			clamped = l.Table.SetSpan(from, to)
			// Children are created past this point; the span must be
			// known good first.
			if l.Table.Rows < 1 || l.Table.Cols < 1 {
				return fmt.Errorf("span too small for one table cell")
			}
			s.Doc.SyncTableCells(l, s.Grid)
			return nil
		}) {
			s.Doc.Remove(l.ID)
			return nil
		}
		if clamped {
			s.diagnose(fmt.Sprintf("table clamped to %dx%d", diagram.MaxTableRows, diagram.MaxTableCols))
		}
	}

	s.resolveAfter(map[int]bool{l.ID: true})
	s.Render()
	s.TriggerChanged()
	return l
}

// AddTable creates a rows x cols table at the given origin with every cell
// at minimum size, populated with placeholder text layers.
func (s *Session) AddTable(at geometry.Point, rows, cols int, st shape.Style) *diagram.Layer {
	l := s.Doc.NewLayer(shape.KindTable)
	l.From = at
	l.Style = st
	l.Table = diagram.NewTableContent(rows, cols)
	l.To = l.Table.Extent(at)

	ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
		s.Doc.SyncTableCells(l, s.Grid)
		return nil
	})
	if !ok {
		for _, id := range l.Table.CellText {
			s.Doc.Remove(id)
		}
		s.Doc.Remove(l.ID)
		return nil
	}

	s.Render()
	s.TriggerChanged()
	return l
}

// AddText creates a text layer at the given anchor. The layer starts with a
// placeholder cell and is expected to receive keystrokes next.
func (s *Session) AddText(at geometry.Point) *diagram.Layer {
	l := s.Doc.NewLayer(shape.KindText)
	l.From, l.To = at, at

	ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
		l.Redraw(s.Doc, s.Grid)
		return nil
	})
	if !ok {
		s.Doc.Remove(l.ID)
		return nil
	}
	s.Render()
	s.TriggerChanged()
	return l
}

// EditText applies one text mutation (keystroke, paste) to a text layer as
// a single commit. Embedded layers re-evaluate their parent table's sizing
// instead of managing their own bounds.
func (s *Session) EditText(l *diagram.Layer, edit func(*diagram.TextContent)) bool {
	if l.Text == nil {
		return false
	}
	ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
		edit(l.Text)
		if l.ParentTable != 0 {
			s.Doc.GrowCellToFit(l, s.Grid)
		} else {
			l.Redraw(s.Doc, s.Grid)
		}
		return nil
	})
	if ok {
		s.Render()
		s.TriggerChanged()
	}
	return ok
}

// PaintFree adds or updates one cell of a free-form layer at the pointer
// position.
func (s *Session) PaintFree(l *diagram.Layer, p geometry.Point, ch rune) bool {
	return s.paintCells(l, []geometry.Point{p}, ch)
}

// PaintFreeSegment draws a straight stepwise segment from the layer's last
// painted point to the pointer position (the connected-lines sub-mode).
func (s *Session) PaintFreeSegment(l *diagram.Layer, p geometry.Point, ch rune) bool {
	if len(l.Cells) == 0 {
		return s.PaintFree(l, p, ch)
	}
	last := l.Cells[len(l.Cells)-1].P
	return s.paintCells(l, shape.TraceSegment(last, p), ch)
}

func (s *Session) paintCells(l *diagram.Layer, points []geometry.Point, ch rune) bool {
	if l.Kind != shape.KindFree {
		return false
	}
	ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
		for _, p := range points {
			updated := false
			for i := range l.Cells {
				if l.Cells[i].P == p {
					l.Cells[i].Ch = ch
					updated = true
					break
				}
			}
			if !updated {
				l.Cells = append(l.Cells, shape.Cell{P: p, Ch: ch})
			}
		}
		l.RecomputeFreeBounds()
		l.Redraw(s.Doc, s.Grid)
		return nil
	})
	if ok {
		s.Render()
	}
	return ok
}

// MoveSelection translates the whole selection atomically. Each member
// commits its own move; one failure unwinds every member already committed
// and the operation reports failure with nothing visibly moved.
func (s *Session) MoveSelection(dx, dy int) bool {
	batch := s.sortedSelection()
	if len(batch) == 0 {
		return false
	}

	moved := make(map[int]bool, len(batch))
	for _, l := range batch {
		moved[l.ID] = true
	}
	old := joints.SnapshotAttachments(s.Doc, moved)

	var committed []*diagram.Layer
	for _, l := range batch {
		ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
			l.Move(s.Grid, dx, dy)
			return nil
		})
		if !ok {
			for _, done := range committed {
				done.Abort(s.Grid)
			}
			s.Render()
			return false
		}
		committed = append(committed, l)
	}

	joints.Follow(s.Doc, s.Grid, moved, old)
	joints.Resolve(s.Doc, s.Grid, moved)
	s.Render()
	s.TriggerChanged()
	return true
}

// ResizeLayer drags one resize handle of a layer to a new cell: the dragged
// anchor follows the pointer while the geometrically opposite handle
// anchors the shape, then the shape re-rasterizes. Tables re-derive their
// row/column counts from the new span.
func (s *Session) ResizeLayer(l *diagram.Layer, handle int, to geometry.Point) bool {
	handles := l.Handles()
	if handle < 0 || handle >= len(handles) {
		return false
	}

	moved := map[int]bool{l.ID: true}
	old := joints.SnapshotAttachments(s.Doc, moved)

	ok := l.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
		switch l.Kind {
		case shape.KindCircle, shape.KindDiamond:
			// Scaled from center: the center anchor holds.
			l.To = to
		case shape.KindTable:
			opposite := shape.OppositeHandle(handles, handle)
			tl, _ := shape.Normalize(opposite, to)
			if l.Table.SetSpan(opposite, to) {
				s.diagnose(fmt.Sprintf("table clamped to %dx%d", diagram.MaxTableRows, diagram.MaxTableCols))
			}
			// Child text layers are mutated by the sync below and are not
			// covered by this layer's rollback, so every way the commit
			// could fail is rejected before touching them.
			if l.Table.Rows < 1 || l.Table.Cols < 1 {
				return fmt.Errorf("span too small for one table cell")
			}
			l.From = tl
			l.To = l.Table.Extent(l.From)
			b := s.Grid.Bounds()
			if !b.Contains(l.From) || !b.Contains(l.To) {
				return fmt.Errorf("table extends off the grid")
			}
			s.Doc.SyncTableCells(l, s.Grid)
			return nil
		default:
			l.From = shape.OppositeHandle(handles, handle)
			l.To = to
		}
		l.Redraw(s.Doc, s.Grid)
		return nil
	})
	if !ok {
		s.Render()
		return false
	}

	joints.Follow(s.Doc, s.Grid, moved, old)
	joints.Resolve(s.Doc, s.Grid, moved)
	s.Render()
	s.TriggerChanged()
	return true
}

// DeleteSelection removes the selected layers (and embedded table text),
// prunes dangling joints and groups, and records the change.
func (s *Session) DeleteSelection() {
	batch := s.sortedSelection()
	if len(batch) == 0 {
		return
	}
	deleted := make(map[int]bool, len(batch))
	for _, l := range batch {
		l.Erase(s.Grid)
		s.Doc.Remove(l.ID)
		deleted[l.ID] = true
	}
	joints.Tidy(s.Doc, deleted)
	s.Groups.Tidy(deleted)
	s.Render()
	s.TriggerChanged()
}

// Z-order operations: adjust the integer z of the selection relative to
// the current extremes, then re-render in sorted order.

// BringToFront raises the selection above every other layer.
func (s *Session) BringToFront() {
	z := s.Doc.MaxZ()
	for _, l := range s.sortedSelection() {
		z++
		l.Z = z
	}
	s.Render()
	s.TriggerChanged()
}

// SendToBack lowers the selection below every other layer.
func (s *Session) SendToBack() {
	z := s.Doc.MinZ()
	for _, l := range s.sortedSelection() {
		z--
		l.Z = z
	}
	s.Render()
	s.TriggerChanged()
}

// BringForward raises the selection one z step.
func (s *Session) BringForward() {
	for _, l := range s.sortedSelection() {
		l.Z++
	}
	s.Render()
	s.TriggerChanged()
}

// SendBackward lowers the selection one z step.
func (s *Session) SendBackward() {
	for _, l := range s.sortedSelection() {
		l.Z--
	}
	s.Render()
	s.TriggerChanged()
}

// resolveAfter runs joint resolution for a set of changed layers.
func (s *Session) resolveAfter(moved map[int]bool) {
	joints.Resolve(s.Doc, s.Grid, moved)
}
