package session

import (
	"sketch/diagram"
	"sketch/geometry"
	"sketch/joints"
	"sketch/shape"
)

// placement probing: a ring of increasing offsets in 8 directions, capped.
const (
	maxPlacementSteps = 10
)

var placementDirs = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// DuplicateSelection copies the selected layers (embedded table text
// included) with fresh ids, places the copies in free space by probing a
// ring of increasing offsets until an atomic move of the whole set
// succeeds, and re-derives joints, group membership and table-cell links
// for the new ids. Returns the new layers, or nil when no free spot was
// found within the probe cap.
func (s *Session) DuplicateSelection() []*diagram.Layer {
	originals := s.sortedSelection()
	if len(originals) == 0 {
		return nil
	}

	// Clone with fresh ids; user-initiated duplicates never share an id
	// with their source.
	idMap := make(map[int]int, len(originals))
	clones := make([]*diagram.Layer, 0, len(originals))
	z := s.Doc.MaxZ()
	for _, src := range originals {
		c := src.Clone()
		c.ID = s.Doc.NewID()
		idMap[src.ID] = c.ID
		z++
		c.Z = z
		clones = append(clones, c)
	}

	// Remap internal references through the old-id -> new-id table.
	for _, c := range clones {
		if mapped, ok := idMap[c.ParentTable]; ok {
			c.ParentTable = mapped
		} else {
			c.ParentTable = 0
		}
		if c.Table != nil {
			remapped := make(map[string]int, len(c.Table.CellText))
			for key, id := range c.Table.CellText {
				if mapped, ok := idMap[id]; ok {
					remapped[key] = mapped
				}
			}
			c.Table.CellText = remapped
		}
		kept := c.Joints[:0]
		for _, j := range c.Joints {
			if mapped, ok := idMap[j.LayerID]; ok {
				kept = append(kept, diagram.Joint{LayerID: mapped, Key: j.Key})
			}
		}
		c.Joints = kept
	}

	dx, dy, found := s.findFreeOffset(clones)
	if !found {
		return nil
	}

	for _, c := range clones {
		s.Doc.Restore(c)
	}

	// The offset was verified; the per-layer commits make it official and
	// keep the all-or-nothing contract.
	for _, c := range clones {
		ok := c.Commit(s.Doc, s.Grid, func(l *diagram.Layer) error {
			l.Move(s.Grid, dx, dy)
			return nil
		})
		if !ok {
			for _, placed := range clones {
				placed.Abort(s.Grid)
				placed.Erase(s.Grid)
				s.Doc.Remove(placed.ID)
			}
			s.Render()
			return nil
		}
	}

	// Selection moves to the duplicates; re-derive group membership for
	// the new ids from the originals' groups.
	s.ClearSelection()
	for _, c := range clones {
		c.Selected = true
	}
	for _, g := range s.Groups.Groups() {
		var mapped []int
		for _, id := range g {
			if newID, ok := idMap[id]; ok {
				mapped = append(mapped, newID)
			}
		}
		if len(mapped) == len(g) {
			s.Groups.Group(mapped)
		}
	}

	moved := make(map[int]bool, len(clones))
	for _, c := range clones {
		moved[c.ID] = true
	}
	joints.Resolve(s.Doc, s.Grid, moved)
	s.Render()
	s.TriggerChanged()
	return clones
}

// findFreeOffset probes the placement ring for an offset where every
// clone's cells land in bounds and on unoccupied space.
func (s *Session) findFreeOffset(clones []*diagram.Layer) (dx, dy int, found bool) {
	bounds := s.Grid.Bounds()
	cloneIDs := make(map[int]bool, len(clones))
	for _, c := range clones {
		cloneIDs[c.ID] = true
	}

	occupied := make(map[geometry.Point]bool)
	for _, id := range s.Doc.IDs() {
		l, _ := s.Doc.Layer(id)
		if cloneIDs[l.ID] {
			continue
		}
		for _, c := range l.Cells {
			occupied[c.P] = true
		}
	}

	fits := func(dx, dy int) bool {
		for _, c := range clones {
			skipBounds := c.Kind == shape.KindText
			for _, cell := range c.Cells {
				p := cell.P.Add(dx, dy)
				if !skipBounds && !bounds.Contains(p) {
					return false
				}
				if occupied[p] {
					return false
				}
			}
		}
		return true
	}

	for step := 1; step <= maxPlacementSteps; step++ {
		for _, dir := range placementDirs {
			dx, dy := dir[0]*step, dir[1]*step
			if fits(dx, dy) {
				return dx, dy, true
			}
		}
	}
	return 0, 0, false
}
