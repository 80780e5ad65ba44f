// Package joints keeps connector endpoints attached to other layers' named
// attachment points across moves and resizes.
//
// A joint is recorded on the attachment-point owner (the shape being
// connected to), as the connecting layer's id plus the attachment key.
package joints

import (
	"sketch/diagram"
	"sketch/geometry"
)

// NearTolerance is the Manhattan distance inside which an endpoint renders
// as "near" an attachment point without a joint being recorded. The value
// is part of the visual contract users rely on.
const NearTolerance = 1

// Resolve runs after a set of layers finishes moving or resizing. For every
// non-moving layer's named attachment points, the moved connectors'
// endpoints are probed: exact coincidence records or confirms a joint and
// marks the point jointed; within tolerance marks it near (a visual
// affordance only); anything else removes a previously recorded joint for
// the pair.
func Resolve(d *diagram.Document, g diagram.Grid, moved map[int]bool) {
	for _, owner := range d.Sorted() {
		if moved[owner.ID] {
			continue
		}
		attach := owner.Attachments()
		if len(attach) == 0 {
			continue
		}
		for key, p := range attach {
			for movedID := range moved {
				conn, ok := d.Layer(movedID)
				if !ok || !conn.Kind.IsConnector() || conn.ID == owner.ID {
					continue
				}
				exact, near := false, false
				for _, e := range conn.Endpoints() {
					if e == p {
						exact = true
					} else if geometry.ManhattanDistance(e, p) <= NearTolerance {
						near = true
					}
				}
				switch {
				case exact:
					owner.AddJoint(conn.ID, key)
					g.SetState(p, diagram.StateJoint)
				case near:
					g.SetState(p, diagram.StateNearJoint)
				default:
					owner.RemoveJoint(conn.ID, key)
				}
			}
		}
	}
}

// SnapshotAttachments captures the attachment points of the given layers
// before they mutate, so Follow can tell which connector endpoint was
// attached where.
func SnapshotAttachments(d *diagram.Document, ids map[int]bool) map[int]map[string]geometry.Point {
	old := make(map[int]map[string]geometry.Point)
	for id := range ids {
		if l, ok := d.Layer(id); ok {
			if attach := l.Attachments(); len(attach) > 0 {
				old[id] = attach
			}
		}
	}
	return old
}

// Follow redraws connectors attached to the moved layers: for each recorded
// joint, the connected layer's endpoint that sat on the old attachment
// location is redrawn to the new one, holding its other endpoint fixed.
// Connectors that are themselves part of the move set are skipped to avoid
// double-moving. Joints whose attachment point disappeared (or whose
// connector is gone) are dropped, leaving the formerly connected layer in
// place.
func Follow(d *diagram.Document, g diagram.Grid, moved map[int]bool, old map[int]map[string]geometry.Point) {
	for id := range moved {
		owner, ok := d.Layer(id)
		if !ok || len(owner.Joints) == 0 {
			continue
		}
		attach := owner.Attachments()

		kept := owner.Joints[:0]
		for _, j := range owner.Joints {
			newP, exists := attach[j.Key]
			conn, live := d.Layer(j.LayerID)
			if !exists || !live {
				continue
			}
			kept = append(kept, j)
			if moved[conn.ID] {
				continue
			}

			var oldP geometry.Point
			hasOld := false
			if m := old[id]; m != nil {
				if p, found := m[j.Key]; found {
					oldP, hasOld = p, true
				}
			}

			conn.Commit(d, g, func(l *diagram.Layer) error {
				if followFrom(l, oldP, hasOld, newP) {
					l.From = newP
				} else {
					l.To = newP
				}
				l.Redraw(d, g)
				return nil
			})
		}
		owner.Joints = kept
	}
}

// followFrom decides which endpoint of the connector follows the
// attachment point: the one on the old location when known, otherwise the
// nearer one.
func followFrom(l *diagram.Layer, oldP geometry.Point, hasOld bool, newP geometry.Point) bool {
	if hasOld {
		if l.From == oldP {
			return true
		}
		if l.To == oldP {
			return false
		}
	}
	return geometry.ManhattanDistance(l.From, newP) <= geometry.ManhattanDistance(l.To, newP)
}

// Tidy drops joints referencing deleted layers from every live layer.
func Tidy(d *diagram.Document, deleted map[int]bool) {
	if len(deleted) == 0 {
		return
	}
	for _, id := range d.IDs() {
		l, _ := d.Layer(id)
		kept := l.Joints[:0]
		for _, j := range l.Joints {
			if !deleted[j.LayerID] {
				kept = append(kept, j)
			}
		}
		l.Joints = kept
	}
}
