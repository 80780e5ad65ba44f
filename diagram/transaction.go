package diagram

import "sketch/shape"

// Mutator is one step of a layer transaction. Returning an error aborts the
// commit; so does a panic.
type Mutator func(*Layer) error

// Commit applies the mutators to the layer inside a transaction. On first
// entry the full layer state is snapshotted; if any mutator fails, panics,
// or leaves the layer unhappy, every field is restored from the snapshot
// and Commit reports false; no partial mutation is observable.
//
// Re-entrant commits (a mutator calling Commit again) reuse the outer
// snapshot and leave rollback to the commit that opened it. The snapshot
// survives successful commits until Render ends the transaction, so a
// later failing commit in the same transaction unwinds everything since
// the snapshot, exactly as Abort would.
func (l *Layer) Commit(d *Document, g Grid, muts ...Mutator) bool {
	if l.snapshot == nil {
		l.snapshot = l.Clone()
	}
	l.inCommit = true
	l.depth++

	ok := l.apply(muts)
	if ok {
		ok = l.isHappy(d, g)
	}

	l.depth--
	if !ok && l.depth == 0 {
		l.rollback(g)
	}
	return ok
}

// apply runs the mutators in order, converting a panic into failure.
func (l *Layer) apply(muts []Mutator) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	for _, m := range muts {
		if err := m(l); err != nil {
			return false
		}
	}
	return true
}

// rollback restores every field from the transaction snapshot and repaints
// the restored cells.
func (l *Layer) rollback(g Grid) {
	snap := l.snapshot
	if snap == nil {
		l.inCommit = false
		l.depth = 0
		return
	}
	l.erase(g)
	*l = *snap
	l.snapshot = nil
	l.inCommit = false
	l.depth = 0
	l.paint(g)
}

// Abort rolls the layer back to its open transaction snapshot, if any.
// Multi-layer operations use it to unwind members that already committed
// when a later member fails: the snapshot survives a successful Commit
// until Render ends the transaction.
func (l *Layer) Abort(g Grid) {
	l.rollback(g)
}

// InCommit reports whether the layer is inside an open transaction.
func (l *Layer) InCommit() bool {
	return l.inCommit
}

// isHappy is the layer validity predicate: every claimed cell is a real
// grid address (text layers excepted: their raster pass already truncated
// to the grid) and all structural references still resolve.
func (l *Layer) isHappy(d *Document, g Grid) bool {
	if !shape.Known(l.Kind) {
		return false
	}

	if l.Kind != shape.KindText {
		bounds := g.Bounds()
		for _, c := range l.Cells {
			if !bounds.Contains(c.P) {
				return false
			}
		}
	}

	if l.Table != nil {
		if !l.Table.valid() {
			return false
		}
		// Every mapped cell's text layer must exist and point back.
		for _, id := range l.Table.CellText {
			child, ok := d.Layer(id)
			if !ok || child.ParentTable != l.ID {
				return false
			}
		}
	}

	if l.ParentTable != 0 {
		parent, ok := d.Layer(l.ParentTable)
		if !ok || parent.Table == nil {
			return false
		}
		if !parent.Table.hasText(l.ID) {
			return false
		}
	}

	// Every recorded joint must key a defined attachment point and
	// reference a live connector layer.
	attach := l.Attachments()
	for _, j := range l.Joints {
		if _, ok := attach[j.Key]; !ok {
			return false
		}
		other, ok := d.Layer(j.LayerID)
		if !ok || !other.Kind.IsConnector() {
			return false
		}
	}

	return true
}
