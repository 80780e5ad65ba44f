package diagram

import (
	"sort"

	"sketch/geometry"
	"sketch/shape"
)

// Document is the arena owning all live layers, keyed by stable id. Tables
// and their cell text layers reference each other through ids resolved
// here, never through direct pointers.
type Document struct {
	layers map[int]*Layer
	nextID int
	seq    map[int]int // insertion order, breaks z ties
	nextSeq int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		layers: make(map[int]*Layer),
		nextID: 1,
		seq:    make(map[int]int),
	}
}

// NewID reserves and returns a fresh layer id.
func (d *Document) NewID() int {
	id := d.nextID
	d.nextID++
	return id
}

// NewLayer creates and registers a layer of the given kind with a fresh id
// and the next z-order slot. Text and table kinds get their payloads.
func (d *Document) NewLayer(kind shape.Kind) *Layer {
	l := &Layer{
		ID:   d.nextID,
		Kind: kind,
		Z:    d.MaxZ() + 1,
	}
	d.nextID++
	switch kind {
	case shape.KindText:
		l.Text = &TextContent{}
	case shape.KindTable:
		l.Table = NewTableContent(1, 1)
	}
	d.register(l)
	return l
}

// register adds an existing layer to the arena, preserving its id.
func (d *Document) register(l *Layer) {
	d.layers[l.ID] = l
	d.seq[l.ID] = d.nextSeq
	d.nextSeq++
	if l.ID >= d.nextID {
		d.nextID = l.ID + 1
	}
}

// Restore places a layer back into the arena under its existing id,
// overwriting any previous occupant.
func (d *Document) Restore(l *Layer) {
	d.register(l)
}

// Layer looks up a layer by id.
func (d *Document) Layer(id int) (*Layer, bool) {
	l, ok := d.layers[id]
	return l, ok
}

// Remove deletes a layer from the arena.
func (d *Document) Remove(id int) {
	delete(d.layers, id)
	delete(d.seq, id)
}

// Len returns the number of live layers.
func (d *Document) Len() int {
	return len(d.layers)
}

// IDs returns all layer ids in ascending order.
func (d *Document) IDs() []int {
	ids := make([]int, 0, len(d.layers))
	for id := range d.layers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Sorted materializes the z-ordered view of the layers, ties broken by
// insertion order. The collection itself carries no implied order.
func (d *Document) Sorted() []*Layer {
	out := make([]*Layer, 0, len(d.layers))
	for _, l := range d.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return d.seq[out[i].ID] < d.seq[out[j].ID]
	})
	return out
}

// MaxZ returns the highest z-order in use, or 0 for an empty document.
func (d *Document) MaxZ() int {
	z := 0
	for _, l := range d.layers {
		if l.Z > z {
			z = l.Z
		}
	}
	return z
}

// MinZ returns the lowest z-order in use, or 0 for an empty document.
func (d *Document) MinZ() int {
	first := true
	z := 0
	for _, l := range d.layers {
		if first || l.Z < z {
			z = l.Z
			first = false
		}
	}
	return z
}

// Clone returns a fully independent copy of the document: mutating the live
// layers can never alter the clone.
func (d *Document) Clone() *Document {
	c := NewDocument()
	c.nextID = d.nextID
	c.nextSeq = d.nextSeq
	for id, l := range d.layers {
		c.layers[id] = l.Clone()
		c.seq[id] = d.seq[id]
	}
	return c
}

// BlockedByShape returns a probe reporting cells claimed by non-line
// shapes, excluding the given layer ids. Step-line orientation selection
// counts overlaps through it.
func (d *Document) BlockedByShape(exclude ...int) func(geometry.Point) bool {
	skip := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	return func(p geometry.Point) bool {
		for _, l := range d.layers {
			if skip[l.ID] || l.Kind.IsConnector() {
				continue
			}
			for _, c := range l.Cells {
				if c.P == p {
					return true
				}
			}
		}
		return false
	}
}

// LayerAt returns the topmost layer occupying the given cell, or nil.
func (d *Document) LayerAt(p geometry.Point) *Layer {
	sorted := d.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		for _, c := range sorted[i].Cells {
			if c.P == p {
				return sorted[i]
			}
		}
	}
	return nil
}

// RenderAll repaints every layer in z-order onto a cleared grid. The grid
// implementation owns clearing; this pushes characters and display state.
func (d *Document) RenderAll(g Grid) {
	for _, l := range d.Sorted() {
		l.Render(g)
	}
}
