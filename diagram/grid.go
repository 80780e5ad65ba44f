// Package diagram contains the layer model of the sketch engine: the
// mutable Layer entity and its commit/rollback transaction protocol, the
// text and table payloads, the Document arena that owns all layers, and the
// serialized document codec.
package diagram

import "sketch/geometry"

// CellState is a display state the engine asks the grid to show for a cell.
// The visual meaning is up to the grid implementation.
type CellState int

const (
	StateNormal CellState = iota
	StateSelected
	StateJoint
	StateNearJoint
	StateResizable
)

// Grid is the narrow interface the engine draws through. A grid is an
// addressable array of cells by (row, col); each cell holds one character
// and a display state.
type Grid interface {
	// Bounds returns the addressable cell range.
	Bounds() geometry.Bounds

	// Get returns the character at p, or false if p is outside the grid.
	Get(p geometry.Point) (rune, bool)

	// SetCharacter places a character at p. Out-of-bounds writes are
	// ignored.
	SetCharacter(p geometry.Point, ch rune)

	// ClearCharacter resets the cell at p to blank.
	ClearCharacter(p geometry.Point)

	// SetState sets the display state of the cell at p.
	SetState(p geometry.Point, s CellState)
}
