// Package grid provides the in-memory character grid the engine draws on:
// a rune matrix with a parallel display-state matrix.
package grid

import (
	"errors"
	"strings"

	"sketch/diagram"
	"sketch/geometry"
)

// Common errors
var (
	ErrInvalidSize = errors.New("invalid grid size")
)

// MatrixGrid implements the engine's Grid interface over a rune matrix.
//
// Coordinate system:
//   - Origin (0,0) is top-left
//   - X increases rightward (columns)
//   - Y increases downward (rows)
//
// MatrixGrid is not safe for concurrent writes; the engine is strictly
// single-threaded, so no locking is done here.
type MatrixGrid struct {
	cells  [][]rune
	states [][]diagram.CellState
	width  int
	height int
}

// NewMatrixGrid creates a grid with the given dimensions, all cells blank.
func NewMatrixGrid(width, height int) *MatrixGrid {
	if width <= 0 || height <= 0 {
		return nil
	}

	cells := make([][]rune, height)
	states := make([][]diagram.CellState, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]rune, width)
		states[y] = make([]diagram.CellState, width)
		for x := 0; x < width; x++ {
			cells[y][x] = ' '
		}
	}

	return &MatrixGrid{cells: cells, states: states, width: width, height: height}
}

// Size returns the width and height of the grid.
func (g *MatrixGrid) Size() (width, height int) {
	return g.width, g.height
}

// Bounds returns the addressable cell range.
func (g *MatrixGrid) Bounds() geometry.Bounds {
	return geometry.Bounds{Max: geometry.Point{X: g.width, Y: g.height}}
}

func (g *MatrixGrid) in(p geometry.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Get returns the character at p, or false if p is outside the grid.
func (g *MatrixGrid) Get(p geometry.Point) (rune, bool) {
	if !g.in(p) {
		return ' ', false
	}
	return g.cells[p.Y][p.X], true
}

// State returns the display state at p.
func (g *MatrixGrid) State(p geometry.Point) diagram.CellState {
	if !g.in(p) {
		return diagram.StateNormal
	}
	return g.states[p.Y][p.X]
}

// SetCharacter places a character at p. Out-of-bounds writes are ignored.
func (g *MatrixGrid) SetCharacter(p geometry.Point, ch rune) {
	if g.in(p) {
		g.cells[p.Y][p.X] = ch
	}
}

// ClearCharacter resets the cell at p to blank and its state to normal.
func (g *MatrixGrid) ClearCharacter(p geometry.Point) {
	if g.in(p) {
		g.cells[p.Y][p.X] = ' '
		g.states[p.Y][p.X] = diagram.StateNormal
	}
}

// SetState sets the display state of the cell at p.
func (g *MatrixGrid) SetState(p geometry.Point, s diagram.CellState) {
	if g.in(p) {
		g.states[p.Y][p.X] = s
	}
}

// Clear resets the whole grid.
func (g *MatrixGrid) Clear() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[y][x] = ' '
			g.states[y][x] = diagram.StateNormal
		}
	}
}

// String returns the full grid as newline-joined rows.
func (g *MatrixGrid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		sb.WriteString(string(g.cells[y]))
		if y < g.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Trimmed returns the minimal bounding rectangle of all non-blank cells,
// rows joined by line breaks, trailing spaces trimmed per row. An empty
// grid yields the empty string.
func (g *MatrixGrid) Trimmed() string {
	minX, minY := g.width, g.height
	maxX, maxY := -1, -1
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] != ' ' {
				minX = geometry.Min(minX, x)
				minY = geometry.Min(minY, y)
				maxX = geometry.Max(maxX, x)
				maxY = geometry.Max(maxY, y)
			}
		}
	}
	if maxX < 0 {
		return ""
	}

	var sb strings.Builder
	for y := minY; y <= maxY; y++ {
		row := strings.TrimRight(string(g.cells[y][minX:maxX+1]), " ")
		sb.WriteString(row)
		if y < maxY {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
