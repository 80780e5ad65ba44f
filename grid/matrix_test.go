package grid

import (
	"testing"

	"sketch/diagram"
	"sketch/geometry"
)

// TestMatrixGrid_Creation tests dimension validation and blank
// initialization.
func TestMatrixGrid_Creation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		ok     bool
	}{
		{"Small", 10, 5, true},
		{"Square", 20, 20, true},
		{"ZeroWidth", 0, 5, false},
		{"NegativeHeight", 10, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewMatrixGrid(tt.width, tt.height)
			if (g != nil) != tt.ok {
				t.Fatalf("NewMatrixGrid(%d, %d) = %v, want ok=%v", tt.width, tt.height, g, tt.ok)
			}
			if g == nil {
				return
			}
			w, h := g.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if ch, _ := g.Get(geometry.Point{X: x, Y: y}); ch != ' ' {
						t.Errorf("cell (%d,%d) = %c, want blank", x, y, ch)
					}
				}
			}
		})
	}
}

// TestMatrixGrid_GetSet tests in-bounds and out-of-bounds access.
func TestMatrixGrid_GetSet(t *testing.T) {
	g := NewMatrixGrid(20, 10)

	tests := []struct {
		name  string
		point geometry.Point
		valid bool
	}{
		{"Origin", geometry.Point{X: 0, Y: 0}, true},
		{"Center", geometry.Point{X: 10, Y: 5}, true},
		{"BottomRight", geometry.Point{X: 19, Y: 9}, true},
		{"OutOfBoundsX", geometry.Point{X: 20, Y: 5}, false},
		{"OutOfBoundsY", geometry.Point{X: 10, Y: 10}, false},
		{"NegativeX", geometry.Point{X: -1, Y: 5}, false},
		{"NegativeY", geometry.Point{X: 5, Y: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.SetCharacter(tt.point, '╋')
			ch, ok := g.Get(tt.point)
			if ok != tt.valid {
				t.Fatalf("Get(%v) ok = %v, want %v", tt.point, ok, tt.valid)
			}
			if tt.valid && ch != '╋' {
				t.Errorf("Get(%v) = %c, want ╋", tt.point, ch)
			}
		})
	}
}

// TestMatrixGrid_ClearCharacter tests that clearing resets the display
// state too.
func TestMatrixGrid_ClearCharacter(t *testing.T) {
	g := NewMatrixGrid(10, 10)
	p := geometry.Point{X: 3, Y: 3}
	g.SetCharacter(p, '*')
	g.SetState(p, diagram.StateSelected)

	g.ClearCharacter(p)
	if ch, _ := g.Get(p); ch != ' ' {
		t.Errorf("cell = %c, want blank", ch)
	}
	if st := g.State(p); st != diagram.StateNormal {
		t.Errorf("state = %v, want normal", st)
	}
}

// TestMatrixGrid_Trimmed tests the minimal bounding rectangle rendering.
func TestMatrixGrid_Trimmed(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		g := NewMatrixGrid(10, 10)
		if got := g.Trimmed(); got != "" {
			t.Errorf("Trimmed() = %q, want empty", got)
		}
	})

	t.Run("Box", func(t *testing.T) {
		g := NewMatrixGrid(20, 10)
		// A 3x2 frame floated away from the origin.
		g.SetCharacter(geometry.Point{X: 5, Y: 3}, '┌')
		g.SetCharacter(geometry.Point{X: 6, Y: 3}, '─')
		g.SetCharacter(geometry.Point{X: 7, Y: 3}, '┐')
		g.SetCharacter(geometry.Point{X: 5, Y: 4}, '└')
		g.SetCharacter(geometry.Point{X: 6, Y: 4}, '─')
		g.SetCharacter(geometry.Point{X: 7, Y: 4}, '┘')

		want := "┌─┐\n└─┘"
		if got := g.Trimmed(); got != want {
			t.Errorf("Trimmed() = %q, want %q", got, want)
		}
	})

	t.Run("TrailingSpaces", func(t *testing.T) {
		g := NewMatrixGrid(20, 10)
		g.SetCharacter(geometry.Point{X: 2, Y: 1}, 'a')
		g.SetCharacter(geometry.Point{X: 6, Y: 2}, 'b')

		// The first row ends at 'a' even though the rectangle is wider.
		want := "a\n    b"
		if got := g.Trimmed(); got != want {
			t.Errorf("Trimmed() = %q, want %q", got, want)
		}
	})
}

// TestMatrixGrid_Clear tests the full reset.
func TestMatrixGrid_Clear(t *testing.T) {
	g := NewMatrixGrid(5, 5)
	g.SetCharacter(geometry.Point{X: 1, Y: 1}, 'x')
	g.SetState(geometry.Point{X: 1, Y: 1}, diagram.StateJoint)

	g.Clear()
	if ch, _ := g.Get(geometry.Point{X: 1, Y: 1}); ch != ' ' {
		t.Error("Clear left a character behind")
	}
	if st := g.State(geometry.Point{X: 1, Y: 1}); st != diagram.StateNormal {
		t.Error("Clear left a display state behind")
	}
}
