package geometry

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b Point) int {
	return Abs(b.X-a.X) + Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the segment from a to b is more horizontal
// than vertical.
func IsHorizontal(a, b Point) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}

// IsVertical returns true if the segment from a to b is more vertical than
// horizontal.
func IsVertical(a, b Point) bool {
	return Abs(b.Y-a.Y) > Abs(b.X-a.X)
}
