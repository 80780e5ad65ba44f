package diagram

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"sketch/geometry"
	"sketch/shape"
)

// TextContent is the editable payload of a text layer: a flat rune sequence
// with explicit line breaks, and a cursor index into it (0 = before the
// first rune).
type TextContent struct {
	Runes  []rune
	Cursor int
}

// NewTextContent builds a text payload from a string.
func NewTextContent(s string) *TextContent {
	t := &TextContent{}
	t.SetString(s)
	return t
}

func (t *TextContent) clone() *TextContent {
	return &TextContent{
		Runes:  append([]rune(nil), t.Runes...),
		Cursor: t.Cursor,
	}
}

// String flattens the content, breaks included.
func (t *TextContent) String() string {
	return string(t.Runes)
}

// SetString replaces the content and clamps the cursor.
func (t *TextContent) SetString(s string) {
	s = strings.ReplaceAll(s, "\r", "")
	t.Runes = []rune(s)
	if t.Cursor > len(t.Runes) {
		t.Cursor = len(t.Runes)
	}
}

// Empty reports whether there is no content at all.
func (t *TextContent) Empty() bool {
	return len(t.Runes) == 0
}

// Insert places one printable rune at the cursor.
func (t *TextContent) Insert(r rune) {
	t.insertRunes([]rune{r})
}

// InsertBreak inserts a line break at the cursor.
func (t *TextContent) InsertBreak() {
	t.insertRunes([]rune{'\n'})
}

// Paste inserts an arbitrary sequence at the cursor, advancing the cursor
// past it. Carriage returns are stripped.
func (t *TextContent) Paste(s string) {
	t.insertRunes([]rune(strings.ReplaceAll(s, "\r", "")))
}

func (t *TextContent) insertRunes(rs []rune) {
	if len(rs) == 0 {
		return
	}
	out := make([]rune, 0, len(t.Runes)+len(rs))
	out = append(out, t.Runes[:t.Cursor]...)
	out = append(out, rs...)
	out = append(out, t.Runes[t.Cursor:]...)
	t.Runes = out
	t.Cursor += len(rs)
}

// Backspace removes the rune before the cursor.
func (t *TextContent) Backspace() {
	if t.Cursor == 0 {
		return
	}
	t.Runes = append(t.Runes[:t.Cursor-1], t.Runes[t.Cursor:]...)
	t.Cursor--
}

// Delete removes the rune at the cursor.
func (t *TextContent) Delete() {
	if t.Cursor >= len(t.Runes) {
		return
	}
	t.Runes = append(t.Runes[:t.Cursor], t.Runes[t.Cursor+1:]...)
}

// CursorLeft moves the cursor one rune back.
func (t *TextContent) CursorLeft() {
	if t.Cursor > 0 {
		t.Cursor--
	}
}

// CursorRight moves the cursor one rune forward.
func (t *TextContent) CursorRight() {
	if t.Cursor < len(t.Runes) {
		t.Cursor++
	}
}

// lineStarts returns the index of the first rune of every line.
func (t *TextContent) lineStarts() []int {
	starts := []int{0}
	for i, r := range t.Runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the line index holding the cursor and the cursor's offset
// within that line.
func (t *TextContent) lineOf() (line, offset int) {
	starts := t.lineStarts()
	for i := len(starts) - 1; i >= 0; i-- {
		if t.Cursor >= starts[i] {
			return i, t.Cursor - starts[i]
		}
	}
	return 0, t.Cursor
}

func (t *TextContent) lineLen(starts []int, line int) int {
	end := len(t.Runes)
	if line+1 < len(starts) {
		end = starts[line+1] - 1 // exclude the break itself
	}
	return end - starts[line]
}

// CursorUp moves the cursor to the previous line, preserving the horizontal
// offset clamped to that line's length.
func (t *TextContent) CursorUp() {
	line, offset := t.lineOf()
	if line == 0 {
		return
	}
	starts := t.lineStarts()
	t.Cursor = starts[line-1] + geometry.Min(offset, t.lineLen(starts, line-1))
}

// CursorDown moves the cursor to the next line, preserving the horizontal
// offset clamped to that line's length.
func (t *TextContent) CursorDown() {
	line, offset := t.lineOf()
	starts := t.lineStarts()
	if line+1 >= len(starts) {
		return
	}
	t.Cursor = starts[line+1] + geometry.Min(offset, t.lineLen(starts, line+1))
}

// Lines splits the content on break markers.
func (t *TextContent) Lines() []string {
	return strings.Split(string(t.Runes), "\n")
}

// Width returns the display width of the widest line in cells.
func (t *TextContent) Width() int {
	w := 0
	for _, line := range t.Lines() {
		w = geometry.Max(w, runewidth.StringWidth(line))
	}
	return w
}

// Height returns the number of lines.
func (t *TextContent) Height() int {
	return len(t.Lines())
}

// raster places one character per cell starting at the anchor, wrapping to
// the next row on each break. Cells falling outside the grid are truncated
// rather than reported as a failure; typing is expected to probe the
// boundary. Empty content rasters a single placeholder character so the
// layer stays visible and selectable.
func (t *TextContent) raster(anchor geometry.Point, bounds geometry.Bounds) []shape.Cell {
	if t.Empty() {
		if !bounds.Contains(anchor) {
			return nil
		}
		return []shape.Cell{{P: anchor, Ch: shape.PlaceholderChar}}
	}

	var cells []shape.Cell
	x, y := anchor.X, anchor.Y
	for _, r := range t.Runes {
		if r == '\n' {
			x = anchor.X
			y++
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p := geometry.Point{X: x, Y: y}
		if bounds.Contains(p) {
			cells = append(cells, shape.Cell{P: p, Ch: r})
		}
		x += w
	}
	return cells
}
