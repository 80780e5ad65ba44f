package export

import (
	"fmt"

	"sketch/diagram"
	"sketch/geometry"
)

// cellRange returns the bounding cell range of every occupied cell.
func cellRange(d *diagram.Document) (geometry.Bounds, bool) {
	var b geometry.Bounds
	found := false
	for _, l := range d.Sorted() {
		for _, c := range l.Cells {
			if !found {
				b.Min, b.Max = c.P, c.P.Add(1, 1)
				found = true
				continue
			}
			b.Min.X = geometry.Min(b.Min.X, c.P.X)
			b.Min.Y = geometry.Min(b.Min.Y, c.P.Y)
			b.Max.X = geometry.Max(b.Max.X, c.P.X+1)
			b.Max.Y = geometry.Max(b.Max.Y, c.P.Y+1)
		}
	}
	return b, found
}

// renderMatrix paints every layer in z-order into a rune matrix covering
// the occupied bounding rectangle.
func renderMatrix(d *diagram.Document) ([][]rune, geometry.Bounds, bool) {
	b, ok := cellRange(d)
	if !ok {
		return nil, b, false
	}
	m := make([][]rune, b.Height())
	for y := range m {
		m[y] = make([]rune, b.Width())
		for x := range m[y] {
			m[y][x] = ' '
		}
	}
	for _, l := range d.Sorted() {
		for _, c := range l.Cells {
			m[c.P.Y-b.Min.Y][c.P.X-b.Min.X] = c.Ch
		}
	}
	return m, b, true
}

// TextExporter renders the minimal bounding rectangle of all non-blank
// cells as plain text, rows joined by line breaks, trailing spaces trimmed
// per row.
type TextExporter struct{}

// NewTextExporter creates a plain-text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export renders the document to plain text.
func (e *TextExporter) Export(d *diagram.Document) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("document is nil")
	}
	m, _, ok := renderMatrix(d)
	if !ok {
		return []byte{}, nil
	}

	var out []byte
	for y, row := range m {
		end := len(row)
		for end > 0 && row[end-1] == ' ' {
			end--
		}
		out = append(out, string(row[:end])...)
		if y < len(m)-1 {
			out = append(out, '\n')
		}
	}
	return out, nil
}

// FileExtension returns the recommended file extension.
func (e *TextExporter) FileExtension() string { return ".txt" }

// FormatName returns the format name.
func (e *TextExporter) FormatName() string { return "Plain text" }
