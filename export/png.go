package export

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"sketch/diagram"
)

// Character cell dimensions in pixels. Glyphs are drawn at a fixed
// monospace pitch matching the on-screen grid.
const (
	pngCellWidth  = 8.0
	pngCellHeight = 16.0
	pngFontSize   = 12.0
	pngPadding    = 1 // extra cells around the content
)

// PNGExporter rasterizes the document into a PNG image using the Go Mono
// font, one glyph per grid cell.
type PNGExporter struct{}

// NewPNGExporter creates a PNG exporter.
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{}
}

// Export renders the document to a PNG image.
func (e *PNGExporter) Export(d *diagram.Document) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("document is nil")
	}
	m, b, ok := renderMatrix(d)
	if !ok {
		return nil, fmt.Errorf("nothing to export")
	}

	imageWidth := int(float64(b.Width()+2*pngPadding) * pngCellWidth)
	imageHeight := int(float64(b.Height()+2*pngPadding) * pngCellHeight)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for y, row := range m {
		for x, ch := range row {
			if ch == ' ' {
				continue
			}
			px := float64(x+pngPadding) * pngCellWidth
			py := float64(y+pngPadding)*pngCellHeight + pngFontSize
			dc.DrawString(string(ch), px, py)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %v", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the recommended file extension.
func (e *PNGExporter) FileExtension() string { return ".png" }

// FormatName returns the format name.
func (e *PNGExporter) FormatName() string { return "PNG image" }
