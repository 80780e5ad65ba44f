package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"sketch/diagram"
	"sketch/geometry"
	"sketch/grid"
	"sketch/shape"
)

// buildDocument rasters a small square away from the origin so the
// exporters have cells and an offset bounding box to work with.
func buildDocument(t *testing.T) *diagram.Document {
	t.Helper()
	d := diagram.NewDocument()
	g := grid.NewMatrixGrid(30, 15)

	l := d.NewLayer(shape.KindSquare)
	l.From = geometry.Point{X: 3, Y: 2}
	l.To = geometry.Point{X: 7, Y: 4}
	l.Redraw(d, g)
	if len(l.Cells) == 0 {
		t.Fatal("square raster produced no cells")
	}
	return d
}

// TestTextExporter tests that the output is cropped to the occupied
// bounding box with trailing blanks trimmed.
func TestTextExporter(t *testing.T) {
	d := buildDocument(t)

	out, err := NewTextExporter().Export(d)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	want := strings.Join([]string{
		"┌───┐",
		"│   │",
		"└───┘",
	}, "\n")
	if string(out) != want {
		t.Errorf("Export() =\n%s\nwant\n%s", out, want)
	}
}

// TestTextExporter_Empty tests the degenerate empty document.
func TestTextExporter_Empty(t *testing.T) {
	out, err := NewTextExporter().Export(diagram.NewDocument())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Export() = %q for empty document, want empty", out)
	}
}

// TestJSONExporter tests that the payload decodes back into the same
// layer set.
func TestJSONExporter(t *testing.T) {
	d := buildDocument(t)

	out, err := NewJSONExporter().Export(d)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	decoded, _, errs := diagram.Decode(out)
	if len(errs) != 0 {
		t.Fatalf("Decode() of exported payload: %v", errs)
	}
	if decoded.Len() != d.Len() {
		t.Errorf("decoded %d layers, want %d", decoded.Len(), d.Len())
	}
}

// TestPNGExporter tests that the rendering is a decodable image sized to
// the padded cell box.
func TestPNGExporter(t *testing.T) {
	d := buildDocument(t)

	out, err := NewPNGExporter().Export(d)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}

	// 5x3 occupied cells plus one padding cell on each side.
	wantW := int((5 + 2*pngPadding) * pngCellWidth)
	wantH := int((3 + 2*pngPadding) * pngCellHeight)
	b := img.Bounds()
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

// TestNewExporter tests the format dispatch and its rejection of unknown
// formats.
func TestNewExporter(t *testing.T) {
	cases := []struct {
		format Format
		ext    string
	}{
		{FormatText, ".txt"},
		{FormatJSON, ".json"},
		{FormatPNG, ".png"},
	}
	for _, tc := range cases {
		e, err := NewExporter(tc.format)
		if err != nil {
			t.Fatalf("NewExporter(%q) error: %v", tc.format, err)
		}
		if e.FileExtension() != tc.ext {
			t.Errorf("NewExporter(%q).FileExtension() = %q, want %q", tc.format, e.FileExtension(), tc.ext)
		}
	}

	if _, err := NewExporter("svg"); err == nil {
		t.Error("NewExporter should reject unknown formats")
	}
}

// TestParseFormat tests name aliases.
func TestParseFormat(t *testing.T) {
	cases := []struct {
		in     string
		want   Format
		wantOK bool
	}{
		{"text", FormatText, true},
		{"txt", FormatText, true},
		{"ascii", FormatText, true},
		{"json", FormatJSON, true},
		{"png", FormatPNG, true},
		{"bmp", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantOK && (err != nil || got != tc.want) {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.wantOK && err == nil {
			t.Errorf("ParseFormat(%q) should fail", tc.in)
		}
	}
}
