// Package export converts documents to external formats. The engine's own
// serialized form is JSON; plain text and PNG renderings are one-way.
package export

import (
	"fmt"

	"sketch/diagram"
)

// Format represents an export format.
type Format string

const (
	// FormatText exports the trimmed character rendering.
	FormatText Format = "text"
	// FormatJSON exports the serialized document.
	FormatJSON Format = "json"
	// FormatPNG renders the character grid to a PNG image.
	FormatPNG Format = "png"
)

// Exporter converts a document to one target format.
type Exporter interface {
	// Export converts the document to the target format.
	Export(d *diagram.Document) ([]byte, error)
	// FileExtension returns the recommended file extension.
	FileExtension() string
	// FormatName returns a human-readable name for the format.
	FormatName() string
}

// NewExporter creates an exporter for the given format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatText:
		return NewTextExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "txt", "ascii":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}
