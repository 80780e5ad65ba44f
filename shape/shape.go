// Package shape contains the pure geometric rasterizers of the sketch
// engine: one family of functions per shape kind, turning anchor cells and
// a style into the list of grid cells the shape occupies.
package shape

import "sketch/geometry"

// Kind identifies a shape kind. The set is closed: every kind the engine
// understands is listed here, and kindDefs in the diagram package is the
// single dispatch point.
type Kind string

const (
	KindFreeLine   Kind = "free-line"
	KindStepLine   Kind = "step-line"
	KindSwitchLine Kind = "switch-line"
	KindFree       Kind = "free"
	KindCircle     Kind = "circle"
	KindDiamond    Kind = "diamond"
	KindSquare     Kind = "square"
	KindText       Kind = "text"
	KindTable      Kind = "table"
)

// Known reports whether k is one of the defined shape kinds.
func Known(k Kind) bool {
	switch k {
	case KindFreeLine, KindStepLine, KindSwitchLine, KindFree,
		KindCircle, KindDiamond, KindSquare, KindText, KindTable:
		return true
	}
	return false
}

// IsConnector reports whether the kind's endpoints attach to other shapes'
// attachment points.
func (k Kind) IsConnector() bool {
	return k == KindFreeLine || k == KindStepLine || k == KindSwitchLine
}

// Cell is one occupied grid cell and the character drawn there.
type Cell struct {
	P  geometry.Point
	Ch rune
}

// LineForm selects the glyph family used to draw a shape's strokes.
type LineForm int

const (
	FormThin LineForm = iota
	FormBold
	FormDashed
	FormDotted
)

// String returns the serialized name of the form.
func (f LineForm) String() string {
	switch f {
	case FormBold:
		return "bold"
	case FormDashed:
		return "dashed"
	case FormDotted:
		return "dotted"
	default:
		return "thin"
	}
}

// ParseLineForm converts a serialized name back to a LineForm. Unknown
// names fall back to thin.
func ParseLineForm(s string) LineForm {
	switch s {
	case "bold":
		return FormBold
	case "dashed":
		return FormDashed
	case "dotted":
		return FormDotted
	default:
		return FormThin
	}
}

// Style carries the per-layer drawing options.
type Style struct {
	Form      LineForm
	ArrowFrom bool // arrowhead at the from anchor (line kinds only)
	ArrowTo   bool // arrowhead at the to anchor (line kinds only)
}

// Glyphs is the character set one LineForm draws with.
type Glyphs struct {
	Horizontal, Vertical       rune
	DiagonalUp, DiagonalDown   rune // ╱ and ╲
	TopLeft, TopRight          rune
	BottomLeft, BottomRight    rune
	TeeTop, TeeBottom          rune // ┬ ┴
	TeeLeft, TeeRight, Cross   rune // ├ ┤ ┼
}

var glyphSets = map[LineForm]Glyphs{
	FormThin: {
		Horizontal: '─', Vertical: '│',
		DiagonalUp: '╱', DiagonalDown: '╲',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		TeeTop: '┬', TeeBottom: '┴', TeeLeft: '├', TeeRight: '┤', Cross: '┼',
	},
	FormBold: {
		Horizontal: '━', Vertical: '┃',
		DiagonalUp: '╱', DiagonalDown: '╲',
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		TeeTop: '┳', TeeBottom: '┻', TeeLeft: '┣', TeeRight: '┫', Cross: '╋',
	},
	FormDashed: {
		Horizontal: '╌', Vertical: '╎',
		DiagonalUp: '╱', DiagonalDown: '╲',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		TeeTop: '┬', TeeBottom: '┴', TeeLeft: '├', TeeRight: '┤', Cross: '┼',
	},
	FormDotted: {
		Horizontal: '┈', Vertical: '┊',
		DiagonalUp: '╱', DiagonalDown: '╲',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		TeeTop: '┬', TeeBottom: '┴', TeeLeft: '├', TeeRight: '┤', Cross: '┼',
	},
}

// GlyphsFor returns the glyph set for a line form.
func GlyphsFor(f LineForm) Glyphs {
	g, ok := glyphSets[f]
	if !ok {
		return glyphSets[FormThin]
	}
	return g
}

// Arrowhead glyphs by travel direction.
const (
	ArrowUp    = '▲'
	ArrowDown  = '▼'
	ArrowLeft  = '◀'
	ArrowRight = '▶'
)

// PlaceholderChar fills an otherwise empty text layer so it stays visible
// and selectable until real content is typed.
const PlaceholderChar = '_'

// CircleCenterChar is drawn for a degenerate zero-radius circle.
const CircleCenterChar = '○'
