package diagram

import (
	"encoding/json"
	"fmt"

	"sketch/geometry"
	"sketch/shape"
)

// cellRecord serializes one explicitly painted cell of a free layer.
type cellRecord struct {
	X  int    `json:"x"`
	Y  int    `json:"y"`
	Ch string `json:"ch"`
}

// layerRecord is the per-layer unit of the serialized document format.
type layerRecord struct {
	Type        string          `json:"type"`
	ID          int             `json:"id"`
	From        *geometry.Point `json:"from,omitempty"`
	To          *geometry.Point `json:"to,omitempty"`
	Z           int             `json:"z"`
	Style       string          `json:"style,omitempty"`
	ArrowFrom   bool            `json:"arrowFrom,omitempty"`
	ArrowTo     bool            `json:"arrowTo,omitempty"`
	PreferVert  bool            `json:"preferVertical,omitempty"`
	Joints      []Joint         `json:"joints,omitempty"`
	ParentTable int             `json:"parentTable,omitempty"`

	// Text layers.
	Text string `json:"text,omitempty"`

	// Table layers.
	Rows       int               `json:"rows,omitempty"`
	Cols       int               `json:"cols,omitempty"`
	RowHeights []int             `json:"rowHeights,omitempty"`
	ColWidths  []int             `json:"colWidths,omitempty"`
	CellText   map[string]int    `json:"cellText,omitempty"`
	Archive    map[string]string `json:"archive,omitempty"`

	// Free layers carry their painted cells verbatim.
	Cells []cellRecord `json:"cells,omitempty"`
}

// documentRecord is the unit of persistence, export and import.
type documentRecord struct {
	Layers []layerRecord `json:"layers"`
	Groups [][]int       `json:"groups,omitempty"`
}

func encodeLayer(l *Layer) layerRecord {
	rec := layerRecord{
		Type:        string(l.Kind),
		ID:          l.ID,
		Z:           l.Z,
		Style:       l.Style.Form.String(),
		ArrowFrom:   l.Style.ArrowFrom,
		ArrowTo:     l.Style.ArrowTo,
		PreferVert:  l.PreferVertical,
		Joints:      append([]Joint(nil), l.Joints...),
		ParentTable: l.ParentTable,
	}

	switch l.Kind {
	case shape.KindText:
		rec.Text = l.Text.String()
		from := l.From
		rec.From = &from
	case shape.KindTable:
		tb := l.Table
		rec.Rows, rec.Cols = tb.Rows, tb.Cols
		rec.RowHeights = append([]int(nil), tb.RowHeights...)
		rec.ColWidths = append([]int(nil), tb.ColWidths...)
		rec.CellText = tb.CellText
		rec.Archive = tb.Archive
		from := l.From
		rec.From = &from
	case shape.KindFree:
		for _, c := range l.Cells {
			rec.Cells = append(rec.Cells, cellRecord{X: c.P.X, Y: c.P.Y, Ch: string(c.Ch)})
		}
	default:
		from, to := l.From, l.To
		rec.From = &from
		rec.To = &to
	}

	return rec
}

func decodeLayer(rec layerRecord) (*Layer, error) {
	kind := shape.Kind(rec.Type)
	if !shape.Known(kind) {
		return nil, fmt.Errorf("unknown layer type %q (id %d)", rec.Type, rec.ID)
	}
	if rec.ID <= 0 {
		return nil, fmt.Errorf("layer type %q has invalid id %d", rec.Type, rec.ID)
	}

	l := &Layer{
		ID:             rec.ID,
		Kind:           kind,
		Z:              rec.Z,
		Style:          shape.Style{Form: shape.ParseLineForm(rec.Style), ArrowFrom: rec.ArrowFrom, ArrowTo: rec.ArrowTo},
		PreferVertical: rec.PreferVert,
		Joints:         append([]Joint(nil), rec.Joints...),
		ParentTable:    rec.ParentTable,
	}
	if rec.From != nil {
		l.From = *rec.From
	}
	if rec.To != nil {
		l.To = *rec.To
	}

	switch kind {
	case shape.KindText:
		l.Text = NewTextContent(rec.Text)
		l.To = l.From
	case shape.KindTable:
		tb := &TableContent{
			Rows:       rec.Rows,
			Cols:       rec.Cols,
			RowHeights: append([]int(nil), rec.RowHeights...),
			ColWidths:  append([]int(nil), rec.ColWidths...),
			CellText:   rec.CellText,
			Archive:    rec.Archive,
		}
		if tb.CellText == nil {
			tb.CellText = make(map[string]int)
		}
		if tb.Archive == nil {
			tb.Archive = make(map[string]string)
		}
		if !tb.valid() {
			return nil, fmt.Errorf("table layer %d has invalid geometry (%dx%d)", rec.ID, rec.Rows, rec.Cols)
		}
		l.Table = tb
	case shape.KindFree:
		for _, c := range rec.Cells {
			rs := []rune(c.Ch)
			if len(rs) == 0 {
				continue
			}
			l.Cells = append(l.Cells, shape.Cell{P: geometry.Point{X: c.X, Y: c.Y}, Ch: rs[0]})
		}
	}

	return l, nil
}

// Encode serializes the document and group list in z-order.
func Encode(d *Document, groups [][]int) ([]byte, error) {
	rec := documentRecord{Groups: groups}
	for _, l := range d.Sorted() {
		rec.Layers = append(rec.Layers, encodeLayer(l))
	}
	return json.MarshalIndent(rec, "", "  ")
}

// Decode parses a serialized document. A structurally broken layer record
// is skipped and reported in the returned error list; the rest of the
// document still loads. An unparsable document returns a nil document and a
// single fatal error.
func Decode(data []byte) (*Document, [][]int, []error) {
	var rec documentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, []error{fmt.Errorf("document unparsable: %w", err)}
	}

	d := NewDocument()
	var errs []error
	for _, lr := range rec.Layers {
		l, err := decodeLayer(lr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		d.register(l)
	}
	return d, rec.Groups, errs
}
