// Package session is the top-level orchestrator of the sketch engine: it
// owns the layer arena, selection, z-order, undo/redo history and
// persistence, and coordinates multi-layer atomic operations.
package session

import (
	"log"
	"sort"

	"sketch/diagram"
	"sketch/geometry"
	"sketch/groups"
	"sketch/joints"
)

// Store persists serialized documents. Implementations live outside the
// engine (files, SQLite); a nil store disables persistence.
type Store interface {
	Save(name string, data []byte) error
	Load(name string) ([]byte, error)
}

// AutosaveName is the store slot triggerChanged writes to.
const AutosaveName = "autosave"

// Session is the editing-session context passed around instead of global
// singletons: the live document, the grid handle, groups, history and the
// changed-notification plumbing.
type Session struct {
	Doc     *diagram.Document
	Grid    diagram.Grid
	Groups  *groups.Manager
	History *History

	store     Store
	listeners []func()

	// Diagnose receives transient user-facing diagnostics (table cap hit,
	// skipped layers on load). Defaults to the standard logger.
	Diagnose func(msg string)
}

// New creates an empty session on the given grid and captures the initial
// blank state so the first action can be undone back to it.
func New(g diagram.Grid) *Session {
	s := &Session{
		Doc:      diagram.NewDocument(),
		Grid:     g,
		Groups:   groups.NewManager(),
		History:  NewHistory(),
		Diagnose: func(msg string) { log.Print(msg) },
	}
	s.History.Capture(s.Doc, s.Groups)
	return s
}

// SetStore attaches persistent storage for autosave.
func (s *Session) SetStore(st Store) {
	s.store = st
}

// OnChange registers a listener notified after every persisted change.
func (s *Session) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// diagnose reports a transient diagnostic without failing the operation.
func (s *Session) diagnose(msg string) {
	if s.Diagnose != nil {
		s.Diagnose(msg)
	}
}

// TriggerChanged is the single funnel for every action that changes
// persisted state: prune degenerate layers, groups and joints, capture
// history, persist, notify listeners.
func (s *Session) TriggerChanged() {
	s.tidy()
	s.History.Capture(s.Doc, s.Groups)
	s.persist()
	for _, fn := range s.listeners {
		fn()
	}
}

func (s *Session) persist() {
	if s.store == nil {
		return
	}
	data, err := diagram.Encode(s.Doc, s.Groups.Groups())
	if err != nil {
		log.Printf("session: encode for autosave failed: %v", err)
		return
	}
	if err := s.store.Save(AutosaveName, data); err != nil {
		log.Printf("session: autosave failed: %v", err)
	}
}

// tidy removes layers with no occupied cells (unless mid-edit), then prunes
// joints and groups referencing the removed ids.
func (s *Session) tidy() {
	deleted := make(map[int]bool)
	for _, id := range s.Doc.IDs() {
		l, _ := s.Doc.Layer(id)
		if len(l.Cells) == 0 && !l.InCommit() {
			s.Doc.Remove(id)
			deleted[id] = true
		}
	}
	joints.Tidy(s.Doc, deleted)
	s.Groups.Tidy(deleted)
}

// Render repaints the whole document in z-order. The grid is cleared first
// when the implementation supports it.
func (s *Session) Render() {
	if c, ok := s.Grid.(interface{ Clear() }); ok {
		c.Clear()
	}
	s.Doc.RenderAll(s.Grid)
	s.markHandles()
}

// markHandles flags the resize handle cells of selected layers.
func (s *Session) markHandles() {
	for _, l := range s.Doc.Sorted() {
		if !l.Selected {
			continue
		}
		for _, h := range l.Handles() {
			s.Grid.SetState(h, diagram.StateResizable)
		}
	}
}

// SelectedIDs returns the selected layer ids in ascending order.
func (s *Session) SelectedIDs() []int {
	var ids []int
	for _, id := range s.Doc.IDs() {
		if l, _ := s.Doc.Layer(id); l.Selected {
			ids = append(ids, id)
		}
	}
	return ids
}

// ClearSelection deselects everything.
func (s *Session) ClearSelection() {
	for _, id := range s.Doc.IDs() {
		l, _ := s.Doc.Layer(id)
		l.Selected = false
	}
}

// Select selects the layer and every group sibling it has. With additive
// false the previous selection is cleared first.
func (s *Session) Select(id int, additive bool) {
	if !additive {
		s.ClearSelection()
	}
	for _, member := range s.Groups.SiblingsOf(id) {
		if l, ok := s.Doc.Layer(member); ok {
			l.Selected = true
		}
	}
}

// SelectAt selects the topmost layer occupying the cell, extended to its
// group siblings. Selecting empty space clears the selection.
func (s *Session) SelectAt(p geometry.Point, additive bool) *diagram.Layer {
	l := s.Doc.LayerAt(p)
	if l == nil {
		if !additive {
			s.ClearSelection()
		}
		return nil
	}
	s.Select(l.ID, additive)
	return l
}

// SelectArea selects every layer fully enclosed by the cell range.
func (s *Session) SelectArea(b geometry.Bounds, additive bool) {
	if !additive {
		s.ClearSelection()
	}
	for _, id := range s.Doc.IDs() {
		l, _ := s.Doc.Layer(id)
		if len(l.Cells) == 0 {
			continue
		}
		enclosed := true
		for _, c := range l.Cells {
			if !b.Contains(c.P) {
				enclosed = false
				break
			}
		}
		if enclosed {
			l.Selected = true
		}
	}
}

// GroupSelection merges the selected layers into a group.
func (s *Session) GroupSelection() bool {
	if !s.Groups.Group(s.SelectedIDs()) {
		return false
	}
	s.TriggerChanged()
	return true
}

// UngroupSelection drops every group entirely covered by the selection.
func (s *Session) UngroupSelection() {
	s.Groups.Ungroup(s.SelectedIDs())
	s.TriggerChanged()
}

// Undo restores the previous history snapshot. Layer and group state come
// back as independent clones, never aliases of the stored entry.
func (s *Session) Undo() bool {
	doc, grp, ok := s.History.Undo()
	if !ok {
		return false
	}
	s.restore(doc, grp)
	return true
}

// Redo restores the next history snapshot.
func (s *Session) Redo() bool {
	doc, grp, ok := s.History.Redo()
	if !ok {
		return false
	}
	s.restore(doc, grp)
	return true
}

func (s *Session) restore(doc *diagram.Document, grp *groups.Manager) {
	s.Doc = doc
	s.Groups = grp
	s.Render()
	s.persist()
	for _, fn := range s.listeners {
		fn()
	}
}

// Load replaces the session contents with a serialized document. Broken
// layer records are skipped with a diagnostic; an unparsable document
// aborts the import and resets the session to empty rather than silently
// resuming the previous state.
func (s *Session) Load(data []byte) error {
	doc, grp, errs := diagram.Decode(data)
	if doc == nil {
		s.Doc = diagram.NewDocument()
		s.Groups = groups.NewManager()
		s.History.Clear()
		s.History.Capture(s.Doc, s.Groups)
		s.Render()
		s.diagnose("document unreadable; starting empty")
		return errs[0]
	}
	for _, err := range errs {
		s.diagnose("skipped layer: " + err.Error())
	}

	s.Doc = doc
	s.Groups = groups.NewManager()
	for _, g := range grp {
		s.Groups.Group(g)
	}

	// Serialized records carry anchors, not cells; run a raster pass.
	for _, l := range s.Doc.Sorted() {
		l.Redraw(s.Doc, s.Grid)
	}
	s.tidy()
	s.History.Clear()
	s.History.Capture(s.Doc, s.Groups)
	s.Render()
	s.persist()
	return nil
}

// Encode serializes the current document and groups.
func (s *Session) Encode() ([]byte, error) {
	return diagram.Encode(s.Doc, s.Groups.Groups())
}

// LoadAutosave restores the autosave slot from the attached store, if both
// exist.
func (s *Session) LoadAutosave() error {
	if s.store == nil {
		return nil
	}
	data, err := s.store.Load(AutosaveName)
	if err != nil || len(data) == 0 {
		return err
	}
	return s.Load(data)
}

// sortedSelection returns the selected layers plus, for selected tables,
// their embedded text layers; the result is id-ordered and deduplicated.
func (s *Session) sortedSelection() []*diagram.Layer {
	seen := make(map[int]bool)
	var out []*diagram.Layer
	add := func(id int) {
		if seen[id] {
			return
		}
		if l, ok := s.Doc.Layer(id); ok {
			seen[id] = true
			out = append(out, l)
		}
	}
	for _, id := range s.SelectedIDs() {
		add(id)
		l, _ := s.Doc.Layer(id)
		if l.Table != nil {
			for _, childID := range l.Table.CellText {
				add(childID)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
