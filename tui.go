package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"sketch/diagram"
	"sketch/export"
	"sketch/geometry"
	"sketch/grid"
	"sketch/session"
	"sketch/shape"
)

// tool is the active editing mode of the TUI. The shape tools map a
// press-drag-release gesture onto one created layer.
type tool int

const (
	toolSelect tool = iota
	toolFreeLine
	toolStepLine
	toolSwitchLine
	toolCircle
	toolDiamond
	toolSquare
	toolTable
	toolText
	toolPaint
)

func (t tool) String() string {
	switch t {
	case toolFreeLine:
		return "line"
	case toolStepLine:
		return "step"
	case toolSwitchLine:
		return "switch"
	case toolCircle:
		return "circle"
	case toolDiamond:
		return "diamond"
	case toolSquare:
		return "box"
	case toolTable:
		return "table"
	case toolText:
		return "text"
	case toolPaint:
		return "paint"
	default:
		return "select"
	}
}

func (t tool) kind() shape.Kind {
	switch t {
	case toolFreeLine:
		return shape.KindFreeLine
	case toolStepLine:
		return shape.KindStepLine
	case toolSwitchLine:
		return shape.KindSwitchLine
	case toolCircle:
		return shape.KindCircle
	case toolDiamond:
		return shape.KindDiamond
	case toolSquare:
		return shape.KindSquare
	case toolTable:
		return shape.KindTable
	}
	return ""
}

type tuiEditor struct {
	screen tcell.Screen
	sess   *session.Session
	matrix *grid.MatrixGrid
	cfg    *Config
	store  session.Store
	name   string

	tool   tool
	style  shape.Style
	brush  rune
	status string

	// drag state
	dragging    bool
	dragAnchor  geometry.Point
	dragLast    geometry.Point
	resizing    *diagram.Layer
	resizeIdx   int
	paintLayer  *diagram.Layer
	areaSelect  bool
	areaAdd     bool
	moveStarted bool

	textLayer *diagram.Layer
}

// runInteractive opens the terminal editor. data, when non-nil, is a
// serialized document to start from.
func runInteractive(cfg *Config, store session.Store, data []byte, name string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.EnableMouse()
	screen.HideCursor()

	m := grid.NewMatrixGrid(cfg.GridWidth, cfg.GridHeight)
	sess := session.New(m)
	if store != nil {
		sess.SetStore(store)
	}

	e := &tuiEditor{
		screen: screen,
		sess:   sess,
		matrix: m,
		cfg:    cfg,
		store:  store,
		name:   name,
		brush:  '*',
	}
	sess.Diagnose = func(msg string) { e.status = msg }

	if data != nil {
		if err := sess.Load(data); err != nil {
			e.status = fmt.Sprintf("load failed: %v", err)
		}
	} else if store != nil {
		sess.LoadAutosave()
	}
	sess.Render()

	return e.loop()
}

func (e *tuiEditor) loop() error {
	for {
		e.draw()
		ev := e.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventKey:
			if e.textLayer != nil {
				if e.handleTextKey(ev) {
					continue
				}
			}
			if quit := e.handleKey(ev); quit {
				return nil
			}
		case *tcell.EventMouse:
			e.handleMouse(ev)
		}
	}
}

// stateStyles maps cell display states to terminal styles.
func stateStyle(st diagram.CellState) tcell.Style {
	base := tcell.StyleDefault
	switch st {
	case diagram.StateSelected:
		return base.Reverse(true)
	case diagram.StateJoint:
		return base.Foreground(tcell.ColorYellow).Bold(true)
	case diagram.StateNearJoint:
		return base.Foreground(tcell.ColorYellow)
	case diagram.StateResizable:
		return base.Foreground(tcell.ColorGreen).Bold(true)
	default:
		return base
	}
}

func (e *tuiEditor) draw() {
	e.screen.Clear()
	sw, sh := e.screen.Size()
	gw, gh := e.matrix.Size()

	for y := 0; y < gh && y < sh-1; y++ {
		for x := 0; x < gw && x < sw; x++ {
			p := geometry.Point{X: x, Y: y}
			ch, _ := e.matrix.Get(p)
			e.screen.SetContent(x, y, ch, nil, stateStyle(e.matrix.State(p)))
		}
	}

	bar := fmt.Sprintf(" %s | form:%s", e.tool, e.style.Form)
	if e.style.ArrowFrom || e.style.ArrowTo {
		bar += " | arrows:"
		if e.style.ArrowFrom {
			bar += "<"
		}
		if e.style.ArrowTo {
			bar += ">"
		}
	}
	if e.tool == toolPaint {
		bar += fmt.Sprintf(" | brush:%c", e.brush)
	}
	if n := len(e.sess.SelectedIDs()); n > 0 {
		bar += fmt.Sprintf(" | %d selected", n)
	}
	if e.textLayer != nil {
		bar = " editing text (Esc to finish)"
	}
	if e.status != "" {
		bar += " | " + e.status
	}
	barStyle := tcell.StyleDefault.Reverse(true)
	for x := 0; x < sw; x++ {
		ch := ' '
		if x < len([]rune(bar)) {
			ch = []rune(bar)[x]
		}
		e.screen.SetContent(x, sh-1, ch, nil, barStyle)
	}
	e.screen.Show()
}

func (e *tuiEditor) handleKey(ev *tcell.EventKey) (quit bool) {
	e.status = ""
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if e.tool != toolSelect {
			e.tool = toolSelect
		} else {
			e.sess.ClearSelection()
			e.sess.Render()
		}
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		e.sess.DeleteSelection()
		return false
	case tcell.KeyUp:
		e.sess.MoveSelection(0, -1)
		return false
	case tcell.KeyDown:
		e.sess.MoveSelection(0, 1)
		return false
	case tcell.KeyLeft:
		e.sess.MoveSelection(-1, 0)
		return false
	case tcell.KeyRight:
		e.sess.MoveSelection(1, 0)
		return false
	}

	if e.tool == toolPaint && ev.Key() == tcell.KeyRune {
		// Any printable key sets the paint brush, except tool switches
		// reached through Escape.
		r := ev.Rune()
		switch r {
		case 'q':
		default:
			e.brush = r
			return false
		}
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'l':
		e.tool = toolFreeLine
	case 's':
		e.tool = toolStepLine
	case 'z':
		e.tool = toolSwitchLine
	case 'c':
		e.tool = toolCircle
	case 'v':
		e.tool = toolDiamond
	case 'b':
		e.tool = toolSquare
	case 'T':
		e.tool = toolTable
	case 't':
		e.tool = toolText
	case 'p':
		e.tool = toolPaint
	case 'f':
		e.style.Form = (e.style.Form + 1) % 4
	case 'a':
		e.style.ArrowTo = !e.style.ArrowTo
	case 'A':
		e.style.ArrowFrom = !e.style.ArrowFrom
	case 'u':
		if !e.sess.Undo() {
			e.status = "nothing to undo"
		}
	case 'r':
		if !e.sess.Redo() {
			e.status = "nothing to redo"
		}
	case 'd':
		if len(e.sess.DuplicateSelection()) == 0 {
			e.status = "nothing to duplicate"
		}
	case 'g':
		if !e.sess.GroupSelection() {
			e.status = "select two or more shapes to group"
		}
	case 'G':
		e.sess.UngroupSelection()
	case ']':
		e.sess.BringForward()
	case '[':
		e.sess.SendBackward()
	case '}':
		e.sess.BringToFront()
	case '{':
		e.sess.SendToBack()
	case 'w':
		e.save()
	case 'y':
		e.copySelection()
	}
	return false
}

// save writes the document to the configured store under the session name.
func (e *tuiEditor) save() {
	if e.store == nil {
		e.status = "no storage configured (see ~/.sketchrc)"
		return
	}
	data, err := e.sess.Encode()
	if err != nil {
		e.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	if err := e.store.Save(e.name, data); err != nil {
		e.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	e.status = fmt.Sprintf("saved %q", e.name)
}

// copySelection puts the plain-text rendering of the document on the
// system clipboard.
func (e *tuiEditor) copySelection() {
	out, err := export.NewTextExporter().Export(e.sess.Doc)
	if err != nil {
		e.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	if err := writeClipboardText(string(out)); err != nil {
		e.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	e.status = "copied to clipboard"
}

// handleTextKey routes keystrokes into the text layer under edit. Returns
// true when the event was consumed.
func (e *tuiEditor) handleTextKey(ev *tcell.EventKey) bool {
	l := e.textLayer
	switch ev.Key() {
	case tcell.KeyEscape:
		e.textLayer = nil
		e.sess.Render()
		return true
	case tcell.KeyEnter:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.InsertBreak() })
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.Backspace() })
		return true
	case tcell.KeyDelete:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.Delete() })
		return true
	case tcell.KeyLeft:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.CursorLeft() })
		return true
	case tcell.KeyRight:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.CursorRight() })
		return true
	case tcell.KeyUp:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.CursorUp() })
		return true
	case tcell.KeyDown:
		e.sess.EditText(l, func(t *diagram.TextContent) { t.CursorDown() })
		return true
	case tcell.KeyCtrlV:
		if text, err := readClipboardText(); err == nil && text != "" {
			e.sess.EditText(l, func(t *diagram.TextContent) { t.Paste(text) })
		}
		return true
	case tcell.KeyRune:
		r := ev.Rune()
		e.sess.EditText(l, func(t *diagram.TextContent) { t.Insert(r) })
		return true
	}
	return false
}

func (e *tuiEditor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, sh := e.screen.Size()
	if y >= sh-1 {
		return
	}
	p := geometry.Point{X: x, Y: y}
	additive := ev.Modifiers()&tcell.ModShift != 0

	switch {
	case ev.Buttons()&tcell.Button1 != 0 && !e.dragging:
		e.beginDrag(p, additive)
	case ev.Buttons()&tcell.Button1 != 0 && e.dragging:
		e.continueDrag(p)
	case e.dragging:
		e.endDrag(p)
	}
}

func (e *tuiEditor) beginDrag(p geometry.Point, additive bool) {
	e.dragging = true
	e.dragAnchor = p
	e.dragLast = p
	e.status = ""

	switch e.tool {
	case toolSelect:
		// A press on a resize handle of an already-selected layer starts
		// a resize drag instead of a move.
		if l, idx := e.handleAt(p); l != nil {
			e.resizing = l
			e.resizeIdx = idx
			return
		}
		if hit := e.sess.SelectAt(p, additive); hit != nil {
			e.moveStarted = true
		} else {
			e.areaSelect = true
			e.areaAdd = additive
		}
		e.sess.Render()
	case toolText:
		if l := e.sess.AddText(p); l != nil {
			e.textLayer = l
		}
		e.tool = toolSelect
	case toolPaint:
		if e.paintLayer == nil {
			e.paintLayer = e.sess.Doc.NewLayer(shape.KindFree)
			e.paintLayer.From, e.paintLayer.To = p, p
		} else if _, ok := e.sess.Doc.Layer(e.paintLayer.ID); !ok {
			e.paintLayer = e.sess.Doc.NewLayer(shape.KindFree)
			e.paintLayer.From, e.paintLayer.To = p, p
		}
		e.sess.PaintFree(e.paintLayer, p, e.brush)
	}
}

func (e *tuiEditor) continueDrag(p geometry.Point) {
	if p == e.dragLast {
		return
	}
	switch {
	case e.resizing != nil:
		e.sess.ResizeLayer(e.resizing, e.resizeIdx, p)
	case e.moveStarted:
		e.sess.MoveSelection(p.X-e.dragLast.X, p.Y-e.dragLast.Y)
	case e.tool == toolPaint && e.paintLayer != nil:
		e.sess.PaintFreeSegment(e.paintLayer, p, e.brush)
	}
	e.dragLast = p
}

func (e *tuiEditor) endDrag(p geometry.Point) {
	defer func() {
		e.dragging = false
		e.resizing = nil
		e.moveStarted = false
		e.areaSelect = false
	}()

	switch {
	case e.areaSelect:
		tl, br := shape.Normalize(e.dragAnchor, p)
		e.sess.SelectArea(geometry.Bounds{Min: tl, Max: br.Add(1, 1)}, e.areaAdd)
		e.sess.Render()
	case e.tool == toolPaint:
		if e.paintLayer != nil {
			e.sess.TriggerChanged()
		}
	case e.tool != toolSelect && e.tool != toolText:
		if kind := e.tool.kind(); kind != "" {
			if l := e.sess.AddShape(kind, e.dragAnchor, p, e.style); l == nil {
				e.status = "shape does not fit on the grid"
			}
		}
	}
}

// handleAt returns the selected layer owning a resize handle at p, if any.
func (e *tuiEditor) handleAt(p geometry.Point) (*diagram.Layer, int) {
	for _, id := range e.sess.SelectedIDs() {
		l, ok := e.sess.Doc.Layer(id)
		if !ok {
			continue
		}
		for i, h := range l.Handles() {
			if h == p {
				return l, i
			}
		}
	}
	return nil, -1
}
