package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/interact"
	"github.com/matzehuels/snapboard/pkg/shape"
)

func newTestEditor(t *testing.T) (EditorModel, *CLI, string) {
	t.Helper()
	c := newTestCLI(t)
	path := writeTestDocument(t)
	opts := editorOptions(c.cfg.Interaction())
	s, err := c.openSession(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	m := NewEditorModel(context.Background(), c.cfg, s, opts)
	m.Width, m.Height = 80, 24
	return m, c, path
}

func send(t *testing.T, m EditorModel, msgs ...tea.Msg) EditorModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(EditorModel)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: action, Button: tea.MouseButtonLeft}
}

// drag presses at one cell, moves to another and releases there.
func drag(col0, row0, col1, row1 int) []tea.Msg {
	return []tea.Msg{
		mouse(tea.MouseActionPress, col0, row0),
		tea.MouseMsg{X: col1, Y: row1, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone},
		tea.MouseMsg{X: col1, Y: row1, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
	}
}

func editorShape(t *testing.T, m EditorModel, id string) *shape.Shape {
	t.Helper()
	s, ok := m.sess.ctrl.Scene().Shape(id)
	if !ok {
		t.Fatalf("shape %s missing", id)
	}
	return s
}

func TestCellPoint(t *testing.T) {
	if got := cellPoint(0, 0); got != geom.Pt(4, 8) {
		t.Errorf("cellPoint(0,0) = %v", got)
	}
	if got := cellPoint(3, 2); got != geom.Pt(28, 40) {
		t.Errorf("cellPoint(3,2) = %v", got)
	}
}

func TestEditorInitialView(t *testing.T) {
	m, _, _ := newTestEditor(t)
	v := m.sess.ctrl.View()
	if v.Scale != 1 || v.OffsetX != cellW || v.OffsetY != cellH {
		t.Errorf("view = %+v", v)
	}
}

func TestEditorMoveUndoRedo(t *testing.T) {
	m, _, _ := newTestEditor(t)

	// Cell (6,3) is world (44,40), inside a; ten cells right is +80.
	m = send(t, m, drag(6, 3, 16, 3)...)
	if got := editorShape(t, m, "a").Position(); got != geom.Pt(80, 0) {
		t.Fatalf("after drag a at %v, want (80,0)", got)
	}
	if !m.Dirty || !strings.HasPrefix(m.Status, "moved") {
		t.Errorf("dirty=%v status=%q", m.Dirty, m.Status)
	}
	if m.sess.ctrl.State() != interact.StateIdle {
		t.Error("controller still dragging")
	}

	m = send(t, m, key("u"))
	if got := editorShape(t, m, "a").Position(); got != geom.Pt(0, 0) {
		t.Errorf("after undo a at %v", got)
	}
	m = send(t, m, key("U"))
	if got := editorShape(t, m, "a").Position(); got != geom.Pt(80, 0) {
		t.Errorf("after redo a at %v", got)
	}
	if v := m.sess.ctrl.View(); v.OffsetX != cellW {
		t.Errorf("view lost across undo: %+v", v)
	}
}

func TestEditorSave(t *testing.T) {
	m, c, path := newTestEditor(t)
	m = send(t, m, drag(6, 3, 16, 3)...)
	m = send(t, m, key("s"))
	if m.Dirty || !m.Saved {
		t.Errorf("dirty=%v saved=%v", m.Dirty, m.Saved)
	}
	if got := shapeAt(t, c, path, "a").Position(); got != geom.Pt(80, 0) {
		t.Errorf("saved a at %v", got)
	}
}

func TestEditorCreate(t *testing.T) {
	m, _, _ := newTestEditor(t)
	m = send(t, m, key("r"))
	if k, ok := m.sess.ctrl.Armed(); !ok || k != shape.KindRectangle {
		t.Fatalf("armed = %v %v", k, ok)
	}
	m = send(t, m, mouse(tea.MouseActionPress, 60, 12), tea.MouseMsg{X: 60, Y: 12, Action: tea.MouseActionRelease})
	sc := m.sess.ctrl.Scene()
	if sc.Len() != 3 {
		t.Fatalf("shapes = %d, want 3", sc.Len())
	}
	created := sc.Shapes()[2]
	if created.Kind() != shape.KindRectangle {
		t.Errorf("created kind = %s", created.Kind())
	}
	if w, h := created.Size(); w != 120 || h != 80 {
		t.Errorf("click-created size = %gx%g", w, h)
	}
}

func TestEditorDelete(t *testing.T) {
	m, _, _ := newTestEditor(t)
	m = send(t, m, key("x"))
	if m.Status != "nothing selected" {
		t.Errorf("status = %q", m.Status)
	}

	m.sess.ctrl.Scene().Select("b")
	m = send(t, m, key("x"))
	sc := m.sess.ctrl.Scene()
	if _, ok := sc.Shape("b"); ok {
		t.Fatal("b not deleted")
	}
	if len(sc.Links()) != 0 {
		t.Error("link to deleted shape kept")
	}

	m = send(t, m, key("u"))
	if _, ok := m.sess.ctrl.Scene().Shape("b"); !ok {
		t.Error("undo did not restore b")
	}
}

func TestEditorKeys(t *testing.T) {
	m, _, _ := newTestEditor(t)

	m = send(t, m, key("g"))
	if m.opts.Snap.Grid {
		t.Error("g should turn grid snapping off")
	}
	m = send(t, m, key("n"))
	if m.opts.Snap.Shapes {
		t.Error("n should turn shape snapping off")
	}

	m = send(t, m, key("+"))
	if s := m.sess.ctrl.View().Scale; s != zoomStep {
		t.Errorf("scale = %v", s)
	}
	m = send(t, m, key("-"))
	if s := m.sess.ctrl.View().Scale; s != 1 {
		t.Errorf("scale = %v", s)
	}

	before := m.sess.ctrl.View()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.sess.ctrl.View().OffsetX; got != before.OffsetX-4*cellW {
		t.Errorf("pan right offset = %v", got)
	}

	m = send(t, m, key("e"), tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.sess.ctrl.Armed(); ok {
		t.Error("esc should disarm")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestEditorNoSnapMove(t *testing.T) {
	m, _, _ := newTestEditor(t)
	m = send(t, m, key("g"), key("n"))
	// Twelve cells right is +96, which would snap to a grid or edge line
	// with snapping on.
	m = send(t, m, drag(6, 3, 18, 3)...)
	if got := editorShape(t, m, "a").Position(); got != geom.Pt(96, 0) {
		t.Errorf("a at %v, want (96,0)", got)
	}
}

func TestDrawScene(t *testing.T) {
	m, _, _ := newTestEditor(t)
	sc := m.sess.ctrl.Scene()
	cv := drawScene(sc, m.sess.ctrl.View(), 60, 12)

	// a's top-left corner lands on screen (8,16), cell (1,1).
	if c := cv.cells[1*cv.w+1]; c.style != styleOutline {
		t.Errorf("corner cell = %+v", c)
	}

	sc.Select("a")
	cv = drawScene(sc, m.sess.ctrl.View(), 60, 12)
	handles := 0
	for _, c := range cv.cells {
		if c.style == styleHandle {
			handles++
		}
	}
	if handles == 0 {
		t.Error("selected shape drew no handles")
	}

	out := cv.render()
	if n := strings.Count(out, "\n"); n != 11 {
		t.Errorf("rendered rows = %d", n+1)
	}
}

func TestEditorView(t *testing.T) {
	m, _, path := newTestEditor(t)
	v := m.View()
	for _, want := range []string{path, "tool:", "select", "q quit"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
