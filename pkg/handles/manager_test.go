package handles

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
)

type failingCommitter struct{ calls int }

func (f *failingCommitter) Commit(context.Context, scene.Document) error {
	f.calls++
	return errors.New("disk full")
}

func setup(t *testing.T, opts Options) (*scene.Scene, *scene.Recorder, *history.Journal, *Manager, *shape.Shape) {
	t.Helper()
	sc := scene.New()
	rec := &scene.Recorder{}
	sc.SetRedrawer(rec)
	s := shape.NewBox(shape.KindRectangle, geom.Rect{Width: 100, Height: 80})
	if err := sc.Add(s); err != nil {
		t.Fatal(err)
	}
	j := history.NewJournal(history.NewMemoryStore())
	m := NewManager(sc, j, opts)
	m.CreateHandles(s)
	return sc, rec, j, m, s
}

func visibleRoles(s *shape.Shape) []shape.Role {
	var out []shape.Role
	for _, h := range s.Handles().All() {
		if h.Visible {
			out = append(out, h.Role)
		}
	}
	return out
}

func revisions(t *testing.T, j *history.Journal) int {
	t.Helper()
	revs, _, err := j.Revisions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return len(revs)
}

func TestCreateHandlesHidden(t *testing.T) {
	_, _, _, _, s := setup(t, Options{})
	if got := s.Handles().Len(); got != 9 {
		t.Fatalf("handles = %d, want 9", got)
	}
	if v := visibleRoles(s); len(v) != 0 {
		t.Errorf("visible before hover: %v", v)
	}
}

func TestHoverVisibility(t *testing.T) {
	sc, rec, _, m, s := setup(t, Options{})
	m.Hover(s, true)
	if len(visibleRoles(s)) != 9 {
		t.Errorf("hovered: visible = %v", visibleRoles(s))
	}
	if !rec.Take().Has(scene.LayerHandles) {
		t.Error("hover should redraw handles")
	}

	other := shape.NewBox(shape.KindEllipse, geom.Rect{X: 200, Width: 50, Height: 50})
	_ = sc.Add(other)
	m.CreateHandles(other)
	m.Hover(other, true)
	if len(visibleRoles(s)) != 0 {
		t.Error("hover moved away but first shape still shows handles")
	}
	if len(visibleRoles(other)) != 9 {
		t.Error("second shape should show handles")
	}

	m.Hover(other, false)
	if sc.Hovered() != "" || len(visibleRoles(other)) != 0 {
		t.Error("hover off should hide handles")
	}
}

func TestDragBottomRight(t *testing.T) {
	_, rec, j, m, s := setup(t, Options{})
	m.Hover(s, true)
	h, _ := s.Handles().Get(shape.RoleBottomRight)
	d, ok := m.Begin(s, h, geom.Pt(100, 80), geom.Identity())
	if !ok {
		t.Fatal("Begin refused")
	}
	if !d.Snapshot.Valid() {
		t.Fatal("snapshot not captured")
	}
	if v := visibleRoles(s); len(v) != 1 || v[0] != shape.RoleBottomRight {
		t.Errorf("while dragging visible = %v", v)
	}
	rec.Take()

	m.Move(geom.Pt(150, 120))
	if w, h := s.Size(); w != 150 || h != 120 {
		t.Errorf("size = %vx%v, want 150x120", w, h)
	}
	if got := rec.Take(); !got.Has(scene.LayerHandles | scene.LayerLinks | scene.LayerPreview) {
		t.Errorf("move redraw = %v", got)
	}
	if p := s.Position(); p != (geom.Point{}) {
		t.Errorf("position moved to %v", p)
	}

	if err := m.End(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, active := m.Active(); active {
		t.Error("drag still active after End")
	}
	if d.Snapshot.Valid() {
		t.Error("snapshot not discarded")
	}
	if revisions(t, j) != 1 {
		t.Errorf("revisions = %d, want 1", revisions(t, j))
	}
	if len(visibleRoles(s)) != 9 {
		t.Error("visibility not restored to hovered state")
	}
	cur, _, _ := j.Current(context.Background())
	if cur.Label != "resize" {
		t.Errorf("label = %q", cur.Label)
	}
}

func TestNestedBeginIgnored(t *testing.T) {
	_, _, _, m, s := setup(t, Options{})
	br, _ := s.Handles().Get(shape.RoleBottomRight)
	tl, _ := s.Handles().Get(shape.RoleTopLeft)
	if _, ok := m.Begin(s, br, geom.Pt(100, 80), geom.Identity()); !ok {
		t.Fatal("first Begin refused")
	}
	if _, ok := m.Begin(s, tl, geom.Pt(0, 0), geom.Identity()); ok {
		t.Error("nested Begin accepted")
	}
	d, _ := m.Active()
	if d.Target.Role != shape.RoleBottomRight {
		t.Errorf("active role = %s", d.Target.Role)
	}
}

func TestEndWithoutChangeSkipsCommit(t *testing.T) {
	_, _, j, m, s := setup(t, Options{})
	h, _ := s.Handles().Get(shape.RoleRight)
	m.Begin(s, h, geom.Pt(100, 40), geom.Identity())
	if err := m.End(context.Background()); err != nil {
		t.Fatal(err)
	}
	if revisions(t, j) != 0 {
		t.Error("click without move should not commit")
	}
}

func TestEndHistoryFailure(t *testing.T) {
	sc := scene.New()
	s := shape.NewBox(shape.KindRectangle, geom.Rect{Width: 100, Height: 80})
	_ = sc.Add(s)
	fc := &failingCommitter{}
	m := NewManager(sc, fc, Options{})
	m.CreateHandles(s)

	h, _ := s.Handles().Get(shape.RoleBottom)
	m.Begin(s, h, geom.Pt(50, 80), geom.Identity())
	m.Move(geom.Pt(50, 100))
	if err := m.End(context.Background()); err == nil {
		t.Error("expected commit error")
	}
	if fc.calls != 1 {
		t.Errorf("commit calls = %d", fc.calls)
	}
	if _, active := m.Active(); active {
		t.Error("drag must end even when history fails")
	}
	if _, h := s.Size(); h != 100 {
		t.Errorf("height = %v, want 100", h)
	}
}

func TestResizeSnap(t *testing.T) {
	tests := []struct {
		name         string
		snap         bool
		pointer      geom.Point
		wantW, wantH float64
	}{
		{"off", false, geom.Pt(158, 122), 158, 122},
		{"grid", true, geom.Pt(158, 122), 160, 120},
		{"out of reach", true, geom.Pt(150, 130), 150, 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, m, s := setup(t, Options{ResizeSnap: tt.snap, Threshold: 5})
			h, _ := s.Handles().Get(shape.RoleBottomRight)
			m.Begin(s, h, geom.Pt(100, 80), geom.Identity())
			m.Move(tt.pointer)
			if w, h := s.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRotateHandle(t *testing.T) {
	_, _, j, m, s := setup(t, Options{AngleStep: 15})
	h, _ := s.Handles().Get(shape.RoleRotate)
	m.Begin(s, h, geom.Pt(50, -24), geom.Identity())
	// pointer straight right of center (50,40)
	m.Move(geom.Pt(200, 41))
	if got := s.Rotation(); got != 90 {
		t.Errorf("rotation = %v, want 90", got)
	}
	_ = m.End(context.Background())
	cur, _, _ := j.Current(context.Background())
	if cur.Label != "rotate" {
		t.Errorf("label = %q", cur.Label)
	}
}

func TestPolylineDragVisibility(t *testing.T) {
	sc := scene.New()
	s := shape.NewPolyline(geom.Pt(0, 0), geom.Pt(100, 0))
	_ = sc.Add(s)
	m := NewManager(sc, nil, Options{})
	m.CreateHandles(s)

	var bend shape.Handle
	for _, h := range s.Handles().All() {
		if h.Role == shape.RoleManual {
			bend = h
		}
	}
	if bend.Role != shape.RoleManual {
		t.Fatal("no bend placeholder")
	}
	m.Begin(s, bend, geom.Pt(50, 0), geom.Identity())
	m.Move(geom.Pt(50, 40))

	got := map[shape.Role]int{}
	for _, h := range s.Handles().All() {
		if h.Visible {
			got[h.Role]++
		}
	}
	if got[shape.RoleStart] != 1 || got[shape.RoleEnd] != 1 || got[shape.RoleManual] != 1 {
		t.Errorf("visible while bending = %v", got)
	}
	if err := m.End(context.Background()); err != nil {
		t.Errorf("End with nil history: %v", err)
	}
	if len(s.Bends()) != 3 {
		t.Errorf("bends after commit = %d, want 3", len(s.Bends()))
	}
}

func TestBindDragCustom(t *testing.T) {
	_, _, j, m, s := setup(t, Options{})
	h, _ := s.Handles().Get(shape.RoleTop)
	var started, moved, ended int
	m.BindDrag(s, h,
		func(*Drag) { started++ },
		func(d *Drag) { moved += d.Frames },
		func(context.Context, *Drag) error { ended++; return nil },
	)
	m.Begin(s, h, geom.Pt(50, 0), geom.Identity())
	m.Move(geom.Pt(50, -10))
	m.Move(geom.Pt(50, -20))
	_ = m.End(context.Background())

	if started != 1 || moved != 3 || ended != 1 {
		t.Errorf("callbacks start=%d move=%d end=%d", started, moved, ended)
	}
	if _, h := s.Size(); h != 80 {
		t.Error("custom binding should replace the standard adjuster")
	}
	if revisions(t, j) != 0 {
		t.Error("custom end should not commit")
	}
}

func TestForget(t *testing.T) {
	_, _, _, m, s := setup(t, Options{})
	m.Forget(s.ID())
	if len(m.bindings) != 0 {
		t.Errorf("bindings left = %d", len(m.bindings))
	}
	// unbound handles still get the standard behavior
	h, _ := s.Handles().Get(shape.RoleRight)
	m.Begin(s, h, geom.Pt(100, 40), geom.Identity())
	m.Move(geom.Pt(130, 40))
	if w, _ := s.Size(); w != 130 {
		t.Errorf("width = %v", w)
	}
}

func TestMoveWithoutDrag(t *testing.T) {
	_, _, _, m, _ := setup(t, Options{})
	if m.Move(geom.Pt(1, 1)) {
		t.Error("Move without drag reported true")
	}
	if err := m.End(context.Background()); err != nil {
		t.Error(err)
	}
}
