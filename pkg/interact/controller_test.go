package interact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/observability"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

type gestureLog struct {
	started, ended, ignored []string
	frames                  int
}

func (g *gestureLog) OnGestureStart(_ context.Context, kind, _ string) {
	g.started = append(g.started, kind)
}

func (g *gestureLog) OnGestureEnd(_ context.Context, kind, _ string, frames int, _ time.Duration) {
	g.ended = append(g.ended, kind)
	g.frames += frames
}

func (g *gestureLog) OnGestureIgnored(_ context.Context, kind string) {
	g.ignored = append(g.ignored, kind)
}

type snapLog struct{ sources []string }

func (s *snapLog) OnSnap(_ context.Context, axis, source string, _ float64, _ int) {
	s.sources = append(s.sources, axis+":"+source)
}

type brokenHistory struct{}

func (brokenHistory) Commit(context.Context, scene.Document) error { return errors.New("offline") }

type fixture struct {
	sc   *scene.Scene
	rec  *scene.Recorder
	j    *history.Journal
	c    *Controller
	a, b *shape.Shape
}

// newFixture builds a scene with a at (0,0) and b at (200,0), both 100x80.
func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	sc := scene.New()
	rec := &scene.Recorder{}
	sc.SetRedrawer(rec)
	a := shape.NewBox(shape.KindRectangle, geom.Rect{Width: 100, Height: 80})
	b := shape.NewBox(shape.KindRectangle, geom.Rect{X: 200, Width: 100, Height: 80})
	for _, s := range []*shape.Shape{a, b} {
		if err := sc.Add(s); err != nil {
			t.Fatal(err)
		}
	}
	j := history.NewJournal(history.NewMemoryStore())
	return &fixture{sc: sc, rec: rec, j: j, c: New(sc, j, opts), a: a, b: b}
}

func (f *fixture) revisions(t *testing.T) int {
	t.Helper()
	revs, _, err := f.j.Revisions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return len(revs)
}

func hooks(t *testing.T) (*gestureLog, *snapLog) {
	t.Helper()
	g, s := &gestureLog{}, &snapLog{}
	observability.SetGestureHooks(g)
	observability.SetSnapHooks(s)
	t.Cleanup(observability.Reset)
	return g, s
}

func TestResizeGesture(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	g, _ := hooks(t)

	if id := f.c.Hover(ctx, geom.Pt(50, 40)); id != f.a.ID() {
		t.Fatalf("hover = %q", id)
	}
	if got := f.c.PointerDown(ctx, geom.Pt(100, 80)); got != GestureResize {
		t.Fatalf("gesture = %v, want resize", got)
	}
	if f.c.State() != StateDragging {
		t.Fatal("not dragging")
	}
	f.c.PointerMove(ctx, geom.Pt(150, 120))
	if w, h := f.a.Size(); w != 150 || h != 120 {
		t.Errorf("size = %vx%v", w, h)
	}
	f.rec.Take()
	if err := f.c.PointerUp(ctx, geom.Pt(150, 120)); err != nil {
		t.Fatal(err)
	}
	if f.c.State() != StateIdle || f.c.Gesture() != GestureNone {
		t.Error("not idle after pointer-up")
	}
	if got := f.rec.Take(); !got.Has(scene.LayerLinks | scene.LayerPreview | scene.LayerGuides) {
		t.Errorf("cleanup redraw = %v", got)
	}
	if f.revisions(t) != 1 {
		t.Errorf("revisions = %d", f.revisions(t))
	}
	if len(g.started) != 1 || g.started[0] != "resize" || len(g.ended) != 1 || g.frames != 1 {
		t.Errorf("hooks = %+v", g)
	}
}

func TestZoomedResize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	f.c.SetView(geom.ViewTransform{Scale: 2})
	f.sc.Select(f.a.ID())

	if got := f.c.PointerDown(ctx, geom.Pt(200, 160)); got != GestureResize {
		t.Fatalf("gesture = %v", got)
	}
	f.c.PointerMove(ctx, geom.Pt(300, 240))
	_ = f.c.PointerUp(ctx, geom.Pt(300, 240))
	if w, h := f.a.Size(); w != 150 || h != 120 {
		t.Errorf("size = %vx%v, want 150x120", w, h)
	}
}

func TestNestedPointerDownIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	g, _ := hooks(t)

	f.c.PointerDown(ctx, geom.Pt(250, 40))
	if got := f.c.PointerDown(ctx, geom.Pt(50, 40)); got != GestureNone {
		t.Errorf("nested down started %v", got)
	}
	if f.c.Gesture() != GestureMove {
		t.Errorf("gesture changed to %v", f.c.Gesture())
	}
	if len(g.ignored) != 1 || g.ignored[0] != "move" {
		t.Errorf("ignored = %v", g.ignored)
	}
	if f.sc.IsSelected(f.a.ID()) {
		t.Error("nested down changed the selection")
	}
}

func TestMoveSnapsToNode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{Snap: snap.AllFlags()})
	_, sl := hooks(t)

	if got := f.c.PointerDown(ctx, geom.Pt(250, 40)); got != GestureMove {
		t.Fatalf("gesture = %v", got)
	}
	f.c.PointerMove(ctx, geom.Pt(153, 40))
	if p := f.b.Position(); p != geom.Pt(100, 0) {
		t.Errorf("position = %v, want (100,0)", p)
	}
	if f.sc.Overlay().Len() == 0 {
		t.Error("no guides while aligned")
	}
	if res := f.c.LastSnap(); res.X != snap.SourceNode {
		t.Errorf("x source = %v", res.X)
	}
	if len(sl.sources) == 0 || sl.sources[0] != "x:node" {
		t.Errorf("snap hooks = %v", sl.sources)
	}

	_ = f.c.PointerUp(ctx, geom.Pt(153, 40))
	if f.sc.Overlay().Len() != 0 {
		t.Error("guides survive pointer-up")
	}
	if f.revisions(t) != 1 {
		t.Errorf("revisions = %d", f.revisions(t))
	}
}

func TestMoveWithoutSnap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	f.c.PointerDown(ctx, geom.Pt(250, 40))
	f.c.PointerMove(ctx, geom.Pt(153, 40))
	if p := f.b.Position(); p != geom.Pt(103, 0) {
		t.Errorf("position = %v, want (103,0)", p)
	}
	if f.sc.Overlay().Len() != 0 {
		t.Error("guides with snapping off")
	}
	_ = f.c.PointerUp(ctx, geom.Pt(153, 40))
}

func TestGroupMoveSnapsUnionToGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{Snap: snap.Flags{Grid: true}})
	f.sc.Select(f.a.ID(), f.b.ID())

	if got := f.c.PointerDown(ctx, geom.Pt(50, 40)); got != GestureMove {
		t.Fatalf("gesture = %v", got)
	}
	f.c.PointerMove(ctx, geom.Pt(72, 40))
	if p := f.a.Position(); p != geom.Pt(20, 0) {
		t.Errorf("a = %v, want (20,0)", p)
	}
	if p := f.b.Position(); p != geom.Pt(220, 0) {
		t.Errorf("b = %v, want (220,0)", p)
	}
	if f.sc.Overlay().Len() != 0 {
		t.Error("grid snaps draw no guides")
	}
	_ = f.c.PointerUp(ctx, geom.Pt(72, 40))
}

func TestMoveBackToStartSkipsHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{Snap: snap.Flags{Grid: true}})
	f.c.PointerDown(ctx, geom.Pt(250, 40))
	f.c.PointerMove(ctx, geom.Pt(252, 41))
	if p := f.b.Position(); p != geom.Pt(200, 0) {
		t.Fatalf("position = %v", p)
	}
	_ = f.c.PointerUp(ctx, geom.Pt(252, 41))
	if f.revisions(t) != 0 {
		t.Error("no-op move committed")
	}
}

func TestCreateGesture(t *testing.T) {
	tests := []struct {
		name  string
		kind  shape.Kind
		to    geom.Point
		wantW float64
		wantH float64
	}{
		{"drag rectangle", shape.KindRectangle, geom.Pt(110, 70), 100, 60},
		{"click ellipse", shape.KindEllipse, geom.Pt(10, 10), DefaultCreateSize.X, DefaultCreateSize.Y},
		{"drag line", shape.KindPolyline, geom.Pt(60, 10), 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sc := scene.New()
			j := history.NewJournal(history.NewMemoryStore())
			c := New(sc, j, Options{})
			c.Arm(tt.kind)

			if got := c.PointerDown(ctx, geom.Pt(10, 10)); got != GestureCreate {
				t.Fatalf("gesture = %v", got)
			}
			if _, armed := c.Armed(); armed {
				t.Error("tool still armed")
			}
			if tt.to != geom.Pt(10, 10) {
				c.PointerMove(ctx, tt.to)
			}
			if err := c.PointerUp(ctx, tt.to); err != nil {
				t.Fatal(err)
			}

			shapes := sc.Shapes()
			if len(shapes) != 1 {
				t.Fatalf("shapes = %d", len(shapes))
			}
			s := shapes[0]
			if s.Kind() != tt.kind || !sc.IsSelected(s.ID()) {
				t.Errorf("created %s selected=%v", s.Kind(), sc.IsSelected(s.ID()))
			}
			if p := s.Position(); p != geom.Pt(10, 10) {
				t.Errorf("position = %v", p)
			}
			if w, h := s.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
			if revs, _, _ := j.Revisions(ctx); len(revs) != 1 {
				t.Errorf("revisions = %d", len(revs))
			}
		})
	}
}

func TestArmInvalidKind(t *testing.T) {
	c := New(scene.New(), nil, Options{})
	c.Arm("hexagon")
	if got := c.PointerDown(context.Background(), geom.Pt(0, 0)); got != GestureNone {
		t.Errorf("gesture = %v", got)
	}
	if c.Scene().Len() != 0 {
		t.Error("shape created for unknown kind")
	}
}

func TestRotateGesture(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{AngleStep: 15})
	f.sc.Select(f.a.ID())
	knob, _ := shape.BoxPosition(shape.RoleRotate, 100, 80)

	if got := f.c.PointerDown(ctx, knob); got != GestureRotate {
		t.Fatalf("gesture = %v", got)
	}
	f.c.PointerMove(ctx, geom.Pt(50, 200))
	if got := f.a.Rotation(); got != 180 {
		t.Errorf("rotation = %v, want 180", got)
	}
	_ = f.c.PointerUp(ctx, geom.Pt(50, 200))
	if c := f.a.Center(); !c.Eq(geom.Pt(50, 40), 1e-9) {
		t.Errorf("center moved to %v", c)
	}
}

func TestPressOnEmptyCanvas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	f.sc.Select(f.a.ID(), f.b.ID())
	if got := f.c.PointerDown(ctx, geom.Pt(150, 300)); got != GestureNone {
		t.Errorf("gesture = %v", got)
	}
	if len(f.sc.Selected()) != 0 {
		t.Error("selection not cleared")
	}
	if f.c.State() != StateIdle {
		t.Error("dragging after empty press")
	}
	if err := f.c.PointerUp(ctx, geom.Pt(150, 300)); err != nil {
		t.Error(err)
	}
}

func TestHoverShowsHandles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	visible := func(s *shape.Shape) int {
		n := 0
		for _, h := range s.Handles().All() {
			if h.Visible {
				n++
			}
		}
		return n
	}

	f.c.PointerMove(ctx, geom.Pt(250, 40))
	if visible(f.b) == 0 {
		t.Error("hovered shape shows no handles")
	}
	// just outside the corner but within handle reach
	if id := f.c.Hover(ctx, geom.Pt(303, 83)); id != f.b.ID() {
		t.Errorf("hover near handle = %q", id)
	}
	if id := f.c.Hover(ctx, geom.Pt(150, 300)); id != "" {
		t.Errorf("hover on empty canvas = %q", id)
	}
	if visible(f.b) != 0 || f.sc.Hovered() != "" {
		t.Error("handles still visible after leaving")
	}
}

func TestHistoryFailureEndsGesture(t *testing.T) {
	ctx := context.Background()
	sc := scene.New()
	s := shape.NewBox(shape.KindRectangle, geom.Rect{Width: 100, Height: 80})
	_ = sc.Add(s)
	c := New(sc, brokenHistory{}, Options{})

	c.PointerDown(ctx, geom.Pt(50, 40))
	c.PointerMove(ctx, geom.Pt(60, 40))
	if err := c.PointerUp(ctx, geom.Pt(60, 40)); err == nil {
		t.Error("expected history error")
	}
	if c.State() != StateIdle {
		t.Error("still dragging after failed commit")
	}
	if p := s.Position(); p != geom.Pt(10, 0) {
		t.Errorf("position = %v", p)
	}
}

func TestRemove(t *testing.T) {
	f := newFixture(t, Options{})
	if !f.c.Remove(f.a.ID()) {
		t.Fatal("Remove failed")
	}
	if f.c.Remove(f.a.ID()) {
		t.Error("second Remove succeeded")
	}
	if f.sc.Len() != 1 {
		t.Errorf("len = %d", f.sc.Len())
	}
}

func TestGestureString(t *testing.T) {
	tests := []struct {
		g    Gesture
		want string
	}{
		{GestureNone, "none"},
		{GestureResize, "resize"},
		{GestureRotate, "rotate"},
		{GestureMove, "move"},
		{GestureCreate, "create"},
		{Gesture(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", tt.g, got, tt.want)
		}
	}
}
