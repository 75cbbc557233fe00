package snap

import (
	"math"
	"testing"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

func rect(x, y, w, h float64) geom.Rect { return geom.Rect{X: x, Y: y, Width: w, Height: h} }

func TestCandidatesSorted(t *testing.T) {
	cs := Candidates(AxisX, rect(50, 0, 20, 20), []Target{{ID: "a", Rect: rect(0, 0, 40, 10)}})
	if len(cs) != 6 {
		t.Fatalf("len = %d, want 6", len(cs))
	}
	for i := 1; i < len(cs); i++ {
		if cs[i].Value < cs[i-1].Value {
			t.Fatalf("not sorted at %d: %v", i, cs)
		}
	}
	if !cs[3].Moving() || cs[3].Feature != FeatureMin {
		t.Errorf("cs[3] = %+v, want moving min edge", cs[3])
	}
}

func TestAlreadyAlignedIsIdempotent(t *testing.T) {
	res := Compute(Request{
		Moving: rect(100, 300, 60, 40),
		Others: []Target{{ID: "a", Rect: rect(100, 0, 40, 40)}},
		Grid:   20,
		View:   geom.Identity(),
		Flags:  Flags{Shapes: true},
	})
	if res.Offset.X != 0 {
		t.Errorf("offset.x = %v, want 0", res.Offset.X)
	}
	if res.X != SourceNode {
		t.Errorf("x source = %v, want node", res.X)
	}
	if len(res.Guides) != 1 || res.Guides[0].Axis != AxisX || res.Guides[0].Value != 100 {
		t.Errorf("guides = %+v", res.Guides)
	}
}

func TestTiesProduceEveryGuide(t *testing.T) {
	others := []Target{
		{ID: "a", Rect: rect(100, 0, 40, 40)},
		{ID: "b", Rect: rect(100, 100, 40, 40)},
		{ID: "c", Rect: rect(100, 200, 40, 40)},
	}
	res := Compute(Request{
		Moving: rect(102, 300, 60, 40),
		Others: others,
		Grid:   20,
		Flags:  Flags{Shapes: true},
	})
	if res.Offset.X != 100-102 {
		t.Errorf("offset.x = %v, want -2", res.Offset.X)
	}
	if res.Offset.Y != 0 {
		t.Errorf("offset.y = %v, want 0", res.Offset.Y)
	}
	if len(res.Guides) != 3 {
		t.Fatalf("guides = %d, want 3: %+v", len(res.Guides), res.Guides)
	}
	owners := map[string]bool{}
	for _, g := range res.Guides {
		owners[g.OwnerID] = true
		if g.Value != 100 || g.Moving != FeatureMin || g.Stationary != FeatureMin {
			t.Errorf("guide = %+v", g)
		}
		if g.From.X != 100 || g.To.X != 100 || g.To.Y != 340 {
			t.Errorf("guide extent = %v..%v", g.From, g.To)
		}
	}
	if len(owners) != 3 {
		t.Errorf("owners = %v", owners)
	}
}

func TestNodeThresholdIsHalfGrid(t *testing.T) {
	others := []Target{{ID: "a", Rect: rect(0, 0, 40, 40)}}
	tests := []struct {
		name  string
		x     float64
		want  float64
		wantS Source
	}{
		{"inside half cell", 49, -9, SourceNode},
		{"at half cell", 50, 0, SourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// moving min edge vs stationary max edge (40)
			res := Compute(Request{Moving: rect(tt.x, 500, 10, 10), Others: others, Grid: 20, Flags: Flags{Shapes: true}})
			if res.Offset.X != tt.want || res.X != tt.wantS {
				t.Errorf("offset.x = %v (%v), want %v (%v)", res.Offset.X, res.X, tt.want, tt.wantS)
			}
		})
	}
}

func TestNodeBeatsGrid(t *testing.T) {
	res := Compute(Request{
		Moving: rect(43, 500, 20, 20),
		Others: []Target{{ID: "a", Rect: rect(0, 0, 40, 40)}},
		Grid:   20,
		View:   geom.Identity(),
		Flags:  AllFlags(),
	})
	if res.Offset.X != -3 || res.X != SourceNode {
		t.Errorf("offset.x = %v (%v), want -3 (node)", res.Offset.X, res.X)
	}
}

func TestGridFallback(t *testing.T) {
	tests := []struct {
		name  string
		r     geom.Rect
		stage geom.Rect
		view  geom.ViewTransform
		want  float64
		src   Source
	}{
		{"within threshold", rect(103, 0, 40, 40), geom.Rect{}, geom.Identity(), -3, SourceGrid},
		{"too far at 1:1", rect(108, 0, 40, 40), geom.Rect{}, geom.Identity(), 0, SourceNone},
		{"zoomed out widens threshold", rect(108, 0, 40, 40), geom.Rect{}, geom.ViewTransform{Scale: 0.5}, -8, SourceGrid},
		{"right edge closer", rect(112, 0, 30, 40), geom.Rect{}, geom.Identity(), -2, SourceGrid},
		{"both edges too far", rect(109, 0, 20, 40), geom.Rect{}, geom.Identity(), 0, SourceNone},
		{"stage edge", rect(168, 0, 30, 40), rect(0, 0, 199, 400), geom.Identity(), 1, SourceStage},
		{"grid wins tie with stage", rect(168, 0, 30, 40), rect(0, 0, 200, 400), geom.Identity(), 2, SourceGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(Request{Moving: tt.r, Grid: 20, Stage: tt.stage, View: tt.view, Flags: Flags{Grid: true}})
			if res.Offset.X != tt.want || res.X != tt.src {
				t.Errorf("offset.x = %v (%v), want %v (%v)", res.Offset.X, res.X, tt.want, tt.src)
			}
			if len(res.Guides) != 0 {
				t.Errorf("grid snap emitted guides: %+v", res.Guides)
			}
		})
	}
}

func TestGridTiePriority(t *testing.T) {
	// left rounds to 100, right to 120-12=108: both 4 away, left is listed first.
	v, src, ok := gridAxis(AxisX, rect(104, 0, 12, 10), 20, geom.Rect{}, 5)
	if !ok || src != SourceGrid || v != -4 {
		t.Errorf("gridAxis = %v %v %v, want -4 grid", v, src, ok)
	}
}

func TestFlagsDisableTiers(t *testing.T) {
	req := Request{
		Moving: rect(103, 103, 40, 40),
		Others: []Target{{ID: "a", Rect: rect(100, 0, 40, 40)}},
		Grid:   20,
	}
	if res := Compute(req); res.Snapped() || len(res.Guides) != 0 || res.Offset != (geom.Point{}) {
		t.Errorf("no flags: %+v", res)
	}
	req.Flags = Flags{Grid: true}
	if res := Compute(req); res.X != SourceGrid || len(res.Guides) != 0 {
		t.Errorf("grid only: %+v", res)
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name    string
		role    shape.Role
		pointer geom.Point
		stage   geom.Rect
		view    geom.ViewTransform
		want    geom.Point
	}{
		{"right snaps x only", shape.RoleRight, geom.Pt(118, 57), geom.Rect{}, geom.Identity(), geom.Pt(120, 57)},
		{"top snaps y only", shape.RoleTop, geom.Pt(118, 57), geom.Rect{}, geom.Identity(), geom.Pt(118, 60)},
		{"corner snaps both", shape.RoleBottomLeft, geom.Pt(118, 57), geom.Rect{}, geom.Identity(), geom.Pt(120, 60)},
		{"out of range", shape.RoleRight, geom.Pt(110, 57), geom.Rect{}, geom.Identity(), geom.Pt(110, 57)},
		{"stage edge", shape.RoleBottom, geom.Pt(0, 298), rect(0, 0, 500, 297), geom.Identity(), geom.Pt(0, 297)},
		{"stage min edge for left", shape.RoleLeft, geom.Pt(-9, 0), rect(-10, 0, 500, 500), geom.Identity(), geom.Pt(-10, 0)},
		{"zoomed", shape.RoleRight, geom.Pt(236, 0), geom.Rect{}, geom.ViewTransform{Scale: 2}, geom.Pt(240, 0)},
		{"line roles untouched", shape.RoleEnd, geom.Pt(118, 57), geom.Rect{}, geom.Identity(), geom.Pt(118, 57)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(ResizeRequest{Pointer: tt.pointer, Role: tt.role, Grid: 20, Stage: tt.stage, View: tt.view})
			if !got.Pointer.Eq(tt.want, 1e-9) {
				t.Errorf("pointer = %v, want %v", got.Pointer, tt.want)
			}
		})
	}
}

func TestOverlay(t *testing.T) {
	var o Overlay
	gs := []Guide{{Axis: AxisX, Value: 1}, {Axis: AxisY, Value: 2}}
	o.Replace(gs)
	gs[0].Value = 99
	if o.Len() != 2 || o.Guides()[0].Value != 1 {
		t.Errorf("overlay aliased input: %+v", o.Guides())
	}
	o.Replace(gs[:1])
	if o.Len() != 1 {
		t.Errorf("Replace did not supersede: %d", o.Len())
	}
	o.Clear()
	if o.Len() != 0 || len(o.Guides()) != 0 {
		t.Error("Clear left guides behind")
	}
}

func TestComputeNeverNaN(t *testing.T) {
	res := Compute(Request{Moving: rect(0, 0, 0, 0), Flags: AllFlags(), View: geom.ViewTransform{}})
	if math.IsNaN(res.Offset.X) || math.IsNaN(res.Offset.Y) {
		t.Errorf("offset = %v", res.Offset)
	}
}
