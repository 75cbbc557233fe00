package interact

import (
	"context"
	"testing"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

func TestMoveBy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{Snap: snap.AllFlags()})

	res, err := f.c.MoveBy(ctx, []string{f.b.ID()}, geom.Pt(-97, 0))
	if err != nil {
		t.Fatal(err)
	}
	if res.Offset != geom.Pt(-3, 0) || res.X != snap.SourceNode {
		t.Errorf("result = %+v", res)
	}
	if p := f.b.Position(); p != geom.Pt(100, 0) {
		t.Errorf("position = %v", p)
	}
	if f.c.State() != StateIdle || f.sc.Overlay().Len() != 0 {
		t.Error("gesture not cleaned up")
	}
	if f.revisions(t) != 1 {
		t.Errorf("revisions = %d", f.revisions(t))
	}
}

func TestMoveByZoomed(t *testing.T) {
	f := newFixture(t, Options{})
	f.c.SetView(geom.ViewTransform{Scale: 2, OffsetX: 30, OffsetY: -10})
	if _, err := f.c.MoveBy(context.Background(), []string{f.a.ID()}, geom.Pt(15, 5)); err != nil {
		t.Fatal(err)
	}
	if p := f.a.Position(); !p.Eq(geom.Pt(15, 5), 1e-9) {
		t.Errorf("position = %v, want (15,5) in world units", p)
	}
}

func TestMoveByErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	tests := []struct {
		name string
		ids  []string
		code errors.Code
	}{
		{"no ids", nil, errors.ErrCodeInvalidInput},
		{"unknown", []string{"ghost"}, errors.ErrCodeMissingReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.c.MoveBy(ctx, tt.ids, geom.Pt(1, 1)); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	f.c.PointerDown(ctx, geom.Pt(50, 40))
	if _, err := f.c.MoveBy(ctx, []string{f.a.ID()}, geom.Pt(1, 1)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("MoveBy during drag: %v", err)
	}
}

func TestDragHandle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	changed, err := f.c.DragHandle(ctx, f.a.ID(), shape.RoleBottomRight, 0, geom.Pt(150, 120))
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	if w, h := f.a.Size(); w != 150 || h != 120 {
		t.Errorf("size = %vx%v", w, h)
	}
	if f.revisions(t) != 1 {
		t.Errorf("revisions = %d", f.revisions(t))
	}

	if _, err := f.c.DragHandle(ctx, f.a.ID(), shape.RoleStart, 0, geom.Pt(0, 0)); !errors.Is(err, errors.ErrCodeMissingReference) {
		t.Errorf("line role on box: %v", err)
	}
	if _, err := f.c.DragHandle(ctx, "ghost", shape.RoleTop, 0, geom.Pt(0, 0)); !errors.Is(err, errors.ErrCodeMissingReference) {
		t.Errorf("unknown shape: %v", err)
	}
}

func TestScriptedHistoryFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	c := New(f.sc, brokenHistory{}, Options{})

	if _, err := c.MoveBy(ctx, []string{f.a.ID()}, geom.Pt(10, 0)); !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("MoveBy error = %v, want %s", err, errors.ErrCodeStorage)
	}
	if p := f.a.Position(); p != geom.Pt(10, 0) {
		t.Errorf("move not applied: %v", p)
	}
	changed, err := c.DragHandle(ctx, f.b.ID(), shape.RoleRight, 0, geom.Pt(350, 40))
	if !changed || !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("DragHandle = %v, %v", changed, err)
	}
	if c.State() != StateIdle {
		t.Error("controller left dragging after a history failure")
	}
}
