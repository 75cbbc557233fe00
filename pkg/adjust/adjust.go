package adjust

import (
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// Target identifies the dragged handle. Index is only meaningful for
// shape.RoleManual.
type Target struct {
	Role  shape.Role
	Index int
}

// On returns a Target for a fixed role.
func On(role shape.Role) Target { return Target{Role: role} }

// Result reports what an adjustment did.
type Result struct {
	// Changed is false when the frame was skipped (missing reference).
	Changed bool
}

var noop = Result{}

// Adjust applies one pointer-move frame of a handle drag to s. pointer is in
// screen coordinates and is mapped into world space through view.
func Adjust(s *shape.Shape, snap shape.Snapshot, t Target, pointer geom.Point, view geom.ViewTransform) Result {
	if s == nil || !snap.Valid() || snap.ID() != s.ID() {
		return noop
	}
	p := view.ToWorld(pointer)
	if t.Role == shape.RoleRotate {
		return rotate(s, snap, p, 0)
	}
	switch s.Kind().Family() {
	case shape.FamilyBox:
		return adjustBox(s, snap, t.Role, p)
	case shape.FamilyLine:
		return adjustLine(s, t, p)
	case shape.FamilyCurve:
		if t.Role == shape.RoleManual {
			return noop
		}
		return adjustLine(s, t, p)
	}
	return noop
}

// Rotate turns s around its snapshot center so that the rotation knob
// points at pointer. A positive step snaps the angle to multiples of step
// degrees.
func Rotate(s *shape.Shape, snap shape.Snapshot, pointer geom.Point, view geom.ViewTransform, step float64) Result {
	if s == nil || !snap.Valid() || snap.ID() != s.ID() || s.Kind().Family() != shape.FamilyBox {
		return noop
	}
	return rotate(s, snap, view.ToWorld(pointer), step)
}

// Move places s at its snapshot position plus delta (world units).
func Move(s *shape.Shape, snap shape.Snapshot, delta geom.Point) Result {
	if s == nil || !snap.Valid() || snap.ID() != s.ID() {
		return noop
	}
	s.SetPosition(snap.Position().Add(delta))
	return Result{Changed: true}
}

func rotate(s *shape.Shape, snap shape.Snapshot, p geom.Point, step float64) Result {
	if s.Kind().Family() != shape.FamilyBox {
		return noop
	}
	c := snap.Center()
	if p == c {
		return noop
	}
	// The knob sits straight above the center at rotation 0, i.e. at -90°.
	deg := geom.SnapAngle(geom.AngleFromVector(p.Sub(c))+90, step)
	w, h := s.Size()
	s.SetRotation(deg)
	s.SetPosition(c.Sub(geom.RotatePoint(geom.Pt(w/2, h/2), deg)))
	return Result{Changed: true}
}
