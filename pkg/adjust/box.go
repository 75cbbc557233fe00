package adjust

import (
	"math"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// adjustBox resizes a rectangle, ellipse or image so that the handle
// opposite role stays where it was when the gesture started.
func adjustBox(s *shape.Shape, snap shape.Snapshot, role shape.Role, p geom.Point) Result {
	dragged, anchor, _, ok := anchorPair(s, snap, role)
	if !ok {
		return noop
	}
	rot := snap.Rotation()
	sw, sh := snap.Size()
	lw, lh := s.Size()

	before := geom.ToLocal(dragged.Sub(anchor), rot)
	now := geom.ToLocal(p.Sub(anchor), rot)
	toPointer := p.Sub(anchor)

	w, h := sw, sh
	if role.TouchesX() {
		w = resizeAxis(sw, lw, math.Abs(before.X), math.Abs(now.X), keep(geom.SideOfAxis(toPointer, rot), role.XSign()))
	}
	if role.TouchesY() {
		h = resizeAxis(sh, lh, math.Abs(before.Y), math.Abs(now.Y), keep(geom.SideOfNormal(toPointer, rot), role.YSign()))
	}

	s.SetPosition(reposition(role, anchor, snap.Position(), w, h, rot))
	s.SetSize(w, h)
	return Result{Changed: true}
}

// resizeAxis scales the snapshot size by the ratio of the current to the
// original anchor distance. A zero original distance skips the ratio and
// keeps the live value.
func resizeAxis(snapSize, liveSize, d1, d2, flag float64) float64 {
	if d1 == 0 {
		return liveSize
	}
	return math.Max(shape.MinSize, snapSize*(d2/d1)*flag)
}

// keep returns 1 while the pointer stays on the dragged handle's side of the
// anchor along the local axis, and 0 once it crosses (or sits on) it, which
// collapses that axis to the minimum size instead of flipping the shape.
func keep(side, want int) float64 {
	if side == want {
		return 1
	}
	return 0
}

// reposition returns the new top-left corner for a box of size w×h rotated
// by rot such that the anchor handle (opposite role) lands on anchor. Roles
// whose anchor already sits on the origin corner or edge keep the snapshot
// position.
func reposition(role shape.Role, anchor, origin geom.Point, w, h, rot float64) geom.Point {
	sin, cos := geom.SinCos(rot)
	ax, ay := anchor.X, anchor.Y
	switch role {
	case shape.RoleTopLeft:
		// anchor: bottom-right (w, h)
		return geom.Pt(ax-(w*cos-h*sin), ay-(w*sin+h*cos))
	case shape.RoleTop:
		// anchor: bottom (w/2, h)
		return geom.Pt(ax-(w/2*cos-h*sin), ay-(w/2*sin+h*cos))
	case shape.RoleTopRight:
		// anchor: bottom-left (0, h)
		return geom.Pt(ax+h*sin, ay-h*cos)
	case shape.RoleLeft:
		// anchor: right (w, h/2)
		return geom.Pt(ax-(w*cos-h/2*sin), ay-(w*sin+h/2*cos))
	case shape.RoleBottomLeft:
		// anchor: top-right (w, 0)
		return geom.Pt(ax-w*cos, ay-w*sin)
	}
	// bottom, right, bottom-right
	return origin
}
