package shape

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/snapboard/pkg/geom"
)

// MinSize is the smallest width or height a box shape can be resized to.
const MinSize = 2.0

// Kind is the concrete shape variant.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindImage     Kind = "image"
	KindPolyline  Kind = "polyline"
	KindCurve     Kind = "curve"
)

// Family groups kinds that share an adjustment strategy.
type Family int

const (
	FamilyBox Family = iota
	FamilyLine
	FamilyCurve
)

// Family returns the adjustment family of k.
func (k Kind) Family() Family {
	switch k {
	case KindPolyline:
		return FamilyLine
	case KindCurve:
		return FamilyCurve
	}
	return FamilyBox
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindRectangle, KindEllipse, KindImage, KindPolyline, KindCurve:
		return true
	}
	return false
}

// Shape is a diagram element. All geometry goes through methods so that
// handles and connection points stay derived from the current size.
type Shape struct {
	id       string
	kind     Kind
	label    string
	x, y     float64
	w, h     float64
	rotation float64

	// Line and curve geometry, local frame. points holds [start, end].
	points []geom.Point
	bends  []Bend
	bulge  float64

	nextBend int
	handles  HandleSet
	conns    []ConnectionPoint
}

// NewBox creates a rectangle-family shape covering r.
func NewBox(kind Kind, r geom.Rect) *Shape {
	if kind.Family() != FamilyBox {
		kind = KindRectangle
	}
	s := &Shape{
		id:   uuid.NewString(),
		kind: kind,
		x:    r.X,
		y:    r.Y,
		w:    math.Max(MinSize, r.Width),
		h:    math.Max(MinSize, r.Height),
	}
	s.Derive()
	return s
}

// NewPolyline creates a straight line (or polyline once bends are committed)
// from start to end, both in world coordinates.
func NewPolyline(start, end geom.Point) *Shape {
	s := &Shape{
		id:     uuid.NewString(),
		kind:   KindPolyline,
		x:      start.X,
		y:      start.Y,
		points: []geom.Point{{}, end.Sub(start)},
	}
	s.normalize()
	return s
}

// NewCurve creates a quadratic curve from start to end. bulge offsets the
// control point perpendicular to the chord, as a fraction of its length.
func NewCurve(start, end geom.Point, bulge float64) *Shape {
	s := &Shape{
		id:     uuid.NewString(),
		kind:   KindCurve,
		x:      start.X,
		y:      start.Y,
		points: []geom.Point{{}, end.Sub(start)},
		bulge:  bulge,
	}
	s.normalize()
	return s
}

// ID returns the shape's stable identifier.
func (s *Shape) ID() string { return s.id }

// Kind returns the concrete variant.
func (s *Shape) Kind() Kind { return s.kind }

// Label returns the text label.
func (s *Shape) Label() string { return s.label }

// SetLabel sets the text label.
func (s *Shape) SetLabel(l string) { s.label = l }

// Position returns the top-left corner of the unrotated box.
func (s *Shape) Position() geom.Point { return geom.Pt(s.x, s.y) }

// SetPosition moves the shape without touching its size.
func (s *Shape) SetPosition(p geom.Point) { s.x, s.y = p.X, p.Y }

// Size returns the unrotated width and height.
func (s *Shape) Size() (w, h float64) { return s.w, s.h }

// SetSize resizes a box shape, clamping to MinSize, and re-derives handles
// and connection points. Line shapes derive their size from their points and
// ignore this call.
func (s *Shape) SetSize(w, h float64) {
	if s.kind.Family() != FamilyBox {
		return
	}
	s.w, s.h = math.Max(MinSize, w), math.Max(MinSize, h)
	s.Derive()
}

// Rotation returns the rotation in degrees around the position.
func (s *Shape) Rotation() float64 { return s.rotation }

// SetRotation sets the rotation, normalized into (-180, 180].
func (s *Shape) SetRotation(deg float64) { s.rotation = geom.NormalizeDegrees(deg) }

// Handles returns the shape's handle set.
func (s *Shape) Handles() *HandleSet { return &s.handles }

// AbsolutePoint converts a point in the shape's local frame to world
// coordinates.
func (s *Shape) AbsolutePoint(local geom.Point) geom.Point {
	return geom.RotatePoint(local, s.rotation).Add(s.Position())
}

// LocalPoint converts a world point into the shape's local frame.
func (s *Shape) LocalPoint(world geom.Point) geom.Point {
	return geom.RotatePoint(world.Sub(s.Position()), -s.rotation)
}

// HandleAbsolute returns the world position of a handle.
func (s *Shape) HandleAbsolute(role Role, index int) (geom.Point, bool) {
	h, ok := s.handles.Find(role, index)
	if !ok {
		return geom.Point{}, false
	}
	return s.AbsolutePoint(h.Pos), true
}

// ClientRect returns the axis-aligned world bounding box of the rotated
// shape.
func (s *Shape) ClientRect() geom.Rect {
	return geom.RotatedBounds(s.Position(), s.w, s.h, s.rotation)
}

// Center returns the world position of the box center.
func (s *Shape) Center() geom.Point {
	return s.AbsolutePoint(geom.Pt(s.w/2, s.h/2))
}

// Contains reports whether the world point p hits the shape. Lines accept
// points within tolerance of any segment.
func (s *Shape) Contains(p geom.Point, tolerance float64) bool {
	l := s.LocalPoint(p)
	switch s.kind {
	case KindEllipse:
		rx, ry := s.w/2+tolerance, s.h/2+tolerance
		dx, dy := l.X-s.w/2, l.Y-s.h/2
		return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
	case KindPolyline, KindCurve:
		pts := s.Path()
		for i := 1; i < len(pts); i++ {
			if segmentDistance(l, pts[i-1], pts[i]) <= tolerance {
				return true
			}
		}
		return false
	}
	return geom.Rect{Width: s.w, Height: s.h}.Inset(-tolerance).Contains(l)
}

// Derive recomputes every handle and connection point position from the
// current size. Visibility of surviving handles is preserved.
func (s *Shape) Derive() {
	var hs []Handle
	switch s.kind.Family() {
	case FamilyBox:
		hs = make([]Handle, 0, len(BoxRoles)+1)
		for _, r := range BoxRoles {
			pos, _ := BoxPosition(r, s.w, s.h)
			hs = append(hs, Handle{Role: r, Pos: pos})
		}
		pos, _ := BoxPosition(RoleRotate, s.w, s.h)
		hs = append(hs, Handle{Role: RoleRotate, Pos: pos})
	case FamilyLine:
		hs = append(hs, Handle{Role: RoleStart, Pos: s.points[0]})
		for _, b := range s.bends {
			hs = append(hs, Handle{Role: RoleManual, Index: b.Index, Pos: b.Point, Committed: b.Committed})
		}
		hs = append(hs, Handle{Role: RoleEnd, Pos: s.points[len(s.points)-1]})
	case FamilyCurve:
		hs = []Handle{
			{Role: RoleStart, Pos: s.points[0]},
			{Role: RoleEnd, Pos: s.points[len(s.points)-1]},
		}
	}
	s.handles.replace(hs)
	s.deriveConnections()
}

// Clone returns a deep copy with the same ID.
func (s *Shape) Clone() *Shape {
	c := *s
	c.points = append([]geom.Point(nil), s.points...)
	c.bends = append([]Bend(nil), s.bends...)
	c.conns = append([]ConnectionPoint(nil), s.conns...)
	c.handles = s.handles.clone()
	return &c
}

func segmentDistance(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return geom.Distance(p, a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return geom.Distance(p, geom.Lerp(a, b, t))
}
