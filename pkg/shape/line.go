package shape

import "github.com/matzehuels/snapboard/pkg/geom"

// curveSamples is the number of segments used to approximate a curve for hit
// testing and rendering.
const curveSamples = 24

// Bend is a manual bend entry of a polyline. Index is a stable identity
// allocated once per entry; slice order is path order. Uncommitted entries
// are placeholders that always sit at the midpoint of their neighbours;
// committed entries store an explicit local point.
type Bend struct {
	Index     int        `json:"index"`
	Point     geom.Point `json:"point"`
	Committed bool       `json:"committed"`
}

// Bends returns a copy of the bend entries in path order.
func (s *Shape) Bends() []Bend { return append([]Bend(nil), s.bends...) }

// Bulge returns the curve's control offset factor.
func (s *Shape) Bulge() float64 { return s.bulge }

// Endpoints returns the local start and end points of a line or curve.
func (s *Shape) Endpoints() (start, end geom.Point, ok bool) {
	if len(s.points) < 2 {
		return geom.Point{}, geom.Point{}, false
	}
	return s.points[0], s.points[len(s.points)-1], true
}

// Vertices returns the committed vertices of a line in path order: start,
// committed bends, end. Box shapes return nil.
func (s *Shape) Vertices() []geom.Point {
	if len(s.points) < 2 {
		return nil
	}
	out := []geom.Point{s.points[0]}
	for _, b := range s.bends {
		if b.Committed {
			out = append(out, b.Point)
		}
	}
	return append(out, s.points[len(s.points)-1])
}

// Control returns the local control point of a curve.
func (s *Shape) Control() geom.Point {
	start, end, _ := s.Endpoints()
	d := end.Sub(start)
	perp := geom.Pt(-d.Y, d.X)
	return geom.Midpoint(start, end).Add(perp.Scale(s.bulge))
}

// Path returns the drawable polyline in local coordinates. Curves are
// flattened; boxes return their outline.
func (s *Shape) Path() []geom.Point {
	switch s.kind.Family() {
	case FamilyLine:
		return s.Vertices()
	case FamilyCurve:
		start, end, _ := s.Endpoints()
		ctrl := s.Control()
		out := make([]geom.Point, 0, curveSamples+1)
		for i := 0; i <= curveSamples; i++ {
			out = append(out, geom.QuadPoint(start, ctrl, end, float64(i)/curveSamples))
		}
		return out
	}
	return []geom.Point{{}, {X: s.w}, {X: s.w, Y: s.h}, {Y: s.h}, {}}
}

// SetEndpoint replaces the start or end point with a local coordinate and
// re-normalizes the line. It reports false for other roles or box shapes.
func (s *Shape) SetEndpoint(role Role, local geom.Point) bool {
	if s.kind.Family() == FamilyBox || len(s.points) < 2 {
		return false
	}
	switch role {
	case RoleStart:
		s.points[0] = local
	case RoleEnd:
		s.points[len(s.points)-1] = local
	default:
		return false
	}
	s.normalize()
	return true
}

// SetBend moves the bend entry with the given index to a local coordinate,
// committing it, then re-derives the placeholder midpoints and the bounding
// box. It reports false when no entry has that index.
func (s *Shape) SetBend(index int, local geom.Point) bool {
	for i := range s.bends {
		if s.bends[i].Index == index {
			s.bends[i].Point = local
			s.bends[i].Committed = true
			s.normalize()
			return true
		}
	}
	return false
}

// DeriveBends rebuilds the bend list so that exactly one uncommitted
// placeholder sits at the midpoint between each pair of consecutive
// committed vertices. Existing placeholder indices are reused in order.
func (s *Shape) DeriveBends() {
	if s.kind != KindPolyline || len(s.points) < 2 {
		s.bends = nil
		return
	}
	out := make([]Bend, 0, 2*len(s.bends)+1)
	prev := s.points[0]
	pending := -1
	segment := func(from, to geom.Point) {
		idx := pending
		if idx < 0 {
			s.nextBend++
			idx = s.nextBend
		}
		out = append(out, Bend{Index: idx, Point: geom.Midpoint(from, to)})
		pending = -1
	}
	for _, b := range s.bends {
		if !b.Committed {
			if pending < 0 {
				pending = b.Index
			}
			continue
		}
		segment(prev, b.Point)
		out = append(out, b)
		prev = b.Point
	}
	segment(prev, s.points[len(s.points)-1])
	s.bends = out
}

// normalize re-derives bends, then shifts local points so the bounding box
// minimum is the origin, moving the position by the same (rotated) amount so
// absolute geometry is unchanged. Size becomes the bounding box size.
func (s *Shape) normalize() {
	s.DeriveBends()
	var box geom.Rect
	if s.kind == KindCurve {
		start, end, _ := s.Endpoints()
		box = geom.QuadBounds(start, s.Control(), end)
	} else {
		box = geom.BoundsOf(s.Vertices()...)
	}
	shift := box.Min()
	if shift != (geom.Point{}) {
		for i := range s.points {
			s.points[i] = s.points[i].Sub(shift)
		}
		for i := range s.bends {
			s.bends[i].Point = s.bends[i].Point.Sub(shift)
		}
		s.SetPosition(s.AbsolutePoint(shift))
	}
	s.w, s.h = box.Width, box.Height
	s.Derive()
}
