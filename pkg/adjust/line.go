package adjust

import (
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// adjustLine moves an endpoint or a manual bend of a polyline or curve.
// Points are stored relative to the live position, which shifts every time
// the bounding box is re-normalized, so the pointer is converted against the
// live shape rather than the snapshot. Un-rotating pointer and position
// around the bounding-box center and subtracting them reduces to
// Shape.LocalPoint.
func adjustLine(s *shape.Shape, t Target, p geom.Point) Result {
	if _, ok := s.Handles().Find(t.Role, t.Index); !ok {
		return noop
	}
	local := s.LocalPoint(p)
	switch t.Role {
	case shape.RoleStart, shape.RoleEnd:
		if !s.SetEndpoint(t.Role, local) {
			return noop
		}
	case shape.RoleManual:
		if !s.SetBend(t.Index, local) {
			return noop
		}
	default:
		return noop
	}
	return Result{Changed: true}
}
