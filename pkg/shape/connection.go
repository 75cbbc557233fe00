package shape

import "github.com/matzehuels/snapboard/pkg/geom"

// Direction is a routing hint attached to a connection point. The transform
// engine never reads it.
type Direction string

const (
	DirNone   Direction = ""
	DirTop    Direction = "top"
	DirBottom Direction = "bottom"
	DirLeft   Direction = "left"
	DirRight  Direction = "right"
)

// ConnectionPoint is where a link attaches to a shape. Pos is local.
type ConnectionPoint struct {
	ID        string
	Direction Direction
	Pos       geom.Point
}

// ConnectionPoints returns a copy of the shape's connection points.
func (s *Shape) ConnectionPoints() []ConnectionPoint {
	return append([]ConnectionPoint(nil), s.conns...)
}

// ConnectionPoint returns the connection point with the given id.
func (s *Shape) ConnectionPoint(id string) (ConnectionPoint, bool) {
	for _, c := range s.conns {
		if c.ID == id {
			return c, true
		}
	}
	return ConnectionPoint{}, false
}

// ConnectionAbsolute returns the world position of a connection point.
func (s *Shape) ConnectionAbsolute(id string) (geom.Point, bool) {
	c, ok := s.ConnectionPoint(id)
	if !ok {
		return geom.Point{}, false
	}
	return s.AbsolutePoint(c.Pos), true
}

// deriveConnections uses the same role table as handles, so connection
// points are correct immediately after any size change.
func (s *Shape) deriveConnections() {
	switch s.kind.Family() {
	case FamilyBox:
		sides := []struct {
			role Role
			dir  Direction
		}{
			{RoleTop, DirTop}, {RoleRight, DirRight},
			{RoleBottom, DirBottom}, {RoleLeft, DirLeft},
		}
		s.conns = s.conns[:0]
		for _, sd := range sides {
			pos, _ := BoxPosition(sd.role, s.w, s.h)
			s.conns = append(s.conns, ConnectionPoint{ID: s.id + ":" + string(sd.dir), Direction: sd.dir, Pos: pos})
		}
	default:
		start, end, ok := s.Endpoints()
		if !ok {
			s.conns = nil
			return
		}
		s.conns = append(s.conns[:0],
			ConnectionPoint{ID: s.id + ":start", Pos: start},
			ConnectionPoint{ID: s.id + ":end", Pos: end},
		)
	}
}
