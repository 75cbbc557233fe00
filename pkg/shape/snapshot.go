package shape

import "github.com/matzehuels/snapboard/pkg/geom"

// Snapshot is an immutable copy of a shape taken at the start of a gesture.
// It is the stable reference for anchor positions and original size; the
// zero value is an invalid snapshot.
type Snapshot struct {
	s *Shape
}

// TakeSnapshot captures s. Later mutations of s do not affect the snapshot.
func TakeSnapshot(s *Shape) Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{s: s.Clone()}
}

// Valid reports whether the snapshot holds a shape.
func (sn Snapshot) Valid() bool { return sn.s != nil }

// ID returns the captured shape's ID.
func (sn Snapshot) ID() string {
	if sn.s == nil {
		return ""
	}
	return sn.s.id
}

// Position returns the captured position.
func (sn Snapshot) Position() geom.Point {
	if sn.s == nil {
		return geom.Point{}
	}
	return sn.s.Position()
}

// Size returns the captured size.
func (sn Snapshot) Size() (w, h float64) {
	if sn.s == nil {
		return 0, 0
	}
	return sn.s.w, sn.s.h
}

// Rotation returns the captured rotation.
func (sn Snapshot) Rotation() float64 {
	if sn.s == nil {
		return 0
	}
	return sn.s.rotation
}

// Center returns the captured world center.
func (sn Snapshot) Center() geom.Point {
	if sn.s == nil {
		return geom.Point{}
	}
	return sn.s.Center()
}

// ClientRect returns the captured world bounding box.
func (sn Snapshot) ClientRect() geom.Rect {
	if sn.s == nil {
		return geom.Rect{}
	}
	return sn.s.ClientRect()
}

// HandleAbsolute returns the world position a handle had at capture time.
func (sn Snapshot) HandleAbsolute(role Role, index int) (geom.Point, bool) {
	if sn.s == nil {
		return geom.Point{}, false
	}
	return sn.s.HandleAbsolute(role, index)
}

// Shape returns a fresh copy of the captured shape.
func (sn Snapshot) Shape() *Shape {
	if sn.s == nil {
		return nil
	}
	return sn.s.Clone()
}
