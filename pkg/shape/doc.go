// Package shape defines the mutable shape entity the transform engine works
// on, together with its adjustment handles, link connection points and the
// immutable snapshot taken at the start of a gesture.
//
// # Coordinates
//
// A shape has a position (the top-left corner of its unrotated box), an
// unrotated size and a rotation in degrees around that position. Handle and
// connection point positions are stored in the shape's local frame and are
// always re-derived from the current size, so they can never drift from the
// geometry they decorate. The only independently stored positions are the
// points of line shapes and user-committed bend points.
//
// # Families
//
// Rectangles, ellipses and images form the box family with eight resize
// roles plus a rotation knob. Polylines carry start/end handles plus manual
// bend handles; curves carry start/end only.
package shape
