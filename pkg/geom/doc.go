// Package geom provides the 2D primitives used by the transform and snap engines.
//
// Everything in this package is pure: no state, no allocation beyond return
// values, and no dependency on a scene or renderer. Angles are expressed in
// degrees at the API boundary because that is how shapes store rotation;
// conversions to radians happen internally.
//
// # Rotation Sectors
//
// Resize math needs to know on which side of a shape's local axis a pointer
// lies. Doing that with a single projection is fine for interior angles, but
// the trig values at exact multiples of 45° carry rounding noise (cos 90° is
// about 6e-17, not 0). [ClassifyRotation] therefore maps a rotation onto one
// of eight open 45° sectors or one of eight exact boundary angles, and
// [SideOfAxis] evaluates each class with its own closed form.
//
// # View Transform
//
// [ViewTransform] describes the zoom and pan between screen (stage) pixels and
// world coordinates. It is passed explicitly to the engines instead of being
// read from a shared render context.
package geom
