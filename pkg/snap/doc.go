// Package snap computes magnetic alignment for a rectangle being moved or
// resized on the canvas.
//
// Snapping is a two-tier policy evaluated independently on X and Y:
//
//  1. Node alignment: the moving rect's min edge, center and max edge are
//     matched against the same three features of every other shape. The
//     closest moving/stationary pair wins when it is nearer than half a grid
//     cell, and every pair tied at that distance yields a [Guide].
//  2. Grid/stage fallback: when no node is close enough, the rect snaps to
//     the nearest grid line (by either edge) or to the stage's far edge, if
//     that is within a small screen-pixel threshold.
//
// [Compute] is pure: it never touches the scene. Guides are transient and
// are held by an [Overlay] that callers clear at the end of every gesture.
package snap
