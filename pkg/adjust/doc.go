// Package adjust implements the shape adjuster: given a handle being dragged
// and the current pointer, it recomputes a shape's size, position and
// rotation-compensated handle positions in place.
//
// Every call is anchored on a [shape.Snapshot] taken before the gesture
// started, never on the live shape, so repeated pointer-move frames cannot
// accumulate error. A call whose references cannot be resolved (stale handle,
// foreign snapshot) is a no-op and reports Changed=false.
//
// Shape families are a closed set and are dispatched with a switch in
// [Adjust]; the anchor lookup shared by the box and line strategies lives in
// anchor.go.
package adjust
