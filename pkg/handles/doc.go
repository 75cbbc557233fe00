// Package handles manages the adjustment handles of shapes in a scene:
// creating them, keeping their positions derived from the shape, deciding
// which are visible, and running handle drags.
//
// Every handle is bound to three callbacks through [Manager.BindDrag]. The
// standard binding installed by [Manager.CreateHandles] captures a snapshot
// on start, runs the shape adjuster on every move, and on end discards the
// snapshot and commits the scene to history.
//
// Visibility: handles are hidden unless their shape is hovered or one of
// its handles is being dragged. While dragging only the active handle stays
// visible, plus both endpoints of a line.
package handles
