// Package interact turns pointer events into editing gestures.
//
// A [Controller] is a two-state machine. Idle waits for a pointer-down;
// Dragging runs one gesture until pointer-up. Gestures are:
//
//   - resize: dragging a size or line handle of a shape
//   - rotate: dragging the rotation knob of a box shape
//   - move: dragging a selected shape, or the whole selection, with magnetic
//     snapping against the other shapes, the grid and the stage
//   - create: with a tool armed, pressing on the canvas creates a shape and
//     the same drag sizes it through its bottom-right (or end) handle
//
// A pointer-down while a gesture is running is ignored. Pointer-up always
// discards the gesture snapshot, clears the guide overlay, commits the scene
// to history and asks for links and the preview to be redrawn. History
// failures are returned but never leave the controller dragging.
//
// Pointer positions are screen coordinates; the controller converts them
// through its [geom.ViewTransform].
package interact
