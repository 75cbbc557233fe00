// Package scene holds the shapes, links and transient UI state of one
// diagram, and converts it to and from the JSON [Document] used by the CLI
// and the HTTP API.
//
// The scene is the collaborator the transform core talks to: it answers
// lookups and hit tests, holds the guide [snap.Overlay], and forwards
// selective redraw requests to a [Redrawer]. It is not safe for concurrent
// use; the editor drives it from a single event loop.
package scene
