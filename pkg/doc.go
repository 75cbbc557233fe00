// Package pkg provides the core libraries of snapboard, a diagram editor core
// with magnetic snapping, resize and rotate handles, and undo history.
//
// # Overview
//
// Snapboard edits a scene of boxes (rectangles, ellipses, images) and lines
// (polylines, quadratic curves) joined by links. The pkg directory is
// organized into three areas:
//
//  1. Geometry and model: [geom], [shape], [scene]
//  2. Transform engine: [snap], [adjust], [handles], [interact]
//  3. Persistence and output: [history], [io], [render], [cache], [config]
//
// # Architecture
//
// The data flow of one pointer gesture:
//
//	pointer event (screen px)
//	         ↓
//	    [interact] controller (view transform, hit test, gesture state)
//	         ↓
//	    [snap] alignment (move)   or   [handles] drag → [adjust] (resize, rotate)
//	         ↓
//	    [scene] updated in place, guides in the overlay, redraw requested
//	         ↓
//	    [history] journal commit on pointer-up
//
// # Quick Start
//
// Move a shape the way a drag would and read back the snap outcome:
//
//	doc, _ := io.DecodeDocument(r)
//	sc, _ := scene.FromDocument(doc)
//	c := interact.New(sc, nil, interact.Options{Snap: snap.AllFlags()})
//	res, _ := c.MoveBy(ctx, []string{"b"}, geom.Pt(-97, 0))
//	fmt.Println(res.Offset, res.X)
//
// Render the result:
//
//	r := render.NewRenderer(nil, nil, 0)
//	svg, _, _ := r.Render(ctx, sc, render.Options{Format: render.FormatSVG})
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -tags integration ./pkg/...  # Include Redis-backed tests
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/shape
// [scene]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/scene
// [snap]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/snap
// [adjust]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/adjust
// [handles]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/handles
// [interact]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/interact
// [history]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/history
// [io]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/snapboard/pkg/config
package pkg
