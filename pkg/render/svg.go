package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// DefaultPadding surrounds the drawing.
const DefaultPadding = 20.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   Style
	handles bool
	guides  bool
	grid    bool
	padding float64
}

func WithStyle(s Style) SVGOption     { return func(r *svgRenderer) { r.style = s } }
func WithHandles() SVGOption          { return func(r *svgRenderer) { r.handles = true } }
func WithGuides() SVGOption           { return func(r *svgRenderer) { r.guides = true } }
func WithGrid() SVGOption             { return func(r *svgRenderer) { r.grid = true } }
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// RenderSVG draws sc. Handles are drawn for selected shapes and for handles
// currently marked visible.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	frame := Frame(sc, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.X, frame.Y, frame.Width, frame.Height, frame.Width, frame.Height)

	grid := 0.0
	if r.grid {
		grid = sc.Grid
	}
	r.style.RenderDefs(&buf, grid)
	if grid > 0 {
		r.style.RenderGrid(&buf, frame)
	}

	for _, s := range sc.Shapes() {
		renderShape(&buf, &r, sc, s)
	}
	for _, l := range sc.Links() {
		from, to, ok := sc.LinkEndpoints(l)
		if !ok {
			continue
		}
		r.style.RenderLink(&buf, Line{ID: l.ID, X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y})
	}
	if r.guides {
		for _, g := range sc.Overlay().Guides() {
			r.style.RenderGuide(&buf, g)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Simple{}, padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Frame returns the drawing area of sc: its shapes and stage, padded. An
// empty scene without a stage gets a 100×100 frame at the origin.
func Frame(sc *scene.Scene, padding float64) geom.Rect {
	frame := sc.Bounds()
	switch {
	case sc.Len() == 0 && sc.Stage.IsEmpty():
		frame = geom.Rect{Width: 100, Height: 100}
	case sc.Len() == 0:
		frame = sc.Stage
	case !sc.Stage.IsEmpty():
		frame = frame.Union(sc.Stage)
	}
	return frame.Inset(-padding)
}

func renderShape(buf *bytes.Buffer, r *svgRenderer, sc *scene.Scene, s *shape.Shape) {
	p := s.Position()
	fmt.Fprintf(buf, `  <g transform="translate(%.2f %.2f) rotate(%.2f)">`+"\n", p.X, p.Y, s.Rotation())

	it := itemFor(sc, s)
	r.style.RenderShape(buf, it)
	r.style.RenderLabel(buf, it)
	if r.handles {
		for _, h := range s.Handles().All() {
			if h.Visible || it.Selected {
				r.style.RenderHandle(buf, h)
			}
		}
	}
	buf.WriteString("  </g>\n")
}

func itemFor(sc *scene.Scene, s *shape.Shape) Item {
	w, h := s.Size()
	it := Item{
		ID:       s.ID(),
		Label:    s.Label(),
		Kind:     s.Kind(),
		W:        w,
		H:        h,
		Selected: sc.IsSelected(s.ID()),
	}
	switch s.Kind().Family() {
	case shape.FamilyLine:
		it.Path = s.Vertices()
	case shape.FamilyCurve:
		start, end, _ := s.Endpoints()
		it.Path = []geom.Point{start, s.Control(), end}
	}
	return it
}
