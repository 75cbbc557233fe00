package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// Style defines the visual appearance of a rendered scene.
// Shape and handle coordinates are local to the shape's group, which the
// renderer translates and rotates; links, guides and the grid are in world
// coordinates.
type Style interface {
	// RenderDefs writes SVG <defs> content (markers, patterns).
	RenderDefs(buf *bytes.Buffer, grid float64)
	RenderGrid(buf *bytes.Buffer, frame geom.Rect)
	RenderShape(buf *bytes.Buffer, it Item)
	RenderLabel(buf *bytes.Buffer, it Item)
	RenderHandle(buf *bytes.Buffer, h shape.Handle)
	RenderLink(buf *bytes.Buffer, l Line)
	RenderGuide(buf *bytes.Buffer, g snap.Guide)
}

// Item contains the data needed to draw one shape.
type Item struct {
	ID       string
	Label    string
	Kind     shape.Kind
	W, H     float64
	Path     []geom.Point // line vertices, or curve start/control/end
	Selected bool
}

// Line is a link segment between two world points.
type Line struct {
	ID             string
	X1, Y1, X2, Y2 float64
}

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
)

// FontSize picks a label size that fits a w×h box.
func FontSize(w, h float64, label string) float64 {
	n := max(1, len(label))
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func pointList(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// Simple draws flat white shapes with dark outlines.
type Simple struct{}

const (
	simpleStroke   = "#333"
	simpleSelected = "#1e88e5"
	simpleGuide    = "#e91e63"
	simpleGrid     = "#eceff1"
)

func (Simple) RenderDefs(buf *bytes.Buffer, grid float64) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n", simpleStroke)
	if grid > 0 {
		fmt.Fprintf(buf, `    <pattern id="grid" width="%.2f" height="%.2f" patternUnits="userSpaceOnUse"><path d="M %.2f 0 L 0 0 0 %.2f" fill="none" stroke="%s" stroke-width="1"/></pattern>`+"\n",
			grid, grid, grid, grid, simpleGrid)
	}
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderGrid(buf *bytes.Buffer, frame geom.Rect) {
	fmt.Fprintf(buf, `  <rect class="grid" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#grid)"/>`+"\n",
		frame.X, frame.Y, frame.Width, frame.Height)
}

func (Simple) RenderShape(buf *bytes.Buffer, it Item) {
	stroke := simpleStroke
	if it.Selected {
		stroke = simpleSelected
	}
	id := EscapeXML(it.ID)
	switch it.Kind {
	case shape.KindEllipse:
		fmt.Fprintf(buf, `    <ellipse id="shape-%s" class="shape" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="white" stroke="%s" stroke-width="2"/>`+"\n",
			id, it.W/2, it.H/2, it.W/2, it.H/2, stroke)
	case shape.KindImage:
		fmt.Fprintf(buf, `    <rect id="shape-%s" class="shape image" x="0.00" y="0.00" width="%.2f" height="%.2f" fill="#f5f5f5" stroke="%s" stroke-width="2" stroke-dasharray="6 4"/>`+"\n",
			id, it.W, it.H, stroke)
		fmt.Fprintf(buf, `    <path d="M 0 0 L %.2f %.2f M %.2f 0 L 0 %.2f" stroke="#bbb" stroke-width="1"/>`+"\n",
			it.W, it.H, it.W, it.H)
	case shape.KindPolyline:
		fmt.Fprintf(buf, `    <polyline id="shape-%s" class="shape line" points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			id, pointList(it.Path), stroke)
	case shape.KindCurve:
		if len(it.Path) != 3 {
			return
		}
		s, c, e := it.Path[0], it.Path[1], it.Path[2]
		fmt.Fprintf(buf, `    <path id="shape-%s" class="shape curve" d="M %.2f %.2f Q %.2f %.2f %.2f %.2f" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			id, s.X, s.Y, c.X, c.Y, e.X, e.Y, stroke)
	default:
		fmt.Fprintf(buf, `    <rect id="shape-%s" class="shape" x="0.00" y="0.00" width="%.2f" height="%.2f" fill="white" stroke="%s" stroke-width="2"/>`+"\n",
			id, it.W, it.H, stroke)
	}
}

func (Simple) RenderLabel(buf *bytes.Buffer, it Item) {
	if it.Label == "" {
		return
	}
	fmt.Fprintf(buf, `    <text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		it.W/2, it.H/2, FontSize(it.W, it.H, it.Label), simpleStroke, EscapeXML(it.Label))
}

func (Simple) RenderHandle(buf *bytes.Buffer, h shape.Handle) {
	switch {
	case h.Role == shape.RoleRotate:
		fmt.Fprintf(buf, `    <circle class="handle rotate" cx="%.2f" cy="%.2f" r="5" fill="%s"/>`+"\n", h.Pos.X, h.Pos.Y, simpleSelected)
	case h.Role == shape.RoleManual && !h.Committed:
		fmt.Fprintf(buf, `    <circle class="handle bend" cx="%.2f" cy="%.2f" r="3" fill="white" stroke="%s" opacity="0.6"/>`+"\n", h.Pos.X, h.Pos.Y, simpleSelected)
	default:
		fmt.Fprintf(buf, `    <rect class="handle" data-role="%s" x="%.2f" y="%.2f" width="8" height="8" fill="white" stroke="%s"/>`+"\n",
			h.Role, h.Pos.X-4, h.Pos.Y-4, simpleSelected)
	}
}

func (Simple) RenderLink(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `  <line id="link-%s" class="link" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		EscapeXML(l.ID), l.X1, l.Y1, l.X2, l.Y2, simpleStroke)
}

func (Simple) RenderGuide(buf *bytes.Buffer, g snap.Guide) {
	fmt.Fprintf(buf, `  <line class="guide" data-axis="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1" stroke-dasharray="4 2"/>`+"\n",
		g.Axis, g.From.X, g.From.Y, g.To.X, g.To.Y, simpleGuide)
}
