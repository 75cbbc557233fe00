package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// compass maps connection point directions onto Graphviz port compass points.
var compass = map[shape.Direction]string{
	shape.DirTop:    "n",
	shape.DirBottom: "s",
	shape.DirLeft:   "w",
	shape.DirRight:  "e",
}

// ToDOT converts the scene to Graphviz DOT. Every shape becomes a node pinned
// at its center (Graphviz y grows upward, so y is negated); links become
// edges using compass ports for side connection points. Line and curve
// shapes are drawn as points.
func ToDOT(sc *scene.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=14, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, s := range sc.Shapes() {
		c := s.Center()
		fmt.Fprintf(&buf, "  %q [%s, pos=\"%.2f,%.2f!\"];\n", s.ID(), nodeAttrs(s), c.X, -c.Y)
	}

	buf.WriteString("\n")
	for _, l := range sc.Links() {
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", scene.OwnerOf(l.From), scene.OwnerOf(l.To), edgeAttrs(sc, l))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(s *shape.Shape) string {
	if s.Kind().Family() != shape.FamilyBox {
		return `shape=point, width=0.08`
	}
	w, h := s.Size()
	label := s.Label()
	if label == "" {
		label = shortID(s.ID())
	}
	kind := "box"
	switch s.Kind() {
	case shape.KindEllipse:
		kind = "ellipse"
	case shape.KindImage:
		kind = "box, style=\"filled,dashed\""
	}
	return fmt.Sprintf("shape=%s, label=%q, width=%.3f, height=%.3f, orientation=%.2f", kind, label, w/72, h/72, -s.Rotation())
}

func edgeAttrs(sc *scene.Scene, l scene.Link) string {
	var attrs []string
	if p := portOf(sc, l.From); p != "" {
		attrs = append(attrs, fmt.Sprintf("tailport=%s", p))
	}
	if p := portOf(sc, l.To); p != "" {
		attrs = append(attrs, fmt.Sprintf("headport=%s", p))
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

func portOf(sc *scene.Scene, cp string) string {
	s, ok := sc.Shape(scene.OwnerOf(cp))
	if !ok {
		return ""
	}
	c, ok := s.ConnectionPoint(cp)
	if !ok {
		return ""
	}
	return compass[c.Direction]
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderDOT lays out a DOT graph with neato and returns SVG.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.SetLayout(graphviz.NEATO).Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return buf.Bytes(), nil
}
