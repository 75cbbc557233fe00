package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// DefaultGridSize is the grid cell size of a new scene.
const DefaultGridSize = snap.DefaultGridSize

// Link connects two connection points. From and To are connection point
// IDs of the form "<shapeID>:<direction>".
type Link struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Scene is an ordered set of shapes (later shapes paint on top) plus links,
// selection, hover and the guide overlay.
type Scene struct {
	Grid  float64
	Stage geom.Rect

	shapes   []*shape.Shape
	links    []Link
	selected map[string]bool
	hovered  string
	overlay  snap.Overlay
	redrawer Redrawer
	nextLink int
}

// New returns an empty scene with the default grid.
func New() *Scene {
	return &Scene{Grid: DefaultGridSize, selected: make(map[string]bool)}
}

// SetRedrawer installs the repaint target. A nil r discards requests.
func (sc *Scene) SetRedrawer(r Redrawer) { sc.redrawer = r }

// Redraw forwards a selective repaint request.
func (sc *Scene) Redraw(layers Layer) {
	if sc.redrawer != nil && layers != LayerNone {
		sc.redrawer.Redraw(layers)
	}
}

// Overlay returns the guide overlay.
func (sc *Scene) Overlay() *snap.Overlay { return &sc.overlay }

// Add appends s on top of the paint order.
func (sc *Scene) Add(s *shape.Shape) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil shape")
	}
	if _, ok := sc.Shape(s.ID()); ok {
		return errors.New(errors.ErrCodeInvalidDocument, "duplicate shape id %q", s.ID())
	}
	sc.shapes = append(sc.shapes, s)
	return nil
}

// Remove deletes a shape and every link attached to it.
func (sc *Scene) Remove(id string) bool {
	i := sc.indexOf(id)
	if i < 0 {
		return false
	}
	sc.shapes = slices.Delete(sc.shapes, i, i+1)
	sc.links = slices.DeleteFunc(sc.links, func(l Link) bool {
		return OwnerOf(l.From) == id || OwnerOf(l.To) == id
	})
	delete(sc.selected, id)
	if sc.hovered == id {
		sc.hovered = ""
	}
	return true
}

func (sc *Scene) indexOf(id string) int {
	return slices.IndexFunc(sc.shapes, func(s *shape.Shape) bool { return s.ID() == id })
}

// Shape looks a shape up by ID.
func (sc *Scene) Shape(id string) (*shape.Shape, bool) {
	if i := sc.indexOf(id); i >= 0 {
		return sc.shapes[i], true
	}
	return nil, false
}

// Shapes returns the shapes in paint order.
func (sc *Scene) Shapes() []*shape.Shape { return slices.Clone(sc.shapes) }

// Len returns the number of shapes.
func (sc *Scene) Len() int { return len(sc.shapes) }

// Connect links two connection points.
func (sc *Scene) Connect(from, to string) (Link, error) {
	for _, cp := range []string{from, to} {
		if _, ok := sc.ConnectionAbsolute(cp); !ok {
			return Link{}, errors.New(errors.ErrCodeMissingReference, "unknown connection point %q", cp)
		}
	}
	l := Link{ID: sc.newLinkID(), From: from, To: to}
	sc.links = append(sc.links, l)
	return l, nil
}

func (sc *Scene) newLinkID() string {
	for {
		sc.nextLink++
		id := fmt.Sprintf("link-%d", sc.nextLink)
		if !slices.ContainsFunc(sc.links, func(l Link) bool { return l.ID == id }) {
			return id
		}
	}
}

// Links returns every link.
func (sc *Scene) Links() []Link { return slices.Clone(sc.links) }

// OwnerOf returns the shape ID part of a connection point ID.
func OwnerOf(cp string) string {
	if i := strings.LastIndexByte(cp, ':'); i >= 0 {
		return cp[:i]
	}
	return cp
}

// ConnectionAbsolute resolves a connection point ID to a world position.
func (sc *Scene) ConnectionAbsolute(cp string) (geom.Point, bool) {
	s, ok := sc.Shape(OwnerOf(cp))
	if !ok {
		return geom.Point{}, false
	}
	return s.ConnectionAbsolute(cp)
}

// LinkEndpoints returns the current world endpoints of l. Links follow
// their shapes because connection points are re-derived on every mutation.
func (sc *Scene) LinkEndpoints(l Link) (from, to geom.Point, ok bool) {
	from, okFrom := sc.ConnectionAbsolute(l.From)
	to, okTo := sc.ConnectionAbsolute(l.To)
	return from, to, okFrom && okTo
}

// LinksOf returns the links attached to a shape.
func (sc *Scene) LinksOf(id string) []Link {
	var out []Link
	for _, l := range sc.links {
		if OwnerOf(l.From) == id || OwnerOf(l.To) == id {
			out = append(out, l)
		}
	}
	return out
}

// Select replaces the selection.
func (sc *Scene) Select(ids ...string) {
	clear(sc.selected)
	for _, id := range ids {
		if _, ok := sc.Shape(id); ok {
			sc.selected[id] = true
		}
	}
}

// Toggle adds or removes one shape from the selection.
func (sc *Scene) Toggle(id string) {
	if sc.selected[id] {
		delete(sc.selected, id)
		return
	}
	if _, ok := sc.Shape(id); ok {
		sc.selected[id] = true
	}
}

// IsSelected reports whether id is selected.
func (sc *Scene) IsSelected(id string) bool { return sc.selected[id] }

// Selected returns the selected shapes in paint order.
func (sc *Scene) Selected() []*shape.Shape {
	var out []*shape.Shape
	for _, s := range sc.shapes {
		if sc.selected[s.ID()] {
			out = append(out, s)
		}
	}
	return out
}

// SelectionBounds returns the union of the selected shapes' world bounds.
func (sc *Scene) SelectionBounds() (geom.Rect, bool) {
	sel := sc.Selected()
	if len(sel) == 0 {
		return geom.Rect{}, false
	}
	r := sel[0].ClientRect()
	for _, s := range sel[1:] {
		r = r.Union(s.ClientRect())
	}
	return r, true
}

// SetHover marks a shape as hovered; an empty id clears it.
func (sc *Scene) SetHover(id string) { sc.hovered = id }

// Hovered returns the hovered shape ID.
func (sc *Scene) Hovered() string { return sc.hovered }

// HitTest returns the topmost shape containing the world point p.
func (sc *Scene) HitTest(p geom.Point, tolerance float64) (*shape.Shape, bool) {
	for i := len(sc.shapes) - 1; i >= 0; i-- {
		if sc.shapes[i].Contains(p, tolerance) {
			return sc.shapes[i], true
		}
	}
	return nil, false
}

// HandleAt returns the handle of a selected or hovered shape nearest to the
// world point p within radius.
func (sc *Scene) HandleAt(p geom.Point, radius float64) (*shape.Shape, shape.Handle, bool) {
	var (
		bestShape *shape.Shape
		best      shape.Handle
		bestDist  = radius
		found     bool
	)
	for i := len(sc.shapes) - 1; i >= 0; i-- {
		s := sc.shapes[i]
		if !sc.selected[s.ID()] && sc.hovered != s.ID() {
			continue
		}
		for _, h := range s.Handles().All() {
			if d := geom.Distance(s.AbsolutePoint(h.Pos), p); d <= bestDist {
				bestShape, best, bestDist, found = s, h, d, true
			}
		}
	}
	return bestShape, best, found
}

// Targets returns snap targets for every shape not in exclude.
func (sc *Scene) Targets(exclude ...string) []snap.Target {
	out := make([]snap.Target, 0, len(sc.shapes))
	for _, s := range sc.shapes {
		if slices.Contains(exclude, s.ID()) {
			continue
		}
		out = append(out, snap.Target{ID: s.ID(), Rect: s.ClientRect()})
	}
	return out
}

// Bounds returns the union of all shape bounds.
func (sc *Scene) Bounds() geom.Rect {
	if len(sc.shapes) == 0 {
		return geom.Rect{}
	}
	r := sc.shapes[0].ClientRect()
	for _, s := range sc.shapes[1:] {
		r = r.Union(s.ClientRect())
	}
	return r
}
