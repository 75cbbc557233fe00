package scene

import "strings"

// Layer is a bitmask of visual layers that need repainting.
type Layer uint8

const (
	LayerShapes Layer = 1 << iota
	LayerHandles
	LayerLinks
	LayerPreview
	LayerGuides

	LayerNone Layer = 0
	LayerAll        = LayerShapes | LayerHandles | LayerLinks | LayerPreview | LayerGuides
)

var layerNames = []struct {
	l    Layer
	name string
}{
	{LayerShapes, "shapes"},
	{LayerHandles, "handles"},
	{LayerLinks, "links"},
	{LayerPreview, "preview"},
	{LayerGuides, "guides"},
}

// Has reports whether every layer in o is set in l.
func (l Layer) Has(o Layer) bool { return l&o == o }

func (l Layer) String() string {
	if l == LayerNone {
		return "none"
	}
	var parts []string
	for _, n := range layerNames {
		if l&n.l != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Redrawer repaints the named layers.
type Redrawer interface {
	Redraw(layers Layer)
}

// RedrawFunc adapts a function to Redrawer.
type RedrawFunc func(Layer)

// Redraw calls f(layers).
func (f RedrawFunc) Redraw(layers Layer) { f(layers) }

// Recorder accumulates redraw requests until they are taken. Event loops
// that repaint once per frame use it to coalesce requests.
type Recorder struct {
	pending Layer
	calls   int
}

// Redraw marks layers as stale.
func (r *Recorder) Redraw(layers Layer) {
	r.pending |= layers
	r.calls++
}

// Take returns the pending layers and resets them.
func (r *Recorder) Take() Layer {
	l := r.pending
	r.pending = LayerNone
	return l
}

// Pending returns the stale layers without resetting them.
func (r *Recorder) Pending() Layer { return r.pending }

// Calls returns how many Redraw calls were recorded.
func (r *Recorder) Calls() int { return r.calls }
