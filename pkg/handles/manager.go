package handles

import (
	"context"

	"github.com/matzehuels/snapboard/pkg/adjust"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// Layers repainted after every drag frame.
const dragLayers = scene.LayerHandles | scene.LayerLinks | scene.LayerPreview

// Drag is the state of one handle gesture.
type Drag struct {
	Shape    *shape.Shape
	Target   adjust.Target
	Snapshot shape.Snapshot
	// Start is the pointer (screen) at drag start, Pointer the latest one.
	Start   geom.Point
	Pointer geom.Point
	View    geom.ViewTransform
	Frames  int
	// Changed is set once any frame modified the shape.
	Changed bool
}

type (
	// StartFunc runs on pointer-down over a handle.
	StartFunc func(d *Drag)
	// MoveFunc runs on every pointer move while dragging.
	MoveFunc func(d *Drag)
	// EndFunc runs on pointer-up.
	EndFunc func(ctx context.Context, d *Drag) error
)

type binding struct {
	start StartFunc
	move  MoveFunc
	end   EndFunc
}

type bindingKey struct {
	shapeID string
	role    shape.Role
	index   int
}

// Options tune the standard drag behavior.
type Options struct {
	// ResizeSnap enables grid/stage snapping of resize pointers.
	ResizeSnap bool
	// Threshold is the resize snap distance in screen pixels.
	Threshold float64
	// AngleStep snaps rotation to multiples of this many degrees.
	AngleStep float64
}

// Manager owns handle bindings and the active drag for a scene.
type Manager struct {
	sc       *scene.Scene
	hist     history.Committer
	opts     Options
	bindings map[bindingKey]binding
	active   *Drag
}

// NewManager returns a manager for sc. hist may be nil.
func NewManager(sc *scene.Scene, hist history.Committer, opts Options) *Manager {
	return &Manager{
		sc:       sc,
		hist:     hist,
		opts:     opts,
		bindings: make(map[bindingKey]binding),
	}
}

// SetOptions replaces the drag options.
func (m *Manager) SetOptions(opts Options) { m.opts = opts }

// CreateHandles derives the handle set of s, hides it, and binds the
// standard drag behavior to every handle.
func (m *Manager) CreateHandles(s *shape.Shape) *shape.HandleSet {
	s.Derive()
	hs := s.Handles()
	for _, h := range hs.All() {
		m.BindDrag(s, h, m.startStandard, m.moveStandard, m.endStandard)
	}
	m.applyVisibility(s)
	return hs
}

// UpdateHandlePositions re-derives handle positions from the shape's
// geometry and rebinds handles that appeared since the last call (line
// bends).
func (m *Manager) UpdateHandlePositions(s *shape.Shape) {
	s.Derive()
	for _, h := range s.Handles().All() {
		k := keyFor(s, h)
		if _, ok := m.bindings[k]; !ok {
			m.bindings[k] = m.standard()
		}
	}
	m.applyVisibility(s)
	m.sc.Redraw(scene.LayerHandles)
}

// BindDrag attaches callbacks to a handle, replacing any previous binding.
// Nil callbacks are no-ops.
func (m *Manager) BindDrag(s *shape.Shape, h shape.Handle, onStart StartFunc, onMove MoveFunc, onEnd EndFunc) {
	m.bindings[keyFor(s, h)] = binding{onStart, onMove, onEnd}
}

// Forget drops every binding of a shape.
func (m *Manager) Forget(shapeID string) {
	for k := range m.bindings {
		if k.shapeID == shapeID {
			delete(m.bindings, k)
		}
	}
}

func keyFor(s *shape.Shape, h shape.Handle) bindingKey {
	k := bindingKey{shapeID: s.ID(), role: h.Role}
	if h.Role == shape.RoleManual {
		k.index = h.Index
	}
	return k
}

// Active returns the running drag, if any.
func (m *Manager) Active() (*Drag, bool) { return m.active, m.active != nil }

// Hover marks s as hovered or not and updates handle visibility.
func (m *Manager) Hover(s *shape.Shape, on bool) {
	prev, hadPrev := m.sc.Shape(m.sc.Hovered())
	switch {
	case on:
		m.sc.SetHover(s.ID())
	case m.sc.Hovered() == s.ID():
		m.sc.SetHover("")
	}
	if hadPrev && prev != s {
		m.applyVisibility(prev)
	}
	m.applyVisibility(s)
	m.sc.Redraw(scene.LayerHandles)
}

// Visible reports whether handle h of s should be drawn now.
func (m *Manager) Visible(s *shape.Shape, h shape.Handle) bool {
	if d := m.active; d != nil {
		if d.Shape != s {
			return false
		}
		if h.Role == d.Target.Role && (h.Role != shape.RoleManual || h.Index == d.Target.Index) {
			return true
		}
		return s.Kind() == shape.KindPolyline && (h.Role == shape.RoleStart || h.Role == shape.RoleEnd)
	}
	return m.sc.Hovered() == s.ID()
}

func (m *Manager) applyVisibility(s *shape.Shape) {
	s.Handles().SetVisibility(func(h shape.Handle) bool { return m.Visible(s, h) })
}

// Begin starts dragging handle h of s at the screen pointer. It reports
// false when a drag is already running or the handle is unknown.
func (m *Manager) Begin(s *shape.Shape, h shape.Handle, pointer geom.Point, view geom.ViewTransform) (*Drag, bool) {
	if m.active != nil {
		return nil, false
	}
	if _, ok := s.Handles().Find(h.Role, h.Index); !ok {
		return nil, false
	}
	d := &Drag{
		Shape:   s,
		Target:  adjust.Target{Role: h.Role, Index: h.Index},
		Start:   pointer,
		Pointer: pointer,
		View:    view,
	}
	m.active = d
	if b := m.bindingFor(d); b.start != nil {
		b.start(d)
	}
	m.applyVisibility(s)
	m.sc.Redraw(scene.LayerHandles)
	return d, true
}

// Move feeds a pointer move into the running drag.
func (m *Manager) Move(pointer geom.Point) bool {
	d := m.active
	if d == nil {
		return false
	}
	d.Pointer = pointer
	d.Frames++
	if b := m.bindingFor(d); b.move != nil {
		b.move(d)
	}
	return true
}

// End finishes the running drag. It always clears the drag state and
// restores visibility, even when the end callback fails.
func (m *Manager) End(ctx context.Context) error {
	d := m.active
	if d == nil {
		return nil
	}
	var err error
	if b := m.bindingFor(d); b.end != nil {
		err = b.end(ctx, d)
	}
	d.Snapshot = shape.Snapshot{}
	m.active = nil
	// a committed bend may have added placeholder handles
	m.UpdateHandlePositions(d.Shape)
	m.sc.Redraw(dragLayers)
	return err
}

// bindingFor returns the handle's binding, falling back to the standard one.
func (m *Manager) bindingFor(d *Drag) binding {
	k := keyFor(d.Shape, shape.Handle{Role: d.Target.Role, Index: d.Target.Index})
	if b, ok := m.bindings[k]; ok {
		return b
	}
	return m.standard()
}

func (m *Manager) standard() binding {
	return binding{m.startStandard, m.moveStandard, m.endStandard}
}

func (m *Manager) startStandard(d *Drag) {
	d.Snapshot = shape.TakeSnapshot(d.Shape)
}

func (m *Manager) moveStandard(d *Drag) {
	var res adjust.Result
	if d.Target.Role == shape.RoleRotate {
		res = adjust.Rotate(d.Shape, d.Snapshot, d.Pointer, d.View, m.opts.AngleStep)
	} else {
		res = adjust.Adjust(d.Shape, d.Snapshot, d.Target, m.resizePointer(d), d.View)
	}
	if !res.Changed {
		return
	}
	d.Changed = true
	m.applyVisibility(d.Shape)
	m.sc.Redraw(dragLayers)
}

// resizePointer applies resize-time grid/stage snapping to box handles.
func (m *Manager) resizePointer(d *Drag) geom.Point {
	if !m.opts.ResizeSnap || !d.Target.Role.IsBox() {
		return d.Pointer
	}
	return snap.Resize(snap.ResizeRequest{
		Pointer:   d.Pointer,
		Role:      d.Target.Role,
		Grid:      m.sc.Grid,
		Stage:     m.sc.Stage,
		View:      d.View,
		Threshold: m.opts.Threshold,
	}).Pointer
}

func (m *Manager) endStandard(ctx context.Context, d *Drag) error {
	if !d.Changed {
		return nil
	}
	return Commit(ctx, m.hist, gestureLabel(d.Target.Role), m.sc.Document())
}

func gestureLabel(r shape.Role) string {
	switch r {
	case shape.RoleRotate:
		return "rotate"
	case shape.RoleManual:
		return "bend"
	case shape.RoleStart, shape.RoleEnd:
		return "reshape"
	}
	return "resize"
}

type labeledCommitter interface {
	CommitLabeled(ctx context.Context, label string, doc scene.Document) error
}

// Commit records doc in hist, with a label when the committer supports one.
// A nil committer does nothing.
func Commit(ctx context.Context, hist history.Committer, label string, doc scene.Document) error {
	if hist == nil {
		return nil
	}
	if lc, ok := hist.(labeledCommitter); ok {
		return lc.CommitLabeled(ctx, label, doc)
	}
	return hist.Commit(ctx, doc)
}
