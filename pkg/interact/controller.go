package interact

import (
	"context"
	"time"

	"github.com/matzehuels/snapboard/pkg/adjust"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/handles"
	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/observability"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// Defaults for Options fields left zero.
const (
	DefaultHandleRadius = 6.0
	DefaultHitTolerance = 3.0
)

// DefaultCreateSize is the size of a shape created by a click without drag.
var DefaultCreateSize = geom.Pt(120, 80)

const cleanupLayers = scene.LayerLinks | scene.LayerPreview | scene.LayerGuides

// Options configure a Controller.
type Options struct {
	Snap       snap.Flags
	ResizeSnap bool
	// Threshold is the grid/stage snap distance in screen pixels.
	Threshold float64
	AngleStep float64
	// HandleRadius and HitTolerance are in screen pixels.
	HandleRadius float64
	HitTolerance float64
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = snap.DefaultThreshold
	}
	if o.HandleRadius <= 0 {
		o.HandleRadius = DefaultHandleRadius
	}
	if o.HitTolerance <= 0 {
		o.HitTolerance = DefaultHitTolerance
	}
	return o
}

// Controller drives gestures on a scene.
type Controller struct {
	sc      *scene.Scene
	handles *handles.Manager
	hist    history.Committer
	view    geom.ViewTransform
	opts    Options

	state   State
	gesture Gesture
	tool    shape.Kind
	subject string
	started time.Time
	frames  int

	// move gesture
	moving      []*shape.Shape
	snapshots   []shape.Snapshot
	origin      geom.Point
	startBounds geom.Rect
	moved       bool
	last        snap.Result
}

// New returns an idle controller over sc. hist may be nil.
func New(sc *scene.Scene, hist history.Committer, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		sc:   sc,
		hist: hist,
		view: geom.Identity(),
		opts: opts,
	}
	c.handles = handles.NewManager(sc, hist, c.handleOptions())
	for _, s := range sc.Shapes() {
		c.handles.CreateHandles(s)
	}
	return c
}

func (c *Controller) handleOptions() handles.Options {
	return handles.Options{
		ResizeSnap: c.opts.ResizeSnap,
		Threshold:  c.opts.Threshold,
		AngleStep:  c.opts.AngleStep,
	}
}

// Scene returns the controlled scene.
func (c *Controller) Scene() *scene.Scene { return c.sc }

// Handles returns the handle manager.
func (c *Controller) Handles() *handles.Manager { return c.handles }

// View returns the current view transform.
func (c *Controller) View() geom.ViewTransform { return c.view }

// SetView replaces the view transform. It takes effect on the next event.
func (c *Controller) SetView(v geom.ViewTransform) { c.view = v }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Gesture returns the running gesture, or GestureNone when idle.
func (c *Controller) Gesture() Gesture { return c.gesture }

// LastSnap returns the snap result of the latest move frame.
func (c *Controller) LastSnap() snap.Result { return c.last }

// Arm makes the next pointer-down on the canvas create a shape of kind k.
func (c *Controller) Arm(k shape.Kind) { c.tool = k }

// Disarm clears the armed tool.
func (c *Controller) Disarm() { c.tool = "" }

// Armed returns the armed tool kind, if any.
func (c *Controller) Armed() (shape.Kind, bool) { return c.tool, c.tool != "" }

// Add inserts s into the scene and creates its handles.
func (c *Controller) Add(s *shape.Shape) error {
	if err := c.sc.Add(s); err != nil {
		return err
	}
	c.handles.CreateHandles(s)
	c.sc.Redraw(scene.LayerShapes | scene.LayerHandles)
	return nil
}

// Remove deletes a shape, its links and its handle bindings.
func (c *Controller) Remove(id string) bool {
	if !c.sc.Remove(id) {
		return false
	}
	c.handles.Forget(id)
	c.sc.Redraw(scene.LayerAll)
	return true
}

// PointerDown starts a gesture at the screen position pos. Hit priority is
// armed tool, then handles of selected or hovered shapes, then shapes. A
// press on empty canvas clears the selection and starts nothing. A press
// while dragging is ignored.
func (c *Controller) PointerDown(ctx context.Context, pos geom.Point) Gesture {
	if c.state == StateDragging {
		observability.Gesture().OnGestureIgnored(ctx, c.gesture.String())
		return GestureNone
	}
	w := c.view.ToWorld(pos)

	if c.tool != "" {
		return c.beginCreate(ctx, pos, w)
	}
	if s, h, ok := c.sc.HandleAt(w, c.view.WorldLength(c.opts.HandleRadius)); ok {
		if _, ok := c.handles.Begin(s, h, pos, c.view); ok {
			return c.begin(ctx, gestureFor(h.Role), s.ID())
		}
	}
	if s, ok := c.sc.HitTest(w, c.view.WorldLength(c.opts.HitTolerance)); ok {
		return c.beginMove(ctx, s, w)
	}
	if len(c.sc.Selected()) > 0 {
		c.sc.Select()
		c.sc.Redraw(scene.LayerHandles | scene.LayerShapes)
	}
	return GestureNone
}

func (c *Controller) begin(ctx context.Context, g Gesture, subject string) Gesture {
	c.state = StateDragging
	c.gesture = g
	c.subject = subject
	c.started = time.Now()
	c.frames = 0
	observability.Gesture().OnGestureStart(ctx, g.String(), subject)
	return g
}

func (c *Controller) beginCreate(ctx context.Context, pos, w geom.Point) Gesture {
	kind := c.tool
	c.tool = ""
	if !kind.Valid() {
		return GestureNone
	}

	var (
		s    *shape.Shape
		role = shape.RoleBottomRight
	)
	switch kind.Family() {
	case shape.FamilyBox:
		s = shape.NewBox(kind, geom.Rect{X: w.X, Y: w.Y, Width: shape.MinSize, Height: shape.MinSize})
	case shape.FamilyLine:
		s = shape.NewPolyline(w, w.Add(geom.Pt(shape.MinSize, 0)))
		role = shape.RoleEnd
	case shape.FamilyCurve:
		s = shape.NewCurve(w, w.Add(geom.Pt(shape.MinSize, 0)), 0.25)
		role = shape.RoleEnd
	}
	if err := c.Add(s); err != nil {
		return GestureNone
	}
	c.sc.Select(s.ID())
	h, ok := s.Handles().Find(role, 0)
	if !ok {
		return GestureNone
	}
	if _, ok := c.handles.Begin(s, h, c.view.ToScreen(s.AbsolutePoint(h.Pos)), c.view); !ok {
		return GestureNone
	}
	return c.begin(ctx, GestureCreate, s.ID())
}

func (c *Controller) beginMove(ctx context.Context, s *shape.Shape, w geom.Point) Gesture {
	if !c.sc.IsSelected(s.ID()) {
		c.sc.Select(s.ID())
	}
	c.moving = c.sc.Selected()
	c.snapshots = make([]shape.Snapshot, len(c.moving))
	for i, m := range c.moving {
		c.snapshots[i] = shape.TakeSnapshot(m)
	}
	c.startBounds, _ = c.sc.SelectionBounds()
	c.origin = w
	c.moved = false
	c.sc.Redraw(scene.LayerHandles | scene.LayerShapes)
	return c.begin(ctx, GestureMove, s.ID())
}

// PointerMove advances the running gesture. When idle it behaves like Hover.
func (c *Controller) PointerMove(ctx context.Context, pos geom.Point) {
	if c.state != StateDragging {
		c.Hover(ctx, pos)
		return
	}
	c.frames++
	switch c.gesture {
	case GestureMove:
		c.moveFrame(ctx, pos)
	default:
		c.handles.Move(pos)
	}
}

func (c *Controller) moveFrame(ctx context.Context, pos geom.Point) {
	delta := c.view.ToWorld(pos).Sub(c.origin)
	ids := make([]string, len(c.moving))
	for i, m := range c.moving {
		ids[i] = m.ID()
	}
	res := snap.Compute(snap.Request{
		Moving:    c.startBounds.Translate(delta.X, delta.Y),
		Others:    c.sc.Targets(ids...),
		Grid:      c.sc.Grid,
		Stage:     c.sc.Stage,
		View:      c.view,
		Threshold: c.opts.Threshold,
		Flags:     c.opts.Snap,
	})
	delta = delta.Add(res.Offset)
	for i, m := range c.moving {
		adjust.Move(m, c.snapshots[i], delta)
	}
	c.moved = c.moved || delta != (geom.Point{})
	c.last = res
	c.sc.Overlay().Replace(res.Guides)
	reportSnap(ctx, res)
	c.sc.Redraw(scene.LayerShapes | scene.LayerHandles | scene.LayerLinks | scene.LayerPreview | scene.LayerGuides)
}

func reportSnap(ctx context.Context, res snap.Result) {
	hooks := observability.Snap()
	if res.X != snap.SourceNone {
		hooks.OnSnap(ctx, snap.AxisX.String(), res.X.String(), res.Offset.X, len(res.Guides))
	}
	if res.Y != snap.SourceNone {
		hooks.OnSnap(ctx, snap.AxisY.String(), res.Y.String(), res.Offset.Y, len(res.Guides))
	}
}

// PointerUp ends the running gesture. The controller is idle afterwards
// whatever the outcome; the returned error is a history failure.
func (c *Controller) PointerUp(ctx context.Context, pos geom.Point) error {
	if c.state != StateDragging {
		return nil
	}
	var err error
	switch c.gesture {
	case GestureMove:
		if c.moved {
			err = handles.Commit(ctx, c.hist, "move", c.sc.Document())
		}
		c.moving, c.snapshots = nil, nil
	case GestureCreate:
		if d, ok := c.handles.Active(); ok && !d.Changed {
			c.defaultSize(d.Shape)
			d.Changed = true
		}
		err = c.handles.End(ctx)
	default:
		err = c.handles.End(ctx)
	}

	c.sc.Overlay().Clear()
	c.sc.Redraw(cleanupLayers)
	observability.Gesture().OnGestureEnd(ctx, c.gesture.String(), c.subject, c.frames, time.Since(c.started))

	c.state = StateIdle
	c.gesture = GestureNone
	c.subject = ""
	c.last = snap.Result{}
	return err
}

// defaultSize gives a shape created by a plain click a usable size.
func (c *Controller) defaultSize(s *shape.Shape) {
	switch s.Kind().Family() {
	case shape.FamilyBox:
		s.SetSize(DefaultCreateSize.X, DefaultCreateSize.Y)
	default:
		start, _, ok := s.Endpoints()
		if ok {
			s.SetEndpoint(shape.RoleEnd, start.Add(geom.Pt(DefaultCreateSize.X, 0)))
		}
	}
}

// Hover updates the hovered shape from the screen position pos and returns
// its ID, or "" when nothing is under the pointer. It does nothing while
// dragging.
func (c *Controller) Hover(_ context.Context, pos geom.Point) string {
	if c.state == StateDragging {
		return c.sc.Hovered()
	}
	w := c.view.ToWorld(pos)
	prev, hadPrev := c.sc.Shape(c.sc.Hovered())

	var target *shape.Shape
	if s, _, ok := c.sc.HandleAt(w, c.view.WorldLength(c.opts.HandleRadius)); ok {
		target = s
	} else if s, ok := c.sc.HitTest(w, c.view.WorldLength(c.opts.HitTolerance)); ok {
		target = s
	}
	switch {
	case target != nil:
		if !hadPrev || prev != target {
			c.handles.Hover(target, true)
		}
		return target.ID()
	case hadPrev:
		c.handles.Hover(prev, false)
	}
	return ""
}
