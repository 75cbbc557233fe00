package interact

import (
	"context"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// MoveBy runs a whole move gesture on the given shapes, as if they were
// dragged by delta world units in one frame, and returns the snap result of
// that frame. A failure to record the move in history is returned with the
// result as an ErrCodeStorage error; the move itself has happened.
func (c *Controller) MoveBy(ctx context.Context, ids []string, delta geom.Point) (snap.Result, error) {
	if c.state == StateDragging {
		return snap.Result{}, errors.New(errors.ErrCodeInvalidInput, "a %s gesture is in progress", c.gesture)
	}
	if len(ids) == 0 {
		return snap.Result{}, errors.New(errors.ErrCodeInvalidInput, "no shapes to move")
	}
	for _, id := range ids {
		if _, ok := c.sc.Shape(id); !ok {
			return snap.Result{}, errors.New(errors.ErrCodeMissingReference, "shape %q not found", id)
		}
	}
	c.sc.Select(ids...)
	first, _ := c.sc.Shape(ids[0])
	c.beginMove(ctx, first, geom.Point{})

	end := c.view.ToScreen(delta)
	c.PointerMove(ctx, end)
	res := c.last
	return res, historyError(c.PointerUp(ctx, end))
}

// DragHandle runs a whole handle gesture on shape id: press on the handle,
// move to the screen point to, release. It reports whether the shape changed.
// History failures are reported as in MoveBy.
func (c *Controller) DragHandle(ctx context.Context, id string, role shape.Role, index int, to geom.Point) (bool, error) {
	if c.state == StateDragging {
		return false, errors.New(errors.ErrCodeInvalidInput, "a %s gesture is in progress", c.gesture)
	}
	s, ok := c.sc.Shape(id)
	if !ok {
		return false, errors.New(errors.ErrCodeMissingReference, "shape %q not found", id)
	}
	h, ok := s.Handles().Find(role, index)
	if !ok {
		return false, errors.New(errors.ErrCodeMissingReference, "shape %q has no %s handle", id, role)
	}
	from := c.view.ToScreen(s.AbsolutePoint(h.Pos))
	if _, ok := c.handles.Begin(s, h, from, c.view); !ok {
		return false, errors.New(errors.ErrCodeInternal, "handle drag refused")
	}
	c.begin(ctx, gestureFor(role), id)

	c.PointerMove(ctx, to)
	d, _ := c.handles.Active()
	changed := d.Changed
	return changed, historyError(c.PointerUp(ctx, to))
}

func historyError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeStorage, err, "record history")
}
