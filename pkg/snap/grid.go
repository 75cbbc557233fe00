package snap

import (
	"math"

	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// gridAxis tries, in priority order, the min edge rounded to the grid, the
// max edge rounded to the grid, and the stage's far edge. The closest wins
// if its deviation is strictly below limit (world units); equal deviations
// keep the earlier candidate.
func gridAxis(axis Axis, r geom.Rect, grid float64, stage geom.Rect, limit float64) (float64, Source, bool) {
	pos, size := r.X, r.Width
	stageMax := stage.MaxX()
	if axis == AxisY {
		pos, size = r.Y, r.Height
		stageMax = stage.MaxY()
	}

	type option struct {
		value float64
		src   Source
	}
	opts := []option{
		{roundTo(pos, grid), SourceGrid},
		{roundTo(pos+size, grid) - size, SourceGrid},
	}
	if !stage.IsEmpty() {
		opts = append(opts, option{stageMax - size, SourceStage})
	}

	best, bestDev := option{}, math.Inf(1)
	for _, o := range opts {
		if dev := math.Abs(o.value - pos); dev < bestDev {
			best, bestDev = o, dev
		}
	}
	if bestDev >= limit {
		return 0, SourceNone, false
	}
	return best.value - pos, best.src, true
}

func roundTo(v, grid float64) float64 { return math.Round(v/grid) * grid }

// ResizeRequest describes resize-time snapping of a dragged handle. Pointer
// is in screen coordinates, like the pointer handed to the adjuster.
type ResizeRequest struct {
	Pointer   geom.Point
	Role      shape.Role
	Grid      float64
	Stage     geom.Rect
	View      geom.ViewTransform
	Threshold float64
}

// ResizeResult carries the corrected pointer and which axes moved.
type ResizeResult struct {
	Pointer geom.Point
	X, Y    Source
}

// Resize snaps a resize pointer to the grid or the stage edge the role faces.
// Roles ending in left/right are tested on X only, roles starting with
// top/bottom on Y only, corners on both. There is no node tier and no guide.
func Resize(req ResizeRequest) ResizeResult {
	if req.Grid <= 0 {
		req.Grid = DefaultGridSize
	}
	if req.Threshold <= 0 {
		req.Threshold = DefaultThreshold
	}
	limit := req.View.WorldLength(req.Threshold)
	p := req.View.ToWorld(req.Pointer)
	res := ResizeResult{Pointer: req.Pointer}

	if req.Role.TouchesX() {
		edge := req.Stage.MaxX()
		if req.Role.XSign() < 0 {
			edge = req.Stage.MinX()
		}
		p.X, res.X = snapCoord(p.X, req.Grid, edge, !req.Stage.IsEmpty(), limit)
	}
	if req.Role.TouchesY() {
		edge := req.Stage.MaxY()
		if req.Role.YSign() < 0 {
			edge = req.Stage.MinY()
		}
		p.Y, res.Y = snapCoord(p.Y, req.Grid, edge, !req.Stage.IsEmpty(), limit)
	}
	if res.X != SourceNone || res.Y != SourceNone {
		res.Pointer = req.View.ToScreen(p)
	}
	return res
}

func snapCoord(v, grid, edge float64, hasEdge bool, limit float64) (float64, Source) {
	best, src := roundTo(v, grid), SourceGrid
	dev := math.Abs(best - v)
	if hasEdge {
		if d := math.Abs(edge - v); d < dev {
			best, src, dev = edge, SourceStage, d
		}
	}
	if dev >= limit {
		return v, SourceNone
	}
	return best, src
}
