package snap

import (
	"math"

	"github.com/matzehuels/snapboard/pkg/geom"
)

const (
	// DefaultGridSize is the grid cell size used when a request leaves it
	// unset.
	DefaultGridSize = 20.0
	// DefaultThreshold is the grid/stage snap distance in screen pixels.
	DefaultThreshold = 5.0
)

// Flags gate the two snapping tiers.
type Flags struct {
	Shapes bool // node-to-node alignment
	Grid   bool // grid and stage-edge fallback
}

// AllFlags enables both tiers.
func AllFlags() Flags { return Flags{Shapes: true, Grid: true} }

// Request describes one snap computation. Moving, Others and Stage are in
// world units; Threshold is in screen pixels and is converted through View.
type Request struct {
	Moving    geom.Rect
	Others    []Target
	Grid      float64
	Stage     geom.Rect
	View      geom.ViewTransform
	Threshold float64
	Flags     Flags
}

// Source says which tier produced an axis correction.
type Source int

const (
	SourceNone Source = iota
	SourceNode
	SourceGrid
	SourceStage
)

func (s Source) String() string {
	switch s {
	case SourceNode:
		return "node"
	case SourceGrid:
		return "grid"
	case SourceStage:
		return "stage"
	}
	return "none"
}

// Guide is an alignment line. An X guide is a vertical line at X=Value, a Y
// guide a horizontal line at Y=Value. From and To span both rects.
type Guide struct {
	Axis       Axis       `json:"axis"`
	Value      float64    `json:"value"`
	OwnerID    string     `json:"owner_id"`
	Moving     Feature    `json:"moving_feature"`
	Stationary Feature    `json:"stationary_feature"`
	From       geom.Point `json:"from"`
	To         geom.Point `json:"to"`
}

// Result is the outcome of [Compute]. Offset is the correction to add to
// the moving rect's position.
type Result struct {
	Offset geom.Point `json:"offset"`
	Guides []Guide    `json:"guides"`
	X      Source     `json:"-"`
	Y      Source     `json:"-"`
}

// Snapped reports whether either axis was corrected or aligned.
func (r Result) Snapped() bool { return r.X != SourceNone || r.Y != SourceNone }

// Compute runs both tiers on both axes.
func Compute(req Request) Result {
	req = withDefaults(req)
	var res Result
	res.Offset.X, res.X, res.Guides = computeAxis(AxisX, req, res.Guides)
	res.Offset.Y, res.Y, res.Guides = computeAxis(AxisY, req, res.Guides)
	return res
}

func withDefaults(req Request) Request {
	if req.Grid <= 0 {
		req.Grid = DefaultGridSize
	}
	if req.Threshold <= 0 {
		req.Threshold = DefaultThreshold
	}
	return req
}

func computeAxis(axis Axis, req Request, guides []Guide) (float64, Source, []Guide) {
	if req.Flags.Shapes {
		if m, ok := align(axis, req.Moving, req.Others); ok && m.dist < req.Grid/2 {
			for _, p := range m.pairs {
				guides = append(guides, guideFor(axis, p, req))
			}
			return m.offset, SourceNode, guides
		}
	}
	if req.Flags.Grid {
		if off, src, ok := gridAxis(axis, req.Moving, req.Grid, req.Stage, req.View.WorldLength(req.Threshold)); ok {
			return off, src, guides
		}
	}
	return 0, SourceNone, guides
}

type pair struct {
	moving, stationary Candidate
}

type match struct {
	dist   float64
	offset float64
	pairs  []pair
}

// align scans adjacent sorted candidates for moving/stationary pairs and
// keeps every pair at the minimum distance. Runs of equal stationary values
// next to a qualifying pair are tied too, even when only one of them is
// adjacent to the moving candidate.
func align(axis Axis, moving geom.Rect, others []Target) (match, bool) {
	if len(others) == 0 {
		return match{}, false
	}
	cs := Candidates(axis, moving, others)
	best := match{dist: math.Inf(1)}
	type key struct{ s, m int }
	seen := make(map[key]bool)

	add := func(si, mi int) {
		k := key{si, mi}
		if seen[k] {
			return
		}
		seen[k] = true
		best.pairs = append(best.pairs, pair{moving: cs[mi], stationary: cs[si]})
	}

	for i := 0; i+1 < len(cs); i++ {
		a, b := cs[i], cs[i+1]
		if a.Moving() == b.Moving() {
			continue
		}
		si, mi := i, i+1
		if a.Moving() {
			si, mi = i+1, i
		}
		d := math.Abs(cs[si].Value - cs[mi].Value)
		switch {
		case d < best.dist:
			best.dist = d
			best.offset = cs[si].Value - cs[mi].Value
			best.pairs = best.pairs[:0]
			clear(seen)
		case d > best.dist:
			continue
		}
		add(si, mi)
		// extend across equal stationary values on the far side
		step := 1
		if si < mi {
			step = -1
		}
		for j := si + step; j >= 0 && j < len(cs); j += step {
			if cs[j].Moving() || cs[j].Value != cs[si].Value {
				break
			}
			add(j, mi)
		}
	}
	if math.IsInf(best.dist, 1) {
		return match{}, false
	}
	return best, true
}

func guideFor(axis Axis, p pair, req Request) Guide {
	o := req.Others[p.stationary.Owner]
	g := Guide{
		Axis:       axis,
		Value:      p.stationary.Value,
		OwnerID:    o.ID,
		Moving:     p.moving.Feature,
		Stationary: p.stationary.Feature,
	}
	v := p.stationary.Value
	if axis == AxisX {
		g.From = geom.Pt(v, math.Min(req.Moving.MinY(), o.Rect.MinY()))
		g.To = geom.Pt(v, math.Max(req.Moving.MaxY(), o.Rect.MaxY()))
	} else {
		g.From = geom.Pt(math.Min(req.Moving.MinX(), o.Rect.MinX()), v)
		g.To = geom.Pt(math.Max(req.Moving.MaxX(), o.Rect.MaxX()), v)
	}
	return g
}
