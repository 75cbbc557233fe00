package snap

import (
	"sort"

	"github.com/matzehuels/snapboard/pkg/geom"
)

// Axis selects the horizontal or vertical component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Feature is the part of a rect a candidate value was taken from.
type Feature int

const (
	FeatureMin Feature = iota
	FeatureCenter
	FeatureMax
)

var featureNames = [...]string{"min", "center", "max"}

func (f Feature) String() string {
	if f < FeatureMin || f > FeatureMax {
		return "unknown"
	}
	return featureNames[f]
}

// NoOwner marks a candidate belonging to the moving rect.
const NoOwner = -1

// Candidate is one axis value of one rect feature. Owner indexes the
// stationary targets of the request; the moving rect uses NoOwner.
type Candidate struct {
	Owner   int
	Value   float64
	Feature Feature
}

// Moving reports whether c belongs to the moving rect.
func (c Candidate) Moving() bool { return c.Owner == NoOwner }

// Target is a stationary shape's bounding box.
type Target struct {
	ID   string
	Rect geom.Rect
}

// Candidates returns the sorted alignment candidates for one axis: three for
// the moving rect and three per target. Equal values keep insertion order.
func Candidates(axis Axis, moving geom.Rect, others []Target) []Candidate {
	out := make([]Candidate, 0, 3*(len(others)+1))
	out = appendFeatures(out, axis, NoOwner, moving)
	for i, o := range others {
		out = appendFeatures(out, axis, i, o.Rect)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func appendFeatures(dst []Candidate, axis Axis, owner int, r geom.Rect) []Candidate {
	lo, mid, hi := span(axis, r)
	return append(dst,
		Candidate{Owner: owner, Value: lo, Feature: FeatureMin},
		Candidate{Owner: owner, Value: mid, Feature: FeatureCenter},
		Candidate{Owner: owner, Value: hi, Feature: FeatureMax},
	)
}

func span(axis Axis, r geom.Rect) (lo, mid, hi float64) {
	if axis == AxisY {
		return r.MinY(), r.CenterY(), r.MaxY()
	}
	return r.MinX(), r.CenterX(), r.MaxX()
}
