package shape

import (
	"github.com/google/uuid"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
)

// Spec is the serializable description of a shape. Handle and connection
// point positions are not part of it; they are derived on restore.
type Spec struct {
	ID       string       `json:"id"`
	Kind     Kind         `json:"kind"`
	Label    string       `json:"label,omitempty"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width,omitempty"`
	Height   float64      `json:"height,omitempty"`
	Rotation float64      `json:"rotation,omitempty"`
	Points   []geom.Point `json:"points,omitempty"`
	Bends    []Bend       `json:"bends,omitempty"`
	Bulge    float64      `json:"bulge,omitempty"`
}

// Spec returns the serializable form of s.
func (s *Shape) Spec() Spec {
	sp := Spec{
		ID:       s.id,
		Kind:     s.kind,
		Label:    s.label,
		X:        s.x,
		Y:        s.y,
		Width:    s.w,
		Height:   s.h,
		Rotation: s.rotation,
		Bulge:    s.bulge,
	}
	if s.kind.Family() != FamilyBox {
		sp.Points = append([]geom.Point(nil), s.points...)
		for _, b := range s.bends {
			if b.Committed {
				sp.Bends = append(sp.Bends, b)
			}
		}
	}
	return sp
}

// FromSpec validates sp and builds a shape from it. An empty ID gets a
// fresh UUID. Box sizes below MinSize are clamped.
func FromSpec(sp Spec) (*Shape, error) {
	if !sp.Kind.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown shape kind %q", sp.Kind)
	}
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	} else if err := errors.ValidateID(sp.ID); err != nil {
		return nil, err
	}
	for name, v := range map[string]float64{"x": sp.X, "y": sp.Y, "rotation": sp.Rotation, "bulge": sp.Bulge} {
		if err := errors.ValidateFinite(name, v); err != nil {
			return nil, err
		}
	}

	s := &Shape{id: sp.ID, kind: sp.Kind, label: sp.Label, x: sp.X, y: sp.Y, bulge: sp.Bulge}
	s.SetRotation(sp.Rotation)

	if sp.Kind.Family() == FamilyBox {
		if err := errors.ValidateSize(sp.Width, sp.Height); err != nil {
			return nil, err
		}
		s.SetSize(sp.Width, sp.Height)
		return s, nil
	}

	if len(sp.Points) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s %s needs exactly 2 points, got %d", sp.Kind, sp.ID, len(sp.Points))
	}
	for _, p := range sp.Points {
		if err := validatePoint(p); err != nil {
			return nil, err
		}
	}
	s.points = append([]geom.Point(nil), sp.Points...)
	if sp.Kind == KindPolyline {
		for _, b := range sp.Bends {
			if err := validatePoint(b.Point); err != nil {
				return nil, err
			}
			b.Committed = true
			s.bends = append(s.bends, b)
			s.nextBend = max(s.nextBend, b.Index)
		}
	}
	s.normalize()
	return s, nil
}

func validatePoint(p geom.Point) error {
	if err := errors.ValidateFinite("point.x", p.X); err != nil {
		return err
	}
	return errors.ValidateFinite("point.y", p.Y)
}
