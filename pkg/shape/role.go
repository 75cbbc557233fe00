package shape

import (
	"strings"

	"github.com/matzehuels/snapboard/pkg/geom"
)

// Role names the job of an adjustment handle. The vocabulary is fixed per
// shape family.
type Role string

// Box family roles (rectangle, ellipse, image).
const (
	RoleTop         Role = "top"
	RoleBottom      Role = "bottom"
	RoleLeft        Role = "left"
	RoleRight       Role = "right"
	RoleTopLeft     Role = "top-left"
	RoleTopRight    Role = "top-right"
	RoleBottomLeft  Role = "bottom-left"
	RoleBottomRight Role = "bottom-right"

	// RoleRotate is the rotation knob above the top edge.
	RoleRotate Role = "rotate"
)

// Line and curve roles.
const (
	RoleStart  Role = "start"
	RoleEnd    Role = "end"
	RoleManual Role = "manual"
)

// RotateHandleOffset is how far above the top edge the rotation knob sits.
const RotateHandleOffset = 24.0

// BoxRoles lists the eight resize roles in clockwise order from top-left.
var BoxRoles = []Role{
	RoleTopLeft, RoleTop, RoleTopRight, RoleRight,
	RoleBottomRight, RoleBottom, RoleBottomLeft, RoleLeft,
}

var opposites = map[Role]Role{
	RoleTop:         RoleBottom,
	RoleBottom:      RoleTop,
	RoleLeft:        RoleRight,
	RoleRight:       RoleLeft,
	RoleTopLeft:     RoleBottomRight,
	RoleBottomRight: RoleTopLeft,
	RoleTopRight:    RoleBottomLeft,
	RoleBottomLeft:  RoleTopRight,
	RoleStart:       RoleEnd,
	RoleEnd:         RoleStart,
}

// Opposite returns the role diametrically opposite r. Roles without a
// partner (manual, rotate, unknown) report false.
func (r Role) Opposite() (Role, bool) {
	o, ok := opposites[r]
	return o, ok
}

// IsBox reports whether r is one of the eight box resize roles.
func (r Role) IsBox() bool {
	for _, b := range BoxRoles {
		if b == r {
			return true
		}
	}
	return false
}

// IsCorner reports whether r touches both axes.
func (r Role) IsCorner() bool { return r.TouchesX() && r.TouchesY() }

// TouchesX reports whether dragging r changes the width. Roles ending in
// "left" or "right" do.
func (r Role) TouchesX() bool {
	s := string(r)
	return strings.HasSuffix(s, "left") || strings.HasSuffix(s, "right")
}

// TouchesY reports whether dragging r changes the height. Roles starting
// with "top" or "bottom" do.
func (r Role) TouchesY() bool {
	s := string(r)
	return strings.HasPrefix(s, "top") || strings.HasPrefix(s, "bottom")
}

// XSign is +1 for roles on the right edge, -1 for the left edge, 0 otherwise.
func (r Role) XSign() int {
	switch {
	case strings.HasSuffix(string(r), "right"):
		return 1
	case strings.HasSuffix(string(r), "left"):
		return -1
	}
	return 0
}

// YSign is +1 for roles on the bottom edge, -1 for the top edge, 0 otherwise.
func (r Role) YSign() int {
	switch {
	case strings.HasPrefix(string(r), "bottom"):
		return 1
	case strings.HasPrefix(string(r), "top"):
		return -1
	}
	return 0
}

// BoxPosition returns where role r sits on an unrotated w×h box, relative
// to its top-left corner. Handles and connection points share this table.
func BoxPosition(r Role, w, h float64) (geom.Point, bool) {
	switch r {
	case RoleTopLeft:
		return geom.Pt(0, 0), true
	case RoleTop:
		return geom.Pt(w/2, 0), true
	case RoleTopRight:
		return geom.Pt(w, 0), true
	case RoleRight:
		return geom.Pt(w, h/2), true
	case RoleBottomRight:
		return geom.Pt(w, h), true
	case RoleBottom:
		return geom.Pt(w/2, h), true
	case RoleBottomLeft:
		return geom.Pt(0, h), true
	case RoleLeft:
		return geom.Pt(0, h/2), true
	case RoleRotate:
		return geom.Pt(w/2, -RotateHandleOffset), true
	}
	return geom.Point{}, false
}

// ParseRole validates a role name coming from outside the process.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case r.IsBox(), r == RoleRotate, r == RoleStart, r == RoleEnd, r == RoleManual:
		return r, true
	}
	return "", false
}
