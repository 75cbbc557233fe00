package adjust

import (
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// anchorPair resolves the dragged handle S and its opposite anchor A from
// the snapshot. The live shape must still carry the anchor role; a stale
// handle set fails the lookup.
func anchorPair(s *shape.Shape, snap shape.Snapshot, role shape.Role) (dragged, anchor geom.Point, opposite shape.Role, ok bool) {
	opposite, ok = role.Opposite()
	if !ok {
		return
	}
	if _, live := s.Handles().Get(opposite); !live {
		return geom.Point{}, geom.Point{}, "", false
	}
	dragged, okS := snap.HandleAbsolute(role, 0)
	anchor, okA := snap.HandleAbsolute(opposite, 0)
	if !okS || !okA {
		return geom.Point{}, geom.Point{}, "", false
	}
	return dragged, anchor, opposite, true
}
