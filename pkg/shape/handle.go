package shape

import "github.com/matzehuels/snapboard/pkg/geom"

// Handle is an adjustment handle. Pos is in the owning shape's local,
// unrotated frame.
type Handle struct {
	Role    Role
	Index   int // stable bend index for RoleManual; 0 otherwise
	Pos     geom.Point
	Visible bool

	// Committed is set on manual handles that sit on a user-placed bend
	// rather than on a derived midpoint.
	Committed bool
}

// HandleSet is the ordered set of handles owned by one shape. It never hands
// out pointers to its storage; readers get copies.
type HandleSet struct {
	items []Handle
}

// Get returns the handle for a fixed role. Use Manual for bend handles.
func (hs *HandleSet) Get(role Role) (Handle, bool) {
	for _, h := range hs.items {
		if h.Role == role {
			return h, true
		}
	}
	return Handle{}, false
}

// Manual returns the bend handle with the given stable index.
func (hs *HandleSet) Manual(index int) (Handle, bool) {
	for _, h := range hs.items {
		if h.Role == RoleManual && h.Index == index {
			return h, true
		}
	}
	return Handle{}, false
}

// Find looks up a handle by role and, for manual handles, index.
func (hs *HandleSet) Find(role Role, index int) (Handle, bool) {
	if role == RoleManual {
		return hs.Manual(index)
	}
	return hs.Get(role)
}

// SetPosition moves the handle with the given role. It reports false when no
// such handle exists.
func (hs *HandleSet) SetPosition(role Role, pos geom.Point) bool {
	for i := range hs.items {
		if hs.items[i].Role == role {
			hs.items[i].Pos = pos
			return true
		}
	}
	return false
}

// All returns a copy of every handle in order.
func (hs *HandleSet) All() []Handle {
	out := make([]Handle, len(hs.items))
	copy(out, hs.items)
	return out
}

// Len returns the number of handles.
func (hs *HandleSet) Len() int { return len(hs.items) }

// SetVisibility applies visible(h) to every handle.
func (hs *HandleSet) SetVisibility(visible func(Handle) bool) {
	for i := range hs.items {
		hs.items[i].Visible = visible(hs.items[i])
	}
}

// replace swaps the whole set, preserving visibility of handles that survive.
func (hs *HandleSet) replace(items []Handle) {
	prev := make(map[handleKey]bool, len(hs.items))
	for _, h := range hs.items {
		prev[keyOf(h)] = h.Visible
	}
	for i := range items {
		if v, ok := prev[keyOf(items[i])]; ok {
			items[i].Visible = v
		}
	}
	hs.items = items
}

func (hs *HandleSet) clone() HandleSet {
	return HandleSet{items: hs.All()}
}

type handleKey struct {
	role  Role
	index int
}

func keyOf(h Handle) handleKey { return handleKey{h.Role, h.Index} }
