package interact

import "github.com/matzehuels/snapboard/pkg/shape"

// State is the controller's state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Gesture identifies what a drag does.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureResize
	GestureRotate
	GestureMove
	GestureCreate
)

var gestureNames = [...]string{"none", "resize", "rotate", "move", "create"}

func (g Gesture) String() string {
	if g < 0 || int(g) >= len(gestureNames) {
		return "unknown"
	}
	return gestureNames[g]
}

func gestureFor(r shape.Role) Gesture {
	if r == shape.RoleRotate {
		return GestureRotate
	}
	return GestureResize
}
