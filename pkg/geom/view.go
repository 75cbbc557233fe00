package geom

// ViewTransform maps world coordinates to screen (stage) pixels:
//
//	screen = world*Scale + Offset
//
// The zero value behaves as the identity.
type ViewTransform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Identity returns the 1:1 view with no pan.
func Identity() ViewTransform { return ViewTransform{Scale: 1} }

func (v ViewTransform) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// ToWorld converts a screen point into world coordinates.
func (v ViewTransform) ToWorld(p Point) Point {
	s := v.scale()
	return Point{(p.X - v.OffsetX) / s, (p.Y - v.OffsetY) / s}
}

// ToScreen converts a world point into screen coordinates.
func (v ViewTransform) ToScreen(p Point) Point {
	s := v.scale()
	return Point{p.X*s + v.OffsetX, p.Y*s + v.OffsetY}
}

// WorldLength converts a screen distance in pixels into world units.
func (v ViewTransform) WorldLength(px float64) float64 { return px / v.scale() }

// Visible returns the world-space rectangle covered by a screen of the given
// size.
func (v ViewTransform) Visible(screenW, screenH float64) Rect {
	lo := v.ToWorld(Point{0, 0})
	hi := v.ToWorld(Point{screenW, screenH})
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// Zoom returns v scaled by factor around the screen point anchor, keeping the
// world point under anchor fixed.
func (v ViewTransform) Zoom(factor float64, anchor Point) ViewTransform {
	if factor <= 0 {
		return v
	}
	world := v.ToWorld(anchor)
	out := ViewTransform{Scale: v.scale() * factor}
	out.OffsetX = anchor.X - world.X*out.Scale
	out.OffsetY = anchor.Y - world.Y*out.Scale
	return out
}

// Pan returns v shifted by (dx, dy) screen pixels.
func (v ViewTransform) Pan(dx, dy float64) ViewTransform {
	v.Scale = v.scale()
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}
