package snap

// Overlay holds the guide lines currently on screen. Each computation
// replaces the previous set and every gesture ends with Clear.
type Overlay struct {
	guides []Guide
}

// Replace supersedes the current guides.
func (o *Overlay) Replace(gs []Guide) {
	o.guides = append([]Guide(nil), gs...)
}

// Clear removes every guide.
func (o *Overlay) Clear() { o.guides = nil }

// Guides returns a copy of the current guides.
func (o *Overlay) Guides() []Guide { return append([]Guide(nil), o.guides...) }

// Len returns the number of guides on screen.
func (o *Overlay) Len() int { return len(o.guides) }
