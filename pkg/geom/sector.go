package geom

import (
	"fmt"
	"math"
)

// Sector classifies a rotation into eight open 45° intervals plus the eight
// exact boundary angles between them.
type Sector int

const (
	Sector0 Sector = iota // exactly 0°
	Sector0To45
	Sector45
	Sector45To90
	Sector90
	Sector90To135
	Sector135
	Sector135To180
	Sector180
	SectorNeg180ToNeg135
	SectorNeg135
	SectorNeg135ToNeg90
	SectorNeg90
	SectorNeg90ToNeg45
	SectorNeg45
	SectorNeg45To0
)

// boundaryEps absorbs float noise when a rotation was produced by arithmetic
// (e.g. 30+15) rather than typed in.
const boundaryEps = 1e-9

var sectorNames = [...]string{
	"0", "(0,45)", "45", "(45,90)", "90", "(90,135)", "135", "(135,180)",
	"180", "(-180,-135)", "-135", "(-135,-90)", "-90", "(-90,-45)", "-45", "(-45,0)",
}

func (s Sector) String() string {
	if s < 0 || int(s) >= len(sectorNames) {
		return fmt.Sprintf("Sector(%d)", int(s))
	}
	return sectorNames[s]
}

// IsBoundary reports whether s is one of the exact multiples of 45°.
func (s Sector) IsBoundary() bool {
	switch s {
	case Sector0, Sector45, Sector90, Sector135, Sector180,
		SectorNeg135, SectorNeg90, SectorNeg45:
		return true
	}
	return false
}

// ClassifyRotation maps deg (any range) onto its Sector.
func ClassifyRotation(deg float64) Sector {
	d := NormalizeDegrees(deg)
	for _, b := range []struct {
		angle float64
		s     Sector
	}{
		{0, Sector0}, {45, Sector45}, {90, Sector90}, {135, Sector135},
		{180, Sector180}, {-180, Sector180}, {-135, SectorNeg135},
		{-90, SectorNeg90}, {-45, SectorNeg45},
	} {
		if math.Abs(d-b.angle) <= boundaryEps {
			return b.s
		}
	}
	switch {
	case d > 0 && d < 45:
		return Sector0To45
	case d > 45 && d < 90:
		return Sector45To90
	case d > 90 && d < 135:
		return Sector90To135
	case d > 135:
		return Sector135To180
	case d < -135:
		return SectorNeg180ToNeg135
	case d < -90:
		return SectorNeg135ToNeg90
	case d < -45:
		return SectorNeg90ToNeg45
	default:
		return SectorNeg45To0
	}
}

// SideOfAxis reports on which side of the line through the origin,
// perpendicular to the local x axis of a shape rotated by deg, the vector v
// lies: +1 when v points along the local +x direction, -1 against it, 0 on
// the line. Exact boundary sectors compare raw components; open sectors
// divide by the dominant trig value so the test never degenerates near 90°.
func SideOfAxis(v Point, deg float64) int {
	var f float64
	switch sec := ClassifyRotation(deg); sec {
	case Sector0:
		f = v.X
	case Sector90:
		f = v.Y
	case Sector180:
		f = -v.X
	case SectorNeg90:
		f = -v.Y
	case Sector45:
		f = v.X + v.Y
	case Sector135:
		f = v.Y - v.X
	case SectorNeg45:
		f = v.X - v.Y
	case SectorNeg135:
		f = -v.X - v.Y
	case Sector0To45, SectorNeg45To0, Sector135To180, SectorNeg180ToNeg135:
		s, c := SinCos(deg)
		f = (v.X + v.Y*(s/c)) * sign(c)
	default:
		s, c := SinCos(deg)
		f = (v.X*(c/s) + v.Y) * sign(s)
	}
	return int(sign(f2i(f)))
}

// SideOfNormal is SideOfAxis for the local y axis.
func SideOfNormal(v Point, deg float64) int {
	return SideOfAxis(v, deg+90)
}

// ToLocal expresses the world-space vector v in the axes of a shape rotated
// by deg.
func ToLocal(v Point, deg float64) Point { return RotatePoint(v, -deg) }

func f2i(f float64) float64 {
	if math.Abs(f) < boundaryEps {
		return 0
	}
	return f
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}
