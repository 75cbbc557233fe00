package geom

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeDegrees maps deg into the half-open interval (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// SinCos returns sin and cos of deg. Multiples of 90° return exact values so
// that axis-aligned shapes stay free of rounding drift across many gestures.
func SinCos(deg float64) (sin, cos float64) {
	d := NormalizeDegrees(deg)
	switch d {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case -90:
		return -1, 0
	}
	return math.Sincos(Radians(d))
}

// RotatePoint rotates p by deg degrees around the origin. Positive angles
// turn clockwise on a y-down screen.
func RotatePoint(p Point, deg float64) Point {
	s, c := SinCos(deg)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// RotateAround rotates p by deg degrees around center.
func RotateAround(p, center Point, deg float64) Point {
	return RotatePoint(p.Sub(center), deg).Add(center)
}

// AngleFromVector returns the direction of v in degrees, in (-180, 180].
// The zero vector yields 0.
func AngleFromVector(v Point) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return NormalizeDegrees(Degrees(math.Atan2(v.Y, v.X)))
}

// SnapAngle rounds deg to the nearest multiple of step. A non-positive step
// returns deg unchanged.
func SnapAngle(deg, step float64) float64 {
	if step <= 0 {
		return deg
	}
	return NormalizeDegrees(math.Round(deg/step) * step)
}
