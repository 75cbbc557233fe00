package geom

import "math"

// QuadPoint evaluates the quadratic Bézier p0,p1,p2 at t.
func QuadPoint(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

// QuadBounds returns the exact bounding box of the quadratic Bézier curve
// p0,p1,p2, which is tighter than the hull of its control points.
func QuadBounds(p0, p1, p2 Point) Rect {
	pts := []Point{p0, p2}
	if t, ok := quadExtremum(p0.X, p1.X, p2.X); ok {
		pts = append(pts, QuadPoint(p0, p1, p2, t))
	}
	if t, ok := quadExtremum(p0.Y, p1.Y, p2.Y); ok {
		pts = append(pts, QuadPoint(p0, p1, p2, t))
	}
	return BoundsOf(pts...)
}

// quadExtremum returns the parameter of the derivative root in (0,1), if any.
func quadExtremum(a, b, c float64) (float64, bool) {
	den := a - 2*b + c
	if math.Abs(den) < 1e-12 {
		return 0, false
	}
	t := (a - b) / den
	return t, t > 0 && t < 1
}
