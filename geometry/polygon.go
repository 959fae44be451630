package geometry

import (
	"math"

	"mathfig/core"
)

// SignedArea returns the shoelace area of a closed polygon. It is positive
// for counter-clockwise vertex order (y-up).
func SignedArea(pts []core.Point) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += Cross(p, q)
	}
	return a / 2
}

// Centroid returns the vertex average.
func Centroid(pts []core.Point) core.Point {
	var c core.Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pts)))
}

// SegmentsIntersect reports whether segments ab and cd share any point,
// including touching end points and collinear overlap.
func SegmentsIntersect(a, b, c, d core.Point) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

func orient(a, b, c core.Point) float64 {
	v := Cross(b.Sub(a), c.Sub(a))
	scale := math.Max(b.Sub(a).Len()*c.Sub(a).Len(), 1)
	if math.Abs(v) <= Epsilon*scale {
		return 0
	}
	return v
}

func onSegment(a, b, p core.Point) bool {
	return p.X >= math.Min(a.X, b.X)-Epsilon && p.X <= math.Max(a.X, b.X)+Epsilon &&
		p.Y >= math.Min(a.Y, b.Y)-Epsilon && p.Y <= math.Max(a.Y, b.Y)+Epsilon
}

// IsSimple reports whether the closed polygon has distinct vertices and no
// two non-adjacent edges meeting.
func IsSimple(pts []core.Point) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Distance(pts[i], pts[j]) <= Epsilon {
				return false
			}
		}
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			c, d := pts[j], pts[(j+1)%n]
			if SegmentsIntersect(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

// Transform applies f to every point.
func Transform(pts []core.Point, f func(core.Point) core.Point) []core.Point {
	out := make([]core.Point, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}

// Shear returns f(p) = (x + k·y, y).
func Shear(k float64) func(core.Point) core.Point {
	return func(p core.Point) core.Point {
		return core.Point{X: p.X + k*p.Y, Y: p.Y}
	}
}

// RotateAbout returns a function rotating points by theta about c.
func RotateAbout(c core.Point, theta float64) func(core.Point) core.Point {
	return func(p core.Point) core.Point {
		return Rotate(p.Sub(c), theta).Add(c)
	}
}
