// Package geometry provides float vector helpers used by the shape builders.
package geometry

import (
	"math"

	"mathfig/core"
)

// Epsilon is the tolerance used for parallel and degeneracy tests.
const Epsilon = 1e-9

// Dot returns the dot product of a and b.
func Dot(a, b core.Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of a × b.
func Cross(a, b core.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Unit returns v scaled to length 1, or the zero vector.
func Unit(v core.Point) core.Point {
	l := v.Len()
	if l == 0 {
		return core.Point{}
	}
	return v.Scale(1 / l)
}

// Perp returns v rotated 90° counter-clockwise.
func Perp(v core.Point) core.Point {
	return core.Point{X: -v.Y, Y: v.X}
}

// Rotate returns p rotated by theta radians about the origin.
func Rotate(p core.Point, theta float64) core.Point {
	s, c := math.Sincos(theta)
	return core.Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Heading returns the direction of v in radians, in (-π, π].
func Heading(v core.Point) float64 {
	return math.Atan2(v.Y, v.X)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b core.Point) core.Point {
	return core.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Lerp returns a + t(b-a).
func Lerp(a, b core.Point, t float64) core.Point {
	return a.Add(b.Sub(a).Scale(t))
}

// ClipSegment clips ab to w (Liang-Barsky). It reports false when no part of
// the segment lies inside w.
func ClipSegment(w core.Bounds, a, b core.Point) (core.Point, core.Point, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	for _, e := range [4]struct{ p, q float64 }{
		{-d.X, a.X - w.Min.X},
		{d.X, w.Max.X - a.X},
		{-d.Y, a.Y - w.Min.Y},
		{d.Y, w.Max.Y - a.Y},
	} {
		if e.p == 0 {
			if e.q < 0 {
				return a, b, false
			}
			continue
		}
		r := e.q / e.p
		if e.p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return Lerp(a, b, t0), Lerp(a, b, t1), true
}

// Distance returns the distance between a and b.
func Distance(a, b core.Point) float64 {
	return b.Sub(a).Len()
}

// Parallel reports whether u and v point along the same line, within a
// tolerance relative to their lengths.
func Parallel(u, v core.Point) bool {
	lu, lv := u.Len(), v.Len()
	if lu == 0 || lv == 0 {
		return false
	}
	return math.Abs(Cross(u, v)) <= Epsilon*lu*lv
}

// Foot returns the foot of the perpendicular from p onto the line through a
// and b.
func Foot(p, a, b core.Point) core.Point {
	d := b.Sub(a)
	l2 := Dot(d, d)
	if l2 == 0 {
		return a
	}
	t := Dot(p.Sub(a), d) / l2
	return a.Add(d.Scale(t))
}

// NormalizeAngle maps theta into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
