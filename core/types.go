// Package core contains the fundamental types used throughout the mathfig diagram engine.
package core

import "math"

// Point represents a 2D coordinate. In a Scene it is in logical units with Y
// growing upward; in a Drawing it is in surface units with Y growing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Len returns the Euclidean length of p as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Direction represents a cardinal direction.
type Direction int

const (
	Center Direction = iota
	North
	East
	South
	West
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Center:
		return "Center"
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Unit returns the unit vector of the direction in y-down surface space.
func (d Direction) Unit() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Bounds represents a rectangular area.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the width of the bounds.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the middle of the bounds.
func (b Bounds) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains checks if a point is within the bounds, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Overlaps reports whether two bounds share interior area.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Translate returns the bounds moved by d.
func (b Bounds) Translate(d Point) Bounds {
	return Bounds{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// BoundsBuilder accumulates points into a bounding box.
type BoundsBuilder struct {
	b     Bounds
	isSet bool
}

// Add extends the box to contain p. Non-finite points are ignored.
func (bb *BoundsBuilder) Add(p Point) {
	if !p.IsFinite() {
		return
	}
	if !bb.isSet {
		bb.b = Bounds{Min: p, Max: p}
		bb.isSet = true
		return
	}
	bb.b.Min.X = math.Min(bb.b.Min.X, p.X)
	bb.b.Min.Y = math.Min(bb.b.Min.Y, p.Y)
	bb.b.Max.X = math.Max(bb.b.Max.X, p.X)
	bb.b.Max.Y = math.Max(bb.b.Max.Y, p.Y)
}

// Bounds returns the accumulated box and whether any point was added.
func (bb *BoundsBuilder) Bounds() (Bounds, bool) {
	return bb.b, bb.isSet
}
