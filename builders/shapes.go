package builders

import (
	"math"
	"slices"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/geometry"
)

// Canonical shapes are counter-clockwise in y-up space with vertex order
// [bottom-left, bottom-right, top-right, top-left]. Orientation is applied
// afterwards, so diamond gives [top, left, bottom, right].

const (
	rhombusAngle       = 70.0
	rhombusTiltedAngle = 60.0
	tiltDegrees        = 15.0
)

func canonicalShape(p PolygonParams) ([]core.Point, error) {
	switch p.Kind {
	case Rhombus:
		side := 1.6
		if p.Side.Known {
			side = p.Side.Value
		}
		angle := rhombusAngle
		if p.Orientation == OrientTilted {
			angle = rhombusTiltedAngle
		}
		return slanted(side, side, geometry.Radians(angle)), nil

	case Parallelogram:
		if math.Abs(p.SkewAngle) >= 90 {
			return nil, diagram.Degenerate("skewAngle %s° leaves no height", diagram.FormatNumber(p.SkewAngle))
		}
		const base, height = 2.0, 1.2
		rect := []core.Point{core.Pt(0, 0), core.Pt(base, 0), core.Pt(base, height), core.Pt(0, height)}
		return geometry.Transform(rect, geometry.Shear(math.Tan(geometry.Radians(p.SkewAngle)))), nil

	case MeasuredParallelogram:
		return measuredParallelogram(p)

	case Trapezium:
		if p.TopSideRatio <= 0 {
			return nil, diagram.Degenerate("topSideRatio %s gives a top side of no length", diagram.FormatNumber(p.TopSideRatio))
		}
		const base, height = 2.0, 1.2
		top := base * p.TopSideRatio
		left := 0.3
		if p.IsIsosceles {
			left = (base - top) / 2
		}
		return []core.Point{
			core.Pt(0, 0), core.Pt(base, 0), core.Pt(left+top, height), core.Pt(left, height),
		}, nil

	case Rectangle:
		l, w := 1.6, 1.0
		if p.Length.Known && p.Width.Known {
			l, w = p.Length.Value, p.Width.Value
		}
		return []core.Point{core.Pt(0, 0), core.Pt(l, 0), core.Pt(l, w), core.Pt(0, w)}, nil

	default:
		return []core.Point{core.Pt(0, 0), core.Pt(2.2, 0.3), core.Pt(1.8, 1.6), core.Pt(0.3, 1.2)}, nil
	}
}

// slanted returns a parallelogram with the given base, slant side and
// interior angle at vertex 0.
func slanted(base, side, angle float64) []core.Point {
	dx, h := side*math.Cos(angle), side*math.Sin(angle)
	return []core.Point{core.Pt(0, 0), core.Pt(base, 0), core.Pt(base+dx, h), core.Pt(dx, h)}
}

func measuredParallelogram(p PolygonParams) ([]core.Point, error) {
	base := 1.6
	switch {
	case p.Base.Known:
		base = p.Base.Value
	case p.Side.Known:
		base = 1.6 * p.Side.Value
	case p.Height.Known:
		base = 2 * p.Height.Value
	}

	if p.AngleText != "" {
		if p.Angle <= 0 || p.Angle >= 180 {
			return nil, diagram.Degenerate("angle %s is not an interior angle of a parallelogram", p.AngleText)
		}
		side := 0.6 * base
		if p.Side.Known {
			side = p.Side.Value
		}
		return slanted(base, side, geometry.Radians(p.Angle)), nil
	}

	switch {
	case p.Height.Known && p.Side.Known:
		if p.Height.Value > p.Side.Value {
			return nil, diagram.Degenerate("height %s is longer than the slant side %s", p.Height.Text, p.Side.Text)
		}
		dx := math.Sqrt(p.Side.Value*p.Side.Value - p.Height.Value*p.Height.Value)
		h := p.Height.Value
		return []core.Point{core.Pt(0, 0), core.Pt(base, 0), core.Pt(base+dx, h), core.Pt(dx, h)}, nil
	case p.Height.Known:
		dx, h := 0.3*base, p.Height.Value
		return []core.Point{core.Pt(0, 0), core.Pt(base, 0), core.Pt(base+dx, h), core.Pt(dx, h)}, nil
	default:
		side := 0.6 * base
		if p.Side.Known {
			side = p.Side.Value
		}
		return slanted(base, side, geometry.Radians(60)), nil
	}
}

// orient applies the requested orientation about the shape's centroid.
func orient(verts []core.Point, orientation string) []core.Point {
	c := geometry.Centroid(verts)
	switch orientation {
	case OrientTilted:
		return geometry.Transform(verts, geometry.RotateAbout(c, geometry.Radians(tiltDegrees)))
	case OrientDiamond:
		// Stand the shape on a vertex: the diagonal from vertex 0 to
		// vertex 2 points straight down.
		theta := -math.Pi/2 - geometry.Heading(verts[2].Sub(verts[0]))
		return geometry.Transform(verts, geometry.RotateAbout(c, theta))
	default:
		return slices.Clone(verts)
	}
}
