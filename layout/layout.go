// Package layout maps logical scenes onto a drawing surface and places
// their labels.
package layout

import (
	"math"

	"mathfig/core"
	"mathfig/diagram"
)

// Viewport is the drawing surface in surface units.
type Viewport struct {
	Width, Height float64
	Margin        float64
	// FontSize is given to labels that do not set their own.
	FontSize float64
}

// Transform maps logical y-up points to y-down surface points.
type Transform struct {
	kx, ky float64
	ox, oy float64
}

// Apply maps a logical point to the surface.
func (t Transform) Apply(p core.Point) core.Point {
	return core.Pt(t.ox+t.kx*p.X, t.oy-t.ky*p.Y)
}

// Scale returns the surface units per logical unit along each axis.
func (t Transform) Scale() (float64, float64) {
	return t.kx, t.ky
}

// angle maps a y-up direction angle through the axis scales. The result
// keeps the y-up sense.
func (t Transform) angle(theta float64) float64 {
	if t.kx == t.ky {
		return theta
	}
	return math.Atan2(t.ky*math.Sin(theta), t.kx*math.Cos(theta))
}

// Fit computes the viewport transform for s: a single uniform scale that
// fits the logical bounds (after the scene's axis scale) inside the surface
// less its margins, centred. A scene that is flat along one axis is scaled
// by the other.
func Fit(s *core.Scene, v Viewport) (Transform, error) {
	aw, ah := v.Width-2*v.Margin, v.Height-2*v.Margin
	if aw <= 0 || ah <= 0 {
		return Transform{}, diagram.Degenerate("surface %gx%g is smaller than its margins", v.Width, v.Height)
	}
	b, ok := s.Bounds()
	if !ok {
		return Transform{}, diagram.Degenerate("scene has no primitives")
	}
	ax, ay := 1.0, 1.0
	if !s.AxisScale.IsZero() {
		ax, ay = s.AxisScale.X, s.AxisScale.Y
	}
	if ax <= 0 || ay <= 0 || !s.AxisScale.IsFinite() {
		return Transform{}, diagram.Degenerate("axis scale %v is not positive", s.AxisScale)
	}
	w, h := b.Width()*ax, b.Height()*ay
	const tiny = 1e-12
	var k float64
	switch {
	case w <= tiny && h <= tiny:
		return Transform{}, diagram.Degenerate("scene has zero extent")
	case w <= tiny:
		k = ah / h
	case h <= tiny:
		k = aw / w
	default:
		k = math.Min(aw/w, ah/h)
	}
	c := b.Center()
	t := Transform{kx: k * ax, ky: k * ay}
	t.ox = v.Width/2 - t.kx*c.X
	t.oy = v.Height/2 + t.ky*c.Y
	return t, nil
}

// Project fits s to v and returns the drawing in surface units. Labels are
// mapped but not yet placed.
func Project(s *core.Scene, v Viewport) (*core.Drawing, error) {
	t, err := Fit(s, v)
	if err != nil {
		return nil, err
	}
	d := &core.Drawing{
		Width:      v.Width,
		Height:     v.Height,
		Title:      s.Title,
		Caption:    s.Caption,
		Primitives: make([]core.Primitive, 0, len(s.Primitives)),
	}
	if s.Clip != nil {
		lo, hi := t.Apply(s.Clip.Min), t.Apply(s.Clip.Max)
		d.Clip = &core.Bounds{Min: core.Pt(lo.X, hi.Y), Max: core.Pt(hi.X, lo.Y)}
	}
	for _, p := range s.Primitives {
		d.Primitives = append(d.Primitives, t.primitive(p, v.FontSize))
	}
	return d, nil
}

func (t Transform) primitive(p core.Primitive, fontSize float64) core.Primitive {
	switch p := p.(type) {
	case core.Segment:
		p.From, p.To = t.Apply(p.From), t.Apply(p.To)
		return p
	case core.Arc:
		if t.kx != t.ky {
			// Circles stay circles; the mean scale keeps the area.
			p.Radius *= math.Sqrt(t.kx * t.ky)
		} else {
			p.Radius *= t.kx
		}
		p.Center = t.Apply(p.Center)
		return p
	case core.Marker:
		p.Position = t.Apply(p.Position)
		p.Angle = t.angle(p.Angle)
		return p
	case core.Label:
		p.Position = t.Apply(p.Position)
		p.Toward = core.Pt(t.kx*p.Toward.X, t.ky*p.Toward.Y)
		if p.Style.FontSize == 0 {
			p.Style.FontSize = fontSize
		}
		return p
	default:
		return p
	}
}
