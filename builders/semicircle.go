package builders

import (
	"math"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/geometry"
)

// SemicircleParams is the normalized parameter set of the semicircle tool.
type SemicircleParams struct {
	Radius         diagram.Measure
	Orientation    string
	ShowDimensions bool
	Color          string
	Caption        string
}

type semicircleWire struct {
	Radius         any     `json:"radius"`
	Orientation    *string `json:"orientation"`
	ShowDimensions *bool   `json:"showDimensions"`
	Color          *string `json:"color"`
	Caption        *string `json:"caption"`
}

// SemicircleBuilder draws a semicircle whose diameter sits on an implicit
// rectangle edge. Orientation names the side the curve bulges towards.
type SemicircleBuilder struct{}

// Normalize implements diagram.Builder.
func (SemicircleBuilder) Normalize(raw diagram.RawParams) (SemicircleParams, error) {
	var p SemicircleParams
	var w semicircleWire
	if err := diagram.Decode(raw, &w); err != nil {
		return p, err
	}
	var err error
	if p.Radius, err = diagram.ParseMeasure("radius", w.Radius); err != nil {
		return p, err
	}
	if p.Radius.IsZero() {
		return p, diagram.Invalid("radius", "is required")
	}
	if p.Radius.Known && p.Radius.Value <= 0 {
		return p, diagram.Invalid("radius", "must be positive, got %s", p.Radius.Text)
	}
	if p.Orientation, err = oneOf("orientation", w.Orientation, "top", "top", "bottom", "left", "right"); err != nil {
		return p, err
	}
	p.ShowDimensions = boolOr(w.ShowDimensions, true)
	if p.Color, err = colour("color", w.Color); err != nil {
		return p, err
	}
	p.Caption = stringOr(w.Caption, "")
	return p, nil
}

var bulge = map[string]float64{
	"right":  0,
	"top":    math.Pi / 2,
	"left":   math.Pi,
	"bottom": 3 * math.Pi / 2,
}

// Build implements diagram.Builder.
func (SemicircleBuilder) Build(p SemicircleParams) (*core.Scene, error) {
	r := 1.0
	if p.Radius.Known {
		r = p.Radius.Value
	}
	mid := bulge[p.Orientation]
	start := geometry.NormalizeAngle(mid - math.Pi/2)
	end := geometry.NormalizeAngle(mid + math.Pi/2)
	center := core.Pt(0, 0)

	s := core.NewScene()
	s.Caption = p.Caption
	arc := core.Arc{Center: center, Radius: r, Start: start, End: end, Style: stroke(p.Color, RoleOutline)}
	s.Add(arc)
	s.Add(core.Segment{From: arc.PointAt(start), To: arc.PointAt(end), Style: dashed(stroke(p.Color, RoleDiameter))})

	if p.ShowDimensions {
		tip := arc.PointAt(mid - math.Pi/4)
		s.Add(core.Segment{From: center, To: tip, Style: thin(p.Color, RoleRadius)})
		s.Add(core.Marker{Position: center, Kind: core.ClosedCircle, Size: dotSize / 1.5, Style: core.Style{Fill: stroke(p.Color, "").Stroke, Role: RoleRadius}})
		radial := geometry.Unit(tip.Sub(center))
		toward := geometry.Perp(radial)
		if geometry.Dot(toward, core.Pt(math.Cos(mid), math.Sin(mid))) > 0 {
			toward = toward.Scale(-1)
		}
		s.Add(core.Label{
			Position: geometry.Midpoint(center, tip),
			Text:     p.Radius.Text,
			Toward:   toward,
			Style:    text(p.Color, RoleRadius),
		})
	}
	return s, nil
}
