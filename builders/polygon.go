package builders

import (
	"fmt"
	"math"
	"slices"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/geometry"
)

// ShapeKind selects the canonical quadrilateral a polygon tool draws.
type ShapeKind int

const (
	Rhombus ShapeKind = iota
	Parallelogram
	Trapezium
	Rectangle
	Quadrilateral
	// MeasuredParallelogram is sized from base, side, height and angle.
	MeasuredParallelogram
)

// Orientation values accepted by every polygon tool.
const (
	OrientDefault = "default"
	OrientTilted  = "tilted"
	OrientDiamond = "diamond"
)

// HighlightMode values for rectangle sides.
const (
	HighlightNone   = "none"
	HighlightLength = "length"
	HighlightWidth  = "width"
	HighlightBoth   = "both"
)

// PolygonParams is the normalized parameter set of the polygon family.
type PolygonParams struct {
	Kind                 ShapeKind
	VertexLabels         [4]string
	Angles               [4]diagram.AngleLabel
	Orientation          string
	ShowEqualSideMarkers bool
	ShowParallelMarkers  bool
	HighlightAngles      []int

	Base, Side, Height, Length, Width diagram.Measure

	// Angle is the interior angle at vertex 0 in degrees. AngleText is
	// empty when no angle was given.
	Angle        float64
	AngleText    string
	SkewAngle    float64
	TopSideRatio float64
	IsIsosceles  bool

	ShowPerpendicular      bool
	ShowTransformation     bool
	ShowAngles             bool
	ShowAngleSumAnnotation bool
	HighlightMode          string
	ShowGrid               bool

	Color   string
	Caption string
}

type polygonWire struct {
	VertexLabels           []string `json:"vertexLabels"`
	Angles                 []any    `json:"angles"`
	Orientation            *string  `json:"orientation"`
	ShowEqualSideMarkers   *bool    `json:"showEqualSideMarkers"`
	ShowParallelMarkers    *bool    `json:"showParallelMarkers"`
	HighlightAngles        []int    `json:"highlightAngles"`
	Base                   any      `json:"base"`
	Side                   any      `json:"side"`
	Height                 any      `json:"height"`
	Length                 any      `json:"length"`
	Width                  any      `json:"width"`
	Angle                  *float64 `json:"angle"`
	SkewAngle              *float64 `json:"skewAngle"`
	TopSideRatio           *float64 `json:"topSideRatio"`
	IsIsosceles            *bool    `json:"isIsosceles"`
	ShowPerpendicular      *bool    `json:"showPerpendicular"`
	ShowTransformation     *bool    `json:"showTransformation"`
	ShowAngles             *bool    `json:"showAngles"`
	ShowAngleSumAnnotation *bool    `json:"showAngleSumAnnotation"`
	HighlightMode          *string  `json:"highlightMode"`
	ShowGrid               *bool    `json:"showGrid"`
	Color                  *string  `json:"color"`
	Caption                *string  `json:"caption"`
}

var commonPolygonKeys = []string{
	"vertexLabels", "angles", "orientation", "showEqualSideMarkers",
	"showParallelMarkers", "highlightAngles", "color", "caption",
}

// PolygonTool describes one polygon tool: its shape and its defaults.
type PolygonTool struct {
	Name               string
	Kind               ShapeKind
	DefaultOrientation string
	EqualSides         bool
	ParallelSides      bool
	Extra              []string
}

// PolygonTools lists the registered polygon tools.
var PolygonTools = []PolygonTool{
	{Name: "rhombusAngles", Kind: Rhombus, DefaultOrientation: OrientDiamond, EqualSides: true, ParallelSides: true, Extra: []string{"side"}},
	{Name: "parallelogramAngles", Kind: Parallelogram, DefaultOrientation: OrientDefault, ParallelSides: true, Extra: []string{"skewAngle"}},
	{Name: "trapeziumAngles", Kind: Trapezium, DefaultOrientation: OrientDefault, ParallelSides: true, Extra: []string{"topSideRatio", "isIsosceles", "showAngleSumAnnotation"}},
	{Name: "quadrilateralAngles", Kind: Quadrilateral, DefaultOrientation: OrientDefault},
	{Name: "parallelogram", Kind: MeasuredParallelogram, DefaultOrientation: OrientDefault, ParallelSides: true, Extra: []string{"base", "side", "height", "angle", "showPerpendicular", "showTransformation", "showAngles"}},
	{Name: "rectangle", Kind: Rectangle, DefaultOrientation: OrientDefault, Extra: []string{"length", "width", "highlightMode", "showGrid"}},
}

// PolygonBuilder builds every quadrilateral tool.
type PolygonBuilder struct {
	Tool PolygonTool
}

// Normalize implements diagram.Builder.
func (b PolygonBuilder) Normalize(raw diagram.RawParams) (PolygonParams, error) {
	t := b.Tool
	var p PolygonParams
	if err := checkKeys(t.Name, raw, append(slices.Clone(commonPolygonKeys), t.Extra...)); err != nil {
		return p, err
	}
	var w polygonWire
	if err := diagram.Decode(raw, &w); err != nil {
		return p, err
	}
	p.Kind = t.Kind

	p.VertexLabels = [4]string{"A", "B", "C", "D"}
	if w.VertexLabels != nil {
		if len(w.VertexLabels) != 4 {
			return p, diagram.Invalid("vertexLabels", "expected 4 entries, got %d", len(w.VertexLabels))
		}
		copy(p.VertexLabels[:], w.VertexLabels)
	}
	var err error
	if p.Angles, err = diagram.ParseAngleLabels("angles", w.Angles); err != nil {
		return p, err
	}
	if p.Orientation, err = oneOf("orientation", w.Orientation, t.DefaultOrientation, OrientDiamond, OrientTilted, OrientDefault); err != nil {
		return p, err
	}
	p.ShowEqualSideMarkers = boolOr(w.ShowEqualSideMarkers, t.EqualSides)
	p.ShowParallelMarkers = boolOr(w.ShowParallelMarkers, t.ParallelSides)

	p.HighlightAngles = []int{}
	for i, v := range w.HighlightAngles {
		if v < 0 || v > 3 {
			return p, diagram.Invalid(fmt.Sprintf("highlightAngles[%d]", i), "vertex index %d is outside 0..3", v)
		}
		if !slices.Contains(p.HighlightAngles, v) {
			p.HighlightAngles = append(p.HighlightAngles, v)
		}
	}

	measures := []struct {
		field string
		raw   any
		dst   *diagram.Measure
	}{
		{"base", w.Base, &p.Base},
		{"side", w.Side, &p.Side},
		{"height", w.Height, &p.Height},
		{"length", w.Length, &p.Length},
		{"width", w.Width, &p.Width},
	}
	for _, m := range measures {
		if *m.dst, err = diagram.ParseMeasure(m.field, m.raw); err != nil {
			return p, err
		}
		if m.dst.Known && m.dst.Value <= 0 {
			return p, diagram.Invalid(m.field, "length must be positive, got %s", m.dst.Text)
		}
	}

	if w.Angle != nil {
		p.Angle = *w.Angle
		if err := finite("angle", p.Angle); err != nil {
			return p, err
		}
		p.AngleText = diagram.FormatNumber(p.Angle) + "°"
	}
	p.SkewAngle = floatOr(w.SkewAngle, 30)
	p.TopSideRatio = floatOr(w.TopSideRatio, 0.6)
	if err := finite("skewAngle", p.SkewAngle); err != nil {
		return p, err
	}
	if err := finite("topSideRatio", p.TopSideRatio); err != nil {
		return p, err
	}
	p.IsIsosceles = boolOr(w.IsIsosceles, false)
	p.ShowPerpendicular = boolOr(w.ShowPerpendicular, false)
	p.ShowTransformation = boolOr(w.ShowTransformation, false)
	p.ShowAngles = boolOr(w.ShowAngles, false)
	p.ShowAngleSumAnnotation = boolOr(w.ShowAngleSumAnnotation, false)
	if p.HighlightMode, err = oneOf("highlightMode", w.HighlightMode, HighlightNone, HighlightNone, HighlightLength, HighlightWidth, HighlightBoth); err != nil {
		return p, err
	}
	p.ShowGrid = boolOr(w.ShowGrid, false)
	if p.Color, err = colour("color", w.Color); err != nil {
		return p, err
	}
	p.Caption = stringOr(w.Caption, "")

	return p, b.crossCheck(p)
}

// crossCheck rejects flag combinations that would misrepresent the shape.
func (b PolygonBuilder) crossCheck(p PolygonParams) error {
	switch p.Kind {
	case Quadrilateral:
		if p.ShowEqualSideMarkers {
			return diagram.Invalid("showEqualSideMarkers", "a general quadrilateral has no equal sides to mark")
		}
		if p.ShowParallelMarkers {
			return diagram.Invalid("showParallelMarkers", "a general quadrilateral has no parallel sides to mark")
		}
	case Trapezium:
		if p.ShowEqualSideMarkers && !p.IsIsosceles {
			return diagram.Invalid("showEqualSideMarkers", "only an isosceles trapezium has equal legs")
		}
	case MeasuredParallelogram:
		if p.Base.Known && p.Side.Known && !diagram.SameUnit(p.Base, p.Side) {
			return diagram.Invalid("side", "unit %q does not match base unit %q", p.Side.Unit, p.Base.Unit)
		}
		if p.Base.Known && p.Height.Known && !diagram.SameUnit(p.Base, p.Height) {
			return diagram.Invalid("height", "unit %q does not match base unit %q", p.Height.Unit, p.Base.Unit)
		}
		if p.Side.Known && p.Height.Known && !diagram.SameUnit(p.Side, p.Height) {
			return diagram.Invalid("height", "unit %q does not match side unit %q", p.Height.Unit, p.Side.Unit)
		}
		if p.ShowTransformation && !p.ShowPerpendicular {
			return diagram.Invalid("showTransformation", "requires showPerpendicular")
		}
	case Rectangle:
		if p.Length.Known && p.Width.Known && !diagram.SameUnit(p.Length, p.Width) {
			return diagram.Invalid("width", "unit %q does not match length unit %q", p.Width.Unit, p.Length.Unit)
		}
		if p.ShowGrid && (!p.Length.Known || !p.Width.Known) {
			return diagram.Invalid("showGrid", "needs numeric length and width")
		}
		if p.ShowGrid && p.Length.Value*p.Width.Value > 2500 {
			return diagram.Invalid("showGrid", "grid of %s × %s cells is too dense to draw", p.Length.Text, p.Width.Text)
		}
	}
	return nil
}

// Build implements diagram.Builder.
func (b PolygonBuilder) Build(p PolygonParams) (*core.Scene, error) {
	shape, err := canonicalShape(p)
	if err != nil {
		return nil, err
	}
	verts := orient(shape, p.Orientation)
	if !geometry.IsSimple(verts) || math.Abs(geometry.SignedArea(verts)) <= geometry.Epsilon {
		return nil, diagram.Degenerate("%s vertices do not form a simple quadrilateral", b.Tool.Name)
	}

	s := core.NewScene()
	s.Caption = p.Caption
	d := newPolygonDrawer(s, verts, p)
	d.grid()
	d.highlights()
	d.outline()
	d.sideHighlights()
	d.angleArcs()
	d.equalSides()
	d.parallelSides()
	d.rightAngles()
	d.perpendicular()
	d.transformation()
	d.sideLabels()
	d.vertexLabels()
	d.angleLabels()
	d.angleSums()
	return s, nil
}
