package builders

import (
	"fmt"
	"math"
	"sort"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/expr"
	"mathfig/geometry"
	"mathfig/style"
)

// Samples is the fixed number of points a curve is evaluated at.
const Samples = 401

// GraphPoint marks f(X) on the curve.
type GraphPoint struct {
	X     float64
	Label string
	Color string
}

// GraphParams is the normalized parameter set of the function graph tool.
type GraphParams struct {
	Expression string
	Func       *expr.Expr
	XMin, XMax float64
	// YMin and YMax are nil when the range is fitted to the samples.
	YMin, YMax *float64
	ShowGrid   bool
	ShowPoints []GraphPoint
	Color      string
	Label      string
	Caption    string
	Degrees    bool
}

type graphPointWire struct {
	X     *float64 `json:"x"`
	Label *string  `json:"label"`
	Color *string  `json:"color"`
}

type graphWire struct {
	Expression *string          `json:"expression"`
	XMin       *float64         `json:"xMin"`
	XMax       *float64         `json:"xMax"`
	YMin       *float64         `json:"yMin"`
	YMax       *float64         `json:"yMax"`
	ShowGrid   *bool            `json:"showGrid"`
	ShowPoints []graphPointWire `json:"showPoints"`
	Color      *string          `json:"color"`
	Label      *string          `json:"label"`
	Caption    *string          `json:"caption"`
	XAxisMode  *string          `json:"xAxisMode"`
}

// GraphBuilder plots a single-variable function.
type GraphBuilder struct{}

// Normalize implements diagram.Builder. The expression is compiled here, so
// a malformed one fails before any sampling.
func (GraphBuilder) Normalize(raw diagram.RawParams) (GraphParams, error) {
	var p GraphParams
	var w graphWire
	if err := diagram.Decode(raw, &w); err != nil {
		return p, err
	}
	if w.Expression == nil || *w.Expression == "" {
		return p, diagram.Invalid("expression", "is required")
	}
	p.Expression = *w.Expression

	mode, err := oneOf("xAxisMode", w.XAxisMode, "radians", "radians", "degrees")
	if err != nil {
		return p, err
	}
	p.Degrees = mode == "degrees"
	var opts []expr.Option
	if p.Degrees {
		opts = append(opts, expr.WithDegrees())
	}
	if p.Func, err = expr.Compile(p.Expression, opts...); err != nil {
		return p, err
	}

	p.XMin, p.XMax = floatOr(w.XMin, -5), floatOr(w.XMax, 5)
	for _, f := range []struct {
		name string
		v    *float64
	}{{"xMin", &p.XMin}, {"xMax", &p.XMax}, {"yMin", w.YMin}, {"yMax", w.YMax}} {
		if f.v != nil {
			if err := finite(f.name, *f.v); err != nil {
				return p, err
			}
		}
	}
	if p.XMin >= p.XMax {
		return p, diagram.Invalid("xMax", "must be greater than xMin (%s ≥ %s)", diagram.FormatNumber(p.XMin), diagram.FormatNumber(p.XMax))
	}
	if tooNarrow(p.XMin, p.XMax) {
		return p, diagram.Invalid("xMax", "[%s, %s] is too narrow for its offset", diagram.FormatNumber(p.XMin), diagram.FormatNumber(p.XMax))
	}
	p.YMin, p.YMax = w.YMin, w.YMax
	if p.YMin != nil && p.YMax != nil {
		if *p.YMin >= *p.YMax {
			return p, diagram.Invalid("yMax", "must be greater than yMin (%s ≥ %s)", diagram.FormatNumber(*p.YMin), diagram.FormatNumber(*p.YMax))
		}
		if tooNarrow(*p.YMin, *p.YMax) {
			return p, diagram.Invalid("yMax", "[%s, %s] is too narrow for its offset", diagram.FormatNumber(*p.YMin), diagram.FormatNumber(*p.YMax))
		}
	}

	p.ShowGrid = boolOr(w.ShowGrid, true)
	for i, sp := range w.ShowPoints {
		field := fmt.Sprintf("showPoints[%d]", i)
		if sp.X == nil {
			return p, diagram.Invalid(field+".x", "is required")
		}
		if _, ok := p.Func.Eval(*sp.X); !ok {
			return p, diagram.Invalid(field+".x", "f is undefined at x = %s", diagram.FormatNumber(*sp.X))
		}
		c, err := colour(field+".color", sp.Color)
		if err != nil {
			return p, err
		}
		p.ShowPoints = append(p.ShowPoints, GraphPoint{X: *sp.X, Label: stringOr(sp.Label, ""), Color: c})
	}
	if p.Color, err = colour("color", w.Color); err != nil {
		return p, err
	}
	p.Label = stringOr(w.Label, "")
	p.Caption = stringOr(w.Caption, "")
	return p, nil
}

// tooNarrow reports whether [lo, hi] is too small relative to its distance
// from zero to sample and tick with float64.
func tooNarrow(lo, hi float64) bool {
	return hi-lo <= 1e-9*math.Max(math.Abs(lo), math.Abs(hi))
}

type sample struct {
	x, y float64
	ok   bool
}

// Build implements diagram.Builder.
func (GraphBuilder) Build(p GraphParams) (*core.Scene, error) {
	samples := make([]sample, Samples)
	for i := range samples {
		x := p.XMin + (p.XMax-p.XMin)*float64(i)/float64(Samples-1)
		if i == Samples-1 {
			x = p.XMax
		}
		y, ok := p.Func.Eval(x)
		samples[i] = sample{x: x, y: y, ok: ok}
	}

	yMin, yMax, err := yRange(p, samples)
	if err != nil {
		return nil, err
	}
	window := core.Bounds{Min: core.Pt(p.XMin, yMin), Max: core.Pt(p.XMax, yMax)}

	s := core.NewScene()
	s.Caption = p.Caption
	s.Clip = &window
	s.AxisScale = core.Pt(4/(p.XMax-p.XMin), 3/(yMax-yMin))

	g := graphDrawer{s: s, p: p, w: window}
	g.grid()
	g.axes()
	last := g.curve(samples)
	g.points()
	if p.Label != "" && last != nil {
		s.Add(core.Label{Position: *last, Text: p.Label, Toward: core.Pt(1, 1), Style: text(style.Or(p.Color, style.Curve), RoleCurve)})
	}
	return s, nil
}

// yRange returns the vertical window: the caller's bounds where given,
// otherwise the spread of the samples with a margin. A few extreme samples
// near an asymptote are ignored when they would flatten the rest.
func yRange(p GraphParams, samples []sample) (float64, float64, error) {
	var ys []float64
	for _, sm := range samples {
		if sm.ok {
			ys = append(ys, sm.y)
		}
	}
	for _, pt := range p.ShowPoints {
		if y, ok := p.Func.Eval(pt.X); ok && pt.X >= p.XMin && pt.X <= p.XMax {
			ys = append(ys, y)
		}
	}
	if len(ys) == 0 && (p.YMin == nil || p.YMax == nil) {
		return 0, 0, diagram.Degenerate("%q is undefined everywhere on [%s, %s]", p.Expression, diagram.FormatNumber(p.XMin), diagram.FormatNumber(p.XMax))
	}

	lo, hi := 0.0, 0.0
	if len(ys) > 0 {
		sort.Float64s(ys)
		lo, hi = ys[0], ys[len(ys)-1]
		qlo, qhi := ys[len(ys)*2/100], ys[(len(ys)-1)*98/100]
		if spread := qhi - qlo; spread > 0 && hi-lo > 20*spread {
			lo, hi = qlo, qhi
		}
		if tooNarrow(lo, hi) || hi-lo < 1e-9 {
			half := math.Max(1, math.Abs(lo)*1e-6)
			lo, hi = lo-half, hi+half
		}
		pad := (hi - lo) * 0.1
		lo, hi = lo-pad, hi+pad
	}
	if p.YMin != nil {
		lo = *p.YMin
	}
	if p.YMax != nil {
		hi = *p.YMax
	}
	if lo >= hi || tooNarrow(lo, hi) {
		field := "yMax"
		if p.YMin != nil && p.YMax == nil {
			field = "yMin"
		}
		return 0, 0, diagram.Invalid(field, "leaves an empty y-range [%s, %s]", diagram.FormatNumber(lo), diagram.FormatNumber(hi))
	}
	return lo, hi, nil
}

type graphDrawer struct {
	s *core.Scene
	p GraphParams
	w core.Bounds
}

// niceStep returns a step of 1, 2 or 5 × 10^k giving roughly ten divisions.
func niceStep(span float64) float64 {
	raw := span / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3.5:
		return 2 * mag
	case norm < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// maxStops bounds the grid lines and ticks drawn along one axis.
const maxStops = 100

// stops returns the multiples of step inside [lo, hi], at most maxStops of
// them.
func stops(lo, hi, step float64) []float64 {
	first, last := math.Ceil(lo/step-1e-9), math.Floor(hi/step+1e-9)
	n := last - first + 1
	if !(n >= 1) {
		return nil
	}
	n = math.Min(n, maxStops)
	out := make([]float64, 0, int(n))
	for i := 0; i < int(n); i++ {
		v := (first + float64(i)) * step
		if math.Abs(v) < 1e-9*step {
			v = 0
		}
		if len(out) > 0 && v <= out[len(out)-1] {
			break
		}
		out = append(out, v)
	}
	return out
}

func (g graphDrawer) grid() {
	if !g.p.ShowGrid {
		return
	}
	st := thin(style.GridLine, RoleGrid)
	for _, x := range stops(g.w.Min.X, g.w.Max.X, niceStep(g.w.Width())) {
		g.s.Add(core.Segment{From: core.Pt(x, g.w.Min.Y), To: core.Pt(x, g.w.Max.Y), Style: st})
	}
	for _, y := range stops(g.w.Min.Y, g.w.Max.Y, niceStep(g.w.Height())) {
		g.s.Add(core.Segment{From: core.Pt(g.w.Min.X, y), To: core.Pt(g.w.Max.X, y), Style: st})
	}
}

// axes draws the x and y axes through the origin, or along the window edge
// when the origin is out of view, with tick marks and labels.
func (g graphDrawer) axes() {
	ax := clampTo(0, g.w.Min.Y, g.w.Max.Y)
	ay := clampTo(0, g.w.Min.X, g.w.Max.X)
	st := thin(style.Muted, RoleAxis)
	st.Width = 1.5
	g.s.Add(
		core.Segment{From: core.Pt(g.w.Min.X, ax), To: core.Pt(g.w.Max.X, ax), Style: st},
		core.Segment{From: core.Pt(ay, g.w.Min.Y), To: core.Pt(ay, g.w.Max.Y), Style: st},
	)

	tick := thin(style.Muted, RoleTick)
	label := text(style.Muted, RoleTick)
	suffix := ""
	if g.p.Degrees {
		suffix = "°"
	}
	for _, x := range stops(g.w.Min.X, g.w.Max.X, niceStep(g.w.Width())) {
		g.s.Add(core.Marker{Position: core.Pt(x, ax), Kind: core.Tick, Angle: 0, Size: tickSize / 2, Style: tick})
		if x == ay {
			continue
		}
		g.s.Add(core.Label{Position: core.Pt(x, ax), Text: diagram.FormatNumber(x) + suffix, Toward: core.Pt(0, -1), Style: label})
	}
	for _, y := range stops(g.w.Min.Y, g.w.Max.Y, niceStep(g.w.Height())) {
		g.s.Add(core.Marker{Position: core.Pt(ay, y), Kind: core.Tick, Angle: math.Pi / 2, Size: tickSize / 2, Style: tick})
		if y == ax {
			continue
		}
		g.s.Add(core.Label{Position: core.Pt(ay, y), Text: diagram.FormatNumber(y), Toward: core.Pt(-1, 0), Style: label})
	}
	if ax == 0 && ay == 0 {
		g.s.Add(core.Label{Position: core.Pt(0, 0), Text: "0", Toward: core.Pt(-1, -1), Style: label})
	}
}

func clampTo(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// curve joins consecutive defined samples. A run breaks at an undefined
// sample and at a pole between two samples. Segments that miss the window
// are dropped; the rest are clipped by the renderer. It returns the last
// in-window point of the curve for its label.
func (g graphDrawer) curve(samples []sample) *core.Point {
	st := stroke(style.Or(g.p.Color, style.Curve), RoleCurve)
	var last *core.Point
	for i := 0; i+1 < len(samples); i++ {
		a, b := samples[i], samples[i+1]
		if !a.ok || !b.ok || g.pole(a, b) {
			continue
		}
		pa, pb := core.Pt(a.x, a.y), core.Pt(b.x, b.y)
		_, end, ok := geometry.ClipSegment(g.w, pa, pb)
		if !ok {
			continue
		}
		g.s.Add(core.Segment{From: pa, To: pb, Style: st})
		last = &end
	}
	return last
}

// pole reports whether the curve jumps across the window between a and b
// through a discontinuity. A continuous crossing passes through the middle
// at a value between the two ends; a pole is undefined there or overshoots.
func (g graphDrawer) pole(a, b sample) bool {
	above, below := func(y float64) bool { return y > g.w.Max.Y }, func(y float64) bool { return y < g.w.Min.Y }
	if !(above(a.y) && below(b.y)) && !(below(a.y) && above(b.y)) {
		return false
	}
	y, ok := g.p.Func.Eval((a.x + b.x) / 2)
	return !ok || y <= math.Min(a.y, b.y) || y >= math.Max(a.y, b.y)
}

func (g graphDrawer) points() {
	for _, pt := range g.p.ShowPoints {
		y, _ := g.p.Func.Eval(pt.X)
		c := style.Or(pt.Color, style.Highlight)
		pos := core.Pt(pt.X, y)
		if !g.w.Contains(pos) {
			continue
		}
		g.s.Add(core.Marker{Position: pos, Kind: core.ClosedCircle, Size: dotSize, Style: core.Style{Stroke: c, Fill: c, Width: thinWidth, Role: RolePoint}})
		if pt.Label != "" {
			g.s.Add(core.Label{Position: pos, Text: pt.Label, Toward: core.Pt(1, 1), Style: text(c, RolePoint)})
		}
	}
}
