package builders

import (
	"math"
	"slices"
	"strings"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/geometry"
	"mathfig/style"
)

// polygonDrawer emits the annotations of one quadrilateral. Edge i runs from
// vertex i to vertex i+1; edges 0 and 2 are the base pair, 1 and 3 the legs.
type polygonDrawer struct {
	s      *core.Scene
	v      []core.Point
	p      PolygonParams
	c      core.Point
	ccw    bool
	arcR   float64
	minLen float64
	// apex and foot describe the perpendicular height when one is drawn.
	apex, foot core.Point
	hasFoot    bool
}

func newPolygonDrawer(s *core.Scene, v []core.Point, p PolygonParams) *polygonDrawer {
	minLen := math.Inf(1)
	for i := range v {
		minLen = math.Min(minLen, geometry.Distance(v[i], v[(i+1)%4]))
	}
	d := &polygonDrawer{
		s:      s,
		v:      v,
		p:      p,
		c:      geometry.Centroid(v),
		ccw:    geometry.SignedArea(v) > 0,
		arcR:   0.18 * minLen,
		minLen: minLen,
	}
	if p.Kind == MeasuredParallelogram && p.ShowPerpendicular {
		d.apex, d.foot = d.heightFoot()
		d.hasFoot = true
	}
	return d
}

func (d *polygonDrawer) edge(i int) (core.Point, core.Point) {
	return d.v[i%4], d.v[(i+1)%4]
}

func (d *polygonDrawer) angleArc(i int) core.Arc {
	return interiorArc(d.v[(i+3)%4], d.v[i], d.v[(i+1)%4], d.arcR, d.ccw)
}

func (d *polygonDrawer) highlighted(i int) bool {
	return slices.Contains(d.p.HighlightAngles, i)
}

func (d *polygonDrawer) grid() {
	if d.p.Kind != Rectangle || !d.p.ShowGrid {
		return
	}
	st := thin(style.GridLine, RoleGrid)
	u := geometry.Unit(d.v[1].Sub(d.v[0]))
	w := geometry.Unit(d.v[3].Sub(d.v[0]))
	for i := 1; float64(i) < d.p.Length.Value; i++ {
		off := u.Scale(float64(i))
		d.s.Add(core.Segment{From: d.v[0].Add(off), To: d.v[3].Add(off), Style: st})
	}
	for j := 1; float64(j) < d.p.Width.Value; j++ {
		off := w.Scale(float64(j))
		d.s.Add(core.Segment{From: d.v[0].Add(off), To: d.v[1].Add(off), Style: st})
	}
}

// highlights fills an angle wedge at every highlighted vertex.
func (d *polygonDrawer) highlights() {
	for _, i := range d.p.HighlightAngles {
		arc := d.angleArc(i)
		arc.Radius *= 1.3
		arc.Style = core.Style{Stroke: style.Highlight, Fill: style.Tint(style.Highlight, 0.55), Width: thinWidth, Role: RoleHighlight}
		d.s.Add(arc)
	}
}

func (d *polygonDrawer) outline() {
	closedPath(d.s, d.v, stroke(d.p.Color, RoleOutline))
}

func (d *polygonDrawer) sideHighlights() {
	if d.p.Kind != Rectangle || d.p.HighlightMode == HighlightNone {
		return
	}
	st := core.Style{Stroke: style.Highlight, Width: 2 * strokeWidth, Role: RoleHighlight}
	var edges []int
	switch d.p.HighlightMode {
	case HighlightLength:
		edges = []int{0, 2}
	case HighlightWidth:
		edges = []int{1, 3}
	case HighlightBoth:
		edges = []int{0, 1, 2, 3}
	}
	for _, e := range edges {
		a, b := d.edge(e)
		d.s.Add(core.Segment{From: a, To: b, Style: st})
	}
}

// angleArcs marks every labelled angle that is not already highlighted.
func (d *polygonDrawer) angleArcs() {
	for i := 0; i < 4; i++ {
		if d.highlighted(i) {
			continue
		}
		labelled := !diagram.IsUnknown(d.p.Angles[i])
		if !labelled && !(d.p.ShowAngles && d.p.Kind == MeasuredParallelogram) {
			continue
		}
		if d.p.Kind == Rectangle {
			continue // right-angle marks already show these
		}
		arc := d.angleArc(i)
		arc.Style = thin(d.p.Color, RoleAngleArc)
		d.s.Add(arc)
	}
}

func (d *polygonDrawer) equalSides() {
	if !d.p.ShowEqualSideMarkers {
		return
	}
	st := thin(d.p.Color, RoleTick)
	st.Width = strokeWidth
	counts := [4]int{1, 2, 1, 2}
	switch d.p.Kind {
	case Rhombus:
		counts = [4]int{1, 1, 1, 1}
	case Trapezium:
		counts = [4]int{0, 1, 0, 1}
	}
	for e, n := range counts {
		a, b := d.edge(e)
		repeated(d.s, a, b, n, core.Tick, tickSize, st)
	}
}

// parallelSides draws arrowheads on each parallel pair, single for the base
// pair and double for the legs. Both edges of a pair point the same way.
func (d *polygonDrawer) parallelSides() {
	if !d.p.ShowParallelMarkers {
		return
	}
	st := thin(d.p.Color, RoleParallel)
	st.Width = strokeWidth
	st.Fill = st.Stroke
	repeated(d.s, d.v[0], d.v[1], 1, core.Arrowhead, arrowSize, st)
	repeated(d.s, d.v[3], d.v[2], 1, core.Arrowhead, arrowSize, st)
	if d.p.Kind == Trapezium {
		return
	}
	repeated(d.s, d.v[1], d.v[2], 2, core.Arrowhead, arrowSize, st)
	repeated(d.s, d.v[0], d.v[3], 2, core.Arrowhead, arrowSize, st)
}

func (d *polygonDrawer) rightAngles() {
	if d.p.Kind != Rectangle {
		return
	}
	st := thin(d.p.Color, RoleRightAngle)
	k := 0.12 * d.minLen
	for i := 0; i < 4; i++ {
		v := d.v[i]
		u := geometry.Unit(d.v[(i+1)%4].Sub(v))
		w := geometry.Unit(d.v[(i+3)%4].Sub(v))
		rightAngle(d.s, v, u, w, k, st)
	}
}

// heightFoot picks the top vertex whose perpendicular lands on the base,
// preferring vertex 3. When neither does, vertex 3 is used and the base is
// extended to meet the foot.
func (d *polygonDrawer) heightFoot() (apex, foot core.Point) {
	a, b := d.v[0], d.v[1]
	for _, i := range []int{3, 2} {
		f := geometry.Foot(d.v[i], a, b)
		t := geometry.Dot(f.Sub(a), b.Sub(a)) / geometry.Dot(b.Sub(a), b.Sub(a))
		if t >= -geometry.Epsilon && t <= 1+geometry.Epsilon {
			return d.v[i], f
		}
	}
	return d.v[3], geometry.Foot(d.v[3], a, b)
}

// perpendicular draws the dashed height at a true right angle to the base,
// distinct from the slanted side.
func (d *polygonDrawer) perpendicular() {
	if !d.hasFoot {
		return
	}
	a, b := d.v[0], d.v[1]
	t := geometry.Dot(d.foot.Sub(a), b.Sub(a)) / geometry.Dot(b.Sub(a), b.Sub(a))
	if t < -geometry.Epsilon {
		d.s.Add(core.Segment{From: a, To: d.foot, Style: dashed(thin("", RoleConstruction))})
	} else if t > 1+geometry.Epsilon {
		d.s.Add(core.Segment{From: b, To: d.foot, Style: dashed(thin("", RoleConstruction))})
	}

	d.s.Add(core.Segment{From: d.apex, To: d.foot, Style: dashed(stroke(style.Highlight, RoleHeight))})

	u := geometry.Unit(b.Sub(a))
	if geometry.Dot(d.c.Sub(d.foot), u) < 0 {
		u = u.Scale(-1)
	}
	w := geometry.Unit(d.apex.Sub(d.foot))
	rightAngle(d.s, d.foot, u, w, 0.1*d.minLen, thin(style.Highlight, RoleRightAngle))

	if d.p.Height.Text != "" {
		d.s.Add(core.Label{
			Position: geometry.Midpoint(d.apex, d.foot),
			Text:     d.p.Height.Text,
			Toward:   u.Scale(-1),
			Style:    text(style.Highlight, RoleHeight),
		})
	}
}

// transformation shows the triangle cut off by the height moved across to
// the other side, turning the parallelogram into a rectangle.
func (d *polygonDrawer) transformation() {
	if !d.hasFoot || !d.p.ShowTransformation {
		return
	}
	shift := d.v[1].Sub(d.v[0])
	if d.apex == d.v[2] {
		shift = shift.Scale(-1)
	}
	corner := d.v[0]
	if d.apex == d.v[2] {
		corner = d.v[1]
	}
	tri := []core.Point{corner, d.foot, d.apex}
	moved := geometry.Transform(tri, func(p core.Point) core.Point { return p.Add(shift) })
	st := dashed(thin(style.Curve, RoleTransformation))
	closedPath(d.s, moved, st)
	from := geometry.Centroid(tri)
	to := geometry.Centroid(moved)
	d.s.Add(core.Segment{From: from, To: to, Style: st})
	d.s.Add(core.Marker{Position: to, Kind: core.Arrowhead, Angle: geometry.Heading(shift), Size: arrowSize,
		Style: core.Style{Stroke: style.Curve, Fill: style.Curve, Width: thinWidth, Role: RoleTransformation}})
}

func (d *polygonDrawer) sideLabel(e int, m diagram.Measure) {
	if m.Text == "" {
		return
	}
	a, b := d.edge(e)
	d.s.Add(core.Label{
		Position: geometry.Midpoint(a, b),
		Text:     m.Text,
		Toward:   outward(a, b, d.c),
		Style:    text(d.p.Color, RoleSide),
	})
}

func (d *polygonDrawer) sideLabels() {
	switch d.p.Kind {
	case Rhombus:
		d.sideLabel(0, d.p.Side)
	case MeasuredParallelogram:
		d.sideLabel(0, d.p.Base)
		d.sideLabel(1, d.p.Side)
	case Rectangle:
		d.sideLabel(0, d.p.Length)
		d.sideLabel(1, d.p.Width)
	}
}

func (d *polygonDrawer) vertexLabels() {
	for i, name := range d.p.VertexLabels {
		if name == "" {
			continue
		}
		d.s.Add(core.Label{
			Position: d.v[i],
			Text:     name,
			Toward:   geometry.Unit(d.v[i].Sub(d.c)),
			Style:    text(d.p.Color, RoleVertex),
		})
	}
}

// angleLabels writes each supplied angle verbatim inside its corner. Unknown
// slots produce nothing.
func (d *polygonDrawer) angleLabels() {
	for i, a := range d.p.Angles {
		t := a.Text()
		if t == "" && i == 0 && d.p.Kind == MeasuredParallelogram && d.p.ShowAngles {
			t = d.p.AngleText
		}
		if t == "" {
			continue
		}
		arc := d.angleArc(i)
		c := d.p.Color
		if d.highlighted(i) {
			c = style.Highlight
		}
		d.s.Add(core.Label{
			Position: d.v[i].Add(bisector(arc).Scale(d.arcR * 2.2)),
			Text:     t,
			Style:    text(c, RoleAngle),
		})
	}
}

// angleSums annotates each leg of a trapezium with the co-interior angle
// pair, as written by the caller.
func (d *polygonDrawer) angleSums() {
	if d.p.Kind != Trapezium || !d.p.ShowAngleSumAnnotation {
		return
	}
	for _, leg := range [][2]int{{3, 0}, {1, 2}} {
		a, b := d.p.Angles[leg[0]], d.p.Angles[leg[1]]
		if diagram.IsUnknown(a) || diagram.IsUnknown(b) {
			continue
		}
		p, q := d.v[leg[0]], d.v[leg[1]]
		n := outward(p, q, d.c)
		d.s.Add(core.Label{
			Position: geometry.Midpoint(p, q).Add(n.Scale(0.25 * d.minLen)),
			Text:     angleTerm(a) + " + " + angleTerm(b) + " = 180°",
			Toward:   n,
			Style:    text(style.Muted, RoleAnnotation),
		})
	}
}

func angleTerm(a diagram.AngleLabel) string {
	if p, ok := a.(diagram.Placeholder); ok && !strings.HasPrefix(p.Symbol, "∠") {
		return "∠" + p.Symbol
	}
	return a.Text()
}
