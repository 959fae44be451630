package builders

import (
	"math"

	"mathfig/core"
	"mathfig/geometry"
	"mathfig/style"
)

// Roles tag what each primitive depicts.
const (
	RoleOutline        = "outline"
	RoleVertex         = "vertex"
	RoleAngle          = "angle"
	RoleAngleArc       = "angle-arc"
	RoleHighlight      = "highlight"
	RoleSide           = "side"
	RoleTick           = "tick"
	RoleParallel       = "parallel"
	RoleHeight         = "height"
	RoleRightAngle     = "right-angle"
	RoleConstruction   = "construction"
	RoleTransformation = "transformation"
	RoleAnnotation     = "annotation"
	RoleGrid           = "grid"
	RoleAxis           = "axis"
	RoleCurve          = "curve"
	RolePoint          = "point"
	RoleInterval       = "interval"
	RoleBoundary       = "boundary"
	RoleDiameter       = "diameter"
	RoleRadius         = "radius"
)

// Marker sizes are in surface units.
const (
	tickSize  = 10
	arrowSize = 10
	dotSize   = 5
)

const (
	strokeWidth = 2
	thinWidth   = 1
)

func stroke(c, role string) core.Style {
	return core.Style{Stroke: style.Or(c, style.Ink), Width: strokeWidth, Role: role}
}

func thin(c, role string) core.Style {
	return core.Style{Stroke: style.Or(c, style.Muted), Width: thinWidth, Role: role}
}

func text(c, role string) core.Style {
	return core.Style{Fill: style.Or(c, style.Ink), Role: role}
}

func dashed(s core.Style) core.Style {
	s.Dashed = true
	return s
}

// closedPath adds one segment per polygon edge.
func closedPath(s *core.Scene, pts []core.Point, st core.Style) {
	for i, p := range pts {
		s.Add(core.Segment{From: p, To: pts[(i+1)%len(pts)], Style: st})
	}
}

// repeated places count markers centred on the midpoint of ab, spaced along
// the edge.
func repeated(s *core.Scene, a, b core.Point, count int, kind core.MarkerKind, size float64, st core.Style) {
	dir := b.Sub(a)
	heading := geometry.Heading(dir)
	step := geometry.Unit(dir).Scale(dir.Len() * 0.045)
	mid := geometry.Midpoint(a, b)
	for i := 0; i < count; i++ {
		off := float64(i) - float64(count-1)/2
		s.Add(core.Marker{Position: mid.Add(step.Scale(off)), Kind: kind, Angle: heading, Size: size, Style: st})
	}
}

// interiorArc returns the arc spanning the interior angle at v, where prev
// and next are its neighbours and ccw gives the polygon winding.
func interiorArc(prev, v, next core.Point, r float64, ccw bool) core.Arc {
	toNext := geometry.Heading(next.Sub(v))
	toPrev := geometry.Heading(prev.Sub(v))
	start, end := toNext, toPrev
	if !ccw {
		start, end = toPrev, toNext
	}
	return core.Arc{Center: v, Radius: r, Start: geometry.NormalizeAngle(start), End: geometry.NormalizeAngle(end)}
}

// bisector returns the unit vector splitting the interior angle of arc.
func bisector(a core.Arc) core.Point {
	mid := a.Start + a.Sweep()/2
	return core.Point{X: math.Cos(mid), Y: math.Sin(mid)}
}

// rightAngle draws the small square that marks a right angle at corner,
// with u and w the unit directions of its two arms.
func rightAngle(s *core.Scene, corner, u, w core.Point, k float64, st core.Style) {
	p1 := corner.Add(u.Scale(k))
	p2 := p1.Add(w.Scale(k))
	p3 := corner.Add(w.Scale(k))
	s.Add(core.Segment{From: p1, To: p2, Style: st}, core.Segment{From: p2, To: p3, Style: st})
}

// outward returns the unit normal of edge ab pointing away from c.
func outward(a, b, c core.Point) core.Point {
	n := geometry.Unit(geometry.Perp(b.Sub(a)))
	if geometry.Dot(n, c.Sub(geometry.Midpoint(a, b))) > 0 {
		n = n.Scale(-1)
	}
	return n
}
