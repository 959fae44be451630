package export

import (
	"math"

	"mathfig/core"
	"mathfig/style"
)

const (
	defaultMarkerSize = 8.0
	defaultStroke     = 1.5
	arcStep           = math.Pi / 32
	dashOn, dashOff   = 6.0, 4.0
	titleGap          = 8.0
	defaultFontSize   = 13.0
)

// heading returns the y-down unit vector for a y-up angle.
func heading(theta float64) core.Point {
	return core.Pt(math.Cos(theta), -math.Sin(theta))
}

func markerSize(m core.Marker) float64 {
	if m.Size > 0 {
		return m.Size
	}
	return defaultMarkerSize
}

func labelSize(l core.Label) float64 {
	if l.Style.FontSize > 0 {
		return l.Style.FontSize
	}
	return defaultFontSize
}

func strokeWidth(s core.Style) float64 {
	if s.Width > 0 {
		return s.Width
	}
	return defaultStroke
}

func strokeColor(s core.Style) string {
	return style.Or(s.Stroke, style.Ink)
}

// textColor is the label colour: labels carry it in Fill.
func textColor(s core.Style) string {
	return style.Or(s.Fill, style.Or(s.Stroke, style.Ink))
}

// markerFill is the fill of circles and arrowheads.
func markerFill(m core.Marker) string {
	if m.Style.Fill != "" {
		return m.Style.Fill
	}
	if m.Kind == core.OpenCircle {
		return style.Page
	}
	return strokeColor(m.Style)
}

// tickEnds returns the end points of a tick crossing a line heading along
// the marker angle.
func tickEnds(m core.Marker) (core.Point, core.Point) {
	u := heading(m.Angle)
	n := core.Pt(-u.Y, u.X).Scale(markerSize(m) / 2)
	return m.Position.Sub(n), m.Position.Add(n)
}

// arrowPoints returns the tip and the two barbs of an arrowhead. The tip
// sits on the marker position.
func arrowPoints(m core.Marker) []core.Point {
	size := markerSize(m)
	u := heading(m.Angle)
	n := core.Pt(-u.Y, u.X).Scale(size * 0.35)
	base := m.Position.Sub(u.Scale(size))
	return []core.Point{m.Position, base.Add(n), base.Sub(n)}
}

// arcPoints returns the surface polyline of an arc.
func arcPoints(a core.Arc) []core.Point {
	sweep := a.Sweep()
	n := int(math.Ceil(sweep / arcStep))
	if n < 1 {
		n = 1
	}
	pts := make([]core.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := a.Start + sweep*float64(i)/float64(n)
		pts = append(pts, a.Center.Add(heading(theta).Scale(a.Radius)))
	}
	return pts
}

// circlePoints returns a closed polygon approximating a circle.
func circlePoints(c core.Point, r float64) []core.Point {
	const n = 24
	pts := make([]core.Point, n)
	for i := range pts {
		pts[i] = c.Add(heading(2 * math.Pi * float64(i) / n).Scale(r))
	}
	return pts
}

// dashes splits a segment into its painted pieces.
func dashes(from, to core.Point) [][2]core.Point {
	d := to.Sub(from)
	length := d.Len()
	if length == 0 {
		return nil
	}
	u := d.Scale(1 / length)
	var out [][2]core.Point
	for s := 0.0; s < length; s += dashOn + dashOff {
		e := math.Min(s+dashOn, length)
		out = append(out, [2]core.Point{from.Add(u.Scale(s)), from.Add(u.Scale(e))})
	}
	return out
}
