package layout

import (
	"math"

	"mathfig/core"
	"mathfig/diagram"
)

const (
	// Gap separates a label's text box from its attachment point.
	Gap = 4.0
	// maxPasses bounds the overlap nudging.
	maxPasses = 8
	// snap is the smallest component of Toward that still pushes along
	// that axis; below it the label is centred on the axis.
	snap = 0.38
)

// LabelBox returns the text box of a placed label.
func LabelBox(l core.Label, m diagram.Measurer) core.Bounds {
	w, h := m.Measure(l.Text, l.Style.FontSize)
	c := l.TextPosition()
	return core.Bounds{Min: core.Pt(c.X-w/2, c.Y-h/2), Max: core.Pt(c.X+w/2, c.Y+h/2)}
}

// push is the y-down sign vector a label is moved along.
func push(toward core.Point) core.Point {
	n := toward.Len()
	if n == 0 || math.IsNaN(n) {
		return core.Point{}
	}
	u := toward.Scale(1 / n)
	var p core.Point
	if math.Abs(u.X) >= snap {
		p.X = math.Copysign(1, u.X)
	}
	if math.Abs(u.Y) >= snap {
		p.Y = -math.Copysign(1, u.Y)
	}
	return p
}

func anchor(toward core.Point) core.Direction {
	switch {
	case toward.IsZero():
		return core.Center
	case math.Abs(toward.X) >= math.Abs(toward.Y):
		if toward.X > 0 {
			return core.East
		}
		return core.West
	case toward.Y > 0:
		return core.North
	default:
		return core.South
	}
}

// PlaceLabels fills in the Anchor and Offset of every label in d. Each text
// box is pushed off its point in its Toward direction, then overlapping
// boxes are nudged apart and every box is kept on the surface. Geometry is
// never moved.
func PlaceLabels(d *core.Drawing, m diagram.Measurer) {
	idx := d.LabelIndices()
	if len(idx) == 0 {
		return
	}
	labels := make([]core.Label, len(idx))
	dirs := make([]core.Point, len(idx))
	boxes := make([]core.Bounds, len(idx))
	for i, at := range idx {
		l := d.Primitives[at].(core.Label)
		w, h := m.Measure(l.Text, l.Style.FontSize)
		p := push(l.Toward)
		l.Anchor = anchor(l.Toward)
		l.Offset = core.Pt(p.X*(Gap+w/2), p.Y*(Gap+h/2))
		labels[i], dirs[i] = l, p
		boxes[i] = LabelBox(l, m)
	}

	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for i := range boxes {
			for j := i + 1; j < len(boxes); j++ {
				if !boxes[i].Overlaps(boxes[j]) {
					continue
				}
				boxes[j] = separate(boxes[i], boxes[j], dirs[j])
				moved = true
			}
		}
		for i := range boxes {
			boxes[i] = clamp(boxes[i], d.Width, d.Height)
		}
		if !moved {
			break
		}
	}

	for i, at := range idx {
		l := labels[i]
		l.Offset = boxes[i].Center().Sub(l.Position)
		d.Primitives[at] = l
	}
}

// separate moves b clear of a along the axis its label is pushed on.
// Centred and horizontal-only labels move vertically unless they are pushed
// sideways.
func separate(a, b core.Bounds, dir core.Point) core.Bounds {
	if dir.Y == 0 && dir.X != 0 {
		if dir.X > 0 {
			return b.Translate(core.Pt(a.Max.X-b.Min.X+1, 0))
		}
		return b.Translate(core.Pt(a.Min.X-b.Max.X-1, 0))
	}
	if dir.Y < 0 {
		return b.Translate(core.Pt(0, a.Min.Y-b.Max.Y-1))
	}
	return b.Translate(core.Pt(0, a.Max.Y-b.Min.Y+1))
}

func clamp(b core.Bounds, width, height float64) core.Bounds {
	var dx, dy float64
	switch {
	case b.Min.X < 0 || b.Width() > width:
		dx = -b.Min.X
	case b.Max.X > width:
		dx = width - b.Max.X
	}
	switch {
	case b.Min.Y < 0 || b.Height() > height:
		dy = -b.Min.Y
	case b.Max.Y > height:
		dy = height - b.Max.Y
	}
	return b.Translate(core.Pt(dx, dy))
}
