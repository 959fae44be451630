package builders

import (
	"fmt"
	"math"
	"sort"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/style"
)

// MaxTicks bounds how many tick marks a number line may have.
const MaxTicks = 500

// Point styles on a number line.
const (
	PointOpen   = "open"
	PointClosed = "closed"
	PointNone   = "none"
)

// Interval is a shaded range. A nil Start extends to -∞ and a nil End to +∞.
type Interval struct {
	Start, End                   *float64
	StartInclusive, EndInclusive bool
	Color                        string
	Label                        string
}

// LinePoint is a single marked value.
type LinePoint struct {
	Value float64
	Style string
	Label string
	Color string
}

// NumberLineParams is the normalized parameter set of the number line tool.
type NumberLineParams struct {
	Min, Max          float64
	Step              float64
	Intervals         []Interval
	Points            []LinePoint
	ShowTickMarks     bool
	ShowTickLabels    bool
	ShowArrows        bool
	HighlightIntegers bool
	Title             string
	Caption           string
}

type intervalWire struct {
	Start          *float64 `json:"start"`
	End            *float64 `json:"end"`
	StartInclusive *bool    `json:"startInclusive"`
	EndInclusive   *bool    `json:"endInclusive"`
	Color          *string  `json:"color"`
	Label          *string  `json:"label"`
}

type linePointWire struct {
	Value *float64 `json:"value"`
	Style *string  `json:"style"`
	Label *string  `json:"label"`
	Color *string  `json:"color"`
}

type numberLineWire struct {
	Min               *float64        `json:"min"`
	Max               *float64        `json:"max"`
	Step              *float64        `json:"step"`
	Intervals         []intervalWire  `json:"intervals"`
	Points            []linePointWire `json:"points"`
	ShowTickMarks     *bool           `json:"showTickMarks"`
	ShowTickLabels    *bool           `json:"showTickLabels"`
	ShowArrows        *bool           `json:"showArrows"`
	HighlightIntegers *bool           `json:"highlightIntegers"`
	Title             *string         `json:"title"`
	Caption           *string         `json:"caption"`
}

// NumberLineBuilder draws intervals and points on a horizontal number line.
type NumberLineBuilder struct{}

// Normalize implements diagram.Builder.
func (NumberLineBuilder) Normalize(raw diagram.RawParams) (NumberLineParams, error) {
	var p NumberLineParams
	var w numberLineWire
	if err := diagram.Decode(raw, &w); err != nil {
		return p, err
	}
	p.Min, p.Max, p.Step = floatOr(w.Min, -5), floatOr(w.Max, 5), floatOr(w.Step, 1)
	if err := finite("min", p.Min); err != nil {
		return p, err
	}
	if err := finite("max", p.Max); err != nil {
		return p, err
	}
	if err := finite("step", p.Step); err != nil {
		return p, err
	}
	if p.Min >= p.Max {
		return p, diagram.Invalid("max", "must be greater than min (%s ≥ %s)", diagram.FormatNumber(p.Min), diagram.FormatNumber(p.Max))
	}
	if p.Step <= 0 {
		return p, diagram.Invalid("step", "must be positive, got %s", diagram.FormatNumber(p.Step))
	}
	if n := (p.Max - p.Min) / p.Step; n > MaxTicks {
		return p, diagram.Invalid("step", "gives %d ticks, more than %d", int(n), MaxTicks)
	}

	for i, iw := range w.Intervals {
		field := fmt.Sprintf("intervals[%d]", i)
		iv := Interval{
			Start:          iw.Start,
			End:            iw.End,
			StartInclusive: boolOr(iw.StartInclusive, false),
			EndInclusive:   boolOr(iw.EndInclusive, false),
			Label:          stringOr(iw.Label, ""),
		}
		if iv.Start != nil && iv.End != nil && *iv.Start > *iv.End {
			return p, diagram.Invalid(field+".end", "must not be less than start (%s < %s)", diagram.FormatNumber(*iv.End), diagram.FormatNumber(*iv.Start))
		}
		if iv.Start == nil && iv.StartInclusive {
			return p, diagram.Invalid(field+".startInclusive", "an unbounded start cannot be inclusive")
		}
		if iv.End == nil && iv.EndInclusive {
			return p, diagram.Invalid(field+".endInclusive", "an unbounded end cannot be inclusive")
		}
		var err error
		if iv.Color, err = colour(field+".color", iw.Color); err != nil {
			return p, err
		}
		if iv.Color == "" {
			iv.Color = style.Palette(i)
		}
		p.Intervals = append(p.Intervals, iv)
	}

	for i, pw := range w.Points {
		field := fmt.Sprintf("points[%d]", i)
		if pw.Value == nil {
			return p, diagram.Invalid(field+".value", "is required")
		}
		if *pw.Value < p.Min || *pw.Value > p.Max {
			return p, diagram.Invalid(field+".value", "%s is outside the visible range [%s, %s]", diagram.FormatNumber(*pw.Value), diagram.FormatNumber(p.Min), diagram.FormatNumber(p.Max))
		}
		pt := LinePoint{Value: *pw.Value, Label: stringOr(pw.Label, "")}
		var err error
		if pt.Style, err = oneOf(field+".style", pw.Style, PointClosed, PointOpen, PointClosed, PointNone); err != nil {
			return p, err
		}
		if pt.Color, err = colour(field+".color", pw.Color); err != nil {
			return p, err
		}
		p.Points = append(p.Points, pt)
	}

	p.ShowTickMarks = boolOr(w.ShowTickMarks, true)
	p.ShowTickLabels = boolOr(w.ShowTickLabels, true)
	p.ShowArrows = boolOr(w.ShowArrows, true)
	p.HighlightIntegers = boolOr(w.HighlightIntegers, false)
	p.Title = stringOr(w.Title, "")
	p.Caption = stringOr(w.Caption, "")
	return p, nil
}

// boundary is one endpoint circle. Closed wins when boundaries coincide,
// since the union then contains the value.
type boundary struct {
	value  float64
	closed bool
	color  string
	labels []string
	// explicit is set when a caller-supplied point chose the style.
	explicit bool
}

func markerKey(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// Build implements diagram.Builder.
func (NumberLineBuilder) Build(p NumberLineParams) (*core.Scene, error) {
	s := core.NewScene()
	s.Title = p.Title
	s.Caption = p.Caption

	axis := stroke(style.Ink, RoleAxis)
	s.Add(core.Segment{From: core.Pt(p.Min, 0), To: core.Pt(p.Max, 0), Style: axis})
	if p.ShowArrows {
		head := axis
		head.Fill = axis.Stroke
		s.Add(
			core.Marker{Position: core.Pt(p.Min, 0), Kind: core.Arrowhead, Angle: math.Pi, Size: arrowSize, Style: head},
			core.Marker{Position: core.Pt(p.Max, 0), Kind: core.Arrowhead, Angle: 0, Size: arrowSize, Style: head},
		)
	}
	ticks(s, p)

	boundaries := map[float64]*boundary{}
	var order []float64
	addBoundary := func(v float64, closed bool, color string) {
		k := markerKey(v)
		b, ok := boundaries[k]
		if !ok {
			b = &boundary{value: v, color: color}
			boundaries[k] = b
			order = append(order, k)
		}
		b.closed = b.closed || closed
	}

	for _, iv := range p.Intervals {
		lo, hi := math.Inf(-1), math.Inf(1)
		if iv.Start != nil {
			lo = *iv.Start
		}
		if iv.End != nil {
			hi = *iv.End
		}
		a, b := math.Max(lo, p.Min), math.Min(hi, p.Max)
		if a > b {
			continue // entirely out of view
		}
		run := core.Style{Stroke: iv.Color, Width: 3 * strokeWidth, Role: RoleInterval}
		s.Add(core.Segment{From: core.Pt(a, 0), To: core.Pt(b, 0), Style: run})
		head := core.Style{Stroke: iv.Color, Fill: iv.Color, Width: strokeWidth, Role: RoleInterval}
		if lo < p.Min {
			s.Add(core.Marker{Position: core.Pt(a, 0), Kind: core.Arrowhead, Angle: math.Pi, Size: arrowSize * 1.2, Style: head})
		} else {
			addBoundary(lo, iv.StartInclusive, iv.Color)
		}
		if hi > p.Max {
			s.Add(core.Marker{Position: core.Pt(b, 0), Kind: core.Arrowhead, Angle: 0, Size: arrowSize * 1.2, Style: head})
		} else {
			addBoundary(hi, iv.EndInclusive, iv.Color)
		}
		if iv.Label != "" {
			s.Add(core.Label{Position: core.Pt((a+b)/2, 0), Text: iv.Label, Toward: core.Pt(0, 1), Style: text(iv.Color, RoleInterval)})
		}
	}

	var plain []LinePoint
	for i, pt := range p.Points {
		k := markerKey(pt.Value)
		b, ok := boundaries[k]
		switch {
		case pt.Style == PointNone:
			plain = append(plain, pt)
		case ok:
			if b.closed != (pt.Style == PointClosed) {
				return nil, diagram.Invalid(fmt.Sprintf("points[%d].style", i), "%s point at %s contradicts the interval boundary there", pt.Style, diagram.FormatNumber(pt.Value))
			}
			if pt.Label != "" {
				b.labels = append(b.labels, pt.Label)
			}
		default:
			color := style.Or(pt.Color, style.Ink)
			boundaries[k] = &boundary{value: pt.Value, closed: pt.Style == PointClosed, color: color, explicit: true}
			if pt.Label != "" {
				boundaries[k].labels = []string{pt.Label}
			}
			order = append(order, k)
		}
	}

	sort.Float64s(order)
	for _, k := range order {
		b := boundaries[k]
		kind, fill := core.OpenCircle, style.Page
		if b.closed {
			kind, fill = core.ClosedCircle, b.color
		}
		role := RoleBoundary
		if b.explicit {
			role = RolePoint
		}
		s.Add(core.Marker{Position: core.Pt(b.value, 0), Kind: kind, Size: dotSize, Style: core.Style{Stroke: b.color, Fill: fill, Width: strokeWidth, Role: role}})
		for _, l := range b.labels {
			s.Add(core.Label{Position: core.Pt(b.value, 0), Text: l, Toward: core.Pt(0, 1), Style: text(b.color, RolePoint)})
		}
	}
	for _, pt := range plain {
		if pt.Label != "" {
			s.Add(core.Label{Position: core.Pt(pt.Value, 0), Text: pt.Label, Toward: core.Pt(0, 1), Style: text(style.Or(pt.Color, style.Ink), RolePoint)})
		}
	}
	return s, nil
}

func ticks(s *core.Scene, p NumberLineParams) {
	if !p.ShowTickMarks && !p.ShowTickLabels {
		return
	}
	n := int(math.Floor((p.Max-p.Min)/p.Step + 1e-9))
	for i := 0; i <= n; i++ {
		v := p.Min + float64(i)*p.Step
		isInt := math.Abs(v-math.Round(v)) < 1e-9
		if p.ShowTickMarks {
			st := thin(style.Ink, RoleTick)
			size := float64(tickSize)
			if p.HighlightIntegers && isInt {
				st.Width = strokeWidth
				size *= 1.6
			}
			s.Add(core.Marker{Position: core.Pt(v, 0), Kind: core.Tick, Angle: 0, Size: size, Style: st})
		}
		if p.ShowTickLabels {
			s.Add(core.Label{Position: core.Pt(v, 0), Text: diagram.FormatNumber(v), Toward: core.Pt(0, -1), Style: text(style.Ink, RoleTick)})
		}
	}
}
