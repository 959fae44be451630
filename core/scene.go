package core

import "math"

// Style carries the visual attributes of a primitive. Colours are explicit
// strings (hex or a named colour); an empty string means "renderer default".
type Style struct {
	Stroke   string  `json:"stroke,omitempty"`
	Fill     string  `json:"fill,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Dashed   bool    `json:"dashed,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	// Role names what the primitive depicts ("outline", "angle", "interval", ...).
	// Renderers ignore it; tests and validators use it.
	Role string `json:"role,omitempty"`
}

// Primitive is one of Segment, Arc, Marker or Label.
type Primitive interface {
	// Type returns the primitive variant name.
	Type() string
	// Anchors returns the points that define the primitive's extent.
	Anchors() []Point
	isPrimitive()
}

// Segment is a straight line between two points.
type Segment struct {
	From  Point `json:"from"`
	To    Point `json:"to"`
	Style Style `json:"style"`
}

// Arc is a circular arc swept counter-clockwise from Start to End (radians).
// Angles are measured in the y-up sense in both logical and surface space:
// a point on the arc in surface space is Center + Radius*(cos θ, -sin θ).
// A non-empty Style.Fill draws the arc as a wedge closed at Center.
type Arc struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Style  Style   `json:"style"`
}

// MarkerKind enumerates the marker shapes.
type MarkerKind int

const (
	// Tick is a short stroke across a line, perpendicular to Angle.
	Tick MarkerKind = iota
	// Arrowhead points along Angle.
	Arrowhead
	// OpenCircle is a hollow dot: boundary excluded.
	OpenCircle
	// ClosedCircle is a filled dot: boundary included.
	ClosedCircle
)

// String returns the marker kind name.
func (k MarkerKind) String() string {
	switch k {
	case Tick:
		return "tick"
	case Arrowhead:
		return "arrowhead"
	case OpenCircle:
		return "circle-open"
	case ClosedCircle:
		return "circle-closed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k MarkerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Marker is a fixed-size symbol placed at a point. Size is in surface units
// and is not scaled by the viewport.
type Marker struct {
	Position Point      `json:"position"`
	Kind     MarkerKind `json:"kind"`
	Angle    float64    `json:"angle"`
	Size     float64    `json:"size,omitempty"`
	Style    Style      `json:"style"`
}

// Label is a piece of text attached to a point. Toward is the preferred
// direction (y-up sense) in which the text is pushed away from Position;
// the zero vector centres the text on Position. Anchor and Offset are
// filled in by label layout.
type Label struct {
	Position Point     `json:"position"`
	Text     string    `json:"text"`
	Anchor   Direction `json:"anchor"`
	Toward   Point     `json:"toward"`
	Offset   Point     `json:"offset"`
	Style    Style     `json:"style"`
}

// TextPosition returns where the text box centre lies once the layout
// offset has been applied.
func (l Label) TextPosition() Point {
	return l.Position.Add(l.Offset)
}

func (Segment) Type() string { return "segment" }
func (Arc) Type() string     { return "arc" }
func (Marker) Type() string  { return "marker" }
func (Label) Type() string   { return "label" }

func (s Segment) Anchors() []Point { return []Point{s.From, s.To} }
func (m Marker) Anchors() []Point  { return []Point{m.Position} }
func (l Label) Anchors() []Point   { return []Point{l.Position} }

// Anchors returns the arc end points, its centre for wedges and the extreme
// points of every quadrant the sweep crosses.
func (a Arc) Anchors() []Point {
	pts := []Point{a.PointAt(a.Start), a.PointAt(a.End)}
	if a.Style.Fill != "" {
		pts = append(pts, a.Center)
	}
	sweep := a.Sweep()
	for q := 0; q < 4; q++ {
		theta := float64(q) * math.Pi / 2
		d := math.Mod(theta-a.Start+4*math.Pi, 2*math.Pi)
		if d <= sweep {
			pts = append(pts, a.PointAt(theta))
		}
	}
	return pts
}

// Sweep returns the counter-clockwise angular extent in [0, 2π].
func (a Arc) Sweep() float64 {
	s := math.Mod(a.End-a.Start, 2*math.Pi)
	if s < 0 {
		s += 2 * math.Pi
	}
	if s == 0 && a.End != a.Start {
		return 2 * math.Pi
	}
	return s
}

// PointAt returns the y-up point on the arc circle at angle theta.
func (a Arc) PointAt(theta float64) Point {
	return Point{X: a.Center.X + a.Radius*math.Cos(theta), Y: a.Center.Y + a.Radius*math.Sin(theta)}
}

// SurfacePointAt returns the point at angle theta once the arc sits on a
// y-down drawing surface.
func (a Arc) SurfacePointAt(theta float64) Point {
	return Point{X: a.Center.X + a.Radius*math.Cos(theta), Y: a.Center.Y - a.Radius*math.Sin(theta)}
}

// SurfaceAnchors returns the anchors of a primitive on a Drawing. Arc angles
// keep the y-up sense on the surface, so arc anchors mirror about the centre.
func SurfaceAnchors(p Primitive) []Point {
	a, ok := p.(Arc)
	if !ok {
		return p.Anchors()
	}
	pts := a.Anchors()
	for i := range pts {
		pts[i].Y = 2*a.Center.Y - pts[i].Y
	}
	return pts
}

func (Segment) isPrimitive() {}
func (Arc) isPrimitive()     {}
func (Marker) isPrimitive()  {}
func (Label) isPrimitive()   {}

// Scene is the ordered list of primitives a builder produces in logical units.
type Scene struct {
	Primitives []Primitive
	Title      string
	Caption    string
	// Clip, when set, is the logical window the scene is cropped to. The
	// viewport fits the clip window instead of the primitive extents.
	Clip *Bounds
	// AxisScale multiplies logical X and Y before fitting. The zero value
	// means 1:1, which every shape scene uses.
	AxisScale Point
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends primitives in draw order.
func (s *Scene) Add(p ...Primitive) {
	s.Primitives = append(s.Primitives, p...)
}

// Bounds returns the box around every primitive anchor, or the clip window
// when one is set.
func (s *Scene) Bounds() (Bounds, bool) {
	if s.Clip != nil {
		return *s.Clip, true
	}
	var bb BoundsBuilder
	for _, p := range s.Primitives {
		for _, a := range p.Anchors() {
			bb.Add(a)
		}
	}
	return bb.Bounds()
}

// Drawing is the renderer-agnostic output: primitives in surface units.
type Drawing struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Primitives []Primitive `json:"primitives"`
	Title      string      `json:"title,omitempty"`
	Caption    string      `json:"caption,omitempty"`
	// Clip is the surface rectangle outside which nothing may be painted.
	Clip *Bounds `json:"clip,omitempty"`
}

// LabelIndices returns the positions of every Label in Primitives.
func (d *Drawing) LabelIndices() []int {
	var out []int
	for i, p := range d.Primitives {
		if _, ok := p.(Label); ok {
			out = append(out, i)
		}
	}
	return out
}

// Labels returns a copy of every label in draw order.
func (d *Drawing) Labels() []Label {
	var out []Label
	for _, p := range d.Primitives {
		if l, ok := p.(Label); ok {
			out = append(out, l)
		}
	}
	return out
}

// Count returns how many primitives of the given kind the drawing holds.
func (d *Drawing) Count(kind string) int {
	n := 0
	for _, p := range d.Primitives {
		if p.Type() == kind {
			n++
		}
	}
	return n
}
