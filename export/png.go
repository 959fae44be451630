package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/norm"

	"mathfig/core"
	"mathfig/style"
)

// PNGExporter rasterizes drawings with anti-aliasing.
type PNGExporter struct {
	// Face draws label text. The face is used at its native size.
	Face font.Face
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{Face: basicfont.Face7x13}
}

// Export renders the drawing as a PNG image.
func (e *PNGExporter) Export(d *core.Drawing) ([]byte, error) {
	img, err := e.Rasterize(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize paints the drawing onto a new image the size of its surface.
func (e *PNGExporter) Rasterize(d *core.Drawing) (*image.RGBA, error) {
	if err := checkDrawing(d); err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(d.Width)), int(math.Ceil(d.Height))
	p := newPainter(w, h)
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(style.RGBA(style.Page)), image.Point{}, draw.Src)

	if d.Clip != nil {
		p.clip = image.Rect(
			int(math.Floor(d.Clip.Min.X)), int(math.Floor(d.Clip.Min.Y)),
			int(math.Ceil(d.Clip.Max.X)), int(math.Ceil(d.Clip.Max.Y)),
		).Intersect(p.img.Bounds())
	}
	for _, prim := range d.Primitives {
		switch prim := prim.(type) {
		case core.Segment:
			p.segment(prim.From, prim.To, prim.Style)
		case core.Arc:
			p.arc(prim)
		case core.Marker:
			p.marker(prim)
		}
	}

	p.clip = p.img.Bounds()
	face := e.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	for _, l := range d.Labels() {
		p.text(face, l.TextPosition(), l.Text, textColor(l.Style))
	}
	if d.Title != "" {
		p.text(face, core.Pt(d.Width/2, titleGap+7), d.Title, style.Ink)
	}
	if d.Caption != "" {
		p.text(face, core.Pt(d.Width/2, d.Height-titleGap-7), d.Caption, style.Muted)
	}
	return p.img, nil
}

// GetFileExtension returns the recommended file extension
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}

// painter fills one polygon at a time through an alpha mask so that every
// shape can be clipped to the plot window.
type painter struct {
	img  *image.RGBA
	mask *image.Alpha
	z    *vector.Rasterizer
	clip image.Rectangle
}

func newPainter(w, h int) *painter {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &painter{
		img:  img,
		mask: image.NewAlpha(img.Bounds()),
		z:    vector.NewRasterizer(w, h),
		clip: img.Bounds(),
	}
}

func (p *painter) fill(pts []core.Point, c string) {
	if len(pts) < 3 || p.clip.Empty() {
		return
	}
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Src
	p.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, q := range pts[1:] {
		p.z.LineTo(float32(q.X), float32(q.Y))
	}
	p.z.ClosePath()
	p.z.Draw(p.mask, b, image.Opaque, image.Point{})
	draw.DrawMask(p.img, p.clip, image.NewUniform(style.RGBA(c)), image.Point{}, p.mask, p.clip.Min, draw.Over)
}

// line strokes a single straight piece as a quad.
func (p *painter) line(a, b core.Point, width float64, c string) {
	d := b.Sub(a)
	n := d.Len()
	if n == 0 {
		return
	}
	off := core.Pt(-d.Y/n, d.X/n).Scale(width / 2)
	p.fill([]core.Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}, c)
}

func (p *painter) segment(a, b core.Point, s core.Style) {
	w, c := strokeWidth(s), strokeColor(s)
	if !s.Dashed {
		p.line(a, b, w, c)
		return
	}
	for _, d := range dashes(a, b) {
		p.line(d[0], d[1], w, c)
	}
}

func (p *painter) polyline(pts []core.Point, s core.Style) {
	for i := 1; i < len(pts); i++ {
		p.segment(pts[i-1], pts[i], s)
	}
}

func (p *painter) arc(a core.Arc) {
	pts := arcPoints(a)
	if a.Style.Fill != "" {
		p.fill(append([]core.Point{a.Center}, pts...), a.Style.Fill)
	}
	p.polyline(pts, a.Style)
}

func (p *painter) marker(m core.Marker) {
	switch m.Kind {
	case core.Tick:
		a, b := tickEnds(m)
		p.segment(a, b, m.Style)
	case core.Arrowhead:
		p.fill(arrowPoints(m), markerFill(m))
	case core.OpenCircle, core.ClosedCircle:
		r := markerSize(m) / 2
		p.fill(circlePoints(m.Position, r), markerFill(m))
		ring := circlePoints(m.Position, r)
		ring = append(ring, ring[0])
		p.polyline(ring, core.Style{Stroke: strokeColor(m.Style), Width: strokeWidth(m.Style)})
	}
}

// text draws s centred on c.
func (p *painter) text(face font.Face, c core.Point, s, color string) {
	s = norm.NFC.String(s)
	m := face.Metrics()
	adv := font.MeasureString(face, s)
	baseline := fixed.I(int(math.Round(c.Y))) + (m.Ascent-m.Descent)/2
	dr := font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(style.RGBA(color)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(int(math.Round(c.X))) - adv/2, Y: baseline},
	}
	dr.DrawString(s)
}
