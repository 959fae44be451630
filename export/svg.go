package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"mathfig/core"
	"mathfig/style"
)

// SVGExporter writes drawings as standalone SVG documents.
type SVGExporter struct {
	// FontFamily is the CSS font stack used for labels.
	FontFamily string
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{FontFamily: "ui-monospace, Menlo, Consolas, monospace"}
}

// Export renders the drawing as SVG.
func (e *SVGExporter) Export(d *core.Drawing) ([]byte, error) {
	if err := checkDrawing(d); err != nil {
		return nil, err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`+"\n",
		num(d.Width), num(d.Height), num(d.Width), num(d.Height), escape(e.FontFamily))
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", style.Page)

	if d.Clip != nil {
		c := d.Clip
		fmt.Fprintf(&b, `<defs><clipPath id="plot"><rect x="%s" y="%s" width="%s" height="%s"/></clipPath></defs>`+"\n",
			num(c.Min.X), num(c.Min.Y), num(c.Width()), num(c.Height()))
		b.WriteString(`<g clip-path="url(#plot)">` + "\n")
	} else {
		b.WriteString("<g>\n")
	}
	for _, p := range d.Primitives {
		switch p := p.(type) {
		case core.Segment:
			svgSegment(&b, p)
		case core.Arc:
			svgArc(&b, p)
		case core.Marker:
			svgMarker(&b, p)
		}
	}
	b.WriteString("</g>\n")

	// Labels are never clipped.
	for _, l := range d.Labels() {
		svgLabel(&b, l)
	}
	if d.Title != "" {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="hanging" font-size="15" font-weight="bold" fill="%s">%s</text>`+"\n",
			num(d.Width/2), num(titleGap), style.Ink, escape(d.Title))
	}
	if d.Caption != "" {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="12" font-style="italic" fill="%s">%s</text>`+"\n",
			num(d.Width/2), num(d.Height-titleGap), style.Muted, escape(d.Caption))
	}
	b.WriteString("</svg>\n")
	return b.Bytes(), nil
}

// GetFileExtension returns the recommended file extension
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}

func strokeAttrs(s core.Style) string {
	attrs := fmt.Sprintf(`stroke="%s" stroke-width="%s"`, strokeColor(s), num(strokeWidth(s)))
	if s.Dashed {
		attrs += fmt.Sprintf(` stroke-dasharray="%s %s"`, num(dashOn), num(dashOff))
	}
	return attrs
}

func svgSegment(b *bytes.Buffer, s core.Segment) {
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" %s stroke-linecap="round"/>`+"\n",
		num(s.From.X), num(s.From.Y), num(s.To.X), num(s.To.Y), strokeAttrs(s.Style))
}

func svgArc(b *bytes.Buffer, a core.Arc) {
	sweep := a.Sweep()
	r := num(a.Radius)
	start := a.Center.Add(heading(a.Start).Scale(a.Radius))
	var path strings.Builder
	if a.Style.Fill != "" {
		fmt.Fprintf(&path, "M%s %s L%s %s", num(a.Center.X), num(a.Center.Y), num(start.X), num(start.Y))
	} else {
		fmt.Fprintf(&path, "M%s %s", num(start.X), num(start.Y))
	}
	// A full turn cannot be one arc command; split it at the half.
	if sweep >= 2*math.Pi-1e-9 {
		mid := a.Center.Add(heading(a.Start + math.Pi).Scale(a.Radius))
		fmt.Fprintf(&path, " A%s %s 0 0 0 %s %s A%s %s 0 0 0 %s %s", r, r, num(mid.X), num(mid.Y), r, r, num(start.X), num(start.Y))
	} else {
		end := a.Center.Add(heading(a.Start + sweep).Scale(a.Radius))
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(&path, " A%s %s 0 %d 0 %s %s", r, r, large, num(end.X), num(end.Y))
	}
	fill := "none"
	if a.Style.Fill != "" {
		path.WriteString(" Z")
		fill = a.Style.Fill
	}
	fmt.Fprintf(b, `<path d="%s" fill="%s" %s/>`+"\n", path.String(), fill, strokeAttrs(a.Style))
}

func svgMarker(b *bytes.Buffer, m core.Marker) {
	switch m.Kind {
	case core.Tick:
		p, q := tickEnds(m)
		svgSegment(b, core.Segment{From: p, To: q, Style: m.Style})
	case core.Arrowhead:
		pts := arrowPoints(m)
		fmt.Fprintf(b, `<polygon points="%s" fill="%s" stroke="%s" stroke-linejoin="round"/>`+"\n",
			pointList(pts), markerFill(m), strokeColor(m.Style))
	case core.OpenCircle, core.ClosedCircle:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(m.Position.X), num(m.Position.Y), num(markerSize(m)/2), markerFill(m),
			style.Or(m.Style.Stroke, markerFill(m)), num(strokeWidth(m.Style)))
	}
}

func svgLabel(b *bytes.Buffer, l core.Label) {
	c := l.TextPosition()
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-size="%s" fill="%s">%s</text>`+"\n",
		num(c.X), num(c.Y), num(labelSize(l)), textColor(l.Style), escape(norm.NFC.String(l.Text)))
}

func pointList(pts []core.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
