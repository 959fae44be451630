package export

import (
	"math"
	"strings"

	"mathfig/canvas"
	"mathfig/core"
)

// Surface units covered by one character cell.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// ASCIIExporter exports drawings to Unicode line art
type ASCIIExporter struct {
	// Color adds ANSI colour sequences to the output.
	Color bool
	// Plain swaps the line glyphs for 7-bit characters.
	Plain bool
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{}
}

// Export renders the drawing as text, with the title above and the caption
// below the picture.
func (e *ASCIIExporter) Export(d *core.Drawing) ([]byte, error) {
	c, err := e.Rasterize(d)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	cols, _ := c.Size()
	if d.Title != "" {
		b.WriteString(centre(d.Title, cols))
		b.WriteString("\n\n")
	}
	if e.Color {
		b.WriteString(c.ColoredString())
	} else {
		b.WriteString(c.String())
	}
	b.WriteByte('\n')
	if d.Caption != "" {
		b.WriteByte('\n')
		b.WriteString(centre(d.Caption, cols))
		b.WriteByte('\n')
	}
	if e.Plain {
		return []byte(canvas.ToASCII(b.String())), nil
	}
	return []byte(b.String()), nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Art"
}

// Rasterize draws the primitives onto a character canvas sized to the
// drawing surface.
func (e *ASCIIExporter) Rasterize(d *core.Drawing) (*canvas.MatrixCanvas, error) {
	if err := checkDrawing(d); err != nil {
		return nil, err
	}
	cols := int(math.Ceil(d.Width / CellWidth))
	rows := int(math.Ceil(d.Height / CellHeight))
	c, err := canvas.NewMatrixCanvas(cols, rows)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Primitives {
		switch p := p.(type) {
		case core.Segment:
			cellLine(c, p.From, p.To, strokeColor(p.Style))
		case core.Arc:
			pts := arcPoints(p)
			for i := 1; i < len(pts); i++ {
				cellLine(c, pts[i-1], pts[i], strokeColor(p.Style))
			}
		case core.Marker:
			cellMarker(c, p)
		}
	}
	// Text goes last so that lines never hide it.
	for _, l := range d.Labels() {
		pos := l.TextPosition()
		x, y := cell(pos)
		c.DrawText(x-canvas.StringWidth(l.Text)/2, y, l.Text, textColor(l.Style))
	}
	return c, nil
}

func cell(p core.Point) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func cellLine(c *canvas.MatrixCanvas, a, b core.Point, color string) {
	x1, y1 := cell(a)
	x2, y2 := cell(b)
	// Pick the glyph from the surface slope; cells are twice as tall as wide.
	d := b.Sub(a)
	glyph := canvas.LineGlyph(int(math.Round(d.X)), int(math.Round(d.Y)))
	if x1 == x2 && y1 == y2 && d.Len() < CellWidth/2 {
		return
	}
	c.DrawLine(x1, y1, x2, y2, glyph, color)
}

func cellMarker(c *canvas.MatrixCanvas, m core.Marker) {
	x, y := cell(m.Position)
	var r rune
	switch m.Kind {
	case core.Tick:
		u := heading(m.Angle)
		r = canvas.LineGlyph(int(math.Round(-u.Y*100)), int(math.Round(u.X*100)))
	case core.Arrowhead:
		u := heading(m.Angle)
		switch {
		case math.Abs(u.X) >= math.Abs(u.Y) && u.X > 0:
			r = '>'
		case math.Abs(u.X) >= math.Abs(u.Y):
			r = '<'
		case u.Y > 0:
			r = 'v'
		default:
			r = '^'
		}
	case core.OpenCircle:
		r = 'o'
	case core.ClosedCircle:
		r = '●'
	default:
		return
	}
	c.SetColored(x, y, r, strokeColor(m.Style))
}

func centre(s string, width int) string {
	pad := (width - canvas.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
