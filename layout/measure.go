package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/unicode/norm"
)

// FontMeasurer measures text with a fixed bitmap face scaled to the
// requested size. It is the measurer every exporter agrees with.
type FontMeasurer struct {
	Face font.Face
	// Size is the pixel height Face is drawn at.
	Size float64
}

// DefaultMeasurer measures with basicfont.Face7x13.
func DefaultMeasurer() FontMeasurer {
	return FontMeasurer{Face: basicfont.Face7x13, Size: 13}
}

// Measure implements diagram.Measurer.
func (m FontMeasurer) Measure(text string, fontSize float64) (float64, float64) {
	if m.Face == nil {
		m = DefaultMeasurer()
	}
	if fontSize <= 0 {
		fontSize = m.Size
	}
	k := fontSize / m.Size
	adv := font.MeasureString(m.Face, norm.NFC.String(text))
	return float64(adv) / 64 * k, fontSize
}
