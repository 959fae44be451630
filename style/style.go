// Package style holds the engine's default colours and colour parsing.
package style

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colours used when a request does not supply one.
const (
	Ink       = "#1f2937" // outlines and text
	Muted     = "#6b7280" // axes, construction lines
	GridLine  = "#e5e7eb"
	Highlight = "#f59e0b"
	Curve     = "#3b82f6"
	Page      = "#ffffff"
)

// named maps the colour words found in lesson content to hex values.
var named = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ef4444",
	"orange": "#f97316",
	"amber":  "#f59e0b",
	"yellow": "#eab308",
	"green":  "#22c55e",
	"teal":   "#14b8a6",
	"cyan":   "#06b6d4",
	"blue":   "#3b82f6",
	"indigo": "#6366f1",
	"purple": "#8b5cf6",
	"pink":   "#ec4899",
	"gray":   "#6b7280",
	"grey":   "#6b7280",
	"brown":  "#92400e",
}

// palette is the fixed order used for uncoloured intervals and curves.
var palette = []string{"#3b82f6", "#10b981", "#ef4444", "#8b5cf6", "#f97316", "#06b6d4"}

// ParseColor accepts #rgb, #rrggbb or a colour name.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("unrecognised colour %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("unrecognised colour %q", s)
	}
	return c, nil
}

// Normalize returns the canonical #rrggbb form of s.
func Normalize(s string) (string, error) {
	c, err := ParseColor(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// Or returns s if it is set, otherwise fallback.
func Or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Palette returns the i-th default series colour. Indices past the fixed
// list continue around the HCL hue wheel so that neighbours stay distinct.
func Palette(i int) string {
	if i < 0 {
		i = -i
	}
	if i < len(palette) {
		return palette[i]
	}
	hue := float64((i-len(palette))*137%360) + 15
	return colorful.Hcl(hue, 0.55, 0.6).Clamped().Hex()
}

// Tint mixes c towards white by amount in [0,1], for wedge and band fills.
func Tint(c string, amount float64) string {
	base, err := ParseColor(c)
	if err != nil {
		return c
	}
	white, _ := colorful.Hex(Page)
	return base.BlendLab(white, amount).Clamped().Hex()
}

// RGBA converts a colour string for raster output, falling back to Ink.
func RGBA(c string) color.RGBA {
	parsed, err := ParseColor(c)
	if err != nil {
		parsed, _ = ParseColor(Ink)
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
