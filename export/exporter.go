// Package export writes rendered drawings to files: vector SVG, raster PNG,
// text-cell ASCII and a JSON dump of the primitives.
package export

import (
	"fmt"
	"strings"

	"mathfig/core"
)

// Format represents an export format
type Format string

const (
	// FormatSVG exports scalable vector graphics (the default)
	FormatSVG Format = "svg"
	// FormatPNG exports an anti-aliased raster image
	FormatPNG Format = "png"
	// FormatASCII exports Unicode line art for terminals and plain text
	FormatASCII Format = "ascii"
	// FormatJSON exports the drawing primitives as JSON
	FormatJSON Format = "json"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export encodes a laid-out drawing in the target format
	Export(d *core.Drawing) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatSVG, "":
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg", "":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatSVG,
		FormatPNG,
		FormatASCII,
		FormatJSON,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatSVG:   "Scalable vector graphics (default)",
		FormatPNG:   "PNG raster image",
		FormatASCII: "Unicode line art",
		FormatJSON:  "Laid-out primitives as JSON",
	}
}

func checkDrawing(d *core.Drawing) error {
	if d == nil {
		return fmt.Errorf("drawing is nil")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("drawing has no surface: %gx%g", d.Width, d.Height)
	}
	return nil
}
