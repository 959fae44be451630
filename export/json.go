package export

import (
	"encoding/json"
	"fmt"

	"mathfig/core"
)

// JSONExporter exports drawings to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonDrawing struct {
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Title      string           `json:"title,omitempty"`
	Caption    string           `json:"caption,omitempty"`
	Clip       *core.Bounds     `json:"clip,omitempty"`
	Primitives []map[string]any `json:"primitives"`
}

// Export converts a drawing to JSON. Each primitive carries its variant in
// a "kind" field.
func (e *JSONExporter) Export(d *core.Drawing) ([]byte, error) {
	if err := checkDrawing(d); err != nil {
		return nil, err
	}
	out := jsonDrawing{
		Width:      d.Width,
		Height:     d.Height,
		Title:      d.Title,
		Caption:    d.Caption,
		Clip:       d.Clip,
		Primitives: make([]map[string]any, 0, len(d.Primitives)),
	}
	for i, p := range d.Primitives {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		fields["kind"] = p.Type()
		if m, ok := p.(core.Marker); ok {
			fields["marker"] = m.Kind.String()
		}
		out.Primitives = append(out.Primitives, fields)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
