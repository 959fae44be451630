// Package importer decodes tool requests from JSON and YAML documents. A
// document holds either one request or a list of them.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"mathfig/diagram"
)

// Importer interface defines methods for reading requests from a document format
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import decodes every request in the content
	Import(content string) ([]diagram.ToolRequest, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewYAMLImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("unable to detect format")
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) ([]diagram.ToolRequest, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string) ([]diagram.ToolRequest, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}

	return nil, fmt.Errorf("unknown format: %s", format)
}

// ImportFile picks the importer by file extension, falling back to
// detection for unknown extensions.
func (r *ImporterRegistry) ImportFile(path, content string) ([]diagram.ToolRequest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				return imp.Import(content)
			}
		}
	}
	return r.Import(content)
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}

// requests turns a decoded document into tool requests. doc is either one
// request object or a list of them.
func requests(doc any) ([]diagram.ToolRequest, error) {
	switch doc := plain(doc).(type) {
	case map[string]any:
		req, err := request(doc)
		if err != nil {
			return nil, err
		}
		return []diagram.ToolRequest{req}, nil
	case []any:
		if len(doc) == 0 {
			return nil, fmt.Errorf("document has no requests")
		}
		out := make([]diagram.ToolRequest, 0, len(doc))
		for i, item := range doc {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("request %d: expected an object", i)
			}
			req, err := request(m)
			if err != nil {
				return nil, fmt.Errorf("request %d: %w", i, err)
			}
			out = append(out, req)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("document is empty")
	default:
		return nil, fmt.Errorf("expected a request object or a list of requests")
	}
}

func request(m map[string]any) (diagram.ToolRequest, error) {
	name, _ := m["toolName"].(string)
	if strings.TrimSpace(name) == "" {
		return diagram.ToolRequest{}, fmt.Errorf("missing toolName")
	}
	for k := range m {
		if k != "toolName" && k != "parameters" {
			return diagram.ToolRequest{}, fmt.Errorf("unknown request field %q", k)
		}
	}
	req := diagram.ToolRequest{ToolName: name}
	switch p := m["parameters"].(type) {
	case nil:
	case map[string]any:
		req.Parameters = diagram.RawParams(p)
	default:
		return diagram.ToolRequest{}, fmt.Errorf("parameters must be an object")
	}
	return req, nil
}

// plain converts YAML's map[any]any nodes into map[string]any so that the
// result matches what encoding/json produces.
func plain(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, x := range v {
			v[k] = plain(x)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, x := range v {
			out[fmt.Sprint(k)] = plain(x)
		}
		return out
	case []any:
		for i, x := range v {
			v[i] = plain(x)
		}
		return v
	default:
		return v
	}
}
