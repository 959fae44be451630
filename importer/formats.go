package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mathfig/diagram"
)

// JSONImporter reads requests from JSON documents.
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport reports whether content looks like a JSON object or array.
func (i *JSONImporter) CanImport(content string) bool {
	t := strings.TrimSpace(content)
	return (strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")) && json.Valid([]byte(t))
}

// Import decodes the requests in content.
func (i *JSONImporter) Import(content string) ([]diagram.ToolRequest, error) {
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return requests(doc)
}

// GetFormatName returns the format name
func (i *JSONImporter) GetFormatName() string {
	return "JSON"
}

// GetFileExtensions returns common file extensions
func (i *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}

// YAMLImporter reads requests from YAML documents, the format lesson authors
// write by hand.
type YAMLImporter struct{}

// NewYAMLImporter creates a new YAML importer
func NewYAMLImporter() *YAMLImporter {
	return &YAMLImporter{}
}

// CanImport reports whether content is YAML naming a tool.
func (i *YAMLImporter) CanImport(content string) bool {
	if !strings.Contains(content, "toolName") {
		return false
	}
	var doc any
	return yaml.Unmarshal([]byte(content), &doc) == nil
}

// Import decodes the requests in content.
func (i *YAMLImporter) Import(content string) ([]diagram.ToolRequest, error) {
	var doc any
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return requests(doc)
}

// GetFormatName returns the format name
func (i *YAMLImporter) GetFormatName() string {
	return "YAML"
}

// GetFileExtensions returns common file extensions
func (i *YAMLImporter) GetFileExtensions() []string {
	return []string{".yaml", ".yml"}
}
