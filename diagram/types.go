// Package diagram contains the request, parameter and error types shared by
// the mathfig tool builders and the render engine.
package diagram

import (
	"sort"

	"mathfig/core"
)

// RawParams is a structurally typed parameter object as decoded from JSON or
// YAML. Builders turn it into their own typed parameter struct.
type RawParams map[string]any

// ToolRequest is the input to the render engine.
type ToolRequest struct {
	ToolName   string    `json:"toolName" yaml:"toolName"`
	Parameters RawParams `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Keys returns the parameter names in sorted order.
func (p RawParams) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the parameters. Nested values are shared.
func (p RawParams) Clone() RawParams {
	if p == nil {
		return nil
	}
	out := make(RawParams, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Result is what the engine hands back for one request.
type Result struct {
	Drawing *core.Drawing `json:"drawing"`
	Caption string        `json:"caption,omitempty"`
}
