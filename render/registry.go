package render

import (
	"fmt"
	"sort"

	"mathfig/core"
	"mathfig/diagram"
)

// tool is a builder with its parameter type erased.
type tool interface {
	build(raw diagram.RawParams) (*core.Scene, error)
}

type typedTool[P any] struct {
	b diagram.Builder[P]
}

func (t typedTool[P]) build(raw diagram.RawParams) (*core.Scene, error) {
	p, err := t.b.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return t.b.Build(p)
}

// Registry maps tool names to builders. It is populated once at startup
// and is safe for concurrent reads afterwards.
type Registry struct {
	tools map[string]tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]tool)}
}

// Register adds a builder under name.
func Register[P any](r *Registry, name string, b diagram.Builder[P]) error {
	if name == "" {
		return fmt.Errorf("register: empty tool name")
	}
	if b == nil {
		return fmt.Errorf("register %s: nil builder", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("register %s: tool already registered", name)
	}
	r.tools[name] = typedTool[P]{b: b}
	return nil
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

func (r *Registry) lookup(name string) (tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, &diagram.UnknownToolError{ToolName: name}
	}
	return t, nil
}

// Scene runs normalization and construction for a request without laying
// it out. It is useful for callers that map logical space themselves.
func (r *Registry) Scene(req diagram.ToolRequest) (*core.Scene, error) {
	t, err := r.lookup(req.ToolName)
	if err != nil {
		return nil, err
	}
	return t.build(req.Parameters)
}
