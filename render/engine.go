// Package render dispatches tool requests to their builders and runs the
// rendering pipeline: normalize, build, fit to the surface, place labels.
package render

import (
	"log/slog"

	"mathfig/diagram"
	"mathfig/layout"
)

// Engine renders tool requests. It holds no per-call state, so one engine
// may serve concurrent callers once its registry is populated.
type Engine struct {
	reg  *Registry
	opts Options
}

// NewEngine creates an engine over reg.
func NewEngine(reg *Registry, opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{reg: reg, opts: o}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Registry returns the tool registry the engine dispatches to.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// Render turns a request into a drawing. On error nothing is returned.
// Results served from the cache are shared and must not be modified.
func (e *Engine) Render(req diagram.ToolRequest) (*diagram.Result, error) {
	if e.opts.Cache == nil {
		return e.render(req)
	}
	if !e.reg.Has(req.ToolName) {
		return nil, &diagram.UnknownToolError{ToolName: req.ToolName}
	}
	key, err := CacheKey(req, e.opts)
	if err != nil {
		return nil, diagram.Invalid("", "parameters are not a plain data object: %v", err)
	}
	if res, ok := e.opts.Cache.Get(key); ok {
		e.opts.Logger.Debug("cache hit", slog.String("tool", req.ToolName))
		return res, nil
	}
	res, err := e.render(req)
	if err != nil {
		return nil, err
	}
	e.opts.Cache.Put(key, res)
	return res, nil
}

func (e *Engine) render(req diagram.ToolRequest) (*diagram.Result, error) {
	scene, err := e.reg.Scene(req)
	if err != nil {
		e.opts.Logger.Debug("render failed", slog.String("tool", req.ToolName), slog.Any("error", err))
		return nil, err
	}
	d, err := layout.Project(scene, e.opts.viewport())
	if err != nil {
		e.opts.Logger.Debug("layout failed", slog.String("tool", req.ToolName), slog.Any("error", err))
		return nil, err
	}
	layout.PlaceLabels(d, e.opts.Measurer)

	e.opts.Logger.Debug("rendered",
		slog.String("tool", req.ToolName),
		slog.Int("primitives", len(d.Primitives)),
		slog.Int("labels", len(d.LabelIndices())),
	)
	return &diagram.Result{Drawing: d, Caption: scene.Caption}, nil
}
