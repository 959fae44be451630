package builders

import (
	"mathfig/render"
)

// Tool names outside the polygon family.
const (
	SemicircleTool    = "semicircle"
	FunctionGraphTool = "functionGraph"
	NumberLineTool    = "numberLine"
)

// Register adds the full tool catalogue to r.
func Register(r *render.Registry) error {
	for _, t := range PolygonTools {
		if err := render.Register[PolygonParams](r, t.Name, PolygonBuilder{Tool: t}); err != nil {
			return err
		}
	}
	if err := render.Register[SemicircleParams](r, SemicircleTool, SemicircleBuilder{}); err != nil {
		return err
	}
	if err := render.Register[GraphParams](r, FunctionGraphTool, GraphBuilder{}); err != nil {
		return err
	}
	return render.Register[NumberLineParams](r, NumberLineTool, NumberLineBuilder{})
}

// NewEngine returns an engine with every tool registered.
func NewEngine(opts ...render.Option) *render.Engine {
	r := render.NewRegistry()
	if err := Register(r); err != nil {
		// The catalogue is static; a failure here is a programming error.
		panic(err)
	}
	return render.NewEngine(r, opts...)
}
