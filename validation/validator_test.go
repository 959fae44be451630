package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/builders"
	"mathfig/core"
	"mathfig/diagram"
)

func kinds(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Kind)
	}
	return out
}

func TestDrawingValidator(t *testing.T) {
	label := func(x, y float64, text string) core.Label {
		return core.Label{Position: core.Pt(x, y), Text: text, Style: core.Style{FontSize: 13}}
	}
	tests := []struct {
		name       string
		primitives []core.Primitive
		want       []string
	}{
		{
			name: "clean drawing",
			primitives: []core.Primitive{
				core.Segment{From: core.Pt(10, 10), To: core.Pt(100, 100)},
				label(50, 20, "A"),
				label(150, 20, "B"),
			},
			want: nil,
		},
		{
			name: "nan segment",
			primitives: []core.Primitive{
				core.Segment{From: core.Pt(math.NaN(), 10), To: core.Pt(100, 100)},
			},
			want: []string{KindNonFinite},
		},
		{
			name: "infinite marker size",
			primitives: []core.Primitive{
				core.Marker{Position: core.Pt(10, 10), Size: math.Inf(1)},
			},
			want: []string{KindNonFinite},
		},
		{
			name: "segment past the edge",
			primitives: []core.Primitive{
				core.Segment{From: core.Pt(10, 10), To: core.Pt(250, 100)},
			},
			want: []string{KindOffSurface},
		},
		{
			name: "label past the edge",
			primitives: []core.Primitive{
				label(198, 50, "long label"),
			},
			want: []string{KindOffSurface},
		},
		{
			name: "overlapping labels",
			primitives: []core.Primitive{
				label(50, 50, "A"),
				label(52, 52, "B"),
			},
			want: []string{KindLabelOverlap},
		},
		{
			name: "empty label",
			primitives: []core.Primitive{
				label(50, 50, "  "),
			},
			want: []string{KindEmptyLabel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &core.Drawing{Width: 200, Height: 150, Primitives: tt.primitives}
			got := NewDrawingValidator(nil).Validate(d)
			assert.Equal(t, tt.want, kinds(got), "issues: %v", got)
		})
	}
}

func TestDrawingValidatorSeverity(t *testing.T) {
	d := &core.Drawing{Width: 200, Height: 150, Primitives: []core.Primitive{
		core.Label{Position: core.Pt(50, 50), Text: "A"},
		core.Label{Position: core.Pt(50, 50), Text: "B"},
	}}
	v := NewDrawingValidator(nil)
	issues := v.Validate(d)
	require.Len(t, issues, 1)
	assert.Equal(t, Warning, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Index)
	assert.False(t, HasErrors(issues))
	assert.Equal(t, "warning: primitive 1: label overlaps primitive 0", issues[0].String())

	v.SetStrictMode(true)
	assert.True(t, HasErrors(v.Validate(d)))
}

func TestDrawingValidatorClipAllowsCroppedInk(t *testing.T) {
	d := &core.Drawing{
		Width: 200, Height: 150,
		Clip:       &core.Bounds{Min: core.Pt(20, 20), Max: core.Pt(180, 130)},
		Primitives: []core.Primitive{core.Segment{From: core.Pt(10, 10), To: core.Pt(400, 100)}},
	}
	assert.Empty(t, NewDrawingValidator(nil).Validate(d))
}

func TestDrawingValidatorSurface(t *testing.T) {
	issues := NewDrawingValidator(nil).Validate(&core.Drawing{})
	require.Len(t, issues, 1)
	assert.Equal(t, -1, issues[0].Index)
	assert.True(t, HasErrors(issues))

	assert.True(t, HasErrors(NewDrawingValidator(nil).Validate(nil)))
}

func TestRenderedToolsHaveNoErrors(t *testing.T) {
	engine := builders.NewEngine()
	requests := []diagram.ToolRequest{
		{ToolName: "rhombusAngles", Parameters: diagram.RawParams{"angles": []any{"40°", nil, nil, nil}, "vertexLabels": []any{"A", "B", "C", "D"}}},
		{ToolName: "numberLine", Parameters: diagram.RawParams{"min": 0, "max": 10, "intervals": []any{map[string]any{"start": 4, "startInclusive": true}}}},
		{ToolName: "functionGraph", Parameters: diagram.RawParams{"expression": "2*x+1"}},
		{ToolName: "semicircle", Parameters: diagram.RawParams{"radius": "3 cm"}},
		{ToolName: "semicircle", Parameters: diagram.RawParams{"radius": 5, "orientation": "top"}},
		{ToolName: "semicircle", Parameters: diagram.RawParams{"radius": 5, "orientation": "bottom"}},
	}
	for _, req := range requests {
		res, err := engine.Render(req)
		require.NoError(t, err, req.ToolName)
		issues := NewDrawingValidator(nil).Validate(res.Drawing)
		assert.False(t, HasErrors(issues), "%s: %v", req.ToolName, issues)
	}
}
