package render_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/render"
)

type squareParams struct {
	Side  float64 `json:"side"`
	Label string  `json:"label"`
}

// square draws a labelled square of the requested side.
type square struct{}

func (square) Normalize(raw diagram.RawParams) (squareParams, error) {
	p := squareParams{Side: 1}
	if err := diagram.Decode(raw, &p); err != nil {
		return p, err
	}
	if p.Side <= 0 {
		return p, diagram.Invalid("side", "must be positive, got %g", p.Side)
	}
	return p, nil
}

func (square) Build(p squareParams) (*core.Scene, error) {
	s := core.NewScene()
	corners := []core.Point{core.Pt(0, 0), core.Pt(p.Side, 0), core.Pt(p.Side, p.Side), core.Pt(0, p.Side)}
	for i := range corners {
		s.Add(core.Segment{From: corners[i], To: corners[(i+1)%4]})
	}
	if p.Label != "" {
		s.Add(core.Label{Position: core.Pt(p.Side/2, 0), Text: p.Label, Toward: core.Pt(0, -1)})
	}
	s.Caption = "square"
	return s, nil
}

func newEngine(t *testing.T, opts ...render.Option) *render.Engine {
	t.Helper()
	reg := render.NewRegistry()
	require.NoError(t, render.Register[squareParams](reg, "square", square{}))
	return render.NewEngine(reg, opts...)
}

func TestRegister(t *testing.T) {
	reg := render.NewRegistry()
	require.NoError(t, render.Register[squareParams](reg, "square", square{}))
	assert.Error(t, render.Register[squareParams](reg, "square", square{}), "duplicate name")
	assert.Error(t, render.Register[squareParams](reg, "", square{}), "empty name")
	assert.Error(t, render.Register[squareParams](reg, "nil", nil), "nil builder")
	assert.True(t, reg.Has("square"))
	assert.False(t, reg.Has("circle"))
	assert.Equal(t, []string{"square"}, reg.Names())
}

func TestRender(t *testing.T) {
	e := newEngine(t, render.WithSurface(200, 100), render.WithMargin(10))
	res, err := e.Render(diagram.ToolRequest{ToolName: "square", Parameters: diagram.RawParams{"side": 2.0, "label": "a"}})
	require.NoError(t, err)
	require.NotNil(t, res.Drawing)
	assert.Equal(t, "square", res.Caption)
	assert.Equal(t, 200.0, res.Drawing.Width)
	assert.Equal(t, 100.0, res.Drawing.Height)
	assert.Len(t, res.Drawing.Primitives, 5)

	for _, p := range res.Drawing.Primitives {
		for _, a := range core.SurfaceAnchors(p) {
			assert.GreaterOrEqual(t, a.X, 10.0-1e-9)
			assert.LessOrEqual(t, a.Y, 90.0+1e-9)
		}
	}
	labels := res.Drawing.Labels()
	require.Len(t, labels, 1)
	assert.Equal(t, 13.0, labels[0].Style.FontSize)
	assert.Greater(t, labels[0].TextPosition().Y, labels[0].Position.Y, "pushed below the base")
}

func TestRenderIsDeterministic(t *testing.T) {
	e := newEngine(t)
	req := diagram.ToolRequest{ToolName: "square", Parameters: diagram.RawParams{"side": 3.0, "label": "3 cm"}}
	first, err := e.Render(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*diagram.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Render(req)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

func TestRenderUnknownTool(t *testing.T) {
	res, err := newEngine(t).Render(diagram.ToolRequest{ToolName: "circle"})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagram.ErrUnknownTool))

	var unknown *diagram.UnknownToolError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "circle", unknown.ToolName)
}

func TestRenderValidationError(t *testing.T) {
	res, err := newEngine(t).Render(diagram.ToolRequest{ToolName: "square", Parameters: diagram.RawParams{"side": -1.0}})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, diagram.ErrValidation))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newEngine(t, render.WithLogger(logger))

	_, err := e.Render(diagram.ToolRequest{ToolName: "square"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=rendered")
	assert.Contains(t, buf.String(), "tool=square")
	assert.Contains(t, buf.String(), "primitives=4")

	buf.Reset()
	_, err = e.Render(diagram.ToolRequest{ToolName: "nope"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), `msg="render failed"`)
}

func TestOptions(t *testing.T) {
	e := newEngine(t, render.WithFontSize(20), render.WithLogger(nil), render.WithMeasurer(nil))
	o := e.Options()
	assert.Equal(t, 20.0, o.FontSize)
	assert.Equal(t, 400.0, o.Width)
	assert.NotNil(t, o.Logger)
	assert.NotNil(t, o.Measurer)
	assert.Equal(t, []string{"square"}, e.Registry().Names())
}

func TestScene(t *testing.T) {
	reg := render.NewRegistry()
	require.NoError(t, render.Register[squareParams](reg, "square", square{}))
	s, err := reg.Scene(diagram.ToolRequest{ToolName: "square", Parameters: diagram.RawParams{"side": 4.0}})
	require.NoError(t, err)
	b, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, core.Pt(4, 4), b.Max)
}
