package builders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/core"
	"mathfig/diagram"
)

func buildNumberLine(t *testing.T, raw diagram.RawParams) *core.Scene {
	t.Helper()
	p, err := NumberLineBuilder{}.Normalize(raw)
	require.NoError(t, err)
	s, err := NumberLineBuilder{}.Build(p)
	require.NoError(t, err)
	return s
}

// circles returns the open and closed circle markers keyed by position.
func circles(s *core.Scene) map[float64]core.MarkerKind {
	out := map[float64]core.MarkerKind{}
	for _, p := range s.Primitives {
		if m, ok := p.(core.Marker); ok && (m.Kind == core.OpenCircle || m.Kind == core.ClosedCircle) {
			out[m.Position.X] = m.Kind
		}
	}
	return out
}

func TestNumberLineScenarioRayWithPoint(t *testing.T) {
	s := buildNumberLine(t, diagram.RawParams{
		"min": 0, "max": 10,
		"intervals": []any{map[string]any{"start": 4, "startInclusive": true}},
		"points":    []any{map[string]any{"value": 4, "style": "closed"}},
	})

	runs := withRole[core.Segment](s, RoleInterval)
	require.Len(t, runs, 1)
	assert.Equal(t, core.Pt(4, 0), runs[0].From)
	assert.Equal(t, core.Pt(10, 0), runs[0].To)

	var closed int
	for _, p := range s.Primitives {
		if m, ok := p.(core.Marker); ok && m.Kind == core.ClosedCircle {
			closed++
			assert.Equal(t, core.Pt(4, 0), m.Position)
		}
	}
	assert.Equal(t, 1, closed)

	heads := withRole[core.Marker](s, RoleInterval)
	require.Len(t, heads, 1, "the unbounded end runs off the right edge")
	assert.Equal(t, core.Arrowhead, heads[0].Kind)
	assert.Equal(t, core.Pt(10, 0), heads[0].Position)
}

func TestNumberLineInclusiveFlagsMatchMarkers(t *testing.T) {
	tests := []struct {
		startInc, endInc bool
		start, end       core.MarkerKind
	}{
		{false, false, core.OpenCircle, core.OpenCircle},
		{true, false, core.ClosedCircle, core.OpenCircle},
		{false, true, core.OpenCircle, core.ClosedCircle},
		{true, true, core.ClosedCircle, core.ClosedCircle},
	}
	for _, tt := range tests {
		s := buildNumberLine(t, diagram.RawParams{
			"intervals": []any{map[string]any{
				"start": -2, "end": 3,
				"startInclusive": tt.startInc, "endInclusive": tt.endInc,
			}},
		})
		got := circles(s)
		assert.Len(t, got, 2)
		assert.Equal(t, tt.start, got[-2], "start inclusive=%v", tt.startInc)
		assert.Equal(t, tt.end, got[3], "end inclusive=%v", tt.endInc)
	}
}

func TestNumberLineInclusiveDefaultsToOpen(t *testing.T) {
	s := buildNumberLine(t, diagram.RawParams{
		"intervals": []any{map[string]any{"start": 1, "end": 2}},
	})
	assert.Equal(t, map[float64]core.MarkerKind{1: core.OpenCircle, 2: core.OpenCircle}, circles(s))
}

func TestNumberLineCoincidentBoundariesMerge(t *testing.T) {
	s := buildNumberLine(t, diagram.RawParams{
		"intervals": []any{
			map[string]any{"end": 1, "endInclusive": false},
			map[string]any{"start": 1, "end": 3, "startInclusive": true},
		},
	})
	got := circles(s)
	assert.Equal(t, core.ClosedCircle, got[1], "the union contains 1")
	assert.Equal(t, core.OpenCircle, got[3])
	assert.Len(t, got, 2)

	// [1, 3) ∪ [3, 5]: the shared boundary belongs to the union.
	s = buildNumberLine(t, diagram.RawParams{
		"intervals": []any{
			map[string]any{"start": 1, "end": 3, "startInclusive": true, "endInclusive": false},
			map[string]any{"start": 3, "end": 5, "startInclusive": true, "endInclusive": true},
		},
	})
	assert.Equal(t, map[float64]core.MarkerKind{1: core.ClosedCircle, 3: core.ClosedCircle, 5: core.ClosedCircle}, circles(s))
}

func TestNumberLineClampsToView(t *testing.T) {
	s := buildNumberLine(t, diagram.RawParams{
		"min": -3, "max": 3,
		"intervals": []any{
			map[string]any{"start": -10, "end": 10, "startInclusive": true, "endInclusive": true},
			map[string]any{"start": 20, "end": 30},
		},
	})
	runs := withRole[core.Segment](s, RoleInterval)
	require.Len(t, runs, 1, "an interval entirely out of view draws nothing")
	assert.Equal(t, core.Pt(-3, 0), runs[0].From)
	assert.Equal(t, core.Pt(3, 0), runs[0].To)
	assert.Empty(t, circles(s), "boundaries out of view get arrows, not circles")
	assert.Len(t, withRole[core.Marker](s, RoleInterval), 2)
}

func TestNumberLineTicks(t *testing.T) {
	s := buildNumberLine(t, diagram.RawParams{"min": 0, "max": 2, "step": 0.5, "highlightIntegers": true})
	var sizes []float64
	for _, p := range s.Primitives {
		if m, ok := p.(core.Marker); ok && m.Kind == core.Tick {
			sizes = append(sizes, m.Size)
		}
	}
	require.Len(t, sizes, 5)
	assert.Greater(t, sizes[0], sizes[1], "integers get longer ticks")
	assert.Equal(t, sizes[0], sizes[2])

	var texts []string
	for _, l := range withRole[core.Label](s, RoleTick) {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"0", "0.5", "1", "1.5", "2"}, texts)

	s = buildNumberLine(t, diagram.RawParams{"showTickMarks": false, "showTickLabels": false, "showArrows": false})
	assert.Len(t, s.Primitives, 1, "only the base line remains")
}

func TestNumberLinePointsAndLabels(t *testing.T) {
	s := buildNumberLine(t, diagram.RawParams{
		"title": "x > -1",
		"intervals": []any{map[string]any{"start": -1, "label": "solution", "color": "green"}},
		"points": []any{
			map[string]any{"value": -1, "style": "open", "label": "a"},
			map[string]any{"value": 2, "style": "none", "label": "b"},
			map[string]any{"value": 3, "label": "c"},
		},
	})
	assert.Equal(t, "x > -1", s.Title)
	got := circles(s)
	assert.Equal(t, core.OpenCircle, got[-1])
	assert.Equal(t, core.ClosedCircle, got[3])
	_, hasNone := got[2]
	assert.False(t, hasNone, "style none draws no marker")

	labels := map[string]bool{}
	for _, p := range s.Primitives {
		if l, ok := p.(core.Label); ok && l.Style.Role != RoleTick {
			labels[l.Text] = true
			assert.Equal(t, core.Pt(0, 1), l.Toward)
		}
	}
	assert.Equal(t, map[string]bool{"solution": true, "a": true, "b": true, "c": true}, labels)

	runs := withRole[core.Segment](s, RoleInterval)
	require.Len(t, runs, 1)
	assert.Equal(t, "#22c55e", runs[0].Style.Stroke)
}

func TestNumberLinePaletteInOrder(t *testing.T) {
	p, err := NumberLineBuilder{}.Normalize(diagram.RawParams{
		"intervals": []any{
			map[string]any{"start": -4, "end": -2},
			map[string]any{"start": 0, "end": 1},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, p.Intervals[0].Color, p.Intervals[1].Color)
}

func TestNumberLineValidation(t *testing.T) {
	tests := []struct {
		raw   diagram.RawParams
		field string
	}{
		{diagram.RawParams{"min": 5, "max": 5}, "max"},
		{diagram.RawParams{"step": 0}, "step"},
		{diagram.RawParams{"min": 0, "max": 1000, "step": 1}, "step"},
		{diagram.RawParams{"intervals": []any{map[string]any{"start": 3, "end": 1}}}, "intervals[0].end"},
		{diagram.RawParams{"intervals": []any{map[string]any{"startInclusive": true}}}, "intervals[0].startInclusive"},
		{diagram.RawParams{"points": []any{map[string]any{"value": 9}}}, "points[0].value"},
		{diagram.RawParams{"points": []any{map[string]any{"style": "open"}}}, "points[0].value"},
		{diagram.RawParams{"points": []any{map[string]any{"value": 1, "style": "hollow"}}}, "points[0].style"},
		{diagram.RawParams{"intervals": []any{map[string]any{"start": 0, "width": 2}}}, "width"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := NumberLineBuilder{}.Normalize(tt.raw)
			var ve *diagram.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	t.Run("conflicting point", func(t *testing.T) {
		p, err := NumberLineBuilder{}.Normalize(diagram.RawParams{
			"intervals": []any{map[string]any{"start": 1, "end": 2, "startInclusive": true}},
			"points":    []any{map[string]any{"value": 1, "style": "open"}},
		})
		require.NoError(t, err)
		_, err = NumberLineBuilder{}.Build(p)
		var ve *diagram.ValidationError
		require.True(t, errors.As(err, &ve), "got %v", err)
		assert.Equal(t, "points[0].style", ve.Field)
	})
}
