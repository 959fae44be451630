package diagram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAngleLabel(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want AngleLabel
	}{
		{"null", nil, Unknown{}},
		{"empty string", "  ", Unknown{}},
		{"degree literal", "40°", Literal{Value: "40°"}},
		{"number", 135.0, Literal{Value: "135°"}},
		{"integer", 90, Literal{Value: "90°"}},
		{"symbol", "x", Placeholder{Symbol: "x"}},
		{"question", "?", Placeholder{Symbol: "?"}},
		{"expression", "2x + 10°", Literal{Value: "2x + 10°"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAngleLabel("angles[0]", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAngleLabelsLength(t *testing.T) {
	labels, err := ParseAngleLabels("angles", nil)
	require.NoError(t, err)
	for i, a := range labels {
		assert.True(t, IsUnknown(a), "slot %d should be unknown", i)
	}

	_, err = ParseAngleLabels("angles", []any{"40°", nil, nil})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "angles", ve.Field)

	_, err = ParseAngleLabels("angles", []any{"40°", nil, true, nil})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "angles[2]", ve.Field)
}

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		in   any
		want Measure
	}{
		{"10 cm", Measure{Value: 10, Unit: "cm", Text: "10 cm", Known: true}},
		{"7.5m", Measure{Value: 7.5, Unit: "m", Text: "7.5m", Known: true}},
		{12.0, Measure{Value: 12, Text: "12", Known: true}},
		{"x", Measure{Text: "x"}},
		{"h cm", Measure{Text: "h cm"}},
		{nil, Measure{}},
	}
	for _, tt := range tests {
		got, err := ParseMeasure("base", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}

	_, err := ParseMeasure("base", true)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSameUnit(t *testing.T) {
	cm := Measure{Value: 1, Unit: "cm", Known: true}
	m := Measure{Value: 1, Unit: "m", Known: true}
	bare := Measure{Value: 1, Known: true}
	assert.True(t, SameUnit(cm, cm))
	assert.True(t, SameUnit(cm, bare))
	assert.False(t, SameUnit(cm, m))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "-2.5", FormatNumber(-2.5))
	assert.Equal(t, "0.3", FormatNumber(0.1+0.2))
	assert.Equal(t, "0", FormatNumber(-0.0000000000001))
}

type wire struct {
	Name  *string  `json:"name"`
	Count *float64 `json:"count"`
	Tags  []string `json:"tags"`
}

func TestDecode(t *testing.T) {
	var w wire
	require.NoError(t, Decode(RawParams{"name": "a", "count": 3, "tags": []any{"x"}}, &w))
	assert.Equal(t, "a", *w.Name)
	assert.Equal(t, 3.0, *w.Count)
	assert.Equal(t, []string{"x"}, w.Tags)

	var empty wire
	require.NoError(t, Decode(nil, &empty))
	assert.Nil(t, empty.Name)
}

func TestDecodeErrors(t *testing.T) {
	var w wire
	err := Decode(RawParams{"colour": "red"}, &w)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "colour", ve.Field)
	assert.Equal(t, "unknown parameter", ve.Reason)

	err = Decode(RawParams{"count": "three"}, &w)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "count", ve.Field)
	assert.Contains(t, ve.Reason, "expected number")
}

func TestErrorSentinels(t *testing.T) {
	var err error = &UnknownToolError{ToolName: "doesNotExist"}
	assert.True(t, errors.Is(err, ErrUnknownTool))
	assert.Contains(t, err.Error(), "doesNotExist")

	err = Invalid("orientation", "unknown value %q", "sideways")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, `invalid parameter orientation: unknown value "sideways"`, err.Error())

	err = Degenerate("height %g exceeds side %g", 5.0, 4.0)
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestRawParamsKeys(t *testing.T) {
	p := RawParams{"b": 1, "a": 2}
	assert.Equal(t, []string{"a", "b"}, p.Keys())
	c := p.Clone()
	c["c"] = 3
	assert.Len(t, p, 2)
}
