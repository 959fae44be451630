package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"2*x+1", 3, 7},
		{"2x+1", 3, 7},
		{"x^2 - 4", -3, 5},
		{"-x^2", 3, -9},
		{"(-x)^2", 3, 9},
		{"2^3^2", 0, 512},
		{"2^-1", 0, 0.5},
		{"3(x+1)", 1, 6},
		{"(x+1)(x-1)", 3, 8},
		{"x sin(x)", math.Pi / 2, math.Pi / 2},
		{"2pi", 0, 2 * math.Pi},
		{"π", 0, math.Pi},
		{"e^x", 1, math.E},
		{"exp(x)", 0, 1},
		{"sqrt(16)+abs(-2)", 0, 6},
		{"max(1, x, 3)", 7, 7},
		{"min(x, 2)", 5, 2},
		{".5x", 4, 2},
		{"1.5e2", 0, 150},
		{"2e+1", 0, 2*math.E + 1},
		{"x − 1", 4, 3},
		{"3×x ÷ 2", 2, 3},
		{"log(100) + ln(e)", 0, 3},
		{"10 - 4 - 3", 0, 3},
		{"12 / 3 / 2", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Compile(tt.src)
			require.NoError(t, err)
			got, ok := e.Eval(tt.x)
			require.True(t, ok, "expected %s to be defined at %v", tt.src, tt.x)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPrecedence(t *testing.T) {
	tests := map[string]string{
		"-x^2":    "(-(x ^ 2))",
		"2^3^2":   "(2 ^ (3 ^ 2))",
		"2x^2":    "(2 * (x ^ 2))",
		"1+2*3":   "(1 + (2 * 3))",
		"sin(x)x": "(sin(x) * x)",
	}
	for src, want := range tests {
		assert.Equal(t, want, MustCompile(src).String(), src)
	}
}

func TestUndefined(t *testing.T) {
	tests := []struct {
		src string
		x   float64
	}{
		{"1/x", 0},
		{"sqrt(x)", -1},
		{"ln(x)", 0},
		{"ln(x)", -2},
		{"tan(x)", math.Pi / 2},
		{"asin(x)", 2},
		{"x/(x-1)", 1},
	}
	for _, tt := range tests {
		e := MustCompile(tt.src)
		_, ok := e.Eval(tt.x)
		assert.False(t, ok, "%s should be undefined at %v", tt.src, tt.x)
	}
}

func TestDegrees(t *testing.T) {
	e := MustCompile("sin(x)", WithDegrees())
	v, ok := e.Eval(90)
	require.True(t, ok)
	assert.InDelta(t, 1, v, 1e-12)

	_, ok = MustCompile("tan(x)", WithDegrees()).Eval(90)
	assert.False(t, ok)

	v, ok = MustCompile("acos(x)", WithDegrees()).Eval(0)
	require.True(t, ok)
	assert.InDelta(t, 90, v, 1e-12)
}

func TestWithFunction(t *testing.T) {
	cube := Func{Arity: 1, Fn: func(a []float64) float64 { return a[0] * a[0] * a[0] }}
	e, err := Compile("cube(x)+1", WithFunction("cube", cube))
	require.NoError(t, err)
	v, _ := e.Eval(2)
	assert.Equal(t, 9.0, v)

	_, err = Compile("cube(x)")
	require.Error(t, err, "custom functions must not leak into other compilations")
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		src string
		pos int
	}{
		{"", 1},
		{"2*", 3},
		{"(x+1", 5},
		{"x+)", 3},
		{"2 $ x", 3},
		{"y+1", 1},
		{"sin x", 5},
		{"sin(x", 6},
		{"max(1)", 1},
		{"sqrt(1, 2)", 1},
		{"1.2.3", 4},
		{"import(os)", 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Compile(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrExpression))
			var ee *ExpressionError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.pos, ee.Position, ee.Message)
		})
	}
}

func TestFunctionsSorted(t *testing.T) {
	names := Functions()
	assert.Contains(t, names, "sin")
	assert.IsIncreasing(t, names)
}
