package expr

import (
	"math"
	"sort"
)

// Func is a callable in the function table. Arity -1 accepts two or more
// arguments.
type Func struct {
	Arity int
	Fn    func(args []float64) float64
	// Trig marks functions whose argument is an angle; in degree mode the
	// argument is converted before the call.
	Trig bool
	// InverseTrig marks functions returning an angle; in degree mode the
	// result is converted after the call.
	InverseTrig bool
}

func unary(f func(float64) float64) Func {
	return Func{Arity: 1, Fn: func(a []float64) float64 { return f(a[0]) }}
}

func trig(f func(float64) float64) Func {
	fn := unary(f)
	fn.Trig = true
	return fn
}

func inverseTrig(f func(float64) float64) Func {
	fn := unary(f)
	fn.InverseTrig = true
	return fn
}

var builtins = map[string]Func{
	"sin":   trig(math.Sin),
	"cos":   trig(math.Cos),
	"tan":   trig(tangent),
	"asin":  inverseTrig(math.Asin),
	"acos":  inverseTrig(math.Acos),
	"atan":  inverseTrig(math.Atan),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"ln":    unary(math.Log),
	"log":   unary(math.Log10),
	"exp":   unary(math.Exp),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"sign":  unary(sign),
	"min": {Arity: -1, Fn: func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m
	}},
	"max": {Arity: -1, Fn: func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m
	}},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
}

// tangent is undefined where cos vanishes; math.Tan returns a huge finite
// value there instead.
func tangent(x float64) float64 {
	if math.Abs(math.Cos(x)) < 1e-12 {
		return math.NaN()
	}
	return math.Tan(x)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Functions returns the names of the built-in functions.
func Functions() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
