// Package expr parses and evaluates single-variable algebraic expressions
// in x for function graphs. Expressions are parsed into a tree once and then
// evaluated numerically; nothing is ever executed as code.
package expr

import (
	"math"
	"sort"
)

// Option configures Compile.
type Option func(*config)

type config struct {
	degrees bool
	funcs   map[string]Func
}

// WithDegrees makes trigonometric functions take and return degrees.
func WithDegrees() Option {
	return func(c *config) { c.degrees = true }
}

// WithFunction adds or replaces a function in the table used by this
// compilation only. Panics on an empty name or nil function.
func WithFunction(name string, fn Func) Option {
	if name == "" || fn.Fn == nil {
		panic("expr: WithFunction requires a name and a function")
	}
	return func(c *config) { c.funcs[name] = fn }
}

// Expr is a compiled expression.
type Expr struct {
	root    Node
	degrees bool
}

// Compile parses src. Malformed input returns an *ExpressionError.
func Compile(src string, opts ...Option) (*Expr, error) {
	cfg := &config{funcs: make(map[string]Func, len(builtins))}
	for name, fn := range builtins {
		cfg.funcs[name] = fn
	}
	for _, opt := range opts {
		opt(cfg)
	}

	names := []string{"x"}
	for name := range constants {
		names = append(names, name)
	}
	for name := range cfg.funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	toks, err := newLexer(src, names).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, funcs: cfg.funcs}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Expr{root: root, degrees: cfg.degrees}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts ...Option) *Expr {
	e, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval returns f(x). The second result is false when f is undefined at x:
// division by zero, a domain error, or a non-finite result.
func (e *Expr) Eval(x float64) (float64, bool) {
	v := e.root.eval(x, e.degrees)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// String returns the parsed tree fully parenthesised.
func (e *Expr) String() string { return e.root.String() }
