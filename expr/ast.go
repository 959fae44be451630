package expr

import (
	"math"
	"strconv"
	"strings"
)

// Node is one element of a parsed expression tree.
type Node interface {
	eval(x float64, deg bool) float64
	// String returns a fully parenthesised form, useful for checking
	// precedence.
	String() string
}

type numberNode struct{ v float64 }

type variableNode struct{}

type constNode struct {
	name string
	v    float64
}

type unaryNode struct {
	op      string
	operand Node
}

type binaryNode struct {
	op          string
	left, right Node
}

type callNode struct {
	name string
	fn   Func
	args []Node
}

func (n numberNode) eval(float64, bool) float64     { return n.v }
func (variableNode) eval(x float64, _ bool) float64 { return x }
func (n constNode) eval(float64, bool) float64      { return n.v }

func (n unaryNode) eval(x float64, deg bool) float64 {
	v := n.operand.eval(x, deg)
	if n.op == "-" {
		return -v
	}
	return v
}

func (n binaryNode) eval(x float64, deg bool) float64 {
	l := n.left.eval(x, deg)
	r := n.right.eval(x, deg)
	switch n.op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		if r == 0 {
			return math.NaN()
		}
		return l / r
	case "^":
		return math.Pow(l, r)
	}
	return math.NaN()
}

func (n callNode) eval(x float64, deg bool) float64 {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		args[i] = a.eval(x, deg)
		if deg && n.fn.Trig {
			args[i] *= math.Pi / 180
		}
	}
	v := n.fn.Fn(args)
	if deg && n.fn.InverseTrig {
		v *= 180 / math.Pi
	}
	return v
}

func (n numberNode) String() string { return strconv.FormatFloat(n.v, 'g', -1, 64) }
func (variableNode) String() string { return "x" }
func (n constNode) String() string  { return n.name }
func (n unaryNode) String() string  { return "(" + n.op + n.operand.String() + ")" }

func (n binaryNode) String() string {
	return "(" + n.left.String() + " " + n.op + " " + n.right.String() + ")"
}

func (n callNode) String() string {
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.name + "(" + strings.Join(parts, ", ") + ")"
}
