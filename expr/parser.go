package expr

// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary | power }     implicit product on juxtaposition
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]                    right-associative
//	primary = number | "x" | constant | func "(" expr { "," expr } ")" | "(" expr ")"
//
// "^" binds tighter than a leading minus, so -x^2 is -(x^2), while the
// exponent itself may be signed: 2^-1.
type parser struct {
	toks  []token
	i     int
	funcs map[string]Func
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) parse() (Node, error) {
	if p.peek().kind == tokEOF {
		return nil, errorf(p.peek().pos, "empty expression")
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errorf(t.pos, "unexpected %s", t)
	}
	return n, nil
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.text, left: left, right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.kind == tokOp && (t.text == "*" || t.text == "/"):
			p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: t.text, left: left, right: right}
		case startsPrimary(t):
			right, err := p.power()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: "*", left: left, right: right}
		default:
			return left, nil
		}
	}
}

func startsPrimary(t token) bool {
	return t.kind == tokNumber || t.kind == tokIdent || t.kind == tokLParen
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "+" || t.text == "-") {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: t.text, operand: operand}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokOp && t.text == "^" {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: "^", left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode{v: t.num}, nil
	case tokIdent:
		if t.text == "x" {
			return variableNode{}, nil
		}
		if v, ok := constants[t.text]; ok {
			return constNode{name: t.text, v: v}, nil
		}
		fn, ok := p.funcs[t.text]
		if !ok {
			return nil, errorf(t.pos, "unknown identifier %q", t.text)
		}
		return p.call(t, fn)
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, errorf(c.pos, "expected ')' to close '(' at column %d, got %s", t.pos, c)
		}
		return n, nil
	default:
		return nil, errorf(t.pos, "unexpected %s", t)
	}
}

func (p *parser) call(name token, fn Func) (Node, error) {
	if open := p.next(); open.kind != tokLParen {
		return nil, errorf(open.pos, "function %s needs parenthesised arguments", name.text)
	}
	var args []Node
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		t := p.next()
		if t.kind == tokRParen {
			break
		}
		if t.kind != tokComma {
			return nil, errorf(t.pos, "expected ',' or ')' in call to %s, got %s", name.text, t)
		}
	}
	switch {
	case fn.Arity >= 0 && len(args) != fn.Arity:
		return nil, errorf(name.pos, "%s takes %d argument(s), got %d", name.text, fn.Arity, len(args))
	case fn.Arity < 0 && len(args) < 2:
		return nil, errorf(name.pos, "%s takes at least 2 arguments, got %d", name.text, len(args))
	}
	return callNode{name: name.text, fn: fn, args: args}, nil
}
