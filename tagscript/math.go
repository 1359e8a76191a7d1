package tagscript

import (
	"errors"
	"math"
	"strconv"
)

// MathBlock evaluates the restricted arithmetic expression in its payload
// and substitutes the result. The grammar admits decimal numbers, + - * /
// % ^, parentheses, and unary minus, and nothing else; there is no access
// to variables, functions, or the host runtime. Whole results render
// without a decimal point:
//
//	{math:2+3*4}
type MathBlock struct{}

func (MathBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, false, true) && accepts(ctx.Verb, "math", "m", "+", "calc")
}

func (MathBlock) Process(ctx *Context) (string, bool, error) {
	p := &exprParser{s: ctx.Verb.Payload}
	v, err := p.parse()
	if err != nil {
		return "", false, nil
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10), true, nil
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true, nil
}

// exprParser is a recursive-descent parser for the math block's grammar:
//
//	expr   = term {("+" | "-") term}
//	term   = factor {("*" | "/" | "%") factor}
//	factor = "-" factor | power
//	power  = atom ["^" factor]
//	atom   = number | "(" expr ")"
type exprParser struct {
	s string
	i int
}

var errExpr = errors.New("bad expression")

func (p *exprParser) parse() (float64, error) {
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.space()
	if p.i != len(p.s) {
		return 0, errExpr
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errExpr
	}
	return v, nil
}

func (p *exprParser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.i++
			w, err := p.term()
			if err != nil {
				return 0, err
			}
			v += w
		case '-':
			p.i++
			w, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= w
		default:
			return v, nil
		}
	}
}

func (p *exprParser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.i++
			w, err := p.factor()
			if err != nil {
				return 0, err
			}
			v *= w
		case '/':
			p.i++
			w, err := p.factor()
			if err != nil {
				return 0, err
			}
			if w == 0 {
				return 0, errExpr
			}
			v /= w
		case '%':
			p.i++
			w, err := p.factor()
			if err != nil {
				return 0, err
			}
			if w == 0 {
				return 0, errExpr
			}
			v = math.Mod(v, w)
		default:
			return v, nil
		}
	}
}

func (p *exprParser) factor() (float64, error) {
	if p.peek() == '-' {
		p.i++
		v, err := p.factor()
		return -v, err
	}
	return p.power()
}

func (p *exprParser) power() (float64, error) {
	v, err := p.atom()
	if err != nil {
		return 0, err
	}
	if p.peek() == '^' {
		p.i++
		// Right associative, like exponentiation everywhere else.
		w, err := p.factor()
		if err != nil {
			return 0, err
		}
		v = math.Pow(v, w)
	}
	return v, nil
}

func (p *exprParser) atom() (float64, error) {
	if p.peek() == '(' {
		p.i++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errExpr
		}
		p.i++
		return v, nil
	}
	p.space()
	j := p.i
	for j < len(p.s) && (p.s[j] == '.' || '0' <= p.s[j] && p.s[j] <= '9') {
		j++
	}
	if j == p.i {
		return 0, errExpr
	}
	v, err := strconv.ParseFloat(p.s[p.i:j], 64)
	if err != nil {
		return 0, errExpr
	}
	p.i = j
	return v, nil
}

// peek skips spaces and returns the next operator byte without consuming it.
func (p *exprParser) peek() byte {
	p.space()
	if p.i >= len(p.s) {
		return 0
	}
	return p.s[p.i]
}

func (p *exprParser) space() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t') {
		p.i++
	}
}
