// Package expr evaluates function definitions of one variable for the graph
// plotter.
//
// The grammar is deliberately small. It knows numbers, the variable x, the
// constants π (also "pi") and e, the operators + - * / ^ (with × and ÷ as
// aliases), parentheses and the functions sin, cos, tan, log, ln and √ (also
// "sqrt"). Trigonometric functions always take radians. Juxtaposition means
// multiplication, so "2x", "3(x+1)" and "2sin(x)" are accepted.
//
// Create a parsed expression using Parse and evaluate it with Eval, or call
// Evaluate to do both and get NaN for anything that cannot be plotted.
package expr

import (
	"math"
	"strconv"
)

// Expr holds a parsed function definition.
type Expr struct {
	text string
	root node
}

// Parse parses a function definition.
func Parse(text string) (e *Expr, err error) {
	p := &parser{lex: newLexer(text)}
	defer recoverer(&err)
	p.advance()
	if p.tok.kind == tokEOF {
		p.throw("empty expression")
	}
	root := p.sum()
	if p.tok.kind != tokEOF {
		p.throw("unexpected " + p.tok.String())
	}
	return &Expr{text: text, root: root}, nil
}

// Eval computes the value of the expression at x. The result is whatever the
// floating point operations produce, including NaN and ±Inf.
func (e *Expr) Eval(x float64) float64 {
	return e.root.eval(x)
}

// Text returns the source text of e.
func (e *Expr) Text() string {
	return e.text
}

func (e *Expr) String() string {
	return e.root.String()
}

// Evaluate parses text and evaluates it at x. It returns NaN if the text does
// not parse or if the result is not a finite number.
func Evaluate(text string, x float64) float64 {
	e, err := Parse(text)
	if err != nil {
		return math.NaN()
	}
	return Finite(e.Eval(x))
}

// Finite returns v, or NaN if v is infinite.
func Finite(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

type node interface {
	eval(x float64) float64
	String() string
}

type (
	number   float64
	variable struct{}

	negation struct {
		arg node
	}

	binary struct {
		op          rune
		left, right node
	}

	call struct {
		fn  *function
		arg node
	}
)

func (n number) eval(float64) float64 { return float64(n) }
func (n number) String() string {
	switch float64(n) {
	case math.Pi:
		return "π"
	case math.E:
		return "e"
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (variable) eval(x float64) float64 { return x }
func (variable) String() string         { return "x" }

func (n negation) eval(x float64) float64 { return -n.arg.eval(x) }
func (n negation) String() string         { return "(-" + n.arg.String() + ")" }

func (b binary) eval(x float64) float64 {
	l, r := b.left.eval(x), b.right.eval(x)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	default:
		panic("unknown operator " + string(b.op))
	}
}

func (b binary) String() string {
	return "(" + b.left.String() + " " + string(b.op) + " " + b.right.String() + ")"
}

func (c call) eval(x float64) float64 { return c.fn.apply(c.arg.eval(x)) }
func (c call) String() string         { return c.fn.name + "(" + c.arg.String() + ")" }

// function is one of the fixed set of callable names.
type function struct {
	name  string
	apply func(float64) float64
}

var functions = map[string]*function{
	"sin":  {"sin", math.Sin},
	"cos":  {"cos", math.Cos},
	"tan":  {"tan", math.Tan},
	"log":  {"log", math.Log10},
	"ln":   {"ln", math.Log},
	"sqrt": {"√", math.Sqrt},
	"√":    {"√", math.Sqrt},
}

var constants = map[string]float64{
	"π":  math.Pi,
	"pi": math.Pi,
	"e":  math.E,
}
