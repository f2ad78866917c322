package calc

import (
	"fmt"
	"math"
)

const (
	UnarySqrt UnaryOp = iota
	UnarySin
	UnaryCos
	UnaryTan
	UnarySinh
	UnaryCosh
	UnaryTanh
	UnaryLog
	UnaryLn
	UnaryReciprocal
	UnaryNegate
	UnaryFactorial
	UnarySquare
	UnaryCube
	UnaryExp
	UnaryPow10
	UnaryCbrt
	UnaryPercent
	numUnary
)

// UnaryOp is a single-operand transform of the display value.
type UnaryOp int

type unaryInfo struct {
	name   string // key label
	prefix string // formula is wrapped as prefix(...)
	suffix string // formula gets suffix appended
	basic  bool   // available in basic mode
}

var unaryOps = [numUnary]unaryInfo{
	UnarySqrt:       {name: "√", prefix: "√", basic: true},
	UnarySin:        {name: "sin", prefix: "sin"},
	UnaryCos:        {name: "cos", prefix: "cos"},
	UnaryTan:        {name: "tan", prefix: "tan"},
	UnarySinh:       {name: "sinh", prefix: "sinh"},
	UnaryCosh:       {name: "cosh", prefix: "cosh"},
	UnaryTanh:       {name: "tanh", prefix: "tanh"},
	UnaryLog:        {name: "log", prefix: "log"},
	UnaryLn:         {name: "ln", prefix: "ln"},
	UnaryReciprocal: {name: "1/x", prefix: "1/"},
	UnaryNegate:     {name: "±", prefix: "-", basic: true},
	UnaryFactorial:  {name: "x!", suffix: "!"},
	UnarySquare:     {name: "x²", suffix: "²"},
	UnaryCube:       {name: "x³", suffix: "³"},
	UnaryExp:        {name: "eˣ", prefix: "e^"},
	UnaryPow10:      {name: "10ˣ", prefix: "10^"},
	UnaryCbrt:       {name: "∛", prefix: "∛"},
	UnaryPercent:    {name: "%", suffix: "%", basic: true},
}

func (op UnaryOp) info() unaryInfo {
	if op < 0 || op >= numUnary {
		panic(fmt.Sprintf("unknown unary op %d", int(op)))
	}
	return unaryOps[op]
}

// String returns the key label of op.
func (op UnaryOp) String() string {
	return op.info().name
}

// wrap renders op applied to the formula text f.
func (op UnaryOp) wrap(f string) string {
	info := op.info()
	if info.suffix != "" {
		return f + info.suffix
	}
	return info.prefix + "(" + f + ")"
}

// ApplyUnary computes op on v. Trigonometric operands are converted from
// degrees when angle is Degrees. It reports false when op is undefined for v
// or the result is not finite.
func ApplyUnary(op UnaryOp, v float64, angle AngleMode) (float64, bool) {
	var r float64
	switch op {
	case UnarySqrt:
		r = math.Sqrt(v)
	case UnarySin, UnaryCos, UnaryTan:
		r = trig(op, v, angle)
	case UnarySinh:
		r = math.Sinh(v)
	case UnaryCosh:
		r = math.Cosh(v)
	case UnaryTanh:
		r = math.Tanh(v)
	case UnaryLog:
		r = math.Log10(v)
		if p := math.Round(r); math.Pow(10, p) == v {
			r = p // exact for powers of ten
		}
	case UnaryLn:
		r = math.Log(v)
	case UnaryReciprocal:
		if v == 0 {
			return 0, false
		}
		r = 1 / v
	case UnaryNegate:
		r = -v
	case UnaryFactorial:
		var ok bool
		if r, ok = factorial(v); !ok {
			return 0, false
		}
	case UnarySquare:
		r = v * v
	case UnaryCube:
		r = v * v * v
	case UnaryExp:
		r = math.Exp(v)
	case UnaryPow10:
		r = math.Pow(10, v)
	case UnaryCbrt:
		r = math.Cbrt(v)
	case UnaryPercent:
		r = v / 100
	default:
		panic(fmt.Sprintf("unknown unary op %d", int(op)))
	}
	return r, isFinite(r)
}

// trigEpsilon snaps results like cos(90°) to zero.
const trigEpsilon = 1e-15

func trig(op UnaryOp, v float64, angle AngleMode) float64 {
	if angle == Degrees {
		v = v * math.Pi / 180
	}
	var r float64
	switch op {
	case UnarySin:
		r = math.Sin(v)
	case UnaryCos:
		r = math.Cos(v)
	case UnaryTan:
		r = math.Tan(v)
	}
	if math.Abs(r) < trigEpsilon {
		return 0
	}
	return r
}

// factorial is defined for non-negative integers only.
func factorial(v float64) (float64, bool) {
	if v < 0 || v != math.Trunc(v) {
		return 0, false
	}
	r := 1.0
	for i := 2.0; i <= v; i++ {
		r *= i
		if math.IsInf(r, 0) {
			return 0, false
		}
	}
	return r, true
}
