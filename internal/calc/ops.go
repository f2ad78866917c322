package calc

import (
	"math"
)

const (
	OpNone BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

// BinaryOp is an operator taking the accumulator and the display value.
type BinaryOp int

func (op BinaryOp) String() string {
	switch op {
	case OpNone:
		return ""
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	case OpPow:
		return "^"
	default:
		panic("unknown op")
	}
}

// apply computes the operation. It reports false for division by zero and
// for results that are not finite.
func (op BinaryOp) apply(x, y float64) (float64, bool) {
	var r float64
	switch op {
	case OpNone:
		r = y
	case OpAdd:
		r = x + y
	case OpSub:
		r = x - y
	case OpMul:
		r = x * y
	case OpDiv:
		if y == 0 {
			return 0, false
		}
		r = x / y
	case OpPow:
		r = math.Pow(x, y)
	default:
		panic("unknown op")
	}
	return r, isFinite(r)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
