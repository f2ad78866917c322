// Package calc implements the calculator engine.
//
// A State is an immutable value. Apply computes the state that follows an
// input token, so a session is a fold of its tokens over New().
//
// Binary operators are evaluated strictly in entry order: 2 + 3 × 4 = gives
// 20, not 14. Parentheses are only recorded in the formula text; they do not
// group the computation.
package calc

import (
	"strings"

	"github.com/fjl/giosci/internal/plot"
)

// maxInput limits the length of a typed operand.
const maxInput = 24

// State is the calculator state.
type State struct {
	display string
	acc     float64
	hasAcc  bool
	pending BinaryOp
	fresh   bool // next digit starts a new operand
	opKey   bool // the last key entered a binary operator
	memory  float64
	parens  int
	angle   AngleMode
	mode    Mode
	formula formula

	slots  plot.Slots
	window plot.GraphWindow
	trace  plot.TraceState
}

// New returns the initial state.
func New() State {
	return State{display: "0", window: plot.DefaultWindow()}
}

// Display returns the current operand text, or ErrorText.
func (s State) Display() string { return s.display }

// Formula returns the expression text.
func (s State) Formula() string { return s.formula.text }

// Mode returns the input mode.
func (s State) Mode() Mode { return s.mode }

// Angle returns the angle mode of trigonometric operations.
func (s State) Angle() AngleMode { return s.angle }

// Memory returns the memory register.
func (s State) Memory() float64 { return s.memory }

// Accumulator returns the stored left operand, if any.
func (s State) Accumulator() (float64, bool) { return s.acc, s.hasAcc }

// Pending returns the operator waiting for its second operand.
func (s State) Pending() BinaryOp { return s.pending }

// ParenDepth returns the number of unmatched open parentheses.
func (s State) ParenDepth() int { return s.parens }

// AwaitingOperand reports whether the next digit starts a new operand.
func (s State) AwaitingOperand() bool { return s.fresh }

// IsError reports whether the calculator is in the error state.
func (s State) IsError() bool { return s.display == ErrorText }

// Phase is the coarse state of the arithmetic machine.
type Phase int

const (
	PhaseOperand         Phase = iota // idle or holding an operand
	PhaseOperatorPending              // a binary operator waits for its right operand
	PhaseError
)

// Phase returns the coarse state of s.
func (s State) Phase() Phase {
	switch {
	case s.IsError():
		return PhaseError
	case s.pending != OpNone:
		return PhaseOperatorPending
	default:
		return PhaseOperand
	}
}

// Slots returns the function slots.
func (s State) Slots() plot.Slots { return s.slots }

// Window returns the graph window.
func (s State) Window() plot.GraphWindow { return s.window }

// Trace returns the trace cursor.
func (s State) Trace() plot.TraceState { return s.trace }

// Readout returns the trace coordinates text in graphing mode.
func (s State) Readout() (string, bool) {
	if s.mode != ModeGraphing {
		return "", false
	}
	return plot.TraceReadout(s.slots, s.trace)
}

// Apply processes one input token and returns the resulting state. Tokens
// that are not valid in the current mode are ignored. In the error state,
// everything except KindClearAll is ignored.
func (s State) Apply(tok Token) State {
	if s.IsError() && tok.Kind != KindClearAll {
		return s
	}
	switch tok.Kind {
	case KindClearAll:
		return s.clearAll()
	case KindModeCycle:
		return s.cycleMode()
	}
	if s.mode == ModeGraphing {
		if tok.Kind.graphing() {
			return s.graph(tok)
		}
		return s
	}
	if tok.Kind.graphing() || !s.accepts(tok) {
		return s
	}

	switch tok.Kind {
	case KindDigit:
		return s.digit(tok.Digit)
	case KindBinary:
		return s.binary(tok.Binary)
	case KindEquals:
		return s.equals()
	case KindUnary:
		return s.unary(tok.Unary)
	case KindClearEntry:
		return s.clearEntry()
	case KindOpenParen:
		s.parens++
		s.opKey = false
		s.formula.append("(")
	case KindCloseParen:
		if s.parens > 0 {
			s.parens--
			s.opKey = false
			s.formula.append(")")
		}
	case KindMemoryClear:
		s.memory = 0
	case KindMemoryRecall:
		return s.enterOperand(FormatNumber(s.memory))
	case KindMemoryAdd, KindMemorySub:
		return s.memoryUpdate(tok.Kind == KindMemorySub)
	case KindAngleToggle:
		if s.angle == Radians {
			s.angle = Degrees
		} else {
			s.angle = Radians
		}
	case KindPaste:
		if v, ok := ParseNumber(tok.Text); ok {
			return s.enterOperand(FormatNumber(v))
		}
	}
	return s
}

// accepts reports whether tok is part of the vocabulary of basic or
// scientific mode.
func (s State) accepts(tok Token) bool {
	if s.mode == ModeScientific {
		return true
	}
	switch tok.Kind {
	case KindBinary:
		return tok.Binary != OpPow
	case KindUnary:
		return tok.Unary.info().basic
	case KindOpenParen, KindCloseParen, KindAngleToggle:
		return false
	}
	return true
}

// fail enters the error state.
func (s State) fail() State {
	s.display = ErrorText
	s.formula.set(ErrorText)
	s.acc, s.hasAcc = 0, false
	s.pending = OpNone
	s.fresh, s.opKey = true, false
	s.parens = 0
	return s
}

// clearAll resets the arithmetic state. Memory, modes and the graph survive.
func (s State) clearAll() State {
	s.display = "0"
	s.acc, s.hasAcc = 0, false
	s.pending = OpNone
	s.fresh, s.opKey = false, false
	s.parens = 0
	s.formula.reset()
	return s
}

func (s State) cycleMode() State {
	next := s.mode.next()
	if s.mode == ModeGraphing || next == ModeGraphing {
		s = s.clearAll()
		s.trace = plot.TraceState{}
	}
	if next == ModeGraphing {
		s.slots = plot.Slots{}
	}
	s.mode = next
	return s
}

// startOperand prepares for typing a new operand. Without a pending operator
// the previous formula is finished and starts over. Otherwise the new operand
// replaces the text of the last one, if any.
func (s State) startOperand() State {
	if s.pending == OpNone && s.parens == 0 {
		s.formula.reset()
	}
	s.fresh, s.opKey = false, false
	return s
}

// digit processes an input digit or decimal point.
func (s State) digit(c byte) State {
	if c != '.' && (c < '0' || c > '9') {
		return s
	}
	prev := s
	if s.fresh {
		s = s.startOperand()
		s.display = "0"
	}
	switch {
	case c == '.':
		if strings.ContainsAny(s.display, ".e") {
			return prev
		}
		s.display += "."
	case s.display == "0":
		s.display = string(c)
	case s.display == "-0":
		s.display = "-" + string(c)
	default:
		s.display += string(c)
	}
	if _, ok := ParseNumber(s.display); !ok || len(s.display) > maxInput {
		return prev
	}
	s.formula.setOperand(s.display)
	return s
}

// enterOperand replaces the current operand with a complete value.
func (s State) enterOperand(text string) State {
	if s.fresh {
		s = s.startOperand()
	}
	s.display = text
	s.formula.setOperand(text)
	s.fresh, s.opKey = true, false
	return s
}

// binary applies a binary operator key. A pending operation is computed
// first, so operators chain left to right.
func (s State) binary(op BinaryOp) State {
	if s.opKey {
		// Operator pressed twice: the new one replaces the old one.
		s.pending = op
		s.formula.replaceOp(op.String())
		return s
	}
	v, ok := ParseNumber(s.display)
	if !ok {
		return s.fail()
	}
	if s.formula.text == "" {
		s.formula.set(s.display)
	}
	if s.hasAcc && s.pending != OpNone {
		r, ok := s.pending.apply(s.acc, v)
		if !ok {
			return s.fail()
		}
		s.acc = r
		s.display = FormatNumber(r)
	} else {
		s.acc, s.hasAcc = v, true
	}
	s.pending = op
	s.fresh, s.opKey = true, true
	s.formula.appendOp(op.String())
	return s
}

// equals computes the pending operation and closes the expression.
func (s State) equals() State {
	if !s.hasAcc || s.pending == OpNone {
		return s
	}
	v, ok := ParseNumber(s.display)
	if !ok {
		return s.fail()
	}
	r, ok := s.pending.apply(s.acc, v)
	if !ok {
		return s.fail()
	}
	s.display = FormatNumber(r)
	s.acc, s.hasAcc = 0, false
	s.pending = OpNone
	s.fresh, s.opKey = true, false
	s.parens = 0
	s.formula.reset()
	return s
}

// unary applies op to the display value. The result also becomes the
// accumulator, so a pending operator computes with it on both sides and a
// following binary operator continues from it. The pending operator is kept.
func (s State) unary(op UnaryOp) State {
	v, ok := ParseNumber(s.display)
	if !ok {
		return s.fail()
	}
	r, ok := ApplyUnary(op, v, s.angle)
	if !ok {
		return s.fail()
	}
	if s.opKey {
		// Right after an operator, op applies to the displayed left operand.
		s.formula.setOperand(s.display)
	}
	if s.formula.text == "" {
		s.formula.set(s.display)
	}
	if s.pending != OpNone {
		s.formula.wrapOperand(op.wrap)
	} else {
		s.formula.set(op.wrap(s.formula.text))
	}
	s.display = FormatNumber(r)
	s.acc, s.hasAcc = r, true
	s.fresh, s.opKey = true, false
	return s
}

// clearEntry removes the last typed character. On a cleared display it
// acts as clear-all. Right after a binary operator, it cancels the operator
// and the left operand can be edited again.
func (s State) clearEntry() State {
	if s.display == "0" && s.formula.text == "" {
		return s.clearAll()
	}
	if s.opKey {
		s.acc, s.hasAcc = 0, false
		s.pending = OpNone
		s.fresh, s.opKey = false, false
		s.parens = 0
		s.formula.reset()
		s.formula.setOperand(s.display)
		return s
	}
	s.display = trimLast(s.display)
	switch s.formula.trimLast() {
	case ')':
		s.parens++
	case '(':
		if s.parens > 0 {
			s.parens--
		}
	}
	s.fresh = false
	return s
}

func (s State) memoryUpdate(subtract bool) State {
	v, ok := ParseNumber(s.display)
	if !ok {
		return s.fail()
	}
	if subtract {
		v = -v
	}
	m := s.memory + v
	if !isFinite(m) {
		return s.fail()
	}
	s.memory = m
	s.fresh = true
	return s
}

func (s State) graph(tok Token) State {
	switch tok.Kind {
	case KindSlotSelect:
		s.trace = s.trace.Select(tok.Slot)
	case KindSlotCommit:
		s.slots = s.slots.Set(tok.Slot, tok.Text)
	case KindTraceToggle:
		s.trace.Enabled = !s.trace.Enabled
		s.trace = s.trace.Clamp(s.window)
	case KindTraceLeft, KindTraceRight:
		if s.trace.Enabled {
			dir := 1
			if tok.Kind == KindTraceLeft {
				dir = -1
			}
			s.trace = s.trace.Step(s.window, dir)
		}
	case KindZoomIn, KindZoomOut:
		factor := 0.5
		if tok.Kind == KindZoomOut {
			factor = 2
		}
		if w, err := s.window.Zoom(factor); err == nil {
			s.window = w
			s.trace = s.trace.Clamp(w)
		}
	case KindWindowReset:
		s.window = plot.DefaultWindow()
		s.trace = s.trace.Clamp(s.window)
	}
	return s
}
