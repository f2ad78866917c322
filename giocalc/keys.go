package main

import (
	"gioui.org/io/key"

	"github.com/fjl/giosci/internal/calc"
)

// keySet is the set of keys handled by the calculator.
const keySet = "Short-[C,V,L,R,P,Q]" +
	"|(Shift)-[0,1,2,3,4,5,6,7,8,9,.,+,*,/,%,=,^,(,),!,⌤,⏎,⌫,⌦,⎋]" +
	"|(Alt)-(Shift)-[-]" +
	"|[S,C,T,L,N,Q,R,M,D,←,→,↑,↓]"

func isCopy(e key.Event) bool {
	return e.Name == "C" && e.Modifiers.Contain(key.ModShortcut)
}

func isPaste(e key.Event) bool {
	return e.Name == "V" && e.Modifiers.Contain(key.ModShortcut)
}

// keyToken translates a key press into a calculator token.
func keyToken(mode calc.Mode, e key.Event) (calc.Token, bool) {
	if e.State == key.Release {
		return calc.Token{}, false
	}
	if mode == calc.ModeGraphing {
		return graphKeyToken(e)
	}
	if e.Modifiers.Contain(key.ModShortcut) {
		return memoryKeyToken(e)
	}

	switch e.Name {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return calc.Digit(e.Name[0]), true
	case "+":
		return calc.Binary(calc.OpAdd), true
	case "-":
		if e.Modifiers.Contain(key.ModAlt) {
			return calc.Unary(calc.UnaryNegate), true
		}
		return calc.Binary(calc.OpSub), true
	case "*":
		return calc.Binary(calc.OpMul), true
	case "/":
		return calc.Binary(calc.OpDiv), true
	case "^":
		return calc.Binary(calc.OpPow), true
	case "%":
		return calc.Unary(calc.UnaryPercent), true
	case "!":
		return calc.Unary(calc.UnaryFactorial), true
	case "(":
		return calc.Key(calc.KindOpenParen), true
	case ")":
		return calc.Key(calc.KindCloseParen), true
	case "S":
		return calc.Unary(calc.UnarySin), true
	case "C":
		return calc.Unary(calc.UnaryCos), true
	case "T":
		return calc.Unary(calc.UnaryTan), true
	case "L":
		return calc.Unary(calc.UnaryLog), true
	case "N":
		return calc.Unary(calc.UnaryLn), true
	case "Q":
		return calc.Unary(calc.UnarySqrt), true
	case "R":
		return calc.Unary(calc.UnaryReciprocal), true
	case "D":
		return calc.Key(calc.KindAngleToggle), true
	case "M":
		return calc.Key(calc.KindModeCycle), true
	case "=", key.NameEnter, key.NameReturn:
		return calc.Key(calc.KindEquals), true
	case key.NameDeleteBackward, key.NameDeleteForward:
		return calc.Key(calc.KindClearEntry), true
	case key.NameEscape:
		return calc.Key(calc.KindClearAll), true
	}
	return calc.Token{}, false
}

// memoryKeyToken handles the memory shortcuts.
func memoryKeyToken(e key.Event) (calc.Token, bool) {
	switch e.Name {
	case "L":
		return calc.Key(calc.KindMemoryClear), true
	case "R":
		return calc.Key(calc.KindMemoryRecall), true
	case "P":
		return calc.Key(calc.KindMemoryAdd), true
	case "Q":
		return calc.Key(calc.KindMemorySub), true
	}
	return calc.Token{}, false
}

// graphKeyToken handles keys of graphing mode. Function text is typed into the
// slot editors, so only navigation keys reach the calculator.
func graphKeyToken(e key.Event) (calc.Token, bool) {
	switch e.Name {
	case key.NameLeftArrow:
		return calc.Key(calc.KindTraceLeft), true
	case key.NameRightArrow:
		return calc.Key(calc.KindTraceRight), true
	case key.NameUpArrow, "+":
		return calc.Key(calc.KindZoomIn), true
	case key.NameDownArrow, "-":
		return calc.Key(calc.KindZoomOut), true
	case "T":
		return calc.Key(calc.KindTraceToggle), true
	case "0":
		return calc.Key(calc.KindWindowReset), true
	case "1", "2", "3", "4", "5":
		return calc.SelectSlot(int(e.Name[0] - '1')), true
	case "M":
		return calc.Key(calc.KindModeCycle), true
	case key.NameEscape:
		return calc.Key(calc.KindClearAll), true
	}
	return calc.Token{}, false
}
