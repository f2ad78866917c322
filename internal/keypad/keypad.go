// Package keypad defines the on-screen key layout of each calculator mode.
package keypad

import "github.com/fjl/giosci/internal/calc"

// Class groups keys for styling.
type Class int

const (
	ClassDigit Class = iota
	ClassOperator
	ClassFunction
	ClassControl
	ClassGraph
)

// Key is one button of the keypad.
type Key struct {
	Label string
	Token calc.Token
	Class Class
}

func digit(c byte) Key {
	return Key{Label: string(c), Token: calc.Digit(c), Class: ClassDigit}
}

func op(o calc.BinaryOp) Key {
	return Key{Label: o.String(), Token: calc.Binary(o), Class: ClassOperator}
}

func fn(o calc.UnaryOp) Key {
	return Key{Label: o.String(), Token: calc.Unary(o), Class: ClassFunction}
}

func ctl(label string, k calc.Kind) Key {
	return Key{Label: label, Token: calc.Key(k), Class: ClassControl}
}

func graph(label string, tok calc.Token) Key {
	return Key{Label: label, Token: tok, Class: ClassGraph}
}

var (
	equals = Key{Label: "=", Token: calc.Key(calc.KindEquals), Class: ClassOperator}
	mode   = ctl("MODE", calc.KindModeCycle)
)

var layouts = map[calc.Mode][][]Key{
	calc.ModeBasic: {
		{ctl("AC", calc.KindClearAll), ctl("⌫", calc.KindClearEntry), fn(calc.UnaryPercent), op(calc.OpDiv), ctl("MC", calc.KindMemoryClear)},
		{digit('7'), digit('8'), digit('9'), op(calc.OpMul), ctl("MR", calc.KindMemoryRecall)},
		{digit('4'), digit('5'), digit('6'), op(calc.OpSub), ctl("M+", calc.KindMemoryAdd)},
		{digit('1'), digit('2'), digit('3'), op(calc.OpAdd), ctl("M−", calc.KindMemorySub)},
		{fn(calc.UnaryNegate), digit('0'), digit('.'), equals, mode},
	},
	calc.ModeScientific: {
		{ctl("AC", calc.KindClearAll), ctl("⌫", calc.KindClearEntry), ctl("(", calc.KindOpenParen), ctl(")", calc.KindCloseParen), ctl("DEG", calc.KindAngleToggle), mode},
		{fn(calc.UnarySin), fn(calc.UnaryCos), fn(calc.UnaryTan), fn(calc.UnarySqrt), fn(calc.UnaryCbrt), op(calc.OpPow)},
		{fn(calc.UnarySinh), fn(calc.UnaryCosh), fn(calc.UnaryTanh), fn(calc.UnarySquare), fn(calc.UnaryCube), op(calc.OpDiv)},
		{fn(calc.UnaryLog), fn(calc.UnaryLn), digit('7'), digit('8'), digit('9'), op(calc.OpMul)},
		{fn(calc.UnaryPow10), fn(calc.UnaryExp), digit('4'), digit('5'), digit('6'), op(calc.OpSub)},
		{fn(calc.UnaryFactorial), fn(calc.UnaryReciprocal), digit('1'), digit('2'), digit('3'), op(calc.OpAdd)},
		{ctl("MC", calc.KindMemoryClear), ctl("MR", calc.KindMemoryRecall), ctl("M+", calc.KindMemoryAdd), ctl("M−", calc.KindMemorySub), digit('0'), equals},
		{fn(calc.UnaryNegate), fn(calc.UnaryPercent), digit('.'), {}, {}, {}},
	},
	calc.ModeGraphing: {
		{graph("f1", calc.SelectSlot(0)), graph("f2", calc.SelectSlot(1)), graph("f3", calc.SelectSlot(2)), graph("f4", calc.SelectSlot(3)), graph("f5", calc.SelectSlot(4))},
		{graph("◀", calc.Key(calc.KindTraceLeft)), graph("TRACE", calc.Key(calc.KindTraceToggle)), graph("▶", calc.Key(calc.KindTraceRight)), graph("Zoom+", calc.Key(calc.KindZoomIn)), graph("Zoom−", calc.Key(calc.KindZoomOut))},
		{graph("Reset", calc.Key(calc.KindWindowReset)), {}, {}, {}, mode},
	},
}

// Rows returns the keypad of mode as rows of equal length. Empty cells have
// an empty Label.
func Rows(m calc.Mode) [][]Key {
	return layouts[m]
}

// Tokens returns the tokens of mode's keys in layout order.
func Tokens(m calc.Mode) []calc.Token {
	var toks []calc.Token
	for _, row := range layouts[m] {
		for _, k := range row {
			if k.Label != "" {
				toks = append(toks, k.Token)
			}
		}
	}
	return toks
}
