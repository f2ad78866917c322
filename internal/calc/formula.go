package calc

import (
	"strings"
	"unicode/utf8"
)

// formula is the expression text shown above the display. It follows the
// state transitions but is never parsed back.
type formula struct {
	text    string
	operand int    // offset where the text of the current operand starts
	lastOp  string // glyph of the last appended operator
}

func (f *formula) reset() {
	*f = formula{}
}

func (f *formula) set(s string) {
	*f = formula{text: s, operand: len(s)}
}

// setOperand replaces the text of the current operand.
func (f *formula) setOperand(s string) {
	if f.operand > len(f.text) {
		f.operand = len(f.text)
	}
	f.text = f.text[:f.operand] + s
}

// wrapOperand applies wrap to the text of the current operand.
func (f *formula) wrapOperand(wrap func(string) string) {
	if f.operand > len(f.text) {
		f.operand = len(f.text)
	}
	f.text = f.text[:f.operand] + wrap(f.text[f.operand:])
}

func (f *formula) appendOp(glyph string) {
	f.text += glyph
	f.lastOp = glyph
	f.operand = len(f.text)
}

// replaceOp swaps the trailing operator glyph.
func (f *formula) replaceOp(glyph string) {
	if f.lastOp != "" && strings.HasSuffix(f.text, f.lastOp) {
		f.text = strings.TrimSuffix(f.text, f.lastOp)
	}
	f.appendOp(glyph)
}

func (f *formula) append(s string) {
	f.text += s
	f.lastOp = ""
	f.operand = len(f.text)
}

// trimLast removes the last character and returns it.
func (f *formula) trimLast() rune {
	r, size := utf8.DecodeLastRuneInString(f.text)
	if size == 0 {
		return utf8.RuneError
	}
	f.text = f.text[:len(f.text)-size]
	if f.operand > len(f.text) {
		f.operand = len(f.text)
	}
	return r
}
