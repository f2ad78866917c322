package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokVar
	tokConst
	tokFunc
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
	op   rune
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokOp:
		return strconv.QuoteRune(t.op)
	default:
		return strconv.Quote(t.text)
	}
}

// names are the alphabetic identifiers, longest first so that "sqrt" wins
// over "s..." and "pi" is tried before "x" and "e" when splitting runs of
// letters like "pix" or "ex".
var names = []string{"sqrt", "sin", "cos", "tan", "log", "ln", "pi", "x", "e"}

type lexer struct {
	s   string
	pos int
}

func newLexer(s string) *lexer {
	return &lexer{s: s}
}

// next scans the next token. Errors are reported through panics caught by
// Parse.
func (l *lexer) next() token {
	for l.pos < len(l.s) {
		r, size := utf8.DecodeRuneInString(l.s[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.s) {
		return token{kind: tokEOF, pos: l.pos}
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.s[l.pos:])
	switch {
	case r == '.' || isDigit(r):
		return l.number()
	case r == 'π':
		l.pos += size
		return token{kind: tokConst, pos: start, text: "π", num: constants["π"]}
	case r == '√':
		l.pos += size
		return token{kind: tokFunc, pos: start, text: "√"}
	case r == '(':
		l.pos += size
		return token{kind: tokLParen, pos: start, text: "("}
	case r == ')':
		l.pos += size
		return token{kind: tokRParen, pos: start, text: ")"}
	case unicode.IsLetter(r):
		return l.ident()
	}

	l.pos += size
	switch r {
	case '+', '-', '*', '/', '^':
		return token{kind: tokOp, pos: start, op: r}
	case '×', '·':
		return token{kind: tokOp, pos: start, op: '*'}
	case '÷':
		return token{kind: tokOp, pos: start, op: '/'}
	case '−':
		return token{kind: tokOp, pos: start, op: '-'}
	}
	panic(&SyntaxError{Pos: start, Msg: "unexpected character " + strconv.QuoteRune(r)})
}

func (l *lexer) number() token {
	start := l.pos
	dot := false
	for l.pos < len(l.s) {
		c := l.s[l.pos]
		if c == '.' {
			if dot {
				panic(&SyntaxError{Pos: l.pos, Msg: "second decimal point in number"})
			}
			dot = true
		} else if !isDigit(rune(c)) {
			break
		}
		l.pos++
	}
	l.exponent()
	text := l.s[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		panic(&SyntaxError{Pos: start, Msg: "bad number " + strconv.Quote(text)})
	}
	return token{kind: tokNumber, pos: start, text: text, num: v}
}

// exponent consumes the exponent part of a number literal. An 'e' that is
// not followed by digits is the constant e: 2e is 2·e, 2e5 is 200000.
func (l *lexer) exponent() {
	i := l.pos
	if i >= len(l.s) || (l.s[i] != 'e' && l.s[i] != 'E') {
		return
	}
	i++
	if i < len(l.s) && (l.s[i] == '+' || l.s[i] == '-') {
		i++
	}
	if i >= len(l.s) || !isDigit(rune(l.s[i])) {
		return
	}
	for i < len(l.s) && isDigit(rune(l.s[i])) {
		i++
	}
	l.pos = i
}

func (l *lexer) ident() token {
	start := l.pos
	rest := strings.ToLower(l.s[l.pos:])
	for _, name := range names {
		if !strings.HasPrefix(rest, name) {
			continue
		}
		l.pos += len(name)
		switch {
		case name == "x":
			return token{kind: tokVar, pos: start, text: name}
		case functions[name] != nil:
			return token{kind: tokFunc, pos: start, text: name}
		default:
			return token{kind: tokConst, pos: start, text: name, num: constants[name]}
		}
	}
	end := l.pos
	for end < len(l.s) {
		r, size := utf8.DecodeRuneInString(l.s[end:])
		if !unicode.IsLetter(r) {
			break
		}
		end += size
	}
	panic(&SyntaxError{Pos: start, Msg: "unknown name " + strconv.Quote(l.s[start:end])})
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
