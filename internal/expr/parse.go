package expr

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every error returned from Parse.
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes where parsing failed.
type SyntaxError struct {
	Pos int // byte offset in the input
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func recoverer(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(*SyntaxError); ok {
		*errp = err
		return
	}
	panic(r)
}

// parser is a recursive-descent parser. Precedence from low to high:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary | primary-start unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | "x" | constant | function primary | "(" sum ")"
type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) throw(msg string) {
	panic(&SyntaxError{Pos: p.tok.pos, Msg: msg})
}

func (p *parser) isOp(ops ...rune) (rune, bool) {
	if p.tok.kind != tokOp {
		return 0, false
	}
	for _, op := range ops {
		if p.tok.op == op {
			return op, true
		}
	}
	return 0, false
}

func (p *parser) sum() node {
	n := p.product()
	for {
		op, ok := p.isOp('+', '-')
		if !ok {
			return n
		}
		p.advance()
		n = binary{op: op, left: n, right: p.product()}
	}
}

func (p *parser) product() node {
	n := p.unary()
	for {
		if op, ok := p.isOp('*', '/'); ok {
			p.advance()
			n = binary{op: op, left: n, right: p.unary()}
			continue
		}
		if p.startsPrimary() {
			n = binary{op: '*', left: n, right: p.unary()}
			continue
		}
		return n
	}
}

func (p *parser) startsPrimary() bool {
	switch p.tok.kind {
	case tokNumber, tokVar, tokConst, tokFunc, tokLParen:
		return true
	}
	return false
}

func (p *parser) unary() node {
	if op, ok := p.isOp('+', '-'); ok {
		p.advance()
		arg := p.unary()
		if op == '-' {
			return negation{arg: arg}
		}
		return arg
	}
	return p.power()
}

func (p *parser) power() node {
	base := p.primary()
	if _, ok := p.isOp('^'); ok {
		p.advance()
		return binary{op: '^', left: base, right: p.unary()}
	}
	return base
}

func (p *parser) primary() node {
	tok := p.tok
	switch tok.kind {
	case tokNumber, tokConst:
		p.advance()
		return number(tok.num)
	case tokVar:
		p.advance()
		return variable{}
	case tokFunc:
		p.advance()
		if !p.startsPrimary() {
			p.throw(tok.text + " needs an argument")
		}
		return call{fn: functions[tok.text], arg: p.primary()}
	case tokLParen:
		p.advance()
		n := p.sum()
		if p.tok.kind != tokRParen {
			p.throw("missing )")
		}
		p.advance()
		return n
	case tokEOF:
		p.throw("unexpected end of input")
	}
	p.throw("unexpected " + tok.String())
	return nil
}
