// Package lexer turns source bytes into a stream of tokens. The Lexer is a
// pure function of Reader state: it never backtracks more than one
// character (only to disambiguate "=" from "==") and reports invalid bytes
// as INVALID tokens rather than to any compilation context — surfacing
// those as errors is the parser's job.
package lexer

import (
	"io"
	"strconv"

	"github.com/vasyharan/dravid/internal/token"
)

// Lexer produces tokens on demand from a Reader.
type Lexer struct {
	r *Reader
}

// New creates a Lexer reading from in.
func New(in io.Reader) *Lexer {
	return &Lexer{r: NewReader(in)}
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// Lex returns the next token, skipping leading horizontal whitespace.
func (l *Lexer) Lex() token.Token {
	for l.r.requireLine() {
		cc := l.r.read()

		switch {
		case cc == ' ' || cc == '\t' || cc == '\r':
			l.r.advance()
			continue
		case isAlpha(cc):
			return l.gatherIdentifier()
		case isDigit(cc):
			return l.gatherInteger()
		case isOperatorByte(cc):
			return l.lexOperator()
		default:
			return token.MakeInvalid(l.r.loc())
		}
	}

	return token.MakeEOF(l.r.loc())
}

func isOperatorByte(cc byte) bool {
	switch cc {
	case '+', '-', '*', '/', '(', ')', '{', '}', '[', ']', ':', ';', ',', '=':
		return true
	default:
		return false
	}
}

func (l *Lexer) lexOperator() token.Token {
	loc := l.r.loc()
	cc := l.r.read()
	l.r.advance()

	switch cc {
	case '(':
		return token.MakeOperator(token.LParen, loc)
	case ')':
		return token.MakeOperator(token.RParen, loc)
	case '[':
		return token.MakeOperator(token.LSquare, loc)
	case ']':
		return token.MakeOperator(token.RSquare, loc)
	case '{':
		return token.MakeOperator(token.LCurly, loc)
	case '}':
		return token.MakeOperator(token.RCurly, loc)
	case ',':
		return token.MakeOperator(token.Comma, loc)
	case ':':
		return token.MakeOperator(token.Colon, loc)
	case ';':
		return token.MakeOperator(token.Semicolon, loc)
	case '+':
		return token.MakeOperator(token.Plus, loc)
	case '-':
		return token.MakeOperator(token.Dash, loc)
	case '*':
		return token.MakeOperator(token.Star, loc)
	case '/':
		return token.MakeOperator(token.Slash, loc)
	case '=':
		if l.r.good() && l.r.read() == '=' {
			l.r.advance()
			return token.MakeOperator(token.Compare, loc)
		}
		return token.MakeOperator(token.Equal, loc)
	default:
		return token.MakeInvalid(loc)
	}
}

// gatherIdentifier implements `[A-Za-z_][A-Za-z0-9_]*`, maximally munched,
// then reclassifies the gathered text as a keyword when it matches one.
func (l *Lexer) gatherIdentifier() token.Token {
	loc := l.r.loc()
	var buf []byte

	for l.r.good() {
		cc := l.r.read()
		if cc >= 0x80 {
			return token.MakeInvalid(loc)
		}
		if !isAlnum(cc) {
			break
		}
		buf = append(buf, cc)
		l.r.advance()
	}

	text := string(buf)
	if kw, ok := token.LookupKeyword(text); ok {
		return token.MakeKeyword(kw, loc)
	}
	return token.MakeIdentifier(text, loc)
}

// gatherInteger implements `[0-9]+` and parses the result as a base-10
// signed 64-bit integer.
func (l *Lexer) gatherInteger() token.Token {
	loc := l.r.loc()
	var buf []byte

	for l.r.good() {
		cc := l.r.read()
		if cc >= 0x80 {
			return token.MakeInvalid(loc)
		}
		if !isDigit(cc) {
			break
		}
		buf = append(buf, cc)
		l.r.advance()
	}

	value, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return token.MakeInvalid(loc)
	}
	return token.MakeInteger(value, loc)
}
