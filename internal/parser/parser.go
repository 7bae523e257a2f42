// Package parser implements the recursive-descent, one-token-lookahead
// parser described by spec §4.3's EBNF, building ast.Expression nodes and
// pushing top-level function declarations into a compiler.Context.
package parser

import (
	"github.com/vasyharan/dravid/internal/ast"
	"github.com/vasyharan/dravid/internal/compiler"
	"github.com/vasyharan/dravid/internal/lexer"
	"github.com/vasyharan/dravid/internal/token"
)

// precedence levels, ascending, matching spec's table: NORMAL < ADDOP <
// MULOP. All operators are left-associative.
const (
	precInvalid = -1
	precNormal  = 0
	precAddop   = 1
	precMulop   = 2
)

// Parser consumes tokens from a lexer one at a time, with a single token
// of lookahead, and reports errors into a compiler.Context.
type Parser struct {
	ctx  *compiler.Context
	lex  *lexer.Lexer
	curr token.Token
}

// New creates a Parser reading from lex and reporting into ctx.
func New(lex *lexer.Lexer, ctx *compiler.Context) *Parser {
	p := &Parser{ctx: ctx, lex: lex}
	p.curr = lex.Lex()
	return p
}

func (p *Parser) advance() token.Token {
	tok := p.curr
	p.curr = p.lex.Lex()
	return tok
}

func (p *Parser) peek() token.Token { return p.curr }

func (p *Parser) errorf(tok token.Token, explanation string) {
	p.ctx.ReportError(compiler.UnexpectedToken(tok, explanation))
}

// Parse consumes the whole token stream, pushing every top-level function
// definition into the Context. A leading token that is not a keyword
// aborts parsing with an "unexpected token" error, matching spec §4.3's
// top-level recovery policy.
func Parse(lex *lexer.Lexer, ctx *compiler.Context) {
	p := New(lex, ctx)
	for !p.peek().IsEOF() {
		if !p.peek().IsKeyword() {
			p.errorf(p.peek(), "")
			return
		}

		switch p.peek().Keyword {
		case token.Fn:
			if fn := p.parseFunction(); fn != nil {
				ctx.PushNode(fn)
			}
		default:
			p.errorf(p.peek(), "expected top-level declaration")
			return
		}
	}
}

// function = "fn" IDENT "(" params? ")" "=" block
func (p *Parser) parseFunction() *ast.Function {
	loc := p.peek().Loc
	tok := p.advance()
	if !tok.IsKeywordOf(token.Fn) {
		p.errorf(tok, "Expected `fn'")
		return nil
	}

	proto := p.parsePrototype()
	if proto == nil {
		return nil
	}

	body := p.parseFunctionBody()
	if len(body) == 0 {
		return nil
	}

	return &ast.Function{Prototype: proto, Body: body, Location: loc}
}

func (p *Parser) parsePrototype() *ast.Prototype {
	loc := p.peek().Loc
	tok := p.advance()
	if !tok.IsIdentifier() {
		p.errorf(tok, "Expected fn name")
		return nil
	}
	name := tok.Identifier

	params := p.parseParameters()
	return &ast.Prototype{Name: name, Params: params, Location: loc}
}

// params = IDENT ("," IDENT)*
func (p *Parser) parseParameters() []*ast.Parameter {
	var params []*ast.Parameter

	tok := p.advance()
	if !tok.IsOperatorOf(token.LParen) {
		p.errorf(tok, "Expected params '('")
		return params
	}

	for tok = p.advance(); tok.IsIdentifier(); tok = p.advance() {
		params = append(params, &ast.Parameter{Constant: true, Name: tok.Identifier, Location: tok.Loc})

		tok = p.advance()
		if !tok.IsOperatorOf(token.Comma) {
			break
		}
	}

	if !tok.IsOperatorOf(token.RParen) {
		p.errorf(tok, "Expected params ')'")
	}
	return params
}

func (p *Parser) parseFunctionBody() []ast.Expression {
	tok := p.advance()
	if !tok.IsOperatorOf(token.Equal) {
		p.errorf(tok, "Expected fn '='")
		return nil
	}

	var body []ast.Expression
	p.gatherBlock(&body)
	return body
}

// block = "{" stmt* "}" | stmt
func (p *Parser) gatherBlock(body *[]ast.Expression) {
	if !p.peek().IsOperatorOf(token.LCurly) {
		if expr := p.parseStmt(); expr != nil {
			*body = append(*body, expr)
		}
		return
	}
	p.advance() // eat '{'

	for {
		expr := p.parseStmt()
		if expr == nil {
			break
		}
		*body = append(*body, expr)

		if p.peek().IsOperatorOf(token.RCurly) {
			break
		}
	}

	tok := p.advance()
	if !tok.IsOperatorOf(token.RCurly) {
		p.errorf(tok, "Expected fn '}'")
	}
}

// stmt = decl | if-expr | expr
func (p *Parser) parseStmt() ast.Expression {
	if p.peek().IsKeyword() {
		switch p.peek().Keyword {
		case token.Val:
			return p.parseDecl()
		case token.If:
			return p.parseIf()
		}
	}
	return p.parseExpr()
}

// decl = "val" IDENT ("," IDENT)* "=" expr ("," expr)*
func (p *Parser) parseDecl() ast.Expression {
	loc := p.peek().Loc
	tok := p.advance()
	if !tok.IsKeywordOf(token.Val) {
		p.errorf(tok, "Expected `val'")
		return nil
	}

	var names []string
	for tok = p.advance(); tok.IsIdentifier(); tok = p.advance() {
		names = append(names, tok.Identifier)
		if !p.peek().IsOperatorOf(token.Comma) {
			break
		}
		p.advance() // eat ','
	}

	tok = p.advance()
	if !tok.IsOperatorOf(token.Equal) {
		p.errorf(tok, "Expected `='")
		return nil
	}

	var values []ast.Expression
	for range names {
		values = append(values, p.parseExpr())
		if !p.peek().IsOperatorOf(token.Comma) {
			break
		}
		p.advance() // eat ','
	}

	if len(names) != len(values) {
		p.errorf(tok, "num of declarations does not match initialization")
		return nil
	}

	if len(names) == 1 {
		return &ast.Value{Constant: true, Name: names[0], Initializer: values[0], Location: loc}
	}

	left := make([]ast.Expression, len(names))
	for i, n := range names {
		left[i] = &ast.Identifier{Name: n, Location: loc}
	}
	p.ctx.ReportError(compiler.Unknown("NOT IMPLEMENTED: tuple assignment", ""))
	return &ast.TupleAssignment{Left: left, Right: values, Location: loc}
}

// if-expr = ("if" | "elif") expr block ("else" block | elif-chain)?
func (p *Parser) parseIf() ast.Expression {
	loc := p.peek().Loc
	tok := p.advance()
	if !tok.IsKeywordOf(token.If) && !tok.IsKeywordOf(token.Elif) {
		p.errorf(tok, "Expected `if' or `elif'")
		return nil
	}

	cond := p.parseExpr()

	var thn, els []ast.Expression
	p.gatherBlock(&thn)

	if p.peek().IsKeywordOf(token.Else) {
		p.advance()
		p.gatherBlock(&els)
	} else if p.peek().IsKeywordOf(token.Elif) {
		if expr := p.parseIf(); expr != nil {
			els = append(els, expr)
		}
	}

	return &ast.If{Cond: cond, Then: thn, Else: els, Location: loc}
}

// expr = primary (binop primary)*
func (p *Parser) parseExpr() ast.Expression {
	lhs := p.parsePrimary()
	if lhs == nil {
		return nil
	}
	return p.parseBinOpRHS(precNormal, lhs)
}

// primary = INT | IDENT | IDENT "(" args? ")" | "(" expr ")"
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case token.Identifier:
		p.advance()
		if p.peek().IsOperatorOf(token.LParen) {
			return p.parseCall(tok.Identifier, tok.Loc)
		}
		return &ast.Identifier{Name: tok.Identifier, Location: tok.Loc}
	case token.Integer:
		p.advance()
		return &ast.Integer{Value: tok.Integer, Location: tok.Loc}
	case token.Operator:
		if tok.Operator == token.LParen {
			return p.parseParenExpr()
		}
	}

	p.errorf(tok, "Expected an expression")
	return nil
}

// args = expr ("," expr)*
func (p *Parser) parseCall(name string, loc token.Location) ast.Expression {
	var args []ast.Expression

	tok := p.advance()
	if !tok.IsOperatorOf(token.LParen) {
		p.errorf(tok, "Expected call '('")
		return nil
	}

	for !p.peek().IsOperatorOf(token.RParen) {
		arg := p.parseExpr()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if !p.peek().IsOperatorOf(token.Comma) {
			break
		}
		p.advance()
	}

	tok = p.advance()
	if !tok.IsOperatorOf(token.RParen) {
		p.errorf(tok, "Expected call ')'")
		return nil
	}

	return &ast.Call{Name: name, Args: args, Location: loc}
}

func (p *Parser) parseParenExpr() ast.Expression {
	p.advance() // eat '('
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	tok := p.advance()
	if !tok.IsOperatorOf(token.RParen) {
		p.errorf(tok, "Expected ')'")
		return nil
	}
	return expr
}

func precedenceOf(tok token.Token) int {
	if !tok.IsOperator() {
		return precInvalid
	}
	switch tok.Operator {
	case token.Star, token.Slash:
		return precMulop
	case token.Plus, token.Dash:
		return precAddop
	default:
		return precInvalid
	}
}

func opByte(op token.OperatorKind) byte {
	switch op {
	case token.Plus:
		return '+'
	case token.Dash:
		return '-'
	case token.Star:
		return '*'
	case token.Slash:
		return '/'
	default:
		return 0
	}
}

// binop = "+" | "-" | "*" | "/" — precedence climbing: while the next
// token is a binary operator with precedence >= the caller's minimum,
// consume it, recursively parse the RHS at precedence+1, and fold.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expression) ast.Expression {
	for {
		tokPrec := precedenceOf(p.peek())
		if tokPrec < minPrec {
			return lhs
		}

		opTok := p.advance()
		rhs := p.parsePrimary()
		if rhs == nil {
			return nil
		}

		nextPrec := precedenceOf(p.peek())
		if tokPrec < nextPrec {
			rhs = p.parseBinOpRHS(tokPrec+1, rhs)
			if rhs == nil {
				return nil
			}
		}

		lhs = &ast.BinaryExpression{Op: opByte(opTok.Operator), Left: lhs, Right: rhs, Location: opTok.Loc}
	}
}
