// parser.go implements the recursive-descent parser and its symbol
// table, following the grammar and contracts laid out for this
// language: left-associative binary operators, `>`/`>=` desugared to
// `<`/`<=` by swapping operands, single-sign unary desugaring, and a
// two-token lookahead for assignment detection that copies the token
// stream rather than pushing tokens back onto it.

package parser

import (
	"os"

	"corvid/ast"
	"corvid/internal/diag"
	"corvid/lexer"
	"corvid/token"
)

// Parser holds the mutable state of a single parse: the current
// position in the token stream, and the symbol table mapping each
// local's name to its stack offset. The symbol table lives only for
// the duration of parsing; once parsing finishes, only the offsets
// embedded in AST nodes survive.
type Parser struct {
	stream     lexer.Stream
	locals     map[string]int
	nextOffset int
}

func newParser(src string) *Parser {
	return &Parser{stream: lexer.New(src), locals: map[string]int{}}
}

// offsetOf returns the stack offset for name, assigning one on first
// sight (0, 8, 16, ... in order of first appearance) and reusing it on
// every later sight.
func (p *Parser) offsetOf(name string) int {
	if off, ok := p.locals[name]; ok {
		return off
	}
	off := p.nextOffset
	p.locals[name] = off
	p.nextOffset += 8
	return off
}

// peek returns the next token without consuming it, by copying the
// stream value and calling Next on the copy. This is the cheap-peek
// contract the stream's value semantics exist to support.
func (p *Parser) peek() token.Token {
	cp := p.stream
	tok, _, ok := cp.Next()
	if !ok {
		return token.New(token.EOF, p.stream.Position())
	}
	return tok
}

// next consumes and returns the next token, or a synthetic EOF token
// at end of input (repeated calls at EOF keep returning EOF rather
// than panicking, so callers can peek past the end freely).
func (p *Parser) next() token.Token {
	tok, rest, ok := p.stream.Next()
	if !ok {
		return token.New(token.EOF, p.stream.Position())
	}
	p.stream = rest
	return tok
}

// expect consumes the next token, failing fatally if it is not of
// type want.
func (p *Parser) expect(want token.TokenType) token.Token {
	tok := p.next()
	if tok.Type != want {
		diag.Abort(fail(tok.Pos, "expected %s but found %s", want, describe(tok)))
	}
	return tok
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "EOF"
	}
	return tok.Lexeme()
}

// Program is a complete parse: its statements plus how many distinct
// locals the symbol table assigned offsets to, which the code
// generator needs to size the subroutine's local-variable area.
type Program struct {
	Stmts      []ast.Stmt
	LocalCount int
}

// TryParse parses src into a Program, returning the first
// SyntaxError or LexError encountered instead of terminating the
// process. Parse, below, is the fatal convenience most callers want.
func TryParse(src string) (prog Program, err error) {
	defer diag.Recover(&err)
	p := newParser(src)
	for p.peek().Type != token.EOF {
		prog.Stmts = append(prog.Stmts, p.parseStmt())
	}
	prog.LocalCount = len(p.locals)
	return prog, nil
}

// Parse parses src, printing a caret diagnostic to stderr and exiting
// the process with status 1 on any lexical or syntactic failure —
// the error-handling policy this whole compiler follows.
func Parse(src string) Program {
	prog, err := TryParse(src)
	if err != nil {
		diag.Fatal(os.Stderr, err)
	}
	return prog
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Type {
	case token.Return:
		p.next()
		expr := p.parseExpr()
		p.expect(token.Semi)
		return ast.Return{Expression: expr}

	case token.If:
		p.next()
		p.expect(token.ParenL)
		cond := p.parseExpr()
		p.expect(token.ParenR)
		then := p.parseStmt()
		var els ast.Stmt
		if p.peek().Type == token.Else {
			p.next()
			els = p.parseStmt()
		}
		return ast.If{Cond: cond, Then: then, Else: els}

	case token.While:
		p.next()
		p.expect(token.ParenL)
		cond := p.parseExpr()
		p.expect(token.ParenR)
		body := p.parseStmt()
		return ast.While{Cond: cond, Body: body}

	case token.BraceL:
		p.next()
		var stmts []ast.Stmt
		for p.peek().Type != token.BraceR {
			if p.peek().Type == token.EOF {
				diag.Abort(fail(p.peek().Pos, "expected } but found EOF"))
			}
			stmts = append(stmts, p.parseStmt())
		}
		p.expect(token.BraceR)
		return ast.Block{Stmts: stmts}

	default:
		return p.parseAssignOrExprStmt()
	}
}

// parseAssignOrExprStmt implements `assign ";"` from the grammar. It
// uses two-token lookahead — copy the stream, try to read `ident "="`
// off the copy — and only commits (advances the real stream) once
// that shape is confirmed. On any mismatch it falls through to a
// plain expression statement, reparsing from the original,
// uncommitted stream.
func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	lookahead := p.stream
	first, rest1, ok1 := lookahead.Next()
	if ok1 && first.Type == token.Ident {
		second, rest2, ok2 := rest1.Next()
		if ok2 && second.Type == token.Assign {
			p.stream = rest2
			offset := p.offsetOf(first.Name)
			rhs := p.parseExpr()
			p.expect(token.Semi)
			return ast.Assign{LhsOffset: offset, Rhs: rhs}
		}
	}

	expr := p.parseExpr()
	p.expect(token.Semi)
	return ast.ExprStmt{Expression: expr}
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseEquality()
}

func (p *Parser) parseEquality() ast.Expr {
	lhs := p.parseRelational()
	for {
		switch p.peek().Type {
		case token.EqEq:
			p.next()
			lhs = ast.BinOp{Op: ast.Eq, Lhs: lhs, Rhs: p.parseRelational()}
		case token.Neq:
			p.next()
			lhs = ast.BinOp{Op: ast.Neq, Lhs: lhs, Rhs: p.parseRelational()}
		default:
			return lhs
		}
	}
}

// parseRelational folds `<`/`<=` directly and desugars `>`/`>=` by
// swapping the already-parsed left side and the freshly parsed right
// side into an equivalent Lt/Lte node — `a > b` becomes the same AST
// as `b < a`, so `BinOpKind` never needs a Gt/Gte case at all.
func (p *Parser) parseRelational() ast.Expr {
	lhs := p.parseAdd()
	for {
		switch p.peek().Type {
		case token.Lt:
			p.next()
			lhs = ast.BinOp{Op: ast.Lt, Lhs: lhs, Rhs: p.parseAdd()}
		case token.Lte:
			p.next()
			lhs = ast.BinOp{Op: ast.Lte, Lhs: lhs, Rhs: p.parseAdd()}
		case token.Gt:
			p.next()
			rhs := p.parseAdd()
			lhs = ast.BinOp{Op: ast.Lt, Lhs: rhs, Rhs: lhs}
		case token.Gte:
			p.next()
			rhs := p.parseAdd()
			lhs = ast.BinOp{Op: ast.Lte, Lhs: rhs, Rhs: lhs}
		default:
			return lhs
		}
	}
}

func (p *Parser) parseAdd() ast.Expr {
	lhs := p.parseMul()
	for {
		switch p.peek().Type {
		case token.Add:
			p.next()
			lhs = ast.BinOp{Op: ast.Add, Lhs: lhs, Rhs: p.parseMul()}
		case token.Sub:
			p.next()
			lhs = ast.BinOp{Op: ast.Sub, Lhs: lhs, Rhs: p.parseMul()}
		default:
			return lhs
		}
	}
}

func (p *Parser) parseMul() ast.Expr {
	lhs := p.parseUnary()
	for {
		switch p.peek().Type {
		case token.Mul:
			p.next()
			lhs = ast.BinOp{Op: ast.Mul, Lhs: lhs, Rhs: p.parseUnary()}
		case token.Div:
			p.next()
			lhs = ast.BinOp{Op: ast.Div, Lhs: lhs, Rhs: p.parseUnary()}
		default:
			return lhs
		}
	}
}

// parseUnary accepts at most one leading sign, per the grammar's
// `("+" | "-")? primary` — not a chain of signs. `+x` becomes `0 + x`;
// `-x` becomes `0 - x`.
func (p *Parser) parseUnary() ast.Expr {
	switch p.peek().Type {
	case token.Add:
		p.next()
		return ast.BinOp{Op: ast.Add, Lhs: ast.Num{Value: 0}, Rhs: p.parsePrimary()}
	case token.Sub:
		p.next()
		return ast.BinOp{Op: ast.Sub, Lhs: ast.Num{Value: 0}, Rhs: p.parsePrimary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case token.Num:
		p.next()
		return ast.Num{Value: tok.Value}

	case token.Ident:
		p.next()
		if p.peek().Type == token.ParenL {
			return p.parseCall(tok)
		}
		return ast.Ident{Name: tok.Name, Offset: p.offsetOf(tok.Name)}

	case token.ParenL:
		p.next()
		inner := p.parseExpr()
		p.expect(token.ParenR)
		return ast.Paren{Inner: inner}

	default:
		diag.Abort(fail(tok.Pos, "expected number, ident or ("))
		panic("unreachable")
	}
}

// parseCall parses the "(" (expr ("," expr)*)? ")" argument list
// following an identifier already consumed as callee. The argument
// count is not validated here — exceeding the register-passing limit
// is the code generator's ArgError to raise, not a syntax error.
func (p *Parser) parseCall(callee token.Token) ast.Expr {
	p.next() // consume "("
	var args []ast.Expr
	if p.peek().Type != token.ParenR {
		args = append(args, p.parseExpr())
		for p.peek().Type == token.Comma {
			p.next()
			args = append(args, p.parseExpr())
		}
	}
	p.expect(token.ParenR)
	return ast.Call{Name: callee.Name, Args: args}
}
