// Copyright 2026 The nabla Authors
// This file is part of the nabla toolchain.
//
// The nabla toolchain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The nabla toolchain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the nabla toolchain. If not, see <http://www.gnu.org/licenses/>.

// Package parser implements nabla's recursive-descent parser.
//
// Unlike an error-recovering parser that collects diagnostics and resumes
// at the next statement boundary, nabla's grammar calls for fatal,
// non-recovering errors: the first malformed token
// aborts the whole file (see internal/diagnostics.FatalError). Recursive
// descent with dozens of call sites that each need to abort is exactly the
// case Go's panic/recover pair exists for; Parse is the only recover point,
// so every helper below simply panics with a *diagnostics.FatalError and
// never returns an error value of its own.
package parser

import (
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/token"
)

// Parser walks an immutable, already-scanned token buffer. Whitespace,
// comments, and incomplete tokens must already be filtered out by the
// caller (internal/lexer.Tokenize does this).
type Parser struct {
	tokens []token.Token
	offset int
}

// New creates a Parser over tokens. The caller retains ownership of tokens;
// nodes produced by this Parser borrow their Token fields from it.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Eof reports whether every token has been consumed.
func (p *Parser) Eof() bool { return p.offset >= len(p.tokens) }

func (p *Parser) at(offset int) token.Token {
	o := p.offset + offset
	if o >= len(p.tokens) {
		return token.Token{}
	}
	return p.tokens[o]
}

func (p *Parser) next() { p.offset++ }

func throwError(what string, tok token.Token) {
	panic(diagnostics.NewFatal(what, tok))
}

func missingROperand(op token.Token) { throwError("missing right operand", op) }

// Parse parses and returns exactly one top-level node, recovering any
// *diagnostics.FatalError panic raised while doing so into a returned error.
// Call Eof first; calling Parse at end of input is a programmer error.
func (p *Parser) Parse() (node ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*diagnostics.FatalError)
			if !ok {
				panic(r)
			}
			node, err = nil, fe
		}
	}()
	return p.parse(), nil
}

func (p *Parser) parse() ast.Node {
	first := p.at(0)
	switch {
	case first.IsText("let"):
		p.next()
		return p.parseLetStmt(first)
	case first.IsText("fn"):
		p.next()
		return p.parseFnDef(first)
	case first.IsText("struct"):
		p.next()
		return p.parseStructDecl(first)
	case first.IsText("return"):
		p.next()
		return p.parseReturnStmt(first)
	case first.IsText("print"):
		p.next()
		return p.parsePrintStmt(first)
	}
	throwError("unexpected token", first)
	return nil
}

func (p *Parser) terminateStmt() {
	if p.Eof() {
		return
	}
	tok := p.at(0)
	if !tok.Is(';') {
		throwError("expected ';' here", tok)
	}
	p.next()
}

func (p *Parser) parseLetStmt(letTok token.Token) ast.Node {
	if p.Eof() {
		throwError("missing variable name", letTok)
	}
	name := p.at(0)
	if name.Kind != token.Identifier {
		throwError("expected this to be a variable name", name)
	}
	p.next()

	equals := p.at(0)
	if !equals.Is('=') {
		throwError("expected '=' here", equals)
	}
	p.next()

	value := p.parseExpr()
	p.terminateStmt()

	return &ast.Decl{Name: name, Value: value, Immutable: true}
}

func (p *Parser) parsePrintStmt(printTok token.Token) ast.Node {
	args := p.parseArgList(printTok)
	p.terminateStmt()
	return &ast.Print{Keyword: printTok, Args: args}
}

func (p *Parser) parseArgList(funcName token.Token) []ast.Expr {
	if p.Eof() {
		throwError("missing argument list", funcName)
	}
	lParen := p.at(0)
	if !lParen.Is('(') {
		throwError("expected the start of an argument list here", lParen)
	}
	p.next()

	var args []ast.Expr
	for !p.Eof() && !p.at(0).Is(')') {
		args = append(args, p.parseExpr())

		if p.Eof() || p.at(0).Is(')') {
			break
		}
		comma := p.at(0)
		if !comma.Is(',') {
			throwError("expected a ',' or ')' here", comma)
		}
		p.next()
	}

	if p.Eof() || !p.at(0).Is(')') {
		throwError("missing ')'", lParen)
	}
	p.next()

	return args
}

func (p *Parser) parseReturnStmt(returnTok token.Token) ast.Node {
	value := p.parseExpr()
	p.terminateStmt()
	return &ast.Return{Keyword: returnTok, Value: value}
}

func (p *Parser) parseFnDef(fnTok token.Token) ast.Node {
	if p.Eof() {
		throwError("expected function name after this", fnTok)
	}
	name := p.at(0)
	if name.Kind != token.Identifier {
		throwError("expected this to be a function name", name)
	}
	p.next()

	params := p.parseParamList(name)
	body := p.parseFnBody(name)

	return &ast.Func{Name: name, Params: params, Body: body}
}

func (p *Parser) parseFnBody(name token.Token) []ast.Node {
	if p.Eof() {
		throwError("missing function body", name)
	}
	lBracket := p.at(0)
	if !lBracket.Is('{') {
		throwError("expected '{' here", lBracket)
	}
	p.next()

	var body []ast.Node
	for !p.Eof() {
		if p.at(0).Is('}') {
			break
		}
		body = append(body, p.parse())
	}

	if p.Eof() {
		throwError("missing '}'", lBracket)
	}
	rBracket := p.at(0)
	if !rBracket.Is('}') {
		throwError("expected '}' here", rBracket)
	}
	p.next()
	return body
}

func (p *Parser) parseParamList(anchor token.Token) []*ast.Decl {
	if p.Eof() {
		throwError("expected parameter list after this", anchor)
	}
	lParen := p.at(0)
	if !lParen.Is('(') {
		throwError("expected a '(' here", lParen)
	}
	p.next()

	var params []*ast.Decl
	for !p.Eof() {
		if p.at(0).Is(')') {
			break
		}

		param, ok := p.parseParamDecl()
		if !ok {
			break
		}
		params = append(params, param)

		if p.Eof() || p.at(0).Is(')') {
			break
		}
		comma := p.at(0)
		if !comma.Is(',') {
			throwError("expected either a ',' or ')' here", comma)
		}
		p.next()
	}

	if p.Eof() || !p.at(0).Is(')') {
		throwError("missing ')'", lParen)
	}
	p.next()

	return params
}

func (p *Parser) parseParamDecl() (*ast.Decl, bool) {
	name := p.at(0)
	if name.Kind != token.Identifier {
		return nil, false
	}
	p.next()

	colon := p.at(0)
	if !colon.Is(':') {
		return &ast.Decl{Name: name, Immutable: true}, true
	}
	p.next()

	typ := p.parseType()
	if typ == nil {
		throwError("expected type after this", colon)
	}

	var defaultValue ast.Expr
	if !p.Eof() && p.at(0).Is('=') {
		p.next()
		defaultValue = p.parseExpr()
	}

	return &ast.Decl{Name: name, Value: defaultValue, Immutable: true, Type: typ}, true
}

func (p *Parser) parseType() *ast.TypeInstance {
	if p.Eof() {
		return nil
	}
	name := p.at(0)
	if name.Kind != token.Identifier {
		throwError("expected a type name here", name)
	}
	p.next()

	var args []ast.Expr
	if !p.Eof() && p.at(0).Is('<') {
		lBracket := p.at(0)
		p.next()

		for !p.Eof() {
			if p.at(0).Is('>') {
				break
			}
			args = append(args, p.parseExpr())

			if p.Eof() || p.at(0).Is('>') {
				break
			}
			comma := p.at(0)
			if !comma.Is(',') {
				throwError("expected either ',' or '>' here", comma)
			}
			p.next()
		}

		if p.Eof() {
			throwError("missing '>'", lBracket)
		}
		rBracket := p.at(0)
		if !rBracket.Is('>') {
			throwError("expected '>' here", rBracket)
		}
		p.next()
	}

	return &ast.TypeInstance{Name: name, Args: args}
}

func (p *Parser) parseStructDecl(structTok token.Token) ast.Node {
	if p.Eof() {
		throwError("expected name after this", structTok)
	}
	name := p.at(0)
	if name.Kind != token.Identifier {
		throwError("expected this to be an struct name", name)
	}
	p.next()

	if p.Eof() {
		throwError("expected struct body after this", name)
	}

	lBracket := p.at(0)
	if !lBracket.Is('{') {
		throwError("expected '{' here", lBracket)
	}
	p.next()

	var fields []*ast.Decl
	for !p.Eof() {
		if p.at(0).Is('}') {
			break
		}
		fieldName := p.at(0)
		if fieldName.Kind != token.Identifier {
			throwError("expected field name or '}' here", fieldName)
		}
		p.next()

		if p.Eof() || !p.at(0).Is(':') {
			throwError("expected ':' after field name", fieldName)
		}
		colon := p.at(0)
		p.next()

		typ := p.parseType()
		if typ == nil {
			throwError("expected type after this", colon)
		}

		fields = append(fields, &ast.Decl{Name: fieldName, Immutable: false, Type: typ})

		if p.Eof() || p.at(0).Is('}') {
			break
		}
		comma := p.at(0)
		if !comma.Is(',') {
			throwError("expected either ',' or '}' here", comma)
		}
		p.next()
	}

	if p.Eof() {
		throwError("missing '}'", lBracket)
	}
	rBracket := p.at(0)
	if !rBracket.Is('}') {
		throwError("expected '}' here", rBracket)
	}
	p.next()

	return &ast.Struct{Name: name, Fields: fields}
}

func (p *Parser) parseExpr() ast.Expr { return p.parseAddSubExpr() }

func (p *Parser) parseAddSubExpr() ast.Expr {
	lhs := p.parseMulDivExpr()
	for !p.Eof() && (p.at(0).Is('+') || p.at(0).Is('-')) {
		op := p.at(0)
		p.next()
		if p.Eof() {
			missingROperand(op)
		}
		rhs := p.parseMulDivExpr()
		lhs = &ast.Add{Left: lhs, Right: rhs, Op: op}
	}
	return lhs
}

func (p *Parser) parseMulDivExpr() ast.Expr {
	lhs := p.parsePrimaryExpr()
	for !p.Eof() && (p.at(0).Is('*') || p.at(0).Is('/')) {
		op := p.at(0)
		p.next()
		if p.Eof() {
			missingROperand(op)
		}
		rhs := p.parsePrimaryExpr()
		lhs = &ast.Mul{Left: lhs, Right: rhs, Op: op}
	}
	return lhs
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	first := p.at(0)
	switch first.Kind {
	case token.StringLiteral:
		p.next()
		return &ast.StringLiteral{Token: first}
	case token.IntLiteral:
		p.next()
		return &ast.IntLiteral{Token: first}
	case token.FloatLiteral:
		p.next()
		return &ast.FloatLiteral{Token: first}
	case token.Identifier:
		p.next()
		if !p.Eof() && p.at(0).Is('(') {
			lParen := p.at(0)
			p.next()
			return p.parseCallExpr(first, lParen)
		}
		return &ast.Var{Name: first}
	}
	throwError("expected an expression here", first)
	return nil
}

func (p *Parser) parseCallExpr(name, lParen token.Token) ast.Expr {
	var args []ast.Arg
	for !p.Eof() {
		if p.at(0).Is(')') {
			break
		}
		value := p.parseExpr()
		args = append(args, ast.Arg{Expr: value})

		if p.Eof() {
			break
		}
		comma := p.at(0)
		if !comma.Is(',') {
			break
		}
		p.next()
	}

	if p.Eof() {
		throwError("missing ')'", lParen)
	}
	rParen := p.at(0)
	if !rParen.Is(')') {
		throwError("expected ')' here", rParen)
	}
	p.next()

	return &ast.Call{Name: name, Args: args}
}

// ParseAll consumes the whole token buffer, returning the tree or the first
// fatal diagnostic encountered. This is the entry point compile-unit
// drivers use instead of looping over Parser.Parse themselves.
func ParseAll(tokens []token.Token) (*ast.Tree, error) {
	p := New(tokens)
	var nodes []ast.Node
	for !p.Eof() {
		node, err := p.Parse()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return &ast.Tree{Nodes: nodes}, nil
}
