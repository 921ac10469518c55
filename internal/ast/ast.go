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

// Package ast defines nabla's syntax tree: an immutable, pointer-identity
// keyed set of node types produced once by the parser and never mutated
// afterward (see internal/annotate, which keys its tables off these same
// pointers).
package ast

import "github.com/nabla-lang/nabla/internal/token"

// Expr is a marker interface implemented by every expression node.
// Concrete types are pointers so their identity is stable for the lifetime
// of the compilation unit, matching the annotator's map-by-pointer keying.
type Expr interface {
	exprNode()
	// Pos returns the token most representative of this expression's
	// source location, used when an annotation needs to anchor a
	// diagnostic that has no operator token of its own.
	Pos() token.Token
}

// Node is a marker interface implemented by every top-level statement.
type Node interface {
	stmtNode()
	Pos() token.Token
}

// Arg is one actual argument in a Call: an optional keyword name plus the
// expression.
type Arg struct {
	Name *token.Token // nil when positional
	Expr Expr
}

// TypeInstance is an unresolved type annotation as written in source: a
// name token plus optional generic argument expressions. Resolution lives
// in the annotation table, not here.
type TypeInstance struct {
	Name token.Token
	Args []Expr
}

// --- Expressions -----------------------------------------------------------

type IntLiteral struct{ Token token.Token }

type FloatLiteral struct{ Token token.Token }

type StringLiteral struct{ Token token.Token }

// Var references a binding by name; resolution to a Decl happens in the
// annotation table, never here.
type Var struct{ Name token.Token }

type Call struct {
	Name token.Token
	Args []Arg
}

// Add is a left-associative "+"/"-" expression. Op is the operator token
// itself (not text), so diagnostics can point at exactly the offending
// symbol.
type Add struct {
	Left, Right Expr
	Op          token.Token
}

// Mul is a left-associative "*"/"/" expression.
type Mul struct {
	Left, Right Expr
	Op          token.Token
}

func (*IntLiteral) exprNode()    {}
func (*FloatLiteral) exprNode()  {}
func (*StringLiteral) exprNode() {}
func (*Var) exprNode()           {}
func (*Call) exprNode()          {}
func (*Add) exprNode()           {}
func (*Mul) exprNode()           {}

func (e *IntLiteral) Pos() token.Token    { return e.Token }
func (e *FloatLiteral) Pos() token.Token  { return e.Token }
func (e *StringLiteral) Pos() token.Token { return e.Token }
func (e *Var) Pos() token.Token           { return e.Name }
func (e *Call) Pos() token.Token          { return e.Name }
func (e *Add) Pos() token.Token           { return e.Op }
func (e *Mul) Pos() token.Token           { return e.Op }

// --- Top-level nodes ---------------------------------------------------

// Print is a `print(...)` statement.
type Print struct {
	Keyword token.Token
	Args    []Expr
}

// Decl is a `let name = value;` binding, optionally typed.
type Decl struct {
	Name      token.Token
	Value     Expr // nil when the declaration has no initializer
	Immutable bool
	Type      *TypeInstance // nil when untyped
}

// Func is a `fn name(params) { body }` definition. Bodies and calls are
// parsed but not type-checked or lowered in the core. The annotator reports
// a Func as "not yet implemented" and still walks its parameters and body
// (so unsupported nodes nested in the body are reported too); the IR
// builder reports it and stops at the Func boundary.
type Func struct {
	Name   token.Token
	Params []*Decl
	Body   []Node
}

// Struct is a `struct name { fields }` declaration.
type Struct struct {
	Name   token.Token
	Fields []*Decl
}

// Return is a `return expr;` statement, valid only inside a Func body.
type Return struct {
	Keyword token.Token
	Value   Expr
}

func (*Print) stmtNode()  {}
func (*Decl) stmtNode()   {}
func (*Func) stmtNode()   {}
func (*Struct) stmtNode() {}
func (*Return) stmtNode() {}

func (n *Print) Pos() token.Token  { return n.Keyword }
func (n *Decl) Pos() token.Token   { return n.Name }
func (n *Func) Pos() token.Token   { return n.Name }
func (n *Struct) Pos() token.Token { return n.Name }
func (n *Return) Pos() token.Token { return n.Keyword }

// Tree is the ordered sequence of top-level nodes produced by one parse.
// It is built once and never mutated; annotate/validate/ir all treat it as
// read-only.
type Tree struct {
	Nodes []Node
}
