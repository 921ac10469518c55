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

package ir

import (
	"strconv"

	"github.com/nabla-lang/nabla/internal/annotate"
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/token"
)

// escapeTable maps the byte following a backslash to its unescaped value.
// Any byte not in this table is a fatal build error.
var escapeTable = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', '\\': '\\',
	'\'': '\'', '"': '"', '0': 0, 'b': '\b', 'f': '\f', 'v': '\v',
}

// unescapeStringLiteral strips the surrounding quotes from a string token
// and resolves backslash escapes, panicking with a *diagnostics.FatalError
// on an unknown escape or a trailing backslash.
func unescapeStringLiteral(tok token.Token) []byte {
	data := tok.Data
	var out []byte
	for i := 1; i < len(data)-1; i++ {
		c := data[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(data)-1 {
			panic(diagnostics.NewFatal("invalid escape sequence at end of string", tok))
		}
		i++
		unescaped, ok := escapeTable[data[i]]
		if !ok {
			panic(diagnostics.NewFatal("unknown escape sequence", tok))
		}
		out = append(out, unescaped)
	}
	return out
}

// builder lowers an annotated tree into a flat Module. decl carries the
// assignment id backing each Decl's initializer, so a later Var reference
// reuses it instead of re-emitting the expression.
type builder struct {
	table *annotate.Table
	decl  map[*ast.Decl]int
	exprs int
	mod   Module
	diags []diagnostics.Diagnostic
}

// Build lowers tree using the annotations in table, returning the module
// and any "not yet implemented" diagnostics encountered for constructs the
// core doesn't lower (Call/Func/Struct/Return).
func Build(tree *ast.Tree, table *annotate.Table) (mod *Module, diags []diagnostics.Diagnostic, err error) {
	b := &builder{table: table, decl: make(map[*ast.Decl]int)}

	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*diagnostics.FatalError)
			if !ok {
				panic(r)
			}
			mod, diags, err = nil, nil, fe
		}
	}()

	for _, n := range tree.Nodes {
		b.buildNode(n)
	}
	return &b.mod, b.diags, nil
}

func (b *builder) notImplemented(what string, tok token.Token) {
	b.diags = append(b.diags, diagnostics.New("not yet implemented", tok))
	_ = what
}

func (b *builder) buildNode(n ast.Node) {
	switch node := n.(type) {
	case *ast.Print:
		for _, arg := range node.Args {
			id := b.buildExpr(arg)
			b.mod.Stmts = append(b.mod.Stmts, &Print{ID: id})
		}
		b.mod.Stmts = append(b.mod.Stmts, &PrintEnd{})
	case *ast.Decl:
		if node.Value == nil {
			return
		}
		id := b.buildExpr(node.Value)
		b.decl[node] = id
	case *ast.Func:
		b.notImplemented("function bodies", node.Pos())
	case *ast.Struct:
		b.notImplemented("struct declarations", node.Pos())
	case *ast.Return:
		b.notImplemented("return statements", node.Pos())
	}
}

// buildExpr lowers e post-order and returns the assignment id holding its
// value.
func (b *builder) buildExpr(e ast.Expr) int {
	switch expr := e.(type) {
	case *ast.StringLiteral:
		return b.push(StringConst{V: string(unescapeStringLiteral(expr.Token))})

	case *ast.IntLiteral:
		v, err := strconv.ParseInt(expr.Token.Text(), 10, 64)
		if err != nil {
			panic(diagnostics.NewFatal("unable to parse integer", expr.Token))
		}
		return b.push(IntConst{V: v})

	case *ast.FloatLiteral:
		v, err := strconv.ParseFloat(expr.Token.Text(), 32)
		if err != nil {
			panic(diagnostics.NewFatal("unable to parse float", expr.Token))
		}
		return b.push(FloatConst{V: float32(v)})

	case *ast.Var:
		annotation, ok := b.table.Var[expr]
		if !ok || annotation.Decl == nil {
			panic(diagnostics.NewFatal("unresolved variable reference", expr.Name))
		}
		id, ok := b.decl[annotation.Decl]
		if !ok {
			panic(diagnostics.NewFatal("unresolved variable reference", expr.Name))
		}
		return id

	case *ast.Call:
		b.notImplemented("function calls", expr.Pos())
		return b.push(IntConst{V: 0})

	case *ast.Add:
		l := b.buildExpr(expr.Left)
		r := b.buildExpr(expr.Right)
		a := b.table.Add[expr]
		switch a.Op {
		case annotate.AddInt:
			return b.push(Add{Kind: KindInt, Left: l, Right: r})
		case annotate.AddFloat:
			return b.push(Add{Kind: KindFloat, Left: l, Right: r})
		default:
			// op == none: the validator should have rejected this file
			// already, so there's nothing valid to lower here.
			return l
		}

	case *ast.Mul:
		l := b.buildExpr(expr.Left)
		r := b.buildExpr(expr.Right)
		a := b.table.Mul[expr]
		switch a.Op {
		case annotate.MulInt:
			return b.push(Mul{Kind: KindInt, Left: l, Right: r})
		case annotate.MulFloat:
			return b.push(Mul{Kind: KindFloat, Left: l, Right: r})
		default:
			return l
		}
	}
	panic(diagnostics.NewFatal("unable to lower expression", e.Pos()))
}

func (b *builder) push(v Value) int {
	id := b.exprs
	b.exprs++
	b.mod.Stmts = append(b.mod.Stmts, &Assign{ID: id, Value: v})
	return id
}
