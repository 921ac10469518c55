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

package codegen

import (
	"github.com/nabla-lang/nabla/internal/annotate"
	"github.com/nabla-lang/nabla/internal/ast"
)

// cxxWriter emits C++ source. Every declaration emits as "int", whatever
// its resolved type; expressions are written from their source tokens. The
// annotation table is stored but not consulted.
type cxxWriter struct {
	baseWriter
}

func newCXXWriter(annotations *annotate.Table) *cxxWriter {
	return &cxxWriter{baseWriter: baseWriter{annotations: annotations}}
}

func (w *cxxWriter) writeNode(n ast.Node) {
	switch node := n.(type) {
	case *ast.Struct:
		w.writeStruct(node)
	case *ast.Decl:
		w.writeDecl(node)
	case *ast.Print:
		// The reference C++ emitter leaves print statements unhandled
		// (there is no console dependency to target in generated code);
		// nabla's own interpreter path is the only print consumer.
	case *ast.Func, *ast.Return:
		// not lowered to target source; the annotator already reported
		// "not yet implemented" for these during the earlier pipeline
		// stages.
	}
}

func (w *cxxWriter) writeStruct(node *ast.Struct) {
	w.AddLine("struct " + node.Name.Text() + " final {")
	w.Indent()
	for _, field := range node.Fields {
		typeName := "int"
		if field.Type != nil {
			typeName = field.Type.Name.Text()
		}
		w.AddLine(typeName + " " + field.Name.Text() + "{};")
	}
	w.Dedent()
	w.AddLine("};")
}

func (w *cxxWriter) writeDecl(node *ast.Decl) {
	if node.Immutable {
		w.Write("const ")
	}
	w.Write("int ")
	w.Write(node.Name.Text())
	if node.Value != nil {
		w.Write(" = ")
		w.writeExpr(node.Value)
	}
	w.Write(";")
	w.Newline()
}

func (w *cxxWriter) writeExpr(e ast.Expr) {
	switch expr := e.(type) {
	case *ast.IntLiteral:
		w.Write(expr.Token.Text())
	case *ast.FloatLiteral:
		w.Write(expr.Token.Text())
	case *ast.StringLiteral:
		w.Write(expr.Token.Text())
	case *ast.Var:
		w.Write(expr.Name.Text())
	case *ast.Add:
		w.writeExpr(expr.Left)
		w.Write(" + ")
		w.writeExpr(expr.Right)
	case *ast.Mul:
		w.writeExpr(expr.Left)
		w.Write(" * ")
		w.writeExpr(expr.Right)
	case *ast.Call:
		w.Write(expr.Name.Text())
		w.Write("(")
		for i, arg := range expr.Args {
			w.writeExpr(arg.Expr)
			if i+1 != len(expr.Args) {
				w.Write(", ")
			}
		}
		w.Write(")")
	}
}
