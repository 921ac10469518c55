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

package annotate

import "github.com/nabla-lang/nabla/internal/ast"

// annotateVar resolves a Var to the Decl it references: the last matching
// Decl visited in program order wins, and a Decl is skipped as a
// candidate if the Var itself appears inside that Decl's own initializer
// (self-reference, "let x = x;", must never resolve).
func annotateVar(table *Table, v *ast.Var) bool {
	a := table.varAnnotation(v)
	if a.Decl != nil {
		return false
	}

	r := &varResolver{target: v}
	for _, n := range table.treeNodes {
		r.walkNode(n)
		if r.done {
			break
		}
	}

	if r.decl != nil {
		a.Decl = r.decl
		return true
	}
	return false
}

// varResolver walks the whole tree looking for the last Decl (in program
// order) whose name matches the target Var, stopping as soon as it reaches
// the target Var node itself so later sibling/enclosing Decls can't be
// mistaken for successors.
type varResolver struct {
	target *ast.Var
	decl   *ast.Decl
	done   bool
}

func (r *varResolver) walkNode(n ast.Node) {
	if r.done {
		return
	}
	switch v := n.(type) {
	case *ast.Print:
		for _, arg := range v.Args {
			r.walkExpr(arg)
			if r.done {
				return
			}
		}
	case *ast.Decl:
		if v.Value != nil {
			r.walkExpr(v.Value)
		}
		if r.done {
			return
		}
		if v.Name.Text() == r.target.Name.Text() {
			r.decl = v
		}
	case *ast.Func:
		for _, inner := range v.Body {
			r.walkNode(inner)
			if r.done {
				return
			}
		}
	case *ast.Struct:
		// fields carry no expressions that could contain a Var reference
	case *ast.Return:
		if v.Value != nil {
			r.walkExpr(v.Value)
		}
	}
}

func (r *varResolver) walkExpr(e ast.Expr) {
	if r.done {
		return
	}
	switch v := e.(type) {
	case *ast.Var:
		if v == r.target {
			r.done = true
		}
	case *ast.Call:
		for _, arg := range v.Args {
			r.walkExpr(arg.Expr)
			if r.done {
				return
			}
		}
	case *ast.Add:
		r.walkExpr(v.Left)
		if r.done {
			return
		}
		r.walkExpr(v.Right)
	case *ast.Mul:
		r.walkExpr(v.Left)
		if r.done {
			return
		}
		r.walkExpr(v.Right)
	}
}
