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

// Package validate checks an annotated syntax tree for the two source-level
// errors nabla's core defines: an operator that never resolved a type, and
// a declaration that collides with one already visible in scope.
package validate

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/nabla-lang/nabla/internal/annotate"
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/diagnostics"
)

// Result is the outcome of one validation pass.
type Result struct {
	Diagnostics []diagnostics.Diagnostic
	Failed      bool
}

// Validate walks the annotation table checking every Add/Mul for an
// unresolved operator, then walks the tree's declarations checking for
// redeclaration against a scope stack backed by golang-set.
func Validate(tree *ast.Tree, table *annotate.Table) Result {
	v := &validator{scopes: []mapset.Set{mapset.NewSet()}}

	for add, a := range table.Add {
		if !a.ResultType.Valid() {
			v.emit(diagnostics.New("unresolved operator", add.Op))
		}
	}
	for mul, a := range table.Mul {
		if !a.ResultType.Valid() {
			v.emit(diagnostics.New("unresolved operator", mul.Op))
		}
	}

	for _, n := range tree.Nodes {
		v.visitNode(n)
	}

	return v.result
}

type validator struct {
	result Result
	scopes []mapset.Set
}

func (v *validator) currentScope() mapset.Set {
	return v.scopes[len(v.scopes)-1]
}

// declared reports whether name is visible in the current scope stack,
// searching from the innermost scope outward.
func (v *validator) declared(name string) bool {
	for i := len(v.scopes) - 1; i >= 0; i-- {
		if v.scopes[i].Contains(name) {
			return true
		}
	}
	return false
}

func (v *validator) visitNode(n ast.Node) {
	switch node := n.(type) {
	case *ast.Decl:
		if v.declared(node.Name.Text()) {
			v.emit(diagnostics.New("symbol already exists by this name", node.Name))
		} else {
			v.currentScope().Add(node.Name.Text())
		}
	case *ast.Func:
		// A Func's params/body form a nested scope, but Func bodies are
		// not lowered in this core; the annotator already reported
		// "not yet implemented" for it, so no further scope
		// walking happens here.
		_ = node
	}
}

func (v *validator) emit(d diagnostics.Diagnostic) {
	v.result.Diagnostics = append(v.result.Diagnostics, d)
	v.result.Failed = true
}
