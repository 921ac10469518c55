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

import (
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/types"
)

// annotateMul mirrors annotateAdd for "*"/"/" expressions.
func annotateMul(table *Table, e *ast.Mul) bool {
	a := table.mulAnnotation(e)
	if a.ResultType.Valid() {
		return false
	}

	lt := table.ResolveType(e.Left)
	if !lt.Valid() {
		return false
	}
	rt := table.ResolveType(e.Right)
	if !rt.Valid() {
		return false
	}

	switch {
	case lt.Kind == types.Float && rt.Kind == types.Float:
		a.ResultType = lt
		a.Op = MulFloat
		return true
	case lt.Kind == types.Int && rt.Kind == types.Int:
		a.ResultType = lt
		a.Op = MulInt
		return true
	}
	return false
}
