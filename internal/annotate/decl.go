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

// annotateDecl fills in a Decl's resolved type from its initializer, once
// the initializer's own type becomes known.
func annotateDecl(table *Table, d *ast.Decl) bool {
	a := table.declAnnotation(d)
	if a.Type.Valid() {
		return false
	}
	if d.Value == nil {
		return false
	}

	t := table.ResolveType(d.Value)
	if !t.Valid() {
		return false
	}
	a.Type = t
	return true
}
