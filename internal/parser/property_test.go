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

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nabla-lang/nabla/internal/ast"
)

// TestParseAllIsDeterministic checks that parsing the same token stream
// twice yields structurally identical trees: no state leaks between
// parser instances, and no field is left to non-deterministic zero values.
func TestParseAllIsDeterministic(t *testing.T) {
	const src = `
struct Point { x: Int, y: Int }
let origin = Point(0, 0);
fn area(w, h) { return w * h; }
print(1 + 2 * 3, "done");
`
	first := mustParseSource(t, src)
	second := mustParseSource(t, src)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two parses of the same source differ (-first +second):\n%s", diff)
	}
}

func mustParseSource(t *testing.T, src string) *ast.Tree {
	t.Helper()
	toks := mustTokenize(t, src)
	tree, err := ParseAll(toks)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	return tree
}
