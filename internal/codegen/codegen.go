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

// Package codegen emits target-language source from a syntax tree. Each
// Writer is handed the same annotation table the interpreter path uses; the
// C++ writer does not read resolved types from it.
package codegen

import (
	"strings"

	"github.com/nabla-lang/nabla/internal/annotate"
	"github.com/nabla-lang/nabla/internal/ast"
)

// Writer is the target-language emission interface: source() plus the
// primitives every language backend composes lines out of.
type Writer interface {
	Source() string
	Indent()
	Dedent()
	AddLine(line string)
	Write(str string)
	Newline()

	writeNode(n ast.Node)
	writeExpr(e ast.Expr)
}

// baseWriter implements the shared buffer/indent bookkeeping every
// language backend embeds.
type baseWriter struct {
	indent int
	source strings.Builder

	annotations *annotate.Table
}

func (w *baseWriter) Source() string { return w.source.String() }

func (w *baseWriter) Indent() { w.indent++ }

func (w *baseWriter) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *baseWriter) AddLine(line string) {
	w.source.WriteString(strings.Repeat("  ", w.indent))
	w.source.WriteString(line)
	w.source.WriteByte('\n')
}

func (w *baseWriter) Write(str string) { w.source.WriteString(str) }

func (w *baseWriter) Newline() { w.source.WriteByte('\n') }

// New selects a Writer by language tag. "cxx", "c++", and "cpp" all select
// the C++ emitter; any other tag returns nil.
func New(lang string, annotations *annotate.Table) Writer {
	switch lang {
	case "cxx", "c++", "cpp":
		return newCXXWriter(annotations)
	default:
		return nil
	}
}

// Generate walks tree's top-level nodes into w and returns the accumulated
// source text.
func Generate(tree *ast.Tree, w Writer) string {
	for _, n := range tree.Nodes {
		w.writeNode(n)
	}
	return w.Source()
}
