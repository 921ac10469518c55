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

// Package compileunit drives one source file through the full pipeline:
// lex, parse, annotate, validate, and lower. Interpreting or emitting the
// result is left to the caller. It is the seam where the ambient concerns
// (caching, panic recovery, identity) wrap the pure core packages.
package compileunit

import (
	"fmt"

	"github.com/go-stack/stack"
	"github.com/google/uuid"

	"github.com/nabla-lang/nabla/internal/annotate"
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/cache"
	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/ir"
	"github.com/nabla-lang/nabla/internal/lexer"
	"github.com/nabla-lang/nabla/internal/parser"
	"github.com/nabla-lang/nabla/internal/validate"
)

// Result is the outcome of compiling one file: either a lowered Module
// ready to execute or emit, or a list of diagnostics explaining why not.
type Result struct {
	// ID identifies this compilation for the lifetime of one build
	// invocation. It is not stored in the cache, and no command prints it.
	ID uuid.UUID

	Path        string
	Tree        *ast.Tree
	Annotations *annotate.Table
	Module      *ir.Module
	Diagnostics []diagnostics.Diagnostic
	Failed      bool

	// InternalError is set when a panic escaped one of the core stages —
	// an invariant nabla itself is supposed to guarantee never breaks.
	// One such failure aborts only this file, not the whole build.
	InternalError string
	Stack         string
}

// Compile runs source through the pipeline. c may be nil to skip caching.
func Compile(path string, source []byte, c *cache.Cache) (result Result) {
	result = Result{ID: uuid.New(), Path: path}

	defer func() {
		if r := recover(); r != nil {
			result.InternalError = fmt.Sprint(r)
			result.Stack = fmt.Sprintf("%+v", stack.Trace().TrimRuntime())
			result.Failed = true
		}
	}()

	var key string
	if c != nil {
		key = cache.Key(source)
		if entry, ok := c.Get(key); ok {
			result.Module = entry.Module
			result.Diagnostics = entry.Diagnostics
			result.Failed = hasFatal(entry.Diagnostics)
			return result
		}
	}

	tokens, badTok, badWhat := lexer.Tokenize(source)
	if badTok != nil {
		result.Diagnostics = []diagnostics.Diagnostic{diagnostics.New(badWhat, *badTok)}
		result.Failed = true
		return result
	}

	tree, err := parser.ParseAll(tokens)
	if err != nil {
		fe := err.(*diagnostics.FatalError)
		result.Diagnostics = []diagnostics.Diagnostic{fe.Diagnostic}
		result.Failed = true
		return result
	}
	result.Tree = tree

	table, annotateDiags := annotate.Annotate(tree)
	result.Annotations = table

	validated := validate.Validate(tree, table)

	allDiags := append(append([]diagnostics.Diagnostic{}, annotateDiags...), validated.Diagnostics...)
	result.Diagnostics = allDiags
	result.Failed = validated.Failed || len(annotateDiags) > 0

	if result.Failed {
		if c != nil {
			_ = c.Put(key, &cache.Entry{Diagnostics: allDiags})
		}
		return result
	}

	mod, lowerDiags, lowerErr := ir.Build(tree, table)
	result.Diagnostics = append(result.Diagnostics, lowerDiags...)
	if lowerErr != nil {
		fe := lowerErr.(*diagnostics.FatalError)
		result.Diagnostics = append(result.Diagnostics, fe.Diagnostic)
		result.Failed = true
		return result
	}
	if len(lowerDiags) > 0 {
		result.Failed = true
		return result
	}
	result.Module = mod

	if c != nil {
		_ = c.Put(key, &cache.Entry{Module: mod, Diagnostics: result.Diagnostics})
	}

	return result
}

func hasFatal(diags []diagnostics.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diagnostics.FatalSeverity {
			return true
		}
	}
	return len(diags) > 0
}
