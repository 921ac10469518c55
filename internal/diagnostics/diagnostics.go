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

// Package diagnostics defines the source-level error report shared by the
// parser, annotator, validator, and IR builder.
//
// A Diagnostic is deliberately not an error: it must be collectible without
// unwinding the call stack (the validator accumulates many before
// reporting), while the parser and IR builder instead raise one wrapped in
// a FatalError and abort the current file immediately. Internal-invariant
// failures (panics) are a separate concern, recovered by the compile-unit
// driver with a go-stack trace attached; see internal/compileunit.
package diagnostics

import "github.com/nabla-lang/nabla/internal/token"

// Severity distinguishes an accumulated Diagnostic from one that aborted
// the file.
type Severity int

const (
	Error Severity = iota
	FatalSeverity
)

// Diagnostic is a single source-level complaint, anchored to the token that
// provoked it.
type Diagnostic struct {
	What     string
	Token    token.Token
	Severity Severity
}

// FatalError wraps a Diagnostic that stops the current file's pipeline
// outright: a syntax error, or a lowering-time encounter with a construct
// the IR builder refuses to handle.
type FatalError struct {
	Diagnostic Diagnostic
}

func (e *FatalError) Error() string { return e.Diagnostic.What }

// NewFatal builds a *FatalError for the given message and offending token.
func NewFatal(what string, tok token.Token) *FatalError {
	return &FatalError{Diagnostic: Diagnostic{What: what, Token: tok, Severity: FatalSeverity}}
}

// New builds a plain, non-fatal Diagnostic for accumulation (used by the
// validator, which keeps checking after the first hit).
func New(what string, tok token.Token) Diagnostic {
	return Diagnostic{What: what, Token: tok, Severity: Error}
}
