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

// Package token defines the lexical tokens consumed by the nabla parser.
//
// The lexer that produces these tokens is an external collaborator: nabla's
// core (parser, annotator, validator, IR builder, interpreter) only ever
// reads a frozen, already-scanned token buffer. Whitespace and comment
// filtering, and rejection of incomplete tokens, happen before the parser
// ever sees a Token.
package token

import "fmt"

// Kind is the lexical category of a Token.
type Kind int

const (
	// None is the zero value, used for the sentinel "no token" returned when
	// reading past the end of the buffer.
	None Kind = iota
	Space
	Comment
	IncompleteComment
	Identifier
	StringLiteral
	IncompleteStringLiteral
	IntLiteral
	FloatLiteral
	Symbol
)

var kindNames = [...]string{
	None:                    "none",
	Space:                   "space",
	Comment:                 "comment",
	IncompleteComment:       "incomplete-comment",
	Identifier:              "identifier",
	StringLiteral:           "string-literal",
	IncompleteStringLiteral: "incomplete-string-literal",
	IntLiteral:              "int-literal",
	FloatLiteral:            "float-literal",
	Symbol:                  "symbol",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is an immutable lexical unit. Data borrows a slice of the
// compilation unit's source buffer; the buffer must outlive every Token
// (and every diagnostic referencing one) taken from it.
type Token struct {
	Kind Kind

	Data []byte

	// Line and Column are 1-based.
	Line, Column int
}

// Text returns the token's source text as a string. Prefer comparing Data
// directly with Is/IsText when possible to avoid the allocation.
func (t Token) Text() string { return string(t.Data) }

// Is reports whether the token's text equals exactly the given single-byte
// symbol, e.g. t.Is('+').
func (t Token) Is(sym byte) bool { return len(t.Data) == 1 && t.Data[0] == sym }

// IsText reports whether the token's text equals s exactly,
// regardless of kind. Used for keyword dispatch, since keywords are lexed
// as ordinary identifiers.
func (t Token) IsText(s string) bool { return string(t.Data) == s }

// Zero reports whether this is the sentinel "no token" value returned by a
// cursor read past the end of the buffer.
func (t Token) Zero() bool { return t.Kind == None && t.Data == nil }
