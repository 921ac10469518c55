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

// Package lexer implements nabla's byte-level scanner.
//
// The lexer is deliberately kept outside the core pipeline's contract: the
// parser only depends on the Token contract in internal/token. This
// implementation exists so the toolchain has something to feed the parser,
// and scans in a single forward pass with no backtracking, producing the
// token kinds nabla's grammar actually needs.
package lexer

import "github.com/nabla-lang/nabla/internal/token"

// Lexer scans one source buffer, byte by byte, with no backtracking.
type Lexer struct {
	source []byte

	offset int
	line   int
	column int
}

// New creates a Lexer over source. The returned Lexer borrows source; the
// caller must keep it alive for as long as any Token's Data slice is used.
func New(source []byte) *Lexer {
	return &Lexer{source: source, line: 1, column: 1}
}

// Eof reports whether the scanner has consumed the entire buffer.
func (l *Lexer) Eof() bool { return l.offset >= len(l.source) }

func (l *Lexer) at(offset int) byte {
	o := l.offset + offset
	if o >= len(l.source) {
		return 0
	}
	return l.source[o]
}

func (l *Lexer) inBounds(offset int) bool { return l.offset+offset < len(l.source) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNondigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// produce consumes len bytes starting at the current offset and returns the
// Token they form, advancing line/column bookkeeping as it goes.
func (l *Lexer) produce(kind token.Kind, length int) token.Token {
	tok := token.Token{
		Kind:   kind,
		Data:   l.source[l.offset : l.offset+length],
		Line:   l.line,
		Column: l.column,
	}
	for i := 0; i < length; i++ {
		if l.at(i) == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.offset += length
	return tok
}

// Scan returns the next token in the buffer. Calling Scan when Eof is true
// returns the zero Token.
func (l *Lexer) Scan() token.Token {
	if l.Eof() {
		return token.Token{}
	}

	first := l.at(0)

	if first == ' ' || first == '\t' || first == '\r' || first == '\n' {
		return l.produce(token.Space, 1)
	}

	if first == '/' && l.at(1) == '/' {
		length := 2
		for l.inBounds(length) && l.at(length) != '\n' {
			length++
		}
		return l.produce(token.Comment, length)
	}

	if first == '/' && l.at(1) == '*' {
		length := 2
		terminated := false
		for l.inBounds(length) {
			if l.at(length) == '*' && l.at(length+1) == '/' {
				length += 2
				terminated = true
				break
			}
			length++
		}
		if !terminated {
			return l.produce(token.IncompleteComment, 2)
		}
		return l.produce(token.Comment, length)
	}

	if isNondigit(first) {
		length := 1
		for {
			c := l.at(length)
			if isDigit(c) || isNondigit(c) {
				length++
			} else {
				break
			}
		}
		return l.produce(token.Identifier, length)
	}

	if isDigit(first) {
		return l.scanNumber(1)
	}

	if first == '.' && isDigit(l.at(1)) {
		return l.scanNumber(2)
	}

	if first == '"' || first == '\'' {
		length := 1
		for {
			if !l.inBounds(length) {
				return l.produce(token.IncompleteStringLiteral, 1)
			}
			c := l.at(length)
			length++
			if c == '\\' && l.inBounds(length) {
				// A backslash escapes the next byte for the purpose of
				// locating the closing quote; the IR builder is the one
				// that validates the escape itself.
				length++
				continue
			}
			if c == first {
				break
			}
		}
		return l.produce(token.StringLiteral, length)
	}

	return l.produce(token.Symbol, 1)
}

func (l *Lexer) scanNumber(length int) token.Token {
	isFloat := length == 2 // ".5" form starts float

	for isDigit(l.at(length)) {
		length++
	}

	if l.at(length) == '.' && !isFloat {
		isFloat = true
		length++
		for isDigit(l.at(length)) {
			length++
		}
	}

	if exp := l.at(length); exp == 'e' || exp == 'E' {
		save := length
		length++
		if sign := l.at(length); sign == '+' || sign == '-' {
			length++
		}
		if isDigit(l.at(length)) {
			isFloat = true
			for isDigit(l.at(length)) {
				length++
			}
		} else {
			length = save
		}
	}

	if isFloat {
		return l.produce(token.FloatLiteral, length)
	}
	return l.produce(token.IntLiteral, length)
}

// Tokenize scans the entire buffer, filtering whitespace and comments, and
// reporting the first incomplete token as an error. This is the entry point
// callers (the compile-unit driver, the `tokens` CLI command) use instead
// of driving Scan directly.
func Tokenize(source []byte) ([]token.Token, *token.Token, string) {
	l := New(source)
	var tokens []token.Token
	for !l.Eof() {
		tok := l.Scan()
		switch tok.Kind {
		case token.Space, token.Comment:
			continue
		case token.IncompleteStringLiteral:
			t := tok
			return tokens, &t, "unterminated string"
		case token.IncompleteComment:
			t := tok
			return tokens, &t, "unterminated comment"
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil, ""
}
