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

// Package types defines nabla's resolved type values: the outcome of
// annotation, as opposed to ast.TypeInstance, which is the unresolved
// syntax as written by the programmer.
package types

// Kind discriminates a Type. Comparisons between Types are by Kind alone,
// never by walking Fields.
type Kind int

const (
	Invalid Kind = iota
	Int
	Float
	String
	StructKind
)

// Field is one member of a StructKind type.
type Field struct {
	Name string
	Type Type
}

// Type is a resolved type value. Fields is only meaningful when Kind is
// StructKind.
type Type struct {
	Kind   Kind
	Fields []Field
}

// Equal compares two Types by discriminant only, per the package doc.
func (t Type) Equal(other Type) bool { return t.Kind == other.Kind }

// Valid reports whether t is anything other than the zero Type.
func (t Type) Valid() bool { return t.Kind != Invalid }

var (
	IntType    = Type{Kind: Int}
	FloatType  = Type{Kind: Float}
	StringType = Type{Kind: String}
)

// NewStruct builds a resolved struct type from its fields.
func NewStruct(fields []Field) Type { return Type{Kind: StructKind, Fields: fields} }
