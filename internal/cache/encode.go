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

package cache

import (
	"bytes"
	"encoding/gob"

	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/ir"
	"github.com/nabla-lang/nabla/internal/token"
)

func init() {
	gob.Register(ir.IntConst{})
	gob.Register(ir.FloatConst{})
	gob.Register(ir.StringConst{})
	gob.Register(ir.Add{})
	gob.Register(ir.Mul{})
	gob.Register(&ir.Assign{})
	gob.Register(&ir.Print{})
	gob.Register(&ir.PrintEnd{})
}

// stmtsWire is a gob-friendly stand-in for ir.Module, since ir.Stmt/ir.Value
// are interfaces gob can only encode when boxed and pre-registered above.
type stmtsWire struct {
	Stmts []ir.Stmt
	Diags []diagWire
}

type diagWire struct {
	What     string
	Kind     int
	Line     int
	Column   int
	Data     []byte
	Severity int
}

func encode(e *Entry) ([]byte, error) {
	var wire stmtsWire
	if e.Module != nil {
		wire.Stmts = e.Module.Stmts
	}
	for _, d := range e.Diagnostics {
		wire.Diags = append(wire.Diags, diagWire{
			What:     d.What,
			Kind:     int(d.Token.Kind),
			Line:     d.Token.Line,
			Column:   d.Token.Column,
			Data:     d.Token.Data,
			Severity: int(d.Severity),
		})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wire); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (*Entry, error) {
	var wire stmtsWire
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&wire); err != nil {
		return nil, err
	}

	entry := &Entry{Module: &ir.Module{Stmts: wire.Stmts}}
	for _, d := range wire.Diags {
		entry.Diagnostics = append(entry.Diagnostics, diagnostics.Diagnostic{
			What:     d.What,
			Severity: diagnostics.Severity(d.Severity),
			Token: token.Token{
				Kind:   token.Kind(d.Kind),
				Data:   d.Data,
				Line:   d.Line,
				Column: d.Column,
			},
		})
	}
	return entry, nil
}
