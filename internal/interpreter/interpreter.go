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

// Package interpreter executes an ir.Module against a Runtime sink.
package interpreter

import (
	"fmt"

	"github.com/nabla-lang/nabla/internal/ir"
)

// Runtime is the polymorphic output sink an interpreted module writes to.
// cmd/nabla's stdoutRuntime is the default; tests use a recording Runtime
// to assert exact output sequences.
type Runtime interface {
	PrintInt(int64)
	PrintFloat(float32)
	PrintString(string)
	PrintEnd()
}

// value is the interpreter's own runtime representation, distinct from
// ir.Value (which only ever names an operation, not a computed result).
type value struct {
	kind ir.NumKind
	i    int64
	f    float32
	s    string
	str  bool
}

func intValue(v int64) value     { return value{kind: ir.KindInt, i: v} }
func floatValue(v float32) value { return value{kind: ir.KindFloat, f: v} }
func stringValue(v string) value { return value{str: true, s: v} }

// Exec walks mod's statements in order, maintaining a value array indexed
// by assignment id: ids are assigned in emission order and every operand
// has a smaller id, so no forward references exist.
func Exec(mod *ir.Module, rt Runtime) {
	values := make([]value, 0, len(mod.Stmts))

	for _, stmt := range mod.Stmts {
		switch s := stmt.(type) {
		case *ir.Assign:
			values = append(values, evalValue(s.Value, values))
		case *ir.Print:
			v := values[s.ID]
			switch {
			case v.str:
				rt.PrintString(v.s)
			case v.kind == ir.KindInt:
				rt.PrintInt(v.i)
			case v.kind == ir.KindFloat:
				rt.PrintFloat(v.f)
			}
		case *ir.PrintEnd:
			rt.PrintEnd()
		default:
			panic(fmt.Sprintf("interpreter: unhandled statement %T", stmt))
		}
	}
}

func evalValue(v ir.Value, values []value) value {
	switch val := v.(type) {
	case ir.IntConst:
		return intValue(val.V)
	case ir.FloatConst:
		return floatValue(val.V)
	case ir.StringConst:
		return stringValue(val.V)
	case ir.Add:
		l, r := values[val.Left], values[val.Right]
		if val.Kind == ir.KindInt {
			return intValue(l.i + r.i)
		}
		return floatValue(l.f + r.f)
	case ir.Mul:
		l, r := values[val.Left], values[val.Right]
		if val.Kind == ir.KindInt {
			return intValue(l.i * r.i)
		}
		return floatValue(l.f * r.f)
	}
	panic(fmt.Sprintf("interpreter: unhandled value %T", v))
}
