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

// Package annotate implements nabla's fixed-point annotation pass: given a
// syntax tree, it produces a Table of per-node facts (resolved types,
// operator variants, variable bindings) without ever mutating the tree
// itself.
//
// The algorithm is a monotonic worklist: repeatedly walk the whole tree,
// letting each node/expression kind's annotator fill in previously-empty
// fields, until a full walk makes no further writes. Every annotator
// dispatches by Go type switch rather than a visitor hierarchy, since Go's
// exhaustiveness checking on a closed set of node types makes the switch
// itself the interface.
package annotate

import (
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/token"
	"github.com/nabla-lang/nabla/internal/types"
)

// AddOp names the resolved arithmetic variant of an Add expression.
type AddOp int

const (
	AddNone AddOp = iota
	AddInt
	AddFloat
)

// MulOp names the resolved arithmetic variant of a Mul expression.
type MulOp int

const (
	MulNone MulOp = iota
	MulInt
	MulFloat
)

// AddAnnotation is the annotation record for one *ast.Add node.
type AddAnnotation struct {
	ResultType types.Type
	Op         AddOp
}

// MulAnnotation is the annotation record for one *ast.Mul node.
type MulAnnotation struct {
	ResultType types.Type
	Op         MulOp
}

// VarAnnotation records the Decl a Var resolves to, once found.
type VarAnnotation struct {
	Decl *ast.Decl
}

// DeclAnnotation records a Decl's resolved type.
type DeclAnnotation struct {
	Type types.Type
}

// Table is the complete annotation state for one compilation unit. Maps are
// keyed by concrete node pointer identity, which is stable because the
// tree is never mutated after parsing.
type Table struct {
	Add map[*ast.Add]*AddAnnotation
	Mul map[*ast.Mul]*MulAnnotation
	Var map[*ast.Var]*VarAnnotation
	Decl map[*ast.Decl]*DeclAnnotation

	// treeNodes is the full program, used by the Var resolver to search
	// for a matching Decl across the whole tree rather than just the
	// current subtree.
	treeNodes []ast.Node

	// notImplemented tracks which unsupported nodes/expressions have
	// already produced their one "not yet implemented" diagnostic, so
	// repeated fixed-point walks don't duplicate it. Keyed by any because
	// both Nodes (Func/Struct/Return) and Exprs (Call) land here.
	notImplemented map[any]bool
}

func newTable() *Table {
	return &Table{
		Add:            make(map[*ast.Add]*AddAnnotation),
		Mul:            make(map[*ast.Mul]*MulAnnotation),
		Var:            make(map[*ast.Var]*VarAnnotation),
		Decl:           make(map[*ast.Decl]*DeclAnnotation),
		notImplemented: make(map[any]bool),
	}
}

func (t *Table) addAnnotation(e *ast.Add) *AddAnnotation {
	a, ok := t.Add[e]
	if !ok {
		a = &AddAnnotation{}
		t.Add[e] = a
	}
	return a
}

func (t *Table) mulAnnotation(e *ast.Mul) *MulAnnotation {
	a, ok := t.Mul[e]
	if !ok {
		a = &MulAnnotation{}
		t.Mul[e] = a
	}
	return a
}

func (t *Table) varAnnotation(e *ast.Var) *VarAnnotation {
	a, ok := t.Var[e]
	if !ok {
		a = &VarAnnotation{}
		t.Var[e] = a
	}
	return a
}

func (t *Table) declAnnotation(d *ast.Decl) *DeclAnnotation {
	a, ok := t.Decl[d]
	if !ok {
		a = &DeclAnnotation{}
		t.Decl[d] = a
	}
	return a
}

// ResolveType is the shared query annotators use to learn an expression's
// type: it returns any already-recorded result on an Add/Mul annotation,
// otherwise falls back to the literal-type resolver, which only answers
// for the three literal kinds.
func (t *Table) ResolveType(e ast.Expr) types.Type {
	switch v := e.(type) {
	case *ast.Add:
		if a, ok := t.Add[v]; ok {
			return a.ResultType
		}
		return types.Type{}
	case *ast.Mul:
		if a, ok := t.Mul[v]; ok {
			return a.ResultType
		}
		return types.Type{}
	default:
		return literalType(e)
	}
}

func literalType(e ast.Expr) types.Type {
	switch e.(type) {
	case *ast.IntLiteral:
		return types.IntType
	case *ast.FloatLiteral:
		return types.FloatType
	case *ast.StringLiteral:
		return types.StringType
	default:
		return types.Type{}
	}
}

// Annotate runs the fixed-point pass to completion and returns the
// resulting table, along with any "not yet implemented" diagnostics
// produced along the way (Call/Func/Struct/Return are parsed but not
// annotated or lowered).
func Annotate(tree *ast.Tree) (*Table, []diagnostics.Diagnostic) {
	table := newTable()
	table.treeNodes = tree.Nodes
	var diags []diagnostics.Diagnostic

	for {
		changed := false
		for _, n := range tree.Nodes {
			if walkNode(table, n, &diags) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return table, diags
}

func notImplemented(table *Table, key any, tok token.Token, diags *[]diagnostics.Diagnostic) {
	if table.notImplemented[key] {
		return
	}
	table.notImplemented[key] = true
	*diags = append(*diags, diagnostics.New("not yet implemented", tok))
}

// walkNode annotates one top-level node and everything reachable from it,
// returning whether any monotonic write happened during this walk.
func walkNode(table *Table, n ast.Node, diags *[]diagnostics.Diagnostic) bool {
	changed := false
	switch v := n.(type) {
	case *ast.Print:
		for _, arg := range v.Args {
			if walkExpr(table, arg, diags) {
				changed = true
			}
		}
	case *ast.Decl:
		if v.Value != nil {
			if walkExpr(table, v.Value, diags) {
				changed = true
			}
		}
		if annotateDecl(table, v) {
			changed = true
		}
	case *ast.Func:
		notImplementedOnce(table, n, n.Pos(), diags, &changed)
		for _, p := range v.Params {
			if p.Value != nil && walkExpr(table, p.Value, diags) {
				changed = true
			}
		}
		for _, inner := range v.Body {
			if walkNode(table, inner, diags) {
				changed = true
			}
		}
	case *ast.Struct:
		notImplementedOnce(table, n, n.Pos(), diags, &changed)
	case *ast.Return:
		notImplementedOnce(table, n, n.Pos(), diags, &changed)
		if v.Value != nil {
			if walkExpr(table, v.Value, diags) {
				changed = true
			}
		}
	}
	return changed
}

func notImplementedOnce(table *Table, key any, tok token.Token, diags *[]diagnostics.Diagnostic, changed *bool) {
	before := len(*diags)
	notImplemented(table, key, tok, diags)
	if len(*diags) != before {
		*changed = true
	}
}

// walkExpr annotates one expression and its subexpressions.
func walkExpr(table *Table, e ast.Expr, diags *[]diagnostics.Diagnostic) bool {
	changed := false
	switch v := e.(type) {
	case *ast.Add:
		if walkExpr(table, v.Left, diags) {
			changed = true
		}
		if walkExpr(table, v.Right, diags) {
			changed = true
		}
		if annotateAdd(table, v) {
			changed = true
		}
	case *ast.Mul:
		if walkExpr(table, v.Left, diags) {
			changed = true
		}
		if walkExpr(table, v.Right, diags) {
			changed = true
		}
		if annotateMul(table, v) {
			changed = true
		}
	case *ast.Var:
		if annotateVar(table, v) {
			changed = true
		}
	case *ast.Call:
		notImplementedOnce(table, v, v.Pos(), diags, &changed)
		for _, arg := range v.Args {
			if walkExpr(table, arg.Expr, diags) {
				changed = true
			}
		}
	}
	return changed
}
