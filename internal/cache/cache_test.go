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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/ir"
	"github.com/nabla-lang/nabla/internal/token"
)

func TestKeyIsStableAndContentSensitive(t *testing.T) {
	a := Key([]byte("let x = 1;"))
	b := Key([]byte("let x = 1;"))
	c := Key([]byte("let x = 2;"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func sampleEntry() *Entry {
	return &Entry{
		Module: &ir.Module{Stmts: []ir.Stmt{
			&ir.Assign{ID: 0, Value: ir.IntConst{V: 5}},
			&ir.Print{ID: 0},
			&ir.PrintEnd{},
		}},
		Diagnostics: []diagnostics.Diagnostic{
			diagnostics.New("unresolved operator", token.Token{Kind: token.Symbol, Data: []byte("+"), Line: 1, Column: 7}),
		},
	}
}

func TestPutThenGetRoundTripsThroughColdTier(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)
	defer c.Close()

	key := Key([]byte("let x = 1 + 2.0;"))
	require.NoError(t, c.Put(key, sampleEntry()))

	// Force a cold-tier read by evicting the hot entry directly.
	c.hot.Remove(key)

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Len(t, got.Module.Stmts, 3)
	assign := got.Module.Stmts[0].(*ir.Assign)
	assert.Equal(t, ir.IntConst{V: 5}, assign.Value)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, "unresolved operator", got.Diagnostics[0].What)
	assert.Equal(t, "+", got.Diagnostics[0].Token.Text())
}

func TestGetMissReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(Key([]byte("never put")))
	assert.False(t, ok)
}

func TestInvalidateRemovesFromBothTiers(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)
	defer c.Close()

	key := Key([]byte("let x = 1;"))
	require.NoError(t, c.Put(key, sampleEntry()))
	c.Invalidate(key)

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestGetPromotesColdHitIntoHotTier(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)
	defer c.Close()

	key := Key([]byte("let x = 1;"))
	require.NoError(t, c.Put(key, sampleEntry()))
	c.hot.Remove(key)

	_, ok := c.Get(key)
	require.True(t, ok)
	_, hot := c.hot.Get(key)
	assert.True(t, hot)
}
