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

package compileunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabla-lang/nabla/internal/cache"
)

func TestCompileSucceedsWithoutCache(t *testing.T) {
	result := Compile("main.nabla", []byte(`let x = 1; print(x + 1);`), nil)
	assert.False(t, result.Failed)
	assert.Empty(t, result.InternalError)
	require.NotNil(t, result.Module)
	require.NotEmpty(t, result.Module.Stmts)
	assert.NotEqual(t, result.ID.String(), "")
}

func TestCompileReportsLexError(t *testing.T) {
	result := Compile("main.nabla", []byte(`let x = "unterminated;`), nil)
	assert.True(t, result.Failed)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "unterminated string", result.Diagnostics[0].What)
}

func TestCompileReportsParseError(t *testing.T) {
	result := Compile("main.nabla", []byte(`let = 1;`), nil)
	assert.True(t, result.Failed)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "expected this to be a variable name", result.Diagnostics[0].What)
}

func TestCompileReportsValidationFailureWithoutLowering(t *testing.T) {
	result := Compile("main.nabla", []byte(`let x = 1; let x = 2;`), nil)
	assert.True(t, result.Failed)
	assert.Nil(t, result.Module)
	require.NotEmpty(t, result.Diagnostics)
}

func TestCompileUsesCacheOnSecondCall(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.Open(dir)
	require.NoError(t, err)
	defer c.Close()

	source := []byte(`let x = 1; print(x);`)
	first := Compile("main.nabla", source, c)
	require.False(t, first.Failed)

	second := Compile("main.nabla", source, c)
	assert.False(t, second.Failed)
	require.NotNil(t, second.Module)
	assert.Equal(t, first.Module.Stmts, second.Module.Stmts)
	// The cache hit path never touches the parser, so a second Result gets
	// a fresh ID but no Tree.
	assert.Nil(t, second.Tree)
}

func TestCompileCachesFailedCompilationsToo(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.Open(dir)
	require.NoError(t, err)
	defer c.Close()

	source := []byte(`let x = 1; let x = 2;`)
	first := Compile("main.nabla", source, c)
	require.True(t, first.Failed)

	second := Compile("main.nabla", source, c)
	assert.True(t, second.Failed)
	require.NotEmpty(t, second.Diagnostics)
	assert.Nil(t, second.Tree)
}

func TestCompileUnresolvedOperatorFailsWithoutLowering(t *testing.T) {
	result := Compile("main.nabla", []byte(`let x = 1 + 2.0;`), nil)
	assert.True(t, result.Failed)
	assert.Nil(t, result.Module)
}
