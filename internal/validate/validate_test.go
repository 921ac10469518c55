package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabla-lang/nabla/internal/annotate"
	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/lexer"
	"github.com/nabla-lang/nabla/internal/parser"
)

func mustAnnotate(t *testing.T, src string) (*ast.Tree, *annotate.Table) {
	t.Helper()
	toks, bad, what := lexer.Tokenize([]byte(src))
	require.Nil(t, bad, what)
	tree, err := parser.ParseAll(toks)
	require.NoError(t, err)
	table, _ := annotate.Annotate(tree)
	return tree, table
}

func TestValidatePassesCleanProgram(t *testing.T) {
	tree, table := mustAnnotate(t, `let x = 1; let y = x + 2;`)
	result := Validate(tree, table)
	assert.False(t, result.Failed)
	assert.Empty(t, result.Diagnostics)
}

func TestValidateRedeclaration(t *testing.T) {
	tree, table := mustAnnotate(t, `let x = 1; let x = 2;`)
	result := Validate(tree, table)
	require.True(t, result.Failed)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "symbol already exists by this name", result.Diagnostics[0].What)
}

func TestValidateUnresolvedOperator(t *testing.T) {
	tree, table := mustAnnotate(t, `let x = 1 + 2.0;`)
	result := Validate(tree, table)
	require.True(t, result.Failed)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "unresolved operator", result.Diagnostics[0].What)
}

func TestValidateDistinctDeclsDoNotCollide(t *testing.T) {
	// Three independent decls with distinct names never collide.
	tree, table := mustAnnotate(t, `let a = 1; let b = 2; let c = 3;`)
	result := Validate(tree, table)
	assert.False(t, result.Failed)
}
