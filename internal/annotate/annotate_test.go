package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabla-lang/nabla/internal/ast"
	"github.com/nabla-lang/nabla/internal/lexer"
	"github.com/nabla-lang/nabla/internal/parser"
	"github.com/nabla-lang/nabla/internal/types"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	toks, bad, what := lexer.Tokenize([]byte(src))
	require.Nil(t, bad, what)
	tree, err := parser.ParseAll(toks)
	require.NoError(t, err)
	return tree
}

func TestAnnotateResolvesIntAdd(t *testing.T) {
	tree := mustParse(t, `let x = 1 + 2;`)
	table, diags := Annotate(tree)
	assert.Empty(t, diags)

	decl := tree.Nodes[0].(*ast.Decl)
	add := decl.Value.(*ast.Add)
	assert.Equal(t, AddInt, table.Add[add].Op)
	assert.True(t, types.IntType.Equal(table.Add[add].ResultType))
	assert.True(t, types.IntType.Equal(table.Decl[decl].Type))
}

func TestAnnotateResolvesFloatMul(t *testing.T) {
	tree := mustParse(t, `let x = 1.5 * 2.0;`)
	table, diags := Annotate(tree)
	assert.Empty(t, diags)

	decl := tree.Nodes[0].(*ast.Decl)
	mul := decl.Value.(*ast.Mul)
	assert.Equal(t, MulFloat, table.Mul[mul].Op)
}

func TestAnnotateMixedAddIsUnresolved(t *testing.T) {
	tree := mustParse(t, `let x = 1 + 2.0;`)
	table, _ := Annotate(tree)
	decl := tree.Nodes[0].(*ast.Decl)
	add := decl.Value.(*ast.Add)
	assert.Equal(t, AddNone, table.Add[add].Op)
}

func TestAnnotateVarResolvesToPrecedingDecl(t *testing.T) {
	tree := mustParse(t, `let x = 1; let y = x + 1;`)
	table, diags := Annotate(tree)
	assert.Empty(t, diags)

	xDecl := tree.Nodes[0].(*ast.Decl)
	yDecl := tree.Nodes[1].(*ast.Decl)
	add := yDecl.Value.(*ast.Add)
	v := add.Left.(*ast.Var)

	require.NotNil(t, table.Var[v].Decl)
	assert.Same(t, xDecl, table.Var[v].Decl)
}

func TestAnnotateSelfReferenceDoesNotResolve(t *testing.T) {
	tree := mustParse(t, `let x = x + 1;`)
	table, _ := Annotate(tree)
	decl := tree.Nodes[0].(*ast.Decl)
	add := decl.Value.(*ast.Add)
	v := add.Left.(*ast.Var)
	assert.Nil(t, table.Var[v].Decl)
}

func TestAnnotateUnimplementedConstructsProduceOneDiagnosticEach(t *testing.T) {
	tree := mustParse(t, `
		fn f(a: Int) { return a; }
		struct S { a: Int }
	`)
	_, diags := Annotate(tree)
	// One each for the fn, the return nested in its body, and the struct.
	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, "not yet implemented", d.What)
	}
}

func TestAnnotateCallInsidePrintIsReportedOnce(t *testing.T) {
	tree := mustParse(t, `print(f(1));`)
	_, diags := Annotate(tree)
	require.Len(t, diags, 1)
	assert.Equal(t, "not yet implemented", diags[0].What)
}
