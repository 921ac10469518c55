package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabla-lang/nabla/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSkipsSpaceAndComments(t *testing.T) {
	src := []byte("let x = 1; // trailing comment\n/* block */let y = 2;")
	tokens, bad, what := Tokenize(src)
	require.Nil(t, bad)
	require.Empty(t, what)

	assert.Equal(t, []token.Kind{
		token.Identifier, token.Identifier, token.Symbol, token.IntLiteral, token.Symbol,
		token.Identifier, token.Identifier, token.Symbol, token.IntLiteral, token.Symbol,
	}, kinds(tokens))
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLiteral},
		{"3.14", token.FloatLiteral},
		{".5", token.FloatLiteral},
		{"1e10", token.FloatLiteral},
		{"2E-3", token.FloatLiteral},
	}
	for _, tt := range tests {
		tokens, bad, _ := Tokenize([]byte(tt.src))
		require.Nil(t, bad, tt.src)
		require.Len(t, tokens, 1, tt.src)
		assert.Equal(t, tt.kind, tokens[0].Kind, tt.src)
	}
}

func TestTokenizeExponentWithNoDigitsIsNotConsumed(t *testing.T) {
	// "1e" has no digits following the 'e', so it isn't an exponent: the
	// number token stops at "1" and "e" is scanned separately.
	tokens, bad, _ := Tokenize([]byte("1e"))
	require.Nil(t, bad)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.IntLiteral, tokens[0].Kind)
	assert.Equal(t, token.Identifier, tokens[1].Kind)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tokens, bad, what := Tokenize([]byte(`"unterminated`))
	assert.Nil(t, tokens)
	require.NotNil(t, bad)
	assert.Equal(t, "unterminated string", what)
	assert.Equal(t, token.IncompleteStringLiteral, bad.Kind)
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	_, bad, what := Tokenize([]byte("/* never closes"))
	require.NotNil(t, bad)
	assert.Equal(t, "unterminated comment", what)
}

func TestTokenizeStringEscapeIsNotResolvedByLexer(t *testing.T) {
	// The lexer only needs to find the closing quote; \" must not end the
	// string early, but the escape's meaning is the IR builder's concern.
	tokens, bad, _ := Tokenize([]byte(`"a\"b"`))
	require.Nil(t, bad)
	require.Len(t, tokens, 1)
	assert.Equal(t, `"a\"b"`, tokens[0].Text())
}

func TestLineAndColumnTracking(t *testing.T) {
	tokens, bad, _ := Tokenize([]byte("let x\n  = 1;"))
	require.Nil(t, bad)
	require.Len(t, tokens, 5)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	// "=" is on line 2, indented two spaces.
	assert.Equal(t, 2, tokens[2].Line)
	assert.Equal(t, 3, tokens[2].Column)
}
