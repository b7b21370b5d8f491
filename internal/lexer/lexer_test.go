package lexer

import (
	stderrors "errors"
	"testing"

	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_Structural(t *testing.T) {
	tokens, err := Tokenize(" { } [ ] : , ")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{
		TokenLeftBrace, TokenRightBrace, TokenLeftBracket, TokenRightBracket, TokenColon, TokenComma,
	}, kinds(tokens))
	assert.Equal(t, 1, tokens[0].Offset)
	assert.True(t, tokens[0].Literal.IsUndefined())
}

func TestTokenize_Literals(t *testing.T) {
	tokens, err := Tokenize("{\"foo\":\t[1,-23,\"three\",true,false,null]}\n")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{
		TokenLeftBrace, TokenString, TokenColon, TokenLeftBracket,
		TokenNumber, TokenComma, TokenNumber, TokenComma, TokenString, TokenComma,
		TokenBool, TokenComma, TokenBool, TokenComma, TokenNull,
		TokenRightBracket, TokenRightBrace,
	}, kinds(tokens))

	assert.True(t, tokens[1].Literal.Equal(models.StringValue("foo")))
	assert.True(t, tokens[4].Literal.Equal(models.IntValue(1)))
	assert.True(t, tokens[6].Literal.Equal(models.IntValue(-23)))
	assert.True(t, tokens[8].Literal.Equal(models.StringValue("three")))
	assert.True(t, tokens[10].Literal.Equal(models.BoolValue(true)))
	assert.True(t, tokens[12].Literal.Equal(models.BoolValue(false)))
	assert.True(t, tokens[14].Literal.IsNull())
}

func TestTokenize_Empty(t *testing.T) {
	tokens, err := Tokenize(" \n\t ")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenize_StringKeepsBackslashes(t *testing.T) {
	tokens, err := Tokenize(`"a\"`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	s, err := tokens[0].Literal.Str()
	require.NoError(t, err)
	assert.Equal(t, `a\`, s)
}

func TestTokenize_Offsets(t *testing.T) {
	tokens, err := Tokenize(`[ "ab" , 12 ]`)
	require.NoError(t, err)
	offsets := []int{}
	for _, tok := range tokens {
		offsets = append(offsets, tok.Offset)
	}
	assert.Equal(t, []int{0, 2, 7, 9, 12}, offsets)
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		char   rune
		reason string
	}{
		{"unexpected character", `{"a": @}`, 6, '@', "unexpected character"},
		{"unterminated string", `["abc`, 1, '"', "unterminated string"},
		{"lone minus", `[-]`, 2, ']', "malformed number"},
		{"minus at end", `-`, 1, '-', "malformed number"},
		{"overflow", `[99999999999999999999]`, 1, '9', "integer out of range"},
		{"fraction", `[1.5]`, 2, '.', "unexpected character"},
		{"capitalized literal", `[True]`, 1, 'T', "unexpected character"},
		{"literal prefix of word", `[nullx]`, 1, 'n', "unexpected character"},
		{"non-ascii", `[é]`, 1, 'é', "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.ErrorIs(t, err, errors.ErrInvalidJSON)

			var lexErr *errors.LexError
			require.True(t, stderrors.As(err, &lexErr))
			assert.Equal(t, tt.offset, lexErr.Offset)
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.reason, lexErr.Reason)
		})
	}
}

func TestTokenize_NumberBounds(t *testing.T) {
	tokens, err := Tokenize(`[9223372036854775807,-9223372036854775808,007]`)
	require.NoError(t, err)
	assert.True(t, tokens[1].Literal.Equal(models.IntValue(9223372036854775807)))
	assert.True(t, tokens[3].Literal.Equal(models.IntValue(-9223372036854775808)))
	assert.True(t, tokens[5].Literal.Equal(models.IntValue(7)))
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "'{'", Token{Kind: TokenLeftBrace}.String())
	assert.Equal(t, `string "x"`, Token{Kind: TokenString, Literal: models.StringValue("x")}.String())
	assert.Equal(t, "number 5", Token{Kind: TokenNumber, Literal: models.IntValue(5)}.String())
	assert.Equal(t, "null", Token{Kind: TokenNull, Literal: models.NullValue()}.String())
	assert.Equal(t, "EOF", TokenEOF.String())
}
