package lexer

import (
	"fmt"

	"github.com/mcncl/jsontree/internal/models"
)

// TokenKind represents the type of a lexer token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota // never emitted; reported by the parser past the last token

	// Structural
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenColon        // :
	TokenComma        // ,

	// Literals
	TokenString // "text"
	TokenNumber // -123
	TokenBool   // true, false
	TokenNull   // null
)

// String returns a readable token kind name for diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenLeftBrace:
		return "'{'"
	case TokenRightBrace:
		return "'}'"
	case TokenLeftBracket:
		return "'['"
	case TokenRightBracket:
		return "']'"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBool:
		return "boolean"
	case TokenNull:
		return "null"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Token is a single lexical unit. Literal is set for String, Number, Bool
// and Null tokens and is Undefined for punctuation.
type Token struct {
	Kind    TokenKind
	Literal models.Value
	Offset  int // byte offset of the first character
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenString, TokenNumber, TokenBool:
		return fmt.Sprintf("%s %s", t.Kind, t.Literal)
	default:
		return t.Kind.String()
	}
}

var punctuation = map[byte]TokenKind{
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	':': TokenColon,
	',': TokenComma,
}
