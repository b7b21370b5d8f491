// Package lexer turns raw JSON-like text into a flat sequence of tokens.
//
// The scanner is deliberately small: strings run to the next double quote
// with no escape processing, numbers are optionally negative decimal
// integers, and the only words are true, false and null.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/models"
)

const initialTokens = 16

type scanner struct {
	src string
	pos int
}

// Tokenize scans the whole of text. On failure no tokens are returned, only
// a *errors.LexError naming the offending character and its offset.
func Tokenize(text string) ([]Token, error) {
	s := scanner{src: text}
	tokens := make([]Token, 0, initialTokens)
	for {
		s.skipWhitespace()
		if s.pos >= len(s.src) {
			return tokens, nil
		}
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isWordByte(c byte) bool {
	return isDigit(c) || c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// next recognizes one token at s.pos: string, number, boolean, null, then
// punctuation, in that order.
func (s *scanner) next() (Token, error) {
	start := s.pos
	c := s.src[start]

	switch {
	case c == '"':
		return s.scanString()
	case c == '-' || isDigit(c):
		return s.scanNumber()
	}

	if s.matchWord("true") {
		return Token{Kind: TokenBool, Literal: models.BoolValue(true), Offset: start}, nil
	}
	if s.matchWord("false") {
		return Token{Kind: TokenBool, Literal: models.BoolValue(false), Offset: start}, nil
	}
	if s.matchWord("null") {
		return Token{Kind: TokenNull, Literal: models.NullValue(), Offset: start}, nil
	}

	if kind, ok := punctuation[c]; ok {
		s.pos++
		return Token{Kind: kind, Offset: start}, nil
	}

	return Token{}, s.fail(start, "unexpected character")
}

// scanString consumes everything up to the next double quote. Backslashes
// are ordinary characters, so `"a\"` is the complete string a\.
func (s *scanner) scanString() (Token, error) {
	start := s.pos
	end := strings.IndexByte(s.src[start+1:], '"')
	if end < 0 {
		return Token{}, s.fail(start, "unterminated string")
	}
	text := s.src[start+1 : start+1+end]
	s.pos = start + end + 2
	return Token{Kind: TokenString, Literal: models.StringValue(text), Offset: start}, nil
}

func (s *scanner) scanNumber() (Token, error) {
	start := s.pos
	i := start
	if s.src[i] == '-' {
		i++
	}
	digits := i
	for i < len(s.src) && isDigit(s.src[i]) {
		i++
	}
	if i == digits {
		return Token{}, s.fail(digits, "malformed number")
	}
	n, err := strconv.ParseInt(s.src[start:i], 10, 64)
	if err != nil {
		return Token{}, s.fail(start, "integer out of range")
	}
	s.pos = i
	return Token{Kind: TokenNumber, Literal: models.IntValue(n), Offset: start}, nil
}

// matchWord consumes word when it appears at s.pos as a whole word.
func (s *scanner) matchWord(word string) bool {
	if !strings.HasPrefix(s.src[s.pos:], word) {
		return false
	}
	end := s.pos + len(word)
	if end < len(s.src) && isWordByte(s.src[end]) {
		return false
	}
	s.pos = end
	return true
}

// fail builds a LexError for the character at offset. Past the end of input
// the character before it is reported.
func (s *scanner) fail(offset int, reason string) error {
	at := offset
	if at >= len(s.src) {
		at = len(s.src) - 1
	}
	r, _ := utf8.DecodeRuneInString(s.src[at:])
	return &errors.LexError{Offset: offset, Char: r, Reason: reason}
}
