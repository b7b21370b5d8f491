package errors

import (
	"fmt"
	"strconv"
)

// LexError reports text the lexer could not turn into a token.
type LexError struct {
	Offset int    // byte offset of the offending character
	Char   rune   // offending character
	Reason string // e.g. "unexpected character", "unterminated string"
}

func (e *LexError) Error() string {
	return "lex: " + e.describe()
}

func (e *LexError) describe() string {
	return fmt.Sprintf("%s %s at offset %d", e.Reason, strconv.QuoteRune(e.Char), e.Offset)
}

// Unwrap lets callers match any lexical failure against ErrInvalidJSON.
func (e *LexError) Unwrap() error {
	return ErrInvalidJSON
}

// ParseError reports a grammar violation found while walking the token sequence.
type ParseError struct {
	Offset   int    // byte offset of the offending token, -1 at end of input
	Expected string // what the grammar allowed here
	Found    string // what was actually there
	Message  string
	Err      error // optional cause such as ErrDepthExceeded
}

func (e *ParseError) Error() string {
	return "parse: " + e.describe()
}

func (e *ParseError) describe() string {
	var s string
	switch {
	case e.Message != "":
		s = e.Message
	case e.Expected != "":
		s = fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	default:
		s = "unexpected " + e.Found
	}
	if e.Message != "" && e.Expected != "" {
		s += fmt.Sprintf(" (expected %s, found %s)", e.Expected, e.Found)
	}
	if e.Offset >= 0 {
		s += fmt.Sprintf(" at offset %d", e.Offset)
	} else {
		s += " at end of input"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes both ErrInvalidJSON and the specific cause, if any.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidJSON}
	}
	return []error{ErrInvalidJSON, e.Err}
}

// NewAllocationError creates a new error for a container that refused to grow
func NewAllocationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAllocation,
		Message: message,
		Err:     ErrAllocation,
	}
}
