package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/lexer"
	"github.com/mcncl/jsontree/internal/models"
)

// DefaultMaxDepth is the deepest container nesting accepted by default.
const DefaultMaxDepth = models.DefaultMaxDepth

type options struct {
	maxDepth    int
	maxElements int
}

// Option tunes parser limits.
type Option func(*options)

// WithMaxDepth sets how many containers may nest inside each other.
// Values below one keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithMaxElements caps the number of children of any single array or object.
// Values below one keep the default.
func WithMaxElements(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxElements = n
		}
	}
}

// Parser walks a token sequence once, left to right, with a single shared
// cursor. Nested calls resume exactly where the previous one stopped.
type Parser struct {
	tokens []lexer.Token
	pos    int
	opts   options
}

// NewParser creates a parser over tokens. The tokens are only read.
func NewParser(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		opts: options{
			maxDepth:    DefaultMaxDepth,
			maxElements: models.DefaultMaxElements,
		},
	}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// ParseTokens parses the complete token sequence into one value. When isRoot
// is set the value must be an object or an array. Tokens left over after the
// value are an error.
func ParseTokens(tokens []lexer.Token, isRoot bool, opts ...Option) (models.Value, error) {
	return NewParser(tokens, opts...).Parse(isRoot)
}

// Parse consumes every token. Either the whole tree is returned or an
// error is, never both.
func (p *Parser) Parse(isRoot bool) (models.Value, error) {
	v, err := p.value(isRoot, p.opts.maxDepth)
	if err != nil {
		return models.Value{}, err
	}
	if p.pos < len(p.tokens) {
		v.Destroy()
		err := p.unexpected(p.peek(), "end of input")
		err.Err = errors.ErrMultipleJSON
		return models.Value{}, err
	}
	return v, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TokenEOF, Offset: -1}
	}
	return p.tokens[p.pos]
}

func (p *Parser) unexpected(tok lexer.Token, expected string) *errors.ParseError {
	return &errors.ParseError{
		Offset:   tok.Offset,
		Expected: expected,
		Found:    tok.String(),
	}
}

func (p *Parser) expect(kind lexer.TokenKind) error {
	tok := p.peek()
	if tok.Kind != kind {
		return p.unexpected(tok, kind.String())
	}
	p.pos++
	return nil
}

// value := object | array | string | number | bool | null
func (p *Parser) value(isRoot bool, depth int) (models.Value, error) {
	tok := p.peek()
	if isRoot && tok.Kind != lexer.TokenLeftBrace && tok.Kind != lexer.TokenLeftBracket {
		return models.Value{}, &errors.ParseError{
			Offset:   tok.Offset,
			Message:  errors.ErrRootNotContainer.Error(),
			Expected: "'{' or '['",
			Found:    tok.String(),
			Err:      errors.ErrRootNotContainer,
		}
	}

	switch tok.Kind {
	case lexer.TokenLeftBrace:
		return p.object(depth)
	case lexer.TokenLeftBracket:
		return p.array(depth)
	case lexer.TokenString, lexer.TokenNumber, lexer.TokenBool, lexer.TokenNull:
		p.pos++
		return tok.Literal, nil
	default:
		return models.Value{}, p.unexpected(tok, "value")
	}
}

func (p *Parser) enter(depth int) error {
	if depth > 0 {
		return nil
	}
	tok := p.peek()
	return &errors.ParseError{
		Offset:  tok.Offset,
		Message: fmt.Sprintf("nesting deeper than %d levels", p.opts.maxDepth),
		Found:   tok.String(),
		Err:     errors.ErrDepthExceeded,
	}
}

func (p *Parser) refused(tok lexer.Token, err error) *errors.ParseError {
	return &errors.ParseError{
		Offset:  tok.Offset,
		Message: "container too large",
		Found:   tok.String(),
		Err:     err,
	}
}

// object := '{' ( string ':' value ( ',' string ':' value )* )? '}'
func (p *Parser) object(depth int) (models.Value, error) {
	if err := p.enter(depth); err != nil {
		return models.Value{}, err
	}
	p.pos++

	obj := models.NewObject(0)
	obj.SetLimit(p.opts.maxElements)
	fail := func(err error) (models.Value, error) {
		partial := models.ObjectValue(obj)
		partial.Destroy()
		return models.Value{}, err
	}

	if p.peek().Kind == lexer.TokenRightBrace {
		p.pos++
		return models.ObjectValue(obj), nil
	}

	for {
		keyTok := p.peek()
		if keyTok.Kind != lexer.TokenString {
			return fail(p.unexpected(keyTok, "string key"))
		}
		p.pos++
		key, err := keyTok.Literal.Str()
		if err != nil {
			return fail(err)
		}

		if err := p.expect(lexer.TokenColon); err != nil {
			return fail(err)
		}

		v, err := p.value(false, depth-1)
		if err != nil {
			return fail(err)
		}
		if err := obj.Append(key, v); err != nil {
			v.Destroy()
			return fail(p.refused(keyTok, err))
		}

		switch next := p.peek(); next.Kind {
		case lexer.TokenComma:
			p.pos++
		case lexer.TokenRightBrace:
			p.pos++
			return models.ObjectValue(obj), nil
		default:
			return fail(p.unexpected(next, "',' or '}'"))
		}
	}
}

// array := '[' ( value ( ',' value )* )? ']'
func (p *Parser) array(depth int) (models.Value, error) {
	if err := p.enter(depth); err != nil {
		return models.Value{}, err
	}
	p.pos++

	arr := models.NewArray(0)
	arr.SetLimit(p.opts.maxElements)
	fail := func(err error) (models.Value, error) {
		partial := models.ArrayValue(arr)
		partial.Destroy()
		return models.Value{}, err
	}

	if p.peek().Kind == lexer.TokenRightBracket {
		p.pos++
		return models.ArrayValue(arr), nil
	}

	for {
		itemTok := p.peek()
		v, err := p.value(false, depth-1)
		if err != nil {
			return fail(err)
		}
		if err := arr.Append(v); err != nil {
			v.Destroy()
			return fail(p.refused(itemTok, err))
		}

		switch next := p.peek(); next.Kind {
		case lexer.TokenComma:
			p.pos++
		case lexer.TokenRightBracket:
			p.pos++
			return models.ArrayValue(arr), nil
		default:
			return fail(p.unexpected(next, "',' or ']'"))
		}
	}
}

// ParseString lexes and parses a complete document held in memory.
func ParseString(jsonString string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	tokens, err := lexer.Tokenize(jsonString)
	if err != nil {
		return models.Value{}, err
	}
	return ParseTokens(tokens, true, opts...)
}

// Parse reads everything from reader and parses it as one document.
func Parse(reader io.Reader, opts ...Option) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data), opts...)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseString(string(data), opts...)
}
