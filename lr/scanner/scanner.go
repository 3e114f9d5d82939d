/*
Package scanner defines an interface for scanners to be used with the parse
driver of package slr.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Tokens are mapped to grammar terminals by slrkit.Terminal: if a token's value is
a string, it names the terminal, otherwise the lexeme does.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrkit"
)

// tracer traces with key 'slrkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() slrkit.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune                      // last token this scanner has produced
	Error        func(error)               // error handler
	unifyStrings bool                      // convert single chars to strings
	terminals    map[slrkit.TokType]string // token type → terminal name
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() slrkit.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	token := DefaultToken{
		kind:   slrkit.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   slrkit.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
	if name, ok := t.terminals[token.kind]; ok {
		token.Val = name
	}
	return token
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   slrkit.TokType
	lexeme string
	Val    interface{}
	span   slrkit.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ slrkit.TokType, lexeme string, span slrkit.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() slrkit.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() slrkit.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q%v", t.lexeme, t.span)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Terminals maps token types to terminal names, e.g.
//
//     scanner.Terminals(map[slrkit.TokType]string{scanner.Ident: "id", scanner.Int: "num"})
//
// Tokens of other types are mapped to terminals by their lexeme.
func Terminals(m map[slrkit.TokType]string) Option {
	return func(t *DefaultTokenizer) {
		t.terminals = m
	}
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case slrkit.Token:
		return t.Lexeme()
	default:
		return fmt.Sprintf("%v", t)
	}
}
