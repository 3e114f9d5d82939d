package slrkit

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to tokenizers to define them.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals of a grammar.
//
// An example would be a token for an identifier:
//
//    TokType = Ident       // identifier for this kind of tokens (tokenizer specific)
//    Lexeme  = "count"     // lexeme how it appeared in the input stream
//    Value   = "id"        // name of the grammar terminal, if known to the scanner
//    Span    = 67…72       // occured from position 67 in the input stream
//
// If Value() is a string, parsers will use it as the name of the terminal. Otherwise
// the lexeme itself is taken as the terminal name.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// Terminal returns the name of the grammar terminal a token stands for.
func Terminal(t Token) string {
	if name, ok := t.Value().(string); ok && name != "" {
		return name
	}
	return t.Lexeme()
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a derivation tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
