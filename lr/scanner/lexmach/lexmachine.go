package lexmach

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrkit"
	"github.com/npillmayer/slrkit/lr"
	"github.com/npillmayer/slrkit/lr/scanner"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'slrkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(Literal(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// ForGrammar creates a lexmachine adapter recognizing the terminals of a
// grammar. Every terminal is matched literally, unless patterns holds a
// regular expression for it:
//
//     lexmach.ForGrammar(g, map[string]string{"id": `[a-z]+`, "num": `[0-9]+`})
//
// Literal terminals take precedence over patterns. White-space is skipped.
// Tokens carry the terminal name as their value.
func ForGrammar(g *lr.Grammar, patterns map[string]string) (*LMAdapter, error) {
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	ids := make(map[string]int)
	for n, a := range g.Terminals() {
		ids[a.Name] = n + 1
		if _, ok := patterns[a.Name]; ok {
			continue
		}
		tracer().Debugf("terminal %q matched literally", a.Name)
		adapter.Lexer.Add([]byte(Literal(a.Name)), MakeTerminal(a.Name, ids[a.Name]))
	}
	names := maps.Keys(patterns)
	slices.Sort(names)
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			tracer().Infof("pattern for %q does not match a terminal of grammar %s", name, g.Name)
			id = len(ids) + 1
			ids[name] = id
		}
		adapter.Lexer.Add([]byte(patterns[name]), MakeTerminal(name, id))
	}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError, end: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64 // length of input
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface.
// Unconsumed input is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() slrkit.Token {
	eofToken := scanner.MakeDefaultToken(scanner.EOF, "", slrkit.Span{lms.end, lms.end})
	if lms.scanner == nil {
		return eofToken
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return eofToken
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	t := scanner.MakeDefaultToken(
		slrkit.TokType(token.Type),
		string(token.Lexeme),
		slrkit.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
	t.Val = token.Value
	return t
}

// ---------------------------------------------------------------------------

// Literal creates a lexmachine regular expression matching s literally.
func Literal(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 && !isAlnum(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
// The value of the token is its lexeme.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// MakeTerminal is a pre-defined action which wraps a scanned match into a token
// for a grammar terminal. The value of the token is the name of the terminal.
func MakeTerminal(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, name, m), nil
	}
}
