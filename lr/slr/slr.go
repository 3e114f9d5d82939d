package slr

import (
	"errors"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/slrkit"
	"github.com/npillmayer/slrkit/lr"
	"github.com/npillmayer/slrkit/lr/scanner"
)

// ActionLookup is the view of an ACTION table the parser relies on.
// *lr.ActionTable implements it.
type ActionLookup interface {
	Cell(state int, a *lr.Symbol) lr.Cell
}

// GotoLookup is the view of a GOTO table the parser relies on.
// *lr.GotoTable implements it.
type GotoLookup interface {
	Goto(state int, A *lr.Symbol) (int, bool)
}

// DefaultMaxSteps is the default limit for the number of actions of a parse.
const DefaultMaxSteps = 10000

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...).
// A parser owns its stack, therefore it must not be used by more than one
// goroutine at a time.
type Parser struct {
	G        *lr.Grammar
	stack    []stackitem  // parser stack
	gotoT    GotoLookup   // GOTO table
	actionT  ActionLookup // ACTION table
	maxSteps int
}

// We store pairs of state-IDs and symbols on the parse stack, together with
// the derivation tree for the symbol.
type stackitem struct {
	state int        // ID of a CFSM state
	sym   *lr.Symbol // grammar symbol (terminal or non-terminal), nil for the bottom
	node  *Node      // derivation of sym
}

// Option configures a parser.
type Option func(p *Parser)

// MaxSteps sets the maximum number of actions for a parse. Exceeding it results
// in a DriverError.
func MaxSteps(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxSteps = n
		}
	}
}

// NewParser creates an SLR(1) parser.
func NewParser(g *lr.Grammar, gotoTable GotoLookup, actionTable ActionLookup, opts ...Option) *Parser {
	p := &Parser{
		G:        g,
		stack:    make([]stackitem, 0, 64),
		gotoT:    gotoTable,
		actionT:  actionTable,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunParse parses a sequence of terminal names with a fresh parser for the
// grammar of actionT. A trailing $ is appended if missing.
func RunParse(tokens []string, actionT *lr.ActionTable, gotoT *lr.GotoTable) (*Trace, error) {
	return NewParser(actionT.Grammar(), gotoT, actionT).Parse(tokens)
}

// Parse parses a sequence of terminal names. A trailing $ is appended if missing.
//
// Parse returns the trace of the parse, even if an error occured. If the
// parse stops at a conflicting ACTION table cell, no error is returned,
// but trace.Conflict will be set.
func (p *Parser) Parse(tokens []string) (*Trace, error) {
	input := make([]slrkit.Token, len(tokens))
	for i, name := range tokens {
		typ := slrkit.TokType(scanner.Ident)
		if name == lr.EOFSymbol {
			typ = scanner.EOF
		}
		input[i] = scanner.MakeDefaultToken(typ, name, slrkit.Span{uint64(i), uint64(i + 1)})
	}
	return p.run(input)
}

// ParseInput parses the tokens produced by a tokenizer, up to its EOF token.
// Tokens are mapped to terminals by slrkit.Terminal.
func (p *Parser) ParseInput(scan scanner.Tokenizer) (*Trace, error) {
	var scanErr error
	scan.SetErrorHandler(func(err error) {
		if scanErr == nil {
			scanErr = err
		}
	})
	var input []slrkit.Token
	for {
		token := scan.NextToken()
		if token.TokType() == scanner.EOF {
			break
		}
		if scanErr != nil {
			return nil, scanErr
		}
		tracer().Debugf("got token %q from scanner", token.Lexeme())
		input = append(input, token)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return p.run(input)
}

func (p *Parser) run(input []slrkit.Token) (*Trace, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return nil, errors.New("SLR(1)-parser not initialized")
	}
	names := make([]string, len(input), len(input)+1)
	for i, token := range input {
		names[i] = slrkit.Terminal(token)
	}
	if len(names) == 0 || names[len(names)-1] != lr.EOFSymbol {
		var end uint64
		if len(input) > 0 {
			end = input[len(input)-1].Span().To()
		}
		names = append(names, lr.EOFSymbol)
		input = append(input, scanner.MakeDefaultToken(scanner.EOF, lr.EOFSymbol, slrkit.Span{end, end}))
	}
	trace := &Trace{}
	p.stack = append(p.stack[:0], stackitem{state: 0})
	pos := 0
	// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
	for steps := 0; ; steps++ {
		if steps >= p.maxSteps {
			err := &DriverError{Steps: steps, Limit: p.maxSteps}
			stuck(err)
			return trace, err
		}
		tos := p.stack[len(p.stack)-1]
		a := p.G.SymbolByName(names[pos])
		var cell lr.Cell
		if a != nil && a.IsTerminal() {
			cell = p.actionT.Cell(tos.state, a)
		}
		action := cell.Action()
		step := p.snapshot(names[pos:])
		step.Kind = action.Kind
		step.Action = action.String()
		tracer().Debugf("action(%d,%s) = %v", tos.state, names[pos], cell)
		switch action.Kind {
		case lr.ErrorAction:
			step.Error = true
			trace.Steps = append(trace.Steps, step)
			return trace, &SyntaxError{
				State:    tos.state,
				Symbol:   names[pos],
				Position: pos,
				Expected: p.expected(tos.state),
			}
		case lr.ConflictAction:
			step.Action = cell.String()
			step.Conflict = true
			trace.Steps = append(trace.Steps, step)
			trace.Conflict = &lr.Conflict{State: tos.state, Terminal: a, Cell: cell}
			tracer().Infof("parser stopped at conflict %v", trace.Conflict)
			return trace, nil
		case lr.AcceptAction:
			trace.Steps = append(trace.Steps, step)
			trace.Accepted = true
			trace.Tree = tos.node
			tracer().Infof("input accepted after %d steps", len(trace.Steps))
			return trace, nil
		case lr.ShiftAction:
			trace.Steps = append(trace.Steps, step)
			leaf := &Node{Symbol: a, Token: input[pos], Span: input[pos].Span()}
			p.stack = append(p.stack, stackitem{state: action.Target, sym: a, node: leaf})
			if pos < len(names)-1 { // never move beyond $
				pos++
			}
		case lr.ReduceAction:
			if err := p.reduce(action.Target); err != nil {
				step.Error = true
				trace.Steps = append(trace.Steps, step)
				stuck(err)
				return trace, err
			}
			trace.Steps = append(trace.Steps, step)
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
// They are replaced by the state GOTO(S0, LHS), with S0 being the state
// uncovered by popping the handle.
func (p *Parser) reduce(ruleno int) error {
	rule := p.G.Rule(ruleno)
	if rule == nil {
		return &GotoError{State: p.stack[len(p.stack)-1].state, Symbol: "?", Rule: ruleno}
	}
	tracer().Debugf("reduce %v", rule)
	n := rule.Len()
	if len(p.stack)-1 < n {
		return &GotoError{Symbol: rule.LHS.Name, Rule: ruleno, Underflow: true}
	}
	node := &Node{Symbol: rule.LHS, Rule: rule}
	for _, item := range p.stack[len(p.stack)-n:] {
		node.Children = append(node.Children, item.node)
		node.Span = node.Span.Extend(item.node.Span)
	}
	p.stack = p.stack[:len(p.stack)-n]
	uncovered := p.stack[len(p.stack)-1].state
	next, ok := p.gotoT.Goto(uncovered, rule.LHS)
	if !ok {
		return &GotoError{State: uncovered, Symbol: rule.LHS.Name, Rule: ruleno}
	}
	p.stack = append(p.stack, stackitem{state: next, sym: rule.LHS, node: node})
	return nil
}

func (p *Parser) snapshot(remaining []string) Step {
	var b strings.Builder
	for n, item := range p.stack {
		if n > 0 {
			b.WriteString(" ")
			b.WriteString(item.sym.Name)
			b.WriteString(" ")
		}
		b.WriteString(strconv.Itoa(item.state))
	}
	input := make([]string, len(remaining))
	copy(input, remaining)
	return Step{Stack: b.String(), Depth: len(p.stack), Input: input}
}

// expected lists the terminals with an ACTION entry for a state.
func (p *Parser) expected(state int) []string {
	var exp []string
	for _, a := range append(p.G.Terminals(), p.G.EOF()) {
		if !p.actionT.Cell(state, a).IsEmpty() {
			exp = append(exp, a.Name)
		}
	}
	return exp
}

func stuck(err error) {
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`SLR-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + err.Error())
	}
}
