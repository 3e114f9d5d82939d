package lr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reserved symbols.
const (
	Epsilon   = "ε" // the empty string, never a left hand side
	EOFSymbol = "$" // end of input, never part of a grammar text
)

// --- Symbols ---------------------------------------------------------------

// SymbolKind tags a grammar symbol as either a terminal or a non-terminal.
type SymbolKind uint8

// Kinds of grammar symbols.
const (
	Terminal SymbolKind = iota
	NonTerminal
)

func (k SymbolKind) String() string {
	if k == NonTerminal {
		return "non-terminal"
	}
	return "terminal"
}

// Symbol is a symbol of a grammar. Symbols are interned per grammar, i.e. two
// symbols of the same grammar are equal if and only if their pointers are equal.
//
// The kind of a symbol is fixed when the grammar is constructed: every symbol
// which is the left hand side of a rule is a non-terminal.
type Symbol struct {
	Name  string     // name as it appears in the grammar
	Value int        // serial number of the symbol within its grammar
	kind  SymbolKind // terminal or non-terminal
}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.kind == Terminal
}

// Kind returns the kind of A.
func (A *Symbol) Kind() SymbolKind {
	return A.kind
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules (productions) of a grammar. Rules may contain
// epsilon-productions, which have an empty right hand side.
type Rule struct {
	Serial int       // order number of this rule within a grammar
	LHS    *Symbol   // symbol of left hand side
	rhs    []*Symbol // right hand side, empty for ε
}

// RHS returns the right hand side of a rule as a copy.
func (r *Rule) RHS() []*Symbol {
	rhs := make([]*Symbol, len(r.rhs))
	copy(rhs, r.rhs)
	return rhs
}

// Len returns the number of symbols of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps is a predicate: is r an epsilon-production?
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" ->")
	if r.IsEps() {
		b.WriteString(" " + Epsilon)
	}
	for _, A := range r.rhs {
		b.WriteString(" " + A.Name)
	}
	return b.String()
}

// --- Grammars --------------------------------------------------------------

// Grammar is a type for context-free grammars. Rule 0 is always the augmented
// start rule S' -> S. Grammars are immutable after construction.
// Create one with ParseGrammar or with a GrammarBuilder.
type Grammar struct {
	Name         string
	rules        []*Rule
	symbols      map[string]*Symbol
	symorder     []*Symbol // all symbols except EOF, in order of first appearance
	terminals    []*Symbol
	nonterminals []*Symbol
	byLHS        map[*Symbol][]*Rule
	eof          *Symbol
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule gets a grammar rule by serial number, or nil.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns all rules of g, ordered by serial number.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, len(g.rules))
	copy(rules, g.rules)
	return rules
}

// Start returns the augmented start symbol, i.e. the LHS of rule 0.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].LHS
}

// StartSymbol returns the start symbol of the un-augmented grammar.
func (g *Grammar) StartSymbol() *Symbol {
	return g.rules[0].rhs[0]
}

// EOF returns the end-of-input terminal $.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// SymbolByName gets a symbol for a given name, or nil if not found.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// Symbols returns all symbols of g in order of first appearance.
// The end-of-input symbol is not included.
func (g *Grammar) Symbols() []*Symbol {
	syms := make([]*Symbol, len(g.symorder))
	copy(syms, g.symorder)
	return syms
}

// Terminals returns the terminals of g in order of first appearance, not including $.
func (g *Grammar) Terminals() []*Symbol {
	terms := make([]*Symbol, len(g.terminals))
	copy(terms, g.terminals)
	return terms
}

// NonTerminals returns the non-terminals of g in order of first appearance.
// The augmented start symbol is not included.
func (g *Grammar) NonTerminals() []*Symbol {
	nts := make([]*Symbol, 0, len(g.nonterminals))
	for _, A := range g.nonterminals {
		if A != g.Start() {
			nts = append(nts, A)
		}
	}
	return nts
}

// EachSymbol iterates over all symbols of the grammar, in order of first appearance.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	for _, A := range g.symorder {
		f(A)
	}
}

// FindNonTermRules returns all rules with LHS A, ordered by serial number.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Rule {
	return g.byLHS[A]
}

// Dump is a debugging helper: dump the rules of a grammar to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar errors --------------------------------------------------------

// GrammarSyntaxError is returned for malformed grammar descriptions.
type GrammarSyntaxError struct {
	Line int    // line number (1…n) within the grammar text, 0 if unknown
	Text string // offending line or rule
	Msg  string
}

func (e *GrammarSyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar syntax error at line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	if e.Text != "" {
		return fmt.Sprintf("grammar syntax error: %s: %q", e.Msg, e.Text)
	}
	return "grammar syntax error: " + e.Msg
}

// --- Reading grammars from text --------------------------------------------

// ParseGrammar reads a grammar from its textual notation:
//
//    S' -> S
//    S  -> L = R | R
//    L  -> * R | id
//    R  -> L
//
// Alternatives are separated by '|', symbols by white-space. An alternative 'ε'
// denotes the empty string. Lines without '->' are ignored, as are lines
// starting with '#' or '//'.
func ParseGrammar(text string) (*Grammar, error) {
	return ReadGrammar("G", strings.NewReader(text))
}

type textRule struct {
	line int
	text string
	lhs  string
	alts [][]string
}

// ReadGrammar reads a grammar in textual notation (see ParseGrammar) from r.
func ReadGrammar(name string, r io.Reader) (*Grammar, error) {
	var rules []textRule
	lhsNames := map[string]bool{}
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		line := strings.TrimSpace(lines.Text())
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.Contains(line, "->") {
			continue
		}
		tr, err := splitRuleLine(lineno, line)
		if err != nil {
			return nil, err
		}
		lhsNames[tr.lhs] = true
		rules = append(rules, tr)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("cannot read grammar %s: %w", name, err)
	}
	b := NewGrammarBuilder(name)
	for _, tr := range rules {
		for _, alt := range tr.alts {
			rb := b.LHS(tr.lhs)
			rb.r.line, rb.r.text = tr.line, tr.text
			if len(alt) == 1 && alt[0] == Epsilon {
				rb.Epsilon()
				continue
			}
			for _, sym := range alt {
				if lhsNames[sym] {
					rb.N(sym)
				} else {
					rb.T(sym)
				}
			}
			rb.End()
		}
	}
	return b.Grammar()
}

func splitRuleLine(lineno int, line string) (textRule, error) {
	tr := textRule{line: lineno, text: line}
	parts := strings.SplitN(line, "->", 2)
	lhs := strings.Fields(parts[0])
	if len(lhs) == 0 {
		return tr, &GrammarSyntaxError{Line: lineno, Text: line, Msg: "missing left hand side"}
	}
	if len(lhs) > 1 {
		return tr, &GrammarSyntaxError{Line: lineno, Text: line, Msg: "left hand side must be a single symbol"}
	}
	tr.lhs = lhs[0]
	for _, alt := range strings.Split(parts[1], "|") {
		syms := strings.Fields(alt)
		if len(syms) == 0 {
			return tr, &GrammarSyntaxError{Line: lineno, Text: line,
				Msg: "empty alternative (use " + Epsilon + " for an empty right hand side)"}
		}
		if len(syms) > 1 {
			for _, sym := range syms {
				if sym == Epsilon {
					return tr, &GrammarSyntaxError{Line: lineno, Text: line,
						Msg: Epsilon + " must be the only symbol of an alternative"}
				}
			}
		}
		tr.alts = append(tr.alts, syms)
	}
	return tr, nil
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Create one with NewGrammarBuilder.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()
//
// Rule 0 of the resulting grammar will be the augmented start rule.
type GrammarBuilder struct {
	name  string
	rules []*builderRule
}

// RuleBuilder is a builder type for a single rule, obtained by GrammarBuilder.LHS.
type RuleBuilder struct {
	gb *GrammarBuilder
	r  *builderRule
}

type symDecl struct {
	name     string
	terminal bool
}

type builderRule struct {
	lhs  string
	rhs  []symDecl
	eps  bool
	done bool
	line int
	text string
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	r := &builderRule{lhs: s}
	gb.rules = append(gb.rules, r)
	return &RuleBuilder{gb: gb, r: r}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.r.rhs = append(rb.r.rhs, symDecl{name: s})
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.r.rhs = append(rb.r.rhs, symDecl{name: s, terminal: true})
	return rb
}

// Epsilon sets ε as the RHS of a production and ends the rule.
func (rb *RuleBuilder) Epsilon() {
	rb.r.eps = true
	rb.r.done = true
}

// End ends a rule.
func (rb *RuleBuilder) End() {
	rb.r.done = true
}

func (r *builderRule) String() string {
	if r.text != "" {
		return r.text
	}
	var b strings.Builder
	b.WriteString(r.lhs + " ->")
	for _, s := range r.rhs {
		b.WriteString(" " + s.name)
	}
	return b.String()
}

func (gb *GrammarBuilder) syntaxError(r *builderRule, msg string) error {
	return &GrammarSyntaxError{Line: r.line, Text: r.String(), Msg: msg}
}

// Grammar returns the grammar built, or an error if the rules do not form a
// valid grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, &GrammarSyntaxError{Msg: "grammar " + gb.name + " has no rules"}
	}
	lhsNames := map[string]bool{}
	for _, r := range gb.rules {
		if err := gb.checkRule(r); err != nil {
			return nil, err
		}
		lhsNames[r.lhs] = true
	}
	declared := map[string]bool{} // name -> is terminal
	for _, r := range gb.rules {
		for _, s := range r.rhs {
			if s.terminal && lhsNames[s.name] {
				return nil, gb.syntaxError(r, "symbol "+s.name+" is used as a terminal, but has rules")
			}
			if t, ok := declared[s.name]; ok && t != s.terminal {
				return nil, gb.syntaxError(r, "symbol "+s.name+" is used as terminal and as non-terminal")
			}
			declared[s.name] = s.terminal
		}
	}
	rules := gb.rules
	if !isAugmentedStartRule(rules) {
		start := rules[0].lhs + "'"
		for gb.isUsedName(start) {
			start += "'"
		}
		tracer().Debugf("augmenting grammar %s with rule %s -> %s", gb.name, start, rules[0].lhs)
		s0 := &builderRule{lhs: start, rhs: []symDecl{{name: rules[0].lhs}}, done: true}
		rules = append([]*builderRule{s0}, rules...)
	}
	return gb.makeGrammar(rules), nil
}

func (gb *GrammarBuilder) checkRule(r *builderRule) error {
	switch {
	case strings.TrimSpace(r.lhs) == "" || strings.ContainsAny(r.lhs, " \t\r\n"):
		return gb.syntaxError(r, "left hand side must be a single symbol")
	case r.lhs == Epsilon || r.lhs == EOFSymbol:
		return gb.syntaxError(r, "reserved symbol "+r.lhs+" cannot be a left hand side")
	case r.eps && len(r.rhs) > 0:
		return gb.syntaxError(r, Epsilon+" must be the only symbol of an alternative")
	case !r.eps && len(r.rhs) == 0:
		return gb.syntaxError(r, "empty right hand side (use "+Epsilon+")")
	}
	for _, s := range r.rhs {
		if s.name == EOFSymbol || s.name == Epsilon {
			return gb.syntaxError(r, "reserved symbol "+s.name+" not allowed in right hand side")
		}
		if s.name == "" || strings.ContainsAny(s.name, " \t\r\n") {
			return gb.syntaxError(r, "malformed symbol")
		}
	}
	return nil
}

// A first rule S' -> S will be taken as the augmented start rule, if S is a
// non-terminal, S' has no other rules and S' is not referenced anywhere.
func isAugmentedStartRule(rules []*builderRule) bool {
	r0 := rules[0]
	if r0.eps || len(r0.rhs) != 1 || r0.rhs[0].terminal {
		return false
	}
	for _, r := range rules[1:] {
		if r.lhs == r0.lhs {
			return false
		}
	}
	for _, r := range rules {
		for _, s := range r.rhs {
			if s.name == r0.lhs {
				return false
			}
		}
	}
	return true
}

func (gb *GrammarBuilder) isUsedName(name string) bool {
	for _, r := range gb.rules {
		if r.lhs == name {
			return true
		}
		for _, s := range r.rhs {
			if s.name == name {
				return true
			}
		}
	}
	return false
}

func (gb *GrammarBuilder) makeGrammar(rules []*builderRule) *Grammar {
	g := &Grammar{
		Name:    gb.name,
		symbols: make(map[string]*Symbol),
		byLHS:   make(map[*Symbol][]*Rule),
	}
	intern := func(name string, kind SymbolKind) *Symbol {
		if A, ok := g.symbols[name]; ok {
			return A
		}
		A := &Symbol{Name: name, Value: len(g.symorder), kind: kind}
		g.symbols[name] = A
		g.symorder = append(g.symorder, A)
		if kind == Terminal {
			g.terminals = append(g.terminals, A)
		} else {
			g.nonterminals = append(g.nonterminals, A)
		}
		return A
	}
	for serial, br := range rules {
		r := &Rule{Serial: serial, LHS: intern(br.lhs, NonTerminal)}
		for _, s := range br.rhs {
			kind := NonTerminal
			if s.terminal {
				kind = Terminal
			}
			r.rhs = append(r.rhs, intern(s.name, kind))
		}
		g.rules = append(g.rules, r)
		g.byLHS[r.LHS] = append(g.byLHS[r.LHS], r)
	}
	g.eof = &Symbol{Name: EOFSymbol, Value: len(g.symorder), kind: Terminal}
	g.symbols[EOFSymbol] = g.eof
	g.Dump()
	return g
}
