package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The textbook grammar for assignments with pointer dereference. It is not
// SLR(1): FOLLOW(R) contains '='.
const assignmentGrammar = `
S' -> S
S  -> L = R | R
L  -> * R | id
R  -> L
`

// The classic expression grammar, which is SLR(1) but not LR(0).
const expressionGrammar = `
# expressions
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

const nullableGrammar = `
S -> A B c
A -> a | ε
B -> b | ε
`

func mustParse(t *testing.T, text string) *Grammar {
	t.Helper()
	g, err := ParseGrammar(text)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func names(syms []*Symbol) []string {
	n := make([]string, len(syms))
	for i, A := range syms {
		n[i] = A.Name
	}
	return n
}

func TestGrammarFromText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, assignmentGrammar)
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, "S'", g.Start().Name)
	assert.Equal(t, "S", g.StartSymbol().Name)
	assert.Equal(t, []string{"S", "L", "R"}, names(g.NonTerminals()))
	assert.Equal(t, []string{"=", "*", "id"}, names(g.Terminals()))
	assert.Equal(t, "S -> L = R", g.Rule(1).String())
	assert.Equal(t, "L -> id", g.Rule(4).String())
	assert.Nil(t, g.Rule(6))
	assert.True(t, g.SymbolByName("id").IsTerminal())
	assert.False(t, g.SymbolByName("R").IsTerminal())
	assert.True(t, g.SymbolByName(EOFSymbol).IsTerminal())
	for n, r := range g.Rules() {
		assert.Equal(t, n, r.Serial)
	}
}

func TestGrammarAugmentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, expressionGrammar)
	assert.Equal(t, 7, g.Size())
	assert.Equal(t, "E' -> E", g.Rule(0).String())
	assert.Equal(t, []string{"E", "T", "F"}, names(g.NonTerminals()))
	//
	g = mustParse(t, "S -> a S | b\nS' -> x")
	assert.Equal(t, "S'' -> S", g.Rule(0).String(), "augmented start must not clash with S'")
}

func TestGrammarEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, nullableGrammar)
	r := g.FindNonTermRules(g.SymbolByName("A"))
	require.Len(t, r, 2)
	assert.True(t, r[1].IsEps())
	assert.Equal(t, "A -> ε", r[1].String())
	assert.Equal(t, 0, r[1].Len())
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").T("b").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, "G", g.Name)
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, "S' -> S", g.Rule(0).String())
}

func TestGrammarSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	inputs := []struct {
		text string
		msg  string
	}{
		{"A ->", "empty alternative"},
		{"A -> a |", "empty alternative"},
		{" -> a", "missing left hand side"},
		{"A B -> a", "single symbol"},
		{"A -> a ε", "only symbol"},
		{"A -> a $", "reserved symbol"},
		{"", "no rules"},
	}
	for _, input := range inputs {
		_, err := ParseGrammar(input.text)
		require.Error(t, err, input.text)
		var gerr *GrammarSyntaxError
		if assert.True(t, errors.As(err, &gerr), "expected a grammar syntax error for %q", input.text) {
			assert.True(t, strings.Contains(gerr.Msg, input.msg), "%q: unexpected message %q", input.text, gerr.Msg)
		}
	}
}

func TestGrammarBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("A").End()
	b.LHS("A").T("a").End()
	_, err := b.Grammar()
	assert.Error(t, err, "A is a terminal and has a rule")
	//
	b = NewGrammarBuilder("G")
	b.LHS("S").T("x").N("x").End()
	_, err = b.Grammar()
	assert.Error(t, err, "x is terminal and non-terminal")
	//
	b = NewGrammarBuilder("G")
	b.LHS("S").End()
	_, err = b.Grammar()
	assert.Error(t, err, "empty rule without ε")
}
