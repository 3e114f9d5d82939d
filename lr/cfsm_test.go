package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemString(t *testing.T) {
	g := mustParse(t, nullableGrammar)
	r := g.Rule(1) // S -> A B c
	i, A := StartItem(r)
	assert.Equal(t, "A", A.Name)
	assert.Equal(t, "S → ·A B c", i.String())
	i = i.Advance()
	assert.Equal(t, "S → A ·B c", i.String())
	assert.Equal(t, []string{"A"}, names(i.Prefix()))
	i = i.Advance().Advance()
	assert.True(t, i.IsComplete())
	assert.Equal(t, "S → A B c·", i.String())
	assert.Equal(t, i, i.Advance())
	eps, A := StartItem(g.FindNonTermRules(g.SymbolByName("B"))[1])
	assert.Nil(t, A)
	assert.True(t, eps.IsComplete())
	assert.Equal(t, "B → ·", eps.String())
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, expressionGrammar)
	start, _ := StartItem(g.Rule(0))
	S := newItemSet(start)
	C := Closure(g, S)
	assert.Equal(t, 7, C.Size())
	assert.Equal(t, 1, S.Size(), "closure must not modify its argument")
	for _, x := range S.Values() {
		assert.True(t, C.Contains(x), "closure must contain its argument")
	}
	assert.True(t, Closure(g, C).Equals(C), "closure must be idempotent")
}

func TestClosureWithEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, nullableGrammar)
	start, _ := StartItem(g.Rule(0))
	C := Closure(g, newItemSet(start))
	// S' → ·S, S → ·A B c, A → ·a, A → ·
	assert.Equal(t, 4, C.Size())
	G := Goto(g, C, g.SymbolByName("A"))
	// S → A ·B c, B → ·b, B → ·
	assert.Equal(t, 3, G.Size())
}

func TestGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, expressionGrammar)
	start, _ := StartItem(g.Rule(0))
	I0 := Closure(g, newItemSet(start))
	I1 := Goto(g, I0, g.SymbolByName("E"))
	assert.Equal(t, "{ E' → E·, E → E ·+ T }", itemSetString(I1))
	assert.True(t, Goto(g, I0, g.SymbolByName(")")).Empty())
	I4 := Goto(g, I0, g.SymbolByName("("))
	assert.Equal(t, 7, I4.Size())
	assert.True(t, Goto(g, I4, g.SymbolByName("(")).Equals(I4))
}

func TestItemSetHashIgnoresOrder(t *testing.T) {
	g := mustParse(t, expressionGrammar)
	i1, _ := StartItem(g.Rule(1))
	i2, _ := StartItem(g.Rule(2))
	assert.Equal(t, itemSetHash(newItemSet(i1, i2)), itemSetHash(newItemSet(i2, i1)))
	assert.NotEqual(t, itemSetHash(newItemSet(i1)), itemSetHash(newItemSet(i1.Advance())))
}

func TestCFSMExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, expressionGrammar)
	cfsm := BuildAutomaton(g)
	assert.Equal(t, 12, cfsm.Size())
	start, _ := StartItem(g.Rule(0))
	assert.True(t, cfsm.State(0).ItemSet().Equals(Closure(g, newItemSet(start))))
	assert.Equal(t, cfsm.S0, cfsm.State(0))
	s1, ok := cfsm.Transition(0, g.SymbolByName("E"))
	require.True(t, ok)
	assert.Equal(t, []int{s1}, cfsm.AcceptingStates())
	_, ok = cfsm.Transition(0, g.SymbolByName(")"))
	assert.False(t, ok, "no transition for empty GOTO sets")
	assert.Nil(t, cfsm.State(12))
}

func TestCFSMStatesAreDistinct(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	for _, text := range []string{assignmentGrammar, expressionGrammar, nullableGrammar} {
		g := mustParse(t, text)
		cfsm := BuildAutomaton(g)
		states := cfsm.States()
		for n, s := range states {
			assert.Equal(t, n, s.ID)
			assert.False(t, s.ItemSet().Empty())
			for _, s2 := range states[n+1:] {
				assert.False(t, s.ItemSet().Equals(s2.ItemSet()), "states %d and %d are equal", s.ID, s2.ID)
			}
		}
		for _, e := range cfsm.Transitions() {
			target := Goto(g, cfsm.State(e.From).ItemSet(), e.Label)
			assert.True(t, target.Equals(cfsm.State(e.To).ItemSet()), "edge %v", e)
		}
	}
}

func TestCFSMIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, assignmentGrammar)
	c1, c2 := BuildAutomaton(g), BuildAutomaton(g)
	require.Equal(t, 10, c1.Size())
	require.Equal(t, c1.Size(), c2.Size())
	for _, s := range c1.States() {
		assert.True(t, s.ItemSet().Equals(c2.State(s.ID).ItemSet()), "state %d differs", s.ID)
	}
	assert.Equal(t, c1.Transitions(), c2.Transitions())
}

func TestCFSMGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g := mustParse(t, assignmentGrammar)
	cfsm := BuildAutomaton(g)
	var buf bytes.Buffer
	require.NoError(t, cfsm.CFSM2GraphViz(&buf))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph {"))
	assert.Contains(t, dot, `s000 -> s001 [label="S"]`)
	assert.Contains(t, dot, "S' → S·")
}
