package slr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrkit/lr"
	"github.com/npillmayer/slrkit/lr/scanner"
	"github.com/npillmayer/slrkit/lr/scanner/lexmach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expressionGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

const assignmentGrammar = `
S' -> S
S  -> L = R | R
L  -> * R | id
R  -> L
`

func makeTables(t *testing.T, text string) (*lr.Grammar, *lr.TableGenerator) {
	t.Helper()
	g, err := lr.ParseGrammar(text)
	require.NoError(t, err)
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	lrgen.CreateTables()
	return g, lrgen
}

func makeParser(t *testing.T, text string, opts ...Option) *Parser {
	g, lrgen := makeTables(t, text)
	return NewParser(g, lrgen.GotoTable(), lrgen.ActionTable(), opts...)
}

func kinds(trace *Trace) string {
	var b strings.Builder
	for _, step := range trace.Steps {
		switch step.Kind {
		case lr.ShiftAction:
			b.WriteString("S")
		case lr.ReduceAction:
			b.WriteString("R")
		case lr.AcceptAction:
			b.WriteString("A")
		case lr.ConflictAction:
			b.WriteString("C")
		default:
			b.WriteString("E")
		}
	}
	return b.String()
}

// --- the Tests -------------------------------------------------------------

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	p := makeParser(t, expressionGrammar)
	trace, err := p.Parse(strings.Fields("id + id * id"))
	require.NoError(t, err)
	assert.True(t, trace.Accepted)
	assert.Nil(t, trace.Conflict)
	assert.Equal(t, "SRRRSSRRSSRRRA", kinds(trace))
	depths := make([]int, len(trace.Steps))
	for n, step := range trace.Steps {
		depths[n] = step.Depth
	}
	assert.Equal(t, []int{1, 2, 2, 2, 2, 3, 4, 4, 4, 5, 6, 6, 4, 2}, depths)
	assert.Equal(t, "0", trace.Steps[0].Stack)
	assert.Equal(t, []string{"id", "+", "id", "*", "id", "$"}, trace.Steps[0].Input)
	assert.Equal(t, []string{"$"}, trace.Last().Input)
	assert.Equal(t, "accept", trace.Last().Action)
	assert.True(t, strings.HasPrefix(trace.Last().Stack, "0 E "))
	for _, step := range trace.Steps {
		assert.False(t, step.Error || step.Conflict)
		t.Logf("%v", step)
	}
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	p := makeParser(t, expressionGrammar)
	trace, err := p.Parse(strings.Fields("( id + id ) * id $"))
	require.NoError(t, err)
	require.True(t, trace.Accepted)
	root := trace.Tree
	require.NotNil(t, root)
	assert.Equal(t, "E", root.Symbol.Name)
	assert.Equal(t, "E -> T", root.Rule.String())
	var leaves []string
	for _, leaf := range root.Leaves() {
		leaves = append(leaves, leaf.Symbol.Name)
	}
	assert.Equal(t, []string{"(", "id", "+", "id", ")", "*", "id"}, leaves)
	assert.Equal(t, uint64(0), root.Span.From())
	assert.Equal(t, uint64(7), root.Span.To())
	maxdepth := 0
	root.Each(func(n *Node, depth int) {
		if depth > maxdepth {
			maxdepth = depth
		}
		if !n.IsLeaf() {
			assert.Equal(t, n.Rule.Len(), len(n.Children), "node %v", n)
		}
	})
	assert.Greater(t, maxdepth, 4)
}

func TestParseAssignments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	for _, input := range []string{"id", "* id", "* * id"} {
		p := makeParser(t, assignmentGrammar)
		trace, err := p.Parse(strings.Fields(input))
		require.NoError(t, err, input)
		assert.True(t, trace.Accepted, input)
		assert.Equal(t, "S", trace.Tree.Symbol.Name)
	}
}

func TestParseStopsAtConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g, lrgen := makeTables(t, assignmentGrammar)
	require.True(t, lrgen.HasConflicts)
	trace, err := RunParse(strings.Fields("id = id"), lrgen.ActionTable(), lrgen.GotoTable())
	require.NoError(t, err, "a conflict is not an error")
	assert.False(t, trace.Accepted)
	require.NotNil(t, trace.Conflict)
	assert.Equal(t, g.SymbolByName("="), trace.Conflict.Terminal)
	assert.True(t, trace.Conflict.Cell.IsConflict())
	last := trace.Last()
	assert.True(t, last.Conflict)
	assert.Equal(t, lr.ConflictAction, last.Kind)
	assert.Equal(t, trace.Conflict.Cell.String(), last.Action)
	assert.Equal(t, "SRC", kinds(trace))
	//
	p := makeParser(t, "E -> E + E | id")
	trace, err = p.Parse(strings.Fields("id + id + id"))
	require.NoError(t, err)
	require.NotNil(t, trace.Conflict)
	assert.Equal(t, "+", trace.Conflict.Terminal.Name)
	assert.True(t, trace.Conflict.IsShiftReduce())
	assert.Nil(t, trace.Tree)
}

func TestSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g, lrgen := makeTables(t, expressionGrammar)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	trace, err := p.Parse(strings.Fields("id id"))
	require.Error(t, err)
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	afterId, _ := lrgen.CFSM().Transition(0, g.SymbolByName("id"))
	assert.Equal(t, afterId, serr.State)
	assert.Equal(t, "id", serr.Symbol)
	assert.Equal(t, 1, serr.Position)
	assert.Equal(t, []string{"+", "*", ")", "$"}, serr.Expected)
	assert.Contains(t, err.Error(), `unexpected "id"`)
	require.NotNil(t, trace)
	assert.True(t, trace.Last().Error)
	assert.Equal(t, lr.ErrorAction, trace.Last().Kind)
	//
	trace, err = p.Parse([]string{"id", "+", "?"})
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "?", serr.Symbol)
	assert.Equal(t, 2, serr.Position)
	assert.True(t, trace.Last().Error)
	//
	_, err = p.Parse([]string{"T"})
	assert.True(t, errors.As(err, &serr), "non-terminals are no valid input")
	_, err = p.Parse(nil)
	assert.True(t, errors.As(err, &serr), "empty input")
}

// Hand-made tables, for checking the parser's handling of inconsistent tables.
type fakeActions map[int]lr.Action

func (fa fakeActions) Cell(state int, a *lr.Symbol) lr.Cell {
	if action, ok := fa[state]; ok {
		return lr.Cell{Candidates: []lr.Action{action}}
	}
	return lr.Cell{}
}

type noGotos struct{}

func (noGotos) Goto(int, *lr.Symbol) (int, bool) {
	return 0, false
}

type loopGotos struct{}

func (loopGotos) Goto(int, *lr.Symbol) (int, bool) {
	return 0, true
}

func TestGotoError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	g, err := lr.ParseGrammar(expressionGrammar)
	require.NoError(t, err)
	idRule := 6 // F -> id
	require.Equal(t, "F -> id", g.Rule(idRule).String())
	//
	actions := fakeActions{
		0: {Kind: lr.ReduceAction, Target: idRule},
	}
	trace, err := NewParser(g, noGotos{}, actions).Parse([]string{"id"})
	var gerr *GotoError
	require.True(t, errors.As(err, &gerr))
	assert.True(t, gerr.Underflow)
	assert.Equal(t, "F", gerr.Symbol)
	assert.True(t, trace.Last().Error)
	//
	actions = fakeActions{
		0: {Kind: lr.ShiftAction, Target: 1},
		1: {Kind: lr.ReduceAction, Target: idRule},
	}
	trace, err = NewParser(g, noGotos{}, actions).Parse([]string{"id"})
	require.True(t, errors.As(err, &gerr))
	assert.False(t, gerr.Underflow)
	assert.Equal(t, 0, gerr.State)
	assert.Equal(t, "F", gerr.Symbol)
	assert.Equal(t, "SR", kinds(trace)[:2])
	assert.True(t, trace.Last().Error)
}

func TestDriverError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	p := makeParser(t, expressionGrammar, MaxSteps(3))
	trace, err := p.Parse(strings.Fields("id + id * id"))
	var derr *DriverError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 3, derr.Limit)
	assert.Len(t, trace.Steps, 3)
	//
	// reduce A -> ε forever, without consuming input
	g, err := lr.ParseGrammar("S -> A x\nA -> ε")
	require.NoError(t, err)
	require.True(t, g.Rule(2).IsEps())
	loop := fakeActions{0: {Kind: lr.ReduceAction, Target: 2}}
	_, err = NewParser(g, loopGotos{}, loop).Parse([]string{"x"})
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, DefaultMaxSteps, derr.Limit)
}

func TestPanicOnParserStuck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{"panic-on-parser-stuck": true})
	defer gconf.Initialize(testconfig.Conf{})
	p := makeParser(t, expressionGrammar, MaxSteps(2))
	assert.Panics(t, func() {
		p.Parse(strings.Fields("id + id"))
	})
}

func TestParseInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.lr", "slrkit.scanner")
	defer teardown()
	//
	p := makeParser(t, expressionGrammar)
	trace, err := p.ParseInput(scanner.GoTokenizer("input", strings.NewReader("id+(id*id)")))
	require.NoError(t, err)
	assert.True(t, trace.Accepted)
	//
	g, lrgen := makeTables(t, expressionGrammar)
	LM, err := lexmach.ForGrammar(g, map[string]string{"id": `[a-z]+`})
	require.NoError(t, err)
	sc, err := LM.Scanner("a + b*c")
	require.NoError(t, err)
	p = NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	trace, err = p.ParseInput(sc)
	require.NoError(t, err)
	require.True(t, trace.Accepted)
	var lexemes []string
	for _, leaf := range trace.Tree.Leaves() {
		lexemes = append(lexemes, leaf.Token.Lexeme())
	}
	assert.Equal(t, []string{"a", "+", "b", "*", "c"}, lexemes)
	assert.Equal(t, `id "a"`, trace.Tree.Leaves()[0].String())
}
