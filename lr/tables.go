package lr

import (
	"fmt"

	"github.com/npillmayer/slrkit/lr/sparse"
	"golang.org/x/exp/slices"
)

// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3

// ActionTable is the ACTION table of an LR parser. Rows are CFSM states,
// columns are the terminals of a grammar (including $).
// After construction, an ActionTable is read-only.
type ActionTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix
	states int
}

func newActionTable(g *Grammar, states int) *ActionTable {
	return &ActionTable{
		g:      g,
		matrix: sparse.NewIntMatrix(states, g.EOF().Value+1, sparse.DefaultNullValue),
		states: states,
	}
}

// Grammar returns the grammar this table has been built for.
func (t *ActionTable) Grammar() *Grammar {
	return t.g
}

// States returns the number of rows of the table.
func (t *ActionTable) States() int {
	return t.states
}

// Terminals returns the column symbols of the table, i.e. the terminals of the
// grammar followed by $.
func (t *ActionTable) Terminals() []*Symbol {
	return append(t.g.Terminals(), t.g.EOF())
}

// Cell returns the ACTION table entry for a state and a terminal.
// Out-of-range states and symbols other than terminals result in an empty cell.
func (t *ActionTable) Cell(state int, a *Symbol) Cell {
	if a == nil || !a.IsTerminal() || state < 0 || state >= t.states {
		return Cell{}
	}
	return makeCell(t.matrix.Values(state, a.Value))
}

// Action returns the action for a state and a terminal. See Cell.Action.
func (t *ActionTable) Action(state int, a *Symbol) Action {
	return t.Cell(state, a).Action()
}

// Conflicts returns all cells with more than one candidate action, ordered by
// state and terminal.
func (t *ActionTable) Conflicts() []Conflict {
	var conflicts []Conflict
	for state := 0; state < t.states; state++ {
		for _, a := range t.Terminals() {
			if t.matrix.Count(state, a.Value) > 1 {
				conflicts = append(conflicts, Conflict{
					State:    state,
					Terminal: a,
					Cell:     t.Cell(state, a),
				})
			}
		}
	}
	return conflicts
}

// HasConflicts is a predicate: is there a cell holding more than one candidate?
// A grammar is SLR(1) iff its SLR ACTION table has no conflicts.
func (t *ActionTable) HasConflicts() bool {
	for state := 0; state < t.states; state++ {
		for _, a := range t.Terminals() {
			if t.matrix.Count(state, a.Value) > 1 {
				return true
			}
		}
	}
	return false
}

// add attaches a candidate action to a cell. Existing candidates are never
// overwritten; adding an identical candidate is a no-op.
// Returns true if the cell has a conflict afterwards.
func (t *ActionTable) add(state int, a *Symbol, action Action) bool {
	if !a.IsTerminal() {
		panic(fmt.Sprintf("ACTION table entry for non-terminal %v", a))
	}
	t.matrix.Add(state, a.Value, encodeAction(action))
	conflict := t.matrix.Count(state, a.Value) > 1
	if conflict {
		tracer().Debugf("    conflict at ACTION(%d, %v) = %v", state, a, t.Cell(state, a))
	}
	return conflict
}

// GotoTable is the GOTO table of an LR parser for non-terminals.
// After construction, a GotoTable is read-only.
type GotoTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix
	states int
}

func newGotoTable(g *Grammar, states int) *GotoTable {
	return &GotoTable{
		g:      g,
		matrix: sparse.NewIntMatrix(states, g.EOF().Value+1, sparse.DefaultNullValue),
		states: states,
	}
}

// Grammar returns the grammar this table has been built for.
func (t *GotoTable) Grammar() *Grammar {
	return t.g
}

// States returns the number of rows of the table.
func (t *GotoTable) States() int {
	return t.states
}

// Goto returns the target state for a state and a non-terminal.
func (t *GotoTable) Goto(state int, A *Symbol) (int, bool) {
	if A == nil || A.IsTerminal() || state < 0 || state >= t.states {
		return 0, false
	}
	v := t.matrix.Value(state, A.Value)
	if v == t.matrix.NullValue() {
		return 0, false
	}
	return int(v), true
}

// ===========================================================================

// BuildTable constructs the SLR(1) ACTION table and the GOTO table for a
// grammar, given its CFSM and its FOLLOW sets.
//
// For building the ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of a rule, we produce
// a reduce entry for the rule for each terminal from FOLLOW(LHS). The
// completed start rule produces an accept entry for $.
//
// Colliding entries are all retained. A cell with more than one
// candidate is a conflict.
func BuildTable(g *Grammar, cfsm *CFSM, follow FollowSets) (*ActionTable, *GotoTable) {
	lookahead := func(r *Rule) []*Symbol {
		la := make([]*Symbol, 0, 4)
		for _, name := range follow.Of(r.LHS.Name).Names() {
			if a := g.SymbolByName(name); a != nil {
				la = append(la, a)
			}
		}
		return la
	}
	actions, _ := buildActionTable(g, cfsm, lookahead)
	return actions, buildGotoTable(g, cfsm)
}

func buildGotoTable(g *Grammar, cfsm *CFSM) *GotoTable {
	gototable := newGotoTable(g, cfsm.Size())
	tracer().Infof("GOTO table of size %d x %d", cfsm.Size(), len(g.NonTerminals()))
	for _, e := range cfsm.Transitions() {
		if !e.Label.IsTerminal() {
			gototable.matrix.Set(e.From, e.Label.Value, int32(e.To))
		}
	}
	return gototable
}

func buildActionTable(g *Grammar, cfsm *CFSM, lookahead func(*Rule) []*Symbol) (*ActionTable, bool) {
	actions := newActionTable(g, cfsm.Size())
	tracer().Infof("ACTION table of size %d x %d", cfsm.Size(), len(actions.Terminals()))
	hasConflicts := false
	for _, state := range cfsm.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			A := i.PeekSymbol()
			if A != nil && A.IsTerminal() { // create a shift entry
				if j, ok := cfsm.Transition(state.ID, A); ok {
					tracer().Debugf("    %v: shift %d on %v", i, j, A)
					hasConflicts = actions.add(state.ID, A, Action{Kind: ShiftAction, Target: j}) || hasConflicts
				}
				continue
			}
			if A != nil {
				continue
			}
			// we are at the end of a rule
			if i.rule.Serial == 0 {
				tracer().Debugf("    %v: accept on %v", i, g.EOF())
				hasConflicts = actions.add(state.ID, g.EOF(), Action{Kind: AcceptAction}) || hasConflicts
				continue
			}
			for _, la := range lookahead(i.rule) {
				tracer().Debugf("    %v: reduce %d on %v", i, i.rule.Serial, la)
				hasConflicts = actions.add(state.ID, la, Action{Kind: ReduceAction, Target: i.rule.Serial}) || hasConflicts
			}
		}
	}
	if hasConflicts {
		tracer().Infof("grammar %s has conflicts", g.Name)
	}
	return actions, hasConflicts
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an SLR parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = BuildAutomaton(lrgen.g)
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the SLR(1) ACTION table for LR-parsing a grammar.
// The tables have to be built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an SLR parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.actiontable, lrgen.gototable = BuildTable(lrgen.g, lrgen.CFSM(), lrgen.ga.FollowSets())
	lrgen.HasConflicts = lrgen.actiontable.HasConflicts()
}

// BuildLR0ActionTable constructs the LR(0) ACTION table. It is not built by
// CreateTables(), as we normally use an SLR(1) parser. In an LR(0) table,
// completed items reduce on every terminal (including $), regardless of
// lookahead. Comparing conflicts of both tables shows whether a grammar is
// LR(0) or needs the FOLLOW sets.
func (lrgen *TableGenerator) BuildLR0ActionTable() (*ActionTable, bool) {
	all := append(lrgen.g.Terminals(), lrgen.g.EOF())
	return buildActionTable(lrgen.g, lrgen.CFSM(), func(*Rule) []*Symbol {
		return all
	})
}

// ---------------------------------------------------------------------------

// ConflictStates returns the sorted, unique IDs of states with conflicts.
func ConflictStates(conflicts []Conflict) []int {
	states := make([]int, 0, len(conflicts))
	for _, c := range conflicts {
		states = append(states, c.State)
	}
	slices.Sort(states)
	return slices.Compact(states)
}
