package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/slrkit/lr/iteratable"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	key    string          // order-independent hash of items
	Accept bool            // does this state contain the completed start rule?
}

// Items returns the items of a state, ordered by rule and dot position.
func (s *CFSMState) Items() []Item {
	return SortedItems(s.items)
}

// ItemSet returns a copy of the item set of a state.
func (s *CFSMState) ItemSet() *iteratable.Set {
	return s.items.Copy()
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// Transition is an edge of the CFSM, labeled with a grammar symbol.
type Transition struct {
	From  int
	Label *Symbol
	To    int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d --%s--> %d", t.From, t.Label, t.To)
}

type transitionKey struct {
	from  int
	label *Symbol
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram (canonical collection of LR(0) item sets).
// It will be constructed by BuildAutomaton or by a TableGenerator.
// After construction, a CFSM is read-only.
type CFSM struct {
	g           *Grammar                // this CFSM is for Grammar g
	states      *treeset.Set            // all the states
	edges       *arraylist.List         // all the edges between states
	byKey       map[string][]*CFSMState // states by item set hash
	transitions map[transitionKey]int
	S0          *CFSMState // start state
	cfsmIds     int        // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:           g,
		states:      treeset.NewWith(stateComparator),
		edges:       arraylist.New(),
		byKey:       make(map[string][]*CFSMState),
		transitions: make(map[transitionKey]int),
	}
}

// Add a state to the CFSM, if no state with an equal item set is present.
// Returns the state and a flag indicating whether the state has been created.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	key := itemSetHash(iset)
	if s := c.findStateByItems(key, iset); s != nil {
		return s, false
	}
	s := &CFSMState{ID: c.cfsmIds, items: iset, key: key}
	c.cfsmIds++
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	c.byKey[key] = append(c.byKey[key], s)
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(key string, iset *iteratable.Set) *CFSMState {
	for _, s := range c.byKey[key] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(Transition{From: s0.ID, Label: sym, To: s1.ID})
	c.transitions[transitionKey{from: s0.ID, label: sym}] = s1.ID
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		states = append(states, x.(*CFSMState))
	}
	return states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.states.Size() {
		return nil
	}
	return c.states.Values()[id].(*CFSMState)
}

// Transition returns the target of the edge labeled A starting at state from.
func (c *CFSM) Transition(from int, A *Symbol) (int, bool) {
	to, ok := c.transitions[transitionKey{from: from, label: A}]
	return to, ok
}

// Transitions returns all edges in order of construction.
func (c *CFSM) Transitions() []Transition {
	edges := make([]Transition, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		edges = append(edges, it.Value().(Transition))
	}
	return edges
}

// AcceptingStates returns the IDs of all states which contain the completed
// start rule S' → S·.
func (c *CFSM) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for _, s := range c.States() {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// BuildAutomaton constructs the characteristic finite state machine for a
// grammar, i.e. the canonical collection of LR(0) item sets.
//
// State 0 is the closure of the start item [S' → ·S]. States are numbered in
// order of discovery; only this numbering depends on the order in which
// symbols are tried, the set of states does not.
func BuildAutomaton(g *Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(g)
	item, sym := StartItem(g.rules[0])
	tracer().Debugf("Start item=%v/%v", item, sym)
	closure0 := Closure(g, newItemSet(item))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator) // work list
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		g.EachSymbol(func(A *Symbol) {
			gotoset := Goto(g, s.items, A)
			if gotoset.Empty() {
				return
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				tracer().Debugf("new state %d from %d on symbol %v", snew.ID, s.ID, A)
				snew.Dump()
				S.Add(snew)
			}
			cfsm.addEdge(s, snew, A)
		})
	}
	tracer().Infof("CFSM for grammar %s has %d states", g.Name, cfsm.Size())
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items)))
	}
	for _, e := range c.Transitions() {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, escapeDot(e.Label.Name)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *iteratable.Set) string {
	items := SortedItems(S)
	lines := make([]string, len(items))
	for n, i := range items {
		lines[n] = escapeDot(i.String())
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
