package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// TerminalSet is an ordered set of terminal names. FIRST sets may additionally
// contain Epsilon, FOLLOW sets may contain EOFSymbol.
type TerminalSet struct {
	set *treeset.Set
}

func newTerminalSet(names ...string) *TerminalSet {
	ts := &TerminalSet{set: treeset.NewWithStringComparator()}
	for _, n := range names {
		ts.set.Add(n)
	}
	return ts
}

// Add adds a terminal name and reports whether the set has grown.
func (ts *TerminalSet) Add(name string) bool {
	if ts.set.Contains(name) {
		return false
	}
	ts.set.Add(name)
	return true
}

// Contains checks if name is a member of ts.
func (ts *TerminalSet) Contains(name string) bool {
	if ts == nil {
		return false
	}
	return ts.set.Contains(name)
}

// Size returns the number of members of ts.
func (ts *TerminalSet) Size() int {
	if ts == nil {
		return 0
	}
	return ts.set.Size()
}

// Names returns the members of ts in lexical order.
func (ts *TerminalSet) Names() []string {
	if ts == nil {
		return nil
	}
	names := make([]string, 0, ts.set.Size())
	for _, x := range ts.set.Values() {
		names = append(names, x.(string))
	}
	return names
}

// union adds all members of other to ts, except a member named 'except'.
// Reports whether ts has grown.
func (ts *TerminalSet) union(other *TerminalSet, except string) bool {
	if other == nil {
		return false
	}
	grown := false
	for _, x := range other.set.Values() {
		if n := x.(string); n != except && ts.Add(n) {
			grown = true
		}
	}
	return grown
}

// Equals is a predicate for set equality.
func (ts *TerminalSet) Equals(other *TerminalSet) bool {
	if ts.Size() != other.Size() {
		return false
	}
	for _, n := range ts.Names() {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

func (ts *TerminalSet) String() string {
	return "{" + strings.Join(ts.Names(), ", ") + "}"
}

// --- FIRST sets ------------------------------------------------------------

// FirstSets maps the names of non-terminals to their FIRST sets.
type FirstSets map[string]*TerminalSet

// Of returns FIRST(A) for a non-terminal A, or an empty set if A is unknown.
func (first FirstSets) Of(A string) *TerminalSet {
	if f, ok := first[A]; ok {
		return f
	}
	return newTerminalSet()
}

// ComputeFirst computes the FIRST sets of all non-terminals of g.
//
// The sets grow monotonically over a finite alphabet, thus the iteration
// terminates as soon as a full pass over all rules does not add a terminal.
// FIRST of a terminal is not stored (see FirstOf).
func ComputeFirst(g *Grammar) FirstSets {
	first := make(FirstSets, len(g.nonterminals))
	for _, A := range g.nonterminals {
		first[A.Name] = newTerminalSet()
	}
	for pass := 1; ; pass++ {
		changed := false
		for _, r := range g.rules {
			if firstOfRule(first, r) {
				changed = true
			}
		}
		tracer().Debugf("FIRST: pass %d, changed=%v", pass, changed)
		if !changed {
			break
		}
	}
	return first
}

// firstOfRule adds the terminals derivable as first symbol of the RHS of r
// to FIRST(r.LHS). Reports whether FIRST(r.LHS) has grown.
func firstOfRule(first FirstSets, r *Rule) bool {
	acc := first[r.LHS.Name]
	if r.IsEps() {
		return acc.Add(Epsilon)
	}
	changed := false
	for _, X := range r.rhs {
		fx := FirstOf(first, X)
		if acc.union(fx, Epsilon) {
			changed = true
		}
		if !fx.Contains(Epsilon) {
			return changed
		}
	}
	return acc.Add(Epsilon) || changed
}

// FirstOf returns FIRST(X) for a grammar symbol X. For terminals this is {X}.
func FirstOf(first FirstSets, X *Symbol) *TerminalSet {
	if X.IsTerminal() {
		return newTerminalSet(X.Name)
	}
	return first.Of(X.Name)
}

// FirstOfSequence returns FIRST(X1 X2 … Xn). The result contains Epsilon if all
// of the symbols are nullable, in particular for the empty sequence.
func FirstOfSequence(first FirstSets, syms []*Symbol) *TerminalSet {
	result := newTerminalSet()
	for _, X := range syms {
		fx := FirstOf(first, X)
		result.union(fx, Epsilon)
		if !fx.Contains(Epsilon) {
			return result
		}
	}
	result.Add(Epsilon)
	return result
}
