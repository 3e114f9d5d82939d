package lr

// FollowSets maps the names of non-terminals to their FOLLOW sets.
type FollowSets map[string]*TerminalSet

// Of returns FOLLOW(A) for a non-terminal A, or an empty set if A is unknown.
func (follow FollowSets) Of(A string) *TerminalSet {
	if f, ok := follow[A]; ok {
		return f
	}
	return newTerminalSet()
}

// ComputeFollow computes the FOLLOW sets of all non-terminals of g, given
// the FIRST sets of g. FOLLOW(start) is seeded with the end-of-input symbol $;
// if start is empty, the augmented start symbol is used.
//
// For every occurence of a non-terminal B in a rule A -> α B β, FIRST(β)\{ε} is
// added to FOLLOW(B). If β is nullable, FOLLOW(A) is added to FOLLOW(B) as well.
// This is repeated until no FOLLOW set grows any more.
func ComputeFollow(g *Grammar, first FirstSets, start string) FollowSets {
	if start == "" {
		start = g.Start().Name
	}
	follow := make(FollowSets, len(g.nonterminals))
	for _, A := range g.nonterminals {
		follow[A.Name] = newTerminalSet()
	}
	if _, ok := follow[start]; !ok {
		follow[start] = newTerminalSet()
	}
	follow[start].Add(EOFSymbol)
	for pass := 1; ; pass++ {
		changed := false
		for _, r := range g.rules {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				acc := follow[B.Name]
				beta := FirstOfSequence(first, r.rhs[i+1:])
				if acc.union(beta, Epsilon) {
					changed = true
				}
				if beta.Contains(Epsilon) && acc.union(follow[r.LHS.Name], "") {
					changed = true
				}
			}
		}
		tracer().Debugf("FOLLOW: pass %d, changed=%v", pass, changed)
		if !changed {
			break
		}
	}
	return follow
}

// --- Grammar analysis ------------------------------------------------------

// LRAnalysis is an object for grammar analysis (compute FIRST and FOLLOW sets).
type LRAnalysis struct {
	g      *Grammar
	first  FirstSets
	follow FollowSets
}

// Analysis creates an analyser for a grammar. The analyser computes FIRST and
// FOLLOW sets for all non-terminals.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{g: g}
	ga.first = ComputeFirst(g)
	ga.follow = ComputeFollow(g, ga.first, "")
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// FirstSets returns FIRST sets for all non-terminals.
func (ga *LRAnalysis) FirstSets() FirstSets {
	return ga.first
}

// FollowSets returns FOLLOW sets for all non-terminals.
func (ga *LRAnalysis) FollowSets() FollowSets {
	return ga.follow
}

// First returns FIRST(A) for a grammar symbol A.
func (ga *LRAnalysis) First(A string) *TerminalSet {
	if X := ga.g.SymbolByName(A); X != nil && X.IsTerminal() {
		return newTerminalSet(A)
	}
	return ga.first.Of(A)
}

// Follow returns FOLLOW(A) for a non-terminal A.
func (ga *LRAnalysis) Follow(A string) *TerminalSet {
	return ga.follow.Of(A)
}

// Nullable is a predicate: may A derive the empty string?
func (ga *LRAnalysis) Nullable(A string) bool {
	return ga.First(A).Contains(Epsilon)
}
