/*
Package lr implements grammars, grammar analysis and the construction of
LR(0) automata and SLR(1) parser tables.

Building a Grammar

Grammars are usually read from text. Every line holds one left hand side,
an arrow and one or more alternatives, separated by '|'. Symbols are separated by
blanks. An alternative consisting of 'ε' is an epsilon-production. Lines without
an arrow are ignored.

    g, err := lr.ParseGrammar(`
        S' -> S
        S  -> A a
        A  -> B D
        B  -> b | ε
        D  -> d | ε
    `)

Every symbol appearing as a left hand side is a non-terminal, all other symbols
are terminals. If the first rule does not look like an augmented start rule
(S' -> S), the grammar will be augmented with one.

Alternatively, grammars may be specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals.

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->
    b.LHS("D").T("d").End()         // D  ->  d
    b.LHS("D").Epsilon()            // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S' -> S
   1: S -> A a
   2: A -> B D
   3: B -> b
   4: B -> ε
   5: D -> d
   6: D -> ε

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar.

    ga := lr.Analysis(g)       // analyser for grammar above
    ga.First("A")              // {b, d, ε}
    ga.Follow("A")             // {a}

FIRST and FOLLOW sets may as well be computed directly with ComputeFirst and
ComputeFollow.

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table (LR(0)-table)
and an ACTION table for a SLR(1) parser. The CFSM will not be thrown away,
but is made available to the client. This is intended
for debugging purposes. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is a LRAnalysis, see above
    lrgen.CreateTables()               // construct LR parser tables
    if lrgen.HasConflicts {
        for _, c := range lrgen.ActionTable().Conflicts() { … }
    }

Conflicts are never resolved by the table generator. A table position with more
than one candidate action holds all of them, and it is up to clients to decide
what to make of it.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.lr")
}
