/*
Package slr provides an SLR(1) parse driver. Clients have to use the tools
of package lr to prepare the necessary parse tables. The driver utilizes
these tables to simulate a shift-reduce parse over a sequence of terminals,
recording every step in a trace.

The main focus of this implementation is inspection and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and run the
driver directly, without a code-generation or compile step. The driver never
resolves a conflict of the tables by choosing a default action: it stops and
reports the conflicting cell instead.

Usage

Clients construct a grammar, either from text or by using a grammar builder:

	g, err := lr.ParseGrammar(`
	    E -> E + T | T
	    T -> T * F | F
	    F -> ( E ) | id
	`)

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // driver will stop at the conflicting cells

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	trace, err := p.Parse([]string{"id", "+", "id", "*", "id"})

or, using a tokenizer from package scanner:

	trace, err := p.ParseInput(scanner.GoTokenizer("input", strings.NewReader("id+id")))

After an accepted parse, trace.Tree holds the derivation tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.lr")
}
