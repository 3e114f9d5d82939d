/*
Command slrkit is a command line front end for the SLR(1) tooling of this
module. It reads a grammar file, shows the results of grammar analysis
(FIRST and FOLLOW sets, the canonical collection of LR(0) item sets,
ACTION and GOTO tables) and drives parses over input, displaying every step
of the parser together with the derivation tree.

	slrkit first   expr.g
	slrkit states  expr.g
	slrkit table   expr.g --dot expr.dot
	slrkit parse   expr.g id + id '*' id
	slrkit parse   expr.g --pattern 'id=[a-z]+' 'a + b*c'
	slrkit repl    expr.g

Grammar files use the textual notation of lr.ParseGrammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrkit.lr'
func tracer() tracing.Trace {
	return tracing.Select("slrkit.lr")
}
