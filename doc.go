/*
Package slrkit is a toolbox for the static analysis of context-free grammars
and for SLR(1) parsing.

It computes FIRST and FOLLOW sets, builds the canonical collection of LR(0)
item sets, derives SLR(1) parser tables (reporting every conflict instead of
resolving it) and replays parses against these tables, step by step. Package
structure is as follows:

■ lr: Package lr implements grammars, grammar analysis and the construction of
LR(0) automata and SLR(1) parser tables.

■ lr/slr: Package slr implements a shift-reduce driver which produces a trace of
every parser step.

■ lr/scanner: Package scanner provides tokenizers to feed input to the driver.

■ cmd/slrkit: A command line tool to inspect grammars, tables and parses.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slrkit
