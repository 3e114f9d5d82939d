package slr

import (
	"fmt"
	"strings"
)

// SyntaxError is returned if the ACTION table has no entry for the current
// state and input symbol.
type SyntaxError struct {
	State    int      // state on top of the stack
	Symbol   string   // offending input symbol
	Position int      // index of the offending symbol within the input
	Expected []string // terminals with an ACTION entry in State
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error at input position %d: unexpected %q in state %d",
		e.Position, e.Symbol, e.State)
	if len(e.Expected) > 0 {
		msg += ", expected one of " + strings.Join(e.Expected, " ")
	}
	return msg
}

// GotoError signals inconsistent or incomplete parse tables: after a
// reduction, either there has been no GOTO entry for the LHS of the rule,
// or the stack did not hold enough symbols for the handle.
type GotoError struct {
	State     int    // state uncovered by the reduction
	Symbol    string // LHS of the rule reduced
	Rule      int    // serial number of the rule reduced
	Underflow bool   // stack has been exhausted by the reduction
}

func (e *GotoError) Error() string {
	if e.Underflow {
		return fmt.Sprintf("inconsistent parse tables: reducing rule %d (%s) exhausts the stack",
			e.Rule, e.Symbol)
	}
	return fmt.Sprintf("inconsistent parse tables: no GOTO entry for state %d and %s (rule %d)",
		e.State, e.Symbol, e.Rule)
}

// DriverError is returned if a parse exceeds the step limit of the parser.
type DriverError struct {
	Steps int
	Limit int
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("parser stuck: %d steps exceed the limit of %d", e.Steps, e.Limit)
}
