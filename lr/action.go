package lr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

//go:generate stringer -type=ActionKind

// ActionKind is the kind of an entry of an ACTION table.
type ActionKind int

// Kinds of parser actions. ConflictAction is never stored; it is reported for
// cells holding more than one candidate action.
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
	ConflictAction
)

// Action is a single parser action. Target is the state to shift to for
// shift actions, and the serial number of the rule for reduce actions.
type Action struct {
	Kind   ActionKind
	Target int
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("shift %d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("reduce %d", a.Target)
	case AcceptAction:
		return "accept"
	case ConflictAction:
		return "conflict"
	}
	return "error"
}

// Actions are stored in sparse matrices as int32 values:
//
//     accept   →  -1
//     shift j  →  -(j+2)
//     reduce p →  p
//
func encodeAction(a Action) int32 {
	switch a.Kind {
	case AcceptAction:
		return -1
	case ShiftAction:
		return int32(-(a.Target + 2))
	case ReduceAction:
		return int32(a.Target)
	}
	panic(fmt.Sprintf("cannot store action of kind %v in a parser table", a.Kind))
}

func decodeAction(v int32) Action {
	switch {
	case v == -1:
		return Action{Kind: AcceptAction}
	case v < -1:
		return Action{Kind: ShiftAction, Target: int(-v) - 2}
	}
	return Action{Kind: ReduceAction, Target: int(v)}
}

// Cell is an entry of an ACTION table. It holds every candidate action which
// has been attached to it during table construction, in canonical order
// (shift, reduces by rule number, accept). An empty cell is an error entry.
type Cell struct {
	Candidates []Action
}

func makeCell(values []int32) Cell {
	if len(values) == 0 {
		return Cell{}
	}
	c := Cell{Candidates: make([]Action, len(values))}
	for n, v := range values {
		c.Candidates[n] = decodeAction(v)
	}
	slices.SortFunc(c.Candidates, func(a, b Action) bool {
		if rank(a) != rank(b) {
			return rank(a) < rank(b)
		}
		return a.Target < b.Target
	})
	return c
}

func rank(a Action) int {
	switch a.Kind {
	case ShiftAction:
		return 0
	case ReduceAction:
		return 1
	}
	return 2
}

// IsEmpty is true for cells without any action.
func (c Cell) IsEmpty() bool {
	return len(c.Candidates) == 0
}

// IsConflict is true if the cell holds two or more distinct candidate actions.
func (c Cell) IsConflict() bool {
	return len(c.Candidates) > 1
}

// Action returns the action of a cell. Empty cells result in an ErrorAction,
// cells with more than one candidate in a ConflictAction.
func (c Cell) Action() Action {
	switch len(c.Candidates) {
	case 0:
		return Action{Kind: ErrorAction}
	case 1:
		return c.Candidates[0]
	}
	return Action{Kind: ConflictAction}
}

// String renders a cell as "shift 4", "reduce 2", "accept" or, for conflicts,
// as candidates joined by '/', e.g. "shift 6/reduce 5". Empty cells render as "".
func (c Cell) String() string {
	s := make([]string, len(c.Candidates))
	for n, a := range c.Candidates {
		s[n] = a.String()
	}
	return strings.Join(s, "/")
}

// Conflict is an ACTION table cell with more than one candidate action.
type Conflict struct {
	State    int
	Terminal *Symbol
	Cell     Cell
}

// IsShiftReduce is true if one of the candidates is a shift action.
func (c Conflict) IsShiftReduce() bool {
	for _, a := range c.Cell.Candidates {
		if a.Kind == ShiftAction {
			return true
		}
	}
	return false
}

func (c Conflict) String() string {
	kind := "reduce/reduce"
	if c.IsShiftReduce() {
		kind = "shift/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d on %s: %s", kind, c.State, c.Terminal, c.Cell)
}
