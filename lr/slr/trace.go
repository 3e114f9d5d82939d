package slr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/slrkit"
	"github.com/npillmayer/slrkit/lr"
)

// Trace is the record of a parse run.
type Trace struct {
	Steps    []Step       // every step of the parse, in order
	Accepted bool         // has the input been accepted?
	Conflict *lr.Conflict // conflicting cell the parse stopped at, if any
	Tree     *Node        // derivation tree, after an accepted parse
}

// Step is a snapshot of the parser, taken before an action is performed.
type Step struct {
	Stack    string        // stack contents, bottom to top, e.g. "0 id 5"
	Depth    int           // number of states on the stack
	Input    []string      // remaining input, including $
	Action   string        // chosen action, e.g. "shift 4", or the conflicting cell
	Kind     lr.ActionKind // kind of action
	Conflict bool          // parse stopped at a conflict
	Error    bool          // parse stopped with an error
}

func (s Step) String() string {
	return fmt.Sprintf("%-24s | %24s | %s", s.Stack, strings.Join(s.Input, " "), s.Action)
}

// Last returns the final step of a trace, or nil for an empty trace.
func (t *Trace) Last() *Step {
	if t == nil || len(t.Steps) == 0 {
		return nil
	}
	return &t.Steps[len(t.Steps)-1]
}

// --- Derivation tree -------------------------------------------------------

// Node is a node of a derivation tree. Leaves are terminals and carry the
// input token; inner nodes are non-terminals and carry the rule reduced.
type Node struct {
	Symbol   *lr.Symbol
	Rule     *lr.Rule     // rule for inner nodes, nil for leaves
	Token    slrkit.Token // input token for leaves
	Span     slrkit.Span  // input positions covered by this node
	Children []*Node
}

// IsLeaf is true for terminal nodes.
func (n *Node) IsLeaf() bool {
	return n.Rule == nil
}

func (n *Node) String() string {
	if n.IsLeaf() && n.Token != nil && n.Token.Lexeme() != n.Symbol.Name {
		return fmt.Sprintf("%s %q", n.Symbol.Name, n.Token.Lexeme())
	}
	return n.Symbol.Name
}

// Each walks the tree in pre-order, calling f for every node with its depth.
func (n *Node) Each(f func(node *Node, depth int)) {
	n.each(f, 0)
}

func (n *Node) each(f func(node *Node, depth int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.each(f, depth+1)
	}
}

// Leaves returns the terminal nodes of a tree, from left to right.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Each(func(node *Node, _ int) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}
