package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/slrkit/lr/iteratable"
	"golang.org/x/exp/slices"
)

// Item is an LR(0) item, i.e. a rule together with a position within its
// right hand side (the dot). Items are comparable values.
//
//    E → E + T
//
//    Dot | Symbol after dot | Item
//    ----+------------------+------------
//    0   | E                | E → ·E + T
//    1   | +                | E → E·+ T
//    2   | T                | E → E +·T
//    3   | nil              | E → E + T·
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item [A → ·α] for a rule A → α, together with the
// symbol after the dot (nil for ε-rules).
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the grammar rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot within the RHS.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is at the end.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance returns a new item with the dot advanced by one position.
// Advancing a completed item returns the item unchanged.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols of the RHS before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.RHS()[:i.dot]
}

// IsComplete is a predicate: is the dot at the end of the RHS?
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" →")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" ·")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		if i.rule.IsEps() {
			b.WriteString(" ")
		}
		b.WriteString("·")
	}
	return b.String()
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet(items ...Item) *iteratable.Set {
	S := iteratable.NewSet()
	for _, i := range items {
		S.Add(i)
	}
	return S
}

// SortedItems returns the items of an item set, ordered by rule and dot position.
func SortedItems(S *iteratable.Set) []Item {
	items := make([]Item, 0, S.Size())
	for _, x := range S.Values() {
		items = append(items, asItem(x))
	}
	slices.SortFunc(items, func(a, b Item) bool {
		if a.rule.Serial != b.rule.Serial {
			return a.rule.Serial < b.rule.Serial
		}
		return a.dot < b.dot
	})
	return items
}

// ItemKey is the canonical representation of an item within an item set key.
type ItemKey struct {
	Rule int
	Dot  int
}

type itemSetKey struct {
	Items []ItemKey
}

// itemSetHash computes a key for an item set which does not depend on the
// insertion order of items.
func itemSetHash(S *iteratable.Set) string {
	key := itemSetKey{Items: make([]ItemKey, 0, S.Size())}
	for _, i := range SortedItems(S) {
		key.Items = append(key.Items, ItemKey{Rule: i.rule.Serial, Dot: i.dot})
	}
	h, err := structhash.Hash(key, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set: for every item with a
// non-terminal A after the dot, add the start items of all rules for A,
// until no more items are added. S is not modified.
func Closure(g *Grammar, S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()           // get symbol A after dot
		if A != nil && !A.IsTerminal() { // A is non-terminal
			for _, r := range g.FindNonTermRules(A) {
				i, _ := StartItem(r)
				C.Add(i)
			}
		}
	}
	return C
}

// gotoSet collects the items of S with A after the dot and advances them.
func gotoSet(S *iteratable.Set, A *Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, x := range S.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

// Goto computes GOTO(S, A), i.e. the closure of the items of S with the dot
// advanced over A. If no item of S has A after the dot, the result is empty.
func Goto(g *Grammar, S *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := gotoSet(S, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := Closure(g, gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(S), A, itemSetString(gclosure))
	return gclosure
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, item := range SortedItems(S) {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper for item sets.
func Dump(S *iteratable.Set) {
	for n, item := range SortedItems(S) {
		tracer().Debugf("[%2d] %s", n+1, item)
	}
}
