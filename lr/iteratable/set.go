package iteratable

// Set is a set of comparable values which keeps insertion order.
// Create one with NewSet.
type Set struct {
	order  []interface{}
	index  map[interface{}]struct{}
	cursor int
}

// NewSet creates a set, optionally pre-filled with items.
func NewSet(items ...interface{}) *Set {
	S := &Set{
		order:  make([]interface{}, 0, len(items)+4),
		index:  make(map[interface{}]struct{}, len(items)+4),
		cursor: -1,
	}
	return S.Add(items...)
}

// Add adds items to the set. Items already present are ignored. Returns the set.
func (S *Set) Add(items ...interface{}) *Set {
	for _, x := range items {
		if _, ok := S.index[x]; ok {
			continue
		}
		S.index[x] = struct{}{}
		S.order = append(S.order, x)
	}
	return S
}

// Remove removes an item. If an iteration is in progress, it will continue
// with the successor of the item removed.
func (S *Set) Remove(x interface{}) *Set {
	if _, ok := S.index[x]; !ok {
		return S
	}
	delete(S.index, x)
	for i, y := range S.order {
		if y == x {
			S.order = append(S.order[:i], S.order[i+1:]...)
			if i <= S.cursor {
				S.cursor--
			}
			break
		}
	}
	return S
}

// Contains checks if x is a member of S.
func (S *Set) Contains(x interface{}) bool {
	_, ok := S.index[x]
	return ok
}

// Size returns the number of items in S.
func (S *Set) Size() int {
	return len(S.order)
}

// Empty is a predicate for Size() == 0.
func (S *Set) Empty() bool {
	return len(S.order) == 0
}

// Values returns the items of S in insertion order. The slice is a copy.
func (S *Set) Values() []interface{} {
	vals := make([]interface{}, len(S.order))
	copy(vals, S.order)
	return vals
}

// Copy returns a shallow copy of S.
func (S *Set) Copy() *Set {
	return NewSet(S.order...)
}

// Union adds all items of other to S. Returns S.
func (S *Set) Union(other *Set) *Set {
	if other == nil {
		return S
	}
	return S.Add(other.order...)
}

// Difference removes all items of other from S. Returns S.
func (S *Set) Difference(other *Set) *Set {
	if other == nil {
		return S
	}
	for _, x := range other.order {
		S.Remove(x)
	}
	return S
}

// Subset removes every item from S for which predicate does not hold. Returns S.
func (S *Set) Subset(predicate func(interface{}) bool) *Set {
	for _, x := range S.Values() {
		if !predicate(x) {
			S.Remove(x)
		}
	}
	return S
}

// Equals is a predicate for set equality. Insertion order is irrelevant.
func (S *Set) Equals(other *Set) bool {
	if other == nil || S.Size() != other.Size() {
		return false
	}
	for _, x := range S.order {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// Each calls f for every item of S.
func (S *Set) Each(f func(interface{})) {
	for _, x := range S.Values() {
		f(x)
	}
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration. Items added during the iteration will be
// visited as well.
func (S *Set) IterateOnce() {
	S.cursor = -1
}

// Next moves the iteration cursor to the next item. It returns false if there
// are no more items.
func (S *Set) Next() bool {
	S.cursor++
	return S.cursor < len(S.order)
}

// Item returns the item the iteration cursor points to, or nil.
func (S *Set) Item() interface{} {
	if S.cursor < 0 || S.cursor >= len(S.order) {
		return nil
	}
	return S.order[S.cursor]
}
