package iteratable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddContains(t *testing.T) {
	S := NewSet(1, 2, 3)
	S.Add(2, 4)
	if S.Size() != 4 {
		t.Errorf("expected set of size 4, is %d", S.Size())
	}
	if !S.Contains(4) || S.Contains(5) {
		t.Errorf("membership broken: %v", S.Values())
	}
}

func TestSetIterateWhileGrowing(t *testing.T) {
	S := NewSet(1)
	S.IterateOnce()
	visited := 0
	for S.Next() {
		visited++
		if n := S.Item().(int); n < 5 {
			S.Add(n + 1)
		}
	}
	if visited != 5 {
		t.Errorf("expected iteration to visit 5 items, visited %d", visited)
	}
}

func TestSetRemoveDuringIteration(t *testing.T) {
	S := NewSet(1, 2, 3, 4)
	S.IterateOnce()
	var seen []int
	for S.Next() {
		n := S.Item().(int)
		seen = append(seen, n)
		if n == 2 {
			S.Remove(2)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
	assert.Equal(t, 3, S.Size())
}

func TestSetOperations(t *testing.T) {
	assert := assert.New(t)
	A := NewSet("a", "b", "c")
	B := NewSet("c", "b", "a")
	assert.True(A.Equals(B), "sets with different insertion order should be equal")
	C := A.Copy().Difference(NewSet("b"))
	assert.Equal([]interface{}{"a", "c"}, C.Values())
	assert.Equal(3, A.Size(), "Copy must protect the original set")
	C.Union(NewSet("d"))
	assert.True(C.Contains("d"))
	C.Subset(func(x interface{}) bool { return x != "a" })
	assert.Equal([]interface{}{"c", "d"}, C.Values())
	assert.False(C.Equals(nil))
}
