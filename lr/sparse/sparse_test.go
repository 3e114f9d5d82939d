package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixSetValue(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) to be 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != M.NullValue() {
		t.Errorf("expected M(9,9) to be null value, is %d", v)
	}
	if M.Values(9, 9) != nil {
		t.Errorf("expected Values for empty position to be nil")
	}
}

func TestMatrixAddKeepsAllCandidates(t *testing.T) {
	assert := assert.New(t)
	M := NewIntMatrix(4, 4, -1)
	M.Add(1, 1, 5)
	M.Add(1, 1, 7)
	M.Add(1, 1, 5) // duplicate
	M.Add(1, 1, 9)
	assert.Equal([]int32{5, 7, 9}, M.Values(1, 1))
	assert.Equal(3, M.Count(1, 1))
	assert.Equal(1, M.ValueCount())
	M.Set(1, 1, 2)
	assert.Equal([]int32{2}, M.Values(1, 1))
}

func TestMatrixOrdering(t *testing.T) {
	M := NewIntMatrix(5, 5, -1)
	M.Set(3, 1, 31)
	M.Set(0, 4, 4)
	M.Set(3, 0, 30)
	M.Set(1, 2, 12)
	expected := []struct{ i, j int }{{0, 4}, {1, 2}, {3, 0}, {3, 1}}
	for k, e := range expected {
		tr := M.values[k]
		if tr.row != e.i || tr.col != e.j {
			t.Errorf("triplet #%d should be at (%d,%d), is %v", k, e.i, e.j, tr)
		}
	}
	if M.Value(3, 0) != 30 || M.Value(3, 1) != 31 {
		t.Errorf("values garbled after insertion: %v", M.values)
	}
}

func TestMatrixIndexOutOfRange(t *testing.T) {
	M := NewIntMatrix(2, 2, -1)
	assert.Panics(t, func() { M.Set(2, 0, 1) })
	assert.Panics(t, func() { M.Value(0, -1) })
	assert.Panics(t, func() { M.Add(0, 0, -1) }, "storing the null value must panic")
}
