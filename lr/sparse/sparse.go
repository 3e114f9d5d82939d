/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is a list of int32 values. Most entries will hold a
single value; parser tables for grammars with conflicts will hold more than one
value at a position.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     vals := M.Values(2, 3)         // returns [4711 123]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted. Positions outside of M×N will panic.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	values   []int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if t := m.find(i, j); t != nil {
		return t.values[0]
	}
	return m.nullval
}

// Values returns all the values at position (i,j), in the order they have been
// added. For empty positions, Values returns nil.
func (m *IntMatrix) Values(i, j int) []int32 {
	if t := m.find(i, j); t != nil {
		vals := make([]int32, len(t.values))
		copy(vals, t.values)
		return vals
	}
	return nil
}

// Count returns the number of values stored at position (i,j).
func (m *IntMatrix) Count(i, j int) int {
	if t := m.find(i, j); t != nil {
		return len(t.values)
	}
	return 0
}

// Set a value in the matrix at position (i,j), replacing all existing values.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j). If the value is already present
// at this position, Add is a no-op.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) find(i, j int) *triplet {
	m.check(i, j)
	for k := range m.values {
		t := &m.values[k]
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) {
				return t
			}
			break
		}
	}
	return nil
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	m.check(i, j)
	if value == m.nullval {
		panic(fmt.Sprintf("sparse.IntMatrix: cannot store null value at (%d,%d)", i, j))
	}
	at := 0 // will be position of new value
	for k, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) { // value already present
				if doAdd {
					m.values[k].values = addIntValue(t.values, value) // add new value
				} else {
					m.values[k].values = []int32{value} // set new value
				}
				return m // and done
			}
			break // no old value present
		}
		at++
	}
	tnew := triplet{row: i, col: j, values: []int32{value}}
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return m
}

func (m *IntMatrix) check(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of range %d x %d", i, j, m.rowcnt, m.colcnt))
	}
}

func addIntValue(vals []int32, n int32) []int32 {
	for _, v := range vals {
		if v == n {
			return vals
		}
	}
	return append(vals, n)
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%v", t.row, t.col, t.values)
}
