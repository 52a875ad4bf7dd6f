// SPDX-License-Identifier: MIT

// Package matrix - CSR (compressed sparse row) storage for stencil operators.
//
// Purpose:
//   - Store operators with a handful of nonzeros per row (5-point stencils) in
//     O(nnz) memory instead of O(n²).
//   - Keep the same safety contract as Dense: At returns errors, never panics.
//   - Immutable after Build: no Set, so a CSR can be shared read-only across
//     goroutines and across solver cycles.
//
// Layout:
//   - rowPtr has length rows+1; row i occupies colIdx/vals[rowPtr[i]:rowPtr[i+1]].
//   - Column indices are strictly increasing inside each row (duplicates are
//     summed by the builder).
//
// Complexity quicksheet:
//   - Build: O(nnz·log nnz); At: O(log k) (k = row nnz); MulVecTo: O(nnz);
//     Diagonal: O(n·log k); IsSymmetric: O(nnz·log k).

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
)

// triplet is one (row, col, value) entry collected by CSRBuilder.
type triplet struct {
	i, j int
	v    float64
}

// CSRBuilder accumulates coordinate-format entries and compresses them into a CSR.
// Duplicate (i,j) entries are summed, matching finite-difference assembly where
// several stencil contributions may land on the same cell.
type CSRBuilder struct {
	r, c           int
	entries        []triplet
	validateNaNInf bool
}

// NewCSRBuilder prepares a builder for a rows×cols operator.
// capacityHint pre-sizes the entry buffer (pass 0 when unknown).
// Returns ErrInvalidDimensions for non-positive shapes.
func NewCSRBuilder(rows, cols, capacityHint int) (*CSRBuilder, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if capacityHint < 0 {
		capacityHint = 0
	}

	return &CSRBuilder{
		r:              rows,
		c:              cols,
		entries:        make([]triplet, 0, capacityHint),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// Add records A[i,j] += v.
//
// Errors:
//   - ErrOutOfRange for indices outside the declared shape.
//   - ErrNaNInf for non-finite values.
//
// Complexity: amortized O(1).
func (b *CSRBuilder) Add(i, j int, v float64) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return fmt.Errorf("CSRBuilder.Add(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if b.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return fmt.Errorf("CSRBuilder.Add(%d,%d): %w", i, j, ErrNaNInf)
	}
	b.entries = append(b.entries, triplet{i: i, j: j, v: v})

	return nil
}

// Build compresses the collected entries into an immutable CSR.
//
// Implementation:
//   - Stage 1: sort entries by (row, col) on a private copy.
//   - Stage 2: merge duplicates and emit rowPtr/colIdx/vals in one pass.
//
// The builder can keep accepting entries afterwards; each Build is independent.
// Complexity: O(nnz·log nnz) time, O(nnz) space.
func (b *CSRBuilder) Build() *CSR {
	sorted := slices.Clone(b.entries)
	slices.SortStableFunc(sorted, func(x, y triplet) int {
		if c := cmp.Compare(x.i, y.i); c != 0 {
			return c
		}
		return cmp.Compare(x.j, y.j)
	})

	out := &CSR{
		r:      b.r,
		c:      b.c,
		rowPtr: make([]int, b.r+1),
		colIdx: make([]int, 0, len(sorted)),
		vals:   make([]float64, 0, len(sorted)),
	}
	lastRow, lastCol := -1, -1
	for _, e := range sorted {
		if e.i == lastRow && e.j == lastCol {
			out.vals[len(out.vals)-1] += e.v // duplicate: accumulate
			continue
		}
		out.colIdx = append(out.colIdx, e.j)
		out.vals = append(out.vals, e.v)
		out.rowPtr[e.i+1]++
		lastRow, lastCol = e.i, e.j
	}
	// Prefix-sum the per-row counts into offsets.
	for i := 0; i < b.r; i++ {
		out.rowPtr[i+1] += out.rowPtr[i]
	}

	return out
}

// CSR is an immutable compressed-sparse-row matrix.
type CSR struct {
	r, c   int
	rowPtr []int     // len r+1, offsets into colIdx/vals
	colIdx []int     // strictly increasing per row
	vals   []float64 // stored values aligned with colIdx
}

// Compile-time assertion: CSR is a read-only Operator.
var _ Operator = (*CSR)(nil)

// Rows returns the row count. Complexity: O(1).
func (m *CSR) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries. Complexity: O(1).
func (m *CSR) NNZ() int { return len(m.vals) }

// RowNNZ returns the number of stored entries in row i.
// Returns ErrOutOfRange for an invalid row.
func (m *CSR) RowNNZ(i int) (int, error) {
	if i < 0 || i >= m.r {
		return 0, fmt.Errorf("CSR.RowNNZ(%d): %w", i, ErrOutOfRange)
	}

	return m.rowPtr[i+1] - m.rowPtr[i], nil
}

// At returns A[i,j]; entries that are not stored read as zero.
// Returns ErrOutOfRange for invalid indices.
// Complexity: O(log k) binary search inside the row.
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("CSR.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.at(i, j), nil
}

// at is the unchecked lookup used by At and IsSymmetric.
func (m *CSR) at(i, j int) float64 {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	cols := m.colIdx[lo:hi]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.vals[lo+k]
	}

	return 0
}

// MulVecTo writes A·x into dst. dst and x must not alias.
//
// Errors:
//   - ErrNilMatrix (nil vector), ErrDimensionMismatch (length mismatch).
//
// Complexity:
//   - Time O(nnz), Space O(1).
func (m *CSR) MulVecTo(dst, x []float64) error {
	if err := ValidateVecLen(x, m.c); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	var (
		i, k int
		sum  float64
	)
	for i = 0; i < m.r; i++ {
		sum = ZeroSum
		for k = m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.vals[k] * x[m.colIdx[k]]
		}
		dst[i] = sum
	}

	return nil
}

// Diagonal returns a fresh slice holding A[i,i] for i < min(rows, cols).
// Complexity: O(n·log k).
func (m *CSR) Diagonal() []float64 {
	n := min(m.r, m.c)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = m.at(i, i)
	}

	return d
}

// Bandwidth returns max |i − j| over stored entries (0 for diagonal matrices).
// Complexity: O(nnz).
func (m *CSR) Bandwidth() int {
	bw := 0
	for i := 0; i < m.r; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			d := m.colIdx[k] - i
			if d < 0 {
				d = -d
			}
			if d > bw {
				bw = d
			}
		}
	}

	return bw
}

// IsSymmetric reports whether the matrix is square and |A[i,j] − A[j,i]| ≤ tol
// for every stored off-diagonal entry (the mirror may be unstored, i.e. zero).
// Complexity: O(nnz·log k).
func (m *CSR) IsSymmetric(tol float64) bool {
	if m.r != m.c {
		return false
	}
	tol = math.Abs(tol)
	for i := 0; i < m.r; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			j := m.colIdx[k]
			if j == i {
				continue
			}
			if math.Abs(m.vals[k]-m.at(j, i)) > tol {
				return false
			}
		}
	}

	return true
}

// Do calls fn for every stored entry in row-major order.
// fn must not retain or mutate the matrix.
func (m *CSR) Do(fn func(i, j int, v float64)) {
	for i := 0; i < m.r; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			fn(i, m.colIdx[k], m.vals[k])
		}
	}
}

// ToDense materializes the operator as a Dense matrix.
// Returns ErrTooLarge when rows*cols exceeds MaxDenseElements.
// Complexity: O(r*c) time and space.
func (m *CSR) ToDense() (*Dense, error) {
	if m.r*m.c > MaxDenseElements {
		return nil, fmt.Errorf("CSR.ToDense(%dx%d): %w", m.r, m.c, ErrTooLarge)
	}
	d, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, err
	}
	m.Do(func(i, j int, v float64) {
		d.data[i*m.c+j] = v
	})

	return d, nil
}
