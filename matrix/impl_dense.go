// SPDX-License-Identifier: MIT

// Package matrix: Dense, a row-major float64 matrix.
//
// Dense backs the LU coarse solver and CSR.ToDense; level operators are
// always CSR. Element (i, j) lives at data[i*c+j]. Accessors return errors
// rather than panicking, and Set refuses NaN/Inf while the numeric guard is on.
//
// Costs: NewDense and MulVecTo are O(r*c); At and Set are O(1).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// denseErrorf tags err with the method and the offending coordinates.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix with len(data) == r*c.
type Dense struct {
	r, c       int
	data       []float64
	finiteOnly bool // Set rejects NaN/Inf
}

var (
	_ Operator     = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns a zeroed rows×cols matrix, or ErrInvalidDimensions unless
// both are positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), finiteOnly: DefaultValidateNaNInf}, nil
}

// NewDenseFrom copies a row-major slice of length rows*cols into a new
// matrix.
//
// Errors: ErrInvalidDimensions, ErrDimensionMismatch (wrong length),
// ErrNaNInf (non-finite entry).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	if m.finiteOnly {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape returns (Rows(), Cols()).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

func (m *Dense) offset(row, col int) (int, bool) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, false
	}

	return row*m.c + col, true
}

// At returns element (row, col), or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	k, ok := m.offset(row, col)
	if !ok {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[k], nil
}

// Set writes v at (row, col).
// Errors: ErrOutOfRange, or ErrNaNInf when v is not finite.
func (m *Dense) Set(row, col int, v float64) error {
	k, ok := m.offset(row, col)
	if !ok {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.finiteOnly && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[k] = v

	return nil
}

// MulVecTo computes dst = m·x, row by row.
// Errors: ErrNilMatrix for a nil vector, ErrDimensionMismatch for a length
// other than Cols() (x) or Rows() (dst).
func (m *Dense) MulVecTo(dst, x []float64) error {
	if err := ValidateVecLen(x, m.c); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	for i := 0; i < m.r; i++ {
		row := m.data[i*m.c : (i+1)*m.c]
		sum := ZeroSum
		for j, v := range row {
			sum += v * x[j]
		}
		dst[i] = sum
	}

	return nil
}

// String prints one bracketed, comma-separated line per row. Debug only.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
		}
		b.WriteString("]\n")
	}

	return b.String()
}
