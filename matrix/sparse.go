// SPDX-License-Identifier: MIT

// Package matrix - SparseMatrix: compressed sparse row (CSR) storage.
//
// Purpose:
//   - Store values on a frozen SparsityPattern in the standard CSR layout
//     (rowPtr, colIdx, values) so other libraries can overlay zero-copy views.
//   - Keep the Matrix contract: At/Set never panic; entries outside the pattern
//     read as zero and reject writes with ErrNotInPattern.
//
// AI-Hints:
//   - RowPtr/ColIdx/Values return borrowed slices; they alias the matrix.
//   - Use Add during assembly; Set overwrites.
//
// Complexity quicksheet:
//   - At/Set/Add: O(log k) for a row with k entries; NNZ: O(1); Clone: O(rows + nnz).

package matrix

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ctxSparseAt  = "At"
	ctxSparseSet = "Set"
	ctxSparseAdd = "Add"
	opSparseNew  = "NewSparseMatrix"
)

func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("SparseMatrix.%s(%d,%d): %w", method, row, col, err)
}

// SparseMatrix is a CSR matrix with zero-initialized values on a fixed pattern.
type SparseMatrix struct {
	r, c   int
	rowPtr []int     // len r+1; row i occupies [rowPtr[i], rowPtr[i+1])
	colIdx []int     // len nnz; strictly increasing within a row
	values []float64 // len nnz
}

var (
	_ Matrix       = (*SparseMatrix)(nil)
	_ fmt.Stringer = (*SparseMatrix)(nil)
)

// NewSparseMatrix compresses p (if not already) and allocates zero values on it.
// Errors: ErrNilMatrix for a nil pattern.
func NewSparseMatrix(p *SparsityPattern) (*SparseMatrix, error) {
	if p == nil {
		return nil, fmt.Errorf("%s: %w", opSparseNew, ErrNilMatrix)
	}
	rowPtr, colIdx := p.Compress()

	return &SparseMatrix{
		r:      p.rows,
		c:      p.cols,
		rowPtr: rowPtr,
		colIdx: colIdx,
		values: make([]float64, len(colIdx)),
	}, nil
}

// Rows returns the row count.
func (s *SparseMatrix) Rows() int { return s.r }

// Cols returns the column count.
func (s *SparseMatrix) Cols() int { return s.c }

// NNZ returns the number of stored entries (including explicit zeros).
func (s *SparseMatrix) NNZ() int { return len(s.values) }

// RowPtr returns the CSR row offsets (borrowed, len Rows()+1).
func (s *SparseMatrix) RowPtr() []int { return s.rowPtr }

// ColIdx returns the CSR column indices (borrowed, len NNZ()).
func (s *SparseMatrix) ColIdx() []int { return s.colIdx }

// Values returns the CSR values (borrowed, len NNZ()).
func (s *SparseMatrix) Values() []float64 { return s.values }

// offset locates (row, col) in the value array.
// Returns (-1, nil) when the coordinates are valid but outside the pattern.
func (s *SparseMatrix) offset(row, col int) (int, error) {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return -1, ErrOutOfRange
	}
	lo, hi := s.rowPtr[row], s.rowPtr[row+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], col)
	if k < hi && s.colIdx[k] == col {
		return k, nil
	}

	return -1, nil
}

// At returns the stored value, or 0 for entries outside the pattern.
func (s *SparseMatrix) At(row, col int) (float64, error) {
	k, err := s.offset(row, col)
	if err != nil {
		return 0, sparseErrorf(ctxSparseAt, row, col, err)
	}
	if k < 0 {
		return 0, nil
	}

	return s.values[k], nil
}

// Set overwrites the value at (row, col).
// Errors: ErrOutOfRange, ErrNotInPattern.
func (s *SparseMatrix) Set(row, col int, v float64) error {
	k, err := s.offset(row, col)
	if err != nil {
		return sparseErrorf(ctxSparseSet, row, col, err)
	}
	if k < 0 {
		return sparseErrorf(ctxSparseSet, row, col, ErrNotInPattern)
	}
	s.values[k] = v

	return nil
}

// Add accumulates v into (row, col); used by finite-element assembly.
// Errors: ErrOutOfRange, ErrNotInPattern.
func (s *SparseMatrix) Add(row, col int, v float64) error {
	k, err := s.offset(row, col)
	if err != nil {
		return sparseErrorf(ctxSparseAdd, row, col, err)
	}
	if k < 0 {
		return sparseErrorf(ctxSparseAdd, row, col, ErrNotInPattern)
	}
	s.values[k] += v

	return nil
}

// Clone returns a deep copy of structure and values.
func (s *SparseMatrix) Clone() Matrix {
	rp := make([]int, len(s.rowPtr))
	copy(rp, s.rowPtr)
	ci := make([]int, len(s.colIdx))
	copy(ci, s.colIdx)
	vs := make([]float64, len(s.values))
	copy(vs, s.values)

	return &SparseMatrix{r: s.r, c: s.c, rowPtr: rp, colIdx: ci, values: vs}
}

// String lists stored entries as "(i,j) v" lines in row-major order.
func (s *SparseMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			sb.WriteString(fmt.Sprintf("(%d,%d) %g\n", i, s.colIdx[k], s.values[k]))
		}
	}

	return sb.String()
}
