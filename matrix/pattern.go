// SPDX-License-Identifier: MIT

// Package matrix - SparsityPattern: dynamic row-wise pattern, compressed to CSR.
//
// Purpose:
//   - Collect the (row, col) couplings of an operator before any value is stored.
//   - Keep each row sorted and de-duplicated so the compressed form has strictly
//     increasing column indices per row.
//   - Freeze the structure once compressed; values live in SparseMatrix.
//
// Determinism:
//   - The compressed arrays depend only on the set of added entries, never on
//     insertion order.
//
// Complexity quicksheet:
//   - Add: O(k) for a row with k entries (binary search + shift).
//   - Compress: O(rows + nnz).

package matrix

import (
	"fmt"
	"sort"
)

const (
	opPatternAdd = "SparsityPattern.Add"
	opPatternNew = "NewSparsityPattern"
)

// SparsityPattern is the structure of a sparse matrix before compression.
type SparsityPattern struct {
	rows, cols int
	entries    [][]int // entries[i] is the sorted, unique column list of row i
	compressed bool
}

// NewSparsityPattern returns an empty rows×cols pattern.
// Errors: ErrInvalidDimensions when rows<=0 or cols<=0.
func NewSparsityPattern(rows, cols int) (*SparsityPattern, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", opPatternNew, ErrInvalidDimensions)
	}

	return &SparsityPattern{
		rows:    rows,
		cols:    cols,
		entries: make([][]int, rows),
	}, nil
}

// Rows returns the number of rows of the pattern.
func (p *SparsityPattern) Rows() int { return p.rows }

// Cols returns the number of columns of the pattern.
func (p *SparsityPattern) Cols() int { return p.cols }

// Add inserts (i, j) into the pattern; duplicates are ignored.
//
// Errors:
//   - ErrOutOfRange for invalid coordinates.
//   - ErrPatternCompressed once Compress has been called.
func (p *SparsityPattern) Add(i, j int) error {
	if p.compressed {
		return fmt.Errorf("%s(%d,%d): %w", opPatternAdd, i, j, ErrPatternCompressed)
	}
	if i < 0 || i >= p.rows || j < 0 || j >= p.cols {
		return fmt.Errorf("%s(%d,%d): %w", opPatternAdd, i, j, ErrOutOfRange)
	}

	row := p.entries[i]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return nil // already present
	}
	row = append(row, 0)
	copy(row[k+1:], row[k:])
	row[k] = j
	p.entries[i] = row

	return nil
}

// AddEntries adds (i, j) for every j in cols.
func (p *SparsityPattern) AddEntries(i int, cols []int) error {
	for _, j := range cols {
		if err := p.Add(i, j); err != nil {
			return err
		}
	}

	return nil
}

// Exists reports whether (i, j) is part of the pattern.
func (p *SparsityPattern) Exists(i, j int) bool {
	if i < 0 || i >= p.rows {
		return false
	}
	row := p.entries[i]
	k := sort.SearchInts(row, j)

	return k < len(row) && row[k] == j
}

// RowLength returns the number of entries in row i (0 for invalid rows).
func (p *SparsityPattern) RowLength(i int) int {
	if i < 0 || i >= p.rows {
		return 0
	}

	return len(p.entries[i])
}

// NNZ returns the total number of stored entries.
func (p *SparsityPattern) NNZ() int {
	nnz := 0
	for _, row := range p.entries {
		nnz += len(row)
	}

	return nnz
}

// Compressed reports whether Compress has been called.
func (p *SparsityPattern) Compressed() bool { return p.compressed }

// Compress freezes the pattern and returns its CSR structure.
//
// Implementation:
//   - Stage 1: prefix-sum row lengths into rowPtr (len rows+1).
//   - Stage 2: concatenate the sorted per-row column lists into colIdx.
//
// Calling Compress twice returns equal (freshly allocated) arrays.
// Complexity: O(rows + nnz).
func (p *SparsityPattern) Compress() (rowPtr, colIdx []int) {
	rowPtr = make([]int, p.rows+1)
	for i, row := range p.entries {
		rowPtr[i+1] = rowPtr[i] + len(row)
	}
	colIdx = make([]int, 0, rowPtr[p.rows])
	for _, row := range p.entries {
		colIdx = append(colIdx, row...)
	}
	p.compressed = true

	return rowPtr, colIdx
}
