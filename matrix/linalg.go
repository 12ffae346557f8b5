// SPDX-License-Identifier: MIT

// Package matrix - matrix-vector kernels.
//
// Purpose:
//   - MatVec: allocate-and-return y = m*x (convenience surface).
//   - MatVecTo: y = m*x into a caller-owned buffer (hot loops; no allocation).
//
// Determinism & Policy:
//   - Fixed i→j (dense) and i→k (CSR) loop orders; identical inputs give
//     bit-identical outputs.
//   - Inputs are never mutated.

package matrix

import "fmt"

// ZeroSum is the initial accumulator value for dot-product style loops.
const ZeroSum = 0.0

const (
	opMatVec   = "MatVec"
	opMatVecTo = "MatVecTo"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense and *SparseMatrix operate on their flat buffers.
// Complexity: Time O(r*c) dense / O(nnz) sparse, Space O(r) for y.
//
// AI-Hints:
//   - For repeated calls prefer MatVecTo with a reused destination.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.Rows()) // allocate exactly rows outputs
	if err := matVecInto(y, m, x); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	return y, nil
}

// MatVecTo computes dst = m * x without allocating.
//
// Implementation:
//   - Stage 1: validate m, len(x) == Cols, len(dst) == Rows, dst not aliasing x.
//   - Stage 2: dispatch to the dense / CSR / generic kernel.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAliasedOperands (all wrapped with "MatVecTo").
//
// Complexity:
//   - Time O(r*c) dense / O(nnz) sparse, Space O(1).
//
// AI-Hints:
//   - For in-place application (x := m*x) use a LinearOperator; it owns a scratch buffer.
func MatVecTo(dst []float64, m Matrix, x []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVecTo, err)
	}
	if err := matVecInto(dst, m, x); err != nil {
		return matrixErrorf(opMatVecTo, err)
	}

	return nil
}

// matVecInto is the shared validated kernel behind MatVec and MatVecTo.
func matVecInto(dst []float64, m Matrix, x []float64) error {
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return err
	}
	if err := ValidateVecLen(dst, m.Rows()); err != nil {
		return err
	}
	if len(dst) > 0 && len(x) > 0 && &dst[0] == &x[0] {
		return ErrAliasedOperands
	}

	switch a := m.(type) {
	case *Dense:
		denseMatVec(dst, a, x)
		return nil
	case *SparseMatrix:
		csrMatVec(dst, a, x)
		return nil
	}

	// Fallback: interface-based dot-products via At.
	rows, cols := m.Rows(), m.Cols()
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		acc := ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			acc += mv * x[j]
		}
		dst[i] = acc
	}

	return nil
}

// denseMatVec: one pass per row with flat indexing. No validation.
func denseMatVec(y []float64, d *Dense, x []float64) {
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		row := d.data[base : base+d.c]
		for j = range row {
			acc += row[j] * x[j]
		}
		y[i] = acc
	}
}

// csrMatVec: one pass over the stored entries of each row. No validation.
func csrMatVec(y []float64, s *SparseMatrix, x []float64) {
	var i, k int
	var acc float64
	for i = 0; i < s.r; i++ {
		acc = ZeroSum
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			acc += s.values[k] * x[s.colIdx[k]]
		}
		y[i] = acc
	}
}
