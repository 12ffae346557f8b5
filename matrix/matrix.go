// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface shared by Dense and SparseMatrix.
//
// What & Why:
//
//	The Matrix interface provides a uniform, bounds-checked view over
//	two-dimensional float64 storage. Kernels (MatVec, MatVecTo, LinearOperator)
//	accept any Matrix and take flat-slice fast paths for *Dense and
//	*SparseMatrix.
//
// Complexity:
//
//	Rows() and Cols() run in O(1) time.
//	Dense.At/Set are O(1); SparseMatrix.At/Set are O(log nnz(row)).
//	Clone() performs a deep copy, allocating new storage.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Complexity notes: Rows/Cols are O(1); At/Set are O(1) for dense storage.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}
