// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (optionally wrapped with an op tag)
// and tests check them via errors.Is. No kernel panics on user-triggered
// error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) at the
// outer boundary; callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., MatVec with len(x) != Cols, or Compose with a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix, operator or vector was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNotInPattern is returned when a sparse write targets an entry that is
	// not part of the compressed sparsity pattern.
	ErrNotInPattern = errors.New("matrix: entry not in sparsity pattern")

	// ErrPatternCompressed is returned when a SparsityPattern is mutated after
	// it has been compressed into CSR form.
	ErrPatternCompressed = errors.New("matrix: sparsity pattern already compressed")

	// ErrAliasedOperands is returned by out-of-place kernels (MatVecTo) when the
	// destination shares its first element with the source.
	ErrAliasedOperands = errors.New("matrix: destination aliases source")

	// ErrInvalidExponent is returned by LinearOperator.Power for exponents < 1.
	ErrInvalidExponent = errors.New("matrix: operator exponent must be >= 1")
)

