// SPDX-License-Identifier: MIT

// Package matrix - vector helpers used by power-iteration style loops.
//
// Determinism:
//   - Fixed index order in every reduction.

package matrix

import "math"

const opAllClose = "AllClose"

// Norm2 returns the Euclidean norm sqrt(Σ x[i]^2). Empty input gives 0.
// Complexity: O(n).
func Norm2(x []float64) float64 {
	acc := ZeroSum
	for _, v := range x {
		acc += v * v
	}

	return math.Sqrt(acc)
}

// Scale multiplies x in place by alpha.
func Scale(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// Normalize rescales x in place to unit L2 norm and returns the norm it had.
// A zero (or empty) vector is left unchanged and 0 is returned.
func Normalize(x []float64) float64 {
	nrm := Norm2(x)
	if nrm == 0 {
		return 0
	}
	Scale(1/nrm, x)

	return nrm
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for equal-length vectors.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - Non-finite tolerances return ErrNaNInf; unequal lengths ErrDimensionMismatch.
//
// Time: O(n). Space: O(1). Deterministic; exits on the first violation.
func AllClose(a, b []float64, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if len(a) != len(b) {
		return false, matrixErrorf(opAllClose, ErrDimensionMismatch)
	}
	for i := range a {
		// Negated form so a NaN on either side counts as a violation.
		if !(math.Abs(a[i]-b[i]) <= atol+rtol*math.Abs(b[i])) {
			return false, nil
		}
	}

	return true, nil
}
