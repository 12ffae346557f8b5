// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"
	"math"
)

// ErrMismatch indicates a variant whose result differs from the reference.
var ErrMismatch = errors.New("bench: result differs from reference")

// Tolerance bounds |got-want| <= Atol + Rtol*|want| per element.
type Tolerance struct {
	Rtol float64 `json:"rtol" yaml:"rtol"`
	Atol float64 `json:"atol" yaml:"atol"`
}

// DefaultTolerance is tight enough to catch any wrong product and loose
// enough for differing summation orders across libraries.
var DefaultTolerance = Tolerance{Rtol: 1e-10, Atol: 1e-12}

// MismatchError describes the first offending element of a failed check.
// Index is -1 for a length mismatch; Want and Got then hold the lengths.
type MismatchError struct {
	Variant string
	Index   int
	Want    float64
	Got     float64
}

func (e *MismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: length %d, want %d: %v", e.Variant, int(e.Got), int(e.Want), ErrMismatch)
	}
	return fmt.Sprintf("%s: x[%d] = %.17g, want %.17g: %v", e.Variant, e.Index, e.Got, e.Want, ErrMismatch)
}

// Unwrap lets errors.Is match ErrMismatch.
func (e *MismatchError) Unwrap() error { return ErrMismatch }

// CheckVector compares got with ref elementwise. NaN never passes.
//
// Errors:
//   - *MismatchError wrapping ErrMismatch.
//
// Complexity:
//   - Time O(n), no allocation on success.
func CheckVector(variant string, ref, got []float64, tol Tolerance) error {
	if len(ref) != len(got) {
		return &MismatchError{Variant: variant, Index: -1, Want: float64(len(ref)), Got: float64(len(got))}
	}
	for i, want := range ref {
		bound := tol.Atol + tol.Rtol*math.Abs(want)
		if !(math.Abs(got[i]-want) <= bound) {
			return &MismatchError{Variant: variant, Index: i, Want: want, Got: got[i]}
		}
	}

	return nil
}
