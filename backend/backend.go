// SPDX-License-Identifier: MIT

// Package backend adapts one canonical problem to each benchmarked library.
//
// Purpose:
//   - Overlay zero-copy shadow views of the provider's storage for every
//     library (gonum mat, gonum blas64, james-bowman/sparse).
//   - Expose each library two ways: raw multiply calls and a lazily composed
//     operator applying A^power through one call.
//   - Package every (backend, style) pair as a Variant whose Kernel the
//     benchmark driver resets, steps and inspects.
//
// Ownership:
//   - Views borrow the provider's slices. The Problem must outlive every
//     Backend built on it, and nothing may write through a view.
package backend

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvbench/provider"
)

// ErrNilProblem indicates a nil problem handed to an adapter constructor.
var ErrNilProblem = errors.New("backend: problem is nil")

// ErrInvalidPower indicates an operator power below 1.
var ErrInvalidPower = errors.New("backend: power must be >= 1")

// Style is the way a variant drives its library.
type Style string

const (
	// StyleRaw applies the matrix power times per repetition through plain multiply calls.
	StyleRaw Style = "raw"
	// StyleOperator applies a composed operator once per repetition.
	StyleOperator Style = "lo"
	// StylePackaged applies an operator bound to the working vector (Op*x) in place.
	StylePackaged Style = "po"
	// StyleNaive forms A^power eagerly every repetition before one multiply.
	StyleNaive Style = "naive"
)

// Kernel is the per-variant working state.
type Kernel interface {
	// Reset writes the initial pattern into the working vector.
	Reset()
	// Step performs one repetition: apply, then normalize.
	Step() error
	// Result returns the working vector without copying.
	Result() []float64
}

// Variant is one (backend, style) combination benchmarked in isolation.
type Variant struct {
	Name    string // timing section name, "<backend>_<style>"
	Backend string
	Style   Style
	// Expensive variants are subject to the driver's size threshold policy.
	Expensive bool
	// New allocates the variant's vectors and operators.
	New func() (Kernel, error)
}

// Backend is a library adapter over one problem.
type Backend interface {
	Name() string
	Variants(power int) []Variant
}

// InitialValue is the deterministic start pattern x[i] = 1 + (i mod 10)/10.
// It is never constant, so it is not in the kernel of the Laplace matrix.
func InitialValue(i int) float64 { return 1 + float64(i%10)/10 }

// ResetVector writes the start pattern into x.
func ResetVector(x []float64) {
	for i := range x {
		x[i] = InitialValue(i)
	}
}

func variantName(backend string, s Style) string {
	return fmt.Sprintf("%s_%s", backend, s)
}

// All builds the three adapters over p in reference order: native first.
func All(p *provider.Problem) ([]Backend, error) {
	nb, err := NewNative(p)
	if err != nil {
		return nil, err
	}
	bb, err := NewBLAS(p)
	if err != nil {
		return nil, err
	}
	gb, err := NewGonum(p)
	if err != nil {
		return nil, err
	}

	return []Backend{nb, bb, gb}, nil
}

// Variants flattens the variants of every backend, preserving order.
func Variants(backends []Backend, power int) []Variant {
	var out []Variant
	for _, b := range backends {
		out = append(out, b.Variants(power)...)
	}

	return out
}

// composed applies a single multiply kernel power times, right to left,
// ping-ponging intermediates between two scratch vectors.
type composed[V any] struct {
	power int
	mul   func(dst, src V)
	bufs  [2]V
	stage V // receives the result of aliased applications
}

// run computes dst = A^power * src; dst must not alias src.
func (c *composed[V]) run(dst, src V) {
	cur := src
	for i := 0; i < c.power; i++ {
		out := dst
		if i < c.power-1 {
			out = c.bufs[i%2]
		}
		c.mul(out, cur)
		cur = out
	}
}
