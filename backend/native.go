// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"

	"github.com/katalvlaran/lvbench/matrix"
	"github.com/katalvlaran/lvbench/provider"
)

// NativeName labels the in-repo matrix package.
const NativeName = "native"

// Native drives the in-repo matrix package directly on the canonical storage.
// Its raw variant is the reference every other variant is checked against.
type Native struct {
	n int
	a matrix.Matrix
}

// NewNative wraps the problem's matrix; no copy is made.
func NewNative(p *provider.Problem) (*Native, error) {
	if p == nil {
		return nil, fmt.Errorf("NewNative: %w", ErrNilProblem)
	}
	a := p.Matrix()
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, fmt.Errorf("NewNative: %w", err)
	}

	return &Native{n: p.N, a: a}, nil
}

// Name returns "native".
func (b *Native) Name() string { return NativeName }

// Variants returns raw and operator styles; powers above 1 add the packaged style.
func (b *Native) Variants(power int) []Variant {
	vs := []Variant{
		{
			Name: variantName(NativeName, StyleRaw), Backend: NativeName, Style: StyleRaw,
			New: func() (Kernel, error) { return b.newRaw(power) },
		},
		{
			Name: variantName(NativeName, StyleOperator), Backend: NativeName, Style: StyleOperator,
			New: func() (Kernel, error) { return b.newOperator(power) },
		},
	}
	if power > 1 {
		vs = append(vs, Variant{
			Name: variantName(NativeName, StylePackaged), Backend: NativeName, Style: StylePackaged,
			New: func() (Kernel, error) { return b.newPackaged(power) },
		})
	}

	return vs
}

type nativeRaw struct {
	a      matrix.Matrix
	power  int
	x, tmp []float64
}

func (b *Native) newRaw(power int) (Kernel, error) {
	if power < 1 {
		return nil, fmt.Errorf("native raw: %w", ErrInvalidPower)
	}
	return &nativeRaw{a: b.a, power: power, x: make([]float64, b.n), tmp: make([]float64, b.n)}, nil
}

func (k *nativeRaw) Reset() { ResetVector(k.x) }

func (k *nativeRaw) Step() error {
	for i := 0; i < k.power; i++ {
		if err := matrix.MatVecTo(k.tmp, k.a, k.x); err != nil {
			return fmt.Errorf("native raw: %w", err)
		}
		k.x, k.tmp = k.tmp, k.x
	}
	matrix.Normalize(k.x)

	return nil
}

func (k *nativeRaw) Result() []float64 { return k.x }

type nativeOperator struct {
	op *matrix.LinearOperator
	x  []float64
}

func (b *Native) newOperator(power int) (Kernel, error) {
	base, err := matrix.NewLinearOperator(b.a)
	if err != nil {
		return nil, fmt.Errorf("native lo: %w", err)
	}
	op, err := base.Power(power)
	if err != nil {
		return nil, fmt.Errorf("native lo: %w", err)
	}

	return &nativeOperator{op: op, x: make([]float64, b.n)}, nil
}

func (k *nativeOperator) Reset() { ResetVector(k.x) }

func (k *nativeOperator) Step() error {
	if err := k.op.Vmult(k.x, k.x); err != nil {
		return fmt.Errorf("native lo: %w", err)
	}
	matrix.Normalize(k.x)

	return nil
}

func (k *nativeOperator) Result() []float64 { return k.x }

type nativePackaged struct {
	step *matrix.PackagedOperation
	x    []float64
}

func (b *Native) newPackaged(power int) (Kernel, error) {
	base, err := matrix.NewLinearOperator(b.a)
	if err != nil {
		return nil, fmt.Errorf("native po: %w", err)
	}
	op, err := base.Power(power)
	if err != nil {
		return nil, fmt.Errorf("native po: %w", err)
	}
	x := make([]float64, b.n)
	step, err := op.Bind(x)
	if err != nil {
		return nil, fmt.Errorf("native po: %w", err)
	}

	return &nativePackaged{step: step, x: x}, nil
}

func (k *nativePackaged) Reset() { ResetVector(k.x) }

func (k *nativePackaged) Step() error {
	if err := k.step.Apply(k.x); err != nil {
		return fmt.Errorf("native po: %w", err)
	}
	matrix.Normalize(k.x)

	return nil
}

func (k *nativePackaged) Result() []float64 { return k.x }
