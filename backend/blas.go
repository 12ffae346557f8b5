// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"

	"github.com/james-bowman/sparse"
	sblas "github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/katalvlaran/lvbench/provider"
)

// BLASName labels the BLAS-level backend (gonum blas64 / sparse BLAS).
const BLASName = "blas"

// BLAS drives level-2 BLAS kernels over shadow views of the canonical storage:
// blas64.Gemv for dense problems, sparse BLAS Dusmv for CSR problems.
type BLAS struct {
	n      int
	dense  blas64.General
	sparse *sblas.SparseMatrix
}

// NewBLAS builds the BLAS views. Both views alias the provider's slices.
func NewBLAS(p *provider.Problem) (*BLAS, error) {
	if p == nil {
		return nil, fmt.Errorf("NewBLAS: %w", ErrNilProblem)
	}
	b := &BLAS{n: p.N}
	switch p.Kind {
	case provider.KindSparse:
		s := p.Sparse
		b.sparse = sparse.NewCSR(s.Rows(), s.Cols(), s.RowPtr(), s.ColIdx(), s.Values()).RawMatrix()
	default:
		d := p.Dense
		b.dense = blas64.General{Rows: d.Rows(), Cols: d.Cols(), Stride: d.Cols(), Data: d.RawData()}
	}

	return b, nil
}

// Name returns "blas".
func (b *BLAS) Name() string { return BLASName }

// Variants returns the raw and operator styles.
func (b *BLAS) Variants(power int) []Variant {
	return []Variant{
		{
			Name: variantName(BLASName, StyleRaw), Backend: BLASName, Style: StyleRaw,
			New: func() (Kernel, error) { return b.newRaw(power) },
		},
		{
			Name: variantName(BLASName, StyleOperator), Backend: BLASName, Style: StyleOperator,
			New: func() (Kernel, error) { return b.newOperator(power) },
		},
	}
}

func (b *BLAS) vector() blas64.Vector {
	return blas64.Vector{N: b.n, Inc: 1, Data: make([]float64, b.n)}
}

// mulVec computes dst = A*src.
func (b *BLAS) mulVec(dst, src blas64.Vector) {
	if b.sparse != nil {
		// Dusmv accumulates into y.
		for i := range dst.Data {
			dst.Data[i] = 0
		}
		sblas.Dusmv(false, 1, b.sparse, src.Data, src.Inc, dst.Data, dst.Inc)
		return
	}
	blas64.Gemv(blas.NoTrans, 1, b.dense, src, 0, dst)
}

// blasNormalize scales x to unit Euclidean norm; a zero vector is left unchanged.
func blasNormalize(x blas64.Vector) {
	if nrm := blas64.Nrm2(x); nrm != 0 {
		blas64.Scal(1/nrm, x)
	}
}

type blasRaw struct {
	b      *BLAS
	power  int
	x, tmp blas64.Vector
}

func (b *BLAS) newRaw(power int) (Kernel, error) {
	if power < 1 {
		return nil, fmt.Errorf("blas raw: %w", ErrInvalidPower)
	}
	return &blasRaw{b: b, power: power, x: b.vector(), tmp: b.vector()}, nil
}

func (k *blasRaw) Reset() { ResetVector(k.x.Data) }

func (k *blasRaw) Step() error {
	for i := 0; i < k.power; i++ {
		k.b.mulVec(k.tmp, k.x)
		k.x, k.tmp = k.tmp, k.x
	}
	blasNormalize(k.x)

	return nil
}

func (k *blasRaw) Result() []float64 { return k.x.Data }

// blasOperator is A^power over blas64 vectors, applied through one Vmult call.
type blasOperator struct {
	composed[blas64.Vector]
}

func (b *BLAS) newBLASOperator(power int) (*blasOperator, error) {
	if power < 1 {
		return nil, ErrInvalidPower
	}
	return &blasOperator{composed[blas64.Vector]{
		power: power,
		mul:   b.mulVec,
		bufs:  [2]blas64.Vector{b.vector(), b.vector()},
		stage: b.vector(),
	}}, nil
}

// Vmult computes dst = A^power * src; dst may be src.
func (op *blasOperator) Vmult(dst, src blas64.Vector) {
	if dst.N > 0 && &dst.Data[0] == &src.Data[0] {
		op.run(op.stage, src)
		blas64.Copy(op.stage, dst)
		return
	}
	op.run(dst, src)
}

type blasOperatorKernel struct {
	op *blasOperator
	x  blas64.Vector
}

func (b *BLAS) newOperator(power int) (Kernel, error) {
	op, err := b.newBLASOperator(power)
	if err != nil {
		return nil, fmt.Errorf("blas lo: %w", err)
	}
	return &blasOperatorKernel{op: op, x: b.vector()}, nil
}

func (k *blasOperatorKernel) Reset() { ResetVector(k.x.Data) }

func (k *blasOperatorKernel) Step() error {
	k.op.Vmult(k.x, k.x)
	blasNormalize(k.x)

	return nil
}

func (k *blasOperatorKernel) Result() []float64 { return k.x.Data }
