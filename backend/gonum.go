// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvbench/provider"
)

// GonumName labels the gonum mat backend (with james-bowman/sparse for CSR).
const GonumName = "gonum"

// Gonum drives mat.Dense or sparse.CSR shadows of the canonical storage.
//
// Besides the raw and operator styles it offers a naive style that forms
// A^power as a matrix every repetition, the way an expression written
// (A*A*A)*x is evaluated eagerly. That style is Expensive.
type Gonum struct {
	n   int
	a   mat.Matrix
	csr *sparse.CSR // nil for dense problems
}

// NewGonum builds the gonum views. They alias the provider's slices.
func NewGonum(p *provider.Problem) (*Gonum, error) {
	if p == nil {
		return nil, fmt.Errorf("NewGonum: %w", ErrNilProblem)
	}
	g := &Gonum{n: p.N}
	switch p.Kind {
	case provider.KindSparse:
		s := p.Sparse
		g.csr = sparse.NewCSR(s.Rows(), s.Cols(), s.RowPtr(), s.ColIdx(), s.Values())
		g.a = g.csr
	default:
		d := p.Dense
		g.a = mat.NewDense(d.Rows(), d.Cols(), d.RawData())
	}

	return g, nil
}

// Name returns "gonum".
func (g *Gonum) Name() string { return GonumName }

// Variants returns naive (powers above 1 only), raw and operator styles.
func (g *Gonum) Variants(power int) []Variant {
	var vs []Variant
	if power > 1 {
		vs = append(vs, Variant{
			Name: variantName(GonumName, StyleNaive), Backend: GonumName, Style: StyleNaive,
			Expensive: true,
			New:       func() (Kernel, error) { return g.newNaive(power) },
		})
	}

	return append(vs,
		Variant{
			Name: variantName(GonumName, StyleRaw), Backend: GonumName, Style: StyleRaw,
			New: func() (Kernel, error) { return g.newRaw(power) },
		},
		Variant{
			Name: variantName(GonumName, StyleOperator), Backend: GonumName, Style: StyleOperator,
			New: func() (Kernel, error) { return g.newOperator(power) },
		},
	)
}

// mulVec computes dst = A*src.
func (g *Gonum) mulVec(dst, src *mat.VecDense) {
	if g.csr != nil {
		out := dst.RawVector().Data
		for i := range out {
			out[i] = 0
		}
		g.csr.MulVecTo(out, false, src.RawVector().Data)
		return
	}
	dst.MulVec(g.a, src)
}

// gonumNormalize scales x to unit Euclidean norm; a zero vector is left unchanged.
func gonumNormalize(x *mat.VecDense) {
	if nrm := mat.Norm(x, 2); nrm != 0 {
		x.ScaleVec(1/nrm, x)
	}
}

type gonumRaw struct {
	g      *Gonum
	power  int
	x, tmp *mat.VecDense
}

func (g *Gonum) newRaw(power int) (Kernel, error) {
	if power < 1 {
		return nil, fmt.Errorf("gonum raw: %w", ErrInvalidPower)
	}
	return &gonumRaw{g: g, power: power, x: mat.NewVecDense(g.n, nil), tmp: mat.NewVecDense(g.n, nil)}, nil
}

func (k *gonumRaw) Reset() { ResetVector(k.x.RawVector().Data) }

func (k *gonumRaw) Step() error {
	for i := 0; i < k.power; i++ {
		k.g.mulVec(k.tmp, k.x)
		k.x, k.tmp = k.tmp, k.x
	}
	gonumNormalize(k.x)

	return nil
}

func (k *gonumRaw) Result() []float64 { return k.x.RawVector().Data }

// gonumOperator is A^power over *mat.VecDense, applied through one Vmult call.
type gonumOperator struct {
	composed[*mat.VecDense]
}

func (g *Gonum) newGonumOperator(power int) (*gonumOperator, error) {
	if power < 1 {
		return nil, ErrInvalidPower
	}
	return &gonumOperator{composed[*mat.VecDense]{
		power: power,
		mul:   g.mulVec,
		bufs:  [2]*mat.VecDense{mat.NewVecDense(g.n, nil), mat.NewVecDense(g.n, nil)},
		stage: mat.NewVecDense(g.n, nil),
	}}, nil
}

// Vmult computes dst = A^power * src; dst may be src.
func (op *gonumOperator) Vmult(dst, src *mat.VecDense) {
	if dst == src {
		op.run(op.stage, src)
		dst.CopyVec(op.stage)
		return
	}
	op.run(dst, src)
}

type gonumOperatorKernel struct {
	op *gonumOperator
	x  *mat.VecDense
}

func (g *Gonum) newOperator(power int) (Kernel, error) {
	op, err := g.newGonumOperator(power)
	if err != nil {
		return nil, fmt.Errorf("gonum lo: %w", err)
	}
	return &gonumOperatorKernel{op: op, x: mat.NewVecDense(g.n, nil)}, nil
}

func (k *gonumOperatorKernel) Reset() { ResetVector(k.x.RawVector().Data) }

func (k *gonumOperatorKernel) Step() error {
	k.op.Vmult(k.x, k.x)
	gonumNormalize(k.x)

	return nil
}

func (k *gonumOperatorKernel) Result() []float64 { return k.x.RawVector().Data }

type gonumNaive struct {
	g     *Gonum
	power int
	x     *mat.VecDense
	y     *mat.VecDense
}

func (g *Gonum) newNaive(power int) (Kernel, error) {
	if power < 1 {
		return nil, fmt.Errorf("gonum naive: %w", ErrInvalidPower)
	}
	return &gonumNaive{g: g, power: power, x: mat.NewVecDense(g.n, nil), y: mat.NewVecDense(g.n, nil)}, nil
}

func (k *gonumNaive) Reset() { ResetVector(k.x.RawVector().Data) }

// Step materialises A^power with fresh temporaries, then multiplies once.
func (k *gonumNaive) Step() error {
	p := k.g.matPower(k.power)
	if csr, ok := p.(*sparse.CSR); ok {
		out := k.y.RawVector().Data
		for i := range out {
			out[i] = 0
		}
		csr.MulVecTo(out, false, k.x.RawVector().Data)
	} else {
		k.y.MulVec(p, k.x)
	}
	k.x, k.y = k.y, k.x
	gonumNormalize(k.x)

	return nil
}

func (k *gonumNaive) Result() []float64 { return k.x.RawVector().Data }

// matPower returns A^power as a newly allocated matrix (A itself for power 1).
func (g *Gonum) matPower(power int) mat.Matrix {
	cur := g.a
	for i := 1; i < power; i++ {
		if g.csr != nil {
			var next sparse.CSR
			next.Mul(cur, g.csr)
			cur = &next
			continue
		}
		var next mat.Dense
		next.Mul(cur, g.a)
		cur = &next
	}

	return cur
}
