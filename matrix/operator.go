// SPDX-License-Identifier: MIT

// Package matrix - LinearOperator: lazily composed matrix products.
//
// Purpose:
//   - Represent products such as A*A*A without ever forming the product matrix.
//   - Apply the whole chain through one Vmult call, which runs the factor
//     multiplications right to left through operator-owned scratch buffers.
//   - Allow in-place application (Vmult(x, x)) as a first-class use.
//
// Ownership:
//   - An operator borrows its matrix; the matrix must outlive the operator and
//     must not be mutated while the operator is in use.
//   - Scratch buffers make an operator unsafe for concurrent use; build one
//     operator per goroutine.
//
// Complexity quicksheet:
//   - Construction: O(1) plus scratch allocation O(rows).
//   - Vmult of a k-fold product over a dense n×n matrix: O(k*n^2), no allocation.

package matrix

import "fmt"

const (
	opNewLinearOperator = "NewLinearOperator"
	opCompose           = "Compose"
	opPower             = "Power"
	opVmult             = "LinearOperator.Vmult"
	opBind              = "LinearOperator.Bind"
)

// vmultFunc computes dst = Op*src; dst never aliases src when called.
type vmultFunc func(dst, src []float64) error

// LinearOperator is a lazily evaluated linear map R^cols → R^rows.
type LinearOperator struct {
	rows, cols int
	vmult      vmultFunc
	inPlace    []float64 // staging buffer for aliased Vmult calls (len rows)
}

// NewLinearOperator wraps m as an operator whose Vmult is MatVecTo.
// Errors: ErrNilMatrix.
func NewLinearOperator(m Matrix) (*LinearOperator, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNewLinearOperator, err)
	}

	return &LinearOperator{
		rows: m.Rows(),
		cols: m.Cols(),
		vmult: func(dst, src []float64) error {
			return MatVecTo(dst, m, src)
		},
		inPlace: make([]float64, m.Rows()),
	}, nil
}

// Rows returns the dimension of the range.
func (op *LinearOperator) Rows() int { return op.rows }

// Cols returns the dimension of the domain.
func (op *LinearOperator) Cols() int { return op.cols }

// Vmult computes dst = Op*src.
//
// Implementation:
//   - Stage 1: validate len(src) == Cols and len(dst) == Rows.
//   - Stage 2: if dst and src share storage, compute into the staging buffer and copy back.
//
// Errors:
//   - ErrNilMatrix (nil operator), ErrDimensionMismatch.
func (op *LinearOperator) Vmult(dst, src []float64) error {
	if op == nil {
		return matrixErrorf(opVmult, ErrNilMatrix)
	}
	if err := ValidateVecLen(src, op.cols); err != nil {
		return matrixErrorf(opVmult, err)
	}
	if err := ValidateVecLen(dst, op.rows); err != nil {
		return matrixErrorf(opVmult, err)
	}
	if len(dst) > 0 && len(src) > 0 && &dst[0] == &src[0] {
		if err := op.vmult(op.inPlace, src); err != nil {
			return matrixErrorf(opVmult, err)
		}
		copy(dst, op.inPlace)

		return nil
	}
	if err := op.vmult(dst, src); err != nil {
		return matrixErrorf(opVmult, err)
	}

	return nil
}

// Compose returns the lazy product a*b (b is applied first).
// Errors: ErrNilMatrix for nil operands; ErrDimensionMismatch when a.Cols != b.Rows.
func Compose(a, b *LinearOperator) (*LinearOperator, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opCompose, ErrNilMatrix)
	}
	if a.cols != b.rows {
		return nil, matrixErrorf(opCompose, ErrDimensionMismatch)
	}
	mid := make([]float64, b.rows) // intermediate b*src

	return &LinearOperator{
		rows: a.rows,
		cols: b.cols,
		vmult: func(dst, src []float64) error {
			if err := b.vmult(mid, src); err != nil {
				return err
			}
			return a.vmult(dst, mid)
		},
		inPlace: make([]float64, a.rows),
	}, nil
}

// Power returns the lazy k-fold product Op*Op*...*Op.
//
// Implementation:
//   - Stage 1: require a square operator and k >= 1.
//   - Stage 2: k == 1 returns op itself; otherwise intermediate results
//     ping-pong between two scratch buffers and the last factor writes dst.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrInvalidExponent (k < 1).
//
// Complexity:
//   - One Vmult costs k applications of op; no allocation after construction.
func (op *LinearOperator) Power(k int) (*LinearOperator, error) {
	if op == nil {
		return nil, matrixErrorf(opPower, ErrNilMatrix)
	}
	if op.rows != op.cols {
		return nil, matrixErrorf(opPower, ErrDimensionMismatch)
	}
	if k < 1 {
		return nil, matrixErrorf(opPower, fmt.Errorf("k=%d: %w", k, ErrInvalidExponent))
	}
	if k == 1 {
		return op, nil
	}
	bufs := [2][]float64{make([]float64, op.rows), make([]float64, op.rows)}
	base := op.vmult

	return &LinearOperator{
		rows: op.rows,
		cols: op.cols,
		vmult: func(dst, src []float64) error {
			cur := src
			for i := 0; i < k; i++ {
				out := dst
				if i < k-1 {
					out = bufs[i%2]
				}
				if err := base(out, cur); err != nil {
					return err
				}
				cur = out
			}
			return nil
		},
		inPlace: make([]float64, op.rows),
	}, nil
}

// PackagedOperation is an operator bound to its input vector (Op*x).
// Apply(dst) evaluates Op*x into dst; dst may be x itself.
type PackagedOperation struct {
	op *LinearOperator
	x  []float64
}

// Bind packages Op*x. The vector is borrowed: later changes to x are seen by Apply.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (op *LinearOperator) Bind(x []float64) (*PackagedOperation, error) {
	if op == nil {
		return nil, matrixErrorf(opBind, ErrNilMatrix)
	}
	if err := ValidateVecLen(x, op.cols); err != nil {
		return nil, matrixErrorf(opBind, err)
	}

	return &PackagedOperation{op: op, x: x}, nil
}

// Apply writes Op*x into dst.
func (p *PackagedOperation) Apply(dst []float64) error {
	return p.op.Vmult(dst, p.x)
}
