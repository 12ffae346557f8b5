// SPDX-License-Identifier: MIT

// Package provider builds the canonical matrices every backend is benchmarked on.
//
// Purpose:
//   - Dense: a synthetic n×n matrix with a deterministic value pattern.
//   - Sparse: the Q1 Laplace matrix of a globally refined unit square.
//   - Reject invalid sizes before any timed work starts.
//
// Determinism:
//   - Every pattern is reproducible: the same arguments always give
//     bit-identical storage, so all backends see the same input.
package provider

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvbench/fem"
	"github.com/katalvlaran/lvbench/matrix"
	"github.com/katalvlaran/lvbench/mesh"
)

// Sentinel errors for problem construction. All are configuration errors.
var (
	// ErrInvalidSize indicates a dense size n < 1.
	ErrInvalidSize = errors.New("provider: matrix size must be >= 1")
	// ErrInvalidRefinement indicates a refinement level outside [0, mesh.MaxRefinement].
	ErrInvalidRefinement = errors.New("provider: refinement level out of range")
	// ErrUnknownPattern indicates an unsupported dense value pattern.
	ErrUnknownPattern = errors.New("provider: unknown matrix pattern")
)

// Kind distinguishes dense from sparse problems.
type Kind int

const (
	// KindDense problems carry a *matrix.Dense.
	KindDense Kind = iota
	// KindSparse problems carry a *matrix.SparseMatrix.
	KindSparse
)

// String returns "dense" or "sparse".
func (k Kind) String() string {
	if k == KindSparse {
		return "sparse"
	}
	return "dense"
}

// Pattern names a dense value pattern.
type Pattern string

const (
	// PatternToeplitz fills a(i,j) = 1/(1+|i-j|); symmetric with a dominant eigenvector.
	PatternToeplitz Pattern = "toeplitz"
	// PatternRandom fills uniform [0,1) values from a seeded generator.
	PatternRandom Pattern = "random"
)

// DefaultSeed seeds PatternRandom when no seed is given.
const DefaultSeed int64 = 1337

// Problem is the canonical matrix of one benchmark run.
// Exactly one of Dense and Sparse is set, according to Kind.
type Problem struct {
	Kind       Kind
	Label      string // "FullMatrix" or "SparseMatrix"
	N          int
	Refinement int // sparse only
	Dense      *matrix.Dense
	Sparse     *matrix.SparseMatrix
}

// Matrix returns the canonical matrix behind the Matrix interface.
func (p *Problem) Matrix() matrix.Matrix {
	if p.Kind == KindSparse {
		return p.Sparse
	}
	return p.Dense
}

// NNZ returns the number of stored entries (n² for dense problems).
func (p *Problem) NNZ() int {
	if p.Kind == KindSparse {
		return p.Sparse.NNZ()
	}
	return p.N * p.N
}

type options struct {
	pattern Pattern
	seed    int64
}

// Option configures Dense.
type Option func(*options)

// WithPattern selects the dense value pattern.
func WithPattern(p Pattern) Option { return func(o *options) { o.pattern = p } }

// WithSeed seeds PatternRandom.
func WithSeed(seed int64) Option { return func(o *options) { o.seed = seed } }

// Dense returns an n×n FullMatrix problem.
// Errors: ErrInvalidSize (n < 1), ErrUnknownPattern.
func Dense(n int, opts ...Option) (*Problem, error) {
	o := options{pattern: PatternToeplitz, seed: DefaultSeed}
	for _, opt := range opts {
		opt(&o)
	}
	if n < 1 {
		return nil, fmt.Errorf("provider.Dense(%d): %w", n, ErrInvalidSize)
	}

	var fill func(i, j int) float64
	switch o.pattern {
	case PatternToeplitz:
		fill = func(i, j int) float64 {
			return 1 / (1 + math.Abs(float64(i-j)))
		}
	case PatternRandom:
		rng := rand.New(rand.NewSource(o.seed))
		fill = func(_, _ int) float64 { return rng.Float64() }
	default:
		return nil, fmt.Errorf("provider.Dense(%q): %w", o.pattern, ErrUnknownPattern)
	}

	d, err := matrix.NewSquare(n)
	if err != nil {
		return nil, fmt.Errorf("provider.Dense(%d): %w", n, err)
	}
	if err = d.Fill(fill); err != nil {
		return nil, fmt.Errorf("provider.Dense(%d): %w", n, err)
	}

	return &Problem{Kind: KindDense, Label: "FullMatrix", N: n, Dense: d}, nil
}

// Sparse returns the Laplace matrix on the unit square refined `refinement`
// times: n = (2^refinement + 1)².
// Errors: ErrInvalidRefinement.
func Sparse(refinement int) (*Problem, error) {
	if refinement < 0 || refinement > mesh.MaxRefinement {
		return nil, fmt.Errorf("provider.Sparse(%d): %w", refinement, ErrInvalidRefinement)
	}
	m, err := mesh.Refined(refinement, mesh.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("provider.Sparse(%d): %w", refinement, err)
	}
	a, err := fem.AssembleLaplace(m)
	if err != nil {
		return nil, fmt.Errorf("provider.Sparse(%d): %w", refinement, err)
	}

	return &Problem{
		Kind:       KindSparse,
		Label:      "SparseMatrix",
		N:          a.Rows(),
		Refinement: refinement,
		Sparse:     a,
	}, nil
}
