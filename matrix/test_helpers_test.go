package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvbench/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense creates an r×c Dense or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)
	return m
}

// denseFrom builds a Dense from row literals.
func denseFrom(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m := mustDense(tb, len(rows), len(rows[0]))
	require.NoError(tb, m.Fill(func(i, j int) float64 { return rows[i][j] }))
	return m
}

// fillDenseRand fills m with uniform [-1, 1) values from a fixed seed.
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	require.NoError(tb, m.Fill(func(_, _ int) float64 { return 2*rng.Float64() - 1 }))
}

// tridiagonal returns the n×n CSR matrix with 2 on the diagonal and -1 off it.
func tridiagonal(tb testing.TB, n int) *matrix.SparseMatrix {
	tb.Helper()
	p, err := matrix.NewSparsityPattern(n, n)
	require.NoError(tb, err)
	for i := 0; i < n; i++ {
		for j := i - 1; j <= i+1; j++ {
			if j >= 0 && j < n {
				require.NoError(tb, p.Add(i, j))
			}
		}
	}
	s, err := matrix.NewSparseMatrix(p)
	require.NoError(tb, err)
	for i := 0; i < n; i++ {
		require.NoError(tb, s.Set(i, i, 2))
		if i > 0 {
			require.NoError(tb, s.Set(i, i-1, -1))
		}
		if i < n-1 {
			require.NoError(tb, s.Set(i, i+1, -1))
		}
	}
	return s
}

// ramp returns [1, 2, ..., n].
func ramp(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i + 1)
	}
	return x
}
