package provider_test

import (
	"testing"

	"github.com/katalvlaran/lvbench/provider"
	"github.com/stretchr/testify/require"
)

func TestDense_InvalidSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := provider.Dense(n)
		require.ErrorIs(t, err, provider.ErrInvalidSize)
	}
	_, err := provider.Dense(4, provider.WithPattern("hilbert"))
	require.ErrorIs(t, err, provider.ErrUnknownPattern)
}

func TestDense_Toeplitz(t *testing.T) {
	p, err := provider.Dense(3)
	require.NoError(t, err)
	require.Equal(t, provider.KindDense, p.Kind)
	require.Equal(t, "FullMatrix", p.Label)
	require.Equal(t, 9, p.NNZ())
	require.Equal(t, []float64{
		1, 0.5, 1.0 / 3,
		0.5, 1, 0.5,
		1.0 / 3, 0.5, 1,
	}, p.Dense.RawData())
	require.Same(t, p.Dense, p.Matrix())
}

func TestDense_SingleEntry(t *testing.T) {
	p, err := provider.Dense(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1}, p.Dense.RawData())
}

func TestDense_RandomIsReproducible(t *testing.T) {
	a, err := provider.Dense(16, provider.WithPattern(provider.PatternRandom), provider.WithSeed(7))
	require.NoError(t, err)
	b, err := provider.Dense(16, provider.WithPattern(provider.PatternRandom), provider.WithSeed(7))
	require.NoError(t, err)
	c, err := provider.Dense(16, provider.WithPattern(provider.PatternRandom), provider.WithSeed(8))
	require.NoError(t, err)

	require.Equal(t, a.Dense.RawData(), b.Dense.RawData())
	require.NotEqual(t, a.Dense.RawData(), c.Dense.RawData())
}

func TestSparse(t *testing.T) {
	_, err := provider.Sparse(-1)
	require.ErrorIs(t, err, provider.ErrInvalidRefinement)
	_, err = provider.Sparse(12)
	require.ErrorIs(t, err, provider.ErrInvalidRefinement)

	p, err := provider.Sparse(2)
	require.NoError(t, err)
	require.Equal(t, provider.KindSparse, p.Kind)
	require.Equal(t, 25, p.N)
	require.Equal(t, 2, p.Refinement)
	require.Equal(t, p.Sparse.NNZ(), p.NNZ())
	require.Equal(t, "sparse", p.Kind.String())
}
