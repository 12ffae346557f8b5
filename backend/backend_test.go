package backend_test

import (
	"testing"

	"github.com/katalvlaran/lvbench/backend"
	"github.com/katalvlaran/lvbench/matrix"
	"github.com/katalvlaran/lvbench/provider"
	"github.com/stretchr/testify/require"
)

func names(vs []backend.Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}

func mustBackends(t *testing.T, p *provider.Problem) []backend.Backend {
	t.Helper()
	bs, err := backend.All(p)
	require.NoError(t, err)
	return bs
}

func TestResetVector(t *testing.T) {
	x := make([]float64, 12)
	backend.ResetVector(x)
	require.Equal(t, 1.0, x[0])
	require.InDelta(t, 1.9, x[9], 1e-15)
	require.Equal(t, x[0], x[10])
	require.InDelta(t, 1.1, x[11], 1e-15)
}

func TestConstructors_NilProblem(t *testing.T) {
	_, err := backend.NewNative(nil)
	require.ErrorIs(t, err, backend.ErrNilProblem)
	_, err = backend.NewBLAS(nil)
	require.ErrorIs(t, err, backend.ErrNilProblem)
	_, err = backend.NewGonum(nil)
	require.ErrorIs(t, err, backend.ErrNilProblem)
	_, err = backend.All(nil)
	require.ErrorIs(t, err, backend.ErrNilProblem)
}

func TestVariants_Catalogue(t *testing.T) {
	p, err := provider.Dense(4)
	require.NoError(t, err)
	bs := mustBackends(t, p)

	require.Equal(t, []string{
		"native_raw", "native_lo", "blas_raw", "blas_lo", "gonum_raw", "gonum_lo",
	}, names(backend.Variants(bs, 1)))

	cubed := backend.Variants(bs, 3)
	require.Equal(t, []string{
		"native_raw", "native_lo", "native_po",
		"blas_raw", "blas_lo",
		"gonum_naive", "gonum_raw", "gonum_lo",
	}, names(cubed))
	for _, v := range cubed {
		require.Equal(t, v.Style == backend.StyleNaive, v.Expensive, v.Name)
	}
}

func TestKernel_InvalidPower(t *testing.T) {
	p, err := provider.Dense(4)
	require.NoError(t, err)
	for _, v := range backend.Variants(mustBackends(t, p), 0) {
		_, err := v.New()
		if v.Backend == backend.NativeName && v.Style == backend.StyleOperator {
			require.ErrorIs(t, err, matrix.ErrInvalidExponent)
			continue
		}
		require.ErrorIs(t, err, backend.ErrInvalidPower, v.Name)
	}
}

// runAll steps every variant reps times and returns results keyed by name.
func runAll(t *testing.T, p *provider.Problem, power, reps int) map[string][]float64 {
	t.Helper()
	out := make(map[string][]float64)
	for _, v := range backend.Variants(mustBackends(t, p), power) {
		k, err := v.New()
		require.NoError(t, err, v.Name)
		k.Reset()
		for r := 0; r < reps; r++ {
			require.NoError(t, k.Step(), v.Name)
		}
		out[v.Name] = append([]float64(nil), k.Result()...)
	}
	return out
}

func requireAgree(t *testing.T, results map[string][]float64) {
	t.Helper()
	ref, ok := results["native_raw"]
	require.True(t, ok)
	for name, got := range results {
		ok, err := matrix.AllClose(ref, got, 1e-10, 1e-12)
		require.NoError(t, err, name)
		require.True(t, ok, "%s differs from native_raw", name)
		require.InDelta(t, 1.0, matrix.Norm2(got), 1e-12, name)
	}
}

func TestVariants_AgreeDense(t *testing.T) {
	p, err := provider.Dense(40)
	require.NoError(t, err)
	for _, power := range []int{1, 3} {
		requireAgree(t, runAll(t, p, power, 6))
	}
}

func TestVariants_AgreeDenseRandom(t *testing.T) {
	p, err := provider.Dense(25, provider.WithPattern(provider.PatternRandom))
	require.NoError(t, err)
	requireAgree(t, runAll(t, p, 3, 4))
}

func TestVariants_AgreeSparse(t *testing.T) {
	p, err := provider.Sparse(3)
	require.NoError(t, err)
	results := runAll(t, p, 3, 5)
	require.Len(t, results, 8)
	requireAgree(t, results)
}

func TestVariants_SingleEntry(t *testing.T) {
	p, err := provider.Dense(1)
	require.NoError(t, err)
	for name, got := range runAll(t, p, 3, 3) {
		require.Equal(t, []float64{1}, got, name)
	}
}

// TestKernel_ResetIsIdempotent checks that a reset fully restores the start state.
func TestKernel_ResetIsIdempotent(t *testing.T) {
	p, err := provider.Dense(10)
	require.NoError(t, err)
	for _, v := range backend.Variants(mustBackends(t, p), 3) {
		k, err := v.New()
		require.NoError(t, err)
		k.Reset()
		require.NoError(t, k.Step())
		first := append([]float64(nil), k.Result()...)
		require.NoError(t, k.Step())
		k.Reset()
		k.Reset()
		require.Equal(t, backend.InitialValue(3), k.Result()[3], v.Name)
		require.NoError(t, k.Step())
		require.Equal(t, first, k.Result(), v.Name)
	}
}
