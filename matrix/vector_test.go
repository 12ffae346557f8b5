package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvbench/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestNorm2_MatchesFloats(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100} {
		x := ramp(n)
		require.InDelta(t, floats.Norm(x, 2), matrix.Norm2(x), 1e-12*float64(n+1), "n=%d", n)
	}
}

func TestNormalize(t *testing.T) {
	x := []float64{3, 4}
	require.Equal(t, 5.0, matrix.Normalize(x))
	require.InDeltaSlice(t, []float64{0.6, 0.8}, x, 1e-15)
	require.InDelta(t, 1.0, floats.Norm(x, 2), 1e-15)

	zero := []float64{0, 0, 0}
	require.Zero(t, matrix.Normalize(zero))
	require.Equal(t, []float64{0, 0, 0}, zero)

	require.Zero(t, matrix.Normalize(nil))
}

func TestScale(t *testing.T) {
	x := ramp(3)
	matrix.Scale(-2, x)
	want := ramp(3)
	floats.Scale(-2, want)
	require.Equal(t, want, x)
}

func TestAllClose(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want bool
	}{
		{"equal", []float64{1, 2}, []float64{1, 2}, true},
		{"rtol", []float64{1, 2 + 1e-11}, []float64{1, 2}, true},
		{"outside", []float64{1, 2.1}, []float64{1, 2}, false},
		{"nan", []float64{math.NaN()}, []float64{math.NaN()}, false},
		{"empty", nil, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := matrix.AllClose(tc.a, tc.b, 1e-10, 1e-12)
			require.NoError(t, err)
			require.Equal(t, tc.want, ok)
		})
	}

	_, err := matrix.AllClose([]float64{1}, []float64{1, 2}, 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.AllClose([]float64{1}, []float64{1}, math.Inf(1), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	// negative tolerances are normalized
	ok, err := matrix.AllClose([]float64{1}, []float64{1 + 1e-13}, -1e-10, -1e-12)
	require.NoError(t, err)
	require.True(t, ok)
}
