// Package matrix_test provides benchmarks for the native kernels, using
// deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvbench/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{128, 256, 512}

// sinks to defeat dead-code elimination
var (
	sinkV []float64
	sinkF float64
)

func BenchmarkMatVecTo_Dense(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 1337)
			x, y := ramp(n), make([]float64, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.MatVecTo(y, A, x); err != nil {
					b.Fatal(err)
				}
			}
			sinkV = y
		})
	}
}

func BenchmarkMatVecTo_Sparse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{1 << 10, 1 << 14} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			S := tridiagonal(b, n)
			x, y := ramp(n), make([]float64, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.MatVecTo(y, S, x); err != nil {
					b.Fatal(err)
				}
			}
			sinkV = y
		})
	}
}

// BenchmarkPowerIteration times one step of x ← A³x/‖A³x‖ through an operator.
func BenchmarkPowerIteration(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 7)
			op, err := mustOperator(b, A).Power(3)
			if err != nil {
				b.Fatal(err)
			}
			x := ramp(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err = op.Vmult(x, x); err != nil {
					b.Fatal(err)
				}
				sinkF = matrix.Normalize(x)
			}
		})
	}
}
