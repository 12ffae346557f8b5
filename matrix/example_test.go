package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvbench/matrix"
)

// ExampleLinearOperator_Power runs a few power-iteration steps with the lazy
// product A·A·A applied in place.
func ExampleLinearOperator_Power() {
	a, _ := matrix.NewSquare(2)
	_ = a.Fill(func(i, j int) float64 {
		if i == j {
			return 2
		}
		return 0
	})
	_ = a.Set(1, 1, 1)

	base, _ := matrix.NewLinearOperator(a)
	cubed, _ := base.Power(3)

	x := []float64{1, 1}
	for i := 0; i < 4; i++ {
		_ = cubed.Vmult(x, x)
		matrix.Normalize(x)
	}
	fmt.Printf("%.4f %.4f\n", x[0], x[1])
	// Output: 1.0000 0.0002
}

func ExampleSparsityPattern() {
	p, _ := matrix.NewSparsityPattern(2, 2)
	_ = p.AddEntries(0, []int{1, 0})
	_ = p.Add(1, 1)

	s, _ := matrix.NewSparseMatrix(p)
	_ = s.Add(0, 0, 1)
	_ = s.Add(0, 0, 1)
	_ = s.Set(1, 1, 3)

	fmt.Println(s.RowPtr(), s.ColIdx(), s.Values())
	// Output: [0 2 3] [0 1 1] [2 0 3]
}
