// Package lvbench is a micro-benchmark harness for repeated matrix-vector
// products with normalization, the inner step of power iteration:
//
//	x ← A^p·x / ‖A^p·x‖
//
// The same canonical matrix is driven through three backends and every
// result is checked against the first one:
//
//	native: the in-repo matrix package (Dense, SparseMatrix, LinearOperator)
//	blas:   gonum blas64 (dense) and sparse BLAS from james-bowman/sparse (CSR)
//	gonum:  gonum mat (dense) and james-bowman/sparse CSR
//
// Each backend is timed two ways: raw multiply calls, and a lazily composed
// operator applying A^p through one call. Libraries see the matrix through
// zero-copy views, so it is stored exactly once.
//
// Layout:
//
//	matrix/   native storage formats, kernels and linear operators
//	mesh/     structured quadrilateral meshes of the unit square
//	fem/      Q1 finite-element assembly (Laplace, mass) on a mesh
//	provider/ canonical dense and sparse benchmark problems
//	backend/  library adapters, shadow views and variants
//	bench/    driver, timer, consistency checker, Prometheus metrics
//	report/   text table and JSON output
//	config/   viper-backed configuration
//	cmd/lvbench/ the command-line entry point
//
// Quick start:
//
//	lvbench full 500 100          # dense, one multiply per repetition
//	lvbench full-cubed 200 100    # dense, A·A·A per repetition
//	lvbench sparse 6 100          # Q1 Laplace on a 64×64-cell mesh
package lvbench
