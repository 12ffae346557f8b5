// SPDX-License-Identifier: MIT

// Package matrix is the native linear-algebra layer of lvbench.
//
// It provides the two storage formats every benchmark problem is built in
// and the kernels the native backend is timed with:
//
//   - Dense: row-major n×m storage; RawData exposes the flat buffer.
//   - SparsityPattern → SparseMatrix: pattern-first CSR assembly; RowPtr,
//     ColIdx and Values expose the three CSR arrays.
//   - MatVec / MatVecTo: y = A*x with flat fast paths for both formats.
//   - LinearOperator: lazily composed products (Compose, Power) applied
//     through one Vmult call, including in place; Bind packages Op*x.
//   - Norm2, Normalize, AllClose: vector helpers for power-iteration loops.
//
// Other libraries overlay zero-copy views on the exposed buffers, so a
// problem is stored exactly once. Such views must be treated as read-only.
//
// Errors are package sentinels (ErrDimensionMismatch, ErrOutOfRange, ...)
// wrapped with an operation tag; match them with errors.Is. No exported
// function panics on user input.
package matrix
