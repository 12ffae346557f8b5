// SPDX-License-Identifier: MIT

// Package fem assembles bilinear (Q1) finite-element matrices on the uniform
// quadrilateral meshes of package mesh.
//
// Purpose:
//   - MakeSparsityPattern: vertex couplings of Q1 elements (the 9-point stencil).
//   - AssembleLaplace: stiffness matrix of -Δu with natural boundary conditions.
//   - AssembleMass: consistent mass matrix.
//
// Determinism:
//   - Cells are visited in row-major order and local entries in fixed a→b
//     order, so repeated assembly is bit-identical.
//
// Notes:
//   - No boundary conditions are applied; the Laplace matrix is symmetric
//     positive semi-definite with constants in its kernel.
package fem

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvbench/matrix"
	"github.com/katalvlaran/lvbench/mesh"
)

// ErrNilMesh indicates a nil mesh argument.
var ErrNilMesh = errors.New("fem: mesh is nil")

// ErrStencilMismatch indicates a mesh whose vertex stencil cannot hold Q1 couplings.
var ErrStencilMismatch = errors.New("fem: Q1 elements need a 9-point stencil")

const (
	opPattern = "MakeSparsityPattern"
	opLaplace = "AssembleLaplace"
	opMass    = "AssembleMass"
)

// laplaceQ1 is the Q1 stiffness matrix of a square cell in counter-clockwise
// vertex order. In 2D it does not depend on the cell size.
var laplaceQ1 = [4][4]float64{
	{4.0 / 6, -1.0 / 6, -2.0 / 6, -1.0 / 6},
	{-1.0 / 6, 4.0 / 6, -1.0 / 6, -2.0 / 6},
	{-2.0 / 6, -1.0 / 6, 4.0 / 6, -1.0 / 6},
	{-1.0 / 6, -2.0 / 6, -1.0 / 6, 4.0 / 6},
}

// massQ1 is the Q1 mass matrix of a unit-area square cell; scale by h².
var massQ1 = [4][4]float64{
	{4.0 / 36, 2.0 / 36, 1.0 / 36, 2.0 / 36},
	{2.0 / 36, 4.0 / 36, 2.0 / 36, 1.0 / 36},
	{1.0 / 36, 2.0 / 36, 4.0 / 36, 2.0 / 36},
	{2.0 / 36, 1.0 / 36, 2.0 / 36, 4.0 / 36},
}

// MakeSparsityPattern returns the coupling pattern of Q1 elements on m:
// every vertex with itself and its stencil neighbours.
//
// Errors:
//   - ErrNilMesh, ErrStencilMismatch (mesh built with Stencil5).
//
// Complexity:
//   - Time O(V), at most 9 entries per row.
func MakeSparsityPattern(m *mesh.Mesh) (*matrix.SparsityPattern, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", opPattern, ErrNilMesh)
	}
	if m.Stencil != mesh.Stencil9 {
		return nil, fmt.Errorf("%s: %w", opPattern, ErrStencilMismatch)
	}
	n := m.NumVertices()
	sp, err := matrix.NewSparsityPattern(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPattern, err)
	}
	for i := 0; i < n; i++ {
		if err = sp.Add(i, i); err != nil {
			return nil, fmt.Errorf("%s: %w", opPattern, err)
		}
		if err = sp.AddEntries(i, m.Neighbors(i)); err != nil {
			return nil, fmt.Errorf("%s: %w", opPattern, err)
		}
	}

	return sp, nil
}

// AssembleLaplace assembles the Q1 stiffness matrix Σ_cells ∫ ∇φ_a·∇φ_b.
// Complexity: O(cells) with 16 sparse additions per cell.
func AssembleLaplace(m *mesh.Mesh) (*matrix.SparseMatrix, error) {
	a, err := assemble(m, &laplaceQ1, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLaplace, err)
	}

	return a, nil
}

// AssembleMass assembles the Q1 mass matrix Σ_cells ∫ φ_a φ_b.
func AssembleMass(m *mesh.Mesh) (*matrix.SparseMatrix, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", opMass, ErrNilMesh)
	}
	a, err := assemble(m, &massQ1, m.H*m.H)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opMass, err)
	}

	return a, nil
}

// assemble sums scale*local over all cells into a matrix on the Q1 pattern.
func assemble(m *mesh.Mesh, local *[4][4]float64, scale float64) (*matrix.SparseMatrix, error) {
	sp, err := MakeSparsityPattern(m)
	if err != nil {
		return nil, err
	}
	a, err := matrix.NewSparseMatrix(sp)
	if err != nil {
		return nil, err
	}

	var addErr error
	m.Cells(func(_, _ int, verts [4]int) {
		if addErr != nil {
			return
		}
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if addErr = a.Add(verts[i], verts[j], scale*local[i][j]); addErr != nil {
					return
				}
			}
		}
	})
	if addErr != nil {
		return nil, addErr
	}

	return a, nil
}
