// Package mesh defines core types, options, and sentinel errors
// for the structured quadrilateral meshes of github.com/katalvlaran/lvbench.
package mesh

import (
	"errors"
)

// Sentinel errors for mesh operations.
var (
	// ErrInvalidCells indicates a non-positive number of cells per side.
	ErrInvalidCells = errors.New("mesh: cells per side must be at least 1")
	// ErrInvalidRefinement indicates a refinement level outside [0, MaxRefinement].
	ErrInvalidRefinement = errors.New("mesh: refinement level out of range")
	// ErrCellIndex indicates a requested cell coordinate is out of range.
	ErrCellIndex = errors.New("mesh: cell index out of range")
)

// MaxRefinement bounds global refinement: 2^11 cells per side gives
// (2^11+1)^2 ≈ 4.2M vertices, the largest mesh the benchmark accepts.
const MaxRefinement = 11

// Stencil selects which neighbouring vertices couple with a vertex.
type Stencil int

const (
	// Stencil5 couples orthogonal neighbours only: N, E, S, W.
	Stencil5 Stencil = iota
	// Stencil9 adds the diagonals; it is the coupling of bilinear (Q1) elements.
	Stencil9
)

// Options contains tunable parameters for mesh construction.
type Options struct {
	// Stencil chooses the vertex coupling reported by Neighbors.
	Stencil Stencil
	// Length is the side length of the square domain.
	Length float64
}

// DefaultOptions returns Options with Stencil9 on the unit square.
func DefaultOptions() Options {
	return Options{
		Stencil: Stencil9,
		Length:  1,
	}
}

// Mesh is a uniform quadrilateral mesh of a square. It is immutable once built.
// Cells form a CellsPerSide×CellsPerSide grid; vertices form a Width×Height grid
// with Width = Height = CellsPerSide+1, numbered row-major: y*Width + x.
type Mesh struct {
	CellsPerSide  int
	Width, Height int
	Stencil       Stencil
	H             float64 // cell edge length
	offsets       [][2]int
}
