// Package mesh provides uniform quadrilateral meshes of a square domain,
// the geometry behind the finite-element matrices in package fem. It supports:
//
//   - Construction by cells per side (New) or by global refinement level (Refined)
//   - Row-major vertex numbering with coordinate round-trips
//   - Cell → vertex connectivity in counter-clockwise order
//   - Vertex couplings under a 5- or 9-point stencil
package mesh

import "fmt"

// New constructs a mesh with cellsPerSide cells along each side.
// Returns ErrInvalidCells if cellsPerSide < 1. A non-positive opts.Length
// falls back to the unit square.
// Complexity: O(1) time and memory.
func New(cellsPerSide int, opts Options) (*Mesh, error) {
	if cellsPerSide < 1 {
		return nil, fmt.Errorf("mesh.New(%d): %w", cellsPerSide, ErrInvalidCells)
	}
	length := opts.Length
	if length <= 0 {
		length = 1
	}
	// Precompute neighbor offsets based on the stencil
	var offsets [][2]int
	if opts.Stencil == Stencil9 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &Mesh{
		CellsPerSide: cellsPerSide,
		Width:        cellsPerSide + 1,
		Height:       cellsPerSide + 1,
		Stencil:      opts.Stencil,
		H:            length / float64(cellsPerSide),
		offsets:      offsets,
	}, nil
}

// Refined returns the mesh obtained by refining a single cell `level` times
// globally: 2^level cells per side.
// Returns ErrInvalidRefinement if level is outside [0, MaxRefinement].
func Refined(level int, opts Options) (*Mesh, error) {
	if level < 0 || level > MaxRefinement {
		return nil, fmt.Errorf("mesh.Refined(%d): %w", level, ErrInvalidRefinement)
	}

	return New(1<<level, opts)
}

// InBounds reports whether vertex (x,y) lies within the mesh.
// Complexity: O(1).
func (m *Mesh) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// NeighborOffsets returns the precomputed stencil offsets.
func (m *Mesh) NeighborOffsets() [][2]int {
	return m.offsets
}

// NumVertices returns Width*Height.
func (m *Mesh) NumVertices() int { return m.Width * m.Height }

// NumCells returns CellsPerSide².
func (m *Mesh) NumCells() int { return m.CellsPerSide * m.CellsPerSide }

// Index maps vertex (x,y) to its row-major number y*Width + x.
// Complexity: O(1).
func (m *Mesh) Index(x, y int) int {
	return y*m.Width + x
}

// Coordinate converts a row-major vertex number back to (x,y).
// Complexity: O(1).
func (m *Mesh) Coordinate(idx int) (x, y int) {
	return idx % m.Width, idx / m.Width
}

// Position returns the physical location of vertex idx.
func (m *Mesh) Position(idx int) (px, py float64) {
	x, y := m.Coordinate(idx)
	return float64(x) * m.H, float64(y) * m.H
}

// IsBoundary reports whether vertex idx lies on the domain boundary.
func (m *Mesh) IsBoundary(idx int) bool {
	x, y := m.Coordinate(idx)
	return x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
}

// CellVertices returns the four vertices of cell (cx,cy) counter-clockwise,
// starting at the lower-left corner.
// Returns ErrCellIndex for cells outside the mesh.
func (m *Mesh) CellVertices(cx, cy int) ([4]int, error) {
	if cx < 0 || cx >= m.CellsPerSide || cy < 0 || cy >= m.CellsPerSide {
		return [4]int{}, fmt.Errorf("mesh.CellVertices(%d,%d): %w", cx, cy, ErrCellIndex)
	}

	return [4]int{
		m.Index(cx, cy),
		m.Index(cx+1, cy),
		m.Index(cx+1, cy+1),
		m.Index(cx, cy+1),
	}, nil
}

// Cells calls fn for every cell in row-major cell order.
// Complexity: O(CellsPerSide²).
func (m *Mesh) Cells(fn func(cx, cy int, verts [4]int)) {
	for cy := 0; cy < m.CellsPerSide; cy++ {
		for cx := 0; cx < m.CellsPerSide; cx++ {
			fn(cx, cy, [4]int{
				m.Index(cx, cy),
				m.Index(cx+1, cy),
				m.Index(cx+1, cy+1),
				m.Index(cx, cy+1),
			})
		}
	}
}

// Neighbors returns the vertices coupled with idx under the mesh stencil,
// excluding idx itself, in stencil order.
func (m *Mesh) Neighbors(idx int) []int {
	x, y := m.Coordinate(idx)
	out := make([]int, 0, len(m.offsets))
	for _, d := range m.offsets {
		nx, ny := x+d[0], y+d[1]
		if !m.InBounds(nx, ny) {
			continue
		}
		out = append(out, m.Index(nx, ny))
	}

	return out
}
