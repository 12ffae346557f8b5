package mesh_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/katalvlaran/lvbench/mesh"
)

//----------------------------------------------------------------------------//
// New, Refined and InBounds Tests
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New and Refined reject invalid sizes.
func TestNew_Errors(t *testing.T) {
	if _, err := mesh.New(0, mesh.DefaultOptions()); !errors.Is(err, mesh.ErrInvalidCells) {
		t.Errorf("New(0) error = %v; want %v", err, mesh.ErrInvalidCells)
	}
	if _, err := mesh.New(-3, mesh.DefaultOptions()); !errors.Is(err, mesh.ErrInvalidCells) {
		t.Errorf("New(-3) error = %v; want %v", err, mesh.ErrInvalidCells)
	}
	for _, level := range []int{-1, mesh.MaxRefinement + 1} {
		if _, err := mesh.Refined(level, mesh.DefaultOptions()); !errors.Is(err, mesh.ErrInvalidRefinement) {
			t.Errorf("Refined(%d) error = %v; want %v", level, err, mesh.ErrInvalidRefinement)
		}
	}
}

// TestRefined_Sizes checks vertex and cell counts per refinement level.
func TestRefined_Sizes(t *testing.T) {
	cases := []struct {
		level, cells, vertices int
	}{
		{0, 1, 4},
		{1, 4, 9},
		{2, 16, 25},
		{4, 256, 289},
	}
	for _, tc := range cases {
		m, err := mesh.Refined(tc.level, mesh.DefaultOptions())
		if err != nil {
			t.Fatalf("Refined(%d) error: %v", tc.level, err)
		}
		if m.NumCells() != tc.cells || m.NumVertices() != tc.vertices {
			t.Errorf("Refined(%d): cells=%d vertices=%d; want %d, %d",
				tc.level, m.NumCells(), m.NumVertices(), tc.cells, tc.vertices)
		}
	}
}

// TestInBounds checks InBounds on a 2×2-cell (3×3-vertex) mesh.
func TestInBounds(t *testing.T) {
	m, err := mesh.New(2, mesh.DefaultOptions())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for _, xy := range [][2]int{{0, 0}, {2, 2}, {1, 2}} {
		if !m.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d) = false; want true", xy[0], xy[1])
		}
	}
	for _, xy := range [][2]int{{-1, 0}, {3, 0}, {0, 3}} {
		if m.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d) = true; want false", xy[0], xy[1])
		}
	}
}

// TestIndexCoordinateRoundTrip ensures Index and Coordinate are inverse maps.
func TestIndexCoordinateRoundTrip(t *testing.T) {
	m, _ := mesh.New(5, mesh.DefaultOptions())
	for idx := 0; idx < m.NumVertices(); idx++ {
		x, y := m.Coordinate(idx)
		if got := m.Index(x, y); got != idx {
			t.Fatalf("Index(Coordinate(%d)) = %d", idx, got)
		}
	}
}

//----------------------------------------------------------------------------//
// Connectivity Tests
//----------------------------------------------------------------------------//

// TestCellVertices checks counter-clockwise ordering and range errors.
func TestCellVertices(t *testing.T) {
	m, _ := mesh.New(2, mesh.DefaultOptions())
	got, err := m.CellVertices(1, 0)
	if err != nil {
		t.Fatalf("CellVertices error: %v", err)
	}
	want := [4]int{1, 2, 5, 4}
	if got != want {
		t.Errorf("CellVertices(1,0) = %v; want %v", got, want)
	}
	if _, err = m.CellVertices(2, 0); !errors.Is(err, mesh.ErrCellIndex) {
		t.Errorf("CellVertices(2,0) error = %v; want %v", err, mesh.ErrCellIndex)
	}
}

// TestCells_VisitsEveryCellOnce compares Cells with CellVertices.
func TestCells_VisitsEveryCellOnce(t *testing.T) {
	m, _ := mesh.New(3, mesh.DefaultOptions())
	count := 0
	m.Cells(func(cx, cy int, verts [4]int) {
		count++
		want, err := m.CellVertices(cx, cy)
		if err != nil || want != verts {
			t.Errorf("cell (%d,%d): %v; want %v (err %v)", cx, cy, verts, want, err)
		}
	})
	if count != m.NumCells() {
		t.Errorf("visited %d cells; want %d", count, m.NumCells())
	}
}

// TestNeighbors compares 5- and 9-point stencils at a corner and the centre.
func TestNeighbors(t *testing.T) {
	opts := mesh.DefaultOptions()
	opts.Stencil = mesh.Stencil5
	m5, _ := mesh.New(2, opts)
	m9, _ := mesh.New(2, mesh.DefaultOptions())

	cases := []struct {
		name string
		m    *mesh.Mesh
		idx  int
		want []int
	}{
		{"corner5", m5, 0, []int{1, 3}},
		{"centre5", m5, 4, []int{1, 3, 5, 7}},
		{"corner9", m9, 0, []int{1, 3, 4}},
		{"centre9", m9, 4, []int{0, 1, 2, 3, 5, 6, 7, 8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.Neighbors(tc.idx)
			sort.Ints(got)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Neighbors(%d) = %v; want %v", tc.idx, got, tc.want)
			}
		})
	}
}

// TestBoundaryAndPosition checks boundary flags and physical coordinates.
func TestBoundaryAndPosition(t *testing.T) {
	opts := mesh.DefaultOptions()
	opts.Length = 2
	m, _ := mesh.New(2, opts)
	if m.IsBoundary(4) {
		t.Errorf("centre vertex reported on boundary")
	}
	if !m.IsBoundary(5) {
		t.Errorf("vertex 5 not reported on boundary")
	}
	px, py := m.Position(5)
	if px != 2 || py != 1 {
		t.Errorf("Position(5) = (%g,%g); want (2,1)", px, py)
	}
}
