package core

// Grid stores a 2D grid of integer classifications in row-major order.
type Grid struct {
	W, H int
	data []int
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]int, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []int { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *Grid) At(x, y int) int { return g.data[g.Index(x, y)] }

// Row returns the slice backing row y.
func (g *Grid) Row(y int) []int { return g.data[y*g.W : (y+1)*g.W] }

// Plot stores class at (row, col), ignoring coordinates outside the grid.
func (g *Grid) Plot(row, col, class int) {
	if row < 0 || row >= g.H || col < 0 || col >= g.W {
		return
	}
	g.data[g.Index(col, row)] = class
}

// PlotRow copies a full row of classes into the grid.
func (g *Grid) PlotRow(row int, classes []int) {
	if row < 0 || row >= g.H {
		return
	}
	copy(g.Row(row), classes)
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

var _ RowPlotter = (*Grid)(nil)
