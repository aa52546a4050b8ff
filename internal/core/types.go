package core

// Size describes the dimensions of a raster in cells.
type Size struct {
	W int
	H int
}

// Plotter consumes classified cells. Rows grow downwards, columns rightwards.
type Plotter interface {
	Plot(row, col, class int)
}

// RowPlotter is implemented by plotters that accept a whole row at once.
// classes is only valid for the duration of the call.
type RowPlotter interface {
	Plotter
	PlotRow(row int, classes []int)
}

// PlotFunc adapts a function to the Plotter interface.
type PlotFunc func(row, col, class int)

// Plot calls f(row, col, class).
func (f PlotFunc) Plot(row, col, class int) { f(row, col, class) }

// Sim defines the contract the GUI uses to drive a computation frame by frame.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []int
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
