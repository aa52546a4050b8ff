// Package plot turns a computation request into a stream of plot events.
// It is the single entry point shells use for both computations.
package plot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mad-fractals/internal/automaton"
	"mad-fractals/internal/core"
	"mad-fractals/internal/mandelbrot"
	"mad-fractals/internal/viewport"
)

// Kind selects the computation behind a Request.
type Kind int

const (
	KindMandelbrot Kind = iota + 1
	KindAutomaton
)

var kindNames = map[Kind]string{
	KindMandelbrot: "mandelbrot",
	KindAutomaton:  "automaton",
}

// ErrUnknownKind reports a Request whose Kind is not one of the known values.
var ErrUnknownKind = errors.New("unknown computation kind")

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Bounds is the complex-plane region of a Mandelbrot request.
type Bounds struct {
	ReMin float64 `json:"reMin"`
	ReMax float64 `json:"reMax"`
	ImMin float64 `json:"imMin"`
	ImMax float64 `json:"imMax"`
}

// Request describes one computation over a Width×Height raster.
// Mandelbrot requests use Bounds (zero value means the default square) and
// MaxIterations; automaton requests use Rule and produce Height generations.
type Request struct {
	Kind          Kind    `json:"kind"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Bounds        *Bounds `json:"bounds,omitempty"`
	MaxIterations int     `json:"maxIterations,omitempty"`
	Rule          int     `json:"rule"`
}

// Viewport returns the region a Mandelbrot request covers.
func (r Request) Viewport() viewport.Viewport {
	if r.Bounds == nil {
		return viewport.Default(r.Width, r.Height)
	}
	return viewport.Viewport{
		ReMin:  r.Bounds.ReMin,
		ReMax:  r.Bounds.ReMax,
		ImMin:  r.Bounds.ImMin,
		ImMax:  r.Bounds.ImMax,
		Width:  r.Width,
		Height: r.Height,
	}
}

// BoundsOf converts a viewport into request bounds.
func BoundsOf(v viewport.Viewport) *Bounds {
	return &Bounds{ReMin: v.ReMin, ReMax: v.ReMax, ImMin: v.ImMin, ImMax: v.ImMax}
}

func (r Request) maxIterations() int {
	if r.MaxIterations == 0 {
		return mandelbrot.DefaultMaxIterations
	}
	return r.MaxIterations
}

// Validate checks the request without running it.
func (r Request) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("plot: raster %dx%d must be positive", r.Width, r.Height)
	}
	switch r.Kind {
	case KindMandelbrot:
		if err := r.Viewport().Validate(); err != nil {
			return err
		}
		if r.maxIterations() < 1 {
			return mandelbrot.ErrInvalidIterations
		}
		return nil
	case KindAutomaton:
		_, err := automaton.DeriveRuleset(r.Rule)
		return err
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, int(r.Kind))
}

// DecodeRequest parses a JSON request and validates it.
func DecodeRequest(data []byte) (Request, error) {
	var r Request
	if err := json.Unmarshal(data, &r); err != nil {
		return Request{}, fmt.Errorf("plot: decode request: %w", err)
	}
	return r, r.Validate()
}

// Compute runs req and reports every cell to p in row order. Mandelbrot
// classes are escape counts; automaton classes are cell states. When p is a
// core.RowPlotter whole rows are delivered instead. On error or cancellation
// the events already delivered are not a valid picture.
func Compute(ctx context.Context, req Request, p core.Plotter) error {
	if err := req.Validate(); err != nil {
		return err
	}
	emit := rowEmitter(p)
	switch req.Kind {
	case KindMandelbrot:
		grid, err := mandelbrot.Evaluate(ctx, req.Viewport(), req.maxIterations())
		if err != nil {
			return err
		}
		for y := 0; y < grid.H; y++ {
			emit(y, grid.Row(y))
		}
		return nil
	case KindAutomaton:
		seq, err := automaton.Run(ctx, req.Rule, req.Width, req.Height)
		if err != nil {
			return err
		}
		classes := make([]int, req.Width)
		for gen, row := range seq {
			for x, c := range row {
				classes[x] = int(c)
			}
			emit(gen, classes)
		}
		return ctx.Err()
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, int(req.Kind))
}

func rowEmitter(p core.Plotter) func(row int, classes []int) {
	if rp, ok := p.(core.RowPlotter); ok {
		return rp.PlotRow
	}
	return func(row int, classes []int) {
		for col, class := range classes {
			p.Plot(row, col, class)
		}
	}
}

// Collect runs req into a fresh grid.
func Collect(ctx context.Context, req Request) (*core.Grid, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	grid := core.NewGrid(req.Width, req.Height)
	if err := Compute(ctx, req, grid); err != nil {
		return nil, err
	}
	return grid, nil
}
