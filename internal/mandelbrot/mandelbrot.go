package mandelbrot

import (
	"context"
	"fmt"
	"strconv"

	"mad-fractals/internal/core"
	"mad-fractals/internal/viewport"
)

// Config holds parameters for the Mandelbrot view.
type Config struct {
	Width         int
	Height        int
	MaxIterations int
	Workers       int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 1024, Height: 643, MaxIterations: DefaultMaxIterations}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["max_iter"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxIterations = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}

// Sim holds the current viewport and its evaluated grid for interactive use.
// Zoom and Reset only mark the grid stale; Step evaluates the new viewport
// in the background and installs the grid once it is complete. A Sim is
// driven from a single goroutine.
type Sim struct {
	cfg   Config
	view  viewport.Viewport
	grid  *core.Grid
	stale bool
	err   error

	job      *job
	evaluate func(context.Context, viewport.Viewport, int, ...Option) (*core.Grid, error)
}

// job is one background evaluation. done is buffered so an abandoned job
// never blocks.
type job struct {
	cancel context.CancelFunc
	done   chan result
}

type result struct {
	grid *core.Grid
	err  error
}

// New creates a Sim showing the default viewport.
func New(cfg Config) *Sim {
	return &Sim{
		cfg:      cfg,
		view:     viewport.Default(cfg.Width, cfg.Height),
		grid:     core.NewGrid(cfg.Width, cfg.Height),
		stale:    true,
		evaluate: Evaluate,
	}
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "mandelbrot" }

// Size returns the raster dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Cells exposes the escape counts of the last completed evaluation.
func (s *Sim) Cells() []int { return s.grid.Cells() }

// View returns the viewport currently displayed.
func (s *Sim) View() viewport.Viewport { return s.view }

// MaxIterations returns the iteration cap used by Step.
func (s *Sim) MaxIterations() int { return s.cfg.MaxIterations }

// Stale reports whether an evaluation of the current viewport is still
// outstanding.
func (s *Sim) Stale() bool { return s.stale }

// Reset returns to the default viewport. The seed is unused.
func (s *Sim) Reset(int64) {
	s.invalidate()
	s.view = viewport.Reset(s.view)
}

// Zoom replaces the viewport with the region under rect. On error the
// current viewport and any running evaluation are kept.
func (s *Sim) Zoom(rect viewport.SelectionRect) error {
	next, err := viewport.Zoom(rect, s.view)
	if err != nil {
		return err
	}
	s.invalidate()
	s.view = next
	return nil
}

// invalidate cancels the running evaluation and marks the grid stale.
func (s *Sim) invalidate() {
	if s.job != nil {
		s.job.cancel()
		s.job = nil
	}
	s.stale = true
	s.err = nil
}

// Step polls the background evaluation, starting one when needed.
func (s *Sim) Step() { s.Poll() }

// Poll installs a finished evaluation and starts a new one when the grid is
// stale and none is running. It never blocks. The returned error belongs to
// an evaluation that finished during this call.
func (s *Sim) Poll() error {
	if s.job != nil {
		select {
		case res := <-s.job.done:
			return s.install(res)
		default:
			return nil
		}
	}
	if s.stale {
		s.start()
	}
	return nil
}

// Wait blocks until the grid matches the viewport or the evaluation fails.
func (s *Sim) Wait() error {
	if s.job == nil && s.stale {
		s.start()
	}
	if s.job == nil {
		return s.err
	}
	return s.install(<-s.job.done)
}

func (s *Sim) start() {
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{cancel: cancel, done: make(chan result, 1)}
	s.job = j
	eval, view, maxIter, workers := s.evaluate, s.view, s.cfg.MaxIterations, s.cfg.Workers
	go func() {
		defer cancel()
		grid, err := eval(ctx, view, maxIter, WithWorkers(workers))
		j.done <- result{grid: grid, err: err}
	}()
}

// install adopts the result of the running job. A failed evaluation keeps
// the previous grid and is not retried until the viewport changes.
func (s *Sim) install(res result) error {
	s.job = nil
	s.stale = false
	s.err = res.err
	if res.err != nil {
		return res.err
	}
	s.grid = res.grid
	return nil
}

// Err returns the error of the last evaluation, if any.
func (s *Sim) Err() error { return s.err }

// Parameters reports the viewport bounds and iteration cap.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Viewport",
			Params: []core.Parameter{
				core.FloatParam("re_min", "Re min", s.view.ReMin),
				core.FloatParam("re_max", "Re max", s.view.ReMax),
				core.FloatParam("im_min", "Im min", s.view.ImMin),
				core.FloatParam("im_max", "Im max", s.view.ImMax),
			},
		},
		{
			Name:   "Iteration",
			Params: []core.Parameter{core.IntParam("max_iter", "Max iterations", s.cfg.MaxIterations)},
		},
	}}
}

// SetIntParameter updates max_iter.
func (s *Sim) SetIntParameter(key string, value int) error {
	switch key {
	case "max_iter":
		if value < 1 {
			return ErrInvalidIterations
		}
		s.invalidate()
		s.cfg.MaxIterations = value
		return nil
	}
	return fmt.Errorf("mandelbrot: unknown parameter %q", key)
}

var (
	_ core.Sim                = (*Sim)(nil)
	_ core.ParameterProvider  = (*Sim)(nil)
	_ core.IntParameterSetter = (*Sim)(nil)
)

func init() {
	core.Register("mandelbrot", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
