// Package mandelbrot classifies raster pixels by Mandelbrot escape time.
//
// A pixel's count is the number of iterations of z ← z² + c, starting from
// z = 0, after which |z|² first exceeds 4. Escape is only checked for the
// first maxIter-1 iterations: any pixel still bounded after that reports
// maxIter and is a member of the set. count == maxIter therefore always
// means "member", and escaped pixels report 1 ≤ count < maxIter.
package mandelbrot

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mad-fractals/internal/core"
	"mad-fractals/internal/viewport"
)

// DefaultMaxIterations is the iteration cap used when none is configured.
const DefaultMaxIterations = 512

// ErrInvalidIterations reports a non-positive iteration cap.
var ErrInvalidIterations = errors.New("max iterations must be at least 1")

// Escape returns the escape count of c = cRe + cIm·i.
func Escape(cRe, cIm float64, maxIter int) int {
	var zRe, zIm float64
	for n := 1; n < maxIter; n++ {
		zRe, zIm = zRe*zRe-zIm*zIm+cRe, 2*zRe*zIm+cIm
		if zRe*zRe+zIm*zIm > 4 {
			return n
		}
	}
	return maxIter
}

// Member reports whether count classifies a pixel as inside the set.
func Member(count, maxIter int) bool { return count >= maxIter }

type options struct {
	workers int
}

// Option tunes Evaluate.
type Option func(*options)

// WithWorkers bounds the number of goroutines evaluating rows. Values below
// one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Evaluate classifies every pixel of v and returns a v.Width×v.Height grid of
// escape counts. Rows are shared out across workers; ctx is checked before
// each row and a cancelled evaluation returns no grid.
func Evaluate(ctx context.Context, v viewport.Viewport, maxIter int, opts ...Option) (*core.Grid, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if maxIter < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, maxIter)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	grid := core.NewGrid(v.Width, v.Height)
	dRe, dIm := v.Steps()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for y := 0; y < v.Height; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := grid.Row(y)
			cIm := v.ImMax + float64(y)*dIm
			for x := range row {
				row[x] = Escape(v.ReMin+float64(x)*dRe, cIm, maxIter)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may stop early without any goroutine observing the cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return grid, nil
}
