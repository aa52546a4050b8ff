package mandelbrot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mad-fractals/internal/core"
	"mad-fractals/internal/viewport"
)

func TestEscapeOriginIsMember(t *testing.T) {
	for _, maxIter := range []int{1, 2, 3, 64, DefaultMaxIterations} {
		got := Escape(0, 0, maxIter)
		require.Equal(t, maxIter, got, "maxIter=%d", maxIter)
		require.True(t, Member(got, maxIter))
	}
}

func TestEscapeImmediate(t *testing.T) {
	got := Escape(3, 0, DefaultMaxIterations)
	require.Equal(t, 1, got)
	require.False(t, Member(got, DefaultMaxIterations))
}

func TestEscapeBoundaryConvention(t *testing.T) {
	// c = 1: z runs 1, 2, 5 and first exceeds |z|² = 4 on the third iteration.
	require.Equal(t, 3, Escape(1, 0, 10))
	require.Equal(t, 3, Escape(1, 0, 4))

	// With a cap of 3 the escape would happen on the cap itself, which is
	// reported as membership.
	require.Equal(t, 3, Escape(1, 0, 3))
	require.True(t, Member(Escape(1, 0, 3), 3))

	// A cap of 1 never checks for escape.
	require.Equal(t, 1, Escape(3, 0, 1))
	require.True(t, Member(Escape(3, 0, 1), 1))
}

func TestEscapeKnownMembers(t *testing.T) {
	for _, c := range [][2]float64{{-1, 0}, {-2, 0}, {0.25, 0}, {0, 1}} {
		require.Equal(t, 200, Escape(c[0], c[1], 200), "c=%v", c)
	}
}

func TestEvaluateCenterAndCorner(t *testing.T) {
	v := viewport.Default(5, 5)
	grid, err := Evaluate(context.Background(), v, 100)
	require.NoError(t, err)
	require.Equal(t, 5, grid.W)
	require.Equal(t, 5, grid.H)

	// Pixel (2.5, 2.5) maps to 0; the nearest sampled pixel (2, 2) maps to
	// -0.4+0.4i which is inside the main cardioid.
	require.Equal(t, 100, grid.At(2, 2))
	// Top-left pixel is -2+2i, |c|² = 8.
	require.Equal(t, 1, grid.At(0, 0))
}

func TestEvaluateExactOrigin(t *testing.T) {
	v := viewport.Default(4, 4)
	re, im := v.PixelToComplex(2, 2)
	require.Equal(t, 0.0, re)
	require.Equal(t, 0.0, im)

	grid, err := Evaluate(context.Background(), v, 7)
	require.NoError(t, err)
	require.Equal(t, 7, grid.At(2, 2))
}

func TestEvaluateMatchesEscape(t *testing.T) {
	v := viewport.Viewport{ReMin: -2.5, ReMax: 1, ImMin: -1.2, ImMax: 1.2, Width: 37, Height: 23}
	grid, err := Evaluate(context.Background(), v, 64, WithWorkers(3))
	require.NoError(t, err)
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			re, im := v.PixelToComplex(float64(x), float64(y))
			require.Equal(t, Escape(re, im, 64), grid.At(x, y), "pixel (%d,%d)", x, y)
		}
	}

	serial, err := Evaluate(context.Background(), v, 64, WithWorkers(1))
	require.NoError(t, err)
	require.Equal(t, serial.Cells(), grid.Cells())
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	_, err := Evaluate(context.Background(), viewport.Viewport{ReMin: 1, ReMax: 1, ImMin: -1, ImMax: 1, Width: 4, Height: 4}, 10)
	require.ErrorIs(t, err, viewport.ErrDegenerateViewport)

	_, err = Evaluate(context.Background(), viewport.Default(0, 4), 10)
	require.ErrorIs(t, err, viewport.ErrDegenerateViewport)

	_, err = Evaluate(context.Background(), viewport.Default(4, 4), 0)
	require.ErrorIs(t, err, ErrInvalidIterations)
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	grid, err := Evaluate(ctx, viewport.Default(64, 64), DefaultMaxIterations)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, grid)
}

func TestSimZoomAndReset(t *testing.T) {
	s := New(Config{Width: 40, Height: 20, MaxIterations: 32})
	require.True(t, s.Stale())
	require.NoError(t, s.Wait())
	require.False(t, s.Stale())
	require.Len(t, s.Cells(), 800)

	before := s.View()
	err := s.Zoom(viewport.SelectionRect{X: 1, Y: 1, W: 0.2, H: 0.1})
	require.ErrorIs(t, err, viewport.ErrDegenerateViewport)
	require.Equal(t, before, s.View())
	require.False(t, s.Stale())

	require.NoError(t, s.Zoom(viewport.SelectionRect{X: 10, Y: 5, W: 20, H: 10}))
	require.True(t, s.Stale())
	require.InDelta(t, -1.0, s.View().ReMin, 1e-12)
	require.NoError(t, s.Wait())
	want, err := Evaluate(context.Background(), s.View(), 32)
	require.NoError(t, err)
	require.Equal(t, want.Cells(), s.Cells())

	s.Reset(0)
	require.Equal(t, viewport.Default(40, 20), s.View())
}

func TestSimSetIntParameter(t *testing.T) {
	s := New(Config{Width: 8, Height: 8, MaxIterations: 16})
	require.NoError(t, s.Wait())
	require.ErrorIs(t, s.SetIntParameter("max_iter", 0), ErrInvalidIterations)
	require.Equal(t, 16, s.MaxIterations())
	require.NoError(t, s.SetIntParameter("max_iter", 64))
	require.Equal(t, 64, s.MaxIterations())
	require.True(t, s.Stale())
	require.Error(t, s.SetIntParameter("colour", 1))
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "320", "h": "bad", "max_iter": "1000", "workers": "-2"})
	require.Equal(t, 320, c.Width)
	require.Equal(t, DefaultConfig().Height, c.Height)
	require.Equal(t, 1000, c.MaxIterations)
	require.Equal(t, 0, c.Workers)
}

func TestSimStepDoesNotBlock(t *testing.T) {
	s := New(Config{Width: 8, Height: 4, MaxIterations: 8})
	release := make(chan struct{})
	s.evaluate = func(ctx context.Context, v viewport.Viewport, maxIter int, opts ...Option) (*core.Grid, error) {
		<-release
		return Evaluate(ctx, v, maxIter, opts...)
	}
	s.Step()
	s.Step()
	require.True(t, s.Stale())

	close(release)
	require.NoError(t, s.Wait())
	require.False(t, s.Stale())
	require.Equal(t, 8, s.Cells()[2*8+4], "centre pixel is a member")
}

func TestSimZoomCancelsRunningEvaluation(t *testing.T) {
	s := New(Config{Width: 40, Height: 20, MaxIterations: 32})
	started := make(chan struct{})
	cancelled := make(chan struct{})
	s.evaluate = func(ctx context.Context, v viewport.Viewport, maxIter int, opts ...Option) (*core.Grid, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	}
	s.Step()
	<-started

	s.evaluate = Evaluate
	require.NoError(t, s.Zoom(viewport.SelectionRect{X: 10, Y: 5, W: 20, H: 10}))
	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("evaluation of the old viewport was not cancelled")
	}

	require.NoError(t, s.Wait())
	want, err := Evaluate(context.Background(), s.View(), 32)
	require.NoError(t, err)
	require.Equal(t, want.Cells(), s.Cells())
}

func TestSimPollReportsFailureOnce(t *testing.T) {
	s := New(Config{Width: 4, Height: 4, MaxIterations: 8})
	boom := errors.New("boom")
	s.evaluate = func(context.Context, viewport.Viewport, int, ...Option) (*core.Grid, error) {
		return nil, boom
	}
	require.ErrorIs(t, s.Wait(), boom)
	require.ErrorIs(t, s.Err(), boom)
	require.False(t, s.Stale())
	require.NoError(t, s.Poll(), "a failed viewport is not retried")

	s.Reset(0)
	require.NoError(t, s.Err())
	require.True(t, s.Stale())
}
