package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelToComplexCorners(t *testing.T) {
	v := Default(400, 200)

	re, im := v.PixelToComplex(0, 0)
	require.Equal(t, -2.0, re)
	require.Equal(t, 2.0, im)

	re, im = v.PixelToComplex(200, 100)
	require.Equal(t, 0.0, re)
	require.Equal(t, 0.0, im)

	re, im = v.PixelToComplex(400, 200)
	require.Equal(t, 2.0, re)
	require.Equal(t, -2.0, im)
}

func TestStepsImaginaryNegative(t *testing.T) {
	dRe, dIm := Default(4, 8).Steps()
	require.Equal(t, 1.0, dRe)
	require.Equal(t, -0.5, dIm)
}

func TestZoomMapsCorners(t *testing.T) {
	v := Default(100, 100)
	got, err := Zoom(SelectionRect{X: 25, Y: 25, W: 50, H: 50}, v)
	require.NoError(t, err)
	requireBounds(t, got, -1, 1, -1, 1)
	require.Equal(t, 100, got.Width)
	require.Equal(t, 100, got.Height)

	got, err = Zoom(SelectionRect{X: 0, Y: 0, W: 50, H: 25}, v)
	require.NoError(t, err)
	requireBounds(t, got, -2, 0, 1, 2)
}

func requireBounds(t *testing.T, v Viewport, reMin, reMax, imMin, imMax float64) {
	t.Helper()
	require.InDelta(t, reMin, v.ReMin, 1e-12, "ReMin")
	require.InDelta(t, reMax, v.ReMax, 1e-12, "ReMax")
	require.InDelta(t, imMin, v.ImMin, 1e-12, "ImMin")
	require.InDelta(t, imMax, v.ImMax, 1e-12, "ImMax")
}

func TestZoomRejectsDegenerateSelection(t *testing.T) {
	v := Default(100, 100)
	for _, rect := range []SelectionRect{
		{X: 10, Y: 10, W: 0, H: 10},
		{X: 10, Y: 10, W: 10, H: 0.5},
		{X: 10, Y: 10, W: -5, H: -5},
		{X: math.NaN(), Y: 10, W: 10, H: 10},
		{X: 10, Y: 10, W: math.NaN(), H: 10},
	} {
		got, err := Zoom(rect, v)
		require.ErrorIs(t, err, ErrDegenerateViewport, "rect %+v", rect)
		require.Equal(t, v, got, "viewport must be left untouched")
	}
}

func TestZoomRejectsCollapsedExtent(t *testing.T) {
	v := Viewport{ReMin: 1, ReMax: math.Nextafter(1, 2), ImMin: 1, ImMax: math.Nextafter(1, 2), Width: 1000, Height: 1000}
	_, err := Zoom(SelectionRect{X: 1, Y: 1, W: 1, H: 1}, v)
	require.ErrorIs(t, err, ErrDegenerateViewport)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default(1, 1).Validate())

	bad := []Viewport{
		{ReMin: -2, ReMax: 2, ImMin: -2, ImMax: 2, Width: 0, Height: 10},
		{ReMin: -2, ReMax: 2, ImMin: -2, ImMax: 2, Width: 10, Height: -1},
		{ReMin: 2, ReMax: 2, ImMin: -2, ImMax: 2, Width: 10, Height: 10},
		{ReMin: -2, ReMax: 2, ImMin: 3, ImMax: 2, Width: 10, Height: 10},
		{ReMin: math.Inf(-1), ReMax: 2, ImMin: -2, ImMax: 2, Width: 10, Height: 10},
	}
	for _, v := range bad {
		require.ErrorIs(t, v.Validate(), ErrDegenerateViewport, "%+v", v)
	}
}

func TestResetRestoresDefaultAfterZoom(t *testing.T) {
	start := Default(640, 480)
	rects := []SelectionRect{
		{X: 10, Y: 10, W: 64, H: 48},
		{X: 300, Y: 200, W: 100, H: 75},
		{X: 0, Y: 0, W: 640, H: 480},
	}
	for _, rect := range rects {
		zoomed, err := Zoom(rect, start)
		require.NoError(t, err)
		zoomed, err = Zoom(rect, zoomed)
		require.NoError(t, err)

		reset := Reset(zoomed)
		require.Equal(t, start, reset)
		require.Equal(t, math.Float64bits(-2), math.Float64bits(reset.ReMin))
		require.Equal(t, math.Float64bits(2), math.Float64bits(reset.ImMax))
	}
}
