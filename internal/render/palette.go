// Package render paints computation results into images. It is shell code:
// the engines never depend on it.
package render

import (
	"image/color"

	"mad-fractals/internal/core"
)

// Palette assigns a colour to each escape count.
type Palette []color.RGBA

// NewPalette returns n random opaque colours drawn from seed. A new seed per
// draw gives the changing colour scheme of the original viewer while keeping
// any given picture reproducible.
func NewPalette(seed int64, n int) Palette {
	if n <= 0 {
		return nil
	}
	rng := core.NewRNG(seed)
	p := make(Palette, n)
	for i := range p {
		p[i] = color.RGBA{R: rng.Uint8(), G: rng.Uint8(), B: rng.Uint8(), A: 255}
	}
	return p
}

// CellColors returns the on/off colours for automaton cells.
func CellColors(seed int64) (on, off color.RGBA) {
	p := NewPalette(seed, 2)
	return p[1], p[0]
}
