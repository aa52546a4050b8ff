//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads cell data into a single RGBA image and draws it scaled.
type Painter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewPainter allocates a painter for a grid of size w*h.
func NewPainter(w, h int) *Painter {
	p := &Painter{w: w, h: h, buf: make([]byte, 4*w*h)}
	p.img = ebiten.NewImage(w, h)
	return p
}

// BlitEscape paints escape counts with palette and draws them onto dst.
func (p *Painter) BlitEscape(dst *ebiten.Image, cells []int, maxIter int, palette Palette, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	fillEscapeRGBA(p.buf, cells, maxIter, palette)
	p.draw(dst, scale)
}

// BlitBinary paints automaton cells and draws them onto dst.
func (p *Painter) BlitBinary(dst *ebiten.Image, cells []int, on, off color.Color, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	fillBinaryRGBA(p.buf, cells, on, off)
	p.draw(dst, scale)
}

func (p *Painter) draw(dst *ebiten.Image, scale int) {
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}
