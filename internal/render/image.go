package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"mad-fractals/internal/core"
	"mad-fractals/internal/viewport"
)

// EscapeImage paints a grid of escape counts.
func EscapeImage(grid *core.Grid, maxIter int, palette Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.W, grid.H))
	fillEscapeRGBA(img.Pix, grid.Cells(), maxIter, palette)
	return img
}

// BinaryImage paints a grid of automaton cells.
func BinaryImage(grid *core.Grid, on, off color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.W, grid.H))
	fillBinaryRGBA(img.Pix, grid.Cells(), on, off)
	return img
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Annotate shades the selection rectangle over img and outlines it.
func Annotate(img image.Image, rect viewport.SelectionRect) (image.Image, error) {
	dc := gg.NewContextForImage(img)
	defer dc.Close()

	dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	dc.SetRGBA(0, 0, 0, 0.5)
	if err := dc.FillPreserve(); err != nil {
		return nil, fmt.Errorf("annotate: fill: %w", err)
	}
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("annotate: stroke: %w", err)
	}
	return dc.Image(), nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
