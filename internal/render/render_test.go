package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"mad-fractals/internal/core"
	"mad-fractals/internal/viewport"
)

func TestFillEscapeRGBA(t *testing.T) {
	palette := Palette{{R: 10, A: 255}, {G: 20, A: 255}}
	cells := []int{1, 2, 3, 8}
	buf := make([]byte, len(cells)*4)
	fillEscapeRGBA(buf, cells, 8, palette)

	want := []byte{
		10, 0, 0, 255,
		0, 20, 0, 255,
		10, 0, 0, 255, // wraps around the palette
		0, 0, 0, 255, // member
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("buf = %v, want %v", buf, want)
	}
}

func TestFillEscapeRGBAEmptyPalette(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	fillEscapeRGBA(buf, []int{1, 2}, 4, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestBinaryImage(t *testing.T) {
	g := core.NewGrid(3, 1)
	g.PlotRow(0, []int{0, 1, 0})
	img := BinaryImage(g, color.White, color.Black)
	if got := img.RGBAAt(1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("live cell = %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("dead cell = %v", got)
	}
}

func TestNewPaletteDeterministic(t *testing.T) {
	a := NewPalette(7, 32)
	b := NewPalette(7, 32)
	if len(a) != 32 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i].A != 255 {
			t.Fatalf("entry %d not opaque", i)
		}
	}
	if NewPalette(7, 0) != nil {
		t.Fatal("empty palette expected for n=0")
	}
}

func TestScale(t *testing.T) {
	g := core.NewGrid(2, 1)
	g.PlotRow(0, []int{1, 0})
	img := Scale(BinaryImage(g, color.White, color.Black), 3)
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if img.RGBAAt(2, 2).R != 255 || img.RGBAAt(3, 0).R != 0 {
		t.Fatal("nearest neighbour scaling mixed the cells")
	}
}

func TestAnnotateShadesSelection(t *testing.T) {
	g := core.NewGrid(40, 40)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	img := BinaryImage(g, color.White, color.Black)
	out, err := Annotate(img, viewport.SelectionRect{X: 10, Y: 10, W: 20, H: 20})
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	r, _, _, _ := out.At(20, 20).RGBA()
	if r>>8 >= 250 {
		t.Fatalf("selection interior not shaded: r=%d", r>>8)
	}
	r, _, _, _ = out.At(2, 2).RGBA()
	if r>>8 != 255 {
		t.Fatalf("outside the selection changed: r=%d", r>>8)
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	v := viewport.Default(4, 4)
	g := core.NewGrid(v.Width, v.Height)
	g.Plot(1, 1, 2)
	var buf bytes.Buffer
	if err := WritePNG(&buf, EscapeImage(g, 4, NewPalette(1, 4))); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 4 {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
}
