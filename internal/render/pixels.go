package render

import "image/color"

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []int, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillEscapeRGBA converts escape counts into RGBA pixels. Members are painted
// black; an escape after n iterations takes palette entry n-1, wrapping when
// the palette is shorter than the iteration cap. An empty palette clears the
// buffer to transparent black.
func fillEscapeRGBA(buf []byte, cells []int, maxIter int, palette Palette) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	for i, count := range cells {
		base := i * 4
		col := color.RGBA{A: 255}
		if count < maxIter && count >= 1 {
			col = palette[(count-1)%len(palette)]
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
