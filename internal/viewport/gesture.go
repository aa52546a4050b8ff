package viewport

import "math"

// Gesture accumulates a drag into an aspect-locked selection rectangle. It
// belongs to the shell; only the finished rectangle is handed to Zoom.
type Gesture struct {
	width, height float64
	ratio         float64

	active bool
	startY float64
	rect   SelectionRect
}

// NewGesture returns a Gesture for a canvas of the given pixel size.
func NewGesture(width, height int) *Gesture {
	g := &Gesture{width: float64(width), height: float64(height)}
	if height > 0 {
		g.ratio = g.width / g.height
	}
	return g
}

// Press starts a selection anchored at (x, y). The initial rectangle is one
// hundredth of the canvas in each dimension.
func (g *Gesture) Press(x, y float64) {
	g.active = true
	g.startY = y
	g.rect = SelectionRect{X: x, Y: y, W: g.width / 100, H: g.height / 100}
	g.clamp()
}

// Drag resizes the selection from the vertical cursor position. The width
// follows the canvas aspect ratio and the rectangle stops at the canvas edges.
func (g *Gesture) Drag(y float64) {
	if !g.active {
		return
	}
	g.rect.H = math.Abs(g.startY - y)
	g.rect.W = g.rect.H * g.ratio
	g.clamp()
}

func (g *Gesture) clamp() {
	maxH := g.height - g.rect.Y
	if g.ratio > 0 {
		maxH = math.Min(maxH, (g.width-g.rect.X)/g.ratio)
	}
	if maxH < 0 {
		maxH = 0
	}
	if g.rect.H > maxH {
		g.rect.H = maxH
		g.rect.W = maxH * g.ratio
	}
}

// Active reports whether a drag is in progress.
func (g *Gesture) Active() bool { return g.active }

// Rect returns the rectangle accumulated so far.
func (g *Gesture) Rect() SelectionRect { return g.rect }

// Release ends the drag and returns the final rectangle. ok is false when no
// drag was in progress.
func (g *Gesture) Release() (rect SelectionRect, ok bool) {
	if !g.active {
		return SelectionRect{}, false
	}
	g.active = false
	rect = g.rect
	g.rect = SelectionRect{}
	return rect, true
}

// Cancel drops the current drag without producing a rectangle.
func (g *Gesture) Cancel() {
	g.active = false
	g.rect = SelectionRect{}
}
