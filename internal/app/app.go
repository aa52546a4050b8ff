//go:build ebiten

package app

import (
	"mad-fractals/internal/core"
	"mad-fractals/internal/plot"
	"mad-fractals/internal/render"
	"mad-fractals/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the Shell to the ebiten.Game interface.
type Game struct {
	shell   *Shell
	painter *render.Painter
	hud     *ui.HUD
	ticker  *core.FixedStep

	scale       int
	rowsPerTick int
	runes       []rune
}

// New constructs a Game from cfg.
func New(cfg *Config) (*Game, error) {
	shell, err := NewShell(cfg)
	if err != nil {
		return nil, err
	}
	return &Game{
		shell:       shell,
		painter:     render.NewPainter(cfg.Width, cfg.Height),
		hud:         ui.NewHUD(cfg.HUDWidth),
		ticker:      core.NewFixedStep(cfg.TPS),
		scale:       cfg.Scale,
		rowsPerTick: cfg.RowsPerTick,
	}, nil
}

// Update handles per-frame input and advances the active tab.
func (g *Game) Update() error {
	s := g.shell
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if s.Alert() == "" {
			return ebiten.Termination
		}
		s.DismissAlert()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.ToggleTab()
	}

	g.runes = ebiten.AppendInputChars(g.runes[:0])
	for _, r := range g.runes {
		if r == 'r' || r == 'R' {
			s.Reset()
			continue
		}
		s.TypeRune(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.SubmitRule()
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/float64(g.scale), float64(cy)/float64(g.scale)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.Press(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		s.Release()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.Drag(y)
	}

	if g.ticker.ShouldStep() {
		s.Advance(g.rowsPerTick)
	}
	g.hud.Update(s.Sim(), s.Input(), s.Alert())
	return nil
}

// Draw renders the active tab, the selection and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.shell
	if s.Tab() == plot.KindMandelbrot {
		m := s.Mandelbrot()
		g.painter.BlitEscape(screen, m.Cells(), m.MaxIterations(), s.Palette(), g.scale)
		if rect, ok := s.Selection(); ok {
			ui.DrawSelection(screen, rect, g.scale)
		}
	} else {
		on, off := s.CellColors()
		g.painter.BlitBinary(screen, s.Automaton().Cells(), on, off, g.scale)
	}
	size := s.Sim().Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.shell.Sim().Size()
	return size.W*g.scale + g.hud.Width(), size.H * g.scale
}
