package app

import (
	"fmt"
	"image/color"
	"unicode"

	"mad-fractals/internal/automaton"
	"mad-fractals/internal/core"
	"mad-fractals/internal/mandelbrot"
	"mad-fractals/internal/plot"
	"mad-fractals/internal/render"
	"mad-fractals/internal/viewport"
)

const maxRuleInput = 8

// Shell holds the viewer state shared by every front end: the two tabs,
// the zoom gesture, the rule text field and the alert line. Input handlers
// translate device events into Shell calls.
type Shell struct {
	cfg Config
	tab plot.Kind

	mandel  *mandelbrot.Sim
	ca      *automaton.Elementary
	gesture *viewport.Gesture

	seed    int64
	palette render.Palette
	on, off color.RGBA

	input []rune
	alert string
}

// NewShell builds both tabs from cfg through the simulation registry.
func NewShell(cfg *Config) (*Shell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tab, _ := plot.ParseKind(cfg.Tab)
	simCfg := cfg.SimConfig()
	mandel, err := lookupSim[*mandelbrot.Sim](plot.KindMandelbrot, simCfg)
	if err != nil {
		return nil, err
	}
	ca, err := lookupSim[*automaton.Elementary](plot.KindAutomaton, simCfg)
	if err != nil {
		return nil, err
	}
	s := &Shell{
		cfg:     *cfg,
		tab:     tab,
		mandel:  mandel,
		ca:      ca,
		gesture: viewport.NewGesture(cfg.Width, cfg.Height),
		seed:    cfg.Seed,
	}
	s.recolor()
	return s, nil
}

// lookupSim builds the registered simulation for kind.
func lookupSim[T core.Sim](kind plot.Kind, cfg map[string]string) (T, error) {
	var zero T
	factory, ok := core.Sims()[kind.String()]
	if !ok {
		return zero, fmt.Errorf("no simulation registered for %s", kind)
	}
	sim, ok := factory(cfg).(T)
	if !ok {
		return zero, fmt.Errorf("simulation %s has unexpected type %T", kind, sim)
	}
	return sim, nil
}

// recolor draws a fresh colour table for the next picture.
func (s *Shell) recolor() {
	s.seed++
	s.palette = render.NewPalette(s.seed, s.mandel.MaxIterations())
	s.on, s.off = render.CellColors(s.seed)
}

// Tab returns the computation on screen.
func (s *Shell) Tab() plot.Kind { return s.tab }

// ToggleTab switches between the two computations and drops any drag.
func (s *Shell) ToggleTab() {
	s.gesture.Cancel()
	if s.tab == plot.KindMandelbrot {
		s.tab = plot.KindAutomaton
		return
	}
	s.tab = plot.KindMandelbrot
}

// Sim returns the simulation behind the current tab.
func (s *Shell) Sim() core.Sim {
	if s.tab == plot.KindAutomaton {
		return s.ca
	}
	return s.mandel
}

// Mandelbrot exposes the Mandelbrot tab.
func (s *Shell) Mandelbrot() *mandelbrot.Sim { return s.mandel }

// Automaton exposes the automaton tab.
func (s *Shell) Automaton() *automaton.Elementary { return s.ca }

// Press starts a zoom selection at canvas pixel (x, y).
func (s *Shell) Press(x, y float64) {
	if s.tab != plot.KindMandelbrot {
		return
	}
	if x < 0 || y < 0 || x >= float64(s.cfg.Width) || y >= float64(s.cfg.Height) {
		return
	}
	s.gesture.Press(x, y)
}

// Drag resizes the zoom selection.
func (s *Shell) Drag(y float64) { s.gesture.Drag(y) }

// Selection returns the rectangle being dragged, if any.
func (s *Shell) Selection() (viewport.SelectionRect, bool) {
	return s.gesture.Rect(), s.gesture.Active()
}

// Release finishes the selection and zooms into it.
func (s *Shell) Release() {
	rect, ok := s.gesture.Release()
	if !ok {
		return
	}
	if err := s.mandel.Zoom(rect); err != nil {
		s.alert = err.Error()
		return
	}
	s.recolor()
}

// Reset restores the current tab to its initial picture.
func (s *Shell) Reset() {
	s.gesture.Cancel()
	s.Sim().Reset(s.seed)
	s.recolor()
}

// TypeRune appends r to the rule field. Control characters are ignored and
// the field is bounded; anything else is left for ParseRule to judge.
func (s *Shell) TypeRune(r rune) {
	if unicode.IsControl(r) || len(s.input) >= maxRuleInput {
		return
	}
	s.input = append(s.input, r)
}

// Backspace removes the last rune of the rule field.
func (s *Shell) Backspace() {
	if len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
	}
}

// Input returns the rule field text.
func (s *Shell) Input() string { return string(s.input) }

// SubmitRule parses the rule field and redraws the automaton with it. Any
// failure is shown verbatim in the alert line and leaves the current rule
// and picture in place.
func (s *Shell) SubmitRule() {
	rule, err := core.ParseRule(string(s.input))
	if err != nil {
		s.alert = err.Error()
		return
	}
	if err := s.ca.SetRule(rule); err != nil {
		s.alert = err.Error()
		return
	}
	s.alert = ""
	s.input = s.input[:0]
	s.tab = plot.KindAutomaton
	s.recolor()
}

// Alert returns the pending error message, if any.
func (s *Shell) Alert() string { return s.alert }

// DismissAlert clears the alert line.
func (s *Shell) DismissAlert() { s.alert = "" }

// Advance moves the current tab forward without blocking: the Mandelbrot
// tab polls its background evaluation, the automaton tab draws up to rows
// more generations.
func (s *Shell) Advance(rows int) {
	if s.tab == plot.KindMandelbrot {
		if err := s.mandel.Poll(); err != nil {
			s.alert = err.Error()
		}
		return
	}
	for i := 0; i < rows && !s.ca.Done(); i++ {
		s.ca.Step()
	}
}

// Palette returns the colour table for escape counts.
func (s *Shell) Palette() render.Palette { return s.palette }

// CellColors returns the automaton's on and off colours.
func (s *Shell) CellColors() (on, off color.RGBA) { return s.on, s.off }
