package automaton

import (
	"fmt"
	"strconv"

	"mad-fractals/internal/core"
)

// Config holds parameters for the elementary cellular automaton view.
type Config struct {
	Width  int
	Height int
	Rule   int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 1024, Height: 643, Rule: 110}
}

// FromMap populates a Config from a string map. Out-of-range rules are kept
// so that New can report them.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := core.ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	return c
}

// Elementary draws one generation per row, top to bottom, until the canvas
// is full.
type Elementary struct {
	w, h    int
	rule    int
	ruleset Ruleset
	grid    *core.Grid
	row     Generation
	gen     int
}

// New creates an automaton canvas for cfg. It fails when cfg.Rule is out of
// range.
func New(cfg Config) (*Elementary, error) {
	rs, err := DeriveRuleset(cfg.Rule)
	if err != nil {
		return nil, err
	}
	e := &Elementary{w: cfg.Width, h: cfg.Height, rule: cfg.Rule, ruleset: rs}
	e.grid = core.NewGrid(cfg.Width, cfg.Height)
	e.Reset(0)
	return e, nil
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "automaton" }

// Size returns the canvas dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the render buffer.
func (e *Elementary) Cells() []int { return e.grid.Cells() }

// Rule returns the active rule index.
func (e *Elementary) Rule() int { return e.rule }

// Generation returns how many rows have been drawn.
func (e *Elementary) Generation() int { return e.gen }

// Done reports whether the canvas is full.
func (e *Elementary) Done() bool { return e.gen >= e.h }

// Reset clears the canvas and starts again from the seed row. The seed is
// unused; the automaton is deterministic.
func (e *Elementary) Reset(int64) {
	e.grid.Clear()
	e.row = Seed(e.w)
	e.gen = 0
}

// Step draws the current generation and advances to the next one.
func (e *Elementary) Step() {
	if e.Done() {
		return
	}
	dst := e.grid.Row(e.gen)
	for x, c := range e.row {
		dst[x] = int(c)
	}
	e.row = NextGeneration(e.row, e.ruleset)
	e.gen++
}

// Fill steps until the canvas is full.
func (e *Elementary) Fill() {
	for !e.Done() {
		e.Step()
	}
}

// SetRule switches to a new rule and restarts the canvas. An invalid rule
// leaves the current rule, canvas and progress untouched.
func (e *Elementary) SetRule(rule int) error {
	rs, err := DeriveRuleset(rule)
	if err != nil {
		return err
	}
	e.rule = rule
	e.ruleset = rs
	e.Reset(0)
	return nil
}

// Parameters reports the active rule and its transition table.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	table := make([]core.Parameter, 0, len(e.ruleset))
	for code := len(e.ruleset) - 1; code >= 0; code-- {
		label := fmt.Sprintf("%03b", code)
		table = append(table, core.IntParam("code_"+label, label, int(e.ruleset[code])))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Rule", Params: []core.Parameter{
			core.IntParam("rule", "Rule", e.rule),
			core.IntParam("generation", "Generation", e.gen),
		}},
		{Name: "Transitions", Params: table},
	}}
}

// SetIntParameter updates the rule.
func (e *Elementary) SetIntParameter(key string, value int) error {
	if key != "rule" {
		return fmt.Errorf("elementary: unknown parameter %q", key)
	}
	return e.SetRule(value)
}

var (
	_ core.Sim                = (*Elementary)(nil)
	_ core.ParameterProvider  = (*Elementary)(nil)
	_ core.IntParameterSetter = (*Elementary)(nil)
)

func init() {
	core.Register("automaton", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		e, err := New(c)
		if err != nil {
			c.Rule = DefaultConfig().Rule
			e, _ = New(c)
		}
		return e
	})
}
