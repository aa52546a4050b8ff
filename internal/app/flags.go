package app

import (
	"flag"
	"fmt"
	"strconv"

	"mad-fractals/internal/automaton"
	"mad-fractals/internal/mandelbrot"
	"mad-fractals/internal/plot"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Tab         string
	Width       int
	Height      int
	Scale       int
	TPS         int
	RowsPerTick int
	Seed        int64
	MaxIter     int
	Workers     int
	Rule        int
	HUDWidth    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Tab:         plot.KindMandelbrot.String(),
		Width:       1024,
		Height:      643,
		Scale:       1,
		TPS:         60,
		RowsPerTick: 8,
		Seed:        42,
		MaxIter:     mandelbrot.DefaultMaxIterations,
		Rule:        automaton.DefaultConfig().Rule,
		HUDWidth:    220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Tab, "tab", c.Tab, "initial tab: mandelbrot or automaton")
	fs.IntVar(&c.Width, "w", c.Width, "canvas width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "canvas height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.RowsPerTick, "rows", c.RowsPerTick, "automaton generations drawn per tick")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the colour tables")
	fs.IntVar(&c.MaxIter, "max-iter", c.MaxIter, "Mandelbrot iteration cap")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Mandelbrot evaluation goroutines (0 = GOMAXPROCS)")
	fs.IntVar(&c.Rule, "rule", c.Rule, "initial elementary automaton rule (0-255)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the side panel in pixels")
}

// Validate reports configuration the viewer cannot start with.
func (c *Config) Validate() error {
	if _, err := plot.ParseKind(c.Tab); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas %dx%d must be positive", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale %d must be positive", c.Scale)
	}
	if c.MaxIter < 1 {
		return mandelbrot.ErrInvalidIterations
	}
	if _, err := automaton.DeriveRuleset(c.Rule); err != nil {
		return err
	}
	return nil
}

// SimConfig renders the settings in the string form the registered
// simulation factories read.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":        strconv.Itoa(c.Width),
		"h":        strconv.Itoa(c.Height),
		"max_iter": strconv.Itoa(c.MaxIter),
		"workers":  strconv.Itoa(c.Workers),
		"rule":     strconv.Itoa(c.Rule),
	}
}
