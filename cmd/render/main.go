// Command render computes a Mandelbrot view or an elementary automaton and
// writes it as a PNG, either locally or through a plotserver.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"mad-fractals/internal/core"
	"mad-fractals/internal/mandelbrot"
	"mad-fractals/internal/plot"
	"mad-fractals/internal/render"
	"mad-fractals/internal/stream"
	"mad-fractals/internal/viewport"
)

type config struct {
	kind    string
	width   int
	height  int
	maxIter int
	rule    string
	zoom    string
	outline string
	seed    int64
	scale   int
	remote  string
	out     string
}

func (c *config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "mandelbrot", "computation: mandelbrot or automaton")
	fs.IntVar(&c.width, "w", 1024, "raster width")
	fs.IntVar(&c.height, "h", 643, "raster height")
	fs.IntVar(&c.maxIter, "max-iter", mandelbrot.DefaultMaxIterations, "Mandelbrot iteration cap")
	fs.StringVar(&c.rule, "rule", "110", "elementary automaton rule (0-255)")
	fs.StringVar(&c.zoom, "zoom", "", "comma separated x,y,w,h pixel selections applied in order, separated by ';'")
	fs.StringVar(&c.outline, "outline", "", "x,y,w,h pixel selection to shade on the output")
	fs.Int64Var(&c.seed, "seed", 1, "colour table seed")
	fs.IntVar(&c.scale, "scale", 1, "integer upscale factor")
	fs.StringVar(&c.remote, "remote", "", "ws:// address of a plotserver; empty computes locally")
	fs.StringVar(&c.out, "o", "out.png", "output file")
}

func main() {
	var cfg config
	cfg.bind(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("render: %v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	var grid *core.Grid
	if cfg.remote != "" {
		log.Printf("requesting %s %dx%d from %s", req.Kind, req.Width, req.Height, cfg.remote)
		grid, err = stream.Fetch(ctx, cfg.remote, req)
	} else {
		log.Printf("computing %s %dx%d", req.Kind, req.Width, req.Height)
		grid, err = plot.Collect(ctx, req)
	}
	if err != nil {
		return err
	}

	var img image.Image
	if req.Kind == plot.KindMandelbrot {
		img = render.EscapeImage(grid, req.MaxIterations, render.NewPalette(cfg.seed, req.MaxIterations))
	} else {
		on, off := render.CellColors(cfg.seed)
		img = render.BinaryImage(grid, on, off)
	}
	if cfg.outline != "" {
		rect, err := parseRect(cfg.outline)
		if err != nil {
			return err
		}
		if img, err = render.Annotate(img, rect); err != nil {
			return err
		}
	}
	if cfg.scale > 1 {
		img = render.Scale(img, cfg.scale)
	}

	f, err := os.Create(cfg.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := render.WritePNG(f, img); err != nil {
		return err
	}
	log.Printf("saved %q", cfg.out)
	return f.Close()
}

func buildRequest(cfg config) (plot.Request, error) {
	kind, err := plot.ParseKind(cfg.kind)
	if err != nil {
		return plot.Request{}, err
	}
	req := plot.Request{Kind: kind, Width: cfg.width, Height: cfg.height, MaxIterations: cfg.maxIter}
	switch kind {
	case plot.KindAutomaton:
		if req.Rule, err = core.ParseRule(cfg.rule); err != nil {
			return plot.Request{}, err
		}
	case plot.KindMandelbrot:
		if req.MaxIterations == 0 {
			req.MaxIterations = mandelbrot.DefaultMaxIterations
		}
		v := viewport.Default(cfg.width, cfg.height)
		if cfg.zoom != "" {
			for _, part := range strings.Split(cfg.zoom, ";") {
				rect, err := parseRect(part)
				if err != nil {
					return plot.Request{}, err
				}
				if v, err = viewport.Zoom(rect, v); err != nil {
					return plot.Request{}, err
				}
			}
		}
		req.Bounds = plot.BoundsOf(v)
	}
	return req, req.Validate()
}

func parseRect(s string) (viewport.SelectionRect, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) != 4 {
		return viewport.SelectionRect{}, fmt.Errorf("%w: selection %q needs x,y,w,h", core.ErrMalformedInput, s)
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return viewport.SelectionRect{}, fmt.Errorf("%w: selection %q: %v", core.ErrMalformedInput, s, err)
		}
		vals[i] = v
	}
	return viewport.SelectionRect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}
