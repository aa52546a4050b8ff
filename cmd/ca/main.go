//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mad-fractals/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	game, err := app.New(cfg)
	if err != nil {
		log.Fatalf("start viewer: %v", err)
	}
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("mad-fractals")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
