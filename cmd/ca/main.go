//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"life-canvas/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	store, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	session := app.Open(cfg.EngineConfig(), store, cfg.Fresh, cfg.PersistInterval, log.Default())
	defer session.Close()

	game := app.New(session.Engine, cfg, log.Default())
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("life-canvas")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		session.Close()
		log.Fatal(err)
	}
}
