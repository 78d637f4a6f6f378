//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"ecs-tilemap/internal/app"
	"ecs-tilemap/internal/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	m, err := cfg.BuildMap()
	if err != nil {
		log.Fatalf("failed to build map: %v", err)
	}
	log.Printf("[tilemap] built %v %s map: %d layers, %d entities", m.Size, m.Type, len(m.Layers), m.World.Len())

	store, err := tilemap.OpenStore("ecs-tilemap")
	if err != nil {
		log.Printf("[tilemap] snapshots disabled: %v", err)
		store = nil
	}

	game := app.New(m, store, cfg)

	ebiten.SetWindowTitle("ecs-tilemap " + m.Size.String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
