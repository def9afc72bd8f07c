// chess3d - a chess board in perspective with mana abilities, built with Ebitengine
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/chess3d/internal/config"
	"github.com/hailam/chess3d/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	game := ui.NewGame(cfg)
	defer game.Close()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("chess3d")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
