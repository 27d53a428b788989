package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "start with the tile grid and debug overlay shown")
	watch := flag.Bool("watch", false, "hot-reload prefabs/ and levels/ from disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level file (.txt or .tmx); defaults to the level in world.yaml")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Config{Level: *levelName, Debug: *debug, Watch: *watch})
	if err != nil {
		log.Fatalf("climber: %v", err)
	}
	defer game.Close()

	w, h := game.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("climber")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
