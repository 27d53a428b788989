package main

import (
	"log"
	"path/filepath"

	"github.com/milk9111/climber/prefabs"
)

// applyReloads drains pending watcher events. It runs between ticks so the
// world is never touched from the watcher goroutine.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

// reload applies one changed file. On any error the previous state is kept.
func (g *Game) reload(path string) {
	base := filepath.Base(path)
	switch {
	case prefabs.IsSpecFile(path):
		switch base {
		case "actor.yaml":
			g.reloadActor()
		case "world.yaml":
			g.reloadWorld()
		}
	case prefabs.IsLevelFile(path):
		if base == filepath.Base(g.levelName) {
			g.reloadLevel()
		}
	case prefabs.IsScriptFile(path):
		log.Printf("reload: %s changed; scripts are only read by cmd/replay", base)
	}
}

func (g *Game) reloadActor() {
	spec, err := prefabs.LoadActorSpec()
	if err != nil {
		log.Printf("reload actor: %v", err)
		return
	}
	g.actorSpec = spec
	g.world.Params = spec.Params()
	g.world.SetSpawn(spec.SpawnRect())
	g.world.Actor.W = spec.Width
	g.world.Actor.H = spec.Height
	g.world.SetMap(g.world.Map)
	g.applyActorColor()
	log.Printf("reload: actor.yaml")
}

func (g *Game) reloadWorld() {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Printf("reload world: %v", err)
		return
	}
	m, err := loadLevel(spec.Level, spec)
	if err != nil {
		log.Printf("reload world: %v", err)
		return
	}
	g.worldSpec = spec
	g.levelName = spec.Level
	g.world.SetMap(m)
	g.renderer.Resize(g.renderer.Screen.Width, g.renderer.Screen.Height, m.WorldWidth, m.WorldHeight)
	log.Printf("reload: world.yaml, level %s", spec.Level)
}

func (g *Game) reloadLevel() {
	m, err := loadLevel(g.levelName, g.worldSpec)
	if err != nil {
		log.Printf("reload level: %v", err)
		return
	}
	g.world.SetMap(m)
	log.Printf("reload: level %s", g.levelName)
}
