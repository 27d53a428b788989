package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/levels"
	"github.com/milk9111/climber/physics"
	"github.com/milk9111/climber/prefabs"
	"github.com/milk9111/climber/render"
	"github.com/milk9111/climber/tilemap"
)

type Config struct {
	// Level overrides the level named in world.yaml.
	Level string
	Debug bool
	Watch bool
}

type Game struct {
	world     *physics.World
	actorSpec *prefabs.ActorSpec
	worldSpec *prefabs.WorldSpec
	levelName string

	snapshot input.Snapshot
	source   input.Source
	result   physics.Result

	renderer *render.Renderer
	watcher  *prefabs.Watcher
	last     time.Time
}

func NewGame(cfg Config) (*Game, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	actorSpec, err := prefabs.LoadActorSpec()
	if err != nil {
		return nil, err
	}

	levelName := worldSpec.Level
	if cfg.Level != "" {
		levelName = cfg.Level
	}
	m, err := loadLevel(levelName, worldSpec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:     physics.NewWorld(m, actorSpec.Params(), actorSpec.SpawnRect()),
		actorSpec: actorSpec,
		worldSpec: worldSpec,
		levelName: levelName,
		source:    input.NewKeyboard(),
		renderer:  render.New(worldSpec.ScreenWidth, worldSpec.ScreenHeight, m.WorldWidth, m.WorldHeight),
	}
	g.applyActorColor()
	g.renderer.ShowDebug = cfg.Debug
	g.renderer.ShowGrid = cfg.Debug
	g.result = g.world.Result()

	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs", "levels")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func loadLevel(name string, spec *prefabs.WorldSpec) (*tilemap.Map, error) {
	return levels.LoadMap(name, spec.Width(), spec.Height, spec.GeometryTable())
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// ScreenSize is the window size from world.yaml.
func (g *Game) ScreenSize() (int, int) {
	return g.worldSpec.ScreenWidth, g.worldSpec.ScreenHeight
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.renderer.ShowGrid = !g.renderer.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		g.renderer.ShowDebug = !g.renderer.ShowDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Reset()
	}

	g.applyReloads()

	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.snapshot.Refresh(g.source)
	g.result = g.world.Tick(&g.snapshot, dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world.Map, g.result, &g.snapshot)
	if g.renderer.ShowDebug {
		render.DebugPrintCorner(screen, fmt.Sprintf("FPS: %.1f  level: %s", ebiten.ActualFPS(), g.levelName))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.Resize(outsideWidth, outsideHeight, g.world.Map.WorldWidth, g.world.Map.WorldHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) applyActorColor() {
	if g.actorSpec.Color != nil && g.actorSpec.Color.Color != nil {
		g.renderer.ActorColor = g.actorSpec.Color.Color
	}
}
