// Command replay runs a tengo input script against a level without a window
// and prints the per-tick trace.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/milk9111/climber/levels"
	"github.com/milk9111/climber/physics"
	"github.com/milk9111/climber/prefabs"
	"github.com/milk9111/climber/replay"
)

func main() {
	levelName := flag.String("level", "", "level file (.txt or .tmx); defaults to the level in world.yaml")
	scriptName := flag.String("script", "climb", "script path, or a name in prefabs/scripts")
	ticks := flag.Int("ticks", 600, "number of ticks to run")
	dt := flag.Float64("dt", 1.0/64, "seconds per tick")
	every := flag.Int("every", 1, "print every nth tick")
	flag.Parse()

	log.SetFlags(0)

	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Fatalf("replay: %v", err)
	}
	actorSpec, err := prefabs.LoadActorSpec()
	if err != nil {
		log.Fatalf("replay: %v", err)
	}

	name := worldSpec.Level
	if *levelName != "" {
		name = *levelName
	}
	m, err := levels.LoadMap(name, worldSpec.Width(), worldSpec.Height, worldSpec.GeometryTable())
	if err != nil {
		log.Fatalf("replay: %v", err)
	}

	src, err := os.ReadFile(*scriptName)
	if err != nil {
		src, err = prefabs.LoadScript(*scriptName)
		if err != nil {
			log.Fatalf("replay: script %s: %v", *scriptName, err)
		}
	}
	script, err := replay.NewScript(src)
	if err != nil {
		log.Fatalf("replay: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	world := physics.NewWorld(m, actorSpec.Params(), actorSpec.SpawnRect())
	results, err := replay.Run(ctx, world, script, *ticks, *dt)
	for i, r := range results {
		if *every > 1 && i%*every != 0 {
			continue
		}
		log.Printf("%5d  %-20s x=%7.3f y=%7.3f vx=%7.3f vy=%7.3f occupied=%v",
			r.Tick, r.State, r.Rect.X, r.Rect.Y, r.XVel, r.YVel, r.Occupied)
	}
	if err != nil {
		log.Fatalf("replay: after %d ticks: %v", len(results), err)
	}
}
