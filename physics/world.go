package physics

import (
	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/tilemap"
)

// Result is a read-only view of the world after a tick.
type Result struct {
	Tick     uint64
	Rect     common.Rect
	State    State
	XVel     float64
	YVel     float64
	Occupied []tilemap.Coord
	Window   tilemap.Window
}

// World owns one actor moving through one map.
type World struct {
	Actor    Actor
	Map      *tilemap.Map
	Occupied *tilemap.OccupiedSet
	Params   Params

	spawn common.Rect
	ticks uint64
}

// NewWorld places an actor with the given spawn rect into m.
func NewWorld(m *tilemap.Map, p Params, spawn common.Rect) *World {
	w := &World{
		Map:      m,
		Occupied: tilemap.NewOccupiedSet(),
		Params:   p,
		spawn:    spawn,
	}
	w.Reset()
	return w
}

// Tick runs one step and reports the outcome.
func (w *World) Tick(in *input.Snapshot, dt float64) Result {
	Step(&w.Actor, w.Occupied, w.Map, in, w.Params, dt)
	w.ticks++
	return w.Result()
}

func (w *World) Result() Result {
	return Result{
		Tick:     w.ticks,
		Rect:     w.Actor.Rect,
		State:    w.Actor.State,
		XVel:     w.Actor.XVel,
		YVel:     w.Actor.YVel,
		Occupied: w.Occupied.Coords(),
		Window:   w.Map.Window(w.Actor.Rect),
	}
}

// Reset moves the actor back to its spawn point, falling, with nothing
// tracked.
func (w *World) Reset() {
	w.Actor = NewActor(w.spawn.X, w.spawn.Y, w.spawn.W, w.spawn.H)
	w.Actor.Rect = w.clampIntoWorld(w.Actor.Rect)
	w.Occupied.Clear()
	w.ticks = 0
}

// SetMap swaps in a new map. The actor keeps its position, clamped into the
// new world bounds, and starts falling.
func (w *World) SetMap(m *tilemap.Map) {
	w.Map = m
	w.Occupied.Clear()
	w.Actor.Rect = w.clampIntoWorld(w.Actor.Rect)
	w.Actor.State = InAir
	w.Actor.DropDown = false
}

// SetSpawn changes where Reset places the actor.
func (w *World) SetSpawn(spawn common.Rect) {
	w.spawn = spawn
}

func (w *World) clampIntoWorld(r common.Rect) common.Rect {
	r.X = common.Clamp(r.X, 0, w.Map.WorldWidth-r.W)
	r.Y = common.Clamp(r.Y, 0, w.Map.WorldHeight-r.H)
	return r
}
