package physics

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/tilemap"
)

const dt = 1.0 / 64

func mustMap(t *testing.T, grid tilemap.Grid, w, h float64) *tilemap.Map {
	t.Helper()
	m, err := tilemap.Build(grid, w, h)
	if err != nil {
		t.Fatalf("build map: %v", err)
	}
	return m
}

// 8x8 world, 1m cells. A half-height platform spans cols 1-3 of row 2
// (top at y=2.5). A ladder occupies col 6, rows 0-3 (top at y=4).
func testMap(t *testing.T) *tilemap.Map {
	return mustMap(t, tilemap.Grid{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 2, 0},
		{0, 1, 1, 1, 0, 0, 2, 0},
		{0, 0, 0, 0, 0, 0, 2, 0},
		{0, 0, 0, 0, 0, 0, 2, 0},
	}, 8, 8)
}

// run steps until done reports true or limit ticks pass.
func run(t *testing.T, a *Actor, occ *tilemap.OccupiedSet, m *tilemap.Map, in *input.Snapshot, limit int, done func() bool) int {
	t.Helper()
	p := DefaultParams()
	for i := 1; i <= limit; i++ {
		Step(a, occ, m, in, p, dt)
		if done() {
			return i
		}
	}
	t.Fatalf("condition not reached in %d ticks; actor %+v", limit, *a)
	return 0
}

// standOnPlatform drops an actor onto the platform and returns it landed.
func standOnPlatform(t *testing.T, m *tilemap.Map) (*Actor, *tilemap.OccupiedSet) {
	t.Helper()
	a := NewActor(1.5, 3, 0.5, 1)
	occ := tilemap.NewOccupiedSet()
	run(t, &a, occ, m, hold(), 200, func() bool { return a.State != InAir })
	return &a, occ
}

func TestLandingSnapsToTop(t *testing.T) {
	m := testMap(t)
	a, occ := standOnPlatform(t, m)
	if a.State != OnTransientGround {
		t.Fatalf("state = %v, want on transient ground", a.State)
	}
	if a.Y != 2.5 {
		t.Fatalf("y = %v, want exactly 2.5", a.Y)
	}
	if a.YVel != 0 {
		t.Fatalf("yVel = %v, want 0", a.YVel)
	}
	if got := occ.Coords(); !reflect.DeepEqual(got, []tilemap.Coord{{Col: 1, Row: 2}}) {
		t.Fatalf("occupied = %v", got)
	}

	// Standing still keeps the contact.
	Step(a, occ, m, hold(), DefaultParams(), dt)
	if a.State != OnTransientGround || a.Y != 2.5 || occ.Len() != 1 {
		t.Fatalf("after idle tick: %+v occupied %v", *a, occ.Coords())
	}
}

func TestJumpFromGround(t *testing.T) {
	m := testMap(t)
	p := DefaultParams()
	a := NewActor(4, 0, 0.5, 1)
	a.State = OnSolidGround
	occ := tilemap.NewOccupiedSet()

	in := press(input.Jump)
	Step(&a, occ, m, in, p, dt)
	if a.State != InAir {
		t.Fatalf("state = %v, want in air", a.State)
	}
	if a.YVel != 6.0 {
		t.Fatalf("yVel = %v, want 6.0", a.YVel)
	}

	frame(in, input.Jump)
	Step(&a, occ, m, in, p, dt)
	if want := 6.0 + p.Gravity*dt; a.YVel != want {
		t.Fatalf("second tick yVel = %v, want %v", a.YVel, want)
	}
}

func TestJumpUpThroughPlatform(t *testing.T) {
	// Platform on row 1, top at y=1.5, within jump height.
	m := mustMap(t, tilemap.Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 1, 1, 1},
		{0, 0, 0, 0},
	}, 4, 4)
	a := NewActor(2, 0, 0.5, 1)
	a.State = OnSolidGround
	occ := tilemap.NewOccupiedSet()
	in := press(input.Jump)
	Step(&a, occ, m, in, DefaultParams(), dt)

	frame(in)
	run(t, &a, occ, m, in, 400, func() bool { return a.State != InAir })
	if a.State != OnTransientGround || a.Y != 1.5 {
		t.Fatalf("landed %v at y=%v, want on transient ground at 1.5", a.State, a.Y)
	}
}

func TestDropThroughPlatform(t *testing.T) {
	m := testMap(t)
	a, occ := standOnPlatform(t, m)
	p := DefaultParams()

	in := press(input.Down)
	Step(a, occ, m, in, p, dt)
	if a.State != InAir {
		t.Fatalf("tick 1 state = %v, want in air", a.State)
	}
	if a.DropDown {
		t.Fatalf("drop-down flag survived the tick")
	}
	frame(in, input.Down)
	Step(a, occ, m, in, p, dt)
	if a.State != InAir || a.Y >= 2.5 {
		t.Fatalf("tick 2: state %v y %v, want falling below 2.5", a.State, a.Y)
	}

	run(t, a, occ, m, in, 400, func() bool {
		if a.State == OnTransientGround {
			t.Fatalf("landed again at y=%v", a.Y)
		}
		return a.State == OnSolidGround
	})
	if a.Y != 0 {
		t.Fatalf("y = %v, want floor", a.Y)
	}
}

func TestWalkOffEdge(t *testing.T) {
	m := testMap(t)
	a, occ := standOnPlatform(t, m)
	in := hold(input.Right)
	run(t, a, occ, m, in, 400, func() bool {
		if a.State == OnTransientGround && occ.Len() == 0 {
			t.Fatalf("on transient ground with nothing tracked at x=%v", a.X)
		}
		return a.State != OnTransientGround
	})
	if a.State != InAir {
		t.Fatalf("state = %v, want in air", a.State)
	}
	if a.X < 4 || a.X > 4.1 {
		t.Fatalf("left the platform at x=%v, want just past 4", a.X)
	}
}

func TestLadderAttachNeedsFreshInput(t *testing.T) {
	m := testMap(t)
	p := DefaultParams()

	t.Run("stale", func(t *testing.T) {
		a := NewActor(6, 0, 0.5, 1)
		a.State = OnSolidGround
		occ := tilemap.NewOccupiedSet()
		Step(&a, occ, m, hold(input.Up), p, dt)
		if a.State != OnSolidGround {
			t.Fatalf("state = %v, want on solid ground", a.State)
		}
		if occ.Len() != 0 {
			t.Fatalf("occupied = %v, want empty", occ.Coords())
		}
	})

	t.Run("fresh", func(t *testing.T) {
		a := NewActor(6, 0, 0.5, 1)
		a.State = OnSolidGround
		a.XVel = 1
		occ := tilemap.NewOccupiedSet()
		Step(&a, occ, m, press(input.Up), p, dt)
		if a.State != OnLadder {
			t.Fatalf("state = %v, want on ladder", a.State)
		}
		if a.X != 6.25 {
			t.Fatalf("x = %v, want centered at 6.25", a.X)
		}
		if a.XVel != 0 || a.YVel != 0 {
			t.Fatalf("velocity = %v,%v, want zero", a.XVel, a.YVel)
		}
		if !occ.Contains(tilemap.Coord{Col: 6, Row: 0}) {
			t.Fatalf("occupied = %v, want ladder base", occ.Coords())
		}
	})
}

// climb attaches an actor at the ladder base and climbs until it stops
// being on the ladder.
func climb(t *testing.T, m *tilemap.Map) (*Actor, *tilemap.OccupiedSet) {
	t.Helper()
	a := NewActor(6, 0, 0.5, 1)
	a.State = OnSolidGround
	occ := tilemap.NewOccupiedSet()
	in := press(input.Up)
	Step(&a, occ, m, in, DefaultParams(), dt)
	if a.State != OnLadder {
		t.Fatalf("did not attach: %v", a.State)
	}
	frame(in, input.Up)
	run(t, &a, occ, m, in, 400, func() bool { return a.State != OnLadder })
	return &a, occ
}

func TestClimbToLadderTop(t *testing.T) {
	m := testMap(t)
	a, occ := climb(t, m)
	if a.State != InAir || a.Y < 4 {
		t.Fatalf("left ladder as %v at y=%v, want in air above 4", a.State, a.Y)
	}

	in := hold(input.Up)
	run(t, a, occ, m, in, 100, func() bool { return a.State != InAir })
	if a.State != OnTransientGround || a.Y != 4 {
		t.Fatalf("state %v y %v, want standing on ladder top", a.State, a.Y)
	}
	if !occ.Contains(tilemap.Coord{Col: 6, Row: 3}) {
		t.Fatalf("occupied = %v, want top rung", occ.Coords())
	}

	// Pressing down on the top climbs back down instead of dropping.
	frame(in)
	frame(in, input.Down)
	Step(a, occ, m, in, DefaultParams(), dt)
	if a.State != OnLadder {
		t.Fatalf("down on ladder top: state = %v, want on ladder", a.State)
	}
}

func TestLadderJumps(t *testing.T) {
	m := testMap(t)
	p := DefaultParams()
	attached := func(t *testing.T) (*Actor, *tilemap.OccupiedSet, *input.Snapshot) {
		a := NewActor(6, 0, 0.5, 1)
		a.State = OnSolidGround
		occ := tilemap.NewOccupiedSet()
		in := press(input.Up)
		Step(&a, occ, m, in, p, dt)
		frame(in, input.Up)
		for i := 0; i < 20; i++ {
			Step(&a, occ, m, in, p, dt)
		}
		frame(in)
		Step(&a, occ, m, in, p, dt)
		if a.State != OnLadder {
			t.Fatalf("setup: state = %v", a.State)
		}
		return &a, occ, in
	}

	t.Run("leap", func(t *testing.T) {
		a, occ, in := attached(t)
		frame(in, input.Jump, input.Right)
		Step(a, occ, m, in, p, dt)
		if a.State != InAir {
			t.Fatalf("state = %v, want in air", a.State)
		}
		if a.XVel != p.MoveSpeed || a.YVel != p.LeapSpeed {
			t.Fatalf("velocity = %v,%v, want %v,%v", a.XVel, a.YVel, p.MoveSpeed, p.LeapSpeed)
		}
	})

	t.Run("drop_off", func(t *testing.T) {
		a, occ, in := attached(t)
		y := a.Y
		frame(in, input.Jump)
		Step(a, occ, m, in, p, dt)
		if a.State != InAir || a.YVel != -p.DropNudge {
			t.Fatalf("state %v yVel %v, want in air at %v", a.State, a.YVel, -p.DropNudge)
		}
		if a.Y >= y {
			t.Fatalf("y = %v, want below %v", a.Y, y)
		}
		if occ.Len() != 0 {
			t.Fatalf("occupied = %v, want empty", occ.Coords())
		}
	})
}

func TestLadderOntoPlatform(t *testing.T) {
	// Ladder in col 4 rows 3-5 ends on a platform spanning cols 3-5 of row 2.
	m := mustMap(t, tilemap.Grid{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 2, 0, 0, 0},
		{0, 0, 0, 0, 2, 0, 0, 0},
		{0, 0, 0, 0, 2, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}, 8, 8)
	a := NewActor(4.25, 3.2, 0.5, 1)
	a.State = OnLadder
	occ := tilemap.NewOccupiedSet()
	occ.Add(tilemap.Coord{Col: 4, Row: 3})

	in := hold(input.Down)
	run(t, &a, occ, m, in, 200, func() bool { return a.State != OnLadder })
	if a.State != OnTransientGround || a.Y != 2.5 {
		t.Fatalf("state %v y %v, want standing on platform at 2.5", a.State, a.Y)
	}
}

// fallToFloor steps until the actor reaches the floor and fails if it stands
// on anything on the way down.
func fallToFloor(t *testing.T, a *Actor, occ *tilemap.OccupiedSet, m *tilemap.Map, in *input.Snapshot) {
	t.Helper()
	run(t, a, occ, m, in, 400, func() bool {
		if a.State == OnTransientGround || a.State == OnLadder {
			t.Fatalf("%v at y=%v on the way down, occupied %v", a.State, a.Y, occ.Coords())
		}
		return a.State == OnSolidGround
	})
	if a.Y != 0 {
		t.Fatalf("y = %v, want floor", a.Y)
	}
}

func TestLadderDropOffMidShaft(t *testing.T) {
	m := testMap(t)
	p := DefaultParams()
	a := NewActor(6, 0, 0.5, 1)
	a.State = OnSolidGround
	occ := tilemap.NewOccupiedSet()
	in := press(input.Up)
	Step(&a, occ, m, in, p, dt)
	frame(in, input.Up)
	run(t, &a, occ, m, in, 400, func() bool { return a.Y >= 2.5 })

	frame(in)
	Step(&a, occ, m, in, p, dt)
	if a.State != OnLadder {
		t.Fatalf("setup: state = %v at y=%v", a.State, a.Y)
	}

	// Rows 0-2 of the column each have ladder above them.
	frame(in, input.Jump)
	Step(&a, occ, m, in, p, dt)
	if a.State != InAir {
		t.Fatalf("drop off: state = %v", a.State)
	}
	frame(in)
	fallToFloor(t, &a, occ, m, in)
}

func TestFallPastLadderColumn(t *testing.T) {
	m := testMap(t)

	t.Run("beside", func(t *testing.T) {
		// Right edge at 6.2 stays clear of the rung hitbox at 6.25.
		a := NewActor(5.7, 5, 0.5, 1)
		fallToFloor(t, &a, tilemap.NewOccupiedSet(), m, hold())
	})

	t.Run("over_top", func(t *testing.T) {
		a := NewActor(6, 5, 0.5, 1)
		occ := tilemap.NewOccupiedSet()
		run(t, &a, occ, m, hold(), 200, func() bool { return a.State != InAir })
		if a.State != OnTransientGround || a.Y != 4 {
			t.Fatalf("state %v y %v, want standing on the ladder top at 4", a.State, a.Y)
		}
		if got := occ.Coords(); !reflect.DeepEqual(got, []tilemap.Coord{{Col: 6, Row: 3}}) {
			t.Fatalf("occupied = %v, want only the top rung", got)
		}
	})
}

func TestAttachThenLandSameTick(t *testing.T) {
	p := DefaultParams()

	t.Run("landing_lifts_off_ladder", func(t *testing.T) {
		// Ladder in col 4 rows 0-1 under a platform spanning cols 3-5 of row 2.
		m := mustMap(t, tilemap.Grid{
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 1, 1, 1, 0, 0},
			{0, 0, 0, 0, 2, 0, 0, 0},
			{0, 0, 0, 0, 2, 0, 0, 0},
		}, 8, 8)
		// One 0.05s tick carries the actor from above the platform top into
		// the upper rung, with a fresh up press.
		a := NewActor(4.3, 2.55, 0.5, 1)
		a.YVel = -11.51
		occ := tilemap.NewOccupiedSet()
		Step(&a, occ, m, press(input.Up), p, 0.05)
		if a.State != OnTransientGround || a.Y != 2.5 {
			t.Fatalf("state %v y %v, want standing on the platform at 2.5", a.State, a.Y)
		}
		if a.X != 4.25 || a.XVel != 0 || a.YVel != 0 {
			t.Fatalf("actor %+v, want centered on the ladder at rest", a)
		}
	})

	t.Run("ladder_still_overlaps", func(t *testing.T) {
		// Ladder in col 4 next to a platform in col 5, both on row 2.
		m := mustMap(t, tilemap.Grid{
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 2, 1, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0},
		}, 8, 8)
		a := NewActor(4.6, 2.505, 0.5, 1)
		a.YVel = -1
		occ := tilemap.NewOccupiedSet()
		Step(&a, occ, m, press(input.Up), p, dt)
		if a.State != OnLadder {
			t.Fatalf("state = %v, want on ladder", a.State)
		}
		if a.X != 4.25 || a.Y != 2.5 {
			t.Fatalf("position %v,%v, want 4.25,2.5", a.X, a.Y)
		}
		if !occ.Contains(tilemap.Coord{Col: 4, Row: 2}) {
			t.Fatalf("occupied = %v, want the rung", occ.Coords())
		}
	})
}

func TestSurfaceSolidity(t *testing.T) {
	grid := tilemap.Grid{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 2, 0},
		{0, 1, 1, 1, 0, 0, 2, 0},
		{0, 0, 0, 0, 0, 0, 2, 0},
		{0, 0, 0, 0, 0, 0, 2, 0},
	}
	build := func(t *testing.T, g tilemap.GeometryTable) *tilemap.Map {
		t.Helper()
		m, err := tilemap.BuildWithGeometry(grid, 8, 8, g)
		if err != nil {
			t.Fatalf("build map: %v", err)
		}
		return m
	}

	t.Run("solid_platform_holds_drop", func(t *testing.T) {
		g := tilemap.DefaultGeometry
		g[tilemap.TypePlatform].Solidity = tilemap.Solid
		m := build(t, g)
		a, occ := standOnPlatform(t, m)
		Step(a, occ, m, press(input.Down), DefaultParams(), dt)
		if a.State != OnTransientGround || a.Y != 2.5 {
			t.Fatalf("state %v y %v, want still standing at 2.5", a.State, a.Y)
		}
	})

	t.Run("non_solid_platform", func(t *testing.T) {
		g := tilemap.DefaultGeometry
		g[tilemap.TypePlatform].Solidity = tilemap.NonSolid
		m := build(t, g)
		a := NewActor(1.5, 3, 0.5, 1)
		fallToFloor(t, &a, tilemap.NewOccupiedSet(), m, hold())
	})

	t.Run("non_solid_ladder_top", func(t *testing.T) {
		g := tilemap.DefaultGeometry
		g[tilemap.TypeLadder].Solidity = tilemap.NonSolid
		m := build(t, g)
		a := NewActor(6, 5, 0.5, 1)
		fallToFloor(t, &a, tilemap.NewOccupiedSet(), m, hold())
	})
}

func TestWorldBounds(t *testing.T) {
	m := mustMap(t, tilemap.Grid{{0, 0, 0, 0}, {0, 0, 0, 0}}, 4, 2)
	p := DefaultParams()

	t.Run("left_wall", func(t *testing.T) {
		a := NewActor(0.01, 0, 0.5, 1)
		a.State = OnSolidGround
		Step(&a, tilemap.NewOccupiedSet(), m, hold(input.Left), p, dt)
		if a.X != 0 || a.XVel != 0 {
			t.Fatalf("x %v xVel %v, want clamped to 0", a.X, a.XVel)
		}
	})

	t.Run("right_wall", func(t *testing.T) {
		a := NewActor(3.49, 0, 0.5, 1)
		a.State = OnSolidGround
		Step(&a, tilemap.NewOccupiedSet(), m, hold(input.Right), p, dt)
		if a.X != 3.5 || a.XVel != 0 {
			t.Fatalf("x %v xVel %v, want clamped to 3.5", a.X, a.XVel)
		}
	})

	t.Run("ceiling", func(t *testing.T) {
		a := NewActor(1, 0.95, 0.5, 1)
		a.YVel = 6
		Step(&a, tilemap.NewOccupiedSet(), m, hold(), p, 0.05)
		if a.Y != 1 || a.YVel != 0 || a.State != InAir {
			t.Fatalf("actor %+v, want y=1 at rest in air", a)
		}
	})

	t.Run("floor", func(t *testing.T) {
		a := NewActor(1, 0.01, 0.5, 1)
		a.YVel = -1
		Step(&a, tilemap.NewOccupiedSet(), m, hold(), p, dt)
		if a.Y != 0 || a.YVel != 0 || a.State != OnSolidGround {
			t.Fatalf("actor %+v, want standing on the floor", a)
		}
	})
}

func TestStepClampsDT(t *testing.T) {
	m := testMap(t)
	p := DefaultParams()

	a := NewActor(4, 0, 0.5, 1)
	a.State = OnSolidGround
	Step(&a, tilemap.NewOccupiedSet(), m, press(input.Jump), p, 10)
	if want := p.JumpSpeed * p.MaxDT; a.Y != want {
		t.Fatalf("y = %v, want %v", a.Y, want)
	}

	b := NewActor(4, 5, 0.5, 1)
	b.YVel = -1
	Step(&b, tilemap.NewOccupiedSet(), m, hold(input.Right), p, -1)
	if b.X != 4 || b.Y != 5 || b.YVel != -1 {
		t.Fatalf("negative dt moved the actor: %+v", b)
	}
}

// checkInvariants verifies what must hold after every tick.
func checkInvariants(t *testing.T, i int, a *Actor, occ *tilemap.OccupiedSet, m *tilemap.Map) {
	t.Helper()
	if a.X < 0 || a.X > m.WorldWidth-a.W || a.Y < 0 || a.Y > m.WorldHeight-a.H {
		t.Fatalf("tick %d: actor out of world: %+v", i, a.Rect)
	}
	if a.DropDown {
		t.Fatalf("tick %d: drop-down flag left set", i)
	}
	switch a.State {
	case OnTransientGround:
		if !supported(a.Rect, occ, m) {
			t.Fatalf("tick %d: on transient ground without support, occupied %v", i, occ.Coords())
		}
	case OnLadder:
		if !climbing(a.Rect, occ, m) {
			t.Fatalf("tick %d: on ladder without a ladder tile, occupied %v", i, occ.Coords())
		}
	}
}

func randomInputs(seed uint64, n int) [][]input.Button {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([][]input.Button, n)
	for i := range out {
		var held []input.Button
		for b := input.Button(0); b < input.ButtonCount; b++ {
			if r.IntN(4) == 0 {
				held = append(held, b)
			}
		}
		out[i] = held
	}
	return out
}

func TestInvariantsUnderRandomInput(t *testing.T) {
	m := testMap(t)
	p := DefaultParams()
	for seed := uint64(1); seed <= 8; seed++ {
		a := NewActor(3, 5, 0.5, 1)
		occ := tilemap.NewOccupiedSet()
		in := &input.Snapshot{}
		for i, held := range randomInputs(seed, 2000) {
			frame(in, held...)
			Step(&a, occ, m, in, p, dt)
			checkInvariants(t, i, &a, occ, m)
		}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	m := testMap(t)
	inputs := randomInputs(7, 1000)
	trace := func() []Result {
		w := NewWorld(m, DefaultParams(), common.Rect{X: 3, Y: 5, W: 0.5, H: 1})
		in := &input.Snapshot{}
		out := make([]Result, 0, len(inputs))
		for _, held := range inputs {
			frame(in, held...)
			out = append(out, w.Tick(in, dt))
		}
		return out
	}
	if a, b := trace(), trace(); !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs with identical input diverged")
	}
}
