package physics

import (
	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/tilemap"
)

// Step advances a by one tick of dt seconds against m. occ holds the tiles
// the actor is currently standing on or climbing and is updated in place.
//
// A tick applies input, integrates each axis with world-bound clamping,
// drops tracked tiles that no longer touch the actor, scans the neighborhood
// for new contacts and then commits the resulting state.
func Step(a *Actor, occ *tilemap.OccupiedSet, m *tilemap.Map, in *input.Snapshot, p Params, dt float64) {
	if in == nil {
		in = &input.Snapshot{}
	}
	dt = p.clampDT(dt)
	prev := a.Rect

	tr := Advance(a.State, in, a.XVel, a.YVel, p, dt)
	a.State, a.XVel, a.YVel, a.DropDown = tr.State, tr.XVel, tr.YVel, tr.DropDown

	integrate(a, m.WorldWidth, m.WorldHeight, dt)
	revalidate(a, occ, m)
	attached := scan(a, prev, occ, m, in)
	finalize(a, occ, m, attached)
}

func integrate(a *Actor, worldW, worldH, dt float64) {
	a.X += a.XVel * dt
	if x := common.Clamp(a.X, 0, worldW-a.W); x != a.X {
		a.X = x
		a.XVel = 0
	}

	a.Y += a.YVel * dt
	switch {
	case a.Y < 0:
		a.Y = 0
		a.YVel = 0
		a.State = OnSolidGround
	case a.Y+a.H > worldH:
		a.Y = common.Clamp(worldH-a.H, 0, worldH)
		a.YVel = 0
		a.State = InAir
	}
}

// revalidate keeps only the tracked tiles that still support the actor in
// its current state.
func revalidate(a *Actor, occ *tilemap.OccupiedSet, m *tilemap.Map) {
	cur := a.Rect
	state := a.State
	occ.Retain(func(c tilemap.Coord) bool {
		hb := m.Hitbox(c)
		switch state {
		case OnTransientGround:
			return common.XOverlap(cur, hb) && common.StandingOn(cur, hb)
		case OnLadder:
			return m.TypeAt(c) == tilemap.TypeLadder && cur.Intersects(hb)
		default:
			return false
		}
	})
}

// scan checks every tile around the actor. The rule set is chosen by the
// state the actor entered the scan with; when several tiles produce an
// outcome the last one in scan order wins.
//
// Only tiles whose solidity is not NonSolid can be stood on. A drop-down
// passes through TransientSolid surfaces but not Solid ones.
func scan(a *Actor, prev common.Rect, occ *tilemap.OccupiedSet, m *tilemap.Map, in *input.Snapshot) (attached bool) {
	state := a.State
	yVel := a.YVel
	cur := a.Rect
	freshVertical := in.VerticalJustChanged()

	m.Each(m.Window(cur), func(t tilemap.Tile) {
		hb := m.Hitbox(t.Coord)
		surface := m.Geometry(t.Type).Solidity
		standable := surface != tilemap.NonSolid
		catches := standable && !(a.DropDown && surface == tilemap.TransientSolid)

		switch t.Type {
		case tilemap.TypePlatform:
			switch state {
			case InAir:
				if catches && landing(prev, cur, hb) {
					land(a, occ, t.Coord, hb)
				}
			case OnLadder:
				if catches && yVel < 0 && common.XOverlap(cur, hb) &&
					common.IsBelowTop(cur, hb) && common.IsAbove(prev, hb) {
					land(a, occ, t.Coord, hb)
				}
			case OnTransientGround:
				if standable && common.XOverlap(cur, hb) && common.StandingOn(cur, hb) {
					occ.Add(t.Coord)
				}
			}

		case tilemap.TypeLadder:
			if state == OnLadder {
				if !a.DropDown && cur.Intersects(hb) {
					occ.Add(t.Coord)
				}
				return
			}
			if freshVertical && cur.Intersects(hb) {
				a.XVel = 0
				a.YVel = 0
				a.X = common.Clamp(hb.CenterX()-a.W/2, 0, m.WorldWidth-a.W)
				occ.Add(t.Coord)
				attached = true
			}
			top := !ladderAbove(m, t.Coord)
			switch state {
			case InAir:
				if top && catches && landing(prev, cur, hb) {
					land(a, occ, t.Coord, hb)
				}
			case OnTransientGround:
				if top && standable && common.XOverlap(cur, hb) && common.StandingOn(cur, hb) {
					occ.Add(t.Coord)
				}
			}
		}
	})
	return attached
}

// landing reports whether the actor crossed hb's top plane from above while
// overlapping it horizontally.
func landing(prev, cur, hb common.Rect) bool {
	return common.IsAbove(prev, hb) && common.XOverlap(prev, hb) &&
		common.IsBelowTop(cur, hb) && common.XOverlap(cur, hb)
}

func land(a *Actor, occ *tilemap.OccupiedSet, c tilemap.Coord, hb common.Rect) {
	a.State = OnTransientGround
	a.YVel = 0
	a.Y = hb.Top()
	occ.Add(c)
}

// ladderAbove reports whether the cell directly above c holds a ladder. Only
// the topmost tile of a ladder column can be stood on.
func ladderAbove(m *tilemap.Map, c tilemap.Coord) bool {
	return m.TypeAt(tilemap.Coord{Col: c.Col, Row: c.Row + 1}) == tilemap.TypeLadder
}

func finalize(a *Actor, occ *tilemap.OccupiedSet, m *tilemap.Map, attached bool) {
	a.DropDown = false
	// A landing later in the scan can snap the actor off the ladder it
	// grabbed; the landing stands in that case.
	if attached && climbing(a.Rect, occ, m) {
		a.State = OnLadder
		return
	}
	switch a.State {
	case OnTransientGround:
		if !supported(a.Rect, occ, m) {
			a.State = InAir
		}
	case OnLadder:
		if !climbing(a.Rect, occ, m) {
			a.State = InAir
			a.YVel = 0
		}
	}
}

func supported(r common.Rect, occ *tilemap.OccupiedSet, m *tilemap.Map) bool {
	cur := occ.Cursor()
	for c, ok := cur.Next(); ok; c, ok = cur.Next() {
		hb := m.Hitbox(c)
		if common.XOverlap(r, hb) && common.StandingOn(r, hb) {
			return true
		}
	}
	return false
}

func climbing(r common.Rect, occ *tilemap.OccupiedSet, m *tilemap.Map) bool {
	cur := occ.Cursor()
	for c, ok := cur.Next(); ok; c, ok = cur.Next() {
		if m.TypeAt(c) == tilemap.TypeLadder && r.Intersects(m.Hitbox(c)) {
			return true
		}
	}
	return false
}
