package physics

import (
	"fmt"

	"github.com/milk9111/climber/input"
)

// State is the actor's locomotion state.
type State uint8

const (
	InAir State = iota
	OnTransientGround
	OnSolidGround
	OnLadder

	stateCount
)

func (s State) String() string {
	if s >= stateCount {
		return fmt.Sprintf("State(%d)", uint8(s))
	}
	return behaviors[s].Name()
}

// Transition is the outcome of the input-driven part of a tick.
type Transition struct {
	State    State
	XVel     float64
	YVel     float64
	DropDown bool
}

// stateContext is what a locomotion behavior reads and writes. Behaviors only
// touch Out.
type stateContext struct {
	In     *input.Snapshot
	Params Params
	DT     float64
	Out    Transition
}

// locomotion is implemented once per State.
type locomotion interface {
	Name() string
	HandleInput(ctx *stateContext)
}

// State singletons (no per-tick allocation).
var (
	stateInAir     locomotion = &inAirState{}
	stateTransient locomotion = &transientGroundState{}
	stateSolid     locomotion = &solidGroundState{}
	stateLadder    locomotion = &ladderState{}

	behaviors = [stateCount]locomotion{
		InAir:             stateInAir,
		OnTransientGround: stateTransient,
		OnSolidGround:     stateSolid,
		OnLadder:          stateLadder,
	}
)

// Advance computes the velocity and any state change requested by input. It
// is a pure function of its arguments.
func Advance(state State, in *input.Snapshot, xVel, yVel float64, p Params, dt float64) Transition {
	if in == nil {
		in = &input.Snapshot{}
	}
	if state >= stateCount {
		state = InAir
	}
	ctx := stateContext{
		In:     in,
		Params: p,
		DT:     dt,
		Out:    Transition{State: state, XVel: xVel, YVel: yVel},
	}
	behaviors[state].HandleInput(&ctx)
	return ctx.Out
}

type inAirState struct{}

func (inAirState) Name() string { return "in air" }
func (inAirState) HandleInput(ctx *stateContext) {
	ctx.Out.XVel = ctx.In.Stick.X * ctx.Params.MoveSpeed
	ctx.Out.YVel += ctx.Params.Gravity * ctx.DT
}

type solidGroundState struct{}

func (solidGroundState) Name() string { return "on solid ground" }
func (solidGroundState) HandleInput(ctx *stateContext) {
	walk(ctx)
	jump(ctx)
}

type transientGroundState struct{}

func (transientGroundState) Name() string { return "on transient ground" }
func (transientGroundState) HandleInput(ctx *stateContext) {
	walk(ctx)
	if jump(ctx) {
		return
	}
	if ctx.In.JustPressed(input.Down) {
		dropOff(ctx)
	}
}

type ladderState struct{}

func (ladderState) Name() string { return "on ladder" }
func (ladderState) HandleInput(ctx *stateContext) {
	ctx.Out.XVel = 0
	ctx.Out.YVel = ctx.In.Stick.Y * ctx.Params.ClimbSpeed
	if !ctx.In.JustPressed(input.Jump) {
		return
	}
	if ctx.In.Stick.X != 0 {
		ctx.Out.State = InAir
		ctx.Out.XVel = ctx.In.Stick.X * ctx.Params.MoveSpeed
		ctx.Out.YVel = ctx.Params.LeapSpeed
		return
	}
	dropOff(ctx)
}

// walk gives ground states full horizontal authority and no vertical motion.
func walk(ctx *stateContext) {
	ctx.Out.XVel = ctx.In.Stick.X * ctx.Params.MoveSpeed
	ctx.Out.YVel = 0
}

func jump(ctx *stateContext) bool {
	if !ctx.In.JustPressed(input.Jump) {
		return false
	}
	ctx.Out.State = InAir
	ctx.Out.YVel = ctx.Params.JumpSpeed
	return true
}

func dropOff(ctx *stateContext) {
	ctx.Out.State = InAir
	ctx.Out.YVel = -ctx.Params.DropNudge
	ctx.Out.DropDown = true
}
