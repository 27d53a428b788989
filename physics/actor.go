package physics

import "github.com/milk9111/climber/common"

// Actor is the moving body. Position and velocity are in world meters.
type Actor struct {
	common.Rect
	XVel, YVel float64
	State      State
	// DropDown suppresses landing on transient surfaces for the rest of the
	// tick in which it was set.
	DropDown bool
}

// NewActor places a w x h actor at x, y, falling.
func NewActor(x, y, w, h float64) Actor {
	return Actor{Rect: common.Rect{X: x, Y: y, W: w, H: h}, State: InAir}
}
