package physics

// Params tunes the movement core. Speeds are meters per second, Gravity is
// meters per second squared (negative is down) and MaxDT is seconds.
type Params struct {
	MoveSpeed  float64
	Gravity    float64
	JumpSpeed  float64
	ClimbSpeed float64
	// LeapSpeed is the upward speed of a sideways jump off a ladder.
	LeapSpeed float64
	// DropNudge is the downward speed applied when leaving transient ground
	// on purpose, so the actor clears the surface within one tick.
	DropNudge float64
	// MaxDT bounds a single integration step after a stall.
	MaxDT float64
}

func DefaultParams() Params {
	return Params{
		MoveSpeed:  2.68224,
		Gravity:    -9.8,
		JumpSpeed:  6.0,
		ClimbSpeed: 2.68224,
		LeapSpeed:  3.0,
		DropNudge:  0.5,
		MaxDT:      0.05,
	}
}

func (p Params) clampDT(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	if p.MaxDT > 0 && dt > p.MaxDT {
		return p.MaxDT
	}
	return dt
}
