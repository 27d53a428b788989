// Package input reduces raw per-frame button state to a Snapshot that the
// movement core reads once per tick.
package input

import "github.com/milk9111/climber/common"

type Button uint8

const (
	Up Button = iota
	Down
	Left
	Right
	Jump
	Attack

	ButtonCount
)

var buttonNames = [ButtonCount]string{"up", "down", "left", "right", "jump", "attack"}

func (b Button) String() string {
	if b >= ButtonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton maps a lowercase button name back to its Button.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// ButtonState is one tick of history for a single button.
type ButtonState struct {
	IsDown  bool
	WasDown bool
}

// Stick is an analog direction with each axis in [-1, 1]; Y is positive up.
type Stick struct {
	X, Y float64
}

// Snapshot is the input state consumed by one tick.
//
// WasDown always holds the previous tick's IsDown; BeginTick must run exactly
// once per tick before new state is applied.
type Snapshot struct {
	Buttons   [ButtonCount]ButtonState
	Stick     Stick
	PrevStick Stick
	// NativeAnalog is set when the source writes Stick directly (gamepad).
	// Axes it leaves at zero are still derived from the digital buttons.
	NativeAnalog bool
}

// Source writes the current button state into a snapshot.
type Source interface {
	Poll(s *Snapshot)
}

// BeginTick shifts the current state into history.
func (s *Snapshot) BeginTick() {
	for i := range s.Buttons {
		s.Buttons[i].WasDown = s.Buttons[i].IsDown
	}
	s.PrevStick = s.Stick
}

// Set records the down state of b for the current tick.
func (s *Snapshot) Set(b Button, down bool) {
	if b >= ButtonCount {
		return
	}
	s.Buttons[b].IsDown = down
}

// DeriveAnalog builds the stick from the digital direction buttons. With a
// native analog source only an axis resting at zero is derived, so keys still
// steer while a gamepad is connected.
func (s *Snapshot) DeriveAnalog() {
	x := common.BoolToFloat(s.Held(Right)) - common.BoolToFloat(s.Held(Left))
	y := common.BoolToFloat(s.Held(Up)) - common.BoolToFloat(s.Held(Down))
	if !s.NativeAnalog || s.Stick.X == 0 {
		s.Stick.X = x
	}
	if !s.NativeAnalog || s.Stick.Y == 0 {
		s.Stick.Y = y
	}
}

// Refresh runs one full tick of input: history shift, poll, stick derivation.
func (s *Snapshot) Refresh(src Source) {
	s.BeginTick()
	if src != nil {
		src.Poll(s)
	}
	s.DeriveAnalog()
}

func (s *Snapshot) Held(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	return s.Buttons[b].IsDown
}

func (s *Snapshot) JustPressed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	return s.Buttons[b].IsDown && !s.Buttons[b].WasDown
}

func (s *Snapshot) JustReleased(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	return !s.Buttons[b].IsDown && s.Buttons[b].WasDown
}

// Changed reports whether b flipped state this tick.
func (s *Snapshot) Changed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	return s.Buttons[b].IsDown != s.Buttons[b].WasDown
}

// VerticalJustChanged reports a fresh, nonzero vertical stick input. Only the
// direction counts, so an analog stick drifting within one direction is not a
// new press.
func (s *Snapshot) VerticalJustChanged() bool {
	return sign(s.Stick.Y) != sign(s.PrevStick.Y) && s.Stick.Y != 0
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
