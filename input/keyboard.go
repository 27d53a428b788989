package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const stickDeadzone = 0.2

// Keyboard polls ebiten for WASD/arrow keys, Space (jump) and J (attack).
// When a standard gamepad is connected its left stick drives the snapshot
// directly and its face buttons add to jump/attack. Keys still steer any axis
// the stick leaves in its deadzone.
type Keyboard struct{}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func (k *Keyboard) Poll(s *Snapshot) {
	s.Set(Up, ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp))
	s.Set(Down, ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown))
	s.Set(Left, ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft))
	s.Set(Right, ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight))
	s.Set(Jump, ebiten.IsKeyPressed(ebiten.KeySpace))
	s.Set(Attack, ebiten.IsKeyPressed(ebiten.KeyJ))

	s.NativeAnalog = false
	gamepads := ebiten.GamepadIDs()
	if len(gamepads) == 0 {
		return
	}
	id := gamepads[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}

	s.NativeAnalog = true
	s.Stick.X = deadzone(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal))
	// ebiten reports stick Y positive down.
	s.Stick.Y = deadzone(-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical))

	// keep the digital flags meaningful for edge detection (drop-through, debug)
	if s.Stick.Y > 0 {
		s.Set(Up, true)
	} else if s.Stick.Y < 0 {
		s.Set(Down, true)
	}
	if s.Stick.X > 0 {
		s.Set(Right, true)
	} else if s.Stick.X < 0 {
		s.Set(Left, true)
	}

	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom) {
		s.Set(Jump, true)
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft) {
		s.Set(Attack, true)
	}
}

func deadzone(v float64) float64 {
	if math.Abs(v) <= stickDeadzone {
		return 0
	}
	return v
}
