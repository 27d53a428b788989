package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/physics"
)

// Cursor is the mouse position in window pixels and in world meters.
type Cursor struct {
	ScreenX, ScreenY int
	WorldX, WorldY   float64
}

// CursorAt converts a window pixel position into world meters.
func (r *Renderer) CursorAt(px, py int) Cursor {
	w := r.Screen.ToWorld(common.ScreenRect{X: float64(px), Y: float64(py)})
	return Cursor{ScreenX: px, ScreenY: py, WorldX: w.X, WorldY: w.Y}
}

// DebugText is the overlay: held buttons, buttons that changed this tick,
// position and velocity, the locomotion state and the mouse.
func DebugText(res physics.Result, in *input.Snapshot, cur Cursor) string {
	var held, changed []string
	if in != nil {
		for b := input.Button(0); b < input.ButtonCount; b++ {
			if in.Held(b) {
				held = append(held, b.String())
			}
			if in.Changed(b) {
				changed = append(changed, b.String())
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "input: %s\n", list(held))
	fmt.Fprintf(&sb, "input delta: %s\n", list(changed))
	if in != nil {
		fmt.Fprintf(&sb, "stick: %.2f, %.2f\n", in.Stick.X, in.Stick.Y)
	}
	fmt.Fprintf(&sb, "pos: %.3f, %.3f vel: %.3f, %.3f\n", res.Rect.X, res.Rect.Y, res.XVel, res.YVel)
	fmt.Fprintf(&sb, "state: %s occupied: %d tick: %d\n", res.State, len(res.Occupied), res.Tick)
	fmt.Fprintf(&sb, "mouse: world %.3f, %.3f screen %d, %d", cur.WorldX, cur.WorldY, cur.ScreenX, cur.ScreenY)
	return sb.String()
}

func list(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

// DebugPrintCorner prints one line in the bottom-left corner.
func DebugPrintCorner(dst *ebiten.Image, text string) {
	ebitenutil.DebugPrintAt(dst, text, 10, dst.Bounds().Dy()-20)
}
