// Package render draws the tile world, the actor and the debug overlay.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/physics"
	"github.com/milk9111/climber/tilemap"
)

var (
	backgroundColor = colornames.Midnightblue
	gridColor       = color.RGBA{R: 105, G: 105, B: 105, A: 120}
	windowColor     = color.RGBA{R: 255, G: 215, B: 0, A: 200}
	occupiedColor   = colornames.Lime

	tileColors = [tilemap.TypeCount]color.Color{
		tilemap.TypePlatform: colornames.Saddlebrown,
		tilemap.TypeLadder:   colornames.Goldenrod,
	}
)

// Renderer maps world meters to window pixels and draws a frame.
type Renderer struct {
	Screen     common.Screen
	ActorColor color.Color
	ShowGrid   bool
	ShowDebug  bool
}

func New(width, height int, worldW, worldH float64) *Renderer {
	return &Renderer{
		Screen:     common.NewScreen(width, height, worldW, worldH),
		ActorColor: colornames.Crimson,
	}
}

// Resize refits the world to a new window size.
func (r *Renderer) Resize(width, height int, worldW, worldH float64) {
	r.Screen = common.NewScreen(width, height, worldW, worldH)
}

func (r *Renderer) Draw(dst *ebiten.Image, m *tilemap.Map, res physics.Result, in *input.Snapshot) {
	dst.Fill(backgroundColor)
	if m == nil {
		return
	}

	for _, t := range m.Tiles() {
		if t.Type == tilemap.TypeNone {
			continue
		}
		r.fill(dst, m.Hitbox(t.Coord), tileColors[t.Type])
	}

	if r.ShowGrid {
		for _, t := range m.Tiles() {
			r.stroke(dst, common.Rect{X: t.X, Y: t.Y, W: m.TileWidth, H: m.TileHeight}, gridColor)
		}
		r.stroke(dst, m.Bounds(res.Window), windowColor)
		for _, c := range res.Occupied {
			r.stroke(dst, m.Hitbox(c), occupiedColor)
		}
	}

	r.fill(dst, res.Rect, r.ActorColor)

	if r.ShowDebug {
		cur := r.CursorAt(ebiten.CursorPosition())
		ebitenutil.DebugPrintAt(dst, DebugText(res, in, cur), 10, 10)
	}
}

func (r *Renderer) fill(dst *ebiten.Image, rect common.Rect, clr color.Color) {
	s := r.Screen.ToScreen(rect)
	vector.FillRect(dst, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), clr, false)
}

func (r *Renderer) stroke(dst *ebiten.Image, rect common.Rect, clr color.Color) {
	s := r.Screen.ToScreen(rect)
	vector.StrokeRect(dst, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), 1, clr, false)
}
