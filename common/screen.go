package common

// ScreenRect is a pixel rectangle with Y growing downward. X, Y is the top-left corner.
type ScreenRect struct {
	X, Y float64
	W, H float64
}

// Screen holds the world-to-pixel scale for the current window size.
type Screen struct {
	Width, Height int
	PxPerMeterX   float64
	PxPerMeterY   float64
}

// NewScreen fits a worldW x worldH meter world into a width x height pixel window.
func NewScreen(width, height int, worldW, worldH float64) Screen {
	s := Screen{Width: width, Height: height}
	if worldW > 0 {
		s.PxPerMeterX = float64(width) / worldW
	}
	if worldH > 0 {
		s.PxPerMeterY = float64(height) / worldH
	}
	return s
}

func (s Screen) ToScreen(r Rect) ScreenRect {
	return WorldRectToScreenRect(r, s.PxPerMeterX, s.PxPerMeterY, float64(s.Height))
}

func (s Screen) ToWorld(r ScreenRect) Rect {
	return ScreenRectToWorldRect(r, s.PxPerMeterX, s.PxPerMeterY, float64(s.Height))
}

// WorldRectToScreenRect converts a Y-up world rect to a Y-down screen rect.
func WorldRectToScreenRect(r Rect, pxPerMeterX, pxPerMeterY, screenHeight float64) ScreenRect {
	out := ScreenRect{
		X: r.X * pxPerMeterX,
		W: r.W * pxPerMeterX,
		H: r.H * pxPerMeterY,
	}
	out.Y = screenHeight - (r.Y*pxPerMeterY + out.H)
	return out
}

// ScreenRectToWorldRect inverts WorldRectToScreenRect for the same scale and screen height.
// A zero scale on an axis yields zero on that axis.
func ScreenRectToWorldRect(r ScreenRect, pxPerMeterX, pxPerMeterY, screenHeight float64) Rect {
	var out Rect
	if pxPerMeterX != 0 {
		out.X = r.X / pxPerMeterX
		out.W = r.W / pxPerMeterX
	}
	if pxPerMeterY != 0 {
		out.H = r.H / pxPerMeterY
		out.Y = (screenHeight - r.Y - r.H) / pxPerMeterY
	}
	return out
}
