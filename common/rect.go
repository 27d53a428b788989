package common

// Rect is an axis-aligned box in world meters with Y growing upward.
// X, Y is the bottom-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Right() float64 { return r.X + r.W }

func (r Rect) Top() float64 { return r.Y + r.H }

func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Intersects reports whether r and other overlap on both axes.
func (r Rect) Intersects(other Rect) bool {
	return XOverlap(r, other) && YOverlap(r, other)
}

// XOverlap reports whether the horizontal extents of a and b intersect.
// Touching edges do not overlap.
func XOverlap(a, b Rect) bool {
	return a.X+a.W > b.X && a.X < b.X+b.W
}

// YOverlap reports whether the vertical extents of a and b intersect.
// Touching edges do not overlap.
func YOverlap(a, b Rect) bool {
	return a.Y+a.H > b.Y && a.Y < b.Y+b.H
}

// IsAbove reports whether a's bottom edge is at or above b's top.
func IsAbove(a, b Rect) bool {
	return a.Y >= b.Y+b.H
}

// IsBelowTop reports whether a's bottom edge is under b's top plane.
func IsBelowTop(a, b Rect) bool {
	return a.Y < b.Y+b.H
}

// IsBelowBottom reports whether a's bottom edge is under b's bottom plane.
func IsBelowBottom(a, b Rect) bool {
	return a.Y < b.Y
}

// StandingOn reports whether a's bottom edge sits exactly on b's top.
func StandingOn(a, b Rect) bool {
	return a.Y == b.Y+b.H
}
