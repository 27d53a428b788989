package common

// Clamp bounds val to [lo, hi]. When hi < lo the result is lo.
func Clamp(val, lo, hi float64) float64 {
	if val > hi {
		val = hi
	}
	if val < lo {
		return lo
	}
	return val
}

// ClampInt bounds val to [lo, hi]. When hi < lo the result is lo.
func ClampInt(val, lo, hi int) int {
	if val > hi {
		val = hi
	}
	if val < lo {
		return lo
	}
	return val
}

// BoolToFloat returns 1 for true and 0 for false.
func BoolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
