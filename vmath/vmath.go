package vmath

// Lerp interpolates a toward b by t without clamping t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps t to [0, 1]
// Used for per-tick interpolation factors so a long frame cannot overshoot the target
func Saturate(t float64) float64 {
	return Clamp(t, 0, 1)
}
