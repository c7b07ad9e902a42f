package physics

import (
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// HomingProfile defines position-blend homing inside a depth band
// Homing entities drift laterally toward the target while their Z stays on the approach track
type HomingProfile struct {
	Rate float64 // Per-second interpolation rate toward target
	Far  float64 // Band start (exclusive), more negative Z
	Near float64 // Band end (exclusive)
}

// InBand reports whether depth z lies strictly inside the profile band
func (p *HomingProfile) InBand(z float64) bool {
	return z > p.Far && z < p.Near
}

// ApplyHoming blends pos X/Y toward target when pos is inside the band
// Returns true if homing was applied
func ApplyHoming(pos *vmath.Vec3, target vmath.Vec3, profile *HomingProfile, dt float64) bool {
	if !profile.InBand(pos[2]) {
		return false
	}
	t := vmath.Saturate(profile.Rate * dt)
	pos[0] = vmath.Lerp(pos[0], target[0], t)
	pos[1] = vmath.Lerp(pos[1], target[1], t)
	return true
}
