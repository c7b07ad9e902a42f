package physics

import (
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// Damp moves current toward target by rate·dt of the remaining distance
// The factor saturates at 1 so a long step lands on target instead of overshooting
func Damp(current, target, rate, dt float64) float64 {
	return vmath.Lerp(current, target, vmath.Saturate(rate*dt))
}

// Integrate advances pos by vel over dt seconds
func Integrate(pos, vel vmath.Vec3, dt float64) vmath.Vec3 {
	return pos.Add(vel.Mul(dt))
}

// ClampEnvelope limits X to ±halfX and Y to ±halfY, Z is untouched
// Returns true if pos was clamped
func ClampEnvelope(pos *vmath.Vec3, halfX, halfY float64) bool {
	x := vmath.Clamp(pos[0], -halfX, halfX)
	y := vmath.Clamp(pos[1], -halfY, halfY)
	clamped := x != pos[0] || y != pos[1]
	pos[0], pos[1] = x, y
	return clamped
}
