package component

import "github.com/elgoog577215-beep/skyfall/vmath"

// Burst is one cosmetic particle of an impact effect
type Burst struct {
	Position vmath.Vec3
	Velocity vmath.Vec3
	Life     float64 // Normalized remaining lifetime, doubles as render scale
	Spin     float64 // Tumble angle in radians
}
