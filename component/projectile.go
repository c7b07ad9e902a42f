package component

import "github.com/elgoog577215-beep/skyfall/vmath"

// Projectile is a pooled linear shot
type Projectile struct {
	Position vmath.Vec3
	Velocity vmath.Vec3 // Direction scaled to ProjectileSpeed
}
