package component

import (
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// Player is the singleton aircraft state
// Bank and Pitch are derived from Velocity each tick and are purely cosmetic
type Player struct {
	Position vmath.Vec3
	Velocity vmath.Vec3
	Bank     float64 // Roll in radians, negative when moving right
	Pitch    float64

	Boost    float64 // Energy in [0, BoostMax]
	Boosting bool    // True when boosted speed applied this tick
	Speed    float64 // Forward speed applied this tick

	Health float64 // In [0, HealthMax]
	Alive  bool
}

// NewPlayer returns a player at the origin with full boost and health
func NewPlayer() Player {
	return Player{
		Boost:  parameter.BoostMax,
		Speed:  parameter.ForwardSpeedBase,
		Health: parameter.HealthMax,
		Alive:  true,
	}
}
