package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// ProjectileFiredPayload carries the origin and unit direction of a new shot
type ProjectileFiredPayload struct {
	Origin    vmath.Vec3
	Direction vmath.Vec3
}

// ObstacleHitPayload carries a non-lethal projectile hit
type ObstacleHitPayload struct {
	Kind      component.Kind
	Position  vmath.Vec3
	Remaining int
}

// ObstacleDestroyedPayload carries a destruction by projectiles and its score award
type ObstacleDestroyedPayload struct {
	Kind     component.Kind
	Position vmath.Vec3
	Score    int64
}

// PlayerDamagedPayload carries an obstacle contact
type PlayerDamagedPayload struct {
	Kind     component.Kind
	Position vmath.Vec3
	Damage   float64
}

// RunSummary is the final-score record of one run
type RunSummary struct {
	ID         uuid.UUID
	Score      int64
	Destroyed  [component.KindCount]int
	Collisions int
	ShotsFired int
	Duration   time.Duration
	EndedAt    time.Time
}

// TotalDestroyed sums destroyed obstacles over every archetype
func (r RunSummary) TotalDestroyed() int {
	n := 0
	for _, c := range r.Destroyed {
		n += c
	}
	return n
}

// PlayerDestroyedPayload carries the summary of the run that just ended
type PlayerDestroyedPayload struct {
	Summary RunSummary
}

// RunRestartedPayload identifies the fresh run
type RunRestartedPayload struct {
	ID uuid.UUID
}
