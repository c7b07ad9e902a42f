package event

// EventType represents the type of game event
type EventType int

const (
	// EventProjectileFired reports a shot leaving the player
	// Trigger: ProjectileSystem.Fire | Consumer: audio | Payload: *ProjectileFiredPayload
	EventProjectileFired EventType = iota

	// EventObstacleHit reports a projectile hit that did not destroy the obstacle
	// Trigger: ObstacleField.TestHit | Consumer: EffectSystem, audio | Payload: *ObstacleHitPayload
	EventObstacleHit

	// EventObstacleDestroyed reports an obstacle destroyed by projectiles
	// Trigger: ObstacleField.TestHit | Consumer: Simulation (score), EffectSystem, audio
	// Payload: *ObstacleDestroyedPayload
	EventObstacleDestroyed

	// EventPlayerDamaged reports an obstacle contact with the player
	// Trigger: ObstacleField.TestPlayerCollision | Consumer: Simulation (health), EffectSystem, audio
	// Payload: *PlayerDamagedPayload
	EventPlayerDamaged

	// EventPlayerDestroyed reports the transition to the terminal state
	// Trigger: Simulation.Tick | Consumer: record writer, audio | Payload: *PlayerDestroyedPayload
	EventPlayerDestroyed

	// EventRunRestarted reports a restart after the run state was reinitialized
	// Trigger: Simulation.Restart | Consumer: audio, hosts | Payload: *RunRestartedPayload
	EventRunRestarted

	eventTypeCount
)

var typeNames = [eventTypeCount]string{
	"projectile_fired",
	"obstacle_hit",
	"obstacle_destroyed",
	"player_damaged",
	"player_destroyed",
	"run_restarted",
}

// String returns the snake_case event name
func (t EventType) String() string {
	if t >= 0 && t < eventTypeCount {
		return typeNames[t]
	}
	return "unknown"
}

// GameEvent is a typed event with a pointer payload
type GameEvent struct {
	Type    EventType
	Payload any
}
