package parameter

import "time"

// Simulation clock
const (
	// TickRate is the default number of simulation steps per second
	TickRate = 60

	// TickInterval is the wall-clock interval between steps at TickRate
	TickInterval = time.Second / TickRate

	// MaxTickDelta caps a single step so a stalled frame cannot tunnel entities through each other
	MaxTickDelta = 100 * time.Millisecond

	// CommandQueueSize bounds the inbox of externally posted commands, full inbox drops
	CommandQueueSize = 256
)

// Pool capacities
const (
	// ProjectilePoolSize is the number of projectile slots
	ProjectilePoolSize = 100

	// BurstPoolSize is the number of burst particle slots
	BurstPoolSize = 500
)
