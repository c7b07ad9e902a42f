package system

import (
	"math/rand/v2"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/physics"
	"github.com/elgoog577215-beep/skyfall/pool"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

var (
	burstMin = vmath.Vec3{-parameter.BurstSpread / 2, -parameter.BurstSpread / 2, -parameter.BurstSpread / 2}
	burstMax = vmath.Vec3{parameter.BurstSpread / 2, parameter.BurstSpread / 2, parameter.BurstSpread / 2}
)

// EffectSystem runs cosmetic particle bursts
// Bursts never feed back into gameplay; it owns a separate random stream so its
// saturation or draw count cannot shift obstacle layouts
type EffectSystem struct {
	pool *pool.Pool[component.Burst]
	rng  *rand.Rand
}

// NewEffectSystem creates a system with capacity particle slots
func NewEffectSystem(capacity int, rng *rand.Rand) *EffectSystem {
	return &EffectSystem{
		pool: pool.New[component.Burst](capacity),
		rng:  rng,
	}
}

func (s *EffectSystem) Name() string { return "effect" }

func (s *EffectSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventObstacleDestroyed,
		event.EventObstacleHit,
		event.EventPlayerDamaged,
	}
}

func (s *EffectSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventObstacleDestroyed:
		if p, ok := ev.Payload.(*event.ObstacleDestroyedPayload); ok {
			s.SpawnBurst(p.Position, parameter.BurstDestroy)
		}
	case event.EventObstacleHit:
		if p, ok := ev.Payload.(*event.ObstacleHitPayload); ok {
			s.SpawnBurst(p.Position, parameter.BurstHit)
		}
	case event.EventPlayerDamaged:
		if p, ok := ev.Payload.(*event.PlayerDamagedPayload); ok {
			s.SpawnBurst(p.Position, parameter.BurstImpact)
		}
	}
}

// SpawnBurst acquires up to count particles at pos with random radial velocity and full life
// Returns the number actually spawned
func (s *EffectSystem) SpawnBurst(pos vmath.Vec3, count int) int {
	spawned := 0
	for range count {
		_, b, ok := s.pool.Acquire()
		if !ok {
			break
		}
		b.Position = pos
		b.Velocity = vmath.RandomIn(s.rng, burstMin, burstMax)
		b.Life = 1
		spawned++
	}
	return spawned
}

// Advance fades, moves and spins every particle, retiring those out of life
func (s *EffectSystem) Advance(dt float64) {
	s.pool.Each(func(idx int, b *component.Burst) {
		b.Life -= parameter.BurstFadeRate * dt
		if b.Life <= 0 {
			s.pool.Release(idx)
			return
		}
		b.Position = physics.Integrate(b.Position, b.Velocity, dt)
		b.Spin += parameter.BurstSpinRate * dt
	})
}

// Reset retires every particle
func (s *EffectSystem) Reset() {
	s.pool.ReleaseAll()
}

// Each visits active particles in slot order
func (s *EffectSystem) Each(fn func(b *component.Burst)) {
	s.pool.Each(func(_ int, b *component.Burst) { fn(b) })
}

func (s *EffectSystem) Len() int        { return s.pool.Len() }
func (s *EffectSystem) Cap() int        { return s.pool.Cap() }
func (s *EffectSystem) Dropped() uint64 { return s.pool.Dropped() }
