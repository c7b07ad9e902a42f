package system

import (
	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/physics"
	"github.com/elgoog577215-beep/skyfall/pool"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// HitTester resolves a projectile position against targets
type HitTester interface {
	TestHit(point vmath.Vec3, radius float64) (component.Kind, bool)
}

// ProjectileSystem manages linear shot lifecycle
// Shots travel in a straight line and retire on leaving the play volume or on their first hit
// Rate limiting is the caller's job; a saturated pool silently drops the shot
type ProjectileSystem struct {
	pool   *pool.Pool[component.Projectile]
	target HitTester
	bus    *event.Bus

	fired uint64
	hits  uint64
}

// NewProjectileSystem creates a system with capacity shot slots resolving hits against target
func NewProjectileSystem(capacity int, target HitTester, bus *event.Bus) *ProjectileSystem {
	return &ProjectileSystem{
		pool:   pool.New[component.Projectile](capacity),
		target: target,
		bus:    bus,
	}
}

func (s *ProjectileSystem) Name() string { return "projectile" }

// Fire spawns a shot slightly ahead of origin heading toward aim, or straight ahead when aim is nil
// Returns false when the pool is saturated
func (s *ProjectileSystem) Fire(origin vmath.Vec3, aim *vmath.Vec3) bool {
	_, p, ok := s.pool.Acquire()
	if !ok {
		return false
	}

	dir := vmath.Forward
	if aim != nil {
		if d := vmath.Normalize(aim.Sub(origin)); d != (vmath.Vec3{}) {
			dir = d
		}
	}

	p.Position = origin.Add(vmath.Forward.Mul(parameter.ProjectileSpawnOffset))
	p.Velocity = dir.Mul(parameter.ProjectileSpeed)
	s.fired++

	if s.bus != nil {
		s.bus.Publish(event.GameEvent{
			Type:    event.EventProjectileFired,
			Payload: &event.ProjectileFiredPayload{Origin: p.Position, Direction: dir},
		})
	}
	return true
}

// Advance moves every shot, retiring those out of the play volume or that hit an obstacle
// One shot damages at most one obstacle
func (s *ProjectileSystem) Advance(dt float64) {
	s.pool.Each(func(idx int, p *component.Projectile) {
		p.Position = physics.Integrate(p.Position, p.Velocity, dt)

		if physics.OutOfVolume(p.Position, parameter.ProjectileMaxDepth, parameter.ProjectileMaxLateral) {
			s.pool.Release(idx)
			return
		}

		if s.target == nil {
			return
		}
		if _, hit := s.target.TestHit(p.Position, parameter.ProjectileRadius); hit {
			s.hits++
			s.pool.Release(idx)
		}
	})
}

// Reset retires every shot and clears counters
func (s *ProjectileSystem) Reset() {
	s.pool.ReleaseAll()
	s.fired = 0
	s.hits = 0
}

// Each visits active shots in slot order
func (s *ProjectileSystem) Each(fn func(p *component.Projectile)) {
	s.pool.Each(func(_ int, p *component.Projectile) { fn(p) })
}

// Fired returns shots spawned since the last reset
func (s *ProjectileSystem) Fired() uint64 { return s.fired }

// Hits returns shots retired by a hit since the last reset
func (s *ProjectileSystem) Hits() uint64 { return s.hits }

func (s *ProjectileSystem) Len() int        { return s.pool.Len() }
func (s *ProjectileSystem) Cap() int        { return s.pool.Cap() }
func (s *ProjectileSystem) Dropped() uint64 { return s.pool.Dropped() }
