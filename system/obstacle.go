package system

import (
	"math/rand/v2"
	"slices"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/physics"
	"github.com/elgoog577215-beep/skyfall/pool"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

var (
	spawnMin   = vmath.Vec3{-parameter.SpawnHalfX, -parameter.SpawnHalfY, parameter.SpawnFarZ}
	spawnMax   = vmath.Vec3{parameter.SpawnHalfX, parameter.SpawnHalfY, parameter.SpawnNearZ}
	recycleMin = vmath.Vec3{-parameter.RecycleHalfX, -parameter.RecycleHalfY, parameter.RecycleFarZ}
	recycleMax = vmath.Vec3{parameter.RecycleHalfX, parameter.RecycleHalfY, parameter.RecycleNearZ}
	spinMax    = vmath.Vec3{parameter.MaxSpinRadSec, parameter.MaxSpinRadSec, 0} // Tumble only, no roll
)

// ObstacleField owns the obstacle population
// Obstacles are never released: destruction and passing the player both recycle the
// slot to a new far position, so the population per archetype is constant
type ObstacleField struct {
	archetypes []component.Archetype
	pool       *pool.Pool[component.Obstacle]
	layout     []component.Obstacle // Initial placement, reapplied by Restore

	bus *event.Bus
	rng *rand.Rand

	recycled uint64
}

// NewObstacleField populates the field from the archetype table
// rng drives both the initial layout and recycle positions
func NewObstacleField(archetypes []component.Archetype, bus *event.Bus, rng *rand.Rand) *ObstacleField {
	f := &ObstacleField{
		archetypes: slices.Clone(archetypes),
		bus:        bus,
		rng:        rng,
	}

	total := 0
	for _, a := range f.archetypes {
		total += a.Population
	}
	f.pool = pool.New[component.Obstacle](total)

	f.layout = make([]component.Obstacle, 0, total)
	for i := range f.archetypes {
		arch := &f.archetypes[i]
		for range arch.Population {
			f.layout = append(f.layout, component.Obstacle{
				Archetype: arch,
				Position:  vmath.RandomIn(rng, spawnMin, spawnMax),
				Rotation:  vmath.Vec3{rng.Float64(), rng.Float64(), 0},
				Spin:      vmath.RandomIn(rng, vmath.Vec3{}, spinMax),
				HP:        arch.HP,
			})
		}
	}

	f.Restore()
	return f
}

func (f *ObstacleField) Name() string { return "obstacle" }

// Restore reapplies the initial layout with full hit points
func (f *ObstacleField) Restore() {
	f.pool.ReleaseAll()
	for _, o := range f.layout {
		_, slot, ok := f.pool.Acquire()
		if !ok {
			break
		}
		*slot = o
	}
	f.recycled = 0
}

// Advance moves every obstacle toward the player at forwardSpeed
// Homing archetypes drift toward playerPos inside the tracking band; obstacles past
// the recycle boundary are repositioned without any event
func (f *ObstacleField) Advance(dt float64, playerPos vmath.Vec3, forwardSpeed float64) {
	f.pool.Each(func(_ int, o *component.Obstacle) {
		o.Position[2] += forwardSpeed * dt

		if o.Archetype.Homing {
			physics.ApplyHoming(&o.Position, playerPos, &physics.HazardHoming, dt)
		}

		o.Rotation = o.Rotation.Add(o.Spin.Mul(dt))

		if o.Position[2] > parameter.RecycleDepth {
			f.recycle(o)
		}
	})
}

// TestHit checks point against obstacles inside the hit band, first match in slot order wins
// A hit costs one hit point; at zero the obstacle is destroyed (score event) and recycled
func (f *ObstacleField) TestHit(point vmath.Vec3, radius float64) (component.Kind, bool) {
	for i := range f.pool.Cap() {
		o, ok := f.pool.Get(i)
		if !ok || !physics.HitBand.Contains(o.Position[2]) {
			continue
		}
		if !physics.SpheresOverlap(o.Position, o.Archetype.Radius, point, radius) {
			continue
		}

		o.HP--
		kind := o.Archetype.Kind
		pos := o.Position

		if o.HP <= 0 {
			score := o.Archetype.Score
			f.recycle(o)
			f.bus.Publish(event.GameEvent{
				Type:    event.EventObstacleDestroyed,
				Payload: &event.ObstacleDestroyedPayload{Kind: kind, Position: pos, Score: score},
			})
		} else {
			f.bus.Publish(event.GameEvent{
				Type:    event.EventObstacleHit,
				Payload: &event.ObstacleHitPayload{Kind: kind, Position: pos, Remaining: o.HP},
			})
		}
		return kind, true
	}
	return 0, false
}

// TestPlayerCollision recycles every obstacle in the player band touching the player
// Contact always removes the obstacle regardless of hit points and awards no score
// Returns the summed damage of this call
func (f *ObstacleField) TestPlayerCollision(playerPos vmath.Vec3, playerRadius float64) (float64, bool) {
	var damage float64
	f.pool.Each(func(_ int, o *component.Obstacle) {
		if !physics.PlayerBand.Contains(o.Position[2]) {
			return
		}
		if !physics.SpheresOverlap(o.Position, o.Archetype.Radius, playerPos, playerRadius) {
			return
		}

		kind, pos := o.Archetype.Kind, o.Position
		f.recycle(o)
		damage += parameter.CollisionDamage

		f.bus.Publish(event.GameEvent{
			Type:    event.EventPlayerDamaged,
			Payload: &event.PlayerDamagedPayload{Kind: kind, Position: pos, Damage: parameter.CollisionDamage},
		})
	})
	return damage, damage > 0
}

func (f *ObstacleField) recycle(o *component.Obstacle) {
	o.HP = o.Archetype.HP
	o.Position = vmath.RandomIn(f.rng, recycleMin, recycleMax)
	f.recycled++
}

// Counts returns active obstacles per archetype
func (f *ObstacleField) Counts() [component.KindCount]int {
	var counts [component.KindCount]int
	f.pool.Each(func(_ int, o *component.Obstacle) {
		if o.Archetype.Kind < component.KindCount {
			counts[o.Archetype.Kind]++
		}
	})
	return counts
}

// Each visits active obstacles in slot order, fn must not retain o
func (f *ObstacleField) Each(fn func(o *component.Obstacle)) {
	f.pool.Each(func(_ int, o *component.Obstacle) { fn(o) })
}

// Archetypes returns the archetype table in use
func (f *ObstacleField) Archetypes() []component.Archetype {
	return slices.Clone(f.archetypes)
}

func (f *ObstacleField) Len() int         { return f.pool.Len() }
func (f *ObstacleField) Cap() int         { return f.pool.Cap() }
func (f *ObstacleField) Recycled() uint64 { return f.recycled }
