package system

import (
	"testing"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

func TestObstacleFieldInitialLayout(t *testing.T) {
	bus, _ := newBus()
	f := NewObstacleField(component.DefaultArchetypes(), bus, testRNG())

	counts := f.Counts()
	want := [component.KindCount]int{20, 10, 5, 3}
	if counts != want {
		t.Errorf("Expected counts %v, got %v", want, counts)
	}
	if f.Len() != 38 || f.Cap() != 38 {
		t.Errorf("Expected 38/38 slots, got %d/%d", f.Len(), f.Cap())
	}

	f.Each(func(o *component.Obstacle) {
		p := o.Position
		if p[0] < -parameter.SpawnHalfX || p[0] > parameter.SpawnHalfX ||
			p[1] < -parameter.SpawnHalfY || p[1] > parameter.SpawnHalfY ||
			p[2] < parameter.SpawnFarZ || p[2] > parameter.SpawnNearZ {
			t.Errorf("Obstacle %v outside the initial box", p)
		}
		if o.HP != o.Archetype.HP {
			t.Errorf("Expected full HP %d, got %d", o.Archetype.HP, o.HP)
		}
		if o.Spin[2] != 0 {
			t.Errorf("Obstacles should not roll, got spin %v", o.Spin)
		}
		for i := range 2 {
			if o.Spin[i] < 0 || o.Spin[i] > parameter.MaxSpinRadSec {
				t.Errorf("Spin %v outside [0, %v]", o.Spin, parameter.MaxSpinRadSec)
			}
		}
	})
}

func TestLightObstacleDestroyedByThreeHits(t *testing.T) {
	bus, rec := newBus()
	f := NewObstacleField(singleArchetype(component.KindLight), bus, testRNG())
	pos := vmath.Vec3{0, 0, -20}
	o := place(f, pos)

	for i := range 2 {
		kind, hit := f.TestHit(pos, parameter.ProjectileRadius)
		if !hit || kind != component.KindLight {
			t.Fatalf("Hit %d: expected light hit, got %v/%v", i+1, kind, hit)
		}
	}
	if o.HP != 1 {
		t.Fatalf("Expected 1 HP left, got %d", o.HP)
	}
	if rec.count(event.EventObstacleHit) != 2 || rec.count(event.EventObstacleDestroyed) != 0 {
		t.Fatalf("Expected 2 minor hits and no destroy, got %v", rec.events)
	}

	if _, hit := f.TestHit(pos, parameter.ProjectileRadius); !hit {
		t.Fatal("Third hit missed")
	}

	if n := rec.count(event.EventObstacleDestroyed); n != 1 {
		t.Fatalf("Expected exactly one destroy event, got %d", n)
	}
	last := rec.events[len(rec.events)-1]
	payload := last.Payload.(*event.ObstacleDestroyedPayload)
	if payload.Score != 100 || payload.Kind != component.KindLight || payload.Position != pos {
		t.Errorf("Unexpected destroy payload %+v", payload)
	}

	// Recycled far away with HP restored
	if o.HP != 3 {
		t.Errorf("Expected HP restored to 3, got %d", o.HP)
	}
	if o.Position[2] > parameter.RecycleNearZ || o.Position[2] < parameter.RecycleFarZ {
		t.Errorf("Expected recycle depth, got %v", o.Position)
	}
	if f.Counts()[component.KindLight] != 1 {
		t.Error("Population changed")
	}
}

func TestCollisionAfterHitsAwardsNoScore(t *testing.T) {
	bus, rec := newBus()
	f := NewObstacleField(singleArchetype(component.KindLight), bus, testRNG())
	o := place(f, vmath.Vec3{0, 0, -20})

	f.TestHit(o.Position, parameter.ProjectileRadius)
	f.TestHit(o.Position, parameter.ProjectileRadius)
	if o.HP != 1 {
		t.Fatalf("Expected 1 HP, got %d", o.HP)
	}

	o.Position = vmath.Vec3{0.5, 0, 0}
	damage, hit := f.TestPlayerCollision(vmath.Vec3{}, parameter.PlayerRadius)
	if !hit || damage != parameter.CollisionDamage {
		t.Fatalf("Expected collision damage %v, got %v/%v", parameter.CollisionDamage, damage, hit)
	}
	if rec.count(event.EventObstacleDestroyed) != 0 {
		t.Error("Collision must not award destroy score")
	}
	if rec.count(event.EventPlayerDamaged) != 1 {
		t.Errorf("Expected one damage event, got %d", rec.count(event.EventPlayerDamaged))
	}
	if o.HP != 3 || o.Position[2] > parameter.RecycleNearZ {
		t.Errorf("Expected recycled obstacle, got HP %d at %v", o.HP, o.Position)
	}
}

func TestHitIgnoresObstaclesOutsideBand(t *testing.T) {
	bus, rec := newBus()
	f := NewObstacleField(singleArchetype(component.KindHeavy), bus, testRNG())
	o := place(f, vmath.Vec3{0, 0, -90})

	if _, hit := f.TestHit(o.Position, parameter.ProjectileRadius); hit {
		t.Error("Hit registered beyond the hit band")
	}
	if o.HP != parameter.HeavyHP || len(rec.events) != 0 {
		t.Error("Miss must not change state")
	}

	// Touching distance is not a hit
	o.Position = vmath.Vec3{0, 0, -20}
	edge := vmath.Vec3{parameter.HeavyRadius + parameter.ProjectileRadius, 0, -20}
	if _, hit := f.TestHit(edge, parameter.ProjectileRadius); hit {
		t.Error("Exact radius sum must not hit")
	}
}

func TestPlayerCollisionOnlyInPlayerBand(t *testing.T) {
	bus, _ := newBus()
	f := NewObstacleField(singleArchetype(component.KindMedium), bus, testRNG())
	place(f, vmath.Vec3{0, 0, -3})

	if _, hit := f.TestPlayerCollision(vmath.Vec3{}, parameter.PlayerRadius); hit {
		t.Error("Collision registered outside the player band")
	}
}

func TestAdvanceRecyclesSilently(t *testing.T) {
	bus, rec := newBus()
	f := NewObstacleField(singleArchetype(component.KindLight), bus, testRNG())
	o := place(f, vmath.Vec3{40, 0, 9.5})
	o.HP = 2

	// Far from the player laterally: passes without contact
	f.Advance(0.1, vmath.Vec3{}, parameter.ForwardSpeedBase)

	if o.Position[2] > parameter.RecycleNearZ {
		t.Errorf("Expected recycle past the boundary, got %v", o.Position)
	}
	if o.HP != 3 {
		t.Errorf("Recycle must restore HP, got %d", o.HP)
	}
	if len(rec.events) != 0 {
		t.Errorf("Silent recycle published %v", rec.events)
	}
	if f.Recycled() != 1 {
		t.Errorf("Expected 1 recycle, got %d", f.Recycled())
	}
}

func TestAdvanceMovesAndSpins(t *testing.T) {
	bus, _ := newBus()
	f := NewObstacleField(singleArchetype(component.KindLight), bus, testRNG())
	o := place(f, vmath.Vec3{5, 5, -100})
	o.Spin = vmath.Vec3{1, 0.5, 0}
	o.Rotation = vmath.Vec3{}

	f.Advance(0.5, vmath.Vec3{}, 20)

	if o.Position != (vmath.Vec3{5, 5, -90}) {
		t.Errorf("Expected straight approach, got %v", o.Position)
	}
	if o.Rotation != (vmath.Vec3{0.5, 0.25, 0}) {
		t.Errorf("Expected spin applied, got %v", o.Rotation)
	}
}

func TestHazardHomesInsideTrackingBand(t *testing.T) {
	bus, _ := newBus()
	f := NewObstacleField(singleArchetype(component.KindHazard), bus, testRNG())
	player := vmath.Vec3{10, -4, 0}

	o := place(f, vmath.Vec3{0, 0, -100})
	f.Advance(0.1, player, 0)
	if o.Position[0] != 0 || o.Position[1] != 0 {
		t.Errorf("Hazard homed outside the band: %v", o.Position)
	}

	o.Position = vmath.Vec3{0, 0, -30}
	f.Advance(0.1, player, 0)
	if o.Position[0] <= 0 || o.Position[1] >= 0 {
		t.Errorf("Hazard should drift toward the player, got %v", o.Position)
	}

	// Non-homing archetypes keep their line
	light := NewObstacleField(singleArchetype(component.KindLight), bus, testRNG())
	lo := place(light, vmath.Vec3{0, 0, -30})
	light.Advance(0.1, player, 0)
	if lo.Position[0] != 0 || lo.Position[1] != 0 {
		t.Errorf("Light obstacle homed: %v", lo.Position)
	}
}

func TestRestoreReappliesInitialLayout(t *testing.T) {
	bus, _ := newBus()
	f := NewObstacleField(component.DefaultArchetypes(), bus, testRNG())

	var before []vmath.Vec3
	f.Each(func(o *component.Obstacle) { before = append(before, o.Position) })

	for range 600 {
		f.Advance(dt60, vmath.Vec3{}, parameter.ForwardSpeedBoost)
	}
	f.Each(func(o *component.Obstacle) { o.HP = 1 })

	f.Restore()

	i := 0
	f.Each(func(o *component.Obstacle) {
		if o.Position != before[i] {
			t.Errorf("Slot %d: expected %v, got %v", i, before[i], o.Position)
		}
		if o.HP != o.Archetype.HP {
			t.Errorf("Slot %d: HP not restored", i)
		}
		i++
	})
	if f.Counts() != [component.KindCount]int{20, 10, 5, 3} {
		t.Errorf("Population changed after restore: %v", f.Counts())
	}
}

func TestHPNeverIncreasesBetweenRecycles(t *testing.T) {
	bus, _ := newBus()
	f := NewObstacleField(component.DefaultArchetypes(), bus, testRNG())
	rng := testRNG()

	last := make(map[*component.Obstacle]int)
	lastRecycled := f.Recycled()
	for range 2000 {
		f.Advance(dt60, vmath.Vec3{}, parameter.ForwardSpeedBoost)
		p := vmath.RandomIn(rng, vmath.Vec3{-25, -15, -80}, vmath.Vec3{25, 15, 10})
		f.TestHit(p, 3)

		recycled := f.Recycled() != lastRecycled
		lastRecycled = f.Recycled()
		f.Each(func(o *component.Obstacle) {
			if prev, ok := last[o]; ok && o.HP > prev && !recycled {
				t.Fatalf("HP increased from %d to %d without a recycle", prev, o.HP)
			}
			if o.HP < 1 || o.HP > o.Archetype.HP {
				t.Fatalf("HP %d out of range", o.HP)
			}
			last[o] = o.HP
		})
	}
}
