package system

import (
	"math/rand/v2"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
	"github.com/elgoog577215-beep/skyfall/input"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

const dt60 = 1.0 / 60.0

// recorder captures every published event in order
type recorder struct {
	events []event.GameEvent
}

func (r *recorder) HandleEvent(ev event.GameEvent) { r.events = append(r.events, ev) }

func (r *recorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileFired,
		event.EventObstacleHit,
		event.EventObstacleDestroyed,
		event.EventPlayerDamaged,
	}
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func newBus() (*event.Bus, *recorder) {
	bus := event.NewBus()
	rec := &recorder{}
	bus.Subscribe(rec)
	return bus, rec
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// singleArchetype returns a table with one obstacle of the given default archetype
func singleArchetype(kind component.Kind) []component.Archetype {
	for _, a := range component.DefaultArchetypes() {
		if a.Kind == kind {
			a.Population = 1
			return []component.Archetype{a}
		}
	}
	return nil
}

// place moves the only obstacle of a single-obstacle field
func place(f *ObstacleField, pos vmath.Vec3) *component.Obstacle {
	var target *component.Obstacle
	f.Each(func(o *component.Obstacle) {
		if target == nil {
			target = o
		}
	})
	target.Position = pos
	return target
}

// heldActions is a fixed ActionSource
type heldActions input.ActionSet

func (h heldActions) Actions() input.ActionSet { return input.ActionSet(h) }

func hold(actions ...input.Action) heldActions {
	var s input.ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return heldActions(s)
}
