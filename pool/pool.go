// Package pool provides a fixed-capacity slot container for transient entities
//
// Capacity is set at construction and never grows: when every slot is active, Acquire
// reports failure and the caller drops the spawn. This bound is the simulation's load
// shedding, so saturation is counted rather than treated as an error
package pool

// Slot is one fixed entry of the pool
// An inactive slot's Value is stale and must not be read by callers
type Slot[T any] struct {
	Active bool
	Value  T
}

// Pool is a fixed-capacity set of reusable slots
// Not safe for concurrent use; owned by the simulation tick
type Pool[T any] struct {
	slots   []Slot[T]
	free    []int // Stack of inactive indices, top is the lowest index
	active  int
	dropped uint64
}

// New creates a pool with capacity slots, all inactive
func New[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		slots: make([]Slot[T], capacity),
		free:  make([]int, 0, capacity),
	}
	p.resetFree()
	return p
}

func (p *Pool[T]) resetFree() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
}

// Acquire activates a free slot and returns its index and payload
// The payload is zeroed. Returns ok=false when the pool is saturated
func (p *Pool[T]) Acquire() (int, *T, bool) {
	n := len(p.free)
	if n == 0 {
		p.dropped++
		return -1, nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]

	s := &p.slots[idx]
	var zero T
	s.Value = zero
	s.Active = true
	p.active++
	return idx, &s.Value, true
}

// Release deactivates slot idx, ignoring out-of-range or already inactive slots
func (p *Pool[T]) Release(idx int) {
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].Active {
		return
	}
	p.slots[idx].Active = false
	p.free = append(p.free, idx)
	p.active--
}

// ReleaseIf deactivates every active slot whose payload matches pred
// Returns the number of released slots
func (p *Pool[T]) ReleaseIf(pred func(*T) bool) int {
	released := 0
	for i := range p.slots {
		if p.slots[i].Active && pred(&p.slots[i].Value) {
			p.Release(i)
			released++
		}
	}
	return released
}

// ReleaseAll deactivates every slot
func (p *Pool[T]) ReleaseAll() {
	for i := range p.slots {
		p.slots[i].Active = false
	}
	p.active = 0
	p.resetFree()
}

// Each visits active slots in index order
// fn may release the visited slot; slots acquired during iteration may or may not be visited
func (p *Pool[T]) Each(fn func(idx int, v *T)) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(i, &p.slots[i].Value)
		}
	}
}

// Get returns the payload of slot idx if it is active
func (p *Pool[T]) Get(idx int) (*T, bool) {
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].Active {
		return nil, false
	}
	return &p.slots[idx].Value, true
}

// Len returns the number of active slots
func (p *Pool[T]) Len() int { return p.active }

// Cap returns the fixed capacity
func (p *Pool[T]) Cap() int { return len(p.slots) }

// Dropped returns the number of Acquire calls rejected because the pool was full
func (p *Pool[T]) Dropped() uint64 { return p.dropped }
