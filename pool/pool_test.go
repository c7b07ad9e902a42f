package pool

import (
	"testing"
)

type payload struct {
	id int
}

func TestAcquireLowestIndexFirst(t *testing.T) {
	p := New[payload](4)

	for want := 0; want < 4; want++ {
		idx, v, ok := p.Acquire()
		if !ok {
			t.Fatalf("Acquire %d failed on non-full pool", want)
		}
		if idx != want {
			t.Errorf("Expected index %d, got %d", want, idx)
		}
		v.id = want
	}

	if p.Len() != 4 {
		t.Errorf("Expected 4 active, got %d", p.Len())
	}
}

func TestAcquireSaturatedDrops(t *testing.T) {
	p := New[payload](2)
	p.Acquire()
	p.Acquire()

	for i := 0; i < 10; i++ {
		idx, v, ok := p.Acquire()
		if ok || v != nil || idx != -1 {
			t.Fatalf("Expected drop on saturated pool, got idx=%d ok=%v", idx, ok)
		}
	}

	if p.Len() != p.Cap() {
		t.Errorf("Active count %d exceeds or misses capacity %d", p.Len(), p.Cap())
	}
	if p.Dropped() != 10 {
		t.Errorf("Expected 10 dropped, got %d", p.Dropped())
	}
}

func TestAcquireZeroesPayload(t *testing.T) {
	p := New[payload](1)
	idx, v, _ := p.Acquire()
	v.id = 42
	p.Release(idx)

	_, v, ok := p.Acquire()
	if !ok {
		t.Fatal("Acquire after release failed")
	}
	if v.id != 0 {
		t.Errorf("Expected zeroed payload, got id=%d", v.id)
	}
}

func TestReleaseReusesSlot(t *testing.T) {
	p := New[payload](3)
	p.Acquire()
	mid, _, _ := p.Acquire()
	p.Acquire()

	p.Release(mid)
	p.Release(mid) // double release is ignored
	p.Release(-1)
	p.Release(99)

	if p.Len() != 2 {
		t.Fatalf("Expected 2 active after release, got %d", p.Len())
	}

	idx, _, ok := p.Acquire()
	if !ok || idx != mid {
		t.Errorf("Expected reuse of slot %d, got %d (ok=%v)", mid, idx, ok)
	}
}

func TestEachSkipsInactive(t *testing.T) {
	p := New[payload](5)
	for i := 0; i < 5; i++ {
		_, v, _ := p.Acquire()
		v.id = i
	}
	p.Release(1)
	p.Release(3)

	var seen []int
	p.Each(func(idx int, v *payload) {
		seen = append(seen, v.id)
	})

	want := []int{0, 2, 4}
	if len(seen) != len(want) {
		t.Fatalf("Expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], seen[i])
		}
	}
}

func TestEachAllowsReleaseOfVisited(t *testing.T) {
	p := New[payload](4)
	for i := 0; i < 4; i++ {
		_, v, _ := p.Acquire()
		v.id = i
	}

	p.Each(func(idx int, v *payload) {
		if v.id%2 == 0 {
			p.Release(idx)
		}
	})

	if p.Len() != 2 {
		t.Errorf("Expected 2 active, got %d", p.Len())
	}
	if _, ok := p.Get(0); ok {
		t.Error("Slot 0 should be inactive")
	}
	if v, ok := p.Get(1); !ok || v.id != 1 {
		t.Error("Slot 1 should stay active")
	}
}

func TestReleaseIfAndReleaseAll(t *testing.T) {
	p := New[payload](6)
	for i := 0; i < 6; i++ {
		_, v, _ := p.Acquire()
		v.id = i
	}

	n := p.ReleaseIf(func(v *payload) bool { return v.id >= 4 })
	if n != 2 || p.Len() != 4 {
		t.Errorf("ReleaseIf: released=%d active=%d", n, p.Len())
	}

	p.ReleaseAll()
	if p.Len() != 0 {
		t.Errorf("Expected empty pool, got %d active", p.Len())
	}

	idx, _, ok := p.Acquire()
	if !ok || idx != 0 {
		t.Errorf("Expected fresh pool to hand out slot 0, got %d", idx)
	}
}

func TestActiveNeverExceedsCapacity(t *testing.T) {
	p := New[payload](16)
	active := make(map[int]bool)

	// Deterministic churn: acquire bursts larger than capacity, release every third
	for round := 0; round < 100; round++ {
		for i := 0; i < 7; i++ {
			if idx, _, ok := p.Acquire(); ok {
				active[idx] = true
			}
		}
		for idx := range active {
			if (idx+round)%3 == 0 {
				p.Release(idx)
				delete(active, idx)
			}
		}
		if p.Len() > p.Cap() {
			t.Fatalf("Round %d: active %d > capacity %d", round, p.Len(), p.Cap())
		}
		if p.Len() != len(active) {
			t.Fatalf("Round %d: Len %d disagrees with tracked %d", round, p.Len(), len(active))
		}
	}
}

func TestZeroCapacity(t *testing.T) {
	p := New[payload](0)
	if _, _, ok := p.Acquire(); ok {
		t.Error("Zero-capacity pool must never hand out slots")
	}
	p.Each(func(int, *payload) { t.Error("Each visited a slot in empty pool") })
}
