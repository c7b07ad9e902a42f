package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 stored as its bit pattern
// Zero value is ready to use (0.0)
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta and returns the new value
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// MaxTextLen bounds stored text, long enough for a canonical UUID
const MaxTextLen = 36

// Text is an atomic short string
// Zero value is ready to use (empty)
type Text struct {
	ptr atomic.Pointer[string]
}

// Set stores val truncated to MaxTextLen bytes
func (t *Text) Set(val string) {
	if len(val) > MaxTextLen {
		val = val[:MaxTextLen]
	}
	t.ptr.Store(&val)
}

func (t *Text) Get() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
