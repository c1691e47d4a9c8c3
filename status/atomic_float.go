package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat holds a float64 as its IEEE-754 bit pattern so readers on the
// server goroutine never contend with the session writer
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Peak stores v only if it exceeds the current value and reports the value held afterwards
func (f *AtomicFloat) Peak(v float64) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		if v <= cur {
			return cur
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}
