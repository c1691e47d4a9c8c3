package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored values in bytes; racer names and state labels fit well under it
const MaxStringLen = 32

// AtomicString publishes short labels such as the current leader. The zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store truncates val to at most MaxStringLen bytes without splitting a rune
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	p := s.ptr.Load()
	if p == nil {
		return ""
	}
	return *p
}
