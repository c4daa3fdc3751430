// Package clock provides the monotonic time source shared by every timed
// effect in the simulation (arcs, wormhole delays, cutscenes, messages).
// Tests drive the simulation with a Manual clock.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time. Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock (time.Now carries a monotonic reading).
type Real struct{}

// Now returns the current wall time with its monotonic component.
func (Real) Now() time.Time {
	return time.Now()
}

// Manual is a controllable clock for tests and replays.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps to t. Moving backwards is ignored to keep the clock monotonic.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.After(m.now) {
		m.now = t
	}
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Compile-time checks.
var (
	_ Clock = Real{}
	_ Clock = (*Manual)(nil)
)
