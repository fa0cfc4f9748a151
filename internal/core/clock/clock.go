package clock

import (
	"sync"
	"time"
)

// Source provides wall-clock readings to the run loop.
type Source interface {
	Now() time.Time
}

// Real reads the system monotonic clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Manual is a controllable Source for tests.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
