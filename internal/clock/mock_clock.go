package clock

import (
	"sync"
	"time"
)

// MockClock is a Clock that only moves when told to, or by a fixed step per read.
type MockClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewMockClock creates a MockClock starting at the given time. Every call
// to Now advances it by step, which may be zero.
func NewMockClock(start time.Time, step time.Duration) *MockClock {
	return &MockClock{now: start, step: step}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
