// Package testfixtures provides deterministic stand-ins for the clock,
// ID generation and persistence used across service and transport tests.
package testfixtures

import (
	"sync"
	"time"
)

// ReferenceTime is a fixed instant tests can anchor date math on.
func ReferenceTime() time.Time {
	return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
}

// Clock is a manually controlled clock safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NowFunc returns a function suitable for injecting as a service clock.
func (c *Clock) NowFunc() func() time.Time {
	return c.Now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
