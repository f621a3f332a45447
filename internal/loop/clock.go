// Package loop provides an explicit frame scheduler for running a game
// outside Bubble Tea, for example headless simulations.
package loop

import (
	"sync"
	"time"
)

// Clock abstracts wall time so the runner can be driven by tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers frame ticks. Stop releases it; no tick is delivered
// after Stop returns.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// NewTicker wraps time.NewTicker.
func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop() { s.t.Stop() }

// VirtualClock advances by exactly one interval every time a tick is
// read, without sleeping. It runs a simulation as fast as the CPU allows
// while keeping every frame the same length.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewVirtualClock creates a virtual clock starting at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the virtual time.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker returns a ticker that is always ready.
func (c *VirtualClock) NewTicker(d time.Duration) Ticker {
	return &virtualTicker{clock: c, interval: d}
}

func (c *VirtualClock) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type virtualTicker struct {
	clock    *VirtualClock
	interval time.Duration
	stopped  bool
}

// C returns a channel holding the next tick. A stopped ticker returns a
// nil channel, which blocks forever.
func (t *virtualTicker) C() <-chan time.Time {
	if t.stopped {
		return nil
	}
	ch := make(chan time.Time, 1)
	ch <- t.clock.advance(t.interval)
	return ch
}

func (t *virtualTicker) Stop() { t.stopped = true }
