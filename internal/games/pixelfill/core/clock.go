package core

import "time"

// Clock converts wall time into a count of due fixed-length ticks.
// The owner calls Due from its own scheduler; irregular calls are fine.
// At most maxPerPump ticks are reported per call, the rest stays in the
// backlog for later calls. Ticks are never dropped.
type Clock struct {
	step       time.Duration
	maxPerPump int
	last       time.Time
	backlog    time.Duration
	started    bool
}

// NewClock creates a clock with the given tick length and per-call cap.
func NewClock(step time.Duration, maxPerPump int) *Clock {
	if step <= 0 {
		step = 100 * time.Millisecond
	}
	if maxPerPump < 1 {
		maxPerPump = 1
	}
	return &Clock{step: step, maxPerPump: maxPerPump}
}

// Due records the time passed since the previous call and returns how many
// ticks should be applied now. The first call only starts the clock.
func (c *Clock) Due(now time.Time) int {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	if now.After(c.last) {
		c.backlog += now.Sub(c.last)
		c.last = now
	}

	due := int(c.backlog / c.step)
	if due > c.maxPerPump {
		due = c.maxPerPump
	}
	c.backlog -= time.Duration(due) * c.step
	return due
}

// Backlog returns the time not yet converted into ticks.
func (c *Clock) Backlog() time.Duration {
	return c.backlog
}

// Pending returns the number of whole ticks waiting in the backlog.
func (c *Clock) Pending() int {
	return int(c.backlog / c.step)
}

// Reset stops the clock; the next Due call starts it again.
func (c *Clock) Reset() {
	c.started = false
	c.backlog = 0
}
