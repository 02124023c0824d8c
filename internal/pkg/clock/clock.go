// Package clock provides wall time and simulation tick sources
package clock

import (
	"sync/atomic"
	"time"
)

// Clock provides wall-clock time
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed is a Clock that always reports the same instant
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant
func (c *Fixed) Now() time.Time {
	return c.At
}

// Ticks reports the current simulation tick. Lockouts and phase timers are
// expressed as the tick at which they expire.
type Ticks interface {
	Current() int64
}

// TickCounter is a monotonically increasing tick source advanced by the
// simulation loop. Reads are safe from any goroutine.
type TickCounter struct {
	n atomic.Int64
}

// NewTickCounter returns a counter starting at tick zero
func NewTickCounter() *TickCounter {
	return &TickCounter{}
}

// Current returns the current tick
func (c *TickCounter) Current() int64 {
	return c.n.Load()
}

// Advance moves the counter forward by one tick and returns the new value
func (c *TickCounter) Advance() int64 {
	return c.n.Add(1)
}

// AdvanceBy moves the counter forward by n ticks
func (c *TickCounter) AdvanceBy(n int64) int64 {
	if n <= 0 {
		return c.n.Load()
	}
	return c.n.Add(n)
}
