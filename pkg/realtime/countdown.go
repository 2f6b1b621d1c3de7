package realtime

import "time"

// Countdown is a one-shot round timer advanced by explicit deltas. It holds
// no game state; the owner reacts when Tick reports expiry.
type Countdown struct {
	Total   time.Duration
	Elapsed time.Duration
}

// Reset rearms the countdown for total.
func (c *Countdown) Reset(total time.Duration) {
	c.Total = total
	c.Elapsed = 0
}

// Tick advances the countdown and reports whether this call made it expire.
// An expired countdown never reports expiry again until Reset.
func (c *Countdown) Tick(delta time.Duration) (expired bool) {
	if c.Finished() {
		return false
	}
	c.Elapsed += delta
	return c.Finished()
}

// Finished reports whether the countdown has run out.
func (c *Countdown) Finished() bool {
	return c.Elapsed >= c.Total
}

// Remaining returns the time left, never negative.
func (c *Countdown) Remaining() time.Duration {
	if c.Finished() {
		return 0
	}
	return c.Total - c.Elapsed
}

// FractionRemaining returns Remaining / Total in [0, 1].
func (c *Countdown) FractionRemaining() float64 {
	if c.Total <= 0 {
		return 0
	}
	return float64(c.Remaining()) / float64(c.Total)
}
