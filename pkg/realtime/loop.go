package realtime

import (
	"context"
	"time"
)

// MaxStep caps the delta handed to a single step, so a stalled process does
// not fast-forward a round when it resumes.
const MaxStep = 250 * time.Millisecond

// Run drives step at a fixed interval on the calling goroutine until ctx is
// done. Messages from inbox are handled between steps on the same goroutine,
// so state touched by handle and step has a single owner and needs no lock.
// A nil inbox is allowed.
func Run[M any](ctx context.Context, interval time.Duration, inbox <-chan M, handle func(M), step func(delta time.Duration)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-inbox:
			handle(msg)
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			if delta > MaxStep {
				delta = MaxStep
			}
			if delta < 0 {
				delta = 0
			}
			step(delta)
		}
	}
}
