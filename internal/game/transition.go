package game

import "time"

// Transition is the slide-in effect of a letter. It plays forward while a
// letter prints and backward while the round resets.
type Transition struct {
	Duration time.Duration
	Elapsed  time.Duration
	Reversed bool
}

// Start plays the transition forward from the beginning.
func (t *Transition) Start() {
	t.Elapsed = 0
	t.Reversed = false
}

// Reverse plays the transition backward from where it is.
func (t *Transition) Reverse() {
	t.Reversed = true
}

// Step advances the transition and reports whether it has completed in its
// current direction.
func (t *Transition) Step(delta time.Duration) bool {
	if t.Reversed {
		t.Elapsed -= delta
		if t.Elapsed <= 0 {
			t.Elapsed = 0
			return true
		}
		return false
	}
	t.Elapsed += delta
	if t.Elapsed >= t.Duration {
		t.Elapsed = t.Duration
		return true
	}
	return false
}

// Progress is 0 when hidden and 1 when fully in place.
func (t Transition) Progress() float64 {
	if t.Duration <= 0 {
		if t.Reversed {
			return 0
		}
		return 1
	}
	return float64(t.Elapsed) / float64(t.Duration)
}
