package letter

import (
	"fmt"
	"math/rand/v2"
)

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Sample returns a uniform value in [Min, Max].
func (r Range) Sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

func (r Range) validate(name string, min int) error {
	if r.Min < min {
		return fmt.Errorf("%s: min %d below %d", name, r.Min, min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s: max %d below min %d", name, r.Max, r.Min)
	}
	return nil
}

// Amounts are the per-letter sampling ranges.
type Amounts struct {
	Recipients Range `yaml:"recipients"`
	TimeLimit  Range `yaml:"time_limit"`
	Blessings  Range `yaml:"blessings"`
	Curses     Range `yaml:"curses"`
	Decoys     Range `yaml:"decoys"`
}

// DefaultAmounts returns the stock ranges.
func DefaultAmounts() Amounts {
	return Amounts{
		Recipients: Range{Min: 7, Max: 13},
		TimeLimit:  Range{Min: 40, Max: 60},
		Blessings:  Range{Min: 4, Max: 6},
		Curses:     Range{Min: 3, Max: 5},
		Decoys:     Range{Min: 8, Max: 12},
	}
}

// Validate rejects ranges that cannot produce a playable letter.
func (a Amounts) Validate() error {
	checks := []struct {
		name string
		r    Range
		min  int
	}{
		{"recipients", a.Recipients, 1},
		{"time_limit", a.TimeLimit, 1},
		{"blessings", a.Blessings, 1},
		{"curses", a.Curses, 0},
		{"decoys", a.Decoys, 0},
	}
	for _, c := range checks {
		if err := c.r.validate(c.name, c.min); err != nil {
			return err
		}
	}
	return nil
}
