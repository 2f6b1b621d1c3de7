package game

import (
	"time"

	"chainmail/internal/letter"
	"chainmail/internal/reveal"
)

// Snapshot is a copy of everything presentation reads. It shares no memory
// with the session.
type Snapshot struct {
	State      State
	Round      int
	Letter     *letter.Letter
	Reveal     reveal.State
	Remaining  time.Duration
	TimeLimit  time.Duration
	Transition float64
	Words      []FieldWord
	PoolSize   int
	Prompt     string
	Stats      Statistics
	Debug      bool
	Sound      bool
	Scroll     int
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Round:      s.round,
		Reveal:     s.reveal,
		Remaining:  s.countdown.Remaining(),
		TimeLimit:  s.countdown.Total,
		Transition: s.transition.Progress(),
		Words:      s.field.Words(),
		Prompt:     s.prompt.String(),
		Stats:      s.stats,
		Debug:      s.debug,
		Sound:      s.sound,
		Scroll:     s.scroll,
	}
	if s.letter != nil {
		snap.Letter = copyLetter(s.letter)
	}
	if s.pool != nil {
		snap.PoolSize = s.pool.Len()
	}
	return snap
}

func copyLetter(l *letter.Letter) *letter.Letter {
	c := *l
	c.Blessings = append([]letter.Testimonial(nil), l.Blessings...)
	c.Curses = append([]letter.Testimonial(nil), l.Curses...)
	c.Decoys = append([]string(nil), l.Decoys...)
	return &c
}
