// Package reveal derives how much of a letter is visible from the time spent
// printing it. Every State is recomputed from the elapsed time alone, so
// advancing in one step or several lands on the same State.
package reveal

import (
	"unicode/utf8"

	"chainmail/internal/letter"
)

// Timing lays out the slots of the timeline, in milliseconds. Slots run end to
// end in letter order, each followed by Margin.
type Timing struct {
	Title       uint64 `yaml:"title_ms"`
	BodyPerChar uint64 `yaml:"body_per_char_ms"`
	Header      uint64 `yaml:"header_ms"`
	PerBlessing uint64 `yaml:"per_blessing_ms"`
	PerCurse    uint64 `yaml:"per_curse_ms"`
	SignoffChar uint64 `yaml:"signoff_per_char_ms"`
	Footer      uint64 `yaml:"footer_ms"`
	Finished    uint64 `yaml:"finished_ms"`
	Margin      uint64 `yaml:"margin_ms"`
}

// DefaultTiming returns the stock pacing.
func DefaultTiming() Timing {
	return Timing{
		Title:       600,
		BodyPerChar: 12,
		Header:      400,
		PerBlessing: 350,
		PerCurse:    350,
		SignoffChar: 20,
		Footer:      500,
		Finished:    800,
		Margin:      250,
	}
}

// Content is the shape of a letter as far as the timeline is concerned.
type Content struct {
	BodyLen    int
	Blessings  int
	Curses     int
	SignoffLen int
}

// ContentOf measures l. Text lengths are in runes.
func ContentOf(l *letter.Letter) Content {
	return Content{
		BodyLen:    utf8.RuneCountInString(l.Interpolated.Body),
		Blessings:  len(l.Blessings),
		Curses:     len(l.Curses),
		SignoffLen: utf8.RuneCountInString(l.Interpolated.Signoff),
	}
}

// State is the revealed portion of a letter at ElapsedMs.
type State struct {
	ElapsedMs       uint64 `json:"elapsed_ms"`
	Title           bool   `json:"title"`
	BodyChars       int    `json:"body_chars"`
	BlessingsHeader bool   `json:"blessings_header"`
	Blessings       int    `json:"blessings"`
	CursesHeader    bool   `json:"curses_header"`
	Curses          int    `json:"curses"`
	SignoffChars    int    `json:"signoff_chars"`
	Footer          bool   `json:"footer"`
	Finished        bool   `json:"finished"`
}

// Next advances prev by delta milliseconds.
func (t Timing) Next(prev State, deltaMs uint64, c Content) State {
	return t.At(prev.ElapsedMs+deltaMs, c)
}

// At computes the state at elapsed milliseconds.
func (t Timing) At(elapsed uint64, c Content) State {
	s := State{ElapsedMs: elapsed}
	var start uint64

	s.Title, start = t.flag(elapsed, start, t.Title)
	s.BodyChars, start = t.count(elapsed, start, t.BodyPerChar, c.BodyLen)
	s.BlessingsHeader, start = t.flag(elapsed, start, t.Header)
	s.Blessings, start = t.count(elapsed, start, t.PerBlessing, c.Blessings)
	s.CursesHeader, start = t.flag(elapsed, start, t.Header)
	s.Curses, start = t.count(elapsed, start, t.PerCurse, c.Curses)
	s.SignoffChars, start = t.count(elapsed, start, t.SignoffChar, c.SignoffLen)
	s.Footer, start = t.flag(elapsed, start, t.Footer)
	s.Finished, _ = t.flag(elapsed, start, t.Finished)
	return s
}

// Duration returns the elapsed time at which Finished becomes true.
func (t Timing) Duration(c Content) uint64 {
	var start uint64
	for _, d := range []uint64{
		t.Title,
		t.BodyPerChar * uint64(c.BodyLen),
		t.Header,
		t.PerBlessing * uint64(c.Blessings),
		t.Header,
		t.PerCurse * uint64(c.Curses),
		t.SignoffChar * uint64(c.SignoffLen),
		t.Footer,
	} {
		start += d + t.Margin
	}
	return start + t.Finished
}

// flag is true once the slot of length d starting at start has elapsed. It
// returns the start of the following slot.
func (t Timing) flag(elapsed, start, d uint64) (bool, uint64) {
	return elapsed >= start+d, start + d + t.Margin
}

// count reveals one unit every perUnit ms from start, up to n.
func (t Timing) count(elapsed, start, perUnit uint64, n int) (int, uint64) {
	next := start + perUnit*uint64(n) + t.Margin
	if elapsed < start {
		return 0, next
	}
	if perUnit == 0 {
		return n, next
	}
	v := (elapsed - start) / perUnit
	if v > uint64(n) {
		return n, next
	}
	return int(v), next
}
