// Package viewmodel projects game snapshots into the flat structs the web
// views and the terminal driver draw from.
package viewmodel

import (
	"strconv"
	"time"

	"chainmail/internal/game"
	"chainmail/internal/letter"
	"chainmail/internal/store"
)

// Testimonial is a revealed blessing or curse line.
type Testimonial struct {
	Message   string `json:"message"`
	Collected bool   `json:"collected"`
}

// Letter holds only the revealed part of the current letter.
type Letter struct {
	Title           string        `json:"title"`
	Body            string        `json:"body"`
	BlessingsHeader bool          `json:"blessings_header"`
	Blessings       []Testimonial `json:"blessings"`
	CursesHeader    bool          `json:"curses_header"`
	Curses          []Testimonial `json:"curses"`
	Signoff         string        `json:"signoff"`
	Footer          string        `json:"footer"`
	Recipients      int           `json:"recipients"`
	TimeLimit       int           `json:"time_limit"`
}

// Word is a word on the play field.
type Word struct {
	ID       int     `json:"id"`
	Text     string  `json:"text"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Session is everything drawn for one session.
type Session struct {
	ID          string  `json:"id"`
	State       string  `json:"state"`
	Round       int     `json:"round"`
	Letter      Letter  `json:"letter"`
	Words       []Word  `json:"words"`
	Prompt      string  `json:"prompt"`
	Score       int32   `json:"score"`
	Money       int32   `json:"money"`
	Income      int32   `json:"income"`
	RemainingMs int64   `json:"remaining_ms"`
	TimeLimitMs int64   `json:"time_limit_ms"`
	Transition  float64 `json:"transition"`
	PoolSize    int     `json:"pool_size"`
	Debug       bool    `json:"debug"`
	Sound       bool    `json:"sound"`
	Scroll      int     `json:"scroll"`
}

// RemainingSeconds rounds the countdown up to whole seconds.
func (s Session) RemainingSeconds() int {
	return int((time.Duration(s.RemainingMs)*time.Millisecond + time.Second - 1) / time.Second)
}

// HomePage holds data for the landing page.
type HomePage struct {
	Title    string
	Sessions int
	History  []RoundRow
}

// SessionPage holds data for the game page.
type SessionPage struct {
	Title   string
	Session Session
}

// RoundRow is one line of the round history.
type RoundRow struct {
	Session    string `json:"session"`
	Round      int    `json:"round"`
	Outcome    string `json:"outcome"`
	Blessings  string `json:"blessings"`
	Curses     string `json:"curses"`
	Score      int32  `json:"score"`
	Money      int32  `json:"money"`
	FinishedAt string `json:"finished_at"`
}

// FromSnapshot builds the session view. Only revealed text is included.
func FromSnapshot(id string, snap game.Snapshot) Session {
	v := Session{
		ID:          id,
		State:       snap.State.String(),
		Round:       snap.Round,
		Prompt:      snap.Prompt,
		Score:       snap.Stats.Score,
		Money:       snap.Stats.Money,
		Income:      snap.Stats.Income,
		RemainingMs: snap.Remaining.Milliseconds(),
		TimeLimitMs: snap.TimeLimit.Milliseconds(),
		Transition:  snap.Transition,
		PoolSize:    snap.PoolSize,
		Debug:       snap.Debug,
		Sound:       snap.Sound,
		Scroll:      snap.Scroll,
		Words:       make([]Word, 0, len(snap.Words)),
	}
	for _, w := range snap.Words {
		v.Words = append(v.Words, Word{
			ID:       w.ID,
			Text:     w.Entry.Word,
			Category: w.Entry.Category.String(),
			Color:    w.Entry.Hex(),
			X:        w.X,
			Y:        w.Y,
		})
	}
	if snap.Letter != nil {
		v.Letter = revealed(snap)
	}
	return v
}

func revealed(snap game.Snapshot) Letter {
	l, r := snap.Letter, snap.Reveal
	out := Letter{
		Body:            Prefix(l.Interpolated.Body, r.BodyChars),
		BlessingsHeader: r.BlessingsHeader,
		Blessings:       testimonials(l.Blessings, r.Blessings),
		CursesHeader:    r.CursesHeader,
		Curses:          testimonials(l.Curses, r.Curses),
		Signoff:         Prefix(l.Interpolated.Signoff, r.SignoffChars),
		Recipients:      l.Recipients,
		TimeLimit:       l.TimeLimit,
	}
	if r.Title {
		out.Title = l.Flavor.Title
	}
	if r.Footer {
		out.Footer = l.Flavor.Footer
	}
	return out
}

func testimonials(ts []letter.Testimonial, n int) []Testimonial {
	if n > len(ts) {
		n = len(ts)
	}
	out := make([]Testimonial, 0, n)
	for _, t := range ts[:n] {
		out = append(out, Testimonial{Message: t.Message, Collected: t.Collected})
	}
	return out
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// FromRounds builds history rows.
func FromRounds(results []store.RoundResult) []RoundRow {
	rows := make([]RoundRow, 0, len(results))
	for _, r := range results {
		outcome := "failed"
		if r.Cleared {
			outcome = "cleared"
		}
		session := r.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		rows = append(rows, RoundRow{
			Session:    session,
			Round:      r.Round,
			Outcome:    outcome,
			Blessings:  ratio(r.Blessings, r.BlessingsTotal),
			Curses:     ratio(r.Curses, r.CursesTotal),
			Score:      r.Score,
			Money:      r.Money,
			FinishedAt: r.FinishedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func ratio(a, b int) string {
	return strconv.Itoa(a) + "/" + strconv.Itoa(b)
}
