package game

import (
	"fmt"
	"time"

	"chainmail/internal/content"
	"chainmail/internal/input"
	"chainmail/internal/letter"
	"chainmail/internal/pool"
	"chainmail/internal/reveal"
	"chainmail/internal/rng"
	"chainmail/pkg/realtime"
)

// Session owns everything one player's game needs: the current letter, its
// word pool, the field, the reveal state, statistics and the RNG streams.
// It is not safe for concurrent use; Host serialises access to it.
type Session struct {
	settings Settings
	bag      *letter.Bag
	streams  rng.Streams

	state      State
	infoShown  bool
	round      int
	letter     *letter.Letter
	pool       *pool.Pool
	field      *Field
	content    reveal.Content
	reveal     reveal.State
	countdown  realtime.Countdown
	transition Transition
	spawnTimer time.Duration
	carry      time.Duration
	prompt     input.Prompt
	stats      Statistics

	debug  bool
	sound  bool
	scroll int

	err error
}

// NewSession prepares a session in the Loading state.
func NewSession(pack *content.Pack, settings Settings, streams rng.Streams) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	bag, err := letter.NewBag(pack, streams.Letters)
	if err != nil {
		return nil, err
	}
	return &Session{
		settings:   settings,
		bag:        bag,
		streams:    streams,
		field:      NewField(settings.FallSpeed, UniformPlacer{Margin: 0.1}),
		transition: Transition{Duration: settings.Transition},
		prompt:     input.Prompt{Max: settings.PromptMax},
		sound:      true,
	}, nil
}

// SetPlacer replaces how spawned words are positioned.
func (s *Session) SetPlacer(p Placer) {
	s.field.placer = p
}

// Err returns the error that stopped the session, if any. It can only be set
// by a content problem while dealing a new letter.
func (s *Session) Err() error { return s.err }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Stats returns the session statistics.
func (s *Session) Stats() Statistics { return s.stats }

// Letter returns the live letter. Callers must not keep it past the next call
// into the session.
func (s *Session) Letter() *letter.Letter { return s.letter }

// Pool returns the live word pool.
func (s *Session) Pool() *pool.Pool { return s.pool }

// Ready leaves Loading once content is available.
func (s *Session) Ready() []Event {
	if s.state != Loading || s.err != nil {
		return nil
	}
	var events []Event
	if !s.settings.SkipInfo && !s.infoShown {
		s.infoShown = true
		events = s.setState(events, Info)
		return events
	}
	return s.enterPrinting(events)
}

// Input applies one decoded input event.
func (s *Session) Input(ev input.Event) []Event {
	if s.err != nil {
		return nil
	}
	var events []Event
	switch ev.Kind {
	case input.ToggleDebug:
		s.debug = !s.debug
	case input.ToggleSound:
		s.sound = !s.sound
	case input.ScrollUp:
		if s.scroll > 0 {
			s.scroll--
		}
	case input.ScrollDown:
		s.scroll++
	case input.Continue:
		if s.state == Info {
			events = s.enterPrinting(events)
		}
	case input.Enter:
		switch s.state {
		case Info:
			events = s.enterPrinting(events)
		case Playing:
			events = s.submit(events)
		}
	case input.Char:
		if s.state == Printing || s.state == Playing {
			s.prompt.Push(ev.Rune)
		}
	case input.Backspace:
		s.prompt.Pop()
	case input.Quit:
	}
	return events
}

// Tick advances the session by delta.
func (s *Session) Tick(delta time.Duration) []Event {
	if s.err != nil || delta < 0 {
		return nil
	}
	total := s.carry + delta
	ms := total / time.Millisecond
	s.carry = total - ms*time.Millisecond

	var events []Event
	switch s.state {
	case Printing:
		s.transition.Step(delta)
		events = s.stepReveal(events, uint64(ms))
	case Playing:
		s.transition.Step(delta)
		events = s.stepPlaying(events, delta)
	case Resetting:
		if s.transition.Step(delta) {
			s.field.Clear()
			events = s.enterPrinting(events)
		}
	case Loading, Info:
	}
	return events
}

func (s *Session) stepReveal(events []Event, deltaMs uint64) []Event {
	prev := s.reveal
	s.reveal = s.settings.Reveal.Next(prev, deltaMs, s.content)
	for _, e := range reveal.Edges(prev, s.reveal) {
		switch e.Kind {
		case reveal.EdgeTitle, reveal.EdgeFooter:
			events = append(events, cue(CueSlam))
		case reveal.EdgeBody, reveal.EdgeSignoff:
			events = append(events, cue(CueTap))
		case reveal.EdgeBlessingsHeader:
			events = append(events, cue(CueBlessHeader))
		case reveal.EdgeBlessing:
			events = append(events, cue(CueBless))
		case reveal.EdgeCursesHeader:
			events = append(events, cue(CueCurseHeader))
		case reveal.EdgeCurse:
			events = append(events, cue(CueCurse))
		case reveal.EdgeFinished:
			events = append(events, cue(CueStart))
			s.spawnTimer = s.settings.SpawnInterval
			events = s.setState(events, Playing)
		}
	}
	return events
}

func (s *Session) stepPlaying(events []Event, delta time.Duration) []Event {
	for _, w := range s.field.Step(delta) {
		events = append(events, wordEvent(EventWordFell, w))
	}
	s.spawnTimer += delta
	for s.spawnTimer >= s.settings.SpawnInterval {
		s.spawnTimer -= s.settings.SpawnInterval
		s.spawn()
	}
	if s.countdown.Tick(delta) {
		events = append(events, Event{Kind: EventLetterFailed, Outcome: s.outcome(false)})
		events = append(events, cue(CueLetterFail))
		events = s.enterResetting(events)
	}
	return events
}

// spawn draws the next pool word onto the field. A word already on the
// field is not doubled; the pool is reshuffled and the slot skipped.
func (s *Session) spawn() {
	e, ok := s.pool.Draw(s.streams.Pool)
	if !ok {
		return
	}
	if s.field.Visible(e.Word) {
		s.pool.Reset(s.streams.Pool)
		return
	}
	s.field.Spawn(e, s.streams.Spawn)
}

func (s *Session) submit(events []Event) []Event {
	text := s.prompt.String()
	s.prompt.Clear()
	if text == "" {
		return events
	}
	matched := s.field.Take(text)
	if len(matched) == 0 {
		return events
	}
	for _, w := range matched {
		s.pool.RemoveAndReshuffle(w.Entry.Word, s.streams.Pool)
		events = append(events, wordEvent(EventWordMatched, w))
		switch w.Entry.Category {
		case pool.Blessing:
			events = append(events, cue(CueGuessBless))
		case pool.Curse:
			events = append(events, cue(CueGuessCurse))
		case pool.Decoy:
			events = append(events, cue(CueGuessDecoy))
		}
	}
	for _, eff := range s.letter.Collect(text) {
		s.stats.Apply(eff)
		events = append(events, Event{Kind: EventEffectApplied, Word: text, Effect: eff.String()})
	}
	if s.letter.Cleared() {
		s.stats.Payroll()
		events = append(events, Event{Kind: EventLetterCleared, Outcome: s.outcome(true)})
		events = append(events, cue(CueLetterClear))
		events = s.enterResetting(events)
	}
	return events
}

// enterPrinting deals a new letter and resets everything that belongs to a
// round in a single step.
func (s *Session) enterPrinting(events []Event) []Event {
	l, err := s.bag.Pull(s.streams.Letters, s.settings.Letter)
	if err != nil {
		s.err = err
		return events
	}
	p, err := pool.New(l, s.streams.Pool)
	if err != nil {
		s.err = err
		return events
	}
	s.round++
	s.letter = l
	s.pool = p
	s.field.Clear()
	s.content = reveal.ContentOf(l)
	s.reveal = reveal.State{}
	s.countdown.Reset(time.Duration(l.TimeLimit) * time.Second)
	s.transition.Start()
	s.spawnTimer = 0
	s.carry = 0
	events = s.setState(events, Printing)
	return append(events, cue(CueWindow))
}

func wordEvent(kind EventKind, w FieldWord) Event {
	return Event{
		Kind:     kind,
		Word:     w.Entry.Word,
		Category: w.Entry.Category.String(),
		Color:    w.Entry.Hex(),
		X:        w.X,
		Y:        w.Y,
	}
}

func (s *Session) enterResetting(events []Event) []Event {
	s.prompt.Clear()
	s.transition.Reverse()
	return s.setState(events, Resetting)
}

func (s *Session) setState(events []Event, next State) []Event {
	s.state = next
	return append(events, Event{Kind: EventStateChanged, State: next})
}

func (s *Session) outcome(cleared bool) *Outcome {
	b, c := s.letter.CollectedCount()
	return &Outcome{
		Round:          s.round,
		Cleared:        cleared,
		Blessings:      b,
		BlessingsTotal: len(s.letter.Blessings),
		Curses:         c,
		CursesTotal:    len(s.letter.Curses),
		TimeLimit:      s.letter.TimeLimit,
		Stats:          s.stats,
	}
}
