package game

import (
	"testing"
	"time"

	"chainmail/internal/content"
	"chainmail/internal/input"
	"chainmail/internal/letter"
	"chainmail/internal/pool"
	"chainmail/internal/reveal"
	"chainmail/internal/rng"
)

func testPack(t *testing.T) *content.Pack {
	t.Helper()
	p, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return p
}

func newTestSession(t *testing.T, settings Settings) *Session {
	t.Helper()
	s, err := NewSession(testPack(t), settings, rng.NewStreams(rng.DefaultSeeds()))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// playingSession puts a session straight into Playing with a hand-made letter.
func playingSession(t *testing.T, l *letter.Letter) *Session {
	t.Helper()
	settings := DefaultSettings()
	settings.SkipInfo = true
	s := newTestSession(t, settings)
	p, err := pool.New(l, s.streams.Pool)
	if err != nil {
		t.Fatalf("pool.New: %v", err)
	}
	s.letter = l
	s.pool = p
	s.content = reveal.ContentOf(l)
	s.countdown.Reset(time.Duration(l.TimeLimit) * time.Second)
	s.state = Playing
	s.round = 1
	return s
}

func alphaLetter() *letter.Letter {
	return &letter.Letter{
		TimeLimit: 60,
		Blessings: []letter.Testimonial{
			{TargetWord: "alpha", Effect: content.IncomeEffect(3)},
			{TargetWord: "beta", Effect: content.ScoreEffect(2)},
		},
		Curses: []letter.Testimonial{{TargetWord: "gamma", Effect: content.MoneyEffect(-4)}},
		Decoys: []string{"toast"},
	}
}

// place spawns the pool entry for word onto the field.
func place(t *testing.T, s *Session, word string) {
	t.Helper()
	for _, e := range s.pool.Entries() {
		if e.Word == word {
			s.field.Spawn(e, s.streams.Spawn)
			return
		}
	}
	t.Fatalf("%q not in pool", word)
}

func typeWord(s *Session, word string) []Event {
	for _, r := range word {
		s.Input(input.Event{Kind: input.Char, Rune: r})
	}
	return s.Input(input.Event{Kind: input.Enter})
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func hasCue(events []Event, c Cue) bool {
	for _, e := range events {
		if e.Kind == EventCue && e.Cue == c {
			return true
		}
	}
	return false
}

func countCue(events []Event, c Cue) int {
	n := 0
	for _, e := range events {
		if e.Kind == EventCue && e.Cue == c {
			n++
		}
	}
	return n
}

// tickUntil ticks in frame-sized steps until the session reaches want.
func tickUntil(t *testing.T, s *Session, want State, limit time.Duration) []Event {
	t.Helper()
	var all []Event
	const frame = 16 * time.Millisecond
	for spent := time.Duration(0); spent <= limit; spent += frame {
		all = append(all, s.Tick(frame)...)
		if s.State() == want {
			return all
		}
	}
	t.Fatalf("state %v after %v, want %v", s.State(), limit, want)
	return nil
}

func TestSession_StateWalk(t *testing.T) {
	s := newTestSession(t, DefaultSettings())
	if s.State() != Loading {
		t.Fatalf("initial state %v, want loading", s.State())
	}
	events := s.Ready()
	if s.State() != Info || !hasEvent(events, EventStateChanged) {
		t.Fatalf("after Ready state %v events %v", s.State(), events)
	}
	if got := s.Tick(time.Second); len(got) != 0 {
		t.Errorf("Info should not react to ticks, got %v", got)
	}
	events = s.Input(input.Event{Kind: input.Continue})
	if s.State() != Printing {
		t.Fatalf("after continue state %v, want printing", s.State())
	}
	if !hasCue(events, CueWindow) {
		t.Error("entering printing should cue window")
	}
	if s.Letter() == nil || s.Pool() == nil {
		t.Fatal("letter or pool missing after entering printing")
	}

	d := s.settings.Reveal.Duration(reveal.ContentOf(s.Letter()))
	events = tickUntil(t, s, Playing, time.Duration(d+100)*time.Millisecond)
	if countCue(events, CueStart) != 1 {
		t.Errorf("start cues %d, want 1", countCue(events, CueStart))
	}
	if countCue(events, CueSlam) != 2 {
		t.Errorf("slam cues %d, want 2 (title and footer)", countCue(events, CueSlam))
	}
	if countCue(events, CueBlessHeader) != 1 || countCue(events, CueCurseHeader) != 1 {
		t.Error("each header should cue exactly once")
	}
	snap := s.Snapshot()
	if !snap.Reveal.Finished {
		t.Error("reveal not finished in playing")
	}
	if snap.Remaining != time.Duration(s.Letter().TimeLimit)*time.Second {
		t.Errorf("countdown %v, want full time limit", snap.Remaining)
	}
}

func TestSession_SkipInfo(t *testing.T) {
	settings := DefaultSettings()
	settings.SkipInfo = true
	s := newTestSession(t, settings)
	s.Ready()
	if s.State() != Printing {
		t.Errorf("state %v, want printing", s.State())
	}
	if got := s.Ready(); got != nil {
		t.Errorf("second Ready produced %v", got)
	}
}

func TestSession_RoundCompletion(t *testing.T) {
	s := playingSession(t, alphaLetter())
	place(t, s, "alpha")
	place(t, s, "beta")

	events := typeWord(s, "alpha")
	if !s.letter.Blessings[0].Collected {
		t.Fatal("alpha not collected")
	}
	if hasEvent(events, EventLetterCleared) {
		t.Fatal("cleared with beta outstanding")
	}
	events = typeWord(s, "beta")
	if !s.letter.Blessings[1].Collected {
		t.Fatal("beta not collected")
	}
	if !hasEvent(events, EventLetterCleared) {
		t.Fatal("no letter_cleared after every blessing")
	}
	if !hasCue(events, CueLetterClear) {
		t.Error("no letter_clear cue")
	}
	if s.letter.Curses[0].Collected {
		t.Error("gamma should remain uncollected")
	}
	if s.State() != Resetting {
		t.Errorf("state %v, want resetting", s.State())
	}
}

func TestSession_Payroll(t *testing.T) {
	l := &letter.Letter{
		TimeLimit: 60,
		Blessings: []letter.Testimonial{{TargetWord: "alpha", Effect: content.Effect{}}},
		Curses:    []letter.Testimonial{{TargetWord: "gamma"}},
	}
	s := playingSession(t, l)
	s.stats = Statistics{Score: 0, Money: 10, Income: 5}
	place(t, s, "alpha")
	events := typeWord(s, "alpha")
	if !hasEvent(events, EventLetterCleared) {
		t.Fatal("letter not cleared")
	}
	if s.stats.Money != 15 {
		t.Errorf("money %d, want 15", s.stats.Money)
	}
	if s.stats.Income != 5 {
		t.Errorf("income %d, want 5", s.stats.Income)
	}
}

func TestSession_EffectAppliesOnce(t *testing.T) {
	s := playingSession(t, alphaLetter())
	place(t, s, "alpha")
	events := typeWord(s, "alpha")
	if s.stats.Income != 3 {
		t.Fatalf("income %d, want 3", s.stats.Income)
	}
	if !hasEvent(events, EventEffectApplied) {
		t.Error("no effect_applied event")
	}
	typeWord(s, "alpha")
	if s.stats.Income != 3 {
		t.Errorf("income %d after resubmitting, want 3", s.stats.Income)
	}
}

func TestSession_PoolRemoval(t *testing.T) {
	s := playingSession(t, alphaLetter())
	before := s.pool.Len()
	place(t, s, "alpha")
	typeWord(s, "alpha")
	if s.pool.Contains("alpha") {
		t.Error("pool still contains alpha")
	}
	s.pool.Reset(s.streams.Pool)
	if got := s.pool.Len(); got != before-1 {
		t.Errorf("pool len %d, want %d", got, before-1)
	}
	if s.field.Visible("alpha") {
		t.Error("alpha still on the field")
	}
}

func TestSession_CurseAppliesEffectOnly(t *testing.T) {
	s := playingSession(t, alphaLetter())
	place(t, s, "gamma")
	events := typeWord(s, "gamma")
	if s.stats.Money != -4 {
		t.Errorf("money %d, want -4", s.stats.Money)
	}
	if !hasCue(events, CueGuessCurse) {
		t.Error("no guess_curse cue")
	}
	if s.State() != Playing {
		t.Errorf("state %v, want playing", s.State())
	}
}

func TestSession_DecoyDoesNothing(t *testing.T) {
	s := playingSession(t, alphaLetter())
	place(t, s, "toast")
	events := typeWord(s, "toast")
	if !hasCue(events, CueGuessDecoy) || !hasEvent(events, EventWordMatched) {
		t.Errorf("events %v", events)
	}
	if hasEvent(events, EventEffectApplied) {
		t.Error("decoy applied an effect")
	}
	if !s.pool.Contains("toast") {
		t.Error("decoy removed from pool")
	}
	if s.stats != (Statistics{}) {
		t.Errorf("stats changed: %+v", s.stats)
	}
}

func TestSession_WordMustBeOnField(t *testing.T) {
	s := playingSession(t, alphaLetter())
	events := typeWord(s, "alpha")
	if len(events) != 0 || s.letter.Blessings[0].Collected {
		t.Errorf("collected a word that was not spawned: %v", events)
	}
	if s.Snapshot().Prompt != "" {
		t.Error("prompt not cleared after a miss")
	}
}

func TestSession_PromptNormalises(t *testing.T) {
	s := playingSession(t, alphaLetter())
	for _, r := range "AL-pha" {
		s.Input(input.Event{Kind: input.Char, Rune: r})
	}
	if got := s.Snapshot().Prompt; got != "alpha" {
		t.Errorf("prompt %q, want alpha", got)
	}
	s.Input(input.Event{Kind: input.Backspace})
	if got := s.Snapshot().Prompt; got != "alph" {
		t.Errorf("prompt %q, want alph", got)
	}
}

func TestSession_ExpiryAndReset(t *testing.T) {
	l := alphaLetter()
	l.TimeLimit = 1
	s := playingSession(t, l)
	place(t, s, "beta")
	s.Input(input.Event{Kind: input.Char, Rune: 'b'})

	events := tickUntil(t, s, Resetting, 2*time.Second)
	if !hasEvent(events, EventLetterFailed) || !hasCue(events, CueLetterFail) {
		t.Fatalf("events %v, want letter_failed", events)
	}
	if s.Snapshot().Prompt != "" {
		t.Error("prompt not cleared on reset")
	}
	var outcome *Outcome
	for _, e := range events {
		if e.Outcome != nil {
			outcome = e.Outcome
		}
	}
	if outcome == nil || outcome.Cleared || outcome.BlessingsTotal != 2 {
		t.Errorf("outcome %+v", outcome)
	}

	events = tickUntil(t, s, Printing, 2*s.settings.Transition)
	if !hasCue(events, CueWindow) {
		t.Error("no window cue for the next letter")
	}
	if s.field.Len() != 0 {
		t.Errorf("field holds %d words after reset", s.field.Len())
	}
	if s.Snapshot().Round != 2 {
		t.Errorf("round %d, want 2", s.Snapshot().Round)
	}
	if s.letter == l {
		t.Error("letter not replaced")
	}
}

func TestSession_Spawning(t *testing.T) {
	s := playingSession(t, alphaLetter())
	s.spawnTimer = 0
	s.Tick(s.settings.SpawnInterval)
	if s.field.Len() != 1 {
		t.Fatalf("field len %d, want 1", s.field.Len())
	}
	w := s.field.Words()[0]
	if w.X < 0 || w.X >= 1 {
		t.Errorf("spawn x %v out of range", w.X)
	}
	// Nothing stays on the field longer than it takes to fall through it.
	fall := time.Duration(float64(time.Second)/s.settings.FallSpeed) + time.Second
	fell := false
	for spent := time.Duration(0); spent < fall; spent += 100 * time.Millisecond {
		for _, ev := range s.Tick(100 * time.Millisecond) {
			if ev.Kind == EventWordFell && ev.Word == w.Entry.Word && ev.Y > 1 {
				fell = true
			}
		}
		for _, fw := range s.field.Words() {
			if fw.ID == w.ID && fw.Y > 1 {
				t.Fatal("word below the field was not despawned")
			}
		}
	}
	for _, fw := range s.field.Words() {
		if fw.ID == w.ID {
			t.Error("first word never fell off")
		}
	}
	if !fell {
		t.Errorf("no %s event for %q", EventWordFell, w.Entry.Word)
	}
}

func TestSession_NoDuplicateOnField(t *testing.T) {
	s := playingSession(t, alphaLetter())
	for i := 0; i < 20; i++ {
		s.spawn()
	}
	seen := map[string]bool{}
	for _, w := range s.field.Words() {
		if seen[w.Entry.Word] {
			t.Fatalf("%q spawned twice", w.Entry.Word)
		}
		seen[w.Entry.Word] = true
	}
}

func TestSession_SubMillisecondCarry(t *testing.T) {
	settings := DefaultSettings()
	settings.SkipInfo = true
	s := newTestSession(t, settings)
	s.Ready()
	s.Tick(600 * time.Microsecond)
	s.Tick(600 * time.Microsecond)
	if got := s.Snapshot().Reveal.ElapsedMs; got != 1 {
		t.Errorf("elapsed %dms, want 1", got)
	}
}

func TestSession_TogglesAndScroll(t *testing.T) {
	s := newTestSession(t, DefaultSettings())
	s.Input(input.Event{Kind: input.ToggleDebug})
	s.Input(input.Event{Kind: input.ToggleSound})
	s.Input(input.Event{Kind: input.ScrollUp})
	s.Input(input.Event{Kind: input.ScrollDown})
	s.Input(input.Event{Kind: input.ScrollDown})
	snap := s.Snapshot()
	if !snap.Debug || snap.Sound || snap.Scroll != 2 {
		t.Errorf("debug %v sound %v scroll %d", snap.Debug, snap.Sound, snap.Scroll)
	}
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := playingSession(t, alphaLetter())
	snap := s.Snapshot()
	snap.Letter.Blessings[0].Collected = true
	if s.letter.Blessings[0].Collected {
		t.Error("snapshot shares the live letter")
	}
}

func TestStatistics_Apply(t *testing.T) {
	var st Statistics
	st.Apply(content.ScoreEffect(4))
	st.Apply(content.MoneyEffect(-2))
	st.Apply(content.IncomeEffect(1))
	st.Apply(content.Effect{})
	if st != (Statistics{Score: 4, Money: -2, Income: 1}) {
		t.Errorf("stats %+v", st)
	}
}
