package game

// EventKind classifies what a session reports to its observers.
type EventKind string

const (
	EventCue           EventKind = "cue"
	EventStateChanged  EventKind = "state_changed"
	EventWordMatched   EventKind = "word_matched"
	EventWordFell      EventKind = "word_fell"
	EventEffectApplied EventKind = "effect_applied"
	EventLetterCleared EventKind = "letter_cleared"
	EventLetterFailed  EventKind = "letter_failed"
)

// Cue is a one-shot sound or visual trigger.
type Cue string

const (
	CueWindow      Cue = "window"
	CueSlam        Cue = "slam"
	CueTap         Cue = "tap"
	CueBlessHeader Cue = "bless_header"
	CueBless       Cue = "bless"
	CueCurseHeader Cue = "curse_header"
	CueCurse       Cue = "curse"
	CueStart       Cue = "start"
	CueLetterClear Cue = "letter_clear"
	CueLetterFail  Cue = "letter_fail"
	CueGuessBless  Cue = "guess_bless"
	CueGuessCurse  Cue = "guess_curse"
	CueGuessDecoy  Cue = "guess_decoy"
)

// Event is emitted by Session.Tick and Session.Input. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind     EventKind `json:"kind"`
	Cue      Cue       `json:"cue,omitempty"`
	State    State     `json:"state,omitempty"`
	Word     string    `json:"word,omitempty"`
	Category string    `json:"category,omitempty"`
	Color    string    `json:"color,omitempty"`
	X        float64   `json:"x,omitempty"`
	Y        float64   `json:"y,omitempty"`
	Effect   string    `json:"effect,omitempty"`
	Outcome  *Outcome  `json:"outcome,omitempty"`
}

// Outcome summarises a finished round.
type Outcome struct {
	Round          int        `json:"round"`
	Cleared        bool       `json:"cleared"`
	Blessings      int        `json:"blessings"`
	BlessingsTotal int        `json:"blessings_total"`
	Curses         int        `json:"curses"`
	CursesTotal    int        `json:"curses_total"`
	TimeLimit      int        `json:"time_limit"`
	Stats          Statistics `json:"stats"`
}

func cue(c Cue) Event { return Event{Kind: EventCue, Cue: c} }
