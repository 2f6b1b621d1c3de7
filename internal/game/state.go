package game

// State is the phase of the round lifecycle.
type State int

const (
	Loading State = iota
	Info
	Printing
	Playing
	Resetting
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Info:
		return "info"
	case Printing:
		return "printing"
	case Playing:
		return "playing"
	case Resetting:
		return "resetting"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
