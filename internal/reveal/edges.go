package reveal

// EdgeKind names the part of the letter that changed between two states.
type EdgeKind int

const (
	EdgeTitle EdgeKind = iota
	EdgeBody
	EdgeBlessingsHeader
	EdgeBlessing
	EdgeCursesHeader
	EdgeCurse
	EdgeSignoff
	EdgeFooter
	EdgeFinished
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeTitle:
		return "title"
	case EdgeBody:
		return "body"
	case EdgeBlessingsHeader:
		return "blessings_header"
	case EdgeBlessing:
		return "blessing"
	case EdgeCursesHeader:
		return "curses_header"
	case EdgeCurse:
		return "curse"
	case EdgeSignoff:
		return "signoff"
	case EdgeFooter:
		return "footer"
	case EdgeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Edge is a flag that turned on or a count that grew. Count is the new value
// for count fields.
type Edge struct {
	Kind  EdgeKind
	Count int
}

// Edges compares two consecutive states and returns one edge per changed
// field, in letter order.
func Edges(prev, next State) []Edge {
	var out []Edge
	rise := func(k EdgeKind, a, b bool) {
		if !a && b {
			out = append(out, Edge{Kind: k})
		}
	}
	grow := func(k EdgeKind, a, b int) {
		if b > a {
			out = append(out, Edge{Kind: k, Count: b})
		}
	}
	rise(EdgeTitle, prev.Title, next.Title)
	grow(EdgeBody, prev.BodyChars, next.BodyChars)
	rise(EdgeBlessingsHeader, prev.BlessingsHeader, next.BlessingsHeader)
	grow(EdgeBlessing, prev.Blessings, next.Blessings)
	rise(EdgeCursesHeader, prev.CursesHeader, next.CursesHeader)
	grow(EdgeCurse, prev.Curses, next.Curses)
	grow(EdgeSignoff, prev.SignoffChars, next.SignoffChars)
	rise(EdgeFooter, prev.Footer, next.Footer)
	rise(EdgeFinished, prev.Finished, next.Finished)
	return out
}
