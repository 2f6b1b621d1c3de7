// Package input turns raw key events into game events and holds the prompt
// the player types into.
package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Kind is the type of a decoded event.
type Kind int

const (
	Char Kind = iota
	Backspace
	Enter
	Continue
	ScrollUp
	ScrollDown
	ToggleDebug
	ToggleSound
	Quit
)

func (k Kind) String() string {
	switch k {
	case Char:
		return "char"
	case Backspace:
		return "backspace"
	case Enter:
		return "enter"
	case Continue:
		return "continue"
	case ScrollUp:
		return "scroll_up"
	case ScrollDown:
		return "scroll_down"
	case ToggleDebug:
		return "toggle_debug"
	case ToggleSound:
		return "toggle_sound"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is a decoded input. Rune is set for Char only.
type Event struct {
	Kind Kind
	Rune rune
}

// Keys with a fixed meaning outside the prompt.
const (
	ContinueKey    = ' '
	DebugToggleKey = '1'
	SoundToggleKey = '2'
)

// FromRune decodes a printable key.
func FromRune(r rune) (Event, bool) {
	switch r {
	case ContinueKey:
		return Event{Kind: Continue}, true
	case DebugToggleKey:
		return Event{Kind: ToggleDebug}, true
	case SoundToggleKey:
		return Event{Kind: ToggleSound}, true
	}
	if !unicode.IsPrint(r) {
		return Event{}, false
	}
	return Event{Kind: Char, Rune: r}, true
}

// FromTcell decodes a terminal event. Events with no game meaning are
// reported with ok false and should be dropped.
func FromTcell(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return fromKey(ev)
	case *tcell.EventMouse:
		return fromMouse(ev)
	default:
		return Event{}, false
	}
}

func fromKey(ev *tcell.EventKey) (Event, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return FromRune(ev.Rune())
	case tcell.KeyEnter:
		return Event{Kind: Enter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Kind: Backspace}, true
	case tcell.KeyUp:
		return Event{Kind: ScrollUp}, true
	case tcell.KeyDown:
		return Event{Kind: ScrollDown}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Event{Kind: Quit}, true
	default:
		return Event{}, false
	}
}

func fromMouse(ev *tcell.EventMouse) (Event, bool) {
	b := ev.Buttons()
	switch {
	case b&tcell.WheelUp != 0:
		return Event{Kind: ScrollUp}, true
	case b&tcell.WheelDown != 0:
		return Event{Kind: ScrollDown}, true
	default:
		return Event{}, false
	}
}

// FromKeyName decodes a browser KeyboardEvent.key value. Quit has no
// browser binding.
func FromKeyName(key string) (Event, bool) {
	switch key {
	case "Enter":
		return Event{Kind: Enter}, true
	case "Backspace":
		return Event{Kind: Backspace}, true
	case "ArrowUp":
		return Event{Kind: ScrollUp}, true
	case "ArrowDown":
		return Event{Kind: ScrollDown}, true
	case " ", "Spacebar":
		return Event{Kind: Continue}, true
	}
	runes := []rune(key)
	if len(runes) != 1 {
		return Event{}, false
	}
	return FromRune(runes[0])
}
