package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromTcell_Keys(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Event
		ok   bool
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), Event{Kind: Char, Rune: 'Q'}, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Event{Kind: Continue}, true},
		{"debug", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), Event{Kind: ToggleDebug}, true},
		{"sound", tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone), Event{Kind: ToggleSound}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Event{Kind: Enter}, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Event{Kind: Backspace}, true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Event{Kind: ScrollUp}, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), Event{Kind: ScrollDown}, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Event{Kind: Quit}, true},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), Event{}, false},
		{"wheel up", tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone), Event{Kind: ScrollUp}, true},
		{"wheel down", tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone), Event{Kind: ScrollDown}, true},
		{"click", tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone), Event{}, false},
		{"resize", tcell.NewEventResize(80, 24), Event{}, false},
	}
	for _, tt := range tests {
		got, ok := FromTcell(tt.ev)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: got %+v %v, want %+v %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromKeyName(t *testing.T) {
	tests := []struct {
		key  string
		want Event
		ok   bool
	}{
		{"a", Event{Kind: Char, Rune: 'a'}, true},
		{"Enter", Event{Kind: Enter}, true},
		{"Backspace", Event{Kind: Backspace}, true},
		{" ", Event{Kind: Continue}, true},
		{"ArrowUp", Event{Kind: ScrollUp}, true},
		{"Shift", Event{}, false},
		{"", Event{}, false},
	}
	for _, tt := range tests {
		got, ok := FromKeyName(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%q: got %+v %v, want %+v %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrompt(t *testing.T) {
	var p Prompt
	for _, r := range "Fo-x9" {
		p.Push(r)
	}
	if got := p.String(); got != "fox" {
		t.Errorf("prompt %q, want fox", got)
	}
	p.Pop()
	if got := p.String(); got != "fo" {
		t.Errorf("after Pop %q, want fo", got)
	}
	p.Clear()
	if p.Len() != 0 || p.Pop() {
		t.Error("cleared prompt not empty")
	}
}

func TestPrompt_Max(t *testing.T) {
	p := Prompt{Max: 3}
	for _, r := range "abcdef" {
		p.Push(r)
	}
	if got := p.String(); got != "abc" {
		t.Errorf("prompt %q, want abc", got)
	}
}
