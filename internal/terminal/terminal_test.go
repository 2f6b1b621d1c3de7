package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"chainmail/internal/viewmodel"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = row(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestDraw_StatusAndPrompt(t *testing.T) {
	s := newScreen(t, 80, 24)
	Draw(s, viewmodel.Session{
		State:       "playing",
		Round:       3,
		Score:       5,
		Money:       7,
		Income:      2,
		RemainingMs: 4500,
		Prompt:      "fox",
		Sound:       true,
		Transition:  1,
	})
	status := row(s, 0)
	for _, want := range []string{"Letter 3", "Score 5", "$7", "+$2/letter", "5s"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if got := row(s, 23); !strings.HasPrefix(got, "> fox_") {
		t.Errorf("prompt row %q", got)
	}
}

func TestDraw_Info(t *testing.T) {
	s := newScreen(t, 80, 24)
	Draw(s, viewmodel.Session{State: "info", Transition: 1})
	if !strings.Contains(screenText(s), "HOW TO PLAY") {
		t.Error("rules not drawn")
	}
}

func TestDraw_LetterAndField(t *testing.T) {
	s := newScreen(t, 100, 30)
	Draw(s, viewmodel.Session{
		State:      "playing",
		Transition: 1,
		Sound:      true,
		Letter: viewmodel.Letter{
			Title:           "LUCKY LETTER",
			Body:            "Send this on.",
			BlessingsHeader: true,
			Blessings:       []viewmodel.Testimonial{{Message: "Ada L. won the _____."}},
		},
		Words: []viewmodel.Word{{Text: "lotto", Color: "#336699", X: 0, Y: 0}},
	})
	text := screenText(s)
	for _, want := range []string{"LUCKY LETTER", "Send this on.", "+ BLESSINGS +", "- Ada L. won the _____.", "lotto"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}
	if strings.Contains(text, "CURSES") {
		t.Error("curses drawn before their header was revealed")
	}
	// Field words start right of the divider.
	if got := row(s, 1); !strings.Contains(got[60:], "lotto") {
		t.Errorf("field word not in the field: %q", got)
	}
}

func TestDraw_HiddenDuringTransition(t *testing.T) {
	s := newScreen(t, 80, 24)
	Draw(s, viewmodel.Session{
		State:  "printing",
		Letter: viewmodel.Letter{Title: "LUCKY LETTER"},
	})
	if strings.Contains(screenText(s), "LUCKY LETTER") {
		t.Error("letter drawn before it slid in")
	}
}

func TestDraw_TooSmall(t *testing.T) {
	s := newScreen(t, 5, 3)
	Draw(s, viewmodel.Session{State: "playing", Prompt: "x"})
	if strings.TrimSpace(screenText(s)) != "" {
		t.Error("drew on a screen too small to hold the layout")
	}
}

func TestWrap(t *testing.T) {
	got := wrap("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", got, want)
	}
	if got := wrap("", 10); len(got) != 1 || got[0] != "" {
		t.Errorf("wrap of empty = %q", got)
	}
	if got := wrap("extraordinarily", 5); got[0] != "extraordinarily" {
		t.Errorf("long word split: %q", got)
	}
}
