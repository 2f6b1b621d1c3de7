// Package terminal draws a session on a tcell screen and feeds it keys.
package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"chainmail/internal/viewmodel"
)

var (
	styleBase      = tcell.StyleDefault
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleBlessing  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleCurse     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCollected = tcell.StyleDefault.Dim(true).StrikeThrough(true)
	stylePrompt    = tcell.StyleDefault.Bold(true)
)

type line struct {
	text  string
	style tcell.Style
}

// Draw renders vm on s. It does not call Show.
func Draw(s tcell.Screen, vm viewmodel.Session) {
	s.Clear()
	w, h := s.Size()
	if w < 10 || h < 5 {
		return
	}
	letterW := w * 3 / 5
	drawStatus(s, w, vm)
	drawLetter(s, 0, 1, letterW, h-2, vm)
	drawField(s, letterW+1, 1, w-letterW-1, h-2, vm)
	put(s, 0, h-1, w, "> "+vm.Prompt+"_", stylePrompt)
}

func drawStatus(s tcell.Screen, w int, vm viewmodel.Session) {
	parts := []string{
		fmt.Sprintf("Letter %d", vm.Round),
		fmt.Sprintf("Score %d", vm.Score),
		fmt.Sprintf("$%d", vm.Money),
		fmt.Sprintf("+$%d/letter", vm.Income),
	}
	if vm.State == "playing" {
		parts = append(parts, fmt.Sprintf("%ds", vm.RemainingSeconds()))
	}
	if !vm.Sound {
		parts = append(parts, "muted")
	}
	if vm.Debug {
		parts = append(parts, fmt.Sprintf("[%s pool=%d words=%d]", vm.State, vm.PoolSize, len(vm.Words)))
	}
	status := " " + strings.Join(parts, "  ")
	if pad := w - runewidth.StringWidth(status); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	put(s, 0, 0, w, status, styleStatus)
}

func drawLetter(s tcell.Screen, x, y, w, h int, vm viewmodel.Session) {
	lines := letterLines(vm, w-2)
	// The letter slides in from below.
	offset := int(float64(h) * (1 - vm.Transition))
	start := vm.Scroll
	if last := len(lines) - h; start > last {
		start = last
	}
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		row := y + offset + i - start
		if row >= y+h {
			break
		}
		put(s, x+1, row, w-2, lines[i].text, lines[i].style)
	}
}

func letterLines(vm viewmodel.Session, width int) []line {
	if vm.State == "info" || vm.State == "loading" {
		var out []line
		out = append(out, line{"HOW TO PLAY", styleTitle}, line{})
		for _, p := range []string{
			"A chain letter prints. Each testimonial hides one word.",
			"Words fall through the field on the right. Type one and press Enter to collect it.",
			"Collect every blessing before the countdown ends. Curses take it away. Decoys do nothing.",
			"Press 1 for debug info, 2 to toggle sound, Esc to quit.",
		} {
			out = appendWrapped(out, p, width, styleBase)
			out = append(out, line{})
		}
		return append(out, line{"Press space to begin.", styleTitle})
	}

	l := vm.Letter
	var out []line
	if l.Title != "" {
		out = append(out, line{l.Title, styleTitle}, line{})
	}
	for _, p := range strings.Split(l.Body, "\n") {
		out = appendWrapped(out, p, width, styleBase)
	}
	if l.BlessingsHeader {
		out = append(out, line{}, line{"+ BLESSINGS +", styleBlessing})
		out = appendTestimonials(out, l.Blessings, width, styleBlessing)
	}
	if l.CursesHeader {
		out = append(out, line{}, line{"x CURSES x", styleCurse})
		out = appendTestimonials(out, l.Curses, width, styleCurse)
	}
	if l.Signoff != "" {
		out = append(out, line{})
		out = appendWrapped(out, l.Signoff, width, styleBase)
	}
	if l.Footer != "" {
		out = append(out, line{})
		out = appendWrapped(out, l.Footer, width, styleTitle)
	}
	return out
}

func appendTestimonials(out []line, ts []viewmodel.Testimonial, width int, style tcell.Style) []line {
	for _, t := range ts {
		st := style
		if t.Collected {
			st = styleCollected
		}
		out = appendWrapped(out, "- "+t.Message, width, st)
	}
	return out
}

func appendWrapped(out []line, text string, width int, style tcell.Style) []line {
	for _, l := range wrap(text, width) {
		out = append(out, line{l, style})
	}
	return out
}

// wrap breaks text on spaces so no line is wider than width cells. Words
// longer than width are left whole.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return []string{text}
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) > width {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur += " " + word
	}
	return append(lines, cur)
}

func drawField(s tcell.Screen, x, y, w, h int, vm viewmodel.Session) {
	for row := y; row < y+h; row++ {
		s.SetContent(x-1, row, tcell.RuneVLine, nil, styleBase)
	}
	for _, word := range vm.Words {
		ww := runewidth.StringWidth(word.Text)
		col := x + int(word.X*float64(w-ww))
		row := y + int(word.Y*float64(h-1))
		if row < y || row >= y+h {
			continue
		}
		put(s, col, row, x+w-col, word.Text, tcell.StyleDefault.Foreground(tcell.GetColor(word.Color)))
	}
}

// put writes text at (x, y), clipped to limit cells.
func put(s tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if col+rw > limit {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col += rw
	}
}
