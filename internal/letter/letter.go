// Package letter assembles one round's chain letter from a content pack.
package letter

import (
	"fmt"
	"strings"

	"chainmail/internal/content"
)

// Testimonial is a blessing or curse realised for one letter.
type Testimonial struct {
	FirstName   string
	LastInitial rune
	Pronouns    content.Pronouns
	// Message is the rendered text with the target word masked.
	Message    string
	TargetWord string
	Effect     content.Effect
	Collected  bool
}

// Author returns "First L.".
func (t Testimonial) Author() string {
	return fmt.Sprintf("%s %c.", t.FirstName, t.LastInitial)
}

// InterpolatedFlavor holds the flavor text with recipients and time limit filled in.
type InterpolatedFlavor struct {
	Body    string
	Signoff string
}

// Letter is one round's content. Only the Collected flags change after Pull.
type Letter struct {
	Flavor       content.Flavor
	Interpolated InterpolatedFlavor
	Recipients   int
	TimeLimit    int
	Blessings    []Testimonial
	Curses       []Testimonial
	Decoys       []string
}

// Collect marks every uncollected blessing and curse whose target is word and
// returns the effects to apply, in letter order. Collected testimonials are
// skipped, so an effect fires at most once.
func (l *Letter) Collect(word string) []content.Effect {
	var effects []content.Effect
	for _, group := range [][]Testimonial{l.Blessings, l.Curses} {
		for i := range group {
			t := &group[i]
			if t.Collected || t.TargetWord != word {
				continue
			}
			t.Collected = true
			effects = append(effects, t.Effect)
		}
	}
	return effects
}

// Cleared reports whether every blessing has been collected. Curses never
// gate completion.
func (l *Letter) Cleared() bool {
	for _, b := range l.Blessings {
		if !b.Collected {
			return false
		}
	}
	return true
}

// CollectedCount returns how many blessings and curses have been collected.
func (l *Letter) CollectedCount() (blessings, curses int) {
	for _, b := range l.Blessings {
		if b.Collected {
			blessings++
		}
	}
	for _, c := range l.Curses {
		if c.Collected {
			curses++
		}
	}
	return blessings, curses
}

// WordAt returns the word at index of the whitespace-split text.
func WordAt(text string, index int) (string, bool) {
	words := content.Words(text)
	if index < 0 || index >= len(words) {
		return "", false
	}
	return words[index], true
}

// MaskWord replaces the word at index with underscores of the same rune
// length. Runs of whitespace collapse to single spaces.
func MaskWord(text string, index int) string {
	words := content.Words(text)
	if index >= 0 && index < len(words) {
		words[index] = strings.Repeat("_", len([]rune(words[index])))
	}
	return strings.Join(words, " ")
}

func interpolate(text string, recipients, timeLimit int) string {
	return strings.NewReplacer(
		content.RecipientsToken, fmt.Sprint(recipients),
		content.TimeLimitToken, fmt.Sprint(timeLimit),
	).Replace(text)
}
