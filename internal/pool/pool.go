// Package pool holds the words in play for a round.
package pool

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"chainmail/internal/letter"
	"chainmail/pkg/shufflebag"
)

// Category tags what collecting a word does.
type Category rune

const (
	Blessing Category = '+'
	Curse    Category = 'x'
	Decoy    Category = '~'
)

func (c Category) String() string {
	switch c {
	case Blessing:
		return "blessing"
	case Curse:
		return "curse"
	default:
		return "decoy"
	}
}

// Hue band and fixed saturation/lightness of entry colours.
const (
	HueMin     = 165
	HueSpan    = 180
	Saturation = 0.3
	Lightness  = 0.4
)

// Entry is a playable word.
type Entry struct {
	Word     string
	Category Category
	Hue      float64
	Color    colorful.Color
}

// Hex returns the entry colour as #rrggbb.
func (e Entry) Hex() string { return e.Color.Hex() }

// Pool deals entries from a shuffle bag and forgets them once matched.
type Pool struct {
	bag *shufflebag.Bag[Entry]
}

// New builds the pool for l: blessing targets, curse targets, then decoys.
func New(l *letter.Letter, r *rand.Rand) (*Pool, error) {
	var entries []Entry
	for _, t := range l.Blessings {
		entries = append(entries, newEntry(t.TargetWord, Blessing, r))
	}
	for _, t := range l.Curses {
		entries = append(entries, newEntry(t.TargetWord, Curse, r))
	}
	for _, w := range l.Decoys {
		entries = append(entries, newEntry(w, Decoy, r))
	}
	bag, err := shufflebag.New(entries, r)
	if err != nil {
		return nil, fmt.Errorf("word pool: %w", err)
	}
	return &Pool{bag: bag}, nil
}

func newEntry(word string, c Category, r *rand.Rand) Entry {
	hue := float64((r.Uint32()%HueSpan + HueMin) % 360)
	return Entry{
		Word:     word,
		Category: c,
		Hue:      hue,
		Color:    colorful.Hsl(hue, Saturation, Lightness),
	}
}

// Draw returns the next entry. ok is false once every entry has been removed.
func (p *Pool) Draw(r *rand.Rand) (Entry, bool) {
	return p.bag.Pick(r)
}

// RemoveAndReshuffle drops the first blessing or curse entry for word and
// reshuffles. Decoys are never removed.
func (p *Pool) RemoveAndReshuffle(word string, r *rand.Rand) bool {
	return p.bag.Remove(func(e Entry) bool {
		return e.Word == word && e.Category != Decoy
	}, r)
}

// Reset reshuffles the remaining entries.
func (p *Pool) Reset(r *rand.Rand) { p.bag.Reset(r) }

// Contains reports whether any entry has the given word.
func (p *Pool) Contains(word string) bool {
	for _, e := range p.bag.Items() {
		if e.Word == word {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (p *Pool) Len() int { return p.bag.Len() }

// Entries returns a copy of every entry.
func (p *Pool) Entries() []Entry { return p.bag.Items() }
