package game

import (
	"math/rand/v2"
	"time"

	"chainmail/internal/pool"
)

// FieldWord is a pool entry falling through the play field. X is in [0, 1)
// across the field and Y grows from 0 at the top to 1 at the bottom.
type FieldWord struct {
	ID    int
	Entry pool.Entry
	X     float64
	Y     float64
}

// Placer picks the horizontal spawn position of a word.
type Placer interface {
	Place(r *rand.Rand, e pool.Entry) float64
}

// UniformPlacer spreads words evenly, keeping Margin clear on both sides.
type UniformPlacer struct {
	Margin float64
}

func (p UniformPlacer) Place(r *rand.Rand, _ pool.Entry) float64 {
	return p.Margin + r.Float64()*(1-2*p.Margin)
}

// Field holds the spawned words.
type Field struct {
	words     []FieldWord
	nextID    int
	fallSpeed float64
	placer    Placer
}

// NewField creates an empty field.
func NewField(fallSpeed float64, p Placer) *Field {
	if p == nil {
		p = UniformPlacer{Margin: 0.1}
	}
	return &Field{fallSpeed: fallSpeed, placer: p}
}

// Spawn adds e at the top of the field.
func (f *Field) Spawn(e pool.Entry, r *rand.Rand) FieldWord {
	f.nextID++
	w := FieldWord{ID: f.nextID, Entry: e, X: f.placer.Place(r, e)}
	f.words = append(f.words, w)
	return w
}

// Step moves every word down and despawns those that left the field.
func (f *Field) Step(delta time.Duration) (fell []FieldWord) {
	dy := f.fallSpeed * delta.Seconds()
	kept := f.words[:0]
	for _, w := range f.words {
		w.Y += dy
		if w.Y > 1 {
			fell = append(fell, w)
			continue
		}
		kept = append(kept, w)
	}
	f.words = kept
	return fell
}

// Visible reports whether a word with this text is on the field.
func (f *Field) Visible(word string) bool {
	for _, w := range f.words {
		if w.Entry.Word == word {
			return true
		}
	}
	return false
}

// Take despawns and returns every word with this text.
func (f *Field) Take(word string) []FieldWord {
	var taken []FieldWord
	kept := f.words[:0]
	for _, w := range f.words {
		if w.Entry.Word == word {
			taken = append(taken, w)
			continue
		}
		kept = append(kept, w)
	}
	f.words = kept
	return taken
}

// Clear despawns everything and returns how many words were removed.
func (f *Field) Clear() int {
	n := len(f.words)
	f.words = f.words[:0]
	return n
}

// Words returns a copy of the spawned words.
func (f *Field) Words() []FieldWord {
	return append([]FieldWord(nil), f.words...)
}

func (f *Field) Len() int { return len(f.words) }
