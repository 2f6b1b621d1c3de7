// Package shufflebag implements sampling without repeats: every item is drawn
// once per pass, and a fresh permutation is dealt when a pass is exhausted.
package shufflebag

import (
	"errors"
	"math/rand/v2"
)

// ErrEmpty is returned when a bag is built from no items.
var ErrEmpty = errors.New("shufflebag: no items")

// Bag deals items from a shuffled permutation of its backing collection.
type Bag[T any] struct {
	items  []T
	order  []int
	cursor int
	last   int
}

// New copies items into a bag and deals the first permutation.
func New[T any](items []T, r *rand.Rand) (*Bag[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	b := &Bag[T]{
		items: append([]T(nil), items...),
		last:  -1,
	}
	b.Reset(r)
	return b, nil
}

// Pick returns the next item, reshuffling first when the current pass is
// exhausted. ok is false only when the bag was emptied with Remove.
func (b *Bag[T]) Pick(r *rand.Rand) (item T, ok bool) {
	if len(b.items) == 0 {
		return item, false
	}
	if b.cursor >= len(b.order) {
		b.deal(r, true)
	}
	idx := b.order[b.cursor]
	b.cursor++
	b.last = idx
	return b.items[idx], true
}

// Reset discards the rest of the current pass and deals a new permutation.
func (b *Bag[T]) Reset(r *rand.Rand) {
	b.deal(r, false)
}

// Remove drops the first item for which match returns true and reshuffles,
// so the remaining items stay uniformly distributed.
func (b *Bag[T]) Remove(match func(T) bool, r *rand.Rand) bool {
	for i, item := range b.items {
		if !match(item) {
			continue
		}
		b.items = append(b.items[:i], b.items[i+1:]...)
		b.last = -1
		b.Reset(r)
		return true
	}
	return false
}

// Len reports how many items back the bag.
func (b *Bag[T]) Len() int { return len(b.items) }

// Items returns a copy of the backing collection in insertion order.
func (b *Bag[T]) Items() []T {
	return append([]T(nil), b.items...)
}

func (b *Bag[T]) deal(r *rand.Rand, continuing bool) {
	n := len(b.items)
	if cap(b.order) < n {
		b.order = make([]int, n)
	}
	b.order = b.order[:n]
	for i := range b.order {
		b.order[i] = i
	}
	r.Shuffle(n, func(i, j int) {
		b.order[i], b.order[j] = b.order[j], b.order[i]
	})
	// Only a pass that follows an exhausted one can produce a back-to-back repeat.
	if continuing && n > 1 && b.order[0] == b.last {
		j := 1 + r.IntN(n-1)
		b.order[0], b.order[j] = b.order[j], b.order[0]
	}
	b.cursor = 0
}
