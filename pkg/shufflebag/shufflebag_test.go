package shufflebag

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNew_Empty(t *testing.T) {
	_, err := New[int](nil, newRand(1))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err %v, want ErrEmpty", err)
	}
}

func TestPick_PassIsPermutation(t *testing.T) {
	items := []string{"a", "b", "b", "c", "d", "e"}
	for seed := uint64(0); seed < 20; seed++ {
		r := newRand(seed)
		b, err := New(items, r)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for pass := 0; pass < 3; pass++ {
			got := make([]string, 0, len(items))
			for i := 0; i < len(items); i++ {
				item, ok := b.Pick(r)
				if !ok {
					t.Fatal("Pick returned false on non-empty bag")
				}
				got = append(got, item)
			}
			sort.Strings(got)
			want := append([]string(nil), items...)
			sort.Strings(want)
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("seed %d pass %d: got %v, want permutation of %v", seed, pass, got, items)
				}
			}
		}
	}
}

func TestPick_NoRepeatAcrossPassBoundary(t *testing.T) {
	items := []int{1, 2, 3}
	for seed := uint64(0); seed < 50; seed++ {
		r := newRand(seed)
		b, _ := New(items, r)
		prev := -1
		for i := 0; i < 30; i++ {
			item, _ := b.Pick(r)
			if item == prev {
				t.Fatalf("seed %d draw %d: repeated %d back to back", seed, i, item)
			}
			prev = item
		}
	}
}

func TestPick_SingleItem(t *testing.T) {
	r := newRand(3)
	b, _ := New([]string{"only"}, r)
	for i := 0; i < 5; i++ {
		item, ok := b.Pick(r)
		if !ok || item != "only" {
			t.Fatalf("Pick = %q, %v; want only, true", item, ok)
		}
	}
}

func TestRemove_ReshufflesAndShrinks(t *testing.T) {
	r := newRand(7)
	b, _ := New([]string{"alpha", "beta", "gamma"}, r)
	b.Pick(r)

	if !b.Remove(func(s string) bool { return s == "alpha" }, r) {
		t.Fatal("Remove should find alpha")
	}
	if b.Len() != 2 {
		t.Errorf("Len %d, want 2", b.Len())
	}
	seen := map[string]int{}
	for i := 0; i < 2; i++ {
		item, _ := b.Pick(r)
		seen[item]++
	}
	if seen["alpha"] != 0 {
		t.Error("removed item was drawn")
	}
	if seen["beta"] != 1 || seen["gamma"] != 1 {
		t.Errorf("pass after Remove %v, want beta and gamma once", seen)
	}
	if b.Remove(func(s string) bool { return s == "alpha" }, r) {
		t.Error("Remove should not find alpha twice")
	}
}

func TestRemove_LastItemEmptiesBag(t *testing.T) {
	r := newRand(9)
	b, _ := New([]int{42}, r)
	b.Remove(func(int) bool { return true }, r)
	if _, ok := b.Pick(r); ok {
		t.Error("Pick on emptied bag should return false")
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	r := newRand(11)
	b, _ := New([]int{1, 2}, r)
	items := b.Items()
	items[0] = 99
	if b.Items()[0] != 1 {
		t.Error("Items should not expose backing slice")
	}
}
