package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"chainmail/internal/pool"
)

type fixedPlacer float64

func (p fixedPlacer) Place(*rand.Rand, pool.Entry) float64 { return float64(p) }

func TestField_SpawnStepTake(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	f := NewField(0.5, fixedPlacer(0.25))
	a := f.Spawn(pool.Entry{Word: "alpha"}, r)
	f.Spawn(pool.Entry{Word: "beta"}, r)
	if a.X != 0.25 || a.Y != 0 {
		t.Errorf("spawned at (%v,%v), want (0.25,0)", a.X, a.Y)
	}
	if fell := f.Step(time.Second); len(fell) != 0 {
		t.Errorf("words fell after 1s: %v", fell)
	}
	if y := f.Words()[0].Y; y != 0.5 {
		t.Errorf("y %v, want 0.5", y)
	}
	if got := f.Take("alpha"); len(got) != 1 {
		t.Fatalf("Take returned %d words", len(got))
	}
	if f.Visible("alpha") || !f.Visible("beta") {
		t.Error("Take removed the wrong words")
	}
	if fell := f.Step(1100 * time.Millisecond); len(fell) != 1 || fell[0].Entry.Word != "beta" {
		t.Errorf("fell %v, want beta", fell)
	}
	if f.Len() != 0 {
		t.Errorf("Len %d, want 0", f.Len())
	}
}

func TestField_IDsAreUnique(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	f := NewField(1, nil)
	a := f.Spawn(pool.Entry{Word: "a"}, r)
	b := f.Spawn(pool.Entry{Word: "a"}, r)
	if a.ID == b.ID {
		t.Error("duplicate IDs")
	}
	if n := f.Clear(); n != 2 {
		t.Errorf("Clear removed %d, want 2", n)
	}
}

func TestUniformPlacer_Range(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	p := UniformPlacer{Margin: 0.1}
	for i := 0; i < 100; i++ {
		x := p.Place(r, pool.Entry{})
		if x < 0.1 || x >= 0.9 {
			t.Fatalf("x %v outside [0.1, 0.9)", x)
		}
	}
}

func TestTransition(t *testing.T) {
	tr := Transition{Duration: time.Second}
	tr.Start()
	if tr.Step(400 * time.Millisecond) {
		t.Error("forward done early")
	}
	if got := tr.Progress(); got != 0.4 {
		t.Errorf("progress %v, want 0.4", got)
	}
	tr.Reverse()
	if tr.Step(300 * time.Millisecond) {
		t.Error("reverse done early")
	}
	if !tr.Step(200 * time.Millisecond) {
		t.Error("reverse not done")
	}
	if tr.Progress() != 0 {
		t.Errorf("progress %v, want 0", tr.Progress())
	}
	tr.Start()
	if !tr.Step(2 * time.Second) {
		t.Error("forward not done")
	}
	if tr.Progress() != 1 {
		t.Errorf("progress %v, want 1", tr.Progress())
	}
}

func TestState_String(t *testing.T) {
	for s, want := range map[State]string{Loading: "loading", Info: "info", Printing: "printing", Playing: "playing", Resetting: "resetting"} {
		if s.String() != want {
			t.Errorf("%d: %q, want %q", s, s.String(), want)
		}
	}
}
