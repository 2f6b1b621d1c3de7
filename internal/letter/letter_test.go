package letter

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"chainmail/internal/content"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func TestMaskWord_QuickFox(t *testing.T) {
	msg := "The quick fox jumps"
	word, ok := WordAt(msg, 2)
	if !ok || word != "fox" {
		t.Fatalf("WordAt %q %v, want fox", word, ok)
	}
	if got := MaskWord(msg, 2); got != "The quick ___ jumps" {
		t.Errorf("MaskWord %q, want %q", got, "The quick ___ jumps")
	}
}

func TestMaskWord_RuneLength(t *testing.T) {
	if got := MaskWord("a café b", 1); got != "a ____ b" {
		t.Errorf("MaskWord %q, want %q", got, "a ____ b")
	}
}

func TestWordAt_OutOfRange(t *testing.T) {
	if _, ok := WordAt("one two", 2); ok {
		t.Error("index 2 should be out of range")
	}
	if _, ok := WordAt("one two", -1); ok {
		t.Error("negative index should be out of range")
	}
}

func TestRange_Sample(t *testing.T) {
	r := testRand()
	rg := Range{Min: 4, Max: 6}
	for i := 0; i < 200; i++ {
		v := rg.Sample(r)
		if v < 4 || v > 6 {
			t.Fatalf("Sample %d out of [4,6]", v)
		}
	}
	if v := (Range{Min: 3, Max: 3}).Sample(r); v != 3 {
		t.Errorf("degenerate range sample %d, want 3", v)
	}
}

func TestAmounts_Validate(t *testing.T) {
	if err := DefaultAmounts().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	a := DefaultAmounts()
	a.Blessings = Range{Min: 0, Max: 2}
	if a.Validate() == nil {
		t.Error("zero blessings should be rejected")
	}
	a = DefaultAmounts()
	a.TimeLimit = Range{Min: 50, Max: 40}
	if a.Validate() == nil {
		t.Error("inverted range should be rejected")
	}
}

func smallPack() *content.Pack {
	return &content.Pack{
		Flavors: []content.Flavor{{
			Title:   "CHAIN",
			Body:    "Send to {recipients} people in {time_limit} seconds",
			Signoff: "{recipients}/{time_limit}",
			Footer:  "END",
		}},
		Names: []content.Name{{FirstName: "Robin", Pronouns: content.TheyThemTheir}},
		Blessings: []content.TestimonialStub{
			{Message: "The quick fox jumps", Effect: content.ScoreEffect(1), Targets: []int{2}},
			{Message: "lost {pronoun_possessive} Hat today", Effect: content.IncomeEffect(3), Targets: []int{2}},
		},
		Curses: []content.TestimonialStub{
			{Message: "broke the chain", Effect: content.MoneyEffect(-4), Targets: []int{2}},
		},
		Decoys: []content.TestimonialStub{
			{Message: "likes toast", Effect: content.Effect{}, Targets: []int{1}},
			{Message: "owns a parrot", Effect: content.Effect{}, Targets: []int{2}},
		},
	}
}

func TestPull_AssemblesLetter(t *testing.T) {
	r := testRand()
	bag, err := NewBag(smallPack(), r)
	if err != nil {
		t.Fatalf("NewBag: %v", err)
	}
	a := Amounts{
		Recipients: Range{Min: 9, Max: 9},
		TimeLimit:  Range{Min: 45, Max: 45},
		Blessings:  Range{Min: 2, Max: 2},
		Curses:     Range{Min: 1, Max: 1},
		Decoys:     Range{Min: 2, Max: 2},
	}
	l, err := bag.Pull(r, a)
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if l.Recipients != 9 || l.TimeLimit != 45 {
		t.Errorf("recipients/time %d/%d, want 9/45", l.Recipients, l.TimeLimit)
	}
	if l.Interpolated.Body != "Send to 9 people in 45 seconds" {
		t.Errorf("body %q", l.Interpolated.Body)
	}
	if l.Interpolated.Signoff != "9/45" {
		t.Errorf("signoff %q", l.Interpolated.Signoff)
	}
	if len(l.Blessings) != 2 || len(l.Curses) != 1 || len(l.Decoys) != 2 {
		t.Fatalf("counts %d/%d/%d, want 2/1/2", len(l.Blessings), len(l.Curses), len(l.Decoys))
	}
	for _, b := range l.Blessings {
		switch b.TargetWord {
		case "fox":
			if !strings.HasSuffix(b.Message, "The quick ___ jumps.") {
				t.Errorf("fox message %q", b.Message)
			}
		case "hat":
			if !strings.HasSuffix(b.Message, "lost their ___ today.") {
				t.Errorf("hat message %q", b.Message)
			}
		default:
			t.Errorf("unexpected target %q", b.TargetWord)
		}
		if !strings.HasPrefix(b.Message, b.Author()+" ") {
			t.Errorf("message %q missing author prefix %q", b.Message, b.Author())
		}
		if b.LastInitial < 'A' || b.LastInitial > 'Z' {
			t.Errorf("last initial %q", b.LastInitial)
		}
		if b.Collected {
			t.Error("fresh testimonial already collected")
		}
	}
	if l.Curses[0].TargetWord != "chain" {
		t.Errorf("curse target %q, want chain", l.Curses[0].TargetWord)
	}
	if !strings.HasSuffix(l.Curses[0].Message, "broke the _____.") {
		t.Errorf("curse message %q", l.Curses[0].Message)
	}
}

func TestPull_Deterministic(t *testing.T) {
	pull := func() *Letter {
		r := rand.New(rand.NewPCG(1, 2))
		bag, err := NewBag(smallPack(), r)
		if err != nil {
			t.Fatal(err)
		}
		l, err := bag.Pull(r, DefaultAmounts())
		if err != nil {
			t.Fatal(err)
		}
		return l
	}
	a, b := pull(), pull()
	if a.Recipients != b.Recipients || a.TimeLimit != b.TimeLimit || len(a.Blessings) != len(b.Blessings) {
		t.Fatal("same seed produced different letters")
	}
	for i := range a.Blessings {
		if a.Blessings[i].Message != b.Blessings[i].Message {
			t.Errorf("blessing %d: %q != %q", i, a.Blessings[i].Message, b.Blessings[i].Message)
		}
	}
}

func TestPull_TargetsDistinctWithinLetter(t *testing.T) {
	r := testRand()
	bag, err := NewBag(smallPack(), r)
	if err != nil {
		t.Fatal(err)
	}
	// Ask for more blessings than the pack holds.
	a := DefaultAmounts()
	a.Blessings = Range{Min: 5, Max: 5}
	l, err := bag.Pull(r, a)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Blessings) != 2 {
		t.Errorf("blessings %d, want 2 distinct", len(l.Blessings))
	}
}

func TestNewBag_EmptyCategory(t *testing.T) {
	p := smallPack()
	p.Curses = nil
	_, err := NewBag(p, testRand())
	if !errors.Is(err, content.ErrIntegrity) {
		t.Fatalf("err %v, want integrity error", err)
	}
}

func TestLetter_CollectOnce(t *testing.T) {
	l := &Letter{
		Blessings: []Testimonial{
			{TargetWord: "alpha", Effect: content.IncomeEffect(3)},
			{TargetWord: "beta", Effect: content.ScoreEffect(1)},
		},
		Curses: []Testimonial{{TargetWord: "gamma", Effect: content.MoneyEffect(-2)}},
	}
	if got := l.Collect("alpha"); len(got) != 1 || got[0] != content.IncomeEffect(3) {
		t.Fatalf("Collect alpha %v", got)
	}
	if got := l.Collect("alpha"); len(got) != 0 {
		t.Errorf("second Collect alpha %v, want none", got)
	}
	if l.Cleared() {
		t.Error("cleared with beta outstanding")
	}
	l.Collect("beta")
	if !l.Cleared() {
		t.Error("not cleared with all blessings collected")
	}
	if b, c := l.CollectedCount(); b != 2 || c != 0 {
		t.Errorf("CollectedCount %d/%d, want 2/0", b, c)
	}
}
