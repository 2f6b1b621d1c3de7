package letter

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"chainmail/internal/content"
	"chainmail/pkg/shufflebag"
)

const initials = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Bag deals letters from shuffle bags over a content pack.
type Bag struct {
	flavors   *shufflebag.Bag[content.Flavor]
	names     *shufflebag.Bag[content.Name]
	blessings *shufflebag.Bag[content.TestimonialStub]
	curses    *shufflebag.Bag[content.TestimonialStub]
	decoys    *shufflebag.Bag[content.TestimonialStub]
}

// NewBag builds one shuffle bag per content category. An empty category is a
// content integrity error.
func NewBag(pack *content.Pack, r *rand.Rand) (*Bag, error) {
	var (
		b   Bag
		err error
	)
	if b.flavors, err = shufflebag.New(pack.Flavors, r); err != nil {
		return nil, bagError(content.FlavorsFile, err)
	}
	if b.names, err = shufflebag.New(pack.Names, r); err != nil {
		return nil, bagError(content.NamesFile, err)
	}
	if b.blessings, err = shufflebag.New(pack.Blessings, r); err != nil {
		return nil, bagError(content.BlessingsFile, err)
	}
	if b.curses, err = shufflebag.New(pack.Curses, r); err != nil {
		return nil, bagError(content.CursesFile, err)
	}
	if b.decoys, err = shufflebag.New(pack.Decoys, r); err != nil {
		return nil, bagError(content.DecoysFile, err)
	}
	return &b, nil
}

func bagError(file string, err error) error {
	return fmt.Errorf("letter bag: %w", &content.IntegrityError{File: file, Index: -1, Reason: err.Error()})
}

// Pull assembles a new letter.
func (b *Bag) Pull(r *rand.Rand, a Amounts) (*Letter, error) {
	flavor, _ := b.flavors.Pick(r)
	l := &Letter{
		Flavor:     flavor,
		Recipients: a.Recipients.Sample(r),
		TimeLimit:  a.TimeLimit.Sample(r),
	}
	l.Interpolated = InterpolatedFlavor{
		Body:    interpolate(flavor.Body, l.Recipients, l.TimeLimit),
		Signoff: interpolate(flavor.Signoff, l.Recipients, l.TimeLimit),
	}

	seen := map[string]bool{}
	for _, stub := range pickDistinct(b.blessings, r, a.Blessings.Sample(r), seen) {
		t, err := b.testimonial(stub, r)
		if err != nil {
			return nil, fmt.Errorf("blessing: %w", err)
		}
		l.Blessings = append(l.Blessings, t)
	}
	for _, stub := range pickDistinct(b.curses, r, a.Curses.Sample(r), seen) {
		t, err := b.testimonial(stub, r)
		if err != nil {
			return nil, fmt.Errorf("curse: %w", err)
		}
		l.Curses = append(l.Curses, t)
	}
	for _, stub := range pickDistinct(b.decoys, r, a.Decoys.Sample(r), seen) {
		l.Decoys = append(l.Decoys, stub.Target())
	}
	return l, nil
}

// pickDistinct draws up to n stubs whose targets are not yet in seen. A pass
// of the bag that yields nothing new ends the search early.
func pickDistinct(bag *shufflebag.Bag[content.TestimonialStub], r *rand.Rand, n int, seen map[string]bool) []content.TestimonialStub {
	var out []content.TestimonialStub
	misses := 0
	for len(out) < n && misses < bag.Len() {
		stub, ok := bag.Pick(r)
		if !ok {
			break
		}
		w := stub.Target()
		if seen[w] {
			misses++
			continue
		}
		seen[w] = true
		out = append(out, stub)
	}
	return out
}

func (b *Bag) testimonial(stub content.TestimonialStub, r *rand.Rand) (Testimonial, error) {
	name, _ := b.names.Pick(r)
	rendered := name.Pronouns.Render(stub.Message)
	if len(stub.Targets) == 0 {
		return Testimonial{}, &content.IntegrityError{File: "testimonial", Index: -1, Reason: "no targets"}
	}
	target, ok := WordAt(rendered, stub.Targets[0])
	if !ok {
		return Testimonial{}, &content.IntegrityError{
			File:   "testimonial",
			Index:  -1,
			Reason: fmt.Sprintf("target %d out of range in %q", stub.Targets[0], rendered),
		}
	}
	initial := rune(initials[r.IntN(len(initials))])
	return Testimonial{
		FirstName:   name.FirstName,
		LastInitial: initial,
		Pronouns:    name.Pronouns,
		Message:     fmt.Sprintf("%s %c. %s.", name.FirstName, initial, MaskWord(rendered, stub.Targets[0])),
		TargetWord:  strings.ToLower(target),
		Effect:      stub.Effect,
	}, nil
}
