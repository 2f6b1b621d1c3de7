// Package content holds the records a content pack is made of (flavors, names
// and testimonial stubs) and loads them from YAML.
package content

import "strings"

// Placeholders substituted when a letter is assembled.
const (
	RecipientsToken        = "{recipients}"
	TimeLimitToken         = "{time_limit}"
	PronounSubjectToken    = "{pronoun_subject}"
	PronounObjectToken     = "{pronoun_object}"
	PronounPossessiveToken = "{pronoun_possessive}"
)

// Flavor is the frame of a chain letter.
type Flavor struct {
	Title   string `yaml:"title"`
	Body    string `yaml:"body"`
	Signoff string `yaml:"signoff"`
	Footer  string `yaml:"footer"`
}

// Name personalises a testimonial.
type Name struct {
	FirstName string   `yaml:"first_name"`
	Pronouns  Pronouns `yaml:"pronouns"`
}

// TestimonialStub is the template for a blessing, a curse or a decoy.
// Targets lists word indices of Message; only the first is used.
type TestimonialStub struct {
	Message string `yaml:"message"`
	Effect  Effect `yaml:"effect"`
	Targets []int  `yaml:"targets"`
}

// Words splits a message the way target indices count words.
func Words(message string) []string {
	return strings.Fields(message)
}

// Target returns the lowercased word at the stub's first target index.
// It assumes the stub passed validation.
func (s TestimonialStub) Target() string {
	return strings.ToLower(Words(s.Message)[s.Targets[0]])
}

// Pack is a complete, validated content pack.
type Pack struct {
	Flavors   []Flavor
	Names     []Name
	Blessings []TestimonialStub
	Curses    []TestimonialStub
	Decoys    []TestimonialStub
}
