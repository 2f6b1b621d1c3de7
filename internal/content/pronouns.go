package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pronouns selects the pronoun set used to render a testimonial.
type Pronouns int

const (
	HeHimHis Pronouns = iota
	SheHerHers
	TheyThemTheir
)

func (p Pronouns) Subject() string {
	switch p {
	case HeHimHis:
		return "he"
	case SheHerHers:
		return "she"
	default:
		return "they"
	}
}

func (p Pronouns) Object() string {
	switch p {
	case HeHimHis:
		return "him"
	case SheHerHers:
		return "her"
	default:
		return "them"
	}
}

func (p Pronouns) Possessive() string {
	switch p {
	case HeHimHis:
		return "his"
	case SheHerHers:
		return "her"
	default:
		return "their"
	}
}

// Render substitutes the pronoun placeholders in text.
func (p Pronouns) Render(text string) string {
	return strings.NewReplacer(
		PronounSubjectToken, p.Subject(),
		PronounObjectToken, p.Object(),
		PronounPossessiveToken, p.Possessive(),
	).Replace(text)
}

func (p Pronouns) String() string {
	switch p {
	case HeHimHis:
		return "he_him_his"
	case SheHerHers:
		return "she_her_hers"
	default:
		return "they_them_their"
	}
}

// UnmarshalYAML accepts snake_case (he_him_his) or CamelCase (HeHimHis).
func (p *Pronouns) UnmarshalYAML(node *yaml.Node) error {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(node.Value), "_", ""))
	switch key {
	case "hehimhis":
		*p = HeHimHis
	case "sheherhers":
		*p = SheHerHers
	case "theythemtheir":
		*p = TheyThemTheir
	default:
		return fmt.Errorf("line %d: unknown pronouns %q", node.Line, node.Value)
	}
	return nil
}
