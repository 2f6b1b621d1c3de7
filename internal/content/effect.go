package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EffectKind tags the variant of an Effect.
type EffectKind int

const (
	Noop EffectKind = iota
	Score
	Money
	Income
)

func (k EffectKind) String() string {
	switch k {
	case Score:
		return "score"
	case Money:
		return "money"
	case Income:
		return "income"
	default:
		return "noop"
	}
}

// Effect is applied to the session statistics when a testimonial is collected.
type Effect struct {
	Kind   EffectKind
	Amount int32
}

// ScoreEffect, MoneyEffect and IncomeEffect build the non-noop variants.
func ScoreEffect(n int32) Effect  { return Effect{Kind: Score, Amount: n} }
func MoneyEffect(n int32) Effect  { return Effect{Kind: Money, Amount: n} }
func IncomeEffect(n int32) Effect { return Effect{Kind: Income, Amount: n} }

func (e Effect) String() string {
	if e.Kind == Noop {
		return "noop"
	}
	return fmt.Sprintf("%s(%+d)", e.Kind, e.Amount)
}

// UnmarshalYAML accepts `noop` or a single-key mapping such as `{score: 3}`.
func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if strings.EqualFold(strings.TrimSpace(node.Value), "noop") {
			*e = Effect{Kind: Noop}
			return nil
		}
		return fmt.Errorf("line %d: unknown effect %q", node.Line, node.Value)
	case yaml.MappingNode:
		var m map[string]int32
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("line %d: effect: %w", node.Line, err)
		}
		if len(m) != 1 {
			return fmt.Errorf("line %d: effect must have exactly one key", node.Line)
		}
		for k, v := range m {
			switch strings.ToLower(k) {
			case "score":
				*e = ScoreEffect(v)
			case "money":
				*e = MoneyEffect(v)
			case "income":
				*e = IncomeEffect(v)
			case "noop":
				*e = Effect{Kind: Noop}
			default:
				return fmt.Errorf("line %d: unknown effect %q", node.Line, k)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: malformed effect", node.Line)
	}
}
