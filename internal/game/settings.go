package game

import (
	"errors"
	"fmt"
	"time"

	"chainmail/internal/input"
	"chainmail/internal/letter"
	"chainmail/internal/reveal"
)

// Settings tune a session.
type Settings struct {
	Letter        letter.Amounts `yaml:"letter"`
	Reveal        reveal.Timing  `yaml:"reveal"`
	SpawnInterval time.Duration  `yaml:"spawn_interval"`
	// FallSpeed is in field heights per second.
	FallSpeed    float64       `yaml:"fall_speed"`
	Transition   time.Duration `yaml:"transition"`
	SkipInfo     bool          `yaml:"skip_info"`
	PromptMax    int           `yaml:"prompt_max"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Letter:        letter.DefaultAmounts(),
		Reveal:        reveal.DefaultTiming(),
		SpawnInterval: 1200 * time.Millisecond,
		FallSpeed:     0.35,
		Transition:    time.Second,
		PromptMax:     input.DefaultPromptMax,
		TickInterval:  time.Second / 60,
	}
}

// Validate reports the first unusable setting.
func (s Settings) Validate() error {
	if err := s.Letter.Validate(); err != nil {
		return fmt.Errorf("letter: %w", err)
	}
	if s.SpawnInterval <= 0 {
		return errors.New("spawn_interval must be positive")
	}
	if s.FallSpeed <= 0 {
		return errors.New("fall_speed must be positive")
	}
	if s.Transition < 0 {
		return errors.New("transition must not be negative")
	}
	if s.PromptMax <= 0 {
		return errors.New("prompt_max must be positive")
	}
	if s.TickInterval <= 0 {
		return errors.New("tick_interval must be positive")
	}
	return nil
}
