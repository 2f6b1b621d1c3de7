package game

import "chainmail/internal/content"

// Statistics live for the whole session.
type Statistics struct {
	Score  int32 `json:"score"`
	Money  int32 `json:"money"`
	Income int32 `json:"income"`
}

// Apply adds an effect to the matching counter.
func (s *Statistics) Apply(e content.Effect) {
	switch e.Kind {
	case content.Score:
		s.Score += e.Amount
	case content.Money:
		s.Money += e.Amount
	case content.Income:
		s.Income += e.Amount
	case content.Noop:
	}
}

// Payroll pays income into money.
func (s *Statistics) Payroll() {
	s.Money += s.Income
}
