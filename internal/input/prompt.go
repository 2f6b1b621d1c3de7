package input

import "unicode"

// DefaultPromptMax bounds the prompt length.
const DefaultPromptMax = 32

// Prompt is the submission buffer. It only holds lowercase letters.
type Prompt struct {
	buf []rune
	Max int
}

// Push appends r lowercased if it is a letter and the prompt has room.
func (p *Prompt) Push(r rune) bool {
	if !unicode.IsLetter(r) {
		return false
	}
	max := p.Max
	if max <= 0 {
		max = DefaultPromptMax
	}
	if len(p.buf) >= max {
		return false
	}
	p.buf = append(p.buf, unicode.ToLower(r))
	return true
}

// Pop removes the last rune.
func (p *Prompt) Pop() bool {
	if len(p.buf) == 0 {
		return false
	}
	p.buf = p.buf[:len(p.buf)-1]
	return true
}

// Clear empties the prompt.
func (p *Prompt) Clear() { p.buf = p.buf[:0] }

// Len returns the number of runes typed.
func (p *Prompt) Len() int { return len(p.buf) }

func (p *Prompt) String() string { return string(p.buf) }
