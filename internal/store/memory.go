package store

import (
	"context"
	"sync"
)

// DefaultMemoryLimit is how many results NewMemory keeps.
const DefaultMemoryLimit = 1000

// Memory keeps the most recent results in process. It is the default when no
// database is configured.
type Memory struct {
	mu      sync.RWMutex
	results []RoundResult
	limit   int
	closed  bool
}

func NewMemory() *Memory { return NewMemoryLimit(DefaultMemoryLimit) }

// NewMemoryLimit keeps at most limit results, dropping the oldest first.
func NewMemoryLimit(limit int) *Memory {
	if limit < 1 {
		limit = 1
	}
	return &Memory{limit: limit}
}

func (m *Memory) Save(_ context.Context, r RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if len(m.results) == m.limit {
		copy(m.results, m.results[1:])
		m.results = m.results[:len(m.results)-1]
	}
	m.results = append(m.results, r)
	return nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]RoundResult, error) {
	return m.filter("", limit)
}

func (m *Memory) Session(_ context.Context, sessionID string, limit int) ([]RoundResult, error) {
	return m.filter(sessionID, limit)
}

func (m *Memory) filter(sessionID string, limit int) ([]RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	var out []RoundResult
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		if sessionID != "" && m.results[i].SessionID != sessionID {
			continue
		}
		out = append(out, m.results[i])
	}
	return out, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
