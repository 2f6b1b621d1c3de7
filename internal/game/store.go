package game

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"chainmail/internal/content"
	"chainmail/internal/rng"
	"chainmail/internal/store"
	"chainmail/pkg/realtime"
)

// Store holds the running sessions and delegates to realtime.RoomStore for
// their lifetimes.
type Store struct {
	r        *realtime.RoomStore[*Host]
	pack     *content.Pack
	settings Settings
	seeds    rng.Seeds
	rounds   store.RoundStore
}

// NewStore creates an empty session store. Every session shares pack,
// settings and the round history.
func NewStore(pack *content.Pack, settings Settings, seeds rng.Seeds, rounds store.RoundStore) *Store {
	return &Store{
		r:        realtime.NewRoomStore[*Host](),
		pack:     pack,
		settings: settings,
		seeds:    seeds,
		rounds:   rounds,
	}
}

// CreateSession starts a new session on its own goroutine. Its streams are
// derived from the store seeds and the session ID, so no two sessions deal the
// same letters.
func (s *Store) CreateSession() (*Host, error) {
	uid := uuid.New()
	session, err := NewSession(s.pack, s.settings, rng.NewStreams(s.seeds.Derive(sessionSalt(uid))))
	if err != nil {
		return nil, err
	}
	id := uid.String()
	h := NewHost(id, session, s.rounds, s.settings.TickInterval)
	s.r.Create(id, h)
	s.r.Go(context.Background(), id, func(ctx context.Context, h *Host) {
		if err := h.Run(ctx); err != nil {
			s.r.Remove(h.ID)
		}
	})
	return h, nil
}

func sessionSalt(id uuid.UUID) uint64 {
	return binary.BigEndian.Uint64(id[:8]) ^ binary.BigEndian.Uint64(id[8:])
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Host, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Remove stops a session.
func (s *Store) Remove(id string) {
	s.r.Remove(id)
}

// Len returns the number of sessions.
func (s *Store) Len() int { return s.r.Len() }

// Reap stops sessions unused for longer than maxIdle and returns how many
// were removed.
func (s *Store) Reap(now time.Time, maxIdle time.Duration) int {
	var idle []string
	s.r.Each(func(id string, h *Host) {
		if h.Idle(now) > maxIdle {
			idle = append(idle, id)
		}
	})
	for _, id := range idle {
		s.r.Remove(id)
	}
	if len(idle) > 0 {
		log.Info().Int("count", len(idle)).Msg("reaped idle sessions")
	}
	return len(idle)
}

// Rounds returns the round history.
func (s *Store) Rounds() store.RoundStore { return s.rounds }

// Close stops every session and waits for them.
func (s *Store) Close() {
	s.r.Close()
}
