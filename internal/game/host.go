package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"chainmail/internal/input"
	"chainmail/internal/store"
	"chainmail/pkg/realtime"
)

const (
	inboxSize = 64
	saveQueue = 16
	// saveTimeout bounds one history write.
	saveTimeout = 5 * time.Second
)

// Host runs a Session on its own goroutine. Input arrives through Send,
// readers get copies through Snapshot and events fan out to subscribers.
// Finished rounds are written by a separate goroutine so a slow store never
// holds up the loop.
type Host struct {
	ID       string
	session  *Session
	interval time.Duration
	inbox    chan input.Event
	events   *realtime.Broadcaster[Event]
	rounds   store.RoundStore
	saves    chan store.RoundResult

	mu       sync.RWMutex
	snap     Snapshot
	lastSeen time.Time
}

// NewHost wraps s. rounds may be nil when history is not kept.
func NewHost(id string, s *Session, rounds store.RoundStore, interval time.Duration) *Host {
	return &Host{
		ID:       id,
		session:  s,
		interval: interval,
		inbox:    make(chan input.Event, inboxSize),
		events:   realtime.NewBroadcaster[Event](),
		rounds:   rounds,
		saves:    make(chan store.RoundResult, saveQueue),
		snap:     s.Snapshot(),
		lastSeen: time.Now(),
	}
}

// Run drives the session until ctx is done or the session fails.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		h.write()
	}()
	defer func() {
		close(h.saves)
		writer.Wait()
	}()

	h.publish(h.session.Ready())
	if err := h.session.Err(); err != nil {
		return err
	}
	log.Info().Str("session", h.ID).Msg("session started")

	handle := func(ev input.Event) {
		h.publish(h.session.Input(ev))
		if h.session.Err() != nil {
			cancel()
		}
	}
	step := func(delta time.Duration) {
		h.publish(h.session.Tick(delta))
		if h.session.Err() != nil {
			cancel()
		}
	}
	realtime.Run(ctx, h.interval, h.inbox, handle, step)

	if err := h.session.Err(); err != nil {
		log.Error().Err(err).Str("session", h.ID).Msg("session stopped")
		return err
	}
	log.Info().Str("session", h.ID).Msg("session closed")
	return nil
}

// publish refreshes the snapshot, fans events out and queues finished rounds.
func (h *Host) publish(events []Event) {
	snap := h.session.Snapshot()
	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()
	for _, ev := range events {
		if ev.Outcome != nil {
			h.record(ev.Outcome)
		}
		h.events.Publish(ev)
	}
}

func (h *Host) record(o *Outcome) {
	log.Info().
		Str("session", h.ID).
		Int("round", o.Round).
		Bool("cleared", o.Cleared).
		Int32("score", o.Stats.Score).
		Int32("money", o.Stats.Money).
		Msg("round finished")
	if h.rounds == nil {
		return
	}
	r := store.RoundResult{
		SessionID:      h.ID,
		Round:          o.Round,
		Cleared:        o.Cleared,
		Blessings:      o.Blessings,
		BlessingsTotal: o.BlessingsTotal,
		Curses:         o.Curses,
		CursesTotal:    o.CursesTotal,
		TimeLimit:      o.TimeLimit,
		Score:          o.Stats.Score,
		Money:          o.Stats.Money,
		Income:         o.Stats.Income,
		FinishedAt:     time.Now().UTC(),
	}
	select {
	case h.saves <- r:
	default:
		log.Warn().Str("session", h.ID).Int("round", o.Round).Msg("round history queue full, dropping result")
	}
}

// write saves queued rounds until the queue is closed. Writes outlive the
// loop context so the last rounds of a stopped session are still kept.
func (h *Host) write() {
	for r := range h.saves {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		if err := h.rounds.Save(ctx, r); err != nil {
			log.Warn().Err(err).Str("session", h.ID).Int("round", r.Round).Msg("failed to save round")
		}
		cancel()
	}
}

// Send queues an input event. It reports false when the inbox is full and
// the event was dropped.
func (h *Host) Send(ev input.Event) bool {
	h.touch()
	select {
	case h.inbox <- ev:
		return true
	default:
		return false
	}
}

// Snapshot returns the state as of the last step.
func (h *Host) Snapshot() Snapshot {
	h.touch()
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// Events returns the broadcaster session events are published on.
func (h *Host) Events() *realtime.Broadcaster[Event] {
	return h.events
}

// Idle reports how long ago the host was last used.
func (h *Host) Idle(now time.Time) time.Duration {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return now.Sub(h.lastSeen)
}

func (h *Host) touch() {
	h.mu.Lock()
	h.lastSeen = time.Now()
	h.mu.Unlock()
}
