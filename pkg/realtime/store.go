package realtime

import (
	"context"
	"sync"
)

// Room holds the state for one room and the cancel func of its worker.
type Room[T any] struct {
	ID     string
	State  T
	cancel context.CancelFunc
}

// RoomStore manages rooms and the goroutines that drive them.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	wg    sync.WaitGroup
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
	}
}

// Create adds a room with the given id and state.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Len reports the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Each calls fn for every room. fn must not call back into the store.
func (s *RoomStore[T]) Each(fn func(id string, state T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, r := range s.rooms {
		fn(id, r.State)
	}
}

// Go starts run for the room unless a worker is already running. The context
// passed to run is cancelled by Remove or Close. When run returns the worker
// slot is freed.
func (s *RoomStore[T]) Go(parent context.Context, id string, run func(ctx context.Context, state T)) bool {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if !ok || r.cancel != nil {
		s.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	state := r.State
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			if cur, ok := s.rooms[id]; ok && cur == r {
				r.cancel = nil
			}
			s.mu.Unlock()
			cancel()
		}()
		run(ctx, state)
	}()
	return true
}

// Remove stops the room's worker, if any, and forgets the room.
func (s *RoomStore[T]) Remove(id string) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if ok {
		delete(s.rooms, id)
	}
	s.mu.Unlock()
	if ok && r.cancel != nil {
		r.cancel()
	}
}

// Close stops every worker and waits for them to return.
func (s *RoomStore[T]) Close() {
	s.mu.Lock()
	for _, r := range s.rooms {
		if r.cancel != nil {
			r.cancel()
		}
	}
	s.mu.Unlock()
	s.wg.Wait()
}
