package realtime

import (
	"context"
	"testing"
	"time"
)

func TestNewRoomStore(t *testing.T) {
	s := NewRoomStore[string]()
	if s == nil {
		t.Fatal("NewRoomStore returned nil")
	}
}

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_Go_OncePerRoom(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	started := make(chan string, 2)
	run := func(ctx context.Context, state string) {
		started <- state
		<-ctx.Done()
	}
	if !s.Go(context.Background(), "r1", run) {
		t.Fatal("first Go should start a worker")
	}
	if s.Go(context.Background(), "r1", run) {
		t.Error("second Go should not start another worker")
	}
	if got := <-started; got != "x" {
		t.Errorf("worker state %q, want x", got)
	}
	s.Close()
}

func TestRoomStore_Go_UnknownRoom(t *testing.T) {
	s := NewRoomStore[string]()
	if s.Go(context.Background(), "missing", func(context.Context, string) {}) {
		t.Error("Go should refuse an unknown room")
	}
}

func TestRoomStore_Remove_CancelsWorker(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 1)
	done := make(chan struct{})
	s.Go(context.Background(), "r1", func(ctx context.Context, _ int) {
		<-ctx.Done()
		close(done)
	})
	s.Remove("r1")
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker not cancelled by Remove")
	}
	if s.Len() != 0 {
		t.Errorf("Len %d, want 0", s.Len())
	}
}

func TestRoomStore_Each(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("a", 1)
	s.Create("b", 2)
	sum := 0
	s.Each(func(_ string, v int) { sum += v })
	if sum != 3 {
		t.Errorf("sum %d, want 3", sum)
	}
}
