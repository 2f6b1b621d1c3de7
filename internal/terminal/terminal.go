package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"chainmail/internal/game"
	"chainmail/internal/input"
	"chainmail/internal/viewmodel"
)

// DefaultFrameInterval is the redraw rate.
const DefaultFrameInterval = time.Second / 30

// UI connects a host to a screen.
type UI struct {
	screen tcell.Screen
	host   *game.Host
	frame  time.Duration
}

// New returns a UI drawing host on screen. The screen must be initialised.
func New(screen tcell.Screen, host *game.Host) *UI {
	return &UI{screen: screen, host: host, frame: DefaultFrameInterval}
}

// Run polls keys, redraws and rings the bell on round cues until ctx is done
// or the player quits. The host must already be running.
func (u *UI) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan tcell.Event, 16)
	go u.poll(ctx, keys)

	sub := u.host.Events().Subscribe()
	defer u.host.Events().Unsubscribe(sub)

	frames := time.NewTicker(u.frame)
	defer frames.Stop()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-keys:
			if _, ok := ev.(*tcell.EventResize); ok {
				u.screen.Sync()
				continue
			}
			in, ok := input.FromTcell(ev)
			if !ok {
				continue
			}
			if in.Kind == input.Quit {
				return
			}
			if !u.host.Send(in) {
				log.Warn().Stringer("kind", in.Kind).Msg("input dropped")
			}
		case ev, open := <-sub:
			if !open {
				return
			}
			u.cue(ev)
		case <-frames.C:
			u.draw()
		}
	}
}

func (u *UI) poll(ctx context.Context, out chan<- tcell.Event) {
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (u *UI) draw() {
	Draw(u.screen, viewmodel.FromSnapshot(u.host.ID, u.host.Snapshot()))
	u.screen.Show()
}

// cue rings the terminal bell for the cues a player must not miss.
func (u *UI) cue(ev game.Event) {
	if ev.Kind != game.EventCue || !u.host.Snapshot().Sound {
		return
	}
	switch ev.Cue {
	case game.CueLetterClear, game.CueLetterFail, game.CueGuessCurse:
		_ = u.screen.Beep()
	}
}
