package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"chainmail/internal/game"
	"chainmail/internal/input"
	"chainmail/internal/viewmodel"
	"chainmail/internal/views"
)

// frameInterval bounds how often the stream pushes a fresh state frame.
const frameInterval = 50 * time.Millisecond

type SessionHandler struct {
	store *game.Store
}

func NewSessionHandler(store *game.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/session/{id}", func(r chi.Router) {
		r.Get("/", h.sessionPage)
		r.Get("/state", h.state)
		r.Get("/stream", h.stream)
		r.Get("/rounds", h.rounds)
		r.Post("/input", h.input)
		r.Delete("/", h.close)
	})
}

func (h *SessionHandler) host(w http.ResponseWriter, r *http.Request) (*game.Host, bool) {
	host, ok := h.store.GetSession(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
	}
	return host, ok
}

func (h *SessionHandler) sessionPage(w http.ResponseWriter, r *http.Request) {
	host, ok := h.host(w, r)
	if !ok {
		return
	}
	render(w, r, views.SessionPage(viewmodel.SessionPage{
		Title:   title,
		Session: viewmodel.FromSnapshot(host.ID, host.Snapshot()),
	}))
}

func (h *SessionHandler) state(w http.ResponseWriter, r *http.Request) {
	host, ok := h.host(w, r)
	if !ok {
		return
	}
	writeJSON(w, viewmodel.FromSnapshot(host.ID, host.Snapshot()))
}

func (h *SessionHandler) rounds(w http.ResponseWriter, r *http.Request) {
	host, ok := h.host(w, r)
	if !ok {
		return
	}
	rounds := h.store.Rounds()
	if rounds == nil {
		writeJSON(w, []viewmodel.RoundRow{})
		return
	}
	results, err := rounds.Session(r.Context(), host.ID, historyMax)
	if err != nil {
		log.Error().Err(err).Str("session", host.ID).Msg("failed to load rounds")
		http.Error(w, "failed to load rounds", http.StatusInternalServerError)
		return
	}
	writeJSON(w, viewmodel.FromRounds(results))
}

func (h *SessionHandler) input(w http.ResponseWriter, r *http.Request) {
	host, ok := h.host(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ev, ok := input.FromKeyName(r.FormValue("key"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !host.Send(ev) {
		log.Warn().Str("session", host.ID).Stringer("kind", ev.Kind).Msg("input dropped")
		http.Error(w, "session busy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *SessionHandler) close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.GetSession(id); !ok {
		http.NotFound(w, r)
		return
	}
	h.store.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// stream pushes game events as "event" frames and the rendered state as
// "state" frames. State frames are rate limited to frameInterval.
func (h *SessionHandler) stream(w http.ResponseWriter, r *http.Request) {
	host, ok := h.host(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := host.Events().Subscribe()
	defer host.Events().Unsubscribe(sub)

	sendState := func() {
		vm := viewmodel.FromSnapshot(host.ID, host.Snapshot())
		payload, err := json.Marshal(vm)
		if err != nil {
			log.Error().Err(err).Str("session", host.ID).Msg("failed to encode state")
			return
		}
		writeSSE(w, "state", string(payload))
		writeSSE(w, "letter", renderToString(r, views.LetterPanel(vm)))
		flusher.Flush()
	}

	sendState()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			writeSSE(w, "event", string(payload))
			flusher.Flush()
		case <-frames.C:
			if _, alive := h.store.GetSession(host.ID); !alive {
				writeSSE(w, "closed", host.ID)
				flusher.Flush()
				return
			}
			sendState()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}
