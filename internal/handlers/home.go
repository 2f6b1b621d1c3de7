package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"chainmail/internal/game"
	"chainmail/internal/viewmodel"
	"chainmail/internal/views"
)

const (
	title          = "Chainmail"
	historyDefault = 20
	historyMax     = 200
)

type HomeHandler struct {
	store *game.Store
}

func NewHomeHandler(store *game.Store) *HomeHandler {
	return &HomeHandler{store: store}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/sessions", h.createSession)
	r.Get("/history", h.history)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	data := viewmodel.HomePage{
		Title:    title,
		Sessions: h.store.Len(),
	}
	if rounds := h.store.Rounds(); rounds != nil {
		recent, err := rounds.Recent(r.Context(), historyDefault)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load history")
		}
		data.History = viewmodel.FromRounds(recent)
	}
	render(w, r, views.HomePage(data))
}

func (h *HomeHandler) createSession(w http.ResponseWriter, r *http.Request) {
	host, err := h.store.CreateSession()
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/session/"+host.ID, http.StatusSeeOther)
}

func (h *HomeHandler) history(w http.ResponseWriter, r *http.Request) {
	rounds := h.store.Rounds()
	if rounds == nil {
		writeJSON(w, []viewmodel.RoundRow{})
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), historyDefault)
	if limit < 1 {
		limit = 1
	}
	if limit > historyMax {
		limit = historyMax
	}
	recent, err := rounds.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to load history")
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, viewmodel.FromRounds(recent))
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
