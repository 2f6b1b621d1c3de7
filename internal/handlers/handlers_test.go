package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainmail/internal/content"
	"chainmail/internal/game"
	"chainmail/internal/rng"
	"chainmail/internal/store"
	"chainmail/internal/viewmodel"
)

func newTestRouter(t *testing.T) (*chi.Mux, *game.Store) {
	t.Helper()
	pack, err := content.Default()
	require.NoError(t, err)
	settings := game.DefaultSettings()
	settings.TickInterval = 5 * time.Millisecond
	s := game.NewStore(pack, settings, rng.DefaultSeeds(), store.NewMemory())
	t.Cleanup(s.Close)

	r := chi.NewRouter()
	NewHomeHandler(s).RegisterRoutes(r)
	NewSessionHandler(s).RegisterRoutes(r)
	return r, s
}

func do(r http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := do(r, http.MethodPost, "/sessions", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/session/"), "location %q", loc)
	return strings.TrimPrefix(loc, "/session/")
}

func fetchState(t *testing.T, r http.Handler, id string) viewmodel.Session {
	t.Helper()
	rec := do(r, http.MethodGet, "/session/"+id+"/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vm viewmodel.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	return vm
}

func TestHome(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Chainmail")
}

func TestCreateSession(t *testing.T) {
	r, s := newTestRouter(t)
	id := createSession(t, r)
	_, ok := s.GetSession(id)
	assert.True(t, ok)

	rec := do(r, http.MethodGet, "/session/"+id+"/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-session="`+id+`"`)
}

func TestUnknownSession(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, path := range []string{"/session/nope/", "/session/nope/state", "/session/nope/stream"} {
		rec := do(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	rec := do(r, http.MethodPost, "/session/nope/input", url.Values{"key": {"a"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInput_ContinueStartsPrinting(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)

	require.Eventually(t, func() bool {
		return fetchState(t, r, id).State == game.Info.String()
	}, time.Second, 5*time.Millisecond)

	rec := do(r, http.MethodPost, "/session/"+id+"/input", url.Values{"key": {" "}})
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		vm := fetchState(t, r, id)
		return vm.State == game.Printing.String() && vm.Round == 1
	}, time.Second, 5*time.Millisecond)
}

func TestInput_UnknownKeyIgnored(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)
	rec := do(r, http.MethodPost, "/session/"+id+"/input", url.Values{"key": {"Shift"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHistory_Empty(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/history?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHistory_ListsSavedRounds(t *testing.T) {
	r, s := newTestRouter(t)
	err := s.Rounds().Save(context.Background(), store.RoundResult{
		SessionID:      "0123456789",
		Round:          2,
		Cleared:        true,
		Blessings:      4,
		BlessingsTotal: 4,
		CursesTotal:    3,
		FinishedAt:     time.Unix(0, 0).UTC(),
	})
	require.NoError(t, err)

	rec := do(r, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []viewmodel.RoundRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "01234567", rows[0].Session)
	assert.Equal(t, "cleared", rows[0].Outcome)
	assert.Equal(t, "4/4", rows[0].Blessings)
	assert.Equal(t, "0/3", rows[0].Curses)

	page := do(r, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), "01234567")
}

func TestCloseSession(t *testing.T) {
	r, s := newTestRouter(t)
	id := createSession(t, r)
	rec := do(r, http.MethodDelete, "/session/"+id+"/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := s.GetSession(id)
	assert.False(t, ok)
}

func TestStream_SendsInitialState(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/session/"+id+"/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		r.ServeHTTP(rec, req)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the request context ended")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: state\n")
	assert.Contains(t, body, "event: letter\n")
	assert.Contains(t, body, `"id":"`+id+`"`)
}

func TestWriteSSE_SplitsLines(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSSE(rec, "letter", "a\nb")
	assert.Equal(t, "event: letter\ndata: a\ndata: b\n\n", rec.Body.String())
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, parseInt("", 7))
	assert.Equal(t, 7, parseInt("x", 7))
	assert.Equal(t, 3, parseInt("3", 7))
}
