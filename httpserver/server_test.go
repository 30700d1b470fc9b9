package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/store"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	opts := Options{
		Session: engine.DefaultSessionConfig(),
		Logger:  zerolog.Nop(),
	}
	if withStore {
		st, err := store.Open(filepath.Join(t.TempDir(), "layouts.db"), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		opts.Store = st
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	res := decode[map[string]string](t, rec)
	_, err := uuid.Parse(res["id"])
	require.NoError(t, err)
	return res["id"]
}

func applied(t *testing.T, rec *httptest.ResponseRecorder) bool {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[appliedRes](t, rec).Applied
}

func eventTypes(t *testing.T, s *Server, id string) []string {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/sessions/"+id+"/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var types []string
	for _, ev := range decode[[]eventRes](t, rec) {
		types = append(types, ev.Type)
	}
	return types
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, true, decode[map[string]any](t, rec)["ok"])
}

func TestUnknownSession(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session_not_found", decode[map[string]string](t, rec)["error"])

	rec = do(t, s, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchAndRevealFlow(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s)
	base := "/sessions/" + id

	assert.True(t, applied(t, do(t, s, http.MethodPost, base+"/obstacles", `{"x":5,"y":5}`)))
	assert.False(t, applied(t, do(t, s, http.MethodPost, base+"/obstacles", `{"x":5,"y":5}`)), "already blocked")
	assert.False(t, applied(t, do(t, s, http.MethodPost, base+"/obstacles", `{"x":0,"y":5}`)), "border")
	assert.True(t, applied(t, do(t, s, http.MethodPost, base+"/start", `{"x":1,"y":1}`)))
	assert.True(t, applied(t, do(t, s, http.MethodPost, base+"/goal", `{"x":4,"y":1}`)))

	rec := do(t, s, http.MethodPost, base+"/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[searchRes](t, rec)
	assert.True(t, res.Found)
	assert.Equal(t, 300, res.Cost)
	assert.Equal(t, 3, res.Steps)
	require.Len(t, res.Path, 3)
	assert.Equal(t, 4, res.Path[2].X)

	assert.Equal(t, []string{"ObstaclePlaced", "StartSet", "GoalSet", "SearchCompleted"}, eventTypes(t, s, id))

	// Goal-first: one interval reveals Goal and finishes
	rec = do(t, s, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	adv := decode[advanceRes](t, rec)
	assert.Equal(t, "idle", adv.Reveal)
	assert.Equal(t, 1, adv.Markers)

	assert.Equal(t, []string{"PathMarkerPlaced", "RevealFinished"}, eventTypes(t, s, id))
	assert.Empty(t, eventTypes(t, s, id), "queue drained")

	// Mutation clears markers
	assert.True(t, applied(t, do(t, s, http.MethodDelete, base+"/obstacles/5/5", "")))
	assert.Equal(t, []string{"ObstacleRemoved", "AllMarkersCleared"}, eventTypes(t, s, id))
}

func TestAdvanceFrames(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s)
	base := "/sessions/" + id

	do(t, s, http.MethodPost, base+"/start", `{"x":1,"y":1}`)
	do(t, s, http.MethodPost, base+"/goal", `{"x":1,"y":6}`)
	require.True(t, decode[searchRes](t, do(t, s, http.MethodPost, base+"/search", "")).Found)

	// Frames shorter than the interval accumulate
	rec := do(t, s, http.MethodPost, base+"/advance", `{"ms":20,"frames":2}`)
	adv := decode[advanceRes](t, rec)
	assert.Equal(t, "revealing", adv.Reveal)
	assert.Equal(t, 0, adv.Markers)

	rec = do(t, s, http.MethodPost, base+"/advance", `{"ms":20}`)
	adv = decode[advanceRes](t, rec)
	assert.Equal(t, "idle", adv.Reveal)
	assert.Equal(t, 1, adv.Markers)

	rec = do(t, s, http.MethodPost, base+"/advance", `{"ms":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRulesApplyAtNextSearch(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s)
	base := "/sessions/" + id

	do(t, s, http.MethodPost, base+"/start", `{"x":1,"y":1}`)
	do(t, s, http.MethodPost, base+"/goal", `{"x":4,"y":4}`)
	assert.Equal(t, 600, decode[searchRes](t, do(t, s, http.MethodPost, base+"/search", "")).Cost)

	rec := do(t, s, http.MethodPut, base+"/rules", `{"allow_diagonal":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"allow_diagonal": true, "allow_corner_cutting": false}, decode[map[string]bool](t, rec))

	assert.Equal(t, 420, decode[searchRes](t, do(t, s, http.MethodPost, base+"/search", "")).Cost)

	snap := decode[engine.Snapshot](t, do(t, s, http.MethodGet, base, ""))
	assert.True(t, snap.AllowDiagonal)
	require.NotNil(t, snap.LastSearch)
	assert.Equal(t, 420, snap.LastSearch.Cost)
}

func TestSearchFailure(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s)

	res := decode[searchRes](t, do(t, s, http.MethodPost, "/sessions/"+id+"/search", ""))
	assert.False(t, res.Found)
	assert.Equal(t, "start unset", res.Failure)
	assert.Empty(t, res.Path)

	rec := do(t, s, http.MethodGet, "/sessions/"+id+"/events", "")
	evs := decode[[]map[string]any](t, rec)
	require.Len(t, evs, 1)
	assert.Equal(t, "SearchFailed", evs[0]["type"])
	payload := evs[0]["payload"].(map[string]any)
	assert.Equal(t, "start unset", payload["reason"])
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, false)
	base := "/sessions/" + createSession(t, s)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   string
	}{
		{"malformed json", http.MethodPost, base + "/obstacles", `{"x":`, "bad_json"},
		{"unknown field", http.MethodPost, base + "/obstacles", `{"x":1,"y":1,"z":1}`, "bad_json"},
		{"missing y", http.MethodPost, base + "/start", `{"x":1}`, "missing_cell"},
		{"non-numeric cell", http.MethodDelete, base + "/obstacles/a/1", "", "bad_cell"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestResetAndClear(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s)
	base := "/sessions/" + id

	do(t, s, http.MethodPost, base+"/start", `{"x":1,"y":1}`)
	assert.True(t, applied(t, do(t, s, http.MethodDelete, base+"/start", "")))
	assert.False(t, applied(t, do(t, s, http.MethodDelete, base+"/start", "")))
	assert.False(t, applied(t, do(t, s, http.MethodDelete, base+"/goal", "")))

	do(t, s, http.MethodPost, base+"/obstacles", `{"x":3,"y":3}`)
	assert.True(t, applied(t, do(t, s, http.MethodPost, base+"/reset", "")))

	snap := decode[engine.Snapshot](t, do(t, s, http.MethodGet, base, ""))
	assert.Empty(t, snap.Obstacles)
	assert.Nil(t, snap.Start)
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s)

	rec := do(t, s, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLayoutRoutes(t *testing.T) {
	s := newTestServer(t, true)
	src := "/sessions/" + createSession(t, s)

	do(t, s, http.MethodPost, src+"/obstacles", `{"x":7,"y":7}`)
	do(t, s, http.MethodPost, src+"/start", `{"x":2,"y":2}`)
	rec := do(t, s, http.MethodPut, src+"/layouts/demo", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	dst := "/sessions/" + createSession(t, s)
	rec = do(t, s, http.MethodPost, dst+"/layouts/demo", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap := decode[engine.Snapshot](t, rec)
	require.Len(t, snap.Obstacles, 1)
	assert.Equal(t, 7, snap.Obstacles[0].X)
	require.NotNil(t, snap.Start)
	assert.Equal(t, 2, snap.Start.X)

	rec = do(t, s, http.MethodPost, dst+"/layouts/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/layouts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]store.Summary](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "demo", list[0].Name)
	assert.Equal(t, 1, list[0].Obstacles)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/layouts/demo", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/layouts/demo", "").Code)
}

func TestLayoutRoutesWithoutStore(t *testing.T) {
	s := newTestServer(t, false)
	base := "/sessions/" + createSession(t, s)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodPut, base+"/layouts/x", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodPost, base+"/layouts/x", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/layouts", "").Code)
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reg := newSessionRegistry(engine.DefaultSessionConfig())
	reg.now = func() time.Time { return now }

	old := reg.create()
	now = now.Add(20 * time.Minute)
	fresh := reg.create()
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, reg.expire(30*time.Minute))
	_, ok := reg.get(old.id)
	assert.False(t, ok)
	_, ok = reg.get(fresh.id)
	assert.True(t, ok)
	assert.Equal(t, 1, reg.count())
}
