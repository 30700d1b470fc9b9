package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/events"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/store"
)

// Upper bound on frames a single /advance may apply
const maxAdvanceFrames = 10000

// ctxSessionKey is the context key type for the locked boardSession
type ctxSessionKey struct{}

type cellReq struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func (c cellReq) cell() (core.Cell, bool) {
	if c.X == nil || c.Y == nil {
		return core.Cell{}, false
	}
	return core.Cell{X: *c.X, Y: *c.Y}, true
}

type appliedRes struct {
	Applied bool `json:"applied"`
}

type rulesReq struct {
	AllowDiagonal      *bool `json:"allow_diagonal"`
	AllowCornerCutting *bool `json:"allow_corner_cutting"`
}

type advanceReq struct {
	Ms     int `json:"ms"`
	Frames int `json:"frames"`
}

type advanceRes struct {
	Reveal  string `json:"reveal"`
	Pending int    `json:"pending"`
	Markers int    `json:"markers"`
}

type searchRes struct {
	Found    bool        `json:"found"`
	Failure  string      `json:"failure,omitempty"`
	Cost     int         `json:"cost"`
	Steps    int         `json:"steps"`
	Expanded int         `json:"expanded"`
	Path     []core.Cell `json:"path"`
}

type eventRes struct {
	Type      string    `json:"type"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// mountSession registers all /sessions/{id} routes
func (s *Server) mountSession(r chi.Router) {
	r.Get("/", s.handleSnapshot)
	r.Delete("/", s.handleDeleteSession)

	r.Post("/obstacles", s.handlePlaceObstacle)
	r.Delete("/obstacles/{x}/{y}", s.handleRemoveObstacle)

	r.Post("/start", s.handleToggleStart)
	r.Delete("/start", s.handleClearStart)
	r.Post("/goal", s.handleToggleGoal)
	r.Delete("/goal", s.handleClearGoal)

	r.Put("/rules", s.handleRules)
	r.Post("/search", s.handleSearch)
	r.Post("/advance", s.handleAdvance)
	r.Post("/reset", s.handleReset)
	r.Get("/events", s.handleEvents)

	r.Put("/layouts/{name}", s.handleSaveLayout)
	r.Post("/layouts/{name}", s.handleLoadLayout)
}

// withSession resolves {id}, holds the session lock for the request, and injects it into context
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bs, ok := s.sessions.get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		bs.mu.Lock()
		defer bs.mu.Unlock()
		bs.touch(s.sessions.now())

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, bs)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *boardSession {
	bs, _ := r.Context().Value(ctxSessionKey{}).(*boardSession)
	return bs
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	bs := s.sessions.create()
	s.log.Info().Str("session", bs.id).Msg("session created")
	writeJSON(w, http.StatusCreated, map[string]string{"id": bs.id})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	bs := sessionFrom(r)
	s.sessions.remove(bs.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).session.Snapshot())
}

// cellCommand decodes {x,y} and applies cmd at that cell
func (s *Server) cellCommand(w http.ResponseWriter, r *http.Request, cmd func(*engine.Session, core.Cell) bool) {
	var req cellReq
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c, ok := req.cell()
	if !ok {
		writeError(w, http.StatusBadRequest, "missing_cell")
		return
	}
	writeJSON(w, http.StatusOK, appliedRes{Applied: cmd(sessionFrom(r).session, c)})
}

func (s *Server) handlePlaceObstacle(w http.ResponseWriter, r *http.Request) {
	s.cellCommand(w, r, (*engine.Session).PlaceObstacle)
}

func (s *Server) handleToggleStart(w http.ResponseWriter, r *http.Request) {
	s.cellCommand(w, r, (*engine.Session).ToggleStart)
}

func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	s.cellCommand(w, r, (*engine.Session).ToggleGoal)
}

func (s *Server) handleRemoveObstacle(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "bad_cell")
		return
	}
	applied := sessionFrom(r).session.RemoveObstacle(core.Cell{X: x, Y: y})
	writeJSON(w, http.StatusOK, appliedRes{Applied: applied})
}

func (s *Server) handleClearStart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, appliedRes{Applied: sessionFrom(r).session.ClearStart()})
}

func (s *Server) handleClearGoal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, appliedRes{Applied: sessionFrom(r).session.ClearGoal()})
}

// handleRules changes movement rules; they apply from the next search
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	var req rulesReq
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r).session
	rules := sess.Rules()
	if req.AllowDiagonal != nil {
		rules.AllowDiagonal = *req.AllowDiagonal
	}
	if req.AllowCornerCutting != nil {
		rules.AllowCornerCutting = *req.AllowCornerCutting
	}
	sess.SetRules(rules)
	writeJSON(w, http.StatusOK, map[string]bool{
		"allow_diagonal":       rules.AllowDiagonal,
		"allow_corner_cutting": rules.AllowCornerCutting,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	res := sessionFrom(r).session.RunSearch()
	out := searchRes{
		Found:    res.Found,
		Cost:     res.Cost,
		Steps:    len(res.Path),
		Expanded: res.Expanded,
		Path:     res.Path,
	}
	if res.Failure != navigation.FailureNone {
		out.Failure = res.Failure.String()
	}
	if out.Path == nil {
		out.Path = []core.Cell{}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAdvance feeds frames of ms each to the reveal; each frame emits at most one marker
// An empty body advances one frame of one reveal interval
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceReq
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Ms < 0 || req.Frames < 0 || req.Frames > maxAdvanceFrames {
		writeError(w, http.StatusBadRequest, "bad_advance")
		return
	}
	if req.Frames == 0 {
		req.Frames = 1
	}

	sess := sessionFrom(r).session
	dt := time.Duration(req.Ms) * time.Millisecond
	if req.Ms == 0 {
		dt = s.sessions.cfg.RevealInterval
	}
	for i := 0; i < req.Frames; i++ {
		sess.Advance(dt)
	}

	snap := sess.Snapshot()
	writeJSON(w, http.StatusOK, advanceRes{
		Reveal:  snap.Reveal,
		Pending: snap.Pending,
		Markers: len(snap.Markers),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).session.Reset()
	writeJSON(w, http.StatusOK, appliedRes{Applied: true})
}

// handleEvents drains the session's queue in emission order
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	drained := sessionFrom(r).queue.Consume()
	out := make([]eventRes, 0, len(drained))
	for _, ev := range drained {
		out = append(out, eventRes{
			Type:      events.GetEventName(ev.Type),
			Seq:       ev.Seq,
			Timestamp: ev.Timestamp,
			Payload:   ev.Payload,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------ layouts ------------------------------------

func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "store_disabled")
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.store.Save(r.Context(), name, sessionFrom(r).session.Layout()); err != nil {
		s.log.Error().Err(err).Str("layout", name).Msg("save layout")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": name})
}

func (s *Server) handleLoadLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "store_disabled")
		return
	}
	name := chi.URLParam(r, "name")
	l, err := s.store.Load(r.Context(), name)
	if errors.Is(err, store.ErrLayoutNotFound) {
		writeError(w, http.StatusNotFound, "layout_not_found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("layout", name).Msg("load layout")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	sess := sessionFrom(r).session
	if err := sess.LoadLayout(l); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_layout")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "store_disabled")
		return
	}
	list, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list layouts")
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "store_disabled")
		return
	}
	name := chi.URLParam(r, "name")
	err := s.store.Delete(r.Context(), name)
	if errors.Is(err, store.ErrLayoutNotFound) {
		writeError(w, http.StatusNotFound, "layout_not_found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("layout", name).Msg("delete layout")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
