// Package httpserver exposes board sessions over a JSON API.
//
// Each session is a core engine.Session with its own event queue; a per-session
// mutex keeps commands single-owner. Reveal progress is driven by the client through
// /advance, so the server holds no tickers.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/grid"
	"github.com/lixenwraith/gridpath/store"
)

const (
	handlerTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20

	// DefaultSessionTTL is how long an untouched session survives
	DefaultSessionTTL = 30 * time.Minute
)

// LayoutStore persists named layouts; *store.LayoutStore implements it
type LayoutStore interface {
	Save(ctx context.Context, name string, l grid.Layout) error
	Load(ctx context.Context, name string) (grid.Layout, error)
	List(ctx context.Context) ([]store.Summary, error)
	Delete(ctx context.Context, name string) error
}

// Options configures a Server
type Options struct {
	Session engine.SessionConfig

	// Store is optional; layout routes answer 503 without it
	Store LayoutStore

	Logger     zerolog.Logger
	SessionTTL time.Duration
}

// Server bundles router, live sessions and the layout store
type Server struct {
	r        *chi.Mux
	sessions *sessionRegistry
	store    LayoutStore
	log      zerolog.Logger
	ttl      time.Duration
}

// New constructs a Server, installs middleware, and registers routes
func New(opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Session.Logger == nil {
		l := opts.Logger
		opts.Session.Logger = &l
	}

	s := &Server{
		r:        chi.NewRouter(),
		sessions: newSessionRegistry(opts.Session),
		store:    opts.Store,
		log:      opts.Logger.With().Str("component", "http").Logger(),
		ttl:      opts.SessionTTL,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(handlerTimeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.count()})
	})

	s.r.Post("/sessions", s.handleCreateSession)
	s.r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.withSession)
		s.mountSession(r)
	})

	s.r.Get("/layouts", s.handleListLayouts)
	s.r.Delete("/layouts/{name}", s.handleDeleteLayout)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Router exposes the internal router (useful for tests)
func (s *Server) Router() chi.Router { return s.r }

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// Idle sessions are expired in the background while serving
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.janitor(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) janitor(ctx context.Context) {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.expire(s.ttl); n > 0 {
				s.log.Info().Int("expired", n).Msg("sessions expired")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		began := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("req_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(began)).
			Msg("request")
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeBody reads a bounded JSON body into v, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
