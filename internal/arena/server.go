package arena

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
)

// Server exposes stored matches, runner stats and the spectator socket.
type Server struct {
	store  *Store
	runner *Runner
	hub    *Hub
	logger log.Logger
	srv    *http.Server
}

func NewServer(addr string, store *Store, runner *Runner, hub *Hub, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Server{
		store:  store,
		runner: runner,
		hub:    hub,
		logger: log.With(logger, "component", "server"),
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router builds the routes. Handlers for missing components answer 404.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	if s.hub != nil {
		r.HandleFunc("/ws", s.hub.ServeWs)
	}
	r.HandleFunc("/matches", s.listMatches).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}", s.getMatch).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.stats).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	_ = level.Info(s.logger).Log("msg", "listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		_ = level.Debug(s.logger).Log("method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.NotFound(w, r)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	matches, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if matches == nil {
		matches = []MatchRecord{}
	}
	s.writeJSON(w, matches)
}

type matchDetail struct {
	*MatchRecord
	Log []TurnRecord `json:"log"`
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.NotFound(w, r)
		return
	}
	rec, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	turns, err := rec.Moves()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, matchDetail{MatchRecord: rec, Log: turns})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, s.runner.Stats())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		_ = level.Warn(s.logger).Log("msg", "write response", "err", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	_ = level.Error(s.logger).Log("msg", "request failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
