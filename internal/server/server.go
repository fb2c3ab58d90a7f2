// Package server exposes a casino session over HTTP: a command endpoint
// driving the console, a websocket feed of notification events and the
// Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/lox/minicasino/internal/casino"
	"github.com/lox/minicasino/internal/console"
	"github.com/lox/minicasino/internal/metrics"
	"github.com/lox/minicasino/internal/notify"
)

const (
	maxCommandBytes = 1 << 10
	shutdownTimeout = 5 * time.Second
)

// Server serves one session. Commands are applied one at a time.
type Server struct {
	addr    string
	logger  *log.Logger
	hub     *notify.Hub
	metrics *metrics.Metrics
	router  chi.Router

	mu      sync.Mutex
	console *console.Console
}

// NewServer creates a server for c. hub and m may be nil, which leaves the
// matching routes out.
func NewServer(addr string, c *console.Console, hub *notify.Hub, m *metrics.Metrics, logger *log.Logger) *Server {
	s := &Server{
		addr:    addr,
		logger:  logger.WithPrefix("server"),
		hub:     hub,
		metrics: m,
		console: c,
	}

	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/health", s.handleHealth)
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	if hub != nil {
		r.Get("/events", hub.ServeHTTP)
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/command", s.handleCommand)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	if s.hub != nil {
		s.hub.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// CommandRequest is the body of POST /api/command.
type CommandRequest struct {
	Command string `json:"command"`
}

// Frame is a reveal frame on the wire.
type Frame struct {
	DelayMS int64  `json:"delay_ms"`
	Text    string `json:"text"`
	Final   bool   `json:"final,omitempty"`
}

// CommandResponse is the result of a command.
type CommandResponse struct {
	Lines  []string `json:"lines"`
	Frames []Frame  `json:"frames,omitempty"`
	Error  string   `json:"error,omitempty"`
	State
}

// State describes the session.
type State struct {
	Game    string       `json:"game"`
	Prompt  string       `json:"prompt"`
	Balance int          `json:"balance"`
	Bet     int          `json:"bet,omitempty"`
	Sound   bool         `json:"sound"`
	Stats   casino.Stats `json:"stats"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	reply := s.console.Execute(req.Command)
	resp := CommandResponse{Lines: reply.Lines, State: s.state()}
	s.mu.Unlock()

	if resp.Lines == nil {
		resp.Lines = []string{}
	}
	for _, f := range reply.Frames {
		resp.Frames = append(resp.Frames, Frame{DelayMS: f.Delay.Milliseconds(), Text: f.Text, Final: f.Final})
	}

	status := http.StatusOK
	if reply.Err != nil {
		resp.Error = reply.Err.Error()
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

// state must be called with mu held.
func (s *Server) state() State {
	session := s.console.Session()
	g := s.console.Current()
	st := State{
		Game:    string(g),
		Prompt:  s.console.Prompt(),
		Balance: session.Balance(),
		Sound:   session.SoundEnabled(),
		Stats:   session.Stats(),
	}
	if g != "" {
		st.Bet = session.Bet(g)
	}
	return st
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
