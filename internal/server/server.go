// Package server exposes the chatbot over HTTP. The surface is a thin
// adapter: validate the request, resolve the session, delegate to the Bot.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/session"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8080"
	// RequestTimeout bounds one exchange, model round trip included.
	RequestTimeout = 60 * time.Second
	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second
	// ReadHeaderTimeout limits how long a client may dribble request headers.
	ReadHeaderTimeout = 10 * time.Second
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserName string `json:"user_name"`
	Message  string `json:"message"`
}

// ChatResponse is the reply payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse represents a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server is the HTTP front end over the session store.
type Server struct {
	sessions *session.Store
	log      *logrus.Logger
	router   chi.Router
}

// New creates a Server with all routes registered.
func New(sessions *session.Store, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{sessions: sessions, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Post("/chat", s.handleChat)
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChat answers one exchange. Validation happens before any session is
// created, so a bad request never mutates state.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := strings.TrimSpace(req.UserName)
	message := strings.TrimSpace(req.Message)
	if user == "" || message == "" {
		writeError(w, http.StatusBadRequest, "user_name and message are required")
		return
	}

	b, err := s.sessions.Get(user)
	if err != nil {
		s.log.WithError(err).WithField("user", user).Error("failed to create session")
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	reply, err := b.Ask(ctx, message)
	if err != nil {
		s.log.WithError(err).WithField("user", user).Error("failed to generate reply")
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		writeError(w, status, "failed to generate a reply, please try again")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// Run starts the HTTP server and blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
