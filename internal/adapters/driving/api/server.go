package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/metrics"
)

// MaxBodyBytes caps the size of a /chat request body.
const MaxBodyBytes = 1 << 20

const shutdownTimeout = 10 * time.Second

// Config holds HTTP server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// RequestTimeout bounds the handling of one chat request (default: 60s).
	RequestTimeout time.Duration
}

// Server serves the chat API.
type Server struct {
	cfg     Config
	chat    driving.ChatService
	metrics *metrics.Recorder
	router  *mux.Router
	handler http.Handler
}

// NewServer wires routes and middleware around chat.
func NewServer(cfg Config, chat driving.ChatService, rec *metrics.Recorder) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if rec == nil {
		rec = metrics.New()
	}

	s := &Server{
		cfg:     cfg,
		chat:    chat,
		metrics: rec,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", rec.Handler()).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	s.handler = requestIDMiddleware(recoveryMiddleware(s.router))

	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
