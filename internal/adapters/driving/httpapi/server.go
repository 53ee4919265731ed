package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// HealthMessage is reported by GET /api/health.
const HealthMessage = "sitegen relay is running!"

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// AvailableEndpoints is listed in 404 responses.
var AvailableEndpoints = []string{"/api/health", "/api/chat"}

// Server is the relay HTTP server.
type Server struct {
	relay  driving.ChatRelay
	router chi.Router
	now    func() time.Time
}

// NewServer builds a server around relay.
func NewServer(relay driving.ChatRelay) (*Server, error) {
	if relay == nil {
		return nil, errors.New("httpapi: relay is required")
	}
	s := &Server{
		relay: relay,
		now:   time.Now,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(Trace)
	r.Use(RequestLogger)
	r.Use(Recover)
	r.Use(CORS)

	r.Get("/api/health", s.health)
	r.Post("/api/chat", s.createChat)
	r.Post("/api/chat/send", s.sendMessage)

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("relay: shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
