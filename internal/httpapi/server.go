// Package httpapi exposes the grid operations over a REST interface.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/oisee/gridbridge/internal/completion"
	"github.com/oisee/gridbridge/pkg/grid"
)

const shutdownTimeout = 10 * time.Second

// Completer produces a raw chat completion.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (json.RawMessage, error)
}

// Config holds REST server configuration.
type Config struct {
	Service grid.Service
	// Completer serves POST /completions. Nil leaves the route unmounted.
	Completer Completer
	Logger    zerolog.Logger
}

// Server is the REST front-end.
type Server struct {
	grid      grid.Service
	completer Completer
	logger    zerolog.Logger
	router    chi.Router
}

// New creates a Server with all routes mounted.
func New(cfg *Config) *Server {
	s := &Server{
		grid:      cfg.Service,
		completer: cfg.Completer,
		logger:    cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.logger.Info().Msg("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
