package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"
)

// endpointPath is where the Streamable HTTP transport is mounted.
const endpointPath = "/mcp"

const shutdownTimeout = 10 * time.Second

// ServeStdio runs the MCP server on stdin/stdout until ctx is cancelled
// or the client closes stdin.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveStdio(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info().Msg("mcp server listening on stdio")
	err := server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return nil
	default:
		return fmt.Errorf("mcp stdio: %w", err)
	}
}

// ServeHTTP serves the Streamable HTTP transport at /mcp on addr until ctx
// is cancelled, then shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp http: %w", err)
	}
	return s.serveHTTP(ctx, ln)
}

// httpHandler mounts the Streamable HTTP transport on a router, so that
// requests to /mcp reach the MCP server and everything else is a 404.
func (s *Server) httpHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Handle(endpointPath, server.NewStreamableHTTPServer(s.mcpServer,
		server.WithEndpointPath(endpointPath),
	))
	return r
}

func (s *Server) serveHTTP(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Str("path", endpointPath).Msg("mcp server listening on http")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp http: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.logger.Info().Msg("mcp server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
