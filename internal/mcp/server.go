// Package mcp provides the MCP server implementation for the grid tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/oisee/gridbridge/pkg/grid"
)

const (
	serverName    = "gridbridge"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server talks to its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout (default, for local agents).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses the Streamable HTTP transport.
	TransportHTTP Transport = "http"
)

// Server wraps the MCP server with a grid service.
type Server struct {
	mcpServer *server.MCPServer
	grid      grid.Service
	logger    zerolog.Logger
	readOnly  bool
}

// Config holds MCP server configuration.
type Config struct {
	// Service executes the tool calls.
	Service grid.Service
	// Logger receives tool call tracing.
	Logger zerolog.Logger
	// ReadOnly hides the create, update and delete tools. The client's own
	// safety configuration still blocks writes independently.
	ReadOnly bool
	// Version reported to MCP clients (default "1.0.0").
	Version string
}

// NewServer creates a new MCP server exposing the grid tools.
func NewServer(cfg *Config) *Server {
	version := cfg.Version
	if version == "" {
		version = serverVersion
	}

	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		grid:      cfg.Service,
		logger:    cfg.Logger,
		readOnly:  cfg.ReadOnly,
	}

	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	return s
}

const instructions = `You are connected to a tabular-data service holding bases, tables and records.

Start with list_bases, then list_tables or describe_table to learn the field names and types.
Record field values are keyed by field name. search_records matches text case-insensitively;
give fieldNames to push the search to the service as a formula, or fieldIds to restrict a local search.`

// Serve runs the server on the given transport.
func (s *Server) Serve(ctx context.Context, transport Transport, addr string) error {
	switch transport {
	case TransportStdio, "":
		return s.ServeStdio(ctx)
	case TransportHTTP:
		return s.ServeHTTP(ctx, addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
	}
}
