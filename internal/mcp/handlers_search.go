// handlers_search.go contains the record search handler.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleSearchRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug().Str("tool", toolSearchRecords).Msg("tool call")
	return callTool(ctx, toolSearchRecords, request, s.grid.SearchRecords), nil
}
