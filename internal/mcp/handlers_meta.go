// handlers_meta.go contains handlers for base and table metadata.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleListBases(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug().Str("tool", toolListBases).Msg("tool call")
	bases, err := s.grid.ListBases(ctx)
	if err != nil {
		return wrapErr(toolListBases, err), nil
	}
	return newToolResultJSON(bases), nil
}

func (s *Server) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug().Str("tool", toolListTables).Msg("tool call")
	return callTool(ctx, toolListTables, request, s.grid.ListTables), nil
}

func (s *Server) handleDescribeTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug().Str("tool", toolDescribeTable).Msg("tool call")
	return callTool(ctx, toolDescribeTable, request, s.grid.GetTableSchema), nil
}
