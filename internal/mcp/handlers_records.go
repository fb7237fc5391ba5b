// handlers_records.go contains handlers for record CRUD.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleListRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug().Str("tool", toolListRecords).Msg("tool call")
	return callTool(ctx, toolListRecords, request, s.grid.ListRecords), nil
}

func (s *Server) handleGetRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug().Str("tool", toolGetRecord).Msg("tool call")
	return callTool(ctx, toolGetRecord, request, s.grid.GetRecord), nil
}

func (s *Server) handleCreateRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info().Str("tool", toolCreateRecord).Msg("tool call")
	return callTool(ctx, toolCreateRecord, request, s.grid.CreateRecord), nil
}

func (s *Server) handleUpdateRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info().Str("tool", toolUpdateRecord).Msg("tool call")
	return callTool(ctx, toolUpdateRecord, request, s.grid.UpdateRecord), nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info().Str("tool", toolDeleteRecord).Msg("tool call")
	return callTool(ctx, toolDeleteRecord, request, s.grid.DeleteRecord), nil
}
