// tools.go declares the tool set and its input schemas.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/oisee/gridbridge/pkg/grid"
)

// Tool names.
const (
	toolListBases     = "list_bases"
	toolListTables    = "list_tables"
	toolDescribeTable = "describe_table"
	toolListRecords   = "list_records"
	toolGetRecord     = "get_record"
	toolCreateRecord  = "create_record"
	toolUpdateRecord  = "update_record"
	toolDeleteRecord  = "delete_record"
	toolSearchRecords = "search_records"
)

// tools returns the tools this server exposes. Write tools are left out in
// read-only mode.
func (s *Server) tools() []server.ServerTool {
	tools := []server.ServerTool{
		{Tool: mcp.NewTool(toolListBases,
			mcp.WithDescription("List the bases the access token can see, with their permission level"),
			mcp.WithReadOnlyHintAnnotation(true),
		), Handler: s.handleListBases},
		{Tool: readTool(toolListTables,
			"List the tables of a base with their fields and views",
			grid.ListTablesRequest{}), Handler: s.handleListTables},
		{Tool: readTool(toolDescribeTable,
			"Get the schema of one table (fields with ids, names and types) by table id or name",
			grid.GetTableSchemaRequest{}), Handler: s.handleDescribeTable},
		{Tool: readTool(toolListRecords,
			"List records of a table. Supports view, sort, field selection and a filter formula. Returns at most maxRecords (default 100)",
			grid.ListRecordsRequest{}), Handler: s.handleListRecords},
		{Tool: readTool(toolGetRecord,
			"Get one record by id",
			grid.GetRecordRequest{}), Handler: s.handleGetRecord},
		{Tool: readTool(toolSearchRecords,
			"Search records for a case-insensitive text term. Without fieldIds or fieldNames every text field is searched",
			grid.SearchRequest{}), Handler: s.handleSearchRecords},
	}
	if s.readOnly {
		return tools
	}

	return append(tools,
		server.ServerTool{Tool: writeTool(toolCreateRecord,
			"Create a record from field values keyed by field name",
			grid.CreateRecordRequest{}, false), Handler: s.handleCreateRecord},
		server.ServerTool{Tool: writeTool(toolUpdateRecord,
			"Update the given fields of a record. Fields not listed keep their value",
			grid.UpdateRecordRequest{}, false), Handler: s.handleUpdateRecord},
		server.ServerTool{Tool: writeTool(toolDeleteRecord,
			"Delete a record by id",
			grid.DeleteRecordRequest{}, true), Handler: s.handleDeleteRecord},
	)
}

func readTool(name, description string, req any) mcp.Tool {
	tool := mcp.NewToolWithRawSchema(name, description, inputSchema(req))
	tool.Annotations.ReadOnlyHint = mcp.ToBoolPtr(true)
	return tool
}

func writeTool(name, description string, req any, destructive bool) mcp.Tool {
	tool := mcp.NewToolWithRawSchema(name, description, inputSchema(req))
	tool.Annotations.ReadOnlyHint = mcp.ToBoolPtr(false)
	tool.Annotations.DestructiveHint = mcp.ToBoolPtr(destructive)
	return tool
}
