// helpers.go contains shared utility functions used across handlers.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
)

// newToolResultError creates an error result for tool execution failures.
func newToolResultError(message string) *mcp.CallToolResult {
	result := mcp.NewToolResultText(message)
	result.IsError = true
	return result
}

// newToolResultJSON creates a successful result with JSON-formatted output.
func newToolResultJSON(v any) *mcp.CallToolResult {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return newToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(output))
}

// wrapErr creates an error result with consistent "operation failed" format.
func wrapErr(op string, err error) *mcp.CallToolResult {
	return newToolResultError(fmt.Sprintf("%s failed: %v", op, err))
}

// newRequest creates a CallToolRequest with the given arguments.
func newRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// callTool binds the tool arguments into Req and invokes call. Binding
// failures and call errors both come back as error results.
func callTool[Req, Resp any](ctx context.Context, tool string, request mcp.CallToolRequest, call func(context.Context, Req) (Resp, error)) *mcp.CallToolResult {
	var req Req
	if err := request.BindArguments(&req); err != nil {
		return wrapErr(tool, fmt.Errorf("invalid arguments: %w", err))
	}
	resp, err := call(ctx, req)
	if err != nil {
		return wrapErr(tool, err)
	}
	return newToolResultJSON(resp)
}

// inputSchema reflects the JSON schema of a request struct for use as a
// tool input schema.
func inputSchema(v any) json.RawMessage {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	s := r.Reflect(v)
	s.Version = ""
	b, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("reflecting schema for %T: %v", v, err))
	}
	return b
}
