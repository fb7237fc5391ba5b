package mcp

import (
	"encoding/json"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/oisee/gridbridge/pkg/grid"
	"github.com/oisee/gridbridge/pkg/grid/mock_grid"
)

func newTestServer(t *testing.T, readOnly bool) (*Server, *mock_grid.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mock_grid.NewMockService(ctrl)
	srv := NewServer(&Config{Service: svc, Logger: zerolog.Nop(), ReadOnly: readOnly})
	require.NotNil(t, srv)
	return srv, svc
}

func toolNames(s *Server) []string {
	var names []string
	for _, t := range s.tools() {
		names = append(names, t.Tool.Name)
	}
	return names
}

func TestNewToolResultError(t *testing.T) {
	result := newToolResultError("test error message")

	require.NotNil(t, result)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "Content should be TextContent, got %T", result.Content[0])
	assert.Equal(t, "test error message", textContent.Text)
}

func TestNewServer_RegistersAllTools(t *testing.T) {
	srv, _ := newTestServer(t, false)
	assert.NotNil(t, srv.mcpServer)
	assert.ElementsMatch(t, []string{
		"list_bases", "list_tables", "describe_table", "list_records", "get_record",
		"create_record", "update_record", "delete_record", "search_records",
	}, toolNames(srv))
}

func TestNewServer_ReadOnlyHidesWriteTools(t *testing.T) {
	srv, _ := newTestServer(t, true)
	names := toolNames(srv)
	assert.Len(t, names, 6)
	assert.NotContains(t, names, "create_record")
	assert.NotContains(t, names, "update_record")
	assert.NotContains(t, names, "delete_record")
}

func TestToolSchemas(t *testing.T) {
	srv, _ := newTestServer(t, false)
	schemas := map[string]map[string]any{}
	for _, st := range srv.tools() {
		if st.Tool.RawInputSchema == nil {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(st.Tool.RawInputSchema, &m), st.Tool.Name)
		schemas[st.Tool.Name] = m
	}

	search := schemas["search_records"]
	require.NotNil(t, search)
	assert.Equal(t, "object", search["type"])
	assert.ElementsMatch(t, []any{"baseId", "tableIdOrName", "searchTerm"}, search["required"])
	props := search["properties"].(map[string]any)
	strategy := props["strategy"].(map[string]any)
	assert.ElementsMatch(t, []any{"client", "formula"}, strategy["enum"])
	assert.NotContains(t, search, "$schema")

	create := schemas["create_record"]
	require.NotNil(t, create)
	assert.Contains(t, create["required"], "fields")

	list := schemas["list_records"]
	require.NotNil(t, list)
	sort := list["properties"].(map[string]any)["sort"].(map[string]any)
	assert.Equal(t, "array", sort["type"])
}

func TestServe_UnknownTransport(t *testing.T) {
	srv, _ := newTestServer(t, false)
	err := srv.Serve(t.Context(), Transport("carrier-pigeon"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

// TestAllHandlersAreRouted verifies that all handler functions defined in handlers_*.go
// files are registered as tools. This prevents dead code where handlers are
// written but never wired up.
func TestAllHandlersAreRouted(t *testing.T) {
	pkgDir, err := os.Getwd()
	require.NoError(t, err)

	definedHandlers := make(map[string]string) // handler name -> source file
	handlerFiles, _ := filepath.Glob(filepath.Join(pkgDir, "handlers_*.go"))
	require.NotEmpty(t, handlerFiles)

	fset := token.NewFileSet()
	for _, file := range handlerFiles {
		node, parseErr := parser.ParseFile(fset, file, nil, 0)
		require.NoError(t, parseErr, file)

		for _, decl := range node.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
				continue
			}
			starExpr, ok := fn.Recv.List[0].Type.(*ast.StarExpr)
			if !ok {
				continue
			}
			ident, ok := starExpr.X.(*ast.Ident)
			if !ok || ident.Name != "Server" {
				continue
			}
			if strings.HasPrefix(fn.Name.Name, "handle") {
				definedHandlers[fn.Name.Name] = filepath.Base(file)
			}
		}
	}

	toolsNode, parseErr := parser.ParseFile(fset, filepath.Join(pkgDir, "tools.go"), nil, 0)
	require.NoError(t, parseErr)

	calledHandlers := make(map[string]bool)
	ast.Inspect(toolsNode, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok && strings.HasPrefix(sel.Sel.Name, "handle") {
			calledHandlers[sel.Sel.Name] = true
		}
		return true
	})

	var unrouted []string
	for handler, sourceFile := range definedHandlers {
		if !calledHandlers[handler] {
			unrouted = append(unrouted, handler+" ("+sourceFile+")")
		}
	}
	assert.Empty(t, unrouted, "handlers defined but never registered in tools.go")
}

// compile-time check that the mock satisfies the interface the server consumes
var _ grid.Service = (*mock_grid.MockService)(nil)
