// ABOUTME: Lua bindings for base and table metadata.
// ABOUTME: Provides listBases, listTables, describeTable.

package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/oisee/gridbridge/pkg/grid"
)

// luaListBases implements listBases().
func (e *LuaEngine) luaListBases(L *lua.LState) int {
	bases, err := e.grid.ListBases(e.ctx)
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, bases)
}

// luaListTables implements listTables(baseId).
func (e *LuaEngine) luaListTables(L *lua.LState) int {
	tables, err := e.grid.ListTables(e.ctx, grid.ListTablesRequest{BaseID: L.CheckString(1)})
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, tables)
}

// luaDescribeTable implements describeTable(baseId, tableIdOrName).
func (e *LuaEngine) luaDescribeTable(L *lua.LState) int {
	table, err := e.grid.GetTableSchema(e.ctx, grid.GetTableSchemaRequest{
		BaseID: L.CheckString(1),
		Table:  L.CheckString(2),
	})
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, table)
}
