// ABOUTME: Lua bindings for record search.
// ABOUTME: Provides searchRecords plus the local matchRecord and buildFormula helpers.

package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/oisee/gridbridge/pkg/grid"
)

// luaSearchRecords implements searchRecords(baseId, table, term, [opts]).
// opts keys: fieldIds, fieldNames, maxRecords, view, strategy.
func (e *LuaEngine) luaSearchRecords(L *lua.LState) int {
	var req grid.SearchRequest
	if err := decodeOptions(L, 4, &req); err != nil {
		return pushError(L, err)
	}
	req.BaseID = L.CheckString(1)
	req.Table = L.CheckString(2)
	req.SearchTerm = L.CheckString(3)

	records, err := e.grid.SearchRecords(e.ctx, req)
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, records)
}

// luaMatchRecord implements matchRecord(record, fieldNames, term).
// record is a table with a fields subtable, as returned by getRecord.
func (e *LuaEngine) luaMatchRecord(L *lua.LState) int {
	var rec grid.Record
	if tbl := L.CheckTable(1); tbl != nil {
		if fields, ok := luaToGo(tbl.RawGetString("fields")).(map[string]any); ok {
			rec.Fields = fields
		}
		rec.ID = lua.LVAsString(tbl.RawGetString("id"))
	}
	L.Push(lua.LBool(grid.MatchRecord(rec, getStringList(L, 2), L.CheckString(3))))
	return 1
}

// luaBuildFormula implements buildFormula(fieldNames, term).
func (e *LuaEngine) luaBuildFormula(L *lua.LState) int {
	formula, err := grid.BuildSearchFormula(getStringList(L, 1), L.CheckString(2))
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LString(formula))
	return 1
}
