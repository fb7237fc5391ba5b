// ABOUTME: Lua bindings for record access.
// ABOUTME: Provides listRecords, getRecord, createRecord, updateRecord, deleteRecord.

package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/oisee/gridbridge/pkg/grid"
)

// luaListRecords implements listRecords(baseId, table, [opts]).
// opts keys: maxRecords, view, sort, fields, filterByFormula.
func (e *LuaEngine) luaListRecords(L *lua.LState) int {
	var req grid.ListRecordsRequest
	if err := decodeOptions(L, 3, &req); err != nil {
		return pushError(L, err)
	}
	req.BaseID = L.CheckString(1)
	req.Table = L.CheckString(2)

	records, err := e.grid.ListRecords(e.ctx, req)
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, records)
}

// luaGetRecord implements getRecord(baseId, table, recordId).
func (e *LuaEngine) luaGetRecord(L *lua.LState) int {
	rec, err := e.grid.GetRecord(e.ctx, grid.GetRecordRequest{
		BaseID:   L.CheckString(1),
		Table:    L.CheckString(2),
		RecordID: L.CheckString(3),
	})
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, rec)
}

// luaCreateRecord implements createRecord(baseId, table, fields, [typecast]).
func (e *LuaEngine) luaCreateRecord(L *lua.LState) int {
	rec, err := e.grid.CreateRecord(e.ctx, grid.CreateRecordRequest{
		BaseID:   L.CheckString(1),
		Table:    L.CheckString(2),
		Fields:   getFields(L, 3),
		Typecast: L.OptBool(4, false),
	})
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, rec)
}

// luaUpdateRecord implements updateRecord(baseId, table, recordId, fields, [typecast]).
func (e *LuaEngine) luaUpdateRecord(L *lua.LState) int {
	rec, err := e.grid.UpdateRecord(e.ctx, grid.UpdateRecordRequest{
		BaseID:   L.CheckString(1),
		Table:    L.CheckString(2),
		RecordID: L.CheckString(3),
		Fields:   getFields(L, 4),
		Typecast: L.OptBool(5, false),
	})
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, rec)
}

// luaDeleteRecord implements deleteRecord(baseId, table, recordId).
func (e *LuaEngine) luaDeleteRecord(L *lua.LState) int {
	deleted, err := e.grid.DeleteRecord(e.ctx, grid.DeleteRecordRequest{
		BaseID:   L.CheckString(1),
		Table:    L.CheckString(2),
		RecordID: L.CheckString(3),
	})
	if err != nil {
		return pushError(L, err)
	}
	return pushValue(L, deleted)
}
