// ABOUTME: Lua function registration for grid bindings.
// ABOUTME: Registers the Lua globals that expose grid.Service operations.

package scripting

// registerGridBindings registers all grid-related Lua functions.
func (e *LuaEngine) registerGridBindings() {
	// Metadata
	e.L.SetGlobal("listBases", e.L.NewFunction(e.luaListBases))
	e.L.SetGlobal("listTables", e.L.NewFunction(e.luaListTables))
	e.L.SetGlobal("describeTable", e.L.NewFunction(e.luaDescribeTable))

	// Records
	e.L.SetGlobal("listRecords", e.L.NewFunction(e.luaListRecords))
	e.L.SetGlobal("getRecord", e.L.NewFunction(e.luaGetRecord))
	e.L.SetGlobal("createRecord", e.L.NewFunction(e.luaCreateRecord))
	e.L.SetGlobal("updateRecord", e.L.NewFunction(e.luaUpdateRecord))
	e.L.SetGlobal("deleteRecord", e.L.NewFunction(e.luaDeleteRecord))

	// Search
	e.L.SetGlobal("searchRecords", e.L.NewFunction(e.luaSearchRecords))
	e.L.SetGlobal("matchRecord", e.L.NewFunction(e.luaMatchRecord))
	e.L.SetGlobal("buildFormula", e.L.NewFunction(e.luaBuildFormula))
}
