package scripting

import (
	"encoding/json"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// luaToGo converts a Lua value to a Go value. Whole numbers become int64.
func luaToGo(val lua.LValue) any {
	switch v := val.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		if float64(v) == float64(int64(v)) {
			return int64(v)
		}
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return luaTableToGo(v)
	case *lua.LNilType:
		return nil
	default:
		return val.String()
	}
}

// luaTableToGo converts a Lua table to a slice when its keys are 1..n,
// otherwise to a map keyed by the string form of each key.
func luaTableToGo(tbl *lua.LTable) any {
	isArray := true
	maxN := 0
	tbl.ForEach(func(key, _ lua.LValue) {
		num, ok := key.(lua.LNumber)
		if !ok {
			isArray = false
			return
		}
		if n := int(num); n > maxN {
			maxN = n
		}
	})

	if isArray && maxN > 0 && tbl.Len() == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = luaToGo(tbl.RawGetInt(i))
		}
		return arr
	}

	m := make(map[string]any)
	tbl.ForEach(func(key, value lua.LValue) {
		m[key.String()] = luaToGo(value)
	})
	return m
}

// goToLua converts a Go value to a Lua value. Structs and typed slices go
// through their JSON form, so Lua sees the same keys as the JSON surfaces.
func goToLua(L *lua.LState, val any) lua.LValue {
	switch v := val.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case []any:
		tbl := L.NewTable()
		for i, item := range v {
			tbl.RawSetInt(i+1, goToLua(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for k, item := range v {
			tbl.RawSetString(k, goToLua(L, item))
		}
		return tbl
	}

	data, err := json.Marshal(val)
	if err != nil {
		return lua.LString(fmt.Sprint(val))
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return lua.LString(string(data))
	}
	return goToLua(L, parsed)
}

// getStringList reads argument n as a list of strings. A single string is
// a one-element list; nil is an empty one.
func getStringList(L *lua.LState, n int) []string {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.Len(); i++ {
			out = append(out, v.RawGetInt(i).String())
		}
		return out
	}
	return nil
}

// getFields reads argument n as a record field map.
func getFields(L *lua.LState, n int) map[string]any {
	tbl, ok := L.Get(n).(*lua.LTable)
	if !ok {
		return nil
	}
	m, ok := luaTableToGo(tbl).(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// decodeOptions copies the optional option table at argument n into dst,
// matching keys to dst's JSON tags.
func decodeOptions(L *lua.LState, n int, dst any) error {
	tbl, ok := L.Get(n).(*lua.LTable)
	if !ok {
		return nil
	}
	data, err := json.Marshal(luaTableToGo(tbl))
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	return nil
}

// pushValue pushes v converted to Lua and returns 1.
func pushValue(L *lua.LState, v any) int {
	L.Push(goToLua(L, v))
	return 1
}

// pushError pushes nil and error message to Lua stack, returns 2.
func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}
