// Package scripting provides Lua scripting support for gridbridge.
// Scripts drive the grid operations directly, for bulk edits and
// reports that would take many tool calls.
package scripting

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/oisee/gridbridge/pkg/grid"
)

// LuaEngine wraps a Lua VM with grid bindings.
type LuaEngine struct {
	L      *lua.LState
	grid   grid.Service
	ctx    context.Context
	output io.Writer
}

// NewLuaEngine creates a new Lua engine bound to svc.
func NewLuaEngine(svc grid.Service) *LuaEngine {
	L := lua.NewState(lua.Options{
		CallStackSize:       120,
		RegistrySize:        1024 * 20,
		IncludeGoStackTrace: true,
	})

	engine := &LuaEngine{
		L:      L,
		grid:   svc,
		ctx:    context.Background(),
		output: os.Stdout,
	}

	engine.registerBuiltins()
	engine.registerGridBindings()

	return engine
}

// SetContext sets the context for grid operations.
func (e *LuaEngine) SetContext(ctx context.Context) {
	e.ctx = ctx
	e.L.SetContext(ctx)
}

// SetOutput sets the output writer for print statements.
func (e *LuaEngine) SetOutput(w io.Writer) {
	e.output = w
}

// Close closes the Lua state.
func (e *LuaEngine) Close() {
	e.L.Close()
}

// Execute runs a Lua script string.
func (e *LuaEngine) Execute(script string) error {
	return e.L.DoString(script)
}

// ExecuteFile runs a Lua script file.
func (e *LuaEngine) ExecuteFile(path string) error {
	return e.L.DoFile(path)
}

// REPL runs an interactive Lua Read-Eval-Print Loop on in.
func (e *LuaEngine) REPL(in io.Reader) {
	reader := bufio.NewReader(in)
	fmt.Fprintln(e.output, "gridbridge Lua REPL")
	fmt.Fprintln(e.output, "Type 'exit' to quit, 'help' for commands.")
	fmt.Fprintln(e.output, "")

	for {
		fmt.Fprint(e.output, "lua> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				fmt.Fprintln(e.output, "\nGoodbye!")
				return
			}
			fmt.Fprintf(e.output, "Error reading input: %v\n", err)
			return
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(e.output, "Goodbye!")
			return
		case "help":
			e.printHelp()
			continue
		}

		if err := e.Execute(line); err != nil {
			fmt.Fprintf(e.output, "Error: %v\n", err)
		}
	}
}

func (e *LuaEngine) printHelp() {
	help := `
gridbridge Lua Commands:
─────────────────────────────────────────────────────────
  exit, quit                              Exit the REPL

Metadata:
  listBases()                             List visible bases
  listTables(base)                        List tables with fields
  describeTable(base, table)              Table schema by id or name

Records:
  listRecords(base, table, [opts])        opts: maxRecords, view, sort, fields, filterByFormula
  getRecord(base, table, id)              Fetch one record
  createRecord(base, table, fields, [typecast])
  updateRecord(base, table, id, fields, [typecast])
  deleteRecord(base, table, id)

Search:
  searchRecords(base, table, term, [opts]) opts: fieldIds, fieldNames, maxRecords, view, strategy
  matchRecord(record, fieldNames, term)   Local case-insensitive match
  buildFormula(fieldNames, term)          Search formula text

Utilities:
  print(...)                              Print values
  sleep(seconds)                          Sleep for N seconds
  json.encode(value)                      Encode to JSON
  json.decode(str)                        Decode from JSON

Failing calls return nil (or false) plus an error message.
─────────────────────────────────────────────────────────
`
	fmt.Fprintln(e.output, help)
}

// registerBuiltins registers built-in Lua functions.
func (e *LuaEngine) registerBuiltins() {
	// Override print to use our output writer
	e.L.SetGlobal("print", e.L.NewFunction(e.luaPrint))

	e.L.SetGlobal("sleep", e.L.NewFunction(e.luaSleep))

	jsonMod := e.L.NewTable()
	e.L.SetField(jsonMod, "encode", e.L.NewFunction(e.luaJSONEncode))
	e.L.SetField(jsonMod, "decode", e.L.NewFunction(e.luaJSONDecode))
	e.L.SetGlobal("json", jsonMod)
}

// luaPrint implements print() for Lua.
func (e *LuaEngine) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(e.output, strings.Join(parts, "\t"))
	return 0
}

// luaSleep implements sleep(seconds) for Lua.
func (e *LuaEngine) luaSleep(L *lua.LState) int {
	seconds := L.ToNumber(1)
	if seconds <= 0 {
		seconds = 1
	}

	timer := time.NewTimer(time.Duration(float64(seconds) * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-e.ctx.Done():
		L.RaiseError("context cancelled")
	case <-timer.C:
	}

	return 0
}

// luaJSONEncode implements json.encode(value) for Lua.
func (e *LuaEngine) luaJSONEncode(L *lua.LState) int {
	jsonBytes, err := json.Marshal(luaToGo(L.Get(1)))
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LString(string(jsonBytes)))
	return 1
}

// luaJSONDecode implements json.decode(str) for Lua.
func (e *LuaEngine) luaJSONDecode(L *lua.LState) int {
	var goVal any
	if err := json.Unmarshal([]byte(L.ToString(1)), &goVal); err != nil {
		return pushError(L, err)
	}
	L.Push(goToLua(L, goVal))
	return 1
}
