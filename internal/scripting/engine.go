package scripting

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/spawn.lua
var defaultScript string

const (
	KindMover  = "mover"
	KindBeacon = "beacon"
)

// SpawnSpec is what a spawn script returns for one entity.
type SpawnSpec struct {
	Kind   string
	Name   string
	X, Y   float64
	DX, DY float64
	HP     int32
	Decay  int32
}

// Engine wraps a single gopher-lua VM running a spawn script.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	source string
}

// NewEngine loads the spawn script at path. An empty path loads the built-in
// script.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	if path == "" {
		return NewEngineFromSource("builtin:spawn.lua", defaultScript, log)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read script %s", path)
	}
	return NewEngineFromSource(path, string(src), log)
}

// NewEngineFromSource runs src and checks it defines spawn.
func NewEngineFromSource(name, src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, eris.Wrapf(err, "load script %s", name)
	}
	if _, ok := vm.GetGlobal("spawn").(*lua.LFunction); !ok {
		vm.Close()
		return nil, eris.Errorf("script %s does not define spawn(i)", name)
	}
	log.Debug("loaded lua script", zap.String("file", name))
	return &Engine{vm: vm, log: log, source: name}, nil
}

// Source names the loaded script.
func (e *Engine) Source() string { return e.source }

// Spawn calls spawn(i). A nil result reports false.
func (e *Engine) Spawn(i int) (SpawnSpec, bool, error) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      e.vm.GetGlobal("spawn"),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(i)); err != nil {
		return SpawnSpec{}, false, eris.Wrapf(err, "spawn(%d)", i)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	if result == lua.LNil {
		return SpawnSpec{}, false, nil
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		return SpawnSpec{}, false, eris.Errorf("spawn(%d) returned %s, want table", i, result.Type())
	}

	spec := SpawnSpec{
		Kind:  lStr(rt, "kind"),
		Name:  lStr(rt, "name"),
		X:     lNum(rt, "x"),
		Y:     lNum(rt, "y"),
		DX:    lNum(rt, "dx"),
		DY:    lNum(rt, "dy"),
		HP:    int32(lInt(rt, "hp")),
		Decay: int32(lInt(rt, "decay")),
	}
	switch spec.Kind {
	case KindMover:
		if spec.HP <= 0 {
			return SpawnSpec{}, false, eris.Errorf("spawn(%d): mover %q needs positive hp", i, spec.Name)
		}
	case KindBeacon:
	default:
		return SpawnSpec{}, false, eris.Errorf("spawn(%d): unknown kind %q", i, spec.Kind)
	}
	return spec, true, nil
}

// Respawn calls respawn(name) if the script defines it.
func (e *Engine) Respawn(name string) bool {
	fn, ok := e.vm.GetGlobal("respawn").(*lua.LFunction)
	if !ok {
		return false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(name)); err != nil {
		e.log.Error("lua respawn error", zap.String("name", name), zap.Error(err))
		return false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(result)
}

// --- Lua helpers ---

func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
