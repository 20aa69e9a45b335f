package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Scripted systems all share this VM,
// which is why every system built by System declares a write on the shared
// VM tag: the scheduler then never co-stages two Lua systems, and the mutex
// below only guards against the sequential-fallback path interleaving with
// out-of-frame calls (console commands, hot reload).
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in dir. A missing
// directory is not an error; the engine just has no scripts.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read scripts dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Call invokes a global Lua function with number arguments, discarding
// results. Errors carry the function name.
func (e *Engine) Call(fn string, args ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	val := e.vm.GetGlobal(fn)
	if val == lua.LNil {
		return fmt.Errorf("lua function %q not defined", fn)
	}
	lvArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lvArgs[i] = lua.LNumber(a)
	}
	if err := e.vm.CallByParam(lua.P{Fn: val, NRet: 0, Protect: true}, lvArgs...); err != nil {
		return fmt.Errorf("lua %s: %w", fn, err)
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(fn string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vm.GetGlobal(fn) != lua.LNil
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}
