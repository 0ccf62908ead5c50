package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pacman/internal/game/board"
)

// globalScope is the VM consulted when a scope has none of its own.
const globalScope = "__global__"

type vm struct {
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per scope (usually a level ID) and
// dispatches hook calls to it.
//
// All methods are safe for concurrent use; calls into the same VM are
// serialized.
type Manager struct {
	mu     sync.Mutex
	vms    map[string]*vm
	logger *zap.Logger
}

// NewManager creates a Manager with no VMs.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		logger: logger,
	}
}

// LoadDir executes every *.lua file in scriptDir, in lexicographic order, in
// the VM for scope, creating the VM if needed.
//
// Precondition: scope must be non-empty; scriptDir must be a readable directory.
// Postcondition: Returns an error on read or Lua load failure.
func (m *Manager) LoadDir(scope, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, scope, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			paths = append(paths, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(paths)

	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.vmFor(scope, instLimit)
	for _, path := range paths {
		if err := runLimited(v.L, v.limit, func() error { return v.L.DoFile(path) }); err != nil {
			return fmt.Errorf("scripting: loading %q for %q: %w", path, scope, err)
		}
	}
	m.logger.Debug("scripts loaded",
		zap.String("scope", scope),
		zap.Int("files", len(paths)),
	)
	return nil
}

// LoadGlobal loads scriptDir into the fallback VM used by scopes without one.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.LoadDir(globalScope, scriptDir, instLimit)
}

// LoadSource executes src in the VM for scope, creating the VM if needed.
// name is used in error messages only.
func (m *Manager) LoadSource(scope, name, src string, instLimit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.vmFor(scope, instLimit)
	if err := runLimited(v.L, v.limit, func() error { return v.L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading %q for %q: %w", name, scope, err)
	}
	return nil
}

// vmFor returns scope's VM, creating it if needed. A positive instLimit
// replaces the limit of an existing VM; other values keep it.
// vmFor must be called with m.mu held.
func (m *Manager) vmFor(scope string, instLimit int) *vm {
	if v, ok := m.vms[scope]; ok {
		if instLimit > 0 {
			v.limit = instLimit
		}
		return v
	}
	v := &vm{L: NewSandboxedState(), limit: instLimit}
	m.vms[scope] = v
	return v
}

// CallHook calls the named global function in scope's VM, falling back to
// the global VM. A missing VM or hook yields LNil. Lua runtime errors,
// including an exhausted instruction budget, are logged at Warn and yield LNil.
//
// Postcondition: Returns the hook's first return value, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.vms[scope]
	if !ok {
		v = m.vms[globalScope]
	}
	if v == nil {
		m.logger.Info("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	err := runLimited(v.L, v.limit, func() error {
		return v.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Accessible evaluates hook(kind) in scope and reports Lua truthiness of the
// result. A missing or failing hook denies entry. It satisfies
// board.HookCaller.
func (m *Manager) Accessible(scope, hook string, kind board.Kind) bool {
	ret, err := m.CallHook(scope, hook, lua.LString(kind))
	if err != nil {
		return false
	}
	return lua.LVAsBool(ret)
}

// Close releases every VM. Subsequent hook calls yield LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for scope, v := range m.vms {
		v.L.Close()
		delete(m.vms, scope)
	}
}

var _ board.HookCaller = (*Manager)(nil)
