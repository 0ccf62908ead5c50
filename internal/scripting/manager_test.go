package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pacman/internal/game/board"
	"github.com/cory-johannsen/pacman/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core))
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func hasLevel(logs *observer.ObservedLogs, level zapcore.Level) bool {
	for _, e := range logs.All() {
		if e.Level == level {
			return true
		}
	}
	return false
}

func TestManager_LoadDir_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function add(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.LoadDir("maze", dir, 0))
	ret, err := mgr.CallHook("maze", "add", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_LoadDir_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`allowed = "ghost"`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function water(kind) return kind == allowed end
	`), 0644))
	require.NoError(t, mgr.LoadDir("maze", dir, 0))

	assert.True(t, mgr.Accessible("maze", "water", board.KindGhost))
	assert.False(t, mgr.Accessible("maze", "water", board.KindPlayer))
}

func TestManager_LoadDir_MissingDir(t *testing.T) {
	mgr, _ := newTestManager(t)
	err := mgr.LoadDir("maze", filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}

func TestManager_LoadDir_InvalidLua(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	assert.Error(t, mgr.LoadDir("maze", dir, 0))
}

func TestManager_LoadSource(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "inline", `function open() return true end`, 0))
	assert.True(t, mgr.Accessible("maze", "open", board.KindPlayer))

	assert.Error(t, mgr.LoadSource("maze", "loop", `while true do end`, 0))
}

func TestManager_CallHook_MissingHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "empty", `-- nothing`, 0))
	ret, err := mgr.CallHook("maze", "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.False(t, mgr.Accessible("maze", "nonexistent", board.KindGhost))
}

func TestManager_CallHook_UnknownScope_LogsInfo(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret, err := mgr.CallHook("nowhere", "hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zapcore.InfoLevel))
}

func TestManager_CallHook_RuntimeError_LogsWarn(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "bad", `function bad() error("boom") end`, 0))
	ret, err := mgr.CallHook("maze", "bad")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zapcore.WarnLevel))
}

func TestManager_CallHook_RunawayHookDenied(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "spin", `function spin() while true do end end`, 100))
	assert.False(t, mgr.Accessible("maze", "spin", board.KindPlayer))
}

func TestManager_LoadSource_PositiveLimitReplacesExisting(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "sum", `
function sum()
  local n = 0
  for i = 1, 1000 do n = n + i end
  return n > 0
end`, 100))
	assert.False(t, mgr.Accessible("maze", "sum", board.KindPlayer), "budget of 100 is too small")

	require.NoError(t, mgr.LoadSource("maze", "noop", `local x = 1`, 1_000_000))
	assert.True(t, mgr.Accessible("maze", "sum", board.KindPlayer), "later positive limit applies")

	require.NoError(t, mgr.LoadSource("maze", "noop", `local x = 1`, 0))
	assert.True(t, mgr.Accessible("maze", "sum", board.KindPlayer), "zero keeps the current limit")
}

func TestManager_LoadGlobal_Fallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "global.lua", `function everyone() return true end`)
	require.NoError(t, mgr.LoadGlobal(dir, 0))
	assert.True(t, mgr.Accessible("unknown", "everyone", board.KindPlayer))
}

func TestManager_Close_ReleasesVMs(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "x", `function open() return true end`, 0))
	mgr.Close()
	assert.False(t, mgr.Accessible("maze", "open", board.KindPlayer))
}

func TestManager_ScriptedSquare(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "water", `function water(kind) return kind ~= "player" end`, 0))
	sq := board.NewSquare(board.Scripted{Scope: "maze", Hook: "water", Caller: mgr})

	assert.False(t, sq.IsAccessibleTo(board.NewPlayer("pac")))
	assert.True(t, sq.IsAccessibleTo(board.NewGhost("inky")))
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { scripting.NewManager(nil) })
}

func TestManager_ConcurrentCalls(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadSource("maze", "add", `function add(a, b) return a + b end`, 0))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				ret, err := mgr.CallHook("maze", "add", lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}
		}()
	}
	wg.Wait()
}

func TestProperty_CallHookMissingScopeNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	rapid.Check(t, func(rt *rapid.T) {
		scope := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "scope")
		hook := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "hook")
		mgr.CallHook(scope, hook) //nolint:errcheck
	})
}
