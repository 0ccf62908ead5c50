package board

// AccessPolicy decides whether a character may step onto a square.
// Every square kind supplies its own policy; the movement controller only
// ever asks the square.
type AccessPolicy interface {
	// Allows reports whether c may enter a square governed by this policy.
	Allows(c Character) bool
	// Name identifies the square kind (e.g. "floor", "wall").
	Name() string
}

// Floor is open ground that every character may enter.
type Floor struct{}

// Allows always returns true.
func (Floor) Allows(Character) bool { return true }

// Name returns "floor".
func (Floor) Name() string { return "floor" }

// Wall blocks every character.
type Wall struct{}

// Allows always returns false.
func (Wall) Allows(Character) bool { return false }

// Name returns "wall".
func (Wall) Name() string { return "wall" }

// GhostGate is the entrance of the ghost pit: ghosts pass through it, the
// player does not.
type GhostGate struct{}

// Allows reports whether c is a ghost.
func (GhostGate) Allows(c Character) bool { return c.Kind() == KindGhost }

// Name returns "gate".
func (GhostGate) Name() string { return "gate" }

// HookCaller evaluates a named accessibility hook for a character kind.
// scripting.Manager satisfies it.
type HookCaller interface {
	Accessible(scope, hook string, kind Kind) bool
}

// Scripted delegates admission to a script hook.
type Scripted struct {
	// Scope selects the script VM (usually the level ID).
	Scope string
	// Hook is the global function invoked with the character kind.
	Hook string
	// Caller evaluates the hook. A nil Caller denies entry.
	Caller HookCaller
}

// Allows evaluates the hook for c's kind.
func (s Scripted) Allows(c Character) bool {
	if s.Caller == nil {
		return false
	}
	return s.Caller.Accessible(s.Scope, s.Hook, c.Kind())
}

// Name returns "scripted".
func (s Scripted) Name() string { return "scripted" }
