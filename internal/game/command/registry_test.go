package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pacman/internal/game/board"
)

func TestResolve_Movement(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		inputs []string
		name   string
		dir    board.Direction
	}{
		{[]string{"up", "north", "n", "k"}, "up", board.North},
		{[]string{"down", "south", "s", "j"}, "down", board.South},
		{[]string{"left", "west", "w", "h"}, "left", board.West},
		{[]string{"right", "east", "e", "l"}, "right", board.East},
	}
	for _, tt := range tests {
		for _, in := range tt.inputs {
			cmd, ok := r.Resolve(in)
			require.True(t, ok, "input %q not found", in)
			assert.Equal(t, tt.name, cmd.Name)
			assert.True(t, cmd.IsMovement())
			assert.Equal(t, tt.dir, cmd.Direction)
		}
	}
}

func TestResolve_System(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		input   string
		handler string
	}{
		{"look", HandlerLook},
		{"b", HandlerLook},
		{"score", HandlerScore},
		{"?", HandlerHelp},
		{"q", HandlerQuit},
		{"exit", HandlerQuit},
	}
	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler)
		assert.False(t, cmd.IsMovement())
	}
}

func TestResolve_NotFound(t *testing.T) {
	_, ok := DefaultRegistry().Resolve("teleport")
	assert.False(t, ok)
}

func TestNewRegistry_Conflicts(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: "a"}, {Name: "a"}})
	assert.ErrorContains(t, err, "duplicate command name")

	_, err = NewRegistry([]Command{{Name: "a", Aliases: []string{"x"}}, {Name: "b", Aliases: []string{"x"}}})
	assert.ErrorContains(t, err, "duplicate alias")

	_, err = NewRegistry([]Command{{Name: "a", Aliases: []string{"b"}}, {Name: "b"}})
	assert.ErrorContains(t, err, "conflicts with an existing alias")

	_, err = NewRegistry([]Command{{Name: "fly", Handler: HandlerMove, Direction: "up"}})
	assert.ErrorContains(t, err, "invalid direction")
}

func TestCommands_Sorted(t *testing.T) {
	cmds := DefaultRegistry().Commands()
	require.Len(t, cmds, len(BuiltinCommands()))
	assert.Equal(t, CategoryGame, cmds[0].Category)
	assert.Equal(t, "look", cmds[0].Name)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	rapid.Check(t, func(t *rapid.T) {
		cmd := rapid.SampledFrom(cmds).Draw(t, "cmd")
		resolved, ok := r.Resolve(cmd.Name)
		if !ok || resolved != cmd {
			t.Fatalf("canonical name %q did not resolve to itself", cmd.Name)
		}
		for _, alias := range cmd.Aliases {
			if got, ok := r.Resolve(alias); !ok || got != cmd {
				t.Fatalf("alias %q did not resolve to %q", alias, cmd.Name)
			}
		}
	})
}
