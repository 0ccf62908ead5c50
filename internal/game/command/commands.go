// Package command provides the command registry, parser and built-in
// command definitions for the interactive client.
package command

import "github.com/cory-johannsen/pacman/internal/game/board"

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryGame     = "game"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to client actions.
const (
	HandlerMove  = "move"
	HandlerLook  = "look"
	HandlerScore = "score"
	HandlerHelp  = "help"
	HandlerQuit  = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command.
	Category string
	// Handler selects the client action.
	Handler string
	// Direction is the step direction of a movement command.
	Direction board.Direction
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "up", Aliases: []string{"north", "n", "k"}, Help: "Move up; an optional count repeats the step", Category: CategoryMovement, Handler: HandlerMove, Direction: board.North},
		{Name: "down", Aliases: []string{"south", "s", "j"}, Help: "Move down; an optional count repeats the step", Category: CategoryMovement, Handler: HandlerMove, Direction: board.South},
		{Name: "left", Aliases: []string{"west", "w", "h"}, Help: "Move left; an optional count repeats the step", Category: CategoryMovement, Handler: HandlerMove, Direction: board.West},
		{Name: "right", Aliases: []string{"east", "e", "l"}, Help: "Move right; an optional count repeats the step", Category: CategoryMovement, Handler: HandlerMove, Direction: board.East},

		{Name: "look", Aliases: []string{"board", "b"}, Help: "Redraw the board", Category: CategoryGame, Handler: HandlerLook},
		{Name: "score", Aliases: []string{"sc"}, Help: "Show score and pellets left", Category: CategoryGame, Handler: HandlerScore},

		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsMovement reports whether the command moves the player.
func (c *Command) IsMovement() bool {
	return c.Handler == HandlerMove
}
