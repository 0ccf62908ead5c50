package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pacman/internal/game/board"
	"github.com/cory-johannsen/pacman/internal/game/level"
)

// ErrPlayerCount is returned when a single-player game is built from a level
// that does not hold exactly one player.
var ErrPlayerCount = errors.New("single-player game requires exactly one player")

// SinglePlayerGame binds the directional commands to the level's only player.
type SinglePlayerGame struct {
	*Game
	level  *level.Level
	player *board.Player
}

// NewSinglePlayerGame creates a game for lvl.
//
// Precondition: lvl must be non-nil.
// Postcondition: Returns a game controlling lvl's player, or ErrPlayerCount
// (wrapped) when lvl has zero or several players.
func NewSinglePlayerGame(lvl *level.Level, logger *zap.Logger) (*SinglePlayerGame, error) {
	if lvl == nil {
		return nil, errors.New("single-player game: level is nil")
	}
	players := lvl.Players()
	if len(players) != 1 {
		return nil, fmt.Errorf("level %q has %d players: %w", lvl.ID, len(players), ErrPlayerCount)
	}
	return &SinglePlayerGame{
		Game:   NewGame(logger),
		level:  lvl,
		player: players[0],
	}, nil
}

// Player returns the controlled player.
func (s *SinglePlayerGame) Player() *board.Player { return s.player }

// Level returns the level being played.
func (s *SinglePlayerGame) Level() *level.Level { return s.level }

// Up moves the player north.
func (s *SinglePlayerGame) Up() MoveResult { return s.Move(s.player, board.North) }

// Down moves the player south.
func (s *SinglePlayerGame) Down() MoveResult { return s.Move(s.player, board.South) }

// Left moves the player west.
func (s *SinglePlayerGame) Left() MoveResult { return s.Move(s.player, board.West) }

// Right moves the player east.
func (s *SinglePlayerGame) Right() MoveResult { return s.Move(s.player, board.East) }
