// Package engine is the movement controller: it validates and applies
// one-square moves and reports pellet consumption to interested parties.
package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pacman/internal/game/board"
)

// MoveResult reports the outcome of a move request.
type MoveResult int

// Move outcomes. Only Moved changes board state.
const (
	// Moved means the character now stands on the neighbouring square.
	Moved MoveResult = iota
	// BlockedNoSquare means there is no neighbour in that direction.
	BlockedNoSquare
	// BlockedInaccessible means the neighbour refuses the character's kind.
	BlockedInaccessible
)

func (r MoveResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case BlockedNoSquare:
		return "blocked: no square"
	case BlockedInaccessible:
		return "blocked: inaccessible"
	default:
		return "unknown"
	}
}

// ConsumeEvent describes a pellet eaten by a character.
type ConsumeEvent struct {
	Character board.Character
	Square    *board.Square
	Pellet    *board.Pellet
}

// Game applies moves to the board graph. Moves are serialized: each one
// completes, side effects included, before the next starts.
type Game struct {
	mu        sync.Mutex
	logger    *zap.Logger
	listeners []func(ConsumeEvent)
}

// NewGame creates a movement controller. A nil logger disables logging.
func NewGame(logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{logger: logger}
}

// OnConsume registers fn to be called after every pellet consumption.
// Listeners run in registration order, outside the move lock.
func (g *Game) OnConsume(fn func(ConsumeEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// Move tries to step c one square in direction d.
//
// A missing neighbour or an inaccessible one leaves the board untouched and
// is reported through the result, never as an error. On success c leaves its
// square, becomes the newest occupant of the target and, if its kind eats
// pellets, consumes the target's pellet. A character that is not on the
// board cannot move.
//
// Precondition: d must be a valid Direction.
// Postcondition: Every square's occupants still point back at it.
func (g *Game) Move(c board.Character, d board.Direction) MoveResult {
	g.mu.Lock()
	result, ev := g.move(c, d)
	var listeners []func(ConsumeEvent)
	if ev != nil {
		listeners = append(listeners, g.listeners...)
	}
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(*ev)
	}
	return result
}

func (g *Game) move(c board.Character, d board.Direction) (MoveResult, *ConsumeEvent) {
	board.Face(c, d)

	from := c.Square()
	if from == nil {
		g.logger.Debug("move ignored: character not on board",
			zap.Stringer("id", c.ID()),
			zap.String("kind", string(c.Kind())),
			zap.String("name", c.Name()),
		)
		return BlockedNoSquare, nil
	}
	target := from.SquareAt(d)
	if target == nil {
		return BlockedNoSquare, nil
	}
	if !target.IsAccessibleTo(c) {
		return BlockedInaccessible, nil
	}

	board.Relocate(c, target)
	g.logger.Debug("character moved",
		zap.Stringer("id", c.ID()),
		zap.String("kind", string(c.Kind())),
		zap.String("name", c.Name()),
		zap.Stringer("direction", d),
		zap.Stringer("from", from),
		zap.Stringer("to", target),
	)

	p := target.Pellet()
	if p == nil || !c.Kind().ConsumesPellets() {
		return Moved, nil
	}
	target.RemovePellet()
	g.logger.Debug("pellet consumed",
		zap.Stringer("id", c.ID()),
		zap.String("name", c.Name()),
		zap.Stringer("square", target),
		zap.Int("value", p.Value),
	)
	return Moved, &ConsumeEvent{Character: c, Square: target, Pellet: p}
}
