// Package level aggregates a board with the characters playing on it and
// builds levels from YAML map descriptions.
package level

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/pacman/internal/game/board"
)

// ErrNoPlayers is returned when a level description places no player.
var ErrNoPlayers = errors.New("level has no player start")

// Level is one session's board together with its player characters and ghosts.
// It does not mutate square state itself.
type Level struct {
	// ID identifies the level; scripted squares use it as their script scope.
	ID string
	// Name is the display name.
	Name string

	board   *board.Board
	players []*board.Player
	ghosts  []*board.Ghost
}

// New assembles a Level.
//
// Precondition: every character must already stand on a square of b.
// Postcondition: Returns a Level whose board passes Validate, or an error.
func New(id, name string, b *board.Board, players []*board.Player, ghosts []*board.Ghost) (*Level, error) {
	if b == nil {
		return nil, fmt.Errorf("level %q: board is nil", id)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", id, err)
	}
	onBoard := mapset.New[*board.Square]()
	for _, sq := range b.Squares() {
		onBoard.Put(sq)
	}
	check := func(c board.Character) error {
		if sq := c.Square(); sq == nil || !onBoard.Has(sq) {
			return fmt.Errorf("level %q: %s %q is not on the board", id, c.Kind(), c.Name())
		}
		return nil
	}
	for _, p := range players {
		if err := check(p); err != nil {
			return nil, err
		}
	}
	for _, g := range ghosts {
		if err := check(g); err != nil {
			return nil, err
		}
	}
	return &Level{
		ID:      id,
		Name:    name,
		board:   b,
		players: append([]*board.Player(nil), players...),
		ghosts:  append([]*board.Ghost(nil), ghosts...),
	}, nil
}

// Board returns the level's board.
func (l *Level) Board() *board.Board {
	return l.board
}

// Players returns a snapshot of the level's player characters.
func (l *Level) Players() []*board.Player {
	out := make([]*board.Player, len(l.players))
	copy(out, l.players)
	return out
}

// Ghosts returns a snapshot of the level's ghosts.
func (l *Level) Ghosts() []*board.Ghost {
	out := make([]*board.Ghost, len(l.ghosts))
	copy(out, l.ghosts)
	return out
}

// RemainingPellets counts the pellets still on the board.
func (l *Level) RemainingPellets() int {
	n := 0
	for _, sq := range l.board.Squares() {
		if sq.Pellet() != nil {
			n++
		}
	}
	return n
}

// Reachable returns every square c could walk to from start, start included,
// following links onto squares accessible to c.
func Reachable(start *board.Square, c board.Character) mapset.Set[*board.Square] {
	visited := mapset.New[*board.Square]()
	if start == nil {
		return visited
	}
	visited.Put(start)
	queue := []*board.Square{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cur.Neighbours().Each(func(n *board.Square) {
			if visited.Has(n) || !n.IsAccessibleTo(c) {
				return
			}
			visited.Put(n)
			queue = append(queue, n)
		})
	}
	return visited
}
