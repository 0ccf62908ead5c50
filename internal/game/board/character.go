package board

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies characters for accessibility and pellet consumption.
type Kind string

// Character kinds.
const (
	KindPlayer Kind = "player"
	KindGhost  Kind = "ghost"
)

// ConsumesPellets reports whether characters of this kind eat the pellets
// they walk onto.
func (k Kind) ConsumesPellets() bool {
	return k == KindPlayer
}

// Character is an actor occupying at most one square. The square's occupant
// list is authoritative; Square() is the back-reference kept consistent by
// Occupy, Relocate and Vacate.
//
// Character cannot be implemented outside this package.
type Character interface {
	// ID uniquely identifies the character for the lifetime of a session.
	ID() uuid.UUID
	// Kind returns the character's kind.
	Kind() Kind
	// Name returns a display name.
	Name() string
	// Square returns the square the character stands on, or nil when off the board.
	Square() *Square
	// Facing returns the last direction the character tried to move in.
	Facing() Direction

	setSquare(sq *Square)
	setFacing(d Direction)
}

type unit struct {
	id     uuid.UUID
	name   string
	square *Square
	facing Direction
}

func newUnit(name string) unit {
	return unit{id: uuid.New(), name: name, facing: East}
}

func (u *unit) ID() uuid.UUID         { return u.id }
func (u *unit) Name() string          { return u.name }
func (u *unit) Square() *Square       { return u.square }
func (u *unit) Facing() Direction     { return u.facing }
func (u *unit) setSquare(sq *Square)  { u.square = sq }
func (u *unit) setFacing(d Direction) { u.facing = d }

// Player is the character controlled by the user.
type Player struct {
	unit
}

// NewPlayer creates a player that is not yet on the board.
func NewPlayer(name string) *Player {
	return &Player{unit: newUnit(name)}
}

// Kind returns KindPlayer.
func (p *Player) Kind() Kind { return KindPlayer }

// Ghost is a non-player character.
type Ghost struct {
	unit
}

// NewGhost creates a ghost that is not yet on the board.
func NewGhost(name string) *Ghost {
	return &Ghost{unit: newUnit(name)}
}

// Kind returns KindGhost.
func (g *Ghost) Kind() Kind { return KindGhost }

// Occupy places c on sq, setting both the occupant entry and the
// back-reference.
//
// Precondition: c and sq must be non-nil.
// Postcondition: c.Square() == sq and c is sq's newest occupant, or an error
// if c already stands on a square.
func Occupy(c Character, sq *Square) error {
	if sq == nil {
		return fmt.Errorf("placing %s %q: square is nil", c.Kind(), c.Name())
	}
	if cur := c.Square(); cur != nil {
		return fmt.Errorf("placing %s %q: already on %s", c.Kind(), c.Name(), cur)
	}
	sq.AddOccupant(c)
	c.setSquare(sq)
	return nil
}

// Relocate moves c from its current square onto target in one step: it is
// removed from the source occupants, appended to target's occupants and its
// back-reference is updated. No accessibility check is made.
//
// Precondition: target must be non-nil.
func Relocate(c Character, target *Square) {
	if target == nil {
		panic("board: Relocate called with nil target")
	}
	if cur := c.Square(); cur != nil {
		cur.RemoveOccupant(c)
	}
	target.AddOccupant(c)
	c.setSquare(target)
}

// Vacate takes c off the board. It is a no-op for a character that is not placed.
func Vacate(c Character) {
	if cur := c.Square(); cur != nil {
		cur.RemoveOccupant(c)
		c.setSquare(nil)
	}
}

// Face records d as the direction c is heading.
//
// Precondition: d must be valid.
func Face(c Character, d Direction) {
	mustBeValid(d)
	c.setFacing(d)
}
