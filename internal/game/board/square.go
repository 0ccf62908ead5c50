package board

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Pellet is a collectible worth Value points to whoever consumes it.
type Pellet struct {
	Value int
}

// NewPellet returns a pellet worth value points.
func NewPellet(value int) *Pellet {
	return &Pellet{Value: value}
}

// Square is a node in the board graph. It holds at most one pellet, an
// ordered list of occupants and a link to a neighbouring square per direction.
//
// Squares are not safe for concurrent use; the engine serializes all
// mutations.
type Square struct {
	policy    AccessPolicy
	occupants []Character
	edges     map[Direction]*Square
	pellet    *Pellet
	x, y      int
	placed    bool
}

// NewSquare creates an empty square governed by policy.
//
// Precondition: policy must be non-nil.
// Postcondition: Returns a square with no neighbours, occupants or pellet.
func NewSquare(policy AccessPolicy) *Square {
	if policy == nil {
		panic("board: square requires an access policy")
	}
	return &Square{
		policy: policy,
		edges:  make(map[Direction]*Square, len(Directions)),
	}
}

// NewFloor creates an open floor square.
func NewFloor() *Square { return NewSquare(Floor{}) }

// NewWall creates a wall square.
func NewWall() *Square { return NewSquare(Wall{}) }

// NewGhostGate creates a ghost pit entrance square.
func NewGhostGate() *Square { return NewSquare(GhostGate{}) }

// Policy returns the access policy that defines this square's kind.
func (s *Square) Policy() AccessPolicy {
	return s.policy
}

// Position returns the square's column and row on its Board. ok is false
// when the square has not been placed on a Board.
func (s *Square) Position() (x, y int, ok bool) {
	return s.x, s.y, s.placed
}

func (s *Square) String() string {
	if !s.placed {
		return fmt.Sprintf("%s(unplaced)", s.policy.Name())
	}
	return fmt.Sprintf("%s(%d,%d)", s.policy.Name(), s.x, s.y)
}

// AddNeighbour links square as this square's neighbour in direction,
// replacing any previous link. The reverse link is not created.
//
// Precondition: direction must be valid.
func (s *Square) AddNeighbour(square *Square, direction Direction) {
	mustBeValid(direction)
	s.edges[direction] = square
}

// SquareAt returns the neighbour in direction, or nil if there is none.
//
// Precondition: direction must be valid; an invalid direction panics.
func (s *Square) SquareAt(direction Direction) *Square {
	mustBeValid(direction)
	return s.edges[direction]
}

// Neighbours returns the distinct set of neighbouring squares.
func (s *Square) Neighbours() mapset.Set[*Square] {
	set := mapset.New[*Square]()
	for _, n := range s.edges {
		if n != nil {
			set.Put(n)
		}
	}
	return set
}

// DirectionOf returns a direction under which neighbour is linked from this
// square. When several directions lead to the same square, any one of them
// may be returned.
//
// Postcondition: Returns (direction, true) if neighbour is adjacent, or ("", false).
func (s *Square) DirectionOf(neighbour *Square) (Direction, bool) {
	if neighbour == nil {
		return "", false
	}
	for d, n := range s.edges {
		if n == neighbour {
			return d, true
		}
	}
	return "", false
}

// SetPellet places p on this square, replacing any pellet already here.
//
// Precondition: p must be non-nil; use RemovePellet to clear.
func (s *Square) SetPellet(p *Pellet) {
	if p == nil {
		panic("board: SetPellet called with nil pellet")
	}
	s.pellet = p
}

// RemovePellet clears the pellet. It is a no-op on an empty square.
func (s *Square) RemovePellet() {
	s.pellet = nil
}

// Pellet returns the pellet on this square, or nil.
func (s *Square) Pellet() *Pellet {
	return s.pellet
}

// AddOccupant puts c on top of this square. The character's back-reference is
// not updated; use Occupy or Relocate to keep both sides consistent.
//
// Precondition: c must be non-nil.
func (s *Square) AddOccupant(c Character) {
	if c == nil {
		panic("board: AddOccupant called with nil character")
	}
	s.occupants = append(s.occupants, c)
}

// RemoveOccupant removes the first occurrence of c. Absent characters are ignored.
func (s *Square) RemoveOccupant(c Character) {
	for i, o := range s.occupants {
		if o == c {
			s.occupants = append(s.occupants[:i], s.occupants[i+1:]...)
			return
		}
	}
}

// Occupants returns a copy of the occupants, ordered from the earliest
// arrival to the most recent one.
func (s *Square) Occupants() []Character {
	out := make([]Character, len(s.occupants))
	copy(out, s.occupants)
	return out
}

// IsAccessibleTo reports whether c may move onto this square.
func (s *Square) IsAccessibleTo(c Character) bool {
	return s.policy.Allows(c)
}

// Invariant reports whether every occupant's current square is this square.
func (s *Square) Invariant() bool {
	for _, o := range s.occupants {
		if o.Square() != s {
			return false
		}
	}
	return true
}

func mustBeValid(d Direction) {
	if !d.IsValid() {
		panic(fmt.Sprintf("board: invalid direction %q", d))
	}
}
