package board

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Board is a rectangular arrangement of squares. Connectivity lives in the
// squares themselves; the Board only indexes them by position.
type Board struct {
	width   int
	height  int
	squares [][]*Square // [y][x]
}

// NewBoard indexes the given rows of squares, recording each square's position.
//
// Precondition: rows must be non-empty, rectangular and free of nil squares.
// Postcondition: Returns a Board or an error describing the first violation.
func NewBoard(rows [][]*Square) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("board must have at least one square")
	}
	width := len(rows[0])
	seen := make(map[*Square]bool)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d squares, expected %d", y, len(row), width)
		}
		for x, sq := range row {
			switch {
			case sq == nil:
				return nil, fmt.Errorf("square at (%d,%d) is nil", x, y)
			case sq.placed:
				return nil, fmt.Errorf("square at (%d,%d) already placed at (%d,%d)", x, y, sq.x, sq.y)
			case seen[sq]:
				return nil, fmt.Errorf("square at (%d,%d) appears twice", x, y)
			}
			seen[sq] = true
		}
	}

	grid := make([][]*Square, len(rows))
	for y, row := range rows {
		grid[y] = make([]*Square, width)
		for x, sq := range row {
			sq.x, sq.y, sq.placed = x, y, true
			grid[y][x] = sq
		}
	}
	return &Board{width: width, height: len(rows), squares: grid}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// SquareAt returns the square at column x, row y, or nil when out of bounds.
func (b *Board) SquareAt(x, y int) *Square {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return nil
	}
	return b.squares[y][x]
}

// Squares returns every square in row-major order.
func (b *Board) Squares() []*Square {
	out := make([]*Square, 0, b.width*b.height)
	for _, row := range b.squares {
		out = append(out, row...)
	}
	return out
}

// LinkGrid connects every square to its orthogonal neighbours in both
// directions. With wrap set, squares on opposite edges are linked as well.
func (b *Board) LinkGrid(wrap bool) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			sq := b.squares[y][x]
			for _, d := range []Direction{East, South} {
				dx, dy := d.Delta()
				nx, ny := x+dx, y+dy
				if wrap {
					nx = (nx + b.width) % b.width
					ny = (ny + b.height) % b.height
				}
				if n := b.SquareAt(nx, ny); n != nil {
					Connect(sq, n, d)
				}
			}
		}
	}
}

// Connect links a to b in direction d and b back to a in the opposite direction.
//
// Precondition: d must be valid.
func Connect(a, b *Square, d Direction) {
	a.AddNeighbour(b, d)
	b.AddNeighbour(a, d.Opposite())
}

// Validate checks that every link is mirrored by its neighbour, that every
// occupant's back-reference points at the square holding it, and that no
// character stands on two squares.
//
// Postcondition: Returns nil if the board is consistent, or an error
// describing the first violation.
func (b *Board) Validate() error {
	seen := make(map[uuid.UUID]*Square)
	for _, sq := range b.Squares() {
		for _, d := range Directions {
			n := sq.edges[d]
			if n == nil {
				continue
			}
			if back := n.edges[d.Opposite()]; back != sq {
				return fmt.Errorf("%s links %s to %s, which does not link %s back", sq, d, n, d.Opposite())
			}
		}
		if !sq.Invariant() {
			return fmt.Errorf("%s holds an occupant whose square is elsewhere", sq)
		}
		for _, c := range sq.occupants {
			if prev, dup := seen[c.ID()]; dup {
				return fmt.Errorf("%s %q (%s) occupies both %s and %s", c.Kind(), c.Name(), c.ID(), prev, sq)
			}
			seen[c.ID()] = sq
		}
	}
	return nil
}
