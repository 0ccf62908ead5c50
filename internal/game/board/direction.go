// Package board provides the board model: directions, squares, pellets and the
// characters that occupy them.
package board

import (
	"fmt"
	"strings"
)

// Direction represents one of the four compass directions used to index
// square adjacency.
type Direction string

// Compass directions.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions contains every valid Direction.
var Directions = []Direction{North, South, East, West}

// IsValid reports whether d is one of the four compass directions.
func (d Direction) IsValid() bool {
	switch d {
	case North, South, East, West:
		return true
	default:
		return false
	}
}

// Opposite returns the direction pointing the other way.
// Invalid directions yield an empty Direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// Delta returns the column and row offsets for one step in d, with rows
// increasing southwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection converts a case-insensitive direction name into a Direction.
//
// Postcondition: Returns a valid Direction or a non-nil error.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}
