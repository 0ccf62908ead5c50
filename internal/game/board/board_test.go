package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func floorRows(w, h int) [][]*Square {
	rows := make([][]*Square, h)
	for y := range rows {
		rows[y] = make([]*Square, w)
		for x := range rows[y] {
			rows[y][x] = NewFloor()
		}
	}
	return rows
}

func TestDirection_Opposite(t *testing.T) {
	pairs := [][2]Direction{{North, South}, {East, West}}
	for _, pair := range pairs {
		assert.Equal(t, pair[1], pair[0].Opposite())
		assert.Equal(t, pair[0], pair[1].Opposite())
	}
	assert.Equal(t, Direction(""), Direction("up").Opposite())
}

func TestPropertyOppositeIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.SampledFrom(Directions).Draw(t, "dir")
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
	})
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" North ")
	require.NoError(t, err)
	assert.Equal(t, North, d)

	_, err = ParseDirection("northeast")
	assert.Error(t, err)
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(floorRows(4, 3))
	require.NoError(t, err)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 3, b.Height())
	assert.Len(t, b.Squares(), 12)

	x, y, ok := b.SquareAt(3, 2).Position()
	assert.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)
	assert.Nil(t, b.SquareAt(4, 0))
	assert.Nil(t, b.SquareAt(0, -1))
}

func TestNewBoard_Errors(t *testing.T) {
	_, err := NewBoard(nil)
	assert.Error(t, err)

	ragged := floorRows(3, 2)
	ragged[1] = ragged[1][:2]
	_, err = NewBoard(ragged)
	assert.ErrorContains(t, err, "row 1")

	holes := floorRows(2, 2)
	holes[0][1] = nil
	_, err = NewBoard(holes)
	assert.ErrorContains(t, err, "nil")

	rows := floorRows(2, 1)
	_, err = NewBoard(rows)
	require.NoError(t, err)
	_, err = NewBoard(rows)
	assert.ErrorContains(t, err, "already placed")
}

func TestConnect_IsSymmetric(t *testing.T) {
	a, b := NewFloor(), NewFloor()
	Connect(a, b, North)
	assert.Same(t, b, a.SquareAt(North))
	assert.Same(t, a, b.SquareAt(South))
}

func TestBoard_LinkGrid(t *testing.T) {
	b, err := NewBoard(floorRows(3, 3))
	require.NoError(t, err)
	b.LinkGrid(false)

	center := b.SquareAt(1, 1)
	assert.Equal(t, 4, center.Neighbours().Size())
	assert.Same(t, b.SquareAt(1, 0), center.SquareAt(North))
	assert.Same(t, b.SquareAt(1, 2), center.SquareAt(South))
	assert.Same(t, b.SquareAt(0, 1), center.SquareAt(West))
	assert.Same(t, b.SquareAt(2, 1), center.SquareAt(East))

	corner := b.SquareAt(0, 0)
	assert.Nil(t, corner.SquareAt(North))
	assert.Nil(t, corner.SquareAt(West))
	assert.NoError(t, b.Validate())
}

func TestBoard_LinkGrid_Wrap(t *testing.T) {
	b, err := NewBoard(floorRows(3, 2))
	require.NoError(t, err)
	b.LinkGrid(true)

	assert.Same(t, b.SquareAt(2, 0), b.SquareAt(0, 0).SquareAt(West))
	assert.Same(t, b.SquareAt(0, 1), b.SquareAt(0, 0).SquareAt(North))
	assert.NoError(t, b.Validate())
}

func TestBoard_Validate_Asymmetric(t *testing.T) {
	b, err := NewBoard(floorRows(2, 1))
	require.NoError(t, err)
	b.SquareAt(0, 0).AddNeighbour(b.SquareAt(1, 0), East)

	assert.ErrorContains(t, b.Validate(), "does not link")
}

func TestBoard_Validate_BrokenBackReference(t *testing.T) {
	b, err := NewBoard(floorRows(2, 1))
	require.NoError(t, err)
	b.SquareAt(0, 0).AddOccupant(NewPlayer("p"))

	assert.ErrorContains(t, b.Validate(), "occupant")
}

func TestBoard_Validate_DuplicateOccupant(t *testing.T) {
	b, err := NewBoard(floorRows(2, 1))
	require.NoError(t, err)
	sq := b.SquareAt(0, 0)
	g := NewGhost("g")
	require.NoError(t, Occupy(g, sq))
	require.NoError(t, b.Validate())

	sq.AddOccupant(g)
	err = b.Validate()
	assert.ErrorContains(t, err, "occupies both")
	assert.ErrorContains(t, err, g.ID().String())
}

func TestPropertyLinkGridIsSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 8).Draw(t, "w")
		h := rapid.IntRange(1, 8).Draw(t, "h")
		wrap := rapid.Bool().Draw(t, "wrap")
		b, err := NewBoard(floorRows(w, h))
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}
		b.LinkGrid(wrap)
		for _, sq := range b.Squares() {
			for _, d := range Directions {
				n := sq.SquareAt(d)
				if n == nil {
					continue
				}
				if n.SquareAt(d.Opposite()) != sq {
					t.Fatalf("%s -> %s via %s is not mirrored", sq, n, d)
				}
			}
		}
	})
}
