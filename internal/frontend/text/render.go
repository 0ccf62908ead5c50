package text

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/pacman/internal/game/board"
	"github.com/cory-johannsen/pacman/internal/game/command"
	"github.com/cory-johannsen/pacman/internal/game/engine"
)

// Cell glyphs used by Render.
const (
	GlyphWall     = '#'
	GlyphFloor    = ' '
	GlyphPellet   = '.'
	GlyphGate     = '-'
	GlyphScripted = '~'
	GlyphPlayer   = 'P'
	GlyphGhost    = 'G'
)

// Render draws b one row per line. The most recent occupant of a square is
// drawn over any pellet, which is drawn over the square's own glyph.
//
// Postcondition: Returns Height() lines of Width() glyphs each, newline
// terminated; with color unset the output contains no escape sequences.
func Render(b *board.Board, color bool) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			glyph, style := cell(b.SquareAt(x, y))
			if color && style != "" {
				sb.WriteString(Colorize(style, string(glyph)))
			} else {
				sb.WriteRune(glyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cell(sq *board.Square) (rune, string) {
	if occ := sq.Occupants(); len(occ) > 0 {
		switch occ[len(occ)-1].Kind() {
		case board.KindPlayer:
			return GlyphPlayer, Bold + BrightYellow
		case board.KindGhost:
			return GlyphGhost, Red
		}
	}
	if sq.Pellet() != nil {
		return GlyphPellet, Yellow
	}
	switch sq.Policy().(type) {
	case board.Wall:
		return GlyphWall, Blue
	case board.GhostGate:
		return GlyphGate, Magenta
	case board.Scripted:
		return GlyphScripted, Cyan
	}
	return GlyphFloor, ""
}

// Status formats the score line shown after each command.
func Status(score, remaining int, color bool) string {
	line := fmt.Sprintf("Score: %d  Pellets left: %d", score, remaining)
	if color {
		return Colorize(Green, line)
	}
	return line
}

// MoveFeedback describes a blocked move, or returns "" for a move that succeeded.
func MoveFeedback(r engine.MoveResult) string {
	switch r {
	case engine.Moved:
		return ""
	case engine.BlockedNoSquare:
		return "There is nothing that way."
	case engine.BlockedInaccessible:
		return "You can't go that way."
	default:
		return "Move failed: " + r.String()
	}
}

// Help lists cmds grouped by category in the order given.
func Help(cmds []*command.Command) string {
	var sb strings.Builder
	category := ""
	for _, c := range cmds {
		if c.Category != category && c.Category != "" {
			category = c.Category
			fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(category[:1])+category[1:])
		}
		names := c.Name
		if len(c.Aliases) > 0 {
			names += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		fmt.Fprintf(&sb, "  %-28s %s\n", names, c.Help)
	}
	return sb.String()
}
