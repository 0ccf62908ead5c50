package level

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pacman/internal/game/board"
	"github.com/cory-johannsen/pacman/internal/scripting"
)

// Map symbols understood by the loader without a legend entry.
const (
	SymbolWall   = '#'
	SymbolFloor  = ' '
	SymbolPellet = '.'
	SymbolPlayer = 'P'
	SymbolGhost  = 'G'
	SymbolGate   = '-'
)

// DefaultPelletValue is awarded for a pellet when the level does not say otherwise.
const DefaultPelletValue = 10

// yamlLevelFile is the top-level YAML structure for level files.
type yamlLevelFile struct {
	Level yamlLevel `yaml:"level"`
}

type yamlLevel struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Wrap        bool         `yaml:"wrap"`
	PelletValue int          `yaml:"pellet_value"`
	Player      string       `yaml:"player"`
	Ghosts      []string     `yaml:"ghosts"`
	ScriptDir   string       `yaml:"script_dir"`
	Scripts     string       `yaml:"scripts"`
	Legend      []yamlSymbol `yaml:"legend"`
	Map         []string     `yaml:"map"`
}

// yamlSymbol maps a custom map symbol to a scripted square kind.
type yamlSymbol struct {
	Symbol string `yaml:"symbol"`
	Hook   string `yaml:"hook"`
	Pellet bool   `yaml:"pellet"`
}

// Options configures level loading.
type Options struct {
	// Scripts receives the level's Lua scripts and evaluates scripted
	// squares. Required only when the level declares a legend or scripts.
	Scripts *scripting.Manager
	// InstructionLimit bounds each script execution; 0 uses the default.
	InstructionLimit int
	// Logger receives load diagnostics. nil disables logging.
	Logger *zap.Logger
}

// LoadFromFile reads a level YAML file. A relative script_dir is resolved
// against the file's directory.
//
// Precondition: path must point to a level YAML file.
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromFile(path string, opts Options) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	lvl, err := parse(data)
	if err != nil {
		return nil, err
	}
	if lvl.ScriptDir != "" && !filepath.IsAbs(lvl.ScriptDir) {
		lvl.ScriptDir = filepath.Join(filepath.Dir(path), lvl.ScriptDir)
	}
	return build(lvl, opts)
}

// LoadFromBytes parses and builds a level from YAML bytes.
//
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromBytes(data []byte, opts Options) (*Level, error) {
	lvl, err := parse(data)
	if err != nil {
		return nil, err
	}
	return build(lvl, opts)
}

func parse(data []byte) (yamlLevel, error) {
	var file yamlLevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return yamlLevel{}, fmt.Errorf("parsing level YAML: %w", err)
	}
	return file.Level, nil
}

func build(yl yamlLevel, opts Options) (*Level, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if yl.ID == "" {
		return nil, fmt.Errorf("level ID must not be empty")
	}
	if len(yl.Map) == 0 {
		return nil, fmt.Errorf("level %q: map must not be empty", yl.ID)
	}
	pelletValue := yl.PelletValue
	if pelletValue <= 0 {
		pelletValue = DefaultPelletValue
	}
	playerName := yl.Player
	if playerName == "" {
		playerName = "pac-man"
	}

	legend, err := loadLegend(yl, opts)
	if err != nil {
		return nil, err
	}

	type start struct {
		c  board.Character
		sq *board.Square
	}
	var (
		starts  []start
		players []*board.Player
		ghosts  []*board.Ghost
	)
	rows := make([][]*board.Square, len(yl.Map))
	for y, line := range yl.Map {
		for x, r := range []rune(line) {
			var sq *board.Square
			switch r {
			case SymbolWall:
				sq = board.NewWall()
			case SymbolFloor:
				sq = board.NewFloor()
			case SymbolPellet:
				sq = board.NewFloor()
				sq.SetPellet(board.NewPellet(pelletValue))
			case SymbolGate:
				sq = board.NewGhostGate()
			case SymbolPlayer:
				sq = board.NewFloor()
				p := board.NewPlayer(playerName)
				players = append(players, p)
				starts = append(starts, start{p, sq})
			case SymbolGhost:
				sq = board.NewFloor()
				g := board.NewGhost(ghostName(yl.Ghosts, len(ghosts)))
				ghosts = append(ghosts, g)
				starts = append(starts, start{g, sq})
			default:
				sym, ok := legend[r]
				if !ok {
					return nil, fmt.Errorf("level %q: unknown symbol %q at (%d,%d)", yl.ID, r, x, y)
				}
				sq = board.NewSquare(board.Scripted{Scope: yl.ID, Hook: sym.Hook, Caller: opts.Scripts})
				if sym.Pellet {
					sq.SetPellet(board.NewPellet(pelletValue))
				}
			}
			rows[y] = append(rows[y], sq)
		}
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("level %q: %w", yl.ID, ErrNoPlayers)
	}

	b, err := board.NewBoard(rows)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", yl.ID, err)
	}
	b.LinkGrid(yl.Wrap)
	for _, s := range starts {
		if err := board.Occupy(s.c, s.sq); err != nil {
			return nil, fmt.Errorf("level %q: %w", yl.ID, err)
		}
	}

	lvl, err := New(yl.ID, yl.Name, b, players, ghosts)
	if err != nil {
		return nil, err
	}

	reach := Reachable(players[0].Square(), players[0])
	unreachable := 0
	for _, sq := range b.Squares() {
		if sq.Pellet() != nil && !reach.Has(sq) {
			unreachable++
		}
	}
	if unreachable > 0 {
		logger.Warn("level has pellets the player cannot reach",
			zap.String("level", yl.ID),
			zap.Int("unreachable", unreachable),
		)
	}
	logger.Info("level loaded",
		zap.String("level", yl.ID),
		zap.Int("width", b.Width()),
		zap.Int("height", b.Height()),
		zap.Int("players", len(players)),
		zap.Int("ghosts", len(ghosts)),
		zap.Int("pellets", lvl.RemainingPellets()),
	)
	return lvl, nil
}

// loadLegend validates custom symbols and loads the level's scripts.
func loadLegend(yl yamlLevel, opts Options) (map[rune]yamlSymbol, error) {
	legend := make(map[rune]yamlSymbol, len(yl.Legend))
	for _, sym := range yl.Legend {
		runes := []rune(sym.Symbol)
		if len(runes) != 1 {
			return nil, fmt.Errorf("level %q: legend symbol %q must be a single character", yl.ID, sym.Symbol)
		}
		r := runes[0]
		switch r {
		case SymbolWall, SymbolFloor, SymbolPellet, SymbolPlayer, SymbolGhost, SymbolGate:
			return nil, fmt.Errorf("level %q: legend symbol %q is reserved", yl.ID, sym.Symbol)
		}
		if _, dup := legend[r]; dup {
			return nil, fmt.Errorf("level %q: duplicate legend symbol %q", yl.ID, sym.Symbol)
		}
		if sym.Hook == "" {
			return nil, fmt.Errorf("level %q: legend symbol %q has no hook", yl.ID, sym.Symbol)
		}
		legend[r] = sym
	}

	needsScripts := len(legend) > 0 || yl.ScriptDir != "" || yl.Scripts != ""
	if !needsScripts {
		return legend, nil
	}
	if opts.Scripts == nil {
		return nil, fmt.Errorf("level %q: uses scripts but no script manager was provided", yl.ID)
	}
	if yl.ScriptDir != "" {
		if err := opts.Scripts.LoadDir(yl.ID, yl.ScriptDir, opts.InstructionLimit); err != nil {
			return nil, fmt.Errorf("level %q: %w", yl.ID, err)
		}
	}
	if yl.Scripts != "" {
		if err := opts.Scripts.LoadSource(yl.ID, "inline", yl.Scripts, opts.InstructionLimit); err != nil {
			return nil, fmt.Errorf("level %q: %w", yl.ID, err)
		}
	}
	return legend, nil
}

func ghostName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("ghost-%d", i+1)
}
