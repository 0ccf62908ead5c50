package text

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pacman/internal/game/command"
	"github.com/cory-johannsen/pacman/internal/game/engine"
)

// Session drives a single-player game from line-oriented terminal input.
type Session struct {
	game     *engine.SinglePlayerGame
	registry *command.Registry
	color    bool
	logger   *zap.Logger

	mu    sync.Mutex
	score int
}

// NewSession wraps game for interactive play and starts keeping score from
// the pellets the player consumes.
//
// Precondition: game, registry and logger must be non-nil.
func NewSession(game *engine.SinglePlayerGame, registry *command.Registry, color bool, logger *zap.Logger) *Session {
	if game == nil || registry == nil || logger == nil {
		panic("text.NewSession: game, registry and logger must be non-nil")
	}
	s := &Session{game: game, registry: registry, color: color, logger: logger}
	game.OnConsume(func(ev engine.ConsumeEvent) {
		if ev.Character.ID() != game.Player().ID() {
			return
		}
		s.mu.Lock()
		s.score += ev.Pellet.Value
		s.mu.Unlock()
	})
	return s
}

// Score returns the total value of pellets eaten so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Run reads commands from in until quit, end of input, context cancellation
// or the last pellet is eaten, writing the board and feedback to out.
//
// Postcondition: Returns nil on a normal end of play, or the first read or
// write error.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lvl := s.game.Level()
	s.logger.Info("session started",
		zap.String("level", lvl.ID),
		zap.String("player", s.game.Player().Name()),
		zap.Int("pellets", lvl.RemainingPellets()),
	)
	if err := s.draw(out); err != nil {
		return err
	}
	if lvl.RemainingPellets() == 0 {
		_, err := s.cleared(out)
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("session cancelled", zap.Error(err))
			return nil
		}
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			s.logger.Info("input closed", zap.Int("score", s.Score()))
			return nil
		}

		done, err := s.handle(scanner.Text(), out)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Session) handle(line string, out io.Writer) (bool, error) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return false, nil
	}
	cmd, ok := s.registry.Resolve(parsed.Command)
	if !ok {
		_, err := fmt.Fprintf(out, "Unknown command %q. Type help for a list.\n", parsed.Command)
		return false, err
	}

	switch cmd.Handler {
	case command.HandlerMove:
		steps, err := command.RepeatCount(parsed.Args)
		if err != nil {
			_, err = fmt.Fprintf(out, "%s: %v.\n", cmd.Name, err)
			return false, err
		}
		if msg := MoveFeedback(s.step(cmd, steps)); msg != "" {
			if _, err := fmt.Fprintln(out, msg); err != nil {
				return false, err
			}
		}
		if err := s.draw(out); err != nil {
			return false, err
		}
		if s.game.Level().RemainingPellets() == 0 {
			return s.cleared(out)
		}
	case command.HandlerLook:
		return false, s.draw(out)
	case command.HandlerScore:
		_, err := fmt.Fprintln(out, Status(s.Score(), s.game.Level().RemainingPellets(), s.color))
		return false, err
	case command.HandlerHelp:
		_, err := fmt.Fprint(out, Help(s.registry.Commands()))
		return false, err
	case command.HandlerQuit:
		s.logger.Info("player quit", zap.Int("score", s.Score()))
		_, err := fmt.Fprintln(out, "Goodbye.")
		return true, err
	default:
		s.logger.Warn("command has no handler", zap.String("command", cmd.Name), zap.String("handler", cmd.Handler))
	}
	return false, nil
}

// step moves the player up to n times, stopping at the first blocked move or
// once the last pellet is gone.
func (s *Session) step(cmd *command.Command, n int) engine.MoveResult {
	result := engine.Moved
	for i := 0; i < n && result == engine.Moved; i++ {
		result = s.game.Move(s.game.Player(), cmd.Direction)
		if s.game.Level().RemainingPellets() == 0 {
			break
		}
	}
	return result
}

func (s *Session) cleared(out io.Writer) (bool, error) {
	s.logger.Info("level cleared", zap.Int("score", s.Score()))
	_, err := fmt.Fprintln(out, "All pellets eaten. You win!")
	return true, err
}

func (s *Session) draw(out io.Writer) error {
	lvl := s.game.Level()
	if _, err := fmt.Fprint(out, Render(lvl.Board(), s.color)); err != nil {
		return fmt.Errorf("writing board: %w", err)
	}
	if _, err := fmt.Fprintln(out, Status(s.Score(), lvl.RemainingPellets(), s.color)); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	return nil
}
