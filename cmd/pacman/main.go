// Package main provides the terminal client: it loads a level and lets one
// player walk the board eating pellets.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pacman/internal/app"
	"github.com/cory-johannsen/pacman/internal/config"
	"github.com/cory-johannsen/pacman/internal/frontend/text"
	"github.com/cory-johannsen/pacman/internal/game/command"
	"github.com/cory-johannsen/pacman/internal/game/engine"
	"github.com/cory-johannsen/pacman/internal/game/level"
	"github.com/cory-johannsen/pacman/internal/observability"
	"github.com/cory-johannsen/pacman/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty uses defaults")
	levelFile := flag.String("level", "", "path to a level YAML file; overrides game.level_file")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *levelFile != "" {
		cfg.Game.LevelFile = *levelFile
	}
	if *noColor {
		cfg.Game.Color = false
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	scripts := scripting.NewManager(logger)
	defer scripts.Close()
	if cfg.Game.ScriptDir != "" {
		if err := scripts.LoadGlobal(cfg.Game.ScriptDir, cfg.Game.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading global scripts", zap.String("dir", cfg.Game.ScriptDir), zap.Error(err))
		}
	}

	levelStart := time.Now()
	lvl, err := level.LoadFromFile(cfg.Game.LevelFile, level.Options{
		Scripts:          scripts,
		InstructionLimit: cfg.Game.ScriptInstructionLimit,
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("loading level", zap.String("file", cfg.Game.LevelFile), zap.Error(err))
	}
	logger.Info("level ready",
		zap.String("id", lvl.ID),
		zap.Int("ghosts", len(lvl.Ghosts())),
		zap.Duration("elapsed", time.Since(levelStart)),
	)

	game, err := engine.NewSinglePlayerGame(lvl, logger)
	if err != nil {
		logger.Fatal("starting game", zap.Error(err))
	}
	session := text.NewSession(game, command.DefaultRegistry(), cfg.Game.Color, logger)

	lc := app.NewLifecycle(logger)
	lc.Add("session", app.TaskFunc(func(ctx context.Context) error {
		return session.Run(ctx, os.Stdin, os.Stdout)
	}))

	logger.Info("client initialized", zap.Duration("startup", time.Since(start)))
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("session ended with error", zap.Error(err))
	}
	logger.Info("game over", zap.Int("score", session.Score()))
}
