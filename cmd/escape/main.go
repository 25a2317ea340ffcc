// Package main runs the dungeon escape game in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/escape/internal/config"
	"github.com/cory-johannsen/escape/internal/frontend/text"
	"github.com/cory-johannsen/escape/internal/observability"
	"github.com/cory-johannsen/escape/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run plays one game and returns the process exit code. Deferred log
// flushing happens before the code is returned.
func run(args []string, in io.Reader, out io.Writer) int {
	start := time.Now()

	fs := flag.NewFlagSet("escape", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file (defaults and ESCAPE_* environment when empty)")
	worldFile := fs.String("world", "", "path to a world YAML file (overrides game.world_file)")
	playerName := fs.String("player", "", "player name (overrides game.player_name)")
	mode := fs.String("mode", "", "frontend mode, line or tui (overrides frontend.mode)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// A missing .env is fine; the environment and defaults still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("loading config: %v", err)
		return 1
	}
	cfg, err = applyFlags(cfg, *worldFile, *playerName, *mode)
	if err != nil {
		log.Printf("applying flags: %v", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Printf("initializing logger: %v", err)
		return 1
	}
	defer observability.Sync(logger)

	sess, err := newSession(cfg.Game, logger)
	if err != nil {
		logger.Error("loading world", zap.Error(err))
		return 1
	}
	logger.Info("world loaded",
		zap.String("title", sess.World().Title()),
		zap.Int("rooms", len(sess.World().Rooms())),
		zap.String("frontend", cfg.Frontend.Mode),
		zap.Duration("startup", time.Since(start)),
	)

	format := text.NewFormatter(out, cfg.Frontend.Color, cfg.Frontend.WrapWidth)

	ctx := context.Background()
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("game", server.NewContextService(ctx, func(ctx context.Context) error {
		return play(ctx, cfg.Frontend.Mode, sess, format, in, out)
	}))

	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("game error", zap.Error(err))
		return 1
	}
	logger.Info("game over",
		zap.Stringer("status", sess.Status()),
		zap.Int("turns", sess.Turns()),
	)
	return 0
}
