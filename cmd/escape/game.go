package main

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/escape/content"
	"github.com/cory-johannsen/escape/internal/config"
	"github.com/cory-johannsen/escape/internal/frontend/text"
	"github.com/cory-johannsen/escape/internal/frontend/tui"
	"github.com/cory-johannsen/escape/internal/game/command"
	"github.com/cory-johannsen/escape/internal/game/session"
	"github.com/cory-johannsen/escape/internal/game/world"
)

// applyFlags overlays non-empty command-line values on cfg and revalidates.
func applyFlags(cfg config.Config, worldFile, playerName, mode string) (config.Config, error) {
	if worldFile != "" {
		cfg.Game.WorldFile = worldFile
	}
	if playerName != "" {
		cfg.Game.PlayerName = playerName
	}
	if mode != "" {
		cfg.Frontend.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadWorld reads cfg.WorldFile, or the built-in dungeon when it is empty.
func loadWorld(cfg config.GameConfig) (*world.World, error) {
	opts := []world.LoadOption{world.WithPlayerName(cfg.PlayerName)}
	if cfg.WorldFile == "" {
		return world.Load(content.Dungeon, opts...)
	}
	return world.LoadFile(cfg.WorldFile, opts...)
}

func newSession(cfg config.GameConfig, logger *zap.Logger) (*session.Session, error) {
	w, err := loadWorld(cfg)
	if err != nil {
		return nil, err
	}
	return session.New(w, command.NewInterpreter(command.DefaultRegistry()), logger), nil
}

// play runs sess with the frontend selected by mode.
func play(ctx context.Context, mode string, sess *session.Session, format *text.Formatter, in io.Reader, out io.Writer) error {
	if mode == "tui" {
		return tui.Run(ctx, sess, format, out)
	}
	return sess.Run(ctx, in, text.NewRenderer(out, format))
}
