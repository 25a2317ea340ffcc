// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output when set. Empty logs to standard error.
	File string `mapstructure:"file"`
}

// GameConfig selects the world to play.
type GameConfig struct {
	// WorldFile is a YAML world definition. Empty selects the built-in dungeon.
	WorldFile string `mapstructure:"world_file"`
	// PlayerName overrides the player name declared by the world.
	PlayerName string `mapstructure:"player_name"`
}

// FrontendConfig holds presentation settings.
type FrontendConfig struct {
	// Mode is "line" for a plain prompt loop or "tui" for the full-screen interface.
	Mode string `mapstructure:"mode"`
	// Color enables ANSI styling.
	Color bool `mapstructure:"color"`
	// WrapWidth is the column at which prose is wrapped.
	WrapWidth int `mapstructure:"wrap_width"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Frontend FrontendConfig `mapstructure:"frontend"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFrontend(c.Frontend); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateFrontend(f FrontendConfig) error {
	var errs []string
	validModes := map[string]bool{"line": true, "tui": true}
	if !validModes[f.Mode] {
		errs = append(errs, fmt.Sprintf("frontend.mode must be one of [line, tui], got %q", f.Mode))
	}
	if f.WrapWidth < MinWrapWidth {
		errs = append(errs, fmt.Sprintf("frontend.wrap_width must be >= %d, got %d", MinWrapWidth, f.WrapWidth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// MinWrapWidth is the narrowest accepted wrap column.
const MinWrapWidth = 20

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ESCAPE_ prefix
	v.SetEnvPrefix("ESCAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("game.world_file", "")
	v.SetDefault("game.player_name", "")

	v.SetDefault("frontend.mode", "line")
	v.SetDefault("frontend.color", true)
	v.SetDefault("frontend.wrap_width", 78)
}
