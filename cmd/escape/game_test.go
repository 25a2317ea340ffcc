package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/escape/internal/config"
	"github.com/cory-johannsen/escape/internal/frontend/text"
	"github.com/cory-johannsen/escape/internal/game/session"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestApplyFlags(t *testing.T) {
	cfg, err := applyFlags(defaultConfig(t), "castle.yaml", "Ada", "tui")
	require.NoError(t, err)
	assert.Equal(t, "castle.yaml", cfg.Game.WorldFile)
	assert.Equal(t, "Ada", cfg.Game.PlayerName)
	assert.Equal(t, "tui", cfg.Frontend.Mode)

	unchanged, err := applyFlags(defaultConfig(t), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(t), unchanged)

	_, err = applyFlags(defaultConfig(t), "", "", "gui")
	assert.Error(t, err)
}

func TestLoadWorld_Default(t *testing.T) {
	w, err := loadWorld(config.GameConfig{PlayerName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Dungeon Escape Adventure!", w.Title())
	assert.Equal(t, "Ada", w.Player().Name())
}

func TestLoadWorld_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
world:
  title: Tiny
  player: Tess
  start_room: hall
  win_room: garden
  rooms:
    - id: hall
      name: Hall
      description: A hall.
      exits:
        - direction: out
          target: garden
    - id: garden
      name: Garden
      description: Fresh air.
`), 0644))

	w, err := loadWorld(config.GameConfig{WorldFile: path})
	require.NoError(t, err)
	assert.Equal(t, "Tiny", w.Title())
	assert.Equal(t, "Tess", w.Player().Name())

	_, err = loadWorld(config.GameConfig{WorldFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestPlay_LineMode(t *testing.T) {
	sess, err := newSession(config.GameConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var out bytes.Buffer
	format := text.NewFormatter(&out, false, 78)
	in := strings.NewReader("take rusty key\nuse rusty key\ngo north\ntalk guard\nquit\n")

	require.NoError(t, play(context.Background(), "line", sess, format, in, &out))
	assert.Equal(t, session.StatusStopped, sess.Status())

	got := out.String()
	assert.True(t, strings.HasPrefix(got, strings.Repeat("=", 40)))
	assert.Contains(t, got, "You took the Rusty Key.")
	assert.Contains(t, got, "The Rusty Key fits perfectly. The door unlocks with a click.")
	assert.Contains(t, got, "--- You are in: Guard Room ---")
	assert.Contains(t, got, "You see a Guard here.")
	assert.Contains(t, got, "Zzzzz...")
	assert.True(t, strings.HasSuffix(got, "Thanks for playing!\n"))
}

// writeConfig writes a config that logs at info level to a file in a temp dir
// and returns the config path and the log path.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "escape.log")
	cfgPath := filepath.Join(dir, "escape.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
logging:
  level: info
  format: json
  file: `+logPath+`
frontend:
  color: false
`), 0644))
	return cfgPath, logPath
}

func TestRun_Quit(t *testing.T) {
	cfgPath, logPath := writeConfig(t)
	var out bytes.Buffer

	code := run([]string{"-config", cfgPath}, strings.NewReader("look\nquit\n"), &out)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasSuffix(out.String(), "Thanks for playing!\n"))

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "game over")
}

func TestRun_StartupFailureFlushesLog(t *testing.T) {
	cfgPath, logPath := writeConfig(t)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	code := run([]string{"-config", cfgPath, "-world", missing}, strings.NewReader(""), &bytes.Buffer{})
	assert.Equal(t, 1, code)

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "loading world")
}

func TestRun_BadFlag(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-nope"}, strings.NewReader(""), &bytes.Buffer{}))
}
