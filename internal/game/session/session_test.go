package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/escape/content"
	"github.com/cory-johannsen/escape/internal/game/command"
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/world"
)

var winningPath = []string{
	"take rusty key", "use rusty key", "go north",
	"go east", "go south",
	"take ornate key", "use ornate key", "go east",
	"take master key", "use master key", "go east",
}

type recorder struct {
	events  []event.Event
	prompts int
	failOn  int
}

func (r *recorder) Render(events ...event.Event) error {
	r.events = append(r.events, events...)
	if r.failOn > 0 && len(r.events) >= r.failOn {
		return errors.New("render failed")
	}
	return nil
}

func (r *recorder) Prompt() error {
	r.prompts++
	return nil
}

// last returns the trailing n recorded events.
func (r *recorder) last(n int) []event.Event {
	if n > len(r.events) {
		n = len(r.events)
	}
	return r.events[len(r.events)-n:]
}

func newSession(t *testing.T) *Session {
	t.Helper()
	w, err := world.Load(content.Dungeon)
	require.NoError(t, err)
	return New(w, command.NewInterpreter(command.DefaultRegistry()), zaptest.NewLogger(t))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "playing", StatusPlaying.String())
	assert.Equal(t, "won", StatusWon.String())
	assert.Equal(t, "lost", StatusLost.String())
	assert.Equal(t, "stopped", StatusStopped.String())
	assert.Equal(t, "status(9)", Status(9).String())
	assert.False(t, StatusPlaying.Terminal())
	assert.True(t, StatusStopped.Terminal())
}

func TestNew_StartsPlaying(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, StatusPlaying, s.Status())
	assert.Zero(t, s.Turns())
	assert.Equal(t, "Prison Cell", s.Room().Name)
}

func TestWelcome(t *testing.T) {
	s := newSession(t)
	w := s.Welcome()
	assert.Equal(t, "Dungeon Escape Adventure!", w.Title)
	assert.NotEmpty(t, w.Intro)
	require.Len(t, w.Commands, 9)
	assert.Equal(t, "go", w.Commands[0].Name)
}

func TestStep_Quit(t *testing.T) {
	s := newSession(t)
	events := s.Step("quit")
	assert.Equal(t, []event.Event{event.Farewell{}}, events)
	assert.Equal(t, StatusStopped, s.Status())
	assert.Equal(t, 1, s.Turns())
}

func TestStep_Win(t *testing.T) {
	s := newSession(t)
	var events []event.Event
	for _, line := range winningPath {
		require.Equal(t, StatusPlaying, s.Status(), "ended early before %q", line)
		events = s.Step(line)
	}
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, []event.Event{
		event.Moved{Direction: "east", Room: "Courtyard"},
		event.Victory{},
		event.Farewell{},
	}, events)
	assert.Equal(t, len(winningPath), s.Turns())
}

func TestStep_Lose(t *testing.T) {
	s := newSession(t)
	for _, line := range []string{"take rusty key", "use rusty key", "go north", "go east", "go south"} {
		s.Step(line)
	}
	events := s.Step("attack skeleton")
	assert.Equal(t, []event.Event{event.Slain{Enemy: "Skeleton"}, event.GameOver{}, event.Farewell{}}, events)
	assert.Equal(t, StatusLost, s.Status())
}

func TestStep_IgnoredAfterEnd(t *testing.T) {
	s := newSession(t)
	s.Step("quit")
	room := s.World().Player().RoomID()

	assert.Nil(t, s.Step("take rusty key"))
	assert.Nil(t, s.Step("go north"))
	assert.Equal(t, room, s.World().Player().RoomID())
	assert.Empty(t, s.World().Player().Inventory())
	assert.Equal(t, 1, s.Turns())
	assert.Nil(t, s.Stop())
}

func TestStep_OverlongLine(t *testing.T) {
	s := newSession(t)

	events := s.Step("take rusty key " + strings.Repeat(" ", MaxLineBytes))
	assert.Equal(t, []event.Event{event.UnknownCommand{}}, events)
	assert.Equal(t, 1, s.Turns())
	assert.Empty(t, s.World().Player().Inventory())
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestStop(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, []event.Event{event.Farewell{}}, s.Stop())
	assert.Equal(t, StatusStopped, s.Status())
}

func TestStep_LogsTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w, err := world.Load(content.Dungeon)
	require.NoError(t, err)
	s := New(w, command.NewInterpreter(command.DefaultRegistry()), zap.New(core))

	s.Step("look")
	s.Step("quit")

	turns := logs.FilterMessage("turn").All()
	require.Len(t, turns, 2)
	assert.Equal(t, "look", turns[0].ContextMap()["command"])

	changes := logs.FilterMessage("session status changed").All()
	require.Len(t, changes, 1)
	assert.Equal(t, "playing", changes[0].ContextMap()["from"])
	assert.Equal(t, "stopped", changes[0].ContextMap()["to"])
}

func TestStep_LogsItemID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w, err := world.Load(content.Dungeon)
	require.NoError(t, err)
	s := New(w, command.NewInterpreter(command.DefaultRegistry()), zap.New(core))

	s.Step("look")
	s.Step("take rusty key")

	turns := logs.FilterMessage("turn").All()
	require.Len(t, turns, 2)
	assert.NotContains(t, turns[0].ContextMap(), "item_id")

	key := s.World().Player().Inventory()[0]
	assert.Equal(t, key.ID, turns[1].ContextMap()["item_id"])
	assert.Equal(t, "Rusty Key", turns[1].ContextMap()["item"])
}

func TestRun_Win(t *testing.T) {
	s := newSession(t)
	r := &recorder{}
	in := strings.NewReader(strings.Join(winningPath, "\n") + "\nlook\n")

	require.NoError(t, s.Run(context.Background(), in, r))
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, s.Welcome(), r.events[0])
	assert.Equal(t, []event.Event{event.Victory{}, event.Farewell{}}, r.last(2))
	assert.Equal(t, len(winningPath), r.prompts)
}

func TestRun_EndOfInputStops(t *testing.T) {
	s := newSession(t)
	r := &recorder{}

	require.NoError(t, s.Run(context.Background(), strings.NewReader("take rusty key\n"), r))
	assert.Equal(t, StatusStopped, s.Status())
	assert.Equal(t, []event.Event{event.Farewell{}}, r.last(1))
	assert.Equal(t, 2, r.prompts)
	assert.True(t, s.World().Player().HasItem("Rusty Key"))
}

func TestRun_OverlongLineIsRejected(t *testing.T) {
	s := newSession(t)
	r := &recorder{}
	in := strings.NewReader("look " + strings.Repeat("a", 70*1024) + "\ntake rusty key\n")

	require.NoError(t, s.Run(context.Background(), in, r))
	assert.Equal(t, StatusStopped, s.Status())
	assert.Equal(t, 2, s.Turns())
	assert.Contains(t, r.events, event.Event(event.UnknownCommand{}))
	assert.Contains(t, r.events, event.Event(event.Taken{Item: "Rusty Key"}))
	assert.True(t, s.World().Player().HasItem("Rusty Key"))
}

func TestRun_LongLineWithinLimit(t *testing.T) {
	s := newSession(t)
	r := &recorder{}
	in := strings.NewReader("take " + strings.Repeat("x", MaxLineBytes-5) + "\n")

	require.NoError(t, s.Run(context.Background(), in, r))
	assert.Equal(t, 1, s.Turns())
	assert.NotContains(t, r.events, event.Event(event.UnknownCommand{}))
}

func TestRun_FinalLineWithoutNewline(t *testing.T) {
	s := newSession(t)
	r := &recorder{}

	require.NoError(t, s.Run(context.Background(), strings.NewReader("look\r\ntake rusty key"), r))
	assert.Equal(t, 2, s.Turns())
	assert.True(t, s.World().Player().HasItem("Rusty Key"))
	assert.Equal(t, StatusStopped, s.Status())
}

func TestRun_ContextCancelStops(t *testing.T) {
	s := newSession(t)
	r := &recorder{}
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx, pr, r))
	assert.Equal(t, StatusStopped, s.Status())
	assert.Equal(t, []event.Event{event.Farewell{}}, r.last(1))
}

func TestRun_RenderError(t *testing.T) {
	s := newSession(t)
	r := &recorder{failOn: 1}

	err := s.Run(context.Background(), strings.NewReader("look\n"), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering welcome")
}

func TestPropertyTerminalIsAbsorbing(t *testing.T) {
	verbs := []string{"go north", "go east", "go south", "go west", "take rusty key", "take rusty sword",
		"use rusty key", "attack skeleton", "talk guard", "look", "inventory", "help", "quit", "xyzzy"}
	rapid.Check(t, func(t *rapid.T) {
		w, err := world.Load(content.Dungeon)
		if err != nil {
			t.Fatalf("loading dungeon: %v", err)
		}
		s := New(w, command.NewInterpreter(command.DefaultRegistry()), zap.NewNop())
		lines := rapid.SliceOfN(rapid.SampledFrom(verbs), 0, 40).Draw(t, "lines")

		var ended Status
		for _, line := range lines {
			before := s.Status()
			events := s.Step(line)
			if before.Terminal() {
				if events != nil {
					t.Fatalf("events after session ended: %v", events)
				}
				if s.Status() != ended {
					t.Fatalf("status changed after end: %s -> %s", ended, s.Status())
				}
				continue
			}
			if s.Status().Terminal() {
				ended = s.Status()
				if _, ok := events[len(events)-1].(event.Farewell); !ok {
					t.Fatalf("ending without farewell: %v", events)
				}
			}
		}
	})
}
