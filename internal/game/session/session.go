// Package session drives a single game from the welcome banner to the
// farewell.
package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/escape/internal/game/command"
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/world"
)

// Status is the lifecycle state of a session.
type Status int

// Session statuses. Every status except StatusPlaying is terminal.
const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
	StatusStopped
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether no further commands are accepted in status s.
func (s Status) Terminal() bool { return s != StatusPlaying }

// MaxLineBytes bounds one line of input. Longer lines are discarded and
// answered as an unknown command.
const MaxLineBytes = 64 * 1024

// Renderer presents events to the player.
type Renderer interface {
	// Render presents events in order.
	Render(events ...event.Event) error
	// Prompt signals that the session is waiting for a line of input.
	Prompt() error
}

// Session owns one World and applies player input to it turn by turn.
type Session struct {
	world  *world.World
	interp *command.Interpreter
	logger *zap.Logger
	status Status
	turns  int
}

// New creates a Session in StatusPlaying.
//
// Precondition: w, interp, and logger must be non-nil.
func New(w *world.World, interp *command.Interpreter, logger *zap.Logger) *Session {
	return &Session{
		world:  w,
		interp: interp,
		logger: logger,
		status: StatusPlaying,
	}
}

// World returns the world the session plays in.
func (s *Session) World() *world.World { return s.world }

// Status returns the current status.
func (s *Session) Status() Status { return s.status }

// Turns returns the number of lines applied so far.
func (s *Session) Turns() int { return s.turns }

// Welcome returns the opening banner.
func (s *Session) Welcome() event.Welcome {
	return event.Welcome{
		Title:    s.world.Title(),
		Intro:    s.world.Intro(),
		Commands: s.interp.CommandInfos(),
	}
}

// Room describes the player's current room.
func (s *Session) Room() event.RoomDescription {
	return command.DescribeRoom(s.world)
}

// Step applies one line of input and returns the events to present,
// followed by the closing banners if the line ended the session. A line
// longer than MaxLineBytes is answered as an unknown command.
//
// Postcondition: Once Status is terminal, Step returns nil and leaves the
// world untouched.
func (s *Session) Step(line string) []event.Event {
	if len(line) > MaxLineBytes {
		return s.reject()
	}
	if s.status.Terminal() {
		return nil
	}
	s.turns++
	res := s.interp.Interpret(s.world, line)
	events := res.Events

	switch res.Transition {
	case command.TransitionStop:
		s.setStatus(StatusStopped)
	case command.TransitionLose:
		s.setStatus(StatusLost)
	}
	if s.status == StatusPlaying && s.world.PlayerWon() {
		s.setStatus(StatusWon)
	}

	fields := []zap.Field{
		zap.Int("turn", s.turns),
		zap.String("command", res.Parsed.Command),
		zap.String("argument", res.Parsed.Argument),
		zap.String("room", string(s.world.CurrentRoom().ID)),
		zap.Stringer("status", s.status),
	}
	if res.Item.ID != "" {
		fields = append(fields, zap.String("item_id", res.Item.ID), zap.String("item", res.Item.Name))
	}
	s.logger.Debug("turn", fields...)

	if s.status.Terminal() {
		events = append(events, s.closing()...)
	}
	return events
}

// Stop ends a session that is still playing, as if the player had quit.
// It returns the farewell, or nil when the session had already ended.
func (s *Session) Stop() []event.Event {
	if s.status.Terminal() {
		return nil
	}
	s.setStatus(StatusStopped)
	return s.closing()
}

func (s *Session) closing() []event.Event {
	switch s.status {
	case StatusWon:
		return []event.Event{event.Victory{}, event.Farewell{}}
	case StatusLost:
		return []event.Event{event.GameOver{}, event.Farewell{}}
	default:
		return []event.Event{event.Farewell{}}
	}
}

func (s *Session) setStatus(next Status) {
	if next == s.status {
		return
	}
	s.logger.Info("session status changed",
		zap.Stringer("from", s.status),
		zap.Stringer("to", next),
		zap.Int("turn", s.turns),
	)
	s.status = next
}

// reject counts a turn for a line too long to be read as a command.
func (s *Session) reject() []event.Event {
	if s.status.Terminal() {
		return nil
	}
	s.turns++
	s.logger.Warn("input line too long",
		zap.Int("turn", s.turns),
		zap.Int("limit", MaxLineBytes),
	)
	return []event.Event{event.UnknownCommand{}}
}

type inputLine struct {
	text     string
	overlong bool
}

// readLine reads up to the next newline or end of input. A final line with
// no newline is still returned; io.EOF is returned only when nothing is left.
func readLine(r *bufio.Reader) (inputLine, error) {
	var buf []byte
	overlong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !overlong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > MaxLineBytes {
				overlong = true
				buf = nil
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 && !overlong {
				return inputLine{}, io.EOF
			}
		case err != nil:
			return inputLine{}, err
		}
		text := strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r")
		return inputLine{text: text, overlong: overlong}, nil
	}
}

// Run plays the session to completion, reading one command per line from in.
// End of input and cancellation of ctx both stop the session.
//
// Postcondition: Status is terminal when Run returns nil.
func (s *Session) Run(ctx context.Context, in io.Reader, out Renderer) error {
	lines := make(chan inputLine)
	done := make(chan struct{})
	defer close(done)

	var readErr error
	go func() {
		defer close(lines)
		r := bufio.NewReader(in)
		for {
			line, err := readLine(r)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr = err
				}
				return
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()

	if err := out.Render(s.Welcome()); err != nil {
		return fmt.Errorf("rendering welcome: %w", err)
	}

	for !s.status.Terminal() {
		if err := out.Render(s.Room()); err != nil {
			return fmt.Errorf("rendering room: %w", err)
		}
		if err := out.Prompt(); err != nil {
			return fmt.Errorf("rendering prompt: %w", err)
		}

		var events []event.Event
		select {
		case <-ctx.Done():
			s.logger.Info("session cancelled", zap.Error(ctx.Err()))
			events = s.Stop()
		case line, ok := <-lines:
			switch {
			case !ok:
				if readErr != nil {
					s.logger.Warn("reading input", zap.Error(readErr))
				}
				events = s.Stop()
			case line.overlong:
				events = s.reject()
			default:
				events = s.Step(line.text)
			}
		}
		if err := out.Render(events...); err != nil {
			return fmt.Errorf("rendering events: %w", err)
		}
	}
	return nil
}
