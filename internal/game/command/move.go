package command

import (
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/world"
)

// HandleGo processes the "go" command.
//
// Postcondition: The player moves only when the exit exists and is unlocked.
// A bare "go" with no matching exit produces no events.
func HandleGo(w *world.World, dir string) []event.Event {
	res, conn := w.MovePlayer(dir)
	switch res {
	case world.MoveOK:
		return []event.Event{event.Moved{Direction: string(conn.Direction()), Room: w.CurrentRoom().Name}}
	case world.MoveBlocked:
		return []event.Event{event.DoorLocked{Direction: string(conn.Direction())}}
	default:
		if dir == "" {
			return nil
		}
		return []event.Event{event.NoSuchExit{Direction: dir}}
	}
}
