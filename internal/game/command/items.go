package command

import (
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/world"
)

// HandleTake processes the "take" command and returns the item taken, or the
// zero Item when nothing matched.
//
// Postcondition: On success the item has moved from the room to the inventory;
// otherwise nothing changes.
func HandleTake(w *world.World, name string) ([]event.Event, world.Item) {
	item, err := w.TakeItemToPlayer(name)
	if err != nil {
		return []event.Event{event.NotFoundHere{Name: name}}, world.Item{}
	}
	return []event.Event{event.Taken{Item: item.Name}}, item
}

// HandleUse processes the "use" command: the carried item is tried against
// each exit of the current room in order until one unlocks. The item is
// returned whenever the player carries it, whether or not it unlocked anything.
//
// Postcondition: At most one connection is unlocked.
func HandleUse(w *world.World, name string) ([]event.Event, world.Item) {
	item, ok := w.Player().FindItem(name)
	if !ok {
		return []event.Event{event.DontHaveItem{Name: name}}, world.Item{}
	}
	for _, conn := range w.CurrentRoom().Connections() {
		if w.Unlock(conn, item) {
			return []event.Event{event.Unlocked{Key: item.Name, Direction: string(conn.Direction())}}, item
		}
	}
	return []event.Event{event.CannotUseHere{Name: name}}, item
}
