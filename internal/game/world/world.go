package world

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by World lookups.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrItemNotFound = errors.New("item not found")
)

// MoveResult is the outcome of a movement attempt.
type MoveResult int

// Movement outcomes.
const (
	MoveOK MoveResult = iota
	MoveBlocked
	MoveNoSuchExit
)

// String returns a short name for the outcome.
func (m MoveResult) String() string {
	switch m {
	case MoveOK:
		return "ok"
	case MoveBlocked:
		return "locked"
	case MoveNoSuchExit:
		return "no_such_exit"
	default:
		return fmt.Sprintf("MoveResult(%d)", int(m))
	}
}

// Setup describes the initial state a World is built from.
type Setup struct {
	// Title is the name of the adventure.
	Title string
	// Intro is the opening line shown under the title.
	Intro string
	// Rooms lists every room; the order is preserved.
	Rooms []*Room
	// NPCs lists friendly characters.
	NPCs []*NonPlayerCharacter
	// Enemies lists hostile characters.
	Enemies []*Enemy
	// PlayerName is the player's display name.
	PlayerName string
	// StartRoom is where the player begins.
	StartRoom RoomID
	// WinRoom is the room whose reaching ends the game in victory.
	WinRoom RoomID
}

// World owns all rooms, characters, and the player. It is mutated only by the
// single goroutine driving the game and is not safe for concurrent use.
type World struct {
	title   string
	intro   string
	rooms   []*Room
	index   map[RoomID]*Room
	npcs    []*NonPlayerCharacter
	enemies []*Enemy
	player  *Player
	start   RoomID
	win     RoomID
}

// New builds a World from s.
//
// Precondition: s.Rooms must be non-empty.
// Postcondition: Returns a World whose player stands in s.StartRoom, or an error
// describing every invalid reference found.
func New(s Setup) (*World, error) {
	if len(s.Rooms) == 0 {
		return nil, errors.New("world must contain at least one room")
	}

	w := &World{
		title:   s.Title,
		intro:   s.Intro,
		rooms:   s.Rooms,
		index:   make(map[RoomID]*Room, len(s.Rooms)),
		npcs:    s.NPCs,
		enemies: s.Enemies,
		start:   s.StartRoom,
		win:     s.WinRoom,
	}

	var errs []string
	for _, r := range s.Rooms {
		if _, exists := w.index[r.ID]; exists {
			errs = append(errs, fmt.Sprintf("duplicate room ID %q", r.ID))
			continue
		}
		w.index[r.ID] = r
	}
	for _, r := range s.Rooms {
		for _, c := range r.connections {
			if _, ok := w.index[c.destination]; !ok {
				errs = append(errs, fmt.Sprintf("room %q: exit %q targets unknown room %q", r.ID, c.direction, c.destination))
			}
		}
	}
	if _, ok := w.index[s.StartRoom]; !ok {
		errs = append(errs, fmt.Sprintf("start room %q not found", s.StartRoom))
	}
	if _, ok := w.index[s.WinRoom]; !ok {
		errs = append(errs, fmt.Sprintf("win room %q not found", s.WinRoom))
	}
	for _, n := range s.NPCs {
		if _, ok := w.index[n.room]; !ok {
			errs = append(errs, fmt.Sprintf("npc %q placed in unknown room %q", n.name, n.room))
		}
	}
	for _, e := range s.Enemies {
		if _, ok := w.index[e.room]; !ok {
			errs = append(errs, fmt.Sprintf("enemy %q placed in unknown room %q", e.name, e.room))
		}
	}
	if s.PlayerName == "" {
		errs = append(errs, "player name must not be empty")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid world: %s", strings.Join(errs, "; "))
	}

	w.player = NewPlayer(s.PlayerName, s.StartRoom)
	return w, nil
}

// Title returns the adventure's name.
func (w *World) Title() string { return w.title }

// Intro returns the opening line of the adventure.
func (w *World) Intro() string { return w.intro }

// Rooms returns every room in setup order.
func (w *World) Rooms() []*Room {
	out := make([]*Room, len(w.rooms))
	copy(out, w.rooms)
	return out
}

// FindRoom resolves a room handle.
//
// Postcondition: Returns the room, or ErrRoomNotFound.
func (w *World) FindRoom(id RoomID) (*Room, error) {
	r, ok := w.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, id)
	}
	return r, nil
}

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// CurrentRoom returns the room the player is standing in.
func (w *World) CurrentRoom() *Room { return w.index[w.player.room] }

// StartRoom returns the room the player began in.
func (w *World) StartRoom() RoomID { return w.start }

// WinRoom returns the room that ends the game in victory.
func (w *World) WinRoom() RoomID { return w.win }

// PlayerWon reports whether the player has reached the win room.
func (w *World) PlayerWon() bool { return w.player.room == w.win }

// TakeItem removes the first item in room id whose name matches name.
//
// Postcondition: Returns the removed item, or ErrItemNotFound / ErrRoomNotFound
// with the room unchanged.
func (w *World) TakeItem(id RoomID, name string) (Item, error) {
	r, err := w.FindRoom(id)
	if err != nil {
		return Item{}, err
	}
	item, ok := r.takeItem(name)
	if !ok {
		return Item{}, fmt.Errorf("%w: %q in %q", ErrItemNotFound, name, id)
	}
	return item, nil
}

// TakeItemToPlayer moves the named item from the player's room into the
// player's inventory.
//
// Postcondition: On success the item is in the inventory and no longer in the
// room. On failure neither container changes.
func (w *World) TakeItemToPlayer(name string) (Item, error) {
	item, err := w.TakeItem(w.player.room, name)
	if err != nil {
		return Item{}, err
	}
	w.player.inventory = append(w.player.inventory, item)
	return item, nil
}

// MovePlayer moves the player through the exit matching dir.
//
// Postcondition: The player's room changes only when MoveOK is returned. The
// matched connection is returned for MoveOK and MoveBlocked, nil otherwise.
func (w *World) MovePlayer(dir string) (MoveResult, *Connection) {
	conn, ok := w.CurrentRoom().ConnectionFor(dir)
	if !ok {
		return MoveNoSuchExit, nil
	}
	if conn.locked {
		return MoveBlocked, conn
	}
	w.player.room = conn.destination
	return MoveOK, conn
}

// Unlock attempts to unlock conn with key, which the player must be carrying.
//
// Precondition: key must come from the player's inventory.
// Postcondition: Returns true iff the player holds key by ID, conn was locked,
// and key's name matches the lock; the connection then stays unlocked for the
// World's lifetime.
func (w *World) Unlock(conn *Connection, key Item) bool {
	if _, held := w.player.ItemByID(key.ID); !held {
		return false
	}
	return conn.unlock(key.Name)
}

// RemoveEnemy permanently removes e from the world.
//
// Postcondition: Returns true if e was present.
func (w *World) RemoveEnemy(e *Enemy) bool {
	for i, candidate := range w.enemies {
		if candidate == e {
			w.enemies = append(w.enemies[:i:i], w.enemies[i+1:]...)
			return true
		}
	}
	return false
}

// NPCs returns every friendly character.
func (w *World) NPCs() []*NonPlayerCharacter {
	out := make([]*NonPlayerCharacter, len(w.npcs))
	copy(out, w.npcs)
	return out
}

// Enemies returns every enemy still alive.
func (w *World) Enemies() []*Enemy {
	out := make([]*Enemy, len(w.enemies))
	copy(out, w.enemies)
	return out
}

// NPCsIn returns the friendly characters in room id, in stored order.
func (w *World) NPCsIn(id RoomID) []*NonPlayerCharacter {
	var out []*NonPlayerCharacter
	for _, n := range w.npcs {
		if n.room == id {
			out = append(out, n)
		}
	}
	return out
}

// EnemiesIn returns the enemies in room id, in stored order.
func (w *World) EnemiesIn(id RoomID) []*Enemy {
	var out []*Enemy
	for _, e := range w.enemies {
		if e.room == id {
			out = append(out, e)
		}
	}
	return out
}

// NPCHere returns the first NPC in the player's room whose name matches.
// Name collisions resolve to the first in stored order.
func (w *World) NPCHere(name string) (*NonPlayerCharacter, bool) {
	for _, n := range w.NPCsIn(w.player.room) {
		if SameName(n.name, name) {
			return n, true
		}
	}
	return nil, false
}

// EnemyHere returns the first enemy in the player's room whose name matches.
// Name collisions resolve to the first in stored order.
func (w *World) EnemyHere(name string) (*Enemy, bool) {
	for _, e := range w.EnemiesIn(w.player.room) {
		if SameName(e.name, name) {
			return e, true
		}
	}
	return nil, false
}

// Items returns every item in the world: room contents in room order, then the
// player's inventory.
func (w *World) Items() []Item {
	var out []Item
	for _, r := range w.rooms {
		out = append(out, r.items...)
	}
	return append(out, w.player.inventory...)
}
