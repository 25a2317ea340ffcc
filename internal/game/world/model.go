// Package world provides the dungeon model: rooms, connections, items, and the
// characters that occupy them.
package world

import (
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// RoomID is the stable handle of a room. Connections and characters refer to
// rooms by RoomID and resolve them through the World.
type RoomID string

// Direction names an exit from a room (e.g. "north", "stairs").
type Direction string

// Matches reports whether name case-insensitively names this direction.
func (d Direction) Matches(name string) bool {
	return SameName(string(d), name)
}

// Fold returns the case-folded form of s used for every name comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// SameName reports whether a and b are equal under Unicode case folding.
func SameName(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Item is an object that can sit in a room or be carried by the player.
// Items are values; an Item is owned by exactly one container at a time.
// Items with the same name are told apart by ID.
type Item struct {
	// ID uniquely identifies this item instance for the World's lifetime.
	ID string
	// Name is the display name; its casing is canonical.
	Name string
	// Description is the flavor text.
	Description string
}

// NewItem creates an Item with a fresh unique ID.
//
// Precondition: name must be non-empty.
func NewItem(name, description string) Item {
	return Item{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
}

// Task is an objective attached to a room. Tasks are loaded with the world but
// nothing in play completes them.
type Task struct {
	Name             string
	Description      string
	RequiredItemName string
	Completed        bool
}

// Connection is a one-way passage from a room to a destination room.
// The reverse passage, if any, is a separate Connection.
type Connection struct {
	direction   Direction
	destination RoomID
	locked      bool
	keyName     string
}

// NewConnection creates a connection in direction dir leading to dest.
// A non-empty key makes the connection start locked; it can only be unlocked
// with an item of that name.
//
// Postcondition: Locked() is true iff key is non-empty.
func NewConnection(dir Direction, dest RoomID, key string) *Connection {
	return &Connection{
		direction:   dir,
		destination: dest,
		locked:      key != "",
		keyName:     key,
	}
}

// Direction returns the exit name.
func (c *Connection) Direction() Direction { return c.direction }

// Destination returns the room this connection leads to.
func (c *Connection) Destination() RoomID { return c.destination }

// Locked reports whether the connection currently blocks movement.
func (c *Connection) Locked() bool { return c.locked }

// KeyName returns the canonical name of the item that unlocks this connection,
// or "" if it was never locked.
func (c *Connection) KeyName() string { return c.keyName }

// unlock clears the lock if itemName matches the key.
//
// Postcondition: Returns true iff the connection was locked and is now unlocked.
// A connection never becomes locked again.
func (c *Connection) unlock(itemName string) bool {
	if !c.locked || !SameName(c.keyName, itemName) {
		return false
	}
	c.locked = false
	return true
}

// Room is a location in the dungeon.
type Room struct {
	// ID is the room's stable handle.
	ID RoomID
	// Name is the short display name.
	Name string
	// Description is shown when the player looks around.
	Description string

	items       []Item
	connections []*Connection
	tasks       []Task
}

// NewRoom creates an empty room.
func NewRoom(id RoomID, name, description string) *Room {
	return &Room{ID: id, Name: name, Description: description}
}

// AddItem places an item in the room. Only world setup adds items.
func (r *Room) AddItem(item Item) { r.items = append(r.items, item) }

// AddConnection appends an exit. Exits are kept in insertion order.
func (r *Room) AddConnection(c *Connection) { r.connections = append(r.connections, c) }

// AddTask attaches a task to the room.
func (r *Room) AddTask(t Task) { r.tasks = append(r.tasks, t) }

// Items returns a snapshot of the items in the room, in stored order.
func (r *Room) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Connections returns the room's exits in stored order.
// The slice is a copy; the connections themselves are shared.
func (r *Room) Connections() []*Connection {
	out := make([]*Connection, len(r.connections))
	copy(out, r.connections)
	return out
}

// Tasks returns a snapshot of the room's tasks.
func (r *Room) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// ConnectionFor returns the first exit whose direction matches dir.
//
// Postcondition: Returns (conn, true) if found, or (nil, false) otherwise.
func (r *Room) ConnectionFor(dir string) (*Connection, bool) {
	for _, c := range r.connections {
		if c.direction.Matches(dir) {
			return c, true
		}
	}
	return nil, false
}

// takeItem removes and returns the first item whose name matches.
//
// Postcondition: on failure the room is unchanged.
func (r *Room) takeItem(name string) (Item, bool) {
	for i, item := range r.items {
		if SameName(item.Name, name) {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return item, true
		}
	}
	return Item{}, false
}

// Character is anything that occupies a room.
type Character interface {
	Name() string
	RoomID() RoomID
}

type located struct {
	name string
	room RoomID
}

// Name returns the character's display name.
func (l *located) Name() string { return l.name }

// RoomID returns the room the character is in.
func (l *located) RoomID() RoomID { return l.room }

// Player is the character controlled by the user.
type Player struct {
	located
	inventory []Item
}

// NewPlayer creates a player standing in room with an empty inventory.
func NewPlayer(name string, room RoomID) *Player {
	return &Player{located: located{name: name, room: room}}
}

// Inventory returns a snapshot of the carried items in pickup order.
func (p *Player) Inventory() []Item {
	out := make([]Item, len(p.inventory))
	copy(out, p.inventory)
	return out
}

// FindItem returns the first carried item whose name matches.
func (p *Player) FindItem(name string) (Item, bool) {
	for _, item := range p.inventory {
		if SameName(item.Name, name) {
			return item, true
		}
	}
	return Item{}, false
}

// ItemByID returns the carried item with the given ID.
func (p *Player) ItemByID(id string) (Item, bool) {
	for _, item := range p.inventory {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// HasItem reports whether the player carries an item with the given name.
func (p *Player) HasItem(name string) bool {
	_, ok := p.FindItem(name)
	return ok
}

// NonPlayerCharacter is a friendly character with a single line of dialogue.
type NonPlayerCharacter struct {
	located
	dialogue string
}

// NewNonPlayerCharacter creates an NPC stationed in room.
func NewNonPlayerCharacter(name string, room RoomID, dialogue string) *NonPlayerCharacter {
	return &NonPlayerCharacter{located: located{name: name, room: room}, dialogue: dialogue}
}

// Dialogue returns what the NPC says when talked to.
func (n *NonPlayerCharacter) Dialogue() string { return n.dialogue }

// Enemy is a hostile character that can only be defeated by a player carrying
// the required item.
type Enemy struct {
	located
	requiredItem string
}

// NewEnemy creates an enemy stationed in room.
func NewEnemy(name string, room RoomID, requiredItem string) *Enemy {
	return &Enemy{located: located{name: name, room: room}, requiredItem: requiredItem}
}

// RequiredItemName returns the name of the item that defeats this enemy.
func (e *Enemy) RequiredItemName() string { return e.requiredItem }

// DefeatedBy reports whether p carries the item that defeats this enemy.
func (e *Enemy) DefeatedBy(p *Player) bool {
	return p.HasItem(e.requiredItem)
}
