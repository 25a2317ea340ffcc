// Package event defines the observable outcomes of a game turn. Events carry
// plain data; presentation layers decide how to show them.
package event

// Event is one observable outcome. The set of implementations is closed.
type Event interface {
	isEvent()
}

// CommandInfo describes a command for help and welcome screens.
type CommandInfo struct {
	Name  string
	Usage string
	Help  string
}

// RoomDescription is the result of looking around.
type RoomDescription struct {
	Name        string
	Description string
	NPCs        []string
	Enemies     []string
	Items       []string
	Exits       []string
}

// InventoryListing lists the carried items in pickup order.
type InventoryListing struct {
	Items []string
}

// HelpText lists the available commands.
type HelpText struct {
	Commands []CommandInfo
}

// Moved reports that the player walked through an exit.
type Moved struct {
	Direction string
	Room      string
}

// DoorLocked reports that the exit exists but is locked.
type DoorLocked struct {
	Direction string
}

// NoSuchExit reports that the current room has no exit in that direction.
type NoSuchExit struct {
	Direction string
}

// Taken reports that an item moved from the room into the inventory.
type Taken struct {
	Item string
}

// NotFoundHere reports that the named item is not in the room.
type NotFoundHere struct {
	Name string
}

// Unlocked reports that a carried item unlocked an exit.
type Unlocked struct {
	Key       string
	Direction string
}

// CannotUseHere reports that a carried item unlocks nothing in the room.
type CannotUseHere struct {
	Name string
}

// DontHaveItem reports that the named item is not carried.
type DontHaveItem struct {
	Name string
}

// Dialogue is a line spoken by a character.
type Dialogue struct {
	Speaker string
	Line    string
}

// NoOneNamed reports that nobody by that name is here to talk to.
type NoOneNamed struct {
	Name string
}

// Defeated reports that the player beat an enemy.
type Defeated struct {
	Enemy string
}

// Slain reports that the player attacked without the means to win.
type Slain struct {
	Enemy string
}

// NoSuchEnemy reports that there is no enemy by that name here.
type NoSuchEnemy struct {
	Name string
}

// UnknownCommand reports an unrecognized verb.
type UnknownCommand struct {
	Command string
}

// Welcome opens a session.
type Welcome struct {
	Title    string
	Intro    string
	Commands []CommandInfo
}

// Victory is shown when the player reaches the win room.
type Victory struct{}

// GameOver is shown after a loss.
type GameOver struct{}

// Farewell closes every session.
type Farewell struct{}

func (RoomDescription) isEvent()  {}
func (InventoryListing) isEvent() {}
func (HelpText) isEvent()         {}
func (Moved) isEvent()            {}
func (DoorLocked) isEvent()       {}
func (NoSuchExit) isEvent()       {}
func (Taken) isEvent()            {}
func (NotFoundHere) isEvent()     {}
func (Unlocked) isEvent()         {}
func (CannotUseHere) isEvent()    {}
func (DontHaveItem) isEvent()     {}
func (Dialogue) isEvent()         {}
func (NoOneNamed) isEvent()       {}
func (Defeated) isEvent()         {}
func (Slain) isEvent()            {}
func (NoSuchEnemy) isEvent()      {}
func (UnknownCommand) isEvent()   {}
func (Welcome) isEvent()          {}
func (Victory) isEvent()          {}
func (GameOver) isEvent()         {}
func (Farewell) isEvent()         {}
