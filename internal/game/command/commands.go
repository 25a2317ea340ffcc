// Package command provides the command registry, parser, and the interpreter
// that applies player commands to the world.
package command

import "github.com/cory-johannsen/escape/internal/game/event"

// Handler identifiers mapping commands to interpreter handlers.
const (
	HandlerMove      = "move"
	HandlerLook      = "look"
	HandlerTake      = "take"
	HandlerUse       = "use"
	HandlerAttack    = "attack"
	HandlerInventory = "inventory"
	HandlerTalk      = "talk"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Usage shows the command with its argument placeholder.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Handler selects the interpreter handler.
	Handler string
}

// Info returns the display form of the command.
func (c *Command) Info() event.CommandInfo {
	return event.CommandInfo{Name: c.Name, Usage: c.Usage, Help: c.Help}
}

// BuiltinCommands returns all built-in commands in help order. Any other verb
// is an unknown command.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "go", Usage: "go [direction]", Help: "(e.g., 'go north')", Handler: HandlerMove},
		{Name: "look", Usage: "look", Help: "(Describes the current room)", Handler: HandlerLook},
		{Name: "take", Usage: "take [item name]", Help: "(e.g., 'take Rusty Key')", Handler: HandlerTake},
		{Name: "use", Usage: "use [item name]", Help: "(Attempts to use an item on a locked door)", Handler: HandlerUse},
		{Name: "attack", Usage: "attack [enemy]", Help: "(e.g., 'attack Skeleton')", Handler: HandlerAttack},
		{Name: "inventory", Usage: "inventory", Help: "(Shows your items)", Handler: HandlerInventory},
		{Name: "talk", Usage: "talk [person]", Help: "(e.g., 'talk Guard')", Handler: HandlerTalk},
		{Name: "help", Usage: "help", Help: "(Shows this menu)", Handler: HandlerHelp},
		{Name: "quit", Usage: "quit", Help: "(Exits the game)", Handler: HandlerQuit},
	}
}
