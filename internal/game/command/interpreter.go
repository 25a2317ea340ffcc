package command

import (
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/world"
)

// Transition is a change of session status requested by a command.
type Transition int

// Transitions requested by commands.
const (
	// TransitionNone keeps the session playing.
	TransitionNone Transition = iota
	// TransitionStop ends the session at the player's request.
	TransitionStop
	// TransitionLose ends the session in defeat.
	TransitionLose
)

// Result is the outcome of interpreting one line.
type Result struct {
	// Parsed is the parsed input line.
	Parsed ParseResult
	// Events are the observable outcomes, in order.
	Events []event.Event
	// Transition is the status change requested by the command.
	Transition Transition
	// Item is the item the command took or used, or the zero Item.
	Item world.Item
}

// Interpreter applies parsed commands to a World.
type Interpreter struct {
	registry *Registry
}

// NewInterpreter creates an Interpreter that resolves verbs through registry.
//
// Precondition: registry must be non-nil.
func NewInterpreter(registry *Registry) *Interpreter {
	return &Interpreter{registry: registry}
}

// Registry returns the registry the interpreter resolves verbs through.
func (in *Interpreter) Registry() *Registry { return in.registry }

// Interpret parses line and applies it to w.
//
// Postcondition: Every failed command leaves w unchanged. At most one World
// mutation is performed.
func (in *Interpreter) Interpret(w *world.World, line string) Result {
	parsed := Parse(line)
	res := Result{Parsed: parsed}

	cmd, ok := in.registry.Resolve(parsed.Command)
	if !ok {
		res.Events = []event.Event{event.UnknownCommand{Command: parsed.Command}}
		return res
	}

	arg := parsed.Argument
	switch cmd.Handler {
	case HandlerQuit:
		res.Transition = TransitionStop
	case HandlerLook:
		res.Events = []event.Event{DescribeRoom(w)}
	case HandlerInventory:
		res.Events = []event.Event{ListInventory(w)}
	case HandlerHelp:
		res.Events = []event.Event{event.HelpText{Commands: in.CommandInfos()}}
	case HandlerMove:
		res.Events = HandleGo(w, arg)
	case HandlerTake:
		res.Events, res.Item = HandleTake(w, arg)
	case HandlerUse:
		res.Events, res.Item = HandleUse(w, arg)
	case HandlerTalk:
		res.Events = HandleTalk(w, arg)
	case HandlerAttack:
		res.Events, res.Transition = HandleAttack(w, arg)
	default:
		res.Events = []event.Event{event.UnknownCommand{Command: parsed.Command}}
	}
	return res
}

// CommandInfos returns the display form of every registered command.
func (in *Interpreter) CommandInfos() []event.CommandInfo {
	cmds := in.registry.Commands()
	infos := make([]event.CommandInfo, 0, len(cmds))
	for _, c := range cmds {
		infos = append(infos, c.Info())
	}
	return infos
}

// DescribeRoom builds the description of the player's current room.
func DescribeRoom(w *world.World) event.RoomDescription {
	room := w.CurrentRoom()
	desc := event.RoomDescription{
		Name:        room.Name,
		Description: room.Description,
	}
	for _, n := range w.NPCsIn(room.ID) {
		desc.NPCs = append(desc.NPCs, n.Name())
	}
	for _, e := range w.EnemiesIn(room.ID) {
		desc.Enemies = append(desc.Enemies, e.Name())
	}
	for _, item := range room.Items() {
		desc.Items = append(desc.Items, item.Name)
	}
	for _, c := range room.Connections() {
		desc.Exits = append(desc.Exits, string(c.Direction()))
	}
	return desc
}

// ListInventory lists what the player carries.
func ListInventory(w *world.World) event.InventoryListing {
	var listing event.InventoryListing
	for _, item := range w.Player().Inventory() {
		listing.Items = append(listing.Items, item.Name)
	}
	return listing
}
