package command

import (
	"fmt"
	"strings"
	"unicode"
)

// Registry is the table of verbs the interpreter understands, kept in the
// order they were registered so help and the welcome banner list them the
// same way every time.
type Registry struct {
	byName map[string]*Command
	order  []*Command
}

// NewRegistry builds a Registry from cmds.
//
// Precondition: Every name must be a single lowercase word, since Parse
// lowercases the verb before lookup; every command must name a handler.
// Postcondition: Returns a Registry, or an error naming the first bad command.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Command, len(cmds)),
		order:  make([]*Command, 0, len(cmds)),
	}
	for i := range cmds {
		cmd := &cmds[i]
		if err := checkCommand(cmd); err != nil {
			return nil, err
		}
		if _, exists := r.byName[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		r.byName[cmd.Name] = cmd
		r.order = append(r.order, cmd)
	}
	return r, nil
}

func checkCommand(cmd *Command) error {
	switch {
	case cmd.Name == "":
		return fmt.Errorf("command with usage %q has no name", cmd.Usage)
	case strings.ContainsFunc(cmd.Name, unicode.IsSpace):
		return fmt.Errorf("command name %q must be a single word", cmd.Name)
	case lower(cmd.Name) != cmd.Name:
		return fmt.Errorf("command name %q must be lowercase", cmd.Name)
	case cmd.Handler == "":
		return fmt.Errorf("command %q has no handler", cmd.Name)
	}
	return nil
}

// DefaultRegistry creates a Registry with all built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by its exact, already lowercased, name.
func (r *Registry) Resolve(verb string) (*Command, bool) {
	cmd, ok := r.byName[verb]
	return cmd, ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}
