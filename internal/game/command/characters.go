package command

import (
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/world"
)

// HandleTalk processes the "talk" command.
func HandleTalk(w *world.World, name string) []event.Event {
	npc, ok := w.NPCHere(name)
	if !ok {
		return []event.Event{event.NoOneNamed{Name: name}}
	}
	return []event.Event{event.Dialogue{Speaker: npc.Name(), Line: npc.Dialogue()}}
}

// HandleAttack processes the "attack" command. Combat is a single check: a
// player carrying the enemy's required item wins, anyone else dies.
//
// Postcondition: On victory the enemy is removed from w. On defeat w is
// unchanged and TransitionLose is returned.
func HandleAttack(w *world.World, name string) ([]event.Event, Transition) {
	enemy, ok := w.EnemyHere(name)
	if !ok {
		return []event.Event{event.NoSuchEnemy{Name: name}}, TransitionNone
	}
	if !enemy.DefeatedBy(w.Player()) {
		return []event.Event{event.Slain{Enemy: enemy.Name()}}, TransitionLose
	}
	w.RemoveEnemy(enemy)
	return []event.Event{event.Defeated{Enemy: enemy.Name()}}, TransitionNone
}
