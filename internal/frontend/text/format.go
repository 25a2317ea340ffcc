// Package text renders game events as terminal prose.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/cory-johannsen/escape/internal/game/event"
)

const (
	bannerWidth  = 40
	victoryWidth = 56
)

// Styles holds the lipgloss styles used for each kind of output.
type Styles struct {
	Banner   lipgloss.Style
	RoomName lipgloss.Style
	Prose    lipgloss.Style
	NPC      lipgloss.Style
	Enemy    lipgloss.Style
	Label    lipgloss.Style
	Tag      lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Danger   lipgloss.Style
	Speech   lipgloss.Style
}

// DefaultStyles returns the standard palette bound to r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Banner:   r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		RoomName: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Prose:    r.NewStyle().Foreground(lipgloss.Color("7")),
		NPC:      r.NewStyle().Foreground(lipgloss.Color("3")),
		Enemy:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Label:    r.NewStyle().Foreground(lipgloss.Color("6")),
		Tag:      r.NewStyle().Foreground(lipgloss.Color("14")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Failure:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Danger:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Speech:   r.NewStyle().Foreground(lipgloss.Color("15")).Italic(true),
	}
}

// Formatter turns events into styled, wrapped text.
type Formatter struct {
	styles Styles
	width  int
}

// NewFormatter creates a Formatter for output written to out. With color
// false every style renders as plain text.
//
// Precondition: out must be non-nil.
// Postcondition: width <= 0 disables wrapping.
func NewFormatter(out io.Writer, color bool, width int) *Formatter {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return FromRenderer(r, width)
}

// FromRenderer creates a Formatter using the default styles bound to r.
func FromRenderer(r *lipgloss.Renderer, width int) *Formatter {
	return &Formatter{styles: DefaultStyles(r), width: width}
}

// Format renders e. Events with no textual form render as "".
func (f *Formatter) Format(e event.Event) string {
	s := f.styles
	switch e := e.(type) {
	case event.Welcome:
		return f.welcome(e)
	case event.RoomDescription:
		return f.room(e)
	case event.InventoryListing:
		return s.Label.Render("Inventory:") + " " + f.tags(e.Items, "nothing.")
	case event.HelpText:
		return f.help(e.Commands)
	case event.Moved:
		return ""
	case event.DoorLocked:
		return s.Failure.Render("The door is locked.")
	case event.NoSuchExit:
		return s.Failure.Render("You can't go that way.")
	case event.Taken:
		return s.Success.Render(fmt.Sprintf("You took the %s.", e.Item))
	case event.NotFoundHere:
		return s.Failure.Render(fmt.Sprintf("There is no '%s' here.", e.Name))
	case event.Unlocked:
		return s.Success.Render(fmt.Sprintf("The %s fits perfectly. The door unlocks with a click.", e.Key))
	case event.CannotUseHere:
		return s.Failure.Render(fmt.Sprintf("You can't use the %s here.", e.Name))
	case event.DontHaveItem:
		return s.Failure.Render(fmt.Sprintf("You don't have a '%s'.", e.Name))
	case event.Dialogue:
		return f.prose(s.Speech, "'"+e.Line+"'")
	case event.NoOneNamed:
		return s.Failure.Render(fmt.Sprintf("There is no one named '%s' to talk to.", e.Name))
	case event.Defeated:
		return s.Success.Render(fmt.Sprintf("You attack the %s and defeat it!", e.Enemy))
	case event.Slain:
		return f.prose(s.Danger, fmt.Sprintf("You attack the %s but have no way to defeat it! You have been slain.", e.Enemy))
	case event.NoSuchEnemy:
		return s.Failure.Render(fmt.Sprintf("There is no '%s' to attack here.", e.Name))
	case event.UnknownCommand:
		return s.Failure.Render("I don't understand that command. Type 'help'.")
	case event.Victory:
		return f.victory()
	case event.GameOver:
		return "\n" + s.Danger.Render("--- GAME OVER ---")
	case event.Farewell:
		return "Thanks for playing!"
	default:
		return ""
	}
}

func (f *Formatter) welcome(w event.Welcome) string {
	s := f.styles
	rule := s.Banner.Render(strings.Repeat("=", bannerWidth))
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(s.Banner.Render(lipgloss.PlaceHorizontal(bannerWidth, lipgloss.Center, w.Title)) + "\n")
	b.WriteString(rule + "\n")
	if w.Intro != "" {
		b.WriteString(f.prose(s.Prose, w.Intro) + "\n")
	}
	usages := make([]string, 0, len(w.Commands))
	for _, c := range w.Commands {
		usages = append(usages, c.Usage)
	}
	b.WriteString(f.prose(s.Label, "Commands: "+strings.Join(usages, ", ")))
	return b.String()
}

func (f *Formatter) room(r event.RoomDescription) string {
	s := f.styles
	var b strings.Builder
	b.WriteString("\n" + s.RoomName.Render(fmt.Sprintf("--- You are in: %s ---", r.Name)) + "\n")
	b.WriteString(f.prose(s.Prose, r.Description) + "\n")
	for _, n := range r.NPCs {
		b.WriteString(s.NPC.Render(fmt.Sprintf("You see a %s here.", n)) + "\n")
	}
	for _, e := range r.Enemies {
		b.WriteString(s.Enemy.Render(fmt.Sprintf("A menacing %s stands here!", e)) + "\n")
	}
	b.WriteString(s.Label.Render("Items:") + " " + f.tags(r.Items, "none.") + "\n")
	b.WriteString(s.Label.Render("Exits:") + " " + f.tags(r.Exits, "none."))
	return b.String()
}

func (f *Formatter) help(cmds []event.CommandInfo) string {
	var b strings.Builder
	b.WriteString("\n" + f.styles.Banner.Render("--- Help Menu ---"))
	for _, c := range cmds {
		b.WriteString("\n" + fmt.Sprintf(" - %-18s%s", c.Usage, f.styles.Failure.Render(c.Help)))
	}
	return b.String()
}

func (f *Formatter) victory() string {
	s := f.styles
	rule := s.Success.Render(strings.Repeat("*", victoryWidth))
	return "\n\n" + rule + "\n" +
		s.Success.Render("The final door swings open, and you breathe free air!") + "\n" +
		s.Success.Render("Congratulations! You have escaped the dungeon!") + "\n" +
		rule
}

func (f *Formatter) tags(names []string, empty string) string {
	if len(names) == 0 {
		return empty
	}
	tags := make([]string, 0, len(names))
	for _, n := range names {
		tags = append(tags, f.styles.Tag.Render("["+n+"]"))
	}
	return strings.Join(tags, " ")
}

// prose wraps text to the formatter width and styles each line separately so
// lipgloss does not pad short lines.
func (f *Formatter) prose(st lipgloss.Style, text string) string {
	if f.width > 0 {
		text = wordwrap.String(text, f.width)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = st.Render(l)
	}
	return strings.Join(lines, "\n")
}
