// Package tui is a full-screen terminal frontend built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/escape/internal/frontend/text"
	"github.com/cory-johannsen/escape/internal/game/event"
	"github.com/cory-johannsen/escape/internal/game/session"
)

const (
	logShare    = 0.75
	panelShare  = 0.23
	chromeLines = 6
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// Model is the bubbletea model for one game session.
type Model struct {
	sess     *session.Session
	format   *text.Formatter
	input    textinput.Model
	viewport viewport.Model
	log      string
	closing  []event.Event
	ready    bool
	width    int
	height   int
}

// NewModel creates a Model showing the welcome banner and the starting room.
//
// Precondition: sess and format must be non-nil; sess must be playing.
func NewModel(sess *session.Session, format *text.Formatter) Model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	// Unlimited; Step rejects lines over session.MaxLineBytes as it does in
	// line mode.
	ti.CharLimit = 0
	ti.Width = 40

	m := Model{
		sess:   sess,
		format: format,
		input:  ti,
	}
	m.appendEvents(sess.Welcome(), sess.Room())
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if !m.sess.Status().Terminal() {
				m.finish(m.sess.Stop())
			}
			return m, tea.Quit

		case tea.KeyEnter:
			if m.sess.Status().Terminal() {
				return m, tea.Quit
			}
			line := m.input.Value()
			m.input.Reset()
			m.log += "\n" + userStyle.Render("> "+line) + "\n"

			events := m.sess.Step(line)
			if m.sess.Status().Terminal() {
				m.finish(events)
				m.input.Placeholder = "Press Enter to leave."
			} else {
				m.appendEvents(append(events, m.sess.Room())...)
			}
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * logShare)
		if !m.ready {
			m.viewport = viewport.New(logWidth, msg.Height-chromeLines)
			m.ready = true
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - chromeLines
		}
		m.refresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the log, the status panel, and the input line.
func (m Model) View() string {
	if !m.ready {
		return m.log + "\n" + m.input.View()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderPanel())
	help := helpStyle.Render("Type 'help' for commands. Esc quits.")
	return lipgloss.JoinVertical(lipgloss.Left, main, "\n"+m.input.View(), "\n"+help)
}

// Closing returns the events that ended the session, if it has ended.
func (m Model) Closing() []event.Event { return m.closing }

// Log returns the accumulated transcript.
func (m Model) Log() string { return m.log }

func (m *Model) finish(events []event.Event) {
	m.closing = events
	m.appendEvents(events...)
}

func (m *Model) appendEvents(events ...event.Event) {
	for _, e := range events {
		if s := m.format.Format(e); s != "" {
			m.log += s + "\n"
		}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.log)
	m.viewport.GotoBottom()
}

func (m Model) renderPanel() string {
	w := m.sess.World()
	var b strings.Builder
	b.WriteString(titleStyle.Render("LOCATION") + "\n")
	b.WriteString(w.CurrentRoom().Name + "\n\n")

	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	inv := w.Player().Inventory()
	if len(inv) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, item := range inv {
		b.WriteString("- " + item.Name + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("STATUS") + "\n")
	b.WriteString(fmt.Sprintf("%s, turn %d\n", m.sess.Status(), m.sess.Turns()))

	panelWidth := int(float64(m.width) * panelShare)
	return panelStyle.Width(panelWidth).Height(m.viewport.Height).Render(b.String())
}

// Run plays sess in the alternate screen until it ends, the player presses
// Esc, or ctx is cancelled. The closing banners are then written to out so
// they remain visible after the screen is restored.
//
// Postcondition: sess is in a terminal status when Run returns nil.
func Run(ctx context.Context, sess *session.Session, format *text.Formatter, out io.Writer, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(sess, format), opts...)
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal UI: %w", err)
	}

	closing := sess.Stop()
	if m, ok := final.(Model); ok && len(m.Closing()) > 0 {
		closing = m.Closing()
	}
	return text.NewRenderer(out, format).Render(closing...)
}
