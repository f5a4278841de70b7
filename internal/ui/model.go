package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/marquee/internal/input"
)

// Injector queues raw key names for the controller. *input.Sampler
// satisfies it.
type Injector interface {
	Inject(raw string) bool
}

// frameMsg carries a frame from the driver goroutine.
type frameMsg Frame

// doneMsg tells the model the controller has quit.
type doneMsg struct{ err error }

// Model is the Bubble Tea model of the cabinet front-end. It only renders
// frames and forwards keys; the controller runs in the Driver goroutine.
type Model struct {
	injector Injector
	keymap   *input.KeyMap
	renderer *Renderer
	help     help.Model
	showHelp key.Binding
	abort    key.Binding

	frame    Frame
	err      error
	aborted  bool
	quitting bool
}

// NewModel creates the front-end model. Keys go to injector, which is
// normally the input.Sampler the controller polls.
func NewModel(injector Injector, keymap *input.KeyMap) Model {
	if keymap == nil {
		keymap = input.DefaultKeyMap()
	}
	width, height := GetTerminalSize()
	return Model{
		injector: injector,
		keymap:   keymap,
		renderer: NewRenderer(width, height),
		help:     help.New(),
		showHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		abort:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.Resize(msg.Width, msg.Height)
		m.help.Width = m.renderer.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.abort):
			m.aborted = true
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.showHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.injector != nil {
			m.injector.Inject(msg.String())
		}
		return m, nil

	case frameMsg:
		m.frame = Frame(msg)
		return m, nil

	case doneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	footer := m.help.View(m.keymap)
	body := m.renderer.Render(m.frame, lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// Frame returns the last frame received.
func (m Model) Frame() Frame {
	return m.frame
}

// Aborted reports whether the user pressed ctrl+c.
func (m Model) Aborted() bool {
	return m.aborted
}
