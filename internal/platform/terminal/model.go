package terminal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixelhost/internal/platform"
)

// Model is the Bubble Tea model for a terminal session. It forwards input
// to the window's event queue and displays whatever frame the loop last
// blitted; the simulation itself never runs inside Bubble Tea's update
// cycle.
type Model struct {
	win      *Window
	frame    string
	quitting bool
}

// NewModel creates a model wired to the given window.
func NewModel(win *Window) Model {
	return Model{win: win}
}

// Init performs no startup work; frames arrive from the loop goroutine.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			m.win.push(platform.CloseEvent())
			return m, tea.Quit
		}
		m.win.handleKey(msg)
		return m, nil

	case tea.MouseMsg:
		m.win.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.win.setSize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.frame = string(msg)
		return m, nil
	}

	return m, nil
}

// View renders the last blitted frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame
}
