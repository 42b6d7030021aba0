// ABOUTME: Placeholder screen for sections without a native view yet
// ABOUTME: Renders the section title with an under-construction notice

package stub

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/egl-devs/cyrlab-admin/internal/tui/styles"
	"github.com/egl-devs/cyrlab-admin/internal/tui/widgets"
)

// BackMsg is sent when the user leaves the screen.
type BackMsg struct{}

// Model renders an under-construction panel for a section.
type Model struct {
	title string
	width int
}

// New creates a placeholder for the named section.
func New(title string) *Model {
	return &Model{title: title}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")

	b.WriteString(styles.Panel.Render(widgets.StatusText("En construcción", widgets.StatusWarning)))

	return b.String()
}
