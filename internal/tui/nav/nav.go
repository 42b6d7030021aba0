// ABOUTME: Section navigation list for the dashboard
// ABOUTME: Cursor-driven menu emitting the selected route path

package nav

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/egl-devs/cyrlab-admin/internal/routes"
	"github.com/egl-devs/cyrlab-admin/internal/tui/icons"
)

// SelectedMsg is sent when a section is chosen.
type SelectedMsg struct {
	Path string
}

// LogoutMsg is sent when the sign-out entry is chosen.
type LogoutMsg struct{}

type item struct {
	label string
	path  string
	icon  icons.Icon
}

var sections = []item{
	{label: "Inicio", path: routes.PathDashboard, icon: icons.Home},
	{label: "Pedidos", path: routes.PathPedidos, icon: icons.Orders},
	{label: "Mantenimientos", path: routes.PathMantenimientos, icon: icons.Maintenance},
	{label: "Visitas", path: routes.PathVisitas, icon: icons.Visits},
	{label: "Usuarios", path: routes.PathUsuarios, icon: icons.Users},
	{label: "Reportes", path: routes.PathReportes, icon: icons.Reports},
	{label: "Catálogos", path: routes.PathCatalogos, icon: icons.Catalogs},
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4F94D6")).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logoutStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Model is the section menu. Admin-restricted entries are shown dimmed for
// non-admins; the route guard still decides on selection.
type Model struct {
	cursor  int
	isAdmin bool
}

// New creates the menu.
func New(isAdmin bool) *Model {
	return &Model{isAdmin: isAdmin}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	maxItems := len(sections) + 1 // +1 for sign out

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < maxItems-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor == len(sections) {
			return m, func() tea.Msg { return LogoutMsg{} }
		}
		path := sections[m.cursor].path
		return m, func() tea.Msg { return SelectedMsg{Path: path} }
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	for i, section := range sections {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}

		label := section.icon.String() + " " + section.label
		if routes.IsAdminOnly(section.path) && !m.isAdmin {
			if i != m.cursor {
				style = lockedStyle
			}
			label += " " + icons.Shield.String()
		}
		b.WriteString(cursor + style.Render(label) + "\n")
	}

	cursor := "  "
	style := logoutStyle
	if m.cursor == len(sections) {
		cursor = "> "
		style = style.Bold(true)
	}
	b.WriteString("\n" + cursor + style.Render(icons.Logout.String()+" Cerrar sesión") + "\n")

	return b.String()
}
