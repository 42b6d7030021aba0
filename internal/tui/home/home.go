// ABOUTME: Home screen with greeting, role badges, and quick stats
// ABOUTME: Composes the section navigation menu below the stat cards

package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/tui/icons"
	"github.com/egl-devs/cyrlab-admin/internal/tui/nav"
	"github.com/egl-devs/cyrlab-admin/internal/tui/styles"
	"github.com/egl-devs/cyrlab-admin/internal/tui/widgets"
)

const statsTimeout = 10 * time.Second

// statsLoadedMsg carries the admin quick stats, or the fetch error.
type statsLoadedMsg struct {
	userCount int
	roleCount int
	err       error
}

// Model is the landing screen shown after sign-in.
type Model struct {
	api  *client.Client
	user *client.User
	menu *nav.Model

	statsReady bool
	userCount  int
	roleCount  int
	statsErr   error

	width int
}

// New creates the home screen for the given user.
func New(api *client.Client, user *client.User) *Model {
	isAdmin := user != nil && user.HasRole(client.RoleAdmin)
	return &Model{
		api:  api,
		user: user,
		menu: nav.New(isAdmin),
	}
}

// Init implements tea.Model. Quick stats come from admin-only endpoints, so
// they are fetched only when the user can actually see them.
func (m *Model) Init() tea.Cmd {
	if m.user == nil || !m.user.HasRole(client.RoleAdmin) {
		return nil
	}
	return m.loadStats()
}

func (m *Model) loadStats() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()

		page, err := api.ListUsers(ctx, 1, 1, "")
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		roles, err := api.ListRoles(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{userCount: page.TotalCount, roleCount: len(roles)}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case statsLoadedMsg:
		m.statsReady = true
		m.userCount = msg.userCount
		m.roleCount = msg.roleCount
		m.statsErr = msg.err
		return m, nil
	}

	model, cmd := m.menu.Update(msg)
	if menu, ok := model.(*nav.Model); ok {
		m.menu = menu
	}
	return m, cmd
}

// SetWidth sets the screen width for rendering.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	name := "—"
	if m.user != nil {
		name = m.user.FullName
		if name == "" {
			name = m.user.UserName
		}
	}
	b.WriteString(styles.Title.Render(fmt.Sprintf("Bienvenido, %s", name)))
	b.WriteString("\n")

	if m.user != nil {
		b.WriteString(widgets.RoleBadges(m.user.Roles))
		b.WriteString("\n\n")
	}

	if m.user != nil && m.user.HasRole(client.RoleAdmin) {
		b.WriteString(m.renderStats())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Subtitle.Render("Secciones"))
	b.WriteString("\n")
	b.WriteString(m.menu.View())

	return b.String()
}

func (m *Model) renderStats() string {
	if m.statsErr != nil {
		return styles.NoticeError.Render("No se pudieron cargar las estadísticas")
	}
	if !m.statsReady {
		return lipgloss.NewStyle().Foreground(styles.Muted).Render("Cargando estadísticas...")
	}

	config := widgets.DefaultStatCardConfig()
	users := widgets.CountCard(icons.Users, "Usuarios", m.userCount, "registrados", config)
	roles := widgets.CountCard(icons.Shield, "Roles", m.roleCount, "definidos", config)

	return lipgloss.JoinHorizontal(lipgloss.Top, users, "  ", roles)
}
