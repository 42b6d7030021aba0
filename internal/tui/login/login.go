// ABOUTME: Login screen as a bubbletea model
// ABOUTME: Uses a huh form for credentials and reports submissions upward

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/egl-devs/cyrlab-admin/internal/tui/icons"
	"github.com/egl-devs/cyrlab-admin/internal/tui/styles"
)

// SubmitMsg is sent when the user confirms the credential form. The parent
// model performs the actual sign-in.
type SubmitMsg struct {
	UserName string
	Password string
}

// Model is the credential entry screen.
type Model struct {
	form     *huh.Form
	userName string
	password string
	errMsg   string
	busy     bool
	width    int
}

// New creates a login screen with an empty form.
func New() *Model {
	m := &Model{}
	m.form = m.createForm()
	return m
}

func (m *Model) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Placeholder("nombre de usuario").
				CharLimit(64).
				Value(&m.userName).
				Validate(requireField("el usuario es obligatorio")),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&m.password).
				Validate(requireField("la contraseña es obligatoria")),
		).Title("Iniciar sesión").
			Description("Ingresa tus credenciales de CyrLab"),
	).WithTheme(styles.FormTheme())
}

func requireField(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errString(msg)
		}
		return nil
	}
}

type errString string

func (e errString) Error() string { return string(e) }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.busy {
		// Ignore input while a sign-in is in flight
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		userName, password := m.userName, m.password
		return m, func() tea.Msg {
			return SubmitMsg{UserName: userName, Password: password}
		}
	}

	return m, cmd
}

// Fail re-arms the form after a rejected sign-in, keeping the user name and
// showing the server's message.
func (m *Model) Fail(message string) tea.Cmd {
	m.busy = false
	m.password = ""
	m.errMsg = message
	m.form = m.createForm()
	return m.form.Init()
}

// SetWidth sets the screen width for rendering.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Key.String() + " CyrLab Admin"))
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString(styles.NoticeError.Render(icons.Critical.String() + " " + m.errMsg))
		sb.WriteString("\n\n")
	}

	if m.busy {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("Verificando credenciales..."))
	} else {
		sb.WriteString(m.form.View())
	}

	return sb.String()
}
