// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the session lifecycle and routes input to section screens

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/config"
	"github.com/egl-devs/cyrlab-admin/internal/routes"
	"github.com/egl-devs/cyrlab-admin/internal/session"
	"github.com/egl-devs/cyrlab-admin/internal/tui/home"
	"github.com/egl-devs/cyrlab-admin/internal/tui/icons"
	"github.com/egl-devs/cyrlab-admin/internal/tui/login"
	"github.com/egl-devs/cyrlab-admin/internal/tui/nav"
	"github.com/egl-devs/cyrlab-admin/internal/tui/stub"
	"github.com/egl-devs/cyrlab-admin/internal/tui/styles"
	"github.com/egl-devs/cyrlab-admin/internal/tui/users"
	"github.com/egl-devs/cyrlab-admin/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenHome
	ScreenUsers
	ScreenStub
)

// Layout constants
const (
	minTerminalWidth = 80
	noticeDuration   = 4 * time.Second
)

// sessionReadyMsg is sent when the startup token check finishes.
type sessionReadyMsg struct {
	err error
}

// loginDoneMsg is sent when a sign-in attempt finishes.
type loginDoneMsg struct {
	err error
}

// logoutDoneMsg is sent when sign-out finishes.
type logoutDoneMsg struct{}

// noticeExpiredMsg clears the transient notice line.
type noticeExpiredMsg struct {
	id int
}

// stubTitles maps section paths to their display names.
var stubTitles = map[string]string{
	routes.PathPedidos:        "Pedidos",
	routes.PathMantenimientos: "Mantenimientos",
	routes.PathVisitas:        "Visitas",
	routes.PathReportes:       "Reportes",
	routes.PathCatalogos:      "Catálogos",
	routes.PathProductos:      "Productos",
}

// App is the root model for the TUI
type App struct {
	api     *client.Client
	session *session.Manager
	cfg     *config.Config

	screen Screen
	path   string
	width  int
	height int

	spin     spinner.Model
	notice   string
	noticeOK bool
	noticeID int

	// Child models
	loginScreen *login.Model
	homeScreen  *home.Model
	usersScreen *users.Model
	stubScreen  *stub.Model
}

// New creates a new TUI application
func New(api *client.Client, sess *session.Manager, cfg *config.Config) *App {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		api:     api,
		session: sess,
		cfg:     cfg,
		screen:  ScreenLoading,
		spin:    spin,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.bootstrap())
}

func (a *App) bootstrap() tea.Cmd {
	sess := a.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := sess.Bootstrap(ctx)
		return sessionReadyMsg{err: err}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forwardToScreen(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && (a.screen == ScreenHome || a.screen == ScreenStub) {
			return a, tea.Quit
		}
		return a, a.forwardToScreen(msg)

	case spinner.TickMsg:
		if a.screen == ScreenLoading {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil

	case sessionReadyMsg:
		return a.navigate(routes.PathDashboard)

	case login.SubmitMsg:
		return a, a.signIn(msg.UserName, msg.Password)

	case loginDoneMsg:
		if msg.err != nil {
			if a.loginScreen == nil {
				return a, nil
			}
			return a, a.loginScreen.Fail(loginFailureMessage(msg.err))
		}
		return a.navigate(routes.PathDashboard)

	case nav.SelectedMsg:
		return a.navigate(msg.Path)

	case nav.LogoutMsg:
		return a, a.signOut()

	case logoutDoneMsg:
		return a.navigate(routes.PathLogin)

	case users.AuthExpiredMsg:
		notice := a.setNotice("Tu sesión expiró, inicia sesión de nuevo", false)
		return a, tea.Batch(notice, a.signOut())

	case users.BackMsg, stub.BackMsg:
		return a.navigate(routes.PathDashboard)

	case noticeExpiredMsg:
		if msg.id == a.noticeID {
			a.notice = ""
		}
		return a, nil
	}

	// Everything else (form internals, child-screen messages) goes to the
	// active screen.
	return a, a.forwardToScreen(msg)
}

func (a *App) forwardToScreen(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen == nil {
			return nil
		}
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Model)
		return cmd
	case ScreenHome:
		if a.homeScreen == nil {
			return nil
		}
		model, cmd := a.homeScreen.Update(msg)
		a.homeScreen = model.(*home.Model)
		return cmd
	case ScreenUsers:
		if a.usersScreen == nil {
			return nil
		}
		model, cmd := a.usersScreen.Update(msg)
		a.usersScreen = model.(*users.Model)
		return cmd
	case ScreenStub:
		if a.stubScreen == nil {
			return nil
		}
		model, cmd := a.stubScreen.Update(msg)
		a.stubScreen = model.(*stub.Model)
		return cmd
	}
	return nil
}

// navigate applies the route guard and builds the screen for the target
// path. Redirects follow the guard's decision.
func (a *App) navigate(path string) (tea.Model, tea.Cmd) {
	decision := routes.Decide(a.session.User(), a.session.IsLoading(), path)
	if decision.RedirectTo != "" && decision.RedirectTo != path {
		return a.navigate(decision.RedirectTo)
	}

	a.path = path
	a.loginScreen = nil
	a.homeScreen = nil
	a.usersScreen = nil
	a.stubScreen = nil

	switch path {
	case routes.PathLogin:
		a.screen = ScreenLogin
		a.loginScreen = login.New()
		return a, a.loginScreen.Init()

	case routes.PathDashboard:
		a.screen = ScreenHome
		a.homeScreen = home.New(a.api, a.session.User())
		return a, a.homeScreen.Init()

	case routes.PathUsuarios:
		a.screen = ScreenUsers
		a.usersScreen = users.New(a.api, a.cfg.PageSize, a.cfg.SearchDebounce)
		return a, a.usersScreen.Init()

	default:
		a.screen = ScreenStub
		title := stubTitles[path]
		if title == "" {
			title = path
		}
		a.stubScreen = stub.New(title)
		return a, a.stubScreen.Init()
	}
}

func (a *App) signIn(userName, password string) tea.Cmd {
	sess := a.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return loginDoneMsg{err: sess.Login(ctx, userName, password)}
	}
}

func (a *App) signOut() tea.Cmd {
	sess := a.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sess.Logout(ctx)
		return logoutDoneMsg{}
	}
}

// loginFailureMessage maps errors to the line shown above the form.
func loginFailureMessage(err error) string {
	var authErr *client.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return "No se pudo conectar al servidor"
	}
	return err.Error()
}

func (a *App) setNotice(text string, ok bool) tea.Cmd {
	a.notice = text
	a.noticeOK = ok
	a.noticeID++
	id := a.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLoading:
		content = a.spin.View() + " Cargando sesión..."
	case ScreenLogin:
		content = a.viewChild(a.loginScreen)
	case ScreenHome:
		content = a.viewChild(a.homeScreen)
	case ScreenUsers:
		content = a.viewChild(a.usersScreen)
	case ScreenStub:
		content = a.viewChild(a.stubScreen)
	}

	if a.notice != "" {
		level := widgets.StatusCritical
		if a.noticeOK {
			level = widgets.StatusOK
		}
		content += "\n" + widgets.StatusText(a.notice, level)
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewChild(m tea.Model) string {
	if m == nil {
		return ""
	}
	return m.View()
}

// renderHeader creates the header bar with app branding and the signed-in
// user on the right.
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Accent)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("CyrLab Admin"))

	rightText := ""
	if user := a.session.User(); user != nil {
		rightText = contextStyle.Render(user.UserName) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts per screen.
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Continuar", "ctrl+c Salir"}
	case ScreenHome:
		shortcuts = []string{"↑↓ Navegar", "Enter Abrir", "q Salir"}
	case ScreenUsers:
		shortcuts = []string{"Tab Foco", "n Nuevo", "e Editar", "d Eliminar", "←→ Página", "Esc Volver"}
	case ScreenStub:
		shortcuts = []string{"Esc Volver", "q Salir"}
	default:
		shortcuts = []string{"ctrl+c Salir"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(api *client.Client, sess *session.Manager, cfg *config.Config) error {
	app := New(api, sess, cfg)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
