// ABOUTME: User management screen with debounced search, paging, and CRUD
// ABOUTME: Drives the list table, the create/edit form, and delete confirmation

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/debounce"
	"github.com/egl-devs/cyrlab-admin/internal/tui/icons"
	"github.com/egl-devs/cyrlab-admin/internal/tui/styles"
	"github.com/egl-devs/cyrlab-admin/internal/tui/userform"
	"github.com/egl-devs/cyrlab-admin/internal/tui/widgets"
)

const requestTimeout = 15 * time.Second

// state represents the current UI state
type state int

const (
	stateList state = iota
	stateForm
	stateConfirmDelete
)

// focus is the active input area in the list state
type focus int

const (
	focusSearch focus = iota
	focusTable
)

// BackMsg is sent when the user leaves the screen.
type BackMsg struct{}

// AuthExpiredMsg is sent when a request fails with an authentication error.
// The parent tears the session down and returns to the login screen.
type AuthExpiredMsg struct{}

// pageLoadedMsg carries one fetched page, tagged with its request sequence.
type pageLoadedMsg struct {
	seq  int
	page *client.PaginatedUsers
	err  error
}

// rolesLoadedMsg carries the role list needed to open the form.
type rolesLoadedMsg struct {
	roles []client.Role
	edit  *client.User
	err   error
}

// mutationDoneMsg reports the outcome of a create/update/delete call.
type mutationDoneMsg struct {
	message string
	err     error
}

// Model is the user management screen.
type Model struct {
	api      *client.Client
	pageSize int

	state state
	focus focus

	search    textinput.Model
	tbl       table.Model
	pager     paginator.Model
	debouncer *debounce.Controller

	// The settled query: one fetch per (searchTerm, page) change. Paging
	// keys edit pendingPage; it is applied when the quiet period settles.
	searchTerm  string
	page        int
	pendingPage int

	result   *client.PaginatedUsers
	loading  bool
	mutating bool
	notice   string
	noticeOK bool

	form         *userform.Model
	deleteTarget *client.User

	width int
}

// New creates the screen. The first page loads on Init.
func New(api *client.Client, pageSize int, searchDebounce time.Duration) *Model {
	search := textinput.New()
	search.Placeholder = "Buscar usuarios..."
	search.Prompt = icons.Search.String() + " "
	search.CharLimit = 64
	search.Width = 40
	search.Focus()

	columns := []table.Column{
		{Title: "Usuario", Width: 16},
		{Title: "Nombre", Width: 24},
		{Title: "Correo", Width: 28},
		{Title: "Roles", Width: 16},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(pageSize+1),
	)
	tblStyles := table.DefaultStyles()
	tblStyles.Header = tblStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Muted).
		Foreground(styles.Accent).
		Bold(true)
	tblStyles.Selected = tblStyles.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(false)
	tbl.SetStyles(tblStyles)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = lipgloss.NewStyle().Foreground(styles.Primary).Render("●")
	pager.InactiveDot = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")

	return &Model{
		api:         api,
		pageSize:    pageSize,
		search:      search,
		tbl:         tbl,
		pager:       pager,
		debouncer:   debounce.New(searchDebounce),
		page:        1,
		pendingPage: 1,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchPage())
}

// fetchPage issues a sequenced fetch for the current (searchTerm, page).
func (m *Model) fetchPage() tea.Cmd {
	m.loading = true
	seq := m.debouncer.Next()
	api, page, pageSize, term := m.api, m.page, m.pageSize, m.searchTerm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := api.ListUsers(ctx, page, pageSize, term)
		return pageLoadedMsg{seq: seq, page: result, err: err}
	}
}

func (m *Model) openForm(edit *client.User) tea.Cmd {
	m.loading = true
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		roles, err := api.ListRoles(ctx)
		return rolesLoadedMsg{roles: roles, edit: edit, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case debounce.SettledMsg:
		if !m.debouncer.Settled(msg) {
			return m, nil
		}
		term := strings.TrimSpace(m.search.Value())
		page := m.pendingPage
		if term != m.searchTerm {
			// A search change restarts paging from the first page
			page = 1
		}
		if term == m.searchTerm && page == m.page {
			return m, nil
		}
		m.searchTerm = term
		m.page = page
		m.pendingPage = page
		return m, m.fetchPage()

	case pageLoadedMsg:
		if !m.debouncer.Accept(msg.seq) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.result = msg.page
		m.fillTable()
		return m, nil

	case rolesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.state = stateForm
		m.form = userform.New(msg.roles, msg.edit)
		return m, m.form.Init()

	case mutationDoneMsg:
		m.mutating = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.setNotice(msg.message, true)
		m.state = stateList
		m.form = nil
		m.deleteTarget = nil
		return m, m.fetchPage()

	case userform.SubmitMsg:
		if m.mutating {
			return m, nil
		}
		m.mutating = true
		return m, m.runMutation(msg)

	case userform.CancelMsg:
		m.state = stateList
		m.form = nil
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.state == stateForm && m.form != nil {
		return m, m.updateForm(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.state {
	case stateForm:
		if m.mutating {
			// A submit is already running; ignore further input
			return m, nil
		}
		return m, m.updateForm(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateList(msg)
	}
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	model, cmd := m.form.Update(msg)
	if form, ok := model.(*userform.Model); ok {
		m.form = form
	}
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }
	case "tab":
		m.toggleFocus()
		return m, nil
	case "pgup":
		return m, m.pageBack()
	case "pgdown":
		return m, m.pageForward()
	}

	if m.focus == focusTable {
		switch msg.String() {
		case "left":
			return m, m.pageBack()
		case "right":
			return m, m.pageForward()
		case "n":
			return m, m.openForm(nil)
		case "e", "enter":
			if user := m.selectedUser(); user != nil {
				return m, m.openForm(user)
			}
			return m, nil
		case "d":
			if user := m.selectedUser(); user != nil {
				m.deleteTarget = user
				m.state = stateConfirmDelete
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	// Search input has focus: every edit bumps the debounce timer
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.debouncer.Bump())
	}
	return m, cmd
}

// pageBack schedules a debounced move to the previous page.
func (m *Model) pageBack() tea.Cmd {
	if m.pendingPage <= 1 {
		return nil
	}
	m.pendingPage--
	return m.debouncer.Bump()
}

// pageForward schedules a debounced move to the next page.
func (m *Model) pageForward() tea.Cmd {
	if m.result == nil || m.pendingPage >= m.result.TotalPages() {
		return nil
	}
	m.pendingPage++
	return m.debouncer.Bump()
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.mutating || m.deleteTarget == nil {
			return m, nil
		}
		m.mutating = true
		id := m.deleteTarget.ID
		api := m.api
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			message, err := api.DeleteUser(ctx, id)
			return mutationDoneMsg{message: message, err: err}
		}
	case "n", "esc":
		m.deleteTarget = nil
		m.state = stateList
		return m, nil
	}
	return m, nil
}

func (m *Model) runMutation(msg userform.SubmitMsg) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var message string
		var err error
		if msg.Update != nil {
			message, err = api.UpdateUser(ctx, msg.Update.ID, msg.Update)
		} else {
			message, err = api.CreateUser(ctx, msg.Create)
		}
		return mutationDoneMsg{message: message, err: err}
	}
}

// fail routes auth failures to the parent and keeps everything else local.
func (m *Model) fail(err error) tea.Cmd {
	var authErr *client.AuthError
	if errors.As(err, &authErr) {
		return func() tea.Msg { return AuthExpiredMsg{} }
	}
	m.setNotice(err.Error(), false)
	m.state = stateList
	return nil
}

func (m *Model) setNotice(text string, ok bool) {
	m.notice = text
	m.noticeOK = ok
}

func (m *Model) toggleFocus() {
	if m.focus == focusSearch {
		m.focus = focusTable
		m.search.Blur()
		m.tbl.Focus()
	} else {
		m.focus = focusSearch
		m.tbl.Blur()
		m.search.Focus()
	}
}

func (m *Model) selectedUser() *client.User {
	if m.result == nil {
		return nil
	}
	idx := m.tbl.Cursor()
	if idx < 0 || idx >= len(m.result.Items) {
		return nil
	}
	return &m.result.Items[idx]
}

func (m *Model) fillTable() {
	rows := make([]table.Row, 0, len(m.result.Items))
	for _, user := range m.result.Items {
		rows = append(rows, table.Row{
			user.UserName,
			user.FullName,
			user.Email,
			strings.Join(user.Roles, ", "),
		})
	}
	m.tbl.SetRows(rows)
	if m.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

// SetWidth sets the screen width for rendering.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// View implements tea.Model
func (m *Model) View() string {
	switch m.state {
	case stateForm:
		return m.viewForm()
	case stateConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewList()
	}
}

func (m *Model) viewList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.Users.String() + " Usuarios"))
	b.WriteString("\n")

	searchBox := styles.Panel
	if m.focus == focusSearch {
		searchBox = styles.ActivePanel
	}
	b.WriteString(searchBox.Padding(0, 1).Render(m.search.View()))
	b.WriteString("\n\n")

	if m.loading && m.result == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("Cargando usuarios..."))
		return b.String()
	}

	b.WriteString(m.tbl.View())
	b.WriteString("\n")
	b.WriteString(m.renderPager())

	if m.notice != "" {
		b.WriteString("\n\n")
		level := widgets.StatusCritical
		if m.noticeOK {
			level = widgets.StatusOK
		}
		b.WriteString(widgets.StatusText(m.notice, level))
	}

	return b.String()
}

func (m *Model) renderPager() string {
	if m.result == nil {
		return ""
	}

	m.pager.TotalPages = m.result.TotalPages()
	m.pager.Page = m.page - 1

	info := fmt.Sprintf("Página %d de %d · %d usuarios", m.page, m.result.TotalPages(), m.result.TotalCount)
	if m.loading {
		info += " · actualizando..."
	}
	return m.pager.View() + "  " + lipgloss.NewStyle().Foreground(styles.Muted).Render(info)
}

func (m *Model) viewForm() string {
	if m.mutating {
		return lipgloss.NewStyle().Foreground(styles.Muted).Render("Guardando...")
	}
	return m.form.View()
}

func (m *Model) viewConfirmDelete() string {
	if m.deleteTarget == nil {
		return ""
	}
	if m.mutating {
		return lipgloss.NewStyle().Foreground(styles.Muted).Render("Eliminando...")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Eliminar usuario"))
	b.WriteString("\n")

	prompt := fmt.Sprintf("¿Eliminar al usuario %s? Esta acción no se puede deshacer.",
		widgets.Badge(m.deleteTarget.UserName, widgets.StatusCritical))
	b.WriteString(styles.Panel.Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.Help.Render(
		styles.KeyStyle.Render("y") + " confirmar  " + styles.KeyStyle.Render("n") + " cancelar"))

	return b.String()
}
