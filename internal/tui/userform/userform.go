// ABOUTME: Create/edit user form as a bubbletea model
// ABOUTME: Uses huh with field validators mirroring the server-side rules

package userform

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/tui/styles"
)

// SubmitMsg carries the validated request body. Exactly one of the two
// fields is set, depending on the form mode.
type SubmitMsg struct {
	Create *client.CreateUserRequest
	Update *client.UpdateUserRequest
}

// CancelMsg is sent when the user backs out of the form.
type CancelMsg struct{}

// Model is the user create/edit form. Edit mode hides the user name and
// password fields; those are immutable through the dashboard.
type Model struct {
	form  *huh.Form
	roles []client.Role
	edit  *client.User

	userName  string
	firstName string
	lastName  string
	email     string
	password  string
	confirm   string
	role      string
}

// New creates the form. A nil user means create mode; otherwise the fields
// are prefilled from the user being edited.
func New(roles []client.Role, edit *client.User) *Model {
	m := &Model{roles: roles, edit: edit}

	if edit != nil {
		m.userName = edit.UserName
		m.email = edit.Email
		m.firstName, m.lastName = splitFullName(edit.FullName)
		if len(edit.Roles) > 0 {
			m.role = edit.Roles[0]
		}
	}

	m.form = m.createForm()
	return m
}

// splitFullName recovers first/last name from the joined display name. The
// API only exposes the joined form; everything after the first word is
// treated as the last name.
func splitFullName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (m *Model) createForm() *huh.Form {
	roleOptions := make([]huh.Option[string], 0, len(m.roles))
	for _, role := range m.roles {
		roleOptions = append(roleOptions, huh.NewOption(role.Name, role.Name))
	}

	fields := []huh.Field{}

	if m.edit == nil {
		fields = append(fields, huh.NewInput().
			Title("Usuario").
			Placeholder("nombre de usuario").
			CharLimit(64).
			Value(&m.userName).
			Validate(ValidateUserName))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Nombre").
			CharLimit(64).
			Value(&m.firstName).
			Validate(ValidateName),
		huh.NewInput().
			Title("Apellido").
			CharLimit(64).
			Value(&m.lastName).
			Validate(ValidateName),
		huh.NewInput().
			Title("Correo electrónico").
			Placeholder("usuario@cyrlab.com").
			CharLimit(128).
			Value(&m.email).
			Validate(ValidateEmail),
	)

	if m.edit == nil {
		fields = append(fields,
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&m.password).
				Validate(ValidatePassword),
			huh.NewInput().
				Title("Confirmar contraseña").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&m.confirm).
				Validate(func(s string) error {
					if s != m.password {
						return fmt.Errorf("las contraseñas no coinciden")
					}
					return nil
				}),
		)
	}

	fields = append(fields, huh.NewSelect[string]().
		Title("Rol").
		Options(roleOptions...).
		Value(&m.role))

	title := "Nuevo usuario"
	if m.edit != nil {
		title = "Editar usuario"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithTheme(styles.FormTheme())
}

// ValidateUserName enforces the minimum user name length.
func ValidateUserName(s string) error {
	if len(strings.TrimSpace(s)) < 3 {
		return fmt.Errorf("el usuario debe tener al menos 3 caracteres")
	}
	return nil
}

// ValidateName enforces the minimum length for first and last names.
func ValidateName(s string) error {
	if len(strings.TrimSpace(s)) < 2 {
		return fmt.Errorf("debe tener al menos 2 caracteres")
	}
	return nil
}

// ValidateEmail checks the address shape.
func ValidateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("correo electrónico inválido")
	}
	return nil
}

// ValidatePassword enforces the server's complexity rules: at least 8
// characters with a digit, an uppercase letter, a lowercase letter, and a
// special character.
func ValidatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("la contraseña debe tener al menos 8 caracteres")
	}

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		default:
			hasSpecial = true
		}
	}

	if !hasDigit {
		return fmt.Errorf("la contraseña debe incluir un número")
	}
	if !hasUpper {
		return fmt.Errorf("la contraseña debe incluir una mayúscula")
	}
	if !hasLower {
		return fmt.Errorf("la contraseña debe incluir una minúscula")
	}
	if !hasSpecial {
		return fmt.Errorf("la contraseña debe incluir un carácter especial")
	}
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}

	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	if m.edit != nil {
		req := &client.UpdateUserRequest{
			ID:        m.edit.ID,
			UserName:  m.userName,
			FirstName: strings.TrimSpace(m.firstName),
			LastName:  strings.TrimSpace(m.lastName),
			Email:     strings.TrimSpace(m.email),
			Roles:     []string{m.role},
		}
		return func() tea.Msg { return SubmitMsg{Update: req} }
	}

	req := &client.CreateUserRequest{
		UserName:  strings.TrimSpace(m.userName),
		FirstName: strings.TrimSpace(m.firstName),
		LastName:  strings.TrimSpace(m.lastName),
		Email:     strings.TrimSpace(m.email),
		Password:  m.password,
		Roles:     []string{m.role},
	}
	return func() tea.Msg { return SubmitMsg{Create: req} }
}

// View implements tea.Model
func (m *Model) View() string {
	return m.form.View()
}
