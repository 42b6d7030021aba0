// ABOUTME: Tests for the user form
// ABOUTME: Validates field rules, mode differences, and request building

package userform

import (
	"testing"

	"github.com/egl-devs/cyrlab-admin/internal/client"
)

func sampleRoles() []client.Role {
	return []client.Role{
		{ID: "r1", Name: "Admin"},
		{ID: "r2", Name: "Employee"},
	}
}

func TestValidateUserName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"maria", false},
		{"ana", false},
		{"ab", true},
		{"  a  ", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := ValidateUserName(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"María", false},
		{"Lu", false},
		{"L", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := ValidateName(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"maria@cyrlab.com", false},
		{"a@b.co", false},
		{"not-an-email", true},
		{"@cyrlab.com", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := ValidateEmail(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Secreta1!", false},
		{"too short", "Ab1!", true},
		{"no digit", "Secretaa!", true},
		{"no upper", "secreta1!", true},
		{"no lower", "SECRETA1!", true},
		{"no special", "Secreta11", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"María López", "María", "López"},
		{"Juan Carlos Pérez", "Juan", "Carlos Pérez"},
		{"Ana", "Ana", ""},
		{"", "", ""},
	}

	for _, tc := range tests {
		first, last := splitFullName(tc.full)
		if first != tc.first || last != tc.last {
			t.Errorf("splitFullName(%q) = (%q, %q), want (%q, %q)", tc.full, first, last, tc.first, tc.last)
		}
	}
}

func TestEditModePrefills(t *testing.T) {
	user := &client.User{
		ID:       "u1",
		UserName: "maria",
		Email:    "maria@cyrlab.com",
		FullName: "María López",
		Roles:    []string{"Admin"},
	}

	m := New(sampleRoles(), user)

	if m.userName != "maria" {
		t.Errorf("expected prefilled user name, got %q", m.userName)
	}
	if m.firstName != "María" || m.lastName != "López" {
		t.Errorf("expected split name, got %q %q", m.firstName, m.lastName)
	}
	if m.email != "maria@cyrlab.com" {
		t.Errorf("expected prefilled email, got %q", m.email)
	}
	if m.role != "Admin" {
		t.Errorf("expected prefilled role, got %q", m.role)
	}
}

func TestSubmitBuildsCreateRequest(t *testing.T) {
	m := New(sampleRoles(), nil)
	m.userName = "pedro"
	m.firstName = "Pedro"
	m.lastName = "Ruiz"
	m.email = "pedro@cyrlab.com"
	m.password = "Secreta1!"
	m.role = "Employee"

	msg := m.submit()().(SubmitMsg)

	if msg.Update != nil {
		t.Fatal("expected no update request in create mode")
	}
	if msg.Create == nil {
		t.Fatal("expected a create request")
	}
	if msg.Create.UserName != "pedro" || msg.Create.Password != "Secreta1!" {
		t.Errorf("unexpected create request: %+v", msg.Create)
	}
	if len(msg.Create.Roles) != 1 || msg.Create.Roles[0] != "Employee" {
		t.Errorf("expected one role Employee, got %v", msg.Create.Roles)
	}
	if err := msg.Create.Validate(); err != nil {
		t.Errorf("expected the built request to pass validation: %v", err)
	}
}

func TestSubmitBuildsUpdateRequest(t *testing.T) {
	user := &client.User{
		ID:       "u1",
		UserName: "maria",
		Email:    "maria@cyrlab.com",
		FullName: "María López",
		Roles:    []string{"Admin"},
	}

	m := New(sampleRoles(), user)
	m.email = "maria.lopez@cyrlab.com"

	msg := m.submit()().(SubmitMsg)

	if msg.Create != nil {
		t.Fatal("expected no create request in edit mode")
	}
	if msg.Update == nil {
		t.Fatal("expected an update request")
	}
	if msg.Update.ID != "u1" {
		t.Errorf("expected the edited user's id, got %q", msg.Update.ID)
	}
	if msg.Update.Email != "maria.lopez@cyrlab.com" {
		t.Errorf("expected the edited email, got %q", msg.Update.Email)
	}
	if err := msg.Update.Validate(); err != nil {
		t.Errorf("expected the built request to pass validation: %v", err)
	}
}
