// ABOUTME: Tests for the users and roles commands
// ABOUTME: Verifies listing, CRUD exit codes, and the delete confirmation guard

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/egl-devs/cyrlab-admin/internal/client"
)

func usersHandlers(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/Users" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"items": []client.User{
						{ID: "u1", UserName: "maria", Email: "maria@cyrlab.com", Roles: []string{"Admin"}},
						{ID: "u2", UserName: "pedro", Email: "pedro@cyrlab.com", Roles: []string{"Employee"}},
					},
					"totalCount": 2,
					"pageNumber": 1,
					"pageSize":   10,
				},
			})
		case r.URL.Path == "/api/Users" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "Usuario creado",
			})
		case r.URL.Path == "/api/Users/u1" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": client.User{
					ID: "u1", UserName: "maria", Email: "maria@cyrlab.com",
					FullName: "María López", Roles: []string{"Admin"},
				},
			})
		case r.URL.Path == "/api/Users/u1" && r.Method == http.MethodPut:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "Usuario actualizado",
			})
		case r.URL.Path == "/api/Users/u1" && r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "Usuario eliminado",
			})
		case r.URL.Path == "/api/Roles":
			json.NewEncoder(w).Encode([]client.Role{
				{ID: "r1", Name: "Admin"},
				{ID: "r2", Name: "Employee"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestUsersListHuman(t *testing.T) {
	setupServer(t, usersHandlers(t))

	var buf bytes.Buffer
	code := runUsersList(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, expect := range []string{"maria", "pedro", "Page 1 of 1 (2 users)"} {
		if !bytes.Contains(buf.Bytes(), []byte(expect)) {
			t.Errorf("expected %q in output, got %s", expect, buf.String())
		}
	}
}

func TestUsersListJSON(t *testing.T) {
	setupServer(t, usersHandlers(t))
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runUsersList(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var parsed client.PaginatedUsers
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.TotalCount != 2 {
		t.Errorf("expected totalCount 2, got %d", parsed.TotalCount)
	}
}

func TestUsersListAuthError(t *testing.T) {
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	var buf bytes.Buffer
	code := runUsersList(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1 for auth failure, got %d", code)
	}
}

func TestUsersGet(t *testing.T) {
	setupServer(t, usersHandlers(t))

	var buf bytes.Buffer
	code := runUsersGet(context.Background(), &buf, "u1")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("María López")) {
		t.Errorf("expected the full name in output, got %s", buf.String())
	}
}

func TestUsersCreate(t *testing.T) {
	setupServer(t, usersHandlers(t))
	userFirstName, userLastName = "Ana", "García"
	userEmail, userPassword = "ana@cyrlab.com", "Secreta1!"
	userRoles = []string{"Employee"}
	defer resetUserFlags()

	var buf bytes.Buffer
	code := runUsersCreate(context.Background(), &buf, "ana")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Usuario creado")) {
		t.Errorf("expected the server message, got %s", buf.String())
	}
}

func TestUsersCreateInvalidExitsOne(t *testing.T) {
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid body")
	})
	resetUserFlags()

	var buf bytes.Buffer
	code := runUsersCreate(context.Background(), &buf, "x")

	if code != 1 {
		t.Errorf("expected exit code 1 for a validation failure, got %d", code)
	}
}

func TestUsersUpdateKeepsUnsetFields(t *testing.T) {
	var gotBody map[string]interface{}
	setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			json.NewDecoder(r.Body).Decode(&gotBody)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "Usuario actualizado",
			})
			return
		}
		usersHandlers(t)(w, r)
	})
	userEmail = "maria.lopez@cyrlab.com"
	defer resetUserFlags()

	var buf bytes.Buffer
	code := runUsersUpdate(context.Background(), &buf, "u1")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if gotBody["email"] != "maria.lopez@cyrlab.com" {
		t.Errorf("expected the new email, got %v", gotBody["email"])
	}
	if gotBody["firstName"] != "María" || gotBody["lastName"] != "López" {
		t.Errorf("expected the existing name kept, got %v %v", gotBody["firstName"], gotBody["lastName"])
	}
}

func TestUsersDeleteRequiresYes(t *testing.T) {
	deleteConfirmd = false

	var buf bytes.Buffer
	code := runUsersDelete(context.Background(), &buf, "u1")

	if code != 1 {
		t.Errorf("expected exit code 1 without --yes, got %d", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("--yes")) {
		t.Errorf("expected the confirmation hint, got %s", buf.String())
	}
}

func TestUsersDeleteWithYes(t *testing.T) {
	setupServer(t, usersHandlers(t))
	deleteConfirmd = true
	defer func() { deleteConfirmd = false }()

	var buf bytes.Buffer
	code := runUsersDelete(context.Background(), &buf, "u1")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Usuario eliminado")) {
		t.Errorf("expected the server message, got %s", buf.String())
	}
}

func TestRolesList(t *testing.T) {
	setupServer(t, usersHandlers(t))

	var buf bytes.Buffer
	code := runRoles(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Admin")) || !bytes.Contains(buf.Bytes(), []byte("Employee")) {
		t.Errorf("expected both roles in output, got %s", buf.String())
	}
}

func resetUserFlags() {
	userFirstName, userLastName, userEmail, userPassword = "", "", "", ""
	userRoles = nil
}
