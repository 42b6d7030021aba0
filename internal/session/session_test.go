// ABOUTME: Tests for the session state machine
// ABOUTME: Covers bootstrap, login, logout idempotence, and token teardown

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/tokenstore"
)

// newEnv wires a manager against a scripted server and a temp token store.
func newEnv(t *testing.T, handler http.HandlerFunc) (*Manager, *tokenstore.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := tokenstore.New(t.TempDir())
	api := client.New(server.URL, tokens, 5*time.Second)
	return New(api, tokens), tokens
}

func adminUser() client.User {
	return client.User{
		ID:       "u1",
		UserName: "maria",
		Email:    "maria@cyrlab.example",
		Roles:    []string{"Admin"},
	}
}

func TestNewStartsBootstrapping(t *testing.T) {
	m, _ := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	if m.State() != StateBootstrapping {
		t.Errorf("expected bootstrapping state, got %d", m.State())
	}
	if !m.IsLoading() {
		t.Error("expected IsLoading true while bootstrapping")
	}
	if m.User() != nil {
		t.Error("expected nil user while bootstrapping")
	}
}

func TestBootstrapWithoutToken(t *testing.T) {
	m, _ := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected when no token is stored")
	})

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if m.IsLoading() {
		t.Error("expected IsLoading false after bootstrap")
	}
}

func TestBootstrapWithValidToken(t *testing.T) {
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected stored token in header, got %q", got)
		}
		json.NewEncoder(w).Encode(adminUser())
	})
	tokens.Set("tok-1")

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated state, got %d", m.State())
	}
	if m.User() == nil || m.User().UserName != "maria" {
		t.Errorf("expected user maria, got %+v", m.User())
	}
	if !m.IsAdmin() {
		t.Error("expected IsAdmin true")
	}
}

func TestBootstrapWithExpiredTokenClearsStore(t *testing.T) {
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	tokens.Set("stale")

	err := m.Bootstrap(context.Background())

	var authErr *client.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if tokens.Get() != "" {
		t.Error("expected token store cleared after failed validation")
	}
	if m.User() != nil {
		t.Error("expected nil user after failed bootstrap")
	}
}

func TestLoginSuccess(t *testing.T) {
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-2"})
		case "/api/auth/me":
			json.NewEncoder(w).Encode(adminUser())
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	if err := m.Login(context.Background(), "maria", "Secreta1!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated state, got %d", m.State())
	}
	if tokens.Get() != "tok-2" {
		t.Errorf("expected token persisted, got %q", tokens.Get())
	}
	if m.IsLoading() {
		t.Error("expected IsLoading false after login completes")
	}
}

func TestLoginRejectedStaysAnonymous(t *testing.T) {
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
	})

	err := m.Login(context.Background(), "admin", "wrongpass")

	var authErr *client.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("expected server message verbatim, got %q", authErr.Message)
	}
	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if tokens.Get() != "" {
		t.Error("expected no token persisted after rejected login")
	}
}

func TestLoginIdentityFetchFailureClearsToken(t *testing.T) {
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-3"})
		case "/api/auth/me":
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	if err := m.Login(context.Background(), "maria", "Secreta1!"); err == nil {
		t.Fatal("expected error when identity fetch fails")
	}
	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if tokens.Get() != "" {
		t.Error("expected token cleared when identity fetch fails")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	logoutCalls := 0
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			json.NewEncoder(w).Encode(adminUser())
		case "/api/auth/logout":
			logoutCalls++
			w.WriteHeader(http.StatusOK)
		}
	})
	tokens.Set("tok-1")
	m.Bootstrap(context.Background())

	m.Logout(context.Background())

	if logoutCalls != 1 {
		t.Errorf("expected one remote logout call, got %d", logoutCalls)
	}
	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if tokens.Get() != "" {
		t.Error("expected token store cleared")
	}
	if m.User() != nil {
		t.Error("expected nil user after logout")
	}
}

func TestLogoutTwiceNeverPanics(t *testing.T) {
	m, tokens := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	tokens.Set("tok-1")

	m.Logout(context.Background())
	m.Logout(context.Background())

	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if tokens.Get() != "" {
		t.Error("expected token store cleared both times")
	}
}

func TestLogoutProceedsWhenRemoteFails(t *testing.T) {
	tokens := tokenstore.New(t.TempDir())
	tokens.Set("tok-1")
	api := client.New("http://127.0.0.1:1", tokens, time.Second)
	m := New(api, tokens)

	m.Logout(context.Background())

	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %d", m.State())
	}
	if tokens.Get() != "" {
		t.Error("expected token cleared despite unreachable server")
	}
}
