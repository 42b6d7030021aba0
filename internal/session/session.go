// ABOUTME: Session manager owning the authenticated user identity
// ABOUTME: Bootstraps from the persisted token and drives login/logout transitions

package session

import (
	"context"
	"sync"

	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/debuglog"
	"github.com/egl-devs/cyrlab-admin/internal/tokenstore"
)

// State is the session lifecycle state.
type State int

const (
	// StateBootstrapping covers the initial token check at startup.
	StateBootstrapping State = iota
	// StateAnonymous means no validated identity is present.
	StateAnonymous
	// StateAuthenticated means the token was confirmed by an identity fetch.
	StateAuthenticated
)

// Manager owns the current user identity. It is the only writer of the token
// store; every other component reads the token at call time.
type Manager struct {
	mu     sync.RWMutex
	api    *client.Client
	tokens *tokenstore.Store
	state  State
	user   *client.User

	loginInFlight bool
}

// New creates a Manager in the bootstrapping state.
func New(api *client.Client, tokens *tokenstore.Store) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		state:  StateBootstrapping,
	}
}

// Bootstrap resolves the initial state from the persisted token. A stored
// token is validated with an identity fetch; validation failure clears the
// token and leaves the session anonymous. The returned error is informational
// only — the session always lands in a terminal state.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if m.tokens.Get() == "" {
		m.setAnonymous()
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		debuglog.Error("session bootstrap", err)
		if clearErr := m.tokens.Clear(); clearErr != nil {
			debuglog.Error("clear token", clearErr)
		}
		m.setAnonymous()
		return err
	}

	m.setAuthenticated(user)
	return nil
}

// Login authenticates with the remote API, persists the issued token, and
// validates it with the same identity fetch used at bootstrap. On any
// failure the session is anonymous and the error propagates for display.
func (m *Manager) Login(ctx context.Context, userName, password string) error {
	m.mu.Lock()
	m.loginInFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loginInFlight = false
		m.mu.Unlock()
	}()

	token, err := m.api.Login(ctx, userName, password)
	if err != nil {
		m.setAnonymous()
		return err
	}

	if err := m.tokens.Set(token); err != nil {
		// The token still works for this process; persistence across
		// restarts is degraded, not the session itself.
		debuglog.Error("persist token", err)
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if clearErr := m.tokens.Clear(); clearErr != nil {
			debuglog.Error("clear token", clearErr)
		}
		m.setAnonymous()
		return err
	}

	m.setAuthenticated(user)
	return nil
}

// Logout invalidates the token remotely on a best-effort basis, then
// unconditionally clears local state. It never fails and is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	if m.tokens.Get() != "" {
		if err := m.api.Logout(ctx); err != nil {
			debuglog.Error("remote logout", err)
		}
	}

	if err := m.tokens.Clear(); err != nil {
		debuglog.Error("clear token", err)
	}
	m.setAnonymous()
}

// User returns the authenticated user, or nil in every other state.
func (m *Manager) User() *client.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsLoading is true only while bootstrapping or while a login is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateBootstrapping || m.loginInFlight
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAdmin reports whether the authenticated user carries the Admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.HasRole(client.RoleAdmin)
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.user = nil
}

func (m *Manager) setAuthenticated(user *client.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticated
	m.user = user
}
